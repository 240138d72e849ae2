package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/setinbound/chatkit/internal/tui"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Open the interactive chat widget",
	Long: `Open the interactive chat widget in the terminal.

Enter submits a message, esc closes the widget, ctrl+l clears the
transcript and ctrl+c quits. Links in replies are highlighted.`,
	Args: cobra.NoArgs,
	RunE: runChat,
}

func runChat(cmd *cobra.Command, args []string) error {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return fmt.Errorf("chat requires an interactive terminal; use 'chatkit send' for scripting")
	}

	sess := newSession()
	defer sess.Close()

	return tui.Run(sess)
}
