package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/setinbound/chatkit/internal/chat"
	"github.com/setinbound/chatkit/internal/session"
)

var sendShowLinks bool

var sendCmd = &cobra.Command{
	Use:   "send <message>",
	Short: "Send one message and print the reply",
	Long: `Send a single message to the chat backend and print the assistant
reply to stdout. Suited for scripting; exits non-zero on failure.

Examples:
  chatkit send "What does setinbound do?"
  chatkit send --links "Where can I read more?"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSend,
}

func init() {
	sendCmd.Flags().BoolVar(&sendShowLinks, "links", false, "list links found in the reply")
}

func runSend(cmd *cobra.Command, args []string) error {
	text := strings.Join(args, " ")
	if err := chat.Validate(text); err != nil {
		return err
	}

	ids := session.NewStore(cfg.SessionFile, logger)
	client := chat.NewClient(cfg.BackendURL, chat.Source{
		Platform: cfg.Platform,
		Contact:  cfg.Contact,
	})

	ctx, cancel := context.WithTimeout(cmd.Context(), cfg.RequestTimeout)
	defer cancel()

	reply, err := client.Send(ctx, ids.GetOrCreate(), strings.TrimSpace(text))
	if err != nil {
		_, banner := chat.Classify(err)
		logger.Error("send failed", "error", err)
		return fmt.Errorf("%s", banner)
	}

	fmt.Println(reply)

	if sendShowLinks {
		for _, seg := range chat.Segments(reply) {
			if seg.Kind == chat.Hyperlink {
				fmt.Println(seg.Value)
			}
		}
	}
	return nil
}
