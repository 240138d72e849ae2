package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/setinbound/chatkit/internal/session"
)

var sessionReset bool

var sessionCmd = &cobra.Command{
	Use:   "session",
	Short: "Show or reset the persisted session id",
	Long: `Show the anonymous session id sent with every chat request.

The id is created on first use and persisted per profile; --reset
replaces it with a fresh one.`,
	Args: cobra.NoArgs,
	RunE: runSession,
}

func init() {
	sessionCmd.Flags().BoolVar(&sessionReset, "reset", false, "discard the persisted id and create a new one")
}

func runSession(cmd *cobra.Command, args []string) error {
	ids := session.NewStore(cfg.SessionFile, logger)
	if sessionReset {
		fmt.Println(ids.Reset())
		return nil
	}
	fmt.Println(ids.GetOrCreate())
	return nil
}
