package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dermassist/dermassist/internal/core/config"
	"github.com/dermassist/dermassist/internal/core/session"
)

var sessionCmd = &cobra.Command{
	Use:   "session",
	Short: "Print the durable session token",
	Long: `Print the opaque session token that correlates your submissions
server-side. It is created on first use and never regenerated.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		token, err := session.GetOrCreate(config.Dir())
		if err != nil {
			return err
		}
		fmt.Println(token)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(sessionCmd)
}
