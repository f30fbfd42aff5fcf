package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dermassist/dermassist/internal/core/config"
	"github.com/dermassist/dermassist/internal/core/diagnosis"
	"github.com/dermassist/dermassist/internal/core/models"
	"github.com/dermassist/dermassist/internal/core/session"
)

var (
	chatName string
	chatAge  int
)

var chatCmd = &cobra.Command{
	Use:   "chat <message>",
	Short: "Ask the assistant a text-only question",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runChat,
}

func init() {
	chatCmd.Flags().StringVarP(&chatName, "name", "n", "", "Your name")
	chatCmd.Flags().IntVarP(&chatAge, "age", "a", 0, "Your age")
	rootCmd.AddCommand(chatCmd)
}

func runChat(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	sessionID, err := session.GetOrCreate(config.Dir())
	if err != nil {
		return fmt.Errorf("failed to initialize session: %w", err)
	}

	client := diagnosis.NewClient(cfg.Endpoint, cfg.Timeout)
	message := strings.Join(args, " ")
	reply, err := client.Chat(cmd.Context(), message, sessionID, models.Profile{Name: chatName, Age: chatAge})
	if err != nil {
		return fmt.Errorf("%s", diagnosis.UserMessage(err))
	}

	fmt.Println(reply.Message)
	if len(reply.SuggestedActions) > 0 {
		fmt.Println()
		for _, action := range reply.SuggestedActions {
			fmt.Printf("  - %s\n", action)
		}
	}
	return nil
}
