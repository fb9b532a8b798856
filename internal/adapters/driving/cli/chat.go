package cli

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/scenechat/scenechat/internal/adapters/driving/tui"
)

var chatCmd = &cobra.Command{
	Use:   "chat [character]",
	Short: "Chat with a character in the terminal",
	Long: `Opens an interactive terminal chat with the named character.
Unknown characters get a generic persona in their own name.`,
	Args: cobra.ExactArgs(1),
	RunE: runChat,
}

func init() {
	rootCmd.AddCommand(chatCmd)
}

func runChat(_ *cobra.Command, args []string) error {
	ctx := context.Background()

	chat, cleanup, err := buildChatService(ctx, cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	sessionID, err := chat.NewSession(ctx)
	if err != nil {
		return err
	}

	model := tui.New(chat, sessionID, args[0])
	if _, err := tea.NewProgram(model, tea.WithAltScreen()).Run(); err != nil {
		return fmt.Errorf("running chat ui: %w", err)
	}
	return nil
}
