package cli

import (
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/dermassist/dermassist/internal/core/config"
	"github.com/dermassist/dermassist/internal/core/session"
	"github.com/dermassist/dermassist/internal/core/store"
	"github.com/dermassist/dermassist/internal/interface/tui"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive diagnosis form",
	Long:  "Launch an interactive terminal UI: pick a photo, describe symptoms, submit, and read the result",
	RunE:  runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// The TUI owns the terminal, so logs go to a file instead of stderr.
	if f, err := openLogFile(); err == nil {
		log.Logger = zerolog.New(f).With().Timestamp().Logger()
		defer func() { _ = f.Close() }()
	}

	st := store.New()
	defer func() { _ = st.Close() }()

	sessionID, err := session.GetOrCreate(config.Dir())
	if err != nil {
		return fmt.Errorf("failed to initialize session: %w", err)
	}
	st.SetSession(sessionID)

	p := tea.NewProgram(
		tui.New(cfg, st, sessionID),
		tea.WithAltScreen(),
	)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}
	return nil
}

func openLogFile() (*os.File, error) {
	dir := config.Dir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return os.OpenFile(filepath.Join(dir, "dermassist.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
}
