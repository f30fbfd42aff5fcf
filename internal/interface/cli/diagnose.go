package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/dermassist/dermassist/internal/core/config"
	"github.com/dermassist/dermassist/internal/core/diagnosis"
	"github.com/dermassist/dermassist/internal/core/models"
	"github.com/dermassist/dermassist/internal/core/report"
	"github.com/dermassist/dermassist/internal/core/session"
	"github.com/dermassist/dermassist/internal/core/store"
)

var (
	diagnoseImage    string
	diagnoseSymptoms string
	diagnoseName     string
	diagnoseAge      int
	diagnoseOutput   string
)

var diagnoseCmd = &cobra.Command{
	Use:   "diagnose",
	Short: "Submit one diagnosis request non-interactively",
	Long: `Submit a skin-lesion photo and symptom description in one shot.

Progress is reported on stderr; the rendered report goes to stdout or,
with --output, to a file.`,
	RunE: runDiagnose,
}

func init() {
	diagnoseCmd.Flags().StringVarP(&diagnoseImage, "image", "i", "", "Path to the lesion photo (required)")
	diagnoseCmd.Flags().StringVarP(&diagnoseSymptoms, "symptoms", "s", "", "Symptom description (required)")
	diagnoseCmd.Flags().StringVarP(&diagnoseName, "name", "n", "", "Your name")
	diagnoseCmd.Flags().IntVarP(&diagnoseAge, "age", "a", 0, "Your age")
	diagnoseCmd.Flags().StringVarP(&diagnoseOutput, "output", "o", "", "Write the report to a file instead of stdout")
	_ = diagnoseCmd.MarkFlagRequired("image")
	_ = diagnoseCmd.MarkFlagRequired("symptoms")
	rootCmd.AddCommand(diagnoseCmd)
}

func runDiagnose(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	data, err := os.ReadFile(diagnoseImage)
	if err != nil {
		return fmt.Errorf("failed to read image: %w", err)
	}
	log.Debug().Str("image", diagnoseImage).Str("size", humanize.Bytes(uint64(len(data)))).Msg("image loaded")

	st := store.New()
	defer func() { _ = st.Close() }()

	if err := st.SetImage(data, diagnoseImage); err != nil {
		return err
	}
	st.SetSymptoms(diagnoseSymptoms)
	st.SetUser(models.Profile{Name: diagnoseName, Age: diagnoseAge})

	sessionID, err := session.GetOrCreate(config.Dir())
	if err != nil {
		return fmt.Errorf("failed to initialize session: %w", err)
	}
	st.SetSession(sessionID)

	client := diagnosis.NewClient(cfg.Endpoint, cfg.Timeout)
	ctrl := diagnosis.NewController(client, st, func(s diagnosis.Status) {
		switch s.Phase {
		case diagnosis.PhaseSubmitting:
			fmt.Fprintf(os.Stderr, "\rAnalyzing... %3d%%", s.Percent)
		case diagnosis.PhaseIdle:
			fmt.Fprint(os.Stderr, "\r                 \r")
		}
	})

	res, err := ctrl.Submit(cmd.Context(), sessionID)
	if err != nil {
		return fmt.Errorf("%s", diagnosis.UserMessage(err))
	}

	out, err := report.Render(res, diagnoseImage, len(data), time.Now())
	if err != nil {
		return fmt.Errorf("failed to render report: %w", err)
	}

	if diagnoseOutput != "" {
		if err := os.WriteFile(diagnoseOutput, []byte(out), 0o644); err != nil {
			return fmt.Errorf("failed to write report: %w", err)
		}
		fmt.Fprintf(os.Stderr, "Report written to %s\n", diagnoseOutput)
		return nil
	}
	fmt.Print(out)
	return nil
}
