// Package tui implements the interactive diagnosis form: a single-screen
// workflow that walks form -> submitting -> result, backed by the shared
// store and the workflow controller.
package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/dustin/go-humanize"

	"github.com/dermassist/dermassist/internal/core/config"
	"github.com/dermassist/dermassist/internal/core/diagnosis"
	"github.com/dermassist/dermassist/internal/core/models"
	"github.com/dermassist/dermassist/internal/core/report"
	"github.com/dermassist/dermassist/internal/core/store"
)

type phase int

const (
	phaseForm phase = iota
	phaseSubmitting
	phaseResult
)

// formValues backs the huh form fields. It lives behind a pointer so the
// bindings survive bubbletea's model copies.
type formValues struct {
	ImagePath string
	Symptoms  string
	Name      string
	AgeStr    string
}

type Model struct {
	cfg       *config.Config
	st        *store.Store
	ctrl      *diagnosis.Controller
	relay     *statusRelay
	sessionID string

	phase  phase
	form   *huh.Form
	values *formValues

	errText    string
	statusLine string

	statusCh chan diagnosis.Status
	percent  int
	bar      progress.Model

	result   *models.Result
	viewport viewport.Model

	width  int
	height int
}

func New(cfg *config.Config, st *store.Store, sessionID string) Model {
	relay := &statusRelay{}
	client := diagnosis.NewClient(cfg.Endpoint, cfg.Timeout)
	m := Model{
		cfg:       cfg,
		st:        st,
		ctrl:      diagnosis.NewController(client, st, relay.send),
		relay:     relay,
		sessionID: sessionID,
		values:    &formValues{},
		bar:       progress.New(progress.WithDefaultGradient()),
	}
	m.form = newDiagnosisForm(m.values)
	return m
}

func (m Model) Init() tea.Cmd {
	return m.form.Init()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.bar.Width = min(msg.Width-8, 60)
		if m.phase == phaseResult {
			m.viewport = newResultViewport(m.result, m.width, m.height)
		}
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		switch m.phase {
		case phaseResult:
			return m.updateResult(msg)
		case phaseSubmitting:
			// Submit affordance is gone; nothing to press but ctrl+c.
			return m, nil
		}

	case statusMsg:
		return m.updateStatus(diagnosis.Status(msg))

	case submitDoneMsg:
		if msg.err != nil {
			m.errText = diagnosis.UserMessage(msg.err)
			m.phase = phaseForm
			m.form = newDiagnosisForm(m.values)
			return m, m.form.Init()
		}
		m.result = msg.res
		m.errText = ""
		m.statusLine = ""
		m.phase = phaseResult
		m.viewport = newResultViewport(msg.res, m.width, m.height)
		return m, nil

	case reportSavedMsg:
		if msg.err != nil {
			m.statusLine = errorStyle.Render("Could not save report: " + msg.err.Error())
		} else {
			m.statusLine = statusLineStyle.Render("Report saved to " + msg.path)
		}
		return m, nil
	}

	if m.phase == phaseForm {
		form, cmd := m.form.Update(msg)
		if f, ok := form.(*huh.Form); ok {
			m.form = f
		}
		if m.form.State == huh.StateCompleted {
			return m.beginSubmission()
		}
		return m, cmd
	}
	return m, nil
}

// beginSubmission moves the form contents into the store and kicks off the
// controller. Deep validation (image present, symptoms non-empty) belongs to
// the controller; failures come back as a displayable message.
func (m Model) beginSubmission() (tea.Model, tea.Cmd) {
	data, err := os.ReadFile(m.values.ImagePath)
	if err == nil {
		err = m.st.SetImage(data, filepath.Base(m.values.ImagePath))
	}
	if err != nil {
		m.errText = "Could not load image: " + err.Error()
		m.form = newDiagnosisForm(m.values)
		return m, m.form.Init()
	}

	m.st.SetSymptoms(m.values.Symptoms)
	m.st.SetUser(models.Profile{Name: m.values.Name, Age: parseAge(m.values.AgeStr)})

	m.statusCh = make(chan diagnosis.Status, 256)
	m.relay.set(m.statusCh)
	m.percent = 0
	m.errText = ""
	m.phase = phaseSubmitting

	return m, tea.Batch(
		runSubmit(m.ctrl, m.sessionID, m.relay),
		waitForStatus(m.statusCh),
	)
}

func (m Model) updateStatus(s diagnosis.Status) (tea.Model, tea.Cmd) {
	switch s.Phase {
	case diagnosis.PhaseSubmitting:
		if s.Percent > m.percent {
			m.percent = s.Percent
		}
	case diagnosis.PhaseFailed:
		m.errText = s.Message
	}
	if m.phase == phaseSubmitting {
		return m, waitForStatus(m.statusCh)
	}
	return m, nil
}

func (m Model) updateResult(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "esc":
		return m, tea.Quit
	case "n":
		m.phase = phaseForm
		m.statusLine = ""
		m.form = newDiagnosisForm(m.values)
		return m, m.form.Init()
	case "y":
		if err := clipboard.WriteAll(m.result.AssistantMessage); err != nil {
			m.statusLine = errorStyle.Render("Clipboard unavailable")
		} else {
			m.statusLine = statusLineStyle.Render("Assistant message copied")
		}
		return m, nil
	case "e":
		return m, m.saveReport()
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) saveReport() tea.Cmd {
	res := m.result
	snap := m.st.Snapshot()
	return func() tea.Msg {
		out, err := report.Render(res, snap.ImageName, len(snap.Image), time.Now())
		if err != nil {
			return reportSavedMsg{err: err}
		}
		path := fmt.Sprintf("dermassist-report-%s.md", time.Now().Format("20060102-150405"))
		if err := os.WriteFile(path, []byte(out), 0o644); err != nil {
			return reportSavedMsg{err: err}
		}
		return reportSavedMsg{path: path}
	}
}

func (m Model) View() string {
	switch m.phase {
	case phaseSubmitting:
		return m.viewSubmitting()
	case phaseResult:
		return m.viewResult()
	default:
		return m.viewForm()
	}
}

func (m Model) viewSubmitting() string {
	snap := m.st.Snapshot()
	size := humanize.Bytes(uint64(len(snap.Image)))
	return fmt.Sprintf("\n  %s\n\n  Uploading %s (%s)\n\n  %s\n\n  %s\n",
		titleStyle.Render("Dermatology Self-Assessment"),
		snap.ImageName, size,
		m.bar.ViewAs(float64(m.percent)/100),
		metaStyle.Render(fmt.Sprintf("Analyzing... %d%%", m.percent)),
	)
}

func parseAge(s string) int {
	var age int
	_, _ = fmt.Sscanf(s, "%d", &age)
	if age < 0 {
		age = 0
	}
	return age
}
