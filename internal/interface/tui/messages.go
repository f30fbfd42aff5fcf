package tui

import (
	"context"
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/dermassist/dermassist/internal/core/diagnosis"
	"github.com/dermassist/dermassist/internal/core/models"
)

type statusMsg diagnosis.Status

type submitDoneMsg struct {
	res *models.Result
	err error
}

type reportSavedMsg struct {
	path string
	err  error
}

// statusRelay forwards controller status into the current submission's
// channel. The controller's notify callback is fixed at construction, while
// the TUI uses a fresh channel per submission.
type statusRelay struct {
	mu sync.Mutex
	ch chan diagnosis.Status
}

func (r *statusRelay) set(ch chan diagnosis.Status) {
	r.mu.Lock()
	old := r.ch
	r.ch = ch
	r.mu.Unlock()
	if old != nil {
		close(old)
	}
}

func (r *statusRelay) send(s diagnosis.Status) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.ch != nil {
		r.ch <- s
	}
}

// waitForStatus delivers the next status update, or nothing once the
// submission's channel is closed.
func waitForStatus(ch <-chan diagnosis.Status) tea.Cmd {
	return func() tea.Msg {
		s, ok := <-ch
		if !ok {
			return nil
		}
		return statusMsg(s)
	}
}

// runSubmit performs the submission off the UI loop. Status updates arrive
// through the relay; the final result lands as submitDoneMsg.
func runSubmit(ctrl *diagnosis.Controller, sessionID string, relay *statusRelay) tea.Cmd {
	return func() tea.Msg {
		res, err := ctrl.Submit(context.Background(), sessionID)
		// Every status emission happens before Submit returns, so the
		// channel can be retired here.
		relay.set(nil)
		return submitDoneMsg{res: res, err: err}
	}
}
