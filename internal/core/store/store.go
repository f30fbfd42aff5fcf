// Package store holds the single source of truth for one diagnosis workflow:
// the selected image, its preview thumbnail, the symptom text, the active
// session token, the latest diagnosis and the user profile. All mutation goes
// through the named setters; collaborators read via Snapshot or Subscribe.
package store

import (
	"fmt"
	"os"
	"sync"

	"github.com/dermassist/dermassist/internal/core/models"
)

// State is one consistent view of the workflow data. Slices and pointers are
// shared with the store; treat a snapshot as read-only.
type State struct {
	Image         []byte
	ImageName     string // original filename, used for the multipart part
	PreviewPath   string // thumbnail file derived from Image, owned by the store
	Symptoms      string
	ActiveSession string
	Diagnosis     *models.Result
	User          models.Profile
}

type Store struct {
	mu    sync.Mutex
	state State
	subs  []func(State)
}

func New() *Store {
	return &Store{}
}

// Snapshot returns the current state.
func (s *Store) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Subscribe registers fn to be called synchronously after every mutation.
func (s *Store) Subscribe(fn func(State)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subs = append(s.subs, fn)
}

// SetImage replaces the selected image and recomputes its preview thumbnail.
// The previous thumbnail file is removed on the same code path. If data does
// not decode as an image the state is left untouched and an error returned.
func (s *Store) SetImage(data []byte, name string) error {
	preview, err := writeThumbnail(data)
	if err != nil {
		return fmt.Errorf("unusable image %q: %w", name, err)
	}

	s.mu.Lock()
	old := s.state.PreviewPath
	s.state.Image = data
	s.state.ImageName = name
	s.state.PreviewPath = preview
	s.mu.Unlock()

	if old != "" {
		_ = os.Remove(old)
	}
	s.notify()
	return nil
}

// SetSymptoms replaces the symptom text verbatim. Validation (non-empty after
// trimming) belongs to the workflow controller, not here.
func (s *Store) SetSymptoms(text string) {
	s.mu.Lock()
	s.state.Symptoms = text
	s.mu.Unlock()
	s.notify()
}

// SetDiagnosis replaces the latest normalized diagnosis.
func (s *Store) SetDiagnosis(r *models.Result) {
	s.mu.Lock()
	s.state.Diagnosis = r
	s.mu.Unlock()
	s.notify()
}

// SetUser replaces the user profile.
func (s *Store) SetUser(p models.Profile) {
	s.mu.Lock()
	s.state.User = p
	s.mu.Unlock()
	s.notify()
}

// SetSession records the active session token.
func (s *Store) SetSession(id string) {
	s.mu.Lock()
	s.state.ActiveSession = id
	s.mu.Unlock()
	s.notify()
}

// Close releases the preview thumbnail. The store must not be used after
// Close.
func (s *Store) Close() error {
	s.mu.Lock()
	preview := s.state.PreviewPath
	s.state = State{}
	s.subs = nil
	s.mu.Unlock()

	if preview != "" {
		return os.Remove(preview)
	}
	return nil
}

// notify invokes subscribers outside the lock so a callback may call back
// into the store.
func (s *Store) notify() {
	s.mu.Lock()
	state := s.state
	subs := make([]func(State), len(s.subs))
	copy(subs, s.subs)
	s.mu.Unlock()

	for _, fn := range subs {
		fn(state)
	}
}
