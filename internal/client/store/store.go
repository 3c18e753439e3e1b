package store

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"resume-forge/internal/services/resumes"
)

// ResumeAPI is the slice of the API client the store needs.
type ResumeAPI interface {
	SaveResume(ctx context.Context, req resumes.SaveResumeRequest) (*resumes.SaveResumeResponse, error)
	ListResumes(ctx context.Context) ([]*resumes.Resume, error)
}

// Store owns one State and pushes edits through the debounced saver. All
// methods are safe for concurrent use; reads always see a complete State.
type Store struct {
	api   ResumeAPI
	log   *slog.Logger
	saver *Saver

	mu    sync.Mutex
	state State
}

// New builds a store around an API client. debounce bounds how long a burst
// of edits can wait before a save fires.
func New(api ResumeAPI, log *slog.Logger, debounce time.Duration) *Store {
	s := &Store{
		api:   api,
		log:   log,
		state: NewState(),
	}
	s.saver = NewSaver(s.persist, debounce)
	return s
}

// State returns a snapshot of the current state.
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.state
	st.Current = cloneResume(st.Current)
	return st
}

// SaveStatus reports the saver's persistence state.
func (s *Store) SaveStatus() SaveStatus {
	return s.saver.Status()
}

// Dispatch applies a reducer and schedules a save when the edit touched the
// current resume.
func (s *Store) Dispatch(r Reducer) {
	s.mu.Lock()
	before := s.state.Current
	s.state = r(s.state)
	changed := s.state.Current != before
	s.mu.Unlock()

	if changed {
		s.saver.Enqueue()
	}
}

// DispatchLocal applies a reducer without scheduling a save. For edits that
// live only on the client, like custom templates and section order.
func (s *Store) DispatchLocal(r Reducer) {
	s.mu.Lock()
	s.state = r(s.state)
	s.mu.Unlock()
}

// Flush drains any pending save. Call before shutdown or reload.
func (s *Store) Flush(ctx context.Context) error {
	return s.saver.Flush(ctx)
}

// persist is the saver's callback: snapshot the current resume and upsert it.
func (s *Store) persist(ctx context.Context) error {
	s.mu.Lock()
	current := cloneResume(s.state.Current)
	s.mu.Unlock()

	if current == nil {
		return nil
	}

	req := resumes.SaveResumeRequest{
		PersonalDetails: &current.PersonalDetails,
		Education:       &current.Education,
		Experience:      &current.Experience,
		Skills:          &current.Skills,
		Projects:        &current.Projects,
		Certifications:  &current.Certifications,
		Template:        &current.Template,
		Name:            current.Name,
	}

	resp, err := s.api.SaveResume(ctx, req)
	if err != nil {
		s.log.Warn("resume save failed", "error", err)
		return err
	}

	// First save of a fresh resume: adopt the server-assigned ids so later
	// edits target the same document and items keep stable identifiers.
	if resp.Resume != nil {
		s.mu.Lock()
		if s.state.CurrentID == "" {
			s.state = LoadResumes([]*resumes.Resume{resp.Resume})(s.state)
		}
		s.mu.Unlock()
	}
	return nil
}

// HandleLogin reloads resume state from the server. Called by the login and
// verify-email flows once a token is in hand.
func (s *Store) HandleLogin(ctx context.Context) error {
	list, err := s.api.ListResumes(ctx)
	if err != nil {
		s.log.Warn("resume list fetch failed", "error", err)
		return err
	}

	s.mu.Lock()
	s.state = LoadResumes(list)(s.state)
	s.mu.Unlock()
	return nil
}

// HandleLogout clears resume state. Also wired as the API client's auth-lost
// handler so a 401 anywhere drops straight to logged-out state.
func (s *Store) HandleLogout() {
	s.mu.Lock()
	s.state = Clear()(s.state)
	s.mu.Unlock()
}
