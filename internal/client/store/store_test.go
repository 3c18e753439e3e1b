package store

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"testing"
	"time"

	"resume-forge/internal/config"
	"resume-forge/internal/logger"
	"resume-forge/internal/sections"
	"resume-forge/internal/services/resumes"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"
)

// fakeAPI records every save request it receives.
type fakeAPI struct {
	mu      sync.Mutex
	saves   []resumes.SaveResumeRequest
	list    []*resumes.Resume
	saveErr error
	listErr error
}

func (f *fakeAPI) SaveResume(_ context.Context, req resumes.SaveResumeRequest) (*resumes.SaveResumeResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.saveErr != nil {
		return nil, f.saveErr
	}
	f.saves = append(f.saves, req)

	saved := &resumes.Resume{
		ID:              bson.NewObjectID(),
		PersonalDetails: *req.PersonalDetails,
		Education:       *req.Education,
		Experience:      *req.Experience,
		Skills:          *req.Skills,
		Projects:        *req.Projects,
		Certifications:  *req.Certifications,
		Template:        *req.Template,
		Name:            req.Name,
		LastModified:    time.Now(),
	}
	return &resumes.SaveResumeResponse{Message: "Resume saved successfully", Resume: saved}, nil
}

func (f *fakeAPI) ListResumes(context.Context) ([]*resumes.Resume, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.list, nil
}

func (f *fakeAPI) saveCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.saves)
}

func (f *fakeAPI) lastSave() resumes.SaveResumeRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.saves[len(f.saves)-1]
}

func testLogger(t *testing.T) *slog.Logger {
	t.Helper()
	log, err := logger.Init(config.Config{LogLevel: "debug", LogFormat: "text"})
	require.NoError(t, err)
	return log
}

func newTestStore(t *testing.T, api *fakeAPI, debounce time.Duration) *Store {
	t.Helper()
	s := New(api, testLogger(t), debounce)
	s.Dispatch(func(st State) State {
		st.Current = blankResume()
		return st
	})
	return s
}

func TestRapidEditsCoalesceWithoutLoss(t *testing.T) {
	api := &fakeAPI{}
	s := newTestStore(t, api, 50*time.Millisecond)

	s.Dispatch(AddSkill(resumes.Skill{Name: "Go", Level: 5}))
	s.Dispatch(AddSkill(resumes.Skill{Name: "MongoDB", Level: 4}))

	require.NoError(t, s.Flush(context.Background()))

	// One coalesced save carrying both skills, not one save per edit.
	assert.Equal(t, 1, api.saveCount())
	skills := *api.lastSave().Skills
	require.Len(t, skills, 2)
	assert.Equal(t, "Go", skills[0].Name)
	assert.Equal(t, "MongoDB", skills[1].Name)
	assert.Equal(t, StatusSaved, s.SaveStatus())
}

func TestDebounceFiresWithoutFlush(t *testing.T) {
	api := &fakeAPI{}
	s := newTestStore(t, api, 10*time.Millisecond)

	s.Dispatch(AddSkill(resumes.Skill{Name: "Go", Level: 5}))

	assert.Eventually(t, func() bool {
		return api.saveCount() >= 1 && s.SaveStatus() == StatusSaved
	}, 2*time.Second, 5*time.Millisecond)
}

func TestFailedSaveSurfacesStatus(t *testing.T) {
	api := &fakeAPI{saveErr: errors.New("connection refused")}
	s := newTestStore(t, api, 50*time.Millisecond)

	s.Dispatch(AddSkill(resumes.Skill{Name: "Go"}))

	err := s.Flush(context.Background())
	require.Error(t, err)
	assert.Equal(t, StatusFailed, s.SaveStatus())
}

func TestFlushWithNothingPending(t *testing.T) {
	api := &fakeAPI{}
	s := New(api, testLogger(t), time.Second)

	require.NoError(t, s.Flush(context.Background()))
	assert.Equal(t, 0, api.saveCount())
}

func TestEditsAssignItemIDs(t *testing.T) {
	api := &fakeAPI{}
	s := newTestStore(t, api, time.Second)

	s.Dispatch(AddSkill(resumes.Skill{Name: "Go"}))
	s.Dispatch(AddEducation(resumes.Education{Institution: "TU Berlin", Degree: "B.Sc."}))

	st := s.State()
	require.Len(t, st.Current.Skills, 1)
	require.Len(t, st.Current.Education, 1)
	assert.NotEmpty(t, st.Current.Skills[0].ID)
	assert.NotEmpty(t, st.Current.Education[0].ID)
	assert.NotEqual(t, st.Current.Skills[0].ID, st.Current.Education[0].ID)
}

func TestReducersArePure(t *testing.T) {
	before := NewState()
	before.Current = blankResume()

	after := AddSkill(resumes.Skill{Name: "Go"})(before)

	assert.Empty(t, before.Current.Skills, "original state must not change")
	assert.Len(t, after.Current.Skills, 1)
}

func TestUpdateAndRemoveSkill(t *testing.T) {
	api := &fakeAPI{}
	s := newTestStore(t, api, time.Second)

	s.Dispatch(AddSkill(resumes.Skill{ID: "s1", Name: "Go", Level: 3}))
	s.Dispatch(UpdateSkill(resumes.Skill{ID: "s1", Name: "Go", Level: 5}))

	st := s.State()
	require.Len(t, st.Current.Skills, 1)
	assert.Equal(t, 5, st.Current.Skills[0].Level)

	s.Dispatch(RemoveSkill("s1"))
	assert.Empty(t, s.State().Current.Skills)
}

func TestSummaryMirrorsCurrentEdit(t *testing.T) {
	api := &fakeAPI{}
	s := New(api, testLogger(t), time.Second)

	id := bson.NewObjectID()
	s.DispatchLocal(LoadResumes([]*resumes.Resume{{
		ID:       id,
		Name:     "Old Name",
		Template: "minimal",
		Skills:   []resumes.Skill{},
	}}))

	s.Dispatch(SetName("New Name"))

	st := s.State()
	require.Len(t, st.Summaries, 1)
	assert.Equal(t, "New Name", st.Summaries[0].Name)
	assert.Equal(t, id.Hex(), st.CurrentID)
}

func TestLoginReloadsAndLogoutClears(t *testing.T) {
	id := bson.NewObjectID()
	api := &fakeAPI{list: []*resumes.Resume{{
		ID:       id,
		Name:     "Server Resume",
		Template: "modern",
		Skills:   []resumes.Skill{{ID: "s1", Name: "Go", Level: 5}},
	}}}
	s := New(api, testLogger(t), time.Second)

	require.NoError(t, s.HandleLogin(context.Background()))

	st := s.State()
	assert.Equal(t, id.Hex(), st.CurrentID)
	assert.Equal(t, "modern", st.TemplateID)
	require.NotNil(t, st.Current)
	assert.Len(t, st.Current.Skills, 1)

	s.HandleLogout()

	st = s.State()
	assert.Empty(t, st.CurrentID)
	assert.Nil(t, st.Current)
	assert.Empty(t, st.Summaries)
}

func TestCustomTemplates(t *testing.T) {
	api := &fakeAPI{}
	s := New(api, testLogger(t), time.Second)

	order := []sections.Type{
		sections.PersonalInfo, sections.Skills, sections.Experience,
		sections.Education, sections.Summary, sections.Projects,
		sections.Certifications,
	}
	s.DispatchLocal(SaveCustomTemplate("Skills First", "modern", order))

	st := s.State()
	require.Len(t, st.CustomTemplates, 1)
	tpl := st.CustomTemplates[0]
	assert.NotEmpty(t, tpl.ID)
	assert.Equal(t, "Skills First", tpl.Name)

	s.DispatchLocal(ApplyCustomTemplate(tpl.ID))
	st = s.State()
	assert.Equal(t, "modern", st.TemplateID)
	assert.Equal(t, order, st.SectionOrder)

	// Custom templates survive logout.
	s.HandleLogout()
	assert.Len(t, s.State().CustomTemplates, 1)

	s.DispatchLocal(RemoveCustomTemplate(tpl.ID))
	assert.Empty(t, s.State().CustomTemplates)
}

func TestSectionOrderThroughReorderer(t *testing.T) {
	api := &fakeAPI{}
	s := New(api, testLogger(t), time.Second)

	r := sections.NewReorderer(s.State().SectionOrder)

	// Moving summary below skills keeps the order compatible.
	applied, err := r.ProposeMove(1, 4)
	require.NoError(t, err)
	assert.True(t, applied)

	s.DispatchLocal(SetSectionOrder(r.Order()))
	assert.Equal(t, r.Order(), s.State().SectionOrder)
}
