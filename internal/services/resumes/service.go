package resumes

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"resume-forge/internal/utils/sanitize"

	"github.com/oklog/ulid/v2"
	"go.mongodb.org/mongo-driver/v2/bson"
)

// Service handles resume business logic
type Service struct {
	repo Repository
	log  *slog.Logger
}

// NewService creates a new resumes service
func NewService(repo Repository, log *slog.Logger) *Service {
	return &Service{
		repo: repo,
		log:  log,
	}
}

// SaveResumeRequest represents a resume save request. The seven structural
// fields are pointers so an outright-absent field can be told apart from a
// present-but-empty one: only absence is rejected.
type SaveResumeRequest struct {
	PersonalDetails *PersonalDetails `json:"personalDetails" validate:"required"`
	Education       *[]Education     `json:"education" validate:"required,omitempty,dive"`
	Experience      *[]Experience    `json:"experience" validate:"required,omitempty,dive"`
	Skills          *[]Skill         `json:"skills" validate:"required,omitempty,dive"`
	Projects        *[]Project       `json:"projects" validate:"required,omitempty,dive"`
	Certifications  *[]Certification `json:"certifications" validate:"required,omitempty,dive"`
	Template        *string          `json:"template" validate:"required"`
	Name            string           `json:"name" validate:"omitempty,max=200"`
}

// SaveResumeResponse represents a successful save.
type SaveResumeResponse struct {
	Message string  `json:"message"`
	Resume  *Resume `json:"resume"`
}

// CleanupResponse reports how many empty resumes were removed.
type CleanupResponse struct {
	Message      string `json:"message"`
	DeletedCount int64  `json:"deletedCount"`
}

// InspectResponse summarizes a resume's section array lengths, useful when
// verifying that sections survived a round-trip.
type InspectResponse struct {
	ResumeID            string `json:"resume_id"`
	EducationCount      int    `json:"education_count"`
	ExperienceCount     int    `json:"experience_count"`
	SkillsCount         int    `json:"skills_count"`
	ProjectsCount       int    `json:"projects_count"`
	CertificationsCount int    `json:"certifications_count"`
}

// Save overwrites the caller's resume or creates it when absent.
// Last write wins: there is no version check, and two racing saves resolve
// to whichever reaches the database last. The returned flag is true when a
// new document was created.
func (s *Service) Save(ctx context.Context, userID bson.ObjectID, req SaveResumeRequest) (*SaveResumeResponse, bool, error) {
	// The HTTP layer validates presence already; this guard keeps direct
	// callers from dereferencing an absent field.
	if req.PersonalDetails == nil || req.Education == nil || req.Experience == nil ||
		req.Skills == nil || req.Projects == nil || req.Certifications == nil ||
		req.Template == nil {
		return nil, false, ErrMissingSection
	}

	r := &Resume{
		UserID:          userID,
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

	if r.Name == "" {
		r.Name = defaultName(r.PersonalDetails)
	}

	scrub(r)
	ensureItemIDs(r)

	saved, created, err := s.repo.Upsert(ctx, userID, r)
	if err != nil {
		s.log.Error(ErrSaveResume.Error(), "error", err, "user_id", userID.Hex())
		return nil, false, ErrSaveResume
	}

	msg := "Resume updated successfully"
	if created {
		msg = "Resume saved successfully"
	}
	return &SaveResumeResponse{Message: msg, Resume: saved}, created, nil
}

// List returns all resumes owned by the caller.
func (s *Service) List(ctx context.Context, userID bson.ObjectID) ([]*Resume, error) {
	list, err := s.repo.List(ctx, userID)
	if err != nil {
		s.log.Error(ErrListResumes.Error(), "error", err, "user_id", userID.Hex())
		return nil, ErrListResumes
	}
	return list, nil
}

// Get returns one resume scoped to the caller.
func (s *Service) Get(ctx context.Context, userID, resumeID bson.ObjectID) (*Resume, error) {
	return s.repo.FindByID(ctx, userID, resumeID)
}

// Delete removes one resume scoped to the caller.
func (s *Service) Delete(ctx context.Context, userID, resumeID bson.ObjectID) error {
	if err := s.repo.Delete(ctx, userID, resumeID); err != nil {
		if errors.Is(err, ErrResumeNotFound) {
			return err
		}
		s.log.Error(ErrDeleteResume.Error(), "error", err, "user_id", userID.Hex(), "resume_id", resumeID.Hex())
		return ErrDeleteResume
	}
	return nil
}

// Cleanup bulk-deletes the caller's resumes whose five structural arrays are
// all empty.
func (s *Service) Cleanup(ctx context.Context, userID bson.ObjectID) (*CleanupResponse, error) {
	n, err := s.repo.DeleteEmpty(ctx, userID)
	if err != nil {
		s.log.Error(ErrCleanupResumes.Error(), "error", err, "user_id", userID.Hex())
		return nil, ErrCleanupResumes
	}
	return &CleanupResponse{Message: "Cleanup completed", DeletedCount: n}, nil
}

// Inspect reports section array lengths for the caller's resume.
func (s *Service) Inspect(ctx context.Context, userID, resumeID bson.ObjectID) (*InspectResponse, error) {
	r, err := s.repo.FindByID(ctx, userID, resumeID)
	if err != nil {
		return nil, err
	}
	return &InspectResponse{
		ResumeID:            r.ID.Hex(),
		EducationCount:      len(r.Education),
		ExperienceCount:     len(r.Experience),
		SkillsCount:         len(r.Skills),
		ProjectsCount:       len(r.Projects),
		CertificationsCount: len(r.Certifications),
	}, nil
}

func defaultName(pd PersonalDetails) string {
	if pd.FirstName != "" {
		return pd.FirstName + "'s Resume"
	}
	return "My Resume"
}

// scrub strips HTML from the free-text fields before persistence.
func scrub(r *Resume) {
	r.PersonalDetails.Summary = sanitize.Clean(r.PersonalDetails.Summary)
	for i := range r.Education {
		r.Education[i].Description = sanitize.Clean(r.Education[i].Description)
	}
	for i := range r.Experience {
		r.Experience[i].Description = sanitize.Clean(r.Experience[i].Description)
	}
	for i := range r.Projects {
		r.Projects[i].Description = sanitize.Clean(r.Projects[i].Description)
	}
}

// ensureItemIDs assigns a fresh ULID to every section item that arrived
// without an identifier, so clients can address items individually.
func ensureItemIDs(r *Resume) {
	for i := range r.Education {
		if r.Education[i].ID == "" {
			r.Education[i].ID = ulid.Make().String()
		}
	}
	for i := range r.Experience {
		if r.Experience[i].ID == "" {
			r.Experience[i].ID = ulid.Make().String()
		}
	}
	for i := range r.Skills {
		if r.Skills[i].ID == "" {
			r.Skills[i].ID = ulid.Make().String()
		}
	}
	for i := range r.Projects {
		if r.Projects[i].ID == "" {
			r.Projects[i].ID = ulid.Make().String()
		}
	}
	for i := range r.Certifications {
		if r.Certifications[i].ID == "" {
			r.Certifications[i].ID = ulid.Make().String()
		}
	}
}
