package resumes

import "errors"

// ErrResumeNotFound - resume not found or not owned by the caller.
var ErrResumeNotFound = errors.New("resume not found")

// ErrMissingSection is returned when a save omits one of the seven structural
// fields outright. Empty arrays are valid and pass.
var ErrMissingSection = errors.New("missing required fields")

// ErrSaveResume is returned when the upsert fails.
var ErrSaveResume = errors.New("failed to save resume")

// ErrListResumes is returned when listing fails.
var ErrListResumes = errors.New("failed to list resumes")

// ErrDeleteResume is returned when deletion fails.
var ErrDeleteResume = errors.New("failed to delete resume")

// ErrCleanupResumes is returned when the empty-resume cleanup fails.
var ErrCleanupResumes = errors.New("failed to clean up resumes")

// ErrCreateResumesRepo is returned when resumes repository creation fails.
var ErrCreateResumesRepo = errors.New("failed to create resumes repository")
