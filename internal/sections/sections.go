// Package sections models the user-controlled order in which resume content
// blocks are rendered, and the ATS-compatibility rule a reorder must satisfy.
package sections

import "errors"

// Type identifies one resume content block.
type Type string

const (
	PersonalInfo   Type = "personalInfo"
	Summary        Type = "summary"
	Experience     Type = "experience"
	Education      Type = "education"
	Skills         Type = "skills"
	Projects       Type = "projects"
	Certifications Type = "certifications"
)

// DisplayName maps a section type to its human-readable name.
var DisplayName = map[Type]string{
	PersonalInfo:   "Personal Information",
	Summary:        "Professional Summary",
	Experience:     "Work Experience",
	Education:      "Education",
	Skills:         "Skills",
	Projects:       "Projects",
	Certifications: "Certifications",
}

// atsRequired are the sections automated resume scanners expect to find.
var atsRequired = []Type{PersonalInfo, Experience, Education, Skills}

// ErrUnknownSection is returned when an order contains an unrecognised tag.
var ErrUnknownSection = errors.New("unknown section type")

// ErrBadIndex is returned when a move refers to a position outside the order.
var ErrBadIndex = errors.New("section index out of range")

// DefaultOrder returns the canonical order used for new resumes.
func DefaultOrder() []Type {
	return []Type{PersonalInfo, Summary, Experience, Education, Skills, Projects, Certifications}
}

// Known reports whether t is a recognised section type.
func Known(t Type) bool {
	_, ok := DisplayName[t]
	return ok
}

// Validate checks that every entry of the order is a recognised section.
func Validate(order []Type) error {
	for _, t := range order {
		if !Known(t) {
			return ErrUnknownSection
		}
	}
	return nil
}

// IsATSCompatible reports whether all required sections are present in the
// candidate order. Membership only; position does not matter.
func IsATSCompatible(order []Type) bool {
	for _, req := range atsRequired {
		if !contains(order, req) {
			return false
		}
	}
	return true
}

// Required reports whether t is one of the ATS-required sections.
func Required(t Type) bool {
	return contains(atsRequired, t)
}

// Move returns a copy of order with the element at from re-inserted at to,
// mirroring a drag-and-drop reorder.
func Move(order []Type, from, to int) ([]Type, error) {
	if from < 0 || from >= len(order) || to < 0 || to >= len(order) {
		return nil, ErrBadIndex
	}
	out := make([]Type, 0, len(order))
	out = append(out, order[:from]...)
	out = append(out, order[from+1:]...)
	out = append(out[:to], append([]Type{order[from]}, out[to:]...)...)
	return out, nil
}

func contains(ts []Type, t Type) bool {
	for _, x := range ts {
		if x == t {
			return true
		}
	}
	return false
}
