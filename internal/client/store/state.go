// Package store is the client-side resume editor state. State is an explicit
// value passed through pure reducers; nothing in here touches globals. The
// Store wraps one State with a debounced saver so bursts of edits coalesce
// into a single API save.
package store

import (
	"time"

	"resume-forge/internal/sections"
	"resume-forge/internal/services/resumes"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
)

// CustomTemplate is a user-saved bundle of a base template plus a section
// order. Lives only on the client.
type CustomTemplate struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	BaseTemplate string          `json:"baseTemplate"`
	SectionOrder []sections.Type `json:"sectionOrder"`
	CreatedAt    time.Time       `json:"createdAt"`
	UpdatedAt    time.Time       `json:"updatedAt"`
}

// Summary is one row in the resume list.
type Summary struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Template     string    `json:"template"`
	LastModified time.Time `json:"lastModified"`
}

// State is the complete editor state. Reducers take a State by value and
// return a new one; shared slices are copied before mutation so an old State
// stays valid after the new one is produced.
type State struct {
	Summaries       []Summary
	CurrentID       string
	Current         *resumes.Resume
	TemplateID      string
	SectionOrder    []sections.Type
	CustomTemplates []CustomTemplate
}

// NewState returns an empty logged-out state with the default section order.
func NewState() State {
	return State{
		TemplateID:   "minimal",
		SectionOrder: sections.DefaultOrder(),
	}
}

// Reducer is a pure state transition.
type Reducer func(State) State

func cloneResume(r *resumes.Resume) *resumes.Resume {
	if r == nil {
		return nil
	}
	c := *r
	c.Education = append([]resumes.Education(nil), r.Education...)
	c.Experience = append([]resumes.Experience(nil), r.Experience...)
	c.Skills = append([]resumes.Skill(nil), r.Skills...)
	c.Projects = append([]resumes.Project(nil), r.Projects...)
	c.Certifications = append([]resumes.Certification(nil), r.Certifications...)
	return &c
}

// touch mirrors the edit into the summary row with the matching id and bumps
// the modification time.
func touch(s State) State {
	if s.Current == nil {
		return s
	}
	now := time.Now()
	s.Current.LastModified = now

	rows := append([]Summary(nil), s.Summaries...)
	for i := range rows {
		if rows[i].ID == s.CurrentID {
			rows[i].Name = s.Current.Name
			rows[i].Template = s.Current.Template
			rows[i].LastModified = now
		}
	}
	s.Summaries = rows
	return s
}

// edit clones the current resume, applies fn to the clone, and mirrors the
// change into the summary list. A no-op when nothing is being edited.
func edit(fn func(*resumes.Resume)) Reducer {
	return func(s State) State {
		if s.Current == nil {
			return s
		}
		s.Current = cloneResume(s.Current)
		fn(s.Current)
		return touch(s)
	}
}

// SetPersonalDetails replaces the contact block.
func SetPersonalDetails(d resumes.PersonalDetails) Reducer {
	return edit(func(r *resumes.Resume) { r.PersonalDetails = d })
}

// SetName renames the current resume.
func SetName(name string) Reducer {
	return edit(func(r *resumes.Resume) { r.Name = name })
}

// SetTemplate switches the active template for both the editor and the
// current resume.
func SetTemplate(id string) Reducer {
	return func(s State) State {
		s.TemplateID = id
		return edit(func(r *resumes.Resume) { r.Template = id })(s)
	}
}

// SetSectionOrder replaces the section order. Callers are expected to have
// run the order through a sections.Reorderer first so ATS staging applies.
func SetSectionOrder(order []sections.Type) Reducer {
	return func(s State) State {
		s.SectionOrder = append([]sections.Type(nil), order...)
		return s
	}
}

// AddEducation appends an education entry, assigning an id when absent.
func AddEducation(e resumes.Education) Reducer {
	if e.ID == "" {
		e.ID = ulid.Make().String()
	}
	return edit(func(r *resumes.Resume) { r.Education = append(r.Education, e) })
}

// UpdateEducation replaces the entry with a matching id.
func UpdateEducation(e resumes.Education) Reducer {
	return edit(func(r *resumes.Resume) {
		for i := range r.Education {
			if r.Education[i].ID == e.ID {
				r.Education[i] = e
			}
		}
	})
}

// RemoveEducation drops the entry with the given id.
func RemoveEducation(id string) Reducer {
	return edit(func(r *resumes.Resume) {
		out := r.Education[:0:0]
		for _, e := range r.Education {
			if e.ID != id {
				out = append(out, e)
			}
		}
		r.Education = out
	})
}

// AddExperience appends a work-experience entry.
func AddExperience(e resumes.Experience) Reducer {
	if e.ID == "" {
		e.ID = ulid.Make().String()
	}
	return edit(func(r *resumes.Resume) { r.Experience = append(r.Experience, e) })
}

// UpdateExperience replaces the entry with a matching id.
func UpdateExperience(e resumes.Experience) Reducer {
	return edit(func(r *resumes.Resume) {
		for i := range r.Experience {
			if r.Experience[i].ID == e.ID {
				r.Experience[i] = e
			}
		}
	})
}

// RemoveExperience drops the entry with the given id.
func RemoveExperience(id string) Reducer {
	return edit(func(r *resumes.Resume) {
		out := r.Experience[:0:0]
		for _, e := range r.Experience {
			if e.ID != id {
				out = append(out, e)
			}
		}
		r.Experience = out
	})
}

// AddSkill appends a skill.
func AddSkill(sk resumes.Skill) Reducer {
	if sk.ID == "" {
		sk.ID = ulid.Make().String()
	}
	return edit(func(r *resumes.Resume) { r.Skills = append(r.Skills, sk) })
}

// UpdateSkill replaces the skill with a matching id.
func UpdateSkill(sk resumes.Skill) Reducer {
	return edit(func(r *resumes.Resume) {
		for i := range r.Skills {
			if r.Skills[i].ID == sk.ID {
				r.Skills[i] = sk
			}
		}
	})
}

// RemoveSkill drops the skill with the given id.
func RemoveSkill(id string) Reducer {
	return edit(func(r *resumes.Resume) {
		out := r.Skills[:0:0]
		for _, sk := range r.Skills {
			if sk.ID != id {
				out = append(out, sk)
			}
		}
		r.Skills = out
	})
}

// AddProject appends a project entry.
func AddProject(p resumes.Project) Reducer {
	if p.ID == "" {
		p.ID = ulid.Make().String()
	}
	return edit(func(r *resumes.Resume) { r.Projects = append(r.Projects, p) })
}

// UpdateProject replaces the project with a matching id.
func UpdateProject(p resumes.Project) Reducer {
	return edit(func(r *resumes.Resume) {
		for i := range r.Projects {
			if r.Projects[i].ID == p.ID {
				r.Projects[i] = p
			}
		}
	})
}

// RemoveProject drops the project with the given id.
func RemoveProject(id string) Reducer {
	return edit(func(r *resumes.Resume) {
		out := r.Projects[:0:0]
		for _, p := range r.Projects {
			if p.ID != id {
				out = append(out, p)
			}
		}
		r.Projects = out
	})
}

// AddCertification appends a certification entry.
func AddCertification(ct resumes.Certification) Reducer {
	if ct.ID == "" {
		ct.ID = ulid.Make().String()
	}
	return edit(func(r *resumes.Resume) { r.Certifications = append(r.Certifications, ct) })
}

// UpdateCertification replaces the certification with a matching id.
func UpdateCertification(ct resumes.Certification) Reducer {
	return edit(func(r *resumes.Resume) {
		for i := range r.Certifications {
			if r.Certifications[i].ID == ct.ID {
				r.Certifications[i] = ct
			}
		}
	})
}

// RemoveCertification drops the certification with the given id.
func RemoveCertification(id string) Reducer {
	return edit(func(r *resumes.Resume) {
		out := r.Certifications[:0:0]
		for _, ct := range r.Certifications {
			if ct.ID != id {
				out = append(out, ct)
			}
		}
		r.Certifications = out
	})
}

// SaveCustomTemplate stores a named base-template-plus-order bundle.
func SaveCustomTemplate(name, baseTemplate string, order []sections.Type) Reducer {
	return func(s State) State {
		now := time.Now()
		tpl := CustomTemplate{
			ID:           uuid.NewString(),
			Name:         name,
			BaseTemplate: baseTemplate,
			SectionOrder: append([]sections.Type(nil), order...),
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		s.CustomTemplates = append(append([]CustomTemplate(nil), s.CustomTemplates...), tpl)
		return s
	}
}

// RemoveCustomTemplate drops the custom template with the given id.
func RemoveCustomTemplate(id string) Reducer {
	return func(s State) State {
		out := s.CustomTemplates[:0:0]
		for _, tpl := range s.CustomTemplates {
			if tpl.ID != id {
				out = append(out, tpl)
			}
		}
		s.CustomTemplates = out
		return s
	}
}

// ApplyCustomTemplate activates a stored bundle: base template and order.
func ApplyCustomTemplate(id string) Reducer {
	return func(s State) State {
		for _, tpl := range s.CustomTemplates {
			if tpl.ID == id {
				s = SetSectionOrder(tpl.SectionOrder)(s)
				s = SetTemplate(tpl.BaseTemplate)(s)
				return s
			}
		}
		return s
	}
}

// LoadResumes replaces the list and selection from a server fetch. The first
// resume becomes current; an empty fetch yields a blank editable resume.
func LoadResumes(list []*resumes.Resume) Reducer {
	return func(s State) State {
		rows := make([]Summary, 0, len(list))
		for _, r := range list {
			rows = append(rows, Summary{
				ID:           r.ID.Hex(),
				Name:         r.Name,
				Template:     r.Template,
				LastModified: r.LastModified,
			})
		}
		s.Summaries = rows

		if len(list) == 0 {
			s.CurrentID = ""
			s.Current = blankResume()
			return s
		}

		s.CurrentID = list[0].ID.Hex()
		s.Current = cloneResume(list[0])
		if list[0].Template != "" {
			s.TemplateID = list[0].Template
		}
		return s
	}
}

// Clear wipes all resume state, keeping only custom templates. Runs on
// logout and on auth loss.
func Clear() Reducer {
	return func(s State) State {
		next := NewState()
		next.CustomTemplates = s.CustomTemplates
		return next
	}
}

func blankResume() *resumes.Resume {
	return &resumes.Resume{
		Education:      []resumes.Education{},
		Experience:     []resumes.Experience{},
		Skills:         []resumes.Skill{},
		Projects:       []resumes.Project{},
		Certifications: []resumes.Certification{},
		Template:       "minimal",
		Name:           "My Resume",
	}
}
