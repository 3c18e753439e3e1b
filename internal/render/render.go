// Package render turns a resume document into a standalone HTML page.
// Rendering is a pure mapping from (resume, section order, template id);
// the six built-in templates share content markup and differ in chrome.
package render

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"strings"

	"resume-forge/internal/sections"
	"resume-forge/internal/services/resumes"
)

//go:embed templates/*.html
var templateFS embed.FS

// ErrUnknownTemplate is returned for template ids outside the built-in set.
var ErrUnknownTemplate = errors.New("unknown template")

// TemplateIDs lists the built-in templates.
var TemplateIDs = []string{"minimal", "modern", "classic", "executive", "creative", "tech"}

// DefaultTemplate is used when a resume carries no template id.
const DefaultTemplate = "minimal"

// Renderer holds the parsed built-in templates.
type Renderer struct {
	templates map[string]*template.Template
}

// Section is one ordered block handed to a template.
type Section struct {
	Type  sections.Type
	Title string
}

// Data is the root object every template executes against.
type Data struct {
	Resume   *resumes.Resume
	Personal resumes.PersonalDetails
	Sections []Section

	// Avatar carries the profile image URL past the template URL filter,
	// which would otherwise reject data: URIs. Only data:image/ and
	// http(s) sources survive; anything else renders no image.
	Avatar template.URL
}

// New parses all built-in templates.
func New() (*Renderer, error) {
	funcs := template.FuncMap{
		"dots":      skillDots,
		"daterange": dateRange,
	}
	r := &Renderer{templates: make(map[string]*template.Template, len(TemplateIDs))}
	for _, id := range TemplateIDs {
		tmpl, err := template.New(id + ".html").Funcs(funcs).ParseFS(templateFS, "templates/"+id+".html")
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", id, err)
		}
		r.templates[id] = tmpl
	}
	return r, nil
}

// skillDots renders a 1-5 proficiency level as filled and hollow dots.
func skillDots(level int) string {
	if level <= 0 {
		return ""
	}
	if level > 5 {
		level = 5
	}
	return strings.Repeat("●", level) + strings.Repeat("○", 5-level)
}

// dateRange joins a start and end date; a missing end reads as "Present"
// when current is set, otherwise the start stands alone.
func dateRange(start, end string, current bool) string {
	switch {
	case start == "" && end == "":
		return ""
	case current || end == "":
		if current {
			return start + " – Present"
		}
		return start
	case start == "":
		return end
	default:
		return start + " – " + end
	}
}

// Known reports whether id names a built-in template.
func (r *Renderer) Known(id string) bool {
	_, ok := r.templates[id]
	return ok
}

// Render produces the HTML page for one resume. Sections absent from order
// are not rendered; an empty order falls back to the default order.
func (r *Renderer) Render(resume *resumes.Resume, order []sections.Type, templateID string) (string, error) {
	if templateID == "" {
		templateID = DefaultTemplate
	}
	tmpl, ok := r.templates[templateID]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownTemplate, templateID)
	}

	if len(order) == 0 {
		order = sections.DefaultOrder()
	}
	if err := sections.Validate(order); err != nil {
		return "", err
	}

	data := Data{
		Resume:   resume,
		Personal: resume.PersonalDetails,
		Sections: buildSections(resume, order),
		Avatar:   safeImageURL(resume.PersonalDetails.ProfileImage),
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render template %s: %w", templateID, err)
	}
	return buf.String(), nil
}

func safeImageURL(src string) template.URL {
	if strings.HasPrefix(src, "data:image/") ||
		strings.HasPrefix(src, "https://") ||
		strings.HasPrefix(src, "http://") {
		return template.URL(src)
	}
	return ""
}

// buildSections keeps only the ordered sections that have content to show.
// personalInfo renders in the page header regardless, so it is skipped here.
func buildSections(resume *resumes.Resume, order []sections.Type) []Section {
	out := make([]Section, 0, len(order))
	for _, t := range order {
		switch t {
		case sections.PersonalInfo:
			continue
		case sections.Summary:
			if resume.PersonalDetails.Summary == "" {
				continue
			}
		case sections.Experience:
			if len(resume.Experience) == 0 {
				continue
			}
		case sections.Education:
			if len(resume.Education) == 0 {
				continue
			}
		case sections.Skills:
			if len(resume.Skills) == 0 {
				continue
			}
		case sections.Projects:
			if len(resume.Projects) == 0 {
				continue
			}
		case sections.Certifications:
			if len(resume.Certifications) == 0 {
				continue
			}
		}
		out = append(out, Section{Type: t, Title: sections.DisplayName[t]})
	}
	return out
}
