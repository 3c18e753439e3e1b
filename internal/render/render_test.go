package render

import (
	"strings"
	"testing"

	"resume-forge/internal/sections"
	"resume-forge/internal/services/resumes"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleResume() *resumes.Resume {
	return &resumes.Resume{
		PersonalDetails: resumes.PersonalDetails{
			FirstName: "Jo",
			LastName:  "Doe",
			Title:     "Backend Engineer",
			Email:     "jo@example.com",
			Phone:     "+1 555 0100",
			City:      "Berlin",
			Summary:   "Builds boring, reliable systems.",
		},
		Experience: []resumes.Experience{
			{ID: "e1", Company: "Acme GmbH", Position: "Senior Engineer", StartDate: "2021-01", Current: true, Description: "Owns the payments platform."},
		},
		Education: []resumes.Education{
			{ID: "d1", Institution: "TU Berlin", Degree: "B.Sc.", Field: "Computer Science", StartDate: "2016-10", EndDate: "2020-09"},
		},
		Skills: []resumes.Skill{
			{ID: "s1", Name: "Go", Level: 5},
			{ID: "s2", Name: "MongoDB", Level: 3},
		},
		Projects: []resumes.Project{
			{ID: "p1", Name: "resume-forge", Link: "https://example.com/rf"},
		},
		Certifications: []resumes.Certification{
			{ID: "c1", Name: "CKA", Issuer: "CNCF", Date: "2023-04"},
		},
		Template: "minimal",
		Name:     "Jo's Resume",
	}
}

func TestNewParsesAllTemplates(t *testing.T) {
	r, err := New()
	require.NoError(t, err)
	for _, id := range TemplateIDs {
		assert.True(t, r.Known(id), id)
	}
	assert.False(t, r.Known("brutalist"))
}

func TestRenderAllTemplates(t *testing.T) {
	r, err := New()
	require.NoError(t, err)
	resume := sampleResume()

	for _, id := range TemplateIDs {
		t.Run(id, func(t *testing.T) {
			html, err := r.Render(resume, nil, id)
			require.NoError(t, err)
			assert.Contains(t, html, "Jo")
			assert.Contains(t, html, "Doe")
			assert.Contains(t, html, "Acme GmbH")
			assert.Contains(t, html, "TU Berlin")
			assert.Contains(t, html, "Go")
			assert.Contains(t, html, "CKA")
			assert.True(t, strings.HasPrefix(strings.TrimSpace(html), "<!DOCTYPE html>"))
		})
	}
}

func TestRenderUnknownTemplate(t *testing.T) {
	r, err := New()
	require.NoError(t, err)

	_, err = r.Render(sampleResume(), nil, "parchment")
	assert.ErrorIs(t, err, ErrUnknownTemplate)
}

func TestRenderEmptyTemplateFallsBack(t *testing.T) {
	r, err := New()
	require.NoError(t, err)

	html, err := r.Render(sampleResume(), nil, "")
	require.NoError(t, err)
	assert.Contains(t, html, "Jo")
}

func TestRenderHonorsSectionOrder(t *testing.T) {
	r, err := New()
	require.NoError(t, err)
	resume := sampleResume()

	order := []sections.Type{sections.PersonalInfo, sections.Skills, sections.Experience}
	html, err := r.Render(resume, order, "minimal")
	require.NoError(t, err)

	skillsAt := strings.Index(html, "Skills")
	expAt := strings.Index(html, "Work Experience")
	require.Greater(t, skillsAt, 0)
	require.Greater(t, expAt, 0)
	assert.Less(t, skillsAt, expAt, "skills should render before experience")

	// education was left out of the order
	assert.NotContains(t, html, "TU Berlin")
}

func TestRenderRejectsUnknownSection(t *testing.T) {
	r, err := New()
	require.NoError(t, err)

	_, err = r.Render(sampleResume(), []sections.Type{"hobbies"}, "minimal")
	assert.ErrorIs(t, err, sections.ErrUnknownSection)
}

func TestRenderSkipsEmptySections(t *testing.T) {
	r, err := New()
	require.NoError(t, err)

	resume := sampleResume()
	resume.Projects = nil
	resume.PersonalDetails.Summary = ""

	html, err := r.Render(resume, nil, "minimal")
	require.NoError(t, err)
	assert.NotContains(t, html, "Projects")
	assert.NotContains(t, html, "Professional Summary")
}

func TestRenderEscapesUserText(t *testing.T) {
	r, err := New()
	require.NoError(t, err)

	resume := sampleResume()
	resume.PersonalDetails.Summary = `<script>alert("x")</script>`

	html, err := r.Render(resume, nil, "minimal")
	require.NoError(t, err)
	assert.NotContains(t, html, "<script>alert")
}

func TestSkillDots(t *testing.T) {
	assert.Equal(t, "", skillDots(0))
	assert.Equal(t, "●○○○○", skillDots(1))
	assert.Equal(t, "●●●●●", skillDots(5))
	assert.Equal(t, "●●●●●", skillDots(9))
}

func TestDateRange(t *testing.T) {
	assert.Equal(t, "", dateRange("", "", false))
	assert.Equal(t, "2021-01 – Present", dateRange("2021-01", "", true))
	assert.Equal(t, "2021-01", dateRange("2021-01", "", false))
	assert.Equal(t, "2016-10 – 2020-09", dateRange("2016-10", "2020-09", false))
	assert.Equal(t, "2020-09", dateRange("", "2020-09", false))
}