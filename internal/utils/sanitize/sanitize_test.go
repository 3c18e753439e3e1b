package sanitize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain text untouched", "Senior Go engineer", "Senior Go engineer"},
		{"script stripped", "<script>alert('x')</script>Built APIs", "Built APIs"},
		{"tags stripped with spacing", "<p>Led <b>teams</b></p>", "Led teams "},
		{"markdown preserved", "**shipped** v2", "**shipped** v2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Sanitize(tt.input))
		})
	}
}

func TestClean(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"trims and strips", "  <p>Hello</p>  ", "Hello"},
		{"collapses spaces", "<b>a</b>   <b>b</b>", "a b"},
		{"preserves newlines", "line one\nline  two", "line one\nline two"},
		{"non-breaking space", "a b", "a b"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Clean(tt.input))
		})
	}
}
