package name

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGradeFor(t *testing.T) {
	tests := []struct {
		total int
		grade string
	}{
		{95, "S"},
		{90, "S"},
		{89, "A"},
		{80, "A"},
		{79, "B"},
		{70, "B"},
		{69, "C"},
		{60, "C"},
		{59, "D"},
		{0, "D"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.grade, GradeFor(tt.total), "total %d", tt.total)
	}
}

func TestExpandSources(t *testing.T) {
	tests := []struct {
		name string
		in   []Source
		want []Source
	}{
		{
			name: "custom expands to all concrete sources",
			in:   []Source{SourceCustom},
			want: []Source{SourcePoetry, SourceWuxing, SourceAI},
		},
		{
			name: "duplicates collapse",
			in:   []Source{SourceWuxing, SourceWuxing, SourcePoetry},
			want: []Source{SourceWuxing, SourcePoetry},
		},
		{
			name: "custom does not duplicate an already selected source",
			in:   []Source{SourceAI, SourceCustom},
			want: []Source{SourceAI, SourcePoetry, SourceWuxing},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExpandSources(tt.in))
		})
	}
}
