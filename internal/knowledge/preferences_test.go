package knowledge

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPreferenceFor(t *testing.T) {
	tag, ok := PreferenceFor("聪明智慧")
	require.True(t, ok)
	assert.Equal(t, "水", tag.Element)
	assert.Contains(t, tag.Keywords, "思")

	_, ok = PreferenceFor("不存在的偏好")
	assert.False(t, ok)
}

func TestElementsForPreferences(t *testing.T) {
	tests := []struct {
		name string
		in   []string
		want []string
	}{
		{
			name: "duplicate elements collapse",
			in:   []string{"聪明智慧", "文雅诗意"},
			want: []string{"水"},
		},
		{
			name: "distinct elements keep request order",
			in:   []string{"事业成功", "品德高尚"},
			want: []string{"金", "木"},
		},
		{
			name: "unknown tags fall back to the default set",
			in:   []string{"没有这个"},
			want: []string{"金", "水", "木"},
		},
		{
			name: "empty falls back to the default set",
			in:   nil,
			want: []string{"金", "水", "木"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ElementsForPreferences(tt.in))
		})
	}
}
