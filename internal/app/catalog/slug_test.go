package catalog

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Deep Clean & Shine!", "deep-clean-shine"},
		{"  Move-Out   Cleaning  ", "move-out-cleaning"},
		{"Café Crème Brûlée", "cafe-creme-brulee"},
		{"Limpieza de Baños", "limpieza-de-banos"},
		{"24/7 Emergency", "24-7-emergency"},
		{"---", ""},
		{"Уборка", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Slugify(tt.in), "input %q", tt.in)
	}
}

func TestSlugify_MaxLength(t *testing.T) {
	slug := Slugify(strings.Repeat("spotless ", 20))
	assert.LessOrEqual(t, len(slug), 80)
	assert.False(t, strings.HasSuffix(slug, "-"))
}

func TestAssignID(t *testing.T) {
	now := time.UnixMilli(1700000000000)

	assert.Equal(t, "deep-clean", AssignID("Deep Clean", IDSet(nil), now))
	assert.Equal(t, "deep-clean-1", AssignID("Deep Clean", IDSet([]string{"deep-clean"}), now))
	assert.Equal(t, "deep-clean-3", AssignID("Deep Clean", IDSet([]string{"deep-clean", "deep-clean-1", "deep-clean-2"}), now))
	assert.Equal(t, "1700000000000", AssignID("!!!", IDSet(nil), now))
}

func TestAssignID_SuffixKeepsMaxLength(t *testing.T) {
	name := strings.Repeat("a", 100)
	base := Slugify(name)

	id := AssignID(name, IDSet([]string{base}), time.Now())
	assert.Len(t, id, 80)
	assert.True(t, strings.HasSuffix(id, "-1"))
}
