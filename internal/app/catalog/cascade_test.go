package catalog

import (
	"testing"

	"shiningstar/internal/app/ds"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRemoveServiceFromPackages(t *testing.T) {
	packages := []ds.Package{
		{ID: "move-in", Services: []string{"deep-cleaning", "window-cleaning"}},
		{ID: "spring", Services: []string{"window-cleaning"}},
		{ID: "office", Services: []string{"deep-cleaning", "carpet-cleaning"}},
	}

	changed := RemoveServiceFromPackages(packages, "deep-cleaning")
	require.Len(t, changed, 2)
	assert.Equal(t, "move-in", changed[0].ID)
	assert.Equal(t, []string{"window-cleaning"}, changed[0].Services)
	assert.Equal(t, "office", changed[1].ID)
	assert.Equal(t, []string{"carpet-cleaning"}, changed[1].Services)

	// inputs are untouched
	assert.Equal(t, []string{"deep-cleaning", "window-cleaning"}, packages[0].Services)
}

func TestRemoveServiceFromPackages_NoReferences(t *testing.T) {
	packages := []ds.Package{{ID: "spring", Services: []string{"window-cleaning"}}}
	assert.Empty(t, RemoveServiceFromPackages(packages, "deep-cleaning"))
}
