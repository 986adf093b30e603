package install

import (
	"testing"

	"linite/internal/models"

	"github.com/stretchr/testify/assert"
)

func entries() []*models.AppEntry {
	return []*models.AppEntry{
		{ID: "git", Type: models.InstallerApt},
		{ID: "org.x.Y", Type: models.InstallerFlatpak},
		{ID: "vim", Type: models.InstallerApt},
		{ID: "com.spotify.Client", Type: models.InstallerFlatpak},
	}
}

func TestBuild_Partitions(t *testing.T) {
	req := Build(entries())

	assert.Equal(t, []string{"git", "vim"}, req.AptIDs)
	assert.Equal(t, []string{"org.x.Y", "com.spotify.Client"}, req.FlatpakIDs)
	assert.False(t, req.Empty())
	assert.Equal(t, 4, req.Len())
}

func TestBuild_NoLossNoDuplication(t *testing.T) {
	all := entries()

	// every subset of the four entries
	for mask := 0; mask < 1<<len(all); mask++ {
		var subset []*models.AppEntry
		want := map[string]bool{}
		for i, app := range all {
			if mask&(1<<i) != 0 {
				subset = append(subset, app)
				want[app.ID] = true
			}
		}

		req := Build(subset)
		got := map[string]bool{}
		for _, id := range req.AptIDs {
			assert.False(t, got[id], "duplicate %s", id)
			got[id] = true
		}
		for _, id := range req.FlatpakIDs {
			assert.False(t, got[id], "%s in both lists", id)
			got[id] = true
		}
		assert.Equal(t, want, got)
		assert.Equal(t, len(subset) == 0, req.Empty())
	}
}

func TestBuild_Empty(t *testing.T) {
	req := Build(nil)

	assert.True(t, req.Empty())
	assert.Empty(t, req.AptIDs)
	assert.Empty(t, req.FlatpakIDs)
	assert.Equal(t, 0, req.Len())
}
