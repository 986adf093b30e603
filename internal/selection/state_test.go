package selection

import (
	"errors"
	"testing"

	"linite/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCatalog() *models.Catalog {
	return &models.Catalog{
		Categories: []*models.Category{
			{Name: "Dev", Apps: []*models.AppEntry{
				{ID: "git", Name: "Git", Type: models.InstallerApt},
				{ID: "vim", Name: "Vim", Type: models.InstallerApt},
			}},
			{Name: "Media", Apps: []*models.AppEntry{
				{ID: "org.videolan.VLC", Name: "VLC", Type: models.InstallerFlatpak},
			}},
		},
	}
}

func ids(apps []*models.AppEntry) []string {
	out := []string{}
	for _, a := range apps {
		out = append(out, a.ID)
	}
	return out
}

func TestToggle(t *testing.T) {
	s := New(testCatalog())

	require.NoError(t, s.Toggle("vim", true))
	assert.True(t, s.IsChecked("vim"))
	assert.False(t, s.IsChecked("git"))
	assert.Equal(t, 1, s.Count())

	require.NoError(t, s.Toggle("vim", false))
	assert.False(t, s.IsChecked("vim"))
	assert.Equal(t, 0, s.Count())
}

func TestToggle_UnknownApp(t *testing.T) {
	s := New(testCatalog())

	err := s.Toggle("emacs", true)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownApp))
	assert.Equal(t, 0, s.Count())
}

func TestToggle_IdempotentDoesNotNotify(t *testing.T) {
	s := New(testCatalog())
	var changes []Change
	s.Subscribe(func(c Change) { changes = append(changes, c) })

	require.NoError(t, s.Toggle("git", true))
	require.NoError(t, s.Toggle("git", true))
	require.NoError(t, s.Toggle("vim", false))

	require.Len(t, changes, 1)
	assert.Equal(t, []string{"git"}, changes[0].Added)
	assert.Equal(t, 1, changes[0].Total)
}

func TestFlip(t *testing.T) {
	s := New(testCatalog())

	require.NoError(t, s.Flip("git"))
	assert.True(t, s.IsChecked("git"))
	require.NoError(t, s.Flip("git"))
	assert.False(t, s.IsChecked("git"))
	assert.Error(t, s.Flip("nope"))
}

func TestToggleAll(t *testing.T) {
	cat := testCatalog()
	s := New(cat)

	s.ToggleAll(true)
	assert.Equal(t, ids(cat.Apps()), ids(s.CurrentSelections()))

	s.ToggleAll(false)
	assert.Empty(t, s.CurrentSelections())
	assert.Equal(t, 0, s.Count())
}

func TestToggleAll_NotifiesOnlyChanges(t *testing.T) {
	s := New(testCatalog())
	require.NoError(t, s.Toggle("vim", true))

	var changes []Change
	s.Subscribe(func(c Change) { changes = append(changes, c) })

	s.ToggleAll(true)
	s.ToggleAll(true)

	require.Len(t, changes, 1)
	assert.Equal(t, []string{"git", "org.videolan.VLC"}, changes[0].Added)
	assert.Equal(t, 3, changes[0].Total)
}

func TestCurrentSelections_CatalogOrder(t *testing.T) {
	s := New(testCatalog())
	require.NoError(t, s.Toggle("org.videolan.VLC", true))
	require.NoError(t, s.Toggle("git", true))

	assert.Equal(t, []string{"git", "org.videolan.VLC"}, ids(s.CurrentSelections()))
}

func TestSubscribe_Unsubscribe(t *testing.T) {
	s := New(testCatalog())
	var order []string

	unsubA := s.Subscribe(func(Change) { order = append(order, "a") })
	s.Subscribe(func(Change) { order = append(order, "b") })

	require.NoError(t, s.Toggle("git", true))
	assert.Equal(t, []string{"a", "b"}, order)

	unsubA()
	order = nil
	require.NoError(t, s.Toggle("git", false))
	assert.Equal(t, []string{"b"}, order)
}

func TestSnapshotRestore(t *testing.T) {
	s := New(testCatalog())
	require.NoError(t, s.Toggle("git", true))

	snap := s.Snapshot()
	s.ToggleAll(true)
	assert.Equal(t, 3, s.Count())

	s.Restore(snap)
	assert.Equal(t, []string{"git"}, ids(s.CurrentSelections()))

	s.Restore(map[string]bool{"unknown": true})
	assert.Equal(t, 0, s.Count())
}
