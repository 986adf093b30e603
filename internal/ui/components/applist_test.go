package components

import (
	"strings"
	"testing"
	"unicode/utf8"

	"linite/internal/models"
	"linite/internal/selection"
)

func testCatalog() *models.Catalog {
	return &models.Catalog{
		Categories: []*models.Category{
			{Name: "Browsers", Apps: []*models.AppEntry{
				{ID: "firefox", Name: "Firefox", Description: "Web browser", Type: models.InstallerApt, Category: "Browsers"},
				{ID: "com.google.Chrome", Name: "Chrome", Type: models.InstallerFlatpak, Category: "Browsers"},
			}},
			{Name: "Empty"},
			{Name: "Dev", Apps: []*models.AppEntry{
				{ID: "git", Name: "Git", Type: models.InstallerApt, Category: "Dev"},
				{ID: "vim", Name: "Vim", Type: models.InstallerApt, Category: "Dev"},
				{ID: "code", Name: "Code", Type: models.InstallerApt, Category: "Dev"},
			}},
		},
	}
}

func newTestList() (*AppList, *selection.State) {
	cat := testCatalog()
	sel := selection.New(cat)
	return NewAppList(cat, sel), sel
}

func TestNewAppList(t *testing.T) {
	list, _ := newTestList()

	if list == nil {
		t.Fatal("NewAppList should return an AppList")
	}
	if len(list.items) != 5 {
		t.Errorf("Expected 5 items, got %d", len(list.items))
	}
	if list.Cursor != 0 {
		t.Errorf("Expected cursor at 0, got %d", list.Cursor)
	}
	if !list.Focused {
		t.Error("Expected Focused to be true")
	}
	if list.Title == "" {
		t.Error("Expected Title to be set")
	}
}

func TestAppList_MoveUpDown(t *testing.T) {
	list, _ := newTestList()

	list.MoveUp()
	if list.Cursor != 0 {
		t.Errorf("Cursor should stay at 0, got %d", list.Cursor)
	}

	for i := 0; i < 10; i++ {
		list.MoveDown()
	}
	if list.Cursor != 4 {
		t.Errorf("Cursor should stop at last item, got %d", list.Cursor)
	}

	list.MoveUp()
	if list.Cursor != 3 {
		t.Errorf("Expected cursor at 3, got %d", list.Cursor)
	}
}

func TestAppList_PageAndEnds(t *testing.T) {
	list, _ := newTestList()
	list.Height = 5 // page size 2

	list.PageDown()
	if list.Cursor != 2 {
		t.Errorf("Expected cursor at 2 after PageDown, got %d", list.Cursor)
	}
	list.PageDown()
	list.PageDown()
	if list.Cursor != 4 {
		t.Errorf("PageDown should clamp to last item, got %d", list.Cursor)
	}
	list.PageUp()
	if list.Cursor != 2 {
		t.Errorf("Expected cursor at 2 after PageUp, got %d", list.Cursor)
	}

	list.GoToFirst()
	if list.Cursor != 0 {
		t.Errorf("GoToFirst: got %d", list.Cursor)
	}
	list.GoToLast()
	if list.Cursor != 4 {
		t.Errorf("GoToLast: got %d", list.Cursor)
	}
}

func TestAppList_CategoryJumps(t *testing.T) {
	list, _ := newTestList()

	list.NextCategory()
	if got := list.Current().ID; got != "git" {
		t.Errorf("NextCategory should skip the empty category and land on git, got %s", got)
	}

	list.NextCategory()
	if got := list.Current().ID; got != "git" {
		t.Errorf("NextCategory on last category should not move, got %s", got)
	}

	list.MoveDown()
	list.PrevCategory()
	if got := list.Current().ID; got != "git" {
		t.Errorf("PrevCategory should go to start of current category, got %s", got)
	}

	list.PrevCategory()
	if got := list.Current().ID; got != "firefox" {
		t.Errorf("PrevCategory from category start should go to previous category, got %s", got)
	}
}

func TestAppList_CurrentCategory(t *testing.T) {
	list, _ := newTestList()
	list.Cursor = 3

	cat := list.CurrentCategory()
	if cat == nil || cat.Name != "Dev" {
		t.Errorf("Expected Dev, got %+v", cat)
	}
}

func TestAppList_CategoriesArePositional(t *testing.T) {
	cat := &models.Catalog{
		Categories: []*models.Category{
			{Name: "Tools", Apps: []*models.AppEntry{
				{ID: "git", Name: "Git", Type: models.InstallerApt, Category: "Tools"},
			}},
			{Name: "Tools", Apps: []*models.AppEntry{
				{ID: "vim", Name: "Vim", Type: models.InstallerApt, Category: "Tools"},
				{ID: "curl", Name: "curl", Type: models.InstallerApt, Category: "Tools"},
			}},
		},
	}
	list := NewAppList(cat, selection.New(cat))

	list.NextCategory()
	if got := list.Current().ID; got != "vim" {
		t.Fatalf("NextCategory should cross into the second group, got %s", got)
	}
	if got := list.CurrentCategory(); got != cat.Categories[1] {
		t.Errorf("CurrentCategory should be the second group, got %+v", got)
	}

	list.MoveDown()
	list.PrevCategory()
	if got := list.Current().ID; got != "vim" {
		t.Errorf("PrevCategory should stop at the start of the second group, got %s", got)
	}
}

func TestAppList_TruncatesByWidth(t *testing.T) {
	name := strings.Repeat("é", 40)
	cat := &models.Catalog{
		Categories: []*models.Category{
			{Name: "Text", Apps: []*models.AppEntry{
				{ID: "long", Name: name, Type: models.InstallerApt, Category: "Text"},
			}},
		},
	}
	list := NewAppList(cat, selection.New(cat))
	list.Width = 30

	row := list.renderItem(list.Current(), false)
	if !utf8.ValidString(row) {
		t.Errorf("Row should stay valid UTF-8: %q", row)
	}
	if !strings.Contains(row, strings.Repeat("é", 7)+"...") {
		t.Errorf("Expected name cut to 10 cells with ellipsis, got %q", row)
	}
}

func TestAppList_ViewReflectsSelection(t *testing.T) {
	list, sel := newTestList()
	list.Height = 30

	view := list.View()
	for _, want := range []string{"Browsers (0/2)", "Dev (0/3)", "Empty (0/0)", "(empty)", "Firefox", "Chrome", "flatpak"} {
		if !strings.Contains(view, want) {
			t.Errorf("View should contain %q", want)
		}
	}
	if strings.Contains(view, "✓") {
		t.Error("Nothing should be checked yet")
	}

	if err := sel.Toggle("git", true); err != nil {
		t.Fatal(err)
	}
	view = list.View()
	if !strings.Contains(view, "Dev (1/3)") {
		t.Error("Category header should count the checked app")
	}
	if !strings.Contains(view, "(1/5)") {
		t.Error("Title should show 1 of 5 selected")
	}
	if !strings.Contains(view, "✓") {
		t.Error("Checked app should render a check mark")
	}
}

func TestAppList_ViewScrolls(t *testing.T) {
	list, _ := newTestList()
	list.Height = 6
	list.GoToLast()

	view := list.View()
	if !strings.Contains(view, "Code") {
		t.Error("Cursor row should be visible")
	}
	if !strings.Contains(view, "↑ more") {
		t.Error("Should show scroll-up indicator")
	}
	if strings.Contains(view, "Firefox") {
		t.Error("First row should be scrolled out of view")
	}
}

func TestAppList_EmptyCatalog(t *testing.T) {
	list := NewAppList(&models.Catalog{}, nil)

	if list.Current() != nil {
		t.Error("Current should be nil for empty list")
	}
	list.MoveDown()
	list.NextCategory()
	list.PrevCategory()
	if !strings.Contains(list.View(), "No apps in catalog") {
		t.Error("Empty catalog message expected")
	}
	if list.Details() != "" {
		t.Error("Details should be empty without a current app")
	}
}

func TestAppList_Details(t *testing.T) {
	list, _ := newTestList()

	details := list.Details()
	if !strings.Contains(details, "Web browser") || !strings.Contains(details, "Install via apt: firefox") {
		t.Errorf("Unexpected details %q", details)
	}

	list.MoveDown()
	if !strings.Contains(list.Details(), "No description") {
		t.Error("Missing description should show a placeholder")
	}
}
