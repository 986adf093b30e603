package components

import (
	"fmt"
	"strings"

	"linite/internal/models"
	"linite/internal/ui"

	"github.com/charmbracelet/x/ansi"
)

// SelectionReader answers whether an app is checked. The list never stores
// selection itself.
type SelectionReader interface {
	IsChecked(appID string) bool
	Count() int
}

// AppList renders the catalog as a categorized checklist
type AppList struct {
	Catalog   *models.Catalog
	Selection SelectionReader
	Cursor    int // Index into Items
	Width     int
	Height    int
	Focused   bool
	Title     string

	items  []*models.AppEntry
	groups []int // Index into Catalog.Categories for each item
}

// NewAppList creates a new app list
func NewAppList(catalog *models.Catalog, selection SelectionReader) *AppList {
	l := &AppList{
		Catalog:   catalog,
		Selection: selection,
		Width:     60,
		Height:    20,
		Focused:   true,
		Title:     "Select apps to install",
	}
	if catalog != nil {
		for gi, cat := range catalog.Categories {
			for _, app := range cat.Apps {
				l.items = append(l.items, app)
				l.groups = append(l.groups, gi)
			}
		}
	}
	return l
}

// MoveUp moves cursor up
func (l *AppList) MoveUp() {
	if l.Cursor > 0 {
		l.Cursor--
	}
}

// MoveDown moves cursor down
func (l *AppList) MoveDown() {
	if l.Cursor < len(l.items)-1 {
		l.Cursor++
	}
}

// PageUp moves cursor up by a page
func (l *AppList) PageUp() {
	l.Cursor -= l.pageSize()
	if l.Cursor < 0 {
		l.Cursor = 0
	}
}

// PageDown moves cursor down by a page
func (l *AppList) PageDown() {
	l.Cursor += l.pageSize()
	if l.Cursor >= len(l.items) {
		l.Cursor = max(0, len(l.items)-1)
	}
}

func (l *AppList) pageSize() int {
	pageSize := l.Height - 3
	if pageSize < 1 {
		pageSize = 10
	}
	return pageSize
}

// GoToFirst moves cursor to the first item
func (l *AppList) GoToFirst() {
	l.Cursor = 0
}

// GoToLast moves cursor to the last item
func (l *AppList) GoToLast() {
	if len(l.items) > 0 {
		l.Cursor = len(l.items) - 1
	}
}

// NextCategory moves the cursor to the first app of the next non-empty category
func (l *AppList) NextCategory() {
	if l.Current() == nil {
		return
	}
	for i := l.Cursor + 1; i < len(l.items); i++ {
		if l.groups[i] != l.groups[l.Cursor] {
			l.Cursor = i
			return
		}
	}
}

// PrevCategory moves the cursor to the first app of the current category, or of
// the previous one when already there
func (l *AppList) PrevCategory() {
	if l.Cursor <= 0 || len(l.items) == 0 {
		return
	}

	start := l.categoryStart(l.Cursor)
	if start != l.Cursor {
		l.Cursor = start
		return
	}
	l.Cursor = l.categoryStart(l.Cursor - 1)
}

func (l *AppList) categoryStart(idx int) int {
	group := l.groups[idx]
	for idx > 0 && l.groups[idx-1] == group {
		idx--
	}
	return idx
}

// Current returns the app under the cursor
func (l *AppList) Current() *models.AppEntry {
	if len(l.items) > 0 && l.Cursor < len(l.items) {
		return l.items[l.Cursor]
	}
	return nil
}

// CurrentCategory returns the category holding the cursor
func (l *AppList) CurrentCategory() *models.Category {
	if l.Current() == nil || l.Catalog == nil {
		return nil
	}
	return l.Catalog.Categories[l.groups[l.Cursor]]
}

func (l *AppList) isChecked(id string) bool {
	return l.Selection != nil && l.Selection.IsChecked(id)
}

// lines renders every row and returns the index of the cursor line
func (l *AppList) lines() ([]string, int) {
	var lines []string
	cursorLine := 0
	idx := 0

	for _, cat := range l.Catalog.Categories {
		checked := 0
		for _, app := range cat.Apps {
			if l.isChecked(app.ID) {
				checked++
			}
		}
		header := fmt.Sprintf("%s (%d/%d)", cat.Name, checked, len(cat.Apps))
		lines = append(lines, ui.CategoryStyle.Render(header))

		if len(cat.Apps) == 0 {
			lines = append(lines, ui.MutedStyle.Render("    (empty)"))
			continue
		}

		for _, app := range cat.Apps {
			isCursor := idx == l.Cursor
			if isCursor {
				cursorLine = len(lines)
			}
			lines = append(lines, l.renderItem(app, isCursor))
			idx++
		}
	}

	return lines, cursorLine
}

// View renders the app list
func (l *AppList) View() string {
	var b strings.Builder

	total := len(l.items)
	selectedCount := 0
	if l.Selection != nil {
		selectedCount = l.Selection.Count()
	}

	title := fmt.Sprintf("%s (%d/%d)", l.Title, selectedCount, total)
	b.WriteString(ui.PanelTitleStyle.Render(title))
	b.WriteString("\n")
	b.WriteString(ui.DividerStyle.Render(strings.Repeat("─", max(1, l.Width-2))))
	b.WriteString("\n")

	if l.Catalog == nil || len(l.Catalog.Categories) == 0 {
		b.WriteString(ui.ItemStyle.Render("No apps in catalog"))
		return l.wrapInPanel(b.String())
	}

	lines, cursorLine := l.lines()

	// Calculate visible range
	visibleHeight := max(1, l.Height-3) // Minus title and divider
	startIdx := 0
	if cursorLine >= visibleHeight {
		startIdx = cursorLine - visibleHeight + 1
	}
	endIdx := min(startIdx+visibleHeight, len(lines))

	if startIdx > 0 {
		b.WriteString(ui.MutedStyle.Render("  ↑ more"))
		b.WriteString("\n")
	}

	b.WriteString(strings.Join(lines[startIdx:endIdx], "\n"))

	if endIdx < len(lines) {
		b.WriteString("\n")
		b.WriteString(ui.MutedStyle.Render("  ↓ more"))
	}

	return l.wrapInPanel(b.String())
}

// renderItem renders a single app row
func (l *AppList) renderItem(app *models.AppEntry, isCursor bool) string {
	checkbox := ui.RenderCheckbox(l.isChecked(app.ID))

	name := app.Name
	maxNameLen := l.Width - 20
	if maxNameLen < 10 {
		maxNameLen = 10
	}
	name = ansi.Truncate(name, maxNameLen, "...")

	content := fmt.Sprintf("%s %s %s", checkbox, name, ui.RenderInstaller(string(app.Type)))

	if isCursor && l.Focused {
		return ui.SelectedItemStyle.Width(max(1, l.Width-4)).Render(content)
	}
	return ui.ItemStyle.Render(content)
}

// Details renders the description and install hint of the current app
func (l *AppList) Details() string {
	app := l.Current()
	if app == nil {
		return ""
	}

	desc := app.Description
	if desc == "" {
		desc = "No description"
	}
	return ui.MutedStyle.Render(desc) + "  " + ui.MutedStyle.Italic(true).Render(app.Tooltip())
}

// wrapInPanel wraps content in a panel border
func (l *AppList) wrapInPanel(content string) string {
	style := ui.PanelStyle
	if l.Focused {
		style = ui.ActivePanelStyle
	}
	return style.Width(l.Width).Height(l.Height).Render(content)
}
