package main

import (
	"errors"
	"fmt"
	"strings"

	"linite/internal/install"
	"linite/internal/models"
	"linite/internal/selection"
	"linite/internal/terminal"
	"linite/internal/ui"
	"linite/internal/ui/components"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"
)

// Screen represents different screens in the app
type Screen int

const (
	ScreenMain    Screen = iota
	ScreenPreview        // Script review before launch
)

// Options configures a Model
type Options struct {
	Launcher    *terminal.Launcher
	ScriptDir   string // Where scripts are written, os.TempDir when empty
	Remote      string // Flatpak remote
	SkipPreview bool   // Launch straight from the checklist
	Logger      *zerolog.Logger
}

// Model is the main application model
type Model struct {
	catalog   *models.Catalog
	selection *selection.State
	installer *install.Installer
	launcher  *terminal.Launcher
	logger    *zerolog.Logger

	// UI Components
	appList *components.AppList
	preview *components.ScriptPreview
	notice  *components.Notice
	help    help.Model
	keys    ui.KeyMap

	// State
	screen      Screen
	status      string
	width       int
	height      int
	installing  bool
	skipPreview bool

	// Undo state for bulk selection changes
	lastSelection map[string]bool
	canUndo       bool

	unsubscribe func()
}

// installDoneMsg carries the result of an install attempt
type installDoneMsg struct {
	outcome install.Outcome
	err     error
}

// New creates the model over a loaded catalog
func New(catalog *models.Catalog, opts Options) *Model {
	logger := opts.Logger
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}
	launcher := opts.Launcher
	if launcher == nil {
		launcher = terminal.New("")
	}

	sel := selection.New(catalog)

	m := &Model{
		catalog:     catalog,
		selection:   sel,
		launcher:    launcher,
		logger:      logger,
		installer:   install.NewInstaller(launcher, opts.ScriptDir, install.ScriptOptions{Remote: opts.Remote}, logger),
		appList:     components.NewAppList(catalog, sel),
		preview:     components.NewScriptPreview(),
		notice:      components.NewNotice(),
		help:        help.New(),
		keys:        ui.DefaultKeyMap(),
		screen:      ScreenMain,
		status:      fmt.Sprintf("%d apps in %d categories", catalog.Len(), len(catalog.Categories)),
		width:       80,
		height:      24,
		skipPreview: opts.SkipPreview,
	}

	m.unsubscribe = sel.Subscribe(m.onSelectionChanged)
	m.updatePanelSizes()

	return m
}

// Selection exposes the selection controller
func (m *Model) Selection() *selection.State {
	return m.selection
}

// Close detaches the model from the selection controller
func (m *Model) Close() {
	if m.unsubscribe != nil {
		m.unsubscribe()
		m.unsubscribe = nil
	}
}

func (m *Model) onSelectionChanged(c selection.Change) {
	m.status = fmt.Sprintf("%d selected", c.Total)
	m.logger.Debug().
		Strs("added", c.Added).
		Strs("removed", c.Removed).
		Int("total", c.Total).
		Msg("selection changed")
}

func (m *Model) Init() tea.Cmd {
	return nil
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updatePanelSizes()
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.MouseMsg:
		if m.screen == ScreenPreview {
			var cmd tea.Cmd
			m.preview, cmd = m.preview.Update(msg)
			return m, cmd
		}

	case installDoneMsg:
		m.installing = false
		m.screen = ScreenMain
		m.handleInstallResult(msg.outcome, msg.err)
	}

	return m, nil
}

func (m *Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// A visible notice is modal
	if m.notice.IsVisible() {
		switch msg.String() {
		case "enter", "esc", " ", "q", "o":
			m.notice.Hide()
		case "ctrl+c":
			return m, tea.Quit
		}
		return m, nil
	}

	if m.installing {
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		return m, nil
	}

	switch m.screen {
	case ScreenPreview:
		return m.handlePreviewKeys(msg)
	}

	return m.handleMainKeys(msg)
}

func (m *Model) handleMainKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.updatePanelSizes()

	case key.Matches(msg, m.keys.Up):
		m.appList.MoveUp()
	case key.Matches(msg, m.keys.Down):
		m.appList.MoveDown()
	case key.Matches(msg, m.keys.PageUp):
		m.appList.PageUp()
	case key.Matches(msg, m.keys.PageDown):
		m.appList.PageDown()
	case key.Matches(msg, m.keys.Home):
		m.appList.GoToFirst()
	case key.Matches(msg, m.keys.End):
		m.appList.GoToLast()
	case key.Matches(msg, m.keys.NextCategory):
		m.appList.NextCategory()
	case key.Matches(msg, m.keys.PrevCategory):
		m.appList.PrevCategory()

	case key.Matches(msg, m.keys.Space):
		m.handleToggle()
	case key.Matches(msg, m.keys.SelectAll):
		m.handleSelectAll(true)
	case key.Matches(msg, m.keys.DeselectAll):
		m.handleSelectAll(false)
	case key.Matches(msg, m.keys.SelectGroup):
		m.handleSelectCategory()
	case key.Matches(msg, m.keys.Undo):
		m.handleUndo()

	case key.Matches(msg, m.keys.Install):
		return m.handleInstall()
	}

	return m, nil
}

func (m *Model) handlePreviewKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Escape), msg.String() == "q", msg.String() == "n":
		m.screen = ScreenMain
		m.status = "Installation cancelled"
		return m, nil

	case msg.String() == "ctrl+c":
		return m, tea.Quit

	case key.Matches(msg, m.keys.Confirm):
		return m, m.startInstall()
	}

	var cmd tea.Cmd
	m.preview, cmd = m.preview.Update(msg)
	return m, cmd
}

func (m *Model) handleToggle() {
	app := m.appList.Current()
	if app == nil {
		return
	}
	if err := m.selection.Flip(app.ID); err != nil {
		m.status = fmt.Sprintf("Error: %v", err)
	}
}

func (m *Model) handleSelectAll(checked bool) {
	m.saveSelectionState()
	m.selection.ToggleAll(checked)
	if checked {
		m.status = fmt.Sprintf("Selected all %d apps", m.selection.Count())
	} else {
		m.status = "Deselected all apps"
	}
}

// handleSelectCategory checks every app in the current category, or unchecks
// them all when they are already checked
func (m *Model) handleSelectCategory() {
	cat := m.appList.CurrentCategory()
	if cat == nil {
		return
	}

	allChecked := true
	for _, app := range cat.Apps {
		if !m.selection.IsChecked(app.ID) {
			allChecked = false
			break
		}
	}

	m.saveSelectionState()
	for _, app := range cat.Apps {
		_ = m.selection.Toggle(app.ID, !allChecked)
	}
}

func (m *Model) saveSelectionState() {
	m.lastSelection = m.selection.Snapshot()
	m.canUndo = true
}

func (m *Model) handleUndo() {
	if !m.canUndo {
		m.status = "Nothing to undo"
		return
	}
	m.selection.Restore(m.lastSelection)
	m.canUndo = false
	m.status = fmt.Sprintf("Selection restored (%d selected)", m.selection.Count())
}

// handleInstall checks the request and either opens the preview or launches directly
func (m *Model) handleInstall() (tea.Model, tea.Cmd) {
	out, err := m.installer.Prepare(m.selection.CurrentSelections())
	if err != nil {
		m.handleInstallResult(out, err)
		return m, nil
	}

	if m.skipPreview {
		return m, m.startInstall()
	}

	m.preview.Load(out.Script, m.launcher.Available(), len(out.Request.AptIDs), len(out.Request.FlatpakIDs))
	m.screen = ScreenPreview
	return m, nil
}

// startInstall runs the attempt off the update loop. The selection is read now,
// not when the command runs.
func (m *Model) startInstall() tea.Cmd {
	m.installing = true
	m.status = "Starting installation..."

	selections := m.selection.CurrentSelections()
	installer := m.installer
	return func() tea.Msg {
		out, err := installer.Install(selections)
		return installDoneMsg{outcome: out, err: err}
	}
}

func (m *Model) handleInstallResult(out install.Outcome, err error) {
	var (
		writeErr  *install.ScriptWriteError
		launchErr *terminal.LaunchError
	)

	switch {
	case err == nil:
		m.status = fmt.Sprintf("✓ Installation running in %s", out.Terminal)
		m.notice.Show(components.NoticeSuccess, "Installation started",
			fmt.Sprintf("The install script is running in %s. Follow it there and press Enter in that window when it finishes.",
				out.Terminal))

	case errors.Is(err, install.ErrEmptySelection):
		m.status = "No apps selected"
		m.notice.Show(components.NoticeInfo, "No apps selected", "Please select at least one app to install.")

	case errors.As(err, &writeErr):
		m.status = "Error: could not write script"
		m.notice.Show(components.NoticeError, "Error", err.Error())

	case errors.Is(err, terminal.ErrNotFound):
		m.status = "Error: no terminal emulator"
		m.notice.Show(components.NoticeError, "Error", "No terminal emulator found. Cannot run installation.")

	case errors.As(err, &launchErr):
		m.status = "Error: terminal failed to start"
		m.notice.Show(components.NoticeError, "Error", err.Error())

	default:
		m.status = fmt.Sprintf("Error: %v", err)
		m.notice.Show(components.NoticeError, "Error", err.Error())
	}
}

func (m *Model) updatePanelSizes() {
	// header, details, status bar, help bar and spacing
	reserved := 6
	if m.help.ShowAll {
		reserved += 4
	}

	m.appList.Width = max(30, m.width-4)
	m.appList.Height = max(5, m.height-reserved)
	m.preview.SetSize(max(30, m.width-4), max(8, m.height-4))
	m.notice.Width = min(70, max(30, m.width-10))
	m.help.Width = m.width
}

func (m *Model) View() string {
	if m.notice.IsVisible() {
		return m.notice.Overlay(m.width, m.height)
	}

	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n")

	switch m.screen {
	case ScreenPreview:
		b.WriteString(m.preview.View())
	default:
		b.WriteString(m.appList.View())
		b.WriteString("\n")
		b.WriteString(ui.ItemStyle.Render(m.appList.Details()))
	}

	b.WriteString("\n")
	b.WriteString(m.renderStatusBar())
	b.WriteString("\n")
	b.WriteString(m.renderHelpBar())

	return ui.AppStyle.Render(b.String())
}

func (m *Model) renderHeader() string {
	title := ui.TitleStyle.Render("Linite")
	ver := ui.VersionStyle.Render("v" + version)
	sub := ui.MutedStyle.Render("  App Installer")
	return ui.HeaderStyle.Render(title + "  " + ver + sub)
}

func (m *Model) renderStatusBar() string {
	req := install.Build(m.selection.CurrentSelections())
	stats := fmt.Sprintf("apt: %d  •  flatpak: %d", len(req.AptIDs), len(req.FlatpakIDs))

	styledStatus := ui.StatusTextStyle.Render(m.status)
	switch {
	case strings.HasPrefix(m.status, "✓"):
		styledStatus = ui.RenderNotification("success", strings.TrimPrefix(m.status, "✓ "))
	case strings.HasPrefix(m.status, "Error"):
		styledStatus = ui.RenderNotification("error", m.status)
	case strings.Contains(m.status, "cancelled"):
		styledStatus = ui.RenderNotification("warning", m.status)
	}

	return ui.StatusBarStyle.Render(styledStatus + "  •  " + stats)
}

func (m *Model) renderHelpBar() string {
	if m.screen == ScreenPreview {
		return ui.HelpBarStyle.Render(lipgloss.JoinHorizontal(lipgloss.Top,
			ui.RenderHelpItem("enter/y", "run"), "  ",
			ui.RenderHelpItem("↑/↓", "scroll"), "  ",
			ui.RenderHelpItem("esc", "back"),
		))
	}
	return ui.HelpBarStyle.Render(m.help.View(m.keys))
}
