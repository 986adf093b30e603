package components

import (
	"fmt"
	"strings"

	"linite/internal/ui"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// previewName gives the highlighter a shell file name
const previewName = "install.sh"

// ScriptPreview shows the install script with syntax highlighting before it runs
type ScriptPreview struct {
	viewport    viewport.Model
	highlighter *ui.Highlighter

	Script     string
	Terminal   string   // Terminal that will run the script, empty if none was found
	Others     []string // Other installed terminals, in probe order
	AptCount   int
	FlatCount  int
	TotalLines int

	Width  int
	Height int

	lineNumStyle lipgloss.Style
	headerStyle  lipgloss.Style
	infoStyle    lipgloss.Style
	borderStyle  lipgloss.Style
}

// NewScriptPreview creates a new ScriptPreview with viewport
func NewScriptPreview() *ScriptPreview {
	vp := viewport.New(80, 20)
	vp.MouseWheelEnabled = true
	vp.MouseWheelDelta = 3

	return &ScriptPreview{
		viewport:    vp,
		highlighter: ui.NewHighlighter(),
		Width:       80,
		Height:      20,
		lineNumStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6c7086")).
			Width(4).
			Align(lipgloss.Right),
		headerStyle: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#89b4fa")),
		infoStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6c7086")),
		borderStyle: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#89b4fa")).
			Padding(0, 1),
	}
}

// SetSize updates the viewport dimensions
func (p *ScriptPreview) SetSize(width, height int) {
	p.Width = width
	p.Height = height

	// Header (3 lines), footer (2 lines) and border (2 lines)
	p.viewport.Height = max(3, height-7)
	p.viewport.Width = max(20, width-4)
}

// Load replaces the previewed script. terminals lists the installed terminals
// in probe order; the first one runs the script.
func (p *ScriptPreview) Load(script string, terminals []string, aptCount, flatpakCount int) {
	lines := strings.Split(script, "\n")

	var b strings.Builder
	for i, line := range p.highlighter.HighlightLines(lines, previewName) {
		lineNum := p.lineNumStyle.Render(fmt.Sprintf("%d", i+1))
		b.WriteString(lineNum + " │ " + line)
		if i < len(lines)-1 {
			b.WriteString("\n")
		}
	}

	p.Script = script
	p.Terminal = ""
	p.Others = nil
	if len(terminals) > 0 {
		p.Terminal = terminals[0]
		p.Others = terminals[1:]
	}
	p.AptCount = aptCount
	p.FlatCount = flatpakCount
	p.TotalLines = len(lines)
	p.viewport.SetContent(b.String())
	p.viewport.GotoTop()
}

// Update handles messages for viewport scrolling
func (p *ScriptPreview) Update(msg tea.Msg) (*ScriptPreview, tea.Cmd) {
	var cmd tea.Cmd
	p.viewport, cmd = p.viewport.Update(msg)
	return p, cmd
}

// View renders the preview
func (p *ScriptPreview) View() string {
	var b strings.Builder

	header := p.headerStyle.Render("Installation script")
	counts := p.infoStyle.Render(fmt.Sprintf("  %d apt, %d flatpak", p.AptCount, p.FlatCount))
	b.WriteString(header + counts + "\n")

	if p.Terminal != "" {
		runs := "Runs in: " + p.Terminal
		if len(p.Others) > 0 {
			runs += "  (also installed: " + strings.Join(p.Others, ", ") + ")"
		}
		b.WriteString(p.infoStyle.Render(runs) + "\n")
	} else {
		b.WriteString(ui.WarningNotifyStyle.Render("⚠ No terminal emulator found") + "\n")
	}

	b.WriteString(ui.DividerStyle.Render(strings.Repeat("─", max(1, p.Width-4))) + "\n")
	b.WriteString(p.viewport.View())

	if p.TotalLines > p.viewport.Height {
		scrollInfo := fmt.Sprintf("─── %.0f%% ───", p.viewport.ScrollPercent()*100)
		b.WriteString("\n" + p.infoStyle.Render(scrollInfo))
	}

	b.WriteString("\n\n")
	b.WriteString(ui.RenderHelpItem("enter/y", "run") + "  " + ui.RenderHelpItem("esc", "back"))

	return p.borderStyle.Width(p.Width).Height(p.Height).Render(b.String())
}
