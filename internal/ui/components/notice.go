package components

import (
	"strings"

	"linite/internal/ui"

	"github.com/charmbracelet/lipgloss"
)

// NoticeKind picks the dialog styling
type NoticeKind int

const (
	NoticeInfo NoticeKind = iota
	NoticeError
	NoticeSuccess
)

// Notice is a modal message dialog. While visible it swallows all input
// except the dismiss keys.
type Notice struct {
	Kind    NoticeKind
	Title   string
	Message string
	Width   int
	Visible bool
}

// NewNotice creates a hidden notice
func NewNotice() *Notice {
	return &Notice{Width: 60}
}

// Show displays the notice
func (n *Notice) Show(kind NoticeKind, title, message string) {
	n.Kind = kind
	n.Title = title
	n.Message = message
	n.Visible = true
}

// Hide hides the notice
func (n *Notice) Hide() {
	n.Visible = false
}

// IsVisible returns whether the notice is visible
func (n *Notice) IsVisible() bool {
	return n.Visible
}

// View renders the dialog
func (n *Notice) View() string {
	var b strings.Builder

	style := ui.DialogStyle.Width(n.Width)
	var title string
	switch n.Kind {
	case NoticeError:
		style = ui.ErrorDialogStyle.Width(n.Width)
		title = ui.RenderNotification("error", n.Title)
	case NoticeSuccess:
		title = ui.RenderNotification("success", n.Title)
	default:
		title = ui.RenderNotification("info", n.Title)
	}

	b.WriteString(title)
	b.WriteString("\n\n")
	b.WriteString(lipgloss.NewStyle().Width(max(10, n.Width-6)).Render(n.Message))
	b.WriteString("\n\n")
	b.WriteString(ui.RenderButton("OK", true))

	return style.Render(b.String())
}

// Overlay centers the dialog over a screen of the given size
func (n *Notice) Overlay(width, height int) string {
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, n.View())
}
