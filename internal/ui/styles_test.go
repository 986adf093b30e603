package ui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func TestColors(t *testing.T) {
	colors := []lipgloss.Color{
		Primary, Secondary, Success, Warning, Error,
		Muted, Foreground, Border, Selected,
	}

	for _, c := range colors {
		if c == "" {
			t.Error("Color should not be empty")
		}
	}
}

func TestStylesRender(t *testing.T) {
	styles := map[string]lipgloss.Style{
		"AppStyle":          AppStyle,
		"HeaderStyle":       HeaderStyle,
		"PanelStyle":        PanelStyle,
		"PanelTitleStyle":   PanelTitleStyle,
		"ActivePanelStyle":  ActivePanelStyle,
		"ItemStyle":         ItemStyle,
		"SelectedItemStyle": SelectedItemStyle,
		"CategoryStyle":     CategoryStyle,
		"StatusBarStyle":    StatusBarStyle,
		"DialogStyle":       DialogStyle,
		"ErrorDialogStyle":  ErrorDialogStyle,
	}

	for name, style := range styles {
		t.Run(name, func(t *testing.T) {
			if !strings.Contains(style.Render("content"), "content") {
				t.Errorf("%s should render its content", name)
			}
		})
	}
}

func TestRenderCheckbox(t *testing.T) {
	checked := RenderCheckbox(true)
	unchecked := RenderCheckbox(false)

	if !strings.Contains(checked, "✓") {
		t.Errorf("Checked checkbox should contain ✓, got %q", checked)
	}
	if strings.Contains(unchecked, "✓") {
		t.Errorf("Unchecked checkbox should not contain ✓, got %q", unchecked)
	}
}

func TestRenderInstaller(t *testing.T) {
	tests := []struct {
		kind string
		want string
	}{
		{"apt", "apt"},
		{"flatpak", "flatpak"},
		{"snap", "snap"},
	}

	for _, tt := range tests {
		if got := RenderInstaller(tt.kind); !strings.Contains(got, tt.want) {
			t.Errorf("RenderInstaller(%s) = %q", tt.kind, got)
		}
	}
}

func TestRenderHelpItem(t *testing.T) {
	result := RenderHelpItem("a", "select all")
	if !strings.Contains(result, "a") || !strings.Contains(result, "select all") {
		t.Errorf("RenderHelpItem should contain key and description, got %q", result)
	}
}

func TestRenderNotification(t *testing.T) {
	tests := []struct {
		msgType string
		icon    string
	}{
		{"success", "✓"},
		{"error", "✗"},
		{"warning", "⚠"},
		{"info", "ℹ"},
		{"other", "•"},
	}

	for _, tt := range tests {
		t.Run(tt.msgType, func(t *testing.T) {
			result := RenderNotification(tt.msgType, "message")
			if !strings.Contains(result, tt.icon) {
				t.Errorf("Expected icon %s in %q", tt.icon, result)
			}
			if !strings.Contains(result, "message") {
				t.Errorf("Expected message in %q", result)
			}
		})
	}
}

func TestRenderButton(t *testing.T) {
	if !strings.Contains(RenderButton("OK", true), "OK") {
		t.Error("Active button should contain label")
	}
	if !strings.Contains(RenderButton("OK", false), "OK") {
		t.Error("Inactive button should contain label")
	}
}
