// ABOUTME: Tests for shared TUI styles
// ABOUTME: Verifies tier label colors and widths

package styles

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func TestTier(t *testing.T) {
	tests := []struct {
		id   string
		want lipgloss.Color
	}{
		{"ultra-hot", Danger},
		{"hot", Warning},
		{"archive", Muted},
		{"unknown-tier", Text},
	}
	for _, tt := range tests {
		style := Tier(tt.id)
		if got := style.GetForeground(); got != tt.want {
			t.Errorf("Tier(%q) foreground = %v, want %v", tt.id, got, tt.want)
		}
		if style.GetWidth() != 12 {
			t.Errorf("Tier(%q) width = %d, want 12", tt.id, style.GetWidth())
		}
	}
}
