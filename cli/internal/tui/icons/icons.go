// ABOUTME: Icon set for the planning TUI with Nerd Font detection
// ABOUTME: Falls back to plain Unicode glyphs when the terminal lacks patched fonts

package icons

import (
	"os"
	"strings"
	"sync"
)

var (
	useNerdFonts bool
	detectOnce   sync.Once
)

// nerdFontTerminals usually ship with a patched font configured
var nerdFontTerminals = []string{"iTerm.app", "alacritty", "WezTerm", "kitty", "ghostty"}

// detect decides Nerd Font support from the given environment lookup.
// GPU_TCO_NERD_FONTS wins when set; otherwise the terminal name decides.
func detect(getenv func(string) string) bool {
	if v := getenv("GPU_TCO_NERD_FONTS"); v != "" {
		return v == "1" || strings.EqualFold(v, "true")
	}

	term := getenv("TERM")
	program := getenv("TERM_PROGRAM")
	for _, t := range nerdFontTerminals {
		if strings.Contains(program, t) || strings.Contains(term, strings.ToLower(t)) {
			return true
		}
	}
	return false
}

// HasNerdFonts reports whether Nerd Font glyphs should be rendered
func HasNerdFonts() bool {
	detectOnce.Do(func() {
		useNerdFonts = detect(os.Getenv)
	})
	return useNerdFonts
}

// Icon pairs a Nerd Font glyph with its Unicode fallback
type Icon struct {
	NerdFont string
	Fallback string
}

func (i Icon) String() string {
	return i.render(HasNerdFonts())
}

func (i Icon) render(nerd bool) string {
	if nerd {
		return i.NerdFont
	}
	return i.Fallback
}

var (
	// Report sections
	GPU     = Icon{"󰢮", "▦"} // nf-md-expansion_card
	Storage = Icon{"󰆼", "■"} // nf-md-database
	Network = Icon{"󰌗", "⇄"} // nf-md-lan
	Power   = Icon{"󰉁", "϶"} // nf-md-flash
	Cost    = Icon{"󰇁", "$"} // nf-md-currency_usd

	// Severity
	CheckOK  = Icon{"", "✓"} // nf-fa-check_circle
	Warning  = Icon{"", "⚠"} // nf-fa-warning
	Critical = Icon{"", "✗"} // nf-fa-times_circle
	Info     = Icon{"", "ℹ"} // nf-fa-info_circle

	App = Icon{"󰢮", "◈"}
)
