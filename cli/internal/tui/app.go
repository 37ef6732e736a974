// ABOUTME: Root bubbletea model for the planning TUI
// ABOUTME: Sequences the wizard, the storage calculation and the report screen

package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/markalston/gpu-tco-analyzer/backend/catalog"
	"github.com/markalston/gpu-tco-analyzer/backend/models"
	"github.com/markalston/gpu-tco-analyzer/cli/internal/tui/icons"
	"github.com/markalston/gpu-tco-analyzer/cli/internal/tui/report"
	"github.com/markalston/gpu-tco-analyzer/cli/internal/tui/styles"
	"github.com/markalston/gpu-tco-analyzer/cli/internal/tui/wizard"
)

// Screen represents the current TUI screen
type Screen int

const (
	ScreenWizard Screen = iota
	ScreenCalculating
	ScreenReport
)

// Layout constants
const (
	minTerminalWidth = 80 // Minimum width before clamping the frame
	frameOverhead    = 4  // Header, footer and their separating newlines
)

// Calculator produces storage results for a config
type Calculator interface {
	CalculateStorage(ctx context.Context, cfg *models.StorageConfig) (*models.StorageResults, error)
}

// calculatedMsg is sent when the storage calculation completes
type calculatedMsg struct {
	results *models.StorageResults
	err     error
}

// App is the root model for the TUI
type App struct {
	calc    Calculator
	catalog *catalog.Catalog
	source  string // where results come from, shown in the header
	screen  Screen
	width   int
	height  int
	err     error

	config       *models.StorageConfig
	wizardScreen *wizard.Wizard
	reportScreen *report.Report
}

// New creates a new TUI application
func New(calc Calculator, c *catalog.Catalog, source string) *App {
	a := &App{
		calc:    calc,
		catalog: c,
		source:  source,
		screen:  ScreenWizard,
	}
	a.wizardScreen = wizard.New(c, nil)
	return a
}

// Init implements tea.Model
func (a *App) Init() tea.Cmd {
	return a.wizardScreen.Init()
}

// Update implements tea.Model
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		if a.reportScreen != nil {
			a.reportScreen.SetSize(a.contentWidth(), a.contentHeight())
		}
		if a.wizardScreen != nil {
			a.wizardScreen.Update(tea.WindowSizeMsg{Width: a.contentWidth(), Height: a.contentHeight()})
		}
		return a, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		if a.screen == ScreenReport && msg.String() == "q" {
			return a, tea.Quit
		}

	case wizard.WizardCompleteMsg:
		a.config = msg.Config
		a.err = nil
		a.screen = ScreenCalculating
		return a, a.calculate(msg.Config)

	case wizard.WizardCancelledMsg:
		if a.reportScreen != nil {
			a.screen = ScreenReport
			return a, nil
		}
		return a, tea.Quit

	case calculatedMsg:
		if msg.err != nil {
			a.err = msg.err
			return a, a.openWizard(a.config)
		}
		a.reportScreen = report.New(a.config, msg.results, a.contentWidth(), a.contentHeight())
		a.screen = ScreenReport
		return a, nil

	case report.EditRequestedMsg:
		return a, a.openWizard(msg.Config)
	}

	switch a.screen {
	case ScreenWizard:
		_, cmd := a.wizardScreen.Update(msg)
		return a, cmd
	case ScreenReport:
		_, cmd := a.reportScreen.Update(msg)
		return a, cmd
	}
	return a, nil
}

func (a *App) openWizard(cfg *models.StorageConfig) tea.Cmd {
	a.wizardScreen = wizard.New(a.catalog, cfg)
	a.wizardScreen.SetWidth(a.contentWidth())
	a.screen = ScreenWizard
	return a.wizardScreen.Init()
}

// calculate creates a command that runs the storage calculation
func (a *App) calculate(cfg *models.StorageConfig) tea.Cmd {
	return func() tea.Msg {
		results, err := a.calc.CalculateStorage(context.Background(), cfg)
		return calculatedMsg{results: results, err: err}
	}
}

// View implements tea.Model
func (a *App) View() string {
	var content string

	switch a.screen {
	case ScreenWizard:
		content = a.wizardScreen.View()
		if a.err != nil {
			content = styles.StatusCritical.Render("Error: "+a.err.Error()) + "\n\n" + content
		}
	case ScreenCalculating:
		content = styles.Subtitle.Render("Calculating storage plan...")
	case ScreenReport:
		content = styles.ActivePanel.Width(a.contentWidth()).Render(a.reportScreen.View())
	}

	return a.wrapWithFrame(content)
}

func (a *App) frameWidth() int {
	if a.width < minTerminalWidth {
		return minTerminalWidth
	}
	return a.width
}

// contentWidth is the width available inside the report panel
func (a *App) contentWidth() int {
	return a.frameWidth() - 4
}

// contentHeight calculates the height available for the report viewport
func (a *App) contentHeight() int {
	// Frame plus panel border and the scroll indicator line
	h := a.height - frameOverhead - 3
	if h < 5 {
		return 5
	}
	return h
}

// renderHeader creates the header bar with app branding and context
func (a *App) renderHeader() string {
	width := a.frameWidth()

	borderStyle := lipgloss.NewStyle().Foreground(styles.Muted)
	titleStyle := lipgloss.NewStyle().Foreground(styles.Primary).Bold(true)
	contextStyle := lipgloss.NewStyle().Foreground(styles.Secondary)

	leftText := fmt.Sprintf(" %s %s", icons.App.String(), titleStyle.Render("GPU Storage TCO Planner"))
	rightText := ""
	if a.source != "" {
		rightText = contextStyle.Render(a.source) + " "
	}

	fillWidth := max(0, width-4-lipgloss.Width(leftText)-lipgloss.Width(rightText)) // -4 for ╭─ and ─╮
	header := "╭─" + leftText + strings.Repeat("─", fillWidth) + rightText + "─╮"

	return borderStyle.Render(header)
}

// renderFooter creates the footer with keyboard shortcuts
func (a *App) renderFooter() string {
	width := a.frameWidth()

	borderStyle := lipgloss.NewStyle().Foreground(styles.Muted)
	keyStyle := lipgloss.NewStyle().Foreground(styles.Primary)
	labelStyle := lipgloss.NewStyle().Foreground(styles.Muted)

	var shortcuts []string
	switch a.screen {
	case ScreenWizard:
		shortcuts = []string{"↑↓ Select", "Enter Confirm", "Esc Cancel"}
	case ScreenCalculating:
		shortcuts = []string{"ctrl+c Quit"}
	case ScreenReport:
		shortcuts = []string{"↑↓ Scroll", "e Edit", "q Quit"}
	}

	var styled []string
	for _, s := range shortcuts {
		parts := strings.SplitN(s, " ", 2)
		if len(parts) == 2 {
			styled = append(styled, keyStyle.Render(parts[0])+" "+labelStyle.Render(parts[1]))
		} else {
			styled = append(styled, s)
		}
	}

	leftText := " " + strings.Join(styled, "  ")
	leftPlainText := " " + strings.Join(shortcuts, "  ")

	fillWidth := max(0, width-4-lipgloss.Width(leftPlainText)) // -4 for ╰─ and ─╯
	footer := "╰─" + leftText + strings.Repeat("─", fillWidth) + "─╯"

	return borderStyle.Render(footer)
}

// wrapWithFrame wraps content with header and footer
func (a *App) wrapWithFrame(content string) string {
	var sb strings.Builder

	sb.WriteString(a.renderHeader())
	sb.WriteString("\n")
	sb.WriteString(content)
	sb.WriteString("\n")
	sb.WriteString(a.renderFooter())

	return sb.String()
}

// Run starts the TUI
func Run(calc Calculator, c *catalog.Catalog, source string) error {
	p := tea.NewProgram(
		New(calc, c, source),
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}
