// ABOUTME: Storage planning wizard as a bubbletea model
// ABOUTME: Uses huh forms with visual progress indicator for step navigation

package wizard

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/markalston/gpu-tco-analyzer/backend/catalog"
	"github.com/markalston/gpu-tco-analyzer/backend/models"
	"github.com/markalston/gpu-tco-analyzer/cli/internal/tui/icons"
	"github.com/markalston/gpu-tco-analyzer/cli/internal/tui/styles"
)

// mixTolerance mirrors the backend's accepted drift from 100%
const mixTolerance = 0.5

// WizardCompleteMsg is sent when the wizard finishes successfully
type WizardCompleteMsg struct {
	Config *models.StorageConfig
}

// WizardCancelledMsg is sent when the wizard is cancelled
type WizardCancelledMsg struct{}

// Wizard manages the storage planning wizard flow as a bubbletea model
type Wizard struct {
	catalog *catalog.Catalog
	config  *models.StorageConfig
	form    *huh.Form
	step    int
	width   int
	err     error

	// Form field values (strings for huh)
	gpuCount   string
	gpuModel   string
	region     string
	training   string
	inference  string
	finetuning string
	whale      string
	medium     string
	small      string
	budget     string
	vendor     string
}

// Step names for progress indicator
var stepNames = []string{"Cluster", "Workload Mix", "Tenants & Budget"}

// createTheme returns a custom huh theme matching the frontend React colors
func createTheme() *huh.Theme {
	t := huh.ThemeBase()

	cyan := lipgloss.Color("#06B6D4")      // Cyan-500 - primary
	cyanLight := lipgloss.Color("#22D3EE") // Cyan-400 - accents
	blue := lipgloss.Color("#3B82F6")      // Blue-500 - info
	gray := lipgloss.Color("#9CA3AF")      // Gray-400 - muted
	grayLight := lipgloss.Color("#E5E7EB") // Gray-200 - text
	red := lipgloss.Color("#F87171")       // Red-400 - errors
	slate := lipgloss.Color("#334155")     // Slate-700 - borders

	// Group styles (section headers)
	t.Group.Title = lipgloss.NewStyle().
		Foreground(cyan).
		Bold(true).
		MarginBottom(1)
	t.Group.Description = lipgloss.NewStyle().
		Foreground(gray).
		MarginBottom(1)

	// Focused field styles
	t.Focused.Base = lipgloss.NewStyle().
		PaddingLeft(1).
		BorderStyle(lipgloss.ThickBorder()).
		BorderLeft(true).
		BorderForeground(cyan)
	t.Focused.Title = lipgloss.NewStyle().
		Foreground(cyanLight).
		Bold(true)
	t.Focused.Description = lipgloss.NewStyle().
		Foreground(gray)
	t.Focused.ErrorIndicator = lipgloss.NewStyle().
		Foreground(red).
		SetString(" *")
	t.Focused.ErrorMessage = lipgloss.NewStyle().
		Foreground(red)

	// Select field styles
	t.Focused.SelectSelector = lipgloss.NewStyle().
		Foreground(cyan).
		SetString("> ")
	t.Focused.Option = lipgloss.NewStyle().
		Foreground(grayLight)
	t.Focused.SelectedOption = lipgloss.NewStyle().
		Foreground(cyan).
		Bold(true)

	// Text input styles
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().
		Foreground(cyan)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().
		Foreground(gray)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().
		Foreground(cyan)
	t.Focused.TextInput.Text = lipgloss.NewStyle().
		Foreground(grayLight)

	// Button styles
	t.Focused.FocusedButton = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#FFFFFF")).
		Background(blue).
		Padding(0, 2).
		MarginRight(1)
	t.Focused.BlurredButton = lipgloss.NewStyle().
		Foreground(gray).
		Background(slate).
		Padding(0, 2).
		MarginRight(1)

	// Blurred field styles (inherit from focused with muted colors)
	t.Blurred = t.Focused
	t.Blurred.Base = lipgloss.NewStyle().
		PaddingLeft(1).
		BorderStyle(lipgloss.HiddenBorder()).
		BorderLeft(true)
	t.Blurred.Title = lipgloss.NewStyle().
		Foreground(gray)
	t.Blurred.SelectSelector = lipgloss.NewStyle().
		Foreground(gray).
		SetString("  ")
	t.Blurred.Option = lipgloss.NewStyle().
		Foreground(gray)

	return t
}

var budgetOptions = []huh.Option[string]{
	huh.NewOption("Optimized (balanced)", models.BudgetOptimized),
	huh.NewOption("Unlimited (performance first)", models.BudgetUnlimited),
	huh.NewOption("Cost-conscious", models.BudgetCostConscious),
}

// DefaultConfig is the starting point when no prior config is supplied
func DefaultConfig() models.StorageConfig {
	return models.StorageConfig{
		GPUCount: 1024,
		GPUModel: "h100",
		Workload: models.WorkloadMix{Training: 60, Inference: 30, Finetuning: 10},
		Tenants:  models.TenantMix{Whale: 40, Medium: 40, Small: 20},
		Budget:   models.BudgetOptimized,
	}
}

// New creates a new wizard seeded from defaults, drawing choices from the catalog
func New(c *catalog.Catalog, defaults *models.StorageConfig) *Wizard {
	cfg := DefaultConfig()
	if defaults != nil {
		cfg = *defaults
	}
	if cfg.Budget == "" {
		cfg.Budget = models.BudgetOptimized
	}

	w := &Wizard{
		catalog:    c,
		config:     &cfg,
		step:       1,
		gpuCount:   strconv.Itoa(cfg.GPUCount),
		gpuModel:   cfg.GPUModel,
		region:     cfg.Region,
		training:   formatPercent(cfg.Workload.Training),
		inference:  formatPercent(cfg.Workload.Inference),
		finetuning: formatPercent(cfg.Workload.Finetuning),
		whale:      formatPercent(cfg.Tenants.Whale),
		medium:     formatPercent(cfg.Tenants.Medium),
		small:      formatPercent(cfg.Tenants.Small),
		budget:     cfg.Budget,
		vendor:     cfg.Vendor,
	}

	w.form = w.createStep1Form()
	return w
}

func formatPercent(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// gpuOptions lists catalog GPU models with a catch-all for unknown hardware
func (w *Wizard) gpuOptions() []huh.Option[string] {
	opts := []huh.Option[string]{huh.NewOption("Unspecified", "")}
	if w.catalog == nil {
		return opts
	}
	for _, g := range w.catalog.GPUs {
		opts = append(opts, huh.NewOption(fmt.Sprintf("%s (%.2f kW)", g.Name, g.TDPKW), g.ID))
	}
	return opts
}

// regionOptions lists regions with a known power rate, sorted by name
func (w *Wizard) regionOptions() []huh.Option[string] {
	opts := []huh.Option[string]{huh.NewOption("Default rate", "")}
	if w.catalog == nil {
		return opts
	}
	regions := make([]string, 0, len(w.catalog.RegionalRates))
	for r := range w.catalog.RegionalRates {
		regions = append(regions, r)
	}
	sort.Strings(regions)
	for _, r := range regions {
		opts = append(opts, huh.NewOption(fmt.Sprintf("%s ($%.3f/kWh)", r, w.catalog.RegionalRates[r]), r))
	}
	return opts
}

// vendorOptions lists primary storage vendors with automatic selection first
func (w *Wizard) vendorOptions() []huh.Option[string] {
	opts := []huh.Option[string]{huh.NewOption("Automatic (rule-based)", "")}
	if w.catalog == nil {
		return opts
	}
	for _, v := range w.catalog.Vendors {
		opts = append(opts, huh.NewOption(v.Name, v.ID))
	}
	return opts
}

func (w *Wizard) createStep1Form() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("GPU count").
				Description("Total accelerators in the cluster").
				Placeholder("e.g., 4096").
				CharLimit(7).
				Value(&w.gpuCount).
				Validate(validatePositiveInt),
			huh.NewSelect[string]().
				Title("GPU model").
				Description("Use ↑/↓ to select, Enter to confirm").
				Options(w.gpuOptions()...).
				Value(&w.gpuModel),
			huh.NewSelect[string]().
				Title("Region").
				Description("Sets the power rate used for OPEX").
				Options(w.regionOptions()...).
				Value(&w.region),
		).Title("Step 1: Cluster").
			Description("Describe the GPU cluster the storage must feed"),
	).WithTheme(createTheme())
}

func (w *Wizard) createStep2Form() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			percentInput("Training %", &w.training),
			percentInput("Inference %", &w.inference),
			percentInput("Fine-tuning %", &w.finetuning),
		).Title("Step 2: Workload Mix").
			Description("Share of GPU time per workload; must add up to 100"),
	).WithTheme(createTheme())
}

func (w *Wizard) createStep3Form() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			percentInput("Whale tenants %", &w.whale),
			percentInput("Medium tenants %", &w.medium),
			percentInput("Small tenants %", &w.small),
			huh.NewSelect[string]().
				Title("Budget").
				Options(budgetOptions...).
				Value(&w.budget),
			huh.NewSelect[string]().
				Title("Primary vendor").
				Description("Override the rule-based vendor choice").
				Options(w.vendorOptions()...).
				Value(&w.vendor),
		).Title("Step 3: Tenants & Budget").
			Description("Tenant mix must add up to 100"),
	).WithTheme(createTheme())
}

func percentInput(title string, value *string) *huh.Input {
	return huh.NewInput().
		Title(title).
		CharLimit(5).
		Value(value).
		Validate(validatePercentage)
}

// Init implements tea.Model
func (w *Wizard) Init() tea.Cmd {
	return w.form.Init()
}

// Update implements tea.Model
func (w *Wizard) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		w.width = msg.Width
		form, cmd := w.form.Update(msg)
		if f, ok := form.(*huh.Form); ok {
			w.form = f
		}
		return w, cmd

	case tea.KeyMsg:
		if msg.String() == "esc" {
			return w, func() tea.Msg { return WizardCancelledMsg{} }
		}
	}

	form, cmd := w.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		w.form = f
	}

	if w.form.State == huh.StateCompleted {
		return w.advanceStep()
	}

	return w, cmd
}

func (w *Wizard) advanceStep() (tea.Model, tea.Cmd) {
	switch w.step {
	case 1:
		w.config.GPUCount, _ = strconv.Atoi(w.gpuCount)
		w.config.GPUModel = w.gpuModel
		w.config.Region = w.region
		w.step = 2
		w.form = w.createStep2Form()
		return w, w.form.Init()

	case 2:
		mix := models.WorkloadMix{
			Training:   parsePercent(w.training),
			Inference:  parsePercent(w.inference),
			Finetuning: parsePercent(w.finetuning),
		}
		if err := checkSum("workload", mix.Training, mix.Inference, mix.Finetuning); err != nil {
			w.err = err
			w.form = w.createStep2Form()
			return w, w.form.Init()
		}
		w.err = nil
		w.config.Workload = mix
		w.step = 3
		w.form = w.createStep3Form()
		return w, w.form.Init()

	case 3:
		tenants := models.TenantMix{
			Whale:  parsePercent(w.whale),
			Medium: parsePercent(w.medium),
			Small:  parsePercent(w.small),
		}
		if err := checkSum("tenant", tenants.Whale, tenants.Medium, tenants.Small); err != nil {
			w.err = err
			w.form = w.createStep3Form()
			return w, w.form.Init()
		}
		w.err = nil
		w.config.Tenants = tenants
		w.config.Budget = w.budget
		w.config.Vendor = w.vendor

		cfg := w.config
		return w, func() tea.Msg {
			return WizardCompleteMsg{Config: cfg}
		}
	}

	return w, nil
}

// SetWidth sets the wizard width for proper rendering
func (w *Wizard) SetWidth(width int) {
	w.width = width
}

// View implements tea.Model
func (w *Wizard) View() string {
	var sb strings.Builder

	sb.WriteString(w.renderProgress())
	sb.WriteString("\n\n")
	if w.err != nil {
		sb.WriteString(styles.StatusCritical.Render(icons.Critical.String() + " " + w.err.Error()))
		sb.WriteString("\n\n")
	}
	sb.WriteString(w.form.View())

	return sb.String()
}

// renderProgress renders the step progress indicator
func (w *Wizard) renderProgress() string {
	width := w.width - 1
	if width < 60 {
		width = 60
	}

	borderStyle := lipgloss.NewStyle().Foreground(styles.Muted)
	titleStyle := lipgloss.NewStyle().Foreground(styles.Primary)

	var steps []string
	for i, name := range stepNames {
		stepNum := i + 1
		var indicator string
		var nameStyle lipgloss.Style

		switch {
		case stepNum < w.step:
			indicator = lipgloss.NewStyle().Foreground(styles.Secondary).Render(icons.CheckOK.String())
			nameStyle = lipgloss.NewStyle().Foreground(styles.Muted)
		case stepNum == w.step:
			indicator = lipgloss.NewStyle().Foreground(styles.Primary).Bold(true).Render("●")
			nameStyle = lipgloss.NewStyle().Foreground(styles.Primary).Bold(true)
		default:
			indicator = lipgloss.NewStyle().Foreground(styles.Muted).Render("○")
			nameStyle = lipgloss.NewStyle().Foreground(styles.Muted)
		}

		steps = append(steps, fmt.Sprintf("%s %s", indicator, nameStyle.Render(name)))
	}

	stepsLine := strings.Join(steps, "    ")

	// "│  " + bar + " │" = 5 chars overhead
	barWidth := width - 5
	filledWidth := (w.step * barWidth) / len(stepNames)
	emptyWidth := barWidth - filledWidth

	filledBar := lipgloss.NewStyle().Foreground(styles.Primary).Render(strings.Repeat("━", filledWidth))
	emptyBar := lipgloss.NewStyle().Foreground(styles.Surface).Render(strings.Repeat("─", emptyWidth))

	styledTitle := titleStyle.Render("Progress")
	topFillWidth := max(0, width-5-lipgloss.Width("Progress"))
	topBorder := "┌─ " + styledTitle + " " + strings.Repeat("─", topFillWidth) + "┐"

	stepsPadding := max(0, width-4-lipgloss.Width(stepsLine))
	stepsLinePadded := "│ " + stepsLine + strings.Repeat(" ", stepsPadding) + " │"
	progressLinePadded := "│  " + filledBar + emptyBar + " │"
	bottomBorder := "└" + strings.Repeat("─", width-2) + "┘"

	return borderStyle.Render(strings.Join([]string{
		topBorder,
		stepsLinePadded,
		progressLinePadded,
		bottomBorder,
	}, "\n"))
}

// Config returns the collected storage configuration
func (w *Wizard) Config() *models.StorageConfig {
	return w.config
}

// Step returns the current 1-based step
func (w *Wizard) Step() int {
	return w.step
}

func parsePercent(s string) float64 {
	v, _ := strconv.ParseFloat(strings.TrimSpace(s), 64)
	return v
}

func checkSum(name string, parts ...float64) error {
	var sum float64
	for _, p := range parts {
		sum += p
	}
	if math.Abs(sum-100) > mixTolerance {
		return fmt.Errorf("%s mix must add up to 100%%, got %s%%", name, formatPercent(sum))
	}
	return nil
}

func validatePositiveInt(s string) error {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || v <= 0 {
		return fmt.Errorf("must be a positive number")
	}
	return nil
}

func validatePercentage(s string) error {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) || v < 0 || v > 100 {
		return fmt.Errorf("must be between 0 and 100")
	}
	return nil
}
