// ABOUTME: Scrollable storage plan report for the planning TUI
// ABOUTME: Renders StorageResults into a bubbles viewport with tier-colored share bars

package report

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/docker/go-units"
	"github.com/markalston/gpu-tco-analyzer/backend/models"
	"github.com/markalston/gpu-tco-analyzer/cli/internal/tui/icons"
	"github.com/markalston/gpu-tco-analyzer/cli/internal/tui/styles"
	"github.com/markalston/gpu-tco-analyzer/cli/internal/tui/widgets"
)

const bytesPerTB = 1e12

// EditRequestedMsg asks the app to reopen the wizard with the current config
type EditRequestedMsg struct {
	Config *models.StorageConfig
}

// Report is a bubbletea model showing one calculated storage plan
type Report struct {
	config   *models.StorageConfig
	results  *models.StorageResults
	viewport viewport.Model
	width    int
}

// New creates a report for results computed from config
func New(config *models.StorageConfig, results *models.StorageResults, width, height int) *Report {
	r := &Report{
		config:   config,
		results:  results,
		viewport: viewport.New(width, height),
		width:    width,
	}
	r.viewport.SetContent(Render(config, results))
	return r
}

// SetSize resizes the viewport
func (r *Report) SetSize(width, height int) {
	r.width = width
	r.viewport.Width = width
	r.viewport.Height = height
}

// Init implements tea.Model
func (r *Report) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (r *Report) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "e" {
		cfg := r.config
		return r, func() tea.Msg { return EditRequestedMsg{Config: cfg} }
	}

	var cmd tea.Cmd
	r.viewport, cmd = r.viewport.Update(msg)
	return r, cmd
}

// View implements tea.Model
func (r *Report) View() string {
	scroll := styles.Help.Render(fmt.Sprintf("%3.0f%%", r.viewport.ScrollPercent()*100))
	return r.viewport.View() + "\n" + scroll
}

// HumanTB formats a terabyte quantity with decimal units
func HumanTB(tb float64) string {
	if tb <= 0 {
		return "0B"
	}
	return units.HumanSize(tb * bytesPerTB)
}

// Money formats a dollar amount with K/M/B suffixes
func Money(v float64) string {
	switch {
	case v >= 1e9:
		return fmt.Sprintf("$%.2fB", v/1e9)
	case v >= 1e6:
		return fmt.Sprintf("$%.2fM", v/1e6)
	case v >= 1e3:
		return fmt.Sprintf("$%.1fK", v/1e3)
	default:
		return fmt.Sprintf("$%.0f", v)
	}
}

func row(label, value string) string {
	return styles.Label.Render(label) + styles.ValueStyle.Render(value)
}

func section(icon icons.Icon, title string) string {
	return styles.Section.Render(icon.String() + " " + title)
}

// Render produces the full report body
func Render(config *models.StorageConfig, res *models.StorageResults) string {
	if res == nil {
		return styles.Subtitle.Render("No results")
	}

	var sb strings.Builder
	gpuModel := config.GPUModel
	if gpuModel == "" {
		gpuModel = "unspecified"
	}
	sb.WriteString(styles.Title.Render(fmt.Sprintf("Storage plan for %d × %s GPUs", res.GPUCount, gpuModel)))
	sb.WriteString("\n")

	sb.WriteString(section(icons.Storage, "Capacity"))
	sb.WriteString("\n")
	sb.WriteString(row("Distribution", res.DistributionProfile) + "\n")
	sb.WriteString(row("Base", HumanTB(res.Capacity.BaseTB)) + "\n")
	sb.WriteString(row("Checkpoint overhead", HumanTB(res.Capacity.CheckpointTB)) + "\n")
	sb.WriteString(row("Total", HumanTB(res.Capacity.TotalTB)) + "\n\n")

	bar := widgets.DefaultShareBarConfig()
	for _, t := range res.Capacity.Tiers {
		name := styles.Tier(t.TierID).Render(t.TierID)
		sb.WriteString(fmt.Sprintf("  %s %s %s\n", name, widgets.ShareBarWithLabel(t.Percent, bar), HumanTB(t.CapacityPB*1000)))
	}
	sb.WriteString("\n")

	sb.WriteString(section(icons.GPU, "Checkpointing"))
	sb.WriteString("\n")
	cp := res.Checkpoint
	sb.WriteString(row("Model size", HumanTB(cp.ModelSizeTB)) + "\n")
	sb.WriteString(row("Nodes", fmt.Sprintf("%d", cp.NodeCount)) + "\n")
	sb.WriteString(row("Cadence", fmt.Sprintf("every %.1f min", cp.CadenceMinutes)) + "\n")
	sb.WriteString(row("Retention", fmt.Sprintf("%d × %d replicas", cp.RetentionCount, cp.ReplicationFactor)) + "\n\n")

	sb.WriteString(section(icons.Network, "Bandwidth"))
	sb.WriteString("\n")
	bw := res.Bandwidth
	sb.WriteString(row("Sustained", fmt.Sprintf("%.2f TB/s", bw.SustainedTBps)) + "\n")
	sb.WriteString(row("Burst", fmt.Sprintf("%.2f TB/s (%.0f×)", bw.BurstTBps, bw.BurstMultiplier)) + "\n")
	sb.WriteString(row("Required", fmt.Sprintf("%.2f TB/s", bw.RequiredTBps)) + "\n\n")

	sb.WriteString(section(icons.Storage, "Vendors"))
	sb.WriteString("\n")
	v := res.Vendor
	primary := v.PrimaryName
	if primary == "" {
		primary = v.Primary
	}
	secondary := v.SecondaryName
	if secondary == "" {
		secondary = v.Secondary
	}
	sb.WriteString(row("Primary", primary) + "\n")
	sb.WriteString(row("Object", secondary) + "\n")
	sb.WriteString(styles.Subtitle.Render(v.Rationale) + "\n")

	sb.WriteString(section(icons.Cost, "Cost"))
	sb.WriteString("\n")
	c := res.Costs
	sb.WriteString(row("CAPEX", Money(c.TotalCapex)) + "\n")
	sb.WriteString(row("OPEX / year", Money(c.Opex.AnnualTotal)) + "\n")
	sb.WriteString(row(fmt.Sprintf("TCO (%d yr)", len(c.TCOByYear)), Money(c.TCO5Year)) + "\n")
	sb.WriteString(row("Per GPU", Money(c.CostPerGPU)) + "\n")
	sb.WriteString(row("Per TB", Money(c.CostPerTB)) + "\n\n")

	sb.WriteString(section(icons.Power, "Power"))
	sb.WriteString("\n")
	sb.WriteString(row("Storage draw", fmt.Sprintf("%.1f kW", res.Power.TotalKW)) + "\n")
	sb.WriteString(row("Share of GPU power", fmt.Sprintf("%.1f%%", res.Power.StorageSharePct)) + "\n\n")

	sb.WriteString(section(icons.Warning, "Warnings"))
	sb.WriteString("\n")
	if len(res.Warnings) == 0 {
		sb.WriteString(widgets.StatusText("No warnings", widgets.StatusOK) + "\n")
	}
	for _, w := range res.Warnings {
		sb.WriteString(widgets.StatusText(w, widgets.StatusWarning) + "\n")
	}

	return sb.String()
}
