package ui

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/fieldlens/fieldlens/internal/models"
)

// IsInteractive checks if stdout is a terminal.
// This is useful to avoid styled output when piping to a file.
func IsInteractive() bool {
	fileInfo, _ := os.Stdout.Stat()
	return (fileInfo.Mode() & os.ModeCharDevice) != 0
}

// RenderPageHeader displays a consistent styled header for commands.
func RenderPageHeader(title, subtitle string) {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorPrimary).
		Padding(0, 1).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorSecondary).
		MarginBottom(1)

	fmt.Println(titleStyle.Render(title))
	if subtitle != "" {
		fmt.Printf("  %s\n", StyleSubtle.Render(subtitle))
	}
}

func stanceStyle(s models.Stance) lipgloss.Style {
	switch s {
	case models.StanceChampion, models.StanceSupporter:
		return StyleChampion
	case models.StanceSkeptic:
		return StyleSkeptic
	case models.StanceBlocker:
		return StyleBlocker
	default:
		return StyleSubtle
	}
}

// RenderProfileList renders a compact table of stakeholder profiles.
func RenderProfileList(profiles []*models.StakeholderProfile) string {
	if len(profiles) == 0 {
		return StyleSubtle.Render("No stakeholder profiles.") + "\n"
	}

	t := Table{
		Headers:  []string{"Name", "Role", "Department", "Stance", "Influence", "Interactions"},
		MaxWidth: 30,
	}
	for _, p := range profiles {
		t.Rows = append(t.Rows, []string{
			p.Name,
			p.Role,
			p.Department,
			string(p.Stance),
			string(p.InfluenceLevel),
			fmt.Sprintf("%d", p.TotalInteractions),
		})
	}
	return t.Render()
}

// RenderProfile renders a single stakeholder profile in detail.
func RenderProfile(p *models.StakeholderProfile) string {
	var sb strings.Builder

	title := p.Name
	if p.Role != "" {
		title += " — " + p.Role
	}
	sb.WriteString(StyleTitle.Render(title) + "\n")
	if p.Department != "" {
		sb.WriteString(StyleSubtle.Render(p.Department) + "\n")
	}

	sb.WriteString(fmt.Sprintf("  Stance:    %s (%.0f%% confidence)\n",
		stanceStyle(p.Stance).Render(string(p.Stance)), p.StanceConfidence*100))
	sb.WriteString(fmt.Sprintf("  Influence: %s", string(p.InfluenceLevel)))
	if p.InfluenceScope != "" {
		sb.WriteString(StyleSubtle.Render(" (" + p.InfluenceScope + ")"))
	}
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("  Interactions: %d\n", p.TotalInteractions))

	if len(p.TopConcerns) > 0 {
		sb.WriteString("\n" + StyleSectionTitle.Render("Top Concerns") + "\n")
		for _, c := range p.TopConcerns {
			sb.WriteString(fmt.Sprintf("  • %s %s\n", c.Description,
				StyleSubtle.Render("["+string(c.Severity)+"]")))
		}
	}
	if len(p.TopNeeds) > 0 {
		sb.WriteString("\n" + StyleSectionTitle.Render("Top Needs") + "\n")
		for _, n := range p.TopNeeds {
			sb.WriteString(fmt.Sprintf("  • %s %s\n", n.Description,
				StyleSubtle.Render("["+string(n.Priority)+"]")))
		}
	}
	if len(p.HighlightQuotes) > 0 {
		sb.WriteString("\n" + StyleSectionTitle.Render("Quotes") + "\n")
		for _, q := range p.HighlightQuotes {
			sb.WriteString(fmt.Sprintf("  %s\n", StylePrimary.Render("“"+q.Text+"”")))
		}
	}
	if len(p.Relationships) > 0 {
		sb.WriteString("\n" + StyleSectionTitle.Render("Relationships") + "\n")
		for _, r := range p.Relationships {
			sb.WriteString(fmt.Sprintf("  %s %s %s\n",
				string(r.Type), StyleSubtle.Render("→"), r.TargetName))
		}
	}

	return sb.String()
}

// RenderInfluence renders the influence rankings and derived groups.
func RenderInfluence(m *models.InfluenceMatrix) string {
	var sb strings.Builder

	sb.WriteString(StyleSectionTitle.Render("Influence Rankings") + "\n")
	if len(m.Rankings) == 0 {
		sb.WriteString(StyleSubtle.Render("  No rankings available.") + "\n")
		return sb.String()
	}

	t := Table{
		Headers: []string{"#", "Stakeholder", "Outbound", "Inbound", "Net", "Connections"},
	}
	for _, r := range m.Rankings {
		t.Rows = append(t.Rows, []string{
			fmt.Sprintf("%d", r.Rank),
			r.StakeholderName,
			fmt.Sprintf("%.1f", r.OutboundInfluence),
			fmt.Sprintf("%.1f", r.InboundInfluence),
			fmt.Sprintf("%.1f", r.NetInfluence),
			fmt.Sprintf("%d", r.TotalConnections),
		})
	}
	sb.WriteString(t.Render())

	if len(m.PowerBrokers) > 0 {
		sb.WriteString("\n  " + StyleWarning.Render("Power brokers: ") + strings.Join(m.PowerBrokers, ", ") + "\n")
	}
	if len(m.BridgeBuilders) > 0 {
		sb.WriteString("  " + StyleSuccess.Render("Bridge builders: ") + strings.Join(m.BridgeBuilders, ", ") + "\n")
	}
	if len(m.IsolatedStakeholders) > 0 {
		sb.WriteString("  " + StyleSubtle.Render("Isolated: "+strings.Join(m.IsolatedStakeholders, ", ")) + "\n")
	}

	return sb.String()
}

// RenderReport renders the discovery report for terminal display.
func RenderReport(r *models.DiscoveryReport) string {
	var sb strings.Builder

	sb.WriteString(StyleHeader.Render(r.Title) + "\n")
	if !r.GeneratedAt.IsZero() {
		sb.WriteString(StyleSubtle.Render("Generated "+r.GeneratedAt.Format("2006-01-02 15:04")) + "\n")
	}
	sb.WriteString("\n")

	if r.ExecutiveSummary != "" {
		sb.WriteString(StyleSummaryBox.Render(r.ExecutiveSummary) + "\n\n")
	}

	if s := r.Summary; s != nil {
		sb.WriteString(fmt.Sprintf("Stakeholders: %d   Interactions: %d\n",
			s.TotalStakeholders, s.TotalInteractions))
		if len(s.StanceBreakdown) > 0 {
			var parts []string
			for _, stance := range []models.Stance{
				models.StanceChampion, models.StanceSupporter, models.StanceNeutral,
				models.StanceSkeptic, models.StanceBlocker,
			} {
				if n := s.StanceBreakdown[stance]; n > 0 {
					parts = append(parts, fmt.Sprintf("%s %d",
						stanceStyle(stance).Render(string(stance)), n))
				}
			}
			sb.WriteString("Stances: " + strings.Join(parts, "  ") + "\n")
		}
		sb.WriteString("\n")
	}

	if len(r.Themes) > 0 {
		sb.WriteString(StyleSectionTitle.Render("Themes") + "\n")
		for _, th := range r.Themes {
			sb.WriteString(fmt.Sprintf("  • %s %s\n", th.Name,
				StyleSubtle.Render(fmt.Sprintf("(%d stakeholders, %s)", th.Frequency, th.Severity))))
		}
		sb.WriteString("\n")
	}
	if len(r.Conflicts) > 0 {
		sb.WriteString(StyleSectionTitle.Render("Conflicts") + "\n")
		for _, c := range r.Conflicts {
			sb.WriteString(fmt.Sprintf("  • %s %s\n", c.Description,
				StyleError.Render("["+string(c.Severity)+"]")))
		}
		sb.WriteString("\n")
	}
	if r.Influence != nil && len(r.Influence.Rankings) > 0 {
		sb.WriteString(RenderInfluence(r.Influence) + "\n")
	}
	if len(r.Recommendations) > 0 {
		sb.WriteString(StyleSectionTitle.Render("Recommendations") + "\n")
		for i, rec := range r.Recommendations {
			sb.WriteString(fmt.Sprintf("  %d. %s\n", i+1, rec))
		}
		sb.WriteString("\n")
	}
	if len(r.ActionPlan) > 0 {
		sb.WriteString(StyleSectionTitle.Render("Action Plan") + "\n")
		for _, a := range r.ActionPlan {
			line := fmt.Sprintf("  • %s", a.Title)
			if !a.DueDate.IsZero() {
				line += StyleSubtle.Render(" (due " + a.DueDate.Format("2006-01-02") + ")")
			}
			sb.WriteString(line + "\n")
		}
	}

	return sb.String()
}
