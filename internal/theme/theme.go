package theme

import (
	"github.com/charmbracelet/lipgloss"

	"agentdesk/internal/store"
)

// Theme encapsulates the visual palette for the dashboard.
type Theme struct {
	Title     lipgloss.Style
	Subtitle  lipgloss.Style
	Accent    lipgloss.Style
	Primary   lipgloss.Style
	Secondary lipgloss.Style
	Success   lipgloss.Style
	Warning   lipgloss.Style
	Danger    lipgloss.Style
	Faint     lipgloss.Style
	Highlight lipgloss.Style
	Border    lipgloss.Style
	HelpKey   lipgloss.Style
	HelpValue lipgloss.Style

	stages map[store.LeadStatus]lipgloss.Style
}

// Default returns a high-contrast palette that plays nicely with common terminals.
func Default() Theme {
	t := Theme{
		Title:     lipgloss.NewStyle().Foreground(lipgloss.Color("213")).Bold(true).Underline(true),
		Subtitle:  lipgloss.NewStyle().Foreground(lipgloss.Color("111")).Bold(true),
		Accent:    lipgloss.NewStyle().Foreground(lipgloss.Color("219")).Bold(true),
		Primary:   lipgloss.NewStyle().Foreground(lipgloss.Color("81")),
		Secondary: lipgloss.NewStyle().Foreground(lipgloss.Color("249")),
		Success:   lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true),
		Warning:   lipgloss.NewStyle().Foreground(lipgloss.Color("227")).Bold(true),
		Danger:    lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Bold(true),
		Faint:     lipgloss.NewStyle().Foreground(lipgloss.Color("243")),
		Highlight: lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true),
		Border:    lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
		HelpKey:   lipgloss.NewStyle().Foreground(lipgloss.Color("117")).Bold(true),
		HelpValue: lipgloss.NewStyle().Foreground(lipgloss.Color("249")),
	}
	t.stages = map[store.LeadStatus]lipgloss.Style{
		store.LeadNew:       lipgloss.NewStyle().Foreground(lipgloss.Color("117")),
		store.LeadContacted: lipgloss.NewStyle().Foreground(lipgloss.Color("111")),
		store.LeadQualified: lipgloss.NewStyle().Foreground(lipgloss.Color("219")),
		store.LeadShowing:   lipgloss.NewStyle().Foreground(lipgloss.Color("227")),
		store.LeadOffer:     lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		store.LeadContract:  lipgloss.NewStyle().Foreground(lipgloss.Color("205")),
		store.LeadClosed:    lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true),
		store.LeadLost:      lipgloss.NewStyle().Foreground(lipgloss.Color("243")),
	}
	return t
}

// Stage returns the style for a pipeline stage label.
func (t Theme) Stage(status store.LeadStatus) lipgloss.Style {
	if s, ok := t.stages[status]; ok {
		return s
	}
	return t.Primary
}

// Notify returns the style matching a notification type.
func (t Theme) Notify(typ store.NotificationType) lipgloss.Style {
	switch typ {
	case store.NotifySuccess:
		return t.Success
	case store.NotifyWarning:
		return t.Warning
	case store.NotifyError:
		return t.Danger
	default:
		return t.Primary
	}
}
