package tui

import "github.com/charmbracelet/lipgloss"

var (
	accentColor = lipgloss.Color("#6366f1")
	mutedColor  = lipgloss.Color("244")

	titleStyle         = lipgloss.NewStyle().Bold(true).Foreground(accentColor)
	taglineStyle       = lipgloss.NewStyle().Foreground(mutedColor).Italic(true)
	sectionHeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("81"))
	errorStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	helperStyle        = lipgloss.NewStyle().Foreground(mutedColor)
	listItemStyle      = lipgloss.NewStyle()
	currentLineStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#0f0f0f")).Background(lipgloss.Color("#8ecae6"))
	currentRowStyle    = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(accentColor)

	tabStyle       = lipgloss.NewStyle().Padding(0, 1).Foreground(mutedColor)
	activeTabStyle = lipgloss.NewStyle().Padding(0, 1).Bold(true).Foreground(lipgloss.Color("#ffffff")).Background(accentColor)

	statCardStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("#56526e")).Padding(0, 2).MarginRight(1)
	statValueStyle = lipgloss.NewStyle().Bold(true)

	buttonStyle         = lipgloss.NewStyle().Padding(0, 1).Foreground(lipgloss.Color("#ffffff")).Background(accentColor)
	buttonDisabledStyle = lipgloss.NewStyle().Padding(0, 1).Foreground(lipgloss.Color("#d1d5db")).Background(lipgloss.Color("#6b7280"))
	buttonDangerStyle   = lipgloss.NewStyle().Padding(0, 1).Foreground(lipgloss.Color("#ffffff")).Background(lipgloss.Color("#dc2626"))

	chipStyle       = lipgloss.NewStyle().Padding(0, 1).MarginRight(1).Foreground(mutedColor)
	activeChipStyle = lipgloss.NewStyle().Padding(0, 1).MarginRight(1).Bold(true).Foreground(lipgloss.Color("#0f0f0f")).Background(lipgloss.Color("#ffd166"))

	taskStyle      = lipgloss.NewStyle()
	doneTaskStyle  = lipgloss.NewStyle().Strikethrough(true).Foreground(mutedColor)
	openStateStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#f59e0b"))
	doneStateStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#a3be8c"))
	tagStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("#818cf8"))
	activeTagStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#0f0f0f")).Background(lipgloss.Color("#818cf8"))

	alertStyle      = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#ffffff")).Background(lipgloss.Color("#b91c1c")).Padding(0, 1)
	formBoxStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("#56526e")).Padding(0, 1)
	modalBoxStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(accentColor).Padding(1, 2)
	confirmBoxStyle = lipgloss.NewStyle().Border(lipgloss.DoubleBorder()).BorderForeground(lipgloss.Color("#dc2626")).Padding(1, 2)
)
