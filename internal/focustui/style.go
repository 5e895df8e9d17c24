package focustui

import "github.com/charmbracelet/lipgloss"

var (
	titleStyle      = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("99"))
	clockStyle      = lipgloss.NewStyle().Bold(true)
	barFilledStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("99"))
	barEmptyStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
	presetStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("250")).Padding(0, 1)
	presetActive    = lipgloss.NewStyle().Foreground(lipgloss.Color("230")).Background(lipgloss.Color("99")).Bold(true).Padding(0, 1)
	labelStyle      = lipgloss.NewStyle().Bold(true)
	valueMuted      = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	completedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("244")).Strikethrough(true)
	targetStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("99")).Bold(true)
	statusInfoStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	statusErrStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	helpStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)
