package export

import "github.com/charmbracelet/lipgloss/v2"

var (
	PostTitleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	PostSlugStyle   = lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("245"))
	PostsCountStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("36")).Bold(true)
	SpacerStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
)
