package console

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/lorrc/merchant-support-console/internal/domain"
)

// Theme is the console's color palette. ANSI 256-color codes keep it
// usable on the dark terminals agents actually run.
type Theme struct {
	NormalText lipgloss.Color
	FaintText  lipgloss.Color

	SelectedBackground lipgloss.Color
	SelectedForeground lipgloss.Color

	StatusOpen       lipgloss.Color
	StatusInProgress lipgloss.Color
	StatusResolved   lipgloss.Color
	StatusClosed     lipgloss.Color

	PriorityNormal lipgloss.Color
	PriorityUrgent lipgloss.Color

	HeaderForeground lipgloss.Color
	BorderColor      lipgloss.Color
	HelpText         lipgloss.Color

	Success lipgloss.Color
	Error   lipgloss.Color
}

// StatusColor maps a ticket status to its display color. Unknown
// statuses render faint.
func (theme Theme) StatusColor(status domain.TicketStatus) lipgloss.Color {
	switch status {
	case domain.StatusOpen:
		return theme.StatusOpen
	case domain.StatusInProgress:
		return theme.StatusInProgress
	case domain.StatusResolved:
		return theme.StatusResolved
	case domain.StatusClosed:
		return theme.StatusClosed
	default:
		return theme.FaintText
	}
}

// PriorityColor maps a ticket priority to its display color.
func (theme Theme) PriorityColor(priority domain.TicketPriority) lipgloss.Color {
	if priority == domain.PriorityUrgent {
		return theme.PriorityUrgent
	}
	return theme.PriorityNormal
}

// DefaultTheme is the built-in dark-terminal scheme.
var DefaultTheme = Theme{
	NormalText: lipgloss.Color("252"),
	FaintText:  lipgloss.Color("245"),

	SelectedBackground: lipgloss.Color("236"),
	SelectedForeground: lipgloss.Color("255"),

	StatusOpen:       lipgloss.Color("114"), // green
	StatusInProgress: lipgloss.Color("220"), // amber
	StatusResolved:   lipgloss.Color("75"),  // blue
	StatusClosed:     lipgloss.Color("245"), // gray

	PriorityNormal: lipgloss.Color("252"),
	PriorityUrgent: lipgloss.Color("196"), // red

	HeaderForeground: lipgloss.Color("255"),
	BorderColor:      lipgloss.Color("240"),
	HelpText:         lipgloss.Color("241"),

	Success: lipgloss.Color("114"),
	Error:   lipgloss.Color("196"),
}
