package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/rlch/beancomplete"
)

// Semantic colors, one per entry kind.
var (
	colorField    = lipgloss.Color("#10b981") // green-500
	colorMethod   = lipgloss.Color("#06b6d4") // cyan-500
	colorConstant = lipgloss.Color("#eab308") // yellow-500
	colorType     = lipgloss.Color("#d946ef") // fuchsia-500
	colorVariable = lipgloss.Color("#f59e0b") // amber-500
	colorError    = lipgloss.Color("#ef4444") // red-500

	// UI colors.
	colorDim    = lipgloss.Color("#6b7280") // gray-500
	colorMuted  = lipgloss.Color("#9ca3af") // gray-400
	colorBorder = lipgloss.Color("#374151") // gray-700
	colorAccent = lipgloss.Color("#3b82f6") // blue-500
)

// Styles holds all lipgloss styles for the playground.
type Styles struct {
	// Kind badges
	Field    lipgloss.Style
	Method   lipgloss.Style
	Constant lipgloss.Style
	Type     lipgloss.Style
	Variable lipgloss.Style

	// Text styles
	Dim        lipgloss.Style
	Muted      lipgloss.Style
	Bold       lipgloss.Style
	Prompt     lipgloss.Style
	Selected   lipgloss.Style
	Deprecated lipgloss.Style
	Error      lipgloss.Style
	Popup      lipgloss.Style

	// Symbols
	SymbolPointer string

	// Layout
	KindWidth int
	MaxItems  int
}

// DefaultStyles returns the default playground styles.
func DefaultStyles() *Styles {
	return &Styles{
		Field:    lipgloss.NewStyle().Foreground(colorField).Bold(true),
		Method:   lipgloss.NewStyle().Foreground(colorMethod).Bold(true),
		Constant: lipgloss.NewStyle().Foreground(colorConstant).Bold(true),
		Type:     lipgloss.NewStyle().Foreground(colorType).Bold(true),
		Variable: lipgloss.NewStyle().Foreground(colorVariable).Bold(true),

		Dim:        lipgloss.NewStyle().Foreground(colorDim),
		Muted:      lipgloss.NewStyle().Foreground(colorMuted),
		Bold:       lipgloss.NewStyle().Bold(true),
		Prompt:     lipgloss.NewStyle().Foreground(colorAccent).Bold(true),
		Selected:   lipgloss.NewStyle().Foreground(lipgloss.Color("#f8fafc")).Bold(true), // slate-50
		Deprecated: lipgloss.NewStyle().Foreground(colorDim).Strikethrough(true),
		Error:      lipgloss.NewStyle().Foreground(colorError).Bold(true),
		Popup: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Padding(0, 1),

		SymbolPointer: "❯",

		// Fixed width for kind alignment
		KindWidth: 8,
		MaxItems:  10,
	}
}

// Kind returns the badge style for an entry kind.
func (s *Styles) Kind(k beancomplete.EntryKind) lipgloss.Style {
	switch k {
	case beancomplete.KindMethod:
		return s.Method
	case beancomplete.KindEnumConstant:
		return s.Constant
	case beancomplete.KindType:
		return s.Type
	case beancomplete.KindVariable:
		return s.Variable
	default:
		return s.Field
	}
}
