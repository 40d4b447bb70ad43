package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/zjrosen/inkdown/internal/config"
	"github.com/zjrosen/inkdown/internal/decoration"
)

// Styles maps decoration kinds to their visual treatment. The mapping is
// configuration; the engine only ever speaks in kinds.
type Styles struct {
	Heading       lipgloss.Style
	Bold          lipgloss.Style
	Italic        lipgloss.Style
	BoldItalic    lipgloss.Style
	Strikethrough lipgloss.Style
	Code          lipgloss.Style
	CodeBlock     lipgloss.Style
	Link          lipgloss.Style
	Image         lipgloss.Style
	Blockquote    lipgloss.Style
	ListBullet    lipgloss.Style
	Checkbox      lipgloss.Style
	Rule          lipgloss.Style
	StatusBar     lipgloss.Style
	Cursor        lipgloss.Style
}

// NewStyles builds the style table from the configured theme.
func NewStyles(theme config.ThemeConfig) Styles {
	color := func(hex string) lipgloss.Color { return lipgloss.Color(hex) }
	return Styles{
		Heading:       lipgloss.NewStyle().Bold(true).Foreground(color(theme.Heading)),
		Bold:          lipgloss.NewStyle().Bold(true).Foreground(color(theme.Bold)),
		Italic:        lipgloss.NewStyle().Italic(true).Foreground(color(theme.Italic)),
		BoldItalic:    lipgloss.NewStyle().Bold(true).Italic(true).Foreground(color(theme.Bold)),
		Strikethrough: lipgloss.NewStyle().Strikethrough(true).Foreground(color(theme.Strikethrough)),
		Code:          lipgloss.NewStyle().Foreground(color(theme.Code)),
		CodeBlock:     lipgloss.NewStyle().Background(color(theme.CodeBlockBg)),
		Link:          lipgloss.NewStyle().Underline(true).Foreground(color(theme.Link)),
		Image:         lipgloss.NewStyle().Foreground(color(theme.Image)),
		Blockquote:    lipgloss.NewStyle().Foreground(color(theme.Blockquote)),
		ListBullet:    lipgloss.NewStyle().Foreground(color(theme.ListBullet)),
		Checkbox:      lipgloss.NewStyle().Foreground(color(theme.Checkbox)),
		Rule:          lipgloss.NewStyle().Foreground(color(theme.Rule)),
		StatusBar:     lipgloss.NewStyle().Reverse(true),
		Cursor:        lipgloss.NewStyle().Reverse(true),
	}
}

// styleFor combines the styles of every kind covering a segment. Hide is
// handled by the renderer before this is called.
func (s Styles) styleFor(kinds []decoration.Kind) lipgloss.Style {
	st := lipgloss.NewStyle()
	for _, k := range kinds {
		switch k {
		case decoration.Heading, decoration.Heading1, decoration.Heading2, decoration.Heading3,
			decoration.Heading4, decoration.Heading5, decoration.Heading6:
			st = st.Inherit(s.Heading)
		case decoration.Bold:
			st = st.Inherit(s.Bold)
		case decoration.Italic:
			st = st.Inherit(s.Italic)
		case decoration.BoldItalic:
			st = st.Inherit(s.BoldItalic)
		case decoration.Strikethrough:
			st = st.Inherit(s.Strikethrough)
		case decoration.Code:
			st = st.Inherit(s.Code)
		case decoration.CodeBlock:
			st = st.Inherit(s.CodeBlock)
		case decoration.Link:
			st = st.Inherit(s.Link)
		case decoration.Image:
			st = st.Inherit(s.Image)
		}
	}
	return st
}
