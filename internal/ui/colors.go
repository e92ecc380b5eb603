package ui

import (
	"github.com/charmbracelet/lipgloss"
)

var styles = NewPalette(Colors{
	Title:   "#7D56F4",
	Played:  "#04B575",
	Failed:  "#FF0000",
	Playing: "#FFA500",
	Help:    "#626262",
})

// Colors names the foreground color of each [Palette] style.
type Colors struct {
	Title, Played, Failed, Playing, Help string
}

// struct Palette holds the [lipgloss.Style] for each kind of text the jukebox prints
type Palette struct {
	title   lipgloss.Style
	played  lipgloss.Style
	failed  lipgloss.Style
	playing lipgloss.Style
	help    lipgloss.Style
}

func NewPalette(c Colors) *Palette {
	return &Palette{
		title:   NewBold(c.Title).MarginBottom(1),
		played:  NewBold(c.Played),
		failed:  NewBold(c.Failed),
		playing: NewStyle(c.Playing),
		help:    NewEm(c.Help),
	}
}

func NewStyle(fg string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(fg))
}

func NewBold(fg string) lipgloss.Style { return NewStyle(fg).Bold(true) }
func NewEm(fg string) lipgloss.Style   { return NewStyle(fg).Italic(true) }

// Heading renders text in the title style, for command output outside the browser.
func Heading(text string) string {
	return styles.title.Render(text)
}

// Success renders text in the style used for finished playback.
func Success(text string) string {
	return styles.played.Render(text)
}

// Warning renders text in the style used for songs that are starting.
func Warning(text string) string {
	return styles.playing.Render(text)
}
