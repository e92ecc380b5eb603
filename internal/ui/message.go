package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/desertthunder/jukebox/internal/models"
)

// MsgKind enumerates all message types in the application.
type MsgKind int

// Msg represents all possible messages in the TUI (Elm-style message union).
type Msg struct {
	kind MsgKind
	data any
}

var (
	_ tea.Msg = Msg{}
)

const (
	MsgSongsLoaded MsgKind = iota
	MsgPlaybackFinished
)

type songsLoaded struct {
	songs []models.Song
	err   error
}

type playbackFinished struct {
	label string
	err   error
}

// songsLoadedMsg is the constructor for [MsgSongsLoaded]
func songsLoadedMsg(songs []models.Song, err error) Msg {
	return Msg{kind: MsgSongsLoaded, data: songsLoaded{songs, err}}
}

// playbackFinishedMsg is the constructor for [MsgPlaybackFinished]
func playbackFinishedMsg(label string, err error) Msg {
	return Msg{kind: MsgPlaybackFinished, data: playbackFinished{label, err}}
}
