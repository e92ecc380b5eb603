package ui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/desertthunder/jukebox/internal/models"
)

// ViewState represents the current view in the TUI.
type ViewState int

const (
	CatalogView ViewState = iota
	QueueView
)

// Player is the playback capability used by the browser.
type Player interface {
	Add(song models.Song)
	RemoveAt(i int) (models.Song, error)
	Clear()
	Queue() []models.Song
	PlayOne(ctx context.Context, song models.Song) error
	PlayAll(ctx context.Context, songs []models.Song) error
}

// Model represents the TUI application state.
type Model struct {
	ctx       context.Context
	view      ViewState
	catalog   models.SongRepository
	player    Player
	width     int
	height    int
	songList  list.Model
	queueList list.Model
	status    string
	err       error
	help      help.Model
	keys      keyMap
}

// NewModel creates a new TUI model with the provided dependencies.
func NewModel(ctx context.Context, catalog models.SongRepository, player Player) *Model {
	m := &Model{
		ctx:     ctx,
		view:    CatalogView,
		catalog: catalog,
		player:  player,
		help:    help.New(),
		keys:    newKeyMap(),
	}
	m.songList = newList("Karaoke Catalog", nil)
	m.queueList = newList("Playlist", nil)
	return m
}

func newList(title string, songs []models.Song) list.Model {
	l := list.New(songItems(songs), list.NewDefaultDelegate(), 0, 0)
	l.Title = title
	return l
}

// Init loads the catalog.
func (m *Model) Init() tea.Cmd {
	return m.loadSongs()
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.songList.SetSize(msg.Width-4, msg.Height-8)
		m.queueList.SetSize(msg.Width-4, msg.Height-8)
		return m, nil

	case tea.KeyMsg:
		switch m.view {
		case CatalogView:
			return m.handleCatalogKeys(msg)
		case QueueView:
			return m.handleQueueKeys(msg)
		}

	case Msg:
		return m.handleMsg(msg)
	}

	return m.updateLists(msg)
}

func (m *Model) handleMsg(msg Msg) (tea.Model, tea.Cmd) {
	switch msg.kind {
	case MsgSongsLoaded:
		data := msg.data.(songsLoaded)
		if data.err != nil {
			m.err = data.err
			return m, nil
		}
		m.songList.SetItems(songItems(data.songs))
		m.status = fmt.Sprintf("%d songs loaded", len(data.songs))
	case MsgPlaybackFinished:
		data := msg.data.(playbackFinished)
		if data.err != nil {
			m.status = styles.failed.Render(fmt.Sprintf("Could not play %s: %v", data.label, data.err))
		} else {
			m.status = styles.played.Render("Played " + data.label)
		}
	}
	return m, nil
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	if m.err != nil {
		return styles.failed.Render(fmt.Sprintf("Error: %v\n\nPress q to quit", m.err))
	}

	switch m.view {
	case CatalogView:
		return m.render(m.songList, m.keys.play, m.keys.add, m.keys.toggle, m.keys.quit)
	case QueueView:
		return m.render(m.queueList, m.keys.playAll, m.keys.remove, m.keys.clear, m.keys.back, m.keys.quit)
	default:
		return ""
	}
}

func (m *Model) render(l list.Model, bindings ...key.Binding) string {
	helpView := m.help.ShortHelpView(bindings)
	status := ""
	if m.status != "" {
		status = "\n" + styles.help.Render(m.status)
	}
	return fmt.Sprintf("%s%s\n\n%s", l.View(), status, helpView)
}

func (m *Model) handleCatalogKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.songList.FilterState() == list.Filtering {
		return m.updateLists(msg)
	}

	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.toggle):
		m.showQueue()
		return m, nil
	case key.Matches(msg, m.keys.play):
		if song, ok := selectedSong(m.songList); ok {
			m.status = styles.playing.Render("Now playing: " + song.String())
			return m, m.playOne(song)
		}
		return m, nil
	case key.Matches(msg, m.keys.add):
		if song, ok := selectedSong(m.songList); ok {
			m.player.Add(song)
			m.status = fmt.Sprintf("Added %s (%d in playlist)", song, len(m.player.Queue()))
		}
		return m, nil
	}

	return m.updateLists(msg)
}

func (m *Model) handleQueueKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.toggle), key.Matches(msg, m.keys.back):
		m.view = CatalogView
		return m, nil
	case key.Matches(msg, m.keys.remove):
		if _, ok := selectedSong(m.queueList); ok {
			if song, err := m.player.RemoveAt(m.queueList.Index()); err == nil {
				m.status = "Removed " + song.String()
			}
			m.refreshQueue()
		}
		return m, nil
	case key.Matches(msg, m.keys.clear):
		m.player.Clear()
		m.refreshQueue()
		m.status = "Playlist cleared"
		return m, nil
	case key.Matches(msg, m.keys.playAll):
		queue := m.player.Queue()
		if len(queue) == 0 {
			m.status = styles.playing.Render("The playlist is empty")
			return m, nil
		}
		m.status = styles.playing.Render(fmt.Sprintf("Playing %d songs", len(queue)))
		return m, m.playAll(queue)
	}

	return m.updateLists(msg)
}

func (m *Model) showQueue() {
	m.refreshQueue()
	m.view = QueueView
}

func (m *Model) refreshQueue() {
	m.queueList.SetItems(songItems(m.player.Queue()))
}

func (m *Model) updateLists(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.view {
	case CatalogView:
		m.songList, cmd = m.songList.Update(msg)
	case QueueView:
		m.queueList, cmd = m.queueList.Update(msg)
	}
	return m, cmd
}

func (m *Model) loadSongs() tea.Cmd {
	return func() tea.Msg {
		songs, err := m.catalog.FindAll(m.ctx)
		return songsLoadedMsg(songs, err)
	}
}

func (m *Model) playOne(song models.Song) tea.Cmd {
	return func() tea.Msg {
		return playbackFinishedMsg(song.String(), m.player.PlayOne(m.ctx, song))
	}
}

func (m *Model) playAll(songs []models.Song) tea.Cmd {
	return func() tea.Msg {
		return playbackFinishedMsg(fmt.Sprintf("%d songs", len(songs)), m.player.PlayAll(m.ctx, songs))
	}
}

func selectedSong(l list.Model) (models.Song, bool) {
	item, ok := l.SelectedItem().(songItem)
	if !ok {
		return models.Song{}, false
	}
	return item.song, true
}
