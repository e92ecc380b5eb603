package session

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/desertthunder/jukebox/internal/models"
	"github.com/desertthunder/jukebox/internal/shared"
)

// maxLine is the longest input line read as a choice. Longer lines are discarded and rejected.
const maxLine = 1024

// ErrPowerOff is returned by [Session.Run] when the user powers the jukebox off.
var ErrPowerOff = fmt.Errorf("powered off")

// Player is the playback capability driven by the menus.
type Player interface {
	Add(song models.Song)
	RemoveAt(i int) (models.Song, error)
	Clear()
	Queue() []models.Song
	PlayOne(ctx context.Context, song models.Song) error
	PlayAll(ctx context.Context, songs []models.Song) error
}

// Session is one run of the jukebox menus over a fixed catalog.
type Session struct {
	catalog []models.Song
	player  Player
	builder []models.Song
	input   *bufio.Reader
	output  io.Writer
	logger  *log.Logger
}

// Options configures a [Session].
type Options struct {
	Catalog []models.Song
	Player  Player
	Input   io.Reader
	Output  io.Writer
	Logger  *log.Logger
}

// New creates a [Session]. The catalog is copied and never changes afterwards.
func New(opts Options) *Session {
	if opts.Input == nil {
		opts.Input = os.Stdin
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}

	return &Session{
		catalog: slices.Clone(opts.Catalog),
		player:  opts.Player,
		input:   bufio.NewReader(opts.Input),
		output:  opts.Output,
		logger:  opts.Logger,
	}
}

// Run drives the menus starting at [Main] until the user powers off or input ends.
//
// Powering off returns [ErrPowerOff]; end of input returns [shared.ErrInputClosed].
// Both lists are empty when Run returns.
func (s *Session) Run(ctx context.Context) error {
	defer s.reset()

	screen := Main
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		if screen.Terminal() {
			s.write(poweringOff)
			return ErrPowerOff
		}

		next, err := s.Step(ctx, screen)
		if err != nil {
			return err
		}

		if next != screen {
			s.logger.Debug("screen changed", "from", screen, "to", next)
		}
		screen = next
	}
}

// Step enters screen, renders it, reads one line and returns the next screen.
func (s *Session) Step(ctx context.Context, screen Screen) (Screen, error) {
	switch screen {
	case Main:
		s.reset()
		s.write(mainText)
	case Play:
		s.write(playHeader)
		s.printSongs(s.catalog)
		s.write(playFooter)
	case Again:
		s.write(againText)
	case Queue:
		s.write(queueHeader)
		s.printSongs(s.catalog)
		s.write(queueFooter)
	case Playlist:
		s.write(playlistHeader)
		s.printSongs(s.player.Queue())
		s.write(playlistFooter)
	case Add:
		s.write(addHeader)
		s.printSongs(s.catalog)
		s.write(addFooter)
	case Remove:
		s.write(removeHeader)
		queue := s.player.Queue()
		if len(queue) == 0 {
			s.write(removeEmpty)
			return Main, nil
		}
		s.builder = queue
		s.printSongs(s.builder)
		s.write(removeFooter)
	case QueuePlay:
		if err := s.player.PlayAll(ctx, s.player.Queue()); err != nil {
			s.logger.Warn("playlist playback incomplete", "error", err)
			s.write(playAllFailed)
		}
		s.write(queuePlayText)
	case QueuePlayOptions:
		s.write(queuePlayOptionsText)
	case PowerOff:
		return PowerOff, nil
	default:
		return Main, fmt.Errorf("%w: unknown screen %d", shared.ErrInvalidInput, int(screen))
	}

	input, err := s.readLine()
	if err != nil {
		return screen, err
	}
	return s.Transition(ctx, screen, input), nil
}

// Transition applies input to screen and returns the next screen.
//
// Input is compared after trimming and lower-casing. Invalid input prints a notice and
// returns the screen to render again, leaving the playback queue untouched.
func (s *Session) Transition(ctx context.Context, screen Screen, input string) Screen {
	action := strings.ToLower(strings.TrimSpace(input))

	switch screen {
	case Main:
		switch action {
		case "1":
			return Play
		case "2":
			return Queue
		case "3":
			return PowerOff
		}
	case Play:
		if i, ok := selection(action, len(s.catalog)); ok {
			if err := s.player.PlayOne(ctx, s.catalog[i]); err != nil {
				s.write(playFailed)
			}
			s.write("\n")
			return Again
		}
		if action == "main" {
			return Main
		}
	case Again:
		switch action {
		case "y":
			return Play
		case "n":
			return PowerOff
		case "main":
			return Main
		}
	case Queue, Add:
		if i, ok := selection(action, len(s.catalog)); ok {
			s.player.Add(s.catalog[i])
			s.write("\n")
			return Playlist
		}
		if action == "main" {
			return Main
		}
	case Playlist:
		switch action {
		case "main":
			return Main
		case "play":
			return QueuePlay
		case "add":
			return Add
		case "remove":
			return Remove
		}
	case Remove:
		builder := s.builder
		s.builder = nil
		if i, ok := selection(action, len(builder)); ok {
			if _, err := s.player.RemoveAt(i); err != nil {
				s.logger.Error("could not remove song", "position", i+1, "error", err)
			}
			return Remove
		}
		switch action {
		case "main":
			return Main
		case "play":
			return QueuePlay
		case "add":
			return Add
		}
	case QueuePlay, QueuePlayOptions:
		switch action {
		case "play":
			return QueuePlay
		case "main":
			return Main
		}
		s.write(notValid)
		return QueuePlayOptions
	}

	s.write(notValid)
	return screen
}

// Catalog returns a copy of the songs offered by the menus.
func (s *Session) Catalog() []models.Song {
	return slices.Clone(s.catalog)
}

// Builder returns a copy of the removal picklist.
func (s *Session) Builder() []models.Song {
	return slices.Clone(s.builder)
}

func (s *Session) reset() {
	s.builder = nil
	s.player.Clear()
}

func (s *Session) readLine() (string, error) {
	s.write(prompt)

	var line []byte
	for {
		chunk, err := s.input.ReadSlice('\n')
		if len(line) <= maxLine {
			line = append(line, chunk...)
		}

		if errors.Is(err, bufio.ErrBufferFull) {
			continue
		}
		if errors.Is(err, io.EOF) {
			if len(line) == 0 {
				return "", shared.ErrInputClosed
			}
			break
		}
		if err != nil {
			return "", fmt.Errorf("failed to read input: %w", err)
		}
		break
	}

	// empty input is rejected by every screen
	if len(line) > maxLine {
		s.logger.Warn("discarding oversized input", "limit", maxLine)
		return "", nil
	}
	return string(line), nil
}

func (s *Session) printSongs(songs []models.Song) {
	for i, song := range songs {
		s.write(fmt.Sprintf(songLine, i+1, song.Title, song.Artist, song.Link))
	}
}

func (s *Session) write(text string) {
	if _, err := io.WriteString(s.output, text); err != nil {
		s.logger.Error("failed to write output", "error", err)
	}
}

// selection parses a 1-based menu choice made of ASCII digits and returns its 0-based index.
func selection(action string, n int) (int, bool) {
	if action == "" {
		return 0, false
	}
	for _, r := range action {
		if r < '0' || r > '9' {
			return 0, false
		}
	}

	choice, err := strconv.Atoi(action)
	if err != nil || choice < 1 || choice > n {
		return 0, false
	}
	return choice - 1, true
}
