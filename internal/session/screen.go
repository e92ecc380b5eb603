package session

// Screen identifies a menu of the jukebox session.
type Screen int

const (
	Main Screen = iota
	Play
	Again
	Queue
	Playlist
	Add
	Remove
	QueuePlay
	QueuePlayOptions
	PowerOff
)

func (s Screen) String() string {
	switch s {
	case Main:
		return "main"
	case Play:
		return "play"
	case Again:
		return "again"
	case Queue:
		return "queue"
	case Playlist:
		return "playlist"
	case Add:
		return "add"
	case Remove:
		return "remove"
	case QueuePlay:
		return "queue-play"
	case QueuePlayOptions:
		return "queue-play-options"
	case PowerOff:
		return "power-off"
	default:
		return "unknown"
	}
}

// Terminal reports whether the session ends on this screen.
func (s Screen) Terminal() bool {
	return s == PowerOff
}
