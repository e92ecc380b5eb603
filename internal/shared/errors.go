package shared

import "fmt"

var (
	// Configuration errors
	ErrInvalidConfig = fmt.Errorf("invalid configuration")

	// Catalog errors
	ErrConnection   = fmt.Errorf("could not connect to the song catalog")
	ErrSongNotFound = fmt.Errorf("song not found")
	ErrInvalidSong  = fmt.Errorf("invalid song")

	// Playback errors
	ErrPlayback        = fmt.Errorf("playback failed")
	ErrIndexOutOfRange = fmt.Errorf("index out of range")
	ErrUnsupported     = fmt.Errorf("not supported")

	// Input errors
	ErrInputClosed     = fmt.Errorf("input closed")
	ErrInvalidInput    = fmt.Errorf("invalid input")
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidArgument = fmt.Errorf("invalid argument")
)
