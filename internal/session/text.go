package session

const (
	prompt        = "> "
	notValid      = "That is not a valid choice.\n\n"
	songLine      = "%d. Title: %s, Artist: %s, Link: %s\n"
	poweringOff   = "Powering off, have a nice day.\n"
	playFailed    = "That song could not be played.\n"
	playAllFailed = "Some songs in the playlist could not be played.\n"
)

const mainText = `
Welcome to the main menu please select a option:
1. Play a song.
2. Create and play a playlist.
3. Power off.

`

const (
	playHeader = `
Which song do you want to play:
`
	playFooter = `
type main to go back to main menu

`
)

const againText = `
Play another song? (Y/N)
Note: selecting no(N) will power off the system.
Typing in 'main' will bring you back to the main menu

`

const (
	queueHeader = `
The playlist is currently empty.
Which song do you want to add to the playlist?
`
	queueFooter = playFooter
)

const (
	playlistHeader = `
Current song(s) in playlist:
`
	playlistFooter = `
Would you like to 'play' the list now? type in 'play'.
If you want to add more songs, type in 'add'.
If you want to remove a song, type in 'remove'.
If you want to return to the main menu, type in 'main'.
Note: If you return to main menu, your playlist will be deleted.

`
)

const (
	addHeader = `
Which other song do you want to add?
`
	addFooter = `
type in main to return to main menu, also discards your playlist.
note: repeated songs will not be played or added, only add one of each.

`
)

const (
	removeHeader = `
Which song do you want to remove?
`
	removeEmpty = `The playlist is empty returning to main.

`
	removeFooter = `
Type 'play' to play the current playlist.
Type 'add' to add songs to the playlist.
Type 'main' to return to the main menu.
note: returning to the main menu will discard your playlist.

`
)

const queuePlayText = `
If you want to play the songlist again type in 'play'
If you want to return to the main menu type in 'main'
Note: returning to the main menu will erase your playlist.

`

const queuePlayOptionsText = `
If you want to play the song list again, type in 'play'
If you want to return to the main menu, type in 'main'
Note: returning to the main menu will erase your playlist.
`
