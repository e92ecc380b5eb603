// Package player owns the playback queue and hands songs to an external [Launcher].
//
// A [Player] never decodes audio. [BrowserLauncher] passes the song link to the system URL opener and returns
// immediately; [CommandLauncher] runs a configured media player (mpv, vlc, ...) and blocks until it exits.
package player
