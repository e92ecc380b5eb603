// Package session implements the interactive jukebox menus.
//
// A [Session] is a loop over [Screen] values. Each step renders the current screen,
// reads one line of input and asks [Session.Transition] for the next screen. Invalid input
// prints a notice and renders the same screen again from scratch.
//
// Two song lists are tracked:
//   - the playback queue, owned by the [Player]
//   - the removal picklist, a snapshot of the playback queue taken when the Remove screen is entered
//
// Both lists are emptied whenever the Main screen is entered and when the session ends.
package session
