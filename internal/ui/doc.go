// Package ui implements the catalog browser using bubbletea's Elm architecture.
//
// The browser has two views:
//  1. [CatalogView] : every song in the catalog; enter plays the highlighted song, a queues it
//  2. [QueueView] : the playback queue; d removes the highlighted entry, c clears, p plays everything
//
// The [Model] implements the standard Init/Update/View pattern and receives results of catalog loads
// and playback through the [Msg] union type. Playback runs inside [tea.Cmd] functions so a blocking
// external player never freezes the interface.
package ui
