// Package tui is the terminal control panel: six job form inputs, a Run
// button and a live view of the operator log.
//
// The model listens on panel.Log.Updated and re-renders the log viewport
// after every append, following the tail unless the operator has scrolled
// up. The status line shows the log stream state.
package tui
