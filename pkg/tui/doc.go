/*
Package tui renders a desktop in the terminal with bubbletea.

The model is a thin front end over a desktop.Desktop: every key either maps
to a desktop or window-manager operation, or edits the search query. The
view is rebuilt from desktop.State on every update and once a second for
the clock.

Keys: 1-9 launch the taskbar applications, tab cycles focus, m minimizes,
x closes, f maximizes, the arrows drag the focused window, shift+arrows
resize it, ctrl+k opens search, esc closes it, q quits.
*/
package tui
