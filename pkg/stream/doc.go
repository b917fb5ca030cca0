// Package stream pushes desktop changes to browser clients over
// WebSocket connections.
//
// A Hub is a wm.Listener: every window event it receives is broadcast to
// the connected clients as JSON. A client first receives a full state
// message so it can render without a separate request. Clients that stop
// reading are disconnected rather than allowed to stall the desktop.
package stream
