// Package prefs stores the single local preference the desktop keeps
// between sessions: the ordered set of favorite games.
//
// A Store is a flat key/value store. FileStore keeps the values in a TOML
// document and rewrites it atomically on every Set; MemoryStore is the
// in-process variant used by tests and ephemeral sessions.
package prefs
