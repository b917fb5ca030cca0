package apps

// Identifiers of the built-in applications.
const (
	Files    = "Files"
	Browser  = "Browser"
	Terminal = "Terminal"
	Mail     = "Mail"
	Calendar = "Calendar"
	Cloud    = "Cloud"
	Messages = "Messages"
	Games    = "Games"
	Settings = "Settings"
)

var builtin = []Descriptor{
	{ID: Files, Title: "File Explorer", DefaultSize: Size{850, 600}},
	{ID: Browser, Title: "Web Browser", DefaultSize: Size{900, 650}},
	{ID: Terminal, Title: "Terminal", DefaultSize: Size{700, 500}},
	{ID: Mail, Title: "Mail Client", DefaultSize: Size{950, 600}},
	{ID: Calendar, Title: "Calendar", DefaultSize: Size{850, 650}},
	{ID: Cloud, Title: "Cloud Storage", DefaultSize: Size{850, 600}},
	{ID: Messages, Title: "Messaging", DefaultSize: Size{800, 550}},
	{ID: Games, Title: "Game Center", DefaultSize: Size{900, 650}},
	{ID: Settings, Title: "System Settings", DefaultSize: Size{900, 600}},
}

// Default returns the registry of built-in applications. Taskbar order
// follows the declaration order above.
func Default() *Registry {
	reg, err := NewRegistry(builtin...)
	if err != nil {
		// builtin is static; a failure here is a programming error.
		panic(err)
	}
	return reg
}
