/*
Package apps provides the application registry for the webdesk desktop.

The registry is a static mapping from an application identifier to its
display title, default window size and a content renderer. It is built
once at start-up and never mutated afterwards; the window manager only
reads descriptors from it and never looks at rendered content.

Example usage:

	reg := apps.Default()
	desc, ok := reg.Lookup("Terminal")
	if !ok {
		// unknown application
	}
	fmt.Println(desc.Title, desc.DefaultSize.Width, desc.DefaultSize.Height)
*/
package apps
