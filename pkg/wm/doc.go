/*
Package wm provides window management for the webdesk desktop.

The Manager is the single writer of the session state: which applications
have an open window, which of those are minimized, which one is focused and
how the windows are stacked. Each application has at most one window;
opening an application that already has one focuses it instead.

A Window translates pointer input into geometry for itself only. Drag and
resize are mutually exclusive interaction modes, resizing is clamped to a
400x300 minimum, and a maximized window ignores pointer geometry until it
is restored to the frame it held before.

Example usage:

	manager := wm.NewManager(wm.Config{
		ScreenWidth:  1920,
		ScreenHeight: 1080,
		Registry:     apps.Default(),
	})
	if err := manager.Open(apps.Terminal); err != nil {
		// unknown application
	}
	_ = manager.PointerDown(apps.Terminal, wm.RegionTitle, wm.Point{X: 110, Y: 95})
	_ = manager.PointerMove(apps.Terminal, wm.Point{X: 300, Y: 250})
	_ = manager.PointerUp(apps.Terminal)
	snap := manager.Snapshot()
*/
package wm
