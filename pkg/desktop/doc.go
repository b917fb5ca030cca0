/*
Package desktop composes one visible desktop: the application registry, the
window manager, the search surface, the widgets, the favorite games and the
running game.

Every front end (the HTTP API, the terminal desktop, tests) drives a
Desktop rather than its parts, so launch toasts, the search shortcut and
game teardown behave the same everywhere.

Example usage:

	d, err := desktop.New(desktop.Config{
		ScreenWidth:  1920,
		ScreenHeight: 1080,
		Prefs:        prefs.NewMemoryStore(),
	})
	if err != nil {
		return err
	}
	d.Start(ctx)
	defer d.Close()

	d.HandleKey(desktop.KeyEvent{Key: "k", Ctrl: true})
	d.SetQuery("term", search.CategoryAll)
	_ = d.SelectHighlighted()
*/
package desktop
