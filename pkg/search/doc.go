/*
Package search implements the desktop search surface: a fixed index of
applications, files, settings and commands plus a web query result,
filtered by category.

Example usage:

	idx := search.NewIndex(apps.Default())
	var cur search.Cursor
	cur.Reset(idx.Search("term", search.CategoryAll))
	if r, ok := cur.Selected(); ok {
		appID, _ := r.Target()
		_ = manager.Open(appID)
	}
*/
package search
