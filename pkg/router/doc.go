// Package router provides the HTTP router of the webdesk API: regex
// pattern matching with named parameters, a middleware chain, and the
// middlewares every API request goes through.
//
// The router supports the following patterns:
//   - Exact match: /health
//   - Named parameters: /api/v1/apps/:id/open
//   - Wildcard matching: /static/*
//
// A path that matches a route under another method answers 405 with an
// Allow header; a path no route matches answers 404.
//
// Example usage:
//
//	r := router.New()
//	r.Use(router.RequestIDMiddleware(), router.LoggingMiddleware(log), router.RecoveryMiddleware(log))
//	r.POST("/api/v1/apps/:id/open", openHandler)
//	http.ListenAndServe(":8080", r)
package router
