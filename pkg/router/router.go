package router

import (
	"net/http"
	"regexp"
	"sort"
	"strings"
	"sync"
)

// Route is one registered method and pattern.
type Route struct {
	Method      string
	Pattern     string
	Handler     http.Handler
	Middlewares []Middleware
	Params      []string
	Regex       *regexp.Regexp
}

// Router dispatches requests by method and path pattern. Patterns are
// literal paths with ":name" segments and an optional "/*" tail.
type Router struct {
	mu         sync.RWMutex
	routes     map[string][]Route
	middleware []Middleware
	notFound   http.Handler
	notAllowed http.Handler
}

var paramPattern = regexp.MustCompile(`:([A-Za-z_][A-Za-z0-9_]*)`)

// New returns a router answering plain-text 404 and 405 until other
// handlers are set.
func New() *Router {
	return &Router{
		routes:   make(map[string][]Route),
		notFound: http.NotFoundHandler(),
		notAllowed: http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		}),
	}
}

// GET registers a GET route.
func (r *Router) GET(pattern string, handler http.Handler, mw ...Middleware) {
	r.AddRoute(http.MethodGet, pattern, handler, mw...)
}

// POST registers a POST route.
func (r *Router) POST(pattern string, handler http.Handler, mw ...Middleware) {
	r.AddRoute(http.MethodPost, pattern, handler, mw...)
}

// PUT registers a PUT route.
func (r *Router) PUT(pattern string, handler http.Handler, mw ...Middleware) {
	r.AddRoute(http.MethodPut, pattern, handler, mw...)
}

// DELETE registers a DELETE route.
func (r *Router) DELETE(pattern string, handler http.Handler, mw ...Middleware) {
	r.AddRoute(http.MethodDelete, pattern, handler, mw...)
}

// AddRoute adds a new route with the specified method and pattern. The
// route middlewares run inside the router-wide ones.
func (r *Router) AddRoute(method, pattern string, handler http.Handler, mw ...Middleware) {
	params, re := compilePattern(pattern)

	r.mu.Lock()
	defer r.mu.Unlock()
	r.routes[method] = append(r.routes[method], Route{
		Method:      method,
		Pattern:     pattern,
		Handler:     handler,
		Middlewares: mw,
		Params:      params,
		Regex:       re,
	})
}

// compilePattern converts a route pattern to a regex and extracts
// parameter names. Literal text is quoted so dots and the like match
// themselves.
func compilePattern(pattern string) ([]string, *regexp.Regexp) {
	wildcard := strings.HasSuffix(pattern, "/*")
	if wildcard {
		pattern = strings.TrimSuffix(pattern, "/*")
	}

	var (
		params []string
		b      strings.Builder
		last   int
	)
	b.WriteString("^")
	for _, loc := range paramPattern.FindAllStringSubmatchIndex(pattern, -1) {
		name := pattern[loc[2]:loc[3]]
		params = append(params, name)
		b.WriteString(regexp.QuoteMeta(pattern[last:loc[0]]))
		b.WriteString("(?P<" + name + ">[^/]+)")
		last = loc[1]
	}
	b.WriteString(regexp.QuoteMeta(pattern[last:]))
	if wildcard {
		b.WriteString("(?P<" + WildcardParam + ">/.*)?")
	}
	b.WriteString("$")

	return params, regexp.MustCompile(b.String())
}

// ServeHTTP dispatches req. A path that matches only under other methods
// gets the method-not-allowed handler and an Allow header.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.mu.RLock()
	middleware := r.middleware
	routes := r.routes[req.Method]
	notFound, notAllowed := r.notFound, r.notAllowed
	r.mu.RUnlock()

	handler, params := notFound, Params(nil)
	for _, route := range routes {
		if p := matchRoute(req.URL.Path, route); p != nil {
			handler, params = route.Handler, p
			for i := len(route.Middlewares) - 1; i >= 0; i-- {
				handler = route.Middlewares[i](handler)
			}
			break
		}
	}
	if params == nil {
		if allowed := r.allowed(req.URL.Path); len(allowed) > 0 {
			w.Header().Set("Allow", strings.Join(allowed, ", "))
			handler = notAllowed
		}
	}

	for i := len(middleware) - 1; i >= 0; i-- {
		handler = middleware[i](handler)
	}
	if params != nil {
		req = req.WithContext(withParams(req.Context(), params))
	}
	handler.ServeHTTP(w, req)
}

// allowed returns the methods with a route matching path.
func (r *Router) allowed(path string) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var methods []string
	for method, routes := range r.routes {
		for _, route := range routes {
			if matchRoute(path, route) != nil {
				methods = append(methods, method)
				break
			}
		}
	}
	sort.Strings(methods)
	return methods
}

// matchRoute returns the parameters of path under route, or nil when the
// path does not match.
func matchRoute(path string, route Route) Params {
	if route.Regex == nil {
		return nil
	}

	matches := route.Regex.FindStringSubmatch(path)
	if matches == nil {
		return nil
	}

	params := make(Params)
	for i, name := range route.Regex.SubexpNames() {
		if name != "" && i < len(matches) {
			params[name] = matches[i]
		}
	}
	return params
}

// Use appends router-wide middleware. It wraps every response, including
// 404 and 405.
func (r *Router) Use(middlewares ...Middleware) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.middleware = append(r.middleware, middlewares...)
}

// SetNotFoundHandler replaces the handler for unmatched paths.
func (r *Router) SetNotFoundHandler(handler http.Handler) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notFound = handler
}

// SetMethodNotAllowedHandler replaces the handler for paths routed only
// under other methods.
func (r *Router) SetMethodNotAllowedHandler(handler http.Handler) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notAllowed = handler
}

// Routes lists the registered routes sorted by pattern, then method.
func (r *Router) Routes() []Route {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var routes []Route
	for _, methodRoutes := range r.routes {
		routes = append(routes, methodRoutes...)
	}
	sort.Slice(routes, func(i, j int) bool {
		if routes[i].Pattern != routes[j].Pattern {
			return routes[i].Pattern < routes[j].Pattern
		}
		return routes[i].Method < routes[j].Method
	})
	return routes
}
