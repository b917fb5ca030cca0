package router

import "context"

// WildcardParam names the tail captured by a pattern ending in "/*".
const WildcardParam = "wildcard"

type paramsKey struct{}

// Params maps the ":name" segments of a matched pattern to their values.
type Params map[string]string

// Get returns the named value, or "" when the pattern has no such segment.
func (p Params) Get(name string) string {
	return p[name]
}

// Has reports whether the pattern captured name.
func (p Params) Has(name string) bool {
	_, ok := p[name]
	return ok
}

func withParams(ctx context.Context, p Params) context.Context {
	return context.WithValue(ctx, paramsKey{}, p)
}

// ParamsFromContext returns the values captured for the request being
// served. ok is false outside a routed handler.
func ParamsFromContext(ctx context.Context) (p Params, ok bool) {
	p, ok = ctx.Value(paramsKey{}).(Params)
	return p, ok
}

// Param returns one captured value of the request being served.
func Param(ctx context.Context, name string) string {
	p, _ := ParamsFromContext(ctx)
	return p.Get(name)
}
