package apps

import (
	"errors"
	"fmt"

	"github.com/hashicorp/go-multierror"
)

// Fallback dimensions for applications that do not declare a size.
const (
	DefaultWidth  = 800
	DefaultHeight = 600
)

// ErrInvalidDescriptor is wrapped by every registry validation failure.
var ErrInvalidDescriptor = errors.New("invalid application descriptor")

// Point is a position in desktop pixels.
type Point struct {
	X int `json:"x" yaml:"x"`
	Y int `json:"y" yaml:"y"`
}

// Size is a width and height in desktop pixels.
type Size struct {
	Width  int `json:"width" yaml:"width"`
	Height int `json:"height" yaml:"height"`
}

// Renderer produces the content of an application window.
type Renderer interface {
	Render(width, height int) string
}

// RendererFunc adapts a function to the Renderer interface.
type RendererFunc func(width, height int) string

// Render calls f(width, height).
func (f RendererFunc) Render(width, height int) string {
	return f(width, height)
}

// Placeholder returns a renderer that shows a generic content line for id.
func Placeholder(id string) Renderer {
	return RendererFunc(func(int, int) string {
		return "Content for " + id
	})
}

// Descriptor describes one launchable application.
type Descriptor struct {
	ID          string   `json:"id" yaml:"id"`
	Title       string   `json:"title" yaml:"title"`
	DefaultSize Size     `json:"default_size" yaml:"default_size"`
	Renderer    Renderer `json:"-" yaml:"-"`
}

// Registry is an immutable, ordered set of application descriptors.
type Registry struct {
	order []string
	byID  map[string]Descriptor
}

// NewRegistry validates descs and builds a registry from them. All
// validation problems are reported together.
func NewRegistry(descs ...Descriptor) (*Registry, error) {
	var result *multierror.Error

	reg := &Registry{
		order: make([]string, 0, len(descs)),
		byID:  make(map[string]Descriptor, len(descs)),
	}

	for i, d := range descs {
		if d.ID == "" {
			result = multierror.Append(result, fmt.Errorf("entry %d: empty id: %w", i, ErrInvalidDescriptor))
			continue
		}
		if _, dup := reg.byID[d.ID]; dup {
			result = multierror.Append(result, fmt.Errorf("entry %d: duplicate id %q: %w", i, d.ID, ErrInvalidDescriptor))
			continue
		}
		if d.DefaultSize.Width < 0 || d.DefaultSize.Height < 0 {
			result = multierror.Append(result, fmt.Errorf("entry %d (%s): negative default size %dx%d: %w",
				i, d.ID, d.DefaultSize.Width, d.DefaultSize.Height, ErrInvalidDescriptor))
			continue
		}

		if d.Title == "" {
			d.Title = d.ID
		}
		if d.DefaultSize.Width == 0 {
			d.DefaultSize.Width = DefaultWidth
		}
		if d.DefaultSize.Height == 0 {
			d.DefaultSize.Height = DefaultHeight
		}
		if d.Renderer == nil {
			d.Renderer = Placeholder(d.ID)
		}

		reg.order = append(reg.order, d.ID)
		reg.byID[d.ID] = d
	}

	if err := result.ErrorOrNil(); err != nil {
		return nil, err
	}
	return reg, nil
}

// Lookup returns the descriptor registered under id.
func (r *Registry) Lookup(id string) (Descriptor, bool) {
	d, ok := r.byID[id]
	return d, ok
}

// Has reports whether id is registered.
func (r *Registry) Has(id string) bool {
	_, ok := r.byID[id]
	return ok
}

// IDs returns the registered ids in registration order.
func (r *Registry) IDs() []string {
	ids := make([]string, len(r.order))
	copy(ids, r.order)
	return ids
}

// Descriptors returns all descriptors in registration order.
func (r *Registry) Descriptors() []Descriptor {
	out := make([]Descriptor, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.byID[id])
	}
	return out
}

// Len returns the number of registered applications.
func (r *Registry) Len() int {
	return len(r.order)
}

// Title returns the display title of id, or id itself when unknown.
func (r *Registry) Title(id string) string {
	if d, ok := r.byID[id]; ok {
		return d.Title
	}
	return id
}

// DefaultSize returns the default window size of id, or 800x600 when unknown.
func (r *Registry) DefaultSize(id string) Size {
	if d, ok := r.byID[id]; ok {
		return d.DefaultSize
	}
	return Size{Width: DefaultWidth, Height: DefaultHeight}
}

// InitialPosition staggers the index-th window so that stacked windows
// keep their title bars visible.
func (r *Registry) InitialPosition(index int) Point {
	if index < 0 {
		index = 0
	}
	return Point{X: 100 + index*30, Y: 80 + index*20}
}
