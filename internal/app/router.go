package app

import (
	"fmt"
	"net/url"
	"strings"
)

// RouteName identifies a route in the router table.
type RouteName string

const (
	// RouteLista renders the paginated operadoras list.
	RouteLista RouteName = "lista"
	// RouteDetalhe renders one operadora and its expenses.
	RouteDetalhe RouteName = "detalhe"
)

// Route maps a path pattern to a page. Segments starting with ':' are
// parameters.
type Route struct {
	Name    RouteName
	Pattern string
}

// Params holds the parameters captured from a path.
type Params map[string]string

// Location is a resolved navigation target.
type Location struct {
	Route  Route
	Params Params
	Path   string
}

// Router is a static route table with no guards and no nesting.
type Router struct {
	routes []Route
}

// NewRouter creates a router for the given routes. Earlier routes win when
// more than one pattern matches.
func NewRouter(routes ...Route) *Router {
	return &Router{routes: routes}
}

// DefaultRouter returns the application's two routes.
func DefaultRouter() *Router {
	return NewRouter(
		Route{Name: RouteLista, Pattern: "/"},
		Route{Name: RouteDetalhe, Pattern: "/operadora/:cnpj"},
	)
}

// Routes returns the route table.
func (r *Router) Routes() []Route {
	out := make([]Route, len(r.routes))
	copy(out, r.routes)
	return out
}

// Match finds the route for path and the parameters it captures.
func (r *Router) Match(path string) (Route, Params, bool) {
	segments := splitPath(path)
	for _, route := range r.routes {
		if params, ok := matchPattern(splitPath(route.Pattern), segments); ok {
			return route, params, true
		}
	}
	return Route{}, nil, false
}

// Resolve matches path and falls back to the root route when nothing
// matches.
func (r *Router) Resolve(path string) Location {
	if route, params, ok := r.Match(path); ok {
		return Location{Route: route, Params: params, Path: cleanPath(path)}
	}
	route, params, _ := r.Match("/")
	return Location{Route: route, Params: params, Path: "/"}
}

// Path builds the path of a named route.
func (r *Router) Path(name RouteName, params Params) (string, error) {
	for _, route := range r.routes {
		if route.Name != name {
			continue
		}
		segments := splitPath(route.Pattern)
		for i, seg := range segments {
			if !strings.HasPrefix(seg, ":") {
				continue
			}
			value, ok := params[seg[1:]]
			if !ok || value == "" {
				return "", fmt.Errorf("route %s: missing parameter %q", name, seg[1:])
			}
			segments[i] = url.PathEscape(value)
		}
		return "/" + strings.Join(segments, "/"), nil
	}
	return "", fmt.Errorf("unknown route %q", name)
}

// DetailPath returns the detail page path of an operadora.
func (r *Router) DetailPath(cnpj string) string {
	p, err := r.Path(RouteDetalhe, Params{"cnpj": cnpj})
	if err != nil {
		return "/"
	}
	return p
}

func matchPattern(pattern, segments []string) (Params, bool) {
	if len(pattern) != len(segments) {
		return nil, false
	}
	params := Params{}
	for i, seg := range pattern {
		if strings.HasPrefix(seg, ":") {
			value, err := url.PathUnescape(segments[i])
			if err != nil || value == "" {
				return nil, false
			}
			params[seg[1:]] = value
			continue
		}
		if seg != segments[i] {
			return nil, false
		}
	}
	return params, true
}

// splitPath drops any query or fragment and returns the non-empty segments.
func splitPath(path string) []string {
	if i := strings.IndexAny(path, "?#"); i >= 0 {
		path = path[:i]
	}
	var segments []string
	for _, seg := range strings.Split(path, "/") {
		if seg != "" {
			segments = append(segments, seg)
		}
	}
	return segments
}

func cleanPath(path string) string {
	return "/" + strings.Join(splitPath(path), "/")
}
