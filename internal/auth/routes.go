package auth

import (
	"strings"
	"sync"

	"github.com/gofiber/fiber/v2"
)

// RouteMeta holds the capabilities attached to a route when it is registered.
type RouteMeta struct {
	Public bool
}

type routeEntry struct {
	method   string
	segments []string
	meta     RouteMeta
}

// RouteTable maps method and path pattern to route metadata. Patterns use
// fiber syntax: ":name" matches one segment, "*" matches the rest.
type RouteTable struct {
	mu      sync.RWMutex
	entries []routeEntry
}

// NewRouteTable returns an empty table.
func NewRouteTable() *RouteTable {
	return &RouteTable{}
}

// Register records metadata for method and pattern. Registering the same
// pair twice replaces the earlier entry.
func (t *RouteTable) Register(method, pattern string, meta RouteMeta) {
	entry := routeEntry{
		method:   strings.ToUpper(method),
		segments: splitPath(pattern),
		meta:     meta,
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	for i := range t.entries {
		if t.entries[i].method == entry.method && sameSegments(t.entries[i].segments, entry.segments) {
			t.entries[i] = entry
			return
		}
	}
	t.entries = append(t.entries, entry)
}

// Lookup returns the metadata for a concrete request path.
func (t *RouteTable) Lookup(method, path string) (RouteMeta, bool) {
	method = strings.ToUpper(method)
	segments := splitPath(path)

	t.mu.RLock()
	defer t.mu.RUnlock()
	for _, entry := range t.entries {
		if entry.method != method && !(method == fiber.MethodHead && entry.method == fiber.MethodGet) {
			continue
		}
		if matchSegments(entry.segments, segments) {
			return entry.meta, true
		}
	}
	return RouteMeta{}, false
}

// IsPublic reports whether the request targets a route marked public.
// Unknown routes are protected.
func (t *RouteTable) IsPublic(method, path string) bool {
	if t == nil {
		return false
	}
	meta, ok := t.Lookup(method, path)
	return ok && meta.Public
}

// Routes registers handlers on a fiber router and records their metadata in
// the table consulted by the Guard.
type Routes struct {
	router fiber.Router
	prefix string
	table  *RouteTable
}

// NewRoutes wraps router.
func NewRoutes(router fiber.Router, table *RouteTable) *Routes {
	return &Routes{router: router, table: table}
}

// Group returns a Routes scoped under prefix.
func (r *Routes) Group(prefix string, handlers ...fiber.Handler) *Routes {
	return &Routes{
		router: r.router.Group(prefix, handlers...),
		prefix: joinPath(r.prefix, prefix),
		table:  r.table,
	}
}

// Public registers a route that skips authentication.
func (r *Routes) Public(method, path string, handlers ...fiber.Handler) {
	r.add(method, path, RouteMeta{Public: true}, handlers...)
}

// Protected registers a route that requires a verified identity.
func (r *Routes) Protected(method, path string, handlers ...fiber.Handler) {
	r.add(method, path, RouteMeta{}, handlers...)
}

func (r *Routes) add(method, path string, meta RouteMeta, handlers ...fiber.Handler) {
	r.table.Register(method, joinPath(r.prefix, path), meta)
	r.router.Add(method, path, handlers...)
}

func joinPath(prefix, path string) string {
	joined := strings.TrimRight(prefix, "/") + "/" + strings.TrimLeft(path, "/")
	if joined != "/" {
		joined = strings.TrimRight(joined, "/")
	}
	return joined
}

func splitPath(path string) []string {
	trimmed := strings.Trim(path, "/")
	if trimmed == "" {
		return nil
	}
	return strings.Split(trimmed, "/")
}

func sameSegments(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func matchSegments(pattern, path []string) bool {
	for i, seg := range pattern {
		if seg == "*" {
			return true
		}
		if i >= len(path) {
			return false
		}
		if strings.HasPrefix(seg, ":") {
			if path[i] == "" {
				return false
			}
			continue
		}
		if seg != path[i] {
			return false
		}
	}
	return len(pattern) == len(path)
}
