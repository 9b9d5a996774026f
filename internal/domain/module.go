package domain

// ModuleChunk is a named bucket of routes plus the name-matched subsets
// of services and types. Chunks are derived on demand for per-module
// documentation generation and are never persisted as-is.
type ModuleChunk struct {
	Name     string    `json:"name"`
	Routes   []Route   `json:"routes"`
	Services []Service `json:"services,omitempty"`
	Types    []Type    `json:"types,omitempty"`
}
