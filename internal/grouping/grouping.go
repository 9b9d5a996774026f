package grouping

import (
	"regexp"
	"strings"

	"github.com/fatih/camelcase"

	"github.com/docuscan/cli/internal/domain"
)

// strippedSuffixes are trimmed from class names before a module name
// is derived from them.
var strippedSuffixes = []string{
	"Controller", "Service", "Dto", "Entity", "Model", "Type", "Interface",
}

var unsafeChars = regexp.MustCompile(`[^a-z0-9_-]+`)

// crudKeywords maps handler-name words to CRUD buckets.
var crudKeywords = map[string]string{
	"create": "create", "add": "create",
	"find": "read", "get": "read", "list": "read",
	"update": "update", "edit": "update", "modify": "update",
	"delete": "delete", "remove": "delete",
	"hello": "app", "health": "app", "status": "app",
}

// strategy decides a module name for one route. The cascade tries
// strategies in order and the first hit wins, so every route ends up
// in some bucket even with no framework metadata at all.
type strategy func(route domain.Route) (string, bool)

// Group partitions routes into named modules and attaches the
// name-matched subsets of services and types to each chunk. It is a
// pure function of its inputs.
func Group(routes []domain.Route, controllers []domain.Controller, services []domain.Service, types []domain.Type) map[string]domain.ModuleChunk {
	cascade := []strategy{
		byController(controllers),
		byServiceName(services),
		byCRUDKeyword,
		byPathSegment(controllers, services),
		byMethod,
	}

	chunks := make(map[string]domain.ModuleChunk)
	for _, route := range routes {
		name := "misc"
		for _, s := range cascade {
			if candidate, ok := s(route); ok {
				name = candidate
				break
			}
		}
		name = Sanitize(name)

		chunk := chunks[name]
		chunk.Name = name
		chunk.Routes = append(chunk.Routes, route)
		chunks[name] = chunk
	}

	attachRelated(chunks, services, types)
	return chunks
}

// byController wins when a controller explicitly lists the route's
// handler among its routes.
func byController(controllers []domain.Controller) strategy {
	handlerModule := make(map[string]string)
	for _, c := range controllers {
		module := ModuleName(c.Name)
		for _, handler := range c.Routes {
			if _, exists := handlerModule[handler]; !exists {
				handlerModule[handler] = module
			}
		}
	}
	return func(route domain.Route) (string, bool) {
		module, ok := handlerModule[route.Handler]
		return module, ok
	}
}

// byServiceName wins when the handler name or path textually contains
// a module name derived from a known service.
func byServiceName(services []domain.Service) strategy {
	type candidate struct{ base, module string }
	var candidates []candidate
	for _, s := range services {
		base := strings.ToLower(stripSuffixes(s.Name))
		if base == "" {
			continue
		}
		candidates = append(candidates, candidate{base: base, module: ModuleName(s.Name)})
	}
	return func(route domain.Route) (string, bool) {
		handler := strings.ToLower(route.Handler)
		path := strings.ToLower(route.Path)
		for _, c := range candidates {
			if strings.Contains(handler, c.base) || strings.Contains(path, c.base) {
				return c.module, true
			}
		}
		return "", false
	}
}

// byCRUDKeyword buckets a route by CRUD-style words in its handler name.
func byCRUDKeyword(route domain.Route) (string, bool) {
	for _, word := range camelcase.Split(route.Handler) {
		if module, ok := crudKeywords[strings.ToLower(word)]; ok {
			return module, true
		}
	}
	return "", false
}

// byPathSegment derives the module from the first non-parameter path
// segment, when that segment corresponds to a module already known
// from a controller or service. Projects with no class-like constructs
// fall through to method bucketing instead.
func byPathSegment(controllers []domain.Controller, services []domain.Service) strategy {
	known := make(map[string]string)
	for _, c := range controllers {
		m := ModuleName(c.Name)
		known[m] = m
		known[singular(m)] = m
	}
	for _, s := range services {
		m := ModuleName(s.Name)
		known[m] = m
		known[singular(m)] = m
	}
	return func(route domain.Route) (string, bool) {
		for _, segment := range strings.Split(strings.Trim(route.Path, "/"), "/") {
			if segment == "" || strings.HasPrefix(segment, ":") || strings.HasPrefix(segment, "{") {
				continue
			}
			if module, ok := known[strings.ToLower(segment)]; ok {
				return module, true
			}
			return "", false
		}
		return "", false
	}
}

// byMethod is the bottom of the cascade: it needs no semantic
// information and always yields a bucket.
func byMethod(route domain.Route) (string, bool) {
	method := strings.ToUpper(route.Method)
	if method == "GET" && (route.Path == "/" || route.Path == "") {
		return "app", true
	}
	switch method {
	case "POST":
		return "create", true
	case "GET":
		return "read", true
	case "PUT", "PATCH":
		return "update", true
	case "DELETE":
		return "delete", true
	default:
		return "misc", true
	}
}

// attachRelated adds services and types whose names match a chunk's
// module name.
func attachRelated(chunks map[string]domain.ModuleChunk, services []domain.Service, types []domain.Type) {
	for name, chunk := range chunks {
		base := singular(name)
		for _, s := range services {
			if strings.Contains(strings.ToLower(s.Name), base) {
				chunk.Services = append(chunk.Services, s)
			}
		}
		for _, t := range types {
			if strings.Contains(strings.ToLower(t.Name), base) {
				chunk.Types = append(chunk.Types, t)
			}
		}
		chunks[name] = chunk
	}
}

// ModuleName derives a module name from a class-like name: known
// suffixes stripped, lower-cased, pluralized by a simple suffix rule.
func ModuleName(className string) string {
	base := stripSuffixes(className)
	if base == "" {
		base = className
	}
	return pluralize(strings.ToLower(base))
}

func stripSuffixes(name string) string {
	for _, suffix := range strippedSuffixes {
		if strings.HasSuffix(name, suffix) && len(name) > len(suffix) {
			return name[:len(name)-len(suffix)]
		}
	}
	return name
}

func pluralize(word string) string {
	switch {
	case word == "":
		return word
	case strings.HasSuffix(word, "y"):
		return word[:len(word)-1] + "ies"
	case strings.HasSuffix(word, "s"):
		return word
	default:
		return word + "s"
	}
}

func singular(word string) string {
	switch {
	case strings.HasSuffix(word, "ies"):
		return word[:len(word)-3] + "y"
	case strings.HasSuffix(word, "s") && len(word) > 1:
		return word[:len(word)-1]
	default:
		return word
	}
}

// Sanitize reduces a module name to a filesystem-safe character set.
// It is applied last regardless of which strategy produced the name.
func Sanitize(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	name = unsafeChars.ReplaceAllString(name, "-")
	name = strings.Trim(name, "-")
	if name == "" {
		return "misc"
	}
	return name
}
