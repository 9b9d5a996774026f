package extractor

import (
	"regexp"
	"sort"
	"strings"

	"github.com/docuscan/cli/internal/domain"
)

// Result holds everything recognized in a single file.
type Result struct {
	Routes      []domain.Route
	Controllers []domain.Controller
	Services    []domain.Service
	Types       []domain.Type
}

// Merge appends another file's result, preserving per-file order.
func (r *Result) Merge(other Result) {
	r.Routes = append(r.Routes, other.Routes...)
	r.Controllers = append(r.Controllers, other.Controllers...)
	r.Services = append(r.Services, other.Services...)
	r.Types = append(r.Types, other.Types...)
}

// Extractor applies an ordered set of regular-expression rules to file
// content, independent of which framework produced it. Rules are
// independent and may both fire on the same text span; duplicates are
// kept on purpose, favoring recall over precision.
type Extractor struct {
	framework string
}

func New(framework string) *Extractor {
	return &Extractor{framework: framework}
}

var (
	// app.get('/users', auth, handler) and friends
	verbCallRe = regexp.MustCompile(
		"\\b(app|router|server|api)\\s*\\.\\s*(get|post|put|patch|delete|head|options|all)\\s*\\(\\s*['\"`]([^'\"`]*)['\"`]\\s*([,)])")

	// app.get(prefix + '/users', handler): the path expression is kept
	// verbatim, no static evaluation is attempted
	verbCallRawRe = regexp.MustCompile(
		"\\b(app|router|server|api)\\s*\\.\\s*(get|post|put|patch|delete|head|options|all)\\s*\\(\\s*([A-Za-z_$][^,)]*?)\\s*,")

	// @Get('/users') findAll(
	decoratorRouteRe = regexp.MustCompile(
		"@(Get|Post|Put|Patch|Delete|Head|Options|All)\\s*\\(\\s*(?:['\"`]([^'\"`]*)['\"`])?\\s*\\)\\s*(?:async\\s+)?([A-Za-z_$][\\w$]*)\\s*\\(")

	// fastify.route({ method: 'GET', url: '/users', handler: listUsers })
	fastifyRouteRe  = regexp.MustCompile(`\.route\s*\(\s*\{([^}]*)`)
	fastifyMethodRe = regexp.MustCompile("method\\s*:\\s*['\"`](GET|POST|PUT|PATCH|DELETE|HEAD|OPTIONS)['\"`]")
	fastifyURLRe    = regexp.MustCompile("(?:url|path)\\s*:\\s*['\"`]([^'\"`]*)['\"`]")
	fastifyHandler  = regexp.MustCompile(`handler\s*:\s*([A-Za-z_$][\w$]*)`)

	// class UsersController extends ... {
	classDeclRe = regexp.MustCompile(
		`(?:export\s+)?(?:default\s+)?(?:abstract\s+)?\bclass\s+([A-Za-z_$][\w$]*)\s*(?:extends\s+[\w$.]+\s*)?(?:implements\s+[\w$.,\s]+?)?\{`)

	// @Controller('users') immediately preceding a class declaration
	controllerDecoratorRe = regexp.MustCompile(
		"@Controller\\s*\\(\\s*(?:['\"`]([^'\"`]*)['\"`])?\\s*\\)")

	identRe = regexp.MustCompile(`^[A-Za-z_$][\w$]*(?:\.[A-Za-z_$][\w$]*)*$`)

	funcDeclRe = regexp.MustCompile(
		`(?:function\s+([A-Za-z_$][\w$]*)\s*\(|(?:const|let|var)\s+([A-Za-z_$][\w$]*)\s*=\s*(?:async\s*)?(?:function\b|\())`)

	methodDeclRe = regexp.MustCompile(
		`(?m)^\s*(?:public\s+|private\s+|protected\s+|static\s+|async\s+)*([A-Za-z_$][\w$]*)\s*\(([^)]*)\)\s*(?::\s*[^({;]+)?\s*\{`)

	pathParamRe = regexp.MustCompile(`[:{]([A-Za-z_$][\w$]*)`)
)

var methodKeywords = map[string]bool{
	"if": true, "for": true, "while": true, "switch": true, "catch": true,
	"return": true, "function": true, "new": true, "constructor": true,
	"do": true, "else": true, "try": true, "typeof": true,
}

type positioned struct {
	offset int
	route  domain.Route
}

// ExtractFile runs every rule against one file's content. It is a pure
// function of its input and never fails: constructs the rules cannot
// recognize simply produce nothing.
func (e *Extractor) ExtractFile(relPath, content string) Result {
	var res Result
	var routes []positioned

	routes = append(routes, e.verbCallRoutes(relPath, content)...)
	routes = append(routes, e.rawPathRoutes(relPath, content)...)
	routes = append(routes, e.fastifyRoutes(relPath, content)...)

	classes := e.classConstructs(relPath, content, &res)
	routes = append(routes, e.decoratorRoutes(relPath, content, classes, &res)...)

	res.Types = append(res.Types, extractTypes(relPath, content)...)

	sort.SliceStable(routes, func(i, j int) bool { return routes[i].offset < routes[j].offset })
	for _, p := range routes {
		res.Routes = append(res.Routes, p.route)
	}
	return res
}

// verbCallRoutes recognizes HTTP-verb-named method calls on app/router
// style objects with a literal path.
func (e *Extractor) verbCallRoutes(relPath, content string) []positioned {
	var out []positioned
	for _, m := range verbCallRe.FindAllStringSubmatchIndex(content, -1) {
		verb := content[m[4]:m[5]]
		path := content[m[6]:m[7]]
		closer := content[m[8]:m[9]]

		handler := ""
		var middleware []string
		if closer == "," {
			rest := callArguments(content, m[1])
			handler, middleware = handlerFromArgs(rest)
		}
		if handler == "" {
			handler = enclosingFunctionName(content, m[0])
		}

		out = append(out, positioned{offset: m[0], route: domain.Route{
			Method:     strings.ToUpper(verb),
			Path:       path,
			Handler:    handler,
			Framework:  e.framework,
			FilePath:   relPath,
			Parameters: pathParameters(path),
			Middleware: middleware,
		}})
	}
	return out
}

// rawPathRoutes recognizes verb calls whose first argument is not a
// string literal. The raw source fragment is kept verbatim.
func (e *Extractor) rawPathRoutes(relPath, content string) []positioned {
	var out []positioned
	for _, m := range verbCallRawRe.FindAllStringSubmatchIndex(content, -1) {
		verb := content[m[4]:m[5]]
		fragment := strings.TrimSpace(content[m[6]:m[7]])

		rest := callArguments(content, m[1])
		handler, middleware := handlerFromArgs(rest)
		if handler == "" {
			handler = enclosingFunctionName(content, m[0])
		}

		out = append(out, positioned{offset: m[0], route: domain.Route{
			Method:     strings.ToUpper(verb),
			Path:       fragment,
			Handler:    handler,
			Framework:  e.framework,
			FilePath:   relPath,
			Middleware: middleware,
		}})
	}
	return out
}

// fastifyRoutes recognizes fastify .route({...}) option objects. Only
// the first level of the options object is inspected.
func (e *Extractor) fastifyRoutes(relPath, content string) []positioned {
	var out []positioned
	for _, m := range fastifyRouteRe.FindAllStringSubmatchIndex(content, -1) {
		opts := content[m[2]:m[3]]
		methodMatch := fastifyMethodRe.FindStringSubmatch(opts)
		urlMatch := fastifyURLRe.FindStringSubmatch(opts)
		if methodMatch == nil || urlMatch == nil {
			continue
		}
		handler := "anonymous"
		if h := fastifyHandler.FindStringSubmatch(opts); h != nil {
			handler = h[1]
		}
		out = append(out, positioned{offset: m[0], route: domain.Route{
			Method:     methodMatch[1],
			Path:       urlMatch[1],
			Handler:    handler,
			Framework:  e.framework,
			FilePath:   relPath,
			Parameters: pathParameters(urlMatch[1]),
		}})
	}
	return out
}

// classSpan records where a recognized class body starts and ends.
type classSpan struct {
	name     string
	kind     string // "controller" or "service" or ""
	basePath string
	body     span
	index    int // position in res.Controllers / res.Services
}

type span struct{ start, end int }

// classConstructs recognizes Controller/Service suffixed classes and
// records their body spans so decorator routes can be associated.
func (e *Extractor) classConstructs(relPath, content string, res *Result) []classSpan {
	var spans []classSpan
	for _, m := range classDeclRe.FindAllStringSubmatchIndex(content, -1) {
		name := content[m[2]:m[3]]
		openBrace := m[1] - 1
		bodyEnd := matchingBrace(content, openBrace)

		cs := classSpan{name: name, body: span{start: openBrace + 1, end: bodyEnd}}

		switch {
		case strings.HasSuffix(name, "Controller"):
			cs.kind = "controller"
			cs.basePath = controllerBasePath(content, m[0])
			res.Controllers = append(res.Controllers, domain.Controller{
				Name:      name,
				FilePath:  relPath,
				Framework: e.framework,
				BasePath:  cs.basePath,
			})
			cs.index = len(res.Controllers) - 1
		case strings.HasSuffix(name, "Service"):
			cs.kind = "service"
			res.Services = append(res.Services, domain.Service{
				Name:      name,
				FilePath:  relPath,
				Framework: e.framework,
				Methods:   classMethods(content[openBrace+1 : bodyEnd]),
			})
			cs.index = len(res.Services) - 1
		}

		spans = append(spans, cs)
	}
	return spans
}

// decoratorRoutes recognizes HTTP-verb decorators immediately preceding
// a method declaration. Routes found inside a controller class are
// registered on that controller and inherit its base path.
func (e *Extractor) decoratorRoutes(relPath, content string, classes []classSpan, res *Result) []positioned {
	var out []positioned
	for _, m := range decoratorRouteRe.FindAllStringSubmatchIndex(content, -1) {
		verb := strings.ToUpper(content[m[2]:m[3]])
		subPath := ""
		if m[4] >= 0 {
			subPath = content[m[4]:m[5]]
		}
		handler := content[m[6]:m[7]]

		path := subPath
		for _, cs := range classes {
			if cs.kind != "controller" || m[0] < cs.body.start || m[0] >= cs.body.end {
				continue
			}
			path = joinPaths(cs.basePath, subPath)
			res.Controllers[cs.index].Routes = append(res.Controllers[cs.index].Routes, handler)
			break
		}
		if path == "" {
			path = "/"
		} else if !strings.HasPrefix(path, "/") {
			path = "/" + path
		}

		out = append(out, positioned{offset: m[0], route: domain.Route{
			Method:     verb,
			Path:       path,
			Handler:    handler,
			Framework:  e.framework,
			FilePath:   relPath,
			Parameters: pathParameters(path),
		}})
	}
	return out
}

// controllerBasePath looks for an @Controller('...') decorator in the
// text shortly before a class declaration.
func controllerBasePath(content string, classStart int) string {
	windowStart := classStart - 200
	if windowStart < 0 {
		windowStart = 0
	}
	window := content[windowStart:classStart]
	matches := controllerDecoratorRe.FindAllStringSubmatch(window, -1)
	if len(matches) == 0 {
		return ""
	}
	return matches[len(matches)-1][1]
}

// classMethods extracts method names and parameters from a class body.
func classMethods(body string) []domain.Method {
	var methods []domain.Method
	for _, m := range methodDeclRe.FindAllStringSubmatch(body, -1) {
		name := m[1]
		if methodKeywords[name] {
			continue
		}
		methods = append(methods, domain.Method{
			Name:       name,
			Parameters: parseParameters(m[2]),
		})
	}
	return methods
}

// parseParameters parses a `name?: type` style parameter list.
func parseParameters(list string) []domain.Parameter {
	var params []domain.Parameter
	for _, part := range splitTopLevel(list) {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		name, typ := part, ""
		if idx := strings.Index(part, ":"); idx >= 0 {
			name = strings.TrimSpace(part[:idx])
			typ = strings.TrimSpace(part[idx+1:])
		}
		optional := strings.HasSuffix(name, "?")
		name = strings.TrimSuffix(name, "?")
		name = strings.TrimPrefix(name, "@")
		if !identRe.MatchString(name) {
			continue
		}
		params = append(params, domain.Parameter{Name: name, Type: typ, Optional: optional})
	}
	return params
}

// pathParameters extracts :param and {param} style segments.
func pathParameters(path string) []domain.Parameter {
	var params []domain.Parameter
	for _, m := range pathParamRe.FindAllStringSubmatch(path, -1) {
		params = append(params, domain.Parameter{Name: m[1], Type: "string"})
	}
	return params
}

// callArguments returns the argument text from just after a comma up to
// the matching close paren of the enclosing call.
func callArguments(content string, from int) string {
	depth := 1
	for i := from; i < len(content); i++ {
		switch content[i] {
		case '(', '[', '{':
			depth++
		case ')', ']', '}':
			depth--
			if depth == 0 {
				return content[from:i]
			}
		}
	}
	return content[from:]
}

// handlerFromArgs decides the handler and middleware names from the
// remaining call arguments. When the final argument is an inline
// function the handler stays empty and the caller falls back to the
// nearest enclosing function name.
func handlerFromArgs(rest string) (string, []string) {
	args := splitTopLevel(rest)
	var idents []string
	lastIsIdent := false
	for i, arg := range args {
		arg = strings.TrimSpace(arg)
		if arg == "" {
			continue
		}
		if identRe.MatchString(arg) {
			idents = append(idents, arg)
			lastIsIdent = i == len(args)-1
		}
	}
	if len(idents) == 0 {
		return "", nil
	}
	if !lastIsIdent {
		// trailing inline function; identifiers seen so far are middleware
		return "", idents
	}
	return idents[len(idents)-1], idents[:len(idents)-1]
}

// splitTopLevel splits on commas that are not nested inside brackets
// or string literals.
func splitTopLevel(s string) []string {
	var parts []string
	depth := 0
	var quote byte
	start := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		if quote != 0 {
			if c == quote && (i == 0 || s[i-1] != '\\') {
				quote = 0
			}
			continue
		}
		switch c {
		case '\'', '"', '`':
			quote = c
		case '(', '[', '{':
			depth++
		case ')', ']', '}':
			depth--
		case ',':
			if depth == 0 {
				parts = append(parts, s[start:i])
				start = i + 1
			}
		}
	}
	parts = append(parts, s[start:])
	return parts
}

// enclosingFunctionName finds the nearest function or assigned arrow
// function declared before offset, or "anonymous".
func enclosingFunctionName(content string, offset int) string {
	matches := funcDeclRe.FindAllStringSubmatch(content[:offset], -1)
	if len(matches) == 0 {
		return "anonymous"
	}
	last := matches[len(matches)-1]
	if last[1] != "" {
		return last[1]
	}
	if last[2] != "" {
		return last[2]
	}
	return "anonymous"
}

// matchingBrace returns the index of the brace closing the one at
// open, found by depth counting. Braces inside string literals are
// counted too; this is a heuristic, not a parser.
func matchingBrace(content string, open int) int {
	depth := 0
	for i := open; i < len(content); i++ {
		switch content[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return len(content)
}

func joinPaths(base, sub string) string {
	base = strings.Trim(base, "/")
	sub = strings.Trim(sub, "/")
	switch {
	case base == "" && sub == "":
		return "/"
	case base == "":
		return "/" + sub
	case sub == "":
		return "/" + base
	default:
		return "/" + base + "/" + sub
	}
}
