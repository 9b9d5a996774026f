package domain

// Parameter represents a named parameter on a route or method
type Parameter struct {
	Name     string `json:"name"`
	Type     string `json:"type,omitempty"`
	Optional bool   `json:"optional,omitempty"`
}

// Route represents a single recognized route declaration
type Route struct {
	Method     string      `json:"method"`
	Path       string      `json:"path"`
	Handler    string      `json:"handler"`
	Framework  string      `json:"framework,omitempty"`
	FilePath   string      `json:"file_path,omitempty"`
	Parameters []Parameter `json:"parameters,omitempty"`
	Middleware []string    `json:"middleware,omitempty"`
}

// Method represents a method on a controller or service class
type Method struct {
	Name       string      `json:"name"`
	Parameters []Parameter `json:"parameters,omitempty"`
}

// Controller represents a recognized controller class
type Controller struct {
	Name      string   `json:"name"`
	FilePath  string   `json:"file_path"`
	Framework string   `json:"framework,omitempty"`
	BasePath  string   `json:"base_path,omitempty"`
	Routes    []string `json:"routes,omitempty"`
}

// Service represents a recognized service class
type Service struct {
	Name      string   `json:"name"`
	FilePath  string   `json:"file_path"`
	Framework string   `json:"framework,omitempty"`
	Methods   []Method `json:"methods,omitempty"`
}

// TypeKind classifies a recognized type declaration
type TypeKind string

const (
	TypeKindInterface TypeKind = "interface"
	TypeKindClass     TypeKind = "class"
	TypeKindEnum      TypeKind = "enum"
	TypeKindAlias     TypeKind = "type"
)

// Property represents a `name: type` member of a type declaration
type Property struct {
	Name     string `json:"name"`
	Type     string `json:"type"`
	Optional bool   `json:"optional,omitempty"`
}

// Type represents a recognized interface/class/enum/type declaration
type Type struct {
	Name       string     `json:"name"`
	Kind       TypeKind   `json:"kind"`
	FilePath   string     `json:"file_path"`
	Properties []Property `json:"properties,omitempty"`
}

// Metadata carries summary counts and timing for one analysis run.
// Counts always equal the length of the corresponding list at the
// moment the Analysis is built.
type Metadata struct {
	TotalRoutes      int     `json:"totalRoutes"`
	TotalControllers int     `json:"totalControllers"`
	TotalServices    int     `json:"totalServices"`
	TotalTypes       int     `json:"totalTypes"`
	AnalysisTime     float64 `json:"analysisTime"`
}

// Analysis is the aggregate result of one analyze() invocation.
// It is constructed once per run and read-only afterwards; a new run
// produces an entirely new instance.
type Analysis struct {
	Framework   string       `json:"framework"`
	Routes      []Route      `json:"routes"`
	Controllers []Controller `json:"controllers"`
	Services    []Service    `json:"services"`
	Types       []Type       `json:"types"`
	Metadata    Metadata     `json:"metadata"`
}
