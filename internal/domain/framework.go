package domain

// Framework identifies the web framework a project is built on
type Framework string

const (
	FrameworkExpress Framework = "express"
	FrameworkNestJS  Framework = "nestjs"
	FrameworkFastify Framework = "fastify"
	FrameworkKoa     Framework = "koa"
	FrameworkGeneric Framework = "generic"
	FrameworkUnknown Framework = "unknown"
)

// Detection is the result of framework signature matching for a project
type Detection struct {
	Framework  Framework `json:"framework"`
	Confidence int       `json:"confidence"`
	Indicators []string  `json:"indicators"`
}
