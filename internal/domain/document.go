package domain

import "time"

// Document is a generated documentation record handed to the document
// store. The store owns persistence; callers only build this shape.
type Document struct {
	ID        string            `json:"id"`
	RunID     string            `json:"run_id"`
	Module    string            `json:"module,omitempty"`
	Content   string            `json:"content"`
	Source    string            `json:"source"`
	Provider  string            `json:"provider"`
	Model     string            `json:"model"`
	Timestamp time.Time         `json:"timestamp"`
	Metadata  map[string]string `json:"metadata,omitempty"`
}
