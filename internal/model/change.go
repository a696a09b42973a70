package model

// Operation values produced by the diff-extraction stage.
const (
	OpCreate = "create"
	OpModify = "modify"
	OpDelete = "delete"
)

// Change is one modification to one infrastructure resource, as extracted
// from an IaC diff by the external analyzer. Immutable once constructed.
type Change struct {
	ResourceType      string   `json:"resource_type"`
	ResourceName      string   `json:"resource_name"`
	Operation         string   `json:"operation"` // create, modify, delete
	AttributesChanged []string `json:"attributes_changed,omitempty"`
	DiffText          string   `json:"diff_text,omitempty"`
	SourceFile        string   `json:"source_file,omitempty"`
}

// Addr returns the resource address in type.name form.
func (c Change) Addr() string {
	return c.ResourceType + "." + c.ResourceName
}
