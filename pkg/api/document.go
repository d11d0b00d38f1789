package api

// Resource is a single JSON:API resource object.
type Resource struct {
	Type       string `json:"type"`
	ID         string `json:"id,omitempty"`
	Attributes any    `json:"attributes"`
}

// Document is the top-level response envelope: {"data": ...} where data is
// either one Resource or an ordered array of them.
type Document struct {
	Data any `json:"data"`
}

// PublicViewer is implemented by every type that can be serialized as a
// JSON:API resource. PublicView returns the attribute set with the
// identifier and any non-public fields removed.
type PublicViewer interface {
	ResourceType() string
	ResourceID() string
	PublicView() any
}

func newResource(v PublicViewer) Resource {
	return Resource{
		Type:       v.ResourceType(),
		ID:         v.ResourceID(),
		Attributes: v.PublicView(),
	}
}

// NewDocument wraps a single resource in the response envelope.
func NewDocument(v PublicViewer) Document {
	return Document{Data: newResource(v)}
}

// NewCollection wraps an ordered sequence of resources in the response
// envelope. An empty or nil slice serializes as an empty array, not null.
func NewCollection[T PublicViewer](items []T) Document {
	data := make([]Resource, 0, len(items))
	for _, item := range items {
		data = append(data, newResource(item))
	}
	return Document{Data: data}
}
