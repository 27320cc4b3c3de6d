package article

import (
	"fmt"

	"github.com/google/uuid"
)

// Well-known article field names.
const (
	FieldTitle = "Title"
	FieldBody  = "Body"
)

// Article is a unit of content keyed by a UUID with named string fields.
type Article struct {
	id     uuid.UUID
	fields map[string]string
}

// New validates and creates an Article.
func New(id uuid.UUID, fields map[string]string) (*Article, error) {
	if id == uuid.Nil {
		return nil, fmt.Errorf("article ID is required")
	}
	return &Article{id: id, fields: cloneFields(fields)}, nil
}

// Reconstruct creates an Article without validation (storage hydration).
func Reconstruct(id uuid.UUID, fields map[string]string) *Article {
	return &Article{id: id, fields: cloneFields(fields)}
}

// ParseID parses the textual form of an article identifier.
func ParseID(s string) (uuid.UUID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, fmt.Errorf("parse article id %q: %w", s, err)
	}
	return id, nil
}

// The accessors below dereference the receiver. Calling them on a nil
// *Article panics like any other nil pointer dereference.

// ID returns the article identifier.
func (a *Article) ID() uuid.UUID { return a.id }

// Field returns a named field value, or "" when the field is unset.
func (a *Article) Field(name string) string { return a.fields[name] }

// Title returns the Title field.
func (a *Article) Title() string { return a.Field(FieldTitle) }

// Body returns the Body field.
func (a *Article) Body() string { return a.Field(FieldBody) }

// Fields returns a copy of all fields.
func (a *Article) Fields() map[string]string { return cloneFields(a.fields) }

func cloneFields(m map[string]string) map[string]string {
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
