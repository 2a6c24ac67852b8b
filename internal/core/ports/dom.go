package ports

import "github.com/bmispelon/noyel/internal/core/models"

// Element is a single input element on the page.
type Element interface {
	SetAttribute(name, value string)
	Attribute(name string) string
}

// Document resolves selectors against the page. Query returns false when no
// element matches.
type Document interface {
	Query(selector string) (Element, bool)
}

// Widget is the autocomplete capability attached to an input.
type Widget interface {
	Attach(el Element, source models.SourceFunc) error
}
