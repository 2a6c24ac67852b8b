// Package dom implements the page ports on top of jQuery and the Bootstrap
// typeahead plugin. It only does something useful once compiled with GopherJS.
package dom

import (
	"errors"

	"github.com/bmispelon/noyel/internal/core/models"
	"github.com/bmispelon/noyel/internal/core/ports"
	"github.com/gopherjs/gopherjs/js"
)

var (
	ErrNoJQuery    = errors.New("jQuery is not loaded")
	ErrNoTypeahead = errors.New("typeahead plugin is not loaded")
)

// Selection is a jQuery selection of one input.
type Selection struct {
	obj *js.Object
}

func (s *Selection) SetAttribute(name, value string) {
	s.obj.Call("attr", name, value)
}

func (s *Selection) Attribute(name string) string {
	v := s.obj.Call("attr", name)
	if v == js.Undefined || v == nil {
		return ""
	}
	return v.String()
}

// Document queries the page through the global jQuery function.
type Document struct {
	jq *js.Object
}

// NewDocument returns the page document, or ErrNoJQuery when jQuery is
// absent (or when not running in a browser).
func NewDocument() (*Document, error) {
	if js.Global == nil {
		return nil, ErrNoJQuery
	}
	jq := js.Global.Get("jQuery")
	if jq == js.Undefined {
		return nil, ErrNoJQuery
	}
	return &Document{jq: jq}, nil
}

func (d *Document) Query(selector string) (ports.Element, bool) {
	sel := d.jq.Invoke(selector)
	if sel.Get("length").Int() == 0 {
		return nil, false
	}
	return &Selection{obj: sel}, true
}

// Ready runs fn once the DOM is ready.
func (d *Document) Ready(fn func()) {
	d.jq.Invoke(js.Global.Get("document")).Call("ready", fn)
}

// Typeahead attaches the Bootstrap typeahead plugin.
type Typeahead struct{}

func (Typeahead) Attach(el ports.Element, source models.SourceFunc) error {
	sel, ok := el.(*Selection)
	if !ok {
		return errors.New("typeahead needs a jQuery selection")
	}
	if sel.obj.Get("typeahead") == js.Undefined {
		return ErrNoTypeahead
	}

	sel.obj.Call("typeahead", map[string]interface{}{
		// Returning nothing tells the plugin results arrive through process.
		"source": func(query string, process *js.Object) {
			source(query, func(list models.SuggestionList) {
				process.Invoke([]string(list))
			})
		},
	})
	return nil
}
