package binder

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/bmispelon/noyel/internal/config"
	"github.com/bmispelon/noyel/internal/core/models"
	"github.com/bmispelon/noyel/internal/core/ports"
	"github.com/bmispelon/noyel/internal/suggest"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeElement struct {
	attrs map[string]string
}

func newFakeElement() *fakeElement {
	return &fakeElement{attrs: make(map[string]string)}
}

func (e *fakeElement) SetAttribute(name, value string) { e.attrs[name] = value }
func (e *fakeElement) Attribute(name string) string     { return e.attrs[name] }

type fakeDocument map[string]*fakeElement

func (d fakeDocument) Query(selector string) (ports.Element, bool) {
	found, ok := d[selector]
	if !ok {
		return nil, false
	}
	return found, true
}

type fakeWidget struct {
	sources map[*fakeElement]models.SourceFunc
	err     error
}

func (w *fakeWidget) Attach(el ports.Element, source models.SourceFunc) error {
	if w.err != nil {
		return w.err
	}
	if w.sources == nil {
		w.sources = make(map[*fakeElement]models.SourceFunc)
	}
	w.sources[el.(*fakeElement)] = source
	return nil
}

// countingSource records lookups without using the network.
type countingSource struct {
	mu      sync.Mutex
	fetches int
	sources []models.Endpoint
}

func (s *countingSource) Source(endpoint models.Endpoint) (models.SourceFunc, error) {
	s.sources = append(s.sources, endpoint)
	return func(query string, process models.ProcessFunc) *models.Request {
		s.mu.Lock()
		s.fetches++
		s.mu.Unlock()
		req := models.NewRequest(endpoint, query, 1)
		req.Finish(nil)
		return req
	}, nil
}

func (s *countingSource) Fetch(ctx context.Context, endpoint models.Endpoint, query string) (models.SuggestionList, error) {
	return nil, nil
}

func pageDocument() (fakeDocument, *fakeElement, *fakeElement) {
	giftee := newFakeElement()
	friend := newFakeElement()
	giftee.SetAttribute("autocomplete", "on")
	return fakeDocument{
		"input[name=giftee]":           giftee,
		"form.invite input[name=user]": friend,
	}, giftee, friend
}

func TestBind(t *testing.T) {
	t.Run("disables native autocomplete without network activity", func(t *testing.T) {
		doc, giftee, friend := pageDocument()
		src := &countingSource{}
		widget := &fakeWidget{}

		err := New(widget, src, zerolog.Nop()).Bind(doc)
		require.NoError(t, err)

		assert.Equal(t, "off", giftee.Attribute("autocomplete"))
		assert.Equal(t, "off", friend.Attribute("autocomplete"))
		assert.Equal(t, 0, src.fetches)
		assert.Equal(t, []models.Endpoint{models.EndpointGiftee, models.EndpointFriend}, src.sources)
		assert.Len(t, widget.sources, 2)
	})

	t.Run("missing input is skipped", func(t *testing.T) {
		doc, giftee, _ := pageDocument()
		delete(doc, "form.invite input[name=user]")
		widget := &fakeWidget{}

		err := New(widget, &countingSource{}, zerolog.Nop()).Bind(doc)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrElementNotFound)
		assert.Contains(t, err.Error(), "form.invite input[name=user]")

		assert.Equal(t, "off", giftee.Attribute("autocomplete"))
		assert.Len(t, widget.sources, 1)
	})

	t.Run("missing input stays quiet at warn level", func(t *testing.T) {
		doc, _, _ := pageDocument()
		delete(doc, "input[name=giftee]")

		var buf bytes.Buffer
		logger := zerolog.New(&buf).Level(zerolog.WarnLevel)

		err := New(&fakeWidget{}, &countingSource{}, logger).Bind(doc)
		assert.ErrorIs(t, err, ErrElementNotFound)
		assert.Empty(t, buf.String())
	})

	t.Run("widget failure is reported", func(t *testing.T) {
		doc, giftee, _ := pageDocument()
		widget := &fakeWidget{err: errors.New("typeahead missing")}

		err := New(widget, &countingSource{}, zerolog.Nop()).Bind(doc)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "typeahead missing")
		assert.NotErrorIs(t, err, ErrElementNotFound)
		assert.Equal(t, "off", giftee.Attribute("autocomplete"))
	})
}

func TestBindEndToEnd(t *testing.T) {
	var mu sync.Mutex
	var paths []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		paths = append(paths, r.URL.RequestURI())
		mu.Unlock()
		switch r.URL.Path {
		case "/api/search/giftee/":
			w.Write([]byte(`["Anna","Annie"]`))
		default:
			w.Write([]byte(`["bob","bobette"]`))
		}
	}))
	defer srv.Close()

	cfg := config.Default().Search
	cfg.BaseURL = srv.URL
	client := suggest.New(cfg)

	doc, giftee, friend := pageDocument()
	widget := &fakeWidget{}
	require.NoError(t, New(widget, client, zerolog.Nop()).Bind(doc))

	var gotGiftee, gotFriend models.SuggestionList
	require.NoError(t, widget.sources[giftee]("ann", func(l models.SuggestionList) { gotGiftee = l }).Wait())
	require.NoError(t, widget.sources[friend]("bob", func(l models.SuggestionList) { gotFriend = l }).Wait())

	assert.Equal(t, models.SuggestionList{"Anna", "Annie"}, gotGiftee)
	assert.Equal(t, models.SuggestionList{"bob", "bobette"}, gotFriend)
	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{"/api/search/giftee/?q=ann", "/api/search/friend/?q=bob"}, paths)
}
