package models

import "sync"

// SuggestionList is the ordered list of suggestions returned for a query.
// Order is the display order; duplicates are kept as received.
type SuggestionList []string

// ProcessFunc receives the suggestions for a query. It is the widget's
// completion callback.
type ProcessFunc func(SuggestionList)

// SourceFunc is the data source handed to an autocomplete widget. It must not
// block: it starts the lookup and returns its pending request.
type SourceFunc func(query string, process ProcessFunc) *Request

// Endpoint names one of the remote search endpoints.
type Endpoint string

const (
	EndpointGiftee Endpoint = "giftee"
	EndpointFriend Endpoint = "friend"
)

// Request is the handle of a single in-flight suggestion lookup.
type Request struct {
	Query      string
	Endpoint   Endpoint
	Generation uint64

	done chan struct{}
	once sync.Once
	err  error
}

// NewRequest creates a pending request.
func NewRequest(endpoint Endpoint, query string, generation uint64) *Request {
	return &Request{
		Query:      query,
		Endpoint:   endpoint,
		Generation: generation,
		done:       make(chan struct{}),
	}
}

// Finish marks the request complete. Only the first call has an effect.
func (r *Request) Finish(err error) {
	r.once.Do(func() {
		r.err = err
		close(r.done)
	})
}

// Done is closed once the request has completed, successfully or not.
func (r *Request) Done() <-chan struct{} {
	return r.done
}

// Err returns the failure of a completed request, nil while pending or on
// success.
func (r *Request) Err() error {
	select {
	case <-r.done:
		return r.err
	default:
		return nil
	}
}

// Wait blocks until the request completes and returns its error.
func (r *Request) Wait() error {
	<-r.done
	return r.err
}

// Suggestion represents an autocomplete suggestion entry
type Suggestion struct {
	Score  float64 `yaml:"score"`
	String string  `yaml:"string"`
}

// SuggestionDict represents a dictionary of suggestions
type SuggestionDict struct {
	Entries map[string]*Suggestion
	// order keeps insertion order so equal scores stay stable
	order []string
}

// NewSuggestionDict creates a new suggestion dictionary
func NewSuggestionDict() *SuggestionDict {
	return &SuggestionDict{
		Entries: make(map[string]*Suggestion),
	}
}

// Add stores a suggestion, adding to the score of an existing entry.
func (d *SuggestionDict) Add(str string, score float64) {
	if sug, exists := d.Entries[str]; exists {
		sug.Score += score
		return
	}
	d.Entries[str] = &Suggestion{String: str, Score: score}
	d.order = append(d.order, str)
}

// Ordered returns the entries in insertion order.
func (d *SuggestionDict) Ordered() []Suggestion {
	out := make([]Suggestion, 0, len(d.order))
	for _, str := range d.order {
		out = append(out, *d.Entries[str])
	}
	return out
}
