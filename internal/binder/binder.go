package binder

import (
	"errors"
	"fmt"
	"strings"

	"github.com/bmispelon/noyel/internal/core/models"
	"github.com/bmispelon/noyel/internal/core/ports"
	"github.com/rs/zerolog"
)

var ErrElementNotFound = errors.New("element not found")

// Target pairs an input selector with the endpoint feeding its suggestions.
type Target struct {
	Name     string
	Selector string
	Endpoint models.Endpoint
}

var targets = []Target{
	{Name: "giftee", Selector: "input[name=giftee]", Endpoint: models.EndpointGiftee},
	{Name: "friend", Selector: "form.invite input[name=user]", Endpoint: models.EndpointFriend},
}

type Binder struct {
	widget ports.Widget
	source ports.Source
	logger zerolog.Logger
}

func New(widget ports.Widget, source ports.Source, logger zerolog.Logger) *Binder {
	return &Binder{
		widget: widget,
		source: source,
		logger: logger,
	}
}

// Bind attaches autocomplete to every target present in doc. It runs once,
// when the page is ready. Missing inputs are skipped; the returned error then
// wraps ErrElementNotFound and lists their selectors.
func (b *Binder) Bind(doc ports.Document) error {
	var missing []string
	var errs []error

	for _, target := range targets {
		el, ok := doc.Query(target.Selector)
		if !ok {
			b.logger.Debug().Str("selector", target.Selector).Msg("autocomplete input not found")
			missing = append(missing, target.Selector)
			continue
		}

		// Native suggestions would draw over the widget's dropdown
		el.SetAttribute("autocomplete", "off")

		source, err := b.source.Source(target.Endpoint)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", target.Name, err))
			continue
		}

		if err := b.widget.Attach(el, source); err != nil {
			errs = append(errs, fmt.Errorf("attaching %s autocomplete: %w", target.Name, err))
			continue
		}

		b.logger.Debug().
			Str("selector", target.Selector).
			Str("endpoint", string(target.Endpoint)).
			Msg("autocomplete bound")
	}

	if len(missing) > 0 {
		errs = append(errs, fmt.Errorf("%w: %s", ErrElementNotFound, strings.Join(missing, ", ")))
	}

	return errors.Join(errs...)
}
