package main

import (
	"errors"
	"os"

	"github.com/bmispelon/noyel/internal/binder"
	"github.com/bmispelon/noyel/internal/config"
	"github.com/bmispelon/noyel/internal/dom"
	"github.com/bmispelon/noyel/internal/logging"
	"github.com/bmispelon/noyel/internal/suggest"
	"github.com/gopherjs/gopherjs/js"
)

func main() {
	cfg := config.Default()
	cfg.Search.BaseURL = js.Global.Get("location").Get("origin").String()
	cfg.Logging.Level = "warn"
	logger := logging.New(cfg.Logging, os.Stderr)

	doc, err := dom.NewDocument()
	if err != nil {
		logger.Error().Err(err).Msg("autocomplete disabled")
		return
	}

	client := suggest.New(cfg.Search,
		suggest.WithLogger(logger),
		suggest.WithTimeout(cfg.Client.Timeout),
	)
	b := binder.New(dom.Typeahead{}, client, logger)

	doc.Ready(func() {
		err := b.Bind(doc)
		switch {
		case errors.Is(err, binder.ErrElementNotFound):
			// Most pages carry only one of the inputs
			logger.Debug().Err(err).Msg("autocomplete partially bound")
		case err != nil:
			logger.Warn().Err(err).Msg("autocomplete partially bound")
		}
	})
}
