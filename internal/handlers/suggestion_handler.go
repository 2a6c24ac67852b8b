package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/bmispelon/noyel/internal/cache"
	"github.com/bmispelon/noyel/internal/config"
	"github.com/bmispelon/noyel/internal/core/models"
	"github.com/rs/zerolog"
)

type SuggestionHandlers struct {
	cache      *cache.SuggestionCache
	queryParam string
	maxResults int
	logger     zerolog.Logger
}

// NewSuggestionHandlers reads the query from queryParam, the same parameter
// the client sends. An empty queryParam means the default "q".
func NewSuggestionHandlers(cache *cache.SuggestionCache, queryParam string, maxResults int, logger zerolog.Logger) *SuggestionHandlers {
	if queryParam == "" {
		queryParam = config.DefaultQueryParam
	}
	return &SuggestionHandlers{
		cache:      cache,
		queryParam: queryParam,
		maxResults: maxResults,
		logger:     logger,
	}
}

// HandleSearch answers a lookup on endpoint with a JSON array of strings.
// A missing query matches every entry.
func (h *SuggestionHandlers) HandleSearch(endpoint models.Endpoint) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query().Get(h.queryParam)

		matches := h.cache.FTSugGet(string(endpoint), query, h.maxResults)
		results := make([]string, len(matches))
		for i, sug := range matches {
			results[i] = sug.String
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(results); err != nil {
			h.logger.Error().Err(err).Str("endpoint", string(endpoint)).Msg("writing suggestions")
		}
	}
}
