package ports

import (
	"context"

	"github.com/bmispelon/noyel/internal/core/models"
)

// Source produces suggestion source functions for the search endpoints.
type Source interface {
	Source(endpoint models.Endpoint) (models.SourceFunc, error)
	Fetch(ctx context.Context, endpoint models.Endpoint, query string) (models.SuggestionList, error)
}
