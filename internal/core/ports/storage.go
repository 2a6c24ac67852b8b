package ports

import "github.com/bmispelon/noyel/internal/core/models"

// Storage supplies the suggestion dictionaries served by the development
// search server.
type Storage interface {
	Dictionary(endpoint models.Endpoint) (*models.SuggestionDict, error)
	Reload() error
	Close() error
}
