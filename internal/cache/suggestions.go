package cache

import (
	"sort"
	"strings"
	"sync"

	"github.com/bmispelon/noyel/internal/core/models"
)

// SuggestionCache holds one suggestion dictionary per key.
type SuggestionCache struct {
	suggestions sync.Map
	mu          sync.RWMutex
}

func NewSuggestionCache() *SuggestionCache {
	return &SuggestionCache{}
}

// Load replaces the dictionary stored under key.
func (c *SuggestionCache) Load(key string, dict *models.SuggestionDict) {
	c.mu.Lock()
	defer c.mu.Unlock()

	newDict := models.NewSuggestionDict()
	for _, sug := range dict.Ordered() {
		newDict.Add(sug.String, sug.Score)
	}
	c.suggestions.Store(key, newDict)
}

// FTSugGet returns the entries starting with prefix, highest score first.
// Equal scores keep insertion order. The match is case-sensitive; an empty
// prefix matches everything.
func (c *SuggestionCache) FTSugGet(key, prefix string, max int) []models.Suggestion {
	c.mu.RLock()
	defer c.mu.RUnlock()

	dictI, exists := c.suggestions.Load(key)
	if !exists {
		return nil
	}

	dict := dictI.(*models.SuggestionDict)
	var matches []models.Suggestion
	for _, sug := range dict.Ordered() {
		if strings.HasPrefix(sug.String, prefix) {
			matches = append(matches, sug)
		}
	}

	// Sort by score
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})

	// Apply limit
	if max > 0 && len(matches) > max {
		matches = matches[:max]
	}

	return matches
}

// FTSugLen implements suggestion dictionary size retrieval
func (c *SuggestionCache) FTSugLen(key string) int64 {
	c.mu.RLock()
	defer c.mu.RUnlock()

	dictI, exists := c.suggestions.Load(key)
	if !exists {
		return 0
	}

	dict := dictI.(*models.SuggestionDict)
	return int64(len(dict.Entries))
}
