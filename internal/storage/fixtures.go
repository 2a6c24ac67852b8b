package storage

import (
	"fmt"
	"os"
	"sync"

	"github.com/bmispelon/noyel/internal/core/models"
	"github.com/gofrs/flock"
	"gopkg.in/yaml.v3"
)

// fixtureFile is the on-disk layout of the development suggestions.
type fixtureFile struct {
	Giftee []models.Suggestion `yaml:"giftee"`
	Friend []models.Suggestion `yaml:"friend"`
}

// Fixtures serves suggestion dictionaries read from a YAML file. The file is
// read under a shared lock so an editor holding an exclusive lock is never
// observed half-written.
type Fixtures struct {
	path  string
	lock  *flock.Flock
	dicts map[models.Endpoint]*models.SuggestionDict
	mu    sync.RWMutex
}

func NewFixtures(path string) (*Fixtures, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("fixtures file: %w", err)
	}

	f := &Fixtures{
		path: path,
		lock: flock.New(path),
	}
	if err := f.Reload(); err != nil {
		f.lock.Close()
		return nil, err
	}
	return f, nil
}

// Reload re-reads the fixtures file.
func (f *Fixtures) Reload() error {
	if err := f.lock.RLock(); err != nil {
		return fmt.Errorf("locking fixtures: %w", err)
	}
	data, err := os.ReadFile(f.path)
	f.lock.Unlock()
	if err != nil {
		return fmt.Errorf("reading fixtures: %w", err)
	}

	var file fixtureFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("parsing fixtures: %w", err)
	}

	dicts := map[models.Endpoint]*models.SuggestionDict{
		models.EndpointGiftee: toDict(file.Giftee),
		models.EndpointFriend: toDict(file.Friend),
	}

	f.mu.Lock()
	f.dicts = dicts
	f.mu.Unlock()
	return nil
}

func toDict(entries []models.Suggestion) *models.SuggestionDict {
	dict := models.NewSuggestionDict()
	for _, sug := range entries {
		if sug.String == "" {
			continue
		}
		dict.Add(sug.String, sug.Score)
	}
	return dict
}

func (f *Fixtures) Dictionary(endpoint models.Endpoint) (*models.SuggestionDict, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	dict, ok := f.dicts[endpoint]
	if !ok {
		return nil, fmt.Errorf("no fixtures for endpoint %q", endpoint)
	}
	return dict, nil
}

func (f *Fixtures) Close() error {
	return f.lock.Close()
}
