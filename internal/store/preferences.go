package store

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"

	"github.com/Madhesh247/Zenfocus/internal/model"
	"github.com/Madhesh247/Zenfocus/internal/repository"
)

const preferencesKey = "zenfocus_prefs"

// PreferenceStore holds the single UserPreferences value. Reads return a
// copy; Set replaces the whole value and writes it through. A missing or
// corrupt persisted blob falls back to the built-in defaults.
type PreferenceStore struct {
	mu    sync.Mutex
	repo  *repository.ValueRepository
	prefs model.UserPreferences
}

func NewPreferenceStore(repo *repository.ValueRepository) *PreferenceStore {
	return &PreferenceStore{repo: repo, prefs: model.DefaultPreferences()}
}

func (s *PreferenceStore) Load(ctx context.Context) {
	raw, err := s.repo.Load(ctx, preferencesKey)
	if err == repository.ErrNotFound {
		return
	}
	if err != nil {
		log.Printf("preferences load failed, using defaults: %v", err)
		return
	}

	var persisted model.UserPreferences
	if err := json.Unmarshal(raw, &persisted); err != nil {
		log.Printf("preferences blob corrupt, using defaults: %v", err)
		return
	}

	s.mu.Lock()
	s.prefs = model.MergePreferences(persisted)
	s.mu.Unlock()
}

func (s *PreferenceStore) Get() model.UserPreferences {
	s.mu.Lock()
	defer s.mu.Unlock()
	return model.ClonePreferences(s.prefs)
}

func (s *PreferenceStore) Set(ctx context.Context, prefs model.UserPreferences) error {
	merged := model.MergePreferences(prefs)

	s.mu.Lock()
	s.prefs = merged
	s.mu.Unlock()

	raw, err := json.Marshal(merged)
	if err != nil {
		return fmt.Errorf("marshal preferences: %w", err)
	}
	if err := s.repo.Save(ctx, preferencesKey, raw); err != nil {
		return err
	}
	return nil
}

// DurationFor resolves the configured duration for a mode, falling back to
// the built-in default when the mode has no override.
func (s *PreferenceStore) DurationFor(mode string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	if seconds, ok := s.prefs.Durations[mode]; ok {
		return seconds
	}
	return model.DefaultDurations[mode]
}
