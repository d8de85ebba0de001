package weather

import (
	"context"
	"strings"

	"weatherdeck.app/internal/core/forecast"
	"weatherdeck.app/internal/ports"
	"weatherdeck.app/pkg/errors"
)

// SelectLocation makes loc the active city and ensures its weather is available
func (s *Store) SelectLocation(ctx context.Context, loc forecast.Location) (*forecast.CityWeatherBundle, error) {
	if err := loc.Validate(); err != nil {
		return nil, errors.NewValidationError("invalid location: " + err.Error())
	}

	s.mu.Lock()
	changed := s.active == nil || !s.active.SameIdentity(loc)
	a := loc
	s.active = &a
	if changed {
		s.activeBundle = nil
	}
	s.mu.Unlock()

	if changed {
		if err := s.prefs.SaveActive(context.WithoutCancel(ctx), &a); err != nil {
			s.logger.Warn("Failed to persist active location", ports.F("location_id", loc.ID), ports.F("error", err))
		}
		s.touch(EventActiveChanged, loc.ID)
	}

	return s.EnsureWeather(ctx, loc, false)
}

// AddLocation appends loc to the tracked list. It reports false when a city with the same
// name and region, or the same id, is already tracked.
func (s *Store) AddLocation(ctx context.Context, loc forecast.Location) (bool, error) {
	if err := loc.Validate(); err != nil {
		return false, errors.NewValidationError("invalid location: " + err.Error())
	}

	s.mu.Lock()
	if indexOfPlace(s.tracked, loc) >= 0 || indexOfID(s.tracked, loc.ID) >= 0 {
		s.mu.Unlock()
		return false, nil
	}
	s.tracked = append(s.tracked, loc)
	tracked := append(make([]forecast.Location, 0, len(s.tracked)), s.tracked...)
	s.mu.Unlock()

	s.persistTracked(ctx, tracked)
	s.logger.Info("Location added", ports.F("location_id", loc.ID), ports.F("location", loc.String()))
	s.touch(EventTrackedChanged, loc.ID)
	return true, nil
}

// AddAndSelect tracks loc (if not tracked yet) and makes it the active city. When a city
// with the same name and region is already tracked, that entry is selected instead.
func (s *Store) AddAndSelect(ctx context.Context, loc forecast.Location) (*forecast.CityWeatherBundle, error) {
	added, err := s.AddLocation(ctx, loc)
	if err != nil {
		return nil, err
	}
	if !added {
		s.mu.RLock()
		if i := indexOfPlace(s.tracked, loc); i >= 0 {
			loc = s.tracked[i]
		} else if i := indexOfID(s.tracked, loc.ID); i >= 0 {
			loc = s.tracked[i]
		}
		s.mu.RUnlock()
	}
	return s.SelectLocation(ctx, loc)
}

// RemoveLocation drops a tracked city and its cached bundle. Removing the active city moves
// the selection to the first remaining tracked city, or clears it when none remain.
func (s *Store) RemoveLocation(ctx context.Context, locationID int64) (bool, error) {
	s.commitMu.Lock()
	s.mu.Lock()
	idx := indexOfID(s.tracked, locationID)
	if idx < 0 {
		s.mu.Unlock()
		s.commitMu.Unlock()
		return false, nil
	}
	s.tracked = append(s.tracked[:idx:idx], s.tracked[idx+1:]...)
	delete(s.summaries, forecast.Location{ID: locationID}.Key())
	s.removedAt[locationID] = s.generation.Load()

	var nextActive *forecast.Location
	activeChanged := false
	if s.active != nil && s.active.ID == locationID {
		activeChanged = true
		s.activeBundle = nil
		if len(s.tracked) > 0 {
			next := s.tracked[0]
			s.active = &next
			nextActive = &next
		} else {
			s.active = nil
		}
	}
	tracked := append(make([]forecast.Location, 0, len(s.tracked)), s.tracked...)
	s.mu.Unlock()

	// fetches started before this point are discarded at commit time
	persistCtx := context.WithoutCancel(ctx)
	if err := s.cache.Delete(persistCtx, locationID); err != nil && !errors.IsNotFoundError(err) {
		s.logger.Warn("Failed to evict removed location from cache", ports.F("location_id", locationID), ports.F("error", err))
	}
	s.commitMu.Unlock()
	s.persistTracked(ctx, tracked)
	s.touch(EventTrackedChanged, locationID)

	if activeChanged {
		if err := s.prefs.SaveActive(persistCtx, nextActive); err != nil {
			s.logger.Warn("Failed to persist active location", ports.F("error", err))
		}
		if nextActive == nil {
			s.touch(EventActiveChanged, 0)
			return true, nil
		}
		s.touch(EventActiveChanged, nextActive.ID)
		if _, err := s.EnsureWeather(ctx, *nextActive, false); err != nil {
			return true, err
		}
	}
	return true, nil
}

// Reorder moves the tracked city at index from to index to. Out-of-range indices are a no-op
// and report false.
func (s *Store) Reorder(ctx context.Context, from, to int) bool {
	s.mu.Lock()
	n := len(s.tracked)
	if from < 0 || from >= n || to < 0 || to >= n {
		s.mu.Unlock()
		return false
	}
	if from == to {
		s.mu.Unlock()
		return true
	}
	moved := s.tracked[from]
	rest := append(s.tracked[:from:from], s.tracked[from+1:]...)
	reordered := make([]forecast.Location, 0, n)
	reordered = append(reordered, rest[:to]...)
	reordered = append(reordered, moved)
	reordered = append(reordered, rest[to:]...)
	s.tracked = reordered
	tracked := append(make([]forecast.Location, 0, n), reordered...)
	s.mu.Unlock()

	s.persistTracked(ctx, tracked)
	s.touch(EventTrackedChanged, moved.ID)
	return true
}

// Search looks up locations by name. A blank query or any failure yields an empty result.
func (s *Store) Search(ctx context.Context, query string) []forecast.Location {
	query = strings.TrimSpace(query)
	if query == "" {
		return []forecast.Location{}
	}

	results, err := s.gateway.SearchLocations(ctx, query)
	if err != nil {
		if !errors.IsCancelled(err) {
			s.logger.Warn("Location search failed", ports.F("query", query), ports.F("error", err))
		}
		return []forecast.Location{}
	}
	if results == nil {
		return []forecast.Location{}
	}
	return results
}

func (s *Store) persistTracked(ctx context.Context, tracked []forecast.Location) {
	if err := s.prefs.SaveTracked(context.WithoutCancel(ctx), tracked); err != nil {
		s.logger.Warn("Failed to persist tracked locations", ports.F("count", len(tracked)), ports.F("error", err))
	}
}

func indexOfPlace(list []forecast.Location, loc forecast.Location) int {
	for i, l := range list {
		if l.SamePlace(loc) {
			return i
		}
	}
	return -1
}

func indexOfID(list []forecast.Location, id int64) int {
	for i, l := range list {
		if l.ID == id {
			return i
		}
	}
	return -1
}
