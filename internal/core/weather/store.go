// Package weather owns the cross-request weather state: tracked cities, the active city,
// the unit preference and the per-city bundle cache, and orchestrates fetches against
// the WeatherGateway.
package weather

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/singleflight"
	"weatherdeck.app/internal/core/forecast"
	"weatherdeck.app/internal/ports"
	"weatherdeck.app/pkg/errors"
)

const (
	defaultFanOutLimit = 8
	defaultEventBuffer = 16
)

type summarySource int

const (
	sourceSummary summarySource = iota
	sourceFullBundle
)

type summaryEntry struct {
	summary    forecast.CityWeatherSummary
	generation uint64
	source     summarySource
}

// Store is the single logical owner of weather state
type Store struct {
	gateway ports.WeatherGateway
	cache   ports.BundleCache
	prefs   ports.PreferencesRepository
	logger  ports.Logger
	metrics ports.StoreMetrics

	defaultLocation forecast.Location
	fanOutLimit     int

	mu           sync.RWMutex
	active       *forecast.Location
	activeBundle *forecast.CityWeatherBundle
	tracked      []forecast.Location
	summaries    map[string]summaryEntry
	unit         forecast.MeasurementUnit
	lastErr      string
	version      uint64

	// removedAt holds the generation counter at the time a location was untracked
	removedAt map[int64]uint64

	// commitMu serialises cache writes against whole-cache invalidation
	commitMu sync.Mutex
	epoch    uint64

	flights    singleflight.Group
	generation atomic.Uint64
	inFlight   atomic.Int64
	awaiting   atomic.Int64
	refreshing atomic.Bool

	events *eventHub
}

// StoreDependencies lists what the store needs from the outside
type StoreDependencies struct {
	Gateway     ports.WeatherGateway
	Cache       ports.BundleCache
	Preferences ports.PreferencesRepository
	Logger      ports.Logger
	Metrics     ports.StoreMetrics
	Config      ports.StoreConfig
}

// NewStore creates a store in its first-run state. Call Load to restore persisted preferences.
func NewStore(deps StoreDependencies) (*Store, error) {
	if deps.Gateway == nil {
		return nil, errors.NewValidationError("weather gateway is required")
	}
	if deps.Cache == nil {
		return nil, errors.NewValidationError("bundle cache is required")
	}
	if deps.Preferences == nil {
		return nil, errors.NewValidationError("preferences repository is required")
	}
	if deps.Logger == nil {
		return nil, errors.NewValidationError("logger is required")
	}

	metrics := deps.Metrics
	if metrics == nil {
		metrics = nopMetrics{}
	}

	defaultLocation := deps.Config.DefaultLocation
	if defaultLocation.Validate() != nil {
		defaultLocation = forecast.DefaultLocation()
	}

	fanOut := deps.Config.FanOutLimit
	if fanOut <= 0 {
		fanOut = defaultFanOutLimit
	}
	buffer := deps.Config.EventBuffer
	if buffer <= 0 {
		buffer = defaultEventBuffer
	}

	active := defaultLocation
	return &Store{
		gateway:         deps.Gateway,
		cache:           deps.Cache,
		prefs:           deps.Preferences,
		logger:          deps.Logger,
		metrics:         metrics,
		defaultLocation: defaultLocation,
		fanOutLimit:     fanOut,
		active:          &active,
		summaries:       make(map[string]summaryEntry),
		removedAt:       make(map[int64]uint64),
		unit:            forecast.UnitMetric,
		events:          newEventHub(buffer),
	}, nil
}

// Load restores tracked cities, the active city and the unit from persistent storage.
// Anything missing keeps its first-run default.
func (s *Store) Load(ctx context.Context) error {
	tracked, err := s.prefs.LoadTracked(ctx)
	if err != nil && !errors.IsNotFoundError(err) {
		s.logger.Warn("Failed to load tracked locations, starting empty", ports.F("error", err))
	}

	active, activeErr := s.prefs.LoadActive(ctx)
	if activeErr != nil && !errors.IsNotFoundError(activeErr) {
		s.logger.Warn("Failed to load active location, using default", ports.F("error", activeErr))
	}

	unit, unitErr := s.prefs.LoadUnit(ctx)
	if unitErr != nil && !errors.IsNotFoundError(unitErr) {
		s.logger.Warn("Failed to load measurement unit, using metric", ports.F("error", unitErr))
	}

	s.mu.Lock()
	if err == nil {
		s.tracked = dedupeLocations(tracked)
	}
	if activeErr == nil && active != nil {
		a := *active
		s.active = &a
	}
	if unitErr == nil && unit.IsValid() {
		s.unit = unit
	}
	s.version++
	version := s.version
	s.mu.Unlock()

	s.logger.Info("Weather store loaded",
		ports.F("tracked", len(s.Tracked())),
		ports.F("unit", s.Unit().String()))
	s.events.publish(Event{Kind: EventStateLoaded, Version: version})
	return nil
}

// State is an immutable copy of everything the presentation layer observes
type State struct {
	Active    *forecast.Location                     `json:"active"`
	Tracked   []forecast.Location                    `json:"tracked"`
	Unit      forecast.MeasurementUnit               `json:"unit"`
	Busy      bool                                   `json:"busy"`
	LastError string                                 `json:"last_error,omitempty"`
	Yesterday *forecast.DaySnapshot                  `json:"yesterday,omitempty"`
	Today     *forecast.DaySnapshot                  `json:"today,omitempty"`
	Tomorrow  *forecast.DaySnapshot                  `json:"tomorrow,omitempty"`
	Summaries map[string]forecast.CityWeatherSummary `json:"summaries"`
	Version   uint64                                 `json:"version"`
}

// Snapshot returns a copy of the current state
func (s *Store) Snapshot() State {
	s.mu.RLock()
	defer s.mu.RUnlock()

	state := State{
		Tracked:   append(make([]forecast.Location, 0, len(s.tracked)), s.tracked...),
		Unit:      s.unit,
		Busy:      s.inFlight.Load() > 0 || s.awaiting.Load() > 0 || s.refreshing.Load(),
		LastError: s.lastErr,
		Summaries: s.summariesLocked(),
		Version:   s.version,
	}
	if s.active != nil {
		a := *s.active
		state.Active = &a
	}
	if s.activeBundle != nil {
		y, t, tm := s.activeBundle.Yesterday, s.activeBundle.Today, s.activeBundle.Tomorrow
		state.Yesterday, state.Today, state.Tomorrow = &y, &t, &tm
	}
	return state
}

// Summaries returns the summary map keyed by location id string
func (s *Store) Summaries() map[string]forecast.CityWeatherSummary {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.summariesLocked()
}

func (s *Store) summariesLocked() map[string]forecast.CityWeatherSummary {
	out := make(map[string]forecast.CityWeatherSummary, len(s.summaries))
	for k, v := range s.summaries {
		out[k] = v.summary
	}
	return out
}

// Bundle returns the cached bundle for a location id, or a NotFound error
func (s *Store) Bundle(ctx context.Context, locationID int64) (*forecast.CityWeatherBundle, error) {
	entry, err := s.cache.Get(ctx, locationID)
	if err != nil {
		return nil, err
	}
	return entry.Bundle, nil
}

// Unit returns the committed measurement unit
func (s *Store) Unit() forecast.MeasurementUnit {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.unit
}

// Active returns the active location, nil when nothing is tracked
func (s *Store) Active() *forecast.Location {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.active == nil {
		return nil
	}
	a := *s.active
	return &a
}

// Tracked returns a copy of the tracked list
func (s *Store) Tracked() []forecast.Location {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append(make([]forecast.Location, 0, len(s.tracked)), s.tracked...)
}

// LastError returns the user-facing message of the most recent failure
func (s *Store) LastError() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastErr
}

// Subscribe registers an observer. The channel is closed by Unsubscribe.
func (s *Store) Subscribe() (string, <-chan Event) {
	return s.events.subscribe()
}

// Unsubscribe removes an observer
func (s *Store) Unsubscribe(id string) {
	s.events.unsubscribe(id)
}

// Close drops every observer
func (s *Store) Close() {
	s.events.closeAll()
}

// recordError stores the user-facing message for err and notifies observers.
// Cancellation is never recorded.
func (s *Store) recordError(err error, fields ...ports.Field) {
	if err == nil || errors.IsCancelled(err) {
		return
	}
	s.logger.Error("Weather store operation failed", append(fields, ports.F("error", err))...)

	s.mu.Lock()
	s.lastErr = errors.UserMessage(err)
	s.version++
	version := s.version
	s.mu.Unlock()

	s.events.publish(Event{Kind: EventError, Version: version, Message: errors.UserMessage(err)})
}

// touch bumps the state version and publishes an event of the given kind
func (s *Store) touch(kind EventKind, locationID int64) {
	s.mu.Lock()
	s.version++
	version := s.version
	s.mu.Unlock()
	s.events.publish(Event{Kind: kind, LocationID: locationID, Version: version})
}

func dedupeLocations(in []forecast.Location) []forecast.Location {
	out := make([]forecast.Location, 0, len(in))
	for _, loc := range in {
		if indexOfPlace(out, loc) >= 0 || indexOfID(out, loc.ID) >= 0 {
			continue
		}
		out = append(out, loc)
	}
	return out
}

type nopMetrics struct{}

func (nopMetrics) RecordBundleHit()                     {}
func (nopMetrics) RecordBundleMiss()                    {}
func (nopMetrics) RecordFetch(string)                   {}
func (nopMetrics) RecordCoalesced()                     {}
func (nopMetrics) ObserveRefresh(string, time.Duration) {}
