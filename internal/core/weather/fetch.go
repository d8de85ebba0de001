package weather

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"
	"weatherdeck.app/internal/core/forecast"
	"weatherdeck.app/internal/ports"
	"weatherdeck.app/pkg/errors"
)

// RefreshReport lists the outcome of a fan-out refresh per location id
type RefreshReport struct {
	Succeeded []int64 `json:"succeeded"`
	Failed    []int64 `json:"failed"`
	Cancelled []int64 `json:"cancelled"`
}

// EnsureWeather makes sure a bundle for loc is cached. Without forceRefresh a cached bundle
// is returned as-is. Concurrent calls for the same location share one gateway request.
//
// On failure the previously cached bundle (if any) is kept and returned alongside the error.
// A cancelled fetch is not a failure: the previous bundle is returned with a nil error.
func (s *Store) EnsureWeather(ctx context.Context, loc forecast.Location, forceRefresh bool) (*forecast.CityWeatherBundle, error) {
	if err := loc.Validate(); err != nil {
		return nil, errors.NewValidationError("invalid location: " + err.Error())
	}

	if !forceRefresh {
		if entry, ok := s.cachedEntry(ctx, loc.ID); ok {
			s.metrics.RecordBundleHit()
			s.adoptActiveBundle(loc.ID, entry.Bundle)
			return entry.Bundle, nil
		}
		s.metrics.RecordBundleMiss()
	}

	entry, err := s.fetchCoalesced(ctx, loc, forceRefresh)
	if err != nil {
		var previous *forecast.CityWeatherBundle
		if prev, ok := s.cachedEntry(context.WithoutCancel(ctx), loc.ID); ok {
			previous = prev.Bundle
		}
		if errors.IsCancelled(err) {
			s.logger.Debug("Weather fetch cancelled", ports.F("location_id", loc.ID))
			return previous, nil
		}
		s.recordError(err, ports.F("location_id", loc.ID), ports.F("location", loc.String()))
		return previous, fmt.Errorf("ensure weather for %s: %w", loc.String(), err)
	}

	return entry.Bundle, nil
}

// fetchStamp reads the cache epoch and unit together so a fetch can tell whether a unit
// change invalidated the cache while it was in flight
func (s *Store) fetchStamp() (uint64, forecast.MeasurementUnit) {
	s.commitMu.Lock()
	defer s.commitMu.Unlock()
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.epoch, s.unit
}

func (s *Store) fetchCoalesced(ctx context.Context, loc forecast.Location, forceRefresh bool) (*ports.CachedBundle, error) {
	epoch, unit := s.fetchStamp()
	key := fmt.Sprintf("bundle:%d:%s:%d", loc.ID, unit, epoch)

	led := false
	ch := s.flights.DoChan(key, func() (interface{}, error) {
		led = true
		// a flight for this key may have committed between our cache check and DoChan
		if !forceRefresh {
			if entry, ok := s.cachedEntry(ctx, loc.ID); ok {
				return entry, nil
			}
		}
		return s.fetchAndCommit(ctx, loc, unit, epoch)
	})
	s.awaiting.Add(1)
	defer s.awaiting.Add(-1)

	select {
	case <-ctx.Done():
		return nil, errors.NewCancelledError("weather fetch cancelled", ctx.Err())
	case res := <-ch:
		if res.Shared && !led {
			s.metrics.RecordCoalesced()
		}
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*ports.CachedBundle), nil
	}
}

func (s *Store) fetchAndCommit(ctx context.Context, loc forecast.Location, unit forecast.MeasurementUnit, epoch uint64) (*ports.CachedBundle, error) {
	generation := s.generation.Add(1)

	result, err := s.gatewayFetch(ctx, loc, unit)
	if err != nil {
		return nil, err
	}
	entry := &ports.CachedBundle{Bundle: result.Bundle, Timezone: result.Timezone}

	s.commitMu.Lock()
	if s.epoch != epoch {
		s.commitMu.Unlock()
		s.logger.Debug("Discarding bundle fetched under a previous unit", ports.F("location_id", loc.ID))
		return nil, errors.NewCancelledError("measurement unit changed during fetch", nil)
	}
	if s.removedDuring(loc.ID, generation) {
		s.commitMu.Unlock()
		s.logger.Debug("Discarding bundle of a location removed during fetch", ports.F("location_id", loc.ID))
		return nil, errors.NewCancelledError("location removed during fetch", nil)
	}
	putErr := s.cache.Put(context.WithoutCancel(ctx), loc.ID, entry)
	if putErr != nil {
		s.commitMu.Unlock()
		return nil, putErr
	}
	s.applyBundle(loc.ID, entry, generation)
	s.commitMu.Unlock()
	return entry, nil
}

// removedDuring reports whether locationID was untracked after a fetch stamped with
// generation started
func (s *Store) removedDuring(locationID int64, generation uint64) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	removed, ok := s.removedAt[locationID]
	return ok && removed >= generation
}

// gatewayFetch wraps a single gateway call with the busy counter, validation and metrics
func (s *Store) gatewayFetch(ctx context.Context, loc forecast.Location, unit forecast.MeasurementUnit) (*ports.ForecastResult, error) {
	s.inFlight.Add(1)
	defer s.inFlight.Add(-1)

	result, err := s.gateway.FetchWeather(ctx, loc, unit)
	if err != nil {
		s.metrics.RecordFetch(fetchOutcome(err))
		return nil, err
	}
	if result == nil || result.Bundle.Validate() != nil {
		s.metrics.RecordFetch("incomplete")
		return nil, errors.NewIncompleteDataError(fmt.Sprintf("gateway returned an invalid bundle for location %d", loc.ID))
	}
	result.Bundle.LocationID = loc.ID
	s.metrics.RecordFetch("success")
	return result, nil
}

func fetchOutcome(err error) string {
	switch {
	case errors.IsCancelled(err):
		return "cancelled"
	case errors.IsRemoteError(err):
		return "remote_error"
	case errors.IsIncompleteDataError(err):
		return "incomplete"
	case errors.IsDecodeError(err):
		return "decode_error"
	default:
		return "error"
	}
}

// applyBundle publishes a freshly committed bundle to the in-memory state
func (s *Store) applyBundle(locationID int64, entry *ports.CachedBundle, generation uint64) {
	key := forecast.Location{ID: locationID}.Key()

	s.mu.Lock()
	if removed, gone := s.removedAt[locationID]; gone && removed >= generation {
		s.mu.Unlock()
		return
	}
	existing, ok := s.summaries[key]
	if !ok || existing.source == sourceSummary || existing.generation <= generation {
		s.summaries[key] = summaryEntry{
			summary:    forecast.SummaryOf(entry.Bundle, entry.Timezone),
			generation: generation,
			source:     sourceFullBundle,
		}
	}
	if s.active != nil && s.active.ID == locationID {
		s.activeBundle = entry.Bundle
		s.lastErr = ""
	}
	s.version++
	version := s.version
	s.mu.Unlock()

	s.events.publish(Event{Kind: EventBundleUpdated, LocationID: locationID, Version: version})
}

// adoptActiveBundle points the yesterday/today/tomorrow fields at a cached bundle on a hit
func (s *Store) adoptActiveBundle(locationID int64, bundle *forecast.CityWeatherBundle) {
	s.mu.Lock()
	if s.active == nil || s.active.ID != locationID ||
		(s.activeBundle != nil && s.activeBundle.FetchedAt.Equal(bundle.FetchedAt)) {
		s.mu.Unlock()
		return
	}
	s.activeBundle = bundle
	s.version++
	version := s.version
	s.mu.Unlock()

	s.events.publish(Event{Kind: EventBundleUpdated, LocationID: locationID, Version: version})
}

func (s *Store) cachedEntry(ctx context.Context, locationID int64) (*ports.CachedBundle, bool) {
	entry, err := s.cache.Get(ctx, locationID)
	if err != nil {
		if !errors.IsNotFoundError(err) {
			s.logger.Warn("Bundle cache read failed, treating as miss",
				ports.F("location_id", locationID),
				ports.F("error", err))
		}
		return nil, false
	}
	if entry == nil || entry.Bundle == nil {
		return nil, false
	}
	return entry, true
}

// refreshSummary fetches a location and updates only its list summary. It never replaces
// a summary derived from a full bundle that was started later.
func (s *Store) refreshSummary(ctx context.Context, loc forecast.Location) error {
	epoch, unit := s.fetchStamp()
	generation := s.generation.Add(1)
	key := fmt.Sprintf("summary:%d:%s:%d", loc.ID, unit, epoch)

	v, err, _ := s.flights.Do(key, func() (interface{}, error) {
		return s.gatewayFetch(ctx, loc, unit)
	})
	if err != nil {
		return err
	}
	result := v.(*ports.ForecastResult)

	s.commitMu.Lock()
	defer s.commitMu.Unlock()
	if s.epoch != epoch {
		return nil
	}

	summaryKey := loc.Key()
	s.mu.Lock()
	existing, ok := s.summaries[summaryKey]
	removed, gone := s.removedAt[loc.ID]
	if (ok && existing.generation > generation) || (gone && removed >= generation) {
		s.mu.Unlock()
		return nil
	}
	s.summaries[summaryKey] = summaryEntry{
		summary:    forecast.SummaryOf(result.Bundle, result.Timezone),
		generation: generation,
		source:     sourceSummary,
	}
	s.version++
	version := s.version
	s.mu.Unlock()

	s.events.publish(Event{Kind: EventSummaryUpdated, LocationID: loc.ID, Version: version})
	return nil
}

// RefreshActiveAndTracked force-fetches the active location, then refreshes the list summary
// of every other tracked city. A call made while another refresh or unit change is running
// returns immediately.
func (s *Store) RefreshActiveAndTracked(ctx context.Context) error {
	if !s.refreshing.CompareAndSwap(false, true) {
		s.logger.Debug("Refresh already in progress, skipping")
		return nil
	}
	defer s.refreshing.Store(false)

	start := time.Now()
	defer func() { s.metrics.ObserveRefresh("active_and_tracked", time.Since(start)) }()

	var activeErr error
	active := s.Active()
	if active != nil {
		_, activeErr = s.EnsureWeather(ctx, *active, true)
	}

	others := make([]forecast.Location, 0)
	for _, loc := range s.Tracked() {
		if active != nil && loc.ID == active.ID {
			continue
		}
		others = append(others, loc)
	}
	s.refreshSummaries(ctx, others)

	return activeErr
}

func (s *Store) refreshSummaries(ctx context.Context, locations []forecast.Location) {
	s.fanOut(ctx, locations, func(ctx context.Context, loc forecast.Location) {
		if err := s.refreshSummary(ctx, loc); err != nil {
			s.recordError(err, ports.F("location_id", loc.ID), ports.F("operation", "summary"))
		}
	})
}

// RefreshAllTrackedFull force-fetches full bundles for the active city and every tracked city
// in parallel and waits for all of them. One failing city never stops the others.
func (s *Store) RefreshAllTrackedFull(ctx context.Context) RefreshReport {
	start := time.Now()
	defer func() { s.metrics.ObserveRefresh("all_full", time.Since(start)) }()

	var locations []forecast.Location
	if active := s.Active(); active != nil {
		locations = append(locations, *active)
	}
	for _, loc := range s.Tracked() {
		if indexOfID(locations, loc.ID) < 0 {
			locations = append(locations, loc)
		}
	}

	type outcome struct {
		id  int64
		err error
	}
	results := make(chan outcome, len(locations))
	s.fanOut(ctx, locations, func(ctx context.Context, loc forecast.Location) {
		_, err := s.EnsureWeather(ctx, loc, true)
		if err == nil && ctx.Err() != nil {
			err = errors.NewCancelledError("refresh cancelled", ctx.Err())
		}
		results <- outcome{id: loc.ID, err: err}
	})
	close(results)

	report := RefreshReport{Succeeded: []int64{}, Failed: []int64{}, Cancelled: []int64{}}
	for r := range results {
		switch {
		case r.err == nil:
			report.Succeeded = append(report.Succeeded, r.id)
		case errors.IsCancelled(r.err):
			report.Cancelled = append(report.Cancelled, r.id)
		default:
			report.Failed = append(report.Failed, r.id)
		}
	}

	s.logger.Info("Full refresh finished",
		ports.F("locations", len(locations)),
		ports.F("failed", len(report.Failed)),
		ports.F("duration_ms", time.Since(start).Milliseconds()))
	return report
}

// fanOut runs fn for every location with bounded parallelism and waits for all of them.
// The group has no shared context, so one failure never cancels its siblings.
func (s *Store) fanOut(ctx context.Context, locations []forecast.Location, fn func(context.Context, forecast.Location)) {
	var g errgroup.Group
	g.SetLimit(s.fanOutLimit)
	for _, loc := range locations {
		loc := loc
		g.Go(func() error {
			fn(ctx, loc)
			return nil
		})
	}
	_ = g.Wait()
}

// SetUnit switches the measurement unit. The active location is fetched under the new unit
// first; only when that succeeds is the whole cache invalidated, the new bundle stored and the
// unit committed. A failed fetch leaves both unit and cache untouched. A call made while any
// fetch, refresh or other unit change is running is ignored.
func (s *Store) SetUnit(ctx context.Context, unit forecast.MeasurementUnit) error {
	if !unit.IsValid() {
		return errors.NewValidationError("unit must be metric or imperial")
	}
	if s.Unit() == unit {
		return nil
	}
	if !s.refreshing.CompareAndSwap(false, true) {
		s.logger.Debug("Fetch in progress, ignoring unit change", ports.F("unit", unit.String()))
		return nil
	}
	if s.inFlight.Load() > 0 || s.awaiting.Load() > 0 {
		s.refreshing.Store(false)
		s.logger.Debug("Fetch in progress, ignoring unit change", ports.F("unit", unit.String()))
		return nil
	}
	released := false
	release := func() {
		if !released {
			released = true
			s.refreshing.Store(false)
		}
	}
	defer release()

	active := s.Active()
	var entry *ports.CachedBundle
	if active != nil {
		result, err := s.gatewayFetch(ctx, *active, unit)
		if err != nil {
			if errors.IsCancelled(err) {
				return nil
			}
			s.recordError(err, ports.F("unit", unit.String()))
			return fmt.Errorf("switch unit to %s: %w", unit, err)
		}
		entry = &ports.CachedBundle{Bundle: result.Bundle, Timezone: result.Timezone}
	}

	generation := s.generation.Add(1)
	commitCtx := context.WithoutCancel(ctx)

	s.commitMu.Lock()
	if err := s.cache.Clear(commitCtx); err != nil {
		s.commitMu.Unlock()
		s.recordError(err, ports.F("unit", unit.String()))
		return fmt.Errorf("invalidate cache for unit %s: %w", unit, err)
	}
	s.epoch++
	if entry != nil {
		if err := s.cache.Put(commitCtx, active.ID, entry); err != nil {
			s.logger.Warn("Failed to cache active bundle after unit change", ports.F("error", err))
		}
	}
	s.mu.Lock()
	s.unit = unit
	s.summaries = make(map[string]summaryEntry)
	s.removedAt = make(map[int64]uint64)
	if entry != nil {
		s.summaries[active.Key()] = summaryEntry{
			summary:    forecast.SummaryOf(entry.Bundle, entry.Timezone),
			generation: generation,
			source:     sourceFullBundle,
		}
		s.activeBundle = entry.Bundle
	} else {
		s.activeBundle = nil
	}
	s.lastErr = ""
	s.version++
	version := s.version
	s.mu.Unlock()
	s.commitMu.Unlock()

	if err := s.prefs.SaveUnit(commitCtx, unit); err != nil {
		s.logger.Warn("Failed to persist measurement unit", ports.F("unit", unit.String()), ports.F("error", err))
	}
	s.logger.Info("Measurement unit changed", ports.F("unit", unit.String()))
	s.events.publish(Event{Kind: EventUnitChanged, Version: version})

	release()

	others := make([]forecast.Location, 0)
	for _, loc := range s.Tracked() {
		if active != nil && loc.ID == active.ID {
			continue
		}
		others = append(others, loc)
	}
	s.refreshSummaries(ctx, others)
	return nil
}
