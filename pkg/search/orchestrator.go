// Package search merges two independent location sources into one ranked
// result list: a remote geocoder and the local stop index. Queries are
// debounced, and out-of-order completions are discarded by generation so
// a slow response to an old query never overwrites a newer one.
package search

import (
	"log"
	"sync"
	"time"

	"transmap/pkg/geocode"
)

// Source tags where a location came from.
type Source string

const (
	SourceStop    Source = "stop"
	SourceAddress Source = "address"
	SourcePin     Source = "pin"
)

// Location is one ranked search result, and the unit of selection state:
// pins and dragged markers produce Locations too.
type Location struct {
	Label  string
	Detail string
	Lat    float64
	Lon    float64
	Source Source
	StopID string
}

// Geocoder is the remote half of a search.
type Geocoder interface {
	Search(query string) ([]geocode.Result, error)
}

// minQueryLen is the shortest query worth a network call.
const minQueryLen = 3

// defaultDebounce is the quiet period before a submitted query fires.
const defaultDebounce = 250 * time.Millisecond

// Orchestrator coordinates the dual-source search.
type Orchestrator struct {
	geocoder Geocoder
	index    *Index
	debounce time.Duration

	mu  sync.Mutex
	gen uint64
}

// NewOrchestrator wires a geocoder and a stop index together.
func NewOrchestrator(geocoder Geocoder, index *Index) *Orchestrator {
	return &Orchestrator{
		geocoder: geocoder,
		index:    index,
		debounce: defaultDebounce,
	}
}

// SetDebounce overrides the quiet period. Tests use a short window.
func (o *Orchestrator) SetDebounce(d time.Duration) {
	o.debounce = d
}

// SearchNow runs one search immediately: geocoder and stop index fan out
// concurrently, addresses rank before stop matches. A geocoder failure
// contributes zero results and is logged, never surfaced — local stop
// matches still come back. Queries under 3 characters return nothing
// without touching the network.
func (o *Orchestrator) SearchNow(query string) []Location {
	if len([]rune(query)) < minQueryLen {
		return nil
	}

	var (
		addresses []Location
		stops     []Location
		wg        sync.WaitGroup
	)

	wg.Add(2)

	go func() {
		defer wg.Done()
		results, err := o.geocoder.Search(query)
		if err != nil {
			log.Printf("search: geocoder failed for %q: %v", query, err)
			return
		}
		for _, r := range results {
			addresses = append(addresses, Location{
				Label:  r.Label,
				Detail: r.Type,
				Lat:    r.Lat,
				Lon:    r.Lon,
				Source: SourceAddress,
			})
		}
	}()

	go func() {
		defer wg.Done()
		stops = o.index.Match(query)
	}()

	wg.Wait()

	merged := make([]Location, 0, len(addresses)+len(stops))
	merged = append(merged, addresses...)
	merged = append(merged, stops...)
	return merged
}

// Submit schedules a debounced search. Only the most recent query after
// the quiet period actually runs, and deliver is invoked only if the
// query is still the newest when its results arrive; superseded
// submissions are dropped silently.
func (o *Orchestrator) Submit(query string, deliver func([]Location)) {
	o.mu.Lock()
	o.gen++
	gen := o.gen
	o.mu.Unlock()

	go func() {
		time.Sleep(o.debounce)
		if !o.current(gen) {
			return
		}

		results := o.SearchNow(query)

		// Re-check after the network round trip: a newer query may have
		// been submitted while this one was in flight.
		if !o.current(gen) {
			return
		}
		deliver(results)
	}()
}

func (o *Orchestrator) current(gen uint64) bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return gen == o.gen
}
