package search

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"transmap/pkg/backend"
)

// stopCacheMaxAge determines how long a stored stop list is trusted
// before a fresh backend fetch is required again
const stopCacheMaxAge = 24 * time.Hour

// stopCacheEntry represents the disk data format
type stopCacheEntry struct {
	Timestamp time.Time      `json:"timestamp"`
	Stops     []backend.Stop `json:"stops"`
}

func stopCachePath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not find user home directory: %w", err)
	}

	cacheDir := filepath.Join(homeDir, ".transmap_cache")
	if err := os.MkdirAll(cacheDir, 0755); err != nil {
		return "", fmt.Errorf("could not create cache directory: %w", err)
	}

	return filepath.Join(cacheDir, "stops.json"), nil
}

// ReadCachedStops returns the last stop list written to disk, if one
// exists and has not expired. It lets search keep offering stop matches
// when the backend is briefly unreachable at startup.
func ReadCachedStops() ([]backend.Stop, bool) {
	path, err := stopCachePath()
	if err != nil {
		return nil, false
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, false
	}

	var entry stopCacheEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		return nil, false
	}

	if time.Since(entry.Timestamp) > stopCacheMaxAge {
		return nil, false
	}

	return entry.Stops, true
}

// WriteCachedStops saves the stop list to disk
func WriteCachedStops(stops []backend.Stop) {
	path, err := stopCachePath()
	if err != nil {
		return
	}

	entry := stopCacheEntry{
		Timestamp: time.Now(),
		Stops:     stops,
	}

	data, err := json.MarshalIndent(entry, "", "  ")
	if err != nil {
		return
	}

	_ = os.WriteFile(path, data, 0644)
}
