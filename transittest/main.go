package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Quick standalone probe against a running backend, kept outside the
// main module flow for poking at raw responses during development.

type Departure struct {
	RouteShortName     string `json:"route_short_name"`
	TripID             string `json:"trip_id"`
	DepartureTimestamp int64  `json:"departure_timestamp"` // epoch seconds
	Delay              int64  `json:"delay"`               // seconds
}

type Stop struct {
	ID   string `json:"stop_id"`
	Name string `json:"stop_name"`
}

func main() {
	base := "http://localhost:8000"

	fmt.Println("Fetching stop list from backend...")

	stops, err := fetchJSON[[]Stop](base + "/api/stops")
	if err != nil {
		fmt.Println("Error:", err)
		return
	}
	if len(stops) == 0 {
		fmt.Println("Backend returned no stops.")
		return
	}

	fmt.Printf("Got %d stops, probing departures for %s (%s)\n", len(stops), stops[0].Name, stops[0].ID)

	deps, err := fetchJSON[[]Departure](base + "/api/departures/" + stops[0].ID)
	if err != nil {
		fmt.Println("Error:", err)
		return
	}

	fmt.Printf("\n--- 🚌 Next Departures: %s ---\n", stops[0].Name)
	for _, d := range deps {
		when := time.Unix(d.DepartureTimestamp+d.Delay, 0)
		delayStr := ""
		if d.Delay > 0 {
			delayStr = fmt.Sprintf(" (+%d min delay)", d.Delay/60)
		}

		fmt.Printf("[%s] Line %s (trip %s)%s\n",
			when.Local().Format("15:04"),
			d.RouteShortName,
			d.TripID,
			delayStr)
	}
}

func fetchJSON[T any](url string) (T, error) {
	var out T

	resp, err := http.Get(url)
	if err != nil {
		return out, err
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if err := json.Unmarshal(body, &out); err != nil {
		return out, fmt.Errorf("decoding %s: %w", url, err)
	}
	return out, nil
}
