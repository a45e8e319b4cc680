package modes

import "testing"

func TestInfer(t *testing.T) {
	cases := []struct {
		label    string
		expected Mode
	}{
		{"U3", UBahn},
		{"U6", UBahn},
		{"S1", SBahn},
		{"S8", SBahn},
		{"Tram 19", Tram},
		{"12", Tram},  // numeric <= 30 -> tram
		{"30", Tram},  // boundary
		{"54", Bus},   // numeric > 30 -> bus
		{"X30", Bus},  // express bus, not numeric
		{"194", Bus},  //
		{"", Bus},     // empty defaults to bus
		{"N45", Bus},  // night bus
	}

	for _, c := range cases {
		if got := Infer(c.label); got != c.expected {
			t.Errorf("Infer(%q): expected %s, got %s", c.label, c.expected, got)
		}
	}
}

func TestResolvePrefersBackendMode(t *testing.T) {
	// A bus line numbered "12" would be misread as a tram by the
	// heuristic; the backend field must win.
	if got := Resolve("BUS", "12"); got != Bus {
		t.Errorf("expected backend mode to win, got %s", got)
	}
	if got := Resolve("", "12"); got != Tram {
		t.Errorf("expected heuristic fallback for empty mode, got %s", got)
	}
}

func TestParse(t *testing.T) {
	if Parse("walk") != Walk {
		t.Errorf("expected lowercase walk to parse")
	}
	if Parse("ubahn") != UBahn {
		t.Errorf("expected ubahn alias to parse")
	}
	if Parse("hovercraft") != Bus {
		t.Errorf("expected unknown mode to default to bus")
	}
}

func TestRail(t *testing.T) {
	for _, m := range []Mode{Tram, UBahn, SBahn} {
		if !Rail(m) {
			t.Errorf("expected %s to be rail-like", m)
		}
	}
	for _, m := range []Mode{Walk, Bus} {
		if Rail(m) {
			t.Errorf("expected %s not to be rail-like", m)
		}
	}
}
