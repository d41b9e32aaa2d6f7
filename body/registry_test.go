package body

import (
	"errors"
	"math"
	"testing"
)

func TestDefaultRegistry(t *testing.T) {
	r := Default()

	if r.Len() != 9 {
		t.Fatalf("Expected 9 bodies, got %d", r.Len())
	}
	if !r.Anchor().IsAnchor() || r.Anchor().Name != "Sun" {
		t.Errorf("Expected Sun as anchor at index 0, got %q", r.Anchor().Name)
	}

	i, saturn, err := r.Lookup("Saturn")
	if err != nil {
		t.Fatalf("Lookup(Saturn) failed: %v", err)
	}
	if i != 6 {
		t.Errorf("Expected Saturn at index 6, got %d", i)
	}
	inner, outer, ok := saturn.RingRadii()
	if !ok {
		t.Fatal("Expected Saturn to have a ring")
	}
	if math.Abs(inner-0.9) > 1e-9 || math.Abs(outer-2.25) > 1e-9 {
		t.Errorf("Expected ring radii (0.9, 2.25), got (%g, %g)", inner, outer)
	}

	// Only Saturn carries a ring, so 9 surface textures + 1 ring texture
	if got := len(r.Textures()); got != 10 {
		t.Errorf("Expected 10 texture paths, got %d", got)
	}
}

func TestLookupNotFound(t *testing.T) {
	r := Default()
	_, _, err := r.Lookup("Pluto")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestAtBounds(t *testing.T) {
	r := Default()

	for _, idx := range []int{-1, 9, 100} {
		if _, err := r.At(idx); !errors.Is(err, ErrIndexOutOfRange) {
			t.Errorf("At(%d): expected ErrIndexOutOfRange, got %v", idx, err)
		}
	}
	b, err := r.At(3)
	if err != nil || b.Name != "Earth" {
		t.Errorf("At(3): expected Earth, got %v, %v", b, err)
	}
}

func TestAllStableOrder(t *testing.T) {
	r := Default()
	want := []string{"Sun", "Mercury", "Venus", "Earth", "Mars", "Jupiter", "Saturn", "Uranus", "Neptune"}

	var got []string
	for i, b := range r.All {
		if want[i] != b.Name {
			t.Errorf("index %d: expected %s, got %s", i, want[i], b.Name)
		}
		got = append(got, b.Name)
	}
	if len(got) != len(want) {
		t.Errorf("Expected %d bodies from All, got %d", len(want), len(got))
	}
}

func TestRegistryValidation(t *testing.T) {
	sun := Body{Name: "Sun", Radius: 2}
	earth := Body{Name: "Earth", Radius: 0.16, OrbitalDistance: 7, OrbitalPeriodDays: 365}

	tests := []struct {
		name   string
		bodies []Body
	}{
		{"empty", nil},
		{"no anchor", []Body{earth}},
		{"anchor not first", []Body{earth, sun}},
		{"two anchors", []Body{sun, {Name: "Sun2", Radius: 1}}},
		{"duplicate name", []Body{sun, earth, earth}},
		{"zero radius", []Body{sun, {Name: "Dust", OrbitalDistance: 3, OrbitalPeriodDays: 10}}},
		{"negative distance", []Body{sun, {Name: "Neg", Radius: 1, OrbitalDistance: -1, OrbitalPeriodDays: 10}}},
		{"periodless at distance", []Body{sun, {Name: "Drift", Radius: 1, OrbitalDistance: 5}}},
		{"bad ring", []Body{sun, {Name: "Ringed", Radius: 1, OrbitalDistance: 5, OrbitalPeriodDays: 10, Ring: &Ring{InnerScale: 2, OuterScale: 1}}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewRegistry(tt.bodies); !errors.Is(err, ErrInvalidRegistry) {
				t.Errorf("Expected ErrInvalidRegistry, got %v", err)
			}
		})
	}

	if _, err := NewRegistry([]Body{sun, earth}); err != nil {
		t.Errorf("Expected minimal registry to validate, got %v", err)
	}
}

func TestRegistryCopiesInput(t *testing.T) {
	bodies := DefaultBodies()
	r, err := NewRegistry(bodies)
	if err != nil {
		t.Fatal(err)
	}
	bodies[3].Radius = 99
	bodies[6].Ring.OuterScale = 99

	earth, _ := r.At(3)
	saturn, _ := r.At(6)
	if earth.Radius == 99 || saturn.Ring.OuterScale == 99 {
		t.Error("Registry must not alias the caller's slice")
	}
}

func TestRates(t *testing.T) {
	r := Default()
	_, earth, _ := r.Lookup("Earth")
	_, venus, _ := r.Lookup("Venus")

	wantOrbit := 360.0 / (365 * SecondsPerDay)
	if math.Abs(earth.OrbitRate()-wantOrbit) > 1e-15 {
		t.Errorf("Earth orbit rate: expected %g, got %g", wantOrbit, earth.OrbitRate())
	}
	if earth.RotationRate() <= 0 {
		t.Errorf("Earth should spin prograde, rate %g", earth.RotationRate())
	}
	if venus.RotationRate() >= 0 {
		t.Errorf("Venus should spin retrograde, rate %g", venus.RotationRate())
	}
	if r.Anchor().OrbitRate() != 0 {
		t.Errorf("Anchor must not orbit, rate %g", r.Anchor().OrbitRate())
	}
	if (&Body{}).RotationRate() != 0 {
		t.Error("Zero rotation period must yield zero rate")
	}
}
