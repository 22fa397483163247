package guest

import (
	"strings"
	"testing"
)

func sampleInputs() Inputs {
	return Inputs{
		UserAgent:      "Mozilla/5.0 (X11; Linux x86_64)",
		Language:       "en-US",
		ScreenWidth:    1920,
		ScreenHeight:   1080,
		TimezoneOffset: -120,
		Canvas:         "c4nv4s-f1ngerpr1nt",
	}
}

func TestDerive_Stable(t *testing.T) {
	// Same environment + same salt must reproduce the same ID, otherwise a
	// returning visitor would mint a fresh identity on every visit.
	a := Derive(sampleInputs(), "salt1")
	b := Derive(sampleInputs(), "salt1")
	if a != b {
		t.Errorf("Derive() not stable: %q != %q", a, b)
	}
}

func TestDerive_SaltSeparatesIdenticalEnvironments(t *testing.T) {
	a := Derive(sampleInputs(), "salt1")
	b := Derive(sampleInputs(), "salt2")
	if a == b {
		t.Error("two clients with identical environments but different salts collided")
	}
}

func TestDerive_EnvironmentChangesID(t *testing.T) {
	in := sampleInputs()
	a := Derive(in, "salt1")
	in.TimezoneOffset = 300
	b := Derive(in, "salt1")
	if a == b {
		t.Error("changing an environment input did not change the ID")
	}
}

func TestNewSalt_Unique(t *testing.T) {
	a, err := NewSalt()
	if err != nil {
		t.Fatalf("NewSalt() error = %v", err)
	}
	b, err := NewSalt()
	if err != nil {
		t.Fatalf("NewSalt() error = %v", err)
	}
	if a == b {
		t.Error("two salts collided")
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain id passes", "abc123", "abc123"},
		{"whitespace trimmed", "  abc123  ", "abc123"},
		{"empty rejected", "", ""},
		{"whitespace-only rejected", "   ", ""},
		{"oversized rejected", strings.Repeat("x", MaxIDLength+1), ""},
		{"derived id passes", Derive(sampleInputs(), "salt"), Derive(sampleInputs(), "salt")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Normalize(tt.in); got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
