package domain

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "xyz9", want: "XYZ9"},
		{in: "  ib ", want: "IB"},
		{in: "Teb9", want: "TEB9"},
		{in: "", want: ""},
		{in: "—", want: "—"},
	}

	for _, tt := range tests {
		if got := Normalize(tt.in); got != tt.want {
			t.Fatalf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{"xyz9", "  ib ", "XME1", "Empty Door", "—", ""}

	for _, in := range inputs {
		once := Normalize(in)
		if twice := Normalize(once); twice != once {
			t.Fatalf("Normalize not idempotent for %q: %q then %q", in, once, twice)
		}
	}
}

func TestIsBlank(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want bool
	}{
		{name: "empty", in: "", want: true},
		{name: "whitespaceOnly", in: "   ", want: true},
		{name: "emDash", in: "—", want: true},
		{name: "tripleDash", in: "---", want: true},
		{name: "embeddedSpace", in: "EMPTY DOOR", want: true},
		{name: "hyphenated", in: "A-1", want: true},
		{name: "surroundingSpacesTrimmed", in: " IB ", want: false},
		{name: "site", in: "XME1", want: false},
		{name: "lowercaseSite", in: "xme1", want: false},
		{name: "word", in: "CLOSED", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsBlank(tt.in); got != tt.want {
				t.Fatalf("IsBlank(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestCanonicalizeLocation(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "", want: Blank},
		{in: "   ", want: Blank},
		{in: "—", want: Blank},
		{in: "---", want: Blank},
		{in: "----", want: Blank},
		{in: " --- ", want: Blank},
		{in: "--", want: "--"},
		{in: "xyz9", want: "XYZ9"},
		{in: " ib ", want: "IB"},
		{in: "Closed", want: "CLOSED"},
	}

	for _, tt := range tests {
		if got := CanonicalizeLocation(tt.in); got != tt.want {
			t.Fatalf("CanonicalizeLocation(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestResolveTruck(t *testing.T) {
	tests := []struct {
		name     string
		location string
		override string
		want     string
	}{
		{name: "blankLocationAlwaysEmpty", location: Blank, override: "JBHU", want: ""},
		{name: "emptyLocationAlwaysEmpty", location: "", override: "JBHU", want: ""},
		{name: "overrideBeatsMap", location: "XME1", override: "XPOU", want: "XPOU"},
		{name: "overrideBeatsDefault", location: "XMD2", override: "XPOU", want: "XPOU"},
		{name: "mappedLocation", location: "XME1", override: "", want: "JBHU"},
		{name: "mappedLocationNormalized", location: " xme1 ", override: "", want: "JBHU"},
		{name: "mappedToNoTruck", location: "CLOSED", override: "", want: ""},
		{name: "mappedXpou", location: "VGT2", override: "", want: "XPOU"},
		{name: "mappedAznu", location: "XAT3", override: "", want: "AZNU"},
		{name: "unmappedFallsToDefault", location: "XMD2", override: "", want: DefaultTruck},
		{name: "inboundFallsToDefault", location: "IB", override: "", want: DefaultTruck},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ResolveTruck(tt.location, tt.override); got != tt.want {
				t.Fatalf("ResolveTruck(%q, %q) = %q, want %q", tt.location, tt.override, got, tt.want)
			}
		})
	}
}
