package catalog

import (
	"errors"
	"testing"
)

func TestParseTrickType(t *testing.T) {
	testCases := []struct {
		input       string
		expected    TrickType
		wantErr     bool
		description string
	}{
		{"flip", TypeFlip, false, "Canonical name"},
		{"shove-it", TypeShoveIt, false, "Canonical hyphenated name"},
		{"Shove It", TypeShoveIt, false, "Spaces folded to hyphens"},
		{"SHOVE_IT", TypeShoveIt, false, "Underscores folded to hyphens"},
		{"  grind  ", TypeGrind, false, "Surrounding whitespace"},
		{"Transition", TypeTransition, false, "Mixed case"},
		{"wizardry", TypeMisc, true, "Unknown type"},
		{"", TypeMisc, true, "Empty input"},
	}

	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			got, err := ParseTrickType(tc.input)
			if tc.wantErr {
				if !errors.Is(err, ErrUnknownType) {
					t.Errorf("ParseTrickType(%q) error = %v, expected ErrUnknownType", tc.input, err)
				}
			} else if err != nil {
				t.Errorf("ParseTrickType(%q) unexpected error: %v", tc.input, err)
			}
			if got != tc.expected {
				t.Errorf("ParseTrickType(%q) = %v, expected %v", tc.input, got, tc.expected)
			}
		})
	}
}

func TestTrickTypeString(t *testing.T) {
	if got := TypeFlip.String(); got != "flip" {
		t.Errorf("TypeFlip.String() = %q, expected flip", got)
	}
	if got := TrickType(42).String(); got != "trick_type(42)" {
		t.Errorf("TrickType(42).String() = %q, expected trick_type(42)", got)
	}
}

// Every declared type must round-trip through its string form.
func TestTrickTypeRoundTrip(t *testing.T) {
	for trickType := TypeBasic; trickType <= TypeMisc; trickType++ {
		parsed, err := ParseTrickType(trickType.String())
		if err != nil {
			t.Errorf("ParseTrickType(%q) unexpected error: %v", trickType.String(), err)
		}
		if parsed != trickType {
			t.Errorf("round trip %v -> %q -> %v", trickType, trickType.String(), parsed)
		}
	}
}
