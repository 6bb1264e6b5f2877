package ephemeris

import (
	"errors"
	"testing"

	"AstroEngine/internal/domain/models"
)

func TestParseBody(t *testing.T) {
	cases := []struct {
		name string
		want models.Body
		ok   bool
	}{
		{"sun", models.Sun, true},
		{"north_node", models.NorthNode, true},
		{"south_node", models.SouthNode, true},
		{"ascendant", models.Ascendant, true},
		{"mc", models.MC, true},
		{"vertex", models.Vertex, true},
		{"part_of_fortune", models.PartOfFortune, true},
		{"earth", "", false},
		{"", "", false},
	}
	for _, tc := range cases {
		got, err := ParseBody(tc.name)
		if tc.ok {
			if err != nil {
				t.Errorf("ParseBody(%q): %v", tc.name, err)
			} else if got != tc.want {
				t.Errorf("ParseBody(%q) = %s, want %s", tc.name, got, tc.want)
			}
			continue
		}
		if !errors.Is(err, models.ErrInvalidInput) {
			t.Errorf("ParseBody(%q) should be invalid input, got %v", tc.name, err)
		}
	}
}
