package ephemeris

import (
	"errors"
	"math"
	"testing"

	"AstroEngine/internal/domain/models"
)

var quadrantSystems = []HouseSystem{Placidus, Koch, Campanus, Regiomontanus, Porphyry}

func TestQuadrantSystemsAgreeAtEquator(t *testing.T) {
	// On the equator the semi-arc and great-circle schemes divide the
	// same way, so the intermediate cusps must coincide. Porphyry
	// trisects ecliptic arcs instead and stays out of this check.
	jd := JulianDay(1990, 6, 15, 14.5)
	ref, _, err := Houses(jd, 0, 0, Placidus)
	if err != nil {
		t.Fatalf("placidus: %v", err)
	}
	for _, sys := range []HouseSystem{Koch, Campanus, Regiomontanus} {
		set, _, err := Houses(jd, 0, 0, sys)
		if err != nil {
			t.Fatalf("%s: %v", sys, err)
		}
		for h := 1; h <= 12; h++ {
			d := math.Abs(signedArc(ref.Cusps[h].Longitude, set.Cusps[h].Longitude))
			if d > 1e-4 {
				t.Errorf("%s cusp %d = %.6f, placidus has %.6f", sys, h, set.Cusps[h].Longitude, ref.Cusps[h].Longitude)
			}
		}
	}
}

func TestAnglesAnchorQuadrantCusps(t *testing.T) {
	jd := JulianDay(1984, 11, 3, 9.25)
	for _, sys := range quadrantSystems {
		set, _, err := Houses(jd, 48.85, 2.35, sys)
		if err != nil {
			t.Fatalf("%s: %v", sys, err)
		}
		if d := math.Abs(signedArc(set.Ascendant, set.Cusps[1].Longitude)); d > 1e-9 {
			t.Errorf("%s: cusp 1 %.6f != ascendant %.6f", sys, set.Cusps[1].Longitude, set.Ascendant)
		}
		if d := math.Abs(signedArc(set.Midheaven, set.Cusps[10].Longitude)); d > 1e-9 {
			t.Errorf("%s: cusp 10 %.6f != midheaven %.6f", sys, set.Cusps[10].Longitude, set.Midheaven)
		}
	}
}

func TestOppositeCusps(t *testing.T) {
	jd := JulianDay(2010, 2, 7, 21)
	for _, sys := range []HouseSystem{Placidus, Koch, Campanus, Regiomontanus, Porphyry, Equal, WholeSign} {
		set, _, err := Houses(jd, -33.87, 151.21, sys)
		if err != nil {
			t.Fatalf("%s: %v", sys, err)
		}
		for h := 1; h <= 6; h++ {
			want := norm360(set.Cusps[h].Longitude + 180)
			got := set.Cusps[h+6].Longitude
			if d := math.Abs(signedArc(want, got)); d > 1e-6 {
				t.Errorf("%s: cusp %d = %.6f, want opposite of cusp %d (%.6f)", sys, h+6, got, h, want)
			}
		}
	}
}

func TestCuspsAdvanceInZodiacalOrder(t *testing.T) {
	jd := JulianDay(1975, 9, 30, 4.75)
	for _, sys := range quadrantSystems {
		set, _, err := Houses(jd, 51.5, -0.13, sys)
		if err != nil {
			t.Fatalf("%s: %v", sys, err)
		}
		total := 0.0
		for h := 1; h <= 12; h++ {
			next := h%12 + 1
			arc := norm360(set.Cusps[next].Longitude - set.Cusps[h].Longitude)
			if arc <= 0 || arc >= 180 {
				t.Errorf("%s: arc from cusp %d to %d is %.4f", sys, h, next, arc)
			}
			total += arc
		}
		if math.Abs(total-360) > 1e-6 {
			t.Errorf("%s: cusp arcs sum to %.6f", sys, total)
		}
	}
}

func TestWholeSignCusps(t *testing.T) {
	jd := JulianDay(2001, 4, 18, 16)
	set, _, err := Houses(jd, 40.71, -74.01, WholeSign)
	if err != nil {
		t.Fatalf("whole sign: %v", err)
	}
	first := set.Cusps[1].Longitude
	if math.Mod(first, 30) != 0 {
		t.Errorf("whole sign cusp 1 %.4f is not a sign boundary", first)
	}
	if models.SignOf(first) != models.SignOf(set.Ascendant) {
		t.Errorf("cusp 1 sign %v does not contain ascendant %.4f", models.SignOf(first), set.Ascendant)
	}
	for h := 2; h <= 12; h++ {
		want := norm360(first + float64(h-1)*30)
		if set.Cusps[h].Longitude != want {
			t.Errorf("cusp %d = %.4f, want %.4f", h, set.Cusps[h].Longitude, want)
		}
	}
}

func TestPolarFallback(t *testing.T) {
	jd := JulianDay(1999, 12, 21, 3)
	for _, sys := range []HouseSystem{Placidus, Koch} {
		set, fellBack, err := Houses(jd, 69.6, 18.95, sys)
		if err != nil {
			t.Fatalf("%s at polar latitude: %v", sys, err)
		}
		if !fellBack {
			t.Errorf("%s at 69.6N should fall back to porphyry", sys)
		}
		if set.System != string(sys) {
			t.Errorf("requested system should be reported, got %s", set.System)
		}
	}
	// porphyry itself works everywhere
	_, fellBack, err := Houses(jd, 69.6, 18.95, Porphyry)
	if err != nil || fellBack {
		t.Errorf("porphyry at polar latitude: err=%v fellBack=%v", err, fellBack)
	}
}

func TestParseHouseSystem(t *testing.T) {
	if _, err := ParseHouseSystem("placidus"); err != nil {
		t.Errorf("placidus should parse: %v", err)
	}
	_, err := ParseHouseSystem("topocentric")
	if err == nil {
		t.Fatal("expected error for unsupported system")
	}
	if !errors.Is(err, models.ErrInvalidInput) {
		t.Errorf("error %v should unwrap to ErrInvalidInput", err)
	}
}

func TestHousesRejectsBadCoordinates(t *testing.T) {
	if _, _, err := Houses(J2000, 91, 0, Placidus); err == nil {
		t.Error("latitude 91 should be rejected")
	}
	if _, _, err := Houses(J2000, 0, 181, Placidus); err == nil {
		t.Error("longitude 181 should be rejected")
	}
}

func TestObliquityAndGMST(t *testing.T) {
	if eps := Obliquity(J2000); math.Abs(eps-23.43929) > 1e-4 {
		t.Errorf("obliquity at J2000 = %.5f", eps)
	}
	// GMST at 2000-01-01 00:00 UT is 6h 39m 52.26s
	want := (6 + 39/60.0 + 52.26/3600) * 15
	if got := GMST(JulianDay(2000, 1, 1, 0)); math.Abs(signedArc(want, got)) > 0.01 {
		t.Errorf("GMST = %.5f deg, want %.5f", got, want)
	}
}
