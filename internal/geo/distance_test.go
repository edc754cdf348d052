package geo

import (
	"math"
	"testing"
)

func TestGeodesicKm_ZeroDistance(t *testing.T) {
	p := Point{Lat: 26.1445, Lng: 91.7362}
	if d := GeodesicKm(p, p); d != 0 {
		t.Fatalf("zero distance expected, got %v", d)
	}
}

func TestGeodesicKm_KnownPairs(t *testing.T) {
	cases := []struct {
		from, to string
		want     float64
	}{
		{"Dibrugarh", "Guwahati", 348.343223},
		{"Guwahati", "Jorhat", 255.097302},
		{"Barpeta Road", "Howly", 8.672746},
		{"Guwahati", "Nagaon", 97.238857},
		{"Silchar", "Guwahati", 179.135879},
	}
	for _, tc := range cases {
		got := GeodesicKm(AssamCities[tc.from], AssamCities[tc.to])
		if math.Abs(got-tc.want) > 1e-5 {
			t.Errorf("%s -> %s = %.6f km, want %.6f", tc.from, tc.to, got, tc.want)
		}
	}
}

func TestGeodesicKm_Symmetric(t *testing.T) {
	a, b := AssamCities["Tezpur"], AssamCities["Silchar"]
	if d1, d2 := GeodesicKm(a, b), GeodesicKm(b, a); math.Abs(d1-d2) > 1e-9 {
		t.Fatalf("asymmetric: %v vs %v", d1, d2)
	}
}

func TestGeodesicKm_OneDegreeOfLatitudeAtEquator(t *testing.T) {
	// One degree of latitude on WGS-84 at the equator is about 110.574 km,
	// shorter than the spherical value.
	d := GeodesicKm(Point{0, 0}, Point{1, 0})
	if math.Abs(d-110.574) > 0.001 {
		t.Fatalf("got %.4f km, want ~110.574", d)
	}
	if h := HaversineKm(Point{0, 0}, Point{1, 0}); math.Abs(h-d) < 0.5 {
		t.Fatalf("expected ellipsoidal and spherical results to differ, got %v and %v", d, h)
	}
}

func TestGeodesicKm_AntipodalFallsBack(t *testing.T) {
	a, b := Point{0, 0}, Point{0.5, 179.7}
	d := GeodesicKm(a, b)
	if math.IsNaN(d) || d < 19000 || d > 20100 {
		t.Fatalf("unexpected near-antipodal distance %v", d)
	}
}

func TestRoundKm(t *testing.T) {
	if got := RoundKm(348.34322295916337); got != 348.34 {
		t.Fatalf("RoundKm = %v, want 348.34", got)
	}
	if got := RoundKm(97.23885717825938); got != 97.24 {
		t.Fatalf("RoundKm = %v, want 97.24", got)
	}
}
