package geo

import "sort"

// DefaultLocation is the depot. Unknown destinations resolve to it.
const DefaultLocation = "Guwahati"

// DefaultPoint holds the depot coordinates.
var DefaultPoint = Point{Lat: 26.1445, Lng: 91.7362}

// AssamCities lists the delivery locations served by the marketplace.
var AssamCities = map[string]Point{
	"Guwahati":     {26.1445, 91.7362},
	"Jorhat":       {26.7509, 94.2037},
	"Dibrugarh":    {27.4728, 94.9120},
	"Silchar":      {24.8333, 92.7789},
	"Tezpur":       {26.6338, 92.8000},
	"Nagaon":       {26.3467, 92.6833},
	"Bongaigaon":   {26.4833, 90.5667},
	"Diphu":        {25.8417, 93.4314},
	"Goalpara":     {26.1667, 90.6167},
	"Sivasagar":    {26.9847, 94.6378},
	"Barpeta Road": {26.5005, 90.9664},
	"Howly":        {26.4232, 90.9801},
}

// Table is a fixed mapping from location name to coordinates.
// It is read-only after construction and safe for concurrent use.
type Table struct {
	points   map[string]Point
	fallback Point
}

// NewTable copies points into a new Table. Unknown names resolve to fallback.
func NewTable(points map[string]Point, fallback Point) *Table {
	cp := make(map[string]Point, len(points))
	for k, v := range points {
		cp[k] = v
	}
	return &Table{points: cp, fallback: fallback}
}

// NewAssamTable returns the default table of Assam cities with the depot fallback.
func NewAssamTable() *Table {
	return NewTable(AssamCities, DefaultPoint)
}

// Lookup returns the coordinates stored for name.
func (t *Table) Lookup(name string) (Point, bool) {
	p, ok := t.points[name]
	return p, ok
}

// Has reports whether name is a known location.
func (t *Table) Has(name string) bool {
	_, ok := t.points[name]
	return ok
}

// Resolve returns the coordinates for name, or the fallback point when the
// name is unknown. fellBack reports which one was returned.
func (t *Table) Resolve(name string) (p Point, fellBack bool) {
	if p, ok := t.points[name]; ok {
		return p, false
	}
	return t.fallback, true
}

// Names returns the known location names in sorted order.
func (t *Table) Names() []string {
	out := make([]string, 0, len(t.points))
	for k := range t.points {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
