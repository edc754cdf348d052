// Package pricing computes delivery charges and order quotes.
package pricing

import (
	"log/slog"

	"github.com/shopspring/decimal"

	"wholesaleDelivery/internal/geo"
	"wholesaleDelivery/models"
)

// Rates holds the delivery tariff.
type Rates struct {
	PerKm decimal.Decimal // charge per km travelled
	PerKg decimal.Decimal // charge per kg carried
	PerM3 decimal.Decimal // charge per m³ carried
	// Distances strictly above SurchargeThresholdKm are multiplied by SurchargeMultiplier.
	SurchargeThresholdKm float64
	SurchargeMultiplier  decimal.Decimal
}

// DefaultRates returns the standard tariff: 15/km, 0.5/kg, 100/m³ and a 20%
// surcharge beyond 100 km.
func DefaultRates() Rates {
	return Rates{
		PerKm:                decimal.NewFromInt(15),
		PerKg:                decimal.RequireFromString("0.5"),
		PerM3:                decimal.NewFromInt(100),
		SurchargeThresholdKm: 100,
		SurchargeMultiplier:  decimal.RequireFromString("1.2"),
	}
}

// Quote is a priced estimate for delivering a quantity of a product.
type Quote struct {
	ProductTotal   decimal.Decimal `json:"product_total"`
	DeliveryCharge decimal.Decimal `json:"delivery_charge"`
	// DistanceKm is rounded to two places; the charge uses the exact value.
	DistanceKm float64         `json:"distance_km"`
	GrandTotal decimal.Decimal `json:"grand_total"`
	// FallbackUsed is set when the destination was unknown and the depot was used.
	FallbackUsed bool `json:"fallback_used"`
}

// Engine prices deliveries against a geo table.
type Engine struct {
	rates      Rates
	table      *geo.Table
	logger     *slog.Logger
	onFallback func(location string)
}

// Option configures an Engine.
type Option func(*Engine)

// WithRates overrides the default tariff.
func WithRates(r Rates) Option {
	return func(e *Engine) { e.rates = r }
}

// WithLogger sets the logger used to report location fallbacks.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// WithFallbackHook registers fn to be called whenever an unknown destination
// is replaced by the depot.
func WithFallbackHook(fn func(location string)) Option {
	return func(e *Engine) { e.onFallback = fn }
}

// NewEngine creates a pricing engine over table.
func NewEngine(table *geo.Table, opts ...Option) *Engine {
	if table == nil {
		panic("geo table is required")
	}
	e := &Engine{rates: DefaultRates(), table: table, logger: slog.Default()}
	for _, o := range opts {
		o(e)
	}
	return e
}

// Rates returns the tariff in use.
func (e *Engine) Rates() Rates { return e.rates }

// Table returns the location table the engine resolves destinations in.
func (e *Engine) Table() *geo.Table { return e.table }

// DistanceKm returns the geodesic distance between two points in km.
func DistanceKm(origin, destination geo.Point) float64 {
	return geo.GeodesicKm(origin, destination)
}

// DeliveryCharge computes the delivery price for quantity units of the given
// per-unit weight and volume over distanceKm, rounded to 2 decimal places.
// Inputs are not validated; callers pass non-negative values.
func (e *Engine) DeliveryCharge(weightKgPerUnit, volumeM3PerUnit float64, quantity int64, distanceKm float64) decimal.Decimal {
	q := decimal.NewFromInt(quantity)
	distanceCharge := decimal.NewFromFloat(distanceKm).Mul(e.rates.PerKm)
	weightFactor := decimal.NewFromFloat(weightKgPerUnit).Mul(q).Mul(e.rates.PerKg)
	volumeFactor := decimal.NewFromFloat(volumeM3PerUnit).Mul(q).Mul(e.rates.PerM3)

	total := distanceCharge.Add(weightFactor).Add(volumeFactor)
	if distanceKm > e.rates.SurchargeThresholdKm {
		total = total.Mul(e.rates.SurchargeMultiplier)
	}
	return total.Round(2)
}

// Quote prices quantity units of p delivered to destination. Unknown
// destinations are priced from the depot instead of failing.
func (e *Engine) Quote(p *models.Product, quantity int64, destination string) Quote {
	dest, fellBack := e.table.Resolve(destination)
	if fellBack {
		e.logger.Warn("unknown delivery location, using depot", "location", destination, "product_id", p.ID)
		if e.onFallback != nil {
			e.onFallback(destination)
		}
	}
	distance := DistanceKm(geo.Point{Lat: p.Lat, Lng: p.Lng}, dest)
	charge := e.DeliveryCharge(p.WeightKg, p.VolumeM3, quantity, distance)
	productTotal := p.Price.Mul(decimal.NewFromInt(quantity))

	return Quote{
		ProductTotal:   productTotal,
		DeliveryCharge: charge,
		DistanceKm:     geo.RoundKm(distance),
		GrandTotal:     productTotal.Add(charge),
		FallbackUsed:   fellBack,
	}
}
