package models

import "github.com/shopspring/decimal"

// Product is a wholesale catalog item. Lat/Lng are copied from the geo table
// for Location whenever the product is created or its location changes.
type Product struct {
	ID          int64           `db:"id" json:"id"`
	Name        string          `db:"name" json:"name"`
	Category    string          `db:"category" json:"category"`
	Price       decimal.Decimal `db:"price" json:"price"`
	WeightKg    float64         `db:"weight_kg" json:"weight_kg"`
	VolumeM3    float64         `db:"volume_m3" json:"volume_m3"`
	MinQuantity int64           `db:"min_quantity" json:"min_quantity"`
	Unit        string          `db:"unit" json:"unit"`
	Supplier    string          `db:"supplier" json:"supplier"`
	Location    string          `db:"location" json:"location"`
	Lat         float64         `db:"lat" json:"lat"`
	Lng         float64         `db:"lng" json:"lng"`
	Description string          `db:"description" json:"description"`
	Stock       int64           `db:"stock" json:"stock"`
}

// Categories offered by the admin forms. Category is an open string; these
// are suggestions, not a closed set.
var Categories = []string{
	"Plants",
	"Furniture",
	"Fertilizers",
	"Building Materials",
	"Agricultural Supplies",
	"Hardware",
}
