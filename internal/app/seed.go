package app

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"wholesaleDelivery/models"
	"wholesaleDelivery/repository"
)

// DemoProducts is the starter catalog.
func DemoProducts() []models.Product {
	return []models.Product{
		{Name: "Organic Tea Plants (50 saplings)", Category: "Plants", Price: decimal.NewFromInt(5000), WeightKg: 25, VolumeM3: 2.0,
			MinQuantity: 50, Unit: "saplings", Supplier: "Assam Tea Nursery", Location: "Guwahati",
			Description: "Premium Assam tea saplings, ready for plantation", Stock: 500},
		{Name: "Teak Wood Furniture Set", Category: "Furniture", Price: decimal.NewFromInt(45000), WeightKg: 150, VolumeM3: 8.0,
			MinQuantity: 1, Unit: "set", Supplier: "Jorhat Woodworks", Location: "Jorhat",
			Description: "Complete office furniture set - 4 tables, 8 chairs", Stock: 20},
		{Name: "Organic Fertilizer (50kg bags)", Category: "Fertilizers", Price: decimal.NewFromInt(800), WeightKg: 50, VolumeM3: 0.5,
			MinQuantity: 10, Unit: "bags", Supplier: "Green Farm Supplies", Location: "Dibrugarh",
			Description: "Premium organic compost for all crops", Stock: 1000},
		{Name: "Cement (50kg bags)", Category: "Building Materials", Price: decimal.NewFromInt(350), WeightKg: 50, VolumeM3: 0.4,
			MinQuantity: 50, Unit: "bags", Supplier: "Assam Cement Co.", Location: "Silchar",
			Description: "High-grade cement for construction projects", Stock: 5000},
		{Name: "Steel Rods (12mm x 12m)", Category: "Building Materials", Price: decimal.NewFromInt(550), WeightKg: 10.6, VolumeM3: 0.1,
			MinQuantity: 100, Unit: "rods", Supplier: "Tezpur Steel", Location: "Tezpur",
			Description: "TMT steel rods for construction", Stock: 2000},
		{Name: "Bamboo Plants (10ft height)", Category: "Plants", Price: decimal.NewFromInt(200), WeightKg: 15, VolumeM3: 1.5,
			MinQuantity: 20, Unit: "plants", Supplier: "Bamboo Growers Assam", Location: "Nagaon",
			Description: "Mature bamboo plants for landscaping and construction", Stock: 300},
		{Name: "Thermocol Carton Boxes", Category: "Building Materials", Price: decimal.NewFromInt(50), WeightKg: 0.5, VolumeM3: 0.15,
			MinQuantity: 20, Unit: "boxes", Supplier: "Packaging Solutions", Location: "Barpeta Road",
			Description: "Lightweight thermocol boxes for packaging and insulation", Stock: 500},
	}
}

// DemoDrivers is the starter driver pool.
func DemoDrivers() []repository.DriverRegistration {
	return []repository.DriverRegistration{
		{Name: "Raju Kumar", Phone: "9876543210", VehicleType: models.VehicleMiniTruck, Location: "Guwahati"},
		{Name: "Sanjay Sharma", Phone: "9876543211", VehicleType: models.VehicleLargeTruck, Location: "Jorhat"},
	}
}

// Seed loads the demo catalog and drivers into stores that are still empty.
// Each store is checked separately so a partly filled database is left alone.
func (a *App) Seed(ctx context.Context) error {
	products, err := a.Products.List(ctx, repository.ProductFilter{})
	if err != nil {
		return err
	}
	if len(products) == 0 {
		for _, p := range DemoProducts() {
			p := p
			if _, err := a.Products.Create(ctx, &p); err != nil {
				return fmt.Errorf("seed product %q: %w", p.Name, err)
			}
		}
		a.Logger.Info("demo catalog seeded", "products", len(DemoProducts()))
	}

	drivers, err := a.Drivers.List(ctx)
	if err != nil {
		return err
	}
	if len(drivers) == 0 {
		for _, d := range DemoDrivers() {
			if _, err := a.Drivers.Register(ctx, d); err != nil {
				return fmt.Errorf("seed driver %q: %w", d.Name, err)
			}
		}
		a.Logger.Info("demo drivers seeded", "drivers", len(DemoDrivers()))
	}
	return nil
}
