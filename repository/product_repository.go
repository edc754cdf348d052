package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"wholesaleDelivery/internal/geo"
	"wholesaleDelivery/models"
)

const productColumns = `id, name, category, price, weight_kg, volume_m3, min_quantity, unit, supplier, location, lat, lng, description, stock`

// ProductFilter narrows List. Empty fields match everything.
type ProductFilter struct {
	Category string
	Location string
	// Query is matched case-insensitively against name and description.
	Query string
}

// ProductUpdate names the fields to replace. Nil fields are left unchanged.
type ProductUpdate struct {
	Name        *string          `json:"name"`
	Category    *string          `json:"category"`
	Price       *decimal.Decimal `json:"price"`
	WeightKg    *float64         `json:"weight_kg"`
	VolumeM3    *float64         `json:"volume_m3"`
	MinQuantity *int64           `json:"min_quantity"`
	Unit        *string          `json:"unit"`
	Supplier    *string          `json:"supplier"`
	Location    *string          `json:"location"`
	Description *string          `json:"description"`
	Stock       *int64           `json:"stock"`
}

// ProductRepository is the catalog store.
type ProductRepository struct {
	db    *sql.DB
	table *geo.Table
}

// NewProductRepository creates a ProductRepository. Product locations are
// validated against table.
func NewProductRepository(db *sql.DB, table *geo.Table) *ProductRepository {
	return &ProductRepository{db: db, table: table}
}

// Create validates in, assigns it the next identifier (highest existing + 1)
// and stores it. Coordinates are taken from the geo table. in is not modified;
// the stored product is returned.
func (r *ProductRepository) Create(ctx context.Context, in *models.Product) (*models.Product, error) {
	if in == nil {
		return nil, errors.New("product is nil")
	}
	if err := r.validate(in); err != nil {
		return nil, err
	}
	p := *in
	pt, _ := r.table.Lookup(p.Location)
	p.Lat, p.Lng = pt.Lat, pt.Lng

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()
	res, err := r.db.ExecContext(ctx, `
INSERT INTO products (id, name, category, price, weight_kg, volume_m3, min_quantity, unit, supplier, location, lat, lng, description, stock)
VALUES ((SELECT COALESCE(MAX(id), 0) + 1 FROM products), ?,?,?,?,?,?,?,?,?,?,?,?,?)`,
		p.Name, p.Category, p.Price, p.WeightKg, p.VolumeM3, p.MinQuantity, p.Unit, p.Supplier, p.Location, p.Lat, p.Lng, p.Description, p.Stock)
	if err != nil {
		return nil, fmt.Errorf("insert product: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	p.ID = id
	return &p, nil
}

// GetByID fetches a product, or a NotFoundError.
func (r *ProductRepository) GetByID(ctx context.Context, id int64) (*models.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()
	return getProduct(ctx, r.db, id)
}

func getProduct(ctx context.Context, q queryer, id int64) (*models.Product, error) {
	p, err := scanProduct(q.QueryRowContext(ctx, `SELECT `+productColumns+` FROM products WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, notFound("product", id)
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

// List returns the products matching f in identifier order.
func (r *ProductRepository) List(ctx context.Context, f ProductFilter) ([]models.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, listTimeout)
	defer cancel()

	var where []string
	var args []any
	if f.Category != "" {
		where = append(where, "category = ?")
		args = append(args, f.Category)
	}
	if f.Location != "" {
		where = append(where, "location = ?")
		args = append(args, f.Location)
	}
	query := `SELECT ` + productColumns + ` FROM products`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY id"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	// SQLite's lower() only folds ASCII, so the text search runs here.
	needle := strings.ToLower(strings.TrimSpace(f.Query))
	out := []models.Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		if needle != "" &&
			!strings.Contains(strings.ToLower(p.Name), needle) &&
			!strings.Contains(strings.ToLower(p.Description), needle) {
			continue
		}
		out = append(out, *p)
	}
	return out, rows.Err()
}

// Update replaces the fields named in u on product id and returns the result.
func (r *ProductRepository) Update(ctx context.Context, id int64, u ProductUpdate) (*models.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback() }()

	p, err := getProduct(ctx, tx, id)
	if err != nil {
		return nil, err
	}
	applyProductUpdate(p, u)
	if err := r.validate(p); err != nil {
		return nil, err
	}
	pt, _ := r.table.Lookup(p.Location)
	p.Lat, p.Lng = pt.Lat, pt.Lng

	_, err = tx.ExecContext(ctx, `
UPDATE products SET name = ?, category = ?, price = ?, weight_kg = ?, volume_m3 = ?, min_quantity = ?, unit = ?,
       supplier = ?, location = ?, lat = ?, lng = ?, description = ?, stock = ?
WHERE id = ?`,
		p.Name, p.Category, p.Price, p.WeightKg, p.VolumeM3, p.MinQuantity, p.Unit, p.Supplier, p.Location, p.Lat, p.Lng, p.Description, p.Stock, id)
	if err != nil {
		return nil, fmt.Errorf("update product: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return p, nil
}

// Delete removes a product. Orders placed against it keep their snapshot.
func (r *ProductRepository) Delete(ctx context.Context, id int64) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()
	res, err := r.db.ExecContext(ctx, `DELETE FROM products WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return notFound("product", id)
	}
	return nil
}

// DecrementStock removes qty units from product id. Stock never goes negative.
func (r *ProductRepository) DecrementStock(ctx context.Context, id, qty int64) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()
	return decrementStock(ctx, r.db, id, qty)
}

func decrementStock(ctx context.Context, q queryer, id, qty int64) error {
	if qty <= 0 {
		return invalid("quantity", "must be positive")
	}
	res, err := q.ExecContext(ctx, `UPDATE products SET stock = stock - ? WHERE id = ? AND stock >= ?`, qty, id, qty)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 1 {
		return nil
	}
	p, err := getProduct(ctx, q, id)
	if err != nil {
		return err
	}
	return invalid("quantity", "%d exceeds available stock of %d", qty, p.Stock)
}

// Categories returns the distinct categories in the catalog, sorted.
func (r *ProductRepository) Categories(ctx context.Context) ([]string, error) {
	return r.distinct(ctx, "category")
}

// Locations returns the distinct supplier locations in the catalog, sorted.
func (r *ProductRepository) Locations(ctx context.Context) ([]string, error) {
	return r.distinct(ctx, "location")
}

func (r *ProductRepository) distinct(ctx context.Context, column string) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()
	rows, err := r.db.QueryContext(ctx, `SELECT DISTINCT `+column+` FROM products ORDER BY `+column)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []string{}
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *ProductRepository) validate(p *models.Product) error {
	switch {
	case strings.TrimSpace(p.Name) == "":
		return invalid("name", "is required")
	case strings.TrimSpace(p.Category) == "":
		return invalid("category", "is required")
	case strings.TrimSpace(p.Supplier) == "":
		return invalid("supplier", "is required")
	case strings.TrimSpace(p.Description) == "":
		return invalid("description", "is required")
	case p.Price.IsNegative():
		return invalid("price", "must not be negative")
	case p.WeightKg <= 0:
		return invalid("weight_kg", "must be positive")
	case p.VolumeM3 <= 0:
		return invalid("volume_m3", "must be positive")
	case p.MinQuantity < 1:
		return invalid("min_quantity", "must be at least 1")
	case p.Stock < 0:
		return invalid("stock", "must not be negative")
	case !r.table.Has(p.Location):
		return invalid("location", "unknown location %q", p.Location)
	}
	return nil
}

func applyProductUpdate(p *models.Product, u ProductUpdate) {
	if u.Name != nil {
		p.Name = *u.Name
	}
	if u.Category != nil {
		p.Category = *u.Category
	}
	if u.Price != nil {
		p.Price = *u.Price
	}
	if u.WeightKg != nil {
		p.WeightKg = *u.WeightKg
	}
	if u.VolumeM3 != nil {
		p.VolumeM3 = *u.VolumeM3
	}
	if u.MinQuantity != nil {
		p.MinQuantity = *u.MinQuantity
	}
	if u.Unit != nil {
		p.Unit = *u.Unit
	}
	if u.Supplier != nil {
		p.Supplier = *u.Supplier
	}
	if u.Location != nil {
		p.Location = *u.Location
	}
	if u.Description != nil {
		p.Description = *u.Description
	}
	if u.Stock != nil {
		p.Stock = *u.Stock
	}
}

func scanProduct(row rowScanner) (*models.Product, error) {
	var p models.Product
	if err := row.Scan(&p.ID, &p.Name, &p.Category, &p.Price, &p.WeightKg, &p.VolumeM3, &p.MinQuantity,
		&p.Unit, &p.Supplier, &p.Location, &p.Lat, &p.Lng, &p.Description, &p.Stock); err != nil {
		return nil, err
	}
	return &p, nil
}
