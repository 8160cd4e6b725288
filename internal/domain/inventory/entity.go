package inventory

import (
	"time"

	"github.com/shopspring/decimal"
)

type Category string

const (
	CategoryMaterial Category = "material"
	CategoryACUnit   Category = "ac_unit"
)

func (c Category) IsValid() bool {
	return c == CategoryMaterial || c == CategoryACUnit
}

// Default minimum stock of items created by expense sync.
const (
	DefaultMinStockMaterial = 10
	DefaultMinStockACUnit   = 2
)

type MovementType string

const (
	MovementIn  MovementType = "in"
	MovementOut MovementType = "out"
)

// Reference types of movements. The reference type and id identify the
// business event that owns a movement.
const (
	RefPurchase   = "purchase"
	RefProject    = "project"
	RefAdjustment = "adjustment"
	RefInitial    = "initial"
)

// Item is a stocked material or AC unit. Quantity never goes below zero and
// changes only through stock movements.
type Item struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Category  Category        `json:"category"`
	Type      string          `json:"type,omitempty"`
	Brand     string          `json:"brand,omitempty"`
	Size      string          `json:"size,omitempty"`
	Capacity  string          `json:"capacity,omitempty"`
	Quantity  decimal.Decimal `json:"quantity"`
	Unit      string          `json:"unit"`
	MinStock  decimal.Decimal `json:"min_stock"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Location  string          `json:"location"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt *time.Time      `json:"updated_at,omitempty"`
}

// IsLowStock reports whether the item has reached its minimum stock.
func (i Item) IsLowStock() bool {
	return i.Quantity.LessThanOrEqual(i.MinStock)
}

// Movement is one ledger row. For every item the sum of "in" quantities
// minus the sum of "out" quantities equals the item quantity.
type Movement struct {
	ID            string          `json:"id"`
	InventoryID   string          `json:"inventory_id"`
	Type          MovementType    `json:"type"`
	Quantity      decimal.Decimal `json:"quantity"`
	ReferenceType string          `json:"reference_type"`
	ReferenceID   string          `json:"reference_id"`
	Notes         string          `json:"notes,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
}

// Signed returns the effect of the movement on the item quantity.
func (m Movement) Signed() decimal.Decimal {
	if m.Type == MovementOut {
		return m.Quantity.Neg()
	}
	return m.Quantity
}

// MatchCriteria selects an item by category and attributes. An empty
// attribute matches any value.
type MatchCriteria struct {
	Category Category
	Type     string
	Brand    string
	Size     string
	Capacity string
}

// Matches reports whether item satisfies c.
func (c MatchCriteria) Matches(item Item) bool {
	if item.Category != c.Category {
		return false
	}
	for _, attr := range [][2]string{
		{c.Type, item.Type},
		{c.Brand, item.Brand},
		{c.Size, item.Size},
		{c.Capacity, item.Capacity},
	} {
		if attr[0] != "" && attr[0] != attr[1] {
			return false
		}
	}
	return true
}

// Discrepancy is the drift between an item quantity and its ledger.
type Discrepancy struct {
	InventoryID string          `json:"inventory_id"`
	Name        string          `json:"name"`
	Quantity    decimal.Decimal `json:"quantity"`
	LedgerSum   decimal.Decimal `json:"ledger_sum"`
	Drift       decimal.Decimal `json:"drift"`
}

// Balanced reports whether the quantity matches the ledger.
func (d Discrepancy) Balanced() bool {
	return d.Drift.IsZero()
}
