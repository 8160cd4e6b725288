package expense

import (
	"time"

	"github.com/shopspring/decimal"
)

type Category string

const (
	CategoryUangMakan       Category = "uang_makan"
	CategoryServisKendaraan Category = "servis_kendaraan"
	CategoryToko            Category = "toko"
	CategoryMaterial        Category = "material"
	CategoryUnitAC          Category = "unit_ac"
	CategoryKasbon          Category = "kasbon"
	CategoryBBMTransport    Category = "bbm_transport"
	CategoryParkirTol       Category = "parkir_tol"
	CategoryGajiUpah        Category = "gaji_upah"
	CategoryBonusInsentif   Category = "bonus_insentif"
)

var categories = []Category{
	CategoryUangMakan, CategoryServisKendaraan, CategoryToko, CategoryMaterial,
	CategoryUnitAC, CategoryKasbon, CategoryBBMTransport, CategoryParkirTol,
	CategoryGajiUpah, CategoryBonusInsentif,
}

// Categories returns every expense category.
func Categories() []Category {
	return append([]Category(nil), categories...)
}

func (c Category) IsValid() bool {
	for _, known := range categories {
		if c == known {
			return true
		}
	}
	return false
}

// Sync targets.
const (
	SyncedToInventory = "inventory"
	SyncedToKasbon    = "kasbon"
)

// Expense is a single spending entry. Material and AC unit purchases are
// synced into inventory; kasbon entries create an employee advance.
type Expense struct {
	ID          string          `json:"id"`
	Category    Category        `json:"category"`
	SubCategory string          `json:"sub_category,omitempty"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description,omitempty"`
	Date        string          `json:"date"`
	Branch      string          `json:"branch,omitempty"`

	// Material purchase
	MaterialType  string `json:"material_type,omitempty"`
	MaterialBrand string `json:"material_brand,omitempty"`
	MaterialSize  string `json:"material_size,omitempty"`

	// AC unit purchase
	ACBrand    string `json:"ac_brand,omitempty"`
	ACType     string `json:"ac_type,omitempty"`
	ACCapacity string `json:"ac_capacity,omitempty"`

	Quantity decimal.Decimal `json:"quantity"`

	// Kasbon
	EmployeeID string `json:"employee_id,omitempty"`

	SyncedTo string `json:"synced_to,omitempty"`
	SyncedID string `json:"synced_id,omitempty"`

	CreatedBy string     `json:"created_by,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

// IsSynced reports whether the expense has been propagated to target.
func (e Expense) IsSynced(target string) bool {
	return e.SyncedTo == target && e.SyncedID != ""
}

// Summary totals the expenses of a period.
type Summary struct {
	Period     string                       `json:"period"`
	Total      decimal.Decimal              `json:"total"`
	Count      int                          `json:"count"`
	ByCategory map[Category]decimal.Decimal `json:"by_category"`
	ByBranch   map[string]decimal.Decimal   `json:"by_branch"`
}
