package validator

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestIsEmpty(t *testing.T) {
	cases := []struct {
		input string
		want  bool
	}{
		{"", true},
		{"   ", true},
		{"abc", false},
		{" abc ", false},
	}
	for _, c := range cases {
		got := IsEmpty(c.input)
		if got != c.want {
			t.Errorf("IsEmpty(%q) = %v, want %v", c.input, got, c.want)
		}
	}
}

func TestIsValidUUID(t *testing.T) {
	valid := []string{
		"0188d0f2-7b8c-7b4a-8a2b-6b8b8b8b8b8b", // valid UUIDv7
		"0188D0F2-7B8C-7B4A-8A2B-6B8B8B8B8B8B", // valid UUIDv7 (uppercase)
	}
	invalid := []string{
		"123e4567-e89b-12d3-a456-426614174000", // not v7
		"123E4567-E89B-12D3-A456-426614174000", // not v7
		"0188d0f27b8c7b4a8a2b6b8b8b8b8b8b",     // missing dashes
		"g188d0f2-7b8c-7b4a-8a2b-6b8b8b8b8b8b", // invalid hex
		"",                                     // empty
	}
	for _, uuid := range valid {
		if !IsValidUUID(uuid) {
			t.Errorf("IsValidUUID(%q) = false, want true", uuid)
		}
	}
	for _, uuid := range invalid {
		if IsValidUUID(uuid) {
			t.Errorf("IsValidUUID(%q) = true, want false", uuid)
		}
	}
}

func TestIsNumeric(t *testing.T) {
	valid := []string{"123", "0", "9876543210"}
	invalid := []string{"abc", "123a", "", "-123"}
	for _, s := range valid {
		if !IsNumeric(s) {
			t.Errorf("IsNumeric(%q) = false, want true", s)
		}
	}
	for _, s := range invalid {
		if IsNumeric(s) {
			t.Errorf("IsNumeric(%q) = true, want false", s)
		}
	}
}

func TestIsValidDate(t *testing.T) {
	valid := []string{"2023-01-01", "2000-12-31"}
	invalid := []string{"2023-13-01", "2023-01-32", "2023/01/01", "01-01-2023", ""}
	for _, s := range valid {
		_, ok := IsValidDate(s)
		if !ok {
			t.Errorf("IsValidDate(%q) = false, want true", s)
		}
	}
	for _, s := range invalid {
		_, ok := IsValidDate(s)
		if ok {
			t.Errorf("IsValidDate(%q) = true, want false", s)
		}
	}
}

func TestIsValidPhoneNumber(t *testing.T) {
	valid := []string{"081234567890", "6281234567890", "+628123456789", "08-1234-567890", "08 1234 567890"}
	invalid := []string{"0712345678", "123456789", "0812345678901234", "abc0812345678", "0812345678a"}
	for _, phone := range valid {
		if !IsValidPhoneNumber(phone) {
			t.Errorf("IsValidPhoneNumber(%q) = false, want true", phone)
		}
	}
	for _, phone := range invalid {
		if IsValidPhoneNumber(phone) {
			t.Errorf("IsValidPhoneNumber(%q) = true, want false", phone)
		}
	}
}

func TestIsInSlice(t *testing.T) {
	slice := []string{"a", "b", "c"}
	if !IsInSlice("a", slice) {
		t.Errorf("IsInSlice('a') = false, want true")
	}
	if IsInSlice("d", slice) {
		t.Errorf("IsInSlice('d') = true, want false")
	}
}

func TestValidationErrors_Error(t *testing.T) {
	errs := ValidationErrors{
		{Field: "amount", Message: "invalid"},
		{Field: "phone", Message: "required"},
	}
	got := errs.Error()
	want := "amount: invalid; phone: required"
	if got != want {
		t.Errorf("ValidationErrors.Error() = %q, want %q", got, want)
	}
}

func TestValidationErrors_ToMap(t *testing.T) {
	errs := ValidationErrors{
		{Field: "amount", Message: "invalid"},
		{Field: "phone", Message: "required"},
	}
	got := errs.ToMap()
	want := map[string]string{"amount": "invalid", "phone": "required"}
	if len(got) != len(want) {
		t.Errorf("ValidationErrors.ToMap() length = %d, want %d", len(got), len(want))
	}
	for k, v := range want {
		if got[k] != v {
			t.Errorf("ValidationErrors.ToMap()[%q] = %q, want %q", k, got[k], v)
		}
	}
}

func TestIsValidPeriod(t *testing.T) {
	valid := []string{"2025-01", "1999-12"}
	invalid := []string{"2025-13", "2025-1", "2025/01", "202501", ""}
	for _, s := range valid {
		if !IsValidPeriod(s) {
			t.Errorf("IsValidPeriod(%q) = false, want true", s)
		}
	}
	for _, s := range invalid {
		if IsValidPeriod(s) {
			t.Errorf("IsValidPeriod(%q) = true, want false", s)
		}
	}
}

func TestPeriodRange(t *testing.T) {
	cases := []struct {
		period   string
		from, to string
	}{
		{"2025-01", "2025-01-01", "2025-01-31"},
		{"2024-02", "2024-02-01", "2024-02-29"},
		{"2025-04", "2025-04-01", "2025-04-30"},
	}
	for _, c := range cases {
		from, to, err := PeriodRange(c.period)
		if err != nil {
			t.Fatalf("PeriodRange(%q) error: %v", c.period, err)
		}
		if from != c.from || to != c.to {
			t.Errorf("PeriodRange(%q) = (%q, %q), want (%q, %q)", c.period, from, to, c.from, c.to)
		}
	}
	if _, _, err := PeriodRange("2025"); err == nil {
		t.Errorf("PeriodRange(%q) error = nil, want error", "2025")
	}
}

func TestStruct(t *testing.T) {
	type request struct {
		Name   string  `json:"name" validate:"required"`
		Level  string  `json:"level" validate:"oneof=teknisi helper"`
		Date   string  `json:"date" validate:"date"`
		Period string  `json:"period" validate:"omitempty,period"`
		Amount float64 `json:"amount" validate:"gte=0"`
	}

	if errs := Struct(request{Name: "Andi", Level: "helper", Date: "2025-01-06"}); len(errs) != 0 {
		t.Errorf("Struct(valid) = %v, want no errors", errs)
	}

	errs := Struct(request{Level: "boss", Date: "06-01-2025", Period: "2025-1", Amount: -1}).ToMap()
	want := map[string]string{
		"name":   "is required",
		"level":  "must be one of: teknisi helper",
		"date":   "must be in YYYY-MM-DD format",
		"period": "must be in YYYY-MM format",
		"amount": "must be at least 0",
	}
	for k, v := range want {
		if errs[k] != v {
			t.Errorf("Struct(invalid)[%q] = %q, want %q", k, errs[k], v)
		}
	}
}

func TestStruct_DecimalQuantities(t *testing.T) {
	type request struct {
		Quantity decimal.Decimal  `json:"quantity" validate:"gt=0"`
		MinStock *decimal.Decimal `json:"min_stock,omitempty" validate:"omitempty,gte=0"`
	}

	if errs := Struct(request{Quantity: decimal.RequireFromString("1.5")}); len(errs) != 0 {
		t.Errorf("Struct(1.5) = %v, want no errors", errs)
	}

	negative := decimal.NewFromInt(-2)
	errs := Struct(request{Quantity: decimal.Zero, MinStock: &negative}).ToMap()
	if errs["quantity"] != "must be greater than 0" {
		t.Errorf("Struct(0)[quantity] = %q, want %q", errs["quantity"], "must be greater than 0")
	}
	if errs["min_stock"] != "must be at least 0" {
		t.Errorf("Struct(-2)[min_stock] = %q, want %q", errs["min_stock"], "must be at least 0")
	}
}
