package persistence

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateSortOrder(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"empty string returns DESC", "", "DESC"},
		{"ASC uppercase returns ASC", "ASC", "ASC"},
		{"asc lowercase returns ASC", "asc", "ASC"},
		{"DESC uppercase returns DESC", "DESC", "DESC"},
		{"invalid value returns DESC", "INVALID", "DESC"},
		{"sql injection attempt returns DESC", "ASC; DROP TABLE orders;--", "DESC"},
		{"whitespace around ASC returns ASC", "  asc  ", "ASC"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ValidateSortOrder(tt.input))
		})
	}
}

func TestValidateSortField(t *testing.T) {
	tests := []struct {
		name         string
		input        string
		allowed      map[string]bool
		defaultField string
		expected     string
	}{
		{"empty string returns default", "", ProductSortFields, "created_at", "created_at"},
		{"whitelisted field passes through", "name", ProductSortFields, "created_at", "name"},
		{"unknown field returns default", "price", ProductSortFields, "created_at", "created_at"},
		{"sql injection attempt returns default", "id; DROP TABLE products;--", ProductSortFields, "created_at", "created_at"},
		{"case sensitive match only", "NAME", ProductSortFields, "created_at", "created_at"},
		{"whitespace around valid field passes through", "  order_number  ", OrderSortFields, "created_at", "order_number"},
		{"order amount field is whitelisted", "final_amount", OrderSortFields, "created_at", "final_amount"},
		{"coupon expiry field is whitelisted", "end_date", CouponSortFields, "created_at", "end_date"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ValidateSortField(tt.input, tt.allowed, tt.defaultField))
		})
	}
}
