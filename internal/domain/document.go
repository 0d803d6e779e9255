package domain

import (
	"github.com/shopspring/decimal"
)

// Document is an untyped input tree as decoded from JSON or YAML.
// Leaves are decimal.Decimal (numbers), string, bool, nil or []any;
// nested objects are Documents.
type Document map[string]any

// Section returns the nested object stored under key.
func (d Document) Section(key string) (Document, bool) {
	v, ok := d[key]
	if !ok {
		return nil, false
	}
	sec, ok := v.(Document)
	return sec, ok
}

// Lookup returns the raw value of section.field and whether it is present
// and non-null.
func (d Document) Lookup(section, field string) (any, bool) {
	sec, ok := d.Section(section)
	if !ok {
		return nil, false
	}
	v, ok := sec[field]
	if !ok || v == nil {
		return nil, false
	}
	return v, true
}

// Number returns section.field as a decimal when it holds a number.
func (d Document) Number(section, field string) (decimal.Decimal, bool) {
	v, ok := d.Lookup(section, field)
	if !ok {
		return decimal.Zero, false
	}
	n, ok := v.(decimal.Decimal)
	return n, ok
}

// Document renders a typed input back into an untyped tree.
func (in ProFormaInput) Document() Document {
	expenses := Document{
		"management_fee_percent":      nil,
		"management_fee_fixed":        nil,
		"maintenance_per_unit_annual": in.Expenses.MaintenancePerUnitAnnual,
		"utilities_monthly":           in.Expenses.UtilitiesMonthly,
		"hoa_monthly":                 in.Expenses.HOAMonthly,
		"other_monthly":               in.Expenses.OtherMonthly,
	}
	if in.Expenses.ManagementFeePercent != nil {
		expenses["management_fee_percent"] = *in.Expenses.ManagementFeePercent
	}
	if in.Expenses.ManagementFeeFixed != nil {
		expenses["management_fee_fixed"] = *in.Expenses.ManagementFeeFixed
	}
	return Document{
		"property": Document{
			"units":                 decimal.NewFromInt(int64(in.Property.Units)),
			"monthly_rent_per_unit": in.Property.MonthlyRentPerUnit,
			"occupancy_rate":        in.Property.OccupancyRate,
			"annual_property_taxes": in.Property.AnnualPropertyTaxes,
			"annual_insurance":      in.Property.AnnualInsurance,
		},
		"expenses": expenses,
		"financing": Document{
			"purchase_price":      in.Financing.PurchasePrice,
			"down_payment_amount": in.Financing.DownPaymentAmount,
			"interest_rate":       in.Financing.InterestRate,
			"loan_term_years":     decimal.NewFromInt(int64(in.Financing.LoanTermYears)),
		},
	}
}
