package validation

// Input sections.
const (
	SectionProperty  = "property"
	SectionExpenses  = "expenses"
	SectionFinancing = "financing"
)

// Field names as they appear in input documents and error bodies.
const (
	FieldUnits                    = "units"
	FieldMonthlyRentPerUnit       = "monthly_rent_per_unit"
	FieldOccupancyRate            = "occupancy_rate"
	FieldAnnualPropertyTaxes      = "annual_property_taxes"
	FieldAnnualInsurance          = "annual_insurance"
	FieldManagementFeePercent     = "management_fee_percent"
	FieldManagementFeeFixed       = "management_fee_fixed"
	FieldMaintenancePerUnitAnnual = "maintenance_per_unit_annual"
	FieldUtilitiesMonthly         = "utilities_monthly"
	FieldHOAMonthly               = "hoa_monthly"
	FieldOtherMonthly             = "other_monthly"
	FieldPurchasePrice            = "purchase_price"
	FieldDownPaymentAmount        = "down_payment_amount"
	FieldInterestRate             = "interest_rate"
	FieldLoanTermYears            = "loan_term_years"
)

type fieldKind int

const (
	kindNumber fieldKind = iota
	kindInteger
	// kindFee marks the two management fee fields, resolved together.
	kindFee
)

type fieldDef struct {
	section string
	name    string
	kind    fieldKind
}

// fieldCatalog lists every input field in canonical order. Missing field
// lists follow this order.
var fieldCatalog = []fieldDef{
	{SectionProperty, FieldUnits, kindInteger},
	{SectionProperty, FieldMonthlyRentPerUnit, kindNumber},
	{SectionProperty, FieldOccupancyRate, kindNumber},
	{SectionProperty, FieldAnnualPropertyTaxes, kindNumber},
	{SectionProperty, FieldAnnualInsurance, kindNumber},
	{SectionExpenses, FieldManagementFeePercent, kindFee},
	{SectionExpenses, FieldManagementFeeFixed, kindFee},
	{SectionExpenses, FieldMaintenancePerUnitAnnual, kindNumber},
	{SectionExpenses, FieldUtilitiesMonthly, kindNumber},
	{SectionExpenses, FieldHOAMonthly, kindNumber},
	{SectionExpenses, FieldOtherMonthly, kindNumber},
	{SectionFinancing, FieldPurchasePrice, kindNumber},
	{SectionFinancing, FieldDownPaymentAmount, kindNumber},
	{SectionFinancing, FieldInterestRate, kindNumber},
	{SectionFinancing, FieldLoanTermYears, kindInteger},
}

// FieldNames returns every input field name in canonical order.
func FieldNames() []string {
	names := make([]string, 0, len(fieldCatalog))
	for _, f := range fieldCatalog {
		names = append(names, f.name)
	}
	return names
}
