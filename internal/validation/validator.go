package validation

import (
	"math"
	"math/big"

	"github.com/rpgo/rental-proforma/internal/domain"
	"github.com/shopspring/decimal"
)

// Range violation reasons.
const (
	ReasonPositive        = "must be greater than 0"
	ReasonNonNegative     = "must be greater than or equal to 0"
	ReasonUnitInterval    = "must be between 0 and 1"
	ReasonExceedsPurchase = "must be less than or equal to purchase_price"
	ReasonMagnitude       = "must have at most 100 significant digits and an exponent between -100 and 100"
)

// Numeric inputs are bounded before any comparison or arithmetic runs on
// them. Rescaling a decimal costs time proportional to its exponent.
const (
	MaxExponent = 100
	MaxDigits   = 100
)

var (
	one          = decimal.NewFromInt(1)
	maxInteger   = decimal.NewFromInt(math.MaxInt32)
	minInteger   = decimal.NewFromInt(math.MinInt32)
	feeFieldPair = []string{FieldManagementFeePercent, FieldManagementFeeFixed}

	coefficientLimit = new(big.Int).Exp(big.NewInt(10), big.NewInt(MaxDigits), nil)
)

// Validate checks doc in two passes. The structural pass reports every
// absent, null or wrongly typed field; only when it passes does the range
// pass run and report every value outside its domain. On success the typed
// input is returned.
func Validate(doc domain.Document) (*domain.ProFormaInput, error) {
	in, missing := decodeStructure(doc)
	if len(missing) > 0 {
		return nil, domain.NewStructuralError(missing)
	}
	if err := ValidateInput(*in); err != nil {
		return nil, err
	}
	return in, nil
}

// ValidateInput runs the range pass on an already typed input. A typed
// input with neither management fee set is reported as structural. Values
// outside the supported magnitude are reported alone, before any other
// range check runs.
func ValidateInput(in domain.ProFormaInput) error {
	if in.Expenses.ManagementFeePercent == nil && in.Expenses.ManagementFeeFixed == nil {
		return domain.NewStructuralError(append([]string(nil), feeFieldPair...))
	}
	if oversized := oversizedFields(in); len(oversized) > 0 {
		return domain.NewRangeError(oversized)
	}

	invalid := map[string]string{}
	check := func(field string, ok bool, reason string) {
		if !ok {
			if _, seen := invalid[field]; !seen {
				invalid[field] = reason
			}
		}
	}

	p := in.Property
	check(FieldUnits, p.Units > 0, ReasonPositive)
	check(FieldMonthlyRentPerUnit, nonNegative(p.MonthlyRentPerUnit), ReasonNonNegative)
	check(FieldOccupancyRate, unitInterval(p.OccupancyRate), ReasonUnitInterval)
	check(FieldAnnualPropertyTaxes, nonNegative(p.AnnualPropertyTaxes), ReasonNonNegative)
	check(FieldAnnualInsurance, nonNegative(p.AnnualInsurance), ReasonNonNegative)

	e := in.Expenses
	if e.UsesPercentFee() {
		check(FieldManagementFeePercent, unitInterval(*e.ManagementFeePercent), ReasonUnitInterval)
	} else {
		check(FieldManagementFeeFixed, nonNegative(*e.ManagementFeeFixed), ReasonNonNegative)
	}
	check(FieldMaintenancePerUnitAnnual, nonNegative(e.MaintenancePerUnitAnnual), ReasonNonNegative)
	check(FieldUtilitiesMonthly, nonNegative(e.UtilitiesMonthly), ReasonNonNegative)
	check(FieldHOAMonthly, nonNegative(e.HOAMonthly), ReasonNonNegative)
	check(FieldOtherMonthly, nonNegative(e.OtherMonthly), ReasonNonNegative)

	f := in.Financing
	check(FieldPurchasePrice, f.PurchasePrice.IsPositive(), ReasonPositive)
	check(FieldDownPaymentAmount, nonNegative(f.DownPaymentAmount), ReasonNonNegative)
	check(FieldDownPaymentAmount, f.DownPaymentAmount.LessThanOrEqual(f.PurchasePrice), ReasonExceedsPurchase)
	check(FieldInterestRate, unitInterval(f.InterestRate), ReasonUnitInterval)
	check(FieldLoanTermYears, f.LoanTermYears > 0, ReasonPositive)

	if len(invalid) > 0 {
		return domain.NewRangeError(invalid)
	}
	return nil
}

// decodeStructure converts doc into a typed input, collecting the names of
// every field that is absent, null or not of the expected kind.
func decodeStructure(doc domain.Document) (*domain.ProFormaInput, []string) {
	var missing []string
	numbers := make(map[string]decimal.Decimal, len(fieldCatalog))
	integers := make(map[string]int, 2)
	var in domain.ProFormaInput

	for _, field := range fieldCatalog {
		switch field.kind {
		case kindFee:
			if field.name != FieldManagementFeePercent {
				continue // both fee fields are resolved together below
			}
			missing = append(missing, resolveFee(doc, &in.Expenses)...)
		case kindInteger:
			n, ok := number(doc, field.section, field.name)
			if !ok || !isInteger(n) {
				missing = append(missing, field.name)
				continue
			}
			integers[field.name] = int(n.IntPart())
		default:
			n, ok := number(doc, field.section, field.name)
			if !ok {
				missing = append(missing, field.name)
				continue
			}
			numbers[field.name] = n
		}
	}
	if len(missing) > 0 {
		return nil, missing
	}

	in.Property = domain.PropertyInput{
		Units:               integers[FieldUnits],
		MonthlyRentPerUnit:  numbers[FieldMonthlyRentPerUnit],
		OccupancyRate:       numbers[FieldOccupancyRate],
		AnnualPropertyTaxes: numbers[FieldAnnualPropertyTaxes],
		AnnualInsurance:     numbers[FieldAnnualInsurance],
	}
	in.Expenses.MaintenancePerUnitAnnual = numbers[FieldMaintenancePerUnitAnnual]
	in.Expenses.UtilitiesMonthly = numbers[FieldUtilitiesMonthly]
	in.Expenses.HOAMonthly = numbers[FieldHOAMonthly]
	in.Expenses.OtherMonthly = numbers[FieldOtherMonthly]
	in.Financing = domain.FinancingInput{
		PurchasePrice:     numbers[FieldPurchasePrice],
		DownPaymentAmount: numbers[FieldDownPaymentAmount],
		InterestRate:      numbers[FieldInterestRate],
		LoanTermYears:     integers[FieldLoanTermYears],
	}
	return &in, nil
}

// resolveFee applies percent-over-fixed precedence. A non-null percent must
// be a number and makes the fixed value irrelevant; otherwise the fixed
// value must be a number. When neither is set both names are reported.
func resolveFee(doc domain.Document, e *domain.ExpenseInput) []string {
	if _, present := doc.Lookup(SectionExpenses, FieldManagementFeePercent); present {
		pct, ok := number(doc, SectionExpenses, FieldManagementFeePercent)
		if !ok {
			return []string{FieldManagementFeePercent}
		}
		e.ManagementFeePercent = &pct
		if fixed, ok := number(doc, SectionExpenses, FieldManagementFeeFixed); ok {
			e.ManagementFeeFixed = &fixed
		}
		return nil
	}
	if _, present := doc.Lookup(SectionExpenses, FieldManagementFeeFixed); !present {
		return append([]string(nil), feeFieldPair...)
	}
	fixed, ok := number(doc, SectionExpenses, FieldManagementFeeFixed)
	if !ok {
		return []string{FieldManagementFeeFixed}
	}
	e.ManagementFeeFixed = &fixed
	return nil
}

// number reads section.field as a decimal. Numbers outside the supported
// magnitude are treated as the wrong kind.
func number(doc domain.Document, section, field string) (decimal.Decimal, bool) {
	n, ok := doc.Number(section, field)
	if !ok || !bounded(n) {
		return decimal.Zero, false
	}
	return n, true
}

// oversizedFields reports every decimal of a typed input that falls
// outside the supported magnitude.
func oversizedFields(in domain.ProFormaInput) map[string]string {
	values := map[string]decimal.Decimal{
		FieldMonthlyRentPerUnit:       in.Property.MonthlyRentPerUnit,
		FieldOccupancyRate:            in.Property.OccupancyRate,
		FieldAnnualPropertyTaxes:      in.Property.AnnualPropertyTaxes,
		FieldAnnualInsurance:          in.Property.AnnualInsurance,
		FieldMaintenancePerUnitAnnual: in.Expenses.MaintenancePerUnitAnnual,
		FieldUtilitiesMonthly:         in.Expenses.UtilitiesMonthly,
		FieldHOAMonthly:               in.Expenses.HOAMonthly,
		FieldOtherMonthly:             in.Expenses.OtherMonthly,
		FieldPurchasePrice:            in.Financing.PurchasePrice,
		FieldDownPaymentAmount:        in.Financing.DownPaymentAmount,
		FieldInterestRate:             in.Financing.InterestRate,
	}
	if p := in.Expenses.ManagementFeePercent; p != nil {
		values[FieldManagementFeePercent] = *p
	}
	if f := in.Expenses.ManagementFeeFixed; f != nil {
		values[FieldManagementFeeFixed] = *f
	}

	oversized := map[string]string{}
	for name, v := range values {
		if !bounded(v) {
			oversized[name] = ReasonMagnitude
		}
	}
	return oversized
}

func bounded(d decimal.Decimal) bool {
	exp := d.Exponent()
	if exp < -MaxExponent || exp > MaxExponent {
		return false
	}
	c := d.Coefficient()
	return c.Abs(c).Cmp(coefficientLimit) < 0
}

func isInteger(d decimal.Decimal) bool {
	return d.Equal(d.Truncate(0)) && d.LessThanOrEqual(maxInteger) && d.GreaterThanOrEqual(minInteger)
}

func nonNegative(d decimal.Decimal) bool {
	return !d.IsNegative()
}

func unitInterval(d decimal.Decimal) bool {
	return !d.IsNegative() && d.LessThanOrEqual(one)
}
