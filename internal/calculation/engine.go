package calculation

import (
	"github.com/rpgo/rental-proforma/internal/domain"
	money "github.com/rpgo/rental-proforma/pkg/decimal"
	"github.com/shopspring/decimal"
)

var monthsPerYear = decimal.NewFromInt(12)

// RawOutput holds unrounded pro forma figures. Ratios whose denominator was
// zero are left undefined for Format to resolve.
type RawOutput struct {
	GrossPotentialRent   money.Money
	VacancyLoss          money.Money
	EffectiveGrossIncome money.Money

	Management             money.Money
	Maintenance            money.Money
	PropertyTaxes          money.Money
	Insurance              money.Money
	Utilities              money.Money
	HOA                    money.Money
	Other                  money.Money
	TotalOperatingExpenses money.Money

	NetOperatingIncome money.Money
	LoanAmount         money.Money
	MonthlyPayment     money.Money
	AnnualDebtService  money.Money
	CashFlowBeforeTax  money.Money

	CapRate                  money.Ratio
	CashOnCashReturn         money.Ratio
	DebtServiceCoverageRatio money.Ratio
}

// CalculationEngine computes pro forma figures from validated input.
// It holds no per-call state and is safe for concurrent use.
type CalculationEngine struct {
	Debug  bool // log a calculation breakdown for every call
	Logger Logger
}

// NewCalculationEngine creates a new calculation engine
func NewCalculationEngine() *CalculationEngine {
	return &CalculationEngine{Logger: NopLogger{}}
}

// SetLogger sets the logger for the calculation engine. If nil is provided, a no-op logger is used.
func (ce *CalculationEngine) SetLogger(l Logger) {
	ce.Logger = OrNop(l)
}

// Calculate runs a default engine over in.
func Calculate(in domain.ProFormaInput) RawOutput {
	return NewCalculationEngine().Calculate(in)
}

// Calculate evaluates every formula in dependency order. The input must
// already have passed validation.
func (ce *CalculationEngine) Calculate(in domain.ProFormaInput) RawOutput {
	var out RawOutput
	p, e, f := in.Property, in.Expenses, in.Financing
	units := decimal.NewFromInt(int64(p.Units))

	// Revenue
	out.GrossPotentialRent = money.NewMoneyFromDecimal(p.MonthlyRentPerUnit.Mul(units)).Annual()
	out.VacancyLoss = out.GrossPotentialRent.Mul(decimal.NewFromInt(1).Sub(p.OccupancyRate))
	out.EffectiveGrossIncome = out.GrossPotentialRent.Sub(out.VacancyLoss)

	// Operating expenses
	if e.UsesPercentFee() {
		out.Management = out.EffectiveGrossIncome.Mul(*e.ManagementFeePercent)
	} else if e.ManagementFeeFixed != nil {
		out.Management = money.NewMoneyFromDecimal(*e.ManagementFeeFixed)
	}
	out.Maintenance = money.NewMoneyFromDecimal(e.MaintenancePerUnitAnnual.Mul(units))
	out.PropertyTaxes = money.NewMoneyFromDecimal(p.AnnualPropertyTaxes)
	out.Insurance = money.NewMoneyFromDecimal(p.AnnualInsurance)
	out.Utilities = money.NewMoneyFromDecimal(e.UtilitiesMonthly).Annual()
	out.HOA = money.NewMoneyFromDecimal(e.HOAMonthly).Annual()
	out.Other = money.NewMoneyFromDecimal(e.OtherMonthly).Annual()
	out.TotalOperatingExpenses = money.Sum(
		out.Management, out.Maintenance, out.PropertyTaxes, out.Insurance,
		out.Utilities, out.HOA, out.Other,
	)

	out.NetOperatingIncome = out.EffectiveGrossIncome.Sub(out.TotalOperatingExpenses)

	// Debt service
	out.LoanAmount = money.NewMoneyFromDecimal(f.LoanAmount())
	out.MonthlyPayment = MonthlyPayment(out.LoanAmount, f.InterestRate, f.LoanTermYears)
	out.AnnualDebtService = out.MonthlyPayment.Annual()

	out.CashFlowBeforeTax = out.NetOperatingIncome.Sub(out.AnnualDebtService)

	// Metrics
	purchasePrice := money.NewMoneyFromDecimal(f.PurchasePrice)
	out.CapRate = money.Quotient(out.NetOperatingIncome, purchasePrice)
	out.CashOnCashReturn = money.Quotient(out.CashFlowBeforeTax, money.NewMoneyFromDecimal(f.DownPaymentAmount))
	out.DebtServiceCoverageRatio = money.Quotient(out.NetOperatingIncome, out.AnnualDebtService)

	if ce.Debug {
		ce.logBreakdown(&out)
	}
	return out
}

// MonthlyPayment returns the level payment amortizing loan over termYears at
// annualRate. A zero rate amortizes straight-line.
func MonthlyPayment(loan money.Money, annualRate decimal.Decimal, termYears int) money.Money {
	numPayments := int64(termYears) * 12
	if numPayments <= 0 || loan.IsZero() {
		return money.Zero()
	}
	n := decimal.NewFromInt(numPayments)
	monthlyRate := annualRate.DivRound(monthsPerYear, money.InternalPrecision)
	if monthlyRate.IsZero() {
		return loan.Div(n)
	}
	growth := money.CompoundFactor(monthlyRate, numPayments)
	factor := monthlyRate.Mul(growth).DivRound(growth.Sub(decimal.NewFromInt(1)), money.InternalPrecision)
	return loan.Mul(factor)
}

func ratioString(r money.Ratio) string {
	if !r.Defined {
		return "undefined"
	}
	return r.Round().StringFixed(money.RatioPlaces)
}

func (ce *CalculationEngine) logBreakdown(out *RawOutput) {
	log := OrNop(ce.Logger)
	log.Debugf("PRO FORMA CALCULATION BREAKDOWN:")
	log.Debugf("================================")
	log.Debugf("Gross Potential Rent:      %s", out.GrossPotentialRent.Format())
	log.Debugf("Vacancy Loss:              %s", out.VacancyLoss.Format())
	log.Debugf("Effective Gross Income:    %s", out.EffectiveGrossIncome.Format())
	log.Debugf("")
	log.Debugf("OPERATING EXPENSES:")
	log.Debugf("  Management:              %s", out.Management.Format())
	log.Debugf("  Maintenance:             %s", out.Maintenance.Format())
	log.Debugf("  Property Taxes:          %s", out.PropertyTaxes.Format())
	log.Debugf("  Insurance:               %s", out.Insurance.Format())
	log.Debugf("  Utilities:               %s", out.Utilities.Format())
	log.Debugf("  HOA:                     %s", out.HOA.Format())
	log.Debugf("  Other:                   %s", out.Other.Format())
	log.Debugf("  Total:                   %s", out.TotalOperatingExpenses.Format())
	log.Debugf("")
	log.Debugf("Net Operating Income:      %s", out.NetOperatingIncome.Format())
	log.Debugf("Loan Amount:               %s", out.LoanAmount.Format())
	log.Debugf("Monthly Payment:           %s", out.MonthlyPayment.Format())
	log.Debugf("Annual Debt Service:       %s", out.AnnualDebtService.Format())
	log.Debugf("Cash Flow Before Tax:      %s", out.CashFlowBeforeTax.Format())
	log.Debugf("Cap Rate:                  %s", ratioString(out.CapRate))
	log.Debugf("Cash on Cash Return:       %s", ratioString(out.CashOnCashReturn))
	log.Debugf("DSCR:                      %s", ratioString(out.DebtServiceCoverageRatio))
}
