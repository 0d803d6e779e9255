package calculation

import (
	"fmt"
	"strings"
	"testing"

	"github.com/rpgo/rental-proforma/internal/domain"
	money "github.com/rpgo/rental-proforma/pkg/decimal"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func dp(s string) *decimal.Decimal {
	v := d(s)
	return &v
}

// exampleInput is the canonical 10-unit property.
func exampleInput() domain.ProFormaInput {
	return domain.ProFormaInput{
		Property: domain.PropertyInput{
			Units:               10,
			MonthlyRentPerUnit:  d("1500"),
			OccupancyRate:       d("0.95"),
			AnnualPropertyTaxes: d("12000"),
			AnnualInsurance:     d("8000"),
		},
		Expenses: domain.ExpenseInput{
			ManagementFeePercent:     dp("0.08"),
			MaintenancePerUnitAnnual: d("1200"),
			UtilitiesMonthly:         d("500"),
			HOAMonthly:               d("0"),
			OtherMonthly:             d("200"),
		},
		Financing: domain.FinancingInput{
			PurchasePrice:     d("2000000"),
			DownPaymentAmount: d("400000"),
			InterestRate:      d("0.065"),
			LoanTermYears:     30,
		},
	}
}

func assertMoney(t *testing.T, want string, got money.Money, field string) {
	t.Helper()
	assert.Equal(t, want, got.Round().String(), field)
}

func TestCalculate_Revenue(t *testing.T) {
	raw := Calculate(exampleInput())

	assertMoney(t, "180000.00", raw.GrossPotentialRent, "gross_potential_rent")
	assertMoney(t, "9000.00", raw.VacancyLoss, "vacancy_loss")
	assertMoney(t, "171000.00", raw.EffectiveGrossIncome, "effective_gross_income")
}

func TestCalculate_Expenses(t *testing.T) {
	raw := Calculate(exampleInput())

	assertMoney(t, "13680.00", raw.Management, "management")
	assertMoney(t, "12000.00", raw.Maintenance, "maintenance")
	assertMoney(t, "12000.00", raw.PropertyTaxes, "property_taxes")
	assertMoney(t, "8000.00", raw.Insurance, "insurance")
	assertMoney(t, "6000.00", raw.Utilities, "utilities")
	assertMoney(t, "0.00", raw.HOA, "hoa")
	assertMoney(t, "2400.00", raw.Other, "other")
	assertMoney(t, "54080.00", raw.TotalOperatingExpenses, "total_operating_expenses")
	assertMoney(t, "116920.00", raw.NetOperatingIncome, "net_operating_income")
}

func TestCalculate_DebtServiceAndMetrics(t *testing.T) {
	raw := Calculate(exampleInput())

	assertMoney(t, "1600000.00", raw.LoanAmount, "loan_amount")
	assertMoney(t, "10113.09", raw.MonthlyPayment, "monthly_payment")
	assertMoney(t, "121357.06", raw.AnnualDebtService, "annual_debt_service")
	assertMoney(t, "-4437.06", raw.CashFlowBeforeTax, "cash_flow_before_tax")

	require.True(t, raw.CapRate.Defined)
	assert.Equal(t, "0.0585", raw.CapRate.Round().String())
	require.True(t, raw.CashOnCashReturn.Defined)
	assert.Equal(t, "-0.0111", raw.CashOnCashReturn.Round().String())
	require.True(t, raw.DebtServiceCoverageRatio.Defined)
	assert.Equal(t, "0.9634", raw.DebtServiceCoverageRatio.Round().String())
}

func TestCalculate_PercentFeeIgnoresFixed(t *testing.T) {
	in := exampleInput()
	in.Expenses.ManagementFeeFixed = dp("99999")

	raw := Calculate(in)
	assert.True(t, raw.Management.Decimal.Equal(raw.EffectiveGrossIncome.Decimal.Mul(d("0.08"))))
	assertMoney(t, "13680.00", raw.Management, "management")
}

func TestCalculate_FixedFee(t *testing.T) {
	in := domain.ProFormaInput{
		Property: domain.PropertyInput{
			Units:               4,
			MonthlyRentPerUnit:  d("1250"),
			OccupancyRate:       d("0.9"),
			AnnualPropertyTaxes: d("4800"),
			AnnualInsurance:     d("2400"),
		},
		Expenses: domain.ExpenseInput{
			ManagementFeeFixed:       dp("6000"),
			MaintenancePerUnitAnnual: d("600"),
			UtilitiesMonthly:         d("150"),
			HOAMonthly:               d("100"),
			OtherMonthly:             d("50"),
		},
		Financing: domain.FinancingInput{
			PurchasePrice:     d("600000"),
			DownPaymentAmount: d("0"),
			InterestRate:      d("0.07"),
			LoanTermYears:     15,
		},
	}

	raw := Calculate(in)
	assertMoney(t, "6000.00", raw.Management, "management")
	assertMoney(t, "19200.00", raw.TotalOperatingExpenses, "total_operating_expenses")
	assertMoney(t, "34800.00", raw.NetOperatingIncome, "net_operating_income")
	assertMoney(t, "64715.64", raw.AnnualDebtService, "annual_debt_service")
	assert.False(t, raw.CashOnCashReturn.Defined, "zero down payment leaves cash on cash undefined")
	assert.Equal(t, "0.5377", raw.DebtServiceCoverageRatio.Round().String())
}

func TestCalculate_ZeroInterestIsStraightLine(t *testing.T) {
	in := exampleInput()
	in.Financing.InterestRate = d("0")

	raw := Calculate(in)
	assertMoney(t, "4444.44", raw.MonthlyPayment, "monthly_payment")
	assertMoney(t, "53333.33", raw.AnnualDebtService, "annual_debt_service")
	assertMoney(t, "63586.67", raw.CashFlowBeforeTax, "cash_flow_before_tax")
	assert.Equal(t, "2.1923", raw.DebtServiceCoverageRatio.Round().String())
	assert.Equal(t, "0.159", raw.CashOnCashReturn.Round().String())
}

func TestCalculate_AllCashPurchase(t *testing.T) {
	in := exampleInput()
	in.Financing.DownPaymentAmount = in.Financing.PurchasePrice

	raw := Calculate(in)
	assert.True(t, raw.LoanAmount.IsZero())
	assert.True(t, raw.AnnualDebtService.IsZero())
	assert.False(t, raw.DebtServiceCoverageRatio.Defined)
	require.True(t, raw.CashOnCashReturn.Defined)
	assert.True(t, raw.CashOnCashReturn.Value.Equal(
		raw.CashFlowBeforeTax.Decimal.DivRound(in.Financing.DownPaymentAmount, money.InternalPrecision)))
}

func TestMonthlyPayment(t *testing.T) {
	tests := []struct {
		name  string
		loan  string
		rate  string
		years int
		want  string
	}{
		{"30 year at 6.5%", "1600000", "0.065", 30, "10113.09"},
		{"15 year at 7%", "600000", "0.07", 15, "5392.97"},
		{"zero rate", "120000", "0", 10, "1000.00"},
		{"zero loan", "0", "0.05", 30, "0.00"},
		{"one year at 12%", "12000", "0.12", 1, "1066.19"},
		{"very long term saturates toward interest only", "100000", "0.12", 1000, "1000.00"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MonthlyPayment(money.NewMoneyFromDecimal(d(tt.loan)), d(tt.rate), tt.years)
			assert.Equal(t, tt.want, got.Round().String())
		})
	}
}

func TestCalculate_Deterministic(t *testing.T) {
	a := Calculate(exampleInput())
	b := Calculate(exampleInput())
	assert.Equal(t, fmt.Sprintf("%+v", a), fmt.Sprintf("%+v", b))
}

type recordingLogger struct {
	NopLogger
	lines []string
}

func (r *recordingLogger) Debugf(format string, args ...any) {
	r.lines = append(r.lines, fmt.Sprintf(format, args...))
}

func TestCalculationEngine_DebugBreakdown(t *testing.T) {
	rec := &recordingLogger{}
	engine := NewCalculationEngine()
	engine.SetLogger(rec)
	engine.Debug = true

	engine.Calculate(exampleInput())
	joined := strings.Join(rec.lines, "\n")
	assert.Contains(t, joined, "PRO FORMA CALCULATION BREAKDOWN")
	assert.Contains(t, joined, "$171000.00")
	assert.Contains(t, joined, "0.9634")

	engine.SetLogger(nil)
	assert.IsType(t, NopLogger{}, engine.Logger)
}

func TestCalculationEngine_NoDebugNoLogs(t *testing.T) {
	rec := &recordingLogger{}
	engine := NewCalculationEngine()
	engine.SetLogger(rec)

	engine.Calculate(exampleInput())
	assert.Empty(t, rec.lines)
}
