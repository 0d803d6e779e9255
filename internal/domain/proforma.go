package domain

import (
	"github.com/shopspring/decimal"
)

// ProFormaInput is a structurally complete rental property record.
type ProFormaInput struct {
	Property  PropertyInput  `yaml:"property" json:"property"`
	Expenses  ExpenseInput   `yaml:"expenses" json:"expenses"`
	Financing FinancingInput `yaml:"financing" json:"financing"`
}

// PropertyInput describes the rentable units and fixed property costs.
type PropertyInput struct {
	Units               int             `yaml:"units" json:"units"`
	MonthlyRentPerUnit  decimal.Decimal `yaml:"monthly_rent_per_unit" json:"monthly_rent_per_unit"`
	OccupancyRate       decimal.Decimal `yaml:"occupancy_rate" json:"occupancy_rate"` // 0-1
	AnnualPropertyTaxes decimal.Decimal `yaml:"annual_property_taxes" json:"annual_property_taxes"`
	AnnualInsurance     decimal.Decimal `yaml:"annual_insurance" json:"annual_insurance"`
}

// ExpenseInput holds operating expenses. The management fee is either a
// percentage of effective gross income or a fixed annual amount; the
// percentage wins when both are set.
type ExpenseInput struct {
	ManagementFeePercent     *decimal.Decimal `yaml:"management_fee_percent" json:"management_fee_percent"`
	ManagementFeeFixed       *decimal.Decimal `yaml:"management_fee_fixed" json:"management_fee_fixed"`
	MaintenancePerUnitAnnual decimal.Decimal  `yaml:"maintenance_per_unit_annual" json:"maintenance_per_unit_annual"`
	UtilitiesMonthly         decimal.Decimal  `yaml:"utilities_monthly" json:"utilities_monthly"`
	HOAMonthly               decimal.Decimal  `yaml:"hoa_monthly" json:"hoa_monthly"`
	OtherMonthly             decimal.Decimal  `yaml:"other_monthly" json:"other_monthly"`
}

// UsesPercentFee reports whether the management fee is percentage based.
func (e ExpenseInput) UsesPercentFee() bool {
	return e.ManagementFeePercent != nil
}

// FinancingInput describes the purchase and its amortizing loan.
type FinancingInput struct {
	PurchasePrice     decimal.Decimal `yaml:"purchase_price" json:"purchase_price"`
	DownPaymentAmount decimal.Decimal `yaml:"down_payment_amount" json:"down_payment_amount"`
	InterestRate      decimal.Decimal `yaml:"interest_rate" json:"interest_rate"` // annual, 0-1
	LoanTermYears     int             `yaml:"loan_term_years" json:"loan_term_years"`
}

// LoanAmount is the financed part of the purchase price.
func (f FinancingInput) LoanAmount() decimal.Decimal {
	return f.PurchasePrice.Sub(f.DownPaymentAmount)
}

// ProFormaOutput is the computed snapshot for one input.
type ProFormaOutput struct {
	Revenue        RevenueSummary  `yaml:"revenue" json:"revenue"`
	Expenses       ExpenseSummary  `yaml:"expenses" json:"expenses"`
	CashFlow       CashFlowSummary `yaml:"cash_flow" json:"cash_flow"`
	Metrics        Metrics         `yaml:"metrics" json:"metrics"`
	MonthlySummary MonthlySummary  `yaml:"monthly_summary" json:"monthly_summary"`
}

// RevenueSummary holds annual rent before and after vacancy.
type RevenueSummary struct {
	GrossPotentialRent   float64 `yaml:"gross_potential_rent" json:"gross_potential_rent"`
	VacancyLoss          float64 `yaml:"vacancy_loss" json:"vacancy_loss"`
	EffectiveGrossIncome float64 `yaml:"effective_gross_income" json:"effective_gross_income"`
}

// ExpenseSummary itemizes annual operating expenses.
type ExpenseSummary struct {
	Management             float64 `yaml:"management" json:"management"`
	Maintenance            float64 `yaml:"maintenance" json:"maintenance"`
	PropertyTaxes          float64 `yaml:"property_taxes" json:"property_taxes"`
	Insurance              float64 `yaml:"insurance" json:"insurance"`
	Utilities              float64 `yaml:"utilities" json:"utilities"`
	HOA                    float64 `yaml:"hoa" json:"hoa"`
	Other                  float64 `yaml:"other" json:"other"`
	TotalOperatingExpenses float64 `yaml:"total_operating_expenses" json:"total_operating_expenses"`
}

// CashFlowSummary holds annual income after expenses and debt service.
type CashFlowSummary struct {
	NetOperatingIncome float64 `yaml:"net_operating_income" json:"net_operating_income"`
	AnnualDebtService  float64 `yaml:"annual_debt_service" json:"annual_debt_service"`
	CashFlowBeforeTax  float64 `yaml:"cash_flow_before_tax" json:"cash_flow_before_tax"`
}

// Metrics are expressed as decimals (0.0725, not 7.25).
// DebtServiceCoverageRatio is nil when there is no debt service.
type Metrics struct {
	CapRate                  float64  `yaml:"cap_rate" json:"cap_rate"`
	CashOnCashReturn         float64  `yaml:"cash_on_cash_return" json:"cash_on_cash_return"`
	DebtServiceCoverageRatio *float64 `yaml:"debt_service_coverage_ratio" json:"debt_service_coverage_ratio"`
}

// MonthlySummary holds the annual figures divided by 12.
type MonthlySummary struct {
	GrossRent         float64 `yaml:"gross_rent" json:"gross_rent"`
	EffectiveRent     float64 `yaml:"effective_rent" json:"effective_rent"`
	OperatingExpenses float64 `yaml:"operating_expenses" json:"operating_expenses"`
	NOI               float64 `yaml:"noi" json:"noi"`
	DebtService       float64 `yaml:"debt_service" json:"debt_service"`
	CashFlow          float64 `yaml:"cash_flow" json:"cash_flow"`
}
