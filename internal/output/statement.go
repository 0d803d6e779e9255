package output

import "github.com/rpgo/rental-proforma/internal/domain"

type valueKind int

const (
	kindMoney valueKind = iota
	kindRatio
	kindCoverage
)

// lineItem is one row of the pro forma statement. Every text formatter
// walks the same rows so they agree on order and labels.
type lineItem struct {
	Section  string
	Field    string
	Label    string
	Value    float64
	Coverage *float64
	Kind     valueKind
	Total    bool
}

type statementSection struct {
	Key   string
	Title string
	Items []lineItem
}

func statement(out *domain.ProFormaOutput) []statementSection {
	money := func(section, field, label string, v float64) lineItem {
		return lineItem{Section: section, Field: field, Label: label, Value: v, Kind: kindMoney}
	}
	total := func(item lineItem) lineItem {
		item.Total = true
		return item
	}
	r, e, c, m, ms := out.Revenue, out.Expenses, out.CashFlow, out.Metrics, out.MonthlySummary
	return []statementSection{
		{Key: "revenue", Title: "Revenue", Items: []lineItem{
			money("revenue", "gross_potential_rent", "Gross Potential Rent", r.GrossPotentialRent),
			money("revenue", "vacancy_loss", "Vacancy Loss", r.VacancyLoss),
			total(money("revenue", "effective_gross_income", "Effective Gross Income", r.EffectiveGrossIncome)),
		}},
		{Key: "expenses", Title: "Operating Expenses", Items: []lineItem{
			money("expenses", "management", "Management", e.Management),
			money("expenses", "maintenance", "Maintenance", e.Maintenance),
			money("expenses", "property_taxes", "Property Taxes", e.PropertyTaxes),
			money("expenses", "insurance", "Insurance", e.Insurance),
			money("expenses", "utilities", "Utilities", e.Utilities),
			money("expenses", "hoa", "HOA", e.HOA),
			money("expenses", "other", "Other", e.Other),
			total(money("expenses", "total_operating_expenses", "Total Operating Expenses", e.TotalOperatingExpenses)),
		}},
		{Key: "cash_flow", Title: "Cash Flow", Items: []lineItem{
			money("cash_flow", "net_operating_income", "Net Operating Income", c.NetOperatingIncome),
			money("cash_flow", "annual_debt_service", "Annual Debt Service", c.AnnualDebtService),
			total(money("cash_flow", "cash_flow_before_tax", "Cash Flow Before Tax", c.CashFlowBeforeTax)),
		}},
		{Key: "metrics", Title: "Metrics", Items: []lineItem{
			{Section: "metrics", Field: "cap_rate", Label: "Cap Rate", Value: m.CapRate, Kind: kindRatio},
			{Section: "metrics", Field: "cash_on_cash_return", Label: "Cash-on-Cash Return", Value: m.CashOnCashReturn, Kind: kindRatio},
			{Section: "metrics", Field: "debt_service_coverage_ratio", Label: "Debt Service Coverage", Coverage: m.DebtServiceCoverageRatio, Kind: kindCoverage},
		}},
		{Key: "monthly_summary", Title: "Monthly Summary", Items: []lineItem{
			money("monthly_summary", "gross_rent", "Gross Rent", ms.GrossRent),
			money("monthly_summary", "effective_rent", "Effective Rent", ms.EffectiveRent),
			money("monthly_summary", "operating_expenses", "Operating Expenses", ms.OperatingExpenses),
			money("monthly_summary", "noi", "Net Operating Income", ms.NOI),
			money("monthly_summary", "debt_service", "Debt Service", ms.DebtService),
			total(money("monthly_summary", "cash_flow", "Cash Flow", ms.CashFlow)),
		}},
	}
}

// Display renders the item for people: currency, percentage or coverage.
func (li lineItem) Display() string {
	switch li.Kind {
	case kindRatio:
		return FormatPercentage(li.Value)
	case kindCoverage:
		return FormatCoverage(li.Coverage)
	default:
		return FormatCurrency(li.Value)
	}
}
