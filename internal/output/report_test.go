package output_test

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/rpgo/rental-proforma/internal/domain"
	"github.com/rpgo/rental-proforma/internal/output"
)

func sampleOutput() *domain.ProFormaOutput {
	dscr := 1.5
	return &domain.ProFormaOutput{
		Revenue:  domain.RevenueSummary{GrossPotentialRent: 12000, EffectiveGrossIncome: 12000},
		CashFlow: domain.CashFlowSummary{NetOperatingIncome: 12000, AnnualDebtService: 8000, CashFlowBeforeTax: 4000},
		Metrics:  domain.Metrics{CapRate: 0.06, CashOnCashReturn: 0.1, DebtServiceCoverageRatio: &dscr},
	}
}

func TestRender(t *testing.T) {
	var buf bytes.Buffer
	if err := output.Render(&buf, sampleOutput(), "json", nil); err != nil {
		t.Fatalf("Render json error: %v", err)
	}
	if !strings.HasPrefix(buf.String(), "{") || !strings.HasSuffix(buf.String(), "}\n") {
		t.Fatalf("unexpected JSON rendering: %s", buf.String())
	}

	buf.Reset()
	if err := output.Render(&buf, sampleOutput(), "console", []string{"Vacancy applies to rent"}); err != nil {
		t.Fatalf("Render console error: %v", err)
	}
	if !strings.Contains(buf.String(), "Vacancy applies to rent") {
		t.Fatalf("assumptions not passed to console formatter: %s", buf.String())
	}
}

func TestRenderUnknownFormat(t *testing.T) {
	err := output.Render(&bytes.Buffer{}, sampleOutput(), "definitely-not-a-format", nil)
	if err == nil {
		t.Fatalf("expected error for unknown format")
	}
	if !errors.Is(err, output.ErrUnsupportedFormat) {
		t.Fatalf("expected ErrUnsupportedFormat, got %v", err)
	}
	msg := err.Error()
	if !strings.Contains(msg, "unsupported report format") || !strings.Contains(msg, "Try one of:") {
		t.Fatalf("error message missing suggestions: %s", msg)
	}
}

func TestRenderError(t *testing.T) {
	var buf bytes.Buffer
	if err := output.RenderError(&buf, domain.NewStructuralError([]string{"units"})); err != nil {
		t.Fatalf("RenderError: %v", err)
	}
	if !strings.Contains(buf.String(), `"error": "Invalid input format"`) || !strings.Contains(buf.String(), `"units"`) {
		t.Fatalf("unexpected error body: %s", buf.String())
	}
}

func TestGenerateAssumptions(t *testing.T) {
	pct := decimal.RequireFromString("0.08")
	in := domain.ProFormaInput{
		Property:  domain.PropertyInput{Units: 10, OccupancyRate: decimal.RequireFromString("0.95")},
		Expenses:  domain.ExpenseInput{ManagementFeePercent: &pct},
		Financing: domain.FinancingInput{PurchasePrice: decimal.NewFromInt(2000000), DownPaymentAmount: decimal.NewFromInt(400000), InterestRate: decimal.RequireFromString("0.065"), LoanTermYears: 30},
	}
	got := strings.Join(output.GenerateAssumptions(in), "\n")
	for _, want := range []string{
		"Occupancy: 95.00% of 10 units",
		"Management fee: 8.00% of effective gross income",
		"Financing: $1,600,000.00 loan at 6.50% fixed over 30 years",
	} {
		if !strings.Contains(got, want) {
			t.Fatalf("expected %q in assumptions:\n%s", want, got)
		}
	}

	fixed := decimal.NewFromInt(6000)
	in.Expenses = domain.ExpenseInput{ManagementFeeFixed: &fixed}
	in.Financing.DownPaymentAmount = in.Financing.PurchasePrice
	got = strings.Join(output.GenerateAssumptions(in), "\n")
	if !strings.Contains(got, "Management fee: $6,000.00 fixed per year") || !strings.Contains(got, "all cash") {
		t.Fatalf("unexpected assumptions:\n%s", got)
	}
}
