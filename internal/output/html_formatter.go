package output

import (
	"bytes"
	_ "embed"
	"html/template"

	"github.com/rpgo/rental-proforma/internal/domain"
)

// HTMLFormatter produces a styled HTML report around the statement table.
type HTMLFormatter struct {
	// Fragment renders only the <table> element.
	Fragment bool
	// Assumptions replaces DefaultAssumptions when set.
	Assumptions []string
}

func (h HTMLFormatter) Name() string { return "html" }

//go:embed templates/proforma.html.tmpl
var htmlTemplateSource string

var htmlTemplate = template.Must(template.New("report").Parse(htmlTemplateSource))

func (h HTMLFormatter) Format(out *domain.ProFormaOutput) ([]byte, error) {
	assumptions := h.Assumptions
	if len(assumptions) == 0 {
		assumptions = DefaultAssumptions
	}
	data := struct {
		Sections    []statementSection
		Assessment  Assessment
		Assumptions []string
	}{statement(out), AnalyzeProForma(out), assumptions}

	name := "report"
	if h.Fragment {
		name = "table"
	}
	var buf bytes.Buffer
	if err := htmlTemplate.ExecuteTemplate(&buf, name, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// HTMLTable renders the statement as a bare HTML table.
func HTMLTable(out *domain.ProFormaOutput) (string, error) {
	b, err := HTMLFormatter{Fragment: true}.Format(out)
	return string(b), err
}
