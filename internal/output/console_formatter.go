package output

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/rpgo/rental-proforma/internal/domain"
)

// ConsoleFormatter renders an aligned text statement.
type ConsoleFormatter struct {
	// Assumptions are listed after the statement when set.
	Assumptions []string
}

func (c ConsoleFormatter) Name() string { return "console" }

func (c ConsoleFormatter) Format(out *domain.ProFormaOutput) ([]byte, error) {
	var buf bytes.Buffer
	fmt.Fprintln(&buf, "RENTAL PROPERTY PRO FORMA")
	fmt.Fprintln(&buf, "================================")
	for _, sec := range statement(out) {
		fmt.Fprintln(&buf)
		fmt.Fprintln(&buf, strings.ToUpper(sec.Title))
		for _, item := range sec.Items {
			if item.Total {
				fmt.Fprintf(&buf, "  %-28s %16s\n", "", strings.Repeat("-", 14))
			}
			fmt.Fprintf(&buf, "  %-28s %16s\n", item.Label, item.Display())
		}
	}

	a := AnalyzeProForma(out)
	fmt.Fprintln(&buf)
	fmt.Fprintf(&buf, "Assessment: %s\n", a.Summary())
	for _, note := range a.Notes {
		fmt.Fprintf(&buf, "  - %s\n", note)
	}
	if len(c.Assumptions) > 0 {
		fmt.Fprintln(&buf)
		fmt.Fprintln(&buf, "Assumptions:")
		for _, s := range c.Assumptions {
			fmt.Fprintf(&buf, "  - %s\n", s)
		}
	}
	return buf.Bytes(), nil
}
