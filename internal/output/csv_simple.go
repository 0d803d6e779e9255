package output

import (
	"bytes"
	"encoding/csv"
	"strconv"

	"github.com/rpgo/rental-proforma/internal/domain"
)

// CSVSummarizer writes one section,field,value row per output figure in
// statement order. Money has 2 decimals, ratios 4; an undefined coverage
// ratio is an empty cell.
type CSVSummarizer struct{}

func (c CSVSummarizer) Name() string { return "csv" }

func (c CSVSummarizer) Format(out *domain.ProFormaOutput) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	if err := w.Write([]string{"section", "field", "value"}); err != nil {
		return nil, err
	}
	for _, sec := range statement(out) {
		for _, item := range sec.Items {
			if err := w.Write([]string{item.Section, item.Field, csvValue(item)}); err != nil {
				return nil, err
			}
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func csvValue(item lineItem) string {
	switch item.Kind {
	case kindRatio:
		return strconv.FormatFloat(item.Value, 'f', 4, 64)
	case kindCoverage:
		if item.Coverage == nil {
			return ""
		}
		return strconv.FormatFloat(*item.Coverage, 'f', 4, 64)
	default:
		return strconv.FormatFloat(item.Value, 'f', 2, 64)
	}
}
