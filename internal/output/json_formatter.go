package output

import (
	"encoding/json"

	"github.com/rpgo/rental-proforma/internal/domain"
)

// JSONFormatter serializes the pro forma as pretty-printed JSON.
type JSONFormatter struct{}

func (j JSONFormatter) Name() string { return "json" }

func (j JSONFormatter) Format(out *domain.ProFormaOutput) ([]byte, error) {
	return json.MarshalIndent(out, "", "  ")
}
