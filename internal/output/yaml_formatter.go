package output

import (
	"github.com/rpgo/rental-proforma/internal/domain"
	"gopkg.in/yaml.v3"
)

// YAMLFormatter serializes the pro forma with the JSON field names.
type YAMLFormatter struct{}

func (y YAMLFormatter) Name() string { return "yaml" }

func (y YAMLFormatter) Format(out *domain.ProFormaOutput) ([]byte, error) {
	return yaml.Marshal(out)
}
