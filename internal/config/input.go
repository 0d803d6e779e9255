package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/rpgo/rental-proforma/internal/domain"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// Input formats understood by InputParser.
const (
	FormatAuto = "auto"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// ErrMalformedDocument is returned when input bytes are not a JSON or YAML object.
var ErrMalformedDocument = errors.New("malformed input document")

// InputParser handles parsing of pro forma input documents
type InputParser struct{}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadFromFile loads an input document from a JSON or YAML file. The format
// is taken from the extension; unknown extensions are sniffed.
func (ip *InputParser) LoadFromFile(filename string) (domain.Document, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	return ip.Parse(data, FormatForPath(filename))
}

// LoadFromReader reads all of r and parses it.
func (ip *InputParser) LoadFromReader(r io.Reader, format string) (domain.Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read input: %w", err)
	}
	return ip.Parse(data, format)
}

// Parse decodes data in the given format into a Document.
func (ip *InputParser) Parse(data []byte, format string) (domain.Document, error) {
	switch strings.ToLower(format) {
	case FormatJSON:
		return ip.ParseJSON(data)
	case FormatYAML, "yml":
		return ip.ParseYAML(data)
	case FormatAuto, "":
		if looksLikeJSON(data) {
			return ip.ParseJSON(data)
		}
		return ip.ParseYAML(data)
	default:
		return nil, fmt.Errorf("unsupported input format %q", format)
	}
}

// ParseJSON decodes a JSON object. Numbers keep their exact decimal text.
func (ip *InputParser) ParseJSON(data []byte) (domain.Document, error) {
	raw, err := decodeJSON(data)
	if err != nil {
		return nil, err
	}
	obj, ok := raw.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: expected a JSON object", ErrMalformedDocument)
	}
	return FromJSONValue(obj).(domain.Document), nil
}

// ParseJSONBatch decodes a JSON array of input objects. Elements that are
// not objects become empty documents, so each fails validation on its own.
func (ip *InputParser) ParseJSONBatch(data []byte) ([]domain.Document, error) {
	raw, err := decodeJSON(data)
	if err != nil {
		return nil, err
	}
	items, ok := raw.([]any)
	if !ok {
		return nil, fmt.Errorf("%w: expected a JSON array", ErrMalformedDocument)
	}
	docs := make([]domain.Document, len(items))
	for i, item := range items {
		doc, ok := FromJSONValue(item).(domain.Document)
		if !ok {
			doc = domain.Document{}
		}
		docs[i] = doc
	}
	return docs, nil
}

func decodeJSON(data []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var raw any
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("%w: failed to parse JSON: %v", ErrMalformedDocument, err)
	}
	if dec.More() {
		return nil, fmt.Errorf("%w: unexpected data after JSON value", ErrMalformedDocument)
	}
	return raw, nil
}

// FromJSONValue converts a value decoded with json.Decoder.UseNumber into
// Document form.
func FromJSONValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		doc := make(domain.Document, len(t))
		for k, child := range t {
			doc[k] = FromJSONValue(child)
		}
		return doc
	case []any:
		out := make([]any, len(t))
		for i, child := range t {
			out[i] = FromJSONValue(child)
		}
		return out
	case json.Number:
		if n, err := decimal.NewFromString(t.String()); err == nil {
			return n
		}
		return t.String()
	case float64:
		return decimal.NewFromFloat(t)
	default:
		return t
	}
}

// ParseYAML decodes a YAML mapping. Scalars tagged !!int or !!float become decimals.
func (ip *InputParser) ParseYAML(data []byte) (domain.Document, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("%w: failed to parse YAML: %v", ErrMalformedDocument, err)
	}
	node := &root
	if node.Kind == yaml.DocumentNode && len(node.Content) > 0 {
		node = node.Content[0]
	}
	if node.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("%w: expected a YAML mapping", ErrMalformedDocument)
	}
	return fromYAMLNode(node).(domain.Document), nil
}

func fromYAMLNode(n *yaml.Node) any {
	switch n.Kind {
	case yaml.MappingNode:
		doc := make(domain.Document, len(n.Content)/2)
		for i := 0; i+1 < len(n.Content); i += 2 {
			doc[n.Content[i].Value] = fromYAMLNode(n.Content[i+1])
		}
		return doc
	case yaml.SequenceNode:
		out := make([]any, len(n.Content))
		for i, child := range n.Content {
			out[i] = fromYAMLNode(child)
		}
		return out
	case yaml.AliasNode:
		return fromYAMLNode(n.Alias)
	case yaml.ScalarNode:
		switch n.ShortTag() {
		case "!!null":
			return nil
		case "!!int", "!!float":
			if d, err := decimal.NewFromString(strings.ReplaceAll(n.Value, "_", "")); err == nil {
				return d
			}
			var f float64
			if err := n.Decode(&f); err == nil && !math.IsInf(f, 0) && !math.IsNaN(f) {
				return decimal.NewFromFloat(f)
			}
			return n.Value
		case "!!bool":
			var b bool
			if err := n.Decode(&b); err == nil {
				return b
			}
			return n.Value
		default:
			return n.Value
		}
	}
	return nil
}

// FormatForPath returns the input format implied by a file extension.
func FormatForPath(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatAuto
	}
}

func looksLikeJSON(data []byte) bool {
	trimmed := bytes.TrimSpace(data)
	return len(trimmed) > 0 && (trimmed[0] == '{' || trimmed[0] == '[')
}

// CreateExampleInput returns the canonical 10-unit example property.
func (ip *InputParser) CreateExampleInput() domain.ProFormaInput {
	pct := decimal.NewFromFloat(0.08)
	return domain.ProFormaInput{
		Property: domain.PropertyInput{
			Units:               10,
			MonthlyRentPerUnit:  decimal.NewFromInt(1500),
			OccupancyRate:       decimal.NewFromFloat(0.95),
			AnnualPropertyTaxes: decimal.NewFromInt(12000),
			AnnualInsurance:     decimal.NewFromInt(8000),
		},
		Expenses: domain.ExpenseInput{
			ManagementFeePercent:     &pct,
			ManagementFeeFixed:       nil,
			MaintenancePerUnitAnnual: decimal.NewFromInt(1200),
			UtilitiesMonthly:         decimal.NewFromInt(500),
			HOAMonthly:               decimal.Zero,
			OtherMonthly:             decimal.NewFromInt(200),
		},
		Financing: domain.FinancingInput{
			PurchasePrice:     decimal.NewFromInt(2000000),
			DownPaymentAmount: decimal.NewFromInt(400000),
			InterestRate:      decimal.NewFromFloat(0.065),
			LoanTermYears:     30,
		},
	}
}

// MarshalExampleInput renders the example input as JSON or YAML with plain
// numeric literals.
func (ip *InputParser) MarshalExampleInput(format string) ([]byte, error) {
	plain := plainValue(ip.CreateExampleInput().Document())
	if strings.ToLower(format) == FormatYAML {
		return yaml.Marshal(plain)
	}
	return json.MarshalIndent(plain, "", "  ")
}

// plainValue swaps decimals for int64/float64 so encoders emit bare numbers.
func plainValue(v any) any {
	switch t := v.(type) {
	case domain.Document:
		out := make(map[string]any, len(t))
		for k, child := range t {
			out[k] = plainValue(child)
		}
		return out
	case decimal.Decimal:
		if t.Equal(t.Truncate(0)) {
			return t.IntPart()
		}
		f, _ := t.Float64()
		return f
	default:
		return t
	}
}
