package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/rpgo/rental-proforma/internal/domain"
)

// Lookup resolves a format name, with the list of valid names on failure.
func Lookup(format string) (Formatter, error) {
	if f := GetFormatterByName(format); f != nil {
		return f, nil
	}
	// enrich error with available formatters and aliases
	return nil, fmt.Errorf("%w: %q. Try one of: %s (aliases: %s)", ErrUnsupportedFormat, format, strings.Join(AvailableFormatterNames(), ", "), strings.Join(AvailableFormatAliases(), ", "))
}

// Render writes out to w in the named format. Assumptions, when given, are
// included by the formatters that print them.
func Render(w io.Writer, out *domain.ProFormaOutput, format string, assumptions []string) error {
	f, err := Lookup(format)
	if err != nil {
		return err
	}
	switch ff := f.(type) {
	case HTMLFormatter:
		ff.Assumptions = assumptions
		f = ff
	case ConsoleFormatter:
		ff.Assumptions = assumptions
		f = ff
	}
	data, err := f.Format(out)
	if err != nil {
		return fmt.Errorf("failed to render %s: %w", f.Name(), err)
	}
	if _, err := w.Write(data); err != nil {
		return err
	}
	if len(data) > 0 && data[len(data)-1] != '\n' {
		_, err = io.WriteString(w, "\n")
	}
	return err
}

// RenderError writes the JSON body of a validation error. Validation
// errors are always JSON regardless of the output format.
func RenderError(w io.Writer, verr *domain.ValidationError) error {
	data, err := json.MarshalIndent(verr, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "%s\n", data)
	return err
}
