// Package proforma composes validation, calculation and formatting into the
// single Compute entry point used by every surface.
package proforma

import (
	"encoding/json"

	"github.com/rpgo/rental-proforma/internal/calculation"
	"github.com/rpgo/rental-proforma/internal/config"
	"github.com/rpgo/rental-proforma/internal/domain"
	"github.com/rpgo/rental-proforma/internal/validation"
)

// Engine runs the Validator -> Calculator -> Formatter pipeline. The zero
// value is not usable; build one with NewEngine.
type Engine struct {
	calc   *calculation.CalculationEngine
	logger calculation.Logger
}

// NewEngine returns an engine that logs through logger (nil for none).
func NewEngine(logger calculation.Logger, debug bool) *Engine {
	calc := calculation.NewCalculationEngine()
	calc.SetLogger(logger)
	calc.Debug = debug
	return &Engine{calc: calc, logger: calculation.OrNop(logger)}
}

var defaultEngine = NewEngine(nil, false)

// Compute validates doc and, when it is valid, returns the rounded pro
// forma. Business-rule failures are returned as *domain.ValidationError.
func Compute(doc domain.Document) (*domain.ProFormaOutput, error) {
	return defaultEngine.Compute(doc)
}

// ComputeInput runs the pipeline over an already typed input.
func ComputeInput(in domain.ProFormaInput) (*domain.ProFormaOutput, error) {
	return defaultEngine.ComputeInput(in)
}

// Compute is the engine-bound form of the package-level Compute.
func (e *Engine) Compute(doc domain.Document) (*domain.ProFormaOutput, error) {
	in, err := validation.Validate(doc)
	if err != nil {
		e.logger.Debugf("input rejected: %v", err)
		return nil, err
	}
	return e.run(*in), nil
}

// ComputeInput runs the range checks and the calculation over a typed input.
func (e *Engine) ComputeInput(in domain.ProFormaInput) (*domain.ProFormaOutput, error) {
	if err := validation.ValidateInput(in); err != nil {
		e.logger.Debugf("input rejected: %v", err)
		return nil, err
	}
	return e.run(in), nil
}

func (e *Engine) run(in domain.ProFormaInput) *domain.ProFormaOutput {
	out := calculation.Format(e.calc.Calculate(in))
	return &out
}

// ComputeJSON is the byte-level boundary: it parses data as a JSON object
// and returns either the output body or the validation error body. A
// non-nil error means data was not a JSON object at all.
func ComputeJSON(data []byte) ([]byte, error) {
	doc, err := config.NewInputParser().ParseJSON(data)
	if err != nil {
		return nil, err
	}
	return json.Marshal(NewResult(Compute(doc)))
}

// Result is the tagged outcome of one computation: exactly one of Output
// and Err is set.
type Result struct {
	Output *domain.ProFormaOutput
	Err    *domain.ValidationError
}

// NewResult wraps the return values of Compute. Errors that are not
// validation errors cannot come out of Compute and are reported as a
// structural error with no fields.
func NewResult(out *domain.ProFormaOutput, err error) Result {
	if err == nil {
		return Result{Output: out}
	}
	if ve, ok := domain.AsValidationError(err); ok {
		return Result{Err: ve}
	}
	return Result{Err: domain.NewStructuralError(nil)}
}

// OK reports whether the computation succeeded.
func (r Result) OK() bool { return r.Err == nil }

// MarshalJSON renders the output or the error body, never both.
func (r Result) MarshalJSON() ([]byte, error) {
	if r.Err != nil {
		return json.Marshal(r.Err)
	}
	return json.Marshal(r.Output)
}
