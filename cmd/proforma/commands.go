package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/rpgo/rental-proforma/internal/config"
	"github.com/rpgo/rental-proforma/internal/domain"
	"github.com/rpgo/rental-proforma/internal/output"
	"github.com/rpgo/rental-proforma/internal/proforma"
	"github.com/rpgo/rental-proforma/internal/server"
	"github.com/rpgo/rental-proforma/internal/validation"
	"github.com/spf13/cobra"
)

func newCalculateCmd(a *app) *cobra.Command {
	var format, inputFormat string
	cmd := &cobra.Command{
		Use:   "calculate [file|-]",
		Short: "Compute the pro forma for one input document",
		Long: `Reads an input document from a file, or from stdin when the argument
is "-" or omitted, and prints the pro forma. Validation errors are printed
as JSON and the command exits non-zero.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := output.Lookup(format); err != nil {
				return err
			}
			path := "-"
			if len(args) == 1 {
				path = args[0]
			}
			doc, err := loadDocument(cmd.InOrStdin(), path, inputFormat)
			if err != nil {
				return err
			}

			in, err := validation.Validate(doc)
			if err != nil {
				return a.reject(cmd.OutOrStdout(), err)
			}
			out, err := proforma.NewEngine(a.logger, a.settings.Engine.Debug).ComputeInput(*in)
			if err != nil {
				return a.reject(cmd.OutOrStdout(), err)
			}
			return output.Render(cmd.OutOrStdout(), out, format, output.GenerateAssumptions(*in))
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "json", "output format: console, csv, html, json, yaml")
	cmd.Flags().StringVar(&inputFormat, "input-format", config.FormatAuto, "input format: auto, json, yaml")
	return cmd
}

func newBatchCmd(a *app) *cobra.Command {
	var concurrency int
	cmd := &cobra.Command{
		Use:   "batch FILE...",
		Short: "Compute many input documents concurrently",
		Long: `Computes every input file and prints a JSON array with one entry per
file, in argument order: the output, or the validation error body.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			parser := config.NewInputParser()
			docs := make([]domain.Document, 0, len(args))
			for _, path := range args {
				doc, err := parser.LoadFromFile(path)
				if err != nil {
					return err
				}
				docs = append(docs, doc)
			}
			if concurrency <= 0 {
				concurrency = a.settings.Batch.Concurrency
			}
			engine := proforma.NewEngine(a.logger, a.settings.Engine.Debug)
			results, err := engine.ComputeAll(cmd.Context(), docs, concurrency)
			if err != nil {
				return fmt.Errorf("batch interrupted: %w", err)
			}
			data, err := json.MarshalIndent(results, "", "  ")
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s\n", data)
			return err
		},
	}
	cmd.Flags().IntVarP(&concurrency, "concurrency", "c", 0, "parallel computations (default from settings)")
	return cmd
}

func newServeCmd(a *app) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the calculator over HTTP",
		Long: `Routes:
  POST /api/calculate        input (bare or {"systemPrompt","input"}) -> pro forma
  POST /api/proforma         input -> {"proforma", "visualization"}
  POST /api/calculate/batch  array of inputs -> array of results
  GET  /healthz`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			settings := a.settings
			if addr != "" {
				settings.Server.Addr = addr
			}
			engine := proforma.NewEngine(a.logger, settings.Engine.Debug)
			return server.New(engine, settings, a.logger).Run(cmd.Context())
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from settings)")
	return cmd
}

func newExampleCmd(a *app) *cobra.Command {
	var asYAML bool
	cmd := &cobra.Command{
		Use:   "example",
		Short: "Print an example input document",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			format := config.FormatJSON
			if asYAML {
				format = config.FormatYAML
			}
			data, err := config.NewInputParser().MarshalExampleInput(format)
			if err != nil {
				return err
			}
			if _, err := cmd.OutOrStdout().Write(data); err != nil {
				return err
			}
			if format == config.FormatJSON {
				_, err = fmt.Fprintln(cmd.OutOrStdout())
			}
			return err
		},
	}
	cmd.Flags().BoolVar(&asYAML, "yaml", false, "print YAML instead of JSON")
	return cmd
}

func loadDocument(stdin io.Reader, path, format string) (domain.Document, error) {
	parser := config.NewInputParser()
	if path == "-" {
		return parser.LoadFromReader(stdin, format)
	}
	if format == "" || format == config.FormatAuto {
		return parser.LoadFromFile(path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", path, err)
	}
	return parser.Parse(data, format)
}

// reject prints a validation error body and returns errInvalidInput.
func (a *app) reject(w io.Writer, err error) error {
	ve, ok := domain.AsValidationError(err)
	if !ok {
		return err
	}
	a.logger.Debugf("input rejected: %v", ve)
	if err := output.RenderError(w, ve); err != nil {
		return err
	}
	return errInvalidInput
}
