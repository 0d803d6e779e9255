package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/rpgo/rental-proforma/internal/domain"
	"github.com/rpgo/rental-proforma/internal/output"
	"github.com/rpgo/rental-proforma/internal/proforma"
)

type messageBody struct {
	Message string `json:"message"`
}

type proformaBody struct {
	ProForma      *domain.ProFormaOutput `json:"proforma"`
	Visualization string                 `json:"visualization"`
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
}

// calculate accepts the bare input object or {"systemPrompt": ..., "input": {...}}.
func (s *Server) calculate(w http.ResponseWriter, r *http.Request) {
	doc, ok := s.readInput(w, r)
	if !ok {
		return
	}
	out, err := s.engine.Compute(doc)
	if err != nil {
		s.writeComputeError(w, r, err)
		return
	}
	s.writeJSON(w, r, http.StatusOK, out)
}

// proformaReport returns the output together with an HTML table of it.
func (s *Server) proformaReport(w http.ResponseWriter, r *http.Request) {
	doc, ok := s.readInput(w, r)
	if !ok {
		return
	}
	out, err := s.engine.Compute(doc)
	if err != nil {
		s.writeComputeError(w, r, err)
		return
	}
	table, err := output.HTMLTable(out)
	if err != nil {
		s.requestLogger(r).Errorf("failed to render visualization: %v", err)
		writeMessage(w, http.StatusInternalServerError, "failed to render visualization")
		return
	}
	s.writeJSON(w, r, http.StatusOK, proformaBody{ProForma: out, Visualization: table})
}

// calculateBatch accepts a JSON array of inputs and returns one result per item.
func (s *Server) calculateBatch(w http.ResponseWriter, r *http.Request) {
	body, ok := s.readBody(w, r)
	if !ok {
		return
	}
	docs, err := s.parser.ParseJSONBatch(body)
	if err != nil {
		writeMessage(w, http.StatusBadRequest, err.Error())
		return
	}
	if len(docs) > s.settings.Batch.MaxItems {
		writeMessage(w, http.StatusBadRequest, fmt.Sprintf("batch of %d items exceeds the limit of %d", len(docs), s.settings.Batch.MaxItems))
		return
	}
	results, err := s.engine.ComputeAll(r.Context(), docs, s.settings.Batch.Concurrency)
	if err != nil {
		writeMessage(w, http.StatusServiceUnavailable, err.Error())
		return
	}
	s.writeJSON(w, r, http.StatusOK, results)
}

func (s *Server) readInput(w http.ResponseWriter, r *http.Request) (domain.Document, bool) {
	body, ok := s.readBody(w, r)
	if !ok {
		return nil, false
	}
	doc, err := s.parser.ParseJSON(body)
	if err != nil {
		writeMessage(w, http.StatusBadRequest, err.Error())
		return nil, false
	}
	return unwrapEnvelope(doc), true
}

func (s *Server) readBody(w http.ResponseWriter, r *http.Request) ([]byte, bool) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeMessage(w, http.StatusRequestEntityTooLarge, fmt.Sprintf("request body exceeds %d bytes", tooLarge.Limit))
			return nil, false
		}
		writeMessage(w, http.StatusBadRequest, "failed to read request body")
		return nil, false
	}
	return body, true
}

// unwrapEnvelope returns the "input" object of an envelope request. A
// document that already has input sections is used as is.
func unwrapEnvelope(doc domain.Document) domain.Document {
	if _, bare := doc["property"]; bare {
		return doc
	}
	if in, ok := doc.Section("input"); ok {
		return in
	}
	return doc
}

func (s *Server) writeComputeError(w http.ResponseWriter, r *http.Request, err error) {
	if ve, ok := domain.AsValidationError(err); ok {
		s.requestLogger(r).Debugf("rejected input: %v", ve)
		s.writeJSON(w, r, http.StatusBadRequest, proforma.NewResult(nil, ve))
		return
	}
	s.requestLogger(r).Errorf("compute failed: %v", err)
	writeMessage(w, http.StatusInternalServerError, "internal server error")
}

// writeJSON encodes v before any header is sent, so an encoding failure
// still reaches the client as a 500.
func (s *Server) writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		s.requestLogger(r).Errorf("failed to encode response: %v", err)
		writeMessage(w, http.StatusInternalServerError, "failed to encode response")
		return
	}
	writeBody(w, status, body)
}

func writeMessage(w http.ResponseWriter, status int, msg string) {
	body, _ := json.Marshal(messageBody{Message: msg})
	writeBody(w, status, body)
}

func writeBody(w http.ResponseWriter, status int, body []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(append(body, '\n'))
}
