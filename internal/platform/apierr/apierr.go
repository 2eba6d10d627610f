// Package apierr concentra el mapeo error -> respuesta HTTP de la API JSON.
package apierr

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"

	"household-illness-tracker/internal/ports/store"
	"household-illness-tracker/internal/querycache"
)

var ErrInvalidInput = errors.New("invalid input")

// ValidationError junta los mensajes por campo de una validación fallida.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return fmt.Sprintf("%s: %s", ErrInvalidInput, strings.Join(parts, ", "))
}

func (e *ValidationError) Unwrap() error { return ErrInvalidInput }

// Validator acumula errores por campo.
type Validator struct {
	fields map[string]string
}

func (v *Validator) Add(field, msg string) {
	if v.fields == nil {
		v.fields = make(map[string]string)
	}
	if _, ok := v.fields[field]; !ok {
		v.fields[field] = msg
	}
}

// Required agrega "required" si value está vacío.
func (v *Validator) Required(field, value string) {
	if strings.TrimSpace(value) == "" {
		v.Add(field, "required")
	}
}

// Err devuelve *ValidationError si hubo algún error, nil si no.
func (v *Validator) Err() error {
	if len(v.fields) == 0 {
		return nil
	}
	return &ValidationError{Fields: v.fields}
}

// FieldErrors extrae los mensajes por campo, si err es de validación.
func FieldErrors(err error) map[string]string {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Fields
	}
	return nil
}

// ErrorResponse es el cuerpo de error de la API.
type ErrorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

// Status traduce err al status HTTP.
func Status(err error) int {
	switch {
	case errors.Is(err, ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, store.ErrNotFound), errors.Is(err, querycache.ErrDisabled):
		return http.StatusNotFound
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusBadGateway
	}
}

func WriteError(w http.ResponseWriter, err error) {
	status := Status(err)
	res := ErrorResponse{Error: err.Error(), Fields: FieldErrors(err)}
	switch status {
	case http.StatusNotFound:
		res.Error = "not found"
	case http.StatusBadGateway, http.StatusGatewayTimeout:
		res.Error = "store unavailable"
	}
	WriteJSON(w, status, res)
}

func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
