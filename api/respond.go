package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/p-miano/portfolio-api/errs"
	"github.com/rs/zerolog"
)

const maxRequestBodyBytes = 1 << 20

type Responder struct {
	logger zerolog.Logger
}

func NewResponder(logger zerolog.Logger) Responder {
	return Responder{logger}
}

// writeJSON sets the content type before the status line so the header is
// actually sent.
func (r Responder) writeJSON(w http.ResponseWriter, status int, data any) {
	jsonData, err := json.Marshal(data)
	if err != nil {
		r.logger.Error().Err(err).Msg("error marshaling response data")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if _, err := w.Write(jsonData); err != nil {
		r.logger.Error().Err(err).Msg("error writing response")
	}
}

func (r Responder) WriteJSON(w http.ResponseWriter, data any) {
	r.writeJSON(w, http.StatusOK, data)
}

func (r Responder) WriteCreated(w http.ResponseWriter, data any) {
	r.writeJSON(w, http.StatusCreated, data)
}

func (r Responder) WriteNoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

func (r Responder) WriteError(w http.ResponseWriter, err error) {
	var apiErr *errs.ApiErr

	// For unexpected errors, log and return generic internal error
	if !errors.As(err, &apiErr) || apiErr.StatusCode >= http.StatusInternalServerError {
		event := r.logger.Error()
		if apiErr != nil {
			event = event.Str("fullError", apiErr.GetFullError())
		}
		event.Err(err).Msg("request failed")
		r.writeJSON(w, errs.StatusOf(err), ErrorResponse{
			Error:   "Internal Server Error",
			Message: "An unexpected error occurred",
			Status:  "error",
		})
		return
	}

	response := ErrorResponse{
		Error:   apiErr.Message(),
		Status:  "error",
		Field:   apiErr.Field,
		Details: apiErr.Details,
		Errors:  apiErr.Fields,
	}
	r.writeJSON(w, apiErr.StatusCode, response)
}

// decodeJSON reads a single JSON object into dst, rejecting unknown shapes
// and oversized bodies.
func decodeJSON(w http.ResponseWriter, req *http.Request, dst any) error {
	body := http.MaxBytesReader(w, req.Body, maxRequestBodyBytes)
	decoder := json.NewDecoder(body)
	if err := decoder.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return errs.NewMalformedPayloadError("JSON", errors.New("request body is empty"))
		}
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) && typeErr.Field != "" {
			return errs.NewFieldError(typeErr.Field, fmt.Sprintf("%s must be %s", typeErr.Field, jsonKind(typeErr.Type)))
		}
		return errs.NewInvalidJSONError(err)
	}
	if decoder.More() {
		return errs.NewInvalidJSONError(errors.New("request body must contain a single JSON object"))
	}
	return nil
}

// jsonKind names t the way a JSON client would.
func jsonKind(t reflect.Type) string {
	if t == nil {
		return "a valid value"
	}
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	switch t.Kind() {
	case reflect.String:
		return "a string"
	case reflect.Bool:
		return "a boolean"
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return "an integer"
	case reflect.Float32, reflect.Float64:
		return "a number"
	case reflect.Slice, reflect.Array:
		return "an array"
	case reflect.Map, reflect.Struct:
		return "an object"
	default:
		return "a valid value"
	}
}

// urlID parses a positive numeric path parameter.
func urlID(req *http.Request, param string) (uint, error) {
	raw := chi.URLParam(req, param)
	if raw == "" {
		return 0, errs.NewBadRequestError(fmt.Sprintf("missing %s", param))
	}
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, errs.NewBadRequestError(fmt.Sprintf("invalid %s", param))
	}
	return uint(id), nil
}
