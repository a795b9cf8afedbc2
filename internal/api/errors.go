package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

var (
	// ErrNotFound is matched by errors.Is when the API answers 404.
	ErrNotFound = errors.New("not found")

	// ErrInvalidCNPJ is returned for CNPJs that do not have 14 digits, either
	// caught locally or rejected by the API with 400.
	ErrInvalidCNPJ = errors.New("invalid cnpj")
)

// StatusError is returned when the API answers with a non-2xx status.
type StatusError struct {
	Message    string
	StatusCode int
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api request failed (status %d)", e.StatusCode)
	}
	return fmt.Sprintf("api request failed (status %d): %s", e.StatusCode, e.Message)
}

// Is lets errors.Is match the sentinel errors by status code.
func (e *StatusError) Is(target error) bool {
	switch target {
	case ErrNotFound:
		return e.StatusCode == http.StatusNotFound
	case ErrInvalidCNPJ:
		return e.StatusCode == http.StatusBadRequest
	}
	return false
}

// errorBody is the error envelope the backend sends, e.g. {"erro": "CNPJ inválido"}.
type errorBody struct {
	Erro string `json:"erro"`
}

// maxErrorMessage caps the message length in runes.
const maxErrorMessage = 200

func newStatusError(status int, body []byte) *StatusError {
	var eb errorBody
	msg := ""
	if err := json.Unmarshal(body, &eb); err == nil && eb.Erro != "" {
		msg = eb.Erro
	} else {
		msg = strings.TrimSpace(string(body))
	}
	if r := []rune(msg); len(r) > maxErrorMessage {
		msg = string(r[:maxErrorMessage]) + "..."
	}
	return &StatusError{StatusCode: status, Message: msg}
}
