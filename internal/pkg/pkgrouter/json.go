package pkgrouter

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/biped-mathnews/slugline-web/internal/pkg/pkgerror"
)

const maxRequestBodyBytes = 64 * 1024

// ReadJSON decodes a single JSON object from the request body into dst.
// Unknown fields, trailing data and oversized bodies are rejected as an
// invalid format.
func ReadJSON(r *http.Request, dst any) error {
	if r.Body == nil {
		return pkgerror.NewInvalidFormat()
	}

	dec := json.NewDecoder(io.LimitReader(r.Body, maxRequestBodyBytes))
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		return pkgerror.NewInvalidFormat()
	}

	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return pkgerror.NewInvalidFormat()
	}

	return nil
}
