package router

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/julienschmidt/httprouter"

	"github.com/shandysiswandi/twofa/internal/pkg/goerror"
)

// Request bodies above this size fail to decode.
const maxBodyBytes = 1 << 20

// Request is what a Handler receives: the incoming request plus helpers that
// turn bad input into goerror values.
type Request struct {
	*http.Request
}

// GetParam returns the named path parameter, or "".
func (r *Request) GetParam(key string) string {
	return httprouter.ParamsFromContext(r.Context()).ByName(key)
}

// GetParamInt64 parses the named path parameter as a base-10 int64.
func (r *Request) GetParamInt64(key string) (int64, error) {
	n, err := strconv.ParseInt(r.GetParam(key), 10, 64)
	if err != nil {
		return 0, goerror.NewInvalidFormat("param " + key + " must be an integer")
	}
	return n, nil
}

// GetHeader returns the header value without surrounding spaces.
func (r *Request) GetHeader(key string) string {
	return strings.TrimSpace(r.Header.Get(key))
}

// DecodeBody strictly decodes exactly one JSON object into dst: unknown
// fields, trailing data and empty bodies are rejected.
func (r *Request) DecodeBody(dst any) error {
	if r == nil || r.Request == nil || r.Body == nil {
		return goerror.NewInvalidFormat()
	}

	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		return goerror.NewInvalidFormat()
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return goerror.NewInvalidFormat()
	}

	return nil
}
