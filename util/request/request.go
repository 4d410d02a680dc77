package request

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/thoas/go-funk"
)

// Timeout is the default request timeout used by the Helper
var Timeout = 10 * time.Second

// JSONEncoding specifies application/json for request and response
var JSONEncoding = map[string]string{
	"Content-Type": "application/json",
	"Accept":       "application/json",
}

// AcceptJSON accepts application/json
var AcceptJSON = map[string]string{
	"Accept": "application/json",
}

// New builds an HTTP request with the given headers
func New(method, uri string, body io.Reader, headers ...map[string]string) (*http.Request, error) {
	req, err := http.NewRequest(method, uri, body)
	if err != nil {
		return nil, fmt.Errorf("new request: %w", err)
	}

	for _, headers := range headers {
		for k, v := range headers {
			req.Header.Set(k, v)
		}
	}

	return req, nil
}

// MarshalJSON marshals the data and returns a reader suitable as request body
func MarshalJSON(data interface{}) (io.Reader, error) {
	body, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}

	return bytes.NewReader(body), nil
}

// StatusError indicates an unsuccessful http response
type StatusError struct {
	resp *http.Response
}

// NewStatusError creates a status error from the response
func NewStatusError(resp *http.Response) StatusError {
	return StatusError{resp: resp}
}

func (e StatusError) Error() string {
	return fmt.Sprintf("unexpected status: %d (%s)", e.resp.StatusCode, http.StatusText(e.resp.StatusCode))
}

// Response returns the response with the unexpected error
func (e StatusError) Response() *http.Response {
	return e.resp
}

// StatusCode returns the response's status code
func (e StatusError) StatusCode() int {
	return e.resp.StatusCode
}

// HasStatus returns true if the response's status code matches any of the given codes
func (e StatusError) HasStatus(codes ...int) bool {
	return funk.ContainsInt(codes, e.resp.StatusCode)
}
