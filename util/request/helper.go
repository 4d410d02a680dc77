package request

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/willrr/ha-toyota-willrr/util"
)

// Helper provides utility primitives for JSON apis
type Helper struct {
	*http.Client
}

// NewHelper creates an http helper with logging and metrics
func NewHelper(log *util.Logger) *Helper {
	return &Helper{
		Client: &http.Client{
			Timeout:   Timeout,
			Transport: NewTripper(log, http.DefaultTransport),
		},
	}
}

// DoBody executes the request and returns the response body
func (r *Helper) DoBody(req *http.Request) ([]byte, error) {
	resp, err := r.Do(req)
	if err != nil {
		return nil, err
	}

	return ReadBody(resp)
}

// GetBody executes a GET request and returns the response body
func (r *Helper) GetBody(uri string) ([]byte, error) {
	resp, err := r.Get(uri)
	if err != nil {
		return nil, err
	}

	return ReadBody(resp)
}

// DoJSON executes the request and decodes the JSON response
func (r *Helper) DoJSON(req *http.Request, res interface{}) error {
	resp, err := r.Do(req)
	if err != nil {
		return err
	}

	return DecodeJSON(resp, res)
}

// GetJSON executes a GET request and decodes the JSON response
func (r *Helper) GetJSON(uri string, res interface{}) error {
	req, err := New(http.MethodGet, uri, nil, AcceptJSON)
	if err != nil {
		return err
	}

	return r.DoJSON(req, res)
}

// ReadBody reads the response and returns its body
func ReadBody(resp *http.Response) ([]byte, error) {
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return body, NewStatusError(resp)
	}

	return body, nil
}

// DecodeJSON reads the response and decodes its JSON body
func DecodeJSON(resp *http.Response, res interface{}) error {
	body, err := ReadBody(resp)
	if err != nil {
		return err
	}

	if err := json.Unmarshal(body, res); err != nil {
		return fmt.Errorf("decode: %w", err)
	}

	return nil
}
