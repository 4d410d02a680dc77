package toyota

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"

	"github.com/willrr/ha-toyota-willrr/api"
	"github.com/willrr/ha-toyota-willrr/util/request"
)

// classify maps transport and protocol failures onto the upstream error
// kinds of the api package. Errors without a known kind pass through
// unchanged and count as general api errors.
func classify(err error) error {
	if err == nil {
		return nil
	}

	var se request.StatusError
	if errors.As(err, &se) {
		switch {
		case se.HasStatus(http.StatusUnauthorized, http.StatusForbidden):
			return fmt.Errorf("%w: status %d", api.ErrAuthFail, se.StatusCode())
		case se.StatusCode() >= http.StatusInternalServerError:
			return fmt.Errorf("%w: status %d", api.ErrInternal, se.StatusCode())
		default:
			return err
		}
	}

	// cycle budget exceeded or cancelled- keep as context error
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) && opErr.Op == "dial" {
		return fmt.Errorf("%w: %v", api.ErrConnectTimeout, err)
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return fmt.Errorf("%w: %v", api.ErrReadTimeout, err)
	}

	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &syntaxErr) || errors.As(err, &typeErr) {
		return fmt.Errorf("%w: %v", api.ErrValidation, err)
	}

	return err
}
