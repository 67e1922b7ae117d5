package httpclient

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	apperrors "github.com/rumibeauty/storefront/pkg/errors"
)

// remoteErrorBody is the structured error shape returned by the hosted
// services the storefront consumes.
type remoteErrorBody struct {
	Error *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
	// Some hosted endpoints return a flat {"message": "..."} body instead.
	Message string `json:"message"`
}

// ParseResponseError reads the body of a non-2xx HTTP response and translates
// it into an AppError. The response body is fully consumed and closed.
func ParseResponseError(resp *http.Response, serviceName string) error {
	defer func() { _ = resp.Body.Close() }()

	bodyBytes, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return fmt.Errorf("%s returned status %d (failed to read body: %w)", serviceName, resp.StatusCode, err)
	}

	message := string(bodyBytes)
	var remote remoteErrorBody
	if json.Unmarshal(bodyBytes, &remote) == nil {
		if remote.Error != nil {
			message = remote.Error.Message
		} else if remote.Message != "" {
			message = remote.Message
		}
	}

	qualified := fmt.Sprintf("%s: %s", serviceName, message)

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return apperrors.NotFound(serviceName, message)
	case resp.StatusCode == http.StatusBadRequest:
		return apperrors.InvalidInput(qualified)
	case resp.StatusCode == http.StatusUnauthorized:
		return apperrors.Unauthorized(qualified)
	case resp.StatusCode == http.StatusForbidden:
		return apperrors.PermissionDenied(serviceName)
	case resp.StatusCode == http.StatusConflict:
		return apperrors.Conflict(qualified)
	case resp.StatusCode >= 500:
		return fmt.Errorf("%s server error (%d): %s", serviceName, resp.StatusCode, message)
	default:
		return fmt.Errorf("%s returned status %d: %s", serviceName, resp.StatusCode, message)
	}
}
