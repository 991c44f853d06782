package httpclient

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	apperrors "github.com/gcg-eyewear/storefront/pkg/errors"
)

// detailResponse mirrors the error body shape returned by the eyewear
// backend: {"detail": "..."}.
type detailResponse struct {
	Detail string `json:"detail"`
}

// ParseResponseError reads the body of a non-2xx HTTP response and translates
// it into an AppError. When the body carries the backend's detail field, the
// message is preserved; otherwise a generic error with the status code and
// raw body is returned.
//
// The caller should only invoke this when resp.StatusCode indicates an error.
// The response body is fully consumed and closed.
func ParseResponseError(resp *http.Response) error {
	defer func() { _ = resp.Body.Close() }()

	bodyBytes, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20)) // 1 MB limit
	if err != nil {
		return fmt.Errorf("backend returned status %d (failed to read body: %w)", resp.StatusCode, err)
	}

	message := ""
	var detail detailResponse
	if json.Unmarshal(bodyBytes, &detail) == nil && detail.Detail != "" {
		message = detail.Detail
	}

	return mapStatusError(resp.StatusCode, message, string(bodyBytes))
}

func mapStatusError(status int, message, rawBody string) error {
	if message == "" {
		message = fmt.Sprintf("backend returned status %d: %s", status, rawBody)
	}

	switch {
	case status == http.StatusNotFound:
		return &apperrors.AppError{
			Code:    "NOT_FOUND",
			Message: message,
			Status:  http.StatusNotFound,
			Err:     apperrors.ErrNotFound,
		}
	case status == http.StatusBadRequest:
		return apperrors.InvalidInput(message)
	case status == http.StatusUnauthorized:
		return apperrors.Unauthorized(message)
	case status == http.StatusForbidden:
		return apperrors.Forbidden(message)
	case status == http.StatusConflict:
		return apperrors.Conflict(message)
	case status == http.StatusServiceUnavailable:
		return apperrors.Unavailable(message)
	case status >= 500:
		return fmt.Errorf("backend server error (%d): %s", status, message)
	default:
		return &apperrors.AppError{
			Code:    "BACKEND_ERROR",
			Message: message,
			Status:  status,
		}
	}
}

// IsClientError returns true if the HTTP status code is a 4xx client error.
func IsClientError(status int) bool {
	return status >= 400 && status < 500
}
