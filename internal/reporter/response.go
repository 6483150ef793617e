package reporter

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/kevinfinalboss/crmreports/pkg/types"
)

const (
	InvalidDateDescription   = "Invalid date format. Allowed date format: dd.mm.yyyy"
	NotAuthorizedDescription = "You are not authorized to get report."
)

// FromResult wraps a report or the error that prevented it into a response.
func FromResult(report *types.Report, err error) *types.Response {
	if err != nil {
		return FromError(err)
	}

	var content interface{}
	if report != nil {
		content = report.Content()
	}
	return types.NewResponse(types.StatusOK, content)
}

func FromError(err error) *types.Response {
	switch {
	case errors.Is(err, types.ErrInvalidDate):
		return withDescription(types.StatusBadRequest, InvalidDateDescription)
	case errors.Is(err, types.ErrCantGetData):
		return types.NewResponse(types.StatusBadRequest, nil)
	case errors.Is(err, types.ErrConnectionsFailed):
		return types.NewResponse(types.StatusUnauthorized, nil)
	case errors.Is(err, types.ErrNotImplemented):
		return types.NewResponse(types.StatusNotImplemented, nil)
	default:
		return types.NewResponse(types.StatusGatewayTimeout, nil)
	}
}

func BadRequest(description string) *types.Response {
	return withDescription(types.StatusBadRequest, description)
}

func NotAuthorized() *types.Response {
	return withDescription(types.StatusUnauthorized, NotAuthorizedDescription)
}

func InvalidDeadline(value string) *types.Response {
	return BadRequest(fmt.Sprintf("Invalid deadline value: %s", value))
}

func withDescription(status types.Status, description string) *types.Response {
	status.Description = description
	return types.NewResponse(status, nil)
}

// JSON renders the response keeping non-ASCII text and markup unescaped.
func JSON(response *types.Response) ([]byte, error) {
	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	encoder.SetEscapeHTML(false)
	encoder.SetIndent("", "  ")

	if err := encoder.Encode(response); err != nil {
		return nil, fmt.Errorf("failed to encode response: %w", err)
	}
	return buf.Bytes(), nil
}
