package geoportal

import (
	"errors"
	"fmt"
)

var (
	ErrUnsupportedGeometryType = errors.New("unsupported geometry type")
	ErrUnsupportedLayerType    = errors.New("unsupported layer type")
	ErrUnsupportedColumns      = errors.New("unsupported columns")
	ErrUnsupportedCRS          = errors.New("unsupported CRS")
	ErrUnsupportedPrecision    = errors.New("unsupported precision")
	ErrNotImplemented          = errors.New("not implemented")
)

// StatusError reports a non-2xx response from the portal. Body holds an
// excerpt of the response body when one was readable.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("portal request failed: status %d", e.Code)
	}
	return fmt.Sprintf("portal request failed: status %d: %s", e.Code, e.Body)
}
