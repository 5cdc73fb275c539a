package export

import (
	"errors"
	"fmt"
)

// Sentinel causes wrapped by RenderError.
var (
	ErrEmptyResult     = errors.New("there is no enhanced CV to export")
	ErrElementNotFound = errors.New("result element not found in page")
)

// RenderError is returned by every failing step of an export.
type RenderError struct {
	Op  string // prepare, rasterize, layout, compose, write
	Err error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("export %s: %v", e.Op, e.Err)
}

func (e *RenderError) Unwrap() error {
	return e.Err
}
