package extfmt

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	ErrUnsupportedFormat = errors.New("unsupported format")
	ErrImportUnsupported = errors.New("format does not support import")
)

// UnsupportedExtensionError is returned for an uploaded table whose extension cannot be read.
type UnsupportedExtensionError struct {
	Ext string
}

func (e *UnsupportedExtensionError) Error() string {
	return fmt.Sprintf("unsupported file type: %q (expected .csv, .tsv, .xlsx or .xls)", e.Ext)
}

// ImportError wraps a failure to decode an input document. Its message surfaces the cause.
type ImportError struct {
	Name  string
	Cause error
}

func (e *ImportError) Error() string {
	return fmt.Sprintf("failed to import %s: %s", e.Name, e.Cause.Error())
}

func (e *ImportError) Unwrap() error {
	return e.Cause
}

// IsInputError reports whether err was caused by bad caller input rather than a failure to
// produce the output document.
func IsInputError(err error) bool {
	cause := errors.Cause(err)
	if cause == ErrUnsupportedFormat || cause == ErrImportUnsupported {
		return true
	}
	switch cause.(type) {
	case *UnsupportedExtensionError, *ImportError:
		return true
	}
	return false
}
