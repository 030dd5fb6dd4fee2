package nn

import "github.com/pkg/errors"

// Sentinel errors returned by network construction and evaluation.
//
// Returned errors wrap these with context; compare with errors.Is.
var (
	ErrInvalidConstruction = errors.New("invalid network construction")
	ErrEmptyNetwork        = errors.New("network has no layers")
	ErrShapeMismatch       = errors.New("shape mismatch")
)
