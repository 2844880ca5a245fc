package gallformers

import "github.com/kailas-cloud/gallformers/internal/domain"

// Sentinel errors re-exported from the domain layer.
// Use errors.Is() to check.
var (
	ErrNotFound        = domain.ErrNotFound
	ErrAlreadyExists   = domain.ErrAlreadyExists
	ErrInvalidInput    = domain.ErrInvalidInput
	ErrDataUnavailable = domain.ErrDataUnavailable
)
