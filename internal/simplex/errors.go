package simplex

import "errors"

var (
	// ErrInvalidDimension is returned when the maximum face dimension is negative.
	ErrInvalidDimension = errors.New("simplex: max dimension must be non-negative")

	// ErrUnknownCountingMode is returned for an unrecognized CountingMode.
	ErrUnknownCountingMode = errors.New("simplex: unknown face counting mode")

	// ErrFaceTooLarge is returned when inserting a face above the declared dimension.
	ErrFaceTooLarge = errors.New("simplex: face exceeds complex dimension")

	// ErrEmptyFace is returned when inserting a face with no vertices.
	ErrEmptyFace = errors.New("simplex: empty face")

	// ErrNonMonotone signals a face whose filtration is below one of its faces.
	ErrNonMonotone = errors.New("simplex: filtration is not monotone")
)
