// Package errors collects the sentinel errors shared across segpipe's
// subpackages. Package-local errors that only make sense next to the type
// that raises them (such as tensor.ErrInvalidReshape) stay colocated in
// their own package instead of living here.
package errors

import "errors"

var (
	// ErrEmptyFileList is returned when an iterator is constructed over
	// zero filename pairs.
	ErrEmptyFileList = errors.New("segpipe: file list must not be empty")
	// ErrInvalidBatchSize is returned when a provider is constructed with
	// a non-positive batch size.
	ErrInvalidBatchSize = errors.New("segpipe: batch size must be positive")
	// ErrInvalidNumClasses is returned when a component requiring a class
	// count is constructed with a non-positive value.
	ErrInvalidNumClasses = errors.New("segpipe: num classes must be positive")
	// ErrAllZeroWeights is returned when every weight supplied to a
	// weighted-random iterator normalizes to zero.
	ErrAllZeroWeights = errors.New("segpipe: weights must not all be zero")
	// ErrWeightLengthMismatch is returned when the weight vector length
	// does not match the file list length.
	ErrWeightLengthMismatch = errors.New("segpipe: weights length must match files length")
	// ErrDimensionMismatch is returned when an augmentor that requires
	// geometric coherence is handed an image/target pair of differing
	// dimensions.
	ErrDimensionMismatch = errors.New("segpipe: image and target dimensions differ")
	// ErrUnmappedColor is returned by ColorMapLoader when a decoded pixel
	// has no entry in the color table.
	ErrUnmappedColor = errors.New("segpipe: unmapped color in target image")
	// ErrNoImageData is returned when the codec facade cannot open or
	// decode a file, or decodes an image with zero width or height.
	ErrNoImageData = errors.New("segpipe: decoder returned no image data")
	// ErrInvalidValueTable is returned when a ValueMapLoader is built from
	// a table whose length is not exactly 256.
	ErrInvalidValueTable = errors.New("segpipe: value map table must have exactly 256 entries")
	// ErrInvalidLabelRemapTable is returned when NewLabelRemap is given a
	// table of unexpected length.
	ErrInvalidLabelRemapTable = errors.New("segpipe: label remap table has unexpected length")
	// ErrBatchAborted is returned to the consumer when an earlier batch
	// assembly failed inside the prefetch worker.
	ErrBatchAborted = errors.New("segpipe: batch assembly failed")
	// ErrClosed is returned by operations attempted after Provider.Close.
	ErrClosed = errors.New("segpipe: provider is closed")
)
