package tensor

import "errors"

// ErrInvalidReshape is returned when Reshape is called with a shape whose
// total element count does not match the tensor's current size.
var ErrInvalidReshape = errors.New("segpipe: reshape must preserve element count")
