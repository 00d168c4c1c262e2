package baseband

import "errors"

// Error kinds returned by this module's packages. Callers may test for these
// with errors.Is; packages wrap them with github.com/pkg/errors to attach
// field- or frame-specific context.
var (
	// ErrShortRead is returned when a reader yields fewer bytes than a
	// fixed-size structure requires.
	ErrShortRead = errors.New("baseband: short read")

	// ErrEndOfStream is returned by from-file constructors when a read
	// encounters EOF at a structure boundary.
	ErrEndOfStream = errors.New("baseband: end of stream")

	// ErrBadSync is returned by Verify when a header's sync pattern does not
	// match its variant's canonical constant.
	ErrBadSync = errors.New("baseband: bad sync pattern")

	// ErrFieldOverflow is returned when a value to be written to a bit field
	// does not fit within the field's width.
	ErrFieldOverflow = errors.New("baseband: field overflow")

	// ErrMissingValue is returned when a required field has neither an
	// explicit value nor a default.
	ErrMissingValue = errors.New("baseband: missing value")

	// ErrMissingFrameRate is returned when a time/frame_nr conversion needs a
	// frame rate that cannot be derived from the header.
	ErrMissingFrameRate = errors.New("baseband: missing frame rate")

	// ErrBadBCD is returned when a binary-coded-decimal nibble exceeds 9.
	ErrBadBCD = errors.New("baseband: invalid BCD digit")

	// ErrUnsupportedLayout is returned when a (channels, bits-per-sample,
	// fanout) triple has no registered codec.
	ErrUnsupportedLayout = errors.New("baseband: unsupported payload layout")

	// ErrShapeMismatch is returned when a data array's geometry is
	// inconsistent with a header's channel count or complex-data flag.
	ErrShapeMismatch = errors.New("baseband: shape mismatch")

	// ErrIncompleteFrameSet is returned when fewer threads than requested
	// were collected for a FrameSet without hitting EOF.
	ErrIncompleteFrameSet = errors.New("baseband: incomplete frame set")
)
