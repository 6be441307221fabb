package wall

import "errors"

var (
	// ErrSegmentNotFound indicates a SegmentID outside the arena.
	ErrSegmentNotFound = errors.New("wall: segment id out of range")
	// ErrSelfPair indicates an attempt to pair a segment with itself.
	ErrSelfPair = errors.New("wall: segment cannot pair with itself")
	// ErrAlreadyPaired indicates one side of a requested pair already has a partner.
	ErrAlreadyPaired = errors.New("wall: segment already paired")
	// ErrAsymmetricPair indicates A points at B but B does not point back at A.
	ErrAsymmetricPair = errors.New("wall: pairing is not symmetric")
	// ErrInvalidConfig indicates a processor configuration value is out of range.
	ErrInvalidConfig = errors.New("wall: invalid configuration")
)
