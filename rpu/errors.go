package rpu

import "errors"

// Sentinel errors returned at RPU parse/write boundaries (spec.md §6/§7).
var (
	ErrInvalidHeader        = errors.New("rpu: invalid header")
	ErrInvalidEmdf          = errors.New("rpu: invalid emdf container")
	ErrInvalidMagic         = errors.New("rpu: invalid magic")
	ErrCrcMismatch          = errors.New("rpu: crc mismatch")
	ErrOutOfBounds          = errors.New("rpu: out of bounds")
	ErrUnknownBlockLevel    = errors.New("rpu: unknown block level")
	ErrInvalidBlock         = errors.New("rpu: invalid block")
	ErrUnsupportedConversion = errors.New("rpu: unsupported conversion")
	ErrEmptyInput           = errors.New("rpu: empty input")
)
