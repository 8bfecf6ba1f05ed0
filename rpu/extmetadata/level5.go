package extmetadata

import "github.com/quietvoid/dovi-tool-sub001/bitio"

// Level5 declares the active area of the frame as letterbox/pillarbox
// offsets from each edge, in pixels.
type Level5 struct {
	ActiveAreaLeftOffset   uint16
	ActiveAreaRightOffset  uint16
	ActiveAreaTopOffset    uint16
	ActiveAreaBottomOffset uint16
}

func parseLevel5(r *bitio.Reader) (Block, error) {
	left, err := r.Get16(13)
	if err != nil {
		return nil, err
	}
	right, err := r.Get16(13)
	if err != nil {
		return nil, err
	}
	top, err := r.Get16(13)
	if err != nil {
		return nil, err
	}
	bottom, err := r.Get16(13)
	if err != nil {
		return nil, err
	}
	return &Level5{
		ActiveAreaLeftOffset:   left,
		ActiveAreaRightOffset:  right,
		ActiveAreaTopOffset:    top,
		ActiveAreaBottomOffset: bottom,
	}, nil
}

// FromOffsets builds a Level5 block from the four edge offsets directly.
func FromOffsets(left, right, top, bottom uint16) *Level5 {
	return &Level5{
		ActiveAreaLeftOffset:   left,
		ActiveAreaRightOffset:  right,
		ActiveAreaTopOffset:    top,
		ActiveAreaBottomOffset: bottom,
	}
}

// GetOffsets returns the four edge offsets as (left, right, top, bottom).
func (b *Level5) GetOffsets() (left, right, top, bottom uint16) {
	return b.ActiveAreaLeftOffset, b.ActiveAreaRightOffset, b.ActiveAreaTopOffset, b.ActiveAreaBottomOffset
}

// SetOffsets overwrites all four edge offsets at once.
func (b *Level5) SetOffsets(left, right, top, bottom uint16) {
	b.ActiveAreaLeftOffset = left
	b.ActiveAreaRightOffset = right
	b.ActiveAreaTopOffset = top
	b.ActiveAreaBottomOffset = bottom
}

// Crop zeroes out the active area, equivalent to disabling letterbox bars.
func (b *Level5) Crop() {
	b.SetOffsets(0, 0, 0, 0)
}

func (b *Level5) Level() uint8            { return 5 }
func (b *Level5) BytesSize() uint64       { return 7 }
func (b *Level5) RequiredBits() uint64    { return 52 }
func (b *Level5) SortKey() (uint8, uint16) { return b.Level(), 0 }

func (b *Level5) Write(w *bitio.Writer) error {
	if err := b.Validate(); err != nil {
		return err
	}
	_ = w.PutN(uint64(b.ActiveAreaLeftOffset), 13)
	_ = w.PutN(uint64(b.ActiveAreaRightOffset), 13)
	_ = w.PutN(uint64(b.ActiveAreaTopOffset), 13)
	_ = w.PutN(uint64(b.ActiveAreaBottomOffset), 13)
	return nil
}

func (b *Level5) Validate() error {
	const max = 1<<13 - 1
	if b.ActiveAreaLeftOffset > max || b.ActiveAreaRightOffset > max ||
		b.ActiveAreaTopOffset > max || b.ActiveAreaBottomOffset > max {
		return validationError(b.Level(), "13-bit field out of range")
	}
	return nil
}
