package rpu

import (
	"fmt"

	"github.com/quietvoid/dovi-tool-sub001/bitio"
	"github.com/quietvoid/dovi-tool-sub001/rpu/extmetadata"
)

// DmDataKind distinguishes the two display-management metadata revisions.
// Per spec.md §9, these are modeled as two variants with per-variant
// allow-lists rather than a shared mutable flag.
type DmDataKind uint8

const (
	// V29 is CM v2.9: allowed levels {1,2,3,4,5,6,255}.
	V29 DmDataKind = iota
	// V40 is CM v4.0: allowed levels {1,2,5,6,8,9,10,11,254} plus the
	// optional set {3,15,16,17,18}. Indicated by a level-254 block.
	V40
)

func (k DmDataKind) String() string {
	if k == V40 {
		return "v4.0"
	}
	return "v2.9"
}

var v29AllowedLevels = map[uint8]bool{1: true, 2: true, 3: true, 4: true, 5: true, 6: true, 255: true}

var v40AllowedLevels = map[uint8]bool{
	1: true, 2: true, 5: true, 6: true, 8: true, 9: true, 10: true, 11: true, 254: true,
	3: true, 15: true, 16: true, 17: true, 18: true,
}

func allowedLevels(kind DmDataKind) map[uint8]bool {
	if kind == V40 {
		return v40AllowedLevels
	}
	return v29AllowedLevels
}

// InvalidBlockLevelError reports a block level that is not permitted in
// the CM version its containing RPU turned out to be. Its Error text is
// the literal message CLI tooling surfaces for this condition.
type InvalidBlockLevelError struct {
	Level uint8
	Kind  DmDataKind
}

func (e *InvalidBlockLevelError) Error() string {
	return fmt.Sprintf("Invalid block level %d for CM %s RPU", e.Level, e.Kind)
}

func (e *InvalidBlockLevelError) Unwrap() error { return ErrInvalidBlock }

// DmData is the extension-metadata-block container embedded in
// VdrDmData: a (kind, block list) pair with kind-specific level
// validation, matching WithExtMetadataBlocks in the original
// implementation.
type DmData struct {
	kind   DmDataKind
	blocks []extmetadata.Block
}

// Kind reports whether this container is CM v2.9 or v4.0.
func (d *DmData) Kind() DmDataKind { return d.kind }

// Blocks returns the extension metadata blocks: in stream order for a
// parsed container, re-sorted by (level, sort key) after each AddBlock.
func (d *DmData) Blocks() []extmetadata.Block { return d.blocks }

// AddBlock appends a block after validating it against this variant's
// allowed-level set, then re-sorts.
func (d *DmData) AddBlock(b extmetadata.Block) error {
	if !allowedLevels(d.kind)[b.Level()] {
		return &InvalidBlockLevelError{Level: b.Level(), Kind: d.kind}
	}
	if err := b.Validate(); err != nil {
		return err
	}
	d.blocks = append(d.blocks, b)
	extmetadata.SortBlocks(d.blocks)
	return nil
}

// RemoveLevel drops every block with the given level.
func (d *DmData) RemoveLevel(level uint8) {
	kept := d.blocks[:0]
	for _, b := range d.blocks {
		if b.Level() != level {
			kept = append(kept, b)
		}
	}
	d.blocks = kept
}

func parseDmData(r *bitio.Reader) (DmData, error) {
	numBlocks, err := r.GetUE()
	if err != nil {
		return DmData{}, err
	}

	if numBlocks > 0 && !r.Aligned() {
		pad := (8 - r.Pos()%8) % 8
		if err := r.Skip(pad); err != nil {
			return DmData{}, err
		}
	}

	blocks := make([]extmetadata.Block, 0, numBlocks)
	hasLevel254 := false

	for i := uint64(0); i < numBlocks; i++ {
		lengthBytes, err := r.GetUE()
		if err != nil {
			return DmData{}, err
		}
		level, err := r.Get8(8)
		if err != nil {
			return DmData{}, err
		}

		block, err := extmetadata.Parse(r, level, lengthBytes)
		if err != nil {
			return DmData{}, fmt.Errorf("%w: level %d: %v", ErrInvalidBlock, level, err)
		}

		padBits := lengthBytes*8 - block.RequiredBits()
		if err := r.Skip(int(padBits)); err != nil {
			return DmData{}, err
		}

		if level == 254 {
			hasLevel254 = true
		}
		blocks = append(blocks, block)
	}

	kind := V29
	if hasLevel254 {
		kind = V40
	}

	for _, b := range blocks {
		// Unrecognized levels are carried as Reserved blocks and kept as is.
		if _, ok := b.(*extmetadata.Reserved); ok {
			continue
		}
		if !allowedLevels(kind)[b.Level()] {
			return DmData{}, &InvalidBlockLevelError{Level: b.Level(), Kind: kind}
		}
	}

	return DmData{kind: kind, blocks: blocks}, nil
}

func (d *DmData) write(w *bitio.Writer) error {
	if err := w.PutUE(uint64(len(d.blocks))); err != nil {
		return err
	}
	if len(d.blocks) > 0 {
		w.Align()
	}

	for _, b := range d.blocks {
		if err := b.Validate(); err != nil {
			return err
		}
		if err := w.PutUE(b.BytesSize()); err != nil {
			return err
		}
		_ = w.PutN(uint64(b.Level()), 8)
		if err := b.Write(w); err != nil {
			return err
		}
		padBits := b.BytesSize()*8 - b.RequiredBits()
		_ = w.PutN(0, int(padBits))
	}

	return nil
}
