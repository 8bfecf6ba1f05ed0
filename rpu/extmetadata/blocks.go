// Package extmetadata implements the Dolby Vision RPU extension metadata
// blocks: a closed set of tagged variants sharing framing (declared byte
// length, level tag, body, alignment padding) but each with its own fixed
// grammar, byte size and required-bit count.
package extmetadata

import (
	"errors"
	"fmt"

	"github.com/quietvoid/dovi-tool-sub001/bitio"
)

// ErrInvalidBlock is returned when a block's Validate method rejects its
// own field values.
var ErrInvalidBlock = errors.New("extmetadata: invalid block")

// Block is the shared contract for every extension metadata block level.
type Block interface {
	// Level returns the ext_block_level tag (1-18, 254, 255, or, for a
	// Reserved block, the unrecognized level it was parsed with).
	Level() uint8

	// BytesSize returns the declared ext_block_length_bytes value.
	BytesSize() uint64

	// RequiredBits returns the number of bits the block's grammar
	// actually consumes; BytesSize()*8 - RequiredBits() is padded with
	// alignment zero bits.
	RequiredBits() uint64

	// SortKey orders blocks of the same kind against one another. Most
	// levels sort by level alone; level 2 additionally sorts by
	// target_max_pq and level 8 by target_display_index.
	SortKey() (uint8, uint16)

	// Write serializes the block body (not the length/level framing,
	// which the caller writes).
	Write(w *bitio.Writer) error

	// Validate enforces the block's numeric-range invariants.
	Validate() error
}

// Parse reads one extension metadata block body, given its declared
// level and byte length (both already consumed from the stream by the
// caller). Unknown levels are preserved verbatim as an opaque bit buffer.
func Parse(r *bitio.Reader, level uint8, lengthBytes uint64) (Block, error) {
	switch level {
	case 1:
		return parseLevel1(r)
	case 2:
		return parseLevel2(r)
	case 3:
		return parseLevel3(r)
	case 4:
		return parseLevel4(r)
	case 5:
		return parseLevel5(r)
	case 6:
		return parseLevel6(r)
	case 8:
		return parseLevel8(r, lengthBytes)
	case 9:
		return parseLevel9(r)
	case 10:
		return parseLevel10(r)
	case 11:
		return parseLevel11(r)
	case 15:
		return parseLevel15(r)
	case 16:
		return parseLevel16(r, lengthBytes)
	case 17:
		return parseLevel17(r)
	case 18:
		return parseLevel18(r)
	case 254:
		return parseLevel254(r)
	case 255:
		return parseLevel255(r)
	default:
		return parseReserved(r, level, lengthBytes)
	}
}

// SortBlocks sorts blocks by (Level, SortKey-second-component), matching
// WithExtMetadataBlocks::sort_blocks in the original implementation.
func SortBlocks(blocks []Block) {
	// Insertion sort: the block counts involved are tiny (at most a
	// couple dozen) and this keeps the comparator trivial to read.
	for i := 1; i < len(blocks); i++ {
		for j := i; j > 0; j-- {
			lv, lk := blocks[j-1].SortKey()
			rv, rk := blocks[j].SortKey()
			if lv < rv || (lv == rv && lk <= rk) {
				break
			}
			blocks[j-1], blocks[j] = blocks[j], blocks[j-1]
		}
	}
}

func validationError(level uint8, reason string) error {
	return fmt.Errorf("%w: level %d: %s", ErrInvalidBlock, level, reason)
}

// signExtend interprets the low `bits` bits of v as two's complement.
func signExtend(v uint64, bits int) int64 {
	mask := uint64(1) << uint(bits-1)
	return (int64(v) ^ int64(mask)) - int64(mask)
}

// truncate masks v down to its low `bits` bits, the inverse used when
// writing a signed field back as an unsigned bit pattern.
func truncate(v int64, bits int) uint64 {
	mask := uint64(1)<<uint(bits) - 1
	return uint64(v) & mask
}
