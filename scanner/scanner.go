// Package scanner splits a concatenated `.bin` sidecar of HEVC-framed RPU
// NALs on `00 00 00 01` start codes and parses each one, fanning the
// parse step out across goroutines.
package scanner

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/quietvoid/dovi-tool-sub001/container/hevc"
	"github.com/quietvoid/dovi-tool-sub001/rpu"
	"golang.org/x/sync/errgroup"
)

// ErrNoRpuFound is returned for an empty input or one with no start code.
var ErrNoRpuFound = errors.New("scanner: no rpu found")

var startCode = []byte{0x00, 0x00, 0x00, 0x01}

// Result is the outcome of scanning one sidecar buffer.
type Result struct {
	// RPUs holds the successfully parsed RPU at each detected slice
	// index, or nil at the index of every slice that failed to parse.
	RPUs []*rpu.RPU

	// FirstErr and FirstErrIndex record the first parse failure
	// encountered, if any.
	FirstErr      error
	FirstErrIndex int
}

// Slices locates every RPU NAL between `00 00 00 01` start codes in data.
// If the byte preceding the next start code is itself zero (the 4-byte
// code was preceded by an extra zero), the slice is shortened by one
// byte, matching the original file-based scanner's trim rule.
func Slices(data []byte) ([][]byte, error) {
	starts := indexAll(data, startCode)
	if len(starts) == 0 {
		return nil, ErrNoRpuFound
	}

	slices := make([][]byte, 0, len(starts))
	for i, start := range starts {
		begin := start + len(startCode)
		end := len(data)
		if i+1 < len(starts) {
			end = starts[i+1]
			if end > begin && data[end-1] == 0x00 {
				end--
			}
		}
		if begin >= end {
			continue
		}
		slices = append(slices, data[begin:end])
	}
	if len(slices) == 0 {
		return nil, ErrNoRpuFound
	}
	return slices, nil
}

// ParseAll scans data and parses every detected slice concurrently,
// preserving result order. The first parse error is recorded; scanning
// does not abort on it.
func ParseAll(ctx context.Context, data []byte) (*Result, error) {
	slices, err := Slices(data)
	if err != nil {
		return nil, err
	}

	res := &Result{RPUs: make([]*rpu.RPU, len(slices)), FirstErrIndex: -1}

	g, _ := errgroup.WithContext(ctx)
	errs := make([]error, len(slices))

	for i, slice := range slices {
		i, slice := i, slice
		g.Go(func() error {
			p, err := hevc.Parse(slice)
			if err != nil {
				errs[i] = fmt.Errorf("scanner: slice %d: %w", i, err)
				return nil
			}
			res.RPUs[i] = p
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	for i, e := range errs {
		if e != nil {
			res.FirstErr = e
			res.FirstErrIndex = i
			break
		}
	}

	return res, nil
}

// indexAll returns the start offset of every non-overlapping occurrence
// of sep in data, in order.
func indexAll(data, sep []byte) []int {
	var offsets []int
	offset := 0
	for {
		i := bytes.Index(data[offset:], sep)
		if i < 0 {
			return offsets
		}
		offsets = append(offsets, offset+i)
		offset += i + len(sep)
	}
}
