package profile

import (
	"errors"
	"fmt"

	"github.com/quietvoid/dovi-tool-sub001/rpu"
)

// ConversionMode is the external (u8) conversion selector from spec.md
// §4.7.
type ConversionMode uint8

const (
	Lossless ConversionMode = 0
	ToMel    ConversionMode = 1
	To81     ConversionMode = 2
	// to81Alias is external value 3, an alias of To81: Convert accepts it
	// from the same origins and routes it to the same state. The CLI's
	// mode table does not expose it.
	to81Alias              ConversionMode = 3
	To84                   ConversionMode = 4
	To81MappingPreserved   ConversionMode = 5
)

// ErrUnsupportedConversion is returned for an origin/target combination
// the state machine does not define.
var ErrUnsupportedConversion = rpu.ErrUnsupportedConversion

// Convert mutates p in place according to mode. Each conversion is total:
// it either fully succeeds, leaving a consistent model, or returns an
// error and leaves p untouched.
func Convert(p *rpu.RPU, mode ConversionMode) error {
	origin := DetectProfile(p)

	switch mode {
	case Lossless:
		return nil

	case ToMel:
		if origin != Profile7FEL {
			return unsupported(origin, "to-mel")
		}
		return convertToMel(p)

	case To81, to81Alias:
		if origin != Profile7FEL && origin != Profile7MEL && origin != Profile5 {
			return unsupported(origin, "to-81")
		}
		return convertTo81(p, false)

	case To84:
		if origin != Profile7FEL && origin != Profile7MEL && origin != Profile5 && origin != Profile81 {
			return unsupported(origin, "to-84")
		}
		return convertTo84(p)

	case To81MappingPreserved:
		if origin != Profile7FEL {
			return unsupported(origin, "to-81-mapping-preserved")
		}
		if err := convertToMel(p); err != nil {
			return err
		}
		return convertTo81(p, true)

	default:
		return fmt.Errorf("%w: unknown conversion mode %d", ErrUnsupportedConversion, mode)
	}
}

func unsupported(origin Profile, target string) error {
	return fmt.Errorf("%w: profile %d -> %s", ErrUnsupportedConversion, origin, target)
}

// convertToMel drops the NLQ section and the FEL flag, turning a profile
// 7 FEL RPU into profile 7 MEL.
func convertToMel(p *rpu.RPU) error {
	if p.NlqData == nil {
		return errors.New("profile: to-mel: source rpu has no nlq data")
	}
	p.Header.ElSpatialResamplingFilterFlag = false
	p.Header.NlqMethodIdc = -1
	p.NlqData = nil
	return nil
}

// convertTo81 rewrites DM matrices to the profile 8.1 defaults, clears
// NLQ/FEL state, and (unless preserveMapping is set) replaces the data
// mapping with the identity curve per component.
func convertTo81(p *rpu.RPU, preserveMapping bool) error {
	p.Header.VdrRpuProfile = 8
	p.Header.VdrRpuLevel = 1
	p.Header.ElSpatialResamplingFilterFlag = false
	p.Header.NlqMethodIdc = -1
	p.NlqData = nil

	if p.VdrDmData != nil {
		ApplyDefaultMatrices(p.VdrDmData, Profile81)
	}

	if !preserveMapping && p.DataMapping != nil {
		resetToIdentity(p.DataMapping, p.Header)
	}

	return nil
}

func convertTo84(p *rpu.RPU) error {
	p.Header.VdrRpuProfile = 8
	p.Header.VdrRpuLevel = 4
	p.Header.ElSpatialResamplingFilterFlag = false
	p.Header.NlqMethodIdc = -1
	p.NlqData = nil

	if p.VdrDmData != nil {
		ApplyDefaultMatrices(p.VdrDmData, Profile84)
	}
	if p.DataMapping != nil {
		resetToIdentity(p.DataMapping, p.Header)
	}

	return nil
}

// resetToIdentity replaces every component's mapping curve with two
// identical unity polynomial segments split at the mid-range pivot: the
// wire grammar's num_pivots_minus2 field has no representation for a
// single-segment, zero-pivot curve, so two identical affine segments is
// the minimal valid encoding of an identity mapping (slope 1, offset 0
// on both sides of the pivot composes to the identity function overall).
func resetToIdentity(dm *rpu.DataMapping, h *rpu.Header) {
	slope := int64(1) << uint(h.CoefficientLog2Denom)
	bits := h.CoefficientLog2Denom + 1
	if h.CoefficientDataType == 1 {
		bits = 32
	}
	pivot := uint64(1) << uint(h.VdrBitDepthMinus8+8-1)

	for i := range dm.Components {
		dm.Components[i] = &rpu.ComponentMapping{
			MappingIdc:  0,
			PivotValues: []uint64{pivot},
			PolySegments: []rpu.PolySegment{
				{
					OrderMinus1: 0,
					Coefficients: []rpu.Coefficient{
						{Value: 0, Bits: bits},
						{Value: slope, Bits: bits},
					},
				},
				{
					OrderMinus1: 0,
					Coefficients: []rpu.Coefficient{
						{Value: 0, Bits: bits},
						{Value: slope, Bits: bits},
					},
				},
			},
		}
	}
}
