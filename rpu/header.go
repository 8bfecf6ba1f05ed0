package rpu

import (
	"fmt"

	"github.com/quietvoid/dovi-tool-sub001/bitio"
)

// rpuNalPrefix is the fixed leading byte value (decimal 25 / 0x19) every
// RPU payload starts with, shared by the HEVC and AV1 container forms.
const rpuNalPrefix = 25

// Header carries the profile/level selection, coefficient representation
// and presence flags that determine which sections follow it.
type Header struct {
	RpuNalPrefix uint8
	RpuType      uint8
	RpuFormat    uint16

	VdrRpuProfile uint8
	VdrRpuLevel   uint8

	VdrSeqInfoPresentFlag bool

	ChromaResamplingExplicitFilterFlag bool
	CoefficientDataType                uint8 // 0 = fixed point, 1 = float
	CoefficientLog2Denom               uint8
	VdrRpuNormalizedIdc                uint8

	BlBitDepthMinus8  uint64
	ElBitDepthMinus8  uint64
	VdrBitDepthMinus8 uint64

	SpatialResamplingFilterFlag   bool
	ElSpatialResamplingFilterFlag bool
	DisableResidualFlag          bool

	VdrDmMetadataPresentFlag bool
	UsePrevVdrRpuFlag        bool
	PrevVdrRpuID             uint64

	NlqMethodIdc int8 // -1 when absent
}

// HasNlq reports whether this header indicates an NLQ data section follows
// the data mapping section (profile 7 FEL only).
func (h *Header) HasNlq() bool {
	return h.NlqMethodIdc >= 0
}

func parseHeader(r *bitio.Reader) (*Header, error) {
	h := &Header{}
	var err error

	if h.RpuNalPrefix, err = r.Get8(8); err != nil {
		return nil, fmt.Errorf("%w: rpu_nal_prefix: %v", ErrInvalidHeader, err)
	}
	if h.RpuNalPrefix != rpuNalPrefix {
		return nil, fmt.Errorf("%w: rpu_nal_prefix %d != %d", ErrInvalidHeader, h.RpuNalPrefix, rpuNalPrefix)
	}

	if h.RpuType, err = r.Get8(6); err != nil {
		return nil, fmt.Errorf("%w: rpu_type: %v", ErrInvalidHeader, err)
	}
	if h.RpuFormat, err = r.Get16(11); err != nil {
		return nil, fmt.Errorf("%w: rpu_format: %v", ErrInvalidHeader, err)
	}
	if h.VdrRpuProfile, err = r.Get8(4); err != nil {
		return nil, fmt.Errorf("%w: vdr_rpu_profile: %v", ErrInvalidHeader, err)
	}
	if h.VdrRpuLevel, err = r.Get8(4); err != nil {
		return nil, fmt.Errorf("%w: vdr_rpu_level: %v", ErrInvalidHeader, err)
	}
	if h.VdrSeqInfoPresentFlag, err = r.Get(); err != nil {
		return nil, fmt.Errorf("%w: vdr_seq_info_present_flag: %v", ErrInvalidHeader, err)
	}

	if h.VdrSeqInfoPresentFlag {
		if h.ChromaResamplingExplicitFilterFlag, err = r.Get(); err != nil {
			return nil, fmt.Errorf("%w: chroma_resampling_explicit_filter_flag: %v", ErrInvalidHeader, err)
		}
		codType, err := r.Get8(1)
		if err != nil {
			return nil, fmt.Errorf("%w: coefficient_data_type: %v", ErrInvalidHeader, err)
		}
		h.CoefficientDataType = codType

		if h.CoefficientDataType == 0 {
			if h.CoefficientLog2Denom, err = r.Get8(5); err != nil {
				return nil, fmt.Errorf("%w: coefficient_log2_denom: %v", ErrInvalidHeader, err)
			}
		}

		if h.VdrRpuNormalizedIdc, err = r.Get8(1); err != nil {
			return nil, fmt.Errorf("%w: vdr_rpu_normalized_idc: %v", ErrInvalidHeader, err)
		}
		if h.BlBitDepthMinus8, err = r.GetUE(); err != nil {
			return nil, fmt.Errorf("%w: bl_bit_depth_minus8: %v", ErrInvalidHeader, err)
		}
		if h.ElBitDepthMinus8, err = r.GetUE(); err != nil {
			return nil, fmt.Errorf("%w: el_bit_depth_minus8: %v", ErrInvalidHeader, err)
		}
		if h.VdrBitDepthMinus8, err = r.GetUE(); err != nil {
			return nil, fmt.Errorf("%w: vdr_bit_depth_minus8: %v", ErrInvalidHeader, err)
		}
		if h.SpatialResamplingFilterFlag, err = r.Get(); err != nil {
			return nil, fmt.Errorf("%w: spatial_resampling_filter_flag: %v", ErrInvalidHeader, err)
		}
		if err := r.Skip(3); err != nil { // reserved_zero_3bits
			return nil, fmt.Errorf("%w: reserved_zero_3bits: %v", ErrInvalidHeader, err)
		}
		if h.ElSpatialResamplingFilterFlag, err = r.Get(); err != nil {
			return nil, fmt.Errorf("%w: el_spatial_resampling_filter_flag: %v", ErrInvalidHeader, err)
		}
		if h.DisableResidualFlag, err = r.Get(); err != nil {
			return nil, fmt.Errorf("%w: disable_residual_flag: %v", ErrInvalidHeader, err)
		}
	}

	if h.VdrDmMetadataPresentFlag, err = r.Get(); err != nil {
		return nil, fmt.Errorf("%w: vdr_dm_metadata_present_flag: %v", ErrInvalidHeader, err)
	}
	if h.UsePrevVdrRpuFlag, err = r.Get(); err != nil {
		return nil, fmt.Errorf("%w: use_prev_vdr_rpu_flag: %v", ErrInvalidHeader, err)
	}
	if h.UsePrevVdrRpuFlag {
		if h.PrevVdrRpuID, err = r.GetUE(); err != nil {
			return nil, fmt.Errorf("%w: prev_vdr_rpu_id: %v", ErrInvalidHeader, err)
		}
	}

	h.NlqMethodIdc = -1
	if IsFelProfile(h.VdrRpuProfile, h.ElSpatialResamplingFilterFlag) {
		idc, err := r.Get8(3)
		if err != nil {
			return nil, fmt.Errorf("%w: nlq_method_idc: %v", ErrInvalidHeader, err)
		}
		h.NlqMethodIdc = int8(idc)
	}

	return h, nil
}

func (h *Header) write(w *bitio.Writer) error {
	_ = w.PutN(uint64(rpuNalPrefix), 8)
	_ = w.PutN(uint64(h.RpuType), 6)
	_ = w.PutN(uint64(h.RpuFormat), 11)
	_ = w.PutN(uint64(h.VdrRpuProfile), 4)
	_ = w.PutN(uint64(h.VdrRpuLevel), 4)
	w.Put(h.VdrSeqInfoPresentFlag)

	if h.VdrSeqInfoPresentFlag {
		w.Put(h.ChromaResamplingExplicitFilterFlag)
		_ = w.PutN(uint64(h.CoefficientDataType), 1)
		if h.CoefficientDataType == 0 {
			_ = w.PutN(uint64(h.CoefficientLog2Denom), 5)
		}
		_ = w.PutN(uint64(h.VdrRpuNormalizedIdc), 1)
		if err := w.PutUE(h.BlBitDepthMinus8); err != nil {
			return err
		}
		if err := w.PutUE(h.ElBitDepthMinus8); err != nil {
			return err
		}
		if err := w.PutUE(h.VdrBitDepthMinus8); err != nil {
			return err
		}
		w.Put(h.SpatialResamplingFilterFlag)
		_ = w.PutN(0, 3)
		w.Put(h.ElSpatialResamplingFilterFlag)
		w.Put(h.DisableResidualFlag)
	}

	w.Put(h.VdrDmMetadataPresentFlag)
	w.Put(h.UsePrevVdrRpuFlag)
	if h.UsePrevVdrRpuFlag {
		if err := w.PutUE(h.PrevVdrRpuID); err != nil {
			return err
		}
	}

	if h.HasNlq() {
		_ = w.PutN(uint64(h.NlqMethodIdc), 3)
	}

	return nil
}

// IsFelProfile reports whether a header with this profile/flag combination
// carries a Full Enhancement Layer, the only variant with an NLQ section.
func IsFelProfile(vdrRpuProfile uint8, elSpatialResamplingFilterFlag bool) bool {
	return vdrRpuProfile == 7 && elSpatialResamplingFilterFlag
}
