package cmd

import (
	"fmt"

	"github.com/quietvoid/dovi-tool-sub001/rpu"
	"github.com/quietvoid/dovi-tool-sub001/rpu/extmetadata"
)

// BlockDoc is the JSON shape of one extension metadata block: a level tag
// plus a flat map of its fields. Generic by design, rather than one
// struct per level, since export/editor only need round-trip of the
// values a human would actually edit.
type BlockDoc struct {
	Level  uint8                  `json:"level"`
	Fields map[string]interface{} `json:"fields,omitempty"`
}

// HeaderDoc is the editable subset of rpu.Header: profile/level selection
// and bit depths, not the full bitstream presence-flag grammar.
type HeaderDoc struct {
	Profile          uint8 `json:"vdr_rpu_profile"`
	Level            uint8 `json:"vdr_rpu_level"`
	BlBitDepthMinus8 int   `json:"bl_bit_depth_minus8"`
	ElBitDepthMinus8 int   `json:"el_bit_depth_minus8"`
}

// RPUDoc is the JSON document export/editor operate on: the editable
// surface of an RPU, not a lossless dump of its bitstream grammar.
type RPUDoc struct {
	Header    HeaderDoc  `json:"header"`
	DmVersion string     `json:"dm_version,omitempty"`
	Blocks    []BlockDoc `json:"ext_metadata_blocks,omitempty"`
}

func rpuToDoc(p *rpu.RPU) RPUDoc {
	doc := RPUDoc{
		Header: HeaderDoc{
			Profile:          p.Header.VdrRpuProfile,
			Level:            p.Header.VdrRpuLevel,
			BlBitDepthMinus8: int(p.Header.BlBitDepthMinus8),
			ElBitDepthMinus8: int(p.Header.ElBitDepthMinus8),
		},
	}
	if p.VdrDmData != nil {
		doc.DmVersion = p.VdrDmData.DmData.Kind().String()
		for _, b := range p.VdrDmData.DmData.Blocks() {
			doc.Blocks = append(doc.Blocks, blockToDoc(b))
		}
	}
	return doc
}

// applyDoc overwrites p's header profile/level/bit-depth fields and
// extension metadata blocks from doc. p must already have a VdrDmData
// section.
func applyDoc(p *rpu.RPU, doc RPUDoc) error {
	p.Header.VdrRpuProfile = doc.Header.Profile
	p.Header.VdrRpuLevel = doc.Header.Level
	p.Header.BlBitDepthMinus8 = uint64(doc.Header.BlBitDepthMinus8)
	p.Header.ElBitDepthMinus8 = uint64(doc.Header.ElBitDepthMinus8)

	for _, bd := range doc.Blocks {
		block, err := docToBlock(bd)
		if err != nil {
			return err
		}
		if err := p.VdrDmData.DmData.AddBlock(block); err != nil {
			return err
		}
	}
	return nil
}

func blockToDoc(b extmetadata.Block) BlockDoc {
	d := BlockDoc{Level: b.Level(), Fields: map[string]interface{}{}}
	switch v := b.(type) {
	case *extmetadata.Level1:
		d.Fields["min_pq"] = v.MinPQ
		d.Fields["max_pq"] = v.MaxPQ
		d.Fields["avg_pq"] = v.AvgPQ
	case *extmetadata.Level2:
		d.Fields["target_max_pq"] = v.TargetMaxPQ
		d.Fields["trim_slope"] = v.TrimSlope
		d.Fields["trim_offset"] = v.TrimOffset
		d.Fields["trim_power"] = v.TrimPower
		d.Fields["trim_chroma_weight"] = v.TrimChromaWeight
		d.Fields["trim_saturation_gain"] = v.TrimSaturationGain
		d.Fields["ms_weight"] = v.MsWeight
	case *extmetadata.Level3:
		d.Fields["min_pq_offset"] = v.MinPQOffset
		d.Fields["max_pq_offset"] = v.MaxPQOffset
		d.Fields["avg_pq_offset"] = v.AvgPQOffset
	case *extmetadata.Level4:
		d.Fields["anchor_pq"] = v.AnchorPQ
		d.Fields["anchor_power"] = v.AnchorPower
	case *extmetadata.Level5:
		d.Fields["active_area_left_offset"] = v.ActiveAreaLeftOffset
		d.Fields["active_area_right_offset"] = v.ActiveAreaRightOffset
		d.Fields["active_area_top_offset"] = v.ActiveAreaTopOffset
		d.Fields["active_area_bottom_offset"] = v.ActiveAreaBottomOffset
	case *extmetadata.Level6:
		d.Fields["max_display_mastering_luminance"] = v.MaxDisplayMasteringLuminance
		d.Fields["min_display_mastering_luminance"] = v.MinDisplayMasteringLuminance
		d.Fields["max_content_light_level"] = v.MaxContentLightLevel
		d.Fields["max_frame_average_light_level"] = v.MaxFrameAverageLightLevel
	case *extmetadata.Level8:
		d.Fields["target_display_index"] = v.TargetDisplayIndex
		d.Fields["trim_slope"] = v.TrimSlope
		d.Fields["trim_offset"] = v.TrimOffset
		d.Fields["trim_power"] = v.TrimPower
		d.Fields["trim_chroma_weight"] = v.TrimChromaWeight
		d.Fields["trim_saturation_gain"] = v.TrimSaturationGain
		d.Fields["ms_weight"] = v.MsWeight
	case *extmetadata.Level9:
		d.Fields["source_primary_index"] = v.SourcePrimaryIndex
	case *extmetadata.Level10:
		d.Fields["target_display_index"] = v.TargetDisplayIndex
		d.Fields["target_max_pq"] = v.TargetMaxPQ
		d.Fields["target_min_pq"] = v.TargetMinPQ
		d.Fields["target_primary_index"] = v.TargetPrimaryIndex
	case *extmetadata.Level11:
		d.Fields["content_type"] = v.ContentType
		d.Fields["content_sub_type"] = v.ContentSubType
		d.Fields["whitepoint"] = v.Whitepoint
		d.Fields["reference_mode_flag"] = v.ReferenceModeFlag
		d.Fields["sharpness"] = v.Sharpness
		d.Fields["noise_reduction"] = v.NoiseReduction
		d.Fields["mpeg_noise_reduction"] = v.MpegNoiseReduction
		d.Fields["frame_rate_conversion"] = v.FrameRateConversion
		d.Fields["brightness"] = v.Brightness
		d.Fields["color"] = v.Color
	case *extmetadata.Level254:
		d.Fields["dm_mode"] = v.DmMode
		d.Fields["dm_version_index"] = v.DmVersionIndex
	case *extmetadata.Level255:
		d.Fields["dm_run_mode"] = v.DmRunMode
		d.Fields["dm_run_version"] = v.DmRunVersion
		d.Fields["dm_debug0"] = v.DmDebug0
		d.Fields["dm_debug1"] = v.DmDebug1
		d.Fields["dm_debug2"] = v.DmDebug2
		d.Fields["dm_debug3"] = v.DmDebug3
	default:
		// Levels 15-18 and Reserved round-trip through their binary form
		// only; export surfaces the level tag but not an editable body.
	}
	return d
}

func docToBlock(d BlockDoc) (extmetadata.Block, error) {
	switch d.Level {
	case 1:
		return extmetadata.FromStats(
			getU16(d.Fields, "min_pq"),
			getU16(d.Fields, "max_pq"),
			getU16(d.Fields, "avg_pq"),
		), nil
	case 2:
		return &extmetadata.Level2{
			TargetMaxPQ:        getU16(d.Fields, "target_max_pq"),
			TrimSlope:          getU16(d.Fields, "trim_slope"),
			TrimOffset:         getU16(d.Fields, "trim_offset"),
			TrimPower:          getU16(d.Fields, "trim_power"),
			TrimChromaWeight:   getU16(d.Fields, "trim_chroma_weight"),
			TrimSaturationGain: getU16(d.Fields, "trim_saturation_gain"),
			MsWeight:           int16(getU16(d.Fields, "ms_weight")),
		}, nil
	case 3:
		return &extmetadata.Level3{
			MinPQOffset: getU16(d.Fields, "min_pq_offset"),
			MaxPQOffset: getU16(d.Fields, "max_pq_offset"),
			AvgPQOffset: getU16(d.Fields, "avg_pq_offset"),
		}, nil
	case 4:
		return &extmetadata.Level4{
			AnchorPQ:    getU16(d.Fields, "anchor_pq"),
			AnchorPower: getU16(d.Fields, "anchor_power"),
		}, nil
	case 5:
		return &extmetadata.Level5{
			ActiveAreaLeftOffset:   getU16(d.Fields, "active_area_left_offset"),
			ActiveAreaRightOffset:  getU16(d.Fields, "active_area_right_offset"),
			ActiveAreaTopOffset:    getU16(d.Fields, "active_area_top_offset"),
			ActiveAreaBottomOffset: getU16(d.Fields, "active_area_bottom_offset"),
		}, nil
	case 6:
		return &extmetadata.Level6{
			MaxDisplayMasteringLuminance: getU16(d.Fields, "max_display_mastering_luminance"),
			MinDisplayMasteringLuminance: getU16(d.Fields, "min_display_mastering_luminance"),
			MaxContentLightLevel:         getU16(d.Fields, "max_content_light_level"),
			MaxFrameAverageLightLevel:    getU16(d.Fields, "max_frame_average_light_level"),
		}, nil
	case 8:
		return &extmetadata.Level8{
			TargetDisplayIndex: getU8(d.Fields, "target_display_index"),
			TrimSlope:          getU16(d.Fields, "trim_slope"),
			TrimOffset:         getU16(d.Fields, "trim_offset"),
			TrimPower:          getU16(d.Fields, "trim_power"),
			TrimChromaWeight:   getU16(d.Fields, "trim_chroma_weight"),
			TrimSaturationGain: getU16(d.Fields, "trim_saturation_gain"),
			MsWeight:           getU16(d.Fields, "ms_weight"),
		}, nil
	case 9:
		return &extmetadata.Level9{SourcePrimaryIndex: getU8(d.Fields, "source_primary_index")}, nil
	case 10:
		return &extmetadata.Level10{
			TargetDisplayIndex: getU8(d.Fields, "target_display_index"),
			TargetMaxPQ:        getU16(d.Fields, "target_max_pq"),
			TargetMinPQ:        getU16(d.Fields, "target_min_pq"),
			TargetPrimaryIndex: getU8(d.Fields, "target_primary_index"),
		}, nil
	case 11:
		return &extmetadata.Level11{
			ContentType:         getU8(d.Fields, "content_type"),
			ContentSubType:      getU8(d.Fields, "content_sub_type"),
			Whitepoint:          getU8(d.Fields, "whitepoint"),
			ReferenceModeFlag:   getBool(d.Fields, "reference_mode_flag"),
			Sharpness:           getU8(d.Fields, "sharpness"),
			NoiseReduction:      getU8(d.Fields, "noise_reduction"),
			MpegNoiseReduction:  getU8(d.Fields, "mpeg_noise_reduction"),
			FrameRateConversion: getU8(d.Fields, "frame_rate_conversion"),
			Brightness:          getU8(d.Fields, "brightness"),
			Color:               getU8(d.Fields, "color"),
		}, nil
	case 254:
		return &extmetadata.Level254{
			DmMode:         getU8(d.Fields, "dm_mode"),
			DmVersionIndex: getU8(d.Fields, "dm_version_index"),
		}, nil
	case 255:
		return &extmetadata.Level255{
			DmRunMode:    getU8(d.Fields, "dm_run_mode"),
			DmRunVersion: getU8(d.Fields, "dm_run_version"),
			DmDebug0:     getU8(d.Fields, "dm_debug0"),
			DmDebug1:     getU8(d.Fields, "dm_debug1"),
			DmDebug2:     getU8(d.Fields, "dm_debug2"),
			DmDebug3:     getU8(d.Fields, "dm_debug3"),
		}, nil
	default:
		return nil, fmt.Errorf("dovirpu: level %d has no editable JSON form", d.Level)
	}
}

func getU8(m map[string]interface{}, key string) uint8  { return uint8(getFloat(m, key)) }
func getU16(m map[string]interface{}, key string) uint16 { return uint16(getFloat(m, key)) }

func getFloat(m map[string]interface{}, key string) float64 {
	switch v := m[key].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	case uint16:
		return float64(v)
	case uint8:
		return float64(v)
	default:
		return 0
	}
}

func getBool(m map[string]interface{}, key string) bool {
	v, _ := m[key].(bool)
	return v
}
