// Package profile implements the Dolby Vision profile-conversion state
// machine over a parsed RPU: lossless passthrough, to-MEL, to-8.1 (with
// a mapping-preserved variant), and to-8.4.
package profile

import (
	"fmt"

	"github.com/quietvoid/dovi-tool-sub001/rpu"
)

// Profile identifies a Dolby Vision RPU profile variant.
type Profile uint8

const (
	Profile4 Profile = 4
	Profile5 Profile = 5
	// Profile7FEL and Profile7MEL share vdr_rpu_profile 7; they are
	// distinguished by NLQ presence, not by a distinct profile number.
	Profile7FEL Profile = 71
	Profile7MEL Profile = 72
	Profile81   Profile = 81
	Profile84   Profile = 84
)

func (p Profile) String() string {
	switch p {
	case Profile4:
		return "4"
	case Profile5:
		return "5"
	case Profile7FEL:
		return "7 (FEL)"
	case Profile7MEL:
		return "7 (MEL)"
	case Profile81:
		return "8.1"
	case Profile84:
		return "8.4"
	default:
		return fmt.Sprintf("%d", uint8(p))
	}
}

// DetectProfile derives the originating profile from a parsed RPU's
// header: vdr_rpu_profile selects the profile, NLQ presence splits
// profile 7 into FEL and MEL, and vdr_rpu_level 4 marks profile 8.4.
// rpu_format, the coefficient data type and the VDR matrices are not
// consulted.
func DetectProfile(p *rpu.RPU) Profile {
	h := p.Header
	switch h.VdrRpuProfile {
	case 4:
		return Profile4
	case 5:
		return Profile5
	case 7:
		if h.HasNlq() {
			return Profile7FEL
		}
		return Profile7MEL
	case 8:
		if h.VdrRpuLevel == 4 {
			return Profile84
		}
		return Profile81
	default:
		return Profile(h.VdrRpuProfile)
	}
}

// dmMatrices holds the nine YCC->RGB and RGB->LMS coefficients plus the
// three YCC->RGB offsets a profile's default VdrDmData is initialized
// with on conversion.
type dmMatrices struct {
	yccToRgbCoef   [9]int16
	yccToRgbOffset [3]uint32
	rgbToLmsCoef   [9]int16
}

// Default display-management matrices per profile. Profile 7 (FEL/MEL)
// shares Profile 5's matrices (both are BL+EL P3D65 pipelines); Profile
// 8.4 reuses Profile 8.1's matrices (an explicit Open Question decision,
// recorded in DESIGN.md).
var (
	profile4Matrices = dmMatrices{
		yccToRgbCoef:   [9]int16{9574, 0, 13802, 9574, -1540, -5348, 9574, 17610, 0},
		yccToRgbOffset: [3]uint32{0, 32768, 32768},
		rgbToLmsCoef:   [9]int16{1688, 2146, 262, 683, 2951, 462, 99, 309, 3688},
	}
	profile5Matrices = dmMatrices{
		yccToRgbCoef:   [9]int16{9575, 0, 13802, 9575, -1540, -5348, 9575, 17610, 0},
		yccToRgbOffset: [3]uint32{0, 32768, 32768},
		rgbToLmsCoef:   [9]int16{1688, 2146, 262, 683, 2951, 462, 99, 309, 3688},
	}
	profile81Matrices = dmMatrices{
		yccToRgbCoef:   [9]int16{8192, 0, 12900, 8192, -1534, -5053, 8192, 16452, 0},
		yccToRgbOffset: [3]uint32{0, 32768, 32768},
		rgbToLmsCoef:   [9]int16{1574, 2084, 234, 626, 2922, 444, 104, 295, 3612},
	}
)

func matricesFor(target Profile) dmMatrices {
	switch target {
	case Profile4:
		return profile4Matrices
	case Profile5, Profile7FEL, Profile7MEL:
		return profile5Matrices
	default: // Profile81, Profile84
		return profile81Matrices
	}
}

// ApplyDefaultMatrices overwrites a VdrDmData's colorspace matrices with
// the target profile's defaults, leaving source PQ bounds and extension
// blocks untouched. Exported for the generate subcommand, which needs
// the same defaults when synthesizing an RPU from scratch.
func ApplyDefaultMatrices(d *rpu.VdrDmData, target Profile) {
	m := matricesFor(target)
	d.YccToRgbCoef = m.yccToRgbCoef
	d.YccToRgbOffset = m.yccToRgbOffset
	d.RgbToLmsCoef = m.rgbToLmsCoef
}
