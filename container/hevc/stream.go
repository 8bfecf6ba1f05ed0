package hevc

// NAL unit type values from the HEVC Annex B bitstream syntax, the subset
// the RPU extraction/injection/removal tooling needs to recognize.
const (
	NalVPS      = 32
	NalSPS      = 33
	NalPPS      = 34
	NalAUD      = 35
	NalUnspec62 = 62
	NalUnspec63 = 63
)

// NalUnit is one Annex B NAL unit located in an elementary stream: its
// type and its payload (header included, start code excluded).
type NalUnit struct {
	Type    uint8
	Payload []byte
}

// SplitNALs locates every `00 00 01`/`00 00 00 01`-prefixed NAL unit in
// an Annex B elementary stream and returns each one's type and payload.
func SplitNALs(data []byte) []NalUnit {
	starts := findStartCodes(data)
	if len(starts) == 0 {
		return nil
	}

	units := make([]NalUnit, 0, len(starts))
	for i, start := range starts {
		end := len(data)
		if i+1 < len(starts) {
			end = starts[i+1].offset
		}
		payload := data[start.offset+start.length : end]
		for len(payload) > 0 && payload[len(payload)-1] == 0x00 {
			payload = payload[:len(payload)-1]
		}
		if len(payload) == 0 {
			continue
		}
		nalType := (payload[0] >> 1) & 0x3F
		units = append(units, NalUnit{Type: nalType, Payload: payload})
	}
	return units
}

type startCode struct {
	offset int
	length int
}

func findStartCodes(data []byte) []startCode {
	var codes []startCode
	for i := 0; i+2 < len(data); i++ {
		if data[i] != 0x00 || data[i+1] != 0x00 {
			continue
		}
		if data[i+2] == 0x01 {
			codes = append(codes, startCode{offset: i, length: 3})
			i += 2
		} else if i+3 < len(data) && data[i+2] == 0x00 && data[i+3] == 0x01 {
			codes = append(codes, startCode{offset: i, length: 4})
			i += 3
		}
	}
	return codes
}
