package rpu

import "github.com/quietvoid/dovi-tool-sub001/bitio"

// VdrDmData is the VDR display-management payload: colorspace conversion
// matrices, signal characteristics, source mastering-display PQ bounds,
// and an embedded extension-metadata-block container.
type VdrDmData struct {
	CompressionFlag      bool
	AffectedDmMetadataID uint64
	CurrentDmMetadataID  uint64
	SceneRefreshFlag     uint64

	YccToRgbCoef   [9]int16
	YccToRgbOffset [3]uint32
	RgbToLmsCoef   [9]int16

	SignalEotf       uint16
	SignalEotfParam0 uint32
	SignalEotfParam1 uint32
	SignalEotfParam2 uint32

	SignalBitDepth      uint8
	ColorSpace          uint8
	SignalChromaFormat  uint8
	SignalFullRangeFlag uint8

	SourceMinPQ    uint16
	SourceMaxPQ    uint16
	SourceDiagonal uint16

	DmData DmData
}

// SignalEotfPQ is the fixed signal_eotf value meaning SMPTE ST 2084 (PQ).
const SignalEotfPQ = 65535

func parseVdrDmData(r *bitio.Reader) (*VdrDmData, error) {
	d := &VdrDmData{}
	var err error

	if d.CompressionFlag, err = r.Get(); err != nil {
		return nil, err
	}
	if d.AffectedDmMetadataID, err = r.GetUE(); err != nil {
		return nil, err
	}
	if d.CurrentDmMetadataID, err = r.GetUE(); err != nil {
		return nil, err
	}
	if d.SceneRefreshFlag, err = r.GetUE(); err != nil {
		return nil, err
	}

	for i := range d.YccToRgbCoef {
		v, err := r.Get16(16)
		if err != nil {
			return nil, err
		}
		d.YccToRgbCoef[i] = int16(v)
	}
	for i := range d.YccToRgbOffset {
		if d.YccToRgbOffset[i], err = r.Get32(32); err != nil {
			return nil, err
		}
	}
	for i := range d.RgbToLmsCoef {
		v, err := r.Get16(16)
		if err != nil {
			return nil, err
		}
		d.RgbToLmsCoef[i] = int16(v)
	}

	if d.SignalEotf, err = r.Get16(16); err != nil {
		return nil, err
	}
	if d.SignalEotfParam0, err = r.Get32(32); err != nil {
		return nil, err
	}
	if d.SignalEotfParam1, err = r.Get32(32); err != nil {
		return nil, err
	}
	if d.SignalEotfParam2, err = r.Get32(32); err != nil {
		return nil, err
	}

	if d.SignalBitDepth, err = r.Get8(5); err != nil {
		return nil, err
	}
	if d.ColorSpace, err = r.Get8(2); err != nil {
		return nil, err
	}
	if d.SignalChromaFormat, err = r.Get8(2); err != nil {
		return nil, err
	}
	if d.SignalFullRangeFlag, err = r.Get8(2); err != nil {
		return nil, err
	}
	if d.SourceMinPQ, err = r.Get16(12); err != nil {
		return nil, err
	}
	if d.SourceMaxPQ, err = r.Get16(12); err != nil {
		return nil, err
	}
	if d.SourceDiagonal, err = r.Get16(10); err != nil {
		return nil, err
	}

	dmData, err := parseDmData(r)
	if err != nil {
		return nil, err
	}
	d.DmData = dmData

	return d, nil
}

func (d *VdrDmData) write(w *bitio.Writer) error {
	w.Put(d.CompressionFlag)
	if err := w.PutUE(d.AffectedDmMetadataID); err != nil {
		return err
	}
	if err := w.PutUE(d.CurrentDmMetadataID); err != nil {
		return err
	}
	if err := w.PutUE(d.SceneRefreshFlag); err != nil {
		return err
	}

	for _, v := range d.YccToRgbCoef {
		_ = w.PutN(uint64(uint16(v)), 16)
	}
	for _, v := range d.YccToRgbOffset {
		_ = w.PutN(uint64(v), 32)
	}
	for _, v := range d.RgbToLmsCoef {
		_ = w.PutN(uint64(uint16(v)), 16)
	}

	_ = w.PutN(uint64(d.SignalEotf), 16)
	_ = w.PutN(uint64(d.SignalEotfParam0), 32)
	_ = w.PutN(uint64(d.SignalEotfParam1), 32)
	_ = w.PutN(uint64(d.SignalEotfParam2), 32)

	_ = w.PutN(uint64(d.SignalBitDepth), 5)
	_ = w.PutN(uint64(d.ColorSpace), 2)
	_ = w.PutN(uint64(d.SignalChromaFormat), 2)
	_ = w.PutN(uint64(d.SignalFullRangeFlag), 2)
	_ = w.PutN(uint64(d.SourceMinPQ), 12)
	_ = w.PutN(uint64(d.SourceMaxPQ), 12)
	_ = w.PutN(uint64(d.SourceDiagonal), 10)

	return d.DmData.write(w)
}
