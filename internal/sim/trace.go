package sim

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/Versifine/stride/internal/body"
	"github.com/fxamacker/cbor/v2"
)

// TraceRecord is one tick of a replay as stored in a trace file. A trace
// file is a plain sequence of CBOR-encoded records.
type TraceRecord struct {
	Tick      uint64     `cbor:"1,keyasint"`
	NowNanos  int64      `cbor:"2,keyasint"`
	Position  [3]float64 `cbor:"3,keyasint"`
	Velocity  [3]float64 `cbor:"4,keyasint"`
	Grounded  bool       `cbor:"5,keyasint"`
	Crouching bool       `cbor:"6,keyasint"`
	Sliding   bool       `cbor:"7,keyasint"`
	Jumped    bool       `cbor:"8,keyasint"`
	Height    float64    `cbor:"9,keyasint"`
	Yaw       float64    `cbor:"10,keyasint"`
	Pitch     float64    `cbor:"11,keyasint"`
	FOV       float64    `cbor:"12,keyasint"`
}

func NewTraceRecord(s body.Snapshot) TraceRecord {
	return TraceRecord{
		Tick:      s.Tick,
		NowNanos:  int64(s.Now),
		Position:  [3]float64(s.Position),
		Velocity:  [3]float64(s.Velocity),
		Grounded:  s.Grounded,
		Crouching: s.Crouching,
		Sliding:   s.Sliding,
		Jumped:    s.Jumped,
		Height:    s.Shape.Height,
		Yaw:       s.Yaw,
		Pitch:     s.Pitch,
		FOV:       s.FOV,
	}
}

func (r TraceRecord) Now() time.Duration {
	return time.Duration(r.NowNanos)
}

func encodeRecord(r TraceRecord) ([]byte, error) {
	b, err := cbor.Marshal(r)
	if err != nil {
		return nil, fmt.Errorf("encode trace record %d: %w", r.Tick, err)
	}
	return b, nil
}

// ReadTrace decodes every record in r.
func ReadTrace(r io.Reader) ([]TraceRecord, error) {
	dec := cbor.NewDecoder(r)
	var records []TraceRecord
	for {
		var rec TraceRecord
		err := dec.Decode(&rec)
		if errors.Is(err, io.EOF) {
			return records, nil
		}
		if err != nil {
			return records, fmt.Errorf("decode trace record %d: %w", len(records), err)
		}
		records = append(records, rec)
	}
}
