package input

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Segment holds one Frame for Duration.
type Segment struct {
	Frame    `yaml:",inline"`
	Duration time.Duration `yaml:"duration"`
	Label    string        `yaml:"label"`
}

// Script is a recorded or hand-written input sequence.
type Script struct {
	Segments []Segment `yaml:"segments"`
}

func LoadScript(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseScript(data)
}

func ParseScript(data []byte) (*Script, error) {
	s := &Script{}
	if err := yaml.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("parse input script: %w", err)
	}
	for i, seg := range s.Segments {
		if seg.Duration <= 0 {
			return nil, fmt.Errorf("segment %d: duration must be positive, got %s", i, seg.Duration)
		}
	}
	return s, nil
}

// Frames expands the script at the given tick interval. Every segment lasts
// at least one tick.
func (s *Script) Frames(interval time.Duration) []Frame {
	if s == nil || interval <= 0 {
		return nil
	}
	var frames []Frame
	for _, seg := range s.Segments {
		n := int((seg.Duration + interval/2) / interval)
		if n < 1 {
			n = 1
		}
		for i := 0; i < n; i++ {
			frames = append(frames, seg.Frame)
		}
	}
	return frames
}

func (s *Script) Duration() time.Duration {
	var total time.Duration
	if s == nil {
		return total
	}
	for _, seg := range s.Segments {
		total += seg.Duration
	}
	return total
}
