package id

import "github.com/google/uuid"

// Generator creates opaque identifiers.
type Generator interface {
	New() string
}

type UUID struct{}

func (UUID) New() string {
	return uuid.NewString()
}

// Sequence hands out the configured ids in order and repeats the last one.
type Sequence struct {
	IDs []string
	idx int
}

func (s *Sequence) New() string {
	if len(s.IDs) == 0 {
		return ""
	}
	if s.idx >= len(s.IDs) {
		return s.IDs[len(s.IDs)-1]
	}
	v := s.IDs[s.idx]
	s.idx++
	return v
}
