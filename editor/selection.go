package editor

import (
	"github.com/google/uuid"

	"daynight-engine/profile"
)

// Selection tracks the selected keyframes by ID, so it survives re-sorting
type Selection struct {
	IDs []uuid.UUID

	// Active keyframe (last selected, shown in the inspector)
	Active uuid.UUID
}

func NewSelection() *Selection {
	return &Selection{IDs: make([]uuid.UUID, 0)}
}

// Clear removes all selections
func (s *Selection) Clear() {
	s.IDs = s.IDs[:0]
	s.Active = uuid.Nil
}

// SelectSingle selects a single keyframe, clearing the previous selection
func (s *Selection) SelectSingle(id uuid.UUID) {
	s.IDs = []uuid.UUID{id}
	s.Active = id
}

// Toggle adds or removes a keyframe from the selection (Shift+Click)
func (s *Selection) Toggle(id uuid.UUID) {
	for i, sel := range s.IDs {
		if sel == id {
			s.IDs = append(s.IDs[:i], s.IDs[i+1:]...)
			if s.Active == id {
				if len(s.IDs) > 0 {
					s.Active = s.IDs[len(s.IDs)-1]
				} else {
					s.Active = uuid.Nil
				}
			}
			return
		}
	}
	s.IDs = append(s.IDs, id)
	s.Active = id
}

func (s *Selection) IsSelected(id uuid.UUID) bool {
	for _, sel := range s.IDs {
		if sel == id {
			return true
		}
	}
	return false
}

// Prune drops IDs no longer present in p.
func (s *Selection) Prune(p *profile.Profile) {
	kept := s.IDs[:0]
	for _, id := range s.IDs {
		if p.IndexOf(id) >= 0 {
			kept = append(kept, id)
		}
	}
	s.IDs = kept
	if p.IndexOf(s.Active) < 0 {
		s.Active = uuid.Nil
		if len(s.IDs) > 0 {
			s.Active = s.IDs[len(s.IDs)-1]
		}
	}
}

func (s *Selection) HasSelection() bool {
	return len(s.IDs) > 0
}
