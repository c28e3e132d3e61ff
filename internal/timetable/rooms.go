package timetable

import "github.com/samber/lo"

// RoomRequirement is a subject's decoded room demand. Zero-valued fields are
// not enforced. Impossible marks a requirement that could not be decoded, so
// no room satisfies it.
type RoomRequirement struct {
	Category     string
	MinResources []string
	MinCapacity  int
	Impossible   bool
}

// Fits reports whether the room satisfies the requirement. A nil requirement
// accepts every room.
func (rq *RoomRequirement) Fits(room Room) bool {
	if rq == nil {
		return true
	}
	if rq.Impossible {
		return false
	}
	if rq.Category != "" && room.Category != rq.Category {
		return false
	}
	if rq.MinCapacity > 0 && room.Capacity < rq.MinCapacity {
		return false
	}
	return lo.Every(room.Resources, rq.MinResources)
}
