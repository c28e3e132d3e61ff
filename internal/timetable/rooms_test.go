package timetable

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoomRequirementFits(t *testing.T) {
	lab := Room{ID: "r1", Code: "LAB-101", Category: "Laboratorio", Capacity: 30, Resources: []string{"Computadoras", "Proyector"}}
	classroom := Room{ID: "r2", Code: "A-201", Category: "Teorica", Capacity: 60}

	tests := []struct {
		name string
		req  *RoomRequirement
		room Room
		want bool
	}{
		{name: "nil requirement accepts anything", req: nil, room: classroom, want: true},
		{name: "category match", req: &RoomRequirement{Category: "Laboratorio"}, room: lab, want: true},
		{name: "category mismatch", req: &RoomRequirement{Category: "Laboratorio"}, room: classroom, want: false},
		{name: "resources subset", req: &RoomRequirement{MinResources: []string{"Computadoras"}}, room: lab, want: true},
		{name: "resources missing", req: &RoomRequirement{MinResources: []string{"Pizarra digital"}}, room: lab, want: false},
		{name: "capacity met", req: &RoomRequirement{MinCapacity: 30}, room: lab, want: true},
		{name: "capacity short", req: &RoomRequirement{MinCapacity: 31}, room: lab, want: false},
		{name: "impossible never matches", req: &RoomRequirement{Impossible: true}, room: lab, want: false},
		{name: "combined", req: &RoomRequirement{Category: "Laboratorio", MinResources: []string{"Proyector"}, MinCapacity: 20}, room: lab, want: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.req.Fits(tt.room))
		})
	}
}
