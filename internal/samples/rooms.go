package samples

import (
	"fmt"

	"github.com/aretw0/planner/internal/config"
	"github.com/aretw0/planner/pkg/domain"
	"github.com/aretw0/planner/pkg/dsl"
)

type roomsParams struct {
	Rooms []string `yaml:"rooms"`
	From  string   `yaml:"from"`
	To    string   `yaml:"to"`
	Ring  bool     `yaml:"ring"`
}

// Rooms is a robot walking along a corridor of rooms, optionally closed into a ring.
func Rooms() *Sample {
	return &Sample{
		Name:        "rooms",
		Description: "A robot moves between adjacent rooms of a corridor",
		Defaults: map[string]any{
			"rooms": []string{"A", "B", "C", "D", "E"},
			"ring":  false,
		},
		build: buildRooms,
	}
}

func buildRooms(raw map[string]any) (*domain.Problem, error) {
	var p roomsParams
	if err := config.Decode(raw, &p); err != nil {
		return nil, err
	}
	if len(p.Rooms) < 2 {
		return nil, fmt.Errorf("need at least two rooms, got %d", len(p.Rooms))
	}
	if len(p.Rooms) > MaxRooms {
		return nil, fmt.Errorf("at most %d rooms are allowed, got %d", MaxRooms, len(p.Rooms))
	}
	if p.From == "" {
		p.From = p.Rooms[0]
	}
	if p.To == "" {
		p.To = p.Rooms[len(p.Rooms)-1]
	}

	b := dsl.New("rooms")
	b.Objects("room", p.Rooms...)
	b.Action("move").
		Params("from:room", "to:room").
		Pre("at(?from)", "door(?from,?to)").
		Add("at(?to)").
		Del("at(?from)")

	known := make(map[string]bool, len(p.Rooms))
	for _, r := range p.Rooms {
		known[r] = true
	}
	for _, r := range []string{p.From, p.To} {
		if !known[r] {
			return nil, fmt.Errorf("unknown room %q", r)
		}
	}

	door := func(x, y string) {
		b.InitFacts(domain.NewFact("door", x, y), domain.NewFact("door", y, x))
	}
	for i := 1; i < len(p.Rooms); i++ {
		door(p.Rooms[i-1], p.Rooms[i])
	}
	if p.Ring && len(p.Rooms) > 2 {
		door(p.Rooms[len(p.Rooms)-1], p.Rooms[0])
	}

	b.InitFacts(domain.NewFact("at", p.From))
	b.GoalFacts(domain.NewFact("at", p.To))
	return b.Build()
}
