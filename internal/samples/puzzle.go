package samples

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/aretw0/planner/internal/config"
	"github.com/aretw0/planner/pkg/domain"
	"github.com/aretw0/planner/pkg/dsl"
	"github.com/aretw0/planner/pkg/ports"
)

// HeuristicManhattan names the sliding-puzzle distance heuristic.
const HeuristicManhattan = "manhattan"

type puzzleParams struct {
	Width  int   `yaml:"width"`
	Height int   `yaml:"height"`
	Steps  int   `yaml:"steps"`
	Seed   int64 `yaml:"seed"`
	Tiles  []int `yaml:"tiles"`
}

// Puzzle is the sliding-tile N-puzzle. The board is shuffled by Steps random
// moves of the blank from the solved position, so it is always solvable.
// Tiles may instead give an explicit row-major board with 0 as the blank.
func Puzzle() *Sample {
	return &Sample{
		Name:        "puzzle",
		Description: "Sliding-tile puzzle shuffled by seeded random moves",
		Defaults: map[string]any{
			"width":  3,
			"height": 3,
			"steps":  20,
			"seed":   1,
		},
		DefaultHeuristic: HeuristicManhattan,
		Heuristics: map[string]ports.HeuristicFactory{
			HeuristicManhattan: NewManhattan,
		},
		build: buildPuzzle,
	}
}

func cellName(row, col int) string { return fmt.Sprintf("c%d_%d", row, col) }

func tileName(n int) string { return fmt.Sprintf("t%d", n) }

func buildPuzzle(raw map[string]any) (*domain.Problem, error) {
	var p puzzleParams
	if err := config.Decode(raw, &p); err != nil {
		return nil, err
	}
	if p.Width < 2 || p.Height < 2 {
		return nil, fmt.Errorf("board must be at least 2x2, got %dx%d", p.Width, p.Height)
	}
	if p.Width > MaxBoardSide || p.Height > MaxBoardSide {
		return nil, fmt.Errorf("board must be at most %dx%d, got %dx%d", MaxBoardSide, MaxBoardSide, p.Width, p.Height)
	}
	if p.Steps < 0 || p.Steps > MaxSteps {
		return nil, fmt.Errorf("steps must be between 0 and %d, got %d", MaxSteps, p.Steps)
	}

	size := p.Width * p.Height
	board := p.Tiles
	if len(board) == 0 {
		board = shuffle(p.Width, p.Height, p.Steps, p.Seed)
	} else if err := checkBoard(board, size); err != nil {
		return nil, err
	}

	b := dsl.New(fmt.Sprintf("puzzle-%dx%d", p.Width, p.Height))
	for n := 1; n < size; n++ {
		b.Objects("tile", tileName(n))
	}
	for r := 0; r < p.Height; r++ {
		for c := 0; c < p.Width; c++ {
			b.Objects("cell", cellName(r, c))
			if c+1 < p.Width {
				b.InitFacts(
					domain.NewFact("adj", cellName(r, c), cellName(r, c+1)),
					domain.NewFact("adj", cellName(r, c+1), cellName(r, c)),
				)
			}
			if r+1 < p.Height {
				b.InitFacts(
					domain.NewFact("adj", cellName(r, c), cellName(r+1, c)),
					domain.NewFact("adj", cellName(r+1, c), cellName(r, c)),
				)
			}
		}
	}

	b.Action("slide").
		Params("t:tile", "from:cell", "to:cell").
		Pre("at(?t,?from)", "blank(?to)", "adj(?from,?to)").
		Add("at(?t,?to)", "blank(?from)").
		Del("at(?t,?from)", "blank(?to)")

	for i, tile := range board {
		cell := cellName(i/p.Width, i%p.Width)
		if tile == 0 {
			b.InitFacts(domain.NewFact("blank", cell))
		} else {
			b.InitFacts(domain.NewFact("at", tileName(tile), cell))
		}
	}
	for n := 1; n < size; n++ {
		b.GoalFacts(domain.NewFact("at", tileName(n), cellName(n/p.Width, n%p.Width)))
	}
	return b.Build()
}

func checkBoard(board []int, size int) error {
	if len(board) != size {
		return fmt.Errorf("board has %d tiles, want %d", len(board), size)
	}
	seen := make([]bool, size)
	for _, t := range board {
		if t < 0 || t >= size || seen[t] {
			return fmt.Errorf("board is not a permutation of 0..%d", size-1)
		}
		seen[t] = true
	}
	return nil
}

// shuffle moves the blank steps times from the solved board, trying directions
// in a seeded random order and taking the first legal one.
func shuffle(width, height, steps int, seed int64) []int {
	board := make([]int, width*height)
	for i := range board {
		board[i] = i
	}
	rng := rand.New(rand.NewSource(seed))
	blank := 0
	moves := [][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}
	for i := 0; i < steps; i++ {
		rng.Shuffle(len(moves), func(a, b int) { moves[a], moves[b] = moves[b], moves[a] })
		row, col := blank/width, blank%width
		for _, m := range moves {
			r, c := row+m[0], col+m[1]
			if r < 0 || r >= height || c < 0 || c >= width {
				continue
			}
			next := r*width + c
			board[blank], board[next] = board[next], board[blank]
			blank = next
			break
		}
	}
	return board
}

// NewManhattan builds the sum of Manhattan distances of every goal tile to its
// goal cell. Cell coordinates are read from the cell object names.
func NewManhattan(g *domain.Grounding) (ports.Heuristic, error) {
	coords := map[string][2]int{}
	for _, o := range g.Problem().Objects {
		var r, c int
		if _, err := fmt.Sscanf(o.Name, "c%d_%d", &r, &c); err == nil && o.Type == "cell" {
			coords[o.Name] = [2]int{r, c}
		}
	}
	if len(coords) == 0 {
		return nil, fmt.Errorf("%s needs a sliding puzzle problem", HeuristicManhattan)
	}

	return ports.HeuristicFunc(func(s domain.State, goal domain.Goal) float64 {
		where := make(map[string]string)
		for _, f := range s.Facts() {
			if f.Name() == "at" && f.Arity() == 2 {
				where[f.Arg(0)] = f.Arg(1)
			}
		}
		total := 0
		for _, f := range goal {
			if f.Name() != "at" || f.Arity() != 2 {
				continue
			}
			cur, ok := where[f.Arg(0)]
			if !ok {
				return math.Inf(1)
			}
			a, b := coords[cur], coords[f.Arg(1)]
			total += abs(a[0]-b[0]) + abs(a[1]-b[1])
		}
		return float64(total)
	}), nil
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
