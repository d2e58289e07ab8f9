package scramble

import (
	"math/big"
	"sort"
)

// Pair places source chunk Src at destination slot Dst.
type Pair struct {
	Dst int
	Src int
}

// Mapping is the full chunk remapping table, one Pair per destination slot.
type Mapping []Pair

// Scrambler derives the chunk mapping for one (seed, grid) pair.
//
// Two Randomizers are built from the same seed: one is consumed while
// drawing the dependency graph, the other only supplies the base
// permutation. Their streams never interact.
type Scrambler struct {
	gridSize    int
	totalPieces int
	randomizer  *Randomizer
	graph       *dependencyGraph
	path        []int
}

// NewScrambler builds the dependency graph and scramble path for seed.
func NewScrambler(seed *big.Int, gridSize int) (*Scrambler, error) {
	randomizer, err := NewRandomizer(seed, gridSize)
	if err != nil {
		return nil, err
	}
	graphRNG, err := NewRandomizer(seed, gridSize)
	if err != nil {
		return nil, err
	}

	total := gridSize * gridSize
	g := buildDependencyGraph(graphRNG, total)

	return &Scrambler{
		gridSize:    gridSize,
		totalPieces: total,
		randomizer:  randomizer,
		graph:       g,
		path:        g.topologicalOrder(),
	}, nil
}

// GridSize returns the grid dimension.
func (s *Scrambler) GridSize() int { return s.gridSize }

// TotalPieces returns gridSize².
func (s *Scrambler) TotalPieces() int { return s.totalPieces }

// Order returns the base permutation.
func (s *Scrambler) Order() []int { return s.randomizer.Order() }

// ScramblePath returns the topological order of the dependency graph.
func (s *Scrambler) ScramblePath() []int {
	out := make([]int, len(s.path))
	copy(out, s.path)
	return out
}

// EdgeCount returns the number of edges in the dependency graph.
func (s *Scrambler) EdgeCount() int { return s.graph.edgeCount() }

// Mapping returns the destination→source table. When the scramble path
// covers every piece the base permutation is re-indexed through it.
func (s *Scrambler) Mapping() Mapping {
	order := s.randomizer.Order()
	if len(s.path) == s.totalPieces {
		reindexed := make([]int, s.totalPieces)
		for i, p := range s.path {
			reindexed[i] = order[p]
		}
		order = reindexed
	}

	m := make(Mapping, s.totalPieces)
	for n := range m {
		m[n] = Pair{Dst: n, Src: order[n]}
	}
	return m
}

// Invert swaps every pair and orders the result by destination.
func Invert(m Mapping) Mapping {
	out := make(Mapping, len(m))
	for i, p := range m {
		out[i] = Pair{Dst: p.Src, Src: p.Dst}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Dst < out[j].Dst })
	return out
}
