/*
Copyright 2024 Simon Murray

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package backtrack

import (
	"slices"
)

// candidate is a cell the solver may commit next, with the score the
// ordering heuristic assigned to it.
type candidate struct {
	row   int
	col   int
	score int
}

// Stats reports what a solve cost.
type Stats struct {
	// Nodes is the number of search nodes visited, counting the root.
	Nodes int
	// MaxDepth is the deepest number of simultaneously committed queens.
	MaxDepth int
}

// Options tunes solver behaviour.
type Options struct {
	// DisableNoGoods turns off the dead-end cache.  The same solutions are
	// found either way, the search just revisits branches it could have
	// rejected outright.  Mostly useful for testing and benchmarking.
	DisableNoGoods bool
}

// Solver owns all the mutable state of one solve: the occupancy bitsets,
// the adjacency counts, the dead-end cache and the stack of committed
// cells.  A solver is single use and not safe for concurrent use.
type Solver struct {
	model    *Model
	used     *tracker
	adjacent *adjacency
	nogoods  *noGoods
	solution []int
	stats    Stats
}

// New creates a solver for the model.
func New(m *Model, o *Options) *Solver {
	s := &Solver{
		model:    m,
		used:     newTracker(m.rows, m.cols, m.colors),
		adjacent: newAdjacency(m.rows, m.cols),
		nogoods:  newNoGoods(),
	}

	if o != nil && o.DisableNoGoods {
		s.nogoods = nil
	}

	return s
}

// Solve runs the search to completion and returns the committed cell
// indices in the order they were chosen, or an empty slice when no valid
// placement exists.
func (s *Solver) Solve() []int {
	if !s.solve(0) {
		return []int{}
	}

	return slices.Clone(s.solution)
}

// Stats returns what the last Solve cost.
func (s *Solver) Stats() Stats {
	return s.stats
}

// candidates scans the board for every cell whose row, column and color
// are all free and which no committed queen touches.  The same scan
// tallies, per unoccupied row, column and color, how many of those cells
// could still serve it.
//
// If anything unoccupied has no cell left that could serve it the whole
// position is futile and the candidate set is empty: this catches the dead
// end one scan early instead of one recursion level late.
//
// Survivors are ordered by the most constrained of their three dimensions,
// fewest remaining spots first, so the search attacks the tightest
// constraint while it still has choices.  Ties keep the row-major scan
// order, which keeps the search deterministic.
func (s *Solver) candidates() []candidate {
	rowSpots := make([]int, s.model.rows)
	colSpots := make([]int, s.model.cols)
	colorSpots := make([]int, s.model.colors)

	var candidates []candidate

	for row := range s.model.rows {
		for col := range s.model.cols {
			index := row*s.model.cols + col
			color := s.model.colorOf[index]

			if s.used.used(row, col, color) || s.adjacent.blocked(index) {
				continue
			}

			rowSpots[row]++
			colSpots[col]++
			colorSpots[color]++

			candidates = append(candidates, candidate{row: row, col: col})
		}
	}

	if s.forwardCheckFailure(rowSpots, colSpots, colorSpots) {
		return nil
	}

	for i, c := range candidates {
		candidates[i].score = min(rowSpots[c.row], colSpots[c.col], colorSpots[s.model.colorOf[c.row*s.model.cols+c.col]])
	}

	slices.SortStableFunc(candidates, func(a, b candidate) int {
		return a.score - b.score
	})

	return candidates
}

// forwardCheckFailure reports whether any unoccupied row, column or color
// has no candidate cell left that could serve it.
func (s *Solver) forwardCheckFailure(rowSpots, colSpots, colorSpots []int) bool {
	for row, spots := range rowSpots {
		if !s.used.rowUsed(row) && spots == 0 {
			return true
		}
	}

	for col, spots := range colSpots {
		if !s.used.colUsed(col) && spots == 0 {
			return true
		}
	}

	for color, spots := range colorSpots {
		if !s.used.colorUsed(color) && spots == 0 {
			return true
		}
	}

	return false
}

// solve is the recursive search.  Each commit occupies a row, a column and
// a color, so the depth is bounded by the smallest of the three and
// termination is guaranteed.
func (s *Solver) solve(depth int) bool {
	s.stats.Nodes++
	s.stats.MaxDepth = max(s.stats.MaxDepth, depth)

	if s.used.solved() {
		return true
	}

	for _, c := range s.candidates() {
		index := c.row*s.model.cols + c.col
		color := s.model.colorOf[index]

		// Probe the dead-end cache with the speculative placement before
		// paying for a commit.
		s.solution = append(s.solution, index)

		if s.nogoods != nil && s.nogoods.search(s.solution) {
			s.solution = s.solution[:len(s.solution)-1]

			continue
		}

		// Put a queen on this cell.
		s.used.set(c.row, c.col, color, true)
		s.adjacent.commit(index)

		if s.solve(depth + 1) {
			return true
		}

		// Backtrack and try the next candidate.
		s.used.set(c.row, c.col, color, false)
		s.adjacent.uncommit(index)

		s.solution = s.solution[:len(s.solution)-1]
	}

	// Every extension of this combination is exhausted, remember it.
	if s.nogoods != nil {
		s.nogoods.insert(s.solution)
	}

	return false
}
