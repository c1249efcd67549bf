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
	"errors"
	"fmt"
	"slices"
)

var (
	ErrInvalidModel = errors.New("invalid model")
)

// trackerWidth is the number of rows, columns or colors a single bitset
// can account for.
const trackerWidth = 64

// Model is an immutable description of the board: its dimensions, the
// number of colors, and which color every cell belongs to.  Cells are
// addressed by index, row*cols+col.
type Model struct {
	// rows is the number of rows on the board.
	rows int
	// cols is the number of columns on the board.
	cols int
	// colors is the number of distinct colors the board is partitioned into.
	colors int
	// colorOf maps a cell index to its color.
	colorOf []int
}

// NewModel validates the board description and returns a model the solver
// can operate on.  Validation is fatal: a board that cannot be represented
// is rejected here, never silently truncated.
func NewModel(rows, cols, colors int, colorOf []int) (*Model, error) {
	if rows < 1 || cols < 1 || colors < 1 {
		return nil, fmt.Errorf("%w: dimensions must be positive, got %d x %d with %d colors", ErrInvalidModel, rows, cols, colors)
	}

	if rows > trackerWidth || cols > trackerWidth || colors > trackerWidth {
		return nil, fmt.Errorf("%w: dimensions must not exceed %d, got %d x %d with %d colors", ErrInvalidModel, trackerWidth, rows, cols, colors)
	}

	if len(colorOf) != rows*cols {
		return nil, fmt.Errorf("%w: color table has %d entries, expected %d", ErrInvalidModel, len(colorOf), rows*cols)
	}

	for i, color := range colorOf {
		if color < 0 || color >= colors {
			return nil, fmt.Errorf("%w: cell %d has color %d, expected [0, %d)", ErrInvalidModel, i, color, colors)
		}
	}

	return &Model{
		rows:    rows,
		cols:    cols,
		colors:  colors,
		colorOf: slices.Clone(colorOf),
	}, nil
}

// Rows returns the number of rows on the board.
func (m *Model) Rows() int {
	return m.rows
}

// Cols returns the number of columns on the board.
func (m *Model) Cols() int {
	return m.cols
}

// Colors returns the number of colors on the board.
func (m *Model) Colors() int {
	return m.colors
}

// Color returns the color of a cell.
func (m *Model) Color(index int) int {
	return m.colorOf[index]
}

// adjacency is a precomputed table of the cells diagonally touching every
// cell, paired with a count per cell of how many committed queens touch it.
// A cell with a non-zero count cannot take a queen.
type adjacency struct {
	// neighbours holds, per cell, the up to four in-bounds diagonal cells.
	neighbours [][]int
	// counts is the number of committed queens diagonally touching each cell.
	counts []int
}

func newAdjacency(rows, cols int) *adjacency {
	neighbours := make([][]int, rows*cols)

	for row := range rows {
		for col := range cols {
			cell := make([]int, 0, 4)

			for _, d := range [4][2]int{{-1, -1}, {-1, 1}, {1, -1}, {1, 1}} {
				newRow := row + d[0]
				newCol := col + d[1]

				if newRow >= 0 && newRow < rows && newCol >= 0 && newCol < cols {
					cell = append(cell, newRow*cols+newCol)
				}
			}

			neighbours[row*cols+col] = cell
		}
	}

	return &adjacency{
		neighbours: neighbours,
		counts:     make([]int, rows*cols),
	}
}

// blocked reports whether any committed queen diagonally touches the cell.
func (a *adjacency) blocked(index int) bool {
	return a.counts[index] > 0
}

// commit records a queen on the cell with its neighbours.
func (a *adjacency) commit(index int) {
	for _, neighbour := range a.neighbours[index] {
		a.counts[neighbour]++
	}
}

// uncommit reverses a prior commit of the cell.
func (a *adjacency) uncommit(index int) {
	for _, neighbour := range a.neighbours[index] {
		a.counts[neighbour]--
	}
}

// tracker records which rows, columns and colors currently hold a queen,
// one bit each.
type tracker struct {
	// rows, cols and colors have a bit set per occupied row, column or color.
	rows   uint64
	cols   uint64
	colors uint64
	// requiredRows, requiredCols and requiredColors are the masks the
	// bitsets must reach for the board to be solved.
	requiredRows   uint64
	requiredCols   uint64
	requiredColors uint64
}

// mask returns a bitmask with the low n bits set.
func mask(n int) uint64 {
	if n == trackerWidth {
		return ^uint64(0)
	}

	return (uint64(1) << n) - 1
}

func newTracker(rows, cols, colors int) *tracker {
	return &tracker{
		requiredRows:   mask(rows),
		requiredCols:   mask(cols),
		requiredColors: mask(colors),
	}
}

// used reports whether the row, column or color already holds a queen.
func (t *tracker) used(row, col, color int) bool {
	return (t.rows>>row)&1 == 1 || (t.cols>>col)&1 == 1 || (t.colors>>color)&1 == 1
}

func (t *tracker) rowUsed(row int) bool {
	return (t.rows>>row)&1 == 1
}

func (t *tracker) colUsed(col int) bool {
	return (t.cols>>col)&1 == 1
}

func (t *tracker) colorUsed(color int) bool {
	return (t.colors>>color)&1 == 1
}

// set marks or clears the row, column and color as one step, so the three
// bitsets can never disagree with each other.
func (t *tracker) set(row, col, color int, value bool) {
	var bit uint64

	if value {
		bit = 1
	}

	t.rows = (t.rows &^ (1 << row)) | (bit << row)
	t.cols = (t.cols &^ (1 << col)) | (bit << col)
	t.colors = (t.colors &^ (1 << color)) | (bit << color)
}

// solved reports whether every row, column and color holds a queen.
func (t *tracker) solved() bool {
	return t.rows == t.requiredRows && t.cols == t.requiredCols && t.colors == t.requiredColors
}

// trieNode is a single node of the no-goods trie.  Children are keyed by
// cell index; most nodes have very few, so a sparse map beats a dense
// array over the whole board.
type trieNode struct {
	children map[int]*trieNode
	leaf     bool
}

func newTrieNode() *trieNode {
	return &trieNode{
		children: map[int]*trieNode{},
	}
}

// noGoods caches combinations of cell indices that cannot lead to a valid
// solution.  A root-to-leaf path holds one dead combination in ascending
// order.  The cache only ever grows over the lifetime of a solve.
type noGoods struct {
	root *trieNode
}

func newNoGoods() *noGoods {
	return &noGoods{
		root: newTrieNode(),
	}
}

// insert records a dead partial solution.
func (n *noGoods) insert(solution []int) {
	sorted := slices.Clone(solution)
	slices.Sort(sorted)

	current := n.root

	for _, index := range sorted {
		child, ok := current.children[index]
		if !ok {
			child = newTrieNode()
			current.children[index] = child
		}

		current = child
	}

	current.leaf = true
}

// search reports whether the partial solution contains a recorded dead
// combination.  The walk consumes the sorted solution strictly in order
// and stops at the first element with no matching child, so a recorded
// combination is only found when its elements are the smallest in the
// solution with nothing interleaved.  A true result is always genuine; a
// false result proves nothing.
func (n *noGoods) search(solution []int) bool {
	sorted := slices.Clone(solution)
	slices.Sort(sorted)

	current := n.root

	for _, index := range sorted {
		child, ok := current.children[index]
		if !ok {
			return false
		}

		current = child

		// A recorded dead combination is contained in the solution.
		if current.leaf {
			return true
		}
	}

	return false
}
