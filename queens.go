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

// Package queens solves queens placement puzzles: a rectangular board is
// partitioned into colored regions, and a queen must be placed in every
// row, every column and every region such that no two queens touch
// diagonally.
package queens

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spjmurray/go-util/pkg/set"
	"github.com/spjmurray/go-util/pkg/slices"

	"github.com/spjmurray/go-queens/pkg/backtrack"
)

var (
	ErrInvalidSolution = errors.New("invalid solution")
)

// Puzzle describes a board.  The field names and JSON tags are the wire
// format hosting applications exchange puzzles in.
type Puzzle struct {
	// Rows is the number of rows on the board.
	Rows int `json:"rows"`
	// Cols is the number of columns on the board.
	Cols int `json:"cols"`
	// Colors lists the region identifiers, its length is the region count.
	Colors []int `json:"colors"`
	// IdxToColor maps a cell index, row*cols+col, to an index into Colors.
	IdxToColor []int `json:"idxToColor"`
}

// Solve finds one valid placement of queens for the puzzle and returns the
// chosen cell indices in the order they were committed.  An unsolvable
// puzzle yields an empty slice, it is not an error.  A puzzle that cannot
// be represented at all is rejected before any searching happens.
func Solve(p *Puzzle) ([]int, error) {
	m, err := backtrack.NewModel(p.Rows, p.Cols, len(p.Colors), p.IdxToColor)
	if err != nil {
		return nil, err
	}

	return backtrack.New(m, nil).Solve(), nil
}

// SolveJSON wraps Solve for callers holding the puzzle in its wire form.
// The result is a JSON array of cell indices, empty when unsolvable.
func SolveJSON(data []byte) ([]byte, error) {
	p := &Puzzle{}

	if err := json.Unmarshal(data, p); err != nil {
		return nil, err
	}

	solution, err := Solve(p)
	if err != nil {
		return nil, err
	}

	return json.Marshal(solution)
}

// distinct counts the members of a set.
func distinct(s set.Set[int]) int {
	var n int

	for range s.All() {
		n++
	}

	return n
}

// Verify checks a placement against the puzzle independently of the
// solver: every row, column and region must hold exactly one queen and no
// two queens may touch diagonally.
func Verify(p *Puzzle, solution []int) error {
	if len(solution) != p.Rows || len(solution) != p.Cols || len(solution) != len(p.Colors) {
		return fmt.Errorf("%w: %d queens cannot cover %d rows, %d cols and %d colors", ErrInvalidSolution, len(solution), p.Rows, p.Cols, len(p.Colors))
	}

	rows := set.New[int]()
	cols := set.New[int]()
	colors := set.New[int]()

	for _, index := range solution {
		if index < 0 || index >= p.Rows*p.Cols {
			return fmt.Errorf("%w: cell %d is off the board", ErrInvalidSolution, index)
		}

		rows.Add(index / p.Cols)
		cols.Add(index % p.Cols)
		colors.Add(p.IdxToColor[index])
	}

	if distinct(rows) != p.Rows || distinct(cols) != p.Cols || distinct(colors) != len(p.Colors) {
		return fmt.Errorf("%w: a row, column or color holds more than one queen", ErrInvalidSolution)
	}

	for a, b := range slices.Permute(solution) {
		rowDelta := a/p.Cols - b/p.Cols
		colDelta := a%p.Cols - b%p.Cols

		if (rowDelta == 1 || rowDelta == -1) && (colDelta == 1 || colDelta == -1) {
			return fmt.Errorf("%w: cells %d and %d touch diagonally", ErrInvalidSolution, a, b)
		}
	}

	return nil
}
