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

package queens_test

import (
	"errors"
	"slices"
	"testing"

	queens "github.com/spjmurray/go-queens"
	"github.com/spjmurray/go-queens/pkg/backtrack"
)

// A 5x5 board with exactly one valid placement.
//
//nolint:gochecknoglobals
var unique5x5 = &queens.Puzzle{
	Rows:   5,
	Cols:   5,
	Colors: []int{0, 1, 2, 3, 4},
	IdxToColor: []int{
		2, 2, 3, 1, 1,
		0, 3, 3, 1, 1,
		0, 0, 3, 4, 4,
		0, 0, 0, 4, 4,
		0, 0, 0, 4, 4,
	},
}

func TestSolve(t *testing.T) {
	solution, err := queens.Solve(unique5x5)
	if err != nil {
		t.Fatalf("solve failed: %v", err)
	}

	if err := queens.Verify(unique5x5, solution); err != nil {
		t.Fatalf("solution %v does not verify: %v", solution, err)
	}

	sorted := slices.Clone(solution)
	slices.Sort(sorted)

	if expected := []int{1, 9, 12, 15, 23}; !slices.Equal(sorted, expected) {
		t.Fatalf("expected the unique placement %v, got %v", expected, sorted)
	}
}

func TestSolveDeterministic(t *testing.T) {
	first, err := queens.Solve(unique5x5)
	if err != nil {
		t.Fatalf("solve failed: %v", err)
	}

	second, err := queens.Solve(unique5x5)
	if err != nil {
		t.Fatalf("solve failed: %v", err)
	}

	if !slices.Equal(first, second) {
		t.Fatalf("two solves disagree: %v vs %v", first, second)
	}
}

func TestSolveSingleCell(t *testing.T) {
	p := &queens.Puzzle{
		Rows:       1,
		Cols:       1,
		Colors:     []int{0},
		IdxToColor: []int{0},
	}

	solution, err := queens.Solve(p)
	if err != nil {
		t.Fatalf("solve failed: %v", err)
	}

	if !slices.Equal(solution, []int{0}) {
		t.Fatalf("expected [0], got %v", solution)
	}
}

func TestSolveUnsolvable(t *testing.T) {
	// Colors 0 and 1 both live in the top left 2x2 block.
	p := &queens.Puzzle{
		Rows:   4,
		Cols:   4,
		Colors: []int{0, 1, 2, 3},
		IdxToColor: []int{
			0, 1, 2, 2,
			1, 0, 2, 2,
			3, 3, 2, 2,
			3, 3, 2, 2,
		},
	}

	solution, err := queens.Solve(p)
	if err != nil {
		t.Fatalf("solve failed: %v", err)
	}

	if len(solution) != 0 {
		t.Fatalf("expected no solution, got %v", solution)
	}
}

func TestSolveMalformed(t *testing.T) {
	cases := []struct {
		name   string
		puzzle *queens.Puzzle
	}{
		{
			name:   "zero rows",
			puzzle: &queens.Puzzle{Cols: 1, Colors: []int{0}, IdxToColor: []int{0}},
		},
		{
			name:   "no colors",
			puzzle: &queens.Puzzle{Rows: 1, Cols: 1, IdxToColor: []int{0}},
		},
		{
			name:   "table too short",
			puzzle: &queens.Puzzle{Rows: 2, Cols: 2, Colors: []int{0, 1}, IdxToColor: []int{0, 1}},
		},
		{
			name:   "color out of range",
			puzzle: &queens.Puzzle{Rows: 2, Cols: 2, Colors: []int{0, 1}, IdxToColor: []int{0, 1, 2, 1}},
		},
		{
			name:   "too wide for the trackers",
			puzzle: &queens.Puzzle{Rows: 65, Cols: 1, Colors: make([]int, 65), IdxToColor: make([]int, 65)},
		},
	}

	for _, c := range cases {
		if _, err := queens.Solve(c.puzzle); !errors.Is(err, backtrack.ErrInvalidModel) {
			t.Fatalf("%s: expected ErrInvalidModel, got %v", c.name, err)
		}
	}
}

func TestSolveJSON(t *testing.T) {
	input := []byte(`{"rows":1,"cols":1,"colors":[0],"idxToColor":[0]}`)

	output, err := queens.SolveJSON(input)
	if err != nil {
		t.Fatalf("solve failed: %v", err)
	}

	if string(output) != "[0]" {
		t.Fatalf("expected [0], got %s", output)
	}
}

func TestSolveJSONUnsolvable(t *testing.T) {
	// A 2x2 board cannot hold two queens.
	input := []byte(`{"rows":2,"cols":2,"colors":[0,1],"idxToColor":[0,1,1,0]}`)

	output, err := queens.SolveJSON(input)
	if err != nil {
		t.Fatalf("solve failed: %v", err)
	}

	if string(output) != "[]" {
		t.Fatalf("expected [], got %s", output)
	}
}

func TestSolveJSONMalformed(t *testing.T) {
	if _, err := queens.SolveJSON([]byte(`{"rows":`)); err == nil {
		t.Fatal("expected a decode error")
	}
}

func TestVerify(t *testing.T) {
	// One color per row.
	p := &queens.Puzzle{
		Rows:   3,
		Cols:   3,
		Colors: []int{0, 1, 2},
		IdxToColor: []int{
			0, 0, 0,
			1, 1, 1,
			2, 2, 2,
		},
	}

	cases := []struct {
		name     string
		solution []int
	}{
		{name: "wrong length", solution: []int{0, 5}},
		{name: "off the board", solution: []int{0, 5, 9}},
		{name: "duplicate row", solution: []int{0, 1, 5}},
		{name: "duplicate column", solution: []int{0, 3, 7}},
		{name: "diagonally touching", solution: []int{0, 5, 7}},
	}

	for _, c := range cases {
		if err := queens.Verify(p, c.solution); !errors.Is(err, queens.ErrInvalidSolution) {
			t.Fatalf("%s: expected ErrInvalidSolution, got %v", c.name, err)
		}
	}
}
