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

// Command queens reads a puzzle in JSON form and prints the solution as a
// JSON array of cell indices, empty when the puzzle has no solution.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/pkg/profile"

	queens "github.com/spjmurray/go-queens"
)

func run(path string) error {
	in := os.Stdin

	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return err
		}

		defer f.Close()

		in = f
	}

	data, err := io.ReadAll(in)
	if err != nil {
		return err
	}

	solution, err := queens.SolveJSON(data)
	if err != nil {
		return err
	}

	fmt.Println(string(solution))

	return nil
}

func main() {
	path := flag.String("f", "", "read the puzzle from a file rather than stdin")
	profiling := flag.Bool("profile", false, "write a CPU profile for the run")

	flag.Parse()

	if *profiling {
		defer profile.Start().Stop()
	}

	if err := run(*path); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
