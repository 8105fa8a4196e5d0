package board

// This file contains some sample boards, used solely for testing.

import "strings"

// SampleBoard is a plaintext board, top row first.
type SampleBoard string

const (
	// SingleGap is a 4x4 board whose floor row is missing column 2.
	SingleGap SampleBoard = `
....
....
....
##.#
`
	// TetrisReady is a 10-wide stack of four rows, all missing the
	// rightmost column. A vertical I clears all four.
	TetrisReady SampleBoard = `
..........
..........
..........
..........
#########.
#########.
#########.
#########.
`
	// Overhang has covered cells: two holes under column 1 and one
	// under column 4.
	Overhang SampleBoard = `
......
.#....
.#..#.
#.....
#...##
`
	// ToppedOut has its spawn row filled so nothing can enter.
	ToppedOut SampleBoard = `
####
#..#
#..#
`
	// Jagged is a bumpy 8-wide stack with a two-deep well at column 3.
	Jagged SampleBoard = `
........
........
##......
##.....#
###.#.##
###.####
`
)

// Grid parses the sample. It panics on malformed samples.
func (s SampleBoard) Grid() Grid {
	return MustFromRows(strings.Split(strings.TrimSpace(string(s)), "\n")...)
}
