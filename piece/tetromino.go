package piece

import (
	"fmt"
	"sort"
	"strings"
)

// The seven tetrominoes in their spawn orientation. The bitmaps keep the
// padding rows the host game uses, so the I piece is 4x4 and the
// three-wide pieces are 3x3.
var tetrominoes = map[string]Shape{
	"I": MustNew([]int32{
		0, 0, 0, 0,
		1, 1, 1, 1,
		0, 0, 0, 0,
		0, 0, 0, 0,
	}, 4, 4),
	"O": MustNew([]int32{
		1, 1,
		1, 1,
	}, 2, 2),
	"T": MustNew([]int32{
		0, 1, 0,
		1, 1, 1,
		0, 0, 0,
	}, 3, 3),
	"S": MustNew([]int32{
		0, 1, 1,
		1, 1, 0,
		0, 0, 0,
	}, 3, 3),
	"Z": MustNew([]int32{
		1, 1, 0,
		0, 1, 1,
		0, 0, 0,
	}, 3, 3),
	"J": MustNew([]int32{
		1, 0, 0,
		1, 1, 1,
		0, 0, 0,
	}, 3, 3),
	"L": MustNew([]int32{
		0, 0, 1,
		1, 1, 1,
		0, 0, 0,
	}, 3, 3),
}

// Names lists the tetromino names in a fixed order.
func Names() []string {
	names := make([]string, 0, len(tetrominoes))
	for n := range tetrominoes {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// ByName looks up a tetromino, case-insensitively.
func ByName(name string) (Shape, error) {
	s, ok := tetrominoes[strings.ToUpper(name)]
	if !ok {
		return Shape{}, fmt.Errorf("unknown piece %q; want one of %v", name, Names())
	}
	return Rotate(s, 0), nil
}
