package piece

import (
	"errors"
	"testing"

	"github.com/matryer/is"
)

func TestRotateQuarterTurn(t *testing.T) {
	is := is.New(t)
	j := MustNew([]int32{
		1, 0, 0,
		1, 1, 1,
	}, 3, 2)
	r := Rotate(j, 1)
	is.Equal(r.Width(), 2)
	is.Equal(r.Height(), 3)
	is.Equal(r.Cells(), []int32{
		1, 1,
		1, 0,
		1, 0,
	})
}

func TestRotateRoundTrip(t *testing.T) {
	is := is.New(t)
	for _, name := range Names() {
		s, err := ByName(name)
		is.NoErr(err)
		is.True(Rotate(s, 4).Equals(s))
		is.True(Rotate(s, 0).Equals(s))
		is.True(Rotate(Rotate(s, 1), 3).Equals(s))
		is.True(Rotate(s, -1).Equals(Rotate(s, 3)))
	}
	odd := MustNew([]int32{1, 2, 0, 3, 0, 4, 5, 0}, 4, 2)
	cur := odd
	for i := 0; i < 4; i++ {
		cur = Rotate(cur, 1)
	}
	is.True(cur.Equals(odd))
	is.Equal(cur.Width(), 4)
	is.Equal(cur.Height(), 2)
}

func TestRotateDoesNotAlias(t *testing.T) {
	is := is.New(t)
	s := MustNew([]int32{1, 1}, 2, 1)
	r := Rotate(s, 0)
	r.Cells()[0] = 0
	is.Equal(s.Cells()[0], int32(1))
}

func TestOrientations(t *testing.T) {
	is := is.New(t)
	o, err := ByName("O")
	is.NoErr(err)
	for _, r := range Orientations(o) {
		is.True(r.Equals(o))
	}
	i, err := ByName("i")
	is.NoErr(err)
	rots := Orientations(i)
	is.Equal(rots[1].String(), "..#.\n..#.\n..#.\n..#.")
}

func TestNewMalformed(t *testing.T) {
	is := is.New(t)
	_, err := New([]int32{1, 1, 1}, 2, 2)
	is.True(errors.Is(err, ErrMalformedShape))
	_, err = New(nil, 0, 1)
	is.True(errors.Is(err, ErrMalformedShape))
	_, err = New([]int32{0, 0, 0, 0}, 2, 2)
	is.True(errors.Is(err, ErrMalformedShape))
}

func TestByNameUnknown(t *testing.T) {
	is := is.New(t)
	_, err := ByName("Q")
	is.True(err != nil)
}
