package wire

import (
	"errors"
	"math"
	"testing"

	"github.com/matryer/is"
	"google.golang.org/protobuf/encoding/protowire"

	"github.com/domino14/tetrabot/move"
)

func TestResponseBytes(t *testing.T) {
	is := is.New(t)
	r := &Response{X: 2, Y: 3, Found: true}
	is.Equal(r.Marshal(), []byte{0x08, 0x02, 0x10, 0x03, 0x28, 0x01})
}

func TestRequestRoundTrip(t *testing.T) {
	is := is.New(t)
	req := &Request{
		Grid:        []int32{0, 0, 1, 0, 7, 0},
		GridWidth:   3,
		GridHeight:  2,
		Piece:       []int32{1, -1},
		PieceWidth:  2,
		PieceHeight: 1,
	}
	var got Request
	is.NoErr(got.Unmarshal(req.Marshal()))
	is.Equal(got, *req)
	is.True(!got.HasNext())
}

func TestUnpackedRepeatedAccepted(t *testing.T) {
	is := is.New(t)
	var b []byte
	for _, v := range []int32{1, 0, 1} {
		b = protowire.AppendTag(b, 4, protowire.VarintType)
		b = protowire.AppendVarint(b, uint64(v))
	}
	// unknown field 15 is skipped
	b = protowire.AppendTag(b, 15, protowire.Fixed32Type)
	b = protowire.AppendFixed32(b, 99)
	b = protowire.AppendTag(b, 7, protowire.BytesType)
	b = protowire.AppendBytes(b, []byte{1, 1})

	var got Request
	is.NoErr(got.Unmarshal(b))
	is.Equal(got.Piece, []int32{1, 0, 1})
	is.Equal(got.NextPiece, []int32{1, 1})
	is.True(got.HasNext())
}

func TestTruncated(t *testing.T) {
	is := is.New(t)
	req := &Request{Grid: []int32{1, 1, 1, 1}, GridWidth: 2, GridHeight: 2}
	b := req.Marshal()
	var got Request
	err := got.Unmarshal(b[:len(b)-1])
	is.True(errors.Is(err, ErrBadMessage))

	var resp Response
	err = resp.Unmarshal([]byte{0x2a, 0x01, 0x01}) // field 5 as bytes
	is.True(errors.Is(err, ErrBadMessage))
}

func TestResponseFromResult(t *testing.T) {
	is := is.New(t)
	resp := ResponseFromResult(move.NotFound())
	is.True(!resp.Found)
	is.Equal(resp.ScaledScore, int32(math.MinInt32))

	resp = ResponseFromResult(move.Result{
		Placement: move.Placement{X: 4, Y: 17, Rotation: 3, Score: -1.234},
		Found:     true,
	})
	var got Response
	is.NoErr(got.Unmarshal(resp.Marshal()))
	is.Equal(got, Response{X: 4, Y: 17, Rotation: 3, ScaledScore: -123, Found: true})
}

func TestErrorResponse(t *testing.T) {
	is := is.New(t)
	resp := ErrorResponse("could not parse request", errors.New("boom"))
	var got Response
	is.NoErr(got.Unmarshal(resp.Marshal()))
	is.Equal(got.Error, "could not parse request: boom")
	is.True(!got.Found)
}
