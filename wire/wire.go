// Package wire encodes move requests and responses in the protobuf binary
// format. The messages are small and fixed, so they are written with
// protowire directly rather than through generated code.
//
//	message MoveRequest {
//	  repeated int32 grid = 1;
//	  int32 grid_width = 2;
//	  int32 grid_height = 3;
//	  repeated int32 piece = 4;
//	  int32 piece_width = 5;
//	  int32 piece_height = 6;
//	  repeated int32 next_piece = 7;
//	  int32 next_width = 8;
//	  int32 next_height = 9;
//	}
//
//	message MoveResponse {
//	  int32 x = 1;
//	  int32 y = 2;
//	  int32 rotation = 3;
//	  int32 scaled_score = 4;
//	  bool found = 5;
//	  string error = 6;
//	}
package wire

import (
	"errors"
	"fmt"

	"google.golang.org/protobuf/encoding/protowire"

	"github.com/domino14/tetrabot/move"
)

var ErrBadMessage = errors.New("bad wire message")

type Request struct {
	Grid        []int32
	GridWidth   int32
	GridHeight  int32
	Piece       []int32
	PieceWidth  int32
	PieceHeight int32
	NextPiece   []int32
	NextWidth   int32
	NextHeight  int32
}

// HasNext reports whether the request carries a next piece.
func (r *Request) HasNext() bool {
	return len(r.NextPiece) > 0
}

type Response struct {
	X           int32
	Y           int32
	Rotation    int32
	ScaledScore int32
	Found       bool
	Error       string
}

// ResponseFromResult packs an engine result.
func ResponseFromResult(r move.Result) *Response {
	t := r.Tuple()
	return &Response{X: t[0], Y: t[1], Rotation: t[2], ScaledScore: t[3], Found: r.Found}
}

// ErrorResponse is a response with only the error field set.
func ErrorResponse(message string, err error) *Response {
	msg := message
	if err != nil {
		msg = fmt.Sprintf("%s: %s", msg, err.Error())
	}
	return &Response{Error: msg}
}

func appendInt32(b []byte, num protowire.Number, v int32) []byte {
	if v == 0 {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.VarintType)
	return protowire.AppendVarint(b, uint64(int64(v)))
}

func appendPacked(b []byte, num protowire.Number, vs []int32) []byte {
	if len(vs) == 0 {
		return b
	}
	var packed []byte
	for _, v := range vs {
		packed = protowire.AppendVarint(packed, uint64(int64(v)))
	}
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendBytes(b, packed)
}

func (r *Request) Marshal() []byte {
	var b []byte
	b = appendPacked(b, 1, r.Grid)
	b = appendInt32(b, 2, r.GridWidth)
	b = appendInt32(b, 3, r.GridHeight)
	b = appendPacked(b, 4, r.Piece)
	b = appendInt32(b, 5, r.PieceWidth)
	b = appendInt32(b, 6, r.PieceHeight)
	b = appendPacked(b, 7, r.NextPiece)
	b = appendInt32(b, 8, r.NextWidth)
	b = appendInt32(b, 9, r.NextHeight)
	return b
}

func (r *Response) Marshal() []byte {
	var b []byte
	b = appendInt32(b, 1, r.X)
	b = appendInt32(b, 2, r.Y)
	b = appendInt32(b, 3, r.Rotation)
	b = appendInt32(b, 4, r.ScaledScore)
	if r.Found {
		b = protowire.AppendTag(b, 5, protowire.VarintType)
		b = protowire.AppendVarint(b, protowire.EncodeBool(true))
	}
	if r.Error != "" {
		b = protowire.AppendTag(b, 6, protowire.BytesType)
		b = protowire.AppendString(b, r.Error)
	}
	return b
}

// field is one decoded field. Unknown fields are skipped by the caller.
type field struct {
	num    protowire.Number
	typ    protowire.Type
	varint uint64
	bytes  []byte
}

func walk(b []byte, fn func(f field) error) error {
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return fmt.Errorf("%w: %w", ErrBadMessage, protowire.ParseError(n))
		}
		b = b[n:]
		f := field{num: num, typ: typ}
		switch typ {
		case protowire.VarintType:
			f.varint, n = protowire.ConsumeVarint(b)
		case protowire.BytesType:
			f.bytes, n = protowire.ConsumeBytes(b)
		default:
			n = protowire.ConsumeFieldValue(num, typ, b)
		}
		if n < 0 {
			return fmt.Errorf("%w: field %d: %w", ErrBadMessage, num, protowire.ParseError(n))
		}
		b = b[n:]
		if err := fn(f); err != nil {
			return err
		}
	}
	return nil
}

func (f field) int32() (int32, error) {
	if f.typ != protowire.VarintType {
		return 0, fmt.Errorf("%w: field %d is not a varint", ErrBadMessage, f.num)
	}
	return int32(f.varint), nil
}

// repeated accepts both the packed and the unpacked encoding.
func (f field) repeated(dst []int32) ([]int32, error) {
	switch f.typ {
	case protowire.VarintType:
		return append(dst, int32(f.varint)), nil
	case protowire.BytesType:
		b := f.bytes
		for len(b) > 0 {
			v, n := protowire.ConsumeVarint(b)
			if n < 0 {
				return nil, fmt.Errorf("%w: field %d: %w", ErrBadMessage, f.num, protowire.ParseError(n))
			}
			dst = append(dst, int32(v))
			b = b[n:]
		}
		return dst, nil
	}
	return nil, fmt.Errorf("%w: field %d has wire type %d", ErrBadMessage, f.num, f.typ)
}

func (r *Request) Unmarshal(b []byte) error {
	*r = Request{}
	return walk(b, func(f field) error {
		var err error
		switch f.num {
		case 1:
			r.Grid, err = f.repeated(r.Grid)
		case 2:
			r.GridWidth, err = f.int32()
		case 3:
			r.GridHeight, err = f.int32()
		case 4:
			r.Piece, err = f.repeated(r.Piece)
		case 5:
			r.PieceWidth, err = f.int32()
		case 6:
			r.PieceHeight, err = f.int32()
		case 7:
			r.NextPiece, err = f.repeated(r.NextPiece)
		case 8:
			r.NextWidth, err = f.int32()
		case 9:
			r.NextHeight, err = f.int32()
		}
		return err
	})
}

func (r *Response) Unmarshal(b []byte) error {
	*r = Response{}
	return walk(b, func(f field) error {
		var err error
		switch f.num {
		case 1:
			r.X, err = f.int32()
		case 2:
			r.Y, err = f.int32()
		case 3:
			r.Rotation, err = f.int32()
		case 4:
			r.ScaledScore, err = f.int32()
		case 5:
			if f.typ != protowire.VarintType {
				return fmt.Errorf("%w: field 5 is not a varint", ErrBadMessage)
			}
			r.Found = protowire.DecodeBool(f.varint)
		case 6:
			if f.typ != protowire.BytesType {
				return fmt.Errorf("%w: field 6 is not a string", ErrBadMessage)
			}
			r.Error = string(f.bytes)
		}
		return err
	})
}
