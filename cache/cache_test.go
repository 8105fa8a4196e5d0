package cache

import (
	"errors"
	"testing"

	"github.com/matryer/is"
)

func TestLoadOnce(t *testing.T) {
	is := is.New(t)
	calls := 0
	loader := func(key string) (any, error) {
		calls++
		return key + "-obj", nil
	}
	for i := 0; i < 3; i++ {
		obj, err := Load("weights-a", loader)
		is.NoErr(err)
		is.Equal(obj.(string), "weights-a-obj")
	}
	is.Equal(calls, 1)

	Evict("weights-a")
	_, err := Load("weights-a", loader)
	is.NoErr(err)
	is.Equal(calls, 2)
}

func TestFailedLoadNotCached(t *testing.T) {
	is := is.New(t)
	boom := errors.New("boom")
	_, err := Load("bad", func(string) (any, error) { return nil, boom })
	is.Equal(err, boom)
	obj, err := Load("bad", func(string) (any, error) { return 7, nil })
	is.NoErr(err)
	is.Equal(obj.(int), 7)
}
