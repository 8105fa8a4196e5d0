package equity

import (
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"
)

// ReadWeights decodes a YAML weights document. Keys that are absent keep
// their default value, so a file may override a single weight.
func ReadWeights(r io.Reader) (Weights, error) {
	w := DefaultWeights()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&w); err != nil {
		if err == io.EOF {
			return w, nil
		}
		return Weights{}, fmt.Errorf("decoding weights: %w", err)
	}
	if err := w.Validate(); err != nil {
		return Weights{}, err
	}
	return w, nil
}

// LoadWeights reads a weights file. An empty path yields the defaults.
func LoadWeights(path string) (Weights, error) {
	if path == "" {
		return DefaultWeights(), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return Weights{}, err
	}
	defer f.Close()
	w, err := ReadWeights(f)
	if err != nil {
		return Weights{}, fmt.Errorf("%s: %w", path, err)
	}
	log.Debug().Str("path", path).Interface("weights", w).Msg("loaded-weights")
	return w, nil
}

// WriteWeights encodes w as YAML.
func WriteWeights(out io.Writer, w Weights) error {
	enc := yaml.NewEncoder(out)
	defer enc.Close()
	return enc.Encode(w)
}
