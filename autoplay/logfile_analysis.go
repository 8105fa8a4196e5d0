package autoplay

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
)

// ReadLogFile rebuilds a summary from a game log written by PlayGames.
func ReadLogFile(r io.Reader) (*Summary, error) {
	cr := csv.NewReader(r)
	sum := &Summary{}
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if record[0] == "gameID" {
			// this is the header line
			continue
		}
		if len(record) != 6 {
			return nil, fmt.Errorf("bad log line %v", record)
		}
		var res GameResult
		ints := []*int{&res.ID, nil, &res.Pieces, &res.Lines, nil, &res.MaxHeight}
		for i, dst := range ints {
			if dst == nil {
				continue
			}
			if *dst, err = strconv.Atoi(record[i]); err != nil {
				return nil, err
			}
		}
		res.Seed = record[1]
		if res.ToppedOut, err = strconv.ParseBool(record[4]); err != nil {
			return nil, err
		}
		sum.add(res)
	}
	return sum, nil
}

// AnalyzeLogFile summarizes the given game log.
func AnalyzeLogFile(filepath string) (string, error) {
	file, err := os.Open(filepath)
	if err != nil {
		return "", err
	}
	defer file.Close()
	sum, err := ReadLogFile(file)
	if err != nil {
		return "", err
	}
	return sum.String(), nil
}
