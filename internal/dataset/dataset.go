// Package dataset provides the URL sets the benchmark harness filters:
// members to insert, non-members to train the oracle on, and disjoint
// non-members to measure false positives with.
package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

var (
	// ErrMissingColumn is returned when a CSV header lacks a required column.
	ErrMissingColumn = errors.New("dataset: missing column")

	// ErrEmpty is returned when a dataset has no members or no non-members.
	ErrEmpty = errors.New("dataset: empty")
)

// Dataset is a labelled set of items split for a filter benchmark.
type Dataset struct {
	// Members are inserted into the filters.
	Members []string
	// TrainNegatives are non-members the oracle is trained against.
	TrainNegatives []string
	// TestNegatives are non-members used to measure false positives.
	// They never overlap TrainNegatives.
	TestNegatives []string
}

// Synthetic generates n members of the form http://bad-hacker-site-<i>.com
// and n test non-members of the form http://safe-site-<i>.com, for i in
// [0, n). Training non-members use the same shape with indices in [n, 2n).
func Synthetic(n int) *Dataset {
	d := &Dataset{
		Members:        make([]string, n),
		TrainNegatives: make([]string, n),
		TestNegatives:  make([]string, n),
	}
	for i := range n {
		d.Members[i] = fmt.Sprintf("http://bad-hacker-site-%d.com", i)
		d.TestNegatives[i] = fmt.Sprintf("http://safe-site-%d.com", i)
		d.TrainNegatives[i] = fmt.Sprintf("http://safe-site-%d.com", n+i)
	}
	return d
}

// Open loads a CSV dataset from path. See LoadCSV for the format.
func Open(path string) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open dataset: %w", err)
	}
	defer f.Close()

	d, err := LoadCSV(f)
	if err != nil {
		return nil, fmt.Errorf("failed to load dataset %s: %w", path, err)
	}
	return d, nil
}

// LoadCSV reads a CSV with a header row containing "url" and "label" (or
// "labels") columns, in any order. Rows labelled 1, true, bad, phishing or malicious
// (case-insensitive) are members; every other label is a non-member.
// Non-members alternate between the training and test splits, so both
// splits see the same label distribution.
func LoadCSV(r io.Reader) (*Dataset, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err == io.EOF {
		return nil, ErrEmpty
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	urlCol, labelCol := -1, -1
	for i, name := range header {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "url":
			urlCol = i
		case "label", "labels":
			labelCol = i
		}
	}
	if urlCol < 0 {
		return nil, fmt.Errorf("%w: url", ErrMissingColumn)
	}
	if labelCol < 0 {
		return nil, fmt.Errorf("%w: label", ErrMissingColumn)
	}

	d := &Dataset{}
	var negatives int
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read row %d: %w", line, err)
		}
		if urlCol >= len(rec) || labelCol >= len(rec) {
			return nil, fmt.Errorf("row %d: expected at least %d fields, got %d", line, max(urlCol, labelCol)+1, len(rec))
		}

		url := rec[urlCol]
		if isMemberLabel(rec[labelCol]) {
			d.Members = append(d.Members, url)
			continue
		}
		if negatives%2 == 0 {
			d.TrainNegatives = append(d.TrainNegatives, url)
		} else {
			d.TestNegatives = append(d.TestNegatives, url)
		}
		negatives++
	}

	if len(d.Members) == 0 {
		return nil, fmt.Errorf("%w: no member rows", ErrEmpty)
	}
	if len(d.TestNegatives) == 0 {
		return nil, fmt.Errorf("%w: need at least two non-member rows", ErrEmpty)
	}
	return d, nil
}

func isMemberLabel(label string) bool {
	switch strings.ToLower(strings.TrimSpace(label)) {
	case "1", "true", "bad", "phishing", "malicious":
		return true
	default:
		return false
	}
}
