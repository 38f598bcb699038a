package card

import (
	"bytes"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// DiffOp is the kind of a diff line.
type DiffOp int

const (
	DiffEqual DiffOp = iota
	DiffInsert
	DiffDelete
)

// DiffLine is one line of a line-level diff.
type DiffLine struct {
	Op   DiffOp
	Text string
}

// String renders the line with a unified-diff prefix.
func (l DiffLine) String() string {
	switch l.Op {
	case DiffInsert:
		return "+" + l.Text
	case DiffDelete:
		return "-" + l.Text
	}
	return " " + l.Text
}

// Diff computes a line-level diff between two texts.
func Diff(before, after string) []DiffLine {
	dmp := diffmatchpatch.New()
	a, b, lines := dmp.DiffLinesToChars(before, after)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)

	var out []DiffLine
	for _, d := range diffs {
		op := DiffEqual
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			op = DiffInsert
		case diffmatchpatch.DiffDelete:
			op = DiffDelete
		}
		text := strings.TrimSuffix(d.Text, "\n")
		for _, line := range strings.Split(text, "\n") {
			out = append(out, DiffLine{Op: op, Text: line})
		}
	}
	return out
}

// DiffConfigs diffs the YAML renderings of two configurations.
func DiffConfigs(before, after *Configuration) ([]DiffLine, error) {
	a, err := Marshal(before)
	if err != nil {
		return nil, err
	}
	b, err := Marshal(after)
	if err != nil {
		return nil, err
	}
	return Diff(string(a), string(b)), nil
}

// Changed reports whether a diff contains any insertions or deletions.
func Changed(lines []DiffLine) bool {
	for _, l := range lines {
		if l.Op != DiffEqual {
			return true
		}
	}
	return false
}

// Equal reports whether a and b serialize to the same YAML.
func Equal(a, b Configuration) bool {
	x, err := Marshal(&a)
	if err != nil {
		return false
	}
	y, err := Marshal(&b)
	if err != nil {
		return false
	}
	return bytes.Equal(x, y)
}
