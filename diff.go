package main

import (
	"regexp"
	"strconv"
	"strings"
)

// DiffChangeType classifies one line of a diff hunk.
type DiffChangeType int

const (
	DiffContext DiffChangeType = iota
	DiffAdd
	DiffDelete
)

func (t DiffChangeType) String() string {
	switch t {
	case DiffAdd:
		return "add"
	case DiffDelete:
		return "delete"
	default:
		return "context"
	}
}

// DiffLine is one line of a parsed hunk. OldLine/NewLine are -1 on the
// side the line does not exist on. Position is the line's offset within
// the whole fragment, counting hunk headers, which is how review comments
// are anchored to diff locations.
type DiffLine struct {
	Type     DiffChangeType `json:"type"`
	OldLine  int            `json:"oldLine"`
	NewLine  int            `json:"newLine"`
	Text     string         `json:"text"`
	Position int            `json:"position"`
}

// DiffHunk is one contiguous block of a unified diff.
type DiffHunk struct {
	OldStart  int        `json:"oldStart"`
	OldLength int        `json:"oldLength"`
	NewStart  int        `json:"newStart"`
	NewLength int        `json:"newLength"`
	Position  int        `json:"position"` // position of the @@ header
	Lines     []DiffLine `json:"lines"`
}

// Lengths default to 1 when omitted, per the unified diff format.
var hunkHeaderRe = regexp.MustCompile(`^@@ -(\d+)(?:,(\d+))? \+(\d+)(?:,(\d+))? @@`)

// ParseDiffHunks parses a diff hunk fragment as returned in review-comment
// payloads. The fragment may contain several hunks; the empty string means
// "no hunk" and yields no hunks and no error. Parsing is pure: the same
// input always produces the same result.
func ParseDiffHunks(text string) ([]DiffHunk, error) {
	if text == "" {
		return nil, nil
	}

	var hunks []DiffHunk
	var cur *DiffHunk
	oldLine, newLine := 0, 0
	position := 0

	lines := strings.Split(text, "\n")
	for i, raw := range lines {
		line := strings.TrimSuffix(raw, "\r")

		// A trailing newline in the fragment produces one empty final
		// element; it is not part of the hunk body.
		if line == "" && i == len(lines)-1 {
			break
		}

		if strings.HasPrefix(line, "@@") {
			m := hunkHeaderRe.FindStringSubmatch(line)
			if m == nil {
				return nil, &ParseError{Line: i + 1, Text: line}
			}
			if cur != nil {
				hunks = append(hunks, *cur)
			}
			cur = &DiffHunk{
				OldStart:  atoiDefault(m[1], 1),
				OldLength: atoiDefault(m[2], 1),
				NewStart:  atoiDefault(m[3], 1),
				NewLength: atoiDefault(m[4], 1),
				Position:  position,
			}
			oldLine, newLine = cur.OldStart, cur.NewStart
			position++
			continue
		}

		if cur == nil {
			return nil, &ParseError{Line: i + 1, Text: line}
		}

		var dl DiffLine
		switch {
		case strings.HasPrefix(line, "+"):
			dl = DiffLine{Type: DiffAdd, OldLine: -1, NewLine: newLine, Text: line[1:], Position: position}
			newLine++
		case strings.HasPrefix(line, "-"):
			dl = DiffLine{Type: DiffDelete, OldLine: oldLine, NewLine: -1, Text: line[1:], Position: position}
			oldLine++
		case strings.HasPrefix(line, `\`):
			// "\ No newline at end of file" marker: occupies a position
			// slot but is not a source line.
			position++
			continue
		default:
			// Context lines start with a space; tolerate a missing space
			// on lines that were empty in the source.
			dl = DiffLine{Type: DiffContext, OldLine: oldLine, NewLine: newLine, Text: strings.TrimPrefix(line, " "), Position: position}
			oldLine++
			newLine++
		}
		position++
		cur.Lines = append(cur.Lines, dl)
	}

	if cur != nil {
		hunks = append(hunks, *cur)
	}
	return hunks, nil
}

func atoiDefault(s string, def int) int {
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}
