package rules

import (
	"bytes"
	"strings"
	"unicode/utf8"

	"github.com/wtthornton/tappscheck/internal/domain"
)

// Line is one line of a document with the fence state computed for it.
type Line struct {
	Number int
	Text   string
	// InFence is true for lines inside a fenced code block, markers included.
	InFence bool
	// Fence is true for the opening or closing marker line itself.
	Fence bool
}

// Document is a file's content split into lines in a single forward pass.
type Document struct {
	Path  string
	Lines []Line
	// Words counts whitespace-separated words outside code fences.
	Words int
	// HasHeading reports whether a markdown ATX heading appears outside fences.
	HasHeading bool
	// OpenFence is the line number of a fence that is never closed, or 0.
	OpenFence int
}

// NewDocument decodes content and computes per-line state. Content that is
// not valid UTF-8 or that contains NUL bytes is rejected.
func NewDocument(path string, content []byte) (*Document, error) {
	if bytes.IndexByte(content, 0) >= 0 {
		return nil, &domain.ValidationError{File: path, Reason: "content contains NUL bytes (binary file?)"}
	}
	if !utf8.Valid(content) {
		return nil, &domain.ValidationError{File: path, Reason: "content is not valid UTF-8"}
	}

	doc := &Document{Path: path}
	text := string(content)
	if text == "" {
		return doc, nil
	}
	raw := strings.Split(strings.TrimSuffix(text, "\n"), "\n")
	doc.Lines = make([]Line, 0, len(raw))

	var fenceChar byte
	inFence := false
	for i, r := range raw {
		r = strings.TrimSuffix(r, "\r")
		ln := Line{Number: i + 1, Text: r}

		if marker, ok := fenceMarker(r); ok {
			switch {
			case !inFence:
				inFence, fenceChar = true, marker
				doc.OpenFence = ln.Number
				ln.InFence, ln.Fence = true, true
			case marker == fenceChar:
				inFence = false
				doc.OpenFence = 0
				ln.InFence, ln.Fence = true, true
			default:
				ln.InFence = true
			}
			doc.Lines = append(doc.Lines, ln)
			continue
		}

		ln.InFence = inFence
		if !inFence {
			doc.Words += len(strings.Fields(r))
			if isHeading(r) {
				doc.HasHeading = true
			}
		}
		doc.Lines = append(doc.Lines, ln)
	}
	return doc, nil
}

// fenceMarker reports whether a line opens or closes a fenced block.
func fenceMarker(line string) (byte, bool) {
	t := strings.TrimLeft(line, " \t")
	switch {
	case strings.HasPrefix(t, "```"):
		return '`', true
	case strings.HasPrefix(t, "~~~"):
		return '~', true
	default:
		return 0, false
	}
}

func isHeading(line string) bool {
	t := strings.TrimLeft(line, " ")
	n := 0
	for n < len(t) && t[n] == '#' {
		n++
	}
	if n == 0 || n > 6 || n >= len(t) {
		return false
	}
	return (t[n] == ' ' || t[n] == '\t') && strings.TrimSpace(t[n:]) != ""
}
