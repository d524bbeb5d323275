package locus

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	musial "github.com/Integrative-Transcriptomics/MUSIAL-sub002"
	"github.com/carbocation/pfx"
)

// List reads locus list rows (id, contig, start, end[, strand]) from a
// delimited file. The delimiter is sniffed from the content, lines starting
// with # are comments and a leading "id" header row is skipped.
type List struct {
	path   string
	reader *csv.Reader
	line   int
	err    error
}

// OpenList opens a local or compressed locus list.
func OpenList(path string) (*List, error) {
	rc, err := musial.OpenInput(context.Background(), path, nil)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	l, err := NewList(rc)
	if err != nil {
		return nil, pfx.Err(fmt.Errorf("%s: %w", path, err))
	}
	l.path = path

	return l, nil
}

// NewList buffers r fully; locus lists are small.
func NewList(r io.Reader) (*List, error) {
	content, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	// Comment lines would throw off the per-line delimiter frequencies
	var sample bytes.Buffer
	for _, line := range bytes.Split(content, []byte("\n")) {
		if len(line) > 0 && line[0] != '#' {
			sample.Write(line)
			sample.WriteByte('\n')
		}
	}

	reader := csv.NewReader(bytes.NewReader(content))
	reader.Comma = musial.DetermineDelimiter(&sample)
	reader.Comment = '#'
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	return &List{reader: reader}, nil
}

func (l *List) Err() error {
	return l.err
}

// Read returns the next row, or nil at the end of the list or on error. Check
// Err to tell the two apart.
func (l *List) Read() *ListRow {
	for {
		cols, err := l.reader.Read()
		if errors.Is(err, io.EOF) {
			return nil
		} else if err != nil {
			l.err = err
			return nil
		}
		l.line++

		if len(cols) == 0 || (len(cols) == 1 && strings.TrimSpace(cols[0]) == "") {
			continue
		}
		if l.line == 1 && strings.EqualFold(strings.TrimSpace(cols[ColID]), "id") {
			continue
		}

		row, err := parseListRow(cols)
		if err != nil {
			l.err = fmt.Errorf("%s row %d: %w", l.path, l.line, err)
			return nil
		}
		return row
	}
}

// ReadAll drains the list.
func (l *List) ReadAll() ([]ListRow, error) {
	out := make([]ListRow, 0)
	for row := l.Read(); row != nil; row = l.Read() {
		out = append(out, *row)
	}
	return out, l.Err()
}

func parseListRow(cols []string) (*ListRow, error) {
	if len(cols) < ColEnd+1 {
		return nil, fmt.Errorf("expected at least %d columns, got %d", ColEnd+1, len(cols))
	}

	row := &ListRow{
		ID:      strings.TrimSpace(cols[ColID]),
		Contig:  strings.TrimSpace(cols[ColContig]),
		IsSense: true,
	}

	var err error
	if row.Start, err = strconv.Atoi(strings.TrimSpace(cols[ColStart])); err != nil {
		return nil, fmt.Errorf("start: %w", err)
	}
	if row.End, err = strconv.Atoi(strings.TrimSpace(cols[ColEnd])); err != nil {
		return nil, fmt.Errorf("end: %w", err)
	}

	if len(cols) > ColStrand {
		switch strings.TrimSpace(cols[ColStrand]) {
		case "+", "", ".":
		case "-":
			row.IsSense = false
		default:
			return nil, fmt.Errorf("strand must be + or -, got %q", cols[ColStrand])
		}
	}

	return row, nil
}
