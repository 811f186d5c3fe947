package matrix

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Form is the layout of a distance matrix in text.
type Form uint8

const (
	// FormFull holds every entry.
	FormFull Form = iota
	// FormUpper holds the upper triangle including the diagonal.
	FormUpper
	// FormLower holds the lower triangle including the diagonal.
	FormLower
)

func (f Form) String() string {
	switch f {
	case FormUpper:
		return "triu"
	case FormLower:
		return "tril"
	default:
		return "sym"
	}
}

// ParseForm maps a form name to a Form. Accepted names are sym/full,
// triu/upper and tril/lower.
func ParseForm(s string) (Form, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "sym", "full":
		return FormFull, nil
	case "triu", "upper":
		return FormUpper, nil
	case "tril", "lower":
		return FormLower, nil
	default:
		return FormFull, fmt.Errorf("matrix: unknown form %q", s)
	}
}

// ErrEmpty is returned when the input holds no rows.
var ErrEmpty = errors.New("matrix: no rows")

// ReadOptions controls text parsing.
type ReadOptions struct {
	// Form is the layout of the input.
	Form Form
	// Delimiter separates values on a row. Empty means any run of whitespace.
	Delimiter string
}

// ParseError points at a malformed line of input.
//
// The underlying error (if any) can be accessed via errors.Unwrap.
type ParseError struct {
	Line  int
	cause error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("matrix: line %d: %v", e.Line, e.cause)
}

func (e *ParseError) Unwrap() error { return e.cause }

// Read parses a delimited distance matrix from r, decompressing it first if
// needed, and materializes the symmetric form.
func Read(r io.Reader, opts ReadOptions) (*Dense, error) {
	rc, _, err := Decompress(r)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	rows, err := readRows(bufio.NewReader(rc), opts.Delimiter)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrEmpty
	}
	return materialize(rows, opts.Form)
}

type textRow struct {
	line   int
	values []float64
}

func readRows(br *bufio.Reader, delim string) ([]textRow, error) {
	var rows []textRow
	for line := 1; ; line++ {
		s, err := br.ReadString('\n')
		if err != nil && err != io.EOF {
			return nil, err
		}

		if text := strings.TrimSpace(s); text != "" {
			values, perr := parseRow(text, delim)
			if perr != nil {
				return nil, &ParseError{Line: line, cause: perr}
			}
			rows = append(rows, textRow{line: line, values: values})
		}

		if err == io.EOF {
			return rows, nil
		}
	}
}

func parseRow(text, delim string) ([]float64, error) {
	var fields []string
	if delim == "" {
		fields = strings.Fields(text)
	} else {
		fields = strings.Split(text, delim)
		if last := len(fields) - 1; last > 0 && strings.TrimSpace(fields[last]) == "" {
			fields = fields[:last]
		}
	}

	values := make([]float64, len(fields))
	for i, f := range fields {
		v, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
		if err != nil {
			return nil, err
		}
		values[i] = v
	}
	return values, nil
}

func materialize(rows []textRow, form Form) (*Dense, error) {
	n := len(rows)
	data := make([]float64, n*n)

	for i, row := range rows {
		vals := row.values
		switch form {
		case FormUpper:
			switch len(vals) {
			case n:
				vals = vals[i:]
			case n - i:
			default:
				return nil, &ParseError{Line: row.line, cause: fmt.Errorf("%w: %d values, want %d or %d", ErrNotSquare, len(vals), n, n-i)}
			}
			for off, v := range vals {
				j := i + off
				data[i*n+j] = v
				data[j*n+i] = v
			}
		case FormLower:
			switch len(vals) {
			case n:
				vals = vals[:i+1]
			case i + 1:
			default:
				return nil, &ParseError{Line: row.line, cause: fmt.Errorf("%w: %d values, want %d or %d", ErrNotSquare, len(vals), n, i+1)}
			}
			for j, v := range vals {
				data[i*n+j] = v
				data[j*n+i] = v
			}
		default:
			if len(vals) != n {
				return nil, &ParseError{Line: row.line, cause: fmt.Errorf("%w: %d values, want %d", ErrNotSquare, len(vals), n)}
			}
			copy(data[i*n:], vals)
		}
	}

	return &Dense{n: n, data: data}, nil
}

// Write renders m as delimited text in the given form. Triangular forms are
// written ragged.
func Write(w io.Writer, m *Dense, form Form, delim string) error {
	if delim == "" {
		delim = " "
	}
	bw := bufio.NewWriter(w)
	for i := 0; i < m.n; i++ {
		row := m.Row(i)
		switch form {
		case FormUpper:
			row = row[i:]
		case FormLower:
			row = row[:i+1]
		}
		for j, v := range row {
			if j > 0 {
				if _, err := bw.WriteString(delim); err != nil {
					return err
				}
			}
			if _, err := bw.WriteString(strconv.FormatFloat(v, 'g', -1, 64)); err != nil {
				return err
			}
		}
		if err := bw.WriteByte('\n'); err != nil {
			return err
		}
	}
	return bw.Flush()
}
