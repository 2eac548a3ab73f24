package instance

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"

	"q.log/tableau/model"
)

var (
	ErrMalformed       = errors.New("instance: malformed input")
	ErrMPSUnsupported  = errors.New("instance: MPS input requires building with -tags glpk")
	ErrNegativeBound   = errors.New("instance: negative lower bounds are not supported")
	ErrUnknownFormat   = errors.New("instance: unknown input format")
	ErrCoefficientSize = errors.New("instance: coefficient count does not match variable count")
)

// Reader reads a tableau in the text format:
//
//	numreal numslack numconstraints
//	<constraint rows>
//	<objective row>
//
// Every row holds numreal+numslack coefficients followed by the z cell, the
// right-hand side and the basis index, where -1 means the row has no basic
// variable yet.
type Reader struct {
	filename string
}

func NewReader(filename string) *Reader {
	return &Reader{
		filename: filename,
	}
}

// ConstructTableauFromFile returns the tableau stored in the reader's file.
func (r *Reader) ConstructTableauFromFile() (*model.Tableau, error) {
	f, err := os.Open(r.filename)
	if err != nil {
		return nil, fmt.Errorf("instance: open %s: %w", r.filename, err)
	}
	defer f.Close()

	t, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", r.filename, err)
	}
	return t, nil
}

// tokens hands out whitespace separated words and counts them for error
// messages.
type tokens struct {
	s *bufio.Scanner
	n int
}

func (tk *tokens) next(what string) (string, error) {
	if !tk.s.Scan() {
		if err := tk.s.Err(); err != nil {
			return "", fmt.Errorf("instance: read: %w", err)
		}
		return "", fmt.Errorf("%w: unexpected end of input reading %s", ErrMalformed, what)
	}
	tk.n++
	return tk.s.Text(), nil
}

func (tk *tokens) int(what string) (int, error) {
	w, err := tk.next(what)
	if err != nil {
		return 0, err
	}
	v, err := strconv.Atoi(w)
	if err != nil {
		return 0, fmt.Errorf("%w: token %d (%s): %q is not an integer", ErrMalformed, tk.n, what, w)
	}
	return v, nil
}

func (tk *tokens) float(what string) (float64, error) {
	w, err := tk.next(what)
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseFloat(w, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%w: token %d (%s): %q is not a finite number", ErrMalformed, tk.n, what, w)
	}
	return v, nil
}

// Parse reads a tableau in the text format from r. A constraint row with no
// basis and a negative right-hand side is negated; a row whose basic
// variable would start negative is rejected.
func Parse(r io.Reader) (*model.Tableau, error) {
	s := bufio.NewScanner(r)
	s.Buffer(make([]byte, 64*1024), 16*1024*1024)
	s.Split(bufio.ScanWords)
	tk := &tokens{s: s}

	var counts [3]int
	for i, what := range []string{"real variable count", "slack variable count", "constraint count"} {
		v, err := tk.int(what)
		if err != nil {
			return nil, err
		}
		if v < 0 {
			return nil, fmt.Errorf("%w: %s is negative", ErrMalformed, what)
		}
		counts[i] = v
	}

	t, err := model.NewTableau(counts[0], counts[1], counts[2])
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
	}

	seen := make(map[int]int)
	for i := range t.Rows() {
		for j := range t.RHSColumn() + 1 {
			v, err := tk.float(fmt.Sprintf("row %d column %d", i, j))
			if err != nil {
				return nil, err
			}
			t.Set(i, j, v)
		}

		b, err := tk.float(fmt.Sprintf("row %d basis", i))
		if err != nil {
			return nil, err
		}
		if i == t.ObjectiveRow() {
			continue
		}
		if b == model.NoBasis {
			// Rows without a basis start from an artificial variable equal to
			// the RHS, which must not be negative.
			if t.At(i, t.RHSColumn()) < 0 {
				t.ScaleRow(-1, i)
			}
			continue
		}
		if model.LessThan(t.At(i, t.RHSColumn()), 0) {
			return nil, fmt.Errorf("%w: row %d: basic variable %g would start at %g",
				ErrMalformed, i, b, t.At(i, t.RHSColumn()))
		}
		if b != math.Trunc(b) || b < 0 || int(b) >= t.NumVars() {
			return nil, fmt.Errorf("%w: row %d: basis %g is not -1 or a variable index below %d",
				ErrMalformed, i, b, t.NumVars())
		}
		if prev, dup := seen[int(b)]; dup {
			return nil, fmt.Errorf("%w: rows %d and %d share basic variable %d", ErrMalformed, prev, i, int(b))
		}
		seen[int(b)] = i
		if err := t.SetBasic(i, int(b)); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
		}
	}

	if s.Scan() {
		return nil, fmt.Errorf("%w: unexpected trailing data %q", ErrMalformed, s.Text())
	}
	if err := s.Err(); err != nil {
		return nil, fmt.Errorf("instance: read: %w", err)
	}
	return t, nil
}
