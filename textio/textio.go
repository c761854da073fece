// Package textio reads and writes samples and harmonic coefficients in the
// one-value-per-line text format of the ssht command.
//
// Complex values are written as "(re,im)" with each part formatted %25.15f,
// real values as a single %25.15f field. MW sample files begin with two
// lines for the south pole: its azimuth, then its value. Ring samples follow
// in row-major order. Coefficient files hold L² complex lines in the order
// of algosht.ToIndex.
package textio

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	algosht "github.com/cwbudde/algo-sht"
)

var (
	// ErrShortInput is returned when the input ends before all values were read.
	ErrShortInput = errors.New("textio: unexpected end of input")

	// ErrMalformed is returned for lines that do not hold a value.
	ErrMalformed = errors.New("textio: malformed value")
)

// LineError reports the input line that could not be parsed.
type LineError struct {
	Line int
	Err  error
}

func (e *LineError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e *LineError) Unwrap() error { return e.Err }

const (
	realFormat    = "%25.15f\n"
	complexFormat = "(%25.15f,%25.15f)\n"
)

// WriteSamples writes s for scheme.
func WriteSamples(w io.Writer, scheme algosht.Scheme, s *algosht.Samples) error {
	bw := bufio.NewWriter(w)

	if algosht.HasSouthPole(scheme) {
		fmt.Fprintf(bw, realFormat, s.SouthPolePhi)
		fmt.Fprintf(bw, complexFormat, real(s.SouthPole), imag(s.SouthPole))
	}

	for _, v := range s.Data {
		fmt.Fprintf(bw, complexFormat, real(v), imag(v))
	}

	return bw.Flush()
}

// WriteRealSamples writes s for scheme.
func WriteRealSamples(w io.Writer, scheme algosht.Scheme, s *algosht.RealSamples) error {
	bw := bufio.NewWriter(w)

	if algosht.HasSouthPole(scheme) {
		fmt.Fprintf(bw, realFormat, s.SouthPolePhi)
		fmt.Fprintf(bw, realFormat, s.SouthPole)
	}

	for _, v := range s.Data {
		fmt.Fprintf(bw, realFormat, v)
	}

	return bw.Flush()
}

// WriteCoefficients writes flm, one complex value per line.
func WriteCoefficients(w io.Writer, flm []complex128) error {
	bw := bufio.NewWriter(w)

	for _, v := range flm {
		fmt.Fprintf(bw, complexFormat, real(v), imag(v))
	}

	return bw.Flush()
}

// ReadSamples reads a complex sample grid for scheme at band-limit L.
func ReadSamples(r io.Reader, scheme algosht.Scheme, L int) (*algosht.Samples, error) {
	s, err := algosht.NewSamples(scheme, L)
	if err != nil {
		return nil, err
	}

	lr := newLineReader(r)

	if algosht.HasSouthPole(scheme) {
		if s.SouthPolePhi, err = lr.real(); err != nil {
			return nil, err
		}

		if s.SouthPole, err = lr.complex(); err != nil {
			return nil, err
		}
	}

	for i := range s.Data {
		if s.Data[i], err = lr.complex(); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// ReadRealSamples reads a real sample grid for scheme at band-limit L.
func ReadRealSamples(r io.Reader, scheme algosht.Scheme, L int) (*algosht.RealSamples, error) {
	s, err := algosht.NewRealSamples(scheme, L)
	if err != nil {
		return nil, err
	}

	lr := newLineReader(r)

	if algosht.HasSouthPole(scheme) {
		if s.SouthPolePhi, err = lr.real(); err != nil {
			return nil, err
		}

		if s.SouthPole, err = lr.real(); err != nil {
			return nil, err
		}
	}

	for i := range s.Data {
		if s.Data[i], err = lr.real(); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// ReadCoefficients reads L² complex coefficients.
func ReadCoefficients(r io.Reader, L int) ([]complex128, error) {
	flm, err := algosht.NewCoefficients(L)
	if err != nil {
		return nil, err
	}

	lr := newLineReader(r)

	for i := range flm {
		if flm[i], err = lr.complex(); err != nil {
			return nil, err
		}
	}

	return flm, nil
}

type lineReader struct {
	sc   *bufio.Scanner
	line int
}

func newLineReader(r io.Reader) *lineReader {
	return &lineReader{sc: bufio.NewScanner(r)}
}

// next returns the next non-blank line.
func (lr *lineReader) next() (string, error) {
	for lr.sc.Scan() {
		lr.line++

		if text := strings.TrimSpace(lr.sc.Text()); text != "" {
			return text, nil
		}
	}

	if err := lr.sc.Err(); err != nil {
		return "", &LineError{Line: lr.line + 1, Err: err}
	}

	return "", &LineError{Line: lr.line + 1, Err: ErrShortInput}
}

func (lr *lineReader) real() (float64, error) {
	text, err := lr.next()
	if err != nil {
		return 0, err
	}

	v, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return 0, lr.malformed(text)
	}

	return v, nil
}

func (lr *lineReader) complex() (complex128, error) {
	text, err := lr.next()
	if err != nil {
		return 0, err
	}

	inner, ok := strings.CutPrefix(text, "(")
	if ok {
		inner, ok = strings.CutSuffix(inner, ")")
	}

	if !ok {
		return 0, lr.malformed(text)
	}

	re, im, ok := strings.Cut(inner, ",")
	if !ok {
		return 0, lr.malformed(text)
	}

	x, errRe := strconv.ParseFloat(strings.TrimSpace(re), 64)
	y, errIm := strconv.ParseFloat(strings.TrimSpace(im), 64)

	if errRe != nil || errIm != nil {
		return 0, lr.malformed(text)
	}

	return complex(x, y), nil
}

func (lr *lineReader) malformed(text string) error {
	return &LineError{Line: lr.line, Err: fmt.Errorf("%w: %q", ErrMalformed, text)}
}
