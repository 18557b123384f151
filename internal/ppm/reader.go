package ppm

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
)

// FormatTag is the magic token that opens every plain-text PPM file.
const FormatTag = "P3"

// maxTokenSize bounds a single whitespace-delimited token. Anything longer
// cannot be a valid integer and is reported as invalid input.
const maxTokenSize = 1024 * 1024

// Reason identifies why Read rejected its input.
type Reason int

const (
	// ReasonFormatTag means the first token was not "P3" or was missing.
	ReasonFormatTag Reason = iota + 1
	// ReasonWidth means the column count was missing, not an integer, or not positive.
	ReasonWidth
	// ReasonHeight means the row count was missing, not an integer, or not positive.
	ReasonHeight
	// ReasonMaxValue means the maximum channel value was missing or not 255.
	ReasonMaxValue
	// ReasonShortData means the stream ended before rows*cols*3 values were read.
	ReasonShortData
	// ReasonChannel means a channel token was not an integer in [0, 255].
	ReasonChannel
)

func (r Reason) String() string {
	switch r {
	case ReasonFormatTag:
		return "format tag"
	case ReasonWidth:
		return "width"
	case ReasonHeight:
		return "height"
	case ReasonMaxValue:
		return "max value"
	case ReasonShortData:
		return "short data"
	case ReasonChannel:
		return "channel value"
	default:
		return "unknown"
	}
}

// MarshalText renders the reason by name in JSON output.
func (r Reason) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// InvalidInput describes why a token stream is not a valid P3 image.
type InvalidInput struct {
	Reason Reason `json:"reason"`

	// Index is the 0-based position of the offending token in the stream.
	Index int `json:"index"`

	// Token is the offending token text. It is empty when the stream ran out.
	Token string `json:"token,omitempty"`
}

// String renders the marker for diagnostics.
func (in *InvalidInput) String() string {
	if in.Token == "" {
		return fmt.Sprintf("invalid %s at token %d: unexpected end of input", in.Reason, in.Index)
	}
	return fmt.Sprintf("invalid %s at token %d: %q", in.Reason, in.Index, in.Token)
}

// Result is the outcome of reading a token stream.
//
// Exactly one of Grid and Invalid is set: Grid when the input was a valid
// image, Invalid when it was not.
type Result struct {
	Grid    Grid
	Invalid *InvalidInput
}

// Valid reports whether the input decoded to a grid.
func (r Result) Valid() bool {
	return r.Invalid == nil && r.Grid != nil
}

// tokenReader walks a whitespace-delimited token stream and remembers how
// many tokens it has handed out.
type tokenReader struct {
	scanner *bufio.Scanner
	index   int
	err     error
}

func newTokenReader(r io.Reader) *tokenReader {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxTokenSize)
	scanner.Split(bufio.ScanWords)
	return &tokenReader{scanner: scanner}
}

// next returns the next token. ok is false when the stream is exhausted or
// a token is too large to be meaningful; any other scan failure is kept in
// t.err for the caller to surface.
func (t *tokenReader) next() (tok string, ok bool) {
	if !t.scanner.Scan() {
		if err := t.scanner.Err(); err != nil && !errors.Is(err, bufio.ErrTooLong) {
			t.err = err
		}
		return "", false
	}
	t.index++
	return t.scanner.Text(), true
}

// nextInt returns the next token parsed as an integer. ok is false when the
// stream is exhausted or the token is not an integer.
func (t *tokenReader) nextInt() (v int, tok string, ok bool) {
	tok, ok = t.next()
	if !ok {
		return 0, "", false
	}
	n, err := strconv.ParseInt(tok, 10, 32)
	if err != nil {
		return 0, tok, false
	}
	return int(n), tok, true
}

// invalid builds the absent-result marker for the token just consumed.
func (t *tokenReader) invalid(reason Reason, tok string) Result {
	index := t.index - 1
	if tok == "" {
		index = t.index
	}
	return Result{Invalid: &InvalidInput{Reason: reason, Index: index, Token: tok}}
}

// Read parses a P3 token stream into a Grid.
//
// Invalid image data never produces an error. It is reported through
// Result.Invalid, and checks stop at the first failure:
//
//  1. the format tag must be exactly "P3"
//  2. cols must be an integer > 0
//  3. rows must be an integer > 0
//  4. the maximum value must be exactly 255
//  5. exactly rows*cols*3 integers in [0, 255] must follow
//
// Values are packed row-major in reading order. Tokens after the last
// channel value are ignored.
//
// Read returns ErrNullStream when r is nil or a nil pointer, and the underlying error when r
// fails for a reason other than reaching its end.
func Read(r io.Reader) (Result, error) {
	if isNil(r) {
		return Result{}, ErrNullStream
	}

	return read(newTokenReader(r))
}

func read(t *tokenReader) (Result, error) {
	fail := func(reason Reason, tok string) (Result, error) {
		if t.err != nil {
			return Result{}, fmt.Errorf("ppm: reading %s: %w", reason, t.err)
		}
		return t.invalid(reason, tok), nil
	}

	tag, ok := t.next()
	if !ok || tag != FormatTag {
		return fail(ReasonFormatTag, tag)
	}

	cols, tok, ok := t.nextInt()
	if !ok || cols <= 0 {
		return fail(ReasonWidth, tok)
	}

	rows, tok, ok := t.nextInt()
	if !ok || rows <= 0 {
		return fail(ReasonHeight, tok)
	}

	maxVal, tok, ok := t.nextInt()
	if !ok || maxVal != MaxValue {
		return fail(ReasonMaxValue, tok)
	}

	// Sample count overflows int on 32-bit platforms.
	width := cols * 3
	if cols > math.MaxInt/3 || rows > math.MaxInt/width {
		return fail(ReasonShortData, "")
	}

	// Rows grow as tokens arrive so a lying header cannot force a huge
	// allocation up front.
	g := make(Grid, 0, min(rows, 1024))
	for y := 0; y < rows; y++ {
		row := make([]int, 0, min(width, 4096))
		for x := 0; x < width; x++ {
			v, tok, ok := t.nextInt()
			if !ok {
				if tok == "" {
					return fail(ReasonShortData, "")
				}
				return fail(ReasonChannel, tok)
			}
			if v < 0 || v > MaxValue {
				return fail(ReasonChannel, tok)
			}
			row = append(row, v)
		}
		g = append(g, row)
	}

	return Result{Grid: g}, nil
}
