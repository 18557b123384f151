package ppm

import (
	"bufio"
	"io"
	"strconv"
)

// Write serializes g to w as a plain-text P3 image.
//
// The output is always three header lines ("P3", "<cols> <rows>", "255")
// followed by one line per grid row with its values separated by single
// spaces. Write returns ErrNullSink for a nil or nil-pointer writer, a Validate error for a
// malformed grid, and any error from w unchanged.
func Write(w io.Writer, g Grid) error {
	if isNil(w) {
		return ErrNullSink
	}
	if err := Validate(g); err != nil {
		return err
	}

	bw := bufio.NewWriter(w)

	buf := make([]byte, 0, 64)
	buf = append(buf, FormatTag...)
	buf = append(buf, '\n')
	buf = strconv.AppendInt(buf, int64(g.Cols()), 10)
	buf = append(buf, ' ')
	buf = strconv.AppendInt(buf, int64(g.Rows()), 10)
	buf = append(buf, '\n')
	buf = strconv.AppendInt(buf, MaxValue, 10)
	buf = append(buf, '\n')
	if _, err := bw.Write(buf); err != nil {
		return err
	}

	for _, row := range g {
		buf = buf[:0]
		for i, v := range row {
			if i > 0 {
				buf = append(buf, ' ')
			}
			buf = strconv.AppendInt(buf, int64(v), 10)
		}
		buf = append(buf, '\n')
		if _, err := bw.Write(buf); err != nil {
			return err
		}
	}

	return bw.Flush()
}
