package ppm

import (
	"fmt"
	"strings"
)

// highContrastThreshold is the smallest channel value that maps to 255.
const highContrastThreshold = 128

// Invert replaces every channel value v with 255-v.
func Invert(g Grid) error {
	if err := Validate(g); err != nil {
		return err
	}
	for _, row := range g {
		for i, v := range row {
			row[i] = MaxValue - v
		}
	}
	return nil
}

// HighContrast maps every channel value below 128 to 0 and every other
// value to 255.
func HighContrast(g Grid) error {
	if err := Validate(g); err != nil {
		return err
	}
	for _, row := range g {
		for i, v := range row {
			if v < highContrastThreshold {
				row[i] = 0
			} else {
				row[i] = MaxValue
			}
		}
	}
	return nil
}

// Grayscale sets the three channels of every pixel to their truncated
// integer average, (r+g+b)/3.
func Grayscale(g Grid) error {
	if err := Validate(g); err != nil {
		return err
	}
	for _, row := range g {
		for i := 0; i < len(row); i += 3 {
			avg := (row[i] + row[i+1] + row[i+2]) / 3
			row[i], row[i+1], row[i+2] = avg, avg, avg
		}
	}
	return nil
}

// Operation selects one of the grid transforms.
type Operation int

const (
	OpInvert Operation = iota + 1
	OpHighContrast
	OpGrayscale
)

// Operations lists every supported transform in flag order.
var Operations = []Operation{OpInvert, OpHighContrast, OpGrayscale}

func (op Operation) String() string {
	switch op {
	case OpInvert:
		return "invert"
	case OpHighContrast:
		return "high-contrast"
	case OpGrayscale:
		return "grayscale"
	default:
		return fmt.Sprintf("Operation(%d)", int(op))
	}
}

// Flag returns the single-letter command line selector for op.
func (op Operation) Flag() string {
	switch op {
	case OpInvert:
		return "I"
	case OpHighContrast:
		return "H"
	case OpGrayscale:
		return "G"
	default:
		return ""
	}
}

// Apply runs the transform selected by op on g in place.
func (op Operation) Apply(g Grid) error {
	switch op {
	case OpInvert:
		return Invert(g)
	case OpHighContrast:
		return HighContrast(g)
	case OpGrayscale:
		return Grayscale(g)
	default:
		return fmt.Errorf("ppm: unknown operation %d", int(op))
	}
}

// ParseOperation resolves an operation name ("invert", "high-contrast",
// "grayscale") or a flag selector ("-I", "-H", "-G"). Names are matched
// case-insensitively and "greyscale" is accepted as an alias.
func ParseOperation(s string) (Operation, error) {
	switch s {
	case "-I":
		return OpInvert, nil
	case "-H":
		return OpHighContrast, nil
	case "-G":
		return OpGrayscale, nil
	}

	switch strings.ToLower(strings.TrimSpace(s)) {
	case "invert":
		return OpInvert, nil
	case "high-contrast", "highcontrast", "high_contrast":
		return OpHighContrast, nil
	case "grayscale", "greyscale":
		return OpGrayscale, nil
	default:
		return 0, fmt.Errorf("ppm: unknown operation %q", s)
	}
}
