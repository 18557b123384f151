// Package editor runs the read-transform-write pipeline over PPM files.
//
// It owns everything the ppm core leaves to its caller: path checks,
// overwrite confirmation, and opening and closing files.
package editor

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/ironsheep/ppm-editor/internal/imaging"
	"github.com/ironsheep/ppm-editor/internal/ppm"
)

var (
	// ErrInputExtension is returned when the input path does not end in .ppm.
	ErrInputExtension = errors.New("invalid input file extension")

	// ErrOutputExtension is returned when the output path does not end in .ppm.
	ErrOutputExtension = errors.New("invalid output file extension")

	// ErrInputAccess is returned when the input file cannot be opened.
	ErrInputAccess = errors.New("unable to access input file")

	// ErrInvalidInput is returned when the input file is not a valid P3 image.
	ErrInvalidInput = errors.New("invalid input file")

	// ErrCreateOutput is returned when the output file cannot be created.
	ErrCreateOutput = errors.New("cannot create output file")

	// ErrOverwriteDeclined is returned when the user refuses to replace an
	// existing output file.
	ErrOverwriteDeclined = errors.New("overwrite declined")
)

// Options describes a single editor run.
type Options struct {
	Operation  ppm.Operation
	InputPath  string
	OutputPath string

	// AssumeYes replaces an existing output file without asking.
	AssumeYes bool
}

// Editor executes Options against the file system.
//
// Prompts are written to Stdout and answers read from Stdin. A nil Stdin
// declines every prompt; a nil Stdout discards prompts.
type Editor struct {
	Stdin  io.Reader
	Stdout io.Writer

	// Debug enables progress logging through the standard logger.
	Debug bool
}

// New returns an editor that talks to the given terminal streams.
func New(stdin io.Reader, stdout io.Writer) *Editor {
	return &Editor{Stdin: stdin, Stdout: stdout}
}

// Run validates opts, reads the input image, applies the operation, and
// writes the result.
//
// Checks happen in order: input extension, output extension, input access,
// overwrite confirmation. The whole input is read before the output is
// created, so the input and output may name the same file.
func (e *Editor) Run(opts Options) error {
	if !imaging.HasExtension(opts.InputPath) {
		return ErrInputExtension
	}
	if !imaging.HasExtension(opts.OutputPath) {
		return ErrOutputExtension
	}

	in, err := os.Open(opts.InputPath)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrInputAccess, opts.InputPath)
	}
	defer in.Close()

	if _, err := os.Stat(opts.OutputPath); err == nil && !opts.AssumeYes {
		if !e.confirmOverwrite(opts.OutputPath) {
			return ErrOverwriteDeclined
		}
	}

	res, err := ppm.Read(in)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if !res.Valid() {
		e.debugf("rejected %s: %s", opts.InputPath, res.Invalid)
		return &InvalidInputError{Path: opts.InputPath, Detail: res.Invalid}
	}

	e.debugf("read %s: %dx%d", opts.InputPath, res.Grid.Cols(), res.Grid.Rows())

	if err := opts.Operation.Apply(res.Grid); err != nil {
		return err
	}

	e.debugf("applied %s", opts.Operation)

	return writeFile(opts.OutputPath, res.Grid)
}

// InvalidInputError carries the reader's explanation of a rejected file.
type InvalidInputError struct {
	Path   string
	Detail *ppm.InvalidInput
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("%s: %s", ErrInvalidInput, e.Detail)
}

func (e *InvalidInputError) Unwrap() error {
	return ErrInvalidInput
}

// confirmOverwrite asks whether path may be replaced. Only an answer starting
// with y or Y is a yes.
func (e *Editor) confirmOverwrite(path string) bool {
	if e.Stdout != nil {
		fmt.Fprintf(e.Stdout, "%s exists - OK to overwrite(y,n)?: ", path)
	}
	if e.Stdin == nil {
		return false
	}

	answer, err := bufio.NewReader(e.Stdin).ReadString('\n')
	if err != nil && answer == "" {
		return false
	}
	return strings.HasPrefix(strings.ToLower(answer), "y")
}

func writeFile(path string, g ppm.Grid) error {
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrCreateOutput, err)
	}

	if err := ppm.Write(out, g); err != nil {
		out.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

func (e *Editor) debugf(format string, args ...interface{}) {
	if e.Debug {
		log.Printf(format, args...)
	}
}
