package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/ironsheep/ppm-editor/internal/editor"
	"github.com/ironsheep/ppm-editor/internal/imaging"
	"github.com/ironsheep/ppm-editor/internal/ppm"
	"github.com/ironsheep/ppm-editor/internal/server"
)

func newRootCmd() *cobra.Command {
	var (
		selected  = make(map[ppm.Operation]*bool, len(ppm.Operations))
		assumeYes bool
	)

	cmd := &cobra.Command{
		Use:   "ppmedit {-I|-H|-G} infile outfile",
		Short: "Invert, high-contrast, or grayscale a plain-text PPM image",
		Long: `ppmedit reads a plain-text PPM (P3) image, applies one color transform,
and writes the result as a P3 image. Both paths must end in .ppm.

  -I  invert every channel (255 - v)
  -H  high contrast (v < 128 -> 0, otherwise 255)
  -G  grayscale (integer average of each pixel's channels)`,
		Version:       Version,
		Args:          cobra.ExactArgs(2),
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Arguments are valid from here on; failures are not usage errors.
			cmd.SilenceUsage = true

			op := selectedOperation(selected)
			e := editor.New(cmd.InOrStdin(), cmd.OutOrStdout())
			e.Debug = debugEnabled()

			err := e.Run(editor.Options{
				Operation:  op,
				InputPath:  args[0],
				OutputPath: args[1],
				AssumeYes:  assumeYes,
			})
			if errors.Is(err, editor.ErrOverwriteDeclined) {
				return nil
			}
			return userError(err, args[0])
		},
	}

	names := make([]string, 0, len(ppm.Operations))
	for _, op := range ppm.Operations {
		selected[op] = cmd.Flags().BoolP(op.String(), op.Flag(), false, operationUsage[op])
		names = append(names, op.String())
	}
	cmd.MarkFlagsMutuallyExclusive(names...)
	cmd.MarkFlagsOneRequired(names...)

	cmd.Flags().BoolVarP(&assumeYes, "yes", "y", false, "overwrite an existing output file without asking")

	cmd.AddCommand(newInfoCmd(), newServeCmd(), newVersionCmd())
	return cmd
}

var operationUsage = map[ppm.Operation]string{
	ppm.OpInvert:       "invert every channel",
	ppm.OpHighContrast: "map channels to 0 or 255 around 128",
	ppm.OpGrayscale:    "replace each pixel with the average of its channels",
}

// selectedOperation returns the operation whose flag was set.
func selectedOperation(selected map[ppm.Operation]*bool) ppm.Operation {
	for _, op := range ppm.Operations {
		if *selected[op] {
			return op
		}
	}
	return 0
}

// messageError shows a fixed message while keeping the error it stands for.
type messageError struct {
	msg string
	err error
}

func (e *messageError) Error() string { return e.msg }
func (e *messageError) Unwrap() error { return e.err }

// userError replaces editor failures with the messages ppmedit prints for
// them. The detailed error is logged when debugging. Other errors pass
// through unchanged.
func userError(err error, input string) error {
	if err == nil {
		return nil
	}

	var msg string
	switch {
	case errors.Is(err, editor.ErrInputExtension):
		msg = "Invalid input file extension"
	case errors.Is(err, editor.ErrOutputExtension):
		msg = "Invalid output file extension"
	case errors.Is(err, editor.ErrInputAccess):
		msg = "Unable to access input file: " + input
	case errors.Is(err, editor.ErrInvalidInput):
		msg = "Invalid input file"
	case errors.Is(err, editor.ErrCreateOutput):
		msg = "Cannot create output file"
	default:
		return err
	}

	if debugEnabled() {
		log.Printf("%v", err)
	}
	return &messageError{msg: msg, err: err}
}

func newInfoCmd() *cobra.Command {
	var colors int

	cmd := &cobra.Command{
		Use:   "info file.ppm",
		Short: "Print dimensions and a color summary of a PPM image as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			desc, err := imaging.Describe(imaging.NewGridCache(), args[0], colors)
			if err != nil {
				return err
			}

			out, err := json.MarshalIndent(desc, "", "  ")
			if err != nil {
				return fmt.Errorf("encoding info: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(out))
			return nil
		},
	}

	cmd.Flags().IntVarP(&colors, "colors", "n", 5, "number of dominant colors to report")
	return cmd
}

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the MCP server on stdin/stdout",
		Long: `serve exposes ppm_info, ppm_validate, and ppm_transform as MCP tools over
JSON-RPC 2.0 on stdin/stdout. Configure it in your MCP client.

Set PPMEDIT_LOG_LEVEL=debug to enable debug logging on stderr.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			srv := server.New()
			if err := srv.Serve(cmd.InOrStdin(), cmd.OutOrStdout()); err != nil {
				return fmt.Errorf("server error: %w", err)
			}
			return nil
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "ppmedit %s\n", Version)
			fmt.Fprintf(out, "  Build time: %s\n", BuildTime)
			fmt.Fprintf(out, "  Git commit: %s\n", GitCommit)
		},
	}
}
