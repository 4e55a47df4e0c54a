package main

import (
	"fmt"
	"io"
	"time"

	"github.com/seiflotfy/huff"
	"github.com/spf13/cobra"
	"go.uber.org/multierr"
)

func (a *app) encodeCommand() *cobra.Command {
	var (
		formatName string
		output     string
	)
	cmd := &cobra.Command{
		Use:   "encode [file...]",
		Short: "Compress files into Huffman containers",
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := huff.ParseFormat(formatName)
			if err != nil {
				return err
			}
			files, err := a.inputFiles(args, "Enter the filename: ")
			if err != nil {
				return err
			}
			if output != "" && len(files) > 1 {
				return fmt.Errorf("--output needs exactly one input, got %d", len(files))
			}

			enc := huff.NewEncoder(huff.WithFormat(format))
			var errs error
			for _, in := range files {
				out := output
				if out == "" {
					out = compressedName(in)
				}
				if err := a.encodeFile(enc, in, out); err != nil {
					errs = multierr.Append(errs, fmt.Errorf("encode %s: %w", in, err))
				}
			}
			return errs
		},
	}
	cmd.Flags().StringVarP(&formatName, "format", "f", "framed", "container format: framed or legacy")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output path (single input only)")
	return cmd
}

func (a *app) encodeFile(enc *huff.Encoder, in, out string) (err error) {
	start := time.Now()
	var inLen, outLen int
	defer func() {
		a.metrics.Observe("encode", inLen, outLen, time.Since(start), err)
	}()

	data, err := readInput(in)
	if err != nil {
		return err
	}
	inLen = len(data)

	c, err := enc.Encode(data)
	if err != nil {
		return err
	}
	outLen = c.Size()
	if c.Lossy() {
		a.log.Warnf("%s: single-symbol input in legacy format decodes to empty output; use --format framed to keep its %d bytes",
			in, c.DecodedLen)
	}
	a.log.Debugf("%s: %d bytes, %d symbols, %s format, %d header + %d payload bytes",
		in, len(data), c.Symbols(), c.Format, c.HeaderLen(), len(c.Payload))

	if err := writeOutput(out, func(w io.Writer) error {
		_, err := c.WriteTo(w)
		return err
	}); err != nil {
		return err
	}
	fmt.Fprintf(a.stdout, "Compression complete. Output written to %s\n", out)
	return nil
}
