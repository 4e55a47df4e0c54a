package main

import (
	"fmt"
	"io"
	"time"

	"github.com/seiflotfy/huff"
	"github.com/spf13/cobra"
	"go.uber.org/multierr"
)

func (a *app) decodeCommand() *cobra.Command {
	var (
		formatName string
		output     string
		tableCache int
	)
	cmd := &cobra.Command{
		Use:   "decode [file...]",
		Short: "Decompress Huffman containers",
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := huff.ParseFormat(formatName)
			if err != nil {
				return err
			}
			files, err := a.inputFiles(args, "Enter the compressed filename: ")
			if err != nil {
				return err
			}
			if output != "" && len(files) > 1 {
				return fmt.Errorf("--output needs exactly one input, got %d", len(files))
			}

			dec := huff.NewDecoder(huff.WithFormat(format), huff.WithTableCache(tableCache))
			var errs error
			for _, in := range files {
				out := output
				if out == "" {
					out = decodedName(in)
				}
				if err := a.decodeFile(dec, in, out); err != nil {
					errs = multierr.Append(errs, fmt.Errorf("decode %s: %w", in, err))
				}
			}
			a.metrics.SetCachedTrees(dec.CachedTables())
			a.log.Debugf("table cache holds %d trees", dec.CachedTables())
			return errs
		},
	}
	cmd.Flags().StringVarP(&formatName, "format", "f", "auto", "container format: auto, framed or legacy")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output path (single input only)")
	cmd.Flags().IntVar(&tableCache, "table-cache", 64, "number of rebuilt code trees to reuse across inputs (0 disables)")
	return cmd
}

func (a *app) decodeFile(dec *huff.Decoder, in, out string) (err error) {
	start := time.Now()
	var inLen, outLen int
	defer func() {
		a.metrics.Observe("decode", inLen, outLen, time.Since(start), err)
	}()

	src, err := readInput(in)
	if err != nil {
		return err
	}
	inLen = len(src)

	c, err := dec.Parse(src)
	if err != nil {
		return err
	}
	data, err := c.AppendAll(nil)
	if err != nil {
		return err
	}
	outLen = len(data)
	a.log.Debugf("%s: %s format, %d symbols, %d bytes decoded", in, c.Format, c.Symbols(), len(data))

	if err := writeOutput(out, func(w io.Writer) error {
		_, err := w.Write(data)
		return err
	}); err != nil {
		return err
	}
	fmt.Fprintf(a.stdout, "Decompression complete. Output written to %s\n", out)
	return nil
}
