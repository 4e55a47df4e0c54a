package main

import (
	"fmt"
	"unicode"

	"github.com/goccy/go-json"
	"github.com/seiflotfy/huff"
	"github.com/spf13/cobra"
	"go.uber.org/multierr"
)

type containerReport struct {
	File         string       `json:"file"`
	Format       string       `json:"format"`
	Symbols      int          `json:"symbols"`
	DecodedLen   uint64       `json:"decoded_len,omitempty"`
	HeaderBytes  int          `json:"header_bytes"`
	PayloadBytes int          `json:"payload_bytes"`
	MaxCodeLen   int          `json:"max_code_len"`
	Codes        []codeReport `json:"codes"`
}

type codeReport struct {
	Symbol byte   `json:"symbol"`
	Char   string `json:"char,omitempty"`
	Code   string `json:"code"`
}

func (a *app) inspectCommand() *cobra.Command {
	var formatName string
	cmd := &cobra.Command{
		Use:   "inspect [file...]",
		Short: "Print container headers as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := huff.ParseFormat(formatName)
			if err != nil {
				return err
			}
			files, err := a.inputFiles(args, "Enter the compressed filename: ")
			if err != nil {
				return err
			}

			dec := huff.NewDecoder(huff.WithFormat(format))
			reports := make([]containerReport, 0, len(files))
			var errs error
			for _, in := range files {
				r, err := inspectFile(dec, in)
				if err != nil {
					errs = multierr.Append(errs, fmt.Errorf("inspect %s: %w", in, err))
					continue
				}
				reports = append(reports, r)
			}

			enc := json.NewEncoder(a.stdout)
			enc.SetIndent("", "  ")
			if err := enc.Encode(reports); err != nil {
				errs = multierr.Append(errs, err)
			}
			return errs
		},
	}
	cmd.Flags().StringVarP(&formatName, "format", "f", "auto", "container format: auto, framed or legacy")
	return cmd
}

func inspectFile(dec *huff.Decoder, path string) (containerReport, error) {
	src, err := readInput(path)
	if err != nil {
		return containerReport{}, err
	}
	c, err := dec.Parse(src)
	if err != nil {
		return containerReport{}, err
	}

	r := containerReport{
		File:         path,
		Format:       c.Format.String(),
		Symbols:      c.Symbols(),
		DecodedLen:   c.DecodedLen,
		HeaderBytes:  c.HeaderLen(),
		PayloadBytes: len(c.Payload),
		Codes:        make([]codeReport, 0, c.Symbols()),
	}
	for _, sym := range c.Table.Symbols() {
		code, _ := c.Table.Lookup(sym)
		if len(code) > r.MaxCodeLen {
			r.MaxCodeLen = len(code)
		}
		cr := codeReport{Symbol: sym, Code: code.String()}
		if sym < unicode.MaxASCII && unicode.IsPrint(rune(sym)) {
			cr.Char = string(rune(sym))
		}
		r.Codes = append(r.Codes, cr)
	}
	return r, nil
}
