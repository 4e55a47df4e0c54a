package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/seiflotfy/huff"
)

const (
	compressedSuffix = "_compressed.txt"
	decodedSuffix    = ".decoded"
)

// compressedName strips the extension of path and appends the compressed
// suffix: notes.txt becomes notes_compressed.txt.
func compressedName(path string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + compressedSuffix
}

func decodedName(path string) string {
	return path + decodedSuffix
}

// inputFiles returns args, or a single filename read from stdin after
// printing prompt when args is empty.
func (a *app) inputFiles(args []string, prompt string) ([]string, error) {
	if len(args) > 0 {
		return args, nil
	}
	fmt.Fprint(a.stdout, prompt)
	sc := bufio.NewScanner(a.stdin)
	sc.Split(bufio.ScanWords)
	if !sc.Scan() {
		if err := sc.Err(); err != nil {
			return nil, fmt.Errorf("%w: read filename: %v", huff.ErrInputUnreadable, err)
		}
		return nil, fmt.Errorf("%w: no filename given", huff.ErrInputUnreadable)
	}
	return []string{sc.Text()}, nil
}

func readInput(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", huff.ErrInputUnreadable, err)
	}
	return data, nil
}

// writeOutput writes to a temporary file in the destination directory and
// renames it over path, so a failed write never leaves a partial file.
func writeOutput(path string, write func(io.Writer) error) (err error) {
	dir, base := filepath.Split(path)
	if dir == "" {
		dir = "."
	}
	tmp, err := os.CreateTemp(dir, "."+base+".tmp-*")
	if err != nil {
		return fmt.Errorf("%w: %v", huff.ErrOutputUnwritable, err)
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	bw := bufio.NewWriter(tmp)
	if err := write(bw); err != nil {
		return fmt.Errorf("%w: %v", huff.ErrOutputUnwritable, err)
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("%w: %v", huff.ErrOutputUnwritable, err)
	}
	if err := tmp.Chmod(0o644); err != nil {
		return fmt.Errorf("%w: %v", huff.ErrOutputUnwritable, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("%w: %v", huff.ErrOutputUnwritable, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("%w: %v", huff.ErrOutputUnwritable, err)
	}
	return nil
}
