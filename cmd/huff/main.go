// Command huff compresses and decompresses files with static Huffman coding.
//
// Usage:
//
//	huff encode [file...]   writes <name>_compressed.txt next to each input
//	huff decode [file...]   writes <file>.decoded next to each input
//	huff inspect [file...]  prints container headers as JSON
//
// Without file arguments, encode and decode prompt for a filename on stdin.
package main

import (
	"os"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}
