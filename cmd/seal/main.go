package main

import (
	"crypto/rand"
	"flag"
	"fmt"
	"os"

	"kagane-unscrambler/internal/crypto"
	"kagane-unscrambler/internal/imageformat"
	"kagane-unscrambler/internal/page"
)

// seal produces an encrypted, tile-scrambled page payload from a plain
// image, for building test chapters.
func main() {
	in := flag.String("in", "", "Plain JPEG or WEBP page")
	out := flag.String("out", "", "Output payload path")
	seriesID := flag.String("series", "", "Series id")
	chapterID := flag.String("chapter", "", "Chapter id")
	index := flag.Int("page", 1, "Page number (1-based)")
	grid := flag.Int("grid", page.GridSize, "Tile grid dimension")
	flag.Parse()

	if *in == "" || *out == "" || *seriesID == "" || *chapterID == "" {
		fmt.Fprintln(os.Stderr, "usage: seal -in page.jpg -out 0001.bin -series ID -chapter ID [-page N]")
		os.Exit(2)
	}

	img, err := os.ReadFile(*in)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if !imageformat.IsImage(img) {
		fmt.Fprintf(os.Stderr, "Warning: %s has no recognised image signature\n", *in)
	}

	header := make([]byte, crypto.HeaderSize)
	nonce := make([]byte, crypto.NonceSize)
	if _, err := rand.Read(header); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if _, err := rand.Read(nonce); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	ref := page.Ref{SeriesID: *seriesID, ChapterID: *chapterID, Index: *index}
	payload, err := page.Encode(img, ref, header, nonce, *grid)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if err := os.WriteFile(*out, payload, 0644); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("OK  %s -> %s  (page %s, %d bytes)\n", *in, *out, ref, len(payload))
}
