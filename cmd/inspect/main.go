package main

import (
	"flag"
	"fmt"
	"math/big"
	"os"

	"kagane-unscrambler/internal/page"
	"kagane-unscrambler/internal/scramble"
)

func main() {
	seriesID := flag.String("series", "", "Series id")
	chapterID := flag.String("chapter", "", "Chapter id")
	index := flag.Int("page", 1, "Page number (1-based)")
	rawSeed := flag.String("seed", "", "Decimal seed, overrides series/chapter/page")
	grid := flag.Int("grid", page.GridSize, "Tile grid dimension")
	flag.Parse()

	var seed *big.Int
	switch {
	case *rawSeed != "":
		var ok bool
		seed, ok = new(big.Int).SetString(*rawSeed, 10)
		if !ok {
			fmt.Fprintf(os.Stderr, "Error: bad seed %q\n", *rawSeed)
			os.Exit(1)
		}
		fmt.Printf("Seed: %s\n", seed)
	case *seriesID != "" && *chapterID != "":
		seed = page.Seed(*seriesID, *chapterID, *index)
		fmt.Printf("Page: %s:%s:%s\n", *seriesID, *chapterID, page.Filename(*index))
		fmt.Printf("Seed: %s (0x%016x)\n", seed, seed.Uint64())
	default:
		fmt.Fprintln(os.Stderr, "usage: inspect -series ID -chapter ID [-page N] | -seed N")
		os.Exit(2)
	}

	s, err := scramble.NewScrambler(seed, *grid)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Grid: %dx%d (%d pieces), graph edges: %d\n", *grid, *grid, s.TotalPieces(), s.EdgeCount())
	fmt.Printf("Order: %v\n", s.Order())
	fmt.Printf("Path:  %v\n", s.ScramblePath())
	fmt.Println("Mapping (dst <- src):")
	for _, p := range s.Mapping() {
		fmt.Printf("  %3d <- %3d\n", p.Dst, p.Src)
	}
}
