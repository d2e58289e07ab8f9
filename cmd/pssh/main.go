package main

import (
	"encoding/base64"
	"flag"
	"fmt"
	"os"

	"kagane-unscrambler/internal/crypto"
)

func main() {
	seriesID := flag.String("series", "", "Series id")
	chapterID := flag.String("chapter", "", "Chapter id")
	flag.Parse()

	if *seriesID == "" || *chapterID == "" {
		fmt.Fprintln(os.Stderr, "usage: pssh -series ID -chapter ID")
		os.Exit(2)
	}

	keyID := crypto.ChallengeKeyID(*seriesID, *chapterID)
	box := crypto.BuildPSSH(keyID)

	fmt.Printf("Key ID: %x\n", keyID)
	fmt.Printf("PSSH:   %s\n", base64.StdEncoding.EncodeToString(box))
}
