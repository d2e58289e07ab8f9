package main

import (
	"flag"
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"

	"kagane-unscrambler/internal/batch"
	"kagane-unscrambler/internal/config"
	"kagane-unscrambler/internal/page"
	"kagane-unscrambler/internal/pagelist"
)

func main() {
	// CLI flags
	configFile := flag.String("config", "", "Path to config.json file")
	inputDir := flag.String("input", "", "Directory of encrypted page payloads (default: .)")
	outputDir := flag.String("output", "", "Output directory (default: <input>/unscrambled)")
	seriesID := flag.String("series", "", "Series id")
	chapterID := flag.String("chapter", "", "Chapter id")
	chapterKey := flag.String("chapter-key", "", "Stored chapter key series;chapter;pageCount")
	format := flag.String("format", "", "Output format: raw, webp or tga (default: raw)")
	maxSize := flag.Int("max-size", 0, "Downscale longest side to this many pixels")
	grid := flag.Int("grid", 0, "Tile grid dimension (default: 10)")
	workers := flag.Int("workers", 0, "Number of worker goroutines (default: NumCPU)")
	verbose := flag.Bool("verbose", false, "Log every page")

	flag.Parse()

	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	if *verbose {
		log.SetLevel(logrus.DebugLevel)
	}

	// Load config
	var cfg config.Config
	if *configFile != "" {
		var err error
		cfg, err = config.Load(*configFile)
		if err != nil {
			log.WithError(err).Fatal("loading config")
		}
	}

	flags := config.Flags{
		SeriesID:  *seriesID,
		ChapterID: *chapterID,
		InputDir:  *inputDir,
		OutputDir: *outputDir,
		Format:    *format,
		MaxSize:   *maxSize,
		GridSize:  *grid,
		Workers:   *workers,
	}
	var expected int
	if *chapterKey != "" {
		key, err := page.ParseChapterKey(*chapterKey)
		if err != nil {
			log.WithError(err).Fatal("parsing chapter key")
		}
		if flags.SeriesID == "" {
			flags.SeriesID = key.SeriesID
		}
		if flags.ChapterID == "" {
			flags.ChapterID = key.ChapterID
		}
		expected = key.PageCount
	}

	// CLI flags override config file
	cfg.Resolve(flags)
	if err := cfg.Validate(); err != nil {
		log.WithError(err).Fatal("invalid configuration")
	}

	pages, err := pagelist.Scan(cfg.InputDir)
	if err != nil {
		log.WithError(err).Fatal("listing pages")
	}
	if len(pages) == 0 {
		log.WithField("input", cfg.InputDir).Info("no pages to unscramble")
		os.Exit(0)
	}
	if expected > 0 && len(pages) != expected {
		log.WithFields(logrus.Fields{"found": len(pages), "expected": expected}).Warn("page count mismatch")
	}

	log.WithFields(logrus.Fields{
		"series":  cfg.SeriesID,
		"chapter": cfg.ChapterID,
		"pages":   len(pages),
		"workers": cfg.Workers,
		"format":  cfg.Format,
		"output":  cfg.OutputDir,
	}).Info("starting")

	start := time.Now()

	// Run batch
	batchCfg := batch.Config{
		SeriesID:  cfg.SeriesID,
		ChapterID: cfg.ChapterID,
		OutputDir: cfg.OutputDir,
		Format:    cfg.Format,
		MaxSize:   cfg.MaxSize,
		GridSize:  cfg.GridSize,
		Workers:   cfg.Workers,
		Logger:    log,
	}

	results := batch.Run(batchCfg, pages)

	// Count results
	failed := 0
	for _, r := range results {
		if !r.Success {
			failed++
		}
	}

	log.WithFields(logrus.Fields{
		"unscrambled": len(results) - failed,
		"failed":      failed,
		"elapsed":     time.Since(start).Round(time.Millisecond),
	}).Info("done")

	// Write manifest
	manifestPath := filepath.Join(cfg.OutputDir, "manifest.json")
	if err := os.MkdirAll(cfg.OutputDir, 0755); err != nil {
		log.WithError(err).Warn("creating output dir")
	} else if err := batch.WriteManifest(manifestPath, batchCfg, results); err != nil {
		log.WithError(err).Warn("manifest write failed")
	} else {
		log.WithField("path", manifestPath).Info("manifest written")
	}

	if failed > 0 {
		os.Exit(1)
	}
}
