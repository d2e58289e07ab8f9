package batch

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"

	"kagane-unscrambler/internal/convert"
	"kagane-unscrambler/internal/imageformat"
	"kagane-unscrambler/internal/page"
	"kagane-unscrambler/internal/pagelist"
)

// Config holds all shared settings for a batch run.
type Config struct {
	SeriesID  string
	ChapterID string
	OutputDir string
	Format    string
	MaxSize   int
	GridSize  int
	Workers   int
	Logger    *logrus.Logger
}

// Result holds the outcome of processing one page.
type Result struct {
	Index   int
	Source  string
	Output  string
	Format  string
	Bytes   int
	Success bool
	Error   string
}

// Run processes all pages using a worker pool.
func Run(cfg Config, pages []pagelist.PageDef) []Result {
	if cfg.Logger == nil {
		cfg.Logger = logrus.New()
	}
	workers := cfg.Workers
	if workers <= 0 {
		workers = 1
	}

	total := len(pages)
	results := make([]Result, total)
	var processed atomic.Int64

	start := time.Now()

	// Progress reporter
	done := make(chan struct{})
	go func() {
		ticker := time.NewTicker(2 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				p := processed.Load()
				if p > 0 {
					elapsed := time.Since(start).Seconds()
					cfg.Logger.WithFields(logrus.Fields{
						"done":  p,
						"total": total,
						"rate":  fmt.Sprintf("%.1f/s", float64(p)/elapsed),
					}).Info("progress")
				}
			}
		}
	}()

	// Worker pool
	pageChan := make(chan int, workers*2)
	var wg sync.WaitGroup

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range pageChan {
				results[idx] = processPage(cfg, pages[idx])
				processed.Add(1)
			}
		}()
	}

	// Send work
	for i := range pages {
		pageChan <- i
	}
	close(pageChan)

	wg.Wait()
	close(done)

	return results
}

func processPage(cfg Config, pg pagelist.PageDef) Result {
	res := Result{Index: pg.Index, Source: pg.Name}
	log := cfg.Logger.WithFields(logrus.Fields{"page": pg.Index, "file": pg.Name})

	fail := func(err error) Result {
		log.WithError(err).Warn("page failed")
		res.Error = err.Error()
		return res
	}

	payload, err := os.ReadFile(pg.Path)
	if err != nil {
		return fail(err)
	}

	ref := page.Ref{SeriesID: cfg.SeriesID, ChapterID: cfg.ChapterID, Index: pg.Index}
	img, err := page.DecodeGrid(payload, ref, cfg.GridSize)
	if err != nil {
		return fail(fmt.Errorf("decode %s: %w", ref, err))
	}

	detected := imageformat.Detect(img)
	log.WithField("format", detected).Debug("page decoded")

	out := img
	ext := detected.Ext()
	res.Format = detected.String()

	format := strings.ToLower(cfg.Format)
	if format != "" && format != convert.FormatRaw {
		decoded, err := convert.Decode(img)
		if err != nil {
			return fail(err)
		}
		decoded = convert.Downsample(decoded, cfg.MaxSize)

		var buf bytes.Buffer
		if err := convert.Encode(&buf, decoded, format); err != nil {
			return fail(err)
		}
		out = buf.Bytes()
		ext = convert.Ext(format)
		res.Format = format
	}

	outPath := filepath.Join(cfg.OutputDir, fmt.Sprintf("%04d%s", pg.Index, ext))
	if err := os.MkdirAll(filepath.Dir(outPath), 0755); err != nil {
		return fail(err)
	}
	if err := os.WriteFile(outPath, out, 0644); err != nil {
		return fail(err)
	}

	res.Output = filepath.Base(outPath)
	res.Bytes = len(out)
	res.Success = true
	return res
}
