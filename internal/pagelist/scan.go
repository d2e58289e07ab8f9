package pagelist

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
)

// pageName matches file names whose stem starts with the page number,
// e.g. "7", "0007.bin" or "7_payload.dat".
var pageName = regexp.MustCompile(`^0*(\d+)(?:[._-].*)?$`)

// Scan lists the page payloads in dir, ordered by page number. Files that
// do not start with a number are ignored. When two files carry the same
// number the lexically first one wins.
func Scan(dir string) ([]PageDef, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("pagelist: read %s: %w", dir, err)
	}

	seen := make(map[int]bool)
	var pages []PageDef
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		m := pageName.FindStringSubmatch(e.Name())
		if m == nil {
			continue
		}
		idx, err := strconv.Atoi(m[1])
		if err != nil || idx == 0 || seen[idx] {
			continue
		}
		seen[idx] = true
		pages = append(pages, PageDef{
			Index: idx,
			Name:  e.Name(),
			Path:  filepath.Join(dir, e.Name()),
		})
	}

	sort.Slice(pages, func(i, j int) bool { return pages[i].Index < pages[j].Index })
	return pages, nil
}
