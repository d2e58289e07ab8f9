package pagelist

// PageDef holds one encrypted page payload found on disk.
type PageDef struct {
	Index int    // 1-based page number, as used in the page url
	Name  string // file name, e.g. "0003.bin"
	Path  string
}
