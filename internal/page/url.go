package page

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// ErrNotPageURL is returned for URLs that do not carry a page token.
var ErrNotPageURL = errors.New("page: not a tokenised page url")

// Ref identifies one page of a chapter. Index is 1-based.
type Ref struct {
	SeriesID  string
	ChapterID string
	Index     int
}

func (r Ref) String() string {
	return fmt.Sprintf("%s/%s/%d", r.SeriesID, r.ChapterID, r.Index)
}

// ParseURL extracts the page reference from an image URL of the form
//
//	{cache}/api/v1/books/{series}/file/{chapter}/{index}?token=...
func ParseURL(raw string) (Ref, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return Ref{}, fmt.Errorf("page: parse url: %w", err)
	}
	if !u.Query().Has("token") {
		return Ref{}, ErrNotPageURL
	}

	segments := strings.Split(strings.Trim(u.EscapedPath(), "/"), "/")
	if len(segments) < 7 {
		return Ref{}, fmt.Errorf("page: url %s: want at least 7 path segments, got %d", raw, len(segments))
	}

	series, err := url.PathUnescape(segments[3])
	if err != nil {
		return Ref{}, fmt.Errorf("page: url %s: %w", raw, err)
	}
	chapter, err := url.PathUnescape(segments[5])
	if err != nil {
		return Ref{}, fmt.Errorf("page: url %s: %w", raw, err)
	}
	index, err := strconv.Atoi(segments[len(segments)-1])
	if err != nil {
		return Ref{}, fmt.Errorf("page: url %s: bad page index: %w", raw, err)
	}

	return Ref{SeriesID: series, ChapterID: chapter, Index: index}, nil
}

// BuildURL returns the image URL for ref on the given cache host.
func BuildURL(cacheURL string, ref Ref, token string) string {
	u := strings.TrimRight(cacheURL, "/") + "/api/v1/books/" +
		url.PathEscape(ref.SeriesID) + "/file/" +
		url.PathEscape(ref.ChapterID) + "/" +
		strconv.Itoa(ref.Index)
	return u + "?" + url.Values{"token": {token}}.Encode()
}

// ChapterKey is the stored chapter reference "series;chapter;pageCount".
type ChapterKey struct {
	SeriesID  string
	ChapterID string
	PageCount int
}

// ParseChapterKey splits a stored chapter reference.
func ParseChapterKey(s string) (ChapterKey, error) {
	parts := strings.Split(s, ";")
	if len(parts) != 3 {
		return ChapterKey{}, fmt.Errorf("page: chapter key %q: want series;chapter;pageCount", s)
	}
	count, err := strconv.Atoi(parts[2])
	if err != nil || count < 0 {
		return ChapterKey{}, fmt.Errorf("page: chapter key %q: bad page count", s)
	}
	return ChapterKey{SeriesID: parts[0], ChapterID: parts[1], PageCount: count}, nil
}

// Refs lists every page of the chapter, numbered from 1.
func (k ChapterKey) Refs() []Ref {
	refs := make([]Ref, k.PageCount)
	for i := range refs {
		refs[i] = Ref{SeriesID: k.SeriesID, ChapterID: k.ChapterID, Index: i + 1}
	}
	return refs
}
