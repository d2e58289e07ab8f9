package page

import (
	"errors"
	"fmt"
	"math/big"

	"kagane-unscrambler/internal/crypto"
	"kagane-unscrambler/internal/imageformat"
	"kagane-unscrambler/internal/scramble"
)

// GridSize is the tile grid the page server scrambles with.
const GridSize = 10

// ErrUnscramble means the page was still not a recognised image after the
// tiles were put back.
var ErrUnscramble = errors.New("page: unable to unscramble data")

// Filename is the page name the descrambling seed is derived from.
func Filename(index int) string {
	return fmt.Sprintf("%04d.jpg", index)
}

// Seed derives the descrambling seed for one page.
func Seed(seriesID, chapterID string, index int) *big.Int {
	return crypto.DeriveSeed(seriesID, chapterID, Filename(index))
}

// Mapping returns the tile mapping used for page index of a chapter.
func Mapping(seriesID, chapterID string, index, gridSize int) (scramble.Mapping, error) {
	s, err := scramble.NewScrambler(Seed(seriesID, chapterID, index), gridSize)
	if err != nil {
		return nil, err
	}
	return s.Mapping(), nil
}

// Process returns decrypted unchanged when it is already an image and
// otherwise unscrambles it with the page's mapping.
func Process(decrypted []byte, index int, seriesID, chapterID string) ([]byte, error) {
	return ProcessGrid(decrypted, index, seriesID, chapterID, GridSize)
}

// ProcessGrid is Process with an explicit grid dimension.
func ProcessGrid(decrypted []byte, index int, seriesID, chapterID string, gridSize int) ([]byte, error) {
	if imageformat.IsImage(decrypted) {
		return decrypted, nil
	}

	m, err := Mapping(seriesID, chapterID, index, gridSize)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnscramble, err)
	}

	out := scramble.Unscramble(decrypted, m)
	if !imageformat.IsImage(out) {
		return nil, ErrUnscramble
	}
	return out, nil
}

// Decode decrypts payload and restores the page image. Failures are
// reported as crypto.ErrPayloadTooShort, crypto.ErrDecrypt or ErrUnscramble.
func Decode(payload []byte, ref Ref) ([]byte, error) {
	return DecodeGrid(payload, ref, GridSize)
}

// DecodeGrid is Decode with an explicit grid dimension.
func DecodeGrid(payload []byte, ref Ref, gridSize int) ([]byte, error) {
	decrypted, err := crypto.DecryptPayload(payload, ref.SeriesID, ref.ChapterID)
	if err != nil {
		return nil, err
	}
	return ProcessGrid(decrypted, ref.Index, ref.SeriesID, ref.ChapterID, gridSize)
}

// Encode is the server side of Decode: it scrambles img with the page's
// mapping and seals the result.
func Encode(img []byte, ref Ref, header, nonce []byte, gridSize int) ([]byte, error) {
	m, err := Mapping(ref.SeriesID, ref.ChapterID, ref.Index, gridSize)
	if err != nil {
		return nil, err
	}
	return crypto.SealPayload(scramble.Scramble(img, m), header, nonce, ref.SeriesID, ref.ChapterID)
}
