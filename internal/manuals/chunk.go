package manuals

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Default chunking, in characters.
const (
	DefaultChunkSize    = 1000
	DefaultChunkOverlap = 100
)

// Chunk is a citable slice of one manual page.
type Chunk struct {
	ID     int
	Source string
	Page   int
	Text   string
}

// Citation names where the chunk came from.
func (c Chunk) Citation() string {
	return fmt.Sprintf("source: %s, page: %d", c.Source, c.Page)
}

// ChunkConfig controls how pages are split.
type ChunkConfig struct {
	Size    int
	Overlap int
}

func DefaultChunkConfig() ChunkConfig {
	return ChunkConfig{Size: DefaultChunkSize, Overlap: DefaultChunkOverlap}
}

// separators are tried in order until every piece fits.
var separators = []string{"\n\n", "\n", ". ", " "}

// Split cuts every page into chunks of at most cfg.Size characters. Consecutive
// chunks of a page share up to cfg.Overlap characters. Chunks never span pages,
// so each keeps its page's source and number.
func Split(pages []Page, cfg ChunkConfig) []Chunk {
	if cfg.Size <= 0 {
		cfg.Size = DefaultChunkSize
	}
	if cfg.Overlap < 0 || cfg.Overlap >= cfg.Size {
		cfg.Overlap = 0
	}

	var chunks []Chunk
	for _, p := range pages {
		for _, text := range merge(pieces(p.Text, cfg.Size, separators), cfg.Size, cfg.Overlap) {
			chunks = append(chunks, Chunk{
				ID:     len(chunks),
				Source: p.Source,
				Page:   p.Number,
				Text:   text,
			})
		}
	}
	return chunks
}

// pieces breaks text on the coarsest separator that yields parts no longer
// than size, falling back to finer ones and finally to a hard cut.
func pieces(text string, size int, seps []string) []string {
	if width(text) <= size {
		if text == "" {
			return nil
		}
		return []string{text}
	}
	if len(seps) == 0 {
		return hardCut(text, size)
	}

	sep := seps[0]
	parts := strings.Split(text, sep)
	if len(parts) == 1 {
		return pieces(text, size, seps[1:])
	}

	var out []string
	for i, part := range parts {
		if i < len(parts)-1 {
			part += sep
		}
		out = append(out, pieces(part, size, seps[1:])...)
	}
	return out
}

func hardCut(text string, size int) []string {
	var out []string
	runes := []rune(text)
	for len(runes) > size {
		out = append(out, string(runes[:size]))
		runes = runes[size:]
	}
	if len(runes) > 0 {
		out = append(out, string(runes))
	}
	return out
}

// merge packs pieces into chunks. After each chunk the trailing pieces that fit
// in overlap are carried into the next one.
func merge(parts []string, size, overlap int) []string {
	var (
		chunks []string
		window []string
		total  int
	)
	flush := func() {
		if text := strings.TrimSpace(strings.Join(window, "")); text != "" {
			chunks = append(chunks, text)
		}
	}

	for _, part := range parts {
		n := width(part)
		if total+n > size && total > 0 {
			flush()
			for total > 0 && (total > overlap || total+n > size) {
				total -= width(window[0])
				window = window[1:]
			}
		}
		window = append(window, part)
		total += n
	}
	if total > 0 {
		flush()
	}
	return chunks
}

func width(s string) int {
	return utf8.RuneCountInString(s)
}
