package manuals

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
	"unicode"

	openai "github.com/sashabaranov/go-openai"
)

// DefaultTopK is how many excerpts accompany a question.
const DefaultTopK = 5

// Excerpt is a chunk ranked against a question.
type Excerpt struct {
	Chunk
	Score float64
}

// Retriever returns the k chunks most relevant to a question, best first.
type Retriever interface {
	Retrieve(ctx context.Context, query string, k int) ([]Excerpt, error)
}

// top sorts by score and keeps the first k positive scores. Ties keep manual order.
func top(excerpts []Excerpt, k int) []Excerpt {
	sort.SliceStable(excerpts, func(i, j int) bool {
		return excerpts[i].Score > excerpts[j].Score
	})
	out := excerpts[:0]
	for _, e := range excerpts {
		if e.Score <= 0 || len(out) == k {
			break
		}
		out = append(out, e)
	}
	return out
}

// KeywordIndex ranks chunks by TF-IDF over their words. It needs no model and
// is used when embeddings are unavailable.
type KeywordIndex struct {
	chunks []Chunk
	terms  []map[string]int
	df     map[string]int
}

func NewKeywordIndex(chunks []Chunk) *KeywordIndex {
	idx := &KeywordIndex{
		chunks: chunks,
		terms:  make([]map[string]int, len(chunks)),
		df:     make(map[string]int),
	}
	for i, c := range chunks {
		tf := make(map[string]int)
		for _, w := range tokenize(c.Text) {
			tf[w]++
		}
		for w := range tf {
			idx.df[w]++
		}
		idx.terms[i] = tf
	}
	return idx
}

func (idx *KeywordIndex) Retrieve(_ context.Context, query string, k int) ([]Excerpt, error) {
	if k <= 0 {
		k = DefaultTopK
	}
	words := tokenize(query)
	n := float64(len(idx.chunks))

	excerpts := make([]Excerpt, 0, len(idx.chunks))
	for i, c := range idx.chunks {
		var score float64
		for _, w := range words {
			tf := idx.terms[i][w]
			if tf == 0 {
				continue
			}
			idf := math.Log(1 + n/float64(idx.df[w]))
			score += (1 + math.Log(float64(tf))) * idf
		}
		excerpts = append(excerpts, Excerpt{Chunk: c, Score: score})
	}
	return top(excerpts, k), nil
}

func tokenize(text string) []string {
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	out := fields[:0]
	for _, f := range fields {
		if len([]rune(f)) > 2 {
			out = append(out, f)
		}
	}
	return out
}

// Embedder is the slice of the OpenAI client the embedding index uses.
type Embedder interface {
	CreateEmbeddings(ctx context.Context, conv openai.EmbeddingRequestConverter) (openai.EmbeddingResponse, error)
}

// embedBatch bounds how many chunks go in one embeddings request.
const embedBatch = 64

// EmbeddingIndex ranks chunks by cosine similarity of their embeddings.
type EmbeddingIndex struct {
	embedder Embedder
	model    openai.EmbeddingModel
	chunks   []Chunk
	vectors  [][]float32
}

// NewEmbeddingIndex embeds every chunk up front.
func NewEmbeddingIndex(ctx context.Context, embedder Embedder, model string, chunks []Chunk) (*EmbeddingIndex, error) {
	if model == "" {
		model = string(openai.AdaEmbeddingV2)
	}
	idx := &EmbeddingIndex{
		embedder: embedder,
		model:    openai.EmbeddingModel(model),
		chunks:   chunks,
		vectors:  make([][]float32, 0, len(chunks)),
	}

	for start := 0; start < len(chunks); start += embedBatch {
		end := min(start+embedBatch, len(chunks))
		texts := make([]string, 0, end-start)
		for _, c := range chunks[start:end] {
			texts = append(texts, c.Text)
		}
		vecs, err := idx.embed(ctx, texts)
		if err != nil {
			return nil, fmt.Errorf("failed to embed manuals: %w", err)
		}
		idx.vectors = append(idx.vectors, vecs...)
	}
	return idx, nil
}

func (idx *EmbeddingIndex) embed(ctx context.Context, texts []string) ([][]float32, error) {
	resp, err := idx.embedder.CreateEmbeddings(ctx, openai.EmbeddingRequestStrings{
		Input: texts,
		Model: idx.model,
	})
	if err != nil {
		return nil, err
	}
	if len(resp.Data) != len(texts) {
		return nil, fmt.Errorf("expected %d embeddings, got %d", len(texts), len(resp.Data))
	}
	vecs := make([][]float32, len(texts))
	for _, d := range resp.Data {
		if d.Index < 0 || d.Index >= len(texts) {
			return nil, fmt.Errorf("embedding index %d out of range", d.Index)
		}
		vecs[d.Index] = d.Embedding
	}
	return vecs, nil
}

func (idx *EmbeddingIndex) Retrieve(ctx context.Context, query string, k int) ([]Excerpt, error) {
	if k <= 0 {
		k = DefaultTopK
	}
	vecs, err := idx.embed(ctx, []string{query})
	if err != nil {
		return nil, fmt.Errorf("failed to embed question: %w", err)
	}
	q := vecs[0]
	if len(q) == 0 {
		return nil, errors.New("empty question embedding")
	}

	excerpts := make([]Excerpt, 0, len(idx.chunks))
	for i, c := range idx.chunks {
		excerpts = append(excerpts, Excerpt{Chunk: c, Score: cosine(q, idx.vectors[i])})
	}
	return top(excerpts, k), nil
}

func cosine(a, b []float32) float64 {
	if len(a) != len(b) {
		return 0
	}
	var dot, na, nb float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		na += float64(a[i]) * float64(a[i])
		nb += float64(b[i]) * float64(b[i])
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}
