// Package faq provides BM25 keyword retrieval over FAQ documents. General
// intent turns that carry no catalog slots are answered from here instead
// of the catalog query layer.
package faq

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"unicode"

	"github.com/crawlab-team/bm25"

	"github.com/studygate/partner-bot-go/internal/logger"
	"github.com/studygate/partner-bot-go/internal/metrics"
)

// Document is one FAQ entry.
type Document struct {
	ID       string
	Question string
	Answer   string
	Tags     []string
}

// Result is one retrieved FAQ entry with a rank-based confidence.
type Result struct {
	Document   Document
	Score      float64
	Rank       int
	Confidence float32
}

// bm25K1 and bm25B are the standard BM25 parameters.
const (
	bm25K1 = 1.5
	bm25B  = 0.75
)

// minIDF floors the raw Okapi IDF. Terms occurring in half or more of the
// documents go non-positive under the log formula, which in small corpora
// zeroes out or inverts the score of exactly the documents that match best.
const minIDF = 0.25

// Index provides keyword-based FAQ search using the BM25 algorithm.
type Index struct {
	bm25Okapi   *bm25.BM25Okapi
	corpus      []string
	docs        []Document
	log         *logger.Logger
	metrics     *metrics.Metrics
	mu          sync.RWMutex
	initialized bool
}

// NewIndex creates an empty FAQ index. m may be nil to disable metrics.
func NewIndex(log *logger.Logger, m *metrics.Metrics) *Index {
	return &Index{
		log:     log.WithModule("faq"),
		metrics: m,
	}
}

// Initialize builds the BM25 index from documents. Question, answer, and
// tags all contribute to the indexed text. Safe to call again to rebuild.
func (idx *Index) Initialize(docs []Document) error {
	if idx == nil {
		return nil
	}

	idx.mu.Lock()
	defer idx.mu.Unlock()

	if len(docs) == 0 {
		idx.docs = nil
		idx.corpus = nil
		idx.bm25Okapi = nil
		idx.initialized = true
		return nil
	}

	// The bm25 library computes IDF from corpus-wide term counts, so a term
	// repeated inside one document (tags echoing question words) depresses
	// its own IDF below zero. Index each term once per document so the count
	// behaves as a document frequency.
	corpus := make([]string, len(docs))
	for i, doc := range docs {
		text := doc.Question + "\n" + doc.Answer + "\n" + strings.Join(doc.Tags, " ")
		corpus[i] = strings.Join(uniqueTokens(tokenize(text)), " ")
	}

	bm25Okapi, err := bm25.NewBM25Okapi(corpus, tokenize, bm25K1, bm25B, nil)
	if err != nil {
		return fmt.Errorf("failed to create BM25 index: %w", err)
	}

	idx.docs = docs
	idx.corpus = corpus
	idx.bm25Okapi = bm25Okapi
	idx.initialized = true

	idx.log.WithField("docs", len(docs)).Info("FAQ index initialized")
	return nil
}

// Search returns the topN documents ranked by BM25 score. Zero-score
// documents are excluded; an empty result is not an error.
func (idx *Index) Search(query string, topN int) ([]Result, error) {
	if idx == nil {
		return nil, nil
	}

	idx.mu.RLock()
	defer idx.mu.RUnlock()

	if !idx.initialized || idx.bm25Okapi == nil || strings.TrimSpace(query) == "" {
		idx.metrics.RecordFAQSearch("empty")
		return nil, nil
	}

	tokens := tokenize(query)
	if len(tokens) == 0 {
		idx.metrics.RecordFAQSearch("empty")
		return nil, nil
	}

	scores := idx.scoreTokens(tokens)

	var results []Result
	for docID, score := range scores {
		if score > 0 && docID < len(idx.docs) {
			results = append(results, Result{Document: idx.docs[docID], Score: score})
		}
	}

	sort.Slice(results, func(i, j int) bool { return results[i].Score > results[j].Score })

	for i := range results {
		results[i].Rank = i + 1
		results[i].Confidence = rankConfidence(i + 1)
	}

	if topN > 0 && len(results) > topN {
		results = results[:topN]
	}

	if len(results) == 0 {
		idx.metrics.RecordFAQSearch("miss")
	} else {
		idx.metrics.RecordFAQSearch("hit")
	}
	return results, nil
}

// scoreTokens accumulates per-document BM25 scores using the index corpus
// statistics, with the IDF of each query term floored at minIDF. Callers
// must hold at least a read lock.
func (idx *Index) scoreTokens(tokens []string) []float64 {
	docLens := idx.bm25Okapi.DocLengths()
	avgLen := idx.bm25Okapi.AvgDocLen()

	scores := make([]float64, len(idx.corpus))
	for _, tok := range tokens {
		idf, err := idx.bm25Okapi.IDF(tok)
		if err != nil || idf < minIDF {
			idf = minIDF
		}
		for i, text := range idx.corpus {
			freq, err := bm25.CountTermFreq(tok, text, tokenize)
			if err != nil || freq == 0 {
				continue
			}
			tf := float64(freq)
			k := bm25K1 * (1 - bm25B + bm25B*float64(docLens[i])/avgLen)
			scores[i] += idf * tf / (tf + k)
		}
	}
	return scores
}

// Size returns the number of indexed documents.
func (idx *Index) Size() int {
	if idx == nil {
		return 0
	}
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return len(idx.docs)
}

// rankConfidence maps a rank position to a confidence score. BM25 scores
// are unbounded and query-dependent, so rank is the usable proxy.
//
//	rank 1 → 0.95, rank 5 → 0.80, rank 10 → 0.67
func rankConfidence(rank int) float32 {
	if rank <= 0 {
		return 0
	}
	return float32(1.0 / (1.0 + 0.05*float64(rank)))
}

// tokenize splits mixed Chinese and English text. Latin words are kept
// whole; CJK runs become single characters plus bigrams so that catalog
// names like 暨南大学 stay searchable without a dictionary.
func tokenize(text string) []string {
	text = strings.ToLower(text)

	var tokens []string
	var currentWord strings.Builder

	runes := []rune(text)
	for i, r := range runes {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			if isCJK(r) {
				if currentWord.Len() > 0 {
					tokens = append(tokens, currentWord.String())
					currentWord.Reset()
				}
				tokens = append(tokens, string(r))
				if i+1 < len(runes) && isCJK(runes[i+1]) {
					tokens = append(tokens, string(r)+string(runes[i+1]))
				}
			} else {
				currentWord.WriteRune(r)
			}
		default:
			if currentWord.Len() > 0 {
				tokens = append(tokens, currentWord.String())
				currentWord.Reset()
			}
		}
	}

	if currentWord.Len() > 0 {
		tokens = append(tokens, currentWord.String())
	}

	return tokens
}

func isCJK(r rune) bool {
	return unicode.Is(unicode.Han, r)
}

// uniqueTokens drops repeated tokens while preserving first-seen order.
func uniqueTokens(tokens []string) []string {
	seen := make(map[string]struct{}, len(tokens))
	out := tokens[:0]
	for _, tok := range tokens {
		if _, ok := seen[tok]; ok {
			continue
		}
		seen[tok] = struct{}{}
		out = append(out, tok)
	}
	return out
}
