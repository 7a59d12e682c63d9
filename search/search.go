// Package search builds and queries the local search index for a docsite.
// The index is serialized to JSON for the client-side search UI and is also
// queryable in-process by the serve-mode search endpoint.
package search

import (
	"encoding/json"
	"math"
	"sort"
	"strings"

	"github.com/eringen/docsite/content"
)

// Field identifiers used in postings. Boost weights are looked up by the
// corresponding name in Options.Boosts.
const (
	FieldTitle   = "title"
	FieldHeading = "heading"
	FieldText    = "text"
)

// Options tunes index queries. Zero value means exact matching only with
// default boosts.
type Options struct {
	// Fuzziness is the edit-distance budget per query term, as a fraction
	// of the term length: budget = floor(fuzziness * len(term)). Range [0, 1].
	Fuzziness float64 `json:"fuzziness"`
	// Prefix enables prefix matching of query terms against index terms.
	Prefix bool `json:"prefix"`
	// Boosts maps field names to score weights.
	Boosts map[string]float64 `json:"boosts"`
}

func (o *Options) boost(field string) float64 {
	if b, ok := o.Boosts[field]; ok {
		return b
	}
	return 1
}

// Document is the per-page record stored alongside the postings.
type Document struct {
	Route   string `json:"route"`
	Title   string `json:"title"`
	Section string `json:"section,omitempty"`
}

// Posting records one (document, field) occurrence of a term.
type Posting struct {
	Doc   int    `json:"d"`
	Field string `json:"f"`
	Count int    `json:"n"`
}

// Result is one search hit.
type Result struct {
	Route   string  `json:"route"`
	Title   string  `json:"title"`
	Section string  `json:"section,omitempty"`
	Score   float64 `json:"score"`
}

// Index is an inverted index over page titles, headings, and body text.
type Index struct {
	docs     []Document
	postings map[string][]Posting
	opts     Options
}

// Build indexes the given pages. Pages are indexed in order, so building
// from a route-sorted slice yields a deterministic index.
func Build(pages []content.Page, opts Options) *Index {
	ix := &Index{
		postings: make(map[string][]Posting),
		opts:     opts,
	}
	for _, p := range pages {
		id := len(ix.docs)
		ix.docs = append(ix.docs, Document{Route: p.Route, Title: p.Title, Section: p.Section})
		ix.add(id, FieldTitle, p.Title)
		for _, h := range p.Headings {
			ix.add(id, FieldHeading, h.Text)
		}
		ix.add(id, FieldText, p.Text)
		ix.add(id, FieldText, strings.Join(p.Keywords, " "))
	}
	return ix
}

func (ix *Index) add(doc int, field, text string) {
	counts := make(map[string]int)
	for _, term := range Tokenize(text) {
		counts[term]++
	}
	for term, n := range counts {
		ix.postings[term] = append(ix.postings[term], Posting{Doc: doc, Field: field, Count: n})
	}
}

// Len returns the number of indexed documents.
func (ix *Index) Len() int { return len(ix.docs) }

// termMatch is an index term matched by a query term, with a weight in
// (0, 1] reflecting match quality: exact 1, prefix 0.7, fuzzy below that.
type termMatch struct {
	term   string
	weight float64
}

func (ix *Index) matchTerm(q string) []termMatch {
	var matches []termMatch
	if _, ok := ix.postings[q]; ok {
		matches = append(matches, termMatch{term: q, weight: 1})
	}
	budget := int(ix.opts.Fuzziness * float64(len([]rune(q))))
	if !ix.opts.Prefix && budget == 0 {
		return matches
	}
	for term := range ix.postings {
		if term == q {
			continue
		}
		if ix.opts.Prefix && strings.HasPrefix(term, q) {
			matches = append(matches, termMatch{term: term, weight: 0.7})
			continue
		}
		if budget > 0 {
			if d, ok := editDistanceWithin(q, term, budget); ok {
				w := 1 - float64(d)/float64(len([]rune(q))+1)
				matches = append(matches, termMatch{term: term, weight: 0.5 * w})
			}
		}
	}
	return matches
}

// Search scores every document for the query and returns up to limit
// results ordered by descending score (route order breaks ties).
func (ix *Index) Search(query string, limit int) []Result {
	terms := Tokenize(query)
	if len(terms) == 0 {
		return nil
	}
	scores := make(map[int]float64)
	for _, q := range terms {
		for _, m := range ix.matchTerm(q) {
			for _, post := range ix.postings[m.term] {
				scores[post.Doc] += m.weight * ix.opts.boost(post.Field) * (1 + math.Log(float64(post.Count)))
			}
		}
	}
	results := make([]Result, 0, len(scores))
	for doc, score := range scores {
		d := ix.docs[doc]
		results = append(results, Result{Route: d.Route, Title: d.Title, Section: d.Section, Score: score})
	}
	sort.Slice(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return results[i].Route < results[j].Route
	})
	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}
	return results
}

// clientIndex is the JSON shape consumed by the embedded search.js.
type clientIndex struct {
	Docs     []Document           `json:"docs"`
	Postings map[string][]Posting `json:"postings"`
	Options  Options              `json:"options"`
}

// MarshalJSON serializes the index for the client-side search UI.
func (ix *Index) MarshalJSON() ([]byte, error) {
	return json.Marshal(clientIndex{Docs: ix.docs, Postings: ix.postings, Options: ix.opts})
}

// UnmarshalJSON restores an index serialized by MarshalJSON.
func (ix *Index) UnmarshalJSON(data []byte) error {
	var c clientIndex
	if err := json.Unmarshal(data, &c); err != nil {
		return err
	}
	ix.docs = c.Docs
	ix.postings = c.Postings
	ix.opts = c.Options
	return nil
}

// editDistanceWithin reports the Levenshtein distance between a and b if it
// is at most max, with an early cutoff once every cell exceeds the budget.
func editDistanceWithin(a, b string, max int) (int, bool) {
	ra, rb := []rune(a), []rune(b)
	if abs(len(ra)-len(rb)) > max {
		return 0, false
	}
	prev := make([]int, len(rb)+1)
	cur := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(ra); i++ {
		cur[0] = i
		rowMin := cur[0]
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			cur[j] = min3(prev[j]+1, cur[j-1]+1, prev[j-1]+cost)
			if cur[j] < rowMin {
				rowMin = cur[j]
			}
		}
		if rowMin > max {
			return 0, false
		}
		prev, cur = cur, prev
	}
	if prev[len(rb)] > max {
		return 0, false
	}
	return prev[len(rb)], true
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

func min3(a, b, c int) int {
	if b < a {
		a = b
	}
	if c < a {
		a = c
	}
	return a
}
