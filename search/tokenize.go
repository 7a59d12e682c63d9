package search

import (
	"strings"
	"unicode"
)

// cjk covers the scripts tokenized as overlapping bigrams rather than
// whitespace-delimited words.
var cjk = []*unicode.RangeTable{unicode.Han, unicode.Hiragana, unicode.Katakana, unicode.Hangul}

func isCJK(r rune) bool {
	return unicode.IsOneOf(cjk, r)
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

// Tokenize splits text into index terms. Latin/digit runs become lowercased
// word tokens; CJK runs become overlapping bigrams (a lone CJK rune is kept
// as a unigram). Everything else is a separator.
func Tokenize(text string) []string {
	var tokens []string
	var word strings.Builder
	var prevCJK rune

	flushWord := func() {
		if word.Len() > 0 {
			tokens = append(tokens, strings.ToLower(word.String()))
			word.Reset()
		}
	}
	flushCJK := func(pending bool) {
		if pending && prevCJK != 0 {
			tokens = append(tokens, string(prevCJK))
		}
		prevCJK = 0
	}

	pendingLone := false
	for _, r := range text {
		switch {
		case isCJK(r):
			flushWord()
			if prevCJK != 0 {
				tokens = append(tokens, string([]rune{prevCJK, r}))
				pendingLone = false
			} else {
				pendingLone = true
			}
			prevCJK = r
		case isWordRune(r):
			flushCJK(pendingLone)
			pendingLone = false
			word.WriteRune(r)
		default:
			flushWord()
			flushCJK(pendingLone)
			pendingLone = false
		}
	}
	flushWord()
	flushCJK(pendingLone)
	return tokens
}
