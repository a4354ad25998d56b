package summary

import (
	"regexp"
	"sort"
	"strings"
	"unicode"
)

const fallbackTokens = 60

// Summarizer reduces body text to a short extract by ranking sentences on
// normalized word frequency and re-emitting the best ones in their
// original order. When ranking yields nothing usable it falls back to the
// first 60 whitespace tokens of the raw text, so the result is never empty
// for non-empty input.
type Summarizer struct {
	sentences int
}

func NewSummarizer(sentences int) *Summarizer {
	return &Summarizer{sentences: sentences}
}

func (s *Summarizer) Summarize(text string) string {
	text = strings.TrimSpace(text)
	if text == "" {
		return ""
	}

	if extract := s.rank(text); extract != "" {
		return extract
	}

	return fallback(text)
}

func (s *Summarizer) rank(text string) string {
	sentences := splitSentences(text)
	if len(sentences) == 0 {
		return ""
	}
	if len(sentences) <= s.sentences {
		return strings.Join(sentences, " ")
	}

	freq := make(map[string]int)
	tokenized := make([][]string, len(sentences))
	for i, sentence := range sentences {
		words := tokenize(sentence)
		tokenized[i] = words
		for _, word := range words {
			freq[word]++
		}
	}

	type scored struct {
		index int
		score float64
	}

	ranked := make([]scored, 0, len(sentences))
	for i, words := range tokenized {
		if len(words) == 0 {
			continue
		}
		total := 0
		for _, word := range words {
			total += freq[word]
		}
		ranked = append(ranked, scored{index: i, score: float64(total) / float64(len(words))})
	}
	if len(ranked) == 0 {
		return ""
	}

	sort.SliceStable(ranked, func(a, b int) bool {
		if ranked[a].score != ranked[b].score {
			return ranked[a].score > ranked[b].score
		}
		return ranked[a].index < ranked[b].index
	})

	top := ranked[:min(s.sentences, len(ranked))]
	sort.Slice(top, func(a, b int) bool {
		return top[a].index < top[b].index
	})

	parts := make([]string, len(top))
	for i, sc := range top {
		parts[i] = sentences[sc.index]
	}
	return strings.Join(parts, " ")
}

var sentenceBoundary = regexp.MustCompile(`([.!?])\s+`)

// splitSentences breaks text on terminal punctuation followed by
// whitespace. Each sentence comes back with its internal whitespace
// collapsed to single spaces.
func splitSentences(text string) []string {
	marked := sentenceBoundary.ReplaceAllString(text, "$1\x00")

	var sentences []string
	for _, part := range strings.Split(marked, "\x00") {
		sentence := strings.Join(strings.Fields(part), " ")
		if sentence != "" {
			sentences = append(sentences, sentence)
		}
	}
	return sentences
}

// Minimal stop list; enough to keep scores from being dominated by filler.
var stopWords = map[string]bool{
	"the": true, "and": true, "for": true, "that": true, "with": true,
	"this": true, "from": true, "will": true, "has": true, "have": true,
	"are": true, "was": true, "were": true, "its": true, "his": true,
	"her": true, "had": true, "been": true, "but": true, "not": true,
	"they": true, "their": true, "said": true, "more": true, "which": true,
	"about": true, "also": true, "after": true, "into": true, "than": true,
}

func tokenize(sentence string) []string {
	words := strings.FieldsFunc(strings.ToLower(sentence), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})

	kept := words[:0]
	for _, word := range words {
		if len(word) < 3 || stopWords[word] {
			continue
		}
		kept = append(kept, word)
	}
	return kept
}

func fallback(text string) string {
	tokens := strings.Fields(text)
	if len(tokens) > fallbackTokens {
		tokens = tokens[:fallbackTokens]
	}
	return strings.Join(tokens, " ")
}
