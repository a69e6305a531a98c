package predictor

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// SparseVector maps a feature index to its weight.
type SparseVector map[int]float64

// Vectorizer turns raw text into the feature space the classifier was fitted on.
type Vectorizer interface {
	Transform(text string) SparseVector
	NumFeatures() int
}

// sklearnTokenPattern is scikit-learn's default token_pattern.
const sklearnTokenPattern = `(?u)\b\w\w+\b`

// wordRun matches the same tokens as sklearnTokenPattern: maximal runs of two
// or more word characters, where a word character is a letter, digit or '_'.
var wordRun = regexp.MustCompile(`[\p{L}\p{N}_]{2,}`)

// VectorizerArtifact is the JSON export of a fitted TfidfVectorizer or CountVectorizer.
type VectorizerArtifact struct {
	Type         string         `json:"type"`
	Lowercase    *bool          `json:"lowercase"`
	StripAccents string         `json:"strip_accents"`
	TokenPattern string         `json:"token_pattern"`
	NgramRange   [2]int         `json:"ngram_range"`
	StopWords    []string       `json:"stop_words"`
	Vocabulary   map[string]int `json:"vocabulary"`
	IDF          []float64      `json:"idf"`
	SublinearTF  bool           `json:"sublinear_tf"`
	Binary       bool           `json:"binary"`
	Norm         *string        `json:"norm"`
}

// TfidfVectorizer reproduces scikit-learn's analyzer="word" pipeline:
// preprocess, tokenize, drop stop words, build n-grams, look up the vocabulary,
// then weight and normalize. Terms outside the vocabulary are ignored.
type TfidfVectorizer struct {
	lowercase    bool
	stripAccents string
	tokens       *regexp.Regexp
	minN, maxN   int
	stopWords    map[string]struct{}
	vocabulary   map[string]int
	idf          []float64
	sublinearTF  bool
	binary       bool
	norm         string
}

func NewTfidfVectorizer(a VectorizerArtifact) (*TfidfVectorizer, error) {
	if a.Type != "tfidf" && a.Type != "count" {
		return nil, fmt.Errorf("unsupported vectorizer type %q", a.Type)
	}
	if len(a.Vocabulary) == 0 {
		return nil, errors.New("vectorizer vocabulary is empty")
	}
	n := len(a.Vocabulary)
	seen := make([]bool, n)
	for term, idx := range a.Vocabulary {
		if idx < 0 || idx >= n || seen[idx] {
			return nil, fmt.Errorf("vocabulary index %d for %q is out of range or duplicated", idx, term)
		}
		seen[idx] = true
	}

	v := &TfidfVectorizer{
		lowercase:    true,
		stripAccents: a.StripAccents,
		minN:         a.NgramRange[0],
		maxN:         a.NgramRange[1],
		vocabulary:   a.Vocabulary,
		sublinearTF:  a.SublinearTF,
		binary:       a.Binary,
	}
	if a.Lowercase != nil {
		v.lowercase = *a.Lowercase
	}
	if v.minN == 0 && v.maxN == 0 {
		v.minN, v.maxN = 1, 1
	}
	if v.minN < 1 || v.maxN < v.minN {
		return nil, fmt.Errorf("invalid ngram_range [%d, %d]", v.minN, v.maxN)
	}

	switch a.StripAccents {
	case "", "unicode", "ascii":
	default:
		return nil, fmt.Errorf("unsupported strip_accents %q", a.StripAccents)
	}

	tokens, err := compileTokenPattern(a.TokenPattern)
	if err != nil {
		return nil, err
	}
	v.tokens = tokens

	if len(a.StopWords) > 0 {
		v.stopWords = make(map[string]struct{}, len(a.StopWords))
		for _, w := range a.StopWords {
			v.stopWords[w] = struct{}{}
		}
	}

	if a.Type == "tfidf" {
		if len(a.IDF) != n {
			return nil, fmt.Errorf("idf has %d weights for %d terms", len(a.IDF), n)
		}
		v.idf = a.IDF
		v.norm = "l2"
	}
	if a.Norm != nil {
		v.norm = *a.Norm
	}
	switch v.norm {
	case "", "l1", "l2":
	default:
		return nil, fmt.Errorf("unsupported norm %q", v.norm)
	}
	return v, nil
}

func compileTokenPattern(pattern string) (*regexp.Regexp, error) {
	if pattern == "" || pattern == sklearnTokenPattern {
		return wordRun, nil
	}
	re, err := regexp.Compile(strings.TrimPrefix(pattern, "(?u)"))
	if err != nil {
		return nil, fmt.Errorf("compile token_pattern: %w", err)
	}
	if re.NumSubexp() > 1 {
		return nil, fmt.Errorf("token_pattern %q has more than one capturing group", pattern)
	}
	return re, nil
}

func (v *TfidfVectorizer) NumFeatures() int {
	return len(v.vocabulary)
}

func (v *TfidfVectorizer) Transform(text string) SparseVector {
	counts := make(SparseVector)
	for _, term := range v.analyze(text) {
		if idx, ok := v.vocabulary[term]; ok {
			counts[idx]++
		}
	}

	for idx, tf := range counts {
		switch {
		case v.binary:
			tf = 1
		case v.sublinearTF:
			tf = 1 + math.Log(tf)
		}
		if v.idf != nil {
			tf *= v.idf[idx]
		}
		counts[idx] = tf
	}

	switch v.norm {
	case "l2":
		var sum float64
		for _, w := range counts {
			sum += w * w
		}
		scale(counts, math.Sqrt(sum))
	case "l1":
		var sum float64
		for _, w := range counts {
			sum += math.Abs(w)
		}
		scale(counts, sum)
	}
	return counts
}

func scale(vec SparseVector, by float64) {
	if by == 0 {
		return
	}
	for idx, w := range vec {
		vec[idx] = w / by
	}
}

func (v *TfidfVectorizer) analyze(text string) []string {
	text = v.preprocess(text)

	var tokens []string
	if v.tokens.NumSubexp() == 1 {
		for _, m := range v.tokens.FindAllStringSubmatch(text, -1) {
			tokens = append(tokens, m[1])
		}
	} else {
		tokens = v.tokens.FindAllString(text, -1)
	}

	if v.stopWords != nil {
		kept := tokens[:0]
		for _, t := range tokens {
			if _, stop := v.stopWords[t]; !stop {
				kept = append(kept, t)
			}
		}
		tokens = kept
	}
	return ngrams(tokens, v.minN, v.maxN)
}

func (v *TfidfVectorizer) preprocess(text string) string {
	if v.lowercase {
		text = strings.ToLower(text)
	}
	switch v.stripAccents {
	case "unicode":
		text = stripMarks(norm.NFKD.String(text), false)
	case "ascii":
		text = stripMarks(norm.NFKD.String(text), true)
	}
	return text
}

func stripMarks(s string, asciiOnly bool) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if unicode.Is(unicode.Mn, r) {
			continue
		}
		if asciiOnly && r > unicode.MaxASCII {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// ngrams mirrors scikit-learn's _word_ngrams: unigrams are kept as-is when
// minN is 1, longer n-grams are space-joined.
func ngrams(tokens []string, minN, maxN int) []string {
	if maxN == 1 {
		return tokens
	}
	var out []string
	if minN == 1 {
		out = append(out, tokens...)
		minN = 2
	}
	for n := minN; n <= maxN && n <= len(tokens); n++ {
		for i := 0; i+n <= len(tokens); i++ {
			out = append(out, strings.Join(tokens[i:i+n], " "))
		}
	}
	return out
}
