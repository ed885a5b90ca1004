package tone

import (
	"math"
	"regexp"
	"strings"
)

// Primary emotion labels produced by the analyzer.
const (
	PrimaryHappy   = "happy"
	PrimarySad     = "sad"
	PrimaryNeutral = "neutral"
)

// Secondary emotion labels, matched in fixed priority order.
const (
	SecondaryAnxious = "anxious"
	SecondaryAngry   = "angry"
	SecondarySad     = "sad"
)

// Result is the bounded tone estimate for one user message.
type Result struct {
	Score     int
	Primary   string
	Secondary string
}

// Neutral is the degraded fallback returned whenever analysis cannot produce
// a usable estimate. A broken tone estimate must never block a message.
func Neutral() Result {
	return Result{Score: 5, Primary: PrimaryNeutral}
}

var wordPattern = regexp.MustCompile(`[a-z']+`)

// Tokens lowercases text and splits it into word tokens. Downstream keyword
// scans share this tokenization.
func Tokens(text string) []string {
	return wordPattern.FindAllString(strings.ToLower(text), -1)
}

type secondaryPattern struct {
	label string
	re    *regexp.Regexp
}

// Only the first matching category is kept, so the order here is contract.
var secondaryPatterns = []secondaryPattern{
	{SecondaryAnxious, regexp.MustCompile(`\b(anxious|anxiety|nervous|worried|worry|scared|afraid|panic|panicking|overwhelmed|stressed|stressing)\b`)},
	{SecondaryAngry, regexp.MustCompile(`\b(angry|mad|furious|frustrated|annoyed|irritated|rage|resent)\b`)},
	{SecondarySad, regexp.MustCompile(`\b(sad|down|depressed|hopeless|lonely|alone|empty|miserable|crying|cry|grief)\b`)},
}

// Analyzer scores free text against a word polarity lexicon. It never fails:
// empty or unrecognized input degrades to the neutral result.
type Analyzer struct {
	lexicon map[string]float64
}

// NewAnalyzer builds an analyzer around the supplied lexicon. Passing nil
// uses the built-in default lexicon.
func NewAnalyzer(lexicon map[string]float64) *Analyzer {
	if lexicon == nil {
		lexicon = DefaultLexicon()
	}
	return &Analyzer{lexicon: lexicon}
}

// Analyze estimates the emotional tone of one message. The raw polarity sum
// is rescaled onto a 1-10 score; the primary emotion follows the sign of the
// raw sum and the secondary emotion is the first keyword category that
// matches the lowercased text.
func (a *Analyzer) Analyze(text string) Result {
	normalized := strings.TrimSpace(strings.ToLower(text))
	if normalized == "" {
		return Neutral()
	}

	tokens := wordPattern.FindAllString(normalized, -1)
	if len(tokens) == 0 {
		return Neutral()
	}

	var raw float64
	for _, token := range tokens {
		raw += a.lexicon[token]
	}

	score := int(math.Round((raw + 5) * 1.25))
	if score < 1 {
		score = 1
	}
	if score > 10 {
		score = 10
	}

	result := Result{Score: score, Primary: PrimaryNeutral}
	switch {
	case raw > 0.5:
		result.Primary = PrimaryHappy
	case raw < -0.5:
		result.Primary = PrimarySad
	}

	for _, pattern := range secondaryPatterns {
		if pattern.re.MatchString(normalized) {
			result.Secondary = pattern.label
			break
		}
	}

	return result
}
