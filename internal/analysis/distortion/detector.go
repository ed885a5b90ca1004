package distortion

import (
	"strings"
	"unicode"
)

// Tag identifies one cognitive distortion category.
type Tag string

const (
	AllOrNothing          Tag = "allOrNothing"
	Overgeneralization    Tag = "overgeneralization"
	MentalFilter          Tag = "mentalFilter"
	DisqualifyingPositive Tag = "disqualifyingPositive"
	JumpingToConclusions  Tag = "jumpingToConclusions"
	EmotionalReasoning    Tag = "emotionalReasoning"
	ShouldStatements      Tag = "shouldStatements"
	Labeling              Tag = "labeling"
	Personalization       Tag = "personalization"
)

// Human renders the tag as readable words, e.g. "all or nothing".
func (t Tag) Human() string {
	var b strings.Builder
	for i, r := range string(t) {
		if unicode.IsUpper(r) {
			if i > 0 {
				b.WriteByte(' ')
			}
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Pattern pairs a distortion tag with its trigger phrases.
type Pattern struct {
	Tag      Tag
	Triggers []string
}

// DefaultPatterns returns the built-in trigger table. Table order decides
// which distortion is surfaced first downstream, so it is stable.
func DefaultPatterns() []Pattern {
	return []Pattern{
		{AllOrNothing, []string{"always", "never", "every time", "completely ruined", "totally ruined", "nothing ever"}},
		{Overgeneralization, []string{"everyone", "no one", "everything", "everybody", "nobody"}},
		{MentalFilter, []string{"can't stop thinking", "all i can think", "keeps replaying", "only remember"}},
		{DisqualifyingPositive, []string{"doesn't count", "just luck", "just lucky", "anyone could have"}},
		{JumpingToConclusions, []string{"they must think", "i know they", "going to fail", "won't work out", "they hate me"}},
		{EmotionalReasoning, []string{"i feel like a", "feel like such", "because i feel"}},
		{ShouldStatements, []string{"should", "must", "have to", "ought to"}},
		{Labeling, []string{"i'm a failure", "i'm such a", "i'm an idiot", "i'm worthless", "i'm a loser", "i am a failure"}},
		{Personalization, []string{"my fault", "because of me", "i ruined", "blame myself"}},
	}
}

// Detector scans tokenized text for cognitive distortion patterns.
type Detector struct {
	patterns []Pattern
}

// NewDetector builds a detector around the supplied trigger table. Passing
// nil uses the built-in default table.
func NewDetector(patterns []Pattern) *Detector {
	if patterns == nil {
		patterns = DefaultPatterns()
	}
	return &Detector{patterns: patterns}
}

// Detect returns every category with at least one trigger phrase appearing
// in the joined lowercased token text, in table order.
func (d *Detector) Detect(tokens []string) []Tag {
	if len(tokens) == 0 {
		return nil
	}
	joined := strings.ToLower(strings.Join(tokens, " "))

	var tags []Tag
	for _, pattern := range d.patterns {
		for _, trigger := range pattern.Triggers {
			if strings.Contains(joined, trigger) {
				tags = append(tags, pattern.Tag)
				break
			}
		}
	}
	return tags
}
