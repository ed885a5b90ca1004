package distress

import (
	"strings"

	"github.com/havenlabs/haven/backend/internal/analysis/tone"
)

// Level orders distress severity from mild to crisis.
type Level int

const (
	Mild Level = iota + 1
	Moderate
	High
	Crisis
)

func (l Level) String() string {
	switch l {
	case Mild:
		return "mild"
	case Moderate:
		return "moderate"
	case High:
		return "high"
	case Crisis:
		return "crisis"
	default:
		return "unknown"
	}
}

// Phrases groups the keyword tables consulted by the classification cascade.
type Phrases struct {
	Crisis   []string
	High     []string
	Moderate []string
}

// DefaultPhrases returns the built-in keyword tables.
func DefaultPhrases() Phrases {
	return Phrases{
		Crisis: []string{
			"want to die", "kill myself", "end my life", "end it all",
			"suicide", "suicidal", "self-harm", "self harm", "hurt myself",
			"harm myself", "no reason to live", "better off dead",
			"don't want to be here anymore", "can't go on",
		},
		High: []string{
			"can't take it anymore", "can't take this anymore",
			"falling apart", "hopeless", "unbearable", "desperate",
			"can't cope", "breaking down", "panic attack", "losing control",
			"completely alone",
		},
		Moderate: []string{
			"anxious", "anxiety", "worried", "stressed", "stressing",
			"overwhelmed", "struggling", "sad", "upset", "lonely", "afraid",
			"scared", "frustrated", "exhausted", "tired of",
		},
	}
}

// Classifier maps a message and its tone estimate onto one of four levels.
type Classifier struct {
	phrases Phrases
}

// NewClassifier builds a classifier around the supplied keyword tables.
// Empty tables fall back to the defaults.
func NewClassifier(phrases Phrases) *Classifier {
	if len(phrases.Crisis) == 0 && len(phrases.High) == 0 && len(phrases.Moderate) == 0 {
		phrases = DefaultPhrases()
	}
	return &Classifier{phrases: phrases}
}

// Classify applies a strict priority cascade; the first matching rule wins.
// A crisis phrase outranks everything, including an otherwise happy tone,
// and a rock-bottom tone score alone never reaches crisis.
func (c *Classifier) Classify(text string, t tone.Result) Level {
	lowered := strings.ToLower(text)

	if containsAny(lowered, c.phrases.Crisis) {
		return Crisis
	}
	if containsAny(lowered, c.phrases.High) || t.Score <= 2 {
		return High
	}
	if containsAny(lowered, c.phrases.Moderate) || t.Score <= 4 {
		return Moderate
	}
	return Mild
}

func containsAny(text string, phrases []string) bool {
	for _, phrase := range phrases {
		if strings.Contains(text, phrase) {
			return true
		}
	}
	return false
}
