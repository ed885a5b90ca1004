package chat

import "time"

// Sender identifies which side of the conversation produced a turn.
type Sender string

const (
	SenderUser      Sender = "user"
	SenderCompanion Sender = "companion"
)

// InterventionType classifies the therapeutic style of a companion turn.
type InterventionType string

const (
	InterventionGeneral   InterventionType = "general"
	InterventionCBT       InterventionType = "CBT"
	InterventionDBT       InterventionType = "DBT"
	InterventionGrounding InterventionType = "grounding"
	InterventionCrisis    InterventionType = "crisis"
)

// EmotionalTone is the bounded tone estimate attached to a turn.
type EmotionalTone struct {
	Score            int    `json:"score"`
	PrimaryEmotion   string `json:"primaryEmotion"`
	SecondaryEmotion string `json:"secondaryEmotion,omitempty"`
}

// NeutralTone is carried by companion turns and by degraded analysis results.
func NeutralTone() EmotionalTone {
	return EmotionalTone{Score: 5, PrimaryEmotion: "neutral"}
}

// Message persists one turn of a support conversation. User turns carry the
// analyzed tone; companion turns carry a fixed neutral tone and echo the
// distress level that triggered them.
type Message struct {
	ID               string           `json:"id"`
	SessionID        string           `json:"sessionId"`
	Sender           Sender           `json:"sender"`
	Text             string           `json:"text"`
	Tone             EmotionalTone    `json:"emotionalTone"`
	DistressScore    int              `json:"distressScore,omitempty"`
	InterventionType InterventionType `json:"interventionType,omitempty"`
	CreatedAt        time.Time        `json:"createdAt"`
}
