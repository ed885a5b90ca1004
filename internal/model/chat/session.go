package chat

import (
	"math"
	"time"
)

// CrisisIntervention records the one-shot escalation taken when a session
// first reaches crisis level. It is created exactly once and never mutated.
type CrisisIntervention struct {
	Triggered   bool      `json:"triggered"`
	Timestamp   time.Time `json:"timestamp"`
	ActionTaken string    `json:"actionTaken"`
}

// Session captures one support conversation and its crisis state. Messages
// are append-only; once CrisisFlag is set it stays set for the session.
type Session struct {
	ID                   string              `json:"id"`
	UserID               string              `json:"userId"`
	StartTime            time.Time           `json:"startTime"`
	EndTime              *time.Time          `json:"endTime,omitempty"`
	Messages             []Message           `json:"messages"`
	InitialDistressScore int                 `json:"initialDistressScore,omitempty"`
	FinalDistressScore   int                 `json:"finalDistressScore,omitempty"`
	CrisisFlag           bool                `json:"crisisFlag"`
	CrisisIntervention   *CrisisIntervention `json:"crisisIntervention,omitempty"`
	Metadata             map[string]string   `json:"metadata,omitempty"`
}

// Ended reports whether the session has been closed.
func (s Session) Ended() bool {
	return s.EndTime != nil
}

// Duration reports elapsed conversation time in whole seconds. Open sessions
// measure against the current clock.
func (s Session) Duration() int {
	end := time.Now()
	if s.EndTime != nil {
		end = *s.EndTime
	}
	return int(math.Round(end.Sub(s.StartTime).Seconds()))
}
