package intervention

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/havenlabs/haven/backend/internal/analysis/distortion"
	"github.com/havenlabs/haven/backend/internal/analysis/distress"
	"github.com/havenlabs/haven/backend/internal/analysis/tone"
	"github.com/havenlabs/haven/backend/internal/model/chat"
)

// Chooser supplies random indices for template selection. Implementations
// must be safe for concurrent use.
type Chooser interface {
	Intn(n int) int
}

// randChooser delegates to the top-level math/rand functions, which are
// safe for concurrent use.
type randChooser struct{}

func (randChooser) Intn(n int) int { return rand.Intn(n) }

// Response is one composed companion turn.
type Response struct {
	Text             string                `json:"text"`
	InterventionType chat.InterventionType `json:"interventionType"`
	RequiresFollowUp bool                  `json:"requiresFollowUp"`
}

// DefaultHotline is used when no crisis line is configured.
const DefaultHotline = "988"

// Selector composes a therapeutic-style reply from the distress level and
// the detected thinking patterns. Crisis text is fixed; everything else
// mixes one random validation sentence, a level-specific body, and an emoji
// drawn from the pool matching the primary emotion.
type Selector struct {
	templates Templates
	hotline   string
	chooser   Chooser
}

// NewSelector builds a selector. Zero-value templates, an empty hotline, or
// a nil chooser fall back to the defaults.
func NewSelector(templates Templates, hotline string, chooser Chooser) *Selector {
	if templates.empty() {
		templates = DefaultTemplates()
	}
	if strings.TrimSpace(hotline) == "" {
		hotline = DefaultHotline
	}
	if chooser == nil {
		chooser = randChooser{}
	}
	return &Selector{templates: templates, hotline: hotline, chooser: chooser}
}

// Respond composes the companion reply for one user turn.
func (s *Selector) Respond(level distress.Level, t tone.Result, distortions []distortion.Tag) Response {
	parts := []string{s.validation(t)}
	resp := Response{InterventionType: chat.InterventionGeneral}

	switch level {
	case distress.Crisis:
		resp.InterventionType = chat.InterventionCrisis
		resp.RequiresFollowUp = true
		parts = append(parts,
			s.templates.SafetyCheck,
			fmt.Sprintf(s.templates.CrisisReferral, s.hotline),
		)
	case distress.High:
		resp.InterventionType = chat.InterventionDBT
		parts = append(parts, s.templates.BreathingCue, s.pick(s.templates.SkillTips))
	case distress.Moderate:
		if len(distortions) > 0 {
			resp.InterventionType = chat.InterventionCBT
			parts = append(parts, fmt.Sprintf(s.templates.DistortionPrompt, distortions[0].Human()))
		} else {
			parts = append(parts, s.templates.OpenQuestion)
		}
	default:
		parts = append(parts, s.templates.Acknowledgment)
	}

	parts = append(parts, s.emoji(t.Primary))
	resp.Text = strings.Join(parts, " ")
	return resp
}

func (s *Selector) validation(t tone.Result) string {
	emotion := t.Primary
	if emotion == "" {
		emotion = tone.PrimaryNeutral
	}
	return fmt.Sprintf(s.pick(s.templates.Validation), emotion)
}

func (s *Selector) emoji(primary string) string {
	pool, ok := s.templates.Emojis[primary]
	if !ok || len(pool) == 0 {
		pool = s.templates.Emojis[tone.PrimaryNeutral]
	}
	if len(pool) == 0 {
		return ""
	}
	return s.pick(pool)
}

func (s *Selector) pick(pool []string) string {
	if len(pool) == 0 {
		return ""
	}
	return pool[s.chooser.Intn(len(pool))]
}
