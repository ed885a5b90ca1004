package intervention

// Templates holds the fixed text pools the selector composes replies from.
// Everything here is immutable configuration: tests substitute smaller
// tables to pin down exact output.
type Templates struct {
	// Validation sentences, each with one %s slot for the primary emotion.
	Validation []string
	// Distress-tolerance skill tips for high-distress replies.
	SkillTips []string
	// Emoji pools keyed by primary emotion; unknown emotions use "neutral".
	Emojis map[string][]string

	// Fixed fragments. SafetyCheck must ask about a harm plan;
	// CrisisReferral has one %s slot for the hotline number.
	SafetyCheck      string
	CrisisReferral   string
	BreathingCue     string
	DistortionPrompt string
	OpenQuestion     string
	Acknowledgment   string
}

// DefaultTemplates returns the built-in response fragments.
func DefaultTemplates() Templates {
	return Templates{
		Validation: []string{
			"It sounds like you're feeling %s right now, and that's completely valid.",
			"Thank you for telling me. Feeling %s in a moment like this makes sense.",
			"I hear you. Whatever brought on this %s feeling, it matters.",
			"I'm glad you shared that with me. It's okay to feel %s.",
		},
		SkillTips: []string{
			"One skill that can help right now is holding something cold, like an ice cube, and focusing only on that sensation.",
			"You could try the 5-4-3-2-1 exercise: name five things you can see, four you can touch, three you can hear, two you can smell, and one you can taste.",
			"A short burst of movement, even pacing the room for a minute, can help your body discharge some of that intensity.",
			"Try paced breathing: make each exhale a little longer than the inhale, and repeat for ten breaths.",
			"Naming the feeling out loud, as simply as you can, sometimes takes a little of its charge away.",
		},
		Emojis: map[string][]string{
			"happy":   {"😊", "🌟", "☀️"},
			"sad":     {"💙", "🤗", "🌷"},
			"neutral": {"🙂", "🌿", "✨"},
		},
		SafetyCheck:      "I'm really concerned about what you just shared, and your safety comes first. Are you thinking about hurting yourself, or do you have a plan to harm yourself right now?",
		CrisisReferral:   "Please reach out for immediate support: call or text %s, or contact emergency services if you are in danger. You don't have to face this alone, and trained counselors are available around the clock.",
		BreathingCue:     "Let's slow things down together. Try breathing in for four counts, holding for four, and breathing out for six.",
		DistortionPrompt: "I notice what might be %s thinking in what you shared. Would you like to look at that thought together and see whether it tells the whole story?",
		OpenQuestion:     "Can you tell me more about what's been weighing on you?",
		Acknowledgment:   "I'm here and listening. What else is on your mind?",
	}
}

func (t Templates) empty() bool {
	return len(t.Validation) == 0 && len(t.SkillTips) == 0 && t.SafetyCheck == ""
}
