package tone

// DefaultLexicon maps lowercased words to polarity weights. The practical
// range of a short message sum stays within [-5, 5], which the score
// rescaling in Analyze assumes.
func DefaultLexicon() map[string]float64 {
	return map[string]float64{
		// positive
		"happy":     3,
		"glad":      2,
		"great":     2,
		"good":      2,
		"better":    2,
		"wonderful": 3,
		"amazing":   3,
		"excited":   2,
		"hopeful":   2,
		"hope":      1,
		"calm":      1,
		"relieved":  2,
		"proud":     2,
		"grateful":  2,
		"thankful":  2,
		"love":      3,
		"loved":     3,
		"fun":       2,
		"enjoy":     2,
		"enjoyed":   2,
		"peaceful":  2,
		"okay":      1,
		"fine":      1,
		"thanks":    1,

		// negative
		"sad":         -2,
		"unhappy":     -2,
		"down":        -1,
		"depressed":   -3,
		"depressing":  -2,
		"miserable":   -3,
		"hopeless":    -3,
		"worthless":   -3,
		"empty":       -2,
		"lonely":      -2,
		"alone":       -1,
		"anxious":     -2,
		"anxiety":     -2,
		"nervous":     -1,
		"worried":     -2,
		"worry":       -2,
		"scared":      -2,
		"afraid":      -2,
		"panic":       -3,
		"stressed":    -2,
		"stress":      -2,
		"overwhelmed": -2,
		"tired":       -1,
		"exhausted":   -2,
		"angry":       -2,
		"mad":         -2,
		"furious":     -3,
		"frustrated":  -2,
		"annoyed":     -1,
		"hate":        -3,
		"hurt":        -2,
		"pain":        -2,
		"painful":     -2,
		"awful":       -3,
		"terrible":    -3,
		"horrible":    -3,
		"bad":         -2,
		"worse":       -2,
		"worst":       -3,
		"cry":         -2,
		"crying":      -2,
		"fail":        -2,
		"failed":      -2,
		"failure":     -2,
		"guilty":      -2,
		"ashamed":     -2,
		"useless":     -3,
		"broken":      -2,
		"trapped":     -2,
		"suffering":   -3,
		"die":         -3,
		"dying":       -3,
		"suicide":     -4,
		"suicidal":    -4,
	}
}
