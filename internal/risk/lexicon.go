package risk

import "strings"

// PolarityFunc produces a lexical sentiment polarity in [-1, 1],
// positive meaning favorable tone. Injected into the Scorer so tests
// and alternative analyzers can replace the default lexicon.
type PolarityFunc func(text string) float64

var positiveCues = []string{
	"great", "good", "happy", "glad", "excited", "exciting", "hopeful",
	"love", "joy", "grateful", "thankful", "wonderful", "amazing",
	"awesome", "proud", "calm", "relaxed", "looking forward", "optimistic",
	"improving", "enjoy", "confident", "peaceful",
}

var negativeCues = []string{
	"sad", "depress", "hopeless", "worthless", "struggling", "anxious",
	"anxiety", "panic", "scared", "afraid", "lonely", "miserable",
	"terrible", "awful", "crying", "exhausted", "overwhelmed",
	"can't take", "can't go on", "want to die", "end my life",
	"hate myself", "suffering", "numb", "upset", "hurting",
}

// LexiconPolarity scores text by counting positive and negative cue
// phrases as case-insensitive substrings and normalizing the balance:
// (pos - neg) / (pos + neg). Text with no cues is neutral.
func LexiconPolarity(text string) float64 {
	normalized := strings.ToLower(strings.TrimSpace(text))
	if normalized == "" {
		return 0
	}

	var pos, neg int
	for _, cue := range positiveCues {
		if strings.Contains(normalized, cue) {
			pos++
		}
	}
	for _, cue := range negativeCues {
		if strings.Contains(normalized, cue) {
			neg++
		}
	}

	if pos+neg == 0 {
		return 0
	}
	return float64(pos-neg) / float64(pos+neg)
}
