package persona

import "github.com/mizutanik/kokoro_backend/internal/mbti"

// PersonalityParameters tunes how a persona communicates. All values
// are on a 0-100 scale.
type PersonalityParameters struct {
	Warmth          int `json:"warmth"`
	Formality       int `json:"formality"`
	Brevity         int `json:"brevity"`
	Humor           int `json:"humor"`
	AnalyticalDepth int `json:"analyticalDepth"`
	Creativity      int `json:"creativity"`
	Empathy         int `json:"empathy"`
	Assertiveness   int `json:"assertiveness"`
}

// DefaultParameters is the balanced midpoint profile.
func DefaultParameters() PersonalityParameters {
	return PersonalityParameters{
		Warmth:          50,
		Formality:       50,
		Brevity:         50,
		Humor:           50,
		AnalyticalDepth: 50,
		Creativity:      50,
		Empathy:         50,
		Assertiveness:   50,
	}
}

// typeParameters holds the curated profiles. Types without an entry
// fall back to the balanced defaults.
var typeParameters = map[mbti.Code]PersonalityParameters{
	"INTJ": {
		Warmth:          30,
		Formality:       60,
		Brevity:         70,
		Humor:           25,
		AnalyticalDepth: 85,
		Creativity:      75,
		Empathy:         35,
		Assertiveness:   70,
	},
	"ENFP": {
		Warmth:          85,
		Formality:       25,
		Brevity:         30,
		Humor:           80,
		AnalyticalDepth: 45,
		Creativity:      90,
		Empathy:         85,
		Assertiveness:   60,
	},
	"ISTJ": {
		Warmth:          45,
		Formality:       85,
		Brevity:         80,
		Humor:           20,
		AnalyticalDepth: 75,
		Creativity:      25,
		Empathy:         40,
		Assertiveness:   75,
	},
}

// ParametersForType returns the communication profile for a type,
// defaulting to the balanced profile for types without a curated entry
// or for an empty type.
func ParametersForType(raw string) PersonalityParameters {
	code, err := mbti.ParseCode(raw)
	if err != nil {
		return DefaultParameters()
	}
	if params, ok := typeParameters[code]; ok {
		return params
	}
	return DefaultParameters()
}

// Valid reports whether every parameter is within the 0-100 scale.
func (p PersonalityParameters) Valid() bool {
	for _, v := range []int{
		p.Warmth, p.Formality, p.Brevity, p.Humor,
		p.AnalyticalDepth, p.Creativity, p.Empathy, p.Assertiveness,
	} {
		if v < 0 || v > 100 {
			return false
		}
	}
	return true
}
