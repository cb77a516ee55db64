package mbti

import "sort"

const (
	compatIdentical    = 100
	compatComplement   = 85
	compatOpposed      = 25
	compatNeutral      = 60
	recommendationsCap = 3
)

// complementaryPairs holds type pairs that work unusually well together.
// The table is symmetric; pairKey normalizes the lookup direction.
var complementaryPairs = map[[2]Code]struct{}{
	pairKey("INTJ", "ENFP"): {},
	pairKey("INFJ", "ENTP"): {},
	pairKey("ISTJ", "ESFP"): {},
	pairKey("ISFJ", "ESTP"): {},
}

var opposedPairs = map[[2]Code]struct{}{
	pairKey("INTJ", "ESFP"): {},
}

func pairKey(a, b Code) [2]Code {
	if a > b {
		a, b = b, a
	}
	return [2]Code{a, b}
}

// Compatibility scores how well two personality types match, in [0,100].
// Identical types score 100, complementary pairs 85, strongly opposed
// pairs 25, and everything else a neutral 60.
func Compatibility(a, b Code) (int, error) {
	if !a.Valid() || !b.Valid() {
		return 0, ErrInvalidCode
	}
	if a == b {
		return compatIdentical, nil
	}
	key := pairKey(a, b)
	if _, ok := complementaryPairs[key]; ok {
		return compatComplement, nil
	}
	if _, ok := opposedPairs[key]; ok {
		return compatOpposed, nil
	}
	return compatNeutral, nil
}

// Candidate is a persona eligible for recommendation. MBTIType may be
// empty or non-canonical, in which case the candidate is skipped.
type Candidate struct {
	ID       string
	MBTIType string
}

// Ranked pairs a candidate id with its compatibility score.
type Ranked struct {
	ID            string
	Compatibility int
}

// TopRecommendations ranks candidates against the user's type and
// returns at most the top three, ordered by descending compatibility.
// Ties break by ascending candidate id so results are deterministic.
func TopRecommendations(userType Code, candidates []Candidate) ([]Ranked, error) {
	if !userType.Valid() {
		return nil, ErrInvalidCode
	}

	ranked := make([]Ranked, 0, len(candidates))
	for _, c := range candidates {
		code, err := ParseCode(c.MBTIType)
		if err != nil {
			continue
		}
		score, err := Compatibility(userType, code)
		if err != nil {
			continue
		}
		ranked = append(ranked, Ranked{ID: c.ID, Compatibility: score})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Compatibility != ranked[j].Compatibility {
			return ranked[i].Compatibility > ranked[j].Compatibility
		}
		return ranked[i].ID < ranked[j].ID
	})

	if len(ranked) > recommendationsCap {
		ranked = ranked[:recommendationsCap]
	}
	return ranked, nil
}
