package mbti

import (
	"errors"
	"fmt"
	"math"
)

const (
	// MinValue and MaxValue bound a single answer on the 7-point scale.
	MinValue = 1
	MaxValue = 7

	// scaleMidpoint maps the raw 1..7 value to a signed -3..+3 lean.
	scaleMidpoint = 4
)

var (
	ErrNoAnswers       = errors.New("no answers to score")
	ErrValueOutOfRange = fmt.Errorf("answer value must be between %d and %d", MinValue, MaxValue)
)

// Answer is a single scored response to a catalog question.
type Answer struct {
	QuestionID string
	Value      int
}

// Result is the outcome of scoring a full answer set.
type Result struct {
	Type       Code   `json:"mbtiType"`
	Scores     Scores `json:"scores"`
	Confidence int    `json:"confidence"`
}

// AxisResolver maps a question id to its axis. Unknown ids return false
// and the answer is excluded from scoring.
type AxisResolver func(questionID string) (Axis, bool)

// Score computes the personality type from a set of answers.
//
// Each answer is normalized to value-4, averaged per axis, then scaled
// to [-100,100]. An axis with no answers scores zero. A score of zero
// or below resolves to the first pole letter (E/S/T/J), above zero to
// the second (I/N/F/P). Confidence is the mean absolute axis score,
// capped at 100.
func Score(answers []Answer, axisOf AxisResolver) (Result, error) {
	if len(answers) == 0 {
		return Result{}, ErrNoAnswers
	}

	var sums, counts [4]int
	for _, a := range answers {
		if a.Value < MinValue || a.Value > MaxValue {
			return Result{}, fmt.Errorf("question %s: %w", a.QuestionID, ErrValueOutOfRange)
		}
		axis, ok := axisOf(a.QuestionID)
		if !ok {
			continue
		}
		i := axisIndex(axis)
		sums[i] += a.Value - scaleMidpoint
		counts[i]++
	}

	var scores Scores
	var confidenceSum float64
	letters := make([]byte, 0, 4)
	for i, axis := range Axes {
		var score int
		if counts[i] > 0 {
			avg := float64(sums[i]) / float64(counts[i])
			score = int(math.Round(avg * 100 / 3))
		}
		switch axis {
		case AxisEI:
			scores.EI = score
		case AxisSN:
			scores.SN = score
		case AxisTF:
			scores.TF = score
		case AxisJP:
			scores.JP = score
		}
		letters = append(letters, poleLetter(axis, score))
		confidenceSum += math.Abs(float64(score))
	}

	confidence := int(math.Round(math.Min(confidenceSum/4, 100)))
	return Result{Type: Code(letters), Scores: scores, Confidence: confidence}, nil
}

func axisIndex(a Axis) int {
	for i, axis := range Axes {
		if axis == a {
			return i
		}
	}
	return 0
}

func poleLetter(a Axis, score int) byte {
	positive := score > 0
	switch a {
	case AxisEI:
		if positive {
			return 'I'
		}
		return 'E'
	case AxisSN:
		if positive {
			return 'N'
		}
		return 'S'
	case AxisTF:
		if positive {
			return 'F'
		}
		return 'T'
	case AxisJP:
		if positive {
			return 'P'
		}
		return 'J'
	}
	return '?'
}
