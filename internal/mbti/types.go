package mbti

import (
	"errors"
	"strings"
)

// Axis is one of the four bipolar personality dimensions.
type Axis string

const (
	AxisEI Axis = "EI"
	AxisSN Axis = "SN"
	AxisTF Axis = "TF"
	AxisJP Axis = "JP"
)

// Axes lists the four axes in type-letter order.
var Axes = [4]Axis{AxisEI, AxisSN, AxisTF, AxisJP}

// Code is a canonical 4-letter personality type code.
type Code string

var canonicalCodes = map[Code]struct{}{
	"INTJ": {}, "INTP": {}, "ENTJ": {}, "ENTP": {},
	"INFJ": {}, "INFP": {}, "ENFJ": {}, "ENFP": {},
	"ISTJ": {}, "ISFJ": {}, "ESTJ": {}, "ESFJ": {},
	"ISTP": {}, "ISFP": {}, "ESTP": {}, "ESFP": {},
}

var ErrInvalidCode = errors.New("invalid MBTI type")

// Valid reports whether c is one of the 16 canonical codes.
func (c Code) Valid() bool {
	_, ok := canonicalCodes[c]
	return ok
}

func (c Code) String() string { return string(c) }

// ParseCode validates s as a canonical 4-letter code.
func ParseCode(s string) (Code, error) {
	c := Code(strings.ToUpper(strings.TrimSpace(s)))
	if !c.Valid() {
		return "", ErrInvalidCode
	}
	return c, nil
}

// Codes returns all 16 canonical codes. The order is unspecified.
func Codes() []Code {
	out := make([]Code, 0, len(canonicalCodes))
	for c := range canonicalCodes {
		out = append(out, c)
	}
	return out
}

// Scores holds the per-axis scores in [-100,100]. Negative leans toward
// the E/S/T/J pole, positive toward I/N/F/P.
type Scores struct {
	EI int `json:"EI"`
	SN int `json:"SN"`
	TF int `json:"TF"`
	JP int `json:"JP"`
}

// ByAxis returns the score for a single axis.
func (s Scores) ByAxis(a Axis) int {
	switch a {
	case AxisEI:
		return s.EI
	case AxisSN:
		return s.SN
	case AxisTF:
		return s.TF
	case AxisJP:
		return s.JP
	}
	return 0
}
