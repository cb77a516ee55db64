// Package catalog holds the fixed diagnosis question set and its
// locale-aware accessors. The catalog is immutable at runtime.
package catalog

import (
	"sort"

	"github.com/mizutanik/kokoro_backend/internal/mbti"
)

// Locale selects the language questions are served in.
type Locale string

const (
	LocaleJA Locale = "ja"
	LocaleEN Locale = "en"

	// DefaultLocale is used when the configured fallback is itself
	// missing or unsupported.
	DefaultLocale = LocaleJA
)

func supported(l Locale) bool {
	return l == LocaleJA || l == LocaleEN
}

// Question is a single localized diagnosis question. Direction tells
// how agreement leans on the axis: -1 toward the first pole (E/S/T/J),
// +1 toward the second (I/N/F/P).
type Question struct {
	ID        string    `json:"id"`
	Axis      mbti.Axis `json:"axis"`
	Prompt    string    `json:"prompt"`
	Direction int       `json:"direction"`
	Order     int       `json:"order"`
}

// Catalog resolves question ids to axes and serves localized listings.
type Catalog struct {
	byID      map[string]mbti.Axis
	questions map[Locale][]Question
	fallback  Locale
}

// New builds the catalog from the embedded question table. fallback is
// the locale served when a request carries no locale or an unsupported
// one; an unsupported fallback degrades to DefaultLocale.
func New(fallback Locale) *Catalog {
	if !supported(fallback) {
		fallback = DefaultLocale
	}
	c := &Catalog{
		byID:      make(map[string]mbti.Axis, len(questionTable)),
		questions: make(map[Locale][]Question, 2),
		fallback:  fallback,
	}
	for _, locale := range []Locale{LocaleJA, LocaleEN} {
		list := make([]Question, 0, len(questionTable))
		for _, q := range questionTable {
			prompt := q.ja
			if locale == LocaleEN {
				prompt = q.en
			}
			list = append(list, Question{
				ID:        q.id,
				Axis:      q.axis,
				Prompt:    prompt,
				Direction: q.direction,
				Order:     q.order,
			})
		}
		sort.Slice(list, func(i, j int) bool { return list[i].Order < list[j].Order })
		c.questions[locale] = list
	}
	for _, q := range questionTable {
		c.byID[q.id] = q.axis
	}
	return c
}

// Normalize maps an arbitrary locale string to a supported Locale,
// falling back to the catalog's configured fallback.
func (c *Catalog) Normalize(s string) Locale {
	if supported(Locale(s)) {
		return Locale(s)
	}
	return c.fallback
}

// Questions returns the full question list for a locale in display
// order. The returned slice must not be mutated.
func (c *Catalog) Questions(locale Locale) []Question {
	if qs, ok := c.questions[locale]; ok {
		return qs
	}
	return c.questions[c.fallback]
}

// AxisOf resolves a question id to its axis.
func (c *Catalog) AxisOf(id string) (mbti.Axis, bool) {
	axis, ok := c.byID[id]
	return axis, ok
}

// Has reports whether id belongs to the catalog.
func (c *Catalog) Has(id string) bool {
	_, ok := c.byID[id]
	return ok
}

// Size is the total number of questions.
func (c *Catalog) Size() int { return len(c.byID) }

// Meta describes the diagnosis flow for presentation layers.
type Meta struct {
	TotalQuestions   int     `json:"totalQuestions"`
	TotalSteps       int     `json:"totalSteps"`
	QuestionsPerStep int     `json:"questionsPerStep"`
	EstimatedMinutes float64 `json:"estimatedMinutes"`
}

const (
	totalSteps         = 12
	questionsPerStep   = 5
	minutesPerQuestion = 0.5
)

// Meta returns the flow metadata served alongside the question list.
func (c *Catalog) Meta() Meta {
	return Meta{
		TotalQuestions:   len(c.byID),
		TotalSteps:       totalSteps,
		QuestionsPerStep: questionsPerStep,
		EstimatedMinutes: float64(len(c.byID)) * minutesPerQuestion,
	}
}
