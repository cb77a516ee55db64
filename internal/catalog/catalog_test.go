package catalog

import (
	"testing"

	"github.com/mizutanik/kokoro_backend/internal/mbti"
)

func TestCatalogSize(t *testing.T) {
	c := New(DefaultLocale)
	if c.Size() != 24 {
		t.Fatalf("Size = %d, want 24", c.Size())
	}
}

func TestCatalogAxisDistribution(t *testing.T) {
	c := New(DefaultLocale)
	counts := map[mbti.Axis]int{}
	for _, q := range c.Questions(LocaleJA) {
		counts[q.Axis]++
	}
	for _, axis := range mbti.Axes {
		if counts[axis] != 6 {
			t.Errorf("axis %s has %d questions, want 6", axis, counts[axis])
		}
	}
}

func TestCatalogLocalesShareStructure(t *testing.T) {
	c := New(DefaultLocale)
	ja := c.Questions(LocaleJA)
	en := c.Questions(LocaleEN)
	if len(ja) != len(en) {
		t.Fatalf("locale lengths differ: ja=%d en=%d", len(ja), len(en))
	}
	for i := range ja {
		if ja[i].ID != en[i].ID || ja[i].Axis != en[i].Axis ||
			ja[i].Direction != en[i].Direction || ja[i].Order != en[i].Order {
			t.Errorf("question %d structure differs across locales: %+v vs %+v", i, ja[i], en[i])
		}
		if ja[i].Prompt == "" || en[i].Prompt == "" {
			t.Errorf("question %s has an empty prompt", ja[i].ID)
		}
	}
}

func TestCatalogOrdering(t *testing.T) {
	c := New(DefaultLocale)
	for i, q := range c.Questions(LocaleEN) {
		if q.Order != i+1 {
			t.Errorf("question %s at index %d has order %d", q.ID, i, q.Order)
		}
	}
}

func TestCatalogAxisOf(t *testing.T) {
	c := New(DefaultLocale)
	tests := []struct {
		id   string
		want mbti.Axis
	}{
		{"ei_1", mbti.AxisEI},
		{"sn_4", mbti.AxisSN},
		{"tf_6", mbti.AxisTF},
		{"jp_2", mbti.AxisJP},
	}
	for _, tt := range tests {
		axis, ok := c.AxisOf(tt.id)
		if !ok || axis != tt.want {
			t.Errorf("AxisOf(%s) = %s, %v; want %s", tt.id, axis, ok, tt.want)
		}
	}
	if _, ok := c.AxisOf("ei_99"); ok {
		t.Error("AxisOf(ei_99) reported ok for an unknown id")
	}
	if c.Has("bogus") {
		t.Error("Has(bogus) = true")
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		fallback Locale
		in       string
		want     Locale
	}{
		{LocaleJA, "ja", LocaleJA},
		{LocaleJA, "en", LocaleEN},
		{LocaleJA, "", LocaleJA},
		{LocaleJA, "fr", LocaleJA},
		{LocaleEN, "", LocaleEN},
		{LocaleEN, "de", LocaleEN},
		{LocaleEN, "ja", LocaleJA},
	}
	for _, tt := range tests {
		if got := New(tt.fallback).Normalize(tt.in); got != tt.want {
			t.Errorf("Normalize(%q) with fallback %s = %s, want %s", tt.in, tt.fallback, got, tt.want)
		}
	}
}

func TestConfiguredFallbackLocale(t *testing.T) {
	c := New(LocaleEN)
	got := c.Questions(Locale("de"))
	en := c.Questions(LocaleEN)
	if len(got) == 0 || got[0].Prompt != en[0].Prompt {
		t.Error("unknown locale did not fall back to the configured fallback")
	}
	if New(Locale("nope")).Normalize("") != DefaultLocale {
		t.Error("unsupported fallback did not degrade to the default")
	}
}

func TestMeta(t *testing.T) {
	m := New(DefaultLocale).Meta()
	if m.TotalQuestions != 24 {
		t.Errorf("TotalQuestions = %d, want 24", m.TotalQuestions)
	}
	if m.QuestionsPerStep != 5 || m.TotalSteps != 12 {
		t.Errorf("flow shape = %d steps x %d questions, want 12x5", m.TotalSteps, m.QuestionsPerStep)
	}
	if m.EstimatedMinutes != 12 {
		t.Errorf("EstimatedMinutes = %v, want 12", m.EstimatedMinutes)
	}
}

func TestQuestionsUnknownLocaleFallsBack(t *testing.T) {
	c := New(DefaultLocale)
	got := c.Questions(Locale("de"))
	ja := c.Questions(LocaleJA)
	if len(got) != len(ja) || got[0].Prompt != ja[0].Prompt {
		t.Error("unknown locale did not fall back to the default")
	}
}
