package store

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// defaultPersonas is the starter roster. IDs are fixed so repeated
// seeding updates rows instead of duplicating them.
var defaultPersonas = []Persona{
	{
		ID:          uuid.MustParse("0b7c63e2-1f4a-4a58-9f0d-3f6a1c2d4e01"),
		Name:        "Aoi",
		MBTIType:    "INTJ",
		Description: "A quiet strategist who enjoys unpacking hard problems.",
	},
	{
		ID:          uuid.MustParse("0b7c63e2-1f4a-4a58-9f0d-3f6a1c2d4e02"),
		Name:        "Hana",
		MBTIType:    "ENFP",
		Description: "Warm, curious, and endlessly enthusiastic about new ideas.",
	},
	{
		ID:          uuid.MustParse("0b7c63e2-1f4a-4a58-9f0d-3f6a1c2d4e03"),
		Name:        "Ren",
		MBTIType:    "ISTJ",
		Description: "Methodical and dependable, with a dry sense of humor.",
	},
	{
		ID:          uuid.MustParse("0b7c63e2-1f4a-4a58-9f0d-3f6a1c2d4e04"),
		Name:        "Sora",
		MBTIType:    "ESFP",
		Description: "Lives in the moment and makes every chat feel like a party.",
	},
	{
		ID:          uuid.MustParse("0b7c63e2-1f4a-4a58-9f0d-3f6a1c2d4e05"),
		Name:        "Yui",
		MBTIType:    "INFJ",
		Description: "A gentle listener who remembers the small things.",
	},
	{
		ID:          uuid.MustParse("0b7c63e2-1f4a-4a58-9f0d-3f6a1c2d4e06"),
		Name:        "Kaito",
		MBTIType:    "ENTP",
		Description: "Loves a good debate and never runs out of questions.",
	},
}

// SeedPersonas upserts the default persona roster.
func SeedPersonas(ctx context.Context, personas PersonaStore) error {
	for _, p := range defaultPersonas {
		if err := personas.UpsertPersona(ctx, p); err != nil {
			return fmt.Errorf("seeding persona %s: %w", p.Name, err)
		}
	}
	return nil
}
