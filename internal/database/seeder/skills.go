package seeder

import (
	"context"

	"skill-swap/internal/database"
)

type starterSkill struct {
	name, category, description string
}

var starterSkills = []starterSkill{
	{"Python", "Technology", "General purpose programming language"},
	{"Go", "Technology", "Statically typed compiled language"},
	{"JavaScript", "Technology", "Language of the web"},
	{"SQL", "Technology", "Querying relational databases"},
	{"Design", "Design", "Visual and product design"},
	{"Figma", "Design", "Collaborative interface design tool"},
	{"Photography", "Creative", "Composition, lighting and editing"},
	{"Guitar", "Music", "Acoustic and electric guitar"},
	{"Spanish", "Language", "Conversational and written Spanish"},
	{"Public Speaking", "Communication", "Presenting to an audience"},
	{"Cooking", "Lifestyle", "Home cooking techniques"},
}

// SkillsSeeder inserts a starter taxonomy so autocomplete has something to offer on a
// fresh database. Existing names are left untouched.
type SkillsSeeder struct{}

func (SkillsSeeder) Name() string { return "skills" }

func (SkillsSeeder) Run(ctx context.Context, db database.DB) error {
	if err := requireColumns(ctx, db, "skills", "id", "skill_name", "category", "description", "created_at"); err != nil {
		return err
	}

	ins := psql.Insert("skills").Columns("skill_name", "category", "description")
	for _, s := range starterSkills {
		ins = ins.Values(s.name, s.category, s.description)
	}
	query, args, err := ins.Suffix("ON CONFLICT (skill_name) DO NOTHING").ToSql()
	if err != nil {
		return err
	}

	return inTx(ctx, db, func(tx database.Tx) error {
		_, err := tx.Exec(ctx, query, args...)
		return err
	})
}
