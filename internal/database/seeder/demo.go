package seeder

import (
	"context"
	"encoding/json"
	"fmt"

	"skill-swap/internal/database"
)

type demoProfile struct {
	userID       string
	name         string
	location     string
	availability []string
	offered      map[string]string // skill name -> proficiency
	wanted       map[string]string // skill name -> urgency
}

var demoProfiles = []demoProfile{
	{
		userID: "demo-ana", name: "Ana Demo", location: "Lisbon",
		availability: []string{"weekends"},
		offered:      map[string]string{"Spanish": "expert", "Cooking": "advanced"},
		wanted:       map[string]string{"Go": "high"},
	},
	{
		userID: "demo-ben", name: "Ben Demo", location: "Berlin",
		availability: []string{"evenings", "weekends"},
		offered:      map[string]string{"Go": "advanced", "SQL": "expert"},
		wanted:       map[string]string{"Guitar": "medium", "Spanish": "low"},
	},
	{
		userID: "demo-chloe", name: "Chloe Demo", location: "Toronto",
		availability: []string{"mornings"},
		offered:      map[string]string{"Guitar": "intermediate", "Photography": "advanced"},
		wanted:       map[string]string{"Figma": "urgent"},
	},
}

const (
	insertDemoOffered = `INSERT INTO user_offered_skills (profile_id, skill_id, proficiency_level)
SELECT p.id, s.id, $3 FROM user_profiles p JOIN skills s ON s.skill_name = $2 WHERE p.user_id = $1
ON CONFLICT (profile_id, skill_id) DO NOTHING`

	insertDemoWanted = `INSERT INTO user_wanted_skills (profile_id, skill_id, urgency_level)
SELECT p.id, s.id, $3 FROM user_profiles p JOIN skills s ON s.skill_name = $2 WHERE p.user_id = $1
ON CONFLICT (profile_id, skill_id) DO NOTHING`
)

// DemoProfilesSeeder adds a few public profiles with skills for local browsing. It relies on
// SkillsSeeder having run first and never overwrites an existing user_id.
type DemoProfilesSeeder struct{}

func (DemoProfilesSeeder) Name() string { return "demo_profiles" }

func (DemoProfilesSeeder) Run(ctx context.Context, db database.DB) error {
	if err := requireColumns(ctx, db, "user_profiles", "user_id", "name", "location", "availability", "is_public"); err != nil {
		return err
	}

	ins := psql.Insert("user_profiles").Columns("user_id", "name", "location", "availability", "is_public")
	for _, p := range demoProfiles {
		availability, err := json.Marshal(p.availability)
		if err != nil {
			return fmt.Errorf("availability for %s: %w", p.userID, err)
		}
		ins = ins.Values(p.userID, p.name, p.location, string(availability), true)
	}
	query, args, err := ins.Suffix("ON CONFLICT (user_id) DO NOTHING").ToSql()
	if err != nil {
		return err
	}

	return inTx(ctx, db, func(tx database.Tx) error {
		if _, err := tx.Exec(ctx, query, args...); err != nil {
			return err
		}
		for _, p := range demoProfiles {
			for skill, level := range p.offered {
				if _, err := tx.Exec(ctx, insertDemoOffered, p.userID, skill, level); err != nil {
					return fmt.Errorf("offered %s for %s: %w", skill, p.userID, err)
				}
			}
			for skill, urgency := range p.wanted {
				if _, err := tx.Exec(ctx, insertDemoWanted, p.userID, skill, urgency); err != nil {
					return fmt.Errorf("wanted %s for %s: %w", skill, p.userID, err)
				}
			}
		}
		return nil
	})
}
