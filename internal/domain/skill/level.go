package skill

import (
	"sort"
	"strings"
)

type ProficiencyLevel string

const (
	ProficiencyBeginner     ProficiencyLevel = "beginner"
	ProficiencyIntermediate ProficiencyLevel = "intermediate"
	ProficiencyAdvanced     ProficiencyLevel = "advanced"
	ProficiencyExpert       ProficiencyLevel = "expert"
)

type UrgencyLevel string

const (
	UrgencyLow    UrgencyLevel = "low"
	UrgencyMedium UrgencyLevel = "medium"
	UrgencyHigh   UrgencyLevel = "high"
	UrgencyUrgent UrgencyLevel = "urgent"
)

var proficiencyRank = map[ProficiencyLevel]int{
	ProficiencyBeginner:     1,
	ProficiencyIntermediate: 2,
	ProficiencyAdvanced:     3,
	ProficiencyExpert:       4,
}

var urgencyRank = map[UrgencyLevel]int{
	UrgencyLow:    1,
	UrgencyMedium: 2,
	UrgencyHigh:   3,
	UrgencyUrgent: 4,
}

// Rank orders levels for display; unrecognized values rank 0.
func (l ProficiencyLevel) Rank() int { return proficiencyRank[l] }

func (l ProficiencyLevel) Valid() bool { return l.Rank() > 0 }

func (l UrgencyLevel) Rank() int { return urgencyRank[l] }

func (l UrgencyLevel) Valid() bool { return l.Rank() > 0 }

func ParseProficiency(s string) (ProficiencyLevel, bool) {
	l := ProficiencyLevel(strings.ToLower(strings.TrimSpace(s)))
	return l, l.Valid()
}

func ParseUrgency(s string) (UrgencyLevel, bool) {
	l := UrgencyLevel(strings.ToLower(strings.TrimSpace(s)))
	return l, l.Valid()
}

// TopOffered returns at most n offered skills, highest proficiency first and newest first
// within a level.
func TopOffered(items []OfferedSkill, n int) []OfferedSkill {
	out := append([]OfferedSkill(nil), items...)
	sort.SliceStable(out, func(i, j int) bool {
		ri, rj := out[i].Level.Rank(), out[j].Level.Rank()
		if ri != rj {
			return ri > rj
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	if n >= 0 && len(out) > n {
		out = out[:n]
	}
	return out
}

// TopWanted is TopOffered for wanted skills, ranked by urgency.
func TopWanted(items []WantedSkill, n int) []WantedSkill {
	out := append([]WantedSkill(nil), items...)
	sort.SliceStable(out, func(i, j int) bool {
		ri, rj := out[i].Urgency.Rank(), out[j].Urgency.Rank()
		if ri != rj {
			return ri > rj
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	if n >= 0 && len(out) > n {
		out = out[:n]
	}
	return out
}

// RankUsage sorts by total usage (descending, name ascending on ties), drops unused skills
// and caps the result at limit.
func RankUsage(items []Usage, limit int) []Usage {
	out := make([]Usage, 0, len(items))
	for _, it := range items {
		if it.TotalUsage() > 0 {
			out = append(out, it)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		ti, tj := out[i].TotalUsage(), out[j].TotalUsage()
		if ti != tj {
			return ti > tj
		}
		return out[i].Name < out[j].Name
	})
	if limit >= 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}
