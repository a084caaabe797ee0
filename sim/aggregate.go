package sim

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"
)

// ErrEmptyGroup reports an aggregation group with no members.
var ErrEmptyGroup = errors.New("empty group")

// TreatmentGroup labels the arm a seeker was assigned to.
type TreatmentGroup string

const (
	GroupControl TreatmentGroup = "Control"
	GroupTreated TreatmentGroup = "Treated"
)

// TreatmentGroups lists the arms in reporting order.
var TreatmentGroups = []TreatmentGroup{GroupControl, GroupTreated}

// GroupOf returns the arm for a treatment flag.
func GroupOf(treated bool) TreatmentGroup {
	if treated {
		return GroupTreated
	}
	return GroupControl
}

// GroupStats holds the mean outcomes of one group.
// An empty group has Count 0 and NaN means.
type GroupStats struct {
	Group      TreatmentGroup
	SkillGroup SkillGroup // empty unless aggregated by skill
	Count      int
	MatchScore float64
	Retained   float64
	Wage       float64
}

// Err returns ErrEmptyGroup for a group without members.
func (g GroupStats) Err() error {
	if g.Count > 0 {
		return nil
	}
	if g.SkillGroup != "" {
		return fmt.Errorf("%w: %s/%s", ErrEmptyGroup, g.SkillGroup, g.Group)
	}
	return fmt.Errorf("%w: %s", ErrEmptyGroup, g.Group)
}

// Aggregate groups outcomes by treatment arm: Control first, then Treated.
func Aggregate(outcomes []Outcome) []GroupStats {
	stats := make([]GroupStats, 0, len(TreatmentGroups))
	for _, g := range TreatmentGroups {
		stats = append(stats, summarize(outcomes, g, ""))
	}
	return stats
}

// AggregateBySkill groups outcomes by skill group and treatment arm.
// Rows are ordered High Skill then Low Skill, Control before Treated.
func AggregateBySkill(outcomes []Outcome) []GroupStats {
	stats := make([]GroupStats, 0, 4)
	for _, sg := range []SkillGroup{SkillGroupHigh, SkillGroupLow} {
		for _, g := range TreatmentGroups {
			stats = append(stats, summarize(outcomes, g, sg))
		}
	}
	return stats
}

func summarize(outcomes []Outcome, group TreatmentGroup, skill SkillGroup) GroupStats {
	var match, retained, wage []float64
	for _, o := range outcomes {
		if GroupOf(o.Seeker.Treated) != group {
			continue
		}
		if skill != "" && o.Seeker.SkillGroup() != skill {
			continue
		}
		match = append(match, o.MatchScore)
		retained = append(retained, boolToFloat(o.Retained))
		wage = append(wage, o.Wage)
	}

	gs := GroupStats{Group: group, SkillGroup: skill, Count: len(match)}
	if gs.Count == 0 {
		gs.MatchScore, gs.Retained, gs.Wage = math.NaN(), math.NaN(), math.NaN()
		return gs
	}
	gs.MatchScore = stat.Mean(match, nil)
	gs.Retained = stat.Mean(retained, nil)
	gs.Wage = stat.Mean(wage, nil)
	return gs
}

func boolToFloat(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
