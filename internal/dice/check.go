package dice

import "fmt"

// CheckResult records one probability draw so callers can log and broadcast it
type CheckResult struct {
	Chance  float64
	Draw    float64
	Success bool
}

// Check consumes exactly one draw from the roller and succeeds when the draw
// falls below chance. Chance is clamped to [0, 1] first.
func Check(r Roller, chance float64) *CheckResult {
	chance = clampChance(chance)
	draw := r.Float()
	return &CheckResult{
		Chance:  chance,
		Draw:    draw,
		Success: draw < chance,
	}
}

func (c *CheckResult) String() string {
	outcome := "fail"
	if c.Success {
		outcome = "pass"
	}
	return fmt.Sprintf("%.3f vs %.3f: %s", c.Draw, c.Chance, outcome)
}

func clampChance(chance float64) float64 {
	if chance != chance || chance < 0 {
		return 0
	}
	if chance > 1 {
		return 1
	}
	return chance
}
