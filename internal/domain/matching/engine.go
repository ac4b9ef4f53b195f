package matching

import (
	"math"

	"resume-match/internal/domain/skill"
)

type Report struct {
	Score   float64
	Matched []skill.Skill
	Missing []skill.Skill
}

// Compute scores resume skills against job-description skills. The score is
// the share of jd skills present in the resume, in percent, rounded to two
// decimals; an empty jd set always scores 0.
func Compute(resume, jd skill.Set) Report {
	matched := jd.Intersect(resume)
	missing := jd.Difference(resume)

	score := 0.0
	if jd.Len() > 0 {
		score = round2(100 * float64(matched.Len()) / float64(jd.Len()))
	}

	return Report{
		Score:   score,
		Matched: matched.Sorted(),
		Missing: missing.Sorted(),
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
