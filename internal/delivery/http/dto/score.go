package dto

import (
	"resume-match/internal/domain/matching"
	"resume-match/internal/domain/skill"
)

type ScoreRequest struct {
	Resume            string `json:"resume"`
	JobDescription    string `json:"job_description"`
	JobDescriptionURL string `json:"job_description_url" validate:"omitempty,url"`
	Email             string `json:"email" validate:"max=320"`
}

type ScoreResponse struct {
	MatchScore    float64  `json:"match_score"`
	MatchedSkills []string `json:"matched_skills"`
	MissingSkills []string `json:"missing_skills"`
}

func NewScoreResponse(r matching.Report) ScoreResponse {
	return ScoreResponse{
		MatchScore:    r.Score,
		MatchedSkills: skill.Strings(r.Matched),
		MissingSkills: skill.Strings(r.Missing),
	}
}
