package batch

import (
	"encoding/csv"
	"io"
	"strconv"
	"strings"
)

var CSVHeader = []string{"File Name", "Match Score", "Matched Skills", "Missing Skills"}

// FormatScore renders a score the way the results page and CSV show it:
// the shortest exact decimal, always with a fractional part (66.67, 100.0,
// 0.0), which is how the legacy exports printed it.
func FormatScore(score float64) string {
	s := strconv.FormatFloat(score, 'f', -1, 64)
	if !strings.ContainsRune(s, '.') {
		s += ".0"
	}
	return s
}

// WriteCSV writes the header and one record per row. Skill lists are
// joined with ", ".
func WriteCSV(w io.Writer, rows []Row) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(CSVHeader); err != nil {
		return err
	}
	for _, r := range rows {
		rec := []string{
			r.FileName,
			FormatScore(r.Score),
			strings.Join(r.MatchedSkills, ", "),
			strings.Join(r.MissingSkills, ", "),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
