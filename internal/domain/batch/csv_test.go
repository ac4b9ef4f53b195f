package batch

import (
	"bytes"
	"encoding/csv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	err := WriteCSV(&buf, []Row{
		{FileName: "a.pdf", Score: 66.67, MatchedSkills: []string{"go", "python"}, MissingSkills: []string{"sql"}},
		{FileName: "b.docx", Score: 0, MatchedSkills: nil, MissingSkills: []string{"go"}},
	})
	require.NoError(t, err)

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, CSVHeader, records[0])
	assert.Equal(t, []string{"a.pdf", "66.67", "go, python", "sql"}, records[1])
	assert.Equal(t, []string{"b.docx", "0.0", "", "go"}, records[2])
}

func TestWriteCSV_NoRows(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, nil))
	assert.Equal(t, "File Name,Match Score,Matched Skills,Missing Skills\n", buf.String())
}

func TestFormatScore(t *testing.T) {
	assert.Equal(t, "100.0", FormatScore(100))
	assert.Equal(t, "33.33", FormatScore(33.33))
	assert.Equal(t, "66.7", FormatScore(66.7))
	assert.Equal(t, "0.0", FormatScore(0))
}
