package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"resume-match/internal/config"
	"resume-match/internal/document"
	"resume-match/internal/domain/batch"
	"resume-match/internal/domain/matching"
	"resume-match/internal/pipeline"
	"resume-match/internal/pkg/logging"
)

var scoreCmd = &cobra.Command{
	Use:   "score --jd <file|text> <resume files...>",
	Short: "Score resume files against a job description",
	Long:  "Score PDF and DOCX resumes against a job description given as a file path or literal text. Other files are skipped.",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runScore,
}

var (
	scoreJD         string
	scoreCSV        bool
	scoreSimilarity string
	scoreThreshold  float64
	scoreWorkers    int
)

func init() {
	scoreCmd.Flags().StringVar(&scoreJD, "jd", "", "Job description file path or literal text (required)")
	scoreCmd.Flags().BoolVar(&scoreCSV, "csv", false, "Write CSV instead of a table")
	scoreCmd.Flags().StringVar(&scoreSimilarity, "similarity", config.SimilarityPartialRatio, "Similarity policy: partial_ratio or levenshtein")
	scoreCmd.Flags().Float64Var(&scoreThreshold, "threshold", matching.DefaultThreshold, "Minimum similarity (0-100) for a skill hit")
	scoreCmd.Flags().IntVar(&scoreWorkers, "workers", 4, "Files parsed concurrently")
	_ = scoreCmd.MarkFlagRequired("jd")

	rootCmd.AddCommand(scoreCmd)
}

func runScore(cmd *cobra.Command, args []string) error {
	jd, err := resolveJD(scoreJD)
	if err != nil {
		return err
	}

	var sim matching.Similarity = matching.PartialRatio{}
	switch scoreSimilarity {
	case config.SimilarityPartialRatio:
	case config.SimilarityLevenshtein:
		sim = matching.LevenshteinPartial{}
	default:
		return fmt.Errorf("unknown similarity %q", scoreSimilarity)
	}

	rows, err := scoreFiles(cmd.Context(), jd, args, matching.NewExtractor(nil, sim, scoreThreshold), scoreWorkers, cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	if scoreCSV {
		return batch.WriteCSV(cmd.OutOrStdout(), rows)
	}
	return writeTable(cmd.OutOrStdout(), rows)
}

// resolveJD reads arg as a file when one exists at that path, otherwise
// treats it as the job description text itself.
func resolveJD(arg string) (string, error) {
	if arg == "" {
		return "", errors.New("--jd is required")
	}
	if st, err := os.Stat(arg); err == nil && !st.IsDir() {
		b, err := os.ReadFile(arg)
		if err != nil {
			return "", fmt.Errorf("read jd: %w", err)
		}
		return string(b), nil
	}
	return arg, nil
}

func scoreFiles(ctx context.Context, jd string, paths []string, extractor *matching.Extractor, workers int, warn io.Writer) ([]batch.Row, error) {
	files := make([]pipeline.File, 0, len(paths))
	for _, p := range paths {
		if !document.Allowed(p) {
			fmt.Fprintf(warn, "skipping %s: unsupported format\n", p)
			continue
		}
		data, err := os.ReadFile(p)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", p, err)
		}
		files = append(files, pipeline.File{Name: filepath.Base(p), Data: data})
	}

	scorer := pipeline.NewBatchScorer(extractor, nil, workers, nil, logging.Nop())
	return scorer.Run(ctx, uuid.New(), extractor.Extract(jd), files)
}

func writeTable(w io.Writer, rows []batch.Row) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "FILE\tSCORE\tMATCHED\tMISSING")
	for _, r := range rows {
		fmt.Fprintf(tw, "%s\t%s%%\t%s\t%s\n", r.FileName, batch.FormatScore(r.Score), joinOrDash(r.MatchedSkills), joinOrDash(r.MissingSkills))
	}
	return tw.Flush()
}

func joinOrDash(s []string) string {
	if len(s) == 0 {
		return "-"
	}
	return strings.Join(s, ", ")
}
