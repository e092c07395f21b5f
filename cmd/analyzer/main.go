package main

import (
	"context"
	"encoding/csv"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/reelsense/reelsense/config"
	"github.com/reelsense/reelsense/internal/analysis"
	"github.com/reelsense/reelsense/internal/logging"
	"github.com/reelsense/reelsense/internal/models"
)

func main() {
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "dev"
	}
	config.LoadEnv(env)
	logging.InitLogger()

	review := flag.String("review", "", "review text to analyze")
	file := flag.String("file", "", "path to a file containing review text")
	csvPath := flag.String("csv", "", "path to an IMDB-format dataset CSV for batch runs")
	limit := flag.Int("limit", 5, "number of dataset reviews to analyze with -csv")
	aspectsFlag := flag.String("aspects", "", "comma-separated aspects (default: configured aspect set)")
	methodFlag := flag.String("method", string(models.MethodRemote), "analysis method: llm, nli or vader")
	flag.Parse()

	aspects := config.Aspects()
	if *aspectsFlag != "" {
		aspects = splitAspects(*aspectsFlag)
	}
	method := models.Method(*methodFlag)

	analyzer := analysis.NewDefaultAnalyzer()
	ctx := context.Background()

	switch {
	case *review != "":
		analyzeOne(ctx, analyzer, *review, aspects, method)
	case *file != "":
		content, err := os.ReadFile(*file)
		if err != nil {
			slog.Error("[Analyzer] Failed to read review file", slog.String("error", err.Error()))
			os.Exit(1)
		}
		analyzeOne(ctx, analyzer, string(content), aspects, method)
	case *csvPath != "":
		if err := analyzeDataset(ctx, analyzer, *csvPath, *limit, aspects, method); err != nil {
			slog.Error("[Analyzer] Dataset run failed", slog.String("error", err.Error()))
			os.Exit(1)
		}
	default:
		flag.Usage()
		fmt.Println("\nExamples:")
		fmt.Println("  analyzer -review 'This movie was great!' -method nli")
		fmt.Println("  analyzer -csv 'IMDB Dataset.csv' -limit 5 -method llm")
	}
}

func analyzeOne(ctx context.Context, analyzer *analysis.Analyzer, review string, aspects []string, method models.Method) {
	fmt.Printf("\nAnalyzing review using %s...\n", method)
	fmt.Printf("Aspects: %s\n\n", strings.Join(aspects, ", "))

	printTable(analyzer.Analyze(ctx, review, aspects, method))
}

// analyzeDataset runs over the `review` column of an IMDB-format CSV.
func analyzeDataset(ctx context.Context, analyzer *analysis.Analyzer, path string, limit int, aspects []string, method models.Method) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open dataset: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	header, err := reader.Read()
	if err != nil {
		return fmt.Errorf("failed to read dataset header: %w", err)
	}

	reviewCol := -1
	for i, name := range header {
		if strings.EqualFold(strings.TrimSpace(name), "review") {
			reviewCol = i
			break
		}
	}
	if reviewCol == -1 {
		return fmt.Errorf("dataset has no review column")
	}

	for i := 0; i < limit; i++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read dataset row: %w", err)
		}

		fmt.Printf("\n%s\nReview %d/%d\n%s\n", strings.Repeat("=", 80), i+1, limit, strings.Repeat("=", 80))
		analyzeOne(ctx, analyzer, record[reviewCol], aspects, method)
	}
	return nil
}

func printTable(table models.ResultTable) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "aspect\tsentiment")
	for _, row := range table {
		fmt.Fprintf(w, "%s\t%s\n", row.Aspect, row.Sentiment)
	}
	w.Flush()
	fmt.Println()
}

func splitAspects(raw string) []string {
	var aspects []string
	for _, a := range strings.Split(raw, ",") {
		if a = strings.TrimSpace(a); a != "" {
			aspects = append(aspects, a)
		}
	}
	return aspects
}
