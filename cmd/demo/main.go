// Command demo walks the core analysis without the web dashboard:
// it discovers and loads the retrospective exports from the data
// directory, prints the summary, analyzes one AI-efficiency question
// and shows the response-count trend.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/fatih/color"
	"github.com/joho/godotenv"

	"retropulse/internal/config"
	"retropulse/internal/services"
	"retropulse/internal/survey"
	"retropulse/internal/trend"
)

var (
	ok   = color.New(color.FgGreen).SprintFunc()
	bad  = color.New(color.FgRed).SprintFunc()
	head = color.New(color.FgCyan, color.Bold).SprintFunc()
)

func main() {
	// Optional .env for local development
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s failed to load configuration: %v\n", bad("error:"), err)
		os.Exit(1)
	}

	if err := run(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "%s %v\n", bad("error:"), err)
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	fmt.Println(head("Release Retrospective Analyzer - Demo Mode"))
	fmt.Println("==================================================")

	// Demo output is the console text itself; keep slog quiet
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	source := survey.NewDirSource(cfg.Data.Dir, cfg.Data.Marker)
	loader := survey.NewLoader(source, logger)
	service := services.NewTrendService(loader, survey.NewStore(), cfg.Data.TimestampColumn, logger)

	snap, err := service.Load(context.Background())
	if err != nil {
		return err
	}

	fmt.Printf("\nFound %d retrospective files:\n", len(snap.Files))
	for _, file := range snap.Files {
		fmt.Printf("   - %s\n", file)
	}

	failed := make(map[string]string, len(snap.Failures))
	for _, f := range snap.Failures {
		failed[f.File] = f.Error
	}
	for _, file := range snap.Files {
		if reason, isFailed := failed[file]; isFailed {
			fmt.Printf("%s %s: %s\n", bad("✗"), file, reason)
			continue
		}
		period := survey.PeriodLabel(file)
		dataset := snap.Datasets[period]
		fmt.Printf("%s Loaded %s: %d responses, %d questions\n",
			ok("✓"), period, dataset.ResponseCount(), len(dataset.Columns))
	}

	if snap.Empty() {
		fmt.Println(bad("\nNo data loaded. Exiting."))
		return nil
	}

	summary, err := service.Summary()
	if err != nil {
		return err
	}

	fmt.Println(head("\nSummary:"))
	fmt.Printf("   Total files: %d\n", summary.TotalFiles)
	fmt.Printf("   Total responses: %d\n", summary.TotalResponses)

	questions := snap.Questions(cfg.Data.TimestampColumn)
	fmt.Printf("\nAvailable questions: %d\n", len(questions))

	fmt.Println("\nExample questions:")
	for i, question := range questions {
		if i == 5 {
			break
		}
		fmt.Printf("   %d. %s\n", i+1, truncate(question, 80))
	}

	printAITrend(service, questions)
	printResponseCounts(service)

	fmt.Println(ok("\nDemo completed successfully."))
	fmt.Println("Run the web binary for the full dashboard.")
	return nil
}

func printAITrend(service *services.TrendService, questions []string) {
	question, found := trend.FindAIEfficiencyQuestion(questions)
	if !found {
		return
	}

	fmt.Println(head("\nAnalyzing AI efficiency question:"))
	fmt.Printf("   Question: %s\n", question)

	result, err := service.Trend(question)
	if err != nil {
		fmt.Println("   No trend data available.")
		return
	}

	fmt.Println("\nTrend Analysis:")
	for idx, period := range result.Periods {
		fmt.Printf("   %s:\n", period)
		for _, series := range result.Series {
			if series.Points[idx] != nil {
				fmt.Printf("     - %s: %.2f%%\n", series.Answer, *series.Points[idx])
			}
		}
	}
}

func printResponseCounts(service *services.TrendService) {
	counts, err := service.Counts()
	if err != nil {
		return
	}

	fmt.Println(head("\nResponse Count Trends:"))
	for _, c := range counts {
		fmt.Printf("   %s: %d responses\n", c.Period, c.Count)
	}
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "..."
}
