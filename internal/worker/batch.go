package worker

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/ormolov/sway/internal/model"
)

// Analyzer runs one text through the full analysis
type Analyzer interface {
	AnalyzeText(ctx context.Context, text string) (*model.Analysis, error)
}

// Input is one batch item: a label for reporting and the text to analyze
type Input struct {
	Label string
	Text  string
}

// AnalyzeJob analyzes a single text
type AnalyzeJob struct {
	Index    int // position in the batch, restores input order afterwards
	Label    string
	Text     string
	Analyzer Analyzer
}

// Execute runs the analysis for this job
func (j *AnalyzeJob) Execute(ctx context.Context) *AnalyzeResult {
	analysis, err := j.Analyzer.AnalyzeText(ctx, j.Text)
	return &AnalyzeResult{
		Index:    j.Index,
		Label:    j.Label,
		Analysis: analysis,
		Error:    err,
	}
}

// AnalyzeResult is the outcome of one batch item
type AnalyzeResult struct {
	Index    int
	Label    string
	Analysis *model.Analysis
	Error    error
}

// BatchProcessor analyzes multiple texts concurrently
type BatchProcessor struct {
	analyzer    Analyzer
	concurrency int
}

// NewBatchProcessor creates a new batch processor
func NewBatchProcessor(analyzer Analyzer, concurrency int) *BatchProcessor {
	return &BatchProcessor{
		analyzer:    analyzer,
		concurrency: concurrency,
	}
}

// Process analyzes all inputs concurrently and returns the results in
// input order regardless of completion order.
func (b *BatchProcessor) Process(ctx context.Context, inputs []Input) []*AnalyzeResult {
	if len(inputs) == 0 {
		return []*AnalyzeResult{}
	}

	pool := NewPool(b.concurrency)
	pool.Start()

	for i, input := range inputs {
		pool.Submit(&AnalyzeJob{
			Index:    i,
			Label:    input.Label,
			Text:     input.Text,
			Analyzer: b.analyzer,
		})
	}

	results := pool.Wait()
	sort.Slice(results, func(i, j int) bool {
		return results[i].Index < results[j].Index
	})

	return results
}

// ProcessFile reads texts from a file (one per line) and analyzes them
// concurrently.
func (b *BatchProcessor) ProcessFile(ctx context.Context, filePath string) ([]*AnalyzeResult, error) {
	texts, err := ReadTextsFromFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("read texts: %w", err)
	}

	inputs := make([]Input, len(texts))
	for i, text := range texts {
		inputs[i] = Input{
			Label: fmt.Sprintf("line %d", i+1),
			Text:  text,
		}
	}

	return b.Process(ctx, inputs), nil
}

// ReadTextsFromFile reads texts from a file, one per line. Empty lines
// and comment lines starting with # are skipped; duplicate lines are
// kept since repeats are meaningful for score history.
func ReadTextsFromFile(filePath string) ([]string, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var texts []string

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		texts = append(texts, line)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan file: %w", err)
	}

	return texts, nil
}
