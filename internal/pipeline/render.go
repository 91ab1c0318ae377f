package pipeline

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ormolov/sway/internal/model"
)

// intensityScale is the ceiling of the intensity gauge. Scores above it
// render as a full bar.
const intensityScale = 15.0

const footerText = "sway flags pressure in language. It does not judge intent."

// Renderer writes analyses as JSON records or plain-text reports
type Renderer struct {
	includeFooter bool
}

// NewRenderer creates a renderer
func NewRenderer(includeFooter bool) *Renderer {
	return &Renderer{includeFooter: includeFooter}
}

// RenderJSON writes the full analysis record as indented JSON
func (r *Renderer) RenderJSON(a *model.Analysis, path string) error {
	data, err := json.MarshalIndent(a, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal analysis: %w", err)
	}
	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// RenderReportFile writes the full text report to a file
func (r *Renderer) RenderReportFile(a *model.Analysis, path string) error {
	var b strings.Builder
	r.RenderText(&b, a, true)

	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// RenderText writes the plain-text report. The leading fields keep a
// fixed order so the block stays diffable across runs.
func (r *Renderer) RenderText(w io.Writer, a *model.Analysis, verbose bool) {
	fmt.Fprintf(w, "Fear Score: %d\n", a.Score.FearCount)
	fmt.Fprintf(w, "Urgency Score: %d\n", a.Score.UrgencyCount)
	fmt.Fprintf(w, "Negative Emotion: %d\n", a.Score.NegativityValue)
	fmt.Fprintf(w, "Total Score: %.1f\n", a.Score.TotalScore)
	fmt.Fprintf(w, "DNA Score: %.1f\n", a.Score.DNAScore)
	fmt.Fprintf(w, "Risk Level: %s\n", a.Score.RiskLevel)
	fmt.Fprintf(w, "Manipulation Type: %s\n", a.Type.Label())
	fmt.Fprintf(w, "Explanation: %s\n", strings.Join(a.Explanation, " | "))
	fmt.Fprintln(w)

	for _, cat := range model.Categories() {
		f := a.Features[cat]
		if f.Count == 0 {
			continue
		}
		fmt.Fprintf(w, "%s: %s\n", triggerLabel(cat), strings.Join(f.Matches, ", "))
	}
	fmt.Fprintf(w, "Suggested Rewrite: %s\n", a.Rewrite)
	fmt.Fprintln(w)

	fmt.Fprintf(w, "Sentiment: %s (%s)\n", a.Sentiment.Label, a.Sentiment.Source)
	fmt.Fprintf(w, "Confidence: %d%%\n", a.Score.Confidence)
	fmt.Fprintf(w, "Score Drift: %.1f\n", a.Drift)
	if verbose {
		fmt.Fprintf(w, "Analyzed At: %s\n", a.AnalyzedAt.Format("2006-01-02 15:04:05 UTC"))
	}
	fmt.Fprintln(w)

	fmt.Fprintf(w, "Manipulation Intensity: [%s] %.1f/15\n", intensityBar(a.Score.TotalScore), min(a.Score.TotalScore, intensityScale))
	if a.Alert {
		fmt.Fprintf(w, "⚠ ALERT: total score %.1f exceeds threshold %d\n", a.Score.TotalScore, a.Threshold)
	} else {
		fmt.Fprintf(w, "Within safe limits (threshold %d)\n", a.Threshold)
	}

	for _, warn := range a.Warnings {
		fmt.Fprintf(w, "Warning: %s\n", warn)
	}

	if r.includeFooter {
		fmt.Fprintf(w, "\n---\n%s\n", footerText)
	}
}

func triggerLabel(cat model.Category) string {
	switch cat {
	case model.CategoryFear:
		return "Fear Triggers"
	case model.CategoryUrgency:
		return "Urgency Triggers"
	default:
		return "Negativity Triggers"
	}
}

// intensityBar renders a 20-cell gauge of the score against the 0-15 scale
func intensityBar(total float64) string {
	const width = 20

	ratio := min(total, intensityScale) / intensityScale
	filled := int(ratio*width + 0.5)
	if filled > width {
		filled = width
	}
	return strings.Repeat("#", filled) + strings.Repeat("-", width-filled)
}
