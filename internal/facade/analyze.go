package facade

import (
	"fmt"
	"sort"

	"github.com/cogform/cogform/internal/graphcompile"
	"github.com/cogform/cogform/internal/schema"
	"github.com/cogform/cogform/internal/validate"
)

// Bucket is the coarse complexity classification spec §4.6 Analyze
// returns.
type Bucket string

const (
	BucketLow    Bucket = "low"
	BucketMedium Bucket = "medium"
	BucketHigh   Bucket = "high"
)

// AnalysisResult is the shape of spec §4.6 Analyze's return value.
type AnalysisResult struct {
	Bucket          Bucket                   `json:"bucket"`
	Complexity      graphcompile.Complexity  `json:"complexity"`
	NodeTypes       map[schema.NodeType]int  `json:"node_types"`
	RelationTypes   map[schema.RelationType]int `json:"relation_types"`
	Issues          []string                 `json:"issues,omitempty"`
	Recommendations []string                 `json:"recommendations,omitempty"`
}

// classify applies the exact thresholds of spec §4.6 "Analyze": high if
// max_depth>10 or avg_branching>3 or node_count>50; medium if
// max_depth>5 or avg_branching>2 or node_count>20; else low.
func classify(c graphcompile.Complexity, nodeCount int) Bucket {
	if c.MaxDepth > 10 || c.AvgBranching > 3 || nodeCount > 50 {
		return BucketHigh
	}
	if c.MaxDepth > 5 || c.AvgBranching > 2 || nodeCount > 20 {
		return BucketMedium
	}
	return BucketLow
}

// Analyze validates doc, compiles it, and returns its complexity bucket,
// type distributions, validation issues, and a few size-driven
// recommendations.
func (f *Facade) Analyze(doc *schema.Document) (AnalysisResult, validate.Result, error) {
	result := validate.Validate(doc)
	if !result.Valid {
		return AnalysisResult{}, result, nil
	}
	g, err := graphcompile.Compile(doc)
	if err != nil {
		return AnalysisResult{}, result, fmt.Errorf("facade: analyze %s: %w", doc.Metadata.ID, err)
	}

	analysis := AnalysisResult{
		Complexity:    g.Complexity,
		NodeTypes:     map[schema.NodeType]int{},
		RelationTypes: map[schema.RelationType]int{},
	}
	for _, n := range g.Nodes() {
		analysis.NodeTypes[n.Type]++
	}
	for _, r := range g.Relations() {
		analysis.RelationTypes[r.Type]++
	}
	analysis.Bucket = classify(g.Complexity, g.NodeCount())

	for _, w := range result.Warnings {
		analysis.Issues = append(analysis.Issues, w.Message)
	}
	analysis.Recommendations = recommendations(analysis)
	return analysis, result, nil
}

func recommendations(a AnalysisResult) []string {
	var recs []string
	if a.Bucket == BucketHigh {
		recs = append(recs, "consider splitting this document: high structural complexity makes it harder to validate and execute efficiently")
	}
	if a.Complexity.CycleCount > 0 {
		recs = append(recs, "graph contains non-causal cycles (influences/blocks/contains); hybrid scheduling will be used or required")
	}
	if a.NodeTypes[schema.NodeFormula] > 0 {
		recs = append(recs, "formula nodes present; verify expression whitelists and timeouts are adequate for production load")
	}
	return recs
}

// Report renders a human-readable markdown combination of validation
// status and analysis (spec §4.6 "generate a human-readable report").
func (f *Facade) Report(doc *schema.Document) (string, error) {
	analysis, result, err := f.Analyze(doc)
	if err != nil {
		return "", err
	}

	report := fmt.Sprintf("# Report: %s\n\n", doc.Metadata.ID)
	if result.Valid {
		report += "Status: VALID\n\n"
	} else {
		report += "Status: INVALID\n\n"
		for _, e := range result.Errors {
			report += fmt.Sprintf("- [%s] %s\n", e.Kind, e.Message)
		}
		return report, nil
	}

	report += fmt.Sprintf("Nodes: %d, Relations: %d\n", result.Summary.NodeCount, result.Summary.RelationCount)
	report += fmt.Sprintf("Entry points: %v\n", result.Summary.EntryPoints)
	report += fmt.Sprintf("Exit points: %v\n", result.Summary.ExitPoints)
	report += fmt.Sprintf("\nComplexity bucket: %s\n", analysis.Bucket)
	report += fmt.Sprintf("Max depth: %d, Avg branching: %.2f, Cycle count: %d\n",
		analysis.Complexity.MaxDepth, analysis.Complexity.AvgBranching, analysis.Complexity.CycleCount)

	if len(analysis.Issues) > 0 {
		report += "\n## Issues\n"
		for _, issue := range sortedStrings(analysis.Issues) {
			report += fmt.Sprintf("- %s\n", issue)
		}
	}
	if len(analysis.Recommendations) > 0 {
		report += "\n## Recommendations\n"
		for _, rec := range analysis.Recommendations {
			report += fmt.Sprintf("- %s\n", rec)
		}
	}
	return report, nil
}

func sortedStrings(in []string) []string {
	out := append([]string{}, in...)
	sort.Strings(out)
	return out
}
