package validate

import (
	"encoding/json"
	"fmt"
	"os"
	"regexp"

	"github.com/cogform/cogform/internal/expr"
	"github.com/cogform/cogform/internal/schema"
	"github.com/cogform/cogform/internal/topology"
)

var (
	identPattern   = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)
	versionPattern = regexp.MustCompile(`^\d+\.\d+\.\d+$`)
	isoTimestamp   = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}(T\d{2}:\d{2}:\d{2}(\.\d+)?(Z|[+-]\d{2}:\d{2})?)?$`)
)

var validNodeTypes = map[schema.NodeType]bool{
	schema.NodeConcept: true, schema.NodeCondition: true, schema.NodeAction: true,
	schema.NodeEvent: true, schema.NodeFormula: true, schema.NodeCustom: true,
}

var validRelationTypes = map[schema.RelationType]bool{
	schema.RelationCauses: true, schema.RelationTriggers: true, schema.RelationBlocks: true,
	schema.RelationContains: true, schema.RelationDependsOn: true, schema.RelationInfluences: true,
	schema.RelationCustom: true,
}

var validOperators = map[schema.ConditionOperator]bool{
	schema.OpEq: true, schema.OpNeq: true, schema.OpGt: true, schema.OpLt: true,
	schema.OpGte: true, schema.OpLte: true, schema.OpContains: true,
}

// ValidateFile reads and parses path as a Document, then validates it. A
// parse failure is reported as a `schema` error with a basic (zeroed)
// summary, per spec §7 ("A failing validation always produces a summary
// ... even when parsing of the body failed").
func ValidateFile(path string) Result {
	data, err := os.ReadFile(path)
	if err != nil {
		return Result{Valid: false, Errors: []Error{{
			Kind: KindSchema, Severity: SeverityError,
			Message: fmt.Sprintf("failed to read file: %v", err), Path: path,
		}}}
	}
	var doc schema.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return Result{Valid: false, Errors: []Error{{
			Kind: KindSchema, Severity: SeverityError,
			Message: fmt.Sprintf("failed to parse document: %v", err), Path: path,
		}}}
	}
	return Validate(&doc)
}

// Validate runs all validation phases over doc in order, stopping after
// phase 1 if structural/schema checks fail (spec §4.2).
func Validate(doc *schema.Document) Result {
	result := Result{Valid: true}

	if errs := validateSchema(doc); len(errs) > 0 {
		for _, e := range errs {
			result.addError(e)
		}
		result.Summary = Summary{NodeCount: len(doc.Nodes), RelationCount: len(doc.Relations)}
		return result
	}

	nodesByID, relsByID := validateReferences(doc, &result)
	validateStructure(doc, nodesByID, &result)
	validateWarnings(doc, nodesByID, relsByID, &result)

	result.Summary = buildSummary(doc)
	return result
}

func buildSummary(doc *schema.Document) Summary {
	entry, exit := topology.InferEndpoints(doc.Nodes, doc.Relations, doc.Execution)
	return Summary{
		NodeCount:     len(doc.Nodes),
		RelationCount: len(doc.Relations),
		EntryPoints:   entry,
		ExitPoints:    exit,
	}
}

// CheckFormulaExpression exposes the phase-3 formula safety check so
// callers outside this package (e.g. the compiler, when recompiling
// already-validated documents) can re-verify a single expression string.
func CheckFormulaExpression(source string) error {
	return expr.CheckSafety(source)
}
