package validate

import (
	"fmt"

	"github.com/cogform/cogform/internal/schema"
)

// validateSchema is phase 1 (spec §4.2): required fields, enum values,
// numeric bounds, identifier patterns, timestamps, and the version triple.
// It returns immediately with everything it found — the caller decides
// whether to stop the pipeline.
func validateSchema(doc *schema.Document) []Error {
	var errs []Error

	if doc.Metadata.ID == "" {
		errs = append(errs, schemaErr("metadata.id is required"))
	} else if !identPattern.MatchString(doc.Metadata.ID) {
		errs = append(errs, schemaErr(fmt.Sprintf("metadata.id %q does not match [A-Za-z0-9_-]+", doc.Metadata.ID)))
	}
	if doc.Metadata.Name == "" {
		errs = append(errs, schemaErr("metadata.name is required"))
	}
	if doc.Metadata.Version == "" {
		errs = append(errs, schemaErr("metadata.version is required"))
	} else if !versionPattern.MatchString(doc.Metadata.Version) {
		errs = append(errs, schemaErr(fmt.Sprintf("metadata.version %q is not a MAJOR.MINOR.PATCH triple", doc.Metadata.Version)))
	}
	if doc.Metadata.CreatedAt == "" || !isoTimestamp.MatchString(doc.Metadata.CreatedAt) {
		errs = append(errs, schemaErr("metadata.created_at must be an ISO-8601 timestamp"))
	}
	if doc.Metadata.UpdatedAt == "" || !isoTimestamp.MatchString(doc.Metadata.UpdatedAt) {
		errs = append(errs, schemaErr("metadata.updated_at must be an ISO-8601 timestamp"))
	}

	if len(doc.Nodes) == 0 {
		errs = append(errs, schemaErr("document must declare at least one node"))
	}

	for _, n := range doc.Nodes {
		errs = append(errs, validateNodeSchema(n)...)
	}
	for _, r := range doc.Relations {
		errs = append(errs, validateRelationSchema(r)...)
	}

	if doc.Execution != nil {
		if doc.Execution.MaxIter != nil && *doc.Execution.MaxIter < 1 {
			errs = append(errs, schemaErr("execution.max_iterations must be >= 1"))
		}
		if doc.Execution.Mode != "" {
			switch doc.Execution.Mode {
			case schema.ModeSequential, schema.ModeParallel, schema.ModeAdaptive:
			default:
				errs = append(errs, schemaErr(fmt.Sprintf("execution.mode %q is not a legal mode", doc.Execution.Mode)))
			}
		}
	}

	return errs
}

func validateNodeSchema(n schema.Node) []Error {
	var errs []Error
	if n.ID == "" || !identPattern.MatchString(n.ID) {
		errs = append(errs, nodeErr(n.ID, fmt.Sprintf("node id %q does not match [A-Za-z0-9_-]+", n.ID)))
	}
	if !validNodeTypes[n.Type] {
		errs = append(errs, nodeErr(n.ID, fmt.Sprintf("node %q has illegal type %q", n.ID, n.Type)))
	}
	if n.Type == schema.NodeCustom && n.CustomType == "" {
		errs = append(errs, nodeErr(n.ID, fmt.Sprintf("node %q is type=custom but has no custom_type", n.ID)))
	}
	if n.Data.Confidence != nil && (*n.Data.Confidence < 0 || *n.Data.Confidence > 1) {
		errs = append(errs, nodeErr(n.ID, fmt.Sprintf("node %q confidence %v is out of range [0,1]", n.ID, *n.Data.Confidence)))
	}
	if n.Data.State != "" {
		switch n.Data.State {
		case schema.StateActive, schema.StateInactive, schema.StatePending, schema.StateCompleted, schema.StateFailed:
		default:
			errs = append(errs, nodeErr(n.ID, fmt.Sprintf("node %q has illegal state %q", n.ID, n.Data.State)))
		}
	}
	return errs
}

func validateRelationSchema(r schema.Relation) []Error {
	var errs []Error
	if r.ID == "" || !identPattern.MatchString(r.ID) {
		errs = append(errs, relErr(r.ID, fmt.Sprintf("relation id %q does not match [A-Za-z0-9_-]+", r.ID)))
	}
	if !validRelationTypes[r.Type] {
		errs = append(errs, relErr(r.ID, fmt.Sprintf("relation %q has illegal type %q", r.ID, r.Type)))
	}
	if r.Type == schema.RelationCustom && r.CustomType == "" {
		errs = append(errs, relErr(r.ID, fmt.Sprintf("relation %q is type=custom but has no custom_type", r.ID)))
	}
	if r.Source == "" || r.Target == "" {
		errs = append(errs, relErr(r.ID, fmt.Sprintf("relation %q must declare source and target", r.ID)))
	}
	if r.Strength != nil && (*r.Strength < 0 || *r.Strength > 1) {
		errs = append(errs, relErr(r.ID, fmt.Sprintf("relation %q strength %v is out of range [0,1]", r.ID, *r.Strength)))
	}
	for _, cond := range r.ActivationConditions {
		if !validOperators[cond.Operator] {
			errs = append(errs, relErr(r.ID, fmt.Sprintf("relation %q has illegal activation operator %q", r.ID, cond.Operator)))
		}
	}
	return errs
}

func schemaErr(msg string) Error { return Error{Kind: KindSchema, Message: msg} }
func nodeErr(id, msg string) Error {
	return Error{Kind: KindSchema, Message: msg, NodeID: id}
}
func relErr(id, msg string) Error {
	return Error{Kind: KindSchema, Message: msg, RelationID: id}
}
