package facade

import (
	"time"

	"github.com/cogform/cogform/internal/schema"
	"github.com/cogform/cogform/internal/validate"
)

// Template creates an empty document skeleton: id, name, author, filled
// defaults, empty node/relation lists (spec §4.6 "create a template
// document").
func (f *Facade) Template(id, name, author string) *schema.Document {
	now := time.Now().UTC().Format(time.RFC3339)
	maxIter := schema.DefaultMaxIterations
	timeout := schema.DefaultTimeoutMS
	return &schema.Document{
		Metadata: schema.Metadata{
			ID: id, Name: name, Version: "1.0.0",
			CreatedAt: now, UpdatedAt: now, Author: author,
		},
		Nodes:     []schema.Node{},
		Relations: []schema.Relation{},
		Execution: &schema.ExecConfig{
			MaxIter: &maxIter, TimeoutMS: &timeout, Mode: schema.DefaultMode,
		},
	}
}

// BatchValidate validates every document found at paths.
func (f *Facade) BatchValidate(paths []string) map[string]validate.Result {
	out := make(map[string]validate.Result, len(paths))
	for _, p := range paths {
		out[p] = validate.ValidateFile(p)
	}
	return out
}
