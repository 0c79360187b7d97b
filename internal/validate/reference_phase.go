package validate

import (
	"fmt"

	"github.com/cogform/cogform/internal/schema"
)

// validateReferences is phase 2 (spec §4.2): duplicate-id detection,
// relation endpoint resolution, and explicit entry/exit point resolution.
// It returns the id→node and id→relation maps built along the way so
// later phases don't repeat the work.
func validateReferences(doc *schema.Document, result *Result) (map[string]*schema.Node, map[string]*schema.Relation) {
	nodesByID := make(map[string]*schema.Node, len(doc.Nodes))
	for i := range doc.Nodes {
		n := &doc.Nodes[i]
		if _, dup := nodesByID[n.ID]; dup {
			result.addError(Error{Kind: KindReference, NodeID: n.ID, Message: fmt.Sprintf("duplicate node id %q", n.ID)})
			continue
		}
		nodesByID[n.ID] = n
	}

	relsByID := make(map[string]*schema.Relation, len(doc.Relations))
	for i := range doc.Relations {
		r := &doc.Relations[i]
		if _, dup := relsByID[r.ID]; dup {
			result.addError(Error{Kind: KindReference, RelationID: r.ID, Message: fmt.Sprintf("duplicate relation id %q", r.ID)})
			continue
		}
		relsByID[r.ID] = r

		if _, ok := nodesByID[r.Source]; !ok {
			result.addError(Error{Kind: KindReference, RelationID: r.ID, Message: fmt.Sprintf("relation %q source %q does not resolve to a node", r.ID, r.Source)})
		}
		if _, ok := nodesByID[r.Target]; !ok {
			result.addError(Error{Kind: KindReference, RelationID: r.ID, Message: fmt.Sprintf("relation %q target %q does not resolve to a node", r.ID, r.Target)})
		}
	}

	if doc.Execution != nil {
		for _, id := range doc.Execution.EntryPoints {
			if _, ok := nodesByID[id]; !ok {
				result.addError(Error{Kind: KindReference, NodeID: id, Message: fmt.Sprintf("entry point %q does not resolve to a node", id)})
			}
		}
		for _, id := range doc.Execution.ExitPoints {
			if _, ok := nodesByID[id]; !ok {
				result.addError(Error{Kind: KindReference, NodeID: id, Message: fmt.Sprintf("exit point %q does not resolve to a node", id)})
			}
		}
	}

	return nodesByID, relsByID
}
