package nodeeval

import (
	"encoding/json"
	"strings"

	"github.com/cogform/cogform/internal/schema"
)

// resolveField reads a dot-path like "data.value" or "data.parameters.min"
// off of a node's current, live view: its static schema.Node plus the
// node's current state-map value substituted in for data.value. This is
// the generic form of the activation-condition `field` lookup (spec §3
// glossary, §4.5 Condition) — any path into the node's JSON shape works,
// not just the one example the spec shows.
func resolveField(node *schema.Node, currentValue any, field string) (any, bool) {
	root := buildFieldRoot(node, currentValue)
	if field == "" {
		return root, true
	}
	parts := strings.Split(field, ".")
	var cur any = root
	for _, p := range parts {
		m, ok := cur.(map[string]any)
		if !ok {
			return nil, false
		}
		cur, ok = m[p]
		if !ok {
			return nil, false
		}
	}
	return cur, true
}

// buildFieldRoot marshals node through schema.Node's JSON shape (so field
// paths follow the exact tags a document author already knows from §3),
// then splices the live state value in at data.value.
func buildFieldRoot(node *schema.Node, currentValue any) map[string]any {
	raw, err := json.Marshal(node)
	if err != nil {
		return map[string]any{}
	}
	var root map[string]any
	if err := json.Unmarshal(raw, &root); err != nil {
		return map[string]any{}
	}
	data, _ := root["data"].(map[string]any)
	if data == nil {
		data = map[string]any{}
		root["data"] = data
	}
	data["value"] = currentValue
	return root
}
