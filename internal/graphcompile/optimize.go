package graphcompile

import (
	"encoding/json"
	"sort"
	"time"

	"github.com/cogform/cogform/internal/schema"
)

// Optimization modes (spec §4.3 "optimize(graph, mode)").
const (
	OptimizeSpeed    = "speed"
	OptimizeMemory   = "memory"
	OptimizeBalanced = "balanced"
)

// Optimize returns a new graph tuned for mode, leaving g untouched (the
// facade compiles, optimizes the copy, and caches that optimized graph,
// the same way the teacher's executor works against a snapshot rather
// than the live graph).
//
//   - speed: sort every source's adjacency list by descending relation
//     strength, so a scheduler or evaluator walking it in order sees the
//     strongest influence first.
//   - memory: strip fields that are still at their documented default
//     (confidence/weight 1.0, state active; strength 1.0, bidirectional
//     false), shrinking the serialized graph.
//   - balanced: apply the speed sort, and strip default confidence only on
//     nodes whose type is not condition or formula (those two types read
//     confidence as a meaningful signal even at 1.0).
//
// Optimize is idempotent: optimize(optimize(g, m), m) == optimize(g, m),
// since sorting an already-sorted stable list is a no-op and stripping an
// already-stripped field is a no-op.
func Optimize(g *Graph, mode string) *Graph {
	if mode == "" {
		mode = OptimizeBalanced
	}

	out := *g
	out.nodes = append([]schema.Node(nil), g.nodes...)
	out.relations = append([]schema.Relation(nil), g.relations...)
	out.forward = copyAdjacency(g.forward)
	out.outgoingCausal = copyAdjacency(g.outgoingCausal)

	switch mode {
	case OptimizeSpeed:
		sortByStrength(&out)
	case OptimizeMemory:
		stripAllDefaults(&out)
	case OptimizeBalanced:
		sortByStrength(&out)
		stripConfidenceDefault(&out)
	default:
		mode = OptimizeBalanced
		sortByStrength(&out)
		stripConfidenceDefault(&out)
	}

	tag := OptimizationTag{Type: mode, Applied: true, Timestamp: time.Now().UTC().Format(time.RFC3339)}
	out.Optimization = &tag
	out.Metadata.Extensions = mergeExtension(out.Metadata.Extensions, "optimization", tag)
	return &out
}

func copyAdjacency(m map[string][]string) map[string][]string {
	out := make(map[string][]string, len(m))
	for k, v := range m {
		out[k] = append([]string(nil), v...)
	}
	return out
}

// sortByStrength reorders forward and outgoingCausal in place (on the
// optimize copy) by descending relation strength, using a stable sort so
// ties keep their original, deterministic order.
func sortByStrength(g *Graph) {
	strength := strengthLookup(g.relations)
	sortOne := func(adjacency map[string][]string) {
		for source, targets := range adjacency {
			ts := targets
			sort.SliceStable(ts, func(i, j int) bool {
				return strength[[2]string{source, ts[i]}] > strength[[2]string{source, ts[j]}]
			})
		}
	}
	sortOne(g.forward)
	sortOne(g.outgoingCausal)
}

// strengthLookup maps (source,target) to the strength of the relation
// connecting them, including the reverse pairing for bidirectional
// relations.
func strengthLookup(relations []schema.Relation) map[[2]string]float64 {
	out := make(map[[2]string]float64, len(relations)*2)
	for _, r := range relations {
		s := schema.DefaultStrength
		if r.Strength != nil {
			s = *r.Strength
		}
		out[[2]string{r.Source, r.Target}] = s
		if r.Bidirectional != nil && *r.Bidirectional {
			out[[2]string{r.Target, r.Source}] = s
		}
	}
	return out
}

// stripAllDefaults clears every field still at its compiler-filled
// default value (memory mode).
func stripAllDefaults(g *Graph) {
	for i := range g.nodes {
		n := &g.nodes[i]
		if n.Data.Confidence != nil && *n.Data.Confidence == schema.DefaultConfidence {
			n.Data.Confidence = nil
		}
		if n.Data.Weight != nil && *n.Data.Weight == schema.DefaultWeight {
			n.Data.Weight = nil
		}
		if n.Data.State == schema.StateActive {
			n.Data.State = ""
		}
	}
	for i := range g.relations {
		r := &g.relations[i]
		if r.Strength != nil && *r.Strength == schema.DefaultStrength {
			r.Strength = nil
		}
		if r.Bidirectional != nil && !*r.Bidirectional {
			r.Bidirectional = nil
		}
	}
}

// stripConfidenceDefault clears default-valued (1.0) node confidence,
// except on condition and formula nodes where it is a meaningful signal
// even at 1.0 (balanced mode).
func stripConfidenceDefault(g *Graph) {
	for i := range g.nodes {
		n := &g.nodes[i]
		if n.Type == schema.NodeCondition || n.Type == schema.NodeFormula {
			continue
		}
		if n.Data.Confidence != nil && *n.Data.Confidence == schema.DefaultConfidence {
			n.Data.Confidence = nil
		}
	}
}

// mergeExtension sets key on a JSON object carried in extensions,
// preserving any other keys already present.
func mergeExtension(extensions json.RawMessage, key string, value any) json.RawMessage {
	obj := map[string]json.RawMessage{}
	if len(extensions) > 0 {
		_ = json.Unmarshal(extensions, &obj)
	}
	encoded, err := json.Marshal(value)
	if err != nil {
		return extensions
	}
	obj[key] = encoded
	merged, err := json.Marshal(obj)
	if err != nil {
		return extensions
	}
	return merged
}
