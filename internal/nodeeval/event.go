package nodeeval

import (
	"encoding/json"
	"time"

	"github.com/cogform/cogform/internal/graphcompile"
	"github.com/cogform/cogform/internal/schema"
)

// evalEvent fires (yields true) under a time or state trigger, and
// otherwise keeps its current value (spec §4.5 Event).
//
// A time-triggered event latches once fired: "last_trigger" is read from
// the node's own static `last_trigger_ms` parameter (an epoch
// millisecond timestamp set by the document author, e.g. "the last time
// this happened in the real world"), never from the node's own live
// value — that keeps the fired signal a plain boolean instead of a value
// that alternates between a timestamp and `true`. Once a pass observes
// `now - last_trigger_ms >= interval_ms` and fires, the node stays `true`
// for the rest of this execution, matching the fixed-point model (a
// latch converges; a value that kept re-deriving "now" every pass never
// would).
func evalEvent(node *schema.Node, graph *graphcompile.Graph, snapshot map[string]any, now time.Time) any {
	triggerType, _ := formulaParameter(node, "triggerType")
	switch triggerType {
	case "time":
		if fired, ok := snapshot[node.ID].(bool); ok && fired {
			return true
		}
		intervalRaw, ok := node.Data.Parameters["interval_ms"]
		if !ok {
			return false
		}
		var intervalMS float64
		if err := json.Unmarshal(intervalRaw, &intervalMS); err != nil {
			return false
		}
		var lastTriggerMS float64
		if raw, ok := node.Data.Parameters["last_trigger_ms"]; ok {
			_ = json.Unmarshal(raw, &lastTriggerMS)
		}
		nowMS := float64(now.UnixMilli())
		return nowMS-lastTriggerMS >= intervalMS
	case "state":
		watchRaw, ok := node.Data.Parameters["watch"]
		if !ok {
			return snapshot[node.ID]
		}
		var watch string
		if err := json.Unmarshal(watchRaw, &watch); err != nil {
			return snapshot[node.ID]
		}
		wantRaw, ok := node.Data.Parameters["triggerValue"]
		if !ok {
			return snapshot[node.ID]
		}
		var want any
		_ = json.Unmarshal(wantRaw, &want)
		return looseEqual(snapshot[watch], want)
	default:
		return snapshot[node.ID]
	}
}
