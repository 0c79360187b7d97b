// Package stream broadcasts execution trace steps to connected watchers
// in real time, the live counterpart to the batch execution history the
// facade keeps (spec §4.6). It is grounded on the teacher's own
// `modules/socketio` runner, which drives the same socket.io/engine.io
// stack from the other side of the wire (client rather than server); the
// event-listener wiring style (types.EventName callbacks feeding a
// result channel) carries over, inverted into a server that emits rather
// than one that waits on `on_event`.
package stream

import (
	"net/http"

	"github.com/cogform/cogform/internal/execstate"
	"github.com/google/uuid"
	"github.com/zishang520/socket.io/v2/socket"
)

// TraceStepEvent is the payload emitted to every watcher subscribed to a
// document's room when the scheduler records a trace step.
type TraceStepEvent struct {
	ExecutionID string              `json:"execution_id"`
	DocumentID  string              `json:"document_id"`
	Step        execstate.TraceStep `json:"step"`
}

// Broadcaster wraps a socket.io server, grouping watchers into one room
// per document id so a watcher only receives steps for the documents it
// subscribed to (clients join a room by emitting "watch" with the
// document id).
type Broadcaster struct {
	io *socket.Server
}

// New builds a Broadcaster and wires the "watch"/"unwatch" subscription
// events every connected client can send.
func New() *Broadcaster {
	io := socket.NewServer(nil, nil)
	io.On("connection", func(clients ...any) {
		client := clients[0].(*socket.Socket)
		client.On("watch", func(args ...any) {
			if len(args) == 0 {
				return
			}
			docID, ok := args[0].(string)
			if !ok {
				return
			}
			client.Join(socket.Room(docID))
		})
		client.On("unwatch", func(args ...any) {
			if len(args) == 0 {
				return
			}
			docID, ok := args[0].(string)
			if !ok {
				return
			}
			client.Leave(socket.Room(docID))
		})
	})
	return &Broadcaster{io: io}
}

// Handler returns the http.Handler the HTTP server mounts at
// `/socket.io/` to serve both the websocket upgrade and long-poll
// transports.
func (b *Broadcaster) Handler() http.Handler {
	return b.io.ServeHandler(nil)
}

// Close tears down the underlying engine.io server.
func (b *Broadcaster) Close() {
	b.io.Close(nil)
}

// NewExecutionID mints a correlation id for one execute/simulate call,
// used both as the live-stream event's execution_id and as the
// uniqueness suffix on the facade's history key.
func NewExecutionID() string {
	return uuid.NewString()
}

// OnStep adapts Publish into the scheduler.Config.OnStep hook shape, so
// a facade wiring a broadcaster can pass it straight through to
// scheduler.Execute.
func (b *Broadcaster) OnStep(executionID, documentID string) func(execstate.TraceStep) {
	return func(step execstate.TraceStep) {
		b.Publish(executionID, documentID, step)
	}
}

// Publish emits one trace step to every watcher of documentID.
func (b *Broadcaster) Publish(executionID, documentID string, step execstate.TraceStep) {
	event := TraceStepEvent{ExecutionID: executionID, DocumentID: documentID, Step: step}
	b.io.To(socket.Room(documentID)).Emit("trace_step", event)
}
