package bridge

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/gorilla/websocket"

	"github.com/prop-dev/prop"
)

// mirrorSendBuffer is the outbound queue length for local changes.
const mirrorSendBuffer = 16

// Mirror dials a bridge server endpoint and keeps p synchronized with the
// served container until ctx is canceled or the connection fails.
//
// Pushes from the server are applied through p's own pipeline, so a local
// coercer or validator still has the last word. Direct local writes to p are
// forwarded upstream; the equality short-circuit on both sides terminates
// echo loops after a single round trip.
//
// Mirror blocks. It returns nil on a clean close, ctx.Err() on cancellation,
// and the underlying error otherwise.
func Mirror[T any](ctx context.Context, url string, p *prop.Property[T]) error {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, url, nil)
	if err != nil {
		return fmt.Errorf("bridge: dial %s: %w", url, err)
	}
	defer conn.Close()

	outbound := make(chan json.RawMessage, mirrorSendBuffer)
	id := p.AddChangeCallback(func(oldValue, newValue *T) {
		raw, err := json.Marshal(*newValue)
		if err != nil {
			return
		}
		select {
		case outbound <- raw:
		default:
		}
	})
	defer p.RemoveChangeCallback(id)

	done := make(chan struct{})
	defer close(done)

	go func() {
		for {
			select {
			case raw := <-outbound:
				msg, err := json.Marshal(writeRequest{Value: raw})
				if err != nil {
					continue
				}
				conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
				if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
					return
				}

			case <-ctx.Done():
				deadline := time.Now().Add(time.Second)
				conn.WriteControl(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), deadline)
				conn.Close()
				return

			case <-done:
				return
			}
		}
	}()

	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				return nil
			}
			return fmt.Errorf("bridge: read: %w", err)
		}

		var u update
		if err := json.Unmarshal(msg, &u); err != nil {
			continue
		}
		var v T
		if err := json.Unmarshal(u.Value, &v); err != nil {
			continue
		}
		p.Set(v)
	}
}
