package bridge

import (
	"encoding/json"

	"github.com/prop-dev/prop"
)

// update is the wire envelope for pushes to clients.
type update struct {
	Name  string          `json:"name"`
	Value json.RawMessage `json:"value"`
}

// writeRequest is the wire envelope for client writes.
type writeRequest struct {
	Value json.RawMessage `json:"value"`
}

// endpoint erases a container's element type behind JSON.
type endpoint interface {
	snapshot() (json.RawMessage, error)
	apply(raw json.RawMessage) (bool, error)
	subscribe(fn func(raw json.RawMessage)) prop.CallbackID
	unsubscribe(id prop.CallbackID)
}

type typedEndpoint[T any] struct {
	p *prop.Property[T]
}

func (e *typedEndpoint[T]) snapshot() (json.RawMessage, error) {
	return json.Marshal(e.p.Get())
}

// apply offers the decoded value to the container's write pipeline; the
// container's coercer and validator decide what, if anything, changes.
func (e *typedEndpoint[T]) apply(raw json.RawMessage) (bool, error) {
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		return false, err
	}
	return e.p.Set(v), nil
}

// subscribe registers a change callback that hands the marshaled new value
// to fn. The callback runs under the container's write lock, so fn must not
// block and must not touch the container.
func (e *typedEndpoint[T]) subscribe(fn func(raw json.RawMessage)) prop.CallbackID {
	return e.p.AddChangeCallback(func(oldValue, newValue *T) {
		raw, err := json.Marshal(*newValue)
		if err != nil {
			return
		}
		fn(raw)
	})
}

func (e *typedEndpoint[T]) unsubscribe(id prop.CallbackID) {
	e.p.RemoveChangeCallback(id)
}
