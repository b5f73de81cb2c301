// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package host

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sort"

	"github.com/jeranaias/btczview/internal/panels"
	"github.com/jeranaias/btczview/internal/timeline"
)

// =============================================================================
// ERRORS
// =============================================================================

var (
	// ErrUnknownMethod is returned for a method name with no handler.
	ErrUnknownMethod = errors.New("unknown method")

	// ErrBadParams is returned when params do not decode or miss a
	// required field.
	ErrBadParams = errors.New("bad params")
)

// =============================================================================
// CALL
// =============================================================================

// Call is one inbound host call.
type Call struct {
	Method string          `json:"method"`
	Params json.RawMessage `json:"params,omitempty"`
}

// ParseCall decodes a call envelope.
func ParseCall(data []byte) (Call, error) {
	var c Call
	if err := json.Unmarshal(data, &c); err != nil {
		return Call{}, fmt.Errorf("%w: %v", ErrBadParams, err)
	}
	if c.Method == "" {
		return Call{}, fmt.Errorf("%w: missing method", ErrBadParams)
	}
	return c, nil
}

// NewCall builds a call from a method name and a params value.
func NewCall(method string, params any) (Call, error) {
	c := Call{Method: method}
	if params == nil {
		return c, nil
	}
	raw, err := json.Marshal(params)
	if err != nil {
		return Call{}, err
	}
	c.Params = raw
	return c, nil
}

// =============================================================================
// DISPATCHER
// =============================================================================

type handler func(params json.RawMessage) error

// Dispatcher routes calls to a timeline and a panel set.
type Dispatcher struct {
	chat     *timeline.Controller
	panels   *panels.Set
	currency string
	handlers map[string]handler

	// Observe, when set, sees every call that dispatched successfully.
	Observe func(Call)
}

// New returns a dispatcher. currency is used by generateData calls that do
// not name one.
func New(chat *timeline.Controller, set *panels.Set, currency string) *Dispatcher {
	if currency == "" {
		currency = "USD"
	}
	d := &Dispatcher{chat: chat, panels: set, currency: currency}
	d.handlers = d.routes()
	return d
}

// Methods returns the supported method names, sorted.
func (d *Dispatcher) Methods() []string {
	names := make([]string, 0, len(d.handlers))
	for name := range d.handlers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// MethodNames returns the supported method names without a live view.
func MethodNames() []string {
	return New(timeline.New(timeline.Options{}), panels.New(panels.Options{}), "").Methods()
}

// Dispatch runs one call.
func (d *Dispatcher) Dispatch(c Call) error {
	h, ok := d.handlers[c.Method]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownMethod, c.Method)
	}
	if err := h(c.Params); err != nil {
		log.Printf("HOST_CALL_FAILED | method=%s err=%v", c.Method, err)
		return err
	}
	if d.Observe != nil {
		d.Observe(c)
	}
	return nil
}

// DispatchJSON parses and runs one call envelope.
func (d *Dispatcher) DispatchJSON(data []byte) error {
	c, err := ParseCall(data)
	if err != nil {
		return err
	}
	return d.Dispatch(c)
}

// decode unmarshals params into v. Missing params decode as {}.
func decode(params json.RawMessage, v any) error {
	if len(bytes.TrimSpace(params)) == 0 || bytes.Equal(bytes.TrimSpace(params), []byte("null")) {
		return nil
	}
	if err := json.Unmarshal(params, v); err != nil {
		return fmt.Errorf("%w: %v", ErrBadParams, err)
	}
	return nil
}

func required(name string, v Text) error {
	if v == "" {
		return fmt.Errorf("%w: %s is required", ErrBadParams, name)
	}
	return nil
}

// noArgs adapts a parameterless operation.
func noArgs(fn func()) handler {
	return func(json.RawMessage) error {
		fn()
		return nil
	}
}

// setter adapts a one-value panel setter.
func setter(fn func(string)) handler {
	return func(params json.RawMessage) error {
		var p valueParams
		if err := decode(params, &p); err != nil {
			return err
		}
		fn(string(p.Value))
		return nil
	}
}

// byTimestamp adapts an operation addressed by message timestamp.
func byTimestamp(fn func(ts string)) handler {
	return func(params json.RawMessage) error {
		var p timestampParams
		if err := decode(params, &p); err != nil {
			return err
		}
		if err := required("timestamp", p.Timestamp); err != nil {
			return err
		}
		fn(string(p.Timestamp))
		return nil
	}
}

func message(fn func(messageParams)) handler {
	return func(params json.RawMessage) error {
		var p messageParams
		if err := decode(params, &p); err != nil {
			return err
		}
		if err := required("timestamp", p.Timestamp); err != nil {
			return err
		}
		fn(p)
		return nil
	}
}
