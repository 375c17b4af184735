// Package events is a typed publish/subscribe bus connecting the table view,
// the column editor and the importer without shared mutable state.
package events

import (
	"reflect"
	"sort"
	"sync"
)

// Bus dispatches events synchronously to the subscribers of their type.
type Bus struct {
	mu       sync.RWMutex
	nextID   int
	handlers map[reflect.Type]map[int]func(any)
}

func NewBus() *Bus {
	return &Bus{handlers: map[reflect.Type]map[int]func(any){}}
}

// Subscribe registers fn for events of type T and returns its cancel func.
func Subscribe[T any](b *Bus, fn func(T)) func() {
	t := reflect.TypeOf((*T)(nil)).Elem()

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.handlers[t] == nil {
		b.handlers[t] = map[int]func(any){}
	}
	id := b.nextID
	b.nextID++
	b.handlers[t][id] = func(v any) { fn(v.(T)) }

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		delete(b.handlers[t], id)
	}
}

// Publish delivers ev to every subscriber of T in registration order.
func Publish[T any](b *Bus, ev T) {
	if b == nil {
		return
	}
	t := reflect.TypeOf((*T)(nil)).Elem()

	b.mu.RLock()
	ids := make([]int, 0, len(b.handlers[t]))
	for id := range b.handlers[t] {
		ids = append(ids, id)
	}
	fns := make([]func(any), 0, len(ids))
	sort.Ints(ids)
	for _, id := range ids {
		fns = append(fns, b.handlers[t][id])
	}
	b.mu.RUnlock()

	for _, fn := range fns {
		fn(ev)
	}
}
