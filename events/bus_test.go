package events

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPublishDeliversByType(t *testing.T) {
	bus := NewBus()
	var got []string
	Subscribe(bus, func(ev ItemSelected) { got = append(got, "first:"+ev.LocationID) })
	Subscribe(bus, func(ev ItemSelected) { got = append(got, "second:"+ev.LocationID) })
	Subscribe(bus, func(ev LoadFailed) { got = append(got, "failed") })

	Publish(bus, ItemSelected{LocationID: "D"})

	assert.Equal(t, []string{"first:D", "second:D"}, got)
}

func TestUnsubscribe(t *testing.T) {
	bus := NewBus()
	calls := 0
	cancel := Subscribe(bus, func(ColumnsChanged) { calls++ })

	Publish(bus, ColumnsChanged{})
	cancel()
	Publish(bus, ColumnsChanged{})

	assert.Equal(t, 1, calls)
}

func TestHandlerMaySubscribeDuringPublish(t *testing.T) {
	bus := NewBus()
	Subscribe(bus, func(ItemSelected) {
		Subscribe(bus, func(ItemSelected) {})
	})
	assert.NotPanics(t, func() { Publish(bus, ItemSelected{}) })
}

func TestPublishOnNilBus(t *testing.T) {
	assert.NotPanics(t, func() { Publish[ItemSelected](nil, ItemSelected{}) })
}
