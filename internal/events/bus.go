// Package events carries the in-process event bus that decouples webhook
// fan-out from the HTTP request/response cycle.
package events

import (
	"github.com/asaskevich/EventBus"
)

// TopicProductSoldout is published whenever a write marks a product as
// sold out.
const TopicProductSoldout = "product.soldout"

// Bus wraps the process-wide event bus.
type Bus struct {
	bus EventBus.Bus
}

func NewBus() *Bus {
	return &Bus{bus: EventBus.New()}
}

// PublishProductSoldout fires the soldout topic. Subscribers run
// asynchronously; the caller never waits for deliveries.
func (b *Bus) PublishProductSoldout() {
	b.bus.Publish(TopicProductSoldout)
}

// SubscribeProductSoldout registers an async handler for the soldout topic.
func (b *Bus) SubscribeProductSoldout(fn func()) error {
	return b.bus.SubscribeAsync(TopicProductSoldout, fn, false)
}

// WaitAsync blocks until all async handlers have finished. Used in tests
// and on shutdown.
func (b *Bus) WaitAsync() {
	b.bus.WaitAsync()
}
