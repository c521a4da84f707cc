package events

import (
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBus_PublishReachesSubscriber(t *testing.T) {
	bus := NewBus()

	var calls atomic.Int32
	require.NoError(t, bus.SubscribeProductSoldout(func() {
		calls.Add(1)
	}))

	bus.PublishProductSoldout()
	bus.PublishProductSoldout()
	bus.WaitAsync()

	assert.Equal(t, int32(2), calls.Load())
}
