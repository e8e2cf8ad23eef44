package bus

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublishSubscribe(t *testing.T) {
	b := New()
	ch, unsubscribe := b.Subscribe(TopicRefresh)
	other, unsubscribeOther := b.Subscribe("other")
	defer unsubscribeOther()

	assert.Equal(t, 1, b.Refresh("admin"))

	ev := <-ch
	assert.Equal(t, TopicRefresh, ev.Topic)
	assert.Equal(t, "admin", ev.Source)
	assert.False(t, ev.At.IsZero())
	assert.Len(t, other, 0)

	unsubscribe()
	unsubscribe()
	_, open := <-ch
	assert.False(t, open)
	assert.Equal(t, 0, b.Refresh("admin"))
	assert.Equal(t, 1, b.Subscribers())
}

func TestPublish_FullBufferDrops(t *testing.T) {
	b := New()
	ch, unsubscribe := b.Subscribe(TopicRefresh)
	defer unsubscribe()

	for i := 0; i < bufferSize; i++ {
		require.Equal(t, 1, b.Refresh("x"))
	}
	assert.Equal(t, 0, b.Refresh("x"))
	assert.Len(t, ch, bufferSize)
}

func TestClose(t *testing.T) {
	b := New()
	ch, unsubscribe := b.Subscribe(TopicRefresh)
	b.Close()

	_, open := <-ch
	assert.False(t, open)
	unsubscribe()

	late, _ := b.Subscribe(TopicRefresh)
	_, open = <-late
	assert.False(t, open)
	b.Close()
}
