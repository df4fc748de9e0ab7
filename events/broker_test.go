package events

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func receive(t *testing.T, sub *Subscription) (msg Message, ok bool) {
	t.Helper()
	select {
	case msg, ok = <-sub.C:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for message")
	}
	return
}

func TestBrokerFanOut(t *testing.T) {
	b := NewBroker(8)
	defer b.Close()
	s1 := b.Subscribe("simulation")
	s2 := b.Subscribe("simulation")
	other := b.Subscribe("config")

	b.Publish("simulation", "started")
	b.Publish("simulation", "finished")
	for _, sub := range []*Subscription{s1, s2} {
		msg, ok := receive(t, sub)
		require.True(t, ok)
		assert.Equal(t, Message{Topic: "simulation", Body: "started"}, msg)
		msg, ok = receive(t, sub)
		require.True(t, ok)
		assert.Equal(t, "finished", msg.Body)
	}
	select {
	case msg := <-other.C:
		t.Fatalf("unexpected message on other topic: %v", msg)
	default:
	}
	// Publishing to a topic nobody listens on is harmless
	b.Publish("nobody", "hello")
}

func TestBrokerPrunesSlowSubscribers(t *testing.T) {
	b := NewBroker(1)
	defer b.Close()
	slow := b.Subscribe("simulation")
	fast := b.Subscribe("simulation")

	b.Publish("simulation", "1")
	msg, ok := receive(t, fast)
	require.True(t, ok)
	assert.Equal(t, "1", msg.Body)
	// slow still holds "1", so "2" cannot be delivered and it is dropped
	b.Publish("simulation", "2")
	msg, ok = receive(t, fast)
	require.True(t, ok)
	assert.Equal(t, "2", msg.Body)

	msg, ok = receive(t, slow)
	require.True(t, ok)
	assert.Equal(t, "1", msg.Body)
	_, ok = receive(t, slow)
	assert.False(t, ok)
}

func TestBrokerUnsubscribeAndClose(t *testing.T) {
	b := NewBroker(4)
	sub := b.Subscribe("t")
	b.Unsubscribe(sub)
	_, ok := receive(t, sub)
	assert.False(t, ok)
	b.Unsubscribe(sub) // second call is a no-op

	live := b.Subscribe("t")
	b.Close()
	_, ok = receive(t, live)
	assert.False(t, ok)

	// Everything after Close returns immediately
	b.Close()
	b.Publish("t", "late")
	late := b.Subscribe("t")
	_, ok = receive(t, late)
	assert.False(t, ok)
	b.Unsubscribe(late)
}
