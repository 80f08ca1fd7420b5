package dataclient

import "testing"

func TestBusCoalescesSameTopicBurst(t *testing.T) {
	bus := NewBus()
	defer bus.Close()

	count := 0
	bus.Subscribe("engineers-updated", func() { count++ })

	for i := 0; i < 5; i++ {
		bus.Notify("engineers-updated")
	}
	bus.Flush()

	if count != 1 {
		t.Fatalf("expected 1 delivery, got %d", count)
	}
}

func TestBusDeliversInSubscriptionOrder(t *testing.T) {
	bus := NewBus()
	defer bus.Close()

	var got []string
	bus.Subscribe("t", func() { got = append(got, "first") })
	bus.Subscribe("t", func() { got = append(got, "second") })
	bus.Subscribe("t", func() { got = append(got, "third") })

	bus.Notify("t")
	bus.Flush()

	if len(got) != 3 || got[0] != "first" || got[1] != "second" || got[2] != "third" {
		t.Fatalf("unexpected delivery order %v", got)
	}
}

func TestBusDistinctTopics(t *testing.T) {
	bus := NewBus()
	defer bus.Close()

	a, b := 0, 0
	bus.Subscribe("a", func() { a++ })
	bus.Subscribe("b", func() { b++ })

	bus.Notify("a")
	bus.Notify("b")
	bus.Notify("a")
	bus.Flush()

	if a != 1 || b != 1 {
		t.Fatalf("expected one delivery each, got a=%d b=%d", a, b)
	}
}

func TestBusUnsubscribe(t *testing.T) {
	bus := NewBus()
	defer bus.Close()

	count := 0
	unsub := bus.Subscribe("t", func() { count++ })
	unsub()

	bus.Notify("t")
	bus.Flush()

	if count != 0 {
		t.Fatalf("unsubscribed listener still delivered: %d", count)
	}
}

func TestBusNotifyFromCallback(t *testing.T) {
	bus := NewBus()
	defer bus.Close()

	second := 0
	bus.Subscribe("first", func() { bus.Notify("second") })
	bus.Subscribe("second", func() { second++ })

	bus.Notify("first")
	bus.Flush()

	if second != 1 {
		t.Fatalf("notification queued from callback not delivered: %d", second)
	}
}

func TestBusNotifyAfterClose(t *testing.T) {
	bus := NewBus()

	count := 0
	bus.Subscribe("t", func() { count++ })
	bus.Close()

	bus.Notify("t")
	bus.Flush()

	if count != 0 {
		t.Fatalf("delivery after close: %d", count)
	}
}
