package events

import (
	"context"
	"errors"
	"testing"
)

func TestDispatcherDeliversToSubscribers(t *testing.T) {
	d := NewInMemoryDispatcher()

	var got []string
	d.Subscribe(EventMessageSent, func(_ context.Context, e Event) error {
		got = append(got, "first:"+e.ID)
		return errors.New("first failed")
	})
	d.Subscribe(EventMessageSent, func(_ context.Context, e Event) error {
		got = append(got, "second:"+e.ID)
		return nil
	})
	d.Subscribe(EventType("other"), func(context.Context, Event) error {
		t.Error("unrelated handler invoked")
		return nil
	})

	err := d.Publish(context.Background(), Event{ID: "e1", Type: EventMessageSent})
	if err == nil {
		t.Fatal("expected handler failure to be reported")
	}
	if len(got) != 2 || got[0] != "first:e1" || got[1] != "second:e1" {
		t.Fatalf("unexpected delivery order %v", got)
	}
}

func TestDispatcherWithoutSubscribers(t *testing.T) {
	d := NewInMemoryDispatcher()
	if err := d.Publish(context.Background(), Event{Type: EventMessageSent}); err != nil {
		t.Fatalf("publish: %v", err)
	}
}
