package service

import (
	"context"
	"testing"

	"github.com/spec-kit/messaging-service/internal/events"
)

func TestReadAllOnlyTouchesCallerNotifications(t *testing.T) {
	f := newFixture(t)
	ids := f.seedUsers(t, 3)
	ctx := context.Background()

	for _, receiver := range ids[1:] {
		if _, err := f.message.Send(ctx, ids[0], SendMessageInput{Text: "hi", ReceiverID: receiver}); err != nil {
			t.Fatalf("send: %v", err)
		}
	}

	read, err := f.notification.ReadAll(ctx, ids[1])
	if err != nil {
		t.Fatalf("read all: %v", err)
	}
	if len(read) != 1 || read[0].UserID != ids[1] {
		t.Fatalf("unexpected notifications %+v", read)
	}

	others, err := f.notifications.ListByUser(ctx, ids[2])
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(others) != 1 || others[0].Read {
		t.Fatalf("other user's notification must stay unread: %+v", others)
	}

	empty, err := f.notification.ReadAll(ctx, ids[0])
	if err != nil {
		t.Fatalf("read all: %v", err)
	}
	if len(empty) != 0 {
		t.Fatalf("sender has no notifications, got %d", len(empty))
	}
}

func TestMessageSentHandlerRejectsUnknownPayload(t *testing.T) {
	f := newFixture(t)
	err := f.notification.handleMessageSent(context.Background(), events.Event{
		Type:    events.EventMessageSent,
		Payload: "not a payload",
	})
	if err == nil {
		t.Fatal("expected payload type error")
	}
	if len(f.publisher.sent) != 0 {
		t.Fatal("nothing may be published for a malformed event")
	}
}
