package stream

import (
	"testing"
	"time"
)

func TestHubPublishToSubscriber(t *testing.T) {
	hub := NewHub()
	sub := hub.Subscribe("inventory")
	defer hub.Unsubscribe(sub.ID)

	hub.Publish(Event{Collection: "inventory", Action: ActionUpdated, EntityID: "item-1"})

	select {
	case evt := <-sub.C:
		if evt.EntityID != "item-1" || evt.Action != ActionUpdated {
			t.Errorf("got %+v", evt)
		}
		if evt.At.IsZero() {
			t.Error("event timestamp not stamped")
		}
	case <-time.After(time.Second):
		t.Fatal("no event delivered")
	}
}

func TestHubCollectionFilter(t *testing.T) {
	hub := NewHub()
	sub := hub.Subscribe("recipes")
	defer hub.Unsubscribe(sub.ID)

	hub.Publish(Event{Collection: "inventory", Action: ActionCreated, EntityID: "x"})

	select {
	case evt := <-sub.C:
		t.Fatalf("filtered subscriber got %+v", evt)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestHubEmptyFilterReceivesAll(t *testing.T) {
	hub := NewHub()
	sub := hub.Subscribe()
	defer hub.Unsubscribe(sub.ID)

	hub.Publish(Event{Collection: "vendors", Action: ActionDeleted, EntityID: "v-1"})

	select {
	case evt := <-sub.C:
		if evt.Collection != "vendors" {
			t.Errorf("collection = %s, want vendors", evt.Collection)
		}
	case <-time.After(time.Second):
		t.Fatal("no event delivered")
	}
}

func TestHubUnsubscribeClosesChannel(t *testing.T) {
	hub := NewHub()
	sub := hub.Subscribe()
	hub.Unsubscribe(sub.ID)

	if _, ok := <-sub.C; ok {
		t.Error("channel still open after unsubscribe")
	}

	// Publishing after unsubscribe must not panic.
	hub.Publish(Event{Collection: "inventory", Action: ActionCreated, EntityID: "y"})
}

func TestHubSlowSubscriberDoesNotBlock(t *testing.T) {
	hub := NewHub()
	sub := hub.Subscribe()
	defer hub.Unsubscribe(sub.ID)

	done := make(chan struct{})
	go func() {
		for i := 0; i < 200; i++ {
			hub.Publish(Event{Collection: "inventory", Action: ActionUpdated, EntityID: "z"})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("publisher blocked on slow subscriber")
	}
}
