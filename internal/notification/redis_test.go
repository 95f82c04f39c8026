package notification

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"loan-origination-backend/internal/domain/application"
)

func TestRedisNotifier_PublishesEvent(t *testing.T) {
	s := miniredis.RunT(t)
	defer s.Close()

	rdb := redis.NewClient(&redis.Options{Addr: s.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	sub := rdb.Subscribe(context.Background(), "loan-events")
	t.Cleanup(func() { _ = sub.Close() })
	if _, err := sub.Receive(context.Background()); err != nil {
		t.Fatalf("subscribe: %v", err)
	}

	n := NewRedisNotifier(rdb, "loan-events")
	app := &application.Application{
		ApplicationNumber: "LA-20260829-AB12CD34EF",
		CustomerID:        "cccccccccccccccccccccccccccccccc",
		Status:            application.StatusApproved,
	}
	if err := n.NotifyStatusChange(context.Background(), app); err != nil {
		t.Fatalf("NotifyStatusChange err: %v", err)
	}

	select {
	case msg := <-sub.Channel():
		var evt StatusChanged
		if err := json.Unmarshal([]byte(msg.Payload), &evt); err != nil {
			t.Fatalf("unmarshal payload: %v", err)
		}
		if evt.ApplicationNumber != app.ApplicationNumber {
			t.Errorf("application number = %q", evt.ApplicationNumber)
		}
		if evt.Status != application.StatusApproved {
			t.Errorf("status = %q", evt.Status)
		}
		if evt.StatusLabel != "Approved" {
			t.Errorf("status label = %q", evt.StatusLabel)
		}
		if evt.EventID == "" {
			t.Error("event id is empty")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("no event received")
	}
}
