package messaging

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
	"github.com/pixil98/go-testutil"
)

func TestNatsServer_NotStarted(t *testing.T) {
	srv, err := NewNatsServer(WithPort(-1))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	testutil.AssertErrorContains(t, srv.Publish("x", nil), "not started")
	_, err = srv.Request("x", nil, time.Millisecond)
	testutil.AssertErrorContains(t, err, "not started")
	_, err = srv.Respond("x", func([]byte) []byte { return nil })
	testutil.AssertErrorContains(t, err, "not started")
}

func TestNatsServer_UseWhileStarting(t *testing.T) {
	srv, err := NewNatsServer(WithPort(-1))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	stop := make(chan struct{})
	polled := make(chan struct{})
	go func() {
		defer close(polled)
		for {
			select {
			case <-stop:
				return
			default:
				_ = srv.Publish("essentials.test", []byte("x"))
			}
		}
	}()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Start(ctx) }()

	select {
	case <-srv.Ready():
	case <-time.After(10 * time.Second):
		t.Fatal("timed out waiting for server")
	}
	if err := srv.Publish("essentials.test", []byte("y")); err != nil {
		t.Errorf("unexpected error after ready: %v", err)
	}

	close(stop)
	<-polled
	cancel()
	if err := <-done; err != nil {
		t.Errorf("server stopped with error: %v", err)
	}
}

func TestNatsPublisher_PublishToPlayer(t *testing.T) {
	srv := startServer(t)
	id := uuid.New()

	conn, err := nats.Connect(srv.ClientURL())
	if err != nil {
		t.Fatalf("connecting: %v", err)
	}
	defer conn.Close()

	sub, err := conn.SubscribeSync(PlayerSubject(id))
	if err != nil {
		t.Fatalf("subscribing: %v", err)
	}
	if err := conn.Flush(); err != nil {
		t.Fatalf("flushing: %v", err)
	}

	if err := NewNatsPublisher(srv).PublishToPlayer(id, []byte("hello")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	msg, err := sub.NextMsg(5 * time.Second)
	if err != nil {
		t.Fatalf("waiting for message: %v", err)
	}
	testutil.AssertEqual(t, "data", string(msg.Data), "hello")
}

func TestRemoteHost_NoResponder(t *testing.T) {
	srv := startServer(t)
	host := NewRemoteHost(srv, 100*time.Millisecond)

	_, ok := host.ResolveWorld("overworld")
	testutil.AssertEqual(t, "resolved", ok, false)
}
