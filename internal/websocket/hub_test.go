package websocket

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hrms-portal/internal/event"
	"hrms-portal/internal/model"
)

func TestHubBroadcastsBusEvents(t *testing.T) {
	bus := event.NewBus(nil)
	hub := NewHub(bus, nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go hub.Run(ctx)

	srv := httptest.NewServer(http.HandlerFunc(NewServer(hub, nil).ServeWS))
	defer srv.Close()

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http"), nil)
	require.NoError(t, err)
	defer conn.Close()

	// Registration is asynchronous; publish until the client sees one.
	want := event.New(event.TypeRecordCreated, string(model.KindBenefit), "b-1", nil, "u-1")
	got := make(chan event.Event, 1)
	go func() {
		var e event.Event
		if err := conn.ReadJSON(&e); err == nil {
			got <- e
		}
	}()

	deadline := time.After(2 * time.Second)
	tick := time.NewTicker(20 * time.Millisecond)
	defer tick.Stop()
	for {
		select {
		case e := <-got:
			assert.Equal(t, event.TypeRecordCreated, e.Type)
			assert.Equal(t, "b-1", e.Record.ID)
			return
		case <-tick.C:
			bus.Publish(want)
		case <-deadline:
			t.Fatal("no event received")
		}
	}
}

func TestServerRejectsUnknownOrigin(t *testing.T) {
	hub := NewHub(event.NewBus(nil), nil)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go hub.Run(ctx)

	srv := httptest.NewServer(http.HandlerFunc(NewServer(hub, []string{"http://portal.local"}).ServeWS))
	defer srv.Close()

	header := http.Header{"Origin": []string{"http://evil.local"}}
	_, resp, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http"), header)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}
