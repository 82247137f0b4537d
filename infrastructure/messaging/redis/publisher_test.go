package redis

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"fluxo-backend/domain/events"
)

func newTestPublisher(t *testing.T) (*Publisher, *goredis.Client) {
	t.Helper()
	server := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: server.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewPublisher(client, "fluxo.flow-events", zap.NewNop()), client
}

func TestPublish(t *testing.T) {
	publisher, client := newTestPublisher(t)

	sub := client.Subscribe(context.Background(), "fluxo.flow-events")
	t.Cleanup(func() { _ = sub.Close() })
	_, err := sub.Receive(context.Background())
	require.NoError(t, err)

	event := events.NewNodeAdded("flow-1", "node-1", "message", time.Now().UTC())
	require.NoError(t, publisher.Publish(context.Background(), event))

	select {
	case msg := <-sub.Channel():
		var env struct {
			Event       string `json:"event"`
			AggregateID string `json:"aggregateId"`
			Payload     struct {
				NodeID   string `json:"nodeId"`
				NodeType string `json:"nodeType"`
			} `json:"payload"`
		}
		require.NoError(t, json.Unmarshal([]byte(msg.Payload), &env))
		assert.Equal(t, "flow.node_added", env.Event)
		assert.Equal(t, "flow-1", env.AggregateID)
		assert.Equal(t, "node-1", env.Payload.NodeID)
		assert.Equal(t, "message", env.Payload.NodeType)
	case <-time.After(2 * time.Second):
		t.Fatal("no message received")
	}
}

func TestPublishBatchOrder(t *testing.T) {
	publisher, client := newTestPublisher(t)

	sub := client.Subscribe(context.Background(), "fluxo.flow-events")
	t.Cleanup(func() { _ = sub.Close() })
	_, err := sub.Receive(context.Background())
	require.NoError(t, err)

	now := time.Now().UTC()
	require.NoError(t, publisher.Publish(context.Background(),
		events.NewNodesConnected("flow-1", "e1", "n1", "n2", now),
		events.NewFlowSaved("flow-1", 2, 1, now),
	))

	var got []string
	for len(got) < 2 {
		select {
		case msg := <-sub.Channel():
			var env struct {
				Event string `json:"event"`
			}
			require.NoError(t, json.Unmarshal([]byte(msg.Payload), &env))
			got = append(got, env.Event)
		case <-time.After(2 * time.Second):
			t.Fatal("missing messages")
		}
	}
	assert.Equal(t, []string{"flow.nodes_connected", "flow.saved"}, got)
}

func TestNoopPublisher(t *testing.T) {
	assert.NoError(t, NoopPublisher{}.Publish(context.Background(),
		events.NewFlowCreated("flow-1", "user-1", "x", time.Now().UTC())))
}
