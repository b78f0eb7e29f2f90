package notify_test

import (
	"context"
	"encoding/json"
	"os"
	"testing"
	"time"

	redis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stockflow-api/internal/application/fulfillment"
	"github.com/jhoicas/stockflow-api/internal/infrastructure/notify"
)

func TestRedisNotifier_PublishesNotice(t *testing.T) {
	addr := os.Getenv("STOCKFLOW_TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("STOCKFLOW_TEST_REDIS_ADDR no definido")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	n := notify.NewRedisNotifier(addr, "", 0)
	defer n.Close()
	require.NoError(t, n.Ping(ctx))

	sub := redis.NewClient(&redis.Options{Addr: addr})
	defer sub.Close()
	ps := sub.Subscribe(ctx, notify.ChannelFulfillmentCreated)
	defer ps.Close()
	_, err := ps.Receive(ctx)
	require.NoError(t, err)

	notice := fulfillment.Notice{
		CompanyID:     "company-a",
		InvoiceID:     "invoice-1",
		InvoiceType:   "SALES",
		FulfillmentID: "shipment-1",
		Kind:          "OUTBOUND_SHIPMENT",
		Status:        "DRAFT",
	}
	require.NoError(t, n.FulfillmentCreated(ctx, notice))

	msg, err := ps.ReceiveMessage(ctx)
	require.NoError(t, err)
	var got fulfillment.Notice
	require.NoError(t, json.Unmarshal([]byte(msg.Payload), &got))
	assert.Equal(t, notice, got)
}
