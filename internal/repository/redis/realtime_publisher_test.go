package redis_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/caribdigital/coralledgerblue-sub004/internal/domain"
	redisRepo "github.com/caribdigital/coralledgerblue-sub004/internal/repository/redis"
)

// TestRealtimePublisher_GlobalAndAreaChannels verifies an area-scoped alert
// reaches both the global channel and the area channel.
func TestRealtimePublisher_GlobalAndAreaChannels(t *testing.T) {
	client := getTestRedisClient(t)
	defer client.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	areaID := uuid.New()
	areaChannel := domain.ChannelAlertsArea(areaID)

	sub := client.Subscribe(ctx, domain.ChannelAlertsAll, areaChannel)
	defer sub.Close()

	// Wait for the subscriptions to register before publishing.
	_, err := sub.Receive(ctx)
	require.NoError(t, err)
	_, err = sub.Receive(ctx)
	require.NoError(t, err)

	pub := redisRepo.NewRealtimePublisher(client, zap.NewNop())
	alert := &domain.Alert{
		ID:              uuid.New(),
		RuleID:          uuid.New(),
		Type:            domain.AlertTypeVesselInMPA,
		Severity:        domain.SeverityCritical,
		Title:           "Vessel inside no-take zone",
		ProtectedAreaID: &areaID,
		CreatedAt:       time.Now().UTC(),
	}

	err = pub.PublishAlert(ctx, domain.NewAlertEvent(alert))
	require.NoError(t, err)

	// One message per channel.
	got := map[string]bool{}
	for i := 0; i < 2; i++ {
		select {
		case msg := <-sub.Channel():
			got[msg.Channel] = true

			var event domain.AlertEvent
			err = json.Unmarshal([]byte(msg.Payload), &event)
			require.NoError(t, err)
			assert.Equal(t, "alert.created", event.Event)
			require.NotNil(t, event.Alert)
			assert.Equal(t, alert.ID, event.Alert.ID)
		case <-time.After(3 * time.Second):
			t.Fatal("Timeout waiting for published alert")
		}
	}

	assert.True(t, got[domain.ChannelAlertsAll], "global channel must receive the event")
	assert.True(t, got[areaChannel], "area channel must receive the event")
}

// TestRealtimePublisher_NoAreaPublishesGlobalOnly exercises alerts that are
// not scoped to any protected area.
func TestRealtimePublisher_NoAreaPublishesGlobalOnly(t *testing.T) {
	client := getTestRedisClient(t)
	defer client.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	sub := client.Subscribe(ctx, domain.ChannelAlertsAll)
	defer sub.Close()

	_, err := sub.Receive(ctx)
	require.NoError(t, err)

	pub := redisRepo.NewRealtimePublisher(client, zap.NewNop())
	alert := &domain.Alert{
		ID:        uuid.New(),
		RuleID:    uuid.New(),
		Type:      domain.AlertTypeVesselDark,
		Severity:  domain.SeverityWarning,
		Title:     "Vessel went dark",
		CreatedAt: time.Now().UTC(),
	}

	err = pub.PublishAlert(ctx, domain.NewAlertEvent(alert))
	require.NoError(t, err)

	select {
	case msg := <-sub.Channel():
		assert.Equal(t, domain.ChannelAlertsAll, msg.Channel)
	case <-time.After(3 * time.Second):
		t.Fatal("Timeout waiting for published alert")
	}
}
