package kafka

import (
	"encoding/json"
	"math"
	"testing"
	"time"

	"github.com/couchcryptid/fire-behaviour-advisory/internal/domain"
	"github.com/google/uuid"
	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapMessageToRawEvent(t *testing.T) {
	now := time.Now()
	msg := kafkago.Message{
		Key:       []byte("322:C2"),
		Value:     []byte(`{"station_code":322}`),
		Topic:     "fba-station-inputs",
		Partition: 2,
		Offset:    42,
		Time:      now,
		Headers: []kafkago.Header{
			{Key: "source", Value: []byte("wf1")},
		},
	}

	raw := mapMessageToRawEvent(msg)

	assert.Equal(t, []byte("322:C2"), raw.Key)
	assert.JSONEq(t, `{"station_code":322}`, string(raw.Value))
	assert.Equal(t, "fba-station-inputs", raw.Topic)
	assert.Equal(t, 2, raw.Partition)
	assert.Equal(t, int64(42), raw.Offset)
	assert.Equal(t, now, raw.Timestamp)
	assert.Equal(t, "wf1", raw.Headers["source"])
	assert.Nil(t, raw.Commit)
}

func TestMapMessageToRawEvent_NoHeaders(t *testing.T) {
	raw := mapMessageToRawEvent(kafkago.Message{Value: []byte(`{}`)})
	assert.NotNil(t, raw.Headers)
	assert.Empty(t, raw.Headers)
}

func TestSerializeToMessage(t *testing.T) {
	now := time.Date(2023, 7, 15, 20, 0, 0, 0, time.UTC)
	adv := domain.FireBehaviourAdvisory{
		StationCode:           322,
		FuelType:              domain.C2,
		HFI:                   22003.2,
		FireType:              domain.ContinuousCrown,
		CriticalHoursHFI4000:  &domain.CriticalHours{Start: 7, End: 0},
		CriticalHoursHFI10000: nil,
		ComputedAt:            now,
	}

	msg, err := serializeToMessage(adv)
	require.NoError(t, err)

	assert.Equal(t, []byte("322:C2"), msg.Key)
	assert.Contains(t, string(msg.Value), `"fire_type":"CC"`)
	assert.Contains(t, string(msg.Value), `"critical_hours_hfi_10000":null`)
	require.Len(t, msg.Headers, 3)
	assert.Equal(t, "station_code", msg.Headers[0].Key)
	assert.Equal(t, []byte("322"), msg.Headers[0].Value)
	assert.Equal(t, "advisory_id", msg.Headers[1].Key)
	_, err = uuid.Parse(string(msg.Headers[1].Value))
	require.NoError(t, err)
	assert.Equal(t, "computed_at", msg.Headers[2].Key)
	assert.Equal(t, []byte(now.Format(time.RFC3339)), msg.Headers[2].Value)

	var decoded domain.FireBehaviourAdvisory
	require.NoError(t, json.Unmarshal(msg.Value, &decoded))
	assert.Equal(t, adv.CriticalHoursHFI4000, decoded.CriticalHoursHFI4000)
}

func TestSerializeToMessage_FreshIDPerMessage(t *testing.T) {
	adv := domain.FireBehaviourAdvisory{StationCode: 1, FuelType: domain.D1}

	a, err := serializeToMessage(adv)
	require.NoError(t, err)
	b, err := serializeToMessage(adv)
	require.NoError(t, err)

	assert.NotEqual(t, a.Headers[1].Value, b.Headers[1].Value)
}

func TestSerializeToMessage_Unencodable(t *testing.T) {
	_, err := serializeToMessage(domain.FireBehaviourAdvisory{HFI: math.NaN()})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "serialize advisory")
}
