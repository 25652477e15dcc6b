package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvent_IsActive(t *testing.T) {
	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		release  time.Time
		expected bool
	}{
		{name: "released yesterday", release: now.Add(-24 * time.Hour), expected: true},
		{name: "released now", release: now, expected: true},
		{name: "released tomorrow", release: now.Add(24 * time.Hour), expected: false},
		{name: "never released", expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := Event{ReleaseDate: NewTimestamp(tt.release)}
			assert.Equal(t, tt.expected, e.IsActive(now))
		})
	}
}

func TestEventDetail_Decode(t *testing.T) {
	body := `{
		"event": {"_id": "e1", "eventName": "Concert", "eventStartDate": "2024-06-01T00:00:00Z",
			"eventEndDate": 1719792000000, "payments": ["信用卡"], "tags": ["music"]},
		"sessions": [{"sessionId": "s1", "startDate": "1717200000000", "startTime": "19:30",
			"endTime": "21:30", "place": "台北小巨蛋", "prices": [{"area": "特A區", "price": 3600}]}]
	}`

	var detail EventDetail
	require.NoError(t, json.Unmarshal([]byte(body), &detail))

	assert.Equal(t, "Concert", detail.Event.Name)
	assert.Equal(t, []Payment{PaymentCreditCard}, detail.Event.Payments)
	assert.Equal(t, "2024-06-01 ~ 2024-07-01", detail.Event.SaleWindow(time.UTC))
	require.Len(t, detail.Sessions, 1)
	assert.Equal(t, int64(1717200000000), detail.Sessions[0].StartDate.UnixMilli())
	assert.Equal(t, 3600.0, detail.Sessions[0].Prices[0].Price)
}

func TestFlexibleID(t *testing.T) {
	var users []User
	require.NoError(t, json.Unmarshal([]byte(`[{"id": 7, "name": "a"}, {"id": "u8", "name": "b"}]`), &users))
	assert.Equal(t, FlexibleID("7"), users[0].ID)
	assert.Equal(t, FlexibleID("u8"), users[1].ID)
}

func TestEventWrite_HasImages(t *testing.T) {
	w := EventWrite{IntroImage: "https://cdn/intro.png"}
	assert.False(t, w.HasImages())
	w.BannerImage = "https://cdn/banner.png"
	assert.True(t, w.HasImages())
}
