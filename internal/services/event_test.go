package services

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"tickets-go-admin/internal/clock"
	"tickets-go-admin/internal/models"
)

func TestEventServiceList(t *testing.T) {
	api := new(MockAPI)
	now := time.Date(2024, 5, 20, 12, 0, 0, 0, time.UTC)
	service := NewEventService(api, clock.NewFixed(now))

	updated := models.Timestamp{Time: time.Date(2024, 5, 19, 8, 30, 15, 0, time.UTC)}
	events := make([]models.Event, 12)
	for i := range events {
		events[i] = models.Event{
			ID:          fmt.Sprintf("ev%d", i),
			Name:        fmt.Sprintf("Event %d", i),
			StartDate:   models.Timestamp{Time: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)},
			EndDate:     models.Timestamp{Time: time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC)},
			ReleaseDate: models.Timestamp{Time: now.Add(time.Duration(i-5) * time.Hour)},
			Tags:        []string{"Rock"},
		}
	}
	events[0].UpdatedAt = &updated
	api.On("ListEvents", mock.Anything).Return(events, nil)

	page, err := service.List(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 12, page.Total)
	assert.Equal(t, 2, page.TotalPages)
	require.Len(t, page.Items, 10)

	first := page.Items[0]
	assert.Equal(t, "ev0", first.ID)
	assert.Equal(t, "2024-06-01 ~ 2024-06-30", first.SaleWindow)
	assert.True(t, first.Active)
	assert.Equal(t, "2024-05-19 08:30:15", first.UpdatedAt)
	assert.True(t, page.Items[5].Active)
	assert.False(t, page.Items[6].Active)
	assert.Empty(t, page.Items[1].UpdatedAt)

	page, err = service.List(context.Background(), 2)
	require.NoError(t, err)
	assert.Len(t, page.Items, 2)
}

func TestEventServiceListError(t *testing.T) {
	api := new(MockAPI)
	service := NewEventService(api, clock.NewFixed(time.Now()))
	boom := errors.New("offline")
	api.On("ListEvents", mock.Anything).Return(nil, boom)

	_, err := service.List(context.Background(), 1)
	assert.ErrorIs(t, err, boom)
}

func TestEventServiceDelete(t *testing.T) {
	api := new(MockAPI)
	service := NewEventService(api, clock.NewFixed(time.Now()))
	api.On("DeleteEvents", mock.Anything, []string{"ev1"}).Return(nil)

	require.NoError(t, service.Delete(context.Background(), "ev1"))
	api.AssertExpectations(t)
}
