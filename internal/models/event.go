package models

import (
	"strings"
	"time"
)

// Event is an event as listed and returned by the ticketing API
type Event struct {
	ID          string     `json:"_id"`
	Name        string     `json:"eventName"`
	Intro       string     `json:"eventIntro"`
	Content     string     `json:"eventContent"`
	IntroImage  string     `json:"introImage"`
	BannerImage string     `json:"bannerImage"`
	Organizer   string     `json:"organizer"`
	StartDate   Timestamp  `json:"eventStartDate"`
	EndDate     Timestamp  `json:"eventEndDate"`
	ReleaseDate Timestamp  `json:"releaseDate"`
	Payments    []Payment  `json:"payments"`
	Tags        []string   `json:"tags"`
	UpdatedAt   *Timestamp `json:"updatedAt,omitempty"`
}

// IsActive reports whether the event has been released at now
func (e *Event) IsActive(now time.Time) bool {
	return !e.ReleaseDate.IsZero() && !e.ReleaseDate.After(now)
}

// SaleWindow formats the sale window for the events table
func (e *Event) SaleWindow(loc *time.Location) string {
	return e.StartDate.In(loc).Format("2006-01-02") + " ~ " + e.EndDate.In(loc).Format("2006-01-02")
}

// Session is one performance of an event
type Session struct {
	ID        string    `json:"sessionId"`
	StartDate Timestamp `json:"startDate"`
	StartTime string    `json:"startTime"`
	EndTime   string    `json:"endTime"`
	Place     string    `json:"place"`
	Prices    []Price   `json:"prices"`
}

// Price is the price of one seating area
type Price struct {
	Area  string  `json:"area"`
	Price float64 `json:"price"`
}

// EventDetail is the aggregate behind event/{id}
type EventDetail struct {
	Event    Event     `json:"event"`
	Sessions []Session `json:"sessions"`
}

// EventRange is the sale window in epoch milliseconds
type EventRange struct {
	StartDate int64 `json:"startDate"`
	EndDate   int64 `json:"endDate"`
}

// TimeRange is a performance time window in epoch milliseconds
type TimeRange struct {
	StartTime int64 `json:"startTime"`
	EndTime   int64 `json:"endTime"`
}

// SessionWrite is one session of an event write
type SessionWrite struct {
	Date      int64     `json:"date"`
	TimeRange TimeRange `json:"timeRange"`
	Place     string    `json:"place"`
}

// EventWrite is the body of the create and update event calls.
// Seat quantities are not part of the API contract.
type EventWrite struct {
	Name        string         `json:"name"`
	Intro       string         `json:"intro"`
	Content     string         `json:"content"`
	IntroImage  string         `json:"introImage"`
	BannerImage string         `json:"bannerImage"`
	Organizer   string         `json:"organizer"`
	EventRange  EventRange     `json:"eventRange"`
	ReleaseDate int64          `json:"releaseDate"`
	Payments    []Payment      `json:"payments"`
	Tags        []string       `json:"tags"`
	Sessions    []SessionWrite `json:"sessions"`
	Prices      []Price        `json:"prices"`
}

// HasImages reports whether both image URLs are set
func (w *EventWrite) HasImages() bool {
	return strings.TrimSpace(w.IntroImage) != "" && strings.TrimSpace(w.BannerImage) != ""
}
