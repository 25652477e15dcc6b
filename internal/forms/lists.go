package forms

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// Every list operation assigns a new slice to the draft; slices handed out
// earlier are never written to.

// AddSession appends an empty session at the default venue
func (d *EventDraft) AddSession() {
	sessions := make([]SessionDraft, len(d.Sessions), len(d.Sessions)+1)
	copy(sessions, d.Sessions)
	d.Sessions = append(sessions, SessionDraft{Key: uuid.NewString(), Place: DefaultPlace()})
}

// DuplicateSessionAt appends a copy of session i at the end of the list
func (d *EventDraft) DuplicateSessionAt(i int) error {
	if i < 0 || i >= len(d.Sessions) {
		return fmt.Errorf("duplicate session %d: %w", i, ErrIndexOutOfRange)
	}
	dup := d.Sessions[i]
	dup.Key = uuid.NewString()

	sessions := make([]SessionDraft, len(d.Sessions), len(d.Sessions)+1)
	copy(sessions, d.Sessions)
	d.Sessions = append(sessions, dup)
	return nil
}

// RemoveSessionAt removes session i
func (d *EventDraft) RemoveSessionAt(i int) error {
	if i < 0 || i >= len(d.Sessions) {
		return fmt.Errorf("remove session %d: %w", i, ErrIndexOutOfRange)
	}
	sessions := make([]SessionDraft, 0, len(d.Sessions)-1)
	sessions = append(sessions, d.Sessions[:i]...)
	d.Sessions = append(sessions, d.Sessions[i+1:]...)
	return nil
}

// UpdateSessionAt sets one field of session i. The timeRange field takes
// "HH:mm~HH:mm" and sets both times at once.
func (d *EventDraft) UpdateSessionAt(i int, field, value string) error {
	if i < 0 || i >= len(d.Sessions) {
		return fmt.Errorf("update session %d: %w", i, ErrIndexOutOfRange)
	}
	s := d.Sessions[i]
	switch field {
	case "date":
		s.Date = value
	case "startTime":
		s.StartTime = value
	case "endTime":
		s.EndTime = value
	case "timeRange":
		start, end, ok := strings.Cut(value, "~")
		if !ok {
			return fmt.Errorf("update session %d time range %q: %w", i, value, ErrInvalidValue)
		}
		s.StartTime = strings.TrimSpace(start)
		s.EndTime = strings.TrimSpace(end)
	case "place":
		s.Place = value
	default:
		return fmt.Errorf("update session %d %q: %w", i, field, ErrUnknownField)
	}

	sessions := make([]SessionDraft, len(d.Sessions))
	copy(sessions, d.Sessions)
	sessions[i] = s
	d.Sessions = sessions
	return nil
}

func (d *EventDraft) nextTierID() int {
	id := d.NextTierID
	d.NextTierID++
	return id
}

// AddSeatTier appends an empty tier
func (d *EventDraft) AddSeatTier() {
	tiers := make([]SeatTierDraft, len(d.SeatTiers), len(d.SeatTiers)+1)
	copy(tiers, d.SeatTiers)
	d.SeatTiers = append(tiers, SeatTierDraft{ID: d.nextTierID()})
}

// DuplicateSeatTierAt appends a copy of tier i at the end of the list
func (d *EventDraft) DuplicateSeatTierAt(i int) error {
	if i < 0 || i >= len(d.SeatTiers) {
		return fmt.Errorf("duplicate seat tier %d: %w", i, ErrIndexOutOfRange)
	}
	dup := d.SeatTiers[i]
	dup.ID = d.nextTierID()

	tiers := make([]SeatTierDraft, len(d.SeatTiers), len(d.SeatTiers)+1)
	copy(tiers, d.SeatTiers)
	d.SeatTiers = append(tiers, dup)
	return nil
}

// RemoveSeatTierAt removes tier i
func (d *EventDraft) RemoveSeatTierAt(i int) error {
	if i < 0 || i >= len(d.SeatTiers) {
		return fmt.Errorf("remove seat tier %d: %w", i, ErrIndexOutOfRange)
	}
	tiers := make([]SeatTierDraft, 0, len(d.SeatTiers)-1)
	tiers = append(tiers, d.SeatTiers[:i]...)
	d.SeatTiers = append(tiers, d.SeatTiers[i+1:]...)
	return nil
}

// UpdateSeatTierAt sets one field of tier i
func (d *EventDraft) UpdateSeatTierAt(i int, field, value string) error {
	if i < 0 || i >= len(d.SeatTiers) {
		return fmt.Errorf("update seat tier %d: %w", i, ErrIndexOutOfRange)
	}
	t := d.SeatTiers[i]
	switch field {
	case "areaName":
		t.AreaName = value
	case "price":
		price, err := parsePrice(value)
		if err != nil {
			return fmt.Errorf("update seat tier %d price: %w", i, err)
		}
		t.Price = price
	case "quantity":
		qty, err := parseQuantity(value)
		if err != nil {
			return fmt.Errorf("update seat tier %d quantity: %w", i, err)
		}
		t.Quantity = qty
	default:
		return fmt.Errorf("update seat tier %d %q: %w", i, field, ErrUnknownField)
	}

	tiers := make([]SeatTierDraft, len(d.SeatTiers))
	copy(tiers, d.SeatTiers)
	tiers[i] = t
	d.SeatTiers = tiers
	return nil
}

func parsePrice(value string) (float64, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, nil
	}
	price, err := strconv.ParseFloat(value, 64)
	if err != nil || price < 0 || math.IsNaN(price) || math.IsInf(price, 0) {
		return 0, fmt.Errorf("%q: %w", value, ErrInvalidValue)
	}
	return price, nil
}

func parseQuantity(value string) (int, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, nil
	}
	qty, err := strconv.Atoi(value)
	if err != nil || qty < 0 {
		return 0, fmt.Errorf("%q: %w", value, ErrInvalidValue)
	}
	return qty, nil
}
