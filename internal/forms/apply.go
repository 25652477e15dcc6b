package forms

import (
	"net/url"
	"strconv"
	"strings"

	"tickets-go-admin/internal/models"
)

// Posted field names
const (
	FieldName      = "name"
	FieldIntro     = "intro"
	FieldContent   = "content"
	FieldOrganizer = "organizer"
	FieldSaleStart = "sale_start"
	FieldSaleEnd   = "sale_end"
	FieldTags      = "tags"
	FieldPayments  = "payments"

	FieldClearIntroImage  = "clear_intro_image"
	FieldClearBannerImage = "clear_banner_image"

	FieldSessionKey   = "session_key"
	FieldSessionDate  = "session_date"
	FieldSessionStart = "session_start"
	FieldSessionEnd   = "session_end"
	FieldSessionPlace = "session_place"

	FieldSeatID       = "seat_id"
	FieldSeatArea     = "seat_area"
	FieldSeatPrice    = "seat_price"
	FieldSeatQuantity = "seat_quantity"
)

// ApplyForm copies the posted form into the draft so list actions keep
// the edits made since the last round trip. Fields absent from values are
// left alone. Rows are matched to the draft by key or id; rows the draft
// no longer has are ignored. The returned map holds a message per value
// that could not be read.
func (d *EventDraft) ApplyForm(values url.Values) map[string]string {
	errors := make(map[string]string)

	setString := func(field string, dst *string) {
		if v, ok := values[field]; ok && len(v) > 0 {
			*dst = strings.TrimSpace(v[0])
		}
	}
	setString(FieldName, &d.Name)
	setString(FieldIntro, &d.Intro)
	setString(FieldContent, &d.Content)
	setString(FieldOrganizer, &d.Organizer)
	setString(FieldSaleStart, &d.SaleStart)
	setString(FieldSaleEnd, &d.SaleEnd)

	if _, ok := values[FieldTags]; ok {
		d.Tags = nonEmpty(values[FieldTags])
	}
	if _, ok := values[FieldPayments]; ok {
		payments := make([]models.Payment, 0, len(values[FieldPayments]))
		for _, label := range nonEmpty(values[FieldPayments]) {
			p, err := models.ParsePayment(label)
			if err != nil {
				errors[FieldPayments] = "付款方式不正確"
				continue
			}
			payments = append(payments, p)
		}
		d.Payments = payments
	}

	if values.Get(FieldClearIntroImage) == "1" {
		d.IntroImage = ""
	}
	if values.Get(FieldClearBannerImage) == "1" {
		d.BannerImage = ""
	}

	d.applySessions(values)
	d.applySeatTiers(values, errors)
	return errors
}

func (d *EventDraft) applySessions(values url.Values) {
	keys := values[FieldSessionKey]
	if len(keys) == 0 {
		return
	}
	sessions := make([]SessionDraft, len(d.Sessions))
	copy(sessions, d.Sessions)

	for row, key := range keys {
		i := d.sessionIndex(key)
		if i < 0 {
			continue
		}
		s := sessions[i]
		s.Date = at(values[FieldSessionDate], row, s.Date)
		s.StartTime = at(values[FieldSessionStart], row, s.StartTime)
		s.EndTime = at(values[FieldSessionEnd], row, s.EndTime)
		s.Place = at(values[FieldSessionPlace], row, s.Place)
		sessions[i] = s
	}
	d.Sessions = sessions
}

func (d *EventDraft) applySeatTiers(values url.Values, errors map[string]string) {
	ids := values[FieldSeatID]
	if len(ids) == 0 {
		return
	}
	tiers := make([]SeatTierDraft, len(d.SeatTiers))
	copy(tiers, d.SeatTiers)

	for row, raw := range ids {
		id, err := strconv.Atoi(raw)
		if err != nil {
			continue
		}
		i := d.seatTierIndex(id)
		if i < 0 {
			continue
		}
		t := tiers[i]
		t.AreaName = at(values[FieldSeatArea], row, t.AreaName)
		if v := at(values[FieldSeatPrice], row, ""); v != "" {
			if price, err := parsePrice(v); err != nil {
				errors[RowKey("seats", i, "price")] = "請輸入正確的票價"
			} else {
				t.Price = price
			}
		}
		if v := at(values[FieldSeatQuantity], row, ""); v != "" {
			if qty, err := parseQuantity(v); err != nil {
				errors[RowKey("seats", i, "quantity")] = "請輸入正確的數量"
			} else {
				t.Quantity = qty
			}
		}
		tiers[i] = t
	}
	d.SeatTiers = tiers
}

func (d *EventDraft) sessionIndex(key string) int {
	for i, s := range d.Sessions {
		if s.Key == key {
			return i
		}
	}
	return -1
}

func (d *EventDraft) seatTierIndex(id int) int {
	for i, t := range d.SeatTiers {
		if t.ID == id {
			return i
		}
	}
	return -1
}

// RowKey names a list row field in an error map, e.g. "sessions[0].date"
func RowKey(list string, i int, field string) string {
	return list + "[" + strconv.Itoa(i) + "]." + field
}

func at(vs []string, i int, fallback string) string {
	if i < len(vs) {
		return strings.TrimSpace(vs[i])
	}
	return fallback
}

func nonEmpty(vs []string) []string {
	out := make([]string, 0, len(vs))
	for _, v := range vs {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
