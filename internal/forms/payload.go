package forms

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"tickets-go-admin/internal/models"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("form"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})
	return v
}

// ValidationError lists a message per invalid field
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return "invalid event draft: " + strings.Join(keys, ", ")
}

var fieldMessages = map[string]string{
	FieldName:      "請輸入活動名稱",
	FieldIntro:     "請輸入活動簡述",
	FieldContent:   "請輸入活動內容",
	FieldOrganizer: "請輸入主辦單位",
	FieldSaleStart: "請選擇販售日期",
	FieldSaleEnd:   "請選擇販售日期",
	FieldTags:      "請選擇活動標籤",
	FieldPayments:  "請選擇付款方式",
}

// Image field keys in a ValidationError
const (
	FieldIntroImage  = "intro_image"
	FieldBannerImage = "banner_image"
)

// ImageMessages are the messages for missing images
var ImageMessages = map[string]string{
	FieldIntroImage:  "請上傳活動縮圖",
	FieldBannerImage: "請上傳活動橫幅圖",
}

// Validate checks the draft fields, not its images
func (d *EventDraft) Validate() error {
	fields := make(map[string]string)

	if err := validate.Struct(d); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return fmt.Errorf("failed to validate draft: %w", err)
		}
		for _, fe := range verrs {
			key := fe.Namespace()
			if _, rest, ok := strings.Cut(key, "."); ok {
				key = rest
			}
			if _, exists := fields[key]; exists {
				continue
			}
			fields[key] = message(key, fe.Tag())
		}
	}

	if _, ok := fields[FieldSaleStart]; !ok {
		if _, ok := fields[FieldSaleEnd]; !ok && d.SaleEnd < d.SaleStart {
			fields[FieldSaleEnd] = "結束時間需晚於開始時間"
		}
	}

	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

func message(key, tag string) string {
	if msg, ok := fieldMessages[key]; ok {
		return msg
	}
	switch tag {
	case "required":
		return "此欄位為必填"
	case "datetime":
		return "格式不正確"
	case "gte":
		return "不可為負數"
	default:
		return "欄位不正確"
	}
}

// BuildPayload assembles the create or update body. Dates are read in
// now's location; session times are anchored to the day of now, and the
// release date is now.
func BuildPayload(d *EventDraft, now time.Time) (*models.EventWrite, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}
	loc := now.Location()

	saleStart, err := time.ParseInLocation(DateTimeLayout, d.SaleStart, loc)
	if err != nil {
		return nil, fmt.Errorf("sale start: %w", err)
	}
	saleEnd, err := time.ParseInLocation(DateTimeLayout, d.SaleEnd, loc)
	if err != nil {
		return nil, fmt.Errorf("sale end: %w", err)
	}

	sessions := make([]models.SessionWrite, 0, len(d.Sessions))
	for i, s := range d.Sessions {
		date, err := time.ParseInLocation(DateLayout, s.Date, loc)
		if err != nil {
			return nil, fmt.Errorf("session %d date: %w", i, err)
		}
		start, err := clockOn(now, s.StartTime)
		if err != nil {
			return nil, fmt.Errorf("session %d start: %w", i, err)
		}
		end, err := clockOn(now, s.EndTime)
		if err != nil {
			return nil, fmt.Errorf("session %d end: %w", i, err)
		}
		sessions = append(sessions, models.SessionWrite{
			Date:      date.UnixMilli(),
			TimeRange: models.TimeRange{StartTime: start.UnixMilli(), EndTime: end.UnixMilli()},
			Place:     s.Place,
		})
	}

	prices := make([]models.Price, 0, len(d.SeatTiers))
	for _, t := range d.SeatTiers {
		prices = append(prices, models.Price{Area: t.AreaName, Price: t.Price})
	}

	return &models.EventWrite{
		Name:        d.Name,
		Intro:       d.Intro,
		Content:     d.Content,
		IntroImage:  d.IntroImage,
		BannerImage: d.BannerImage,
		Organizer:   d.Organizer,
		EventRange:  models.EventRange{StartDate: saleStart.UnixMilli(), EndDate: saleEnd.UnixMilli()},
		ReleaseDate: now.UnixMilli(),
		Payments:    append([]models.Payment(nil), d.Payments...),
		Tags:        append([]string(nil), d.Tags...),
		Sessions:    sessions,
		Prices:      prices,
	}, nil
}

// clockOn returns the HH:mm time of day on the date of day
func clockOn(day time.Time, hhmm string) (time.Time, error) {
	t, err := time.Parse(TimeLayout, hhmm)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(day.Year(), day.Month(), day.Day(), t.Hour(), t.Minute(), 0, 0, day.Location()), nil
}
