package models

import (
	"encoding/json"
	"fmt"
	"time"
)

// DateLayout формат календарной даты в JSON и в запросах.
const DateLayout = "2006-01-02"

// Date календарная дата без времени суток.
// Внутри хранится полночь UTC, поэтому сравнение дат не зависит от часового пояса.
type Date struct {
	t time.Time
}

// NewDate создает дату из года, месяца и дня.
// Несуществующие даты нормализуются так же, как в time.Date (31 апреля -> 1 мая).
func NewDate(year int, month time.Month, day int) Date {
	return Date{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// DateOf возвращает календарную дату момента t в часовом поясе loc.
func DateOf(t time.Time, loc *time.Location) Date {
	if loc == nil {
		loc = time.UTC
	}
	y, m, d := t.In(loc).Date()
	return NewDate(y, m, d)
}

// ParseDate разбирает строку формата YYYY-MM-DD.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return Date{t: t}, nil
}

// MustParseDate как ParseDate, но паникует при ошибке. Для тестов и констант.
func MustParseDate(s string) Date {
	d, err := ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

// AddMonths прибавляет n календарных месяцев с переполнением дня как в time.AddDate.
func (d Date) AddMonths(n int) Date {
	return Date{t: d.t.AddDate(0, n, 0)}
}

// AddDays прибавляет n дней.
func (d Date) AddDays(n int) Date {
	return Date{t: d.t.AddDate(0, 0, n)}
}

func (d Date) Before(o Date) bool { return d.t.Before(o.t) }
func (d Date) After(o Date) bool  { return d.t.After(o.t) }
func (d Date) Equal(o Date) bool  { return d.t.Equal(o.t) }
func (d Date) IsZero() bool       { return d.t.IsZero() }

// Compare возвращает -1, 0 или +1.
func (d Date) Compare(o Date) int { return d.t.Compare(o.t) }

// Start возвращает начало дня в часовом поясе loc.
func (d Date) Start(loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	y, m, day := d.t.Date()
	return time.Date(y, m, day, 0, 0, 0, 0, loc)
}

func (d Date) String() string {
	if d.t.IsZero() {
		return ""
	}
	return d.t.Format(DateLayout)
}

// MarshalJSON кодирует дату строкой YYYY-MM-DD.
func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// UnmarshalJSON принимает YYYY-MM-DD, полный RFC3339 (берется дата) или пустую строку.
func (d *Date) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("date must be a string: %w", err)
	}
	if s == "" {
		*d = Date{}
		return nil
	}
	if len(s) > len(DateLayout) {
		t, err := time.Parse(time.RFC3339, s)
		if err != nil {
			return fmt.Errorf("invalid date %q: %w", s, err)
		}
		*d = NewDate(t.Year(), t.Month(), t.Day())
		return nil
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
