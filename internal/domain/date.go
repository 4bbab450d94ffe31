package domain

import (
	"strings"
	"time"
)

// Date representa um dia do calendário, serializado como "2006-01-02"
type Date struct {
	time.Time
}

func NewDate(year int, month time.Month, day int) Date {
	return Date{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate aceita tanto "2006-01-02" quanto timestamps RFC3339, mantendo apenas o dia
func ParseDate(value string) (Date, error) {
	value = strings.TrimSpace(value)
	if len(value) > len(time.DateOnly) {
		if t, err := time.Parse(time.RFC3339, value); err == nil {
			return NewDate(t.UTC().Date()), nil
		}
	}

	t, err := time.Parse(time.DateOnly, value)
	if err != nil {
		return Date{}, err
	}
	return Date{Time: t}, nil
}

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Format(time.DateOnly)
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return []byte(`"` + d.String() + `"`), nil
}

func (d *Date) UnmarshalJSON(data []byte) error {
	value := strings.Trim(string(data), `"`)
	if value == "" || value == "null" {
		*d = Date{}
		return nil
	}

	parsed, err := ParseDate(value)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
