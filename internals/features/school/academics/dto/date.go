package dto

import (
	"time"

	"gorm.io/datatypes"
)

const dateLayout = "2006-01-02"

// Date fields travel as "YYYY-MM-DD" strings and are validated with
// the datetime tag before this conversion runs.
func toDate(s string) datatypes.Date {
	t, _ := time.Parse(dateLayout, s)
	return datatypes.Date(t)
}

func toDatePtr(s *string) *datatypes.Date {
	if s == nil || *s == "" {
		return nil
	}
	d := toDate(*s)
	return &d
}

func fromDate(d datatypes.Date) string {
	return time.Time(d).Format(dateLayout)
}

func fromDatePtr(d *datatypes.Date) *string {
	if d == nil {
		return nil
	}
	s := fromDate(*d)
	return &s
}
