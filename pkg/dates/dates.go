// Package dates содержит помощники для работы с календарными датами без времени.
package dates

import (
	"fmt"
	"strings"
	"time"
)

const ISOLayout = "2006-01-02"

const secondsPerDay = 24 * 60 * 60

// DateOnly отбрасывает время и приводит дату к полуночи UTC
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// FirstOfMonth возвращает первое число месяца даты
func FirstOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// DaysInclusive считает календарные дни в [start, end] включительно.
// Для start > end возвращает 0.
func DaysInclusive(start, end time.Time) int {
	start, end = DateOnly(start), DateOnly(end)
	if start.After(end) {
		return 0
	}
	// Sub насыщается на ~292 годах, поэтому считаем по Unix-секундам
	return int((end.Unix()-start.Unix())/secondsPerDay) + 1
}

func Max(a, b time.Time) time.Time {
	if a.After(b) {
		return a
	}
	return b
}

func Min(a, b time.Time) time.Time {
	if a.Before(b) {
		return a
	}
	return b
}

// Parse разбирает дату в форматах ГГГГ-ММ-ДД, ДД.ММ.ГГГГ, ДД-ММ-ГГГГ и ДД.ММ.
// Если год не указан, берется год из now.
func Parse(dateStr string, now time.Time) (time.Time, error) {
	dateStr = strings.TrimSpace(dateStr)
	formats := []string{
		ISOLayout,
		"02.01.2006",
		"02-01-2006",
		"02.01",
	}

	for _, format := range formats {
		if t, err := time.Parse(format, dateStr); err == nil {
			if !strings.Contains(format, "2006") {
				t = time.Date(now.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
			}
			return DateOnly(t), nil
		}
	}

	return time.Time{}, fmt.Errorf("invalid date %q: use YYYY-MM-DD or DD.MM.YYYY", dateStr)
}
