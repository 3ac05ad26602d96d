package util

import "time"

// StartOfDay 截断到所在时区的零点
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// WeekMonday 返回 t 所在自然周（周一开始）的周一零点。周日视为上一周的最后一天。
func WeekMonday(t time.Time) time.Time {
	offset := (int(t.Weekday()) + 6) % 7
	return StartOfDay(t).AddDate(0, 0, -offset)
}

// WeekdayDates 返回本周周一到周五的 ISO 日期
func WeekdayDates(today time.Time) [5]string {
	monday := WeekMonday(today)
	var days [5]string
	for i := range days {
		days[i] = monday.AddDate(0, 0, i).Format(DateFormat)
	}
	return days
}

func ParseDate(s string, loc *time.Location) (time.Time, error) {
	return time.ParseInLocation(DateFormat, s, loc)
}
