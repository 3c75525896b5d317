package diary

import "time"

const DateKeyLayout = "2006-01-02"

// DateKey returns the calendar day of t (in UTC) used as the log grouping key.
func DateKey(t time.Time) string {
	return t.UTC().Format(DateKeyLayout)
}

func ParseDateKey(key string) (time.Time, error) {
	return time.Parse(DateKeyLayout, key)
}
