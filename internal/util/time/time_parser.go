package time_parser

import "time"

// ParseDueDate converts the due-date formats accepted on the ingress and
// assistant surfaces to time.Time in UTC.
// Supported inputs:
//   - nil or empty string: no due date (nil result)
//   - ISO strings: RFC3339, RFC3339Nano, "2006-01-02T15:04:05", "2006-01-02"
//   - Unix timestamps: seconds (< 1e12) or milliseconds (>= 1e12) as int, int64, or float64
//   - Anything else: no due date
func ParseDueDate(value any) *time.Time {
	if value == nil {
		return nil
	}

	switch v := value.(type) {
	case string:
		if v == "" {
			return nil
		}

		formats := []string{
			time.RFC3339,
			time.RFC3339Nano,
			"2006-01-02T15:04:05",
			"2006-01-02",
		}

		for _, format := range formats {
			if t, err := time.Parse(format, v); err == nil {
				utc := t.UTC()
				return &utc
			}
		}

		return nil

	case float64:
		// JSON numbers arrive as float64. Values above 1e12 are
		// milliseconds (a unix-seconds value that large is year ~33658).
		return fromUnix(int64(v))

	case int64:
		return fromUnix(v)

	case int:
		return fromUnix(int64(v))

	default:
		return nil
	}
}

func fromUnix(v int64) *time.Time {
	var t time.Time
	if v > 1e12 {
		t = time.Unix(0, v*int64(time.Millisecond)).UTC()
	} else {
		t = time.Unix(v, 0).UTC()
	}

	return &t
}
