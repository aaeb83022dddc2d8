package cache

import (
	"crypto/sha1"
	"encoding/hex"
	"strconv"
	"strings"
	"time"

	"ete-kpi/internal/kpi"
)

const keyPrefix = "kpi:report:"

// ReportKey builds the cache key of a report so that equivalent filters
// produce the same key.
func ReportKey(report string, f kpi.Filter) string {
	return keyPrefix + makeKey(
		strings.ToLower(strings.TrimSpace(report)),
		canonicalID(f.LineID),
		canonicalID(f.MachineID),
		canonicalID(f.ShiftID),
		canonicalDay(f.StartDate),
		canonicalDay(f.EndDate),
	)
}

func canonicalID(id *int) string {
	if id == nil {
		return "*"
	}
	return strconv.Itoa(*id)
}

// canonicalDay keeps the calendar day and its UTC offset. The window is
// day-aligned in the date's own zone, so the same day in two zones is a
// different window.
func canonicalDay(t *time.Time) string {
	if t == nil {
		return "*"
	}
	return t.Format("2006-01-02Z07:00")
}

func makeKey(parts ...string) string {
	joined := strings.Join(parts, "|")
	h := sha1.Sum([]byte(joined))
	return hex.EncodeToString(h[:])
}
