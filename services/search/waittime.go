package search

import (
	"strconv"
	"strings"
	"unicode"

	"carelink/models"
)

// maxWaitDays caps parsed waits so absurd numbers fail every ceiling instead of overflowing.
const maxWaitDays = 1 << 20

var waitCeilings = map[string]int{
	models.WaitImmediate: 0,
	models.WaitOneWeek:   7,
	models.WaitTwoWeeks:  14,
	models.WaitOneMonth:  30,
}

// WaitCeiling returns the day ceiling for a wait-time bucket. Unknown buckets
// report false and the wait filter is not applied.
func WaitCeiling(bucket string) (int, bool) {
	days, ok := waitCeilings[bucket]
	return days, ok
}

// ParseWaitDays converts a provider's free-text wait time into days.
//
// "Immediate" is zero days. Otherwise the leading integer is taken and
// multiplied by 7 when the remainder mentions weeks, by 30 in every other
// case. ok is false when the text does not start with a number.
func ParseWaitDays(text string) (days int, ok bool) {
	text = strings.TrimSpace(text)
	if strings.EqualFold(text, "immediate") {
		return 0, true
	}

	end := 0
	for end < len(text) && text[end] >= '0' && text[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0, false
	}

	n, err := strconv.Atoi(text[:end])
	if err != nil || n > maxWaitDays {
		n = maxWaitDays
	}
	unit := strings.ToLower(strings.TrimLeftFunc(text[end:], unicode.IsSpace))
	if strings.Contains(unit, "week") {
		n *= 7
	} else {
		n *= 30
	}
	if n > maxWaitDays {
		n = maxWaitDays
	}
	return n, true
}

// withinWait reports whether a provider's wait time fits under ceiling days.
// Text that cannot be parsed passes.
func withinWait(waitTime string, ceiling int) bool {
	days, ok := ParseWaitDays(waitTime)
	if !ok {
		return true
	}
	return days <= ceiling
}
