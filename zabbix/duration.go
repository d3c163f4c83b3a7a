package zabbix

import (
	"math"
	"regexp"
	"strconv"
)

const secondsPerDay = 86400

// durationToken matches one magnitude+unit pair. Units are case-sensitive:
// Zabbix retention strings use lowercase d/h/m/s.
var durationToken = regexp.MustCompile(`(\d+)([dhms])`)

// ParseDays converts a Zabbix-style duration string ("31d", "1d2h30m") to a
// day count rounded to one decimal place. Unit pairs may appear in any order
// and repeat; anything between recognized pairs is ignored. A string with no
// recognized pair at all is a ParseError.
func ParseDays(s string) (float64, error) {
	matches := durationToken.FindAllStringSubmatch(s, -1)
	if len(matches) == 0 {
		return 0, &ParseError{Input: s}
	}

	var total float64
	for _, m := range matches {
		n, err := strconv.Atoi(m[1])
		if err != nil {
			return 0, &ParseError{Input: s}
		}
		switch m[2] {
		case "d":
			total += float64(n)
		case "h":
			total += float64(n) / 24
		case "m":
			total += float64(n) / (24 * 60)
		case "s":
			total += float64(n) / secondsPerDay
		}
	}
	return math.Round(total*10) / 10, nil
}

// TimeDifference returns the whole days between two Unix timestamps,
// floor((to-from)/86400). An inverted pair yields a negative or zero count
// rather than an error; ordering is the caller's problem.
func TimeDifference(timeFrom, timeTo int64) int64 {
	diff := timeTo - timeFrom
	days := diff / secondsPerDay
	// Integer division truncates toward zero; floor negative spans.
	if diff%secondsPerDay != 0 && diff < 0 {
		days--
	}
	return days
}
