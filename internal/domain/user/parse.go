package user

import (
	"strconv"
	"strings"
	"unicode"
)

// ParseID parses the leading integer of text the way an HTML form's numeric
// text is read by parseInt(text, 10): leading whitespace is skipped, one sign
// is accepted and the longest run of digits is used. ok is false when no
// digits follow.
func ParseID(text string) (id int64, ok bool) {
	s := strings.TrimLeftFunc(text, unicode.IsSpace)

	sign := ""
	if s != "" && (s[0] == '+' || s[0] == '-') {
		sign, s = s[:1], s[1:]
	}

	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0, false
	}

	n, err := strconv.ParseInt(sign+s[:end], 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}
