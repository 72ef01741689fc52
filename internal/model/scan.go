package model

import "strings"

// ParseScan turns a scanned two-line payload ("name\nemail") into a new
// prospect. Payloads with any other number of lines are ignored and ok is
// false. The scanned name is kept as-is, even when empty.
func ParseScan(payload string) (p Prospect, ok bool) {
	details := strings.Split(payload, "\n")
	if len(details) != 2 {
		return Prospect{}, false
	}
	p = NewProspect("", details[1])
	p.Name = strings.TrimSuffix(details[0], "\r")
	return p, true
}
