package compose

import (
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
)

// RankSenders orders senders by how closely they match query. Numbers containing the query
// come first, then edit distance on the digits. Ties keep directory order.
// An empty query returns the list unchanged.
func RankSenders(query string, senders []string) []string {
	out := append([]string(nil), senders...)
	q := digits(query)
	if q == "" {
		return out
	}
	type scored struct {
		number string
		match  bool
		dist   int
	}
	rows := make([]scored, len(out))
	for i, n := range out {
		d := digits(n)
		rows[i] = scored{
			number: n,
			match:  strings.Contains(d, q),
			dist:   levenshtein.ComputeDistance(q, d),
		}
	}
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].match != rows[j].match {
			return rows[i].match
		}
		return rows[i].dist < rows[j].dist
	})
	for i, r := range rows {
		out[i] = r.number
	}
	return out
}

// ContainsSender reports whether number is one of senders.
func ContainsSender(senders []string, number string) bool {
	for _, s := range senders {
		if s == number {
			return true
		}
	}
	return false
}

func digits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
