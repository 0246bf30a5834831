// Package masking redacts national-ID and phone values for display and
// matches masked search patterns against stored plain values.
//
// Lengths are counted in characters, not bytes.
package masking

import "strings"

// Char is the redaction character.
const Char = '*'

// Kind selects the masking rules for an identifier.
type Kind int

const (
	// IDCard is an 18- or 15-character national ID.
	IDCard Kind = iota
	// Phone is a phone number, usually 11 digits.
	Phone
)

type rules struct {
	minMaskable int // shorter values are returned unmasked
	minPrefix   int
	minSuffix   int
}

var kindRules = map[Kind]rules{
	IDCard: {minMaskable: 6, minPrefix: 4, minSuffix: 4},
	Phone:  {minMaskable: 7, minPrefix: 3, minSuffix: 4},
}

func (k Kind) String() string {
	switch k {
	case IDCard:
		return "id_card"
	case Phone:
		return "phone"
	default:
		return "unknown"
	}
}

// Mask redacts the middle of value.
//
//	ID, 18 chars:  keep 4 + 4
//	ID, 15 chars:  keep 3 + 3
//	ID, otherwise: keep n/3 + n/3
//	Phone, 11:     keep 3 + 4
//	Phone, other:  keep 3 + 3
func Mask(value string, kind Kind) string {
	r := []rune(value)
	n := len(r)
	if n < kindRules[kind].minMaskable {
		return value
	}

	var head, tail int
	switch kind {
	case IDCard:
		switch n {
		case 18:
			head, tail = 4, 4
		case 15:
			head, tail = 3, 3
		default:
			head, tail = n/3, n/3
		}
	case Phone:
		if n == 11 {
			head, tail = 3, 4
		} else {
			head, tail = 3, 3
		}
	default:
		return value
	}

	var b strings.Builder
	b.Grow(len(value))
	b.WriteString(string(r[:head]))
	b.WriteString(strings.Repeat(string(Char), n-head-tail))
	b.WriteString(string(r[n-tail:]))
	return b.String()
}

// Match reports whether query selects stored.
//
// A query without mask characters is compared literally. A masked query
// matches when it is exactly the masked form of stored, or when it holds a
// single run of mask characters whose revealed prefix and suffix meet the
// kind's minimum lengths, stored starts with the prefix and ends with the
// suffix, and stored is at least as long as the whole query.
func Match(query, stored string, kind Kind) bool {
	if !IsMasked(query) {
		return query == stored
	}
	if stored == "" {
		return false
	}
	if Mask(stored, kind) == query {
		return true
	}

	prefix, suffix, ok := splitMask(query)
	if !ok {
		return false
	}
	rl := kindRules[kind]
	if runeLen(prefix) < rl.minPrefix || runeLen(suffix) < rl.minSuffix {
		return false
	}
	return runeLen(stored) >= runeLen(query) &&
		strings.HasPrefix(stored, prefix) &&
		strings.HasSuffix(stored, suffix)
}

// splitMask cuts query around its mask run. It fails when revealed
// characters sit between two runs.
func splitMask(query string) (prefix, suffix string, ok bool) {
	first := strings.IndexRune(query, Char)
	last := strings.LastIndexByte(query, byte(Char))
	if strings.Trim(query[first:last+1], string(Char)) != "" {
		return "", "", false
	}
	return query[:first], query[last+1:], true
}

// IsMasked reports whether value contains a mask character.
func IsMasked(value string) bool {
	return strings.ContainsRune(value, Char)
}

func runeLen(s string) int {
	return len([]rune(s))
}
