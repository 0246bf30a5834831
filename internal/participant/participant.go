// Package participant parses the per-event list of people extracted from a
// report and renders the reporter and other-party summaries shown next to
// each event.
package participant

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// ReporterRole is the role label of the person who filed the report.
// Every other role is an "other party".
const ReporterRole = "报警人"

// DefaultInvolvedRole labels an other-party entry whose role key is missing.
const DefaultInvolvedRole = "当事人"

// Display labels.
const (
	labelRole  = "角色"
	labelName  = "姓名"
	labelPhone = "电话"
	labelID    = "身份证"

	fieldSep = " | "
	entrySep = "; "
)

// Entry is one person extracted from a report. Absent fields are "".
// RoleMissing tells a missing role key apart from an explicit null.
type Entry struct {
	Role        string
	Name        string
	Phone       string
	ID          string
	RoleMissing bool
}

// IsReporter reports whether the entry is the person who filed the report.
func (e Entry) IsReporter() bool {
	return e.Role == ReporterRole
}

// Parse decodes an extraction blob: a JSON array of objects with role, name,
// phone and id keys. Non-string scalars are rendered as text; null and
// missing keys become "". A blank blob yields no entries and no error.
func Parse(blob string) ([]Entry, error) {
	if strings.TrimSpace(blob) == "" {
		return nil, nil
	}

	var raw []map[string]interface{}
	if err := json.Unmarshal([]byte(blob), &raw); err != nil {
		return nil, fmt.Errorf("decode extraction: %w", err)
	}

	entries := make([]Entry, 0, len(raw))
	for _, m := range raw {
		if m == nil {
			continue
		}
		_, hasRole := m["role"]
		entries = append(entries, Entry{
			Role:        text(m["role"]),
			Name:        text(m["name"]),
			Phone:       text(m["phone"]),
			ID:          text(m["id"]),
			RoleMissing: !hasRole,
		})
	}
	return entries, nil
}

func text(v interface{}) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(x)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case bool:
		if x {
			return "true"
		}
		return ""
	default:
		return fmt.Sprint(x)
	}
}

// Source looks up the parsed extraction for an event.
type Source interface {
	Participants(eventID string) ([]Entry, bool)
}

// Summary holds the two rendered partitions of an event's participants.
// Either field is "" when the partition is empty.
type Summary struct {
	Callers  string
	Involved string
}

// Resolver renders participant summaries from a Source.
type Resolver struct {
	src Source
}

// NewResolver creates a Resolver reading from src.
func NewResolver(src Source) Resolver {
	return Resolver{src: src}
}

// Summarize returns both summaries for eventID.
func (r Resolver) Summarize(eventID string) Summary {
	entries, ok := r.lookup(eventID)
	if !ok {
		return Summary{}
	}
	return Summary{
		Callers:  Callers(entries),
		Involved: Involved(entries),
	}
}

// CallerSummary returns the reporter summary for eventID, or "".
func (r Resolver) CallerSummary(eventID string) string {
	entries, ok := r.lookup(eventID)
	if !ok {
		return ""
	}
	return Callers(entries)
}

// RoleInEvent returns the role of the first participant of eventID whose
// phone equals phone exactly.
func (r Resolver) RoleInEvent(phone, eventID string) (string, bool) {
	if phone == "" {
		return "", false
	}
	entries, ok := r.lookup(eventID)
	if !ok {
		return "", false
	}
	for _, e := range entries {
		if e.Phone == phone {
			return e.Role, true
		}
	}
	return "", false
}

func (r Resolver) lookup(eventID string) ([]Entry, bool) {
	if r.src == nil || eventID == "" {
		return nil, false
	}
	return r.src.Participants(eventID)
}

// Callers renders every reporter entry as "姓名: … | 电话: … | 身份证: …",
// joined by "; ".
func Callers(entries []Entry) string {
	var parts []string
	for _, e := range entries {
		if !e.IsReporter() {
			continue
		}
		if s := render(e, false); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, entrySep)
}

// Involved renders every non-reporter entry, led by its role when present.
// An entry without a role key is labelled DefaultInvolvedRole.
func Involved(entries []Entry) string {
	var parts []string
	for _, e := range entries {
		if e.IsReporter() {
			continue
		}
		if s := render(e, true); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, entrySep)
}

func render(e Entry, withRole bool) string {
	fields := make([]string, 0, 4)
	if withRole {
		role := e.Role
		if e.RoleMissing {
			role = DefaultInvolvedRole
		}
		if role != "" {
			fields = append(fields, labelRole+": "+role)
		}
	}
	if e.Name != "" {
		fields = append(fields, labelName+": "+e.Name)
	}
	if e.Phone != "" {
		fields = append(fields, labelPhone+": "+e.Phone)
	}
	if e.ID != "" {
		fields = append(fields, labelID+": "+e.ID)
	}
	return strings.Join(fields, fieldSep)
}
