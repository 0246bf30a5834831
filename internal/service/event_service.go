package service

import (
	"sort"
	"strings"

	"incidentlens.io/lens/internal/domain"
	"incidentlens.io/lens/internal/participant"
	apperrors "incidentlens.io/lens/internal/pkg/errors"
	"incidentlens.io/lens/internal/store"
)

// Related-event buckets offered by the event list filter.
const (
	RelatedNone = "0"
	RelatedOne  = "1"
	RelatedFew  = "2-5"
	RelatedMany = "5+"
)

// RelatedEventOptions lists the related-event buckets in display order.
func RelatedEventOptions() []string {
	return []string{RelatedNone, RelatedOne, RelatedFew, RelatedMany}
}

// inRelatedBucket tests sequence_total, which counts the event itself, so
// each bucket sits one above its label. An unknown bucket matches
// everything.
func inRelatedBucket(bucket string, sequenceTotal int) bool {
	switch bucket {
	case RelatedNone:
		return sequenceTotal <= 1
	case RelatedOne:
		return sequenceTotal == 2
	case RelatedFew:
		return sequenceTotal >= 3 && sequenceTotal <= 6
	case RelatedMany:
		return sequenceTotal > 6
	default:
		return true
	}
}

// EventQuery selects a page of the event list.
type EventQuery struct {
	Page          int
	PageSize      int
	Search        string
	Town          string
	Level         string
	Category      string
	RelatedEvents string
}

// EventService answers event list and detail queries.
type EventService struct {
	store *store.Store
}

// NewEventService creates a new EventService.
func NewEventService(st *store.Store) *EventService {
	return &EventService{store: st}
}

// GetEvents filters, sorts and paginates the event list.
//
// Search is a case-insensitive literal substring over event id,
// description, resolution, caller phone, caller id and the reporter
// summary; any field may match. Town, level and category narrow the result
// independently. Rows are ordered newest first; rows whose report time does
// not parse come last.
func (s *EventService) GetEvents(q EventQuery) (domain.Page[domain.EventSummary], error) {
	if err := checkPaging(q.Page, q.PageSize); err != nil {
		return domain.Page[domain.EventSummary]{}, err
	}

	snap := s.store.Snapshot()
	resolver := participant.NewResolver(snap)

	var rows []domain.EventDetail
	for _, e := range snap.Events() {
		if q.Search != "" && !anyContainsFold(q.Search,
			e.EventID, e.Description, e.Resolution, e.CallerPhone, e.CallerID,
		) && !containsFold(resolver.CallerSummary(e.EventID), q.Search) {
			continue
		}
		if !containsFold(e.Town, q.Town) ||
			!containsFold(e.Level, q.Level) ||
			!containsFold(e.Category, q.Category) {
			continue
		}
		if q.RelatedEvents != "" && !inRelatedBucket(q.RelatedEvents, e.SequenceTotal) {
			continue
		}
		rows = append(rows, e)
	}

	sortNewestFirst(rows)

	page := domain.Paginate(rows, q.Page, q.PageSize)
	return domain.MapPage(page, func(e domain.EventDetail) domain.EventSummary {
		return domain.EventSummary{
			EventID:       e.EventID,
			Description:   e.Description,
			Town:          e.Town,
			Level:         e.Level,
			Category:      e.Category,
			ReportTime:    e.ReportTime,
			CallerPhone:   domain.Optional(e.CallerPhone),
			CallerID:      domain.Optional(e.CallerID),
			EventUID:      domain.Optional(e.ClusterID),
			SequenceTotal: domain.OptionalInt(e.SequenceTotal),
			CallerInfo:    domain.Optional(resolver.CallerSummary(e.EventID)),
		}
	}), nil
}

// sortNewestFirst orders rows by parsed report time, descending, with
// unparseable times last. When no row parses at all the raw strings are
// compared instead.
func sortNewestFirst(rows []domain.EventDetail) {
	anyParsed := false
	for _, e := range rows {
		if e.HasReportedAt() {
			anyParsed = true
			break
		}
	}
	if !anyParsed {
		sort.SliceStable(rows, func(i, j int) bool {
			return rows[i].ReportTime > rows[j].ReportTime
		})
		return
	}
	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if a.HasReportedAt() != b.HasReportedAt() {
			return a.HasReportedAt()
		}
		return a.ReportedAt.After(b.ReportedAt)
	})
}

// sortOldestFirst orders rows by parsed report time, ascending. Rows whose
// time does not parse sort as the earliest possible time.
func sortOldestFirst(rows []domain.EventDetail) {
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].ReportedAt.Before(rows[j].ReportedAt)
	})
}

// GetEventDetail returns the full view of one event.
func (s *EventService) GetEventDetail(eventID string) (domain.EventDetailView, error) {
	snap := s.store.Snapshot()
	e, ok := snap.Event(eventID)
	if !ok {
		return domain.EventDetailView{}, apperrors.ErrEventNotFoundf(eventID)
	}

	summary := participant.NewResolver(snap).Summarize(eventID)
	return domain.EventDetailView{
		EventID:            e.EventID,
		Description:        e.Description,
		Town:               e.Town,
		Village:            domain.Optional(e.Village),
		Level:              e.Level,
		Category:           e.Category,
		ReportTime:         e.ReportTime,
		CompletionTime:     domain.Optional(e.CompletionTime),
		Resolution:         domain.Optional(e.Resolution),
		EventUID:           domain.Optional(e.ClusterID),
		SequenceTotal:      domain.OptionalInt(e.SequenceTotal),
		RelatedEventsCount: domain.OptionalInt(e.RelatedEventsCount()),
		CallerInfo:         domain.Optional(summary.Callers),
		InvolvedInfo:       domain.Optional(summary.Involved),
	}, nil
}

// GetFilterOptions lists the distinct towns, levels and categories present
// in the event table. An empty table yields no options at all.
func (s *EventService) GetFilterOptions() domain.FilterOptions {
	events := s.store.Snapshot().Events()
	if len(events) == 0 {
		return domain.FilterOptions{
			Towns:               []string{},
			Levels:              []string{},
			Categories:          []string{},
			RelatedEventOptions: []string{},
		}
	}

	towns := make(map[string]struct{})
	levels := make(map[string]struct{})
	categories := make(map[string]struct{})
	for _, e := range events {
		addNonBlank(towns, e.Town)
		addNonBlank(levels, e.Level)
		addNonBlank(categories, e.Category)
	}
	return domain.FilterOptions{
		Towns:               sortedKeys(towns),
		Levels:              sortedKeys(levels),
		Categories:          sortedKeys(categories),
		RelatedEventOptions: RelatedEventOptions(),
	}
}

func addNonBlank(set map[string]struct{}, v string) {
	if strings.TrimSpace(v) != "" {
		set[v] = struct{}{}
	}
}

func sortedKeys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
