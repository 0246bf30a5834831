package service

import (
	"math"
	"sort"
	"strings"
	"time"

	"incidentlens.io/lens/internal/domain"
	"incidentlens.io/lens/internal/participant"
	apperrors "incidentlens.io/lens/internal/pkg/errors"
	"incidentlens.io/lens/internal/store"
)

// phoneSetSep separates the phone numbers of a phone_set cell.
const phoneSetSep = "、"

// ClusterQuery selects a page of the cluster list. Nil bounds are not
// applied.
type ClusterQuery struct {
	Page          int
	PageSize      int
	Search        string
	MinEventCount *int
	MaxEventCount *int
	MinDuration   *float64
	MaxDuration   *float64
}

// ClusterService aggregates related reports into cluster views.
type ClusterService struct {
	store *store.Store
}

// NewClusterService creates a new ClusterService.
func NewClusterService(st *store.Store) *ClusterService {
	return &ClusterService{store: st}
}

// GetClusterDetail builds the aggregate view of one cluster. The cluster
// must exist and have at least one member report.
func (s *ClusterService) GetClusterDetail(clusterID string) (domain.ClusterDetailView, error) {
	snap := s.store.Snapshot()
	cluster, ok := snap.Cluster(clusterID)
	members := snap.ClusterMembers(clusterID)
	if !ok || len(members) == 0 {
		return domain.ClusterDetailView{}, apperrors.ErrClusterNotFoundf(clusterID)
	}

	resolver := participant.NewResolver(snap)
	view := domain.ClusterDetailView{
		EventUID:         cluster.ClusterID,
		Description:      cluster.Description,
		ParticipantCount: participantCount(members),
		DurationDays:     clusterDuration(members),
		FirstReportTime:  cluster.FirstReportTime,
		LastReportTime:   cluster.LastReportTime,
	}

	sortOldestFirst(members)
	view.Timeline = make([]domain.TimelineEntry, 0, len(members))
	for _, m := range members {
		summary := resolver.Summarize(m.EventID)
		view.Timeline = append(view.Timeline, domain.TimelineEntry{
			EventID:        m.EventID,
			Description:    m.Description,
			ReportTime:     m.ReportTime,
			CompletionTime: domain.Optional(m.CompletionTime),
			Resolution:     domain.Optional(m.Resolution),
			CallerInfo:     domain.Optional(summary.Callers),
			InvolvedInfo:   domain.Optional(summary.Involved),
		})
	}
	return view, nil
}

// participantCount counts the distinct phone numbers across the members'
// phone sets.
func participantCount(members []domain.EventDetail) int {
	seen := make(map[string]struct{})
	for _, m := range members {
		for _, tok := range strings.Split(m.PhoneSet, phoneSetSep) {
			if tok = strings.TrimSpace(tok); tok != "" {
				seen[tok] = struct{}{}
			}
		}
	}
	return len(seen)
}

// clusterDuration is the inclusive span in days between the earliest and
// latest parseable report. It is nil when no report time parses, and never
// less than one day otherwise.
func clusterDuration(members []domain.EventDetail) *float64 {
	var first, last time.Time
	n := 0
	for _, m := range members {
		if !m.HasReportedAt() {
			continue
		}
		if n == 0 || m.ReportedAt.Before(first) {
			first = m.ReportedAt
		}
		if n == 0 || m.ReportedAt.After(last) {
			last = m.ReportedAt
		}
		n++
	}
	if n == 0 {
		return nil
	}

	days := 1.0
	if span := last.Sub(first).Hours() / 24; n > 1 && span >= 1 {
		days = math.Round((span+1)*100) / 100
	}
	return &days
}

// GetClusterList filters, sorts and paginates clusters of more than one
// report. Clusters are ordered by size, then by duration, both descending;
// clusters without a duration come after those with one.
func (s *ClusterService) GetClusterList(q ClusterQuery) (domain.Page[domain.ClusterSummary], error) {
	if err := checkPaging(q.Page, q.PageSize); err != nil {
		return domain.Page[domain.ClusterSummary]{}, err
	}

	var rows []domain.Cluster
	for _, c := range s.store.Snapshot().Clusters() {
		if c.RecordCount <= 1 {
			continue
		}
		if q.Search != "" && !containsFold(c.Description, q.Search) {
			continue
		}
		if q.MinEventCount != nil && c.RecordCount < *q.MinEventCount {
			continue
		}
		if q.MaxEventCount != nil && c.RecordCount > *q.MaxEventCount {
			continue
		}
		if q.MinDuration != nil && (c.DurationDays == nil || *c.DurationDays < *q.MinDuration) {
			continue
		}
		if q.MaxDuration != nil && (c.DurationDays == nil || *c.DurationDays > *q.MaxDuration) {
			continue
		}
		rows = append(rows, c)
	}

	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if a.RecordCount != b.RecordCount {
			return a.RecordCount > b.RecordCount
		}
		if (a.DurationDays == nil) != (b.DurationDays == nil) {
			return a.DurationDays != nil
		}
		if a.DurationDays == nil {
			return false
		}
		return *a.DurationDays > *b.DurationDays
	})

	page := domain.Paginate(rows, q.Page, q.PageSize)
	return domain.MapPage(page, func(c domain.Cluster) domain.ClusterSummary {
		return domain.ClusterSummary{
			EventUID:        c.ClusterID,
			Description:     c.Description,
			RecordCount:     c.RecordCount,
			DurationDays:    c.DurationDays,
			FirstReportTime: c.FirstReportTime,
			LastReportTime:  c.LastReportTime,
		}
	}), nil
}

// GetClusterFilterOptions derives the range buckets the cluster list can
// offer from the largest size and duration among clusters of more than one
// report.
func (s *ClusterService) GetClusterFilterOptions() domain.ClusterFilterOptions {
	opts := domain.ClusterFilterOptions{
		EventCountRanges: []string{},
		DurationRanges:   []string{},
	}

	maxCount := 0
	var maxDuration *float64
	for _, c := range s.store.Snapshot().Clusters() {
		if c.RecordCount <= 1 {
			continue
		}
		if c.RecordCount > maxCount {
			maxCount = c.RecordCount
		}
		if c.DurationDays != nil && (maxDuration == nil || *c.DurationDays > *maxDuration) {
			d := *c.DurationDays
			maxDuration = &d
		}
	}

	if maxCount >= 2 {
		opts.EventCountRanges = append(opts.EventCountRanges, "2")
	}
	if maxCount >= 3 {
		opts.EventCountRanges = append(opts.EventCountRanges, "3-5")
	}
	if maxCount >= 6 {
		opts.EventCountRanges = append(opts.EventCountRanges, "6-10")
	}
	if maxCount > 10 {
		opts.EventCountRanges = append(opts.EventCountRanges, "10+")
	}

	if maxDuration != nil && *maxDuration > 0 {
		d := *maxDuration
		opts.DurationRanges = append(opts.DurationRanges, "0-1天")
		if d > 1 {
			opts.DurationRanges = append(opts.DurationRanges, "1-7天")
		}
		if d > 7 {
			opts.DurationRanges = append(opts.DurationRanges, "7-30天")
		}
		if d > 30 {
			opts.DurationRanges = append(opts.DurationRanges, "30天以上")
		}
	}
	return opts
}
