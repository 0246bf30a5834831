package service

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"incidentlens.io/lens/internal/domain"
	"incidentlens.io/lens/internal/participant"
	apperrors "incidentlens.io/lens/internal/pkg/errors"
	"incidentlens.io/lens/internal/pkg/logger"
	"incidentlens.io/lens/internal/store"
)

// AnalysisQuery selects a page of the phone analysis list.
type AnalysisQuery struct {
	Page     int
	PageSize int
	Search   string
	Role     string
}

// AnalysisService resolves per-phone histories across events.
type AnalysisService struct {
	store *store.Store
}

// NewAnalysisService creates a new AnalysisService.
func NewAnalysisService(st *store.Store) *AnalysisService {
	return &AnalysisService{store: st}
}

// GetPersonAnalysis returns a page of phone analysis rows, busiest first.
// Search matches name or phone; role matches primary_role.
func (s *AnalysisService) GetPersonAnalysis(q AnalysisQuery) (domain.Page[domain.PersonAnalysisSummary], error) {
	if err := checkPaging(q.Page, q.PageSize); err != nil {
		return domain.Page[domain.PersonAnalysisSummary]{}, err
	}

	var rows []domain.PhoneAnalysis
	for _, a := range s.store.Snapshot().PhoneAnalyses() {
		if q.Search != "" && !anyContainsFold(q.Search, a.Name, a.Phone) {
			continue
		}
		if !containsFold(a.PrimaryRole, q.Role) {
			continue
		}
		rows = append(rows, a)
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].EventCount > rows[j].EventCount
	})

	return domain.MapPage(domain.Paginate(rows, q.Page, q.PageSize), toAnalysisSummary), nil
}

// GetPersonAnalysisDetail returns the analysis entry for phone with every
// related event that still exists, oldest first, each tagged with the
// phone's role in it.
func (s *AnalysisService) GetPersonAnalysisDetail(phone string) (domain.PersonAnalysisDetail, error) {
	snap := s.store.Snapshot()
	a, ok := snap.PhoneAnalysis(phone)
	if !ok {
		return domain.PersonAnalysisDetail{}, apperrors.ErrPhoneAnalysisNotFoundf()
	}

	ids, err := parseRelatedEvents(a.RelatedEvents)
	if err != nil {
		logger.Warn("Failed to parse related events",
			zap.String("primary_role", a.PrimaryRole),
			zap.Int("event_count", a.EventCount),
			zap.Error(err),
		)
	}

	var events []domain.EventDetail
	for _, id := range ids {
		if e, ok := snap.Event(id); ok {
			events = append(events, e)
		}
	}
	sortOldestFirst(events)

	resolver := participant.NewResolver(snap)
	detail := domain.PersonAnalysisDetail{
		PersonAnalysisSummary: toAnalysisSummary(a),
		Events:                make([]domain.PersonEvent, 0, len(events)),
	}
	for _, e := range events {
		role, _ := resolver.RoleInEvent(phone, e.EventID)
		detail.Events = append(detail.Events, domain.PersonEvent{
			EventID:        e.EventID,
			Description:    e.Description,
			Town:           e.Town,
			Level:          e.Level,
			Category:       e.Category,
			ReportTime:     e.ReportTime,
			CompletionTime: domain.Optional(e.CompletionTime),
			Resolution:     domain.Optional(e.Resolution),
			EventUID:       domain.Optional(e.ClusterID),
			Role:           domain.Optional(role),
		})
	}
	return detail, nil
}

// GetPersonAnalysisRoles lists the distinct primary roles, sorted.
func (s *AnalysisService) GetPersonAnalysisRoles() []string {
	roles := make(map[string]struct{})
	for _, a := range s.store.Snapshot().PhoneAnalyses() {
		addNonBlank(roles, a.PrimaryRole)
	}
	return sortedKeys(roles)
}

func toAnalysisSummary(a domain.PhoneAnalysis) domain.PersonAnalysisSummary {
	return domain.PersonAnalysisSummary{
		Phone:          a.Phone,
		Name:           domain.Optional(a.Name),
		IDCard:         domain.Optional(a.IDCard),
		PrimaryRole:    domain.Optional(a.PrimaryRole),
		EventCount:     a.EventCount,
		NameCandidates: domain.Optional(a.NameCandidates),
		IDCandidates:   domain.Optional(a.IDCandidates),
	}
}

// parseRelatedEvents decodes a serialized list of event ids. Both JSON and
// single-quoted list literals are accepted. Numeric ids are rendered as
// text; blank ids are dropped.
func parseRelatedEvents(raw string) ([]string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}

	var items []interface{}
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		if err2 := json.Unmarshal([]byte(strings.ReplaceAll(raw, "'", `"`)), &items); err2 != nil {
			return nil, fmt.Errorf("decode related events: %w", err)
		}
	}

	ids := make([]string, 0, len(items))
	for _, item := range items {
		var id string
		switch v := item.(type) {
		case string:
			id = strings.TrimSpace(v)
		case float64:
			id = strconv.FormatFloat(v, 'f', -1, 64)
		case nil:
		default:
			id = fmt.Sprint(v)
		}
		if id != "" {
			ids = append(ids, id)
		}
	}
	return ids, nil
}
