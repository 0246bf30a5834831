package store

import (
	"time"

	"go.uber.org/zap"

	"incidentlens.io/lens/internal/domain"
	"incidentlens.io/lens/internal/participant"
	"incidentlens.io/lens/internal/pkg/logger"
	"incidentlens.io/lens/internal/pkg/timeparse"
)

// Snapshot is an immutable, normalized view of all five datasets.
//
// Slices returned by Snapshot methods are shared between readers and must
// not be modified.
type Snapshot struct {
	events    []domain.EventDetail
	eventByID map[string]int
	members   map[string][]int // cluster id -> event indexes, in row order

	clusters    []domain.Cluster
	clusterByID map[string]int

	participants map[string][]participant.Entry

	people     []domain.Person
	personByID map[string]int

	phones        []domain.PhoneAnalysis
	phoneByNumber map[string]int

	rows     map[Dataset]int
	loadedAt time.Time
}

// NewSnapshot normalizes raw tables into a Snapshot. Datasets missing from
// tables are empty. When a key repeats, lookups return the first row.
func NewSnapshot(tables map[Dataset]Table) *Snapshot {
	s := &Snapshot{
		eventByID:     make(map[string]int),
		members:       make(map[string][]int),
		clusterByID:   make(map[string]int),
		participants:  make(map[string][]participant.Entry),
		personByID:    make(map[string]int),
		phoneByNumber: make(map[string]int),
		rows:          make(map[Dataset]int, len(AllDatasets())),
		loadedAt:      time.Now().UTC(),
	}

	s.loadEvents(tables[EventDetails])
	s.loadClusters(tables[Clusters])
	s.loadExtractions(tables[Extractions])
	s.loadPeople(tables[Population])
	s.loadPhones(tables[PhoneAnalyses])

	for _, d := range AllDatasets() {
		s.rows[d] = tables[d].Len()
	}
	return s
}

func (s *Snapshot) loadEvents(t Table) {
	c := t.cursor()
	s.events = make([]domain.EventDetail, 0, t.Len())
	for _, row := range t.Rows {
		c.row = row
		e := domain.EventDetail{
			EventID:        c.str(ColEventID),
			Description:    c.str(ColDescription),
			Town:           c.str(ColTown),
			Village:        c.str(ColVillage),
			Level:          c.str(ColLevel),
			Category:       c.str(ColCategory),
			ReportTime:     c.str(ColReportTime),
			CompletionTime: c.str(ColCompletionTime),
			Resolution:     c.str(ColResolution),
			ClusterID:      c.str(ColClusterID),
			SequenceTotal:  c.integer(ColSequenceTotal, 1),
			CallerPhone:    c.str(ColCallerPhone),
			CallerID:       c.str(ColCallerID),
			PhoneSet:       c.str(ColPhoneSet),
		}
		if ts, ok := timeparse.Parse(e.ReportTime); ok {
			e.ReportedAt = ts
		}

		idx := len(s.events)
		s.events = append(s.events, e)
		if _, dup := s.eventByID[e.EventID]; !dup && e.EventID != "" {
			s.eventByID[e.EventID] = idx
		}
		if e.ClusterID != "" {
			s.members[e.ClusterID] = append(s.members[e.ClusterID], idx)
		}
	}
}

func (s *Snapshot) loadClusters(t Table) {
	c := t.cursor()
	s.clusters = make([]domain.Cluster, 0, t.Len())
	for _, row := range t.Rows {
		c.row = row
		cl := domain.Cluster{
			ClusterID:       c.str(ColClusterID),
			Description:     c.str(ColClusterDescription),
			RecordCount:     c.integer(ColRecordCount, 0),
			DurationDays:    c.decimal(ColDurationDays),
			FirstReportTime: c.str(ColFirstReportTime),
			LastReportTime:  c.str(ColLastReportTime),
		}
		idx := len(s.clusters)
		s.clusters = append(s.clusters, cl)
		if _, dup := s.clusterByID[cl.ClusterID]; !dup && cl.ClusterID != "" {
			s.clusterByID[cl.ClusterID] = idx
		}
	}
}

// loadExtractions parses every extraction blob once. A blob that fails to
// parse is logged and its event has no participant data.
func (s *Snapshot) loadExtractions(t Table) {
	c := t.cursor()
	for _, row := range t.Rows {
		c.row = row
		id := c.str(ColExtractionEventID)
		if id == "" {
			continue
		}
		if _, seen := s.participants[id]; seen {
			continue
		}
		entries, err := participant.Parse(c.str(ColExtractedInfo))
		if err != nil {
			logger.Warn("Failed to parse participant extraction",
				zap.String("event_id", id),
				zap.Error(err),
			)
			continue
		}
		if entries == nil {
			continue
		}
		s.participants[id] = entries
	}
}

func (s *Snapshot) loadPeople(t Table) {
	c := t.cursor()
	s.people = make([]domain.Person, 0, t.Len())
	for _, row := range t.Rows {
		c.row = row
		p := domain.Person{
			PersonID:         c.str(ColPersonID),
			Name:             c.str(ColNameCN),
			IDCard:           c.str(ColIDCardNo),
			Phone:            c.str(ColMobilePhone),
			Gender:           c.str(ColGender),
			BirthDate:        c.str(ColBirthDate),
			NationalityCode:  c.str(ColNationalityCode),
			EthnicityCode:    c.str(ColEthnicityCode),
			HukouProvince:    c.str(ColHukouProvince),
			HukouCity:        c.str(ColHukouCity),
			HukouCounty:      c.str(ColHukouCounty),
			ResideProvince:   c.str(ColResideProvince),
			ResideCity:       c.str(ColResideCity),
			ResideCounty:     c.str(ColResideCounty),
			HighestEducation: c.str(ColHighestEducation),
			OccupationCode:   c.str(ColOccupationCode),
			EmployerName:     c.str(ColEmployerName),
		}
		idx := len(s.people)
		s.people = append(s.people, p)
		if _, dup := s.personByID[p.PersonID]; !dup && p.PersonID != "" {
			s.personByID[p.PersonID] = idx
		}
	}
}

func (s *Snapshot) loadPhones(t Table) {
	c := t.cursor()
	s.phones = make([]domain.PhoneAnalysis, 0, t.Len())
	for _, row := range t.Rows {
		c.row = row
		p := domain.PhoneAnalysis{
			Phone:          c.str(ColPhone),
			Name:           c.str(ColName),
			IDCard:         c.str(ColIDCard),
			PrimaryRole:    c.str(ColPrimaryRole),
			EventCount:     c.integer(ColEventCount, 0),
			NameCandidates: c.str(ColNameCandidates),
			IDCandidates:   c.str(ColIDCandidates),
			RelatedEvents:  c.str(ColRelatedEvents),
		}
		idx := len(s.phones)
		s.phones = append(s.phones, p)
		if _, dup := s.phoneByNumber[p.Phone]; !dup && p.Phone != "" {
			s.phoneByNumber[p.Phone] = idx
		}
	}
}

// Events returns every event detail row in source order.
func (s *Snapshot) Events() []domain.EventDetail { return s.events }

// Event returns the event with the given id.
func (s *Snapshot) Event(id string) (domain.EventDetail, bool) {
	i, ok := s.eventByID[id]
	if !ok {
		return domain.EventDetail{}, false
	}
	return s.events[i], true
}

// ClusterMembers returns the event rows whose cluster id is id, in source order.
func (s *Snapshot) ClusterMembers(id string) []domain.EventDetail {
	idx := s.members[id]
	out := make([]domain.EventDetail, 0, len(idx))
	for _, i := range idx {
		out = append(out, s.events[i])
	}
	return out
}

// Clusters returns every cluster row in source order.
func (s *Snapshot) Clusters() []domain.Cluster { return s.clusters }

// Cluster returns the cluster with the given id.
func (s *Snapshot) Cluster(id string) (domain.Cluster, bool) {
	i, ok := s.clusterByID[id]
	if !ok {
		return domain.Cluster{}, false
	}
	return s.clusters[i], true
}

// Participants returns the parsed extraction for eventID. It implements
// participant.Source.
func (s *Snapshot) Participants(eventID string) ([]participant.Entry, bool) {
	e, ok := s.participants[eventID]
	return e, ok
}

// People returns every registry row in source order.
func (s *Snapshot) People() []domain.Person { return s.people }

// Person returns the registry entry with the given id.
func (s *Snapshot) Person(id string) (domain.Person, bool) {
	i, ok := s.personByID[id]
	if !ok {
		return domain.Person{}, false
	}
	return s.people[i], true
}

// PhoneAnalyses returns every phone analysis row in source order.
func (s *Snapshot) PhoneAnalyses() []domain.PhoneAnalysis { return s.phones }

// PhoneAnalysis returns the analysis entry for phone.
func (s *Snapshot) PhoneAnalysis(phone string) (domain.PhoneAnalysis, bool) {
	i, ok := s.phoneByNumber[phone]
	if !ok {
		return domain.PhoneAnalysis{}, false
	}
	return s.phones[i], true
}

// Rows returns the raw row count loaded for d.
func (s *Snapshot) Rows(d Dataset) int { return s.rows[d] }

// RowCounts returns the raw row count of every dataset.
func (s *Snapshot) RowCounts() map[Dataset]int {
	out := make(map[Dataset]int, len(s.rows))
	for k, v := range s.rows {
		out[k] = v
	}
	return out
}

// LoadedAt is when the snapshot was built.
func (s *Snapshot) LoadedAt() time.Time { return s.loadedAt }
