package domain

// Response views keep the field names of the original export so the
// existing frontend reads them unchanged.

// EventSummary is one row of the event list.
type EventSummary struct {
	EventID       string  `json:"事件编号"`
	Description   string  `json:"事件描述"`
	Town          string  `json:"镇街名称"`
	Level         string  `json:"事件级别"`
	Category      string  `json:"二级分类"`
	ReportTime    string  `json:"上报时间"`
	CallerPhone   *string `json:"CallerPhone"`
	CallerID      *string `json:"CallerID"`
	EventUID      *string `json:"EventUID"`
	SequenceTotal *int    `json:"sequence_total"`
	CallerInfo    *string `json:"报警人信息"`
}

// EventDetailView is the full view of a single event.
type EventDetailView struct {
	EventID            string  `json:"事件编号"`
	Description        string  `json:"事件描述"`
	Town               string  `json:"镇街名称"`
	Village            *string `json:"村社名称"`
	Level              string  `json:"事件级别"`
	Category           string  `json:"二级分类"`
	ReportTime         string  `json:"上报时间"`
	CompletionTime     *string `json:"办结时间"`
	Resolution         *string `json:"处置结果"`
	EventUID           *string `json:"EventUID"`
	SequenceTotal      *int    `json:"sequence_total"`
	RelatedEventsCount *int    `json:"related_events_count"`
	CallerInfo         *string `json:"报警人信息"`
	InvolvedInfo       *string `json:"当事人信息"`
}

// FilterOptions lists the distinct values the event list can be filtered by.
type FilterOptions struct {
	Towns               []string `json:"towns"`
	Levels              []string `json:"levels"`
	Categories          []string `json:"categories"`
	RelatedEventOptions []string `json:"related_event_options"`
}

// TimelineEntry is one member report of a cluster.
type TimelineEntry struct {
	EventID        string  `json:"事件编号"`
	Description    string  `json:"事件描述"`
	ReportTime     string  `json:"上报时间"`
	CompletionTime *string `json:"办结时间"`
	Resolution     *string `json:"处置结果"`
	CallerInfo     *string `json:"报警人信息"`
	InvolvedInfo   *string `json:"当事人信息"`
}

// ClusterDetailView aggregates the member reports of one cluster.
type ClusterDetailView struct {
	EventUID         string          `json:"EventUID"`
	Description      string          `json:"Event_description"`
	ParticipantCount int             `json:"participant_count"`
	DurationDays     *float64        `json:"duration_days"`
	Timeline         []TimelineEntry `json:"timeline"`
	FirstReportTime  string          `json:"first_report_time"`
	LastReportTime   string          `json:"last_report_time"`
}

// ClusterSummary is one row of the cluster list.
type ClusterSummary struct {
	EventUID        string   `json:"EventUID"`
	Description     string   `json:"cluster_description"`
	RecordCount     int      `json:"record_count"`
	DurationDays    *float64 `json:"duration_days"`
	FirstReportTime string   `json:"first_report_time"`
	LastReportTime  string   `json:"last_report_time"`
}

// ClusterFilterOptions lists the range buckets available for the cluster list.
type ClusterFilterOptions struct {
	EventCountRanges []string `json:"event_count_ranges"`
	DurationRanges   []string `json:"duration_ranges"`
}

// PersonInfo is a population registry entry with masked identifiers.
type PersonInfo struct {
	PersonID         string  `json:"person_id"`
	Name             string  `json:"name_cn"`
	IDCard           string  `json:"id_card_no"`
	Phone            string  `json:"mobile_phone"`
	Gender           *string `json:"gender"`
	BirthDate        *string `json:"birth_date"`
	NationalityCode  *string `json:"nationality_code"`
	EthnicityCode    *string `json:"ethnicity_code"`
	HukouProvince    *string `json:"hukou_province"`
	HukouCity        *string `json:"hukou_city"`
	HukouCounty      *string `json:"hukou_county"`
	ResideProvince   *string `json:"reside_province"`
	ResideCity       *string `json:"reside_city"`
	ResideCounty     *string `json:"reside_county"`
	HighestEducation *string `json:"highest_education"`
	OccupationCode   *string `json:"occupation_code"`
	EmployerName     *string `json:"employer_name"`
}

// PersonAnalysisSummary is one row of the phone analysis list.
type PersonAnalysisSummary struct {
	Phone          string  `json:"phone"`
	Name           *string `json:"name"`
	IDCard         *string `json:"id_card"`
	PrimaryRole    *string `json:"primary_role"`
	EventCount     int     `json:"event_count"`
	NameCandidates *string `json:"name_candidates"`
	IDCandidates   *string `json:"id_candidates"`
}

// PersonEvent is one event in a phone's history, with the phone's role in it.
type PersonEvent struct {
	EventID        string  `json:"事件编号"`
	Description    string  `json:"事件描述"`
	Town           string  `json:"镇街名称"`
	Level          string  `json:"事件级别"`
	Category       string  `json:"二级分类"`
	ReportTime     string  `json:"上报时间"`
	CompletionTime *string `json:"办结时间"`
	Resolution     *string `json:"处置结果"`
	EventUID       *string `json:"EventUID"`
	Role           *string `json:"role"`
}

// PersonAnalysisDetail is a phone analysis entry with its event history.
type PersonAnalysisDetail struct {
	PersonAnalysisSummary
	Events []PersonEvent `json:"events"`
}

// Optional converts the "" sentinel to nil.
func Optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// OptionalInt returns a pointer to n.
func OptionalInt(n int) *int {
	return &n
}
