// Package store holds the in-memory tables the query services read.
//
// A Snapshot is built once from raw tables and never modified afterwards.
// The Store publishes snapshots through an atomic pointer so readers never
// take a lock; a reload builds a complete Snapshot before swapping it in.
//
// Import Path: incidentlens.io/lens/internal/store
package store

// Dataset names one of the five source tables. The name doubles as the
// default CSV file stem and database table name.
type Dataset string

const (
	EventDetails  Dataset = "conflict_event_detail"
	Clusters      Dataset = "conflict_event"
	Extractions   Dataset = "info_merge"
	Population    Dataset = "population"
	PhoneAnalyses Dataset = "phone_analysis"
)

// AllDatasets returns every dataset in load order.
func AllDatasets() []Dataset {
	return []Dataset{EventDetails, Clusters, Extractions, Population, PhoneAnalyses}
}

func (d Dataset) String() string { return string(d) }

// Event detail columns.
const (
	ColEventID        = "事件编号"
	ColDescription    = "事件描述"
	ColTown           = "镇街名称"
	ColVillage        = "村社名称"
	ColLevel          = "事件级别"
	ColCategory       = "二级分类"
	ColReportTime     = "上报时间"
	ColCompletionTime = "办结时间"
	ColResolution     = "处置结果"
	ColClusterID      = "EventUID"
	ColSequenceTotal  = "sequence_total"
	ColCallerPhone    = "CallerPhone"
	ColCallerID       = "CallerID"
	ColPhoneSet       = "phone_set"
)

// Cluster columns. The cluster id shares ColClusterID.
const (
	ColClusterDescription = "cluster_description"
	ColRecordCount        = "record_count"
	ColDurationDays       = "duration_days"
	ColFirstReportTime    = "first_report_time"
	ColLastReportTime     = "last_report_time"
)

// Extraction columns.
const (
	ColExtractionEventID = "event_id"
	ColExtractedInfo     = "extracted_info"
)

// Population registry columns.
const (
	ColPersonID         = "person_id"
	ColNameCN           = "name_cn"
	ColIDCardNo         = "id_card_no"
	ColMobilePhone      = "mobile_phone"
	ColGender           = "gender"
	ColBirthDate        = "birth_date"
	ColNationalityCode  = "nationality_code"
	ColEthnicityCode    = "ethnicity_code"
	ColHukouProvince    = "hukou_province"
	ColHukouCity        = "hukou_city"
	ColHukouCounty      = "hukou_county"
	ColResideProvince   = "reside_province"
	ColResideCity       = "reside_city"
	ColResideCounty     = "reside_county"
	ColHighestEducation = "highest_education"
	ColOccupationCode   = "occupation_code"
	ColEmployerName     = "employer_name"
)

// Phone analysis columns.
const (
	ColPhone          = "phone"
	ColName           = "name"
	ColIDCard         = "id_card"
	ColPrimaryRole    = "primary_role"
	ColEventCount     = "event_count"
	ColNameCandidates = "name_candidates"
	ColIDCandidates   = "id_candidates"
	ColRelatedEvents  = "related_events"
)
