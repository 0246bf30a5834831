// Package domain provides the record and response types of the incident
// query service.
//
// Records are the normalized rows held in memory. Optional text fields use
// "" for absent; the response views convert them to JSON null.
//
// Import Path: incidentlens.io/lens/internal/domain
package domain

import "time"

// EventDetail is one incident report.
type EventDetail struct {
	EventID        string
	Description    string
	Town           string
	Village        string
	Level          string
	Category       string
	ReportTime     string
	CompletionTime string
	Resolution     string
	ClusterID      string
	SequenceTotal  int
	CallerPhone    string
	CallerID       string
	PhoneSet       string

	// ReportedAt is ReportTime parsed at load; zero when unparseable.
	ReportedAt time.Time
}

// HasReportedAt reports whether ReportTime parsed.
func (e EventDetail) HasReportedAt() bool {
	return !e.ReportedAt.IsZero()
}

// RelatedEventsCount is the number of other reports merged with this one.
func (e EventDetail) RelatedEventsCount() int {
	if e.SequenceTotal > 1 {
		return e.SequenceTotal - 1
	}
	return 0
}

// Cluster is a precomputed summary of related reports sharing a cluster id.
type Cluster struct {
	ClusterID       string
	Description     string
	RecordCount     int
	DurationDays    *float64
	FirstReportTime string
	LastReportTime  string
}

// Person is one population registry entry. IDCard and Phone are raw values
// and must be masked before leaving the service layer.
type Person struct {
	PersonID         string
	Name             string
	IDCard           string
	Phone            string
	Gender           string
	BirthDate        string
	NationalityCode  string
	EthnicityCode    string
	HukouProvince    string
	HukouCity        string
	HukouCounty      string
	ResideProvince   string
	ResideCity       string
	ResideCounty     string
	HighestEducation string
	OccupationCode   string
	EmployerName     string
}

// PhoneAnalysis is an offline-built summary of one phone number across events.
type PhoneAnalysis struct {
	Phone          string
	Name           string
	IDCard         string
	PrimaryRole    string
	EventCount     int
	NameCandidates string
	IDCandidates   string
	// RelatedEvents is the serialized list of event ids, parsed on demand.
	RelatedEvents string
}
