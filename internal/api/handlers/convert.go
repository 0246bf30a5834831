package handlers

import "incidentlens.io/lens/internal/service"

// defaultPagination fills unset paging parameters. Values that were sent are
// kept so the service can reject them.
func defaultPagination(page, pageSize *int) (int, int) {
	p, ps := 1, service.DefaultPageSize
	if page != nil {
		p = *page
	}
	if pageSize != nil {
		ps = *pageSize
	}
	return p, ps
}

func stringOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
