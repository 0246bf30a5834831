package service

import (
	"strings"

	"incidentlens.io/lens/internal/domain"
	"incidentlens.io/lens/internal/masking"
	apperrors "incidentlens.io/lens/internal/pkg/errors"
	"incidentlens.io/lens/internal/store"
)

// PersonSearchQuery is the body of a people search. Blank filters are
// ignored. IDCard and Phone may carry '*' masks.
type PersonSearchQuery struct {
	Name     string `json:"name"`
	IDCard   string `json:"id_card"`
	Phone    string `json:"phone"`
	Page     int    `json:"page" binding:"gte=0"`
	PageSize int    `json:"page_size" binding:"gte=0,lte=100"`
}

// withDefaults fills an unset page and page size.
func (q PersonSearchQuery) withDefaults() PersonSearchQuery {
	if q.Page == 0 {
		q.Page = 1
	}
	if q.PageSize == 0 {
		q.PageSize = DefaultPeoplePageSize
	}
	return q
}

// PersonService queries the population registry. Identifiers never leave
// it unmasked.
type PersonService struct {
	store *store.Store
}

// NewPersonService creates a new PersonService.
func NewPersonService(st *store.Store) *PersonService {
	return &PersonService{store: st}
}

// SearchPeople returns a page of registry entries matching every non-blank
// filter. A zero page or page size takes its default.
func (s *PersonService) SearchPeople(q PersonSearchQuery) (domain.Page[domain.PersonInfo], error) {
	q = q.withDefaults()
	if err := checkPaging(q.Page, q.PageSize); err != nil {
		return domain.Page[domain.PersonInfo]{}, err
	}

	name := strings.TrimSpace(q.Name)
	idCard := strings.TrimSpace(q.IDCard)
	phone := strings.TrimSpace(q.Phone)

	var rows []domain.Person
	for _, p := range s.store.Snapshot().People() {
		if name != "" && !containsFold(p.Name, name) {
			continue
		}
		if idCard != "" && !masking.Match(idCard, p.IDCard, masking.IDCard) {
			continue
		}
		if phone != "" && !masking.Match(phone, p.Phone, masking.Phone) {
			continue
		}
		rows = append(rows, p)
	}

	return domain.MapPage(domain.Paginate(rows, q.Page, q.PageSize), toPersonInfo), nil
}

// GetPersonDetail returns one registry entry by person id.
func (s *PersonService) GetPersonDetail(personID string) (domain.PersonInfo, error) {
	p, ok := s.store.Snapshot().Person(personID)
	if !ok {
		return domain.PersonInfo{}, apperrors.ErrPersonNotFoundf(personID)
	}
	return toPersonInfo(p), nil
}

func toPersonInfo(p domain.Person) domain.PersonInfo {
	return domain.PersonInfo{
		PersonID:         p.PersonID,
		Name:             p.Name,
		IDCard:           masking.Mask(p.IDCard, masking.IDCard),
		Phone:            masking.Mask(p.Phone, masking.Phone),
		Gender:           domain.Optional(p.Gender),
		BirthDate:        domain.Optional(p.BirthDate),
		NationalityCode:  domain.Optional(p.NationalityCode),
		EthnicityCode:    domain.Optional(p.EthnicityCode),
		HukouProvince:    domain.Optional(p.HukouProvince),
		HukouCity:        domain.Optional(p.HukouCity),
		HukouCounty:      domain.Optional(p.HukouCounty),
		ResideProvince:   domain.Optional(p.ResideProvince),
		ResideCity:       domain.Optional(p.ResideCity),
		ResideCounty:     domain.Optional(p.ResideCounty),
		HighestEducation: domain.Optional(p.HighestEducation),
		OccupationCode:   domain.Optional(p.OccupationCode),
		EmployerName:     domain.Optional(p.EmployerName),
	}
}
