package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"incidentlens.io/lens/internal/domain"
	apperrors "incidentlens.io/lens/internal/pkg/errors"
)

func personIDs(items []domain.PersonInfo) []string {
	ids := make([]string, 0, len(items))
	for _, p := range items {
		ids = append(ids, p.PersonID)
	}
	return ids
}

func TestPersonService_SearchPeople(t *testing.T) {
	t.Parallel()

	svc := NewPersonService(newFixtureStore())
	tests := []struct {
		name  string
		query PersonSearchQuery
		want  []string
	}{
		{name: "no filters", want: []string{"P1", "P2", "P3"}},
		{name: "blank filters ignored", query: PersonSearchQuery{Name: "  ", Phone: " "}, want: []string{"P1", "P2", "P3"}},
		{name: "name substring", query: PersonSearchQuery{Name: "张三"}, want: []string{"P1", "P2"}},
		{name: "masked id card", query: PersonSearchQuery{IDCard: "1234**********5678"}, want: []string{"P1"}},
		{name: "short masked id prefix", query: PersonSearchQuery{IDCard: "123*5678"}, want: []string{}},
		{name: "literal id card", query: PersonSearchQuery{IDCard: "110105199001011234"}, want: []string{"P2"}},
		{name: "masked phone", query: PersonSearchQuery{Phone: "138****5678"}, want: []string{"P1"}},
		{name: "masked phone prefix", query: PersonSearchQuery{Phone: "138****"}, want: []string{}},
		{name: "partial literal phone", query: PersonSearchQuery{Phone: "1381234"}, want: []string{}},
		{name: "filters combine", query: PersonSearchQuery{Name: "张", Phone: "139****0000"}, want: []string{"P2"}},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			page, err := svc.SearchPeople(tt.query)
			require.NoError(t, err)
			assert.Equal(t, tt.want, personIDs(page.Items))
			assert.Equal(t, DefaultPeoplePageSize, page.PageSize)
			assert.Equal(t, 1, page.Page)
		})
	}
}

func TestPersonService_SearchPeople_MasksResults(t *testing.T) {
	t.Parallel()

	page, err := NewPersonService(newFixtureStore()).SearchPeople(PersonSearchQuery{IDCard: "1234**********5678"})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)

	p := page.Items[0]
	assert.Equal(t, "1234**********5678", p.IDCard, "masks back to the query pattern")
	assert.Equal(t, "138****5678", p.Phone)
	require.NotNil(t, p.Gender)
	assert.Equal(t, "男", *p.Gender)
	assert.Nil(t, p.EmployerName)
}

func TestPersonService_SearchPeople_Paging(t *testing.T) {
	t.Parallel()

	svc := NewPersonService(newFixtureStore())
	page, err := svc.SearchPeople(PersonSearchQuery{Page: 2, PageSize: 2})
	require.NoError(t, err)
	assert.Equal(t, []string{"P3"}, personIDs(page.Items))
	assert.Equal(t, 3, page.Total)
	assert.Equal(t, 2, page.TotalPages)

	_, err = svc.SearchPeople(PersonSearchQuery{Page: -1})
	assert.Error(t, err)
	_, err = svc.SearchPeople(PersonSearchQuery{PageSize: 101})
	assert.Error(t, err)
}

func TestPersonService_GetPersonDetail(t *testing.T) {
	t.Parallel()

	svc := NewPersonService(newFixtureStore())
	p, err := svc.GetPersonDetail("P2")
	require.NoError(t, err)
	assert.Equal(t, "张三丰", p.Name)
	assert.Equal(t, "1101**********1234", p.IDCard)
	assert.Equal(t, "139****0000", p.Phone)
	assert.Nil(t, p.Gender)

	_, err = svc.GetPersonDetail("P404")
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
	appErr, _ := apperrors.As(err)
	assert.Equal(t, apperrors.CodePersonNotFound, appErr.Code)
}

func TestPersonService_EmptyDataset(t *testing.T) {
	t.Parallel()

	page, err := NewPersonService(newEmptyStore()).SearchPeople(PersonSearchQuery{Name: "张三"})
	require.NoError(t, err)
	assert.Equal(t, 0, page.Total)
	assert.Empty(t, page.Items)
}
