package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"incidentlens.io/lens/internal/domain"
	apperrors "incidentlens.io/lens/internal/pkg/errors"
)

func phones(items []domain.PersonAnalysisSummary) []string {
	out := make([]string, 0, len(items))
	for _, a := range items {
		out = append(out, a.Phone)
	}
	return out
}

func TestAnalysisService_GetPersonAnalysis(t *testing.T) {
	t.Parallel()

	svc := NewAnalysisService(newFixtureStore())
	tests := []struct {
		name  string
		query AnalysisQuery
		want  []string
	}{
		{name: "busiest first, stable", want: []string{"138****1111", "136****4444", "139****2222", "137****3333"}},
		{name: "search name", query: AnalysisQuery{Search: "张三"}, want: []string{"138****1111"}},
		{name: "search phone", query: AnalysisQuery{Search: "4444"}, want: []string{"136****4444"}},
		{name: "role", query: AnalysisQuery{Role: "报警"}, want: []string{"138****1111", "136****4444"}},
		{name: "role and search", query: AnalysisQuery{Role: "报警人", Search: "王"}, want: []string{"136****4444"}},
		{name: "no match", query: AnalysisQuery{Search: "nobody"}, want: []string{}},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			tt.query.Page, tt.query.PageSize = 1, 20
			page, err := svc.GetPersonAnalysis(tt.query)
			require.NoError(t, err)
			assert.Equal(t, tt.want, phones(page.Items))
		})
	}
}

func TestAnalysisService_GetPersonAnalysisDetail(t *testing.T) {
	t.Parallel()

	svc := NewAnalysisService(newFixtureStore())

	detail, err := svc.GetPersonAnalysisDetail("139****2222")
	require.NoError(t, err)
	assert.Equal(t, 2, detail.EventCount)
	require.NotNil(t, detail.Name)
	assert.Equal(t, "李四", *detail.Name)
	assert.Nil(t, detail.IDCard)

	require.Len(t, detail.Events, 2, "missing event skipped")
	assert.Equal(t, "E1", detail.Events[0].EventID, "oldest first")
	assert.Equal(t, "对方", *detail.Events[0].Role)
	assert.Equal(t, "E2", detail.Events[1].EventID)
	assert.Equal(t, "报警人", *detail.Events[1].Role)
	require.NotNil(t, detail.Events[0].EventUID)
	assert.Equal(t, "C1", *detail.Events[0].EventUID)

	detail, err = svc.GetPersonAnalysisDetail("138****1111")
	require.NoError(t, err)
	require.Len(t, detail.Events, 2, "single-quoted list accepted")
	assert.Equal(t, "E3", detail.Events[0].EventID)
	assert.Equal(t, "当事人", *detail.Events[0].Role)
	assert.Equal(t, "E1", detail.Events[1].EventID)
	assert.Equal(t, "报警人", *detail.Events[1].Role)
}

func TestAnalysisService_GetPersonAnalysisDetail_Degraded(t *testing.T) {
	t.Parallel()

	svc := NewAnalysisService(newFixtureStore())
	for _, phone := range []string{"137****3333", "136****4444"} {
		detail, err := svc.GetPersonAnalysisDetail(phone)
		require.NoError(t, err, phone)
		assert.NotNil(t, detail.Events)
		assert.Empty(t, detail.Events)
	}

	_, err := svc.GetPersonAnalysisDetail("135****0000")
	require.Error(t, err)
	appErr, ok := apperrors.As(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodePhoneAnalysisNotFound, appErr.Code)
	assert.NotContains(t, appErr.Error(), "135****0000")
}

func TestAnalysisService_GetPersonAnalysisRoles(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []string{"对方", "当事人", "报警人"}, NewAnalysisService(newFixtureStore()).GetPersonAnalysisRoles())

	roles := NewAnalysisService(newEmptyStore()).GetPersonAnalysisRoles()
	assert.NotNil(t, roles)
	assert.Empty(t, roles)
}

func TestParseRelatedEvents(t *testing.T) {
	t.Parallel()

	tests := []struct {
		raw     string
		want    []string
		wantErr bool
	}{
		{raw: "", want: nil},
		{raw: `["E1","E2"]`, want: []string{"E1", "E2"}},
		{raw: `['E1', 'E2']`, want: []string{"E1", "E2"}},
		{raw: `[1, 2.0, "x", null, " "]`, want: []string{"1", "2", "x"}},
		{raw: `[]`, want: []string{}},
		{raw: `E1,E2`, wantErr: true},
		{raw: `{"a":1}`, wantErr: true},
	}
	for _, tt := range tests {
		got, err := parseRelatedEvents(tt.raw)
		if tt.wantErr {
			assert.Error(t, err, tt.raw)
			continue
		}
		require.NoError(t, err, tt.raw)
		assert.Equal(t, tt.want, got, tt.raw)
	}
}
