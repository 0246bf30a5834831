package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"incidentlens.io/lens/internal/api/generated"
	"incidentlens.io/lens/internal/api/middleware"
	"incidentlens.io/lens/internal/governance/audit"
	"incidentlens.io/lens/internal/loader"
	apperrors "incidentlens.io/lens/internal/pkg/errors"
	"incidentlens.io/lens/internal/pkg/logger"
	"incidentlens.io/lens/internal/store"
)

func init() {
	gin.SetMode(gin.TestMode)
	_ = logger.Init("error", "json")
}

func fixtureStore() *store.Store {
	return store.New(store.NewSnapshot(map[store.Dataset]store.Table{
		store.EventDetails: {
			Columns: []string{"事件编号", "事件描述", "镇街名称", "上报时间", "EventUID", "sequence_total", "phone_set"},
			Rows: [][]string{
				{"E1", "楼上噪音", "城东街道", "2025-05-01 10:00:00", "C1", "2", "138****1111"},
				{"E2", "楼上噪音again", "城东街道", "2025-05-02 22:00:00", "C1", "2", "139****2222"},
			},
		},
		store.Clusters: {
			Columns: []string{"EventUID", "cluster_description", "record_count", "duration_days"},
			Rows:    [][]string{{"C1", "噪音", "2", "2.5"}},
		},
		store.Extractions: {
			Columns: []string{"event_id", "extracted_info"},
			Rows:    [][]string{{"E1", `[{"role":"报警人","name":"张三","phone":"138****1111"}]`}},
		},
		store.Population: {
			Columns: []string{"person_id", "name_cn", "id_card_no", "mobile_phone"},
			Rows:    [][]string{{"P1", "张三", "123456789012345678", "13812345678"}},
		},
		store.PhoneAnalyses: {
			Columns: []string{"phone", "name", "primary_role", "event_count", "related_events"},
			Rows:    [][]string{{"138****1111", "张三", "报警人", "1", `["E1"]`}},
		},
	}))
}

type fakeReloader struct {
	report loader.Report
	err    error
	calls  int
	ctxErr error
}

func (f *fakeReloader) Reload(ctx context.Context) (loader.Report, error) {
	f.calls++
	f.ctxErr = ctx.Err()
	return f.report, f.err
}

func newTestRouter(st *store.Store, r Reloader) *gin.Engine {
	router := gin.New()
	router.Use(middleware.RequestID(), middleware.ErrorHandler())
	server := NewServer(ServerDeps{Store: st, Reloader: r, Version: "test"})
	router.GET("/", server.GetRoot)
	registerAPI(router, server)
	return router
}

func registerAPI(router gin.IRouter, server *Server) {
	generated.RegisterHandlersWithOptions(router, server, generated.GinServerOptions{
		BaseURL:      "/api",
		ErrorHandler: ParamErrorHandler,
	})
}

func do(t *testing.T, router http.Handler, method, target, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var out map[string]any
	if len(w.Body.Bytes()) > 0 && w.Body.Bytes()[0] == '{' {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	}
	return w, out
}

func TestServer_Events(t *testing.T) {
	router := newTestRouter(fixtureStore(), nil)

	w, body := do(t, router, http.MethodGet, "/api/events?page_size=1&town="+url.QueryEscape("城东"), "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 2, body["total"])
	assert.EqualValues(t, 2, body["total_pages"])
	assert.EqualValues(t, 1, body["page_size"])
	items := body["items"].([]any)
	require.Len(t, items, 1)
	first := items[0].(map[string]any)
	assert.Equal(t, "E2", first["事件编号"], "newest first")
	assert.Nil(t, first["报警人信息"])

	w, body = do(t, router, http.MethodGet, "/api/events/E1", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "姓名: 张三 | 电话: 138****1111", body["报警人信息"])
	assert.EqualValues(t, 1, body["related_events_count"])

	w, body = do(t, router, http.MethodGet, "/api/events/E404", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, apperrors.CodeEventNotFound, body["code"])

	w, body = do(t, router, http.MethodGet, "/api/filter-options", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []any{"城东街道"}, body["towns"])
}

func TestServer_InvalidPaging(t *testing.T) {
	router := newTestRouter(fixtureStore(), nil)

	for _, target := range []string{
		"/api/events?page=0",
		"/api/events?page_size=101",
		"/api/events?page=abc",
		"/api/cluster-list?page_size=0",
		"/api/person-analysis?page=-1",
		"/api/cluster-list?min_duration=long",
	} {
		w, body := do(t, router, http.MethodGet, target, "")
		assert.Equal(t, http.StatusBadRequest, w.Code, target)
		assert.Equal(t, apperrors.CodeInvalidQuery, body["code"], target)
	}

	w, body := do(t, router, http.MethodGet, "/api/events?page_size=101", "")
	require.Equal(t, http.StatusBadRequest, w.Code)
	fields := body["field_errors"].([]any)
	assert.Equal(t, "page_size", fields[0].(map[string]any)["field"])
}

func TestServer_UnparsableParameterNamed(t *testing.T) {
	router := newTestRouter(fixtureStore(), nil)

	tests := []struct {
		target string
		field  string
	}{
		{"/api/events?page=abc", "page"},
		{"/api/person-analysis?page_size=ten", "page_size"},
		{"/api/cluster-list?max_event_count=1.5", "max_event_count"},
		{"/api/cluster-list?min_duration=long", "min_duration"},
	}
	for _, tt := range tests {
		t.Run(tt.target, func(t *testing.T) {
			w, body := do(t, router, http.MethodGet, tt.target, "")
			require.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, apperrors.CodeInvalidQuery, body["code"])
			fields := body["field_errors"].([]any)
			require.Len(t, fields, 1)
			assert.Equal(t, tt.field, fields[0].(map[string]any)["field"])
		})
	}
}

func TestServer_GetEvents_DefaultsUnsetPaging(t *testing.T) {
	srv := NewServer(ServerDeps{Store: fixtureStore()})
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/events", nil)

	srv.GetEvents(c, generated.GetEventsParams{})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.EqualValues(t, 1, body["page"])
	assert.EqualValues(t, 20, body["page_size"])

	zero := 0
	w = httptest.NewRecorder()
	c, _ = gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/events?page=0", nil)
	srv.GetEvents(c, generated.GetEventsParams{Page: &zero})
	require.Len(t, c.Errors, 1, "an explicit page=0 is rejected, not defaulted")
	assert.ErrorIs(t, c.Errors.Last().Err, apperrors.ErrBadRequest)
}

func TestServer_SearchBodyValidated(t *testing.T) {
	router := newTestRouter(fixtureStore(), nil)

	w, body := do(t, router, http.MethodPost, "/api/people/search", `{"page_size":500}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, apperrors.CodeInvalidQuery, body["code"])
	fields := body["field_errors"].([]any)
	assert.Equal(t, "page_size", fields[0].(map[string]any)["field"])

	w, body = do(t, router, http.MethodPost, "/api/people/search", `{"name":null,"phone":null}`)
	require.Equal(t, http.StatusOK, w.Code, "null filters are ignored")
	assert.EqualValues(t, 1, body["page"])
}

func TestServer_Clusters(t *testing.T) {
	router := newTestRouter(fixtureStore(), nil)

	w, body := do(t, router, http.MethodGet, "/api/clusters/C1", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "噪音", body["Event_description"])
	assert.EqualValues(t, 2, body["participant_count"])
	assert.InDelta(t, 2.5, body["duration_days"], 1e-9)
	assert.Len(t, body["timeline"], 2)

	w, body = do(t, router, http.MethodGet, "/api/cluster-list?min_event_count=2&max_duration=3", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 1, body["total"])

	w, body = do(t, router, http.MethodGet, "/api/cluster-filter-options", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []any{"2"}, body["event_count_ranges"])
	assert.Equal(t, []any{"0-1天", "1-7天"}, body["duration_ranges"])

	w, body = do(t, router, http.MethodGet, "/api/clusters/C9", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, apperrors.CodeClusterNotFound, body["code"])
}

func TestServer_People(t *testing.T) {
	router := newTestRouter(fixtureStore(), nil)

	w, body := do(t, router, http.MethodPost, "/api/people/search", `{"id_card":"1234**********5678"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 10, body["page_size"], "people search defaults to 10 per page")
	items := body["items"].([]any)
	require.Len(t, items, 1)
	person := items[0].(map[string]any)
	assert.Equal(t, "1234**********5678", person["id_card_no"])
	assert.Equal(t, "138****5678", person["mobile_phone"])

	w, _ = do(t, router, http.MethodPost, "/api/people/search", `{"name":`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, body = do(t, router, http.MethodGet, "/api/people/P1", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "张三", body["name_cn"])
	assert.NotContains(t, w.Body.String(), "123456789012345678")

	w, body = do(t, router, http.MethodGet, "/api/people/P9", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, apperrors.CodePersonNotFound, body["code"])
}

func TestServer_PersonAnalysis(t *testing.T) {
	router := newTestRouter(fixtureStore(), nil)

	w, body := do(t, router, http.MethodGet, "/api/person-analysis?role="+url.QueryEscape("报警"), "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 1, body["total"])

	w, _ = do(t, router, http.MethodGet, "/api/person-analysis/roles", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `["报警人"]`, w.Body.String())

	w, body = do(t, router, http.MethodGet, "/api/person-analysis/138****1111", "")
	require.Equal(t, http.StatusOK, w.Code)
	events := body["events"].([]any)
	require.Len(t, events, 1)
	assert.Equal(t, "报警人", events[0].(map[string]any)["role"])

	w, body = do(t, router, http.MethodGet, "/api/person-analysis/000", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, apperrors.CodePhoneAnalysisNotFound, body["code"])
}

func TestServer_EmptyDatasets(t *testing.T) {
	router := newTestRouter(store.New(nil), nil)

	for _, target := range []string{"/api/events", "/api/cluster-list", "/api/person-analysis"} {
		w, body := do(t, router, http.MethodGet, target, "")
		require.Equal(t, http.StatusOK, w.Code, target)
		assert.EqualValues(t, 0, body["total"], target)
		assert.Equal(t, []any{}, body["items"], target)
	}

	w, body := do(t, router, http.MethodGet, "/api/health/ready", "")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Equal(t, HealthStatusDegraded, body["status"])
}

func TestServer_Health(t *testing.T) {
	router := newTestRouter(fixtureStore(), nil)

	w, body := do(t, router, http.MethodGet, "/", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "test", body["version"])

	w, body = do(t, router, http.MethodGet, "/api/health/live", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, HealthStatusOk, body["status"])

	w, body = do(t, router, http.MethodGet, "/api/health/ready", "")
	require.Equal(t, http.StatusOK, w.Code)
	rows := body["checks"].(map[string]any)["rows"].(map[string]any)
	assert.EqualValues(t, 2, rows["conflict_event_detail"])
	assert.EqualValues(t, 1, rows["phone_analysis"])
}

func TestServer_Reload(t *testing.T) {
	ok := &fakeReloader{report: loader.Report{Rows: map[string]int{"conflict_event_detail": 2}, DurationMS: 7}}
	w, body := do(t, newTestRouter(fixtureStore(), ok), http.MethodPost, "/api/admin/reload", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, ok.calls)
	assert.EqualValues(t, 7, body["duration_ms"])

	failing := &fakeReloader{err: apperrors.ErrReloadFailedf(errors.New("source down"))}
	w, body = do(t, newTestRouter(fixtureStore(), failing), http.MethodPost, "/api/admin/reload", "")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Equal(t, apperrors.CodeReloadFailed, body["code"])

	w, _ = do(t, newTestRouter(fixtureStore(), nil), http.MethodPost, "/api/admin/reload", "")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestServer_ReloadOutlivesClient(t *testing.T) {
	r := &fakeReloader{report: loader.Report{Rows: map[string]int{}}}
	router := newTestRouter(fixtureStore(), r)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	req := httptest.NewRequest(http.MethodPost, "/api/admin/reload", nil).WithContext(ctx)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, 1, r.calls)
	assert.NoError(t, r.ctxErr, "reload must not inherit the request cancellation")
}

func TestServer_LogLevel(t *testing.T) {
	router := newTestRouter(fixtureStore(), nil)

	w, body := do(t, router, http.MethodGet, "/api/admin/log-level", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "error", body["level"])

	w, _ = do(t, router, http.MethodPut, "/api/admin/log-level", `{"level":"bogus"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestServer_AdminActionsAudited(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	router := gin.New()
	router.Use(middleware.RequestID(), middleware.ErrorHandler())
	server := NewServer(ServerDeps{
		Store:    fixtureStore(),
		Reloader: &fakeReloader{err: apperrors.ErrReloadFailedf(errors.New("source down"))},
		Audit:    audit.NewLogger(zap.New(core)),
	})
	registerAPI(router, server)

	w, _ := do(t, router, http.MethodPost, "/api/admin/reload", "")
	require.Equal(t, http.StatusServiceUnavailable, w.Code)

	w, _ = do(t, router, http.MethodGet, "/api/admin/log-level", "")
	require.Equal(t, http.StatusOK, w.Code)
	w, _ = do(t, router, http.MethodPut, "/api/admin/log-level", `{"level":"warn"}`)
	require.Equal(t, http.StatusOK, w.Code)
	t.Cleanup(func() { _ = logger.SetLevel("error") })

	entries := logs.FilterLoggerName("audit").All()
	require.Len(t, entries, 2, "reads are not audited")

	reload := entries[0].ContextMap()
	assert.Equal(t, audit.ActionDatasetReload, reload["action"])
	assert.Equal(t, audit.OutcomeFailure, reload["outcome"])
	assert.NotEmpty(t, reload["request_id"])

	level := entries[1].ContextMap()
	assert.Equal(t, audit.ActionLogLevelChange, level["action"])
	assert.Equal(t, audit.OutcomeSuccess, level["outcome"])
	assert.Equal(t, map[string]interface{}{"from": "error", "to": "warn"}, level["details"])
}
