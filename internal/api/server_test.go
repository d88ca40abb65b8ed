package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ilyadubrovsky/notenmeister/internal/config"
	"github.com/ilyadubrovsky/notenmeister/internal/repository/memory"
	"github.com/ilyadubrovsky/notenmeister/internal/service/report"
	"github.com/ilyadubrovsky/notenmeister/internal/service/subjects"
	"github.com/ilyadubrovsky/notenmeister/internal/service/token"
	"github.com/ilyadubrovsky/notenmeister/internal/service/user"
	"github.com/ilyadubrovsky/notenmeister/internal/validation"
)

const testUserID int64 = 99

const syncBody = `{
	"subjects": [
		{
			"id": "1700000000001",
			"name": "Mathematik",
			"isMainSubject": true,
			"grades": [
				{"id": "g1", "type": "SA", "value": 2, "weight": 1, "date": "2024-01-10"},
				{"id": "g2", "type": "Ex", "value": 3, "weight": 1, "date": "2024-02-01"}
			]
		},
		{
			"id": "1700000000002",
			"name": "Kunst",
			"isMainSubject": false,
			"grades": [
				{"id": "g3", "type": "M", "value": 1, "weight": 1, "date": "2024-02-20"}
			]
		}
	]
}`

func setup(t *testing.T) (*Server, string) {
	t.Helper()
	ctx := context.Background()

	store := memory.NewStore()
	userSvc := user.NewService(store.Users())
	require.NoError(t, userSvc.Register(ctx, testUserID, "Anna"))
	subjectsSvc := subjects.NewService(userSvc, store.Subjects(), validation.New())
	tokenSvc := token.NewService(config.Token{Secret: "test-secret", TTL: time.Hour})

	accessToken, _, err := tokenSvc.Issue(testUserID, time.Now())
	require.NoError(t, err)

	server := NewServer(
		subjectsSvc,
		report.NewService(userSvc, subjectsSvc),
		tokenSvc,
		config.HTTP{DisableReqLogs: true, ShutdownTimeout: time.Second},
	)

	return server, accessToken
}

func do(server *Server, method, path, accessToken, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+accessToken)
	}
	rec := httptest.NewRecorder()
	server.Handler().ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), v), rec.Body.String())
}

func TestHealth(t *testing.T) {
	server, _ := setup(t)

	rec := do(server, http.MethodGet, "/health", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestAuth(t *testing.T) {
	server, _ := setup(t)

	tests := []struct {
		name  string
		token string
	}{
		{name: "missing token"},
		{name: "invalid token", token: "abc.def.ghi"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(server, http.MethodGet, "/v1/subjects", tt.token, "")
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.JSONEq(t, `{"error":"missing or invalid sync token"}`, rec.Body.String())
		})
	}
}

func TestSubjects(t *testing.T) {
	server, accessToken := setup(t)

	rec := do(server, http.MethodGet, "/v1/subjects", accessToken, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"subjects":[]}`, rec.Body.String())

	rec = do(server, http.MethodPut, "/v1/subjects", accessToken, syncBody)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = do(server, http.MethodGet, "/v1/subjects", accessToken, "")
	require.Equal(t, http.StatusOK, rec.Code)

	var response subjectsResponse
	decode(t, rec, &response)
	require.Len(t, response.Subjects, 2)

	math := response.Subjects[0]
	assert.Equal(t, "Mathematik", math.Name)
	assert.Equal(t, "2.33", math.FormattedGrade)
	require.Len(t, math.Grades, 2)
	assert.Equal(t, "2024-01-10", math.Grades[0].Date)
	assert.Equal(t, "1.00", response.Subjects[1].FormattedGrade)
}

func TestPutSubjects_Invalid(t *testing.T) {
	server, accessToken := setup(t)

	tests := []struct {
		name   string
		body   string
		code   int
		prefix string
	}{
		{
			name: "malformed json",
			body: `{"subjects": [`,
			code: http.StatusBadRequest,
		},
		{
			name:   "grade out of range",
			body:   `{"subjects":[{"name":"Mathematik","grades":[{"type":"SA","value":9,"weight":1,"date":"2024-01-10"}]}]}`,
			code:   http.StatusBadRequest,
			prefix: "invalid input: ",
		},
		{
			name:   "weight too large",
			body:   `{"subjects":[{"name":"Mathematik","grades":[{"type":"SA","value":2,"weight":1e308,"date":"2024-01-10"}]}]}`,
			code:   http.StatusBadRequest,
			prefix: "invalid input: ",
		},
		{
			name:   "duplicate names",
			body:   `{"subjects":[{"name":"Musik"},{"name":"Musik"}]}`,
			code:   http.StatusConflict,
			prefix: "already exists",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(server, http.MethodPut, "/v1/subjects", accessToken, tt.body)
			assert.Equal(t, tt.code, rec.Code, rec.Body.String())

			var body map[string]string
			decode(t, rec, &body)
			assert.NotEmpty(t, body["error"])
			assert.True(t, strings.HasPrefix(body["error"], tt.prefix), body["error"])
			assert.NotContains(t, body["error"], "Svc.")
		})
	}
}

func TestSummary(t *testing.T) {
	server, accessToken := setup(t)
	require.Equal(t, http.StatusOK, do(server, http.MethodPut, "/v1/subjects", accessToken, syncBody).Code)

	rec := do(server, http.MethodGet, "/v1/summary", accessToken, "")
	require.Equal(t, http.StatusOK, rec.Code)

	var summary summaryDTO
	decode(t, rec, &summary)
	assert.Equal(t, "1.67", summary.FormattedGrade)
	assert.Equal(t, 3, summary.TotalGrades)
	assert.Equal(t, 2, summary.GradedSubjects)
	require.NotNil(t, summary.Best)
	assert.Equal(t, "Kunst", summary.Best.Name)
	assert.Equal(t, "excellent", summary.Best.ColorClass)
	require.NotNil(t, summary.Worst)
	assert.Equal(t, "Mathematik", summary.Worst.Name)
	assert.Equal(t, "declining", summary.Worst.Trend)
}

func TestExport(t *testing.T) {
	server, accessToken := setup(t)
	require.Equal(t, http.StatusOK, do(server, http.MethodPut, "/v1/subjects", accessToken, syncBody).Code)

	rec := do(server, http.MethodGet, "/v1/export/csv", accessToken, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/csv; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "notenuebersicht_anna_")
	assert.True(t, strings.HasPrefix(rec.Body.String(), "Fach,Typ,Note,Gewicht,Datum,Beschreibung,Fachnote\n"))

	rec = do(server, http.MethodGet, "/v1/export/docx", accessToken, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
