package matchhandlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	matchservice "github.com/Black-And-White-Club/league-admin/app/modules/match/application"
	"github.com/Black-And-White-Club/league-admin/app/modules/match/application/importer"
	matchdb "github.com/Black-And-White-Club/league-admin/app/modules/match/infrastructure/repositories"
	"github.com/Black-And-White-Club/league-admin/app/shared/apperr"
	"github.com/Black-And-White-Club/league-admin/app/shared/crud"
	"github.com/Black-And-White-Club/league-admin/app/shared/httpx"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type FakeService struct {
	crud.EntityService[matchdb.Match]

	UpdateResultFunc   func(ctx context.Context, matchID string, update matchservice.ResultUpdate) (*matchdb.Match, error)
	ImportMatchesFunc  func(ctx context.Context, req matchservice.ImportRequest) (*matchdb.ImportRun, error)
	EnqueueImportFunc  func(ctx context.Context, req matchservice.ImportRequest) (*matchdb.ImportRun, error)
	GetImportRunFunc   func(ctx context.Context, importID string) (*matchdb.ImportRun, error)
	ExportTemplateFunc func(ctx context.Context) ([]byte, error)
	StandingsFunc      func(ctx context.Context, leagueID string) ([]matchservice.StandingRow, error)
	ChartFunc          func(ctx context.Context, leagueID string) ([]byte, error)

	trace []string
}

func (f *FakeService) record(step string) { f.trace = append(f.trace, step) }

func (f *FakeService) Matches() crud.EntityService[matchdb.Match] { return f.EntityService }

func (f *FakeService) UpdateResult(ctx context.Context, matchID string, update matchservice.ResultUpdate) (*matchdb.Match, error) {
	f.record("UpdateResult")
	return f.UpdateResultFunc(ctx, matchID, update)
}

func (f *FakeService) ImportMatches(ctx context.Context, req matchservice.ImportRequest) (*matchdb.ImportRun, error) {
	f.record("ImportMatches")
	return f.ImportMatchesFunc(ctx, req)
}

func (f *FakeService) EnqueueImport(ctx context.Context, req matchservice.ImportRequest) (*matchdb.ImportRun, error) {
	f.record("EnqueueImport")
	return f.EnqueueImportFunc(ctx, req)
}

func (f *FakeService) GetImportRun(ctx context.Context, importID string) (*matchdb.ImportRun, error) {
	f.record("GetImportRun")
	return f.GetImportRunFunc(ctx, importID)
}

func (f *FakeService) ExportTemplate(ctx context.Context) ([]byte, error) {
	f.record("ExportTemplate")
	return f.ExportTemplateFunc(ctx)
}

func (f *FakeService) Standings(ctx context.Context, leagueID string) ([]matchservice.StandingRow, error) {
	f.record("Standings")
	return f.StandingsFunc(ctx, leagueID)
}

func (f *FakeService) StandingsChart(ctx context.Context, leagueID string) ([]byte, error) {
	f.record("StandingsChart")
	return f.ChartFunc(ctx, leagueID)
}

var _ matchservice.Service = (*FakeService)(nil)

func newRouter(svc *FakeService, guard func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()
	NewHandlers(svc, nil, 1<<20).RegisterRoutes(r, guard)
	return r
}

func upload(t *testing.T, target, filename string, data []byte) *http.Request {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	if filename != "" {
		part, err := mw.CreateFormFile("file", filename)
		require.NoError(t, err)
		_, err = part.Write(data)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())
	req := httptest.NewRequest(http.MethodPost, target, &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestHandlers_ImportMatches(t *testing.T) {
	csv := []byte("homeTeam,awayTeam,date,venue,matchNo\nLions,Tigers,2024-05-01,Main Stadium,1\n")

	tests := []struct {
		name       string
		target     string
		filename   string
		importErr  error
		wantStatus int
		wantBody   httpx.ErrorBody
		wantTrace  []string
	}{
		{
			name:       "sync import",
			target:     "/leagues/l1/imports",
			filename:   "matches.csv",
			wantStatus: http.StatusCreated,
			wantTrace:  []string{"ImportMatches"},
		},
		{
			name:       "async import",
			target:     "/leagues/l1/imports?async=true",
			filename:   "matches.csv",
			wantStatus: http.StatusAccepted,
			wantTrace:  []string{"EnqueueImport"},
		},
		{
			name:       "pipeline failure",
			target:     "/leagues/l1/imports",
			filename:   "matches.csv",
			importErr:  &importer.StageError{Stage: importer.StageResolving, Err: &importer.UnknownTeamError{Side: importer.SideHome, Name: "Lions FC"}},
			wantStatus: http.StatusUnprocessableEntity,
			wantBody: httpx.ErrorBody{
				Error: `home team "Lions FC" not found`,
				Code:  importer.CodeUnknownTeam,
				Stage: string(importer.StageResolving),
			},
			wantTrace: []string{"ImportMatches"},
		},
		{
			name:       "unknown league",
			target:     "/leagues/nope/imports",
			filename:   "matches.csv",
			importErr:  apperr.ErrNotFound,
			wantStatus: http.StatusNotFound,
			wantTrace:  []string{"ImportMatches"},
		},
		{
			name:       "missing file",
			target:     "/leagues/l1/imports",
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got matchservice.ImportRequest
			run := func(_ context.Context, req matchservice.ImportRequest) (*matchdb.ImportRun, error) {
				got = req
				if tt.importErr != nil {
					return nil, tt.importErr
				}
				return &matchdb.ImportRun{ID: "imp-1", LeagueID: req.LeagueID, Status: matchdb.ImportCompleted}, nil
			}
			svc := &FakeService{ImportMatchesFunc: run, EnqueueImportFunc: run}

			rec := httptest.NewRecorder()
			newRouter(svc, nil).ServeHTTP(rec, upload(t, tt.target, tt.filename, csv))

			assert.Equal(t, tt.wantStatus, rec.Code, rec.Body.String())
			assert.Equal(t, tt.wantTrace, svc.trace)
			if tt.wantBody != (httpx.ErrorBody{}) {
				var body httpx.ErrorBody
				require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
				assert.Equal(t, tt.wantBody, body)
			}
			if tt.wantStatus < 300 {
				assert.Equal(t, tt.filename, got.FileName)
				assert.Equal(t, csv, got.Data)
				assert.Equal(t, "l1", got.LeagueID)
			}
		})
	}
}

func TestHandlers_ImportRequiresGuard(t *testing.T) {
	deny := func(http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusForbidden)
		})
	}
	svc := &FakeService{}
	rec := httptest.NewRecorder()
	newRouter(svc, deny).ServeHTTP(rec, upload(t, "/leagues/l1/imports", "m.csv", []byte("x")))

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Empty(t, svc.trace)
}

func TestHandlers_UploadTooLarge(t *testing.T) {
	svc := &FakeService{}
	rec := httptest.NewRecorder()
	newRouter(svc, nil).ServeHTTP(rec, upload(t, "/leagues/l1/imports", "m.csv", bytes.Repeat([]byte("a"), 2<<20)))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, svc.trace)
}

func TestHandlers_Template(t *testing.T) {
	svc := &FakeService{ExportTemplateFunc: func(context.Context) ([]byte, error) { return []byte("PK\x03\x04"), nil }}
	rec := httptest.NewRecorder()
	newRouter(svc, nil).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/leagues/l1/imports/template", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, xlsxContentType, rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "matches_template.xlsx")
	assert.Equal(t, "PK\x03\x04", rec.Body.String())
}

func TestHandlers_UpdateResult(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		err        error
		wantStatus int
	}{
		{name: "ok", body: `{"status":"PLAYED","homeScore":2,"awayScore":1}`, wantStatus: http.StatusOK},
		{name: "invalid", body: `{"status":"NOPE"}`, err: matchservice.ErrInvalidStatus, wantStatus: http.StatusBadRequest},
		{name: "malformed", body: `{"score":1}`, wantStatus: http.StatusBadRequest},
		{name: "missing", body: `{"status":"PLAYED"}`, err: apperr.ErrNotFound, wantStatus: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &FakeService{UpdateResultFunc: func(_ context.Context, id string, u matchservice.ResultUpdate) (*matchdb.Match, error) {
				if tt.err != nil {
					return nil, tt.err
				}
				return &matchdb.Match{ID: id, Status: u.Status, HomeScore: u.HomeScore, AwayScore: u.AwayScore}, nil
			}}
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPatch, "/matches/m1/result", strings.NewReader(tt.body))
			newRouter(svc, nil).ServeHTTP(rec, req)
			assert.Equal(t, tt.wantStatus, rec.Code, rec.Body.String())
		})
	}
}

func TestHandlers_Standings(t *testing.T) {
	svc := &FakeService{
		StandingsFunc: func(_ context.Context, leagueID string) ([]matchservice.StandingRow, error) {
			if leagueID != "l1" {
				return nil, apperr.ErrNotFound
			}
			return []matchservice.StandingRow{{Position: 1, TeamName: "Lions", Points: 3}}, nil
		},
		ChartFunc: func(context.Context, string) ([]byte, error) { return nil, errors.New("render failed") },
	}
	router := newRouter(svc, nil)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/leagues/l1/standings", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	var table []matchservice.StandingRow
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&table))
	assert.Equal(t, "Lions", table[0].TeamName)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/leagues/l2/standings", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/leagues/l1/standings.png", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestHandlers_ImportRun(t *testing.T) {
	svc := &FakeService{GetImportRunFunc: func(_ context.Context, id string) (*matchdb.ImportRun, error) {
		return &matchdb.ImportRun{ID: id, Status: matchdb.ImportPending}, nil
	}}
	rec := httptest.NewRecorder()
	newRouter(svc, nil).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/imports/imp-9", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var run matchdb.ImportRun
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&run))
	assert.Equal(t, "imp-9", run.ID)
	assert.Equal(t, matchdb.ImportPending, run.Status)
}
