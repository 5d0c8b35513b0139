package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/Spok95/rawmat-report/internal/aggregation"
	"github.com/Spok95/rawmat-report/internal/dates"
	"github.com/Spok95/rawmat-report/internal/domain/materials"
	"github.com/Spok95/rawmat-report/internal/infra/logger"
	"github.com/Spok95/rawmat-report/internal/report"
)

type fakeReports struct {
	gotRange   dates.Range
	gotVersion string
	err        error
}

func (f *fakeReports) Build(_ context.Context, rng dates.Range, version string) (report.Workbook, error) {
	f.gotRange, f.gotVersion = rng, version
	if f.err != nil {
		return report.Workbook{}, f.err
	}
	return report.Workbook{
		Meta: report.Meta{From: rng.From, To: rng.To, Version: version},
		Rows: report.Assemble(rng, report.Inputs{}),
	}, nil
}

func (f *fakeReports) Material(_ context.Context, name string, rng dates.Range) (aggregation.Result, error) {
	if name != "Konz H1" {
		return aggregation.Result{}, fmt.Errorf("%w: %s", materials.ErrNoMaterials, name)
	}
	return aggregation.Result{Daily: map[dates.Day]aggregation.DayDetail{rng.From: {Total: 12.5}}}, nil
}

type fakeVersions []string

func (f fakeVersions) Versions(context.Context) ([]string, error) { return f, nil }

func newTestServer(rep *fakeReports) *Server {
	return New(":0", true, rep, fakeVersions{"Budget 2024", "FC 03"}, logger.Discard())
}

func get(t *testing.T, s *Server, url string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, url, nil))
	return rec
}

func TestReport_StreamsWorkbook(t *testing.T) {
	rep := &fakeReports{}
	rec := get(t, newTestServer(rep), "/report?from=01.01.2024&to=03.01.2024&version=FC%2003")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	if rep.gotVersion != "FC 03" || rep.gotRange.Len() != 3 {
		t.Fatalf("build called with %v %q", rep.gotRange, rep.gotVersion)
	}
	if cd := rec.Header().Get("Content-Disposition"); cd != `attachment; filename="Report_2024-01-01_2024-01-03.xlsx"` {
		t.Fatalf("disposition = %s", cd)
	}

	f, err := excelize.OpenReader(bytes.NewReader(rec.Body.Bytes()))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer func() { _ = f.Close() }()
	if v, _ := f.GetCellValue(report.SheetReport, "A9"); v != "2024-01-03" {
		t.Fatalf("last day = %q", v)
	}
}

func TestReport_BadRequests(t *testing.T) {
	s := newTestServer(&fakeReports{})
	for _, url := range []string{
		"/report?from=2024-01-01&to=03.01.2024&version=V",
		"/report?from=05.01.2024&to=03.01.2024&version=V",
		"/report?from=01.01.2024&to=03.01.2024",
	} {
		if rec := get(t, s, url); rec.Code != http.StatusBadRequest {
			t.Fatalf("%s: status = %d", url, rec.Code)
		}
	}
}

func TestReport_BuildError(t *testing.T) {
	rec := get(t, newTestServer(&fakeReports{err: errors.New("db down")}), "/report?from=01.01.2024&to=01.01.2024&version=V")
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestVersionsAndHealth(t *testing.T) {
	s := newTestServer(&fakeReports{})

	var vs []string
	if err := json.NewDecoder(get(t, s, "/versions").Body).Decode(&vs); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(vs) != 2 || vs[1] != "FC 03" {
		t.Fatalf("versions = %v", vs)
	}
	if rec := get(t, s, "/health"); rec.Code != http.StatusOK || rec.Body.String() != "OK" {
		t.Fatalf("health = %d %q", rec.Code, rec.Body.String())
	}
}

func TestMaterial(t *testing.T) {
	s := newTestServer(&fakeReports{})

	rec := get(t, s, "/material?name=Konz%20H1&from=01.01.2024&to=01.01.2024")
	var days []materialDay
	if err := json.NewDecoder(rec.Body).Decode(&days); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(days) != 1 || days[0].Day != "2024-01-01" || days[0].Tons != 12.5 {
		t.Fatalf("days = %+v", days)
	}

	if rec := get(t, s, "/material?name=nope&from=01.01.2024&to=01.01.2024"); rec.Code != http.StatusNotFound {
		t.Fatalf("unknown material status = %d", rec.Code)
	}
}
