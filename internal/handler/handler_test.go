package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/attendance-api/internal/attendance"
	"github.com/noah-isme/attendance-api/internal/dto"
	"github.com/noah-isme/attendance-api/internal/models"
	"github.com/noah-isme/attendance-api/internal/service"
	"github.com/noah-isme/attendance-api/pkg/response"
)

type fakeCatalogSrv struct {
	lastDepartment string
	err            error
}

func (f *fakeCatalogSrv) Departments(context.Context) ([]models.Department, error) {
	return []models.Department{{ID: 1, Code: "INFO"}}, f.err
}

func (f *fakeCatalogSrv) Levels(_ context.Context, departmentCode string) ([]models.Level, error) {
	f.lastDepartment = departmentCode
	return []models.Level{{ID: 10, Code: "L1-INFO"}}, f.err
}

type fakeStudentSrv struct {
	lastFilter models.StudentFilter
	lastCount  models.PopulationFilter
	lastCreate service.CreateStudentRequest
	deletedID  int64
	err        error
}

func (f *fakeStudentSrv) List(_ context.Context, filter models.StudentFilter) ([]models.StudentDetail, *models.Pagination, error) {
	f.lastFilter = filter
	return []models.StudentDetail{}, &models.Pagination{Page: filter.Page, PageSize: filter.PageSize}, f.err
}

func (f *fakeStudentSrv) Search(context.Context, string) ([]models.StudentDetail, error) {
	return nil, f.err
}

func (f *fakeStudentSrv) ByLevel(context.Context, string) ([]models.StudentDetail, error) {
	return nil, f.err
}

func (f *fakeStudentSrv) Count(_ context.Context, filter models.PopulationFilter) (int, error) {
	f.lastCount = filter
	return 12, f.err
}

func (f *fakeStudentSrv) Create(_ context.Context, req service.CreateStudentRequest) (*models.StudentDetail, error) {
	f.lastCreate = req
	if f.err != nil {
		return nil, f.err
	}
	return &models.StudentDetail{Student: models.Student{ID: 5, FirstName: req.FirstName}}, nil
}

func (f *fakeStudentSrv) Delete(_ context.Context, id int64) (*models.StudentDetail, error) {
	f.deletedID = id
	if f.err != nil {
		return nil, f.err
	}
	return &models.StudentDetail{Student: models.Student{ID: id}}, nil
}

type fakeAttendanceSrv struct {
	lastMark   service.MarkAttendanceRequest
	lastRoster service.RosterQuery
	err        error
}

func (f *fakeAttendanceSrv) Mark(_ context.Context, req service.MarkAttendanceRequest) (*dto.RosterEntry, error) {
	f.lastMark = req
	if f.err != nil {
		return nil, f.err
	}
	return &dto.RosterEntry{Date: req.Date, Status: attendance.StatusPresent, IsPresent: true}, nil
}

func (f *fakeAttendanceSrv) Roster(_ context.Context, q service.RosterQuery) ([]dto.RosterEntry, error) {
	f.lastRoster = q
	return []dto.RosterEntry{}, f.err
}

type fakeReportSrv struct {
	hit        bool
	lastPeriod service.PeriodQuery
	lastMonth  service.OverviewQuery
	err        error
}

func (f *fakeReportSrv) Daily(_ context.Context, q service.ReportQuery) (*attendance.Report, bool, error) {
	if f.err != nil {
		return nil, false, f.err
	}
	return &attendance.Report{Date: q.Date, Global: attendance.NewRateBlock(4, 2)}, f.hit, nil
}

func (f *fakeReportSrv) Period(_ context.Context, q service.PeriodQuery) ([]attendance.PeriodStat, bool, error) {
	f.lastPeriod = q
	return []attendance.PeriodStat{{Label: "Statistiques de la semaine", TauxPresence: 48}}, f.hit, f.err
}

func (f *fakeReportSrv) Overview(_ context.Context, q service.OverviewQuery) (*dto.MonthlyOverview, bool, error) {
	f.lastMonth = q
	return &dto.MonthlyOverview{Month: "2024-03"}, f.hit, f.err
}

type fakeExportSrv struct {
	format string
	err    error
}

func (f *fakeExportSrv) Roster(_ context.Context, format string, q service.RosterQuery) (*service.ExportFile, error) {
	f.format = format
	if f.err != nil {
		return nil, f.err
	}
	return &service.ExportFile{Filename: "attendance-" + q.Date + "-abc.csv", ContentType: "text/csv", Body: []byte("a,b\n")}, nil
}

type fakes struct {
	catalog    *fakeCatalogSrv
	students   *fakeStudentSrv
	attendance *fakeAttendanceSrv
	reports    *fakeReportSrv
	exports    *fakeExportSrv
}

func newTestRouter(auth gin.HandlerFunc) (*gin.Engine, *fakes) {
	gin.SetMode(gin.TestMode)
	f := &fakes{
		catalog:    &fakeCatalogSrv{},
		students:   &fakeStudentSrv{},
		attendance: &fakeAttendanceSrv{},
		reports:    &fakeReportSrv{},
		exports:    &fakeExportSrv{},
	}
	r := gin.New()
	Register(r.Group("/api/v1"), Handlers{
		Catalog:    NewCatalogHandler(f.catalog),
		Students:   NewStudentHandler(f.students),
		Attendance: NewAttendanceHandler(f.attendance),
		Dashboard:  NewDashboardHandler(f.reports),
		Reports:    NewReportHandler(f.exports),
	}, auth)
	return r, f
}

func do(r *gin.Engine, method, path string, body interface{}, headers ...string) *httptest.ResponseRecorder {
	var payload *bytes.Reader
	if body != nil {
		raw, _ := json.Marshal(body)
		payload = bytes.NewReader(raw)
	} else {
		payload = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, payload)
	req.Header.Set("Content-Type", "application/json")
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func decode(rec *httptest.ResponseRecorder) response.Envelope {
	var env response.Envelope
	_ = json.Unmarshal(rec.Body.Bytes(), &env)
	return env
}
