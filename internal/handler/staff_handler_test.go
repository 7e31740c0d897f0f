package handler

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wmhmc/camp-attendance-api/internal/models"
	"github.com/wmhmc/camp-attendance-api/internal/service"
)

type fakeStaffRepo struct {
	staff  map[int64]models.Staff
	nextID int64
}

func newFakeStaffRepo() *fakeStaffRepo {
	return &fakeStaffRepo{staff: make(map[int64]models.Staff), nextID: 1}
}

func (f *fakeStaffRepo) List(ctx context.Context) ([]models.Staff, error) {
	out := make([]models.Staff, 0, len(f.staff))
	for _, s := range f.staff {
		out = append(out, s)
	}
	return out, nil
}

func (f *fakeStaffRepo) FindByID(ctx context.Context, id int64) (*models.Staff, error) {
	if s, ok := f.staff[id]; ok {
		return &s, nil
	}
	return nil, sql.ErrNoRows
}

func (f *fakeStaffRepo) Create(ctx context.Context, staff *models.Staff) error {
	staff.ID = f.nextID
	f.nextID++
	f.staff[staff.ID] = *staff
	return nil
}

func (f *fakeStaffRepo) Update(ctx context.Context, staff *models.Staff) error {
	f.staff[staff.ID] = *staff
	return nil
}

func (f *fakeStaffRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := f.staff[id]; !ok {
		return sql.ErrNoRows
	}
	delete(f.staff, id)
	return nil
}

func newStaffTestHandler(repo *fakeStaffRepo) *StaffHandler {
	staffSvc := service.NewStaffService(repo, service.NewWriteGate(), nil, nil, nil)
	return NewStaffHandler(staffSvc, nil, nil, 0)
}

func TestStaffHandlerCreate(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := newStaffTestHandler(newFakeStaffRepo())

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	body := `{"name":"Dr. Rao","category":"Doctor","joiningDate":"2022-03-01"}`
	c.Request = httptest.NewRequest(http.MethodPost, "/staff", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	handler.Create(c)

	require.Equal(t, http.StatusCreated, rec.Code)
	var envelope struct {
		Data map[string]interface{} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.Equal(t, "Dr. Rao", envelope.Data["name"])
	assert.Equal(t, "Doctor", envelope.Data["category"])
	assert.EqualValues(t, 0, envelope.Data["campsAttended"])
}

func TestStaffHandlerCreateValidationError(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := newStaffTestHandler(newFakeStaffRepo())

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	body := `{"name":"X","category":"Astronaut"}`
	c.Request = httptest.NewRequest(http.MethodPost, "/staff", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	handler.Create(c)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	var envelope struct {
		Error map[string]interface{} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.Equal(t, "VALIDATION_ERROR", envelope.Error["code"])
}

func TestStaffHandlerGetNotFound(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := newStaffTestHandler(newFakeStaffRepo())

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/staff/42", nil)
	c.Params = gin.Params{{Key: "id", Value: "42"}}

	handler.Get(c)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestStaffHandlerInvalidID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := newStaffTestHandler(newFakeStaffRepo())

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/staff/abc", nil)
	c.Params = gin.Params{{Key: "id", Value: "abc"}}

	handler.Get(c)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestStaffHandlerDelete(t *testing.T) {
	gin.SetMode(gin.TestMode)
	repo := newFakeStaffRepo()
	repo.staff[7] = models.Staff{ID: 7, Name: "X", Category: models.CategoryNurse}
	handler := newStaffTestHandler(repo)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodDelete, "/staff/7", nil)
	c.Params = gin.Params{{Key: "id", Value: "7"}}

	handler.Delete(c)
	c.Writer.WriteHeaderNow()

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, repo.staff)
}
