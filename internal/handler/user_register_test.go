package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/arvelez/user-register-api/internal/model"
	"github.com/arvelez/user-register-api/internal/repository"
)

// fakeRegisterStore keeps records in memory and mirrors the repository's
// listing semantics: case-insensitive OR search over four text fields,
// createdAt/email sorting, offset pagination, global email uniqueness.
type fakeRegisterStore struct {
	records []model.UserRegister
	nextID  uint64
}

func newFakeRegisterStore() *fakeRegisterStore { return &fakeRegisterStore{nextID: 1} }

func (s *fakeRegisterStore) Create(_ context.Context, in model.RegisterInput) (model.UserRegister, error) {
	for _, r := range s.records {
		if r.Email == in.Email {
			return model.UserRegister{}, repository.ErrEmailExists
		}
	}
	rec := model.UserRegister{
		ID:           s.nextID,
		Email:        in.Email,
		Cedula:       in.Cedula,
		Edad:         in.Edad,
		Genero:       in.Genero,
		SO:           in.SO,
		Movilidad:    in.Movilidad,
		TiempoDiario: in.TiempoDiario,
		Universidad:  in.Universidad,
		Carrera:      in.Carrera,
		Telefono:     in.Telefono,
		// distinct timestamps so createdAt ordering is deterministic
		CreatedAt: time.Unix(int64(1700000000+s.nextID), 0).UTC(),
	}
	rec.UpdatedAt = rec.CreatedAt
	s.nextID++
	s.records = append(s.records, rec)
	return rec, nil
}

func (s *fakeRegisterStore) List(_ context.Context, q repository.ListQuery) ([]model.UserRegister, int64, error) {
	matched := make([]model.UserRegister, 0, len(s.records))
	term := strings.ToLower(q.Search)
	for _, r := range s.records {
		if term == "" ||
			strings.Contains(strings.ToLower(r.Email), term) ||
			strings.Contains(strings.ToLower(r.Cedula), term) ||
			strings.Contains(strings.ToLower(r.Universidad), term) ||
			strings.Contains(strings.ToLower(r.Carrera), term) {
			matched = append(matched, r)
		}
	}

	asc := strings.EqualFold(q.SortOrder, "asc")
	sort.Slice(matched, func(i, j int) bool {
		var less bool
		switch q.SortBy {
		case "email":
			less = matched[i].Email < matched[j].Email
		default:
			less = matched[i].CreatedAt.Before(matched[j].CreatedAt)
		}
		if asc {
			return less
		}
		return !less
	})

	total := int64(len(matched))
	start := (q.Page - 1) * q.Limit
	if start > len(matched) {
		start = len(matched)
	}
	end := start + q.Limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], total, nil
}

func (s *fakeRegisterStore) EmailExists(_ context.Context, email string) (bool, error) {
	for _, r := range s.records {
		if r.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func newRegisterHandler(store RegisterStore) *RegisterHandler {
	h := NewRegisterHandler(store)
	h.PublishEvents = false
	return h
}

func recordBody(i int) string {
	return fmt.Sprintf(`{
		"email": "user%02d@x.com",
		"cedula": "17%08d",
		"edad": 25,
		"genero": "femenino",
		"so": "android",
		"movilidad": "bus",
		"tiempoDiario": "1-2 horas",
		"universidad": "Universidad %02d",
		"carrera": "Sistemas",
		"telefono": "0991234567"
	}`, i, i, i)
}

func getJSON(t *testing.T, h echo.HandlerFunc, target string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if err := h(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	return rec
}

func seed(t *testing.T, h *RegisterHandler, n int) {
	t.Helper()
	for i := 1; i <= n; i++ {
		rec := postJSON(t, h.Create, "/api/user-registers", recordBody(i))
		if rec.Code != http.StatusCreated {
			t.Fatalf("seed %d: status = %d: %s", i, rec.Code, rec.Body)
		}
	}
}

func TestCreateRecordValidation(t *testing.T) {
	h := newRegisterHandler(newFakeRegisterStore())

	tooOld := strings.Replace(recordBody(1), `"edad": 25`, `"edad": 150`, 1)
	rec := postJSON(t, h.Create, "/api/user-registers", tooOld)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("edad=150: status = %d, want 400: %s", rec.Code, rec.Body)
	}

	rec = postJSON(t, h.Create, "/api/user-registers", recordBody(1))
	if rec.Code != http.StatusCreated {
		t.Fatalf("valid record: status = %d, want 201: %s", rec.Code, rec.Body)
	}
	var created model.UserRegister
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("bad body: %v", err)
	}
	if created.ID == 0 || created.Email != "user01@x.com" {
		t.Errorf("unexpected created record: %+v", created)
	}
}

func TestCreateRecordDuplicateEmail(t *testing.T) {
	h := newRegisterHandler(newFakeRegisterStore())
	seed(t, h, 1)

	rec := postJSON(t, h.Create, "/api/user-registers", recordBody(1))
	if rec.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409: %s", rec.Code, rec.Body)
	}
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("bad body: %v", err)
	}
	if body["error"] != "El correo electrónico ya está registrado" {
		t.Errorf("error = %q", body["error"])
	}
}

func TestListPagination(t *testing.T) {
	h := newRegisterHandler(newFakeRegisterStore())
	seed(t, h, 25)

	rec := getJSON(t, h.List, "/api/user-registers?page=2&limit=10&sortBy=createdAt&sortOrder=asc")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body)
	}
	var resp struct {
		Items      []model.UserRegister `json:"items"`
		Pagination struct {
			Page       int   `json:"page"`
			Limit      int   `json:"limit"`
			Total      int64 `json:"total"`
			TotalPages int64 `json:"totalPages"`
		} `json:"pagination"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("bad body: %v", err)
	}
	if len(resp.Items) != 10 {
		t.Fatalf("got %d items, want 10", len(resp.Items))
	}
	// ascending by creation: page 2 holds records 11..20
	if resp.Items[0].Email != "user11@x.com" || resp.Items[9].Email != "user20@x.com" {
		t.Errorf("page 2 spans %s..%s, want user11..user20",
			resp.Items[0].Email, resp.Items[9].Email)
	}
	if resp.Pagination.Total != 25 || resp.Pagination.TotalPages != 3 {
		t.Errorf("pagination = %+v, want total=25 totalPages=3", resp.Pagination)
	}
	if resp.Pagination.Page != 2 || resp.Pagination.Limit != 10 {
		t.Errorf("pagination echo = %+v", resp.Pagination)
	}
}

func TestListDefaults(t *testing.T) {
	h := newRegisterHandler(newFakeRegisterStore())
	seed(t, h, 25)

	// junk and missing parameters normalize to page=1 limit=10
	rec := getJSON(t, h.List, "/api/user-registers?page=0&limit=-5")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body)
	}
	var resp struct {
		Items      []model.UserRegister `json:"items"`
		Pagination pagination           `json:"pagination"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("bad body: %v", err)
	}
	if resp.Pagination.Page != 1 || resp.Pagination.Limit != 10 {
		t.Errorf("pagination = %+v, want page=1 limit=10", resp.Pagination)
	}
	if len(resp.Items) != 10 {
		t.Errorf("got %d items, want 10", len(resp.Items))
	}
	// default order is newest first
	if resp.Items[0].Email != "user25@x.com" {
		t.Errorf("first item = %s, want user25@x.com (createdAt desc)", resp.Items[0].Email)
	}
}

func TestListSearchSingleMatch(t *testing.T) {
	h := newRegisterHandler(newFakeRegisterStore())
	seed(t, h, 5)

	// "universidad 03" appears in exactly one record; query in a different case
	rec := getJSON(t, h.List, "/api/user-registers?search=UNIVERSIDAD+03")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body)
	}
	var resp struct {
		Items      []model.UserRegister `json:"items"`
		Pagination pagination           `json:"pagination"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("bad body: %v", err)
	}
	if len(resp.Items) != 1 || resp.Pagination.Total != 1 {
		t.Fatalf("got %d items (total %d), want exactly 1", len(resp.Items), resp.Pagination.Total)
	}
	if resp.Items[0].Universidad != "Universidad 03" {
		t.Errorf("matched %q, want Universidad 03", resp.Items[0].Universidad)
	}
}

func TestCheckEmail(t *testing.T) {
	h := newRegisterHandler(newFakeRegisterStore())
	seed(t, h, 1)

	rec := getJSON(t, h.CheckEmail, "/api/user-registers/check-email")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("missing email: status = %d, want 400", rec.Code)
	}

	cases := []struct {
		query string
		want  bool
	}{
		{"user01@x.com", true},
		{"USER01@X.COM", true}, // case-insensitive
		{"nobody@x.com", false},
	}
	for _, tc := range cases {
		rec := getJSON(t, h.CheckEmail, "/api/user-registers/check-email?email="+tc.query)
		if rec.Code != http.StatusOK {
			t.Fatalf("email %q: status = %d: %s", tc.query, rec.Code, rec.Body)
		}
		var resp struct {
			Exists bool `json:"exists"`
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("bad body: %v", err)
		}
		if resp.Exists != tc.want {
			t.Errorf("email %q: exists = %v, want %v", tc.query, resp.Exists, tc.want)
		}
	}
}

func TestTotalPages(t *testing.T) {
	cases := []struct {
		total int64
		limit int
		want  int64
	}{
		{0, 10, 0},
		{1, 10, 1},
		{10, 10, 1},
		{11, 10, 2},
		{25, 10, 3},
	}
	for _, tc := range cases {
		if got := totalPages(tc.total, tc.limit); got != tc.want {
			t.Errorf("totalPages(%d, %d) = %d, want %d", tc.total, tc.limit, got, tc.want)
		}
	}
}
