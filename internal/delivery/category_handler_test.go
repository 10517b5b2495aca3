package delivery

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"category_service/internal/domain"
	"category_service/internal/middleware"

	"github.com/gin-gonic/gin"
	logrustest "github.com/sirupsen/logrus/hooks/test"
)

// stubUseCase returns canned results so the tests exercise only routing,
// binding and outcome-to-status mapping.
type stubUseCase struct {
	createFn func(string, domain.CreateCategoryInput) (*domain.Category, error)
	updateFn func(string, int, domain.UpdateCategoryInput) (*domain.Category, error)
	deleteFn func(string, int) error
	byIDFn   func(int) (*domain.Category, error)
	byNameFn func(string) (*domain.Category, error)
	listFn   func(domain.ListParams) ([]domain.Category, error)
}

func (s *stubUseCase) CreateCategory(token string, in domain.CreateCategoryInput) (*domain.Category, error) {
	return s.createFn(token, in)
}

func (s *stubUseCase) UpdateCategory(token string, id int, in domain.UpdateCategoryInput) (*domain.Category, error) {
	return s.updateFn(token, id, in)
}

func (s *stubUseCase) DeleteCategory(token string, id int) error {
	return s.deleteFn(token, id)
}

func (s *stubUseCase) GetCategoryByID(id int) (*domain.Category, error) {
	return s.byIDFn(id)
}

func (s *stubUseCase) GetCategoryByName(name string) (*domain.Category, error) {
	return s.byNameFn(name)
}

func (s *stubUseCase) ListCategories(params domain.ListParams) ([]domain.Category, error) {
	return s.listFn(params)
}

func newTestRouter(uc *stubUseCase) *gin.Engine {
	gin.SetMode(gin.TestMode)
	logger, _ := logrustest.NewNullLogger()
	router := gin.New()
	router.Use(middleware.ExtractBearerToken(logger))
	NewCategoryHandler(uc, logger).RegisterRoutes(router)
	return router
}

func perform(router *gin.Engine, method, path, body, authHeader string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestCreateCategoryReturns201(t *testing.T) {
	uc := &stubUseCase{createFn: func(token string, in domain.CreateCategoryInput) (*domain.Category, error) {
		if token != "admin-token" {
			t.Fatalf("bearer token not forwarded, got %q", token)
		}
		return &domain.Category{ID: 1, Name: in.Name, Description: in.Description}, nil
	}}

	w := perform(newTestRouter(uc), http.MethodPost, "/categories",
		`{"name":"books","description":"printed things"}`, "Bearer admin-token")
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
}

func TestDeleteWithoutCredentialReturns400(t *testing.T) {
	uc := &stubUseCase{deleteFn: func(token string, id int) error {
		if token != "" {
			t.Fatalf("expected empty token, got %q", token)
		}
		return domain.ValidationError{Violations: []domain.FieldViolation{
			{Field: "token", Rule: "required", Msg: "credential must be provided"},
		}}
	}}

	w := perform(newTestRouter(uc), http.MethodDelete, "/categories/3", "", "")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for a missing credential, got %d", w.Code)
	}
}

func TestOutcomeStatusMapping(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"unauthenticated", fmt.Errorf("%w: token expired", domain.ErrUnauthenticated), http.StatusUnauthorized},
		{"permission denied", fmt.Errorf("%w: role 'customer' may not delete_category", domain.ErrPermissionDenied), http.StatusForbidden},
		{"not found", fmt.Errorf("%w: id 3", domain.ErrNotFound), http.StatusNotFound},
		{"already deleted", fmt.Errorf("%w: id 3", domain.ErrAlreadyDeleted), http.StatusGone},
		{"internal", domain.ErrInternal, http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			uc := &stubUseCase{deleteFn: func(string, int) error { return tc.err }}
			w := perform(newTestRouter(uc), http.MethodDelete, "/categories/3", "", "Bearer some-token")
			if w.Code != tc.wantStatus {
				t.Fatalf("expected %d, got %d: %s", tc.wantStatus, w.Code, w.Body.String())
			}
		})
	}
}

func TestInternalFailureHidesDetail(t *testing.T) {
	uc := &stubUseCase{deleteFn: func(string, int) error {
		return fmt.Errorf("%w: could not delete category: dial tcp: connection refused", domain.ErrInternal)
	}}

	w := perform(newTestRouter(uc), http.MethodDelete, "/categories/3", "", "Bearer admin-token")
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
	if strings.Contains(w.Body.String(), "connection refused") {
		t.Fatalf("internal detail leaked to the caller: %s", w.Body.String())
	}
}

func TestCreateDuplicateReturns409(t *testing.T) {
	uc := &stubUseCase{createFn: func(string, domain.CreateCategoryInput) (*domain.Category, error) {
		return nil, fmt.Errorf("%w: name 'books' is taken", domain.ErrAlreadyExists)
	}}

	w := perform(newTestRouter(uc), http.MethodPost, "/categories",
		`{"name":"books","description":"printed things"}`, "Bearer admin-token")
	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", w.Code)
	}
}

func TestDeleteSuccessReturns204(t *testing.T) {
	uc := &stubUseCase{deleteFn: func(string, int) error { return nil }}

	w := perform(newTestRouter(uc), http.MethodDelete, "/categories/3", "", "Bearer admin-token")
	if w.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", w.Code)
	}
}

func TestValidationViolationsAreReturned(t *testing.T) {
	uc := &stubUseCase{createFn: func(string, domain.CreateCategoryInput) (*domain.Category, error) {
		return nil, domain.ValidationError{Violations: []domain.FieldViolation{
			{Field: "name", Rule: "min", Msg: "must be at least 2 characters"},
		}}
	}}

	w := perform(newTestRouter(uc), http.MethodPost, "/categories",
		`{"name":"b","description":"printed things"}`, "Bearer admin-token")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "violations") {
		t.Fatalf("violation list missing from response: %s", w.Body.String())
	}
}

func TestListParsesSortAndPaging(t *testing.T) {
	var gotParams domain.ListParams
	uc := &stubUseCase{listFn: func(params domain.ListParams) ([]domain.Category, error) {
		gotParams = params
		return []domain.Category{}, nil
	}}

	w := perform(newTestRouter(uc), http.MethodGet,
		`/categories?page=2&limit=5&sort=[{"orderBy":"name","order":"DESC"}]`, "", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if gotParams.Page != 2 || gotParams.Limit != 5 {
		t.Fatalf("paging not parsed: %+v", gotParams)
	}
	if len(gotParams.Sort) != 1 || gotParams.Sort[0].OrderBy != "name" || gotParams.Sort[0].Order != "DESC" {
		t.Fatalf("sort not parsed: %+v", gotParams.Sort)
	}
}

func TestListWrapsResultsInPageEnvelope(t *testing.T) {
	uc := &stubUseCase{listFn: func(params domain.ListParams) ([]domain.Category, error) {
		limit := params.Normalize().Limit
		page := make([]domain.Category, 0, limit)
		for i := 0; i < limit; i++ {
			page = append(page, domain.Category{ID: i + 1, Name: fmt.Sprintf("cat-%d", i+1)})
		}
		return page, nil
	}}

	w := perform(newTestRouter(uc), http.MethodGet, "/categories?page=2&limit=3", "", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	body := w.Body.String()
	if !strings.Contains(body, `"page":2`) || !strings.Contains(body, `"limit":3`) {
		t.Fatalf("paging state missing from envelope: %s", body)
	}
	if !strings.Contains(body, `"hasNextPage":true`) {
		t.Fatalf("a full page should report hasNextPage=true: %s", body)
	}
}

func TestListShortPageReportsNoNextPage(t *testing.T) {
	uc := &stubUseCase{listFn: func(domain.ListParams) ([]domain.Category, error) {
		return []domain.Category{{ID: 1, Name: "books"}}, nil
	}}

	w := perform(newTestRouter(uc), http.MethodGet, "/categories?limit=5", "", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), `"hasNextPage":false`) {
		t.Fatalf("a short page should report hasNextPage=false: %s", w.Body.String())
	}
}

func TestListRejectsMalformedSort(t *testing.T) {
	uc := &stubUseCase{listFn: func(domain.ListParams) ([]domain.Category, error) {
		t.Fatal("use case must not run for a malformed query")
		return nil, nil
	}}

	w := perform(newTestRouter(uc), http.MethodGet, "/categories?sort=name-asc", "", "")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestGetByNameRouteIsNotShadowedByID(t *testing.T) {
	uc := &stubUseCase{byNameFn: func(name string) (*domain.Category, error) {
		return &domain.Category{ID: 1, Name: name}, nil
	}}

	w := perform(newTestRouter(uc), http.MethodGet, "/categories/by-name?name=books", "", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), "books") {
		t.Fatalf("unexpected body: %s", w.Body.String())
	}
}
