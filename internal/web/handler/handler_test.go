package handler

import (
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/talentbridge/marketplace-web/internal/backend"
	"github.com/talentbridge/marketplace-web/internal/browse"
	"github.com/talentbridge/marketplace-web/internal/cache"
	"github.com/talentbridge/marketplace-web/internal/core/domain"
	"github.com/talentbridge/marketplace-web/internal/session"
	"github.com/talentbridge/marketplace-web/internal/web/middleware"
	"github.com/talentbridge/marketplace-web/internal/web/view"
)

// testEnv wires a full echo app over a stubbed marketplace API, without the
// CSRF layer so tests can POST forms directly.
type testEnv struct {
	e     *echo.Echo
	store *session.Store
}

func newTestEnv(t *testing.T, api http.Handler) *testEnv {
	t.Helper()

	srv := httptest.NewServer(api)
	t.Cleanup(srv.Close)

	client := backend.New(srv.URL, zerolog.Nop())
	ref := cache.NewReference(nil, client, time.Minute, zerolog.Nop())
	store := session.NewStore("test-secret", false)

	jobs := browse.NewRegistry(func() *browse.Controller[domain.Job] {
		return browse.NewController("jobs", client.Jobs, time.Millisecond, zerolog.Nop())
	}, 0)
	workers := browse.NewRegistry(func() *browse.Controller[domain.WorkerProfile] {
		return browse.NewController("workers", client.Workers, time.Millisecond, zerolog.Nop())
	}, 0)

	h := New(client, ref, store, jobs, workers, nil, zerolog.Nop())

	e := echo.New()
	renderer, err := view.New()
	if err != nil {
		t.Fatalf("renderer: %v", err)
	}
	e.Renderer = renderer
	e.Validator = NewValidator()
	e.Use(middleware.LoadSession(store))

	e.GET("/", h.Home)
	e.GET("/find-work", h.FindWork)
	e.GET("/find-work/results", h.FindWorkResults)
	e.GET("/hire-talent", h.HireTalent)
	e.GET("/login", h.LoginPage)
	e.POST("/login", h.Authenticate)
	e.POST("/logout", h.Logout)
	e.GET("/jobs/:id", h.JobPage)
	e.POST("/jobs/:id/apply", h.ApplyToJob, middleware.RequireRole(domain.RoleWorker))
	e.GET("/client-dashboard", h.ClientDashboard, middleware.RequireRole(domain.RoleClient))
	e.POST("/client-dashboard/jobs", h.PostJob, middleware.RequireRole(domain.RoleClient))
	e.GET("/worker-dashboard", h.WorkerDashboard, middleware.RequireRole(domain.RoleWorker))
	e.POST("/worker-dashboard/profile", h.SaveWorkerProfile, middleware.RequireRole(domain.RoleWorker))

	return &testEnv{e: e, store: store}
}

func (env *testEnv) loginAs(t *testing.T, req *http.Request, role domain.Role) {
	t.Helper()
	rec := httptest.NewRecorder()
	user := domain.User{ID: "u1", Email: "me@example.com", FullName: "Me", UserType: role}
	if err := env.store.Save(rec, "session-token", user); err != nil {
		t.Fatalf("save session: %v", err)
	}
	for _, ck := range rec.Result().Cookies() {
		req.AddCookie(&http.Cookie{Name: ck.Name, Value: ck.Value})
	}
}

func (env *testEnv) do(req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	env.e.ServeHTTP(rec, req)
	return rec
}

func jsonResponse(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write([]byte(body))
}

const openJobJSON = `{"id":"j1","title":"Fix geyser","description":"Leaking geyser","category":"handy_work",` +
	`"subcategory":"plumbing","budget_type":"fixed","budget_amount":800,"location":"Durban","job_type":"onsite",` +
	`"skills_required":["plumbing"],"status":"open","created_at":"2026-08-01T10:00:00Z"}`

func TestAuthenticate_Login_RedirectsByRole(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/auth/login", func(w http.ResponseWriter, r *http.Request) {
		jsonResponse(w, http.StatusOK,
			`{"access_token":"tok","user":{"id":"u1","email":"c@x.co","full_name":"C","user_type":"client"}}`)
	})
	env := newTestEnv(t, mux)

	form := url.Values{"mode": {"login"}, "email": {"c@x.co"}, "password": {"pw"}}
	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	rec := env.do(req)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d: %s", rec.Code, rec.Body.String())
	}
	if loc := rec.Header().Get("Location"); loc != "/client-dashboard" {
		t.Fatalf("expected client dashboard redirect, got %s", loc)
	}

	names := map[string]bool{}
	for _, ck := range rec.Result().Cookies() {
		names[ck.Name] = true
	}
	if !names[session.TokenCookie] || !names[session.UserCookie] {
		t.Fatalf("expected session cookie pair, got %v", names)
	}
}

func TestAuthenticate_LoginFailure_RendersFormWithError(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/auth/login", func(w http.ResponseWriter, r *http.Request) {
		jsonResponse(w, http.StatusUnauthorized, `{"detail":"Incorrect email or password"}`)
	})
	env := newTestEnv(t, mux)

	form := url.Values{"mode": {"login"}, "email": {"c@x.co"}, "password": {"wrong"}}
	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	rec := env.do(req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected re-rendered form, got %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "Incorrect email or password") {
		t.Fatalf("expected backend message in page, got: %s", body)
	}
	if !strings.Contains(body, `value="c@x.co"`) {
		t.Fatal("typed email must be preserved on failure")
	}
}

func TestAuthenticate_Signup_DefaultsAndRedirects(t *testing.T) {
	var gotBody string
	mux := http.NewServeMux()
	mux.HandleFunc("/auth/register", func(w http.ResponseWriter, r *http.Request) {
		buf, _ := io.ReadAll(r.Body)
		gotBody = string(buf)
		jsonResponse(w, http.StatusOK,
			`{"access_token":"tok","user":{"id":"u2","email":"w@x.co","full_name":"W","user_type":"worker"}}`)
	})
	env := newTestEnv(t, mux)

	form := url.Values{
		"mode": {"signup"}, "email": {"w@x.co"}, "password": {"pw"},
		"full_name": {"W"}, "user_type": {"worker"},
	}
	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	rec := env.do(req)

	if rec.Code != http.StatusSeeOther || rec.Header().Get("Location") != "/worker-dashboard" {
		t.Fatalf("expected worker dashboard redirect, got %d %s", rec.Code, rec.Header().Get("Location"))
	}
	if !strings.Contains(gotBody, `"user_type":"worker"`) {
		t.Fatalf("unexpected register payload: %s", gotBody)
	}
}

func TestLogout_ClearsSessionPair(t *testing.T) {
	env := newTestEnv(t, http.NewServeMux())

	req := httptest.NewRequest(http.MethodPost, "/logout", nil)
	env.loginAs(t, req, domain.RoleWorker)
	rec := env.do(req)

	if rec.Code != http.StatusSeeOther || rec.Header().Get("Location") != "/" {
		t.Fatalf("expected redirect home, got %d %s", rec.Code, rec.Header().Get("Location"))
	}
	cleared := 0
	for _, ck := range rec.Result().Cookies() {
		if (ck.Name == session.TokenCookie || ck.Name == session.UserCookie) && ck.MaxAge < 0 {
			cleared++
		}
	}
	if cleared != 2 {
		t.Fatalf("expected both session cookies cleared, got %d", cleared)
	}
}

func TestFindWork_RendersJobsAndForwardsFilters(t *testing.T) {
	var gotQuery url.Values
	mux := http.NewServeMux()
	mux.HandleFunc("/jobs", func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		jsonResponse(w, http.StatusOK, "["+openJobJSON+"]")
	})
	env := newTestEnv(t, mux)

	req := httptest.NewRequest(http.MethodGet, "/find-work?category=handy_work&location=&job_type=all", nil)
	rec := env.do(req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `data-testid="job-card-j1"`) {
		t.Fatalf("expected job card in page: %s", rec.Body.String())
	}

	if gotQuery.Get("category") != "handy_work" {
		t.Fatalf("category filter not forwarded: %v", gotQuery)
	}
	if _, ok := gotQuery["location"]; ok {
		t.Fatal("empty location must be omitted from the backend query")
	}
	if _, ok := gotQuery["job_type"]; ok {
		t.Fatal(`"all" job type must be omitted from the backend query`)
	}
}

func TestFindWork_BackendFailureShowsRetryState(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/jobs", func(w http.ResponseWriter, r *http.Request) {
		jsonResponse(w, http.StatusInternalServerError, `{"detail":"database unavailable"}`)
	})
	env := newTestEnv(t, mux)

	rec := env.do(httptest.NewRequest(http.MethodGet, "/find-work", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `data-testid="fetch-error-state"`) {
		t.Fatal("expected error state with retry affordance")
	}
}

func TestFindWorkResults_ReturnsDebouncedJSON(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/jobs", func(w http.ResponseWriter, r *http.Request) {
		jsonResponse(w, http.StatusOK, "["+openJobJSON+"]")
	})
	env := newTestEnv(t, mux)

	rec := env.do(httptest.NewRequest(http.MethodGet, "/find-work/results?category=handy_work", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, `"items"`) || !strings.Contains(body, `"j1"`) {
		t.Fatalf("unexpected payload: %s", body)
	}
}

func TestJobPage_AnonymousSeesLoginToApply(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/jobs/j1", func(w http.ResponseWriter, r *http.Request) {
		jsonResponse(w, http.StatusOK, openJobJSON)
	})
	env := newTestEnv(t, mux)

	rec := env.do(httptest.NewRequest(http.MethodGet, "/jobs/j1", nil))

	body := rec.Body.String()
	if !strings.Contains(body, `data-testid="login-to-apply-button"`) {
		t.Fatal("anonymous visitor must see the login affordance")
	}
	if strings.Contains(body, `data-testid="apply-section"`) {
		t.Fatal("anonymous visitor must not see the apply form")
	}
}

func TestJobPage_WorkerSeesApplyForm(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/jobs/j1", func(w http.ResponseWriter, r *http.Request) {
		jsonResponse(w, http.StatusOK, openJobJSON)
	})
	env := newTestEnv(t, mux)

	req := httptest.NewRequest(http.MethodGet, "/jobs/j1", nil)
	env.loginAs(t, req, domain.RoleWorker)
	rec := env.do(req)

	if !strings.Contains(rec.Body.String(), `data-testid="apply-section"`) {
		t.Fatal("worker must see the apply form on an open job")
	}
}

func TestJobPage_ClosedJobHidesApply(t *testing.T) {
	closed := strings.Replace(openJobJSON, `"status":"open"`, `"status":"in_progress"`, 1)
	mux := http.NewServeMux()
	mux.HandleFunc("/jobs/j1", func(w http.ResponseWriter, r *http.Request) {
		jsonResponse(w, http.StatusOK, closed)
	})
	env := newTestEnv(t, mux)

	req := httptest.NewRequest(http.MethodGet, "/jobs/j1", nil)
	env.loginAs(t, req, domain.RoleWorker)
	rec := env.do(req)

	body := rec.Body.String()
	if strings.Contains(body, `data-testid="apply-section"`) || strings.Contains(body, "login-to-apply-button") {
		t.Fatal("closed job must not offer an application path")
	}
}

func TestJobPage_NotFoundRedirectsToCatalog(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/jobs/missing", func(w http.ResponseWriter, r *http.Request) {
		jsonResponse(w, http.StatusNotFound, `{"detail":"Job not found"}`)
	})
	env := newTestEnv(t, mux)

	rec := env.do(httptest.NewRequest(http.MethodGet, "/jobs/missing", nil))

	if rec.Code != http.StatusSeeOther || rec.Header().Get("Location") != "/find-work" {
		t.Fatalf("expected redirect to /find-work, got %d %s", rec.Code, rec.Header().Get("Location"))
	}
}

func TestApplyToJob_SubmitsAndRedirects(t *testing.T) {
	var gotApplication string
	mux := http.NewServeMux()
	mux.HandleFunc("/jobs/j1", func(w http.ResponseWriter, r *http.Request) {
		jsonResponse(w, http.StatusOK, openJobJSON)
	})
	mux.HandleFunc("/applications", func(w http.ResponseWriter, r *http.Request) {
		buf, _ := io.ReadAll(r.Body)
		gotApplication = string(buf)
		jsonResponse(w, http.StatusCreated, `{"id":"a1","job_id":"j1","cover_letter":"x","proposed_rate":450,"status":"pending"}`)
	})
	env := newTestEnv(t, mux)

	form := url.Values{"cover_letter": {"I fix geysers"}, "proposed_rate": {"450"}}
	req := httptest.NewRequest(http.MethodPost, "/jobs/j1/apply", strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	env.loginAs(t, req, domain.RoleWorker)
	rec := env.do(req)

	if rec.Code != http.StatusSeeOther || rec.Header().Get("Location") != "/jobs/j1" {
		t.Fatalf("expected redirect back to job, got %d %s", rec.Code, rec.Header().Get("Location"))
	}
	if !strings.Contains(gotApplication, `"job_id":"j1"`) || !strings.Contains(gotApplication, `"proposed_rate":450`) {
		t.Fatalf("unexpected application payload: %s", gotApplication)
	}
}

func TestApplyToJob_RequiresWorkerRole(t *testing.T) {
	env := newTestEnv(t, http.NewServeMux())

	req := httptest.NewRequest(http.MethodPost, "/jobs/j1/apply", strings.NewReader("cover_letter=x&proposed_rate=1"))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	rec := env.do(req)

	if rec.Code != http.StatusSeeOther || rec.Header().Get("Location") != "/login" {
		t.Fatalf("expected login redirect, got %d %s", rec.Code, rec.Header().Get("Location"))
	}
}

func TestClientDashboard_NoProfileOpensCreationForm(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/clients/profile", func(w http.ResponseWriter, r *http.Request) {
		jsonResponse(w, http.StatusNotFound, `{"detail":"Client profile not found"}`)
	})
	env := newTestEnv(t, mux)

	req := httptest.NewRequest(http.MethodGet, "/client-dashboard", nil)
	env.loginAs(t, req, domain.RoleClient)
	rec := env.do(req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, `data-testid="profile-dialog"`) {
		t.Fatal("missing profile must open the creation form")
	}
	if strings.Contains(body, `data-testid="my-jobs-heading"`) {
		t.Fatal("jobs section must stay hidden until a profile exists")
	}
}

func TestClientDashboard_WithProfileShowsJobsAndStats(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/clients/profile", func(w http.ResponseWriter, r *http.Request) {
		jsonResponse(w, http.StatusOK, `{"id":"c1","company_name":"Acme","industry":"tech","location":"CPT"}`)
	})
	mux.HandleFunc("/jobs/client/my-jobs", func(w http.ResponseWriter, r *http.Request) {
		open := openJobJSON
		closed := strings.Replace(openJobJSON, `"status":"open"`, `"status":"completed"`, 1)
		closed = strings.Replace(closed, `"id":"j1"`, `"id":"j2"`, 1)
		jsonResponse(w, http.StatusOK, "["+open+","+closed+"]")
	})
	env := newTestEnv(t, mux)

	req := httptest.NewRequest(http.MethodGet, "/client-dashboard", nil)
	env.loginAs(t, req, domain.RoleClient)
	rec := env.do(req)

	body := rec.Body.String()
	if !strings.Contains(body, `data-testid="active-jobs-count">1<`) {
		t.Fatalf("expected one active job, body: %s", body)
	}
	if !strings.Contains(body, `data-testid="total-jobs-count">2<`) {
		t.Fatal("expected two jobs total")
	}
	if !strings.Contains(body, `data-testid="job-item-j1"`) || !strings.Contains(body, `data-testid="job-item-j2"`) {
		t.Fatal("expected both job items rendered")
	}
}

func TestClientDashboard_RequiresClientRole(t *testing.T) {
	env := newTestEnv(t, http.NewServeMux())

	req := httptest.NewRequest(http.MethodGet, "/client-dashboard", nil)
	env.loginAs(t, req, domain.RoleWorker)
	rec := env.do(req)

	if rec.Code != http.StatusSeeOther || rec.Header().Get("Location") != "/login" {
		t.Fatalf("expected login redirect, got %d %s", rec.Code, rec.Header().Get("Location"))
	}
}

func TestWorkerDashboard_NoProfileOpensCreationForm(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/workers/profile", func(w http.ResponseWriter, r *http.Request) {
		jsonResponse(w, http.StatusNotFound, `{"detail":"Worker profile not found"}`)
	})
	mux.HandleFunc("/applications/my-applications", func(w http.ResponseWriter, r *http.Request) {
		jsonResponse(w, http.StatusOK, `[]`)
	})
	env := newTestEnv(t, mux)

	req := httptest.NewRequest(http.MethodGet, "/worker-dashboard", nil)
	env.loginAs(t, req, domain.RoleWorker)
	rec := env.do(req)

	body := rec.Body.String()
	if !strings.Contains(body, `data-testid="profile-dialog"`) {
		t.Fatal("missing profile must open the creation form")
	}
	if !strings.Contains(body, `data-testid="no-applications-message"`) {
		t.Fatal("empty application list must show the empty state")
	}
}

func TestWorkerDashboard_CountsApplicationStatuses(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/workers/profile", func(w http.ResponseWriter, r *http.Request) {
		jsonResponse(w, http.StatusOK,
			`{"id":"w1","title":"Plumber","bio":"pipes","category":"handy_work","skills":["plumbing"],"hourly_rate":350,"experience_years":10,"location":"DBN","portfolio_links":[]}`)
	})
	mux.HandleFunc("/applications/my-applications", func(w http.ResponseWriter, r *http.Request) {
		jsonResponse(w, http.StatusOK, `[
			{"id":"a1","job_id":"j1","cover_letter":"x","proposed_rate":1,"status":"pending"},
			{"id":"a2","job_id":"j2","cover_letter":"x","proposed_rate":1,"status":"accepted"},
			{"id":"a3","job_id":"j3","cover_letter":"x","proposed_rate":1,"status":"rejected"}
		]`)
	})
	env := newTestEnv(t, mux)

	req := httptest.NewRequest(http.MethodGet, "/worker-dashboard", nil)
	env.loginAs(t, req, domain.RoleWorker)
	rec := env.do(req)

	body := rec.Body.String()
	if !strings.Contains(body, `data-testid="total-applications-count">3<`) {
		t.Fatalf("expected three applications, body: %s", body)
	}
	if !strings.Contains(body, `data-testid="pending-applications-count">1<`) {
		t.Fatal("expected one pending application")
	}
	if !strings.Contains(body, `data-testid="accepted-applications-count">1<`) {
		t.Fatal("expected one accepted application")
	}
	if !strings.Contains(body, `data-testid="profile-title"`) {
		t.Fatal("expected the profile card")
	}
}

func TestSaveWorkerProfile_CreateVsUpdate(t *testing.T) {
	var methods []string
	mux := http.NewServeMux()
	mux.HandleFunc("/workers/profile", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			jsonResponse(w, http.StatusNotFound, `{"detail":"Worker profile not found"}`)
		default:
			methods = append(methods, r.Method)
			jsonResponse(w, http.StatusOK, `{"id":"w1"}`)
		}
	})
	env := newTestEnv(t, mux)

	form := url.Values{
		"title": {"Plumber"}, "bio": {"pipes"}, "category": {"handy_work"},
		"skills": {"plumbing"}, "hourly_rate": {"350"}, "experience_years": {"10"},
		"location": {"DBN"},
	}
	req := httptest.NewRequest(http.MethodPost, "/worker-dashboard/profile", strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	env.loginAs(t, req, domain.RoleWorker)
	rec := env.do(req)

	if rec.Code != http.StatusSeeOther || rec.Header().Get("Location") != "/worker-dashboard" {
		t.Fatalf("expected dashboard redirect, got %d %s", rec.Code, rec.Header().Get("Location"))
	}
	if len(methods) != 1 || methods[0] != http.MethodPost {
		t.Fatalf("first save must create with POST, got %v", methods)
	}
}

func TestPostJob_SendsParsedPayload(t *testing.T) {
	var gotJob string
	mux := http.NewServeMux()
	mux.HandleFunc("/clients/profile", func(w http.ResponseWriter, r *http.Request) {
		jsonResponse(w, http.StatusOK, `{"id":"c1","company_name":"Acme","industry":"tech","location":"CPT"}`)
	})
	mux.HandleFunc("/jobs", func(w http.ResponseWriter, r *http.Request) {
		buf, _ := io.ReadAll(r.Body)
		gotJob = string(buf)
		jsonResponse(w, http.StatusCreated, openJobJSON)
	})
	env := newTestEnv(t, mux)

	form := url.Values{
		"title": {"Build a website"}, "description": {"Marketing site"},
		"category": {"professional_services"}, "subcategory": {"web_development"},
		"budget_type": {"fixed"}, "budget_amount": {"1500"},
		"location": {"JHB"}, "job_type": {"remote"},
		"skills_required": {"React, Node.js"},
	}
	req := httptest.NewRequest(http.MethodPost, "/client-dashboard/jobs", strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	env.loginAs(t, req, domain.RoleClient)
	rec := env.do(req)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected redirect, got %d: %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(gotJob, `"budget_amount":1500`) {
		t.Fatalf("budget must be numeric in the payload: %s", gotJob)
	}
	if !strings.Contains(gotJob, `"skills_required":["React","Node.js"]`) {
		t.Fatalf("skills must be split and trimmed: %s", gotJob)
	}
}
