package router_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"animal-sos/internal/adapters/storage/memory"
	"animal-sos/internal/auth"
	"animal-sos/internal/platform/metrics"
	"animal-sos/internal/router"
)

const adminPassword = "admin-secret"

func newServer(t *testing.T, devHeader bool) *httptest.Server {
	t.Helper()

	hash, err := auth.HashPassword(adminPassword)
	if err != nil {
		t.Fatalf("hash admin password: %v", err)
	}
	st := memory.New(memory.Options{AdminPasswordHash: hash})

	ts := httptest.NewServer(router.NewRouter(router.Options{
		Storage:    st,
		Metrics:    metrics.New("animal_sos"),
		SessionTTL: time.Hour,
		DevHeader:  devHeader,
	}))
	t.Cleanup(func() {
		ts.Close()
		_ = st.Close(context.Background())
		_ = st.SessionStore().Close()
	})
	return ts
}

// client mantiene su propia cookie de sesión.
type client struct {
	t    *testing.T
	base string
	http *http.Client
	// debugUserID se manda como X-Debug-User-ID si no es vacío.
	debugUserID string
}

func newClient(t *testing.T, ts *httptest.Server) *client {
	t.Helper()
	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatalf("cookie jar: %v", err)
	}
	return &client{t: t, base: ts.URL, http: &http.Client{Jar: jar}}
}

func (c *client) do(method, path string, body any) (int, []byte) {
	c.t.Helper()

	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			c.t.Fatalf("json marshal: %v", err)
		}
		rdr = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, c.base+path, rdr)
	if err != nil {
		c.t.Fatalf("new request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.debugUserID != "" {
		req.Header.Set("X-Debug-User-ID", c.debugUserID)
	}

	res, err := c.http.Do(req)
	if err != nil {
		c.t.Fatalf("do request: %v", err)
	}
	defer res.Body.Close()

	respBody, _ := io.ReadAll(res.Body)
	return res.StatusCode, respBody
}

// expect falla el test si el status no coincide y decodifica el body en out (si no es nil).
func (c *client) expect(want int, method, path string, body, out any) {
	c.t.Helper()
	st, raw := c.do(method, path, body)
	if st != want {
		c.t.Fatalf("%s %s: expected %d, got %d body=%s", method, path, want, st, string(raw))
	}
	if out != nil {
		if err := json.Unmarshal(raw, out); err != nil {
			c.t.Fatalf("%s %s: decode body: %v body=%s", method, path, err, string(raw))
		}
	}
}

type userResp struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
	Password string `json:"password"`
}

type reportResp struct {
	ID      int    `json:"id"`
	UserID  int    `json:"userId"`
	Status  string `json:"status"`
	Urgency string `json:"urgency"`
}

type donationResp struct {
	ID           int `json:"id"`
	GoalAmount   int `json:"goalAmount"`
	RaisedAmount int `json:"raisedAmount"`
}

func register(c *client, username, role string) userResp {
	c.t.Helper()
	var u userResp
	c.expect(http.StatusCreated, "POST", "/api/register", map[string]any{
		"username": username,
		"password": "secret1",
		"email":    username + "@example.com",
		"name":     strings.ToUpper(username[:1]) + username[1:],
		"role":     role,
	}, &u)
	return u
}

func loginAdmin(c *client) {
	c.t.Helper()
	c.expect(http.StatusOK, "POST", "/api/login", map[string]any{
		"username": "admin",
		"password": adminPassword,
	}, nil)
}

func TestHTTP_EndToEnd_ReportLifecycle(t *testing.T) {
	ts := newServer(t, false)

	// 1) Reportante se registra (queda logueado por cookie)
	reporter := newClient(t, ts)
	me := register(reporter, "reporter", "")
	if me.Role != "user" || me.Password != "" {
		t.Fatalf("unexpected register response: %+v", me)
	}

	{
		var cur userResp
		reporter.expect(http.StatusOK, "GET", "/api/user", nil, &cur)
		if cur.ID != me.ID {
			t.Fatalf("expected current user %d, got %d", me.ID, cur.ID)
		}
	}

	// 2) Crea un reporte: status forzado a pending
	var rep reportResp
	reporter.expect(http.StatusCreated, "POST", "/api/reports", map[string]any{
		"animalType":  "dog",
		"description": "injured leg",
		"location":    "Central Park",
		"urgency":     "urgent",
		"status":      "closed",
	}, &rep)
	if rep.Status != "pending" || rep.UserID != me.ID || rep.Urgency != "urgent" {
		t.Fatalf("unexpected report: %+v", rep)
	}
	path := fmt.Sprintf("/api/reports/%d", rep.ID)

	// 3) El reportante no puede responder
	reporter.expect(http.StatusForbidden, "PATCH", path+"/status", map[string]any{"status": "assigned"}, nil)

	// 4) Pero sí editar su propio reporte
	reporter.expect(http.StatusOK, "PATCH", path, map[string]any{"description": "injured front leg"}, nil)

	// ni cambiar el estado por el PATCH genérico
	reporter.expect(http.StatusForbidden, "PATCH", path, map[string]any{"status": "closed"}, nil)
	{
		var got reportResp
		reporter.expect(http.StatusOK, "GET", path, nil, &got)
		if got.Status != "pending" {
			t.Fatalf("expected status pending after forbidden patch, got %s", got.Status)
		}
	}

	// 5) ONG toma el caso
	ngo := newClient(t, ts)
	register(ngo, "shelter", "ngo")

	for _, status := range []string{"assigned", "in_progress"} {
		var got reportResp
		ngo.expect(http.StatusOK, "PATCH", path+"/status", map[string]any{"status": status}, &got)
		if got.Status != status {
			t.Fatalf("expected status %s, got %s", status, got.Status)
		}
	}

	// 6) Transición inválida => 409
	ngo.expect(http.StatusConflict, "PATCH", path+"/status", map[string]any{"status": "pending"}, nil)
	// estado desconocido => 400
	ngo.expect(http.StatusBadRequest, "PATCH", path+"/status", map[string]any{"status": "lost"}, nil)

	ngo.expect(http.StatusOK, "PATCH", path+"/status", map[string]any{"status": "rescued"}, nil)

	// 7) Filtro por estado
	{
		var list []reportResp
		newClient(t, ts).expect(http.StatusOK, "GET", "/api/reports?status=rescued", nil, &list)
		if len(list) != 1 || list[0].ID != rep.ID {
			t.Fatalf("expected only report %d as rescued, got %+v", rep.ID, list)
		}
	}

	// 8) Filtro por autor: el más nuevo primero
	{
		var second reportResp
		reporter.expect(http.StatusCreated, "POST", "/api/reports", map[string]any{
			"animalType": "cat", "description": "stuck in tree", "location": "5th Ave",
		}, &second)

		var list []reportResp
		reporter.expect(http.StatusOK, "GET", fmt.Sprintf("/api/reports?userId=%d", me.ID), nil, &list)
		if len(list) != 2 || list[0].ID != second.ID || list[1].ID != rep.ID {
			t.Fatalf("expected [%d %d], got %+v", second.ID, rep.ID, list)
		}
	}

	// 9) Logout corta la sesión
	reporter.expect(http.StatusOK, "POST", "/api/logout", nil, nil)
	reporter.expect(http.StatusUnauthorized, "GET", "/api/user", nil, nil)
	reporter.expect(http.StatusUnauthorized, "POST", "/api/reports", map[string]any{"animalType": "dog"}, nil)
}

func TestHTTP_Contribution(t *testing.T) {
	ts := newServer(t, false)

	anon := newClient(t, ts)
	anon.expect(http.StatusUnauthorized, "POST", "/api/donations/1/contribute", map[string]any{"amount": 100}, nil)

	donor := newClient(t, ts)
	register(donor, "donor", "")

	var before donationResp
	donor.expect(http.StatusOK, "GET", "/api/donations/1", nil, &before)
	if before.GoalAmount != 5000 || before.RaisedAmount != 2500 {
		t.Fatalf("unexpected seeded campaign: %+v", before)
	}

	var after donationResp
	donor.expect(http.StatusOK, "POST", "/api/donations/1/contribute", map[string]any{"amount": 100}, &after)
	if after.RaisedAmount != 2600 {
		t.Fatalf("expected raisedAmount 2600, got %d", after.RaisedAmount)
	}

	donor.expect(http.StatusBadRequest, "POST", "/api/donations/1/contribute", map[string]any{"amount": 0}, nil)
	donor.expect(http.StatusBadRequest, "POST", "/api/donations/1/contribute", map[string]any{"amount": -5}, nil)
	donor.expect(http.StatusBadRequest, "POST", "/api/donations/1/contribute", map[string]any{"amount": int64(9223372036854775807)}, nil)
	donor.expect(http.StatusNotFound, "POST", "/api/donations/99/contribute", map[string]any{"amount": 10}, nil)

	// raisedAmount no se puede tocar por PATCH (campo desconocido)
	admin := newClient(t, ts)
	loginAdmin(admin)
	admin.expect(http.StatusBadRequest, "PATCH", "/api/donations/1", map[string]any{"raisedAmount": 99999}, nil)

	var list []donationResp
	anon.expect(http.StatusOK, "GET", "/api/donations", nil, &list)
	if len(list) != 2 || list[0].ID != 1 || list[0].RaisedAmount != 2600 {
		t.Fatalf("unexpected donation list: %+v", list)
	}
}

func TestHTTP_UpdateMissingEntity_NotFound(t *testing.T) {
	ts := newServer(t, false)

	admin := newClient(t, ts)
	loginAdmin(admin)

	cases := []struct {
		path string
		body map[string]any
	}{
		{"/api/users/999", map[string]any{"name": "Ghost"}},
		{"/api/reports/999", map[string]any{"description": "x"}},
		{"/api/reports/999/status", map[string]any{"status": "closed"}},
		{"/api/vets/999", map[string]any{"name": "Ghost Clinic"}},
		{"/api/adoptions/999", map[string]any{"name": "Ghost"}},
		{"/api/donations/999", map[string]any{"title": "Ghost"}},
		{"/api/posts/999", map[string]any{"title": "Ghost"}},
	}
	for _, tc := range cases {
		st, body := admin.do("PATCH", tc.path, tc.body)
		if st != http.StatusNotFound {
			t.Fatalf("PATCH %s: expected 404, got %d body=%s", tc.path, st, string(body))
		}
		var e struct {
			Message string `json:"message"`
		}
		if err := json.Unmarshal(body, &e); err != nil || e.Message == "" {
			t.Fatalf("PATCH %s: expected json error message, got %s", tc.path, string(body))
		}
	}

	for _, p := range []string{"/api/reports/999", "/api/vets/999", "/api/adoptions/999", "/api/donations/999", "/api/posts/999"} {
		admin.expect(http.StatusNotFound, "GET", p, nil, nil)
	}
	admin.expect(http.StatusBadRequest, "GET", "/api/reports/abc", nil, nil)
}

func TestHTTP_RolesAndAuth(t *testing.T) {
	ts := newServer(t, false)

	anon := newClient(t, ts)
	user := newClient(t, ts)
	register(user, "plain", "")
	admin := newClient(t, ts)
	loginAdmin(admin)

	vet := map[string]any{"name": "New Clinic", "address": "1 Road", "phone": "555-0000", "rating": 5}
	anon.expect(http.StatusUnauthorized, "POST", "/api/vets", vet, nil)
	user.expect(http.StatusForbidden, "POST", "/api/vets", vet, nil)
	admin.expect(http.StatusCreated, "POST", "/api/vets", vet, nil)
	admin.expect(http.StatusBadRequest, "POST", "/api/vets", map[string]any{"name": "No phone", "address": "x"}, nil)

	adoption := map[string]any{"name": "Rex", "type": "dog", "age": "1 year", "gender": "male", "description": "good boy"}
	user.expect(http.StatusForbidden, "POST", "/api/adoptions", adoption, nil)
	admin.expect(http.StatusCreated, "POST", "/api/adoptions", adoption, nil)

	user.expect(http.StatusForbidden, "GET", "/api/users", nil, nil)
	{
		var list []userResp
		admin.expect(http.StatusOK, "GET", "/api/users", nil, &list)
		if len(list) != 2 || list[0].Username != "admin" {
			t.Fatalf("unexpected user list: %+v", list)
		}
	}

	// un usuario común no puede subirse el rol
	var me userResp
	user.expect(http.StatusOK, "GET", "/api/user", nil, &me)
	user.expect(http.StatusForbidden, "PATCH", fmt.Sprintf("/api/users/%d", me.ID), map[string]any{"role": "admin"}, nil)
	user.expect(http.StatusOK, "PATCH", fmt.Sprintf("/api/users/%d", me.ID), map[string]any{"name": "Plain Renamed"}, nil)
	admin.expect(http.StatusOK, "PATCH", fmt.Sprintf("/api/users/%d", me.ID), map[string]any{"role": "ngo"}, nil)

	// registro / login
	dup := newClient(t, ts)
	dup.expect(http.StatusConflict, "POST", "/api/register", map[string]any{
		"username": "plain", "password": "secret1", "email": "other@example.com", "name": "Dup",
	}, nil)
	dup.expect(http.StatusBadRequest, "POST", "/api/register", map[string]any{
		"username": "shorty", "password": "12345", "email": "s@example.com", "name": "S",
	}, nil)
	dup.expect(http.StatusBadRequest, "POST", "/api/register", map[string]any{
		"username": "boss", "password": "secret1", "email": "b@example.com", "name": "B", "role": "admin",
	}, nil)
	dup.expect(http.StatusUnauthorized, "POST", "/api/login", map[string]any{"username": "plain", "password": "nope123"}, nil)

	// posts: solo el autor (o admin) edita
	var post struct {
		ID     int `json:"id"`
		UserID int `json:"userId"`
	}
	user.expect(http.StatusCreated, "POST", "/api/posts", map[string]any{"title": "Lost cat", "content": "Have you seen her?"}, &post)
	if post.UserID != me.ID {
		t.Fatalf("expected post author %d, got %d", me.ID, post.UserID)
	}
	other := newClient(t, ts)
	register(other, "other", "")
	other.expect(http.StatusForbidden, "PATCH", fmt.Sprintf("/api/posts/%d", post.ID), map[string]any{"title": "hijack"}, nil)
	admin.expect(http.StatusOK, "PATCH", fmt.Sprintf("/api/posts/%d", post.ID), map[string]any{"title": "Lost cat (found)"}, nil)
}

func TestHTTP_DebugHeader(t *testing.T) {
	t.Run("enabled", func(t *testing.T) {
		ts := newServer(t, true)
		c := newClient(t, ts)
		c.debugUserID = "1"

		var me userResp
		c.expect(http.StatusOK, "GET", "/api/user", nil, &me)
		if me.Username != "admin" || me.Role != "admin" {
			t.Fatalf("expected seeded admin, got %+v", me)
		}

		c.debugUserID = "42"
		c.expect(http.StatusUnauthorized, "GET", "/api/user", nil, nil)
	})

	t.Run("disabled", func(t *testing.T) {
		ts := newServer(t, false)
		c := newClient(t, ts)
		c.debugUserID = "1"
		c.expect(http.StatusUnauthorized, "GET", "/api/user", nil, nil)
	})
}

func TestHTTP_PlatformEndpoints(t *testing.T) {
	ts := newServer(t, false)
	c := newClient(t, ts)

	st, body := c.do("GET", "/health", nil)
	if st != http.StatusOK || string(body) != "ok" {
		t.Fatalf("health: got %d %q", st, string(body))
	}

	c.expect(http.StatusOK, "GET", "/api/vets", nil, nil)

	st, body = c.do("GET", "/metrics", nil)
	if st != http.StatusOK || !strings.Contains(string(body), `route="/api/vets"`) {
		t.Fatalf("metrics: got %d body=%s", st, string(body))
	}

	var doc struct {
		Swagger string `json:"swagger"`
	}
	c.expect(http.StatusOK, "GET", "/swagger/doc.json", nil, &doc)
	if doc.Swagger != "2.0" {
		t.Fatalf("expected swagger 2.0 doc, got %q", doc.Swagger)
	}
}
