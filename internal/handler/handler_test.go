package handler_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/golang-cafe/job-portal/internal/config"
	"github.com/golang-cafe/job-portal/internal/database"
	"github.com/golang-cafe/job-portal/internal/database/databasetest"
	"github.com/golang-cafe/job-portal/internal/handler"
	"github.com/golang-cafe/job-portal/internal/server"
	"github.com/golang-cafe/job-portal/internal/template"
	"github.com/golang-cafe/job-portal/static"

	"github.com/gorilla/mux"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type testPortal struct {
	h  http.Handler
	db *database.DB
}

func newTestPortal(t *testing.T) testPortal {
	t.Helper()
	cfg := config.Config{
		Port:          "9876",
		Env:           "dev",
		StatsCacheTTL: time.Minute,
		SiteName:      "Portal de Empleo",
		SiteHost:      "localhost",
	}
	db := databasetest.New(t)
	svr := server.NewServer(cfg, db, mux.NewRouter(), template.NewTemplate(static.Views))
	t.Cleanup(func() { svr.Close() })
	handler.RegisterRoutes(svr)
	return testPortal{h: svr.Handler(), db: db}
}

func (p testPortal) do(t *testing.T, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	p.h.ServeHTTP(rec, req)
	return rec
}

func (p testPortal) postForm(t *testing.T, target string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	p.h.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, dst interface{}) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), dst); err != nil {
		t.Fatalf("decode %q: %v", rec.Body.String(), err)
	}
}

func (p testPortal) create(t *testing.T, path, body string) int64 {
	t.Helper()
	rec := p.do(t, http.MethodPost, path, body)
	if rec.Code != http.StatusCreated {
		t.Fatalf("POST %s: status %d body %s", path, rec.Code, rec.Body.String())
	}
	var res struct {
		Message string `json:"message"`
		ID      int64  `json:"id"`
	}
	decode(t, rec, &res)
	if res.ID < 1 || !strings.Contains(res.Message, "created successfully") {
		t.Fatalf("unexpected create response %+v", res)
	}
	return res.ID
}

const acmeBody = `{"nombre":"Acme","giro":"Tech","tamaño":"Pequeña","teléfono":"+1","fecha_registro":"2024-01-01","ciudad":"X","dirección":"Y"}`

func vacanteBody(companyID int64, puesto, estatus, fecha string) string {
	return fmt.Sprintf(`{"id_empresa":%d,"puesto":%q,"descripción":"Construir <b>APIs</b> en Go","salario":45000,"modalidad":"Remoto","especialidad":"Backend","fecha_publicación":%q,"estatus":%q}`,
		companyID, puesto, fecha, estatus)
}

func postulacionBody(jobID int64, nombre, cv, fecha string) string {
	return fmt.Sprintf(`{"id_vacante":%d,"nombre_postulante":%q,"correo":"ana@example.com","teléfono":"600","cv_url":%q,"fecha_postulación":%q,"estatus":"En revisión"}`,
		jobID, nombre, cv, fecha)
}

func TestCreateAndGetEmpresa(t *testing.T) {
	p := newTestPortal(t)
	id := p.create(t, "/api/empresas", acmeBody)

	rec := p.do(t, http.MethodGet, fmt.Sprintf("/api/empresas?id=%d", id), "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d body %s", rec.Code, rec.Body.String())
	}
	var got map[string]interface{}
	decode(t, rec, &got)
	want := map[string]interface{}{
		"id_empresa": float64(id), "nombre": "Acme", "giro": "Tech", "tamaño": "Pequeña",
		"teléfono": "+1", "fecha_registro": "2024-01-01", "ciudad": "X", "dirección": "Y",
	}
	for k, v := range want {
		if got[k] != v {
			t.Fatalf("%s = %v, want %v", k, got[k], v)
		}
	}
	if _, ok := got["vacantes"]; ok {
		t.Fatalf("vacantes should only be embedded on request")
	}

	p.create(t, "/api/vacantes", vacanteBody(id, "Go Dev", "Activa", "2024-02-01"))
	rec = p.do(t, http.MethodGet, fmt.Sprintf("/api/empresas?id=%d&withVacantes=true", id), "")
	var withJobs struct {
		Nombre   string                   `json:"nombre"`
		Vacantes []map[string]interface{} `json:"vacantes"`
	}
	decode(t, rec, &withJobs)
	if withJobs.Nombre != "Acme" || len(withJobs.Vacantes) != 1 {
		t.Fatalf("unexpected company with vacantes %+v", withJobs)
	}

	rec = p.do(t, http.MethodGet, "/api/empresas", "")
	var all []map[string]interface{}
	decode(t, rec, &all)
	if len(all) != 1 {
		t.Fatalf("expected one empresa, got %d", len(all))
	}
}

func TestEmpresaErrors(t *testing.T) {
	p := newTestPortal(t)
	cases := []struct {
		method, target, body string
		status               int
		msg                  string
	}{
		{http.MethodGet, "/api/empresas?id=abc", "", http.StatusBadRequest, "ID inválido"},
		{http.MethodGet, "/api/empresas?id=999", "", http.StatusNotFound, "Empresa no encontrada"},
		{http.MethodPost, "/api/empresas", `{"nombre":`, http.StatusBadRequest, "Cuerpo de la solicitud inválido"},
		{http.MethodPost, "/api/empresas", `{"nombre":"Acme"}`, http.StatusBadRequest, "Todos los campos son requeridos"},
		{http.MethodPost, "/api/empresas", strings.Replace(acmeBody, `"giro":"Tech"`, `"giro":""`, 1), http.StatusBadRequest, "Todos los campos son requeridos"},
		{http.MethodGet, "/api/empresas/abc/vacantes", "", http.StatusBadRequest, "ID inválido"},
	}
	for _, c := range cases {
		rec := p.do(t, c.method, c.target, c.body)
		if rec.Code != c.status {
			t.Fatalf("%s %s: status %d, want %d", c.method, c.target, rec.Code, c.status)
		}
		var res struct {
			Error string `json:"error"`
		}
		decode(t, rec, &res)
		if res.Error != c.msg {
			t.Fatalf("%s %s: error %q, want %q", c.method, c.target, res.Error, c.msg)
		}
	}
}

func (p testPortal) count(t *testing.T, table string) int64 {
	t.Helper()
	var n int64
	if err := p.db.QueryRowContext(context.Background(), "SELECT COUNT(*) FROM "+table).Scan(&n); err != nil {
		t.Fatalf("count %s: %v", table, err)
	}
	return n
}

func TestCreateRejectsIncompletePayloads(t *testing.T) {
	p := newTestPortal(t)
	acme := p.create(t, "/api/empresas", acmeBody)
	jobID := p.create(t, "/api/vacantes", vacanteBody(acme, "Go Dev", "Activa", "2024-01-01"))
	vacante := vacanteBody(acme, "Otra", "Activa", "2024-01-02")
	postulacion := postulacionBody(jobID, "Ana", "https://cv.example.com/ana.pdf", "2024-01-10")

	cases := []struct {
		name, target, table, body string
	}{
		{"empresa without ciudad", "/api/empresas", "empresas", strings.Replace(acmeBody, `"ciudad":"X",`, "", 1)},
		{"empresa with only nombre", "/api/empresas", "empresas", `{"nombre":"Acme"}`},
		{"vacante without especialidad", "/api/vacantes", "vacantes", strings.Replace(vacante, `"especialidad":"Backend",`, "", 1)},
		{"vacante with negative salario", "/api/vacantes", "vacantes", strings.Replace(vacante, `"salario":45000`, `"salario":-3`, 1)},
		{"vacante with zero salario", "/api/vacantes", "vacantes", strings.Replace(vacante, `"salario":45000`, `"salario":0`, 1)},
		{"vacante with sub cent salario", "/api/vacantes", "vacantes", strings.Replace(vacante, `"salario":45000`, `"salario":0.001`, 1)},
		{"vacante with empty descripción", "/api/vacantes", "vacantes", strings.Replace(vacante, `"descripción":"Construir <b>APIs</b> en Go"`, `"descripción":"<b></b>"`, 1)},
		{"postulacion without correo", "/api/postulaciones", "postulaciones", strings.Replace(postulacion, `"correo":"ana@example.com",`, "", 1)},
		{"postulacion with empty cv_url", "/api/postulaciones", "postulaciones", strings.Replace(postulacion, `"cv_url":"https://cv.example.com/ana.pdf"`, `"cv_url":""`, 1)},
		{"postulacion without fecha", "/api/postulaciones", "postulaciones", strings.Replace(postulacion, `"fecha_postulación":"2024-01-10",`, "", 1)},
	}
	for _, c := range cases {
		before := p.count(t, c.table)
		rec := p.do(t, http.MethodPost, c.target, c.body)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("%s: status %d body %s", c.name, rec.Code, rec.Body.String())
		}
		var res struct {
			Error string `json:"error"`
		}
		decode(t, rec, &res)
		if res.Error != "Todos los campos son requeridos" {
			t.Fatalf("%s: error %q", c.name, res.Error)
		}
		if after := p.count(t, c.table); after != before {
			t.Fatalf("%s: %s rows went from %d to %d", c.name, c.table, before, after)
		}
	}
}

func TestSalarioIsStoredInCents(t *testing.T) {
	p := newTestPortal(t)
	acme := p.create(t, "/api/empresas", acmeBody)
	id := p.create(t, "/api/vacantes", strings.Replace(vacanteBody(acme, "Go Dev", "Activa", "2024-01-01"), `"salario":45000`, `"salario":45000.456`, 1))

	var salary float64
	if err := p.db.QueryRowContext(context.Background(), "SELECT salario FROM vacantes WHERE id_vacante = ?", id).Scan(&salary); err != nil {
		t.Fatalf("select salario: %v", err)
	}
	if salary != 45000.46 {
		t.Fatalf("salario = %v, want 45000.46", salary)
	}
}

func TestVacantesFilters(t *testing.T) {
	p := newTestPortal(t)
	acme := p.create(t, "/api/empresas", acmeBody)
	other := p.create(t, "/api/empresas", strings.Replace(acmeBody, "Acme", "Initech", 1))
	p.create(t, "/api/vacantes", vacanteBody(acme, "Antigua", "Activa", "2024-01-01"))
	p.create(t, "/api/vacantes", vacanteBody(acme, "Cerrada", "Cerrada", "2024-02-01"))
	p.create(t, "/api/vacantes", vacanteBody(other, "Nueva", "Activa", "2024-03-01"))

	var jobs []map[string]interface{}
	decode(t, p.do(t, http.MethodGet, "/api/vacantes", ""), &jobs)
	if len(jobs) != 3 || jobs[0]["puesto"] != "Nueva" || jobs[2]["puesto"] != "Antigua" {
		t.Fatalf("expected newest first, got %v", jobs)
	}
	if jobs[0]["descripción"] != "Construir APIs en Go" {
		t.Fatalf("descripción should be stripped of html, got %q", jobs[0]["descripción"])
	}

	decode(t, p.do(t, http.MethodGet, "/api/vacantes?estatus=activa", ""), &jobs)
	if len(jobs) != 2 {
		t.Fatalf("estatus filter should be case insensitive, got %d rows", len(jobs))
	}
	decode(t, p.do(t, http.MethodGet, fmt.Sprintf("/api/vacantes?empresaId=%d&limit=1", acme), ""), &jobs)
	if len(jobs) != 1 || jobs[0]["puesto"] != "Cerrada" {
		t.Fatalf("unexpected limited listing %v", jobs)
	}
	if rec := p.do(t, http.MethodGet, "/api/vacantes?limit=x", ""); rec.Code != http.StatusBadRequest {
		t.Fatalf("invalid limit: status %d", rec.Code)
	}

	rec := p.do(t, http.MethodPost, "/api/vacantes", strings.Replace(vacanteBody(acme, "Gratis", "Activa", "2024-01-01"), `"salario":45000`, `"salario":0`, 1))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("zero salary should be rejected, got %d", rec.Code)
	}

	var page struct {
		Items      []map[string]interface{} `json:"items"`
		Pagination struct {
			Total      int `json:"total"`
			Page       int `json:"page"`
			PageSize   int `json:"pageSize"`
			TotalPages int `json:"totalPages"`
		} `json:"pagination"`
	}
	decode(t, p.do(t, http.MethodGet, fmt.Sprintf("/api/empresas/%d/vacantes?page=2&pageSize=1", acme), ""), &page)
	if page.Pagination.Total != 2 || page.Pagination.TotalPages != 2 || page.Pagination.Page != 2 || len(page.Items) != 1 {
		t.Fatalf("unexpected page %+v", page)
	}
	if page.Items[0]["puesto"] != "Antigua" {
		t.Fatalf("second page should hold the oldest vacante, got %v", page.Items[0])
	}
}

func TestPostulaciones(t *testing.T) {
	p := newTestPortal(t)
	acme := p.create(t, "/api/empresas", acmeBody)
	jobID := p.create(t, "/api/vacantes", vacanteBody(acme, "Go Dev", "Activa", "2024-01-01"))
	p.create(t, "/api/postulaciones", postulacionBody(jobID, "Ana", "https://cv.example.com/ana.pdf", "2024-01-10"))
	p.create(t, "/api/postulaciones", postulacionBody(jobID, "Luis", "https://cv.example.com/luis.pdf", "2024-01-20"))

	if _, err := p.db.ExecContext(context.Background(),
		`INSERT INTO postulaciones (id_vacante, nombre_postulante, correo, "teléfono", cv_url, "fecha_postulación", estatus) VALUES (?, ?, ?, ?, NULL, ?, ?)`,
		jobID, "Sin CV", "sincv@example.com", "600", "2024-01-15", "En revisión"); err != nil {
		t.Fatalf("seed application without cv: %v", err)
	}

	var apps []map[string]interface{}
	decode(t, p.do(t, http.MethodGet, "/api/postulaciones?from=2024-01-12&to=2024-01-20", ""), &apps)
	if len(apps) != 2 || apps[0]["nombre_postulante"] != "Luis" {
		t.Fatalf("unexpected date range listing %v", apps)
	}
	decode(t, p.do(t, http.MethodGet, "/api/postulaciones?withCV=true", ""), &apps)
	if len(apps) != 2 {
		t.Fatalf("withCV should skip null cv_url, got %d rows", len(apps))
	}
	if rec := p.do(t, http.MethodGet, "/api/postulaciones?from=ayer", ""); rec.Code != http.StatusBadRequest {
		t.Fatalf("invalid date: status %d", rec.Code)
	}

	var page struct {
		Items      []map[string]interface{} `json:"items"`
		Pagination struct {
			Total int `json:"total"`
		} `json:"pagination"`
	}
	decode(t, p.do(t, http.MethodGet, fmt.Sprintf("/api/vacantes/%d/postulantes?withCV=true&vacanteId=999", jobID), ""), &page)
	if page.Pagination.Total != 2 || len(page.Items) != 2 {
		t.Fatalf("unexpected postulantes page %+v", page)
	}
	rec := p.do(t, http.MethodGet, "/api/vacantes/999999/postulantes", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("unknown vacante: status %d", rec.Code)
	}
	decode(t, rec, &page)
	if page.Pagination.Total != 0 || page.Items == nil || len(page.Items) != 0 {
		t.Fatalf("expected empty page, got %+v", page)
	}

	rec = p.do(t, http.MethodPost, "/api/postulaciones", postulacionBody(999, "Nadie", "https://cv", "2024-01-01"))
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("foreign key violation should be a server error, got %d", rec.Code)
	}
}

type statsPayload struct {
	Status string `json:"status"`
	Stats  struct {
		Empresas      int64 `json:"empresas"`
		Vacantes      int64 `json:"vacantes"`
		Postulaciones int64 `json:"postulaciones"`
	} `json:"stats"`
	VacantesCerradas int64 `json:"vacantesCerradas"`
	Salarios         struct {
		Total int     `json:"total"`
		Media float64 `json:"media"`
	} `json:"salarios"`
}

func TestStatsAreCachedUntilNextCreate(t *testing.T) {
	p := newTestPortal(t)
	acme := p.create(t, "/api/empresas", acmeBody)
	p.create(t, "/api/vacantes", vacanteBody(acme, "Cerrada", "Cerrada", "2024-01-01"))

	var s statsPayload
	decode(t, p.do(t, http.MethodGet, "/api/stats", ""), &s)
	if s.Status != "success" || s.Stats.Empresas != 1 || s.Stats.Vacantes != 1 || s.VacantesCerradas != 1 {
		t.Fatalf("unexpected stats %+v", s)
	}
	if s.Salarios.Total != 1 || s.Salarios.Media != 45000 {
		t.Fatalf("unexpected salary summary %+v", s.Salarios)
	}

	if _, err := p.db.ExecContext(context.Background(),
		`INSERT INTO empresas (nombre, giro, "tamaño", "teléfono", fecha_registro, ciudad, "dirección") VALUES (?, ?, ?, ?, ?, ?, ?)`,
		"Directa", "Tech", "Grande", "+1", "2024-01-01", "Madrid", "Calle 2"); err != nil {
		t.Fatalf("insert: %v", err)
	}
	decode(t, p.do(t, http.MethodGet, "/api/stats", ""), &s)
	if s.Stats.Empresas != 1 {
		t.Fatalf("expected cached stats, got %d empresas", s.Stats.Empresas)
	}

	p.create(t, "/api/empresas", strings.Replace(acmeBody, "Acme", "Initech", 1))
	decode(t, p.do(t, http.MethodGet, "/api/stats", ""), &s)
	if s.Stats.Empresas != 3 {
		t.Fatalf("create should invalidate cached stats, got %d empresas", s.Stats.Empresas)
	}
}

// A stats read that started before a concurrent create must not leave its
// pre-insert counts in the cache.
func TestStatsReadRacingCreateIsNotCached(t *testing.T) {
	p := newTestPortal(t)
	ctx := context.Background()

	serve := func(req *http.Request) *httptest.ResponseRecorder {
		rec := httptest.NewRecorder()
		p.h.ServeHTTP(rec, req)
		return rec
	}
	var (
		wg         sync.WaitGroup
		statsRec   *httptest.ResponseRecorder
		createdRec *httptest.ResponseRecorder
	)
	// the test database has a single connection, so holding it queues both
	// requests until the snapshot ends
	err := p.db.Snapshot(ctx, func(q database.Querier) error {
		wg.Add(2)
		go func() {
			defer wg.Done()
			statsRec = serve(httptest.NewRequest(http.MethodGet, "/api/stats", nil))
		}()
		time.Sleep(20 * time.Millisecond)
		go func() {
			defer wg.Done()
			req := httptest.NewRequest(http.MethodPost, "/api/empresas", strings.NewReader(acmeBody))
			req.Header.Set("Content-Type", "application/json")
			createdRec = serve(req)
		}()
		time.Sleep(20 * time.Millisecond)
		return nil
	})
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}
	wg.Wait()
	if statsRec.Code != http.StatusOK {
		t.Fatalf("stats: status %d body %s", statsRec.Code, statsRec.Body.String())
	}
	if createdRec.Code != http.StatusCreated {
		t.Fatalf("create: status %d body %s", createdRec.Code, createdRec.Body.String())
	}

	var s statsPayload
	decode(t, p.do(t, http.MethodGet, "/api/stats", ""), &s)
	if rows := p.count(t, "empresas"); s.Stats.Empresas != rows {
		t.Fatalf("stats report %d empresas, table has %d", s.Stats.Empresas, rows)
	}
}

func TestFormSubmitInvalidatesStats(t *testing.T) {
	p := newTestPortal(t)
	var s statsPayload
	decode(t, p.do(t, http.MethodGet, "/api/stats", ""), &s)
	if s.Stats.Empresas != 0 {
		t.Fatalf("unexpected stats %+v", s)
	}
	rec := p.postForm(t, "/empresas/nueva", url.Values{
		"nombre": {"Acme"}, "giro": {"Tech"}, "tamaño": {"Mediana"}, "teléfono": {"+34"},
		"fecha_registro": {"2024-05-01"}, "ciudad": {"Madrid"}, "dirección": {"Gran Vía 1"},
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("empresa submit: status %d", rec.Code)
	}
	decode(t, p.do(t, http.MethodGet, "/api/stats", ""), &s)
	if s.Stats.Empresas != 1 {
		t.Fatalf("form submit should invalidate cached stats, got %d empresas", s.Stats.Empresas)
	}
}

func TestConnectionDiagnostic(t *testing.T) {
	p := newTestPortal(t)
	p.create(t, "/api/empresas", acmeBody)
	rec := p.do(t, http.MethodGet, "/api/test", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d body %s", rec.Code, rec.Body.String())
	}
	var res struct {
		Status  string   `json:"status"`
		Message string   `json:"message"`
		Tables  []string `json:"tables"`
		Stats   struct {
			Empresas int64 `json:"empresas"`
		} `json:"stats"`
	}
	decode(t, rec, &res)
	if res.Status != "success" || res.Message != "Conexión a la base de datos exitosa" || res.Stats.Empresas != 1 {
		t.Fatalf("unexpected diagnostic %+v", res)
	}
	if len(res.Tables) < 3 {
		t.Fatalf("expected portal tables, got %v", res.Tables)
	}
}

func TestMethodNotAllowed(t *testing.T) {
	p := newTestPortal(t)
	if rec := p.do(t, http.MethodDelete, "/api/empresas", ""); rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("DELETE should not be routed, got %d", rec.Code)
	}
}

func TestPages(t *testing.T) {
	p := newTestPortal(t)

	rec := p.do(t, http.MethodGet, "/empresas/nueva", "")
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "Registrar empresa") {
		t.Fatalf("empresa form: status %d", rec.Code)
	}

	form := url.Values{
		"nombre": {"Acme"}, "giro": {"Tech"}, "tamaño": {"Mediana"}, "teléfono": {"+34"},
		"fecha_registro": {"2024-05-01"}, "ciudad": {"Madrid"}, "dirección": {"Gran Vía 1"},
	}
	rec = p.postForm(t, "/empresas/nueva", form)
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "Empresa registrada exitosamente") {
		t.Fatalf("empresa submit: status %d body %s", rec.Code, rec.Body.String())
	}
	form.Del("giro")
	rec = p.postForm(t, "/empresas/nueva", form)
	if rec.Code != http.StatusBadRequest || !strings.Contains(rec.Body.String(), "Por favor completa todos los campos") {
		t.Fatalf("missing giro: status %d", rec.Code)
	}

	rec = p.postForm(t, "/vacantes/nueva", url.Values{
		"id_empresa": {"1"}, "puesto": {"Gopher"}, "descripción": {"Escribir **Go**"}, "salario": {"52000"},
		"modalidad": {"Híbrido"}, "especialidad": {"Backend"}, "fecha_publicación": {"2024-05-02"}, "estatus": {"Activa"},
	})
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "Vacante creada exitosamente") {
		t.Fatalf("vacante submit: status %d body %s", rec.Code, rec.Body.String())
	}

	applicant := url.Values{
		"id_vacante": {"1"}, "nombre_postulante": {"Ana"}, "correo": {"ana"}, "teléfono": {"600"},
		"cv_url": {"https://cv.example.com/ana.pdf"},
	}
	rec = p.postForm(t, "/postulaciones/nueva", applicant)
	if rec.Code != http.StatusBadRequest || !strings.Contains(rec.Body.String(), "Por favor ingresa un correo válido") {
		t.Fatalf("invalid email: status %d", rec.Code)
	}
	applicant.Set("correo", "ana@example.com")
	rec = p.postForm(t, "/postulaciones/nueva", applicant)
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "Postulación enviada exitosamente!") {
		t.Fatalf("postulacion submit: status %d body %s", rec.Code, rec.Body.String())
	}

	for target, want := range map[string]string{
		"/":                             "Gopher",
		"/empresas":                     "Acme",
		"/empresas?empresa=1":           "Ver postulantes",
		"/empresas?empresa=1&vacante=1": "ana@example.com",
		"/estadisticas":                 "Vacantes por modalidad",
		"/vacantes/feed.xml":            "Gopher en Acme",
		"/sitemap.xml":                  "empresas?empresa=1",
	} {
		rec := p.do(t, http.MethodGet, target, "")
		if rec.Code != http.StatusOK {
			t.Fatalf("GET %s: status %d", target, rec.Code)
		}
		if !strings.Contains(rec.Body.String(), want) {
			t.Fatalf("GET %s: body does not contain %q", target, want)
		}
	}
	if rec := p.do(t, http.MethodGet, "/empresas?empresa=x", ""); rec.Code != http.StatusBadRequest {
		t.Fatalf("invalid empresa id: status %d", rec.Code)
	}
}
