package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/angelmondragon/skuexport/internal/exporter"
	"github.com/angelmondragon/skuexport/internal/options"
	"github.com/angelmondragon/skuexport/pkg/config"
	"github.com/angelmondragon/skuexport/pkg/enums"
	pkgerrors "github.com/angelmondragon/skuexport/pkg/errors"
)

type stubExportService struct {
	got    exporter.Request
	result *exporter.Result
	err    error
}

func (s *stubExportService) Export(_ context.Context, req exporter.Request) (*exporter.Result, error) {
	s.got = req
	return s.result, s.err
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	if err := json.NewDecoder(rec.Body).Decode(&env); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return env
}

func postExport(t *testing.T, svc exporter.Service, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/exports/skus", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	ExportSKUs(svc, nil).ServeHTTP(rec, req)
	return rec
}

func TestExportSKUsMapsRequest(t *testing.T) {
	svc := &stubExportService{result: &exporter.Result{SKUs: "A, B", Count: 2, Message: "2 product(s) exported.", ProductsFound: 2}}

	rec := postExport(t, svc, `{"filter_type":"category","filter_value":["12","15"],"include_variations":true,"export_format":"sku_title","delimiter":"newline"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", rec.Code, rec.Body.String())
	}
	if svc.got.FilterType != "category" || len(svc.got.FilterValues) != 2 || !svc.got.IncludeVariations {
		t.Fatalf("unexpected request %+v", svc.got)
	}
	if svc.got.Format != enums.ExportFormatSKUTitle || svc.got.Delimiter != enums.DelimiterNewline {
		t.Fatalf("unexpected rendering options %+v", svc.got)
	}

	env := decodeEnvelope(t, rec)
	var data exportResponse
	if err := json.Unmarshal(env.Data, &data); err != nil {
		t.Fatalf("decode data: %v", err)
	}
	if !env.Success || data.SKUs != "A, B" || data.Count != 2 || data.Message != "2 product(s) exported." {
		t.Fatalf("unexpected payload %+v", data)
	}
}

func TestExportSKUsPassesLongIDListIntact(t *testing.T) {
	svc := &stubExportService{result: &exporter.Result{}}
	ids := make([]string, 0, 40)
	for i := 100000; i < 100040; i++ {
		ids = append(ids, strconv.Itoa(i))
	}
	list := strings.Join(ids, ",")

	rec := postExport(t, svc, `{"filter_type":"id","filter_value":"`+list+`"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", rec.Code, rec.Body.String())
	}
	if len(svc.got.FilterValues) != 1 || svc.got.FilterValues[0] != list {
		t.Fatalf("expected id list of %d bytes intact, got %q", len(list), svc.got.FilterValues)
	}
}

func TestExportSKUsDefaults(t *testing.T) {
	svc := &stubExportService{result: &exporter.Result{Message: "No products found matching the criteria."}}

	rec := postExport(t, svc, `{"filter_value":"ignored","export_format":"csv","delimiter":"pipe"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}
	if svc.got.FilterType != "all" {
		t.Fatalf("expected missing filter type to mean all, got %q", svc.got.FilterType)
	}
	if svc.got.Format != enums.ExportFormatSKU || svc.got.Delimiter != enums.DelimiterComma {
		t.Fatalf("expected fallback rendering options, got %+v", svc.got)
	}
}

func TestExportSKUsPropagatesServiceErrors(t *testing.T) {
	svc := &stubExportService{err: pkgerrors.New(pkgerrors.CodeInvalidFilterType, "Invalid filter type.")}

	rec := postExport(t, svc, `{"filter_type":"bogus"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", rec.Code)
	}
	env := decodeEnvelope(t, rec)
	if env.Success || env.Error.Code != string(pkgerrors.CodeInvalidFilterType) || env.Error.Message != "Invalid filter type." {
		t.Fatalf("unexpected error envelope %+v", env)
	}
}

func TestExportSKUsRejectsMalformedBody(t *testing.T) {
	rec := postExport(t, &stubExportService{}, `{"filter_type":`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", rec.Code)
	}
}

type stubOptionsService struct {
	opts []options.Option
	err  error
}

func (s stubOptionsService) ListCategories(context.Context) ([]options.Option, error) {
	return s.opts, s.err
}

func (s stubOptionsService) ListTags(context.Context) ([]options.Option, error) {
	return s.opts, s.err
}

func (s stubOptionsService) ListAttributeValues(context.Context) ([]options.Option, error) {
	return s.opts, s.err
}

func (s stubOptionsService) Warm(context.Context) error { return s.err }

func TestListOptions(t *testing.T) {
	svc := stubOptionsService{opts: []options.Option{{Value: "pa_color|red", Label: "Color: Red", Count: 3}}}
	rec := httptest.NewRecorder()
	ListAttributeOptions(svc, nil).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/options/attributes", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}

	env := decodeEnvelope(t, rec)
	var data optionsResponse
	if err := json.Unmarshal(env.Data, &data); err != nil {
		t.Fatalf("decode data: %v", err)
	}
	if len(data.Options) != 1 || data.Options[0].Value != "pa_color|red" {
		t.Fatalf("unexpected options %+v", data.Options)
	}
}

func TestListOptionsEmptyIsArray(t *testing.T) {
	rec := httptest.NewRecorder()
	ListTagOptions(stubOptionsService{}, nil).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if !bytes.Contains(rec.Body.Bytes(), []byte(`"options":[]`)) {
		t.Fatalf("expected empty options array, got %s", rec.Body.String())
	}
}

func TestListOptionsFailure(t *testing.T) {
	svc := stubOptionsService{err: pkgerrors.New(pkgerrors.CodeDependency, "Failed to load categories.")}
	rec := httptest.NewRecorder()
	ListCategoryOptions(svc, nil).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 got %d", rec.Code)
	}
	if env := decodeEnvelope(t, rec); env.Error.Message != "Failed to load categories." {
		t.Fatalf("unexpected message %q", env.Error.Message)
	}
}

func TestHealthReady(t *testing.T) {
	cfg := &config.Config{App: config.AppConfig{Env: "dev"}}

	rec := httptest.NewRecorder()
	HealthReady(cfg, nil, ReadinessCheck{Name: "db", Ping: func(context.Context) error { return nil }}).
		ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health/ready", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}
	if rec.Header().Get("X-SKUExport-Env") != "dev" {
		t.Fatal("expected env header")
	}

	rec = httptest.NewRecorder()
	HealthReady(cfg, nil, ReadinessCheck{Name: "cache", Ping: func(context.Context) error { return errors.New("down") }}).
		ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health/ready", nil))
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 got %d", rec.Code)
	}
}
