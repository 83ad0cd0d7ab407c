package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/openfds/fdskit/pkg/canon"
)

func postJSON(t *testing.T, h http.Handler, path string, body any, hdr map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	data, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal request: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range hdr {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func decodeData(t *testing.T, w *httptest.ResponseRecorder, out any) {
	t.Helper()
	var resp struct {
		Success bool            `json:"success"`
		Data    json.RawMessage `json:"data"`
		Error   string          `json:"error"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if !resp.Success {
		t.Fatalf("request failed: %s", resp.Error)
	}
	if err := json.Unmarshal(resp.Data, out); err != nil {
		t.Fatalf("unmarshal data: %v", err)
	}
}

func TestFormatEndpoint(t *testing.T) {
	s := NewServer(Config{})
	w := postJSON(t, s.Handler(), "/api/v1/format", FormatRequest{
		Source: "&HEAD CHID='demo' /\n&TIME T_END=600.0 /\n",
	}, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d: %s", w.Code, http.StatusOK, w.Body.String())
	}

	var resp FormatResponse
	decodeData(t, w, &resp)
	if resp.Records != 2 {
		t.Errorf("Records = %d, want 2", resp.Records)
	}
	if !strings.Contains(resp.Text, "&HEAD CHID='demo' /") {
		t.Errorf("Text missing HEAD record:\n%s", resp.Text)
	}
	if len(resp.Warnings) != 0 {
		t.Errorf("Warnings = %v, want none", resp.Warnings)
	}
}

func TestFormatEndpointWarnsUnknownGroup(t *testing.T) {
	s := NewServer(Config{})
	w := postJSON(t, s.Handler(), "/api/v1/format", FormatRequest{
		Source: "&BOGUS ID='x' /\n",
	}, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}
	var resp FormatResponse
	decodeData(t, w, &resp)
	if len(resp.Warnings) != 1 {
		t.Fatalf("Warnings = %v, want one entry", resp.Warnings)
	}
}

func TestFormatEndpointUsesConfiguredPolicy(t *testing.T) {
	s := NewServer(Config{Canon: &canon.Options{
		Precision: map[string]int{"XB": 3},
	}})
	w := postJSON(t, s.Handler(), "/api/v1/format", FormatRequest{
		Source: "&OBST XB=0,1,0,1,0,1 /\n",
	}, nil)
	var resp FormatResponse
	decodeData(t, w, &resp)
	want := "&OBST XB=0.000,1.000,0.000,1.000,0.000,1.000 /\n"
	if resp.Text != want {
		t.Errorf("Text = %q, want %q", resp.Text, want)
	}
}

func TestFormatEndpointRejectsEmptySource(t *testing.T) {
	s := NewServer(Config{})
	w := postJSON(t, s.Handler(), "/api/v1/format", FormatRequest{}, nil)
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}
}

func TestFormatEndpointStrictError(t *testing.T) {
	s := NewServer(Config{})
	w := postJSON(t, s.Handler(), "/api/v1/format", FormatRequest{
		Source: "&OBST 5BAD ID='ok' /\n",
		Strict: true,
	}, nil)
	if w.Code != http.StatusUnprocessableEntity {
		t.Errorf("status = %d, want %d: %s", w.Code, http.StatusUnprocessableEntity, w.Body.String())
	}
}

func TestParseEndpoint(t *testing.T) {
	s := NewServer(Config{})
	w := postJSON(t, s.Handler(), "/api/v1/parse", ParseRequest{
		Source: "! setup\n&MESH IJK=10,10,10 XB=0,1,0,1,0,1 /\n",
	}, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d: %s", w.Code, http.StatusOK, w.Body.String())
	}

	var resp ParseResponse
	decodeData(t, w, &resp)
	if len(resp.Records) != 1 {
		t.Fatalf("Records = %d, want 1", len(resp.Records))
	}
	rec := resp.Records[0]
	if rec.Label != "MESH" || rec.Line != 2 {
		t.Errorf("record = %s@%d, want MESH@2", rec.Label, rec.Line)
	}
	if len(rec.Params) != 2 {
		t.Fatalf("params = %d, want 2", len(rec.Params))
	}
	if rec.Params[0].Label != "IJK" || rec.Params[0].Values[0] != "int" {
		t.Errorf("first param = %+v, want IJK of ints", rec.Params[0])
	}
}

func TestStatusEndpoint(t *testing.T) {
	s := NewServer(Config{})
	req := httptest.NewRequest(http.MethodGet, "/api/v1/status", nil)
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}
	var resp StatusResponse
	decodeData(t, w, &resp)
	if resp.KnownGroups == 0 {
		t.Error("KnownGroups = 0, want > 0")
	}
}

func TestAuthRequired(t *testing.T) {
	s := NewServer(Config{Auth: &AuthConfig{
		Users:   map[string]string{"admin": "secret"},
		APIKeys: map[string]bool{"token1": true},
	}})

	w := postJSON(t, s.Handler(), "/api/v1/format", FormatRequest{Source: "&TAIL /"}, nil)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("unauthenticated status = %d, want %d", w.Code, http.StatusUnauthorized)
	}

	w = postJSON(t, s.Handler(), "/api/v1/format", FormatRequest{Source: "&TAIL /"},
		map[string]string{"X-API-Key": "token1"})
	if w.Code != http.StatusOK {
		t.Errorf("API key status = %d, want %d", w.Code, http.StatusOK)
	}

	w = postJSON(t, s.Handler(), "/api/v1/format", FormatRequest{Source: "&TAIL /"},
		map[string]string{"Authorization": "Bearer token1"})
	if w.Code != http.StatusOK {
		t.Errorf("bearer status = %d, want %d", w.Code, http.StatusOK)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/format",
		strings.NewReader(`{"source":"&TAIL /"}`))
	req.SetBasicAuth("admin", "secret")
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("basic auth status = %d, want %d", rec.Code, http.StatusOK)
	}

	req = httptest.NewRequest(http.MethodGet, "/health", nil)
	rec = httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("health bypass status = %d, want %d", rec.Code, http.StatusOK)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	s := NewServer(Config{})
	postJSON(t, s.Handler(), "/api/v1/format", FormatRequest{Source: "&TAIL /"}, nil)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}
	if !strings.Contains(w.Body.String(), "fdskit_documents_total") {
		t.Error("metrics output missing fdskit_documents_total")
	}
}
