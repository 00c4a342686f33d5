package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestTechnicianByNFC(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/technicians/by-nfc/04a1b2c3" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if got := r.Header.Get("X-API-Key"); got != "secret" {
			t.Errorf("X-API-Key = %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"t-1","first_name":"Ada","last_name":"Byron","status":"active"}`))
	}))
	defer srv.Close()

	c := New(srv.URL, "secret")
	tech, err := c.TechnicianByNFC(context.Background(), "04a1b2c3")
	if err != nil {
		t.Fatalf("TechnicianByNFC: %v", err)
	}
	if tech.ID != "t-1" || tech.FirstName != "Ada" {
		t.Fatalf("unexpected technician: %+v", tech)
	}
}

func TestAPIErrorFromBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error":"technician not found"}`))
	}))
	defer srv.Close()

	c := New(srv.URL, "secret")
	_, err := c.TechnicianByNFC(context.Background(), "unknown")
	if err == nil {
		t.Fatal("expected error")
	}
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("error type = %T", err)
	}
	if apiErr.StatusCode != http.StatusNotFound || apiErr.Message != "technician not found" {
		t.Fatalf("unexpected APIError: %+v", apiErr)
	}
}

func TestSubmitAccessEvent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/v1/access-logs" {
			t.Errorf("%s %s", r.Method, r.URL.Path)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("Content-Type = %q", ct)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"id":"log-1","toolbox_id":"tb-1","technician_id":"t-1","action_type":"close","items_missing":2}`))
	}))
	defer srv.Close()

	c := New(srv.URL, "secret")
	before, after := 10, 8
	rec, err := c.SubmitAccessEvent(context.Background(), AccessEvent{
		ToolboxID:    "tb-1",
		TechnicianID: "t-1",
		ActionType:   "close",
		ItemsBefore:  &before,
		ItemsAfter:   &after,
	})
	if err != nil {
		t.Fatalf("SubmitAccessEvent: %v", err)
	}
	if rec.ID != "log-1" || rec.ItemsMissing != 2 {
		t.Fatalf("unexpected record: %+v", rec)
	}
}

func TestUploadImageMultipart(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "box.jpg")
	if err := os.WriteFile(path, []byte("jpegdata"), 0o644); err != nil {
		t.Fatal(err)
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Errorf("parse multipart: %v", err)
		}
		if got := r.FormValue("subfolder"); got != "toolboxes" {
			t.Errorf("subfolder = %q", got)
		}
		if got := r.FormValue("toolbox_id"); got != "tb-1" {
			t.Errorf("toolbox_id = %q", got)
		}
		f, hdr, err := r.FormFile("file")
		if err != nil {
			t.Errorf("form file: %v", err)
		} else {
			f.Close()
			if hdr.Filename != "box.jpg" {
				t.Errorf("filename = %q", hdr.Filename)
			}
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"id":"img-1","toolbox_id":"tb-1","image_url":"/uploads/toolboxes/abc.jpg"}`))
	}))
	defer srv.Close()

	c := New(srv.URL, "secret")
	im, err := c.UploadImage(context.Background(), path, "toolboxes", "tb-1")
	if err != nil {
		t.Fatalf("UploadImage: %v", err)
	}
	if im.ImageURL != "/uploads/toolboxes/abc.jpg" {
		t.Fatalf("unexpected image: %+v", im)
	}
}

func TestNoImplicitRetry(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c := New(srv.URL, "secret")
	if _, err := c.TechnicianByNFC(context.Background(), "x"); err == nil {
		t.Fatal("expected error")
	}
	if calls != 1 {
		t.Fatalf("calls = %d, want 1", calls)
	}
}

func TestRetry(t *testing.T) {
	var calls int
	err := Retry(context.Background(), 3, time.Millisecond, func() error {
		calls++
		if calls < 3 {
			return errors.New("transient")
		}
		return nil
	})
	if err != nil {
		t.Fatalf("Retry: %v", err)
	}
	if calls != 3 {
		t.Fatalf("calls = %d, want 3", calls)
	}
}

func TestRetryExhausted(t *testing.T) {
	var calls int
	sentinel := errors.New("still down")
	err := Retry(context.Background(), 2, time.Millisecond, func() error {
		calls++
		return sentinel
	})
	if !errors.Is(err, sentinel) {
		t.Fatalf("err = %v, want %v", err, sentinel)
	}
	if calls != 2 {
		t.Fatalf("calls = %d, want 2", calls)
	}
}
