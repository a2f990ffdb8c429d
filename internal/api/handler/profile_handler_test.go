package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/consultly/marketplace-api/internal/core/domain"
	"github.com/consultly/marketplace-api/internal/core/ports"
)

type stubProfileService struct {
	saveFn func(ctx context.Context, userID, email, role string, fields ports.ProfileFields) error
	getFn  func(ctx context.Context, userID, role string) (*ports.Profile, error)
}

func (s *stubProfileService) Save(ctx context.Context, userID, email, role string, fields ports.ProfileFields) error {
	return s.saveFn(ctx, userID, email, role, fields)
}

func (s *stubProfileService) Get(ctx context.Context, userID, role string) (*ports.Profile, error) {
	return s.getFn(ctx, userID, role)
}

type stubPictureStore struct {
	uploads map[string][]byte
}

func (s *stubPictureStore) Upload(_ context.Context, key string, r io.Reader) error {
	if s.uploads == nil {
		s.uploads = make(map[string][]byte)
	}
	data, _ := io.ReadAll(r)
	s.uploads[key] = data
	return nil
}

func (s *stubPictureStore) Open(_ context.Context, key string) (io.ReadCloser, error) {
	data, ok := s.uploads[key]
	if !ok {
		return nil, domain.ErrObjectNotFound
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (s *stubPictureStore) PublicURL(key string) string {
	return "https://store.example/storage/v1/object/public/consultant-pictures/" + key
}

func TestProfileHandler_Save(t *testing.T) {
	e := newTestEcho()
	var gotFields ports.ProfileFields
	stub := &stubProfileService{
		saveFn: func(ctx context.Context, userID, email, role string, fields ports.ProfileFields) error {
			if userID != "u1" || role != domain.RoleConsultant {
				t.Fatalf("unexpected args: %s %s", userID, role)
			}
			gotFields = fields
			return nil
		},
	}
	handler := NewProfileHandler(stub, &stubPictureStore{})

	body := `{"consultation_type":"IT","hourly_rate":"50","experience_years":"3"}`
	req := httptest.NewRequest(http.MethodPut, "/v1/profile", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("user_id", "u1")
	c.Set("email", "a@x.com")
	c.Set("role", domain.RoleConsultant)

	if err := handler.Save(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	if gotFields.ConsultationType != "IT" || gotFields.HourlyRate != "50" {
		t.Fatalf("fields not forwarded: %+v", gotFields)
	}
}

func TestProfileHandler_Save_NotAuthenticated(t *testing.T) {
	e := newTestEcho()
	handler := NewProfileHandler(&stubProfileService{}, &stubPictureStore{})

	req := httptest.NewRequest(http.MethodPut, "/v1/profile", strings.NewReader(`{}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.Save(c); err != domain.ErrNotAuthenticated {
		t.Fatalf("expected ErrNotAuthenticated, got %v", err)
	}
}

func TestProfileHandler_Get(t *testing.T) {
	e := newTestEcho()
	stub := &stubProfileService{
		getFn: func(ctx context.Context, userID, role string) (*ports.Profile, error) {
			return &ports.Profile{Consultant: &domain.ConsultantProfile{UserID: userID, Email: "a@x.com"}}, nil
		},
	}
	handler := NewProfileHandler(stub, &stubPictureStore{})

	req := httptest.NewRequest(http.MethodGet, "/v1/profile", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("user_id", "u1")
	c.Set("email", "a@x.com")
	c.Set("role", domain.RoleConsultant)

	if err := handler.Get(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestProfileHandler_UploadPicture(t *testing.T) {
	e := newTestEcho()
	store := &stubPictureStore{}
	handler := NewProfileHandler(&stubProfileService{}, store)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, _ := mw.CreateFormFile("picture", "avatar.png")
	_, _ = fw.Write([]byte("png-bytes"))
	_ = mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/v1/profile/picture", &buf)
	req.Header.Set(echo.HeaderContentType, mw.FormDataContentType())
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("user_id", "u1")
	c.Set("email", "a@x.com")

	if err := handler.UploadPicture(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	if len(store.uploads) != 1 {
		t.Fatalf("expected one stored object, got %d", len(store.uploads))
	}
	for key, data := range store.uploads {
		if !strings.HasPrefix(key, "u1-") || !strings.HasSuffix(key, "-avatar.png") {
			t.Fatalf("unexpected key %q", key)
		}
		if string(data) != "png-bytes" {
			t.Fatalf("stored bytes mismatch")
		}
	}

	var resp map[string]string
	_ = json.Unmarshal(rec.Body.Bytes(), &resp)
	if !strings.HasPrefix(resp["url"], "https://store.example/storage/") {
		t.Fatalf("unexpected url: %q", resp["url"])
	}
}

func TestProfileHandler_UploadPicture_MissingFile(t *testing.T) {
	e := newTestEcho()
	handler := NewProfileHandler(&stubProfileService{}, &stubPictureStore{})

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	_ = mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/v1/profile/picture", &buf)
	req.Header.Set(echo.HeaderContentType, mw.FormDataContentType())
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("user_id", "u1")

	err := handler.UploadPicture(c)
	if err == nil {
		t.Fatalf("expected error for missing file")
	}
}
