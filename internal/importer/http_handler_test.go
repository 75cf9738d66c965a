package importer

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rpattn/clubsync/internal/auth"

	"github.com/google/uuid"
)

func newTestHandler(t *testing.T) (*Handler, *stubHistoryRepo, uuid.UUID) {
	t.Helper()
	users, orgs, userID, _ := newTestUploader()
	history := &stubHistoryRepo{}
	service := NewService(users, orgs, &stubRecordRepo{}, history)
	return NewHTTPHandler(service, 0), history, userID
}

func multipartBody(t *testing.T, fileName, contents string) (*bytes.Buffer, string) {
	t.Helper()
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", fileName)
	if err != nil {
		t.Fatalf("failed to create form file: %v", err)
	}
	if _, err := part.Write([]byte(contents)); err != nil {
		t.Fatalf("failed to write form file: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("failed to close writer: %v", err)
	}
	return &body, writer.FormDataContentType()
}

func TestUploadCSVSucceeds(t *testing.T) {
	handler, history, userID := newTestHandler(t)

	body, contentType := multipartBody(t, "courts.csv", "Id,Label,TypeName,OrderIndex\n1,Court 1,Hard,1\n2,Court 2,Clay,2\n")
	req := httptest.NewRequest(http.MethodPost, "/upload-csv/courts", body)
	req.Header.Set("Content-Type", contentType)
	req = req.WithContext(auth.ContextWithUserID(req.Context(), userID))

	rec := httptest.NewRecorder()
	handler.Routes().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var response struct {
		Message string `json:"message"`
		Data    struct {
			FileName         string `json:"filename"`
			RecordsProcessed int    `json:"recordsProcessed"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if response.Data.RecordsProcessed != 2 || response.Data.FileName != "courts.csv" {
		t.Fatalf("unexpected response: %+v", response)
	}
	if len(history.entries) != 1 {
		t.Fatalf("expected 1 history row, got %d", len(history.entries))
	}
}

func TestUploadRequiresAuthentication(t *testing.T) {
	handler, _, _ := newTestHandler(t)

	body, contentType := multipartBody(t, "courts.csv", "Id\n1\n")
	req := httptest.NewRequest(http.MethodPost, "/upload-csv/courts", body)
	req.Header.Set("Content-Type", contentType)

	rec := httptest.NewRecorder()
	handler.Routes().ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"success": false`) && !strings.Contains(rec.Body.String(), `"success":false`) {
		t.Fatalf("expected error envelope, got %s", rec.Body.String())
	}
}

func TestUploadRejectsUnknownEntitySlug(t *testing.T) {
	handler, history, userID := newTestHandler(t)

	body, contentType := multipartBody(t, "things.csv", "Id\n1\n")
	req := httptest.NewRequest(http.MethodPost, "/upload-csv/things", body)
	req.Header.Set("Content-Type", contentType)
	req = req.WithContext(auth.ContextWithUserID(req.Context(), userID))

	rec := httptest.NewRecorder()
	handler.Routes().ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if len(history.entries) != 0 {
		t.Fatalf("rejected upload must not be audited")
	}
}

func TestUploadValidationFailureReturns400(t *testing.T) {
	handler, history, userID := newTestHandler(t)

	body, contentType := multipartBody(t, "members.json", `{"Members": [{"OrganizationMemberId": 1}]}`)
	req := httptest.NewRequest(http.MethodPost, "/upload-json/members", body)
	req.Header.Set("Content-Type", contentType)
	req = req.WithContext(auth.ContextWithUserID(req.Context(), userID))

	rec := httptest.NewRecorder()
	handler.Routes().ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "LastName") {
		t.Fatalf("expected error to name missing field, got %s", rec.Body.String())
	}
	if len(history.entries) != 0 {
		t.Fatalf("validation failure must not be audited")
	}
}

func TestUploadRequiresFilePart(t *testing.T) {
	handler, _, userID := newTestHandler(t)

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	_ = writer.WriteField("name", "courts")
	_ = writer.Close()

	req := httptest.NewRequest(http.MethodPost, "/upload-csv/courts", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req = req.WithContext(auth.ContextWithUserID(req.Context(), userID))

	rec := httptest.NewRecorder()
	handler.Routes().ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestImportSummaryEndpoint(t *testing.T) {
	handler, _, userID := newTestHandler(t)

	body, contentType := multipartBody(t, "courts.csv", "Id,Label,TypeName,OrderIndex\n1,Court 1,Hard,1\n")
	upload := httptest.NewRequest(http.MethodPost, "/upload-csv/courts", body)
	upload.Header.Set("Content-Type", contentType)
	upload = upload.WithContext(auth.ContextWithUserID(upload.Context(), userID))
	handler.Routes().ServeHTTP(httptest.NewRecorder(), upload)

	req := httptest.NewRequest(http.MethodGet, "/import-summary", nil)
	req = req.WithContext(auth.ContextWithUserID(req.Context(), userID))
	rec := httptest.NewRecorder()
	handler.Routes().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var response struct {
		Data struct {
			Organization struct {
				Name string `json:"name"`
			} `json:"organization"`
			RecordCounts map[string]int64 `json:"recordCounts"`
			TotalRecords int64            `json:"totalRecords"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if response.Data.Organization.Name != "Riverside Tennis Club" {
		t.Fatalf("organization missing from summary: %+v", response.Data)
	}
	if response.Data.RecordCounts["courts"] != 1 || response.Data.TotalRecords != 1 {
		t.Fatalf("unexpected counts: %+v", response.Data)
	}
}

func TestImportHistoryListing(t *testing.T) {
	handler, history, userID := newTestHandler(t)

	// Seed one successful import through the real pipeline.
	body, contentType := multipartBody(t, "courts.csv", "Id,Label,TypeName,OrderIndex\n1,Court 1,Hard,1\n")
	upload := httptest.NewRequest(http.MethodPost, "/upload-csv/courts", body)
	upload.Header.Set("Content-Type", contentType)
	upload = upload.WithContext(auth.ContextWithUserID(upload.Context(), userID))
	handler.Routes().ServeHTTP(httptest.NewRecorder(), upload)

	if len(history.entries) != 1 {
		t.Fatalf("expected seeded history row, got %d", len(history.entries))
	}

	req := httptest.NewRequest(http.MethodGet, "/import-history", nil)
	req = req.WithContext(auth.ContextWithUserID(req.Context(), userID))
	rec := httptest.NewRecorder()
	handler.Routes().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var response struct {
		Data []struct {
			FileName string `json:"file_name"`
			Status   string `json:"status"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(response.Data) != 1 || response.Data[0].Status != "success" {
		t.Fatalf("unexpected listing: %+v", response.Data)
	}
}
