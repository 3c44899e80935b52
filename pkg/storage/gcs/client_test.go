package gcs

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/json"
	"encoding/pem"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/angelmondragon/talentconnect-backend/pkg/storage"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return &Client{
		httpClient:    srv.Client(),
		apiBase:       srv.URL,
		publicBase:    "https://cdn.example.com",
		defaultBucket: "bucket",
		tokenSource: &tokenSource{fetch: func(context.Context) (string, time.Time, error) {
			return "token", time.Now().Add(time.Hour), nil
		}},
	}
}

func TestUploadSuccess(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Fatalf("expected POST, got %s", r.Method)
		}
		if r.URL.Path != "/upload/storage/v1/b/bucket/o" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		if r.URL.Query().Get("uploadType") != "media" || r.URL.Query().Get("name") != "talentconnect/cv/a.pdf" {
			t.Fatalf("unexpected query %s", r.URL.RawQuery)
		}
		if r.Header.Get("Authorization") != "Bearer token" {
			t.Fatalf("unexpected auth %s", r.Header.Get("Authorization"))
		}
		if r.Header.Get("Content-Type") != "application/pdf" {
			t.Fatalf("unexpected content type %s", r.Header.Get("Content-Type"))
		}
		body, _ := io.ReadAll(r.Body)
		if string(body) != "%PDF-1.4" {
			t.Fatalf("unexpected body %q", body)
		}
		_ = json.NewEncoder(w).Encode(map[string]string{"name": "talentconnect/cv/a.pdf"})
	})

	obj, err := client.Upload(context.Background(), storage.UploadInput{
		Key:         "talentconnect/cv/a.pdf",
		ContentType: "application/pdf",
		Size:        8,
		Body:        strings.NewReader("%PDF-1.4"),
	})
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}
	if obj.PublicID != "talentconnect/cv/a.pdf" {
		t.Fatalf("unexpected public id %q", obj.PublicID)
	}
	if obj.SecureURL != "https://cdn.example.com/bucket/talentconnect/cv/a.pdf" {
		t.Fatalf("unexpected url %q", obj.SecureURL)
	}
}

func TestUploadFailureStatus(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "denied", http.StatusForbidden)
	})

	_, err := client.Upload(context.Background(), storage.UploadInput{Key: "k", Body: strings.NewReader("x")})
	if err == nil || !strings.Contains(err.Error(), "403") {
		t.Fatalf("expected 403 error, got %v", err)
	}
}

func TestUploadValidatesInput(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("no request expected")
	})
	if _, err := client.Upload(context.Background(), storage.UploadInput{Body: strings.NewReader("x")}); err == nil {
		t.Fatal("expected missing key error")
	}
	if _, err := client.Upload(context.Background(), storage.UploadInput{Key: "k"}); err == nil {
		t.Fatal("expected missing body error")
	}
}

func TestDeleteByURL(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete {
			t.Fatalf("expected DELETE, got %s", r.Method)
		}
		if !strings.HasSuffix(r.URL.EscapedPath(), "/storage/v1/b/bucket/o/talentconnect%2Fcertificates%2Fc.pdf") {
			t.Fatalf("unexpected path %s", r.URL.EscapedPath())
		}
		w.WriteHeader(http.StatusNoContent)
	})

	if err := client.Delete(context.Background(), "https://cdn.example.com/bucket/talentconnect/certificates/c.pdf"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
}

func TestDeleteNotFoundSucceeds(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	if err := client.Delete(context.Background(), "talentconnect/cv/gone.pdf"); err != nil {
		t.Fatalf("Delete not found should succeed: %v", err)
	}
}

func TestDeleteServerError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	if err := client.Delete(context.Background(), "talentconnect/cv/a.pdf"); err == nil {
		t.Fatal("expected delete error")
	}
}

func TestPing(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/storage/v1/b/bucket/o" || r.URL.Query().Get("maxResults") != "1" {
			t.Fatalf("unexpected ping request %s", r.URL.String())
		}
		_, _ = w.Write([]byte(`{"items":[]}`))
	})
	if err := client.Ping(context.Background()); err != nil {
		t.Fatalf("Ping: %v", err)
	}

	var nilClient *Client
	if err := nilClient.Ping(context.Background()); err == nil {
		t.Fatal("expected nil client ping error")
	}
}

func TestServiceAccountTokenSource(t *testing.T) {
	key := mustGenerateKey(t)
	pemKey := pem.EncodeToMemory(&pem.Block{Type: "RSA PRIVATE KEY", Bytes: x509.MarshalPKCS1PrivateKey(key)})

	calls := 0
	tokenSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if err := r.ParseForm(); err != nil {
			t.Fatalf("parse form: %v", err)
		}
		if r.Form.Get("grant_type") != "urn:ietf:params:oauth:grant-type:jwt-bearer" {
			t.Fatalf("unexpected grant type %q", r.Form.Get("grant_type"))
		}
		if strings.Count(r.Form.Get("assertion"), ".") != 2 {
			t.Fatalf("assertion is not a jwt: %q", r.Form.Get("assertion"))
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"access_token": "sa-token", "expires_in": 3600})
	}))
	defer tokenSrv.Close()

	creds, _ := json.Marshal(map[string]string{
		"client_email": "signer@example.com",
		"private_key":  string(pemKey),
		"token_uri":    tokenSrv.URL,
	})

	ts, err := newServiceAccountTokenSource(tokenSrv.Client(), string(creds))
	if err != nil {
		t.Fatalf("token source: %v", err)
	}
	for i := 0; i < 2; i++ {
		token, err := ts.Token(context.Background())
		if err != nil {
			t.Fatalf("Token: %v", err)
		}
		if token != "sa-token" {
			t.Fatalf("unexpected token %q", token)
		}
	}
	if calls != 1 {
		t.Fatalf("expected cached token, endpoint called %d times", calls)
	}
}

func TestServiceAccountTokenSourceRejectsBadCredentials(t *testing.T) {
	if _, err := newServiceAccountTokenSource(http.DefaultClient, "{"); err == nil {
		t.Fatal("expected json error")
	}
	if _, err := newServiceAccountTokenSource(http.DefaultClient, `{"client_email":"a"}`); err == nil {
		t.Fatal("expected missing key error")
	}
}

func mustGenerateKey(t *testing.T) *rsa.PrivateKey {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("generate key: %v", err)
	}
	return key
}
