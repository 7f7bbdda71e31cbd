package client

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/yigit/unirecords/internal/app/models"
	"github.com/yigit/unirecords/internal/app/models/dto"
	"github.com/yigit/unirecords/internal/pkg/apperrors"
)

type memTokens struct {
	token   string
	cleared int
}

func (m *memTokens) Token() string { return m.token }
func (m *memTokens) ClearAuth() error {
	m.token = ""
	m.cleared++
	return nil
}

func newTestClient(t *testing.T, h http.HandlerFunc, tokens TokenStore, onUnauthorized func()) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return New(Config{BaseURL: srv.URL + "/api/", OnUnauthorized: onUnauthorized}, tokens)
}

func TestRequestHeaders(t *testing.T) {
	var got *http.Request
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		got = r.Clone(context.Background())
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"success":true,"data":[{"id":1,"student_id":"66100001"}],"pagination":{"total":1,"page":1,"limit":1000,"totalPages":1}}`)
	}, &memTokens{token: "tok"}, nil)

	students, page, err := c.Students.List(context.Background(), dto.ListParams{Limit: DefaultListLimit})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(students) != 1 || students[0].ID != "1" || students[0].Status != models.StatusActive {
		t.Fatalf("unexpected students %+v", students)
	}
	if page.Total != 1 {
		t.Fatalf("unexpected pagination %+v", page)
	}
	if got.URL.Path != "/api/students" || got.URL.Query().Get("limit") != "1000" {
		t.Fatalf("unexpected url %s", got.URL)
	}
	if got.Header.Get("Authorization") != "Bearer tok" {
		t.Fatalf("missing bearer header: %q", got.Header.Get("Authorization"))
	}
	if got.Header.Get("Content-Type") != "application/json" {
		t.Fatalf("missing content type: %q", got.Header.Get("Content-Type"))
	}
	if got.Header.Get(RequestIDHeader) == "" {
		t.Fatal("missing request id")
	}
}

func TestNoAuthorizationWithoutToken(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "" {
			t.Errorf("unexpected Authorization header %q", r.Header.Get("Authorization"))
		}
		io.WriteString(w, `{"success":true,"data":{"token":"t","user":{"id":1,"username":"admin","role":"admin"}}}`)
	}, nil, nil)

	resp, err := c.Auth.Login(context.Background(), "admin", "pw")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if !resp.Success || resp.Data.Token != "t" || string(resp.Data.User.ID) != "1" {
		t.Fatalf("unexpected login response %+v", resp)
	}
}

func TestErrorMessageResolution(t *testing.T) {
	cases := []struct {
		name   string
		status int
		body   string
		want   string
	}{
		{"message", 409, `{"success":false,"message":"รหัสนักศึกษาซ้ำ"}`, "รหัสนักศึกษาซ้ำ"},
		{"errors array", 400, `{"success":false,"errors":[{"msg":"ต้องระบุชื่อ"}]}`, "ต้องระบุชื่อ"},
		{"not json", 502, `<html>bad gateway</html>`, apperrors.DefaultMessage},
		{"empty", 500, ``, apperrors.DefaultMessage},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				io.WriteString(w, tc.body)
			}, &memTokens{token: "tok"}, nil)

			_, err := c.Students.Create(context.Background(), models.Student{StudentID: "66100001"})
			var apiErr *apperrors.APIError
			if !errors.As(err, &apiErr) {
				t.Fatalf("expected APIError, got %v", err)
			}
			if apiErr.Status != tc.status || apiErr.Message != tc.want {
				t.Fatalf("got %d %q, want %d %q", apiErr.Status, apiErr.Message, tc.status, tc.want)
			}
		})
	}
}

func TestUnauthorizedClearsSession(t *testing.T) {
	tokens := &memTokens{token: "stale"}
	hooked := 0
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		io.WriteString(w, `{"success":false,"message":"Token หมดอายุ"}`)
	}, tokens, func() { hooked++ })

	_, _, err := c.Projects.List(context.Background(), dto.ListParams{})
	if !IsUnauthorized(err) {
		t.Fatalf("expected unauthorized error, got %v", err)
	}
	if tokens.cleared != 1 || tokens.token != "" {
		t.Fatalf("session not cleared: %+v", tokens)
	}
	if hooked != 1 {
		t.Fatalf("unauthorized hook called %d times", hooked)
	}
}

func TestUnauthorizedLoginKeepsSession(t *testing.T) {
	tokens := &memTokens{token: "keep"}
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		io.WriteString(w, `{"success":false,"message":"ชื่อผู้ใช้หรือรหัสผ่านไม่ถูกต้อง"}`)
	}, tokens, func() { t.Error("hook must not run for login") })

	_, err := c.Auth.Login(context.Background(), "x", "y")
	if err == nil || err.Error() != "ชื่อผู้ใช้หรือรหัสผ่านไม่ถูกต้อง" {
		t.Fatalf("unexpected error %v", err)
	}
	if tokens.cleared != 0 {
		t.Fatal("login failure must not clear the session")
	}
}

func TestBatchEndpointsSendNumbers(t *testing.T) {
	var body map[string]interface{}
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut || r.URL.Path != "/api/students/status/batch" {
			t.Errorf("unexpected %s %s", r.Method, r.URL.Path)
		}
		_ = json.NewDecoder(r.Body).Decode(&body)
		io.WriteString(w, `{"success":true,"data":{"affectedRows":2}}`)
	}, &memTokens{token: "tok"}, nil)

	n, err := c.Students.BatchUpdateStatus(context.Background(), []string{"3", "12"}, models.StatusSuspended)
	if err != nil {
		t.Fatalf("BatchUpdateStatus: %v", err)
	}
	if n != 2 {
		t.Fatalf("affected = %d", n)
	}
	ids, ok := body["studentIds"].([]interface{})
	if !ok || len(ids) != 2 || ids[0] != float64(3) {
		t.Fatalf("ids not sent as numbers: %#v", body["studentIds"])
	}
	if body["status"] != "Suspended" {
		t.Fatalf("status = %v", body["status"])
	}

	if _, err := c.Students.Graduate(context.Background(), []string{"abc"}); !errors.Is(err, apperrors.ErrBadRequest) {
		t.Fatalf("expected bad request for non-numeric id, got %v", err)
	}
}

func TestImportMultipart(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if ct := r.Header.Get("Content-Type"); !strings.HasPrefix(ct, "multipart/form-data") {
			t.Errorf("unexpected content type %q", ct)
		}
		f, hdr, err := r.FormFile("file")
		if err != nil {
			t.Errorf("FormFile: %v", err)
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		defer f.Close()
		data, _ := io.ReadAll(f)
		if hdr.Filename != "students.csv" || string(data) != "a,b\n" {
			t.Errorf("unexpected upload %s %q", hdr.Filename, data)
		}
		io.WriteString(w, `{"success":true,"data":{"total":1,"imported":1,"skipped":0,"validationErrors":[],"skippedDetails":[]}}`)
	}, &memTokens{token: "tok"}, nil)

	res, err := c.Import.Students(context.Background(), "/tmp/students.csv", strings.NewReader("a,b\n"))
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if res.Imported != 1 || res.Total != 1 {
		t.Fatalf("unexpected result %+v", res)
	}
}

func TestImportFallbackMessage(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}, &memTokens{token: "tok"}, nil)

	_, err := c.Import.Students(context.Background(), "s.csv", strings.NewReader("x"))
	if err == nil || err.Error() != ImportFallbackMessage {
		t.Fatalf("expected import fallback, got %v", err)
	}
}

func TestGetMissingID(t *testing.T) {
	c := New(Config{BaseURL: "http://127.0.0.1:1/api"}, nil)
	if _, err := c.Alumni.Get(context.Background(), " "); !errors.Is(err, apperrors.ErrBadRequest) {
		t.Fatalf("expected bad request, got %v", err)
	}
}

func TestCommentPayload(t *testing.T) {
	var body dto.CommentRequest
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/projects/5/comments" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		_ = json.NewDecoder(r.Body).Decode(&body)
		w.WriteHeader(http.StatusCreated)
		io.WriteString(w, `{"success":true,"data":{"id":44}}`)
	}, &memTokens{token: "tok"}, nil)

	id, err := c.Projects.AddComment(context.Background(), "5", "อ.สมศักดิ์", "teacher", "ดีมาก")
	if err != nil {
		t.Fatalf("AddComment: %v", err)
	}
	if id != "44" || body.AuthorName != "อ.สมศักดิ์" || body.AuthorRole != "teacher" {
		t.Fatalf("unexpected id %q body %+v", id, body)
	}
}

func TestUnauthorizedTokenCodes(t *testing.T) {
	cases := []struct {
		code string
		want error
	}{
		{"AUTH_TOKEN_EXPIRED", apperrors.ErrTokenExpired},
		{"AUTH_TOKEN_INVALID", apperrors.ErrTokenInvalid},
		{"AUTH_REQUIRED", apperrors.ErrUnauthorized},
	}
	for _, tc := range cases {
		t.Run(tc.code, func(t *testing.T) {
			tokens := &memTokens{token: "stale"}
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusUnauthorized)
				io.WriteString(w, `{"success":false,"message":"กรุณาเข้าสู่ระบบ","error":{"code":"`+tc.code+`","message":"x"}}`)
			}, tokens, nil)

			_, _, err := c.Advisors.List(context.Background(), dto.ListParams{})
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
			if !IsUnauthorized(err) {
				t.Fatalf("IsUnauthorized(%v) = false", err)
			}
			if tokens.token != "" {
				t.Fatal("token should be cleared")
			}
		})
	}
}
