package gateway

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"go.uber.org/zap"

	"groupmate/backend/config"
)

func newTestClient(baseURL, fallbackURL, token string) *Client {
	return NewClient(&config.GatewayConfig{
		BaseURL:         baseURL,
		FallbackBaseURL: fallbackURL,
		Timeout:         20 * time.Second,
	}, StaticToken(token), zap.NewNop())
}

func TestRead_Success(t *testing.T) {
	var gotPath, gotAuth, gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		gotQuery = r.URL.Query().Get("course_id")
		w.Write([]byte(`[{"id":"g-1","name":"第一组"}]`))
	}))
	defer srv.Close()

	c := newTestClient(srv.URL, "", "tok-123")

	var rows []struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	}
	err := c.Read(context.Background(), "groups", map[string]string{"course_id": "c-1"}, &rows)
	if err != nil {
		t.Fatalf("Read 应成功: %v", err)
	}

	if gotPath != "/api/tables/groups" {
		t.Errorf("期望路径 /api/tables/groups，实际=%s", gotPath)
	}
	if gotAuth != "Bearer tok-123" {
		t.Errorf("期望 Bearer 认证头，实际=%s", gotAuth)
	}
	if gotQuery != "c-1" {
		t.Errorf("期望查询参数 course_id=c-1，实际=%s", gotQuery)
	}
	if len(rows) != 1 || rows[0].ID != "g-1" {
		t.Errorf("解码结果不符: %+v", rows)
	}
}

func TestRead_NoToken(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
	}))
	defer srv.Close()

	c := newTestClient(srv.URL, "", "")

	var rows []map[string]interface{}
	err := c.Read(context.Background(), "groups", nil, &rows)
	if !errors.Is(err, ErrNoToken) {
		t.Errorf("期望 ErrNoToken，实际: %v", err)
	}
	if atomic.LoadInt32(&calls) != 0 {
		t.Error("缺少令牌时不应发起任何网络调用")
	}
}

func TestRead_FallbackOn404(t *testing.T) {
	var primaryCalls, fallbackCalls int32

	primary := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&primaryCalls, 1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer primary.Close()

	fallback := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&fallbackCalls, 1)
		w.Write([]byte(`[]`))
	}))
	defer fallback.Close()

	c := newTestClient(primary.URL, fallback.URL, "tok")

	var rows []map[string]interface{}
	if err := c.Read(context.Background(), "courses", nil, &rows); err != nil {
		t.Fatalf("备用地址重试后应成功: %v", err)
	}
	if atomic.LoadInt32(&primaryCalls) != 1 {
		t.Errorf("主地址期望调用 1 次，实际=%d", primaryCalls)
	}
	if atomic.LoadInt32(&fallbackCalls) != 1 {
		t.Errorf("备用地址期望调用 1 次，实际=%d", fallbackCalls)
	}
}

func TestRead_NoRetryOn500(t *testing.T) {
	var fallbackCalls int32

	primary := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error":"boom"}`))
	}))
	defer primary.Close()

	fallback := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&fallbackCalls, 1)
	}))
	defer fallback.Close()

	c := newTestClient(primary.URL, fallback.URL, "tok")

	var rows []map[string]interface{}
	err := c.Read(context.Background(), "assessments", nil, &rows)

	var remoteErr *RemoteError
	if !errors.As(err, &remoteErr) {
		t.Fatalf("期望 *RemoteError，实际: %v", err)
	}
	if remoteErr.Status != http.StatusInternalServerError {
		t.Errorf("期望状态码 500，实际=%d", remoteErr.Status)
	}
	if remoteErr.Table != "assessments" {
		t.Errorf("期望表名 assessments，实际=%s", remoteErr.Table)
	}
	if remoteErr.Message != "boom" {
		t.Errorf("期望后端信息 boom，实际=%s", remoteErr.Message)
	}
	if atomic.LoadInt32(&fallbackCalls) != 0 {
		t.Error("非 404 状态码不应触发备用地址重试")
	}
}

func TestInsert_First(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"inserted":[{"id":"m-1"}],"skipped":[]}`))
	}))
	defer srv.Close()

	c := newTestClient(srv.URL, "", "tok")

	result, err := c.Insert(context.Background(), "memberships", []map[string]string{{"id": "m-1"}})
	if err != nil {
		t.Fatalf("Insert 应成功: %v", err)
	}

	var row struct {
		ID string `json:"id"`
	}
	if err := result.First(&row); err != nil {
		t.Fatalf("First 应成功: %v", err)
	}
	if row.ID != "m-1" {
		t.Errorf("期望 id=m-1，实际=%s", row.ID)
	}
}

func TestInsert_NothingInserted(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"inserted":[],"skipped":[{"id":"m-1"}]}`))
	}))
	defer srv.Close()

	c := newTestClient(srv.URL, "", "tok")

	result, err := c.Insert(context.Background(), "memberships", []map[string]string{{"id": "m-1"}})
	if err != nil {
		t.Fatalf("Insert 本身应成功: %v", err)
	}
	if err := result.First(nil); !errors.Is(err, ErrNothingInserted) {
		t.Errorf("期望 ErrNothingInserted，实际: %v", err)
	}
}

func TestUpdate_ShapeProbing(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{"updated数组", `{"updated":[{"id":"e-1","is_active":true}]}`},
		{"data对象", `{"data":{"id":"e-1","is_active":true}}`},
		{"inserted数组", `{"inserted":[{"id":"e-1","is_active":true}]}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.Method != http.MethodPatch {
					t.Errorf("期望 PATCH，实际=%s", r.Method)
				}
				w.Write([]byte(tc.body))
			}))
			defer srv.Close()

			c := newTestClient(srv.URL, "", "tok")

			var row struct {
				ID       string `json:"id"`
				IsActive bool   `json:"is_active"`
			}
			err := c.Update(context.Background(), "enrollments", "id", "e-1",
				map[string]interface{}{"is_active": true}, &row)
			if err != nil {
				t.Fatalf("Update 应成功: %v", err)
			}
			if row.ID != "e-1" || !row.IsActive {
				t.Errorf("解码结果不符: %+v", row)
			}
		})
	}
}

func TestUpdate_EmptyResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"updated":[],"data":null}`))
	}))
	defer srv.Close()

	c := newTestClient(srv.URL, "", "tok")

	err := c.Update(context.Background(), "enrollments", "id", "e-1",
		map[string]interface{}{"is_active": true}, nil)
	if !errors.Is(err, ErrEmptyUpdate) {
		t.Errorf("期望 ErrEmptyUpdate，实际: %v", err)
	}
}
