package mlclient

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Aethezz/bsc-web-interface/internal/common"
)

// newTestClient tạo client trỏ vào test server với thời gian retry ngắn
func newTestClient(serverURL string) *Client {
	c := NewClient(serverURL)
	c.retryWait = 5 * time.Millisecond
	return c
}

// TestAnalyze kiểm tra hành vi gọi và retry của client
func TestAnalyze(t *testing.T) {
	t.Run("Thành công ngay lần đầu", func(t *testing.T) {
		var requestBody map[string]interface{}
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, "/analyze", r.URL.Path)
			require.NoError(t, json.NewDecoder(r.Body).Decode(&requestBody))
			_ = json.NewEncoder(w).Encode(map[string]interface{}{
				"detailed_results": map[string]interface{}{
					"sentiment_analysis": map[string]interface{}{
						"emotions":         map[string]interface{}{"happy": 90.0},
						"dominant_emotion": "happy",
						"sentiment_label":  "positive",
					},
				},
			})
		}))
		defer server.Close()

		client := newTestClient(server.URL)
		result, err := client.Analyze(context.Background(), "https://youtu.be/dQw4w9WgXcQ")
		require.NoError(t, err, "✅ Gọi thành công không được trả về lỗi")
		assert.Equal(t, "positive", result.MainEmotion)
		assert.Equal(t, "https://youtu.be/dQw4w9WgXcQ", requestBody["youtube_url"])
		assert.Equal(t, "sentiment", requestBody["method"])
	})

	t.Run("Retry khi gặp 503 rồi thành công", func(t *testing.T) {
		var calls int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if atomic.AddInt32(&calls, 1) <= 2 {
				w.WriteHeader(http.StatusServiceUnavailable)
				return
			}
			_ = json.NewEncoder(w).Encode(map[string]interface{}{
				"emotions":         map[string]interface{}{"sad": 70.0},
				"dominant_emotion": "sad",
			})
		}))
		defer server.Close()

		client := newTestClient(server.URL)
		result, err := client.Analyze(context.Background(), "https://youtu.be/dQw4w9WgXcQ")
		require.NoError(t, err)
		assert.Equal(t, int32(3), atomic.LoadInt32(&calls), "Phải retry đúng 2 lần trước khi thành công")
		assert.Equal(t, "sad", result.MainEmotion)
	})

	t.Run("Retry khi gặp 429", func(t *testing.T) {
		var calls int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if atomic.AddInt32(&calls, 1) == 1 {
				w.WriteHeader(http.StatusTooManyRequests)
				return
			}
			_ = json.NewEncoder(w).Encode(map[string]interface{}{
				"emotions": map[string]interface{}{"neutral": 100.0},
			})
		}))
		defer server.Close()

		client := newTestClient(server.URL)
		_, err := client.Analyze(context.Background(), "https://youtu.be/dQw4w9WgXcQ")
		require.NoError(t, err)
		assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
	})

	t.Run("Lỗi 500 không retry và forward status", func(t *testing.T) {
		var calls int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			atomic.AddInt32(&calls, 1)
			w.WriteHeader(http.StatusInternalServerError)
			_ = json.NewEncoder(w).Encode(map[string]interface{}{"error": "model crashed"})
		}))
		defer server.Close()

		client := newTestClient(server.URL)
		_, err := client.Analyze(context.Background(), "https://youtu.be/dQw4w9WgXcQ")
		require.Error(t, err, "❌ Lỗi 500 từ ML service phải trả về lỗi")
		assert.Equal(t, int32(1), atomic.LoadInt32(&calls), "Lỗi 500 không được retry")

		var customErr *common.Error
		require.True(t, errors.As(err, &customErr))
		assert.Equal(t, http.StatusInternalServerError, customErr.StatusCode, "Status từ ML service phải được forward")
		assert.Contains(t, customErr.Message, "model crashed")
	})

	t.Run("Lỗi mạng retry hết số lần rồi trả về 503", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		server.Close() // đóng ngay để mọi request đều lỗi connection refused

		client := newTestClient(server.URL)
		_, err := client.Analyze(context.Background(), "https://youtu.be/dQw4w9WgXcQ")
		require.Error(t, err)

		var customErr *common.Error
		require.True(t, errors.As(err, &customErr))
		assert.Equal(t, http.StatusServiceUnavailable, customErr.StatusCode, "Lỗi mạng phải ánh xạ về 503")
	})

	t.Run("Body không phải JSON thì không retry", func(t *testing.T) {
		var calls int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			atomic.AddInt32(&calls, 1)
			_, _ = w.Write([]byte("not json at all"))
		}))
		defer server.Close()

		client := newTestClient(server.URL)
		_, err := client.Analyze(context.Background(), "https://youtu.be/dQw4w9WgXcQ")
		require.Error(t, err)
		assert.Equal(t, int32(1), atomic.LoadInt32(&calls), "Body hỏng không được retry")
	})

	t.Run("Context bị hủy trong lúc chờ retry", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		}))
		defer server.Close()

		client := newTestClient(server.URL)
		client.retryWait = 5 * time.Second

		ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
		defer cancel()

		start := time.Now()
		_, err := client.Analyze(ctx, "https://youtu.be/dQw4w9WgXcQ")
		require.Error(t, err)
		assert.Less(t, time.Since(start), 2*time.Second, "Hủy context phải dừng chờ retry ngay")
	})
}

// TestAnalyzeRealtime kiểm tra proxy endpoint phân tích theo thời điểm
func TestAnalyzeRealtime(t *testing.T) {
	var requestBody map[string]interface{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/analyze-realtime", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&requestBody))
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"emotions": map[string]interface{}{"happy": 55.0},
			"success":  true,
		})
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	result, err := client.AnalyzeRealtime(context.Background(), "https://youtu.be/dQw4w9WgXcQ", 12.5)
	require.NoError(t, err)
	assert.Equal(t, 12.5, requestBody["current_time"], "current_time phải được gửi sang ML service")
	assert.Equal(t, true, result["success"], "Response phải được trả về nguyên trạng")
}
