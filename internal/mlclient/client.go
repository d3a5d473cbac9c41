// Package mlclient là client gọi sang ML service phân tích cảm xúc.
// Package này chịu trách nhiệm retry và chuẩn hóa response không đồng nhất
// của ML service về một struct thống nhất cho tầng service phía trên.
package mlclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/Aethezz/bsc-web-interface/internal/common"
	"github.com/Aethezz/bsc-web-interface/internal/logger"
)

const (
	// maxAttempts là số lần gọi tối đa cho một request (1 lần đầu + 5 lần retry)
	maxAttempts = 6
	// retryWait là thời gian chờ cố định giữa các lần retry
	retryWait = 10 * time.Second
	// requestTimeout dài vì ML service phải scrape comment YouTube trước khi phân tích
	requestTimeout = 5 * time.Minute
)

// Client gọi sang ML service qua HTTP
type Client struct {
	baseURL    string
	httpClient *http.Client
	retryWait  time.Duration
}

// NewClient tạo một Client với base URL của ML service
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: requestTimeout,
		},
		retryWait: retryWait,
	}
}

// analyzeRequest là payload gửi sang ML service endpoint /analyze
type analyzeRequest struct {
	YouTubeURL string `json:"youtube_url"`
	Method     string `json:"method"`
}

// realtimeRequest là payload gửi sang ML service endpoint /analyze-realtime
type realtimeRequest struct {
	YouTubeURL  string  `json:"youtube_url"`
	CurrentTime float64 `json:"current_time"`
}

// Analyze gọi ML service phân tích sentiment cho một video và chuẩn hóa kết quả.
// Retry tối đa 6 lần với khoảng chờ cố định, chỉ retry khi gặp lỗi mạng,
// HTTP 429 hoặc HTTP 503. Các lỗi khác trả về ngay.
func (c *Client) Analyze(ctx context.Context, youtubeURL string) (*AnalysisResult, error) {
	payload := analyzeRequest{
		YouTubeURL: youtubeURL,
		Method:     "sentiment",
	}

	raw, err := c.postWithRetry(ctx, "/analyze", payload)
	if err != nil {
		return nil, err
	}

	return Normalize(raw), nil
}

// AnalyzeRealtime gọi ML service phân tích cảm xúc tại một thời điểm của video.
// Response được trả về nguyên trạng cho client phía trên (proxy).
func (c *Client) AnalyzeRealtime(ctx context.Context, youtubeURL string, currentTime float64) (map[string]interface{}, error) {
	payload := realtimeRequest{
		YouTubeURL:  youtubeURL,
		CurrentTime: currentTime,
	}

	return c.postWithRetry(ctx, "/analyze-realtime", payload)
}

// postWithRetry gửi POST JSON và decode response, retry theo chính sách của Client.
func (c *Client) postWithRetry(ctx context.Context, path string, payload interface{}) (map[string]interface{}, error) {
	log := logger.GetAppLogger()
	url := c.baseURL + path

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return nil, common.NewError(
			common.ErrCodeValidationFormat,
			fmt.Sprintf("Không thể marshal payload gửi ML service: %v", err),
			common.StatusInternalServerError,
			err,
		)
	}

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if attempt > 1 {
			log.WithFields(map[string]interface{}{
				"url":     url,
				"attempt": attempt,
				"wait":    c.retryWait.String(),
			}).Warn("🤖 [ML] Retry gọi ML service")

			select {
			case <-ctx.Done():
				return nil, common.NewError(
					common.ErrCodeServiceUnavailable,
					"Request bị hủy trong khi chờ retry ML service",
					common.StatusServiceUnavailable,
					ctx.Err(),
				)
			case <-time.After(c.retryWait):
			}
		}

		result, retryable, err := c.doOnce(ctx, url, jsonData)
		if err == nil {
			return result, nil
		}
		lastErr = err
		if !retryable {
			return nil, err
		}
	}

	log.WithError(lastErr).WithFields(map[string]interface{}{
		"url":      url,
		"attempts": maxAttempts,
	}).Error("🤖 [ML] ML service không khả dụng sau khi retry")

	return nil, common.NewError(
		common.ErrCodeServiceUnavailable,
		fmt.Sprintf("ML service không khả dụng sau %d lần thử: %v", maxAttempts, lastErr),
		common.StatusServiceUnavailable,
		lastErr,
	)
}

// doOnce thực hiện một lần gọi HTTP. Trả về (result, retryable, error).
// retryable=true khi lỗi mạng hoặc HTTP 429/503.
func (c *Client) doOnce(ctx context.Context, url string, jsonData []byte) (map[string]interface{}, bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(jsonData))
	if err != nil {
		return nil, false, common.NewError(
			common.ErrCodeServiceUnavailable,
			fmt.Sprintf("Không thể tạo request tới ML service: %v", err),
			common.StatusInternalServerError,
			err,
		)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		// Lỗi mạng (connection refused, timeout) được retry
		return nil, true, common.NewError(
			common.ErrCodeServiceUnavailable,
			fmt.Sprintf("Không kết nối được ML service: %v", err),
			common.StatusServiceUnavailable,
			err,
		)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, true, common.NewError(
			common.ErrCodeServiceUnavailable,
			fmt.Sprintf("Không đọc được response từ ML service: %v", err),
			common.StatusServiceUnavailable,
			err,
		)
	}

	// 429 và 503 là trạng thái tạm thời, được retry
	if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode == http.StatusServiceUnavailable {
		return nil, true, common.NewError(
			common.ErrCodeServiceUnavailable,
			fmt.Sprintf("ML service trả về status %d: %s", resp.StatusCode, string(bodyBytes)),
			common.StatusServiceUnavailable,
			nil,
		)
	}

	// Non-2xx khác: forward status và message từ ML service, không retry
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		message := extractErrorMessage(bodyBytes)
		return nil, false, common.NewError(
			common.ErrCodeUpstream,
			fmt.Sprintf("ML service trả về lỗi (status %d): %s", resp.StatusCode, message),
			resp.StatusCode,
			nil,
		)
	}

	var result map[string]interface{}
	if err := json.Unmarshal(bodyBytes, &result); err != nil {
		// Body không phải JSON hợp lệ, không retry
		return nil, false, common.NewError(
			common.ErrCodeAnalysisFailed,
			fmt.Sprintf("ML service trả về body không hợp lệ: %v", err),
			common.StatusInternalServerError,
			err,
		)
	}

	return result, false, nil
}

// extractErrorMessage lấy message lỗi từ body JSON của ML service (field "error"),
// fallback về body thô khi không parse được.
func extractErrorMessage(body []byte) string {
	var parsed struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(body, &parsed); err == nil && parsed.Error != "" {
		return parsed.Error
	}
	return string(body)
}
