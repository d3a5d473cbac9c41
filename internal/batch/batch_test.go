package batch

import (
	"context"
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Aethezz/bsc-web-interface/internal/mlclient"
)

// TestRun kiểm tra worker pool phân tích hàng loạt
func TestRun(t *testing.T) {
	t.Run("Giữ nguyên thứ tự kết quả", func(t *testing.T) {
		links := []string{"link-a", "link-b", "link-c", "link-d", "link-e"}
		analyze := func(ctx context.Context, link string) (*mlclient.AnalysisResult, error) {
			return &mlclient.AnalysisResult{VideoTitle: "title-" + link}, nil
		}

		results := Run(context.Background(), links, 3, analyze)
		require.Len(t, results, len(links))
		for i, link := range links {
			assert.Equal(t, link, results[i].YouTubeLink, "✅ Thứ tự kết quả phải khớp thứ tự link đầu vào")
			assert.Equal(t, "title-"+link, results[i].VideoTitle)
		}
	})

	t.Run("Link lỗi không làm fail cả batch", func(t *testing.T) {
		links := []string{"link-ok", "link-timeout"}
		analyze := func(ctx context.Context, link string) (*mlclient.AnalysisResult, error) {
			if link == "link-timeout" {
				return nil, errors.New("request timeout")
			}
			return &mlclient.AnalysisResult{MainEmotion: "happy"}, nil
		}

		results := Run(context.Background(), links, 2, analyze)
		require.Len(t, results, 2)
		assert.Empty(t, results[0].Error, "Link thành công không được có error")
		assert.Equal(t, "happy", results[0].MainEmotion)
		assert.Equal(t, "request timeout", results[1].Error, "❌ Lỗi của link phải được ghi nhận vào field error")
		assert.Empty(t, results[1].MainEmotion)
	})

	t.Run("Panic trong một link được cô lập", func(t *testing.T) {
		links := []string{"link-ok", "link-panic"}
		analyze := func(ctx context.Context, link string) (*mlclient.AnalysisResult, error) {
			if link == "link-panic" {
				panic("something exploded")
			}
			return &mlclient.AnalysisResult{}, nil
		}

		var results []Result
		assert.NotPanics(t, func() {
			results = Run(context.Background(), links, 2, analyze)
		})
		require.Len(t, results, 2)
		assert.Empty(t, results[0].Error)
		assert.NotEmpty(t, results[1].Error, "Panic phải được chuyển thành error của link")
	})

	t.Run("Số goroutine đồng thời không vượt quá workers", func(t *testing.T) {
		const workers = 3
		var current, max int32
		var mu sync.Mutex

		links := make([]string, 20)
		for i := range links {
			links[i] = "link"
		}

		analyze := func(ctx context.Context, link string) (*mlclient.AnalysisResult, error) {
			n := atomic.AddInt32(&current, 1)
			mu.Lock()
			if n > max {
				max = n
			}
			mu.Unlock()
			atomic.AddInt32(&current, -1)
			return &mlclient.AnalysisResult{}, nil
		}

		Run(context.Background(), links, workers, analyze)
		assert.LessOrEqual(t, max, int32(workers), "Pool không được chạy quá số worker cấu hình")
	})

	t.Run("Workers không hợp lệ dùng giá trị mặc định", func(t *testing.T) {
		analyze := func(ctx context.Context, link string) (*mlclient.AnalysisResult, error) {
			return &mlclient.AnalysisResult{}, nil
		}
		results := Run(context.Background(), []string{"a", "b"}, 0, analyze)
		assert.Len(t, results, 2)
	})
}

// TestRenderCSV kiểm tra render kết quả batch ra CSV
func TestRenderCSV(t *testing.T) {
	t.Run("Batch rỗng cho ra CSV rỗng", func(t *testing.T) {
		data, err := RenderCSV(nil)
		require.NoError(t, err)
		assert.Empty(t, data, "Batch rỗng không được có header")
	})

	t.Run("Header và row đầy đủ", func(t *testing.T) {
		results := []Result{
			{
				YouTubeLink:           "https://youtu.be/dQw4w9WgXcQ",
				VideoTitle:            "Video một",
				MainEmotion:           "happy",
				DominantEmotion:       "happy",
				SentimentLabel:        "positive",
				TotalCommentsAnalyzed: 10,
				EmotionData:           map[string]float64{"happy": 90},
			},
			{
				YouTubeLink: "https://youtu.be/aaaaaaaaaaa",
				Error:       "request timeout",
			},
		}

		data, err := RenderCSV(results)
		require.NoError(t, err)

		lines := strings.Split(strings.TrimSpace(string(data)), "\n")
		require.Len(t, lines, 3, "Phải có 1 header và 2 row")
		assert.Equal(t, strings.Join(csvColumns, ","), lines[0])
		assert.Contains(t, lines[1], "Video một")
		assert.Contains(t, lines[1], `""happy"":90`)
		assert.Contains(t, lines[2], "request timeout")
	})
}
