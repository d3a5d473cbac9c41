// Package batch chạy phân tích cảm xúc hàng loạt với worker pool giới hạn
// và render kết quả ra CSV cho client tải về.
package batch

import (
	"context"
	"sync"

	"github.com/Aethezz/bsc-web-interface/internal/logger"
	"github.com/Aethezz/bsc-web-interface/internal/mlclient"
)

// DefaultWorkers là số worker mặc định khi config không chỉ định
const DefaultWorkers = 3

// Result là kết quả phân tích của một link trong batch.
// Link lỗi vẫn có một Result với field Error, không làm fail cả batch.
type Result struct {
	YouTubeLink           string             `json:"youtube_link"`
	VideoTitle            string             `json:"video_title,omitempty"`
	EmotionData           map[string]float64 `json:"emotion_data,omitempty"`
	MainEmotion           string             `json:"main_emotion,omitempty"`
	DominantEmotion       string             `json:"dominant_emotion,omitempty"`
	SentimentLabel        string             `json:"sentiment_label,omitempty"`
	TotalCommentsAnalyzed int                `json:"total_comments_analyzed,omitempty"`
	Error                 string             `json:"error,omitempty"`
}

// AnalyzeFunc phân tích một link, cho phép test pool không cần ML service thật
type AnalyzeFunc func(ctx context.Context, youtubeLink string) (*mlclient.AnalysisResult, error)

// Run phân tích danh sách link với tối đa workers goroutine chạy đồng thời.
// Kết quả trả về giữ nguyên thứ tự link đầu vào, mỗi link lỗi được ghi nhận
// trong field Error của phần tử tương ứng.
func Run(ctx context.Context, links []string, workers int, analyze AnalyzeFunc) []Result {
	log := logger.GetAppLogger()

	if workers < 1 {
		workers = DefaultWorkers
	}
	if workers > len(links) {
		workers = len(links)
	}

	results := make([]Result, len(links))
	jobs := make(chan int)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				results[idx] = analyzeOne(ctx, links[idx], analyze)
			}
		}()
	}

	for idx := range links {
		jobs <- idx
	}
	close(jobs)
	wg.Wait()

	var failed int
	for _, r := range results {
		if r.Error != "" {
			failed++
		}
	}
	log.WithFields(map[string]interface{}{
		"total":   len(links),
		"failed":  failed,
		"workers": workers,
	}).Info("📦 [BATCH] Phân tích hàng loạt hoàn tất")

	return results
}

// analyzeOne phân tích một link và chuyển kết quả hoặc lỗi về Result.
// Recover để một link làm panic không kéo sập cả batch.
func analyzeOne(ctx context.Context, link string, analyze AnalyzeFunc) (result Result) {
	result = Result{YouTubeLink: link}

	defer func() {
		if r := recover(); r != nil {
			logger.GetErrorLogger().WithFields(map[string]interface{}{
				"link":  link,
				"panic": r,
			}).Error("📦 [BATCH] Panic khi phân tích link trong batch")
			result.Error = "internal error while analyzing link"
		}
	}()

	analysis, err := analyze(ctx, link)
	if err != nil {
		result.Error = err.Error()
		return result
	}

	result.VideoTitle = analysis.VideoTitle
	result.EmotionData = analysis.EmotionData
	result.MainEmotion = analysis.MainEmotion
	result.DominantEmotion = analysis.DominantEmotion
	result.SentimentLabel = analysis.SentimentLabel
	result.TotalCommentsAnalyzed = analysis.TotalCommentsAnalyzed
	return result
}
