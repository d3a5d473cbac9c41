package mlclient

import "strings"

// AnalysisResult là kết quả phân tích đã được chuẩn hóa từ response của ML service
type AnalysisResult struct {
	VideoTitle            string             `json:"video_title"`
	EmotionData           map[string]float64 `json:"emotion_data"`
	MainEmotion           string             `json:"main_emotion"`
	DominantEmotion       string             `json:"dominant_emotion"`
	SentimentLabel        string             `json:"sentiment_label"`
	CommentsUsed          []string           `json:"comments_used"`
	TotalCommentsAnalyzed int                `json:"total_comments_analyzed"`
}

// FallbackEmotions trả về phân phối cảm xúc mặc định khi ML service
// không trả về dữ liệu cảm xúc nào. Giá trị khớp với phân phối fallback
// của chính ML service.
func FallbackEmotions() map[string]float64 {
	return map[string]float64{
		"anger":    5,
		"disgust":  5,
		"fear":     10,
		"happy":    40,
		"sad":      15,
		"surprise": 10,
		"neutral":  15,
	}
}

// Normalize chuẩn hóa response không đồng nhất của ML service về AnalysisResult.
// ML service trả về hai biến thể:
//   - dạng lồng: detailed_results.sentiment_analysis chứa emotions,
//     dominant_emotion, sentiment_label, video_title, comments_used
//   - dạng phẳng: các field trên nằm trực tiếp ở top-level
//
// Dạng lồng được ưu tiên. Khi không có dữ liệu cảm xúc nào, dùng phân phối
// fallback với nhãn "neutral". Hàm không bao giờ panic với bất kỳ input nào.
func Normalize(raw map[string]interface{}) *AnalysisResult {
	result := &AnalysisResult{
		VideoTitle:      "",
		MainEmotion:     "neutral",
		DominantEmotion: "neutral",
		SentimentLabel:  "neutral",
	}

	source := extractSentimentSource(raw)
	if source == nil {
		// Không có dữ liệu nào, dùng fallback toàn bộ
		result.EmotionData = FallbackEmotions()
		return result
	}

	emotions := toFloatMap(source["emotions"])
	if len(emotions) == 0 {
		emotions = FallbackEmotions()
	}
	result.EmotionData = emotions

	result.DominantEmotion = toStringOr(source["dominant_emotion"], "neutral")
	result.SentimentLabel = toStringOr(source["sentiment_label"], "neutral")
	result.VideoTitle = toStringOr(source["video_title"], "")
	result.CommentsUsed = toStringSlice(source["comments_used"])
	result.TotalCommentsAnalyzed = toInt(source["total_comments_analyzed"])

	// Nhãn sentiment thắng nhãn emotion khi có giá trị thực
	result.MainEmotion = pickMainEmotion(result.SentimentLabel, result.DominantEmotion)

	return result
}

// pickMainEmotion chọn nhãn chính: sentiment_label nếu không rỗng và khác
// "unknown", ngược lại dominant_emotion, cuối cùng "neutral".
func pickMainEmotion(sentimentLabel, dominantEmotion string) string {
	label := strings.TrimSpace(sentimentLabel)
	if label != "" && !strings.EqualFold(label, "unknown") {
		return label
	}
	if strings.TrimSpace(dominantEmotion) != "" {
		return dominantEmotion
	}
	return "neutral"
}

// extractSentimentSource tìm map chứa dữ liệu sentiment trong response.
// Ưu tiên detailed_results.sentiment_analysis, fallback về top-level khi
// top-level có field emotions hoặc dominant_emotion.
func extractSentimentSource(raw map[string]interface{}) map[string]interface{} {
	if raw == nil {
		return nil
	}

	if detailed, ok := raw["detailed_results"].(map[string]interface{}); ok {
		if sa, ok := detailed["sentiment_analysis"].(map[string]interface{}); ok {
			return sa
		}
	}

	if _, hasEmotions := raw["emotions"]; hasEmotions {
		return raw
	}
	if _, hasDominant := raw["dominant_emotion"]; hasDominant {
		return raw
	}

	return nil
}

// toFloatMap chuyển một giá trị JSON bất kỳ thành map[string]float64,
// bỏ qua các giá trị không phải số.
func toFloatMap(v interface{}) map[string]float64 {
	m, ok := v.(map[string]interface{})
	if !ok || len(m) == 0 {
		return nil
	}
	out := make(map[string]float64, len(m))
	for k, val := range m {
		switch n := val.(type) {
		case float64:
			out[k] = n
		case int:
			out[k] = float64(n)
		case int64:
			out[k] = float64(n)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// toStringOr ép một giá trị JSON về string, trả về def khi không phải string hoặc rỗng
func toStringOr(v interface{}, def string) string {
	if s, ok := v.(string); ok && strings.TrimSpace(s) != "" {
		return s
	}
	return def
}

// toStringSlice ép một giá trị JSON về []string, bỏ qua phần tử không phải string
func toStringSlice(v interface{}) []string {
	arr, ok := v.([]interface{})
	if !ok {
		return nil
	}
	out := make([]string, 0, len(arr))
	for _, item := range arr {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// toInt ép một giá trị JSON về int (JSON number decode thành float64)
func toInt(v interface{}) int {
	switch n := v.(type) {
	case float64:
		return int(n)
	case int:
		return n
	case int64:
		return int(n)
	}
	return 0
}
