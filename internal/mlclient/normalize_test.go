package mlclient

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestNormalize kiểm tra chuẩn hóa các biến thể response của ML service
func TestNormalize(t *testing.T) {
	t.Run("Dạng lồng với đầy đủ dữ liệu", func(t *testing.T) {
		raw := map[string]interface{}{
			"detailed_results": map[string]interface{}{
				"sentiment_analysis": map[string]interface{}{
					"emotions": map[string]interface{}{
						"happy": 60.0,
						"sad":   40.0,
					},
					"dominant_emotion":        "happy",
					"sentiment_label":         "positive",
					"video_title":             "Video thử nghiệm",
					"comments_used":           []interface{}{"tuyệt vời", "hay quá"},
					"total_comments_analyzed": 42.0,
				},
			},
		}

		result := Normalize(raw)
		assert.Equal(t, "positive", result.MainEmotion, "✅ sentiment_label phải thắng dominant_emotion")
		assert.Equal(t, "happy", result.DominantEmotion)
		assert.Equal(t, "positive", result.SentimentLabel)
		assert.Equal(t, "Video thử nghiệm", result.VideoTitle)
		assert.Equal(t, 42, result.TotalCommentsAnalyzed)
		assert.Len(t, result.CommentsUsed, 2)
		assert.Equal(t, 60.0, result.EmotionData["happy"])
	})

	t.Run("sentiment_label thắng dominant_emotion", func(t *testing.T) {
		raw := map[string]interface{}{
			"detailed_results": map[string]interface{}{
				"sentiment_analysis": map[string]interface{}{
					"emotions":         map[string]interface{}{"fear": 80.0},
					"dominant_emotion": "fear",
					"sentiment_label":  "sad",
				},
			},
		}

		result := Normalize(raw)
		assert.Equal(t, "sad", result.MainEmotion, "Nhãn sentiment phải được ưu tiên")
	})

	t.Run("sentiment_label unknown thì dùng dominant_emotion", func(t *testing.T) {
		raw := map[string]interface{}{
			"detailed_results": map[string]interface{}{
				"sentiment_analysis": map[string]interface{}{
					"emotions":         map[string]interface{}{"fear": 80.0},
					"dominant_emotion": "fear",
					"sentiment_label":  "unknown",
				},
			},
		}

		result := Normalize(raw)
		assert.Equal(t, "fear", result.MainEmotion, "Nhãn unknown không được dùng làm main emotion")
	})

	t.Run("Dạng lồng nhưng không có emotions thì dùng fallback", func(t *testing.T) {
		raw := map[string]interface{}{
			"detailed_results": map[string]interface{}{
				"sentiment_analysis": map[string]interface{}{
					"dominant_emotion": "neutral",
					"sentiment_label":  "neutral",
				},
			},
		}

		result := Normalize(raw)
		assert.Equal(t, FallbackEmotions(), result.EmotionData, "Phải dùng phân phối fallback")
	})

	t.Run("Dạng phẳng top-level", func(t *testing.T) {
		raw := map[string]interface{}{
			"emotions":         map[string]interface{}{"surprise": 100.0},
			"dominant_emotion": "surprise",
			"sentiment_label":  "surprise",
			"video_title":      "Video phẳng",
		}

		result := Normalize(raw)
		assert.Equal(t, "surprise", result.MainEmotion)
		assert.Equal(t, "Video phẳng", result.VideoTitle)
		assert.Equal(t, 100.0, result.EmotionData["surprise"])
	})

	t.Run("Không có dữ liệu sentiment nào", func(t *testing.T) {
		cases := []struct {
			name string
			raw  map[string]interface{}
		}{
			{"map rỗng", map[string]interface{}{}},
			{"nil", nil},
			{"field không liên quan", map[string]interface{}{"success": true}},
		}

		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				assert.NotPanics(t, func() {
					result := Normalize(tc.raw)
					assert.Equal(t, "neutral", result.MainEmotion, "❌ Thiếu dữ liệu phải fallback về neutral")
					assert.Equal(t, FallbackEmotions(), result.EmotionData)
				})
			})
		}
	})

	t.Run("Kiểu dữ liệu sai không gây panic", func(t *testing.T) {
		raw := map[string]interface{}{
			"detailed_results": map[string]interface{}{
				"sentiment_analysis": map[string]interface{}{
					"emotions":                "không phải map",
					"dominant_emotion":        123,
					"sentiment_label":         nil,
					"comments_used":           "không phải mảng",
					"total_comments_analyzed": "không phải số",
				},
			},
		}

		assert.NotPanics(t, func() {
			result := Normalize(raw)
			assert.Equal(t, FallbackEmotions(), result.EmotionData)
			assert.Equal(t, "neutral", result.MainEmotion)
			assert.Equal(t, 0, result.TotalCommentsAnalyzed)
		})
	})
}
