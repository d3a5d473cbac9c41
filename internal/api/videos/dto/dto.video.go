package videodto

// AnalyzeInput dữ liệu đầu vào khi yêu cầu phân tích một video (không lưu DB)
type AnalyzeInput struct {
	YouTubeLink string `json:"youtube_link" validate:"required,youtube_link" maxLength:"2048"`
}

// RealtimeInput dữ liệu đầu vào khi yêu cầu phân tích cảm xúc tại một thời điểm của video
type RealtimeInput struct {
	YouTubeLink string  `json:"youtube_link" validate:"required,youtube_link" maxLength:"2048"`
	CurrentTime float64 `json:"current_time" validate:"gte=0"`
}

// SaveVideoInput dữ liệu đầu vào khi lưu kết quả phân tích (upsert theo link)
type SaveVideoInput struct {
	YouTubeLink           string             `json:"youtube_link" validate:"required"`
	EmotionData           map[string]float64 `json:"emotion_data" validate:"required"`
	MainEmotion           string             `json:"main_emotion,omitempty"`
	DominantEmotion       string             `json:"dominant_emotion,omitempty"`
	SentimentLabel        string             `json:"sentiment_label,omitempty"`
	VideoTitle            string             `json:"video_title,omitempty" validate:"omitempty,no_xss" maxLength:"500"`
	CommentsUsed          []string           `json:"comments_used,omitempty"`
	TotalCommentsAnalyzed int                `json:"total_comments_analyzed,omitempty"`
}

// UpdateVideoInput dữ liệu đầu vào khi cập nhật video theo id
type UpdateVideoInput struct {
	EmotionData           map[string]float64 `json:"emotion_data,omitempty" bson:"emotionData,omitempty"`
	MainEmotion           string             `json:"main_emotion,omitempty" bson:"mainEmotion,omitempty"`
	DominantEmotion       string             `json:"dominant_emotion,omitempty" bson:"dominantEmotion,omitempty"`
	SentimentLabel        string             `json:"sentiment_label,omitempty" bson:"sentimentLabel,omitempty"`
	VideoTitle            string             `json:"video_title,omitempty" bson:"videoTitle,omitempty" validate:"omitempty,no_xss" maxLength:"500"`
	CommentsUsed          []string           `json:"comments_used,omitempty" bson:"commentsUsed,omitempty"`
	TotalCommentsAnalyzed int                `json:"total_comments_analyzed,omitempty" bson:"totalCommentsAnalyzed,omitempty"`
}

// BatchAnalyzeInput dữ liệu đầu vào khi phân tích hàng loạt
type BatchAnalyzeInput struct {
	YouTubeLinks []string `json:"youtube_links" validate:"required,min=1"`
	OutputFormat string   `json:"output_format,omitempty" validate:"omitempty,oneof=json csv"`
}
