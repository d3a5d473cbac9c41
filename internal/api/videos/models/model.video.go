package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Video đại diện cho một video YouTube đã được phân tích cảm xúc.
// Mỗi link chỉ có một bản ghi, đảm bảo bởi unique index trên youtubeLink
// kết hợp với upsert nguyên tử.
type Video struct {
	ID primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"` // ID của video

	// ===== DEDUP KEY =====
	YouTubeLink string `json:"youtubeLink" bson:"youtubeLink" validate:"required" index:"unique"` // Link YouTube, khóa dedup

	// ===== KẾT QUẢ PHÂN TÍCH =====
	// Phân phối cảm xúc theo phần trăm. Giá trị được lưu nguyên trạng từ
	// ML service, không ép tổng về 100.
	EmotionData     map[string]float64 `json:"emotionData" bson:"emotionData"`
	MainEmotion     string             `json:"mainEmotion" bson:"mainEmotion" default:"fear"`         // Nhãn chính hiển thị cho người dùng
	DominantEmotion string             `json:"dominantEmotion,omitempty" bson:"dominantEmotion,omitempty"` // Nhãn từ emotion classifier
	SentimentLabel  string             `json:"sentimentLabel,omitempty" bson:"sentimentLabel,omitempty"`   // Nhãn từ sentiment classifier

	// ===== METADATA =====
	VideoTitle            string   `json:"videoTitle" bson:"videoTitle" default:"Unknown Video"` // Tiêu đề video
	CommentsUsed          []string `json:"commentsUsed,omitempty" bson:"commentsUsed,omitempty"` // Các comment đã dùng để phân tích
	TotalCommentsAnalyzed int      `json:"totalCommentsAnalyzed" bson:"totalCommentsAnalyzed"`   // Số comment đã phân tích

	// ===== TIMESTAMPS =====
	CreatedAt int64 `json:"createdAt" bson:"createdAt"` // Thời gian tạo
	UpdatedAt int64 `json:"updatedAt" bson:"updatedAt"` // Thời gian cập nhật
}
