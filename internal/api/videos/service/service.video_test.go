package videosvc

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	videodto "github.com/Aethezz/bsc-web-interface/internal/api/videos/dto"
	videomodels "github.com/Aethezz/bsc-web-interface/internal/api/videos/models"
	"github.com/Aethezz/bsc-web-interface/internal/common"
)

// TestSaveResultValidation kiểm tra validate đầu vào khi lưu kết quả phân tích.
// Input không hợp lệ phải bị chặn trước khi chạm tới database.
func TestSaveResultValidation(t *testing.T) {
	svc := &VideoService{}

	t.Run("Thiếu youtube_link", func(t *testing.T) {
		_, _, err := svc.SaveResult(context.Background(), &videodto.SaveVideoInput{
			EmotionData: map[string]float64{"happy": 100},
		})
		require.Error(t, err, "❌ Thiếu youtube_link phải trả về lỗi")

		var customErr *common.Error
		require.True(t, errors.As(err, &customErr))
		assert.Equal(t, common.StatusBadRequest, customErr.StatusCode)
	})

	t.Run("Thiếu emotion_data", func(t *testing.T) {
		_, _, err := svc.SaveResult(context.Background(), &videodto.SaveVideoInput{
			YouTubeLink: "https://youtu.be/dQw4w9WgXcQ",
		})
		require.Error(t, err, "❌ Thiếu emotion_data phải trả về lỗi")

		var customErr *common.Error
		require.True(t, errors.As(err, &customErr))
		assert.Equal(t, common.StatusBadRequest, customErr.StatusCode)
	})
}

// TestBuildSaveUpdate kiểm tra cách dựng update cho upsert kết quả phân tích.
// Lần lưu lại thiếu metadata không được xóa mất giá trị đã lưu trước đó.
func TestBuildSaveUpdate(t *testing.T) {
	t.Run("Field metadata rỗng không bị ghi đè", func(t *testing.T) {
		update, _ := buildSaveUpdate(&videodto.SaveVideoInput{
			YouTubeLink: "https://youtu.be/dQw4w9WgXcQ",
			EmotionData: map[string]float64{"happy": 100},
		})

		assert.NotContains(t, update.Set, "videoTitle", "✅ video_title thiếu thì title đã lưu phải được giữ nguyên")
		assert.NotContains(t, update.Set, "mainEmotion")
		assert.NotContains(t, update.Set, "commentsUsed")
		assert.NotContains(t, update.Set, "totalCommentsAnalyzed")
	})

	t.Run("Field kết quả phân tích luôn được ghi đè", func(t *testing.T) {
		update, _ := buildSaveUpdate(&videodto.SaveVideoInput{
			YouTubeLink: "https://youtu.be/dQw4w9WgXcQ",
			EmotionData: map[string]float64{"happy": 100},
		})

		assert.Contains(t, update.Set, "emotionData")
		assert.Contains(t, update.Set, "dominantEmotion")
		assert.Contains(t, update.Set, "sentimentLabel")
	})

	t.Run("Field metadata có giá trị được ghi đè", func(t *testing.T) {
		update, _ := buildSaveUpdate(&videodto.SaveVideoInput{
			YouTubeLink: "https://youtu.be/dQw4w9WgXcQ",
			EmotionData: map[string]float64{"happy": 100},
			VideoTitle:  "Video mới",
			MainEmotion: "happy",
		})

		assert.Equal(t, "Video mới", update.Set["videoTitle"])
		assert.Equal(t, "happy", update.Set["mainEmotion"])
	})

	t.Run("_id ứng viên nằm trong $setOnInsert", func(t *testing.T) {
		update, candidateID := buildSaveUpdate(&videodto.SaveVideoInput{
			YouTubeLink: "https://youtu.be/dQw4w9WgXcQ",
			EmotionData: map[string]float64{"happy": 100},
		})

		require.NotEqual(t, primitive.NilObjectID, candidateID)
		assert.Equal(t, candidateID, update.SetOnInsert["_id"], "✅ _id chỉ được ghi khi insert để nhận biết bản ghi tạo mới")
		assert.NotContains(t, update.Set, "_id")
	})
}

// TestFindDuplicateIds kiểm tra logic chọn bản ghi trùng để xóa
func TestFindDuplicateIds(t *testing.T) {
	newVideo := func(link string) videomodels.Video {
		return videomodels.Video{ID: primitive.NewObjectID(), YouTubeLink: link}
	}

	t.Run("Ba bản ghi cùng link và hai link riêng", func(t *testing.T) {
		dup1 := newVideo("link-a")
		dup2 := newVideo("link-a")
		dup3 := newVideo("link-a")
		other1 := newVideo("link-b")
		other2 := newVideo("link-c")

		videos := []videomodels.Video{dup1, other1, dup2, other2, dup3}
		duplicateIds := findDuplicateIds(videos)

		require.Len(t, duplicateIds, 2, "Phải xóa đúng 2 bản ghi, giữ lại 3")
		assert.Contains(t, duplicateIds, dup2.ID)
		assert.Contains(t, duplicateIds, dup3.ID)
		assert.NotContains(t, duplicateIds, dup1.ID, "✅ Bản ghi đầu tiên của link phải được giữ lại")
	})

	t.Run("Không có bản ghi trùng", func(t *testing.T) {
		videos := []videomodels.Video{newVideo("link-a"), newVideo("link-b")}
		assert.Empty(t, findDuplicateIds(videos))
	})

	t.Run("Danh sách rỗng", func(t *testing.T) {
		assert.Empty(t, findDuplicateIds(nil))
	})
}
