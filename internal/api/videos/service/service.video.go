// Package videosvc chứa business logic cho domain videos.
package videosvc

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	basesvc "github.com/Aethezz/bsc-web-interface/internal/api/base/service"
	videodto "github.com/Aethezz/bsc-web-interface/internal/api/videos/dto"
	videomodels "github.com/Aethezz/bsc-web-interface/internal/api/videos/models"
	"github.com/Aethezz/bsc-web-interface/internal/common"
	"github.com/Aethezz/bsc-web-interface/internal/global"
	"github.com/Aethezz/bsc-web-interface/internal/logger"
	"github.com/Aethezz/bsc-web-interface/internal/mlclient"
	"github.com/Aethezz/bsc-web-interface/internal/utility"
)

// analysisCacheTTL là thời gian cache kết quả phân tích theo video ID.
// Phân tích một video mất hàng phút nên kết quả được giữ lại để các request
// trùng lặp trong thời gian ngắn không gọi lại ML service.
const analysisCacheTTL = 10 * time.Minute

// VideoService là service quản lý videos và kết quả phân tích cảm xúc
type VideoService struct {
	*basesvc.BaseServiceMongoImpl[videomodels.Video]
	staticRatingService  *StaticRatingService
	dynamicRatingService *DynamicRatingService
	mlClient             *mlclient.Client
	analysisCache        *utility.Cache
}

// NewVideoService tạo mới VideoService
func NewVideoService(mlClient *mlclient.Client) (*VideoService, error) {
	collection, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.Videos)
	if !exist {
		return nil, fmt.Errorf("failed to get videos collection: %v", common.ErrNotFound)
	}

	staticRatingService, err := NewStaticRatingService()
	if err != nil {
		return nil, err
	}
	dynamicRatingService, err := NewDynamicRatingService()
	if err != nil {
		return nil, err
	}

	return &VideoService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[videomodels.Video](collection),
		staticRatingService:  staticRatingService,
		dynamicRatingService: dynamicRatingService,
		mlClient:             mlClient,
		analysisCache:        utility.NewCache(analysisCacheTTL, time.Minute),
	}, nil
}

// Analyze phân tích cảm xúc một video qua ML service, không lưu DB.
// Kết quả được cache theo video ID để tránh gọi lại ML service khi client
// gửi cùng một link nhiều lần liên tiếp.
func (s *VideoService) Analyze(ctx context.Context, youtubeLink string) (*mlclient.AnalysisResult, error) {
	log := logger.GetAppLogger()

	videoID, err := utility.ExtractVideoID(youtubeLink)
	if err != nil {
		return nil, common.NewError(
			common.ErrCodeValidationInput,
			fmt.Sprintf("Link YouTube không hợp lệ: %s", youtubeLink),
			common.StatusBadRequest,
			err,
		)
	}

	if cached, ok := s.analysisCache.Get(videoID); ok {
		if result, ok := cached.(*mlclient.AnalysisResult); ok {
			log.WithFields(map[string]interface{}{
				"videoId": videoID,
			}).Info("🎬 [VIDEO] Trả về kết quả phân tích từ cache")
			return result, nil
		}
	}

	log.WithFields(map[string]interface{}{
		"videoId": videoID,
		"link":    youtubeLink,
	}).Info("🎬 [VIDEO] Bắt đầu phân tích video qua ML service")

	result, err := s.mlClient.Analyze(ctx, youtubeLink)
	if err != nil {
		return nil, err
	}

	s.analysisCache.Set(videoID, result)
	return result, nil
}

// AnalyzeRealtime phân tích cảm xúc tại một thời điểm phát của video (proxy sang ML service)
func (s *VideoService) AnalyzeRealtime(ctx context.Context, youtubeLink string, currentTime float64) (map[string]interface{}, error) {
	if _, err := utility.ExtractVideoID(youtubeLink); err != nil {
		return nil, common.NewError(
			common.ErrCodeValidationInput,
			fmt.Sprintf("Link YouTube không hợp lệ: %s", youtubeLink),
			common.StatusBadRequest,
			err,
		)
	}

	return s.mlClient.AnalyzeRealtime(ctx, youtubeLink, currentTime)
}

// SaveResult lưu kết quả phân tích, upsert nguyên tử theo youtubeLink.
// Trả về (video, created): created=true khi bản ghi được tạo mới.
//
// Các field kết quả phân tích ghi đè luôn; videoTitle, commentsUsed và
// totalCommentsAnalyzed chỉ ghi đè khi request có giá trị, để lần lưu sau
// không xóa mất metadata đã có.
func (s *VideoService) SaveResult(ctx context.Context, input *videodto.SaveVideoInput) (videomodels.Video, bool, error) {
	var zero videomodels.Video

	if input.YouTubeLink == "" {
		return zero, false, common.NewError(
			common.ErrCodeValidationInput,
			"youtube_link là bắt buộc",
			common.StatusBadRequest,
			nil,
		)
	}
	if input.EmotionData == nil {
		return zero, false, common.NewError(
			common.ErrCodeValidationInput,
			"emotion_data là bắt buộc và phải là một object",
			common.StatusBadRequest,
			nil,
		)
	}

	update, candidateID := buildSaveUpdate(input)
	filter := bson.M{"youtubeLink": input.YouTubeLink}

	video, err := s.Upsert(ctx, filter, update)
	if err != nil {
		return zero, false, err
	}

	// _id ứng viên chỉ được ghi khi insert ($setOnInsert) nên so sánh với _id
	// trả về cho biết chính xác lần gọi này có tạo bản ghi mới hay không
	created := video.ID == candidateID

	logger.GetAppLogger().WithFields(map[string]interface{}{
		"videoId": utility.ObjectID2String(video.ID),
		"link":    input.YouTubeLink,
		"created": created,
	}).Info("🎬 [VIDEO] Đã lưu kết quả phân tích")

	return video, created, nil
}

// buildSaveUpdate dựng update cho upsert kết quả phân tích.
// Các field kết quả (emotionData, dominantEmotion, sentimentLabel) ghi đè luôn;
// mainEmotion, videoTitle, commentsUsed và totalCommentsAnalyzed chỉ ghi đè khi
// có giá trị để lần lưu sau không xóa mất metadata đã có.
// Trả về kèm _id ứng viên được đặt trong $setOnInsert để caller nhận biết insert.
func buildSaveUpdate(input *videodto.SaveVideoInput) (*basesvc.UpdateData, primitive.ObjectID) {
	set := map[string]interface{}{
		"emotionData":     input.EmotionData,
		"dominantEmotion": input.DominantEmotion,
		"sentimentLabel":  input.SentimentLabel,
	}
	if input.MainEmotion != "" {
		set["mainEmotion"] = input.MainEmotion
	}
	if input.VideoTitle != "" {
		set["videoTitle"] = input.VideoTitle
	}
	if len(input.CommentsUsed) > 0 {
		set["commentsUsed"] = input.CommentsUsed
	}
	if input.TotalCommentsAnalyzed > 0 {
		set["totalCommentsAnalyzed"] = input.TotalCommentsAnalyzed
	}

	candidateID := primitive.NewObjectID()
	update := &basesvc.UpdateData{
		Set:         set,
		SetOnInsert: map[string]interface{}{"_id": candidateID},
	}
	return update, candidateID
}

// DeleteVideo xóa một video theo id cùng các rating liên quan
func (s *VideoService) DeleteVideo(ctx context.Context, id primitive.ObjectID) error {
	if err := s.DeleteById(ctx, id); err != nil {
		return err
	}

	// Xóa rating của video, lỗi ở đây không làm fail request xóa video
	ratingFilter := bson.M{"videoId": id}
	if _, err := s.staticRatingService.DeleteMany(ctx, ratingFilter); err != nil {
		logger.GetErrorLogger().WithError(err).WithFields(map[string]interface{}{
			"videoId": utility.ObjectID2String(id),
		}).Error("🎬 [VIDEO] Lỗi xóa static ratings của video")
	}
	if _, err := s.dynamicRatingService.DeleteMany(ctx, ratingFilter); err != nil {
		logger.GetErrorLogger().WithError(err).WithFields(map[string]interface{}{
			"videoId": utility.ObjectID2String(id),
		}).Error("🎬 [VIDEO] Lỗi xóa dynamic ratings của video")
	}

	return nil
}

// CleanupResult là kết quả của thao tác dọn dẹp bản ghi trùng lặp
type CleanupResult struct {
	RemovedCount   int64 `json:"removed_count"`
	RemainingCount int64 `json:"remaining_count"`
}

// CleanupDuplicates dọn các bản ghi video trùng link.
// Với mỗi link, bản ghi đầu tiên theo thứ tự _id được giữ lại, các bản ghi
// sau bị xóa cùng rating của chúng. Unique index + upsert nguyên tử đã chặn
// trùng lặp mới, thao tác này là công cụ sửa chữa dữ liệu cũ.
func (s *VideoService) CleanupDuplicates(ctx context.Context) (*CleanupResult, error) {
	log := logger.GetAppLogger()

	// Sort theo _id để bản ghi cũ nhất của mỗi link được giữ lại
	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})
	videos, err := s.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, err
	}

	duplicateIds := findDuplicateIds(videos)

	var removed int64
	if len(duplicateIds) > 0 {
		removed, err = s.DeleteMany(ctx, bson.M{"_id": bson.M{"$in": duplicateIds}})
		if err != nil {
			return nil, err
		}

		ratingFilter := bson.M{"videoId": bson.M{"$in": duplicateIds}}
		if _, err := s.staticRatingService.DeleteMany(ctx, ratingFilter); err != nil {
			logger.GetErrorLogger().WithError(err).Error("🎬 [VIDEO] Lỗi xóa static ratings của bản ghi trùng")
		}
		if _, err := s.dynamicRatingService.DeleteMany(ctx, ratingFilter); err != nil {
			logger.GetErrorLogger().WithError(err).Error("🎬 [VIDEO] Lỗi xóa dynamic ratings của bản ghi trùng")
		}
	}

	remaining, err := s.CountDocuments(ctx, bson.D{})
	if err != nil {
		return nil, err
	}

	log.WithFields(map[string]interface{}{
		"removed":   removed,
		"remaining": remaining,
	}).Info("🎬 [VIDEO] Dọn dẹp bản ghi trùng lặp hoàn tất")

	return &CleanupResult{
		RemovedCount:   removed,
		RemainingCount: remaining,
	}, nil
}

// findDuplicateIds trả về id của mọi bản ghi trùng link, giữ lại bản ghi
// đầu tiên của mỗi link theo thứ tự của danh sách đầu vào.
func findDuplicateIds(videos []videomodels.Video) []primitive.ObjectID {
	seen := make(map[string]bool, len(videos))
	var duplicateIds []primitive.ObjectID
	for _, video := range videos {
		if seen[video.YouTubeLink] {
			duplicateIds = append(duplicateIds, video.ID)
			continue
		}
		seen[video.YouTubeLink] = true
	}
	return duplicateIds
}

// ClearResult là kết quả của thao tác xóa toàn bộ database
type ClearResult struct {
	VideosDeleted         int64 `json:"videos_deleted"`
	StaticRatingsDeleted  int64 `json:"static_ratings_deleted"`
	DynamicRatingsDeleted int64 `json:"dynamic_ratings_deleted"`
}

// ClearAll xóa toàn bộ document trong videos, static_ratings, dynamic_ratings
func (s *VideoService) ClearAll(ctx context.Context) (*ClearResult, error) {
	videosDeleted, err := s.DeleteMany(ctx, bson.D{})
	if err != nil {
		return nil, err
	}

	staticDeleted, err := s.staticRatingService.DeleteMany(ctx, bson.D{})
	if err != nil {
		return nil, err
	}

	dynamicDeleted, err := s.dynamicRatingService.DeleteMany(ctx, bson.D{})
	if err != nil {
		return nil, err
	}

	logger.GetAppLogger().WithFields(map[string]interface{}{
		"videos":         videosDeleted,
		"staticRatings":  staticDeleted,
		"dynamicRatings": dynamicDeleted,
	}).Warn("🎬 [VIDEO] Đã xóa toàn bộ dữ liệu")

	return &ClearResult{
		VideosDeleted:         videosDeleted,
		StaticRatingsDeleted:  staticDeleted,
		DynamicRatingsDeleted: dynamicDeleted,
	}, nil
}

// Close giải phóng tài nguyên của service (goroutine dọn cache)
func (s *VideoService) Close() {
	s.analysisCache.Stop()
}
