// Package videohdl xử lý các request HTTP của domain videos.
package videohdl

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	basehdl "github.com/Aethezz/bsc-web-interface/internal/api/base/handler"
	videodto "github.com/Aethezz/bsc-web-interface/internal/api/videos/dto"
	videomodels "github.com/Aethezz/bsc-web-interface/internal/api/videos/models"
	videosvc "github.com/Aethezz/bsc-web-interface/internal/api/videos/service"
	"github.com/Aethezz/bsc-web-interface/internal/batch"
	"github.com/Aethezz/bsc-web-interface/internal/common"
	"github.com/Aethezz/bsc-web-interface/internal/mlclient"
)

// VideoHandler xử lý các request liên quan đến Video
type VideoHandler struct {
	*basehdl.BaseHandler[videomodels.Video, videodto.UpdateVideoInput]
	VideoService *videosvc.VideoService
	batchWorkers int
}

// NewVideoHandler tạo mới VideoHandler
func NewVideoHandler(mlClient *mlclient.Client, batchWorkers int) (*VideoHandler, error) {
	videoService, err := videosvc.NewVideoService(mlClient)
	if err != nil {
		return nil, fmt.Errorf("failed to create video service: %v", err)
	}

	if batchWorkers < 1 {
		batchWorkers = batch.DefaultWorkers
	}

	hdl := &VideoHandler{
		VideoService: videoService,
		batchWorkers: batchWorkers,
	}
	hdl.BaseHandler = basehdl.NewBaseHandler[videomodels.Video, videodto.UpdateVideoInput](videoService.BaseServiceMongoImpl)
	return hdl, nil
}

// GetVideos trả về danh sách video đã lưu.
// Hỗ trợ phân trang tùy chọn qua ?page và ?limit.
func (h *VideoHandler) GetVideos(c fiber.Ctx) error {
	return h.Find(c)
}

// SaveVideo lưu kết quả phân tích, upsert theo link.
// Trả về 201 khi tạo bản ghi mới, 200 khi cập nhật bản ghi có sẵn.
func (h *VideoHandler) SaveVideo(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		var input videodto.SaveVideoInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		if err := h.ValidateInput(&input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		video, created, err := h.VideoService.SaveResult(c.Context(), &input)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		if created {
			h.HandleResponseWithStatus(c, common.StatusCreated, "created", video)
		} else {
			h.HandleResponseWithStatus(c, common.StatusOK, "updated", video)
		}
		return nil
	})
}

// UpdateVideo cập nhật các field của video theo id
func (h *VideoHandler) UpdateVideo(c fiber.Ctx) error {
	return h.UpdateById(c)
}

// DeleteVideo xóa video theo id cùng các rating liên quan
func (h *VideoHandler) DeleteVideo(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		id, err := h.ParseObjectIDParam(c, "id")
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		if err := h.VideoService.DeleteVideo(c.Context(), id); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		h.HandleResponseWithStatus(c, common.StatusOK, "Video deleted successfully", nil)
		return nil
	})
}

// Analyze phân tích cảm xúc một video qua ML service, không lưu DB
func (h *VideoHandler) Analyze(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		var input videodto.AnalyzeInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		if err := h.ValidateInput(&input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		result, err := h.VideoService.Analyze(c.Context(), input.YouTubeLink)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		h.HandleResponse(c, result, nil)
		return nil
	})
}

// RealtimeEmotions phân tích cảm xúc tại một thời điểm phát của video
func (h *VideoHandler) RealtimeEmotions(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		var input videodto.RealtimeInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		if err := h.ValidateInput(&input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		result, err := h.VideoService.AnalyzeRealtime(c.Context(), input.YouTubeLink, input.CurrentTime)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		h.HandleResponse(c, result, nil)
		return nil
	})
}

// BatchAnalyze phân tích hàng loạt link với worker pool giới hạn.
// output_format=csv trả về file CSV attachment, mặc định trả về JSON.
func (h *VideoHandler) BatchAnalyze(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		var input videodto.BatchAnalyzeInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		if err := h.ValidateInput(&input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		results := batch.Run(c.Context(), input.YouTubeLinks, h.batchWorkers, h.VideoService.Analyze)

		if input.OutputFormat == "csv" {
			data, err := batch.RenderCSV(results)
			if err != nil {
				h.HandleResponse(c, nil, err)
				return nil
			}
			c.Set("Content-Type", "text/csv; charset=utf-8")
			c.Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", batch.CSVFileName))
			return c.Status(common.StatusOK).Send(data)
		}

		h.HandleResponse(c, results, nil)
		return nil
	})
}

// CleanupDuplicates dọn các bản ghi video trùng link (công cụ quản trị)
func (h *VideoHandler) CleanupDuplicates(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		result, err := h.VideoService.CleanupDuplicates(c.Context())
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		message := fmt.Sprintf("Removed %d duplicate videos, %d videos remaining", result.RemovedCount, result.RemainingCount)
		h.HandleResponseWithStatus(c, common.StatusOK, message, result)
		return nil
	})
}

// ClearDatabase xóa toàn bộ dữ liệu videos và ratings (công cụ quản trị)
func (h *VideoHandler) ClearDatabase(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		result, err := h.VideoService.ClearAll(c.Context())
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		h.HandleResponseWithStatus(c, common.StatusOK, "Database cleared", result)
		return nil
	})
}
