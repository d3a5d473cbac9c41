package batch

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/Aethezz/bsc-web-interface/internal/common"
)

// CSVFileName là tên file attachment trả về cho client
const CSVFileName = "batch_analysis_results.csv"

// csvColumns là thứ tự cột cố định của file CSV xuất ra
var csvColumns = []string{
	"youtube_link",
	"video_title",
	"main_emotion",
	"dominant_emotion",
	"sentiment_label",
	"total_comments_analyzed",
	"emotion_data",
	"error",
}

// RenderCSV render danh sách kết quả batch thành CSV.
// Header lấy theo field của kết quả đầu tiên, batch rỗng cho ra CSV rỗng.
// emotion_data được encode JSON trong một cột.
func RenderCSV(results []Result) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	if len(results) == 0 {
		writer.Flush()
		return buf.Bytes(), writer.Error()
	}

	if err := writer.Write(csvColumns); err != nil {
		return nil, csvError(err)
	}

	for _, result := range results {
		record, err := resultToRecord(result)
		if err != nil {
			return nil, csvError(err)
		}
		if err := writer.Write(record); err != nil {
			return nil, csvError(err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, csvError(err)
	}

	return buf.Bytes(), nil
}

// resultToRecord chuyển một Result thành một dòng CSV theo thứ tự csvColumns
func resultToRecord(result Result) ([]string, error) {
	emotionData := ""
	if len(result.EmotionData) > 0 {
		encoded, err := json.Marshal(result.EmotionData)
		if err != nil {
			return nil, err
		}
		emotionData = string(encoded)
	}

	return []string{
		result.YouTubeLink,
		result.VideoTitle,
		result.MainEmotion,
		result.DominantEmotion,
		result.SentimentLabel,
		strconv.Itoa(result.TotalCommentsAnalyzed),
		emotionData,
		result.Error,
	}, nil
}

// csvError bọc lỗi serialize CSV thành lỗi 500 riêng biệt
func csvError(err error) error {
	return common.NewError(
		common.ErrCodeInternalServer,
		fmt.Sprintf("Không thể tạo file CSV kết quả batch: %v", err),
		common.StatusInternalServerError,
		err,
	)
}
