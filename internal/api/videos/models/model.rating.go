package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// StaticRating là đánh giá tĩnh của người dùng cho một video
type StaticRating struct {
	ID           primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	VideoID      primitive.ObjectID `json:"videoId" bson:"videoId" validate:"required" index:"single:1"` // Video được đánh giá
	StaticRating float64            `json:"staticRating" bson:"staticRating" validate:"required"`

	CreatedAt int64 `json:"createdAt" bson:"createdAt"`
	UpdatedAt int64 `json:"updatedAt" bson:"updatedAt"`
}

// DynamicRating là đánh giá theo thời điểm phát của một video
type DynamicRating struct {
	ID                primitive.ObjectID     `json:"id,omitempty" bson:"_id,omitempty"`
	VideoID           primitive.ObjectID     `json:"videoId" bson:"videoId" validate:"required" index:"single:1"` // Video được đánh giá
	DynamicRatingData map[string]interface{} `json:"dynamicRatingData" bson:"dynamicRatingData" validate:"required"`

	CreatedAt int64 `json:"createdAt" bson:"createdAt"`
	UpdatedAt int64 `json:"updatedAt" bson:"updatedAt"`
}
