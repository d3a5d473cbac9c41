package videosvc

import (
	"fmt"

	basesvc "github.com/Aethezz/bsc-web-interface/internal/api/base/service"
	videomodels "github.com/Aethezz/bsc-web-interface/internal/api/videos/models"
	"github.com/Aethezz/bsc-web-interface/internal/common"
	"github.com/Aethezz/bsc-web-interface/internal/global"
)

// StaticRatingService là service quản lý static ratings
type StaticRatingService struct {
	*basesvc.BaseServiceMongoImpl[videomodels.StaticRating]
}

// NewStaticRatingService tạo mới StaticRatingService
func NewStaticRatingService() (*StaticRatingService, error) {
	collection, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.StaticRatings)
	if !exist {
		return nil, fmt.Errorf("failed to get static_ratings collection: %v", common.ErrNotFound)
	}

	return &StaticRatingService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[videomodels.StaticRating](collection),
	}, nil
}

// DynamicRatingService là service quản lý dynamic ratings
type DynamicRatingService struct {
	*basesvc.BaseServiceMongoImpl[videomodels.DynamicRating]
}

// NewDynamicRatingService tạo mới DynamicRatingService
func NewDynamicRatingService() (*DynamicRatingService, error) {
	collection, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.DynamicRatings)
	if !exist {
		return nil, fmt.Errorf("failed to get dynamic_ratings collection: %v", common.ErrNotFound)
	}

	return &DynamicRatingService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[videomodels.DynamicRating](collection),
	}, nil
}
