package entities

import (
	"time"

	"vod-packager/constant"
)

// Video is one catalog record per published artifact. Rows are written
// exactly once after a successful publish and never updated.
type Video struct {
	ID           string               `json:"id" gorm:"primaryKey"`
	Name         string               `json:"name"`
	PlaylistURL  string               `json:"playlistUrl"`
	OriginalPath string               `json:"originalPath"`
	CreatedAt    time.Time            `json:"createdAt"`
	SegmentCount int                  `json:"segments"`
	Status       constant.VideoStatus `json:"status"`
}

func (Video) TableName() string {
	return "videos"
}
