package repository

import (
	"context"
	"database/sql"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"vod-packager/entities"
)

// CatalogRepository writes and lists catalog records. Records are
// append-only: there is deliberately no update or delete.
type CatalogRepository interface {
	CreateVideo(ctx context.Context, video *entities.Video) error
	ListVideos(ctx context.Context) ([]entities.Video, error)
}

type repo struct {
	db *gorm.DB
}

func (r *repo) CreateVideo(ctx context.Context, video *entities.Video) error {
	return r.db.WithContext(ctx).Create(video).Error
}

func (r *repo) ListVideos(ctx context.Context) ([]entities.Video, error) {
	var videos []entities.Video
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&videos).Error
	if err != nil {
		return nil, err
	}
	return videos, nil
}

func NewRepo(db *sql.DB) CatalogRepository {
	gormDB, _ := gorm.Open(postgres.New(postgres.Config{
		Conn: db}),
		&gorm.Config{
			Logger: logger.Default.LogMode(logger.Warn),
		},
	)
	return &repo{
		db: gormDB,
	}
}
