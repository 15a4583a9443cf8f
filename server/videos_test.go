package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vod-packager/constant"
	"vod-packager/entities"
)

type fakeCatalog struct {
	videos []entities.Video
	err    error
}

func (f *fakeCatalog) CreateVideo(ctx context.Context, video *entities.Video) error {
	f.videos = append(f.videos, *video)
	return nil
}

func (f *fakeCatalog) ListVideos(ctx context.Context) ([]entities.Video, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.videos, nil
}

func newTestRouter(repo *fakeCatalog) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(corsMiddleware())
	r.GET("/videos", listVideos(repo))
	return r
}

func TestListVideos(t *testing.T) {
	repo := &fakeCatalog{videos: []entities.Video{
		{
			ID:           "video_2",
			Name:         "clip.mp4",
			PlaylistURL:  "https://h/media/published/video_2/playlist.m3u8",
			OriginalPath: "uploads/clip.mp4",
			CreatedAt:    time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC),
			SegmentCount: 3,
			Status:       constant.VideoStatusProcessed,
		},
		{
			ID:        "video_1",
			CreatedAt: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
			Status:    constant.VideoStatusProcessed,
		},
	}}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/videos", nil)
	newTestRouter(repo).ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))

	var body struct {
		Success bool             `json:"success"`
		Count   int              `json:"count"`
		Videos  []entities.Video `json:"videos"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.Equal(t, 2, body.Count)
	require.Len(t, body.Videos, 2)
	assert.Equal(t, "video_2", body.Videos[0].ID)
	assert.Equal(t, 3, body.Videos[0].SegmentCount)
}

func TestListVideosError(t *testing.T) {
	repo := &fakeCatalog{err: errors.New("db down")}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/videos", nil)
	newTestRouter(repo).ServeHTTP(w, req)

	require.Equal(t, http.StatusInternalServerError, w.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Failed to list videos", body["error"])
	assert.Equal(t, "db down", body["details"])
}

func TestCORSPreflight(t *testing.T) {
	repo := &fakeCatalog{}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodOptions, "/videos", nil)
	newTestRouter(repo).ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "GET, POST, OPTIONS", w.Header().Get("Access-Control-Allow-Methods"))
}
