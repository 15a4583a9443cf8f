package service

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"vod-packager/config"
	"vod-packager/constant"
	"vod-packager/dto"
	"vod-packager/entities"
	"vod-packager/pkg/hlsurl"
	"vod-packager/pkg/metrics"
	"vod-packager/repository"
)

type Service interface {
	Process(ctx context.Context, event dto.StorageEvent) error
}

type service struct {
	repo  repository.CatalogRepository
	store ObjectStore
	codec Codec
	met   *metrics.Metrics
	cfg   *config.Config
}

func NewService(repo repository.CatalogRepository, cfg *config.Config, met *metrics.Metrics) Service {
	return &service{
		repo:  repo,
		store: NewMinioStore(cfg.Storage, cfg.MinIOBucket),
		codec: NewFFmpegCodec(),
		met:   met,
		cfg:   cfg,
	}
}

// TranscodeJob is the ephemeral per-event pipeline state. It lives for the
// duration of one Process call and is never persisted.
type TranscodeJob struct {
	ID              uuid.UUID
	SourcePath      string
	LocalInputPath  string
	LocalOutputDir  string
	SegmentDuration int
	Stage           constant.JobStage
}

func (j *TranscodeJob) advance(ctx context.Context, stage constant.JobStage) {
	j.Stage = stage
	zerolog.Ctx(ctx).Info().Str("job_id", j.ID.String()).Str("stage", stage.String()).Msg("stage transition")
}

// Process drives one storage event through the full pipeline:
// fetch, transcode, rewrite, publish, catalog, cleanup. Stages are strictly
// sequential and any failure aborts the job with no catalog side effect.
func (s *service) Process(ctx context.Context, event dto.StorageEvent) (err error) {
	if reason, ok := admissible(event); !ok {
		zerolog.Ctx(ctx).Info().Str("path", event.Path).Str("reason", reason).Msg("skipping event")
		s.met.EventSkipped()
		return nil
	}

	job := &TranscodeJob{
		ID:              uuid.New(),
		SourcePath:      event.Path,
		SegmentDuration: constant.SegmentDurationSeconds,
	}
	logger := zerolog.Ctx(ctx).With().Str("job_id", job.ID.String()).Str("path", event.Path).Logger()
	ctx = logger.WithContext(ctx)
	logger.Info().Int64("size_bytes", event.SizeBytes).Msg("processing video")
	s.met.JobStarted()

	// One wall-clock budget for the whole job; the transcode inherits it.
	ctx, cancel := context.WithTimeout(ctx, constant.JobTimeout)
	defer cancel()

	tempDir := filepath.Join("temp", job.ID.String())
	inputDir := filepath.Join(tempDir, "input")
	outputDir := filepath.Join(tempDir, "output")
	job.LocalOutputDir = outputDir

	defer func() {
		job.advance(ctx, constant.StageCleaning)
		// Cleanup runs on success and failure alike and must never mask
		// the job's outcome.
		if cerr := os.RemoveAll(tempDir); cerr != nil {
			logger.Warn().Err(cerr).Str("temp_dir", tempDir).Msg("failed to remove job scratch space")
		}
		if err != nil {
			job.Stage = constant.StageFailed
			s.met.JobFailed(stageOf(err).String())
			logger.Error().Err(err).Str("failed_stage", stageOf(err).String()).Msg("job failed")
		} else {
			job.Stage = constant.StageDone
			s.met.JobCompleted()
			logger.Info().Msg("job completed")
		}
	}()

	job.advance(ctx, constant.StageFetching)
	if err = os.MkdirAll(inputDir, os.ModePerm); err != nil {
		return permanentStageErr(constant.StageFetching, err)
	}
	if err = os.MkdirAll(outputDir, os.ModePerm); err != nil {
		return permanentStageErr(constant.StageFetching, err)
	}
	job.LocalInputPath = filepath.Join(inputDir, filepath.Base(event.Path))
	if err = s.store.Fetch(ctx, event.Path, job.LocalInputPath); err != nil {
		return stageErr(constant.StageFetching, err)
	}

	job.advance(ctx, constant.StageTranscoding)
	started := time.Now()
	bundle, err := s.codec.Transcode(ctx, job.LocalInputPath, outputDir, job.SegmentDuration)
	if err != nil {
		return permanentStageErr(constant.StageTranscoding, err)
	}
	s.met.ObserveTranscode(time.Since(started))

	artifactID := newArtifactID()
	playlistKey := constant.PublishedPrefix + artifactID + "/" + constant.PlaylistFileName
	playlistURL := publicObjectURL(s.cfg.App.Protocol, s.cfg.App.Host, s.cfg.MinIOBucket, playlistKey)
	basePath := hlsurl.BasePath(playlistURL)

	job.advance(ctx, constant.StageRewriting)
	if err = rewritePlaylistFile(bundle.PlaylistPath, basePath); err != nil {
		return permanentStageErr(constant.StageRewriting, err)
	}

	job.advance(ctx, constant.StagePublishing)
	if err = s.store.Publish(ctx, bundle.PlaylistPath, playlistKey, constant.PlaylistContentType); err != nil {
		return stageErr(constant.StagePublishing, err)
	}
	uploaded := 0
	for _, segmentPath := range bundle.SegmentPaths {
		segmentKey := constant.PublishedPrefix + artifactID + "/" + filepath.Base(segmentPath)
		if err = s.store.Publish(ctx, segmentPath, segmentKey, constant.SegmentContentType); err != nil {
			return stageErr(constant.StagePublishing, err)
		}
		uploaded++
	}
	s.met.SegmentsPublished(uploaded)

	job.advance(ctx, constant.StageCatalogWriting)
	record := &entities.Video{
		ID:           artifactID,
		Name:         filepath.Base(event.Path),
		PlaylistURL:  playlistURL,
		OriginalPath: event.Path,
		CreatedAt:    time.Now().UTC(),
		// Count what actually landed in storage, not what the playlist
		// claims.
		SegmentCount: uploaded,
		Status:       constant.VideoStatusProcessed,
	}
	if err = s.repo.CreateVideo(ctx, record); err != nil {
		return stageErr(constant.StageCatalogWriting, err)
	}

	logger.Info().Str("video_id", artifactID).Int("segments", uploaded).Msg("video published")
	return nil
}

// admissible applies the trigger guards. A rejected event is a deliberate
// no-op, not an error. The published-namespace guard keeps the pipeline's
// own writes from re-triggering it.
func admissible(event dto.StorageEvent) (string, bool) {
	if strings.HasPrefix(event.Path, constant.PublishedPrefix) {
		return "path is inside the published namespace", false
	}
	if !strings.HasPrefix(event.Path, constant.IncomingPrefix) {
		return "path is outside the incoming namespace", false
	}
	if !strings.HasPrefix(event.ContentType, constant.VideoContentTypePrefix) {
		return "content type is not a video payload", false
	}
	return "", true
}

func rewritePlaylistFile(playlistPath, basePath string) error {
	raw, err := os.ReadFile(playlistPath)
	if err != nil {
		return err
	}
	rewritten, _, err := hlsurl.RewritePlaylist(string(raw), basePath)
	if err != nil {
		return err
	}
	return os.WriteFile(playlistPath, []byte(rewritten), 0644)
}

// newArtifactID is time-based; the pipeline runs one job per event so this
// is collision-free for its purposes.
var newArtifactID = func() string {
	return fmt.Sprintf("video_%d", time.Now().UnixMilli())
}
