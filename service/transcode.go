package service

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"vod-packager/constant"
	"vod-packager/pkg/hlsurl"
)

// Bundle is what one transcode produces on local disk: the index playlist
// plus its media segments in temporal order.
type Bundle struct {
	PlaylistPath string
	SegmentPaths []string
}

// Codec is the adapter over the opaque transcoding engine. It never retries;
// whether a failed transcode is worth re-running is the orchestrator's call.
type Codec interface {
	Transcode(ctx context.Context, inputPath, outputDir string, segmentSeconds int) (*Bundle, error)
}

type ffmpegCodec struct{}

func NewFFmpegCodec() Codec {
	return ffmpegCodec{}
}

func (ffmpegCodec) Transcode(ctx context.Context, inputPath, outputDir string, segmentSeconds int) (*Bundle, error) {
	ffmpegArgs := []string{
		"-i", inputPath,
		"-c:v", "libx264",
		"-c:a", "aac",
		"-hls_time", strconv.Itoa(segmentSeconds),
		"-hls_list_size", "0",
		"-hls_segment_filename", filepath.Join(outputDir, "%03d.ts"),
		"-f", "hls",
		filepath.Join(outputDir, constant.PlaylistFileName),
	}

	cmd := exec.CommandContext(ctx, "ffmpeg", ffmpegArgs...)
	zerolog.Ctx(ctx).Debug().Str("args", strings.Join(ffmpegArgs, " ")).Msg("executing ffmpeg")

	output, err := cmd.CombinedOutput()
	if err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("ffmpeg aborted: %w", ctx.Err())
		}
		zerolog.Ctx(ctx).Error().Str("ffmpeg_output", string(output)).Msg("ffmpeg failed")
		return nil, fmt.Errorf("ffmpeg execution failed: %w", err)
	}

	return collectBundle(outputDir)
}

// collectBundle reads the transcode output directory back as a Bundle.
// Segment files carry zero-padded sequence indexes, so lexical order is
// temporal order.
func collectBundle(outputDir string) (*Bundle, error) {
	playlistPath := filepath.Join(outputDir, constant.PlaylistFileName)
	if _, err := os.Stat(playlistPath); err != nil {
		return nil, fmt.Errorf("transcode produced no playlist: %w", err)
	}

	entries, err := os.ReadDir(outputDir)
	if err != nil {
		return nil, err
	}

	var segments []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), hlsurl.SegmentSuffix) {
			continue
		}
		segments = append(segments, filepath.Join(outputDir, entry.Name()))
	}
	if len(segments) == 0 {
		return nil, fmt.Errorf("transcode produced no segments")
	}
	sort.Strings(segments)

	return &Bundle{PlaylistPath: playlistPath, SegmentPaths: segments}, nil
}
