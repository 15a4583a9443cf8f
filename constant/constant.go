package constant

import "time"

type JobStage string

const (
	StageFetching       JobStage = "fetching"
	StageTranscoding    JobStage = "transcoding"
	StageRewriting      JobStage = "rewriting"
	StagePublishing     JobStage = "publishing"
	StageCatalogWriting JobStage = "catalog_writing"
	StageCleaning       JobStage = "cleaning"
	StageDone           JobStage = "done"
	StageFailed         JobStage = "failed"
)

func (s JobStage) String() string {
	return string(s)
}

type VideoStatus string

const (
	VideoStatusProcessed VideoStatus = "processed"
)

// Storage namespaces. Objects under IncomingPrefix are raw uploads waiting
// for the pipeline; everything the pipeline writes lands under
// PublishedPrefix, which admission must never re-trigger on.
const (
	IncomingPrefix  = "uploads/"
	PublishedPrefix = "published/"
)

const (
	PlaylistContentType    = "application/vnd.apple.mpegurl"
	SegmentContentType     = "video/mp2t"
	VideoContentTypePrefix = "video/"
)

// Pipeline policy, fixed at deployment.
const (
	SegmentDurationSeconds = 10
	JobTimeout             = 9 * time.Minute
	PlaylistFileName       = "playlist.m3u8"
)

type Environment string

const (
	EnvironmentProduction Environment = "production"
	EnvironmentStaging    Environment = "staging"
	EnvironmentDevelop    Environment = "develop"
)

func (e Environment) String() string {
	return string(e)
}
