package handler

import (
	"context"
	"encoding/json"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"

	"vod-packager/dto"
	"vod-packager/service"
)

type ServiceDependencies struct {
	IngestService service.Service
}

// StorageEventHandler decodes one "object finalized" event and hands it to
// the ingest orchestrator.
func StorageEventHandler(ctx context.Context, msg amqp.Delivery, deps ServiceDependencies) error {
	var event dto.StorageEvent
	if err := json.Unmarshal(msg.Body, &event); err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Msg("failed to unmarshal storage event")
		return err
	}

	return deps.IngestService.Process(ctx, event)
}
