package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/minhhoangvu/catalog-service/internal/repository"
	"github.com/minhhoangvu/catalog-service/pkg/outbox"
	"github.com/minhhoangvu/catalog-service/pkg/ptr"
)

// recordEvent writes a catalog change event to the outbox inside the same
// unit of work as the mutation it describes. Partitioning by product id
// keeps events for one product ordered on the broker.
func recordEvent(ctx context.Context, outboxMsgRepo repository.OutboxMsgRepository, topic string, partitionKey string, ev any) error {
	payload, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal %s event: %w", topic, err)
	}

	if err := outboxMsgRepo.CreateOutboxMsg(ctx, repository.CreateOutboxMsgParams{
		Topic:        topic,
		Headers:      outbox.BuildHeaders(ctx),
		Payload:      payload,
		PartitionKey: ptr.New(partitionKey),
	}); err != nil {
		return fmt.Errorf("create outbox msg: %w", err)
	}

	return nil
}
