package aztbrew

import (
	"context"

	"go.uber.org/zap"
)

// Azure Table Storage accepts at most 100 operations per batch.
const BATCH_DELETE_LIMIT = 100

type BatchProgress struct {
	Index   int
	Batches int
	Matched int
	Size    int
	Deleted int
	Failed  int
}

type BatchDeleter struct {
	Logger    *zap.Logger
	BatchSize int
	// OnBatch is called after every batch has been fully processed.
	OnBatch func(BatchProgress)
}

// DeleteMatching loads every entity matching filter and deletes them batch by
// batch. Query errors are returned; a failed delete is only counted.
func (b *BatchDeleter) DeleteMatching(ctx context.Context, table Table, filter string) (*DeleteResult, error) {
	logger := b.logger()

	entities, err := queryEntities(ctx, table, filter)
	if err != nil {
		return nil, err
	}
	logger.Info("found records to delete", zap.Int("count", len(entities)))

	result := &DeleteResult{}
	batches := Batches(entities, b.batchSize())

	for i, batch := range batches {
		deleted, failed := b.deleteBatch(ctx, table, batch)
		result.DeletedCount += deleted
		result.FailedCount += failed

		logger.Debug("batch processed",
			zap.Int("batch", i+1),
			zap.Int("batches", len(batches)),
			zap.Int("deleted", deleted),
			zap.Int("failed", failed))

		if b.OnBatch != nil {
			b.OnBatch(BatchProgress{
				Index:   i,
				Batches: len(batches),
				Matched: len(entities),
				Size:    len(batch),
				Deleted: deleted,
				Failed:  failed,
			})
		}
	}

	return result, nil
}

// deleteBatch runs one delete per entity and waits for all of them. Counters
// are only touched once every result has been received.
func (b *BatchDeleter) deleteBatch(ctx context.Context, table Table, batch []EntityRef) (deleted int, failed int) {
	tasks := make(chan Task, len(batch))
	results := make(chan Result, len(batch))

	for i := 0; i < len(batch); i++ {
		go worker(tasks, results)
	}

	for _, entity := range batch {
		tasks <- &DeleteTask{
			ctx:    ctx,
			table:  table,
			entity: entity,
		}
	}
	close(tasks)

	collected := make([]Result, 0, len(batch))
	for range batch {
		collected = append(collected, <-results)
	}

	for _, result := range collected {
		if result.Deleted() {
			deleted += 1

			continue
		}

		failed += 1
		entity := result.Entity()
		b.logger().Error("failed to delete entity",
			zap.String("partitionKey", entity.PartitionKey),
			zap.String("rowKey", entity.RowKey),
			zap.Error(result.Error()))
	}

	return deleted, failed
}

func queryEntities(ctx context.Context, table Table, filter string) ([]EntityRef, error) {
	var entities []EntityRef

	pager := table.NewEntityPager(filter)
	for pager.More() {
		page, err := pager.NextPage(ctx)
		if err != nil {
			return nil, classifyError(err, "query entities", ErrStorageUnavailable)
		}
		entities = append(entities, page...)
	}

	return entities, nil
}

// Batches splits entities into consecutive groups of at most size entries.
func Batches(entities []EntityRef, size int) [][]EntityRef {
	if size <= 0 {
		size = BATCH_DELETE_LIMIT
	}

	var batches [][]EntityRef
	for start := 0; start < len(entities); start += size {
		end := start + size
		if end > len(entities) {
			end = len(entities)
		}
		batches = append(batches, entities[start:end])
	}

	return batches
}

func (b *BatchDeleter) batchSize() int {
	if b.BatchSize <= 0 || b.BatchSize > BATCH_DELETE_LIMIT {
		return BATCH_DELETE_LIMIT
	}

	return b.BatchSize
}

func (b *BatchDeleter) logger() *zap.Logger {
	if b.Logger == nil {
		return zap.NewNop()
	}

	return b.Logger
}
