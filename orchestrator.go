package aztbrew

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DeleteOrchestrator ensures the table exists, builds the filter and hands
// the work to a BatchDeleter.
type DeleteOrchestrator struct {
	Opener  TableOpener
	Logger  *zap.Logger
	OnBatch func(BatchProgress)
}

func NewDeleteOrchestrator(opener TableOpener, logger *zap.Logger) *DeleteOrchestrator {
	return &DeleteOrchestrator{
		Opener: opener,
		Logger: logger,
	}
}

func (o *DeleteOrchestrator) DeleteRecords(ctx context.Context, opt *DeleteOption) (*DeleteResult, error) {
	logger := o.logger().With(
		zap.String("operationID", uuid.NewString()),
		zap.String("table", opt.TableName))
	logger.Info("starting delete operation")

	table, err := o.Opener.Open(opt)
	if err != nil {
		err = classifyError(err, "open table", ErrStorageUnavailable)
		logger.Error("error occurred during delete operation", zap.Error(err))

		return nil, err
	}

	err = table.CreateIfNotExists(ctx)
	if err != nil {
		err = classifyError(err, "create table", ErrStorageUnavailable)
		logger.Error("error occurred during delete operation", zap.Error(err))

		return nil, err
	}
	logger.Info("table ready")

	filter := BuildFilter(opt)
	if filter == "" {
		logger.Warn("no filter set, every record in the table will be deleted")
	}
	logger.Info("using filter", zap.String("filter", filter))

	deleter := &BatchDeleter{
		Logger:    logger,
		BatchSize: BATCH_DELETE_LIMIT,
		OnBatch:   o.OnBatch,
	}

	result, err := deleter.DeleteMatching(ctx, table, filter)
	if err != nil {
		logger.Error("error occurred during delete operation", zap.Error(err))

		return nil, err
	}

	logger.Info("delete operation completed",
		zap.Int("succeeded", result.DeletedCount),
		zap.Int("failed", result.FailedCount))

	return result, nil
}

func (o *DeleteOrchestrator) logger() *zap.Logger {
	if o.Logger == nil {
		return zap.NewNop()
	}

	return o.Logger
}
