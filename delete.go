package aztbrew

import (
	"context"

	"go.uber.org/zap"
)

type FilterMode int

const (
	FilterModePartition FilterMode = iota + 1
	FilterModePartitionRow
	FilterModeCustom
)

// DeleteOption describes one delete invocation. At most one filter mode is
// populated; when none is, the filter is empty and every record in the table
// matches.
type DeleteOption struct {
	ConnectionString string
	// ServiceURL switches authentication to DefaultAzureCredential against
	// the given table endpoint instead of ConnectionString.
	ServiceURL   string
	TableName    string
	PartitionKey string
	RowKey       string
	CustomFilter string
}

type DeleteResult struct {
	DeletedCount int
	FailedCount  int
}

func (r *DeleteResult) Total() int {
	return r.DeletedCount + r.FailedCount
}

// EntityRef identifies an entity to delete. ETag is carried as returned by
// the query; deletes are issued unconditionally regardless of its value.
type EntityRef struct {
	PartitionKey string
	RowKey       string
	ETag         string
}

// Delete runs a delete against Azure Table Storage using the global zap logger.
func Delete(ctx context.Context, opt *DeleteOption) (*DeleteResult, error) {
	return NewDeleteOrchestrator(TableOpenerFunc(OpenTable), zap.L()).DeleteRecords(ctx, opt)
}
