package aztbrew

import "context"

type Task interface {
	Run() Result
}

type Result struct {
	entity EntityRef
	error  error
}

func (r *Result) Entity() EntityRef {
	return r.entity
}

func (r *Result) Error() error {
	return r.error
}

func (r *Result) Deleted() bool {
	return r.error == nil
}

// DeleteTask removes one entity. The delete is unconditional, so concurrent
// updates to the entity do not cause it to fail.
type DeleteTask struct {
	ctx    context.Context
	table  Table
	entity EntityRef
}

func (t *DeleteTask) Run() Result {
	return Result{
		entity: t.entity,
		error:  t.table.DeleteEntity(t.ctx, t.entity),
	}
}
