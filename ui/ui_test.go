package ui

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestModel_Update(t *testing.T) {
	m := InitModel()
	assert.Contains(t, m.View(), "Querying records...")

	var next interface{} = m
	for _, msg := range []BatchMsg{
		{Matched: 250, Batches: 3, DeletedCount: 100},
		{Matched: 250, Batches: 3, DeletedCount: 98, FailedCount: 2},
	} {
		updated, _ := next.(Model).Update(msg)
		next = updated
	}

	got := next.(Model)
	assert.Equal(t, 198, got.DeletedCount)
	assert.Equal(t, 2, got.FailedCount)
	assert.Equal(t, 2, got.BatchCount)
	assert.InDelta(t, 0.8, got.Percent, 0.0001)
	assert.Contains(t, got.View(), "Deleted: 198(80%) Failed: 2 Batch: 2/3")

	updated, _ := got.Update(BatchMsg{Matched: 250, Batches: 3, DeletedCount: 50})
	assert.Contains(t, updated.View(), "All done! Deleted: 248 Failed: 2")
}

func TestModel_Done(t *testing.T) {
	m := InitModel()

	updated, cmd := m.Update(doneMsg{})
	assert.NotNil(t, cmd)
	assert.False(t, updated.(Model).Running)
	assert.Equal(t, "", strings.TrimSpace(updated.View()))
}
