package testingutil

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"sync"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/pkg/errors"
	"github.com/shuntaka9576/aztbrew"
)

const DEFAULT_PAGE_SIZE = 1000

var keyFilterPattern = regexp.MustCompile(`^PartitionKey eq '([^']*)'(?: and RowKey eq '([^']*)')?$`)

// MemoryTable is an in-memory aztbrew.Table. It understands the filters
// produced by aztbrew.BuildFilter and rejects anything else the way the
// service rejects a malformed query.
type MemoryTable struct {
	TableName string
	PageSize  int

	CreateErr error
	QueryErr  error
	// FailDelete returns a non-nil error for entities whose delete must fail.
	FailDelete func(entity aztbrew.EntityRef) error

	mu          sync.Mutex
	created     bool
	createCalls int
	entities    []aztbrew.EntityRef
	deleteCalls int
	inFlight    int
	maxInFlight int
}

func NewMemoryTable(name string, entities ...aztbrew.EntityRef) *MemoryTable {
	return &MemoryTable{
		TableName: name,
		PageSize:  DEFAULT_PAGE_SIZE,
		entities:  append([]aztbrew.EntityRef(nil), entities...),
	}
}

// Opener returns a TableOpener handing out this table for any option.
func (m *MemoryTable) Opener() aztbrew.TableOpener {
	return aztbrew.TableOpenerFunc(func(opt *aztbrew.DeleteOption) (aztbrew.Table, error) {
		return m, nil
	})
}

func (m *MemoryTable) Name() string {
	return m.TableName
}

func (m *MemoryTable) CreateIfNotExists(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.createCalls += 1
	if m.CreateErr != nil {
		return m.CreateErr
	}
	m.created = true

	return nil
}

func (m *MemoryTable) NewEntityPager(filter string) aztbrew.EntityPager {
	return &memoryPager{table: m, filter: filter}
}

func (m *MemoryTable) DeleteEntity(ctx context.Context, entity aztbrew.EntityRef) error {
	m.mu.Lock()
	m.deleteCalls += 1
	m.inFlight += 1
	if m.inFlight > m.maxInFlight {
		m.maxInFlight = m.inFlight
	}
	m.mu.Unlock()

	defer func() {
		m.mu.Lock()
		m.inFlight -= 1
		m.mu.Unlock()
	}()

	if m.FailDelete != nil {
		if err := m.FailDelete(entity); err != nil {
			return err
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for i, e := range m.entities {
		if e.PartitionKey == entity.PartitionKey && e.RowKey == entity.RowKey {
			m.entities = append(m.entities[:i], m.entities[i+1:]...)

			return nil
		}
	}

	return ResponseError(http.StatusNotFound, "ResourceNotFound")
}

func (m *MemoryTable) Created() bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.created
}

func (m *MemoryTable) CreateCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.createCalls
}

func (m *MemoryTable) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	return len(m.entities)
}

func (m *MemoryTable) DeleteCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.deleteCalls
}

func (m *MemoryTable) MaxInFlight() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.maxInFlight
}

func (m *MemoryTable) match(filter string) ([]aztbrew.EntityRef, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if filter == "" {
		return append([]aztbrew.EntityRef(nil), m.entities...), nil
	}

	sub := keyFilterPattern.FindStringSubmatch(filter)
	if sub == nil {
		return nil, ResponseError(http.StatusBadRequest, "InvalidInput")
	}

	var matched []aztbrew.EntityRef
	for _, e := range m.entities {
		if e.PartitionKey != sub[1] {
			continue
		}
		if strings.Contains(filter, " and RowKey eq ") && e.RowKey != sub[2] {
			continue
		}
		matched = append(matched, e)
	}

	return matched, nil
}

type memoryPager struct {
	table   *MemoryTable
	filter  string
	loaded  bool
	pending []aztbrew.EntityRef
}

func (p *memoryPager) More() bool {
	return !p.loaded || len(p.pending) > 0
}

func (p *memoryPager) NextPage(ctx context.Context) ([]aztbrew.EntityRef, error) {
	if !p.loaded {
		if p.table.QueryErr != nil {
			return nil, p.table.QueryErr
		}

		matched, err := p.table.match(p.filter)
		if err != nil {
			return nil, err
		}
		p.pending = matched
		p.loaded = true
	}

	size := p.table.PageSize
	if size <= 0 || size > len(p.pending) {
		size = len(p.pending)
	}

	page := p.pending[:size]
	p.pending = p.pending[size:]

	return page, nil
}

// NewEntities returns n entities in partition pk with zero padded row keys.
func NewEntities(pk string, n int) []aztbrew.EntityRef {
	entities := make([]aztbrew.EntityRef, 0, n)
	for i := 0; i < n; i++ {
		entities = append(entities, aztbrew.EntityRef{
			PartitionKey: pk,
			RowKey:       fmt.Sprintf("%05d", i),
			ETag:         fmt.Sprintf("W/\"datetime'2024-01-01T00%%3A00%%3A%02dZ'\"", i%60),
		})
	}

	return entities
}

// ResponseError builds the error the Azure SDK returns for a failed request.
func ResponseError(status int, code string) error {
	req := httptest.NewRequest(http.MethodGet, "https://devstoreaccount1.table.core.windows.net/", nil)

	return errors.WithStack(&azcore.ResponseError{
		ErrorCode:  code,
		StatusCode: status,
		RawResponse: &http.Response{
			Status:     fmt.Sprintf("%d %s", status, http.StatusText(status)),
			StatusCode: status,
			Header:     http.Header{},
			Body:       io.NopCloser(strings.NewReader("")),
			Request:    req,
		},
	})
}
