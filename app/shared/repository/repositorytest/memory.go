// Package repositorytest provides an in-memory Repository for service tests.
package repositorytest

import (
	"context"
	"fmt"
	"reflect"
	"sort"
	"strings"
	"sync"

	"github.com/Black-And-White-Club/league-admin/app/shared/repository"
	"github.com/uptrace/bun"
)

// Memory is a map-backed repository.Repository. List supports equality
// filters and ordering on struct fields whose bun tag names the column.
type Memory[T any, PT interface {
	*T
	repository.Model
}] struct {
	mu    sync.Mutex
	rows  map[string]*T
	order []string
	seq   int
	calls []string

	// Err, when set, is returned by every call.
	Err error
}

// NewMemory returns an empty in-memory repository seeded with rows.
func NewMemory[T any, PT interface {
	*T
	repository.Model
}](rows ...*T) *Memory[T, PT] {
	m := &Memory[T, PT]{rows: map[string]*T{}}
	for _, r := range rows {
		m.put(r)
	}
	return m
}

func (m *Memory[T, PT]) put(entity *T) {
	id := PT(entity).PrimaryKey()
	if id == "" {
		m.seq++
		id = fmt.Sprintf("id-%d", m.seq)
		PT(entity).AssignPrimaryKey(id)
	}
	if _, ok := m.rows[id]; !ok {
		m.order = append(m.order, id)
	}
	cp := *entity
	m.rows[id] = &cp
}

// Calls returns the repository methods invoked so far.
func (m *Memory[T, PT]) Calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.calls))
	copy(out, m.calls)
	return out
}

// Len returns the number of stored rows.
func (m *Memory[T, PT]) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.rows)
}

func (m *Memory[T, PT]) Get(_ context.Context, _ bun.IDB, id string) (*T, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, "Get")
	if m.Err != nil {
		return nil, m.Err
	}
	row, ok := m.rows[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *row
	return &cp, nil
}

func (m *Memory[T, PT]) List(_ context.Context, _ bun.IDB, opts repository.ListOptions) ([]*T, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, "List")
	if m.Err != nil {
		return nil, m.Err
	}
	var out []*T
	for _, id := range m.order {
		row, ok := m.rows[id]
		if !ok || !matches(row, opts.Filters) {
			continue
		}
		cp := *row
		out = append(out, &cp)
	}
	if opts.OrderBy != "" {
		sort.SliceStable(out, func(i, j int) bool {
			a := fmt.Sprint(column(out[i], opts.OrderBy))
			b := fmt.Sprint(column(out[j], opts.OrderBy))
			if opts.Desc {
				return a > b
			}
			return a < b
		})
	}
	if opts.Offset > 0 {
		if opts.Offset >= len(out) {
			return nil, nil
		}
		out = out[opts.Offset:]
	}
	if opts.Limit > 0 && opts.Limit < len(out) {
		out = out[:opts.Limit]
	}
	return out, nil
}

func (m *Memory[T, PT]) Create(_ context.Context, _ bun.IDB, entity *T) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, "Create")
	if m.Err != nil {
		return m.Err
	}
	m.put(entity)
	return nil
}

func (m *Memory[T, PT]) CreateMany(_ context.Context, _ bun.IDB, entities []*T) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, "CreateMany")
	if m.Err != nil {
		return 0, m.Err
	}
	for _, e := range entities {
		m.put(e)
	}
	return len(entities), nil
}

func (m *Memory[T, PT]) Update(_ context.Context, _ bun.IDB, entity *T) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, "Update")
	if m.Err != nil {
		return m.Err
	}
	if _, ok := m.rows[PT(entity).PrimaryKey()]; !ok {
		return repository.ErrNotFound
	}
	m.put(entity)
	return nil
}

func (m *Memory[T, PT]) Delete(_ context.Context, _ bun.IDB, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, "Delete")
	if m.Err != nil {
		return m.Err
	}
	if _, ok := m.rows[id]; !ok {
		return repository.ErrNotFound
	}
	delete(m.rows, id)
	return nil
}

func matches[T any](row *T, filters []repository.Filter) bool {
	for _, f := range filters {
		if fmt.Sprint(column(row, f.Column)) != fmt.Sprint(f.Value) {
			return false
		}
	}
	return true
}

// column returns the value of the field whose bun tag names col.
func column[T any](row *T, col string) any {
	v := reflect.ValueOf(row).Elem()
	return fieldByColumn(v, col)
}

func fieldByColumn(v reflect.Value, col string) any {
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if f.Anonymous && f.Type.Kind() == reflect.Struct {
			if got := fieldByColumn(v.Field(i), col); got != nil {
				return got
			}
			continue
		}
		name := strings.Split(f.Tag.Get("bun"), ",")[0]
		if name == col {
			return v.Field(i).Interface()
		}
	}
	return nil
}
