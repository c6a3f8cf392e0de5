// Package fakeupstream is an in-memory stand-in for the upstream REST
// service, used by tests and the DEV environment.
package fakeupstream

import (
	"context"
	"sync"

	"github.com/trezcool/mahafali/core/group"
	"github.com/trezcool/mahafali/core/table"
)

// Fetcher serves static flat tables.
type Fetcher struct {
	mu     sync.RWMutex
	tables map[table.Name][]table.Row
	err    error
}

var _ table.Fetcher = (*Fetcher)(nil) // interface compliance check

func NewFetcher() *Fetcher {
	return &Fetcher{tables: make(map[table.Name][]table.Row)}
}

// SetTable replaces the rows of `name`; row order is preserved as given.
func (f *Fetcher) SetTable(name table.Name, rows []table.Row) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tables[name] = rows
}

// Fail makes every subsequent BulkFetch fail with `err` (nil to recover).
func (f *Fetcher) Fail(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.err = err
}

func (f *Fetcher) BulkFetch(_ context.Context, requests []table.Request) (*table.RowSet, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()

	if f.err != nil {
		return nil, table.NewFetchFailure(requests, f.err)
	}
	tables := make(map[table.Name][]table.Row, len(requests))
	for _, req := range requests {
		if rows := f.tables[req.Table]; rows != nil {
			tables[req.Table] = rows
		} else {
			tables[req.Table] = []table.Row{}
		}
	}
	return table.NewRowSet(tables), nil
}

// GroupRepository is an in-memory group.Repository.
type GroupRepository struct {
	mu      sync.RWMutex
	pkCount int
	groups  []group.Group
}

var _ group.Repository = (*GroupRepository)(nil) // interface compliance check

func NewGroupRepository() *GroupRepository {
	return &GroupRepository{}
}

// Reset drops all groups and restarts pk numbering.
func (repo *GroupRepository) Reset() {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	repo.pkCount = 0
	repo.groups = nil
}

func (repo *GroupRepository) ListGroups(_ context.Context) ([]group.Group, error) {
	repo.mu.RLock()
	defer repo.mu.RUnlock()
	return append([]group.Group(nil), repo.groups...), nil
}

func (repo *GroupRepository) GetGroup(_ context.Context, id int) (group.Group, error) {
	repo.mu.RLock()
	defer repo.mu.RUnlock()
	for _, grp := range repo.groups {
		if grp.ID == id {
			return grp, nil
		}
	}
	return group.Group{}, group.ErrNotFound
}

func (repo *GroupRepository) CreateGroup(_ context.Context, grp group.Group) (group.Group, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	repo.pkCount++
	grp.ID = repo.pkCount
	repo.groups = append(repo.groups, grp)
	return grp, nil
}

func (repo *GroupRepository) UpdateGroup(_ context.Context, grp group.Group) (group.Group, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	for i := range repo.groups {
		if repo.groups[i].ID == grp.ID {
			repo.groups[i] = grp
			return grp, nil
		}
	}
	return group.Group{}, group.ErrNotFound
}
