// Package domain holds identifier types shared across features.
//
// Request and user IDs are millisecond-timestamp derived (the persisted
// collections sort by creation order on the raw value), with typed wrappers so
// the compiler rejects cross-entity assignment.
package domain

import (
	"strconv"
	"sync"
	"time"
)

// UserID identifies a registered user account.
type UserID int64

// RequestID identifies an adoption or surrender request.
type RequestID int64

func (id UserID) String() string    { return strconv.FormatInt(int64(id), 10) }
func (id RequestID) String() string { return strconv.FormatInt(int64(id), 10) }

// ParseUserID parses a decimal user ID. Zero and negative values are rejected
// at trust boundaries so stores never see an impossible key.
func ParseUserID(s string) (UserID, error) {
	v, err := parsePositiveInt64(s)
	return UserID(v), err
}

// ParseRequestID parses a decimal request ID.
func ParseRequestID(s string) (RequestID, error) {
	v, err := parsePositiveInt64(s)
	return RequestID(v), err
}

func parsePositiveInt64(s string) (int64, error) {
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, err
	}
	if v <= 0 {
		return 0, strconv.ErrRange
	}
	return v, nil
}

// Generator hands out unique, creation-order-sortable IDs. IDs are the current
// Unix millisecond, bumped by one when two calls land in the same millisecond,
// so uniqueness holds across the whole collection regardless of entity kind.
type Generator struct {
	mu   sync.Mutex
	last int64
	now  func() time.Time
}

func NewGenerator() *Generator {
	return &Generator{now: time.Now}
}

// NewGeneratorAt pins the clock, for tests that need deterministic IDs.
func NewGeneratorAt(now func() time.Time) *Generator {
	return &Generator{now: now}
}

func (g *Generator) next() int64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	v := g.now().UnixMilli()
	if v <= g.last {
		v = g.last + 1
	}
	g.last = v
	return v
}

func (g *Generator) NextUserID() UserID       { return UserID(g.next()) }
func (g *Generator) NextRequestID() RequestID { return RequestID(g.next()) }
