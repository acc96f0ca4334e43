// Package pagination holds the request-scoped total-count carrier written by
// services and read by the response envelope.
package pagination

import "context"

// Metadata is created once per inbound request. It is not safe for sharing
// across requests and must never be stored in a package-level variable.
type Metadata struct {
	totalCount int64
	set        bool
}

func New() *Metadata { return &Metadata{} }

func (m *Metadata) SetTotalCount(n int64) {
	m.totalCount = n
	m.set = true
}

// TotalCount returns the recorded count and whether one was recorded.
func (m *Metadata) TotalCount() (int64, bool) {
	return m.totalCount, m.set
}

func (m *Metadata) HasMetadata() bool { return m.set }

func (m *Metadata) Clear() {
	m.totalCount = 0
	m.set = false
}

type ctxKey struct{}

// WithMetadata attaches md to ctx.
func WithMetadata(ctx context.Context, md *Metadata) context.Context {
	return context.WithValue(ctx, ctxKey{}, md)
}

// FromContext returns the request's carrier, or nil outside a request.
func FromContext(ctx context.Context) *Metadata {
	md, _ := ctx.Value(ctxKey{}).(*Metadata)
	return md
}

// RecordTotal sets the total count when ctx carries metadata.
func RecordTotal(ctx context.Context, n int64) {
	if md := FromContext(ctx); md != nil {
		md.SetTotalCount(n)
	}
}
