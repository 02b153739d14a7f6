package registry

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"sync"
	"time"

	golog "github.com/ipfs/go-log"
	"github.com/multiformats/go-multihash"
)

var (
	log = golog.Logger("irysreg")

	// nowFunc is an internal function for getting timestamps
	nowFunc = func() time.Time { return time.Now() }
)

// NowMillis returns the current time in milliseconds since the unix epoch
func NowMillis() int64 {
	return nowFunc().UnixNano() / int64(time.Millisecond)
}

// entry is a stored transaction: tags plus payload
type entry struct {
	id   string
	tags []Tag
	rec  *Record
}

// MemRecords is an append-only, tag-indexed transaction log held in memory,
// safe for concurrent use. It stands in for the durable network in tests and
// local development; its contents vanish with the process
type MemRecords struct {
	sync.RWMutex
	log []entry
}

// compile-time assertion
var _ Records = (*MemRecords)(nil)

// NewMemRecords allocates a new *MemRecords log
func NewMemRecords() *MemRecords {
	return &MemRecords{}
}

// Len returns the number of transactions in the log
func (rs *MemRecords) Len() int {
	rs.RLock()
	defer rs.RUnlock()
	return len(rs.log)
}

// QueryByUsername returns the most recently appended record for username
func (rs *MemRecords) QueryByUsername(ctx context.Context, username string) (*Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrBackendUnavailable, err)
	}
	res := rs.Query(UsernameFilter(Normalize(username)), 1)
	if len(res) == 0 {
		return nil, ErrNotFound
	}
	return res[0], nil
}

// Query returns up to limit records whose tags match every filter tag,
// newest first. A limit <= 0 returns all matches
func (rs *MemRecords) Query(filter []Tag, limit int) []*Record {
	rs.RLock()
	defer rs.RUnlock()

	var res []*Record
	for i := len(rs.log) - 1; i >= 0; i-- {
		if limit > 0 && len(res) == limit {
			break
		}
		if MatchTags(rs.log[i].tags, filter) {
			res = append(res, rs.log[i].rec.copy())
		}
	}
	return res
}

// Append adds a record to the log, assigning it a content-derived ID
func (rs *MemRecords) Append(ctx context.Context, username, owner string, metadata map[string]interface{}) (*Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, NewUploadError("request cancelled", err)
	}
	rec := &Record{
		Username:  Normalize(username),
		Owner:     Normalize(owner),
		Timestamp: NowMillis(),
		Metadata:  metadata,
	}
	return rs.Store(rec, RecordTags(rec))
}

// Store writes a record with an explicit tag set, bypassing normalization.
// It is exported for mock servers that receive pre-built tags
func (rs *MemRecords) Store(rec *Record, tags []Tag) (*Record, error) {
	data, err := json.Marshal(rec.Payload())
	if err != nil {
		return nil, NewUploadError("encoding payload", err)
	}

	rs.Lock()
	defer rs.Unlock()

	// the log position keeps identical payloads from colliding
	data = append(data, []byte(strconv.Itoa(len(rs.log)))...)
	mh, err := multihash.Sum(data, multihash.SHA2_256, -1)
	if err != nil {
		return nil, NewUploadError("hashing payload", err)
	}

	stored := rec.copy()
	stored.ID = mh.B58String()
	rs.log = append(rs.log, entry{id: stored.ID, tags: tags, rec: stored})
	log.Debugf("stored %q as %s", stored.Username, stored.ID)
	return stored.copy(), nil
}

// List returns up to limit registrations, most recent first
func (rs *MemRecords) List(ctx context.Context, limit int) ([]*Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrBackendUnavailable, err)
	}
	return rs.Query(AppFilter(), limit), nil
}

// Ping always succeeds for an in-memory log
func (rs *MemRecords) Ping(ctx context.Context) error {
	return nil
}

func (r *Record) copy() *Record {
	cp := *r
	if r.Metadata != nil {
		cp.Metadata = make(map[string]interface{}, len(r.Metadata))
		for k, v := range r.Metadata {
			cp.Metadata[k] = v
		}
	}
	return &cp
}
