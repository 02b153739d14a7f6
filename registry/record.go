package registry

import (
	"fmt"
	"strconv"
)

const (
	// AppName tags every record written by this service
	AppName = "IrysUsername"
	// RecordType is the value of the Type tag for username registrations
	RecordType = "username-registration"
	// RecordVersion is the payload schema version
	RecordVersion = "1.0.0"
	// ContentType of the uploaded payload
	ContentType = "application/json"
)

// Tag names
const (
	TagContentType = "Content-Type"
	TagAppName     = "App-Name"
	TagType        = "Type"
	TagUsername    = "Username"
	TagOwner       = "Owner"
	TagTimestamp   = "Timestamp"
	TagVersion     = "Version"
)

// Record binds a username to an owner address. Records are never mutated
// once the store has assigned an ID
type Record struct {
	ID        string                 `json:"id"`
	Username  string                 `json:"username"`
	Owner     string                 `json:"owner"`
	Timestamp int64                  `json:"timestamp"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
}

// Tag is a name/value attribute attached to a stored transaction
type Tag struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Payload is the JSON document uploaded for a record
type Payload struct {
	Username  string                 `json:"username"`
	Owner     string                 `json:"owner"`
	Timestamp int64                  `json:"timestamp"`
	Metadata  map[string]interface{} `json:"metadata"`
	Version   string                 `json:"version"`
}

// Payload returns the upload document for a record
func (r *Record) Payload() Payload {
	md := r.Metadata
	if md == nil {
		md = map[string]interface{}{}
	}
	return Payload{
		Username:  r.Username,
		Owner:     r.Owner,
		Timestamp: r.Timestamp,
		Metadata:  md,
		Version:   RecordVersion,
	}
}

// RecordTags builds the tag set that makes a record discoverable by username
// and reconstructible without reading its payload
func RecordTags(r *Record) []Tag {
	return []Tag{
		{Name: TagContentType, Value: ContentType},
		{Name: TagAppName, Value: AppName},
		{Name: TagType, Value: RecordType},
		{Name: TagUsername, Value: r.Username},
		{Name: TagOwner, Value: r.Owner},
		{Name: TagTimestamp, Value: strconv.FormatInt(r.Timestamp, 10)},
		{Name: TagVersion, Value: RecordVersion},
	}
}

// UsernameFilter is the tag filter for looking up a normalized username
func UsernameFilter(username string) []Tag {
	return append(AppFilter(), Tag{Name: TagUsername, Value: username})
}

// AppFilter matches every username registration
func AppFilter() []Tag {
	return []Tag{
		{Name: TagAppName, Value: AppName},
		{Name: TagType, Value: RecordType},
	}
}

// MatchTags reports whether every filter tag is present in tags
func MatchTags(tags, filter []Tag) bool {
	for _, f := range filter {
		found := false
		for _, t := range tags {
			if t.Name == f.Name && t.Value == f.Value {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// RecordFromTags reconstructs a record from a transaction id and its tags.
// Metadata lives only in the payload and is left empty
func RecordFromTags(id string, tags []Tag) (*Record, error) {
	vals := map[string]string{}
	for _, t := range tags {
		vals[t.Name] = t.Value
	}

	if vals[TagAppName] != AppName || vals[TagType] != RecordType {
		return nil, fmt.Errorf("transaction %q is not a username registration", id)
	}

	r := &Record{
		ID:       id,
		Username: vals[TagUsername],
		Owner:    vals[TagOwner],
	}
	if r.Username == "" {
		return nil, fmt.Errorf("transaction %q: %s tag is required", id, TagUsername)
	}
	if r.Owner == "" {
		return nil, fmt.Errorf("transaction %q: %s tag is required", id, TagOwner)
	}

	ts, err := strconv.ParseInt(vals[TagTimestamp], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("transaction %q: invalid %s tag: %w", id, TagTimestamp, err)
	}
	r.Timestamp = ts
	return r, nil
}
