// Package state persists the focus task collection to local storage.
//
// The storage file (~/.local/state/focus/todo-storage.json) holds a single
// envelope record:
//
//	{"state": {...}, "version": 1}
//
// The envelope matches the layout written by the browser build of the app
// under the "todo-storage" key, so an exported browser record (version 0) can
// be dropped in place and is upgraded on the next write. All writers go
// through Update, which serializes access with an exclusive file lock.
package state

import (
	"encoding/json"
	"errors"
)

// StorageKey is the fixed identifier of the persisted record.
const StorageKey = "todo-storage"

// CurrentVersion is the envelope version written by this build.
const CurrentVersion = 1

// ErrUnsupportedVersion is returned when the stored envelope was written by a
// newer build.
var ErrUnsupportedVersion = errors.New("unsupported state version")

// Document is the persisted envelope.
type Document struct {
	// State is the raw payload owned by the caller.
	State json.RawMessage `json:"state"`

	// Version identifies the payload schema. Zero means an unversioned
	// record from the browser build.
	Version int `json:"version"`
}

// Decode unmarshals the payload into v. An empty payload leaves v untouched.
func (doc *Document) Decode(v any) error {
	if doc == nil || len(doc.State) == 0 || string(doc.State) == "null" {
		return nil
	}
	return json.Unmarshal(doc.State, v)
}

// Encode replaces the payload with v and stamps the current version.
func (doc *Document) Encode(v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	doc.State = data
	doc.Version = CurrentVersion
	return nil
}
