package domain

import (
	"errors"
	"time"
)

var (
	ErrFileNotFound = errors.New("file not found")
	ErrKeyConflict  = errors.New("file key already exists")
)

// FileRecord describes one archived upload. Key and SourceRef never change
// after creation; the password fields are written at most once per record
// through FileStore.SetPassword.
type FileRecord struct {
	Key               string    `json:"key"`
	SourceRef         string    `json:"source_ref"`
	DisplayName       string    `json:"display_name"`
	SizeBytes         int64     `json:"size_bytes"`
	OwnerID           int64     `json:"owner_id"`
	StorageMessageID  int       `json:"storage_message_id"`
	PasswordProtected bool      `json:"password_protected"`
	Password          string    `json:"password,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
}

// FileStore persists FileRecords keyed by file key. Implementations are safe
// for concurrent use within a single process; concurrent writer processes are
// not supported.
type FileStore interface {
	// Put stores a new record. The key must not already exist; a conflict is
	// a programming error in key generation and is returned as ErrKeyConflict.
	Put(record FileRecord) error
	// Get returns the record for key, or ErrFileNotFound.
	Get(key string) (FileRecord, error)
	// SetPassword marks the record password-protected. Calling it again
	// overwrites the previous password.
	SetPassword(key string, password string) error
	// Delete removes a record. Administrative use only.
	Delete(key string) error
	// ListByOwner returns every record owned by userID.
	ListByOwner(userID int64) ([]FileRecord, error)
}
