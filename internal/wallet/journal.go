package wallet

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/Klingon-tech/quai-shadow-wallet/internal/storage"
)

// JournalStatus is the lifecycle state of a journaled transfer.
type JournalStatus string

// Journal statuses.
const (
	StatusPending   JournalStatus = "pending"
	StatusConfirmed JournalStatus = "confirmed"
	StatusFailed    JournalStatus = "failed"
)

var journalPrefix = []byte("tx/")

// JournalEntry records one transfer broadcast from this machine.
type JournalEntry struct {
	Hash        string        `json:"hash"`
	From        string        `json:"from"`
	To          string        `json:"to"`
	Value       string        `json:"value"` // smallest unit, base 10
	Status      JournalStatus `json:"status"`
	BlockNumber uint64        `json:"blockNumber,omitempty"`
	CreatedAt   time.Time     `json:"createdAt"`
}

// Journal keeps the local history of sent transactions.
type Journal struct {
	db storage.DB
}

// NewJournal returns a journal backed by db.
func NewJournal(db storage.DB) *Journal {
	return &Journal{db: db}
}

func journalKey(hash string) []byte {
	return append(append([]byte{}, journalPrefix...), strings.ToLower(hash)...)
}

// Record stores a new entry, replacing any entry with the same hash.
func (j *Journal) Record(e *JournalEntry) error {
	if e.Hash == "" {
		return fmt.Errorf("%w: journal entry without hash", ErrValidation)
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}
	data, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("encode journal entry: %w", err)
	}
	if err := j.db.Put(journalKey(e.Hash), data); err != nil {
		return fmt.Errorf("store journal entry: %w", err)
	}
	return nil
}

// Get returns the entry for hash, or storage.ErrNotFound.
func (j *Journal) Get(hash string) (*JournalEntry, error) {
	data, err := j.db.Get(journalKey(hash))
	if err != nil {
		return nil, err
	}
	var e JournalEntry
	if err := json.Unmarshal(data, &e); err != nil {
		return nil, fmt.Errorf("decode journal entry %s: %w", hash, err)
	}
	return &e, nil
}

// Update sets the status and block number of an existing entry.
func (j *Journal) Update(hash string, status JournalStatus, blockNumber uint64) error {
	e, err := j.Get(hash)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return fmt.Errorf("journal entry %s: %w", hash, err)
		}
		return err
	}
	e.Status = status
	e.BlockNumber = blockNumber
	return j.Record(e)
}

// List returns all entries, oldest first.
func (j *Journal) List() ([]*JournalEntry, error) {
	var entries []*JournalEntry
	err := j.db.ForEach(journalPrefix, func(key, value []byte) error {
		var e JournalEntry
		if err := json.Unmarshal(value, &e); err != nil {
			return fmt.Errorf("decode journal entry %s: %w", key, err)
		}
		entries = append(entries, &e)
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.SliceStable(entries, func(a, b int) bool {
		return entries[a].CreatedAt.Before(entries[b].CreatedAt)
	})
	return entries, nil
}
