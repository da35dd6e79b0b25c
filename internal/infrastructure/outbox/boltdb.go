package outbox

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"
)

// Store wraps BoltDB to persist reminders until the dispatcher hands
// them to the notification store.
type Store struct {
	db     *bolt.DB
	bucket []byte
}

// Open initializes the BoltDB file and ensures the bucket exists.
func Open(path string, bucket string) (*Store, error) {
	if bucket == "" {
		bucket = "reminders"
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, err
	}

	if err := db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucket))
		return err
	}); err != nil {
		db.Close()
		return nil, err
	}

	return &Store{
		db:     db,
		bucket: []byte(bucket),
	}, nil
}

// Enqueue stores a reminder keyed by its delivery time, so drains walk
// the outbox in delivery order.
func (s *Store) Enqueue(reminder Reminder) error {
	if s == nil || s.db == nil {
		return bolt.ErrDatabaseNotOpen
	}
	reminder.normalize()
	reminder.bucketKey = []byte(buildKey(reminder))

	payload, err := json.Marshal(reminder)
	if err != nil {
		return err
	}

	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(s.bucket).Put(reminder.bucketKey, payload)
	})
}

// GetBatch returns up to limit reminders without removing them.
func (s *Store) GetBatch(limit int) ([]Reminder, error) {
	if s == nil || s.db == nil {
		return nil, bolt.ErrDatabaseNotOpen
	}
	if limit <= 0 {
		limit = 50
	}

	var reminders []Reminder
	err := s.db.View(func(tx *bolt.Tx) error {
		c := tx.Bucket(s.bucket).Cursor()
		for k, v := c.First(); k != nil && len(reminders) < limit; k, v = c.Next() {
			var reminder Reminder
			if err := json.Unmarshal(v, &reminder); err != nil {
				continue
			}
			reminder.bucketKey = append([]byte(nil), k...)
			reminders = append(reminders, reminder)
		}
		return nil
	})
	return reminders, err
}

// Remove deletes the provided reminder from the outbox.
func (s *Store) Remove(reminder Reminder) error {
	if s == nil || s.db == nil {
		return bolt.ErrDatabaseNotOpen
	}
	if len(reminder.bucketKey) == 0 {
		return s.deleteByID(reminder.ID)
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(s.bucket).Delete(reminder.bucketKey)
	})
}

// Requeue re-inserts a reminder after a failed handoff.
func (s *Store) Requeue(reminder Reminder) error {
	reminder.bucketKey = nil
	return s.Enqueue(reminder)
}

// Size returns the number of pending reminders.
func (s *Store) Size() (int, error) {
	if s == nil || s.db == nil {
		return 0, bolt.ErrDatabaseNotOpen
	}
	var count int
	err := s.db.View(func(tx *bolt.Tx) error {
		count = tx.Bucket(s.bucket).Stats().KeyN
		return nil
	})
	return count, err
}

// Cleanup removes reminders whose delivery time passed before the cutoff;
// delivering them now would be noise.
func (s *Store) Cleanup(olderThan time.Time) error {
	if s == nil || s.db == nil {
		return bolt.ErrDatabaseNotOpen
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		c := tx.Bucket(s.bucket).Cursor()
		for k, v := c.First(); k != nil; k, v = c.Next() {
			var reminder Reminder
			if err := json.Unmarshal(v, &reminder); err != nil {
				continue
			}
			if reminder.ScheduledFor.Before(olderThan) {
				if err := c.Delete(); err != nil {
					return err
				}
			}
		}
		return nil
	})
}

// Close closes the Bolt database.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *Store) deleteByID(id string) error {
	if id == "" {
		return nil
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		c := tx.Bucket(s.bucket).Cursor()
		for k, v := c.First(); k != nil; k, v = c.Next() {
			var reminder Reminder
			if err := json.Unmarshal(v, &reminder); err != nil {
				continue
			}
			if reminder.ID == id {
				return c.Delete()
			}
		}
		return nil
	})
}

func buildKey(reminder Reminder) string {
	return fmt.Sprintf("%020d_%s", reminder.ScheduledFor.UnixNano(), reminder.ID)
}
