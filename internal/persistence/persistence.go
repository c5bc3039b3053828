package persistence

import (
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/ufispace/onlp2go/internal/inventory"
	"github.com/ufispace/onlp2go/internal/ui"
	bolt "go.etcd.io/bbolt"
)

const (
	BucketSnapshots = "snapshots"
	BucketEvents    = "events"

	// MaxEvents is the number of status change events kept per platform
	MaxEvents = 1000
)

type Persistence interface {
	Init() error

	LoadSnapshot(platform string) (*inventory.Snapshot, error)
	SaveSnapshot(snapshot *inventory.Snapshot) error
	DeleteSnapshot(platform string) error

	AppendEvents(platform string, changes []inventory.StatusChange) error
	// LoadEvents returns the latest limit events, oldest first. A limit <= 0 returns all events.
	LoadEvents(platform string, limit int) ([]inventory.StatusChange, error)
}

type persistence struct {
	dbPath string
}

func NewPersistence(dbPath string) Persistence {
	p := &persistence{
		dbPath: dbPath,
	}
	return p
}

func (p persistence) Init() (err error) {
	// get parent path of dbPath
	parentDir := filepath.Dir(p.dbPath)
	_, err = os.Stat(parentDir)
	if errors.Is(err, os.ErrNotExist) {
		ui.Info("Creating directory for db: %s", parentDir)
		err = os.MkdirAll(parentDir, 0755)
		if err != nil {
			return err
		}
	}
	return nil
}

func (p persistence) openPersistence() (db *bolt.DB, err error) {
	db, err = bolt.Open(p.dbPath, 0600, &bolt.Options{Timeout: 1 * time.Minute})
	if err != nil {
		return nil, err
	}
	return db, nil
}

// SaveSnapshot replaces the last known snapshot of the platform
func (p persistence) SaveSnapshot(snapshot *inventory.Snapshot) (err error) {
	db, err := p.openPersistence()
	if err != nil {
		return err
	}
	defer func(db *bolt.DB) {
		_ = db.Close()
	}(db)

	data, err := json.Marshal(snapshot)
	if err != nil {
		return err
	}

	return db.Update(func(tx *bolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists([]byte(BucketSnapshots))
		if err != nil {
			return fmt.Errorf("create bucket: %s", err)
		}
		return b.Put([]byte(snapshot.Platform), data)
	})
}

// LoadSnapshot returns the last known snapshot of the platform, os.ErrNotExist if there is none
func (p persistence) LoadSnapshot(platform string) (*inventory.Snapshot, error) {
	db, err := p.openPersistence()
	if err != nil {
		return nil, err
	}
	defer func(db *bolt.DB) {
		_ = db.Close()
	}(db)

	var snapshot *inventory.Snapshot
	err = db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(BucketSnapshots))
		if b == nil {
			return os.ErrNotExist
		}
		v := b.Get([]byte(platform))
		if v == nil {
			return os.ErrNotExist
		}

		snapshot = &inventory.Snapshot{}
		err := json.Unmarshal(v, snapshot)
		if err != nil {
			// if we cannot read the saved data, delete it
			ui.Warning("Unable to unmarshal saved snapshot of %s: %v", platform, err)
			snapshot = nil
			err := b.Delete([]byte(platform))
			if err != nil {
				ui.Error("Unable to delete corrupt snapshot %s: %v", platform, err)
			}
			return os.ErrNotExist
		}
		return nil
	})
	return snapshot, err
}

func (p persistence) DeleteSnapshot(platform string) (err error) {
	db, err := p.openPersistence()
	if err != nil {
		return err
	}
	defer func(db *bolt.DB) {
		_ = db.Close()
	}(db)

	return db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(BucketSnapshots))
		if b != nil {
			return b.Delete([]byte(platform))
		}
		return nil
	})
}

func sequenceKey(seq uint64) []byte {
	key := make([]byte, 8)
	binary.BigEndian.PutUint64(key, seq)
	return key
}

// AppendEvents stores status changes in the event log of the platform,
// dropping the oldest events beyond MaxEvents
func (p persistence) AppendEvents(platform string, changes []inventory.StatusChange) (err error) {
	if len(changes) <= 0 {
		return nil
	}
	db, err := p.openPersistence()
	if err != nil {
		return err
	}
	defer func(db *bolt.DB) {
		_ = db.Close()
	}(db)

	return db.Update(func(tx *bolt.Tx) error {
		root, err := tx.CreateBucketIfNotExists([]byte(BucketEvents))
		if err != nil {
			return fmt.Errorf("create bucket: %s", err)
		}
		b, err := root.CreateBucketIfNotExists([]byte(platform))
		if err != nil {
			return fmt.Errorf("create bucket: %s", err)
		}
		for _, change := range changes {
			data, err := json.Marshal(change)
			if err != nil {
				return err
			}
			seq, err := b.NextSequence()
			if err != nil {
				return err
			}
			if err := b.Put(sequenceKey(seq), data); err != nil {
				return err
			}
		}

		count := 0
		_ = b.ForEach(func(k, v []byte) error {
			count++
			return nil
		})
		excess := count - MaxEvents
		c := b.Cursor()
		for k, _ := c.First(); k != nil && excess > 0; k, _ = c.First() {
			if err := c.Delete(); err != nil {
				return err
			}
			excess--
		}
		return nil
	})
}

func (p persistence) LoadEvents(platform string, limit int) ([]inventory.StatusChange, error) {
	db, err := p.openPersistence()
	if err != nil {
		return nil, err
	}
	defer func(db *bolt.DB) {
		_ = db.Close()
	}(db)

	var result []inventory.StatusChange
	err = db.View(func(tx *bolt.Tx) error {
		root := tx.Bucket([]byte(BucketEvents))
		if root == nil {
			return nil
		}
		b := root.Bucket([]byte(platform))
		if b == nil {
			return nil
		}
		c := b.Cursor()
		for k, v := c.Last(); k != nil && (limit <= 0 || len(result) < limit); k, v = c.Prev() {
			var change inventory.StatusChange
			if err := json.Unmarshal(v, &change); err != nil {
				ui.Warning("Skipping corrupt event %x of %s: %v", k, platform, err)
				continue
			}
			result = append(result, change)
		}
		return nil
	})
	// reverse into chronological order
	for i, j := 0, len(result)-1; i < j; i, j = i+1, j-1 {
		result[i], result[j] = result[j], result[i]
	}
	return result, err
}
