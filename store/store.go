// Package store keeps imported timeline records in a local BoltDB database
package store

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/geopulse/timeline/internal/osutil"
	"github.com/geopulse/timeline/internal/timeline"
	"github.com/geopulse/timeline/internal/timeutil"
)

const (
	recordBucket = "records"
	idBucket     = "ids"
	metaBucket   = "meta"

	keySeparator = '/'
)

var errDBLocked = errors.New(
	"the record database is locked: is another timeline command running?",
)

// Client is a BoltDB database client.
type Client struct {
	*bolt.DB
	// lookback bounds how long before a query window a record may start and
	// still be returned.
	lookback time.Duration
}

// recordKey orders records by start instant. The id keeps keys unique when
// records start at the same instant.
func recordKey(start time.Time, id string) []byte {
	k := timeutil.ToKey(start)
	k = append(k, keySeparator)

	return append(k, id...)
}

// ensureID names records imported without an id after their kind and start.
func ensureID(r *timeline.Record, span timeutil.Span) {
	if r.ID == "" {
		r.ID = fmt.Sprintf("%s-%d", r.SpanKind(), span.Start.UnixNano())
	}
}

// PutRecords stores the records, replacing any stored record with the same
// id. Malformed records are skipped. It returns the number of records
// stored.
func (c *Client) PutRecords(records []timeline.Record) (int, error) {
	var stored int

	err := c.Update(func(tx *bolt.Tx) error {
		rb := tx.Bucket([]byte(recordBucket))
		ib := tx.Bucket([]byte(idBucket))

		for i := range records {
			r := records[i]

			span, err := timeline.NewSpan(&r)
			if err != nil {
				if errors.Is(err, timeline.ErrUnknownKind) {
					return err
				}

				slog.Warn("skipping record on import",
					slog.String("id", r.ID),
					slog.Any("error", err),
				)

				continue
			}

			ensureID(&r, span)

			key := recordKey(span.Start, r.ID)

			if old := ib.Get([]byte(r.ID)); old != nil && !bytes.Equal(old, key) {
				if err := rb.Delete(old); err != nil {
					return err
				}
			}

			value, err := json.Marshal(r)
			if err != nil {
				return err
			}

			if err := rb.Put(key, value); err != nil {
				return err
			}

			if err := ib.Put([]byte(r.ID), key); err != nil {
				return err
			}

			stored++
		}

		return nil
	})

	return stored, err
}

// GetRecords returns the records overlapping [start, end) in order of their
// start instant. A zero start means no lower bound.
func (c *Client) GetRecords(start, end time.Time) ([]timeline.Record, error) {
	var records []timeline.Record

	err := c.View(func(tx *bolt.Tx) error {
		cur := tx.Bucket([]byte(recordBucket)).Cursor()

		var k, v []byte
		if start.IsZero() {
			k, v = cur.First()
		} else {
			k, v = cur.Seek(timeutil.ToKey(start.Add(-c.lookback)))
		}

		max := timeutil.ToKey(end)

		for ; k != nil && bytes.Compare(k, max) < 0; k, v = cur.Next() {
			var r timeline.Record

			if err := json.Unmarshal(v, &r); err != nil {
				return err
			}

			span, err := timeline.NewSpan(&r)
			if err != nil {
				continue
			}

			if !start.IsZero() && !reaches(span, start) {
				continue
			}

			records = append(records, r)
		}

		return nil
	})

	return records, err
}

// reaches reports whether the span extends to or past t. The end of a span
// is exclusive unless the span is empty.
func reaches(s timeutil.Span, t time.Time) bool {
	if s.End.After(s.Start) {
		return s.End.After(t)
	}

	return !s.Start.Before(t)
}

// DeleteRecords removes the records with the given ids.
func (c *Client) DeleteRecords(ids []string) error {
	return c.Update(func(tx *bolt.Tx) error {
		rb := tx.Bucket([]byte(recordBucket))
		ib := tx.Bucket([]byte(idBucket))

		for _, id := range ids {
			key := ib.Get([]byte(id))
			if key == nil {
				continue
			}

			if err := rb.Delete(key); err != nil {
				return err
			}

			if err := ib.Delete([]byte(id)); err != nil {
				return err
			}
		}

		return nil
	})
}

// FirstStart returns the start instant of the earliest stored record.
func (c *Client) FirstStart() (time.Time, error) {
	var first time.Time

	err := c.View(func(tx *bolt.Tx) error {
		k, _ := tx.Bucket([]byte(recordBucket)).Cursor().First()
		if k == nil {
			return nil
		}

		i := bytes.IndexByte(k, keySeparator)
		if i < 0 {
			return fmt.Errorf("malformed record key %q", k)
		}

		var err error

		first, err = time.Parse(time.RFC3339Nano, string(k[:i]))

		return err
	})

	return first, err
}

// Count returns the number of stored records.
func (c *Client) Count() (int, error) {
	var n int

	err := c.View(func(tx *bolt.Tx) error {
		n = tx.Bucket([]byte(recordBucket)).Stats().KeyN
		return nil
	})

	return n, err
}

// openDB creates or opens a database and locks it.
func openDB(pathToDB string) (*bolt.DB, error) {
	var fileMode fs.FileMode = osutil.FilePermission

	db, err := bolt.Open(
		pathToDB,
		fileMode,
		&bolt.Options{Timeout: 1 * time.Second},
	)
	if err != nil {
		if errors.Is(err, bolt.ErrDatabaseOpen) ||
			errors.Is(err, bolt.ErrTimeout) {
			return nil, errDBLocked
		}

		return nil, err
	}

	return db, nil
}

// NewClient returns a wrapper to a BoltDB connection.
func NewClient(dbPath string, lookback time.Duration) (*Client, error) {
	db, err := openDB(dbPath)
	if err != nil {
		return nil, err
	}

	c := &Client{
		DB:       db,
		lookback: lookback,
	}

	// Create the necessary buckets for storing data if they do not exist already
	err = db.Update(func(tx *bolt.Tx) error {
		for _, name := range []string{recordBucket, idBucket, metaBucket} {
			if _, err := tx.CreateBucketIfNotExists([]byte(name)); err != nil {
				return err
			}
		}

		return c.migrate(tx)
	})
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	return c, nil
}
