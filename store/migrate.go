package store

import (
	"bytes"
	"encoding/json"
	"log/slog"

	"go.etcd.io/bbolt"

	"github.com/geopulse/timeline/internal/timeline"
)

// Version 1 keyed records by their RFC 3339 start time alone.
const schemaVersion byte = 2

var keyVersion = []byte("version")

type rekey struct {
	oldKey []byte
	newKey []byte
	value  []byte
	id     string
}

// migrateRecords moves records stored under legacy keys to the current key
// scheme.
func migrateRecords(tx *bbolt.Tx) error {
	bucket := tx.Bucket([]byte(recordBucket))
	ids := tx.Bucket([]byte(idBucket))

	var pending []rekey

	cur := bucket.Cursor()

	for k, v := cur.First(); k != nil; k, v = cur.Next() {
		if bytes.IndexByte(k, keySeparator) >= 0 {
			continue
		}

		var r timeline.Record

		err := json.Unmarshal(v, &r)
		if err != nil {
			return err
		}

		span, err := timeline.NewSpan(&r)
		if err != nil {
			slog.Warn("dropping unreadable legacy record",
				slog.String("key", string(k)),
				slog.Any("error", err),
			)

			pending = append(pending, rekey{oldKey: bytes.Clone(k)})

			continue
		}

		ensureID(&r, span)

		value, err := json.Marshal(r)
		if err != nil {
			return err
		}

		pending = append(pending, rekey{
			oldKey: bytes.Clone(k),
			newKey: recordKey(span.Start, r.ID),
			value:  value,
			id:     r.ID,
		})
	}

	for _, p := range pending {
		if err := bucket.Delete(p.oldKey); err != nil {
			return err
		}

		if p.newKey == nil {
			continue
		}

		if err := bucket.Put(p.newKey, p.value); err != nil {
			return err
		}

		if err := ids.Put([]byte(p.id), p.newKey); err != nil {
			return err
		}
	}

	return nil
}

func (c *Client) migrate(tx *bbolt.Tx) error {
	meta := tx.Bucket([]byte(metaBucket))

	if v := meta.Get(keyVersion); len(v) == 1 && v[0] >= schemaVersion {
		return nil
	}

	err := migrateRecords(tx)
	if err != nil {
		return err
	}

	return meta.Put(keyVersion, []byte{schemaVersion})
}
