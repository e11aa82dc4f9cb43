package nvstore

import (
	"encoding/binary"
	"fmt"
	"time"

	bolt "go.etcd.io/bbolt"
)

const bucketName = "rig_state"

// Slot key layout inside the bucket. One key per slot so that every write
// is a single-key transaction, which bbolt commits atomically.
func calKey(ch int) []byte   { return []byte(fmt.Sprintf("cal%d", ch)) }
func totalKey(ch int) []byte { return []byte(fmt.Sprintf("total%d", ch)) }
func runKey(ch int) []byte   { return []byte(fmt.Sprintf("run%d", ch)) }

var (
	relayCountKey = []byte("relay_count")
	blinkKey      = []byte("blink")
)

// Bolt is the on-disk Store, backed by a bbolt file. It satisfies the
// crash-atomic-per-slot contract: each Set* runs in its own write
// transaction, and a torn write can only lose that one slot.
type Bolt struct {
	db *bolt.DB
}

// OpenBolt opens (creating if necessary) the store file at path.
func OpenBolt(path string) (*Bolt, error) {
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("open store %s: %w", path, err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucketName))
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("create bucket: %w", err)
	}
	return &Bolt{db: db}, nil
}

func (s *Bolt) Close() error { return s.db.Close() }

// get returns the raw slot bytes and whether the slot exists.
func (s *Bolt) get(key []byte) ([]byte, bool) {
	var out []byte
	s.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket([]byte(bucketName)).Get(key)
		if v != nil {
			out = append(out, v...)
		}
		return nil
	})
	return out, out != nil
}

func (s *Bolt) put(key, val []byte) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(bucketName)).Put(key, val)
	})
}

func (s *Bolt) Calibration(ch int) uint8 {
	checkChannel(ch)
	v, ok := s.get(calKey(ch))
	if !ok || len(v) != 1 {
		return clampCalibration(0, false)
	}
	return clampCalibration(v[0], true)
}

func (s *Bolt) SetCalibration(ch int, percent uint8) error {
	checkChannel(ch)
	return s.put(calKey(ch), []byte{percent})
}

func (s *Bolt) TotalSeconds(ch int) uint32 {
	checkChannel(ch)
	v, ok := s.get(totalKey(ch))
	if !ok || len(v) != 4 {
		return 0
	}
	return binary.BigEndian.Uint32(v)
}

func (s *Bolt) SetTotalSeconds(ch int, secs uint32) error {
	checkChannel(ch)
	var buf [4]byte
	binary.BigEndian.PutUint32(buf[:], secs)
	return s.put(totalKey(ch), buf[:])
}

func (s *Bolt) RunningFlag(ch int) bool {
	checkChannel(ch)
	v, ok := s.get(runKey(ch))
	return ok && len(v) == 1 && v[0] == 1
}

func (s *Bolt) SetRunningFlag(ch int, on bool) error {
	checkChannel(ch)
	return s.put(runKey(ch), []byte{flagByte(on)})
}

func (s *Bolt) RelayCount() uint32 {
	v, ok := s.get(relayCountKey)
	if !ok || len(v) != 4 {
		return 0
	}
	return binary.BigEndian.Uint32(v)
}

func (s *Bolt) SetRelayCount(n uint32) error {
	var buf [4]byte
	binary.BigEndian.PutUint32(buf[:], n)
	return s.put(relayCountKey, buf[:])
}

func (s *Bolt) BlinkFlag() bool {
	v, ok := s.get(blinkKey)
	return ok && len(v) == 1 && v[0] == 1
}

func (s *Bolt) SetBlinkFlag(on bool) error {
	return s.put(blinkKey, []byte{flagByte(on)})
}

func flagByte(on bool) byte {
	if on {
		return 1
	}
	return 0
}
