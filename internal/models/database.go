package models

import (
	"errors"
	"fmt"
)

var ErrNegativeARB = errors.New("negative arb index")

// Database is the remote document keyed by device model (ro.product.model).
type Database map[string]DeviceRecord

type DeviceRecord struct {
	DeviceName string                   `json:"device_name"`
	Versions   map[string]VersionRecord `json:"versions"`
}

type VersionRecord struct {
	ARB     int      `json:"arb"`
	Regions []string `json:"regions"`
	Status  string   `json:"status"`
	MD5     *string  `json:"md5"`
}

// Fused reports whether this build bumped the anti-rollback fuse.
func (v VersionRecord) Fused() bool {
	return v.ARB > 0
}

// Checksum returns the md5 or "" when the database has none.
func (v VersionRecord) Checksum() string {
	if v.MD5 == nil {
		return ""
	}
	return *v.MD5
}

// Validate rejects records the matcher cannot reason about.
func (db Database) Validate() error {
	for model, dev := range db {
		for key, ver := range dev.Versions {
			if ver.ARB < 0 {
				return fmt.Errorf("%s/%s: %w (%d)", model, key, ErrNegativeARB, ver.ARB)
			}
		}
	}
	return nil
}
