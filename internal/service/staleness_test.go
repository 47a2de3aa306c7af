package service

import (
	"testing"
	"time"
)

func TestNeedsSyncForce(t *testing.T) {
	recent := time.Now().Add(-time.Minute)
	if !NeedsSync(&recent, true, 24*time.Hour) {
		t.Fatal("force must always sync")
	}
}

func TestNeedsSyncNeverSynced(t *testing.T) {
	if !NeedsSync(nil, false, 24*time.Hour) {
		t.Fatal("never-synced stock must sync")
	}
}

func TestNeedsSyncFresh(t *testing.T) {
	recent := time.Now().Add(-time.Hour)
	if NeedsSync(&recent, false, 24*time.Hour) {
		t.Fatal("fresh stock must not sync")
	}
}

func TestNeedsSyncStale(t *testing.T) {
	old := time.Now().Add(-25 * time.Hour)
	if !NeedsSync(&old, false, 24*time.Hour) {
		t.Fatal("stale stock must sync")
	}
}
