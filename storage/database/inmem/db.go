package inmemdb

import (
	"sync"
	"time"

	"github.com/alassafsami695-wq/graduation-project-main-sub001/core"
)

type (
	DB struct {
		session *sessionTable
	}

	sessionRow struct {
		sess      core.Session
		expiresAt time.Time // zero means no expiry
	}

	sessionTable struct {
		t     map[string]sessionRow
		mutex sync.RWMutex
	}
)

func Open() *DB {
	return &DB{
		session: &sessionTable{t: make(map[string]sessionRow)},
	}
}
