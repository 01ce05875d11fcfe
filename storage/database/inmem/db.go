package inmemdb

import (
	"sync"

	"github.com/campushq/eventsync/core/event"
	"github.com/campushq/eventsync/core/notice"
	"github.com/campushq/eventsync/core/teacher"
	"github.com/campushq/eventsync/core/user"
)

// DB is an in-memory stand-in for the document store; used in tests and
// for running the API without Postgres.
type (
	DB struct {
		user    *userTable
		revoked *revokedTokenTable
		event   *eventTable
		notice  *noticeTable
		teacher *teacherTable
	}

	userTable struct {
		table map[string]*user.User
		mutex sync.RWMutex
	}

	revokedTokenTable struct {
		table map[string]user.RevokedToken
		mutex sync.RWMutex
	}

	eventTable struct {
		table map[string]*event.Event
		mutex sync.RWMutex
	}

	noticeTable struct {
		table map[string]*notice.Notice
		mutex sync.RWMutex
	}

	teacherTable struct {
		table map[string]*teacher.Teacher
		mutex sync.RWMutex
	}
)

func Open() *DB {
	return &DB{
		user:    &userTable{table: make(map[string]*user.User)},
		revoked: &revokedTokenTable{table: make(map[string]user.RevokedToken)},
		event:   &eventTable{table: make(map[string]*event.Event)},
		notice:  &noticeTable{table: make(map[string]*notice.Notice)},
		teacher: &teacherTable{table: make(map[string]*teacher.Teacher)},
	}
}
