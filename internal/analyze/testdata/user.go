package models

import (
	"time"

	uuidpkg "github.com/google/uuid"
)

//wither:generate
type User struct {
	ID        uuidpkg.UUID
	Name      string            `wither:"readonly"`
	Email     string
	CreatedAt time.Time         `wither:"default=time.Now()"`
	cache     map[string]string `wither:"-"`
	nick      string
}

func (u User) Greeting() string { return "hi " + u.Name + u.nick }

// Account is shared.
//
//wither:generate ref
type Account struct {
	Owner   *User
	Balance int64
}

//wither:generate final
type Session[T any] struct {
	Data T
}

type Ignored struct{ A int }

const Version = "1"
