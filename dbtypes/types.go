// dbtypes is a package that contains types used by the database driver packages
package dbtypes

import (
	"time"

	"github.com/cccteam/ccc"
)

type Session struct {
	ID          ccc.UUID  `spanner:"Id"          db:"Id"`
	Username    string    `spanner:"Username"    db:"Username"`
	BearerToken string    `spanner:"BearerToken" db:"BearerToken"`
	CreatedAt   time.Time `spanner:"CreatedAt"   db:"CreatedAt"`
	UpdatedAt   time.Time `spanner:"UpdatedAt"   db:"UpdatedAt"`
	Expired     bool      `spanner:"Expired"     db:"Expired"`
}

type InsertSession struct {
	Username    string    `spanner:"Username"    db:"Username"`
	BearerToken string    `spanner:"BearerToken" db:"BearerToken"`
	CreatedAt   time.Time `spanner:"CreatedAt"   db:"CreatedAt"`
	UpdatedAt   time.Time `spanner:"UpdatedAt"   db:"UpdatedAt"`
	Expired     bool      `spanner:"Expired"     db:"Expired"`
}
