package data

import (
	"log"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

// MustDB opens the relational store. A MySQL DSN takes precedence;
// otherwise a local SQLite file is used.
func MustDB(mysqlDSN, sqlitePath string) *gorm.DB {
	var (
		db  *gorm.DB
		err error
	)
	cfg := &gorm.Config{TranslateError: true}
	if mysqlDSN != "" {
		db, err = gorm.Open(mysql.Open(mysqlDSN), cfg)
	} else {
		db, err = gorm.Open(sqlite.Open(sqlitePath), cfg)
	}
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	return db
}
