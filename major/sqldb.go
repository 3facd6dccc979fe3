package major

import (
	"database/sql"
	"fmt"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"push-fanout-service/conf"
)

var (
	db    *gorm.DB
	sqlDB *sql.DB
)

// InitSqlConfig opens the relational store holding accounts and
// notification subscriptions. The pool limits come from conf.
func InitSqlConfig() {
	dsn := conf.RdsDsn
	gdb, err := gorm.Open(mysql.Open(dsn), &gorm.Config{})
	if err != nil {
		panic(fmt.Errorf("DB init error %s", err.Error()))
	}
	sqlDB, err = gdb.DB()
	if err != nil {
		panic(fmt.Errorf("sqlDB error %s", err.Error()))
	}
	sqlDB.SetMaxOpenConns(conf.RdsMaxOpenConns)
	sqlDB.SetMaxIdleConns(conf.RdsMaxIdleConns)
	db = gdb
}

func GetSqlDB() *gorm.DB {
	if db != nil {
		return db
	}
	return nil
}
