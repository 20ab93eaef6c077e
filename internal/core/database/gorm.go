package database

import (
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
)

var ErrUnsupportedDriver = gorm.ErrInvalidDB

type Opts struct {
	Driver             string
	DSN                string
	Username           string
	Password           string
	MaxOpenConns       int
	MaxIdleConns       int
	ConnMaxLifetimeMin int
	LogLevel           string
}

func NewGorm(o Opts) (*gorm.DB, error) {
	var dial gorm.Dialector
	switch o.Driver {
	case "postgres":
		dial = postgres.Open(o.DSN)
	case "mysql":
		dial = mysql.Open(normalizeMySQLDSN(o.DSN, o.Username, o.Password))
	default:
		return nil, ErrUnsupportedDriver
	}

	lvl := logger.Warn
	switch o.LogLevel {
	case "silent":
		lvl = logger.Silent
	case "error":
		lvl = logger.Error
	case "info":
		lvl = logger.Info
	}

	db, err := gorm.Open(dial, &gorm.Config{
		Logger: logger.Default.LogMode(lvl),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(o.MaxOpenConns)
	sqlDB.SetMaxIdleConns(o.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(time.Duration(o.ConnMaxLifetimeMin) * time.Minute)

	return db.Session(&gorm.Session{
		PrepareStmt:            true,
		SkipDefaultTransaction: true, // 单条读写为主，需要 Tx 再手动开
	}), nil
}

// normalizeMySQLDSN 兼容从旧配置迁移过来的 jdbc 风格 DSN
func normalizeMySQLDSN(input, user, pass string) string {
	in := strings.TrimSpace(input)
	in = strings.TrimPrefix(in, "jdbc:")
	if !strings.HasPrefix(in, "mysql://") {
		return in // 已经是 go-sql-driver 语法，不动
	}
	in = strings.TrimPrefix(in, "mysql://")

	hostport := in
	dbAndQuery := ""
	if i := strings.IndexByte(in, '/'); i >= 0 {
		hostport, dbAndQuery = in[:i], in[i+1:]
	}
	if at := strings.LastIndexByte(hostport, '@'); at >= 0 {
		cred := hostport[:at]
		hostport = hostport[at+1:]
		if user == "" {
			if c := strings.IndexByte(cred, ':'); c >= 0 {
				user, pass = cred[:c], cred[c+1:]
			} else {
				user = cred
			}
		}
	}

	dbname, query := dbAndQuery, ""
	if i := strings.IndexByte(dbAndQuery, '?'); i >= 0 {
		dbname, query = dbAndQuery[:i], dbAndQuery[i+1:]
	}
	if !strings.Contains(query, "parseTime") {
		if query != "" {
			query += "&"
		}
		query += "parseTime=true&charset=utf8mb4"
	}

	cred := user
	if pass != "" {
		cred += ":" + pass
	}
	if cred != "" {
		cred += "@"
	}
	return cred + "tcp(" + hostport + ")/" + dbname + "?" + query
}
