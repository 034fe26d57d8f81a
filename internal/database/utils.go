package database

import (
	"RestoPos/pkg/logging"
	"os"
	"path/filepath"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"
)

func Exists(name string) bool {
	if _, err := os.Stat(name); err != nil {
		if os.IsNotExist(err) {
			return false
		}
	}
	return true
}

func CreateDB(dbname string) error {

	logger := logging.GetLogger()
	logger.Debug("CreateDB:>Start")
	defer logger.Debug("CreateDB:>End")

	logger.Info("CreateDB:>Creating ", dbname)

	if dir := filepath.Dir(dbname); dir != "." {
		if err := os.MkdirAll(dir, 0770); err != nil {
			return errors.Wrapf(err, "failed os.MkdirAll(%s)", dir)
		}
	}

	db, err := sqlx.Open("sqlite3", dbname)
	if err != nil {
		return errors.Wrapf(err, "failed sqlx.Open(%s)", dbname)
	}
	defer func(db *sqlx.DB) {
		err := db.Close()
		if err != nil {
			logger.Error(err)
		}
	}(db)

	if err := migrate(db); err != nil {
		return err
	}

	logger.Info(dbname, " created")
	return nil
}

// Open connects to dbname, creating the file and schema when missing.
func Open(dbname string) (*sqlx.DB, error) {
	logger := logging.GetLogger()
	logger.Debug("Open:>Start")
	defer logger.Debug("Open:>End")

	if !Exists(dbname) {
		logger.Info(dbname, " not exist")
		if err := CreateDB(dbname); err != nil {
			return nil, err
		}
	}

	db, err := sqlx.Connect("sqlite3", dbname)
	if err != nil {
		return nil, errors.Wrapf(err, "failed sqlx.Connect(%s)", dbname)
	}
	// sqlite allows one writer at a time
	db.SetMaxOpenConns(1)

	if err := migrate(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

func migrate(db *sqlx.DB) error {
	if _, err := db.Exec(DB_SCHEMA); err != nil {
		return errors.Wrap(err, "failed to apply DB_SCHEMA")
	}

	var v Version
	err := db.Get(&v, "SELECT * FROM Version WHERE Name=$1;", "schema")
	if err == nil && v.Version >= SCHEMA_VERSION {
		return nil
	}
	_, err = db.Exec(`INSERT INTO Version (Name, Version) VALUES ($1, $2)
		ON CONFLICT(Name) DO UPDATE SET Version=excluded.Version;`, "schema", SCHEMA_VERSION)
	if err != nil {
		return errors.Wrap(err, "failed to store schema version")
	}
	return nil
}
