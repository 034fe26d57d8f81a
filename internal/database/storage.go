package database

const DB_NAME = "restopos.db"

const SCHEMA_VERSION = 1

const DB_SCHEMA = `CREATE TABLE IF NOT EXISTS Version (
	ID integer PRIMARY KEY AUTOINCREMENT,
	Name text UNIQUE,
	Version integer
);

CREATE TABLE IF NOT EXISTS Prefs (
	Namespace text NOT NULL,
	Key text NOT NULL,
	Value text,
	PRIMARY KEY (Namespace, Key)
);
`
