package session

import (
	"RestoPos/internal/database/model/pref"
	"strconv"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
)

const Namespace = "restopos_prefs"

const (
	keyToken    = "token"
	keyUserID   = "user_id"
	keyUserName = "user_name"
	keyRole     = "role"
)

type sqliteBackend struct {
	db        *sqlx.DB
	namespace string
}

// NewSQLite keeps the session under namespace in the Prefs table of db.
func NewSQLite(db *sqlx.DB, namespace string) Backend {
	if namespace == "" {
		namespace = Namespace
	}
	return &sqliteBackend{db: db, namespace: namespace}
}

func (b *sqliteBackend) Load() (Data, bool, error) {
	values, err := pref.SelectByNamespace(b.db, b.namespace)
	if err != nil {
		return Data{}, false, errors.Wrap(err, "failed to load session")
	}
	token := values[keyToken]
	if token == "" {
		return empty, false, nil
	}

	data := Data{
		Token:    token,
		UserID:   empty.UserID,
		UserName: values[keyUserName],
		Role:     values[keyRole],
	}
	if raw, ok := values[keyUserID]; ok {
		id, err := strconv.Atoi(raw)
		if err != nil {
			return Data{}, false, errors.Wrapf(err, "corrupt %s %q", keyUserID, raw)
		}
		data.UserID = id
	}
	return data, true, nil
}

func (b *sqliteBackend) Save(d Data) error {
	return pref.ReplaceNamespace(b.db, b.namespace, map[string]string{
		keyToken:    d.Token,
		keyUserID:   strconv.Itoa(d.UserID),
		keyUserName: d.UserName,
		keyRole:     d.Role,
	})
}

func (b *sqliteBackend) Clear() error {
	return pref.DeleteNamespace(b.db, b.namespace)
}
