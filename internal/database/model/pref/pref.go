package pref

import (
	"RestoPos/pkg/logging"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
)

// Pref is one key of a local key-value namespace.
type Pref struct {
	Namespace string `db:"Namespace"`
	Key       string `db:"Key"`
	Value     string `db:"Value"`
}

func SelectByNamespace(db *sqlx.DB, namespace string) (map[string]string, error) {
	logger := logging.GetLogger()
	logger.Debug("Start Pref.SelectByNamespace")
	defer logger.Debug("End Pref.SelectByNamespace")

	var rows []*Pref
	query := "SELECT * FROM Prefs WHERE Namespace=$1;"
	if err := db.Select(&rows, query, namespace); err != nil {
		return nil, errors.Wrapf(err, "failed SELECT to dbsqlite; query:\n%s(%s)", query, namespace)
	}

	result := make(map[string]string, len(rows))
	for _, row := range rows {
		result[row.Key] = row.Value
	}
	logger.Debugf("Количество полученных строк: %d", len(rows))
	return result, nil
}

// ReplaceNamespace writes values as the whole content of namespace in one
// transaction: either every key is replaced or none is.
func ReplaceNamespace(db *sqlx.DB, namespace string, values map[string]string) (err error) {
	logger := logging.GetLogger()
	logger.Debug("Start Pref.ReplaceNamespace")
	defer logger.Debug("End Pref.ReplaceNamespace")

	tx, err := db.Beginx()
	if err != nil {
		return errors.Wrap(err, "failed db.Beginx")
	}
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				logger.Errorf("failed tx.Rollback(), error: %v", rbErr)
			}
		}
	}()

	if _, err = tx.Exec("DELETE FROM Prefs WHERE Namespace=$1;", namespace); err != nil {
		return errors.Wrapf(err, "failed DELETE namespace %s", namespace)
	}
	for key, value := range values {
		_, err = tx.NamedExec("INSERT INTO Prefs (Namespace, Key, Value) VALUES (:Namespace, :Key, :Value);",
			&Pref{Namespace: namespace, Key: key, Value: value})
		if err != nil {
			return errors.Wrapf(err, "failed INSERT %s.%s", namespace, key)
		}
	}
	if err = tx.Commit(); err != nil {
		return errors.Wrap(err, "failed tx.Commit")
	}
	return nil
}

func DeleteNamespace(db *sqlx.DB, namespace string) error {
	logger := logging.GetLogger()
	logger.Debug("Start Pref.DeleteNamespace")
	defer logger.Debug("End Pref.DeleteNamespace")

	if _, err := db.Exec("DELETE FROM Prefs WHERE Namespace=$1;", namespace); err != nil {
		return errors.Wrapf(err, "failed DELETE namespace %s", namespace)
	}
	return nil
}
