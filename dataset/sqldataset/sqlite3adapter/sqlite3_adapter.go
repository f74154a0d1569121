/*
Package sqlite3adapter provides an implementation of
sqldataset.Adapter with an SQLite3 database file as backend.
*/
package sqlite3adapter

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	// Import of sqlite3 driver
	_ "github.com/mattn/go-sqlite3"

	"arbor/dataset/sqldataset"
)

const examplesTableName = "examples"

type adapter struct {
	db *sql.DB
}

/*
New takes a path to an SQLite3 database file and a maximum number of
open connections (0 meaning no limit) and returns an
sqldataset.Adapter that works on the file's database or an error if
it fails to open as an sqlite3 database.
*/
func New(path string, maxConns int) (sqldataset.Adapter, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite3 database at %s: %v", path, err)
	}
	if maxConns > 0 {
		db.SetMaxOpenConns(maxConns)
	}
	return &adapter{db}, nil
}

func (a *adapter) ColumnName(name string) (string, error) {
	if name == "id" {
		return "", fmt.Errorf("%q is reserved and cannot be used as a feature or label name", name)
	}
	if strings.ContainsAny(name, `"`) {
		return "", fmt.Errorf(`feature or label name %q contains invalid character '"'`, name)
	}
	return name, nil
}

func (a *adapter) CountExamples(ctx context.Context) (int, error) {
	var count int
	err := a.db.QueryRowContext(ctx, fmt.Sprintf("SELECT COUNT(*) FROM %s", examplesTableName)).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("counting examples: %v", err)
	}
	return count, nil
}

func (a *adapter) IterateOnExamples(ctx context.Context, featureColumns []string, labelColumn string, lambda func(int, map[string]float64, string) (bool, error)) error {
	columns := make([]string, 0, len(featureColumns)+1)
	for _, c := range featureColumns {
		columns = append(columns, fmt.Sprintf("%q", c))
	}
	columns = append(columns, fmt.Sprintf("%q", labelColumn))
	query := fmt.Sprintf("SELECT %s FROM %s ORDER BY id", strings.Join(columns, ", "), examplesTableName)
	rows, err := a.db.QueryContext(ctx, query)
	if err != nil {
		return fmt.Errorf("querying examples: %v", err)
	}
	defer rows.Close()
	for i := 0; rows.Next(); i++ {
		values := make([]float64, len(featureColumns))
		var label string
		dest := make([]interface{}, 0, len(featureColumns)+1)
		for j := range values {
			dest = append(dest, &values[j])
		}
		dest = append(dest, &label)
		err = rows.Scan(dest...)
		if err != nil {
			return fmt.Errorf("scanning example %d: %v", i, err)
		}
		featureValues := make(map[string]float64, len(featureColumns))
		for j, c := range featureColumns {
			featureValues[c] = values[j]
		}
		ok, err := lambda(i, featureValues, label)
		if err != nil {
			return err
		}
		if !ok {
			break
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterating on examples: %v", err)
	}
	return nil
}
