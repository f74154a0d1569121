/*
Package sqldataset provides an implementation of dataset.Dataset with
a SQL database backend. The specifics of each database engine are
abstracted behind the Adapter interface, implemented for SQLite3 files
by the sqlite3adapter subpackage and for PostgreSQL databases by the
pgadapter subpackage.
*/
package sqldataset

import (
	"context"
	"fmt"

	"arbor/dataset"
	"arbor/feature"
)

/*
Adapter is an interface providing the methods needed to implement a
Dataset with a database backend.

Its ColumnName method takes the name of a feature or label and returns
the database column for it, or an error if it cannot be used as a
column on the backend.

Its IterateOnExamples method runs the given lambda function on every
row of the examples table with the given feature and label columns,
passing the row index, the feature values and the label, until the
rows run out or the lambda returns false or an error.

Its CountExamples method returns the number of rows on the examples
table.
*/
type Adapter interface {
	ColumnName(string) (string, error)
	IterateOnExamples(ctx context.Context, featureColumns []string, labelColumn string, lambda func(int, map[string]float64, string) (bool, error)) error
	CountExamples(ctx context.Context) (int, error)
}

type sqlDataset struct {
	db             Adapter
	features       []string
	featureColumns []string
	labelColumn    string
	count          *int
}

/*
Open takes an Adapter to a db backend, a slice with the names of the
features and the name of the label and returns a dataset.Dataset
backed by the given adapter or an error if a feature or label name
cannot be mapped to a column on the backend.
This function expects the adapter's examples table to already exist.
*/
func Open(ctx context.Context, dbAdapter Adapter, features []string, label string) (dataset.Dataset, error) {
	featureColumns := make([]string, len(features))
	for i, f := range features {
		c, err := dbAdapter.ColumnName(f)
		if err != nil {
			return nil, fmt.Errorf("opening sql dataset: %v", err)
		}
		featureColumns[i] = c
	}
	labelColumn, err := dbAdapter.ColumnName(label)
	if err != nil {
		return nil, fmt.Errorf("opening sql dataset: %v", err)
	}
	return &sqlDataset{db: dbAdapter, features: features, featureColumns: featureColumns, labelColumn: labelColumn}, nil
}

func (sds *sqlDataset) Count(ctx context.Context) (int, error) {
	if sds.count != nil {
		return *sds.count, nil
	}
	count, err := sds.db.CountExamples(ctx)
	if err != nil {
		return 0, err
	}
	sds.count = &count
	return count, nil
}

func (sds *sqlDataset) Examples(ctx context.Context) ([]dataset.Example, error) {
	var examples []dataset.Example
	err := sds.db.IterateOnExamples(ctx, sds.featureColumns, sds.labelColumn, func(_ int, values map[string]float64, label string) (bool, error) {
		featureValues := make(map[string]float64, len(sds.features))
		for i, f := range sds.features {
			v, ok := values[sds.featureColumns[i]]
			if !ok {
				return false, fmt.Errorf("example defines no value for feature %q", f)
			}
			featureValues[f] = v
		}
		examples = append(examples, dataset.Example{Vector: feature.NewVector(featureValues), Label: label})
		return true, nil
	})
	if err != nil {
		return nil, fmt.Errorf("reading examples from sql dataset: %v", err)
	}
	return examples, nil
}
