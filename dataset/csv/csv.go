/*
Package csv provides methods to read datasets of labeled examples
from CSV streams and files.
*/
package csv

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"arbor/dataset"
	"arbor/feature"
)

/*
ReadDataset takes an io.Reader for a CSV stream, a slice with the
names of the feature columns and the name of the label column and
returns a dataset with the examples parsed from the reader or an
error.

The header or first row of the CSV content is expected to contain the
name of every given feature and the label column. The rest of the rows
should consist of float64 values for the feature columns and any text
for the label column.
*/
func ReadDataset(reader io.Reader, features []string, label string) (dataset.Dataset, error) {
	examples := []dataset.Example{}
	err := ReadDatasetByExample(reader, features, label, func(_ int, e dataset.Example) (bool, error) {
		examples = append(examples, e)
		return true, nil
	})
	if err != nil {
		return nil, err
	}
	return dataset.New(examples), nil
}

/*
ReadDatasetByExample takes an io.Reader for a CSV stream, a slice with
the names of the feature columns, the name of the label column and a
lambda function on an integer and a dataset.Example that returns a
boolean value. It parses the examples from the reader and for each it
calls the lambda function with the example and its index as
parameters. If the lambda function returns true, it will continue
processing the next example, otherwise it will stop. An error is
returned if something goes wrong when reading the stream or parsing an
example.
*/
func ReadDatasetByExample(reader io.Reader, features []string, label string, lambda func(int, dataset.Example) (bool, error)) error {
	r := csv.NewReader(reader)
	header, err := r.Read()
	if err != nil {
		return fmt.Errorf("reading header: %v", err)
	}
	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[name] = i
	}
	labelColumn, ok := columns[label]
	if !ok {
		return fmt.Errorf("label column %q is not on the CSV header", label)
	}
	for _, f := range features {
		if _, ok := columns[f]; !ok {
			return fmt.Errorf("feature column %q is not on the CSV header", f)
		}
	}
	for l := 2; ; l++ {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("reading body: %v", err)
		}
		e, err := parseExampleFromCSVRow(row, columns, features, labelColumn)
		if err != nil {
			return fmt.Errorf("parsing line %d: %v", l, err)
		}
		ok, err := lambda(l-2, e)
		if err != nil {
			return err
		}
		if !ok {
			break
		}
	}
	return nil
}

/*
ReadDatasetFromFilePath takes a filepath string, a slice with the
names of the feature columns and the name of the label column, opens
the file the filepath points to (os.Stdin if it is empty) and uses
ReadDataset to return a dataset read from it or an error.
*/
func ReadDatasetFromFilePath(filepath string, features []string, label string) (dataset.Dataset, error) {
	var f *os.File
	var err error
	if filepath == "" {
		f = os.Stdin
	} else {
		f, err = os.Open(filepath)
		if err != nil {
			return nil, fmt.Errorf("reading dataset: %v", err)
		}
		defer f.Close()
	}
	ds, err := ReadDataset(f, features, label)
	if err != nil {
		err = fmt.Errorf("parsing CSV file %s: %v", filepath, err)
	}
	return ds, err
}

func parseExampleFromCSVRow(row []string, columns map[string]int, features []string, labelColumn int) (dataset.Example, error) {
	if labelColumn >= len(row) {
		return dataset.Example{}, fmt.Errorf("row has no label column")
	}
	values := make(map[string]float64, len(features))
	for _, f := range features {
		column := columns[f]
		if column >= len(row) {
			return dataset.Example{}, fmt.Errorf("row has no column for feature %q", f)
		}
		v, err := strconv.ParseFloat(row[column], 64)
		if err != nil {
			return dataset.Example{}, fmt.Errorf("parsing value %q for feature %q: %v", row[column], f, err)
		}
		values[f] = v
	}
	return dataset.Example{Vector: feature.NewVector(values), Label: row[labelColumn]}, nil
}
