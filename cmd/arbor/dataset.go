package main

import (
	"context"
	"fmt"
	"strings"

	"arbor/dataset"
	"arbor/dataset/csv"
	"arbor/dataset/mongodataset"
	"arbor/dataset/sqldataset"
	"arbor/dataset/sqldataset/pgadapter"
	"arbor/dataset/sqldataset/sqlite3adapter"
	"arbor/feature/yaml"
	mgo "gopkg.in/mgo.v2"
)

// readDataset routes the input flag to the right dataset backend: a
// PostgreSQL connection URL, a MongoDB connection URL, an SQLite3
// .db file, a CSV file path or STDIN when empty.
func (rcc *rootCmdConfig) readDataset(ctx context.Context, input string, metadata *yaml.Metadata) (dataset.Dataset, error) {
	switch {
	case strings.HasPrefix(input, "postgresql://"):
		rcc.Logf("Creating PostgreSQL adapter for url %s to read examples...", input)
		adapter, err := pgadapter.New(input)
		if err != nil {
			return nil, err
		}
		return sqldataset.Open(ctx, adapter, metadata.Features, metadata.Label)
	case strings.HasPrefix(input, "mongodb://"):
		rcc.Logf("Dialing MongoDB at %s to read examples...", input)
		session, err := mgo.Dial(input)
		if err != nil {
			return nil, fmt.Errorf("dialing mongodb at %s: %v", input, err)
		}
		return mongodataset.Open(ctx, session, metadata.Features, metadata.Label)
	case strings.HasSuffix(input, ".db"):
		rcc.Logf("Creating SQLite3 adapter for file %s to read examples...", input)
		adapter, err := sqlite3adapter.New(input, 0)
		if err != nil {
			return nil, err
		}
		return sqldataset.Open(ctx, adapter, metadata.Features, metadata.Label)
	case input == "":
		rcc.Logf("Reading examples from STDIN as CSV...")
	default:
		rcc.Logf("Opening %s to read examples as CSV...", input)
	}
	return csv.ReadDatasetFromFilePath(input, metadata.Features, metadata.Label)
}
