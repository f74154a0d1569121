/*
Package boltstore provides an implementation of tree.ModelStore that
keeps classifier trees in their textual form on a bolt database file.
*/
package boltstore

import (
	"bytes"
	"context"
	"fmt"

	"arbor/tree"
	"arbor/tree/text"
	bolt "go.etcd.io/bbolt"
)

var modelsBucket = []byte("models")

type boltStore struct {
	db *bolt.DB
}

/*
Open takes a path, opens or creates a bolt database file on it and
returns a tree.ModelStore that keeps every tree in its textual form
under its name on a models bucket, or an error if the database cannot
be opened or the bucket prepared.
*/
func Open(path string) (tree.ModelStore, error) {
	db, err := bolt.Open(path, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("opening bolt db at %s: %v", path, err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(modelsBucket)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("preparing bolt db at %s: %v", path, err)
	}
	return &boltStore{db}, nil
}

func (bs *boltStore) Save(ctx context.Context, name string, t *tree.Tree) error {
	var buf bytes.Buffer
	err := text.Write(ctx, t, &buf)
	if err != nil {
		return fmt.Errorf("saving model %q: encoding tree: %v", name, err)
	}
	err = bs.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(modelsBucket).Put([]byte(name), buf.Bytes())
	})
	if err != nil {
		return fmt.Errorf("saving model %q in bolt db: %v", name, err)
	}
	return nil
}

func (bs *boltStore) Load(ctx context.Context, name string) (*tree.Tree, error) {
	var t *tree.Tree
	err := bs.db.View(func(tx *bolt.Tx) error {
		data := tx.Bucket(modelsBucket).Get([]byte(name))
		if data == nil {
			return nil
		}
		var err error
		t, err = text.Read(ctx, bytes.NewReader(data))
		if err != nil {
			return fmt.Errorf("decoding tree: %v", err)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("loading model %q from bolt db: %v", name, err)
	}
	return t, nil
}

func (bs *boltStore) Delete(ctx context.Context, name string) error {
	err := bs.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(modelsBucket).Delete([]byte(name))
	})
	if err != nil {
		return fmt.Errorf("deleting model %q from bolt db: %v", name, err)
	}
	return nil
}

func (bs *boltStore) Close(ctx context.Context) error {
	return bs.db.Close()
}
