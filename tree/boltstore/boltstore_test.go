package boltstore_test

import (
	"context"
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"arbor/feature"
	"arbor/tree"
	"arbor/tree/boltstore"
)

func openTestStore(t *testing.T) tree.ModelStore {
	t.Helper()
	dir, err := ioutil.TempDir("", "boltstore")
	if err != nil {
		t.Fatalf("creating temp dir: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(dir) })
	store, err := boltstore.Open(filepath.Join(dir, "models.db"))
	if err != nil {
		t.Fatalf("opening bolt store: %v", err)
	}
	t.Cleanup(func() { store.Close(context.Background()) })
	return store
}

func TestBoltStoreSaveAndLoad(t *testing.T) {
	t.Parallel()
	store := openTestStore(t)
	ctx := context.Background()
	original, err := tree.Grow([]feature.Vector{
		feature.NewVector(map[string]float64{"weight": 5.0}),
		feature.NewVector(map[string]float64{"weight": 9.0}),
	}, []string{"cat", "dog"})
	if err != nil {
		t.Fatalf("growing tree: %v", err)
	}
	if err := store.Save(ctx, "animals", original); err != nil {
		t.Fatalf("saving model: %v", err)
	}
	restored, err := store.Load(ctx, "animals")
	if err != nil {
		t.Fatalf("loading model: %v", err)
	}
	if restored == nil {
		t.Fatal("loading model, got nil, expected the saved tree")
	}
	label, err := restored.Classify(feature.NewVector(map[string]float64{"weight": 6.0}))
	if err != nil {
		t.Fatalf("classifying with restored tree: %v", err)
	}
	if label != "cat" {
		t.Errorf("label, got: %q, expected: %q", label, "cat")
	}
}

func TestBoltStoreLoadMissingModel(t *testing.T) {
	t.Parallel()
	store := openTestStore(t)
	restored, err := store.Load(context.Background(), "missing")
	if err != nil {
		t.Fatalf("loading missing model: %v", err)
	}
	if restored != nil {
		t.Errorf("loading missing model, got %v, expected nil", restored)
	}
}

func TestBoltStoreDelete(t *testing.T) {
	t.Parallel()
	store := openTestStore(t)
	ctx := context.Background()
	if err := store.Save(ctx, "animals", &tree.Tree{Root: &tree.Leaf{Label: "cat"}}); err != nil {
		t.Fatalf("saving model: %v", err)
	}
	if err := store.Delete(ctx, "animals"); err != nil {
		t.Fatalf("deleting model: %v", err)
	}
	restored, err := store.Load(ctx, "animals")
	if err != nil {
		t.Fatalf("loading deleted model: %v", err)
	}
	if restored != nil {
		t.Errorf("loading deleted model, got %v, expected nil", restored)
	}
}
