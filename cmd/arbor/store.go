package main

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/pflag"

	"arbor/tree"
	"arbor/tree/boltstore"
	"arbor/tree/redisstore"
	"arbor/tree/text"
	redis "gopkg.in/redis.v5"
)

const redisModelPrefix = "arbor:models"

// treeSourceConfig holds the flags shared by every command that reads
// or writes a classifier tree: either a path to a text file or a
// model store URL together with a model name.
type treeSourceConfig struct {
	treeInput string
	storeURL  string
	modelName string
}

func (tsc *treeSourceConfig) declareFlags(flags *pflag.FlagSet) {
	flags.StringVarP(&(tsc.treeInput), "tree", "t", "", "path to a file with a classifier tree in its textual form")
	flags.StringVarP(&(tsc.storeURL), "store", "s", "", "URL of a model store: redis://host:port/db or a path to a bolt database file")
	flags.StringVarP(&(tsc.modelName), "name", "n", "", "name of the model on the store (required with store)")
}

func (tsc *treeSourceConfig) Validate() error {
	if tsc.treeInput == "" && tsc.storeURL == "" {
		return fmt.Errorf("required tree or store flag was not set")
	}
	if tsc.treeInput != "" && tsc.storeURL != "" {
		return fmt.Errorf("cannot set both tree and store flags at the same time")
	}
	if tsc.storeURL != "" && tsc.modelName == "" {
		return fmt.Errorf("required name flag was not set for the given store")
	}
	return nil
}

func (tsc *treeSourceConfig) loadTree(ctx context.Context) (*tree.Tree, error) {
	if tsc.treeInput != "" {
		return loadTreeFromFile(ctx, tsc.treeInput)
	}
	store, err := openStore(tsc.storeURL)
	if err != nil {
		return nil, err
	}
	defer store.Close(ctx)
	t, err := store.Load(ctx, tsc.modelName)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, fmt.Errorf("no model %q on store %s", tsc.modelName, tsc.storeURL)
	}
	return t, nil
}

func loadTreeFromFile(ctx context.Context, filepath string) (*tree.Tree, error) {
	f, err := os.Open(filepath)
	if err != nil {
		return nil, fmt.Errorf("reading tree from %s: %v", filepath, err)
	}
	defer f.Close()
	t, err := text.Read(ctx, f)
	if err != nil {
		err = fmt.Errorf("parsing tree from %s: %v", filepath, err)
	}
	return t, err
}

func openStore(storeURL string) (tree.ModelStore, error) {
	if strings.HasPrefix(storeURL, "redis://") {
		return openRedisStore(storeURL)
	}
	return boltstore.Open(storeURL)
}

func openRedisStore(storeURL string) (tree.ModelStore, error) {
	u, err := url.Parse(storeURL)
	if err != nil {
		return nil, fmt.Errorf("parsing redis store URL %s: %v", storeURL, err)
	}
	options := &redis.Options{Addr: u.Host}
	if db := strings.TrimPrefix(u.Path, "/"); db != "" {
		options.DB, err = strconv.Atoi(db)
		if err != nil {
			return nil, fmt.Errorf("parsing db number on redis store URL %s: %v", storeURL, err)
		}
	}
	if u.User != nil {
		options.Password, _ = u.User.Password()
	}
	return redisstore.New(redis.NewClient(options), redisModelPrefix), nil
}
