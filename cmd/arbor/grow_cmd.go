package main

import (
	"context"
	"fmt"
	"os"

	"arbor/feature/yaml"
	"arbor/tree"
	"arbor/tree/text"
	"github.com/spf13/cobra"
)

type growCmdConfig struct {
	*rootCmdConfig
	dataInput     string
	metadataInput string
	output        string
	storeURL      string
	modelName     string
}

func growCmd(rootConfig *rootCmdConfig) *cobra.Command {
	config := &growCmdConfig{rootCmdConfig: rootConfig}
	cmd := &cobra.Command{
		Use:   "grow",
		Short: "Grow a classifier tree from a dataset of labeled examples",
		Long:  `Grow a binary decision-tree classifier by inserting the labeled examples of a dataset one at a time.`,
		Run: func(cmd *cobra.Command, args []string) {
			err := config.Validate()
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(1)
			}
			ctx := context.Background()
			config.Logf("Reading metadata at %s...", config.metadataInput)
			metadata, err := yaml.ReadMetadataFromFile(config.metadataInput)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(2)
			}
			ds, err := config.readDataset(ctx, config.dataInput, metadata)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(3)
			}
			count, err := ds.Count(ctx)
			if err != nil {
				fmt.Fprintf(os.Stderr, "counting examples: %v\n", err)
				os.Exit(4)
			}
			config.Logf("Growing tree from %d examples with %d features to classify %s ...", count, len(metadata.Features), metadata.Label)
			t, err := tree.GrowFromDataset(ctx, ds)
			if err != nil {
				fmt.Fprintf(os.Stderr, "growing the tree: %v\n", err)
				os.Exit(5)
			}
			config.Logf("Done")
			config.Logf("%v", t)
			err = config.outputTree(ctx, t)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(6)
			}
		},
	}
	cmd.PersistentFlags().StringVarP(&(config.dataInput), "input", "i", "", "path to an input CSV (.csv) or SQLite3 (.db) file, or a PostgreSQL or MongoDB connection URL with the examples to grow the tree (defaults to STDIN, interpreted as CSV)")
	cmd.PersistentFlags().StringVarP(&(config.metadataInput), "metadata", "m", "", "path to a YML file with metadata describing the feature columns and label column of the dataset (required)")
	cmd.PersistentFlags().StringVarP(&(config.output), "output", "o", "", "path to a file to which the grown tree will be written in its textual form (defaults to STDOUT)")
	cmd.PersistentFlags().StringVarP(&(config.storeURL), "store", "s", "", "URL of a model store to save the grown tree on instead of a file: redis://host:port/db or a path to a bolt database file")
	cmd.PersistentFlags().StringVarP(&(config.modelName), "name", "n", "", "name to save the grown tree under on the store (required with store)")
	return cmd
}

func (gcc *growCmdConfig) Validate() error {
	if gcc.metadataInput == "" {
		return fmt.Errorf("required metadata flag was not set")
	}
	if gcc.storeURL != "" && gcc.modelName == "" {
		return fmt.Errorf("required name flag was not set for the given store")
	}
	if gcc.storeURL != "" && gcc.output != "" {
		return fmt.Errorf("cannot set both output and store flags at the same time")
	}
	return nil
}

func (gcc *growCmdConfig) outputTree(ctx context.Context, t *tree.Tree) error {
	if gcc.storeURL != "" {
		gcc.Logf("Saving tree as %q on store %s...", gcc.modelName, gcc.storeURL)
		store, err := openStore(gcc.storeURL)
		if err != nil {
			return err
		}
		defer store.Close(ctx)
		return store.Save(ctx, gcc.modelName, t)
	}
	var f *os.File
	var err error
	if gcc.output == "" {
		f = os.Stdout
	} else {
		f, err = os.Create(gcc.output)
		if err != nil {
			return err
		}
		defer f.Close()
	}
	return text.Write(ctx, t, f)
}
