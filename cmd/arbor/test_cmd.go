package main

import (
	"context"
	"fmt"
	"os"
	"sort"

	"arbor/feature/yaml"
	"arbor/tree"
	"github.com/spf13/cobra"
)

type testCmdConfig struct {
	*rootCmdConfig
	treeSourceConfig
	dataInput     string
	metadataInput string
}

func testCmd(rootConfig *rootCmdConfig) *cobra.Command {
	config := &testCmdConfig{rootCmdConfig: rootConfig}
	cmd := &cobra.Command{
		Use:   "test",
		Short: "Test the accuracy of a classifier tree",
		Long:  `Classify every example of a testing dataset and report, per label and overall, the fraction that was classified correctly`,
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
			t, err := config.loadTree(ctx)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(3)
			}
			ds, err := config.readDataset(ctx, config.dataInput, metadata)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(4)
			}
			config.Logf("Testing tree against dataset...")
			accuracy, err := t.Test(ctx, ds)
			if err != nil {
				fmt.Fprintf(os.Stderr, "testing the tree: %v\n", err)
				os.Exit(5)
			}
			printAccuracy(accuracy)
		},
	}
	cmd.PersistentFlags().StringVarP(&(config.dataInput), "input", "i", "", "path to an input CSV (.csv) or SQLite3 (.db) file, or a PostgreSQL or MongoDB connection URL with the examples to test against (defaults to STDIN, interpreted as CSV)")
	cmd.PersistentFlags().StringVarP(&(config.metadataInput), "metadata", "m", "", "path to a YML file with metadata describing the feature columns and label column of the dataset (required)")
	config.treeSourceConfig.declareFlags(cmd.PersistentFlags())
	return cmd
}

func (tcc *testCmdConfig) Validate() error {
	if tcc.metadataInput == "" {
		return fmt.Errorf("required metadata flag was not set")
	}
	return tcc.treeSourceConfig.Validate()
}

func printAccuracy(accuracy map[string]float64) {
	labels := make([]string, 0, len(accuracy))
	for label := range accuracy {
		if label != tree.OverallAccuracyKey {
			labels = append(labels, label)
		}
	}
	sort.Strings(labels)
	for _, label := range labels {
		fmt.Printf("%s: %.2f%%\n", label, 100.0*accuracy[label])
	}
	fmt.Printf("%s: %.2f%%\n", tree.OverallAccuracyKey, 100.0*accuracy[tree.OverallAccuracyKey])
}
