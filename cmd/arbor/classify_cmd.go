package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strconv"

	"arbor/feature"
	"arbor/feature/yaml"
	"github.com/spf13/cobra"
)

type classifyCmdConfig struct {
	*rootCmdConfig
	treeSourceConfig
	metadataInput string
}

func classifyCmd(rootConfig *rootCmdConfig) *cobra.Command {
	config := &classifyCmdConfig{rootCmdConfig: rootConfig}
	cmd := &cobra.Command{
		Use:   "classify",
		Short: "Classify a sample answering questions",
		Long:  `Use a classifier tree to label a sample, answering a question for each of its features`,
		Run: func(cmd *cobra.Command, args []string) {
			err := config.Validate()
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(1)
			}
			ctx := context.Background()
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
			v, err := readVector(os.Stdin, metadata.Features)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(4)
			}
			label, err := t.Classify(v)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(5)
			}
			fmt.Printf("The sample's %s is %s\n", metadata.Label, label)
		},
	}
	cmd.PersistentFlags().StringVarP(&(config.metadataInput), "metadata", "m", "", "path to a YML file with metadata describing the features of the sample (required)")
	config.treeSourceConfig.declareFlags(cmd.PersistentFlags())
	return cmd
}

func (ccc *classifyCmdConfig) Validate() error {
	if ccc.metadataInput == "" {
		return fmt.Errorf("required metadata flag was not set")
	}
	return ccc.treeSourceConfig.Validate()
}

// readVector requests a value for every feature on the reader,
// re-requesting until the answer parses as a float64, and returns the
// vector with the answered values.
func readVector(r *os.File, features []string) (feature.Vector, error) {
	scanner := bufio.NewScanner(r)
	values := make(map[string]float64, len(features))
	for _, f := range features {
		fmt.Printf("Please provide the sample's %s:\n(valid values are real numbers)\n", f)
		for {
			if !scanner.Scan() {
				if err := scanner.Err(); err != nil {
					return nil, fmt.Errorf("reading value for %s: %v", f, err)
				}
				return nil, fmt.Errorf("reading value for %s: input over", f)
			}
			v, err := strconv.ParseFloat(scanner.Text(), 64)
			if err == nil {
				values[f] = v
				break
			}
			fmt.Printf("%v is not a valid value for the sample's %s. Please provide a real number.\n", scanner.Text(), f)
		}
	}
	return feature.NewVector(values), nil
}
