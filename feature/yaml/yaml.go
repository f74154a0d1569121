/*
Package yaml provides methods to parse dataset metadata, the
description of the feature columns and label column of a dataset,
from YAML documents.
*/
package yaml

import (
	"fmt"
	"io/ioutil"

	yaml "gopkg.in/yaml.v2"
)

/*
Metadata describes the examples of a dataset: the names of its
numeric feature columns and the name of the column with the label a
classifier should learn to assign.
*/
type Metadata struct {
	Features []string `yaml:"features"`
	Label    string   `yaml:"label"`
}

/*
ReadMetadata takes a slice of bytes with dataset metadata in YML and
returns it parsed or an error.
The YML is expected to be an object with a features property listing
the names of the feature columns and a label property with the name
of the label column.
*/
func ReadMetadata(md []byte) (*Metadata, error) {
	metadata := &Metadata{}
	err := yaml.Unmarshal(md, metadata)
	if err != nil {
		return nil, fmt.Errorf("parsing yml metadata: %v", err)
	}
	if len(metadata.Features) == 0 {
		return nil, fmt.Errorf("metadata has no feature information")
	}
	if metadata.Label == "" {
		return nil, fmt.Errorf("metadata has no label information")
	}
	for _, f := range metadata.Features {
		if f == metadata.Label {
			return nil, fmt.Errorf("label column %q cannot also be a feature column", f)
		}
	}
	return metadata, nil
}

/*
ReadMetadataFromFile takes a filepath string, reads its contents and
uses ReadMetadata to parse it and return the dataset metadata or an
error. If the file indicated by the filepath cannot be opened for
reading an error will be returned.
*/
func ReadMetadataFromFile(filepath string) (*Metadata, error) {
	md, err := ioutil.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("reading metadata yml file %s: %v", filepath, err)
	}
	metadata, err := ReadMetadata(md)
	if err != nil {
		err = fmt.Errorf("parsing metadata yml file %s: %v", filepath, err)
	}
	return metadata, err
}
