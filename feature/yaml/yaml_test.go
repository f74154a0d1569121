package yaml_test

import (
	"reflect"
	"testing"

	"arbor/feature/yaml"
)

func TestReadMetadata(t *testing.T) {
	t.Parallel()
	metadata, err := yaml.ReadMetadata([]byte("features:\n  - weight\n  - legs\nlabel: species\n"))
	if err != nil {
		t.Fatalf("reading metadata: %v", err)
	}
	if expected := []string{"weight", "legs"}; !reflect.DeepEqual(metadata.Features, expected) {
		t.Errorf("metadata features, got: %v, expected: %v", metadata.Features, expected)
	}
	if metadata.Label != "species" {
		t.Errorf("metadata label, got: %q, expected: %q", metadata.Label, "species")
	}
}

func TestReadMetadataErrors(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name  string
		input string
	}{
		{name: "not yml", input: ":::"},
		{name: "no features", input: "label: species\n"},
		{name: "empty features", input: "features: []\nlabel: species\n"},
		{name: "no label", input: "features:\n  - weight\n"},
		{name: "label also a feature", input: "features:\n  - weight\n  - species\nlabel: species\n"},
	}
	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()
			metadata, err := yaml.ReadMetadata([]byte(test.input))
			if err == nil {
				t.Errorf("reading metadata %q, got %v, expected an error", test.input, metadata)
			}
		})
	}
}

func TestReadMetadataFromMissingFile(t *testing.T) {
	t.Parallel()
	if _, err := yaml.ReadMetadataFromFile("testdata/does-not-exist.yml"); err == nil {
		t.Error("reading metadata from a missing file, expected an error")
	}
}
