package tree

import (
	"context"
	"fmt"

	"arbor/dataset"
	"arbor/feature"
)

/*
GrowFromDataset takes a context and a dataset and returns a tree grown
from the dataset's examples in their dataset order, or an error if the
examples cannot be retrieved or the tree cannot be grown.
*/
func GrowFromDataset(ctx context.Context, ds dataset.Dataset) (*Tree, error) {
	data, labels, err := vectorsAndLabels(ctx, ds)
	if err != nil {
		return nil, fmt.Errorf("growing tree from dataset: %v", err)
	}
	return Grow(data, labels)
}

/*
Test takes a context and a dataset and returns the accuracy of the
tree over the dataset's examples: a map from each label that was ever
predicted correctly to the fraction of its examples that were
classified as it, with the overall fraction under the
OverallAccuracyKey key. An error is returned if the examples cannot be
retrieved or a classification fails.
*/
func (t *Tree) Test(ctx context.Context, ds dataset.Dataset) (map[string]float64, error) {
	data, labels, err := vectorsAndLabels(ctx, ds)
	if err != nil {
		return nil, fmt.Errorf("testing tree against dataset: %v", err)
	}
	return t.Accuracy(ctx, data, labels)
}

func vectorsAndLabels(ctx context.Context, ds dataset.Dataset) ([]feature.Vector, []string, error) {
	examples, err := ds.Examples(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("retrieving examples: %v", err)
	}
	data := make([]feature.Vector, len(examples))
	labels := make([]string, len(examples))
	for i, e := range examples {
		data[i] = e.Vector
		labels[i] = e.Label
	}
	return data, labels, nil
}
