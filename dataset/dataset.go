package dataset

import (
	"context"
	"fmt"

	"arbor/feature"
)

/*
Example is a labeled observation: a feature vector together with the
label a classifier should assign to it.
*/
type Example struct {
	Vector feature.Vector
	Label  string
}

/*
Dataset represents an ordered collection of labeled examples from
which a classifier can be grown or against which it can be tested.

Its Examples method returns the examples it contains, in their
dataset order.

Its Count method returns the number of examples it contains.

Both methods take a context that may allow cancelling the operation
if the implementation allows it.
*/
type Dataset interface {
	Examples(context.Context) ([]Example, error)
	Count(context.Context) (int, error)
}

type memoryDataset struct {
	examples []Example
}

/*
New takes a slice of examples and returns a dataset built with them,
with the process memory space as backend.
*/
func New(examples []Example) Dataset {
	return &memoryDataset{examples}
}

func (ds *memoryDataset) Examples(ctx context.Context) ([]Example, error) {
	return ds.examples, nil
}

func (ds *memoryDataset) Count(ctx context.Context) (int, error) {
	return len(ds.examples), nil
}

func (e Example) String() string {
	return fmt.Sprintf("[%v -> %s]", e.Vector, e.Label)
}
