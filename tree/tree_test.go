package tree_test

import (
	"context"
	"errors"
	"math"
	"strings"
	"testing"

	"arbor/feature"
	"arbor/tree"
)

func TestGrowValidatesItsArguments(t *testing.T) {
	t.Parallel()
	v := feature.NewVector(map[string]float64{"weight": 5.0})
	tests := []struct {
		name   string
		data   []feature.Vector
		labels []string
	}{
		{name: "nil data", data: nil, labels: []string{"cat"}},
		{name: "nil labels", data: []feature.Vector{v}, labels: nil},
		{name: "empty data and labels", data: []feature.Vector{}, labels: []string{}},
		{name: "more data than labels", data: []feature.Vector{v, v, v}, labels: []string{"cat", "dog"}},
		{name: "more labels than data", data: []feature.Vector{v, v}, labels: []string{"cat", "dog", "bird"}},
	}
	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()
			result, err := tree.Grow(test.data, test.labels)
			if !errors.Is(err, tree.ErrInvalidArgument) {
				t.Errorf("growing tree, got tree %v and error %v, expected an error wrapping ErrInvalidArgument", result, err)
			}
		})
	}
}

func TestGrowSplitsOnMostDiscriminatingFeature(t *testing.T) {
	t.Parallel()
	data := []feature.Vector{
		feature.NewVector(map[string]float64{"weight": 5.0, "legs": 4.0}),
		feature.NewVector(map[string]float64{"weight": 9.0, "legs": 4.0}),
	}
	result, err := tree.Grow(data, []string{"cat", "dog"})
	if err != nil {
		t.Fatalf("growing tree: %v", err)
	}
	d, ok := result.Root.(*tree.Decision)
	if !ok {
		t.Fatalf("root node, got %T, expected a decision node", result.Root)
	}
	if d.Feature != "weight" {
		t.Errorf("root decision feature, got: %q, expected: %q", d.Feature, "weight")
	}
	if d.Threshold != 7.0 {
		t.Errorf("root decision threshold, got: %v, expected: %v", d.Threshold, 7.0)
	}
	tests := []struct {
		name     string
		weight   float64
		expected string
	}{
		{name: "below the threshold", weight: 6.0, expected: "cat"},
		{name: "infinitesimally below the threshold", weight: math.Nextafter(7.0, 0.0), expected: "cat"},
		{name: "exactly on the threshold", weight: 7.0, expected: "dog"},
		{name: "above the threshold", weight: 9.5, expected: "dog"},
	}
	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()
			label, err := result.Classify(feature.NewVector(map[string]float64{"weight": test.weight, "legs": 4.0}))
			if err != nil {
				t.Fatalf("classifying vector with weight %v: %v", test.weight, err)
			}
			if label != test.expected {
				t.Errorf("label for weight %v, got: %q, expected: %q", test.weight, label, test.expected)
			}
		})
	}
}

func TestGrowBuildsDeeperTrees(t *testing.T) {
	t.Parallel()
	data := []feature.Vector{
		feature.NewVector(map[string]float64{"weight": 5.0, "legs": 4.0}),
		feature.NewVector(map[string]float64{"weight": 9.0, "legs": 4.0}),
		feature.NewVector(map[string]float64{"weight": 1.0, "legs": 2.0}),
	}
	result, err := tree.Grow(data, []string{"cat", "dog", "bird"})
	if err != nil {
		t.Fatalf("growing tree: %v", err)
	}
	tests := []struct {
		name     string
		v        map[string]float64
		expected string
	}{
		{name: "light two-legged sample", v: map[string]float64{"weight": 2.0, "legs": 2.0}, expected: "bird"},
		{name: "mid-weight four-legged sample", v: map[string]float64{"weight": 4.0, "legs": 4.0}, expected: "cat"},
		{name: "heavy four-legged sample", v: map[string]float64{"weight": 8.0, "legs": 4.0}, expected: "dog"},
	}
	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()
			label, err := result.Classify(feature.NewVector(test.v))
			if err != nil {
				t.Fatalf("classifying %v: %v", test.v, err)
			}
			if label != test.expected {
				t.Errorf("label for %v, got: %q, expected: %q", test.v, label, test.expected)
			}
		})
	}
}

func TestInsertIntoEmptyTreeCreatesRootLeaf(t *testing.T) {
	t.Parallel()
	result := &tree.Tree{}
	v := feature.NewVector(map[string]float64{"weight": 5.0})
	if err := result.Insert(v, "cat"); err != nil {
		t.Fatalf("inserting into empty tree: %v", err)
	}
	l, ok := result.Root.(*tree.Leaf)
	if !ok {
		t.Fatalf("root node, got %T, expected a leaf", result.Root)
	}
	if l.Label != "cat" {
		t.Errorf("root leaf label, got: %q, expected: %q", l.Label, "cat")
	}
	if l.Exemplar == nil {
		t.Error("root leaf has no exemplar vector")
	}
}

func TestInsertWithEqualLabelLeavesTreeUntouched(t *testing.T) {
	t.Parallel()
	result := &tree.Tree{}
	if err := result.Insert(feature.NewVector(map[string]float64{"weight": 5.0}), "cat"); err != nil {
		t.Fatalf("inserting first vector: %v", err)
	}
	if err := result.Insert(feature.NewVector(map[string]float64{"weight": 50.0}), "cat"); err != nil {
		t.Fatalf("re-inserting label: %v", err)
	}
	if _, ok := result.Root.(*tree.Leaf); !ok {
		t.Errorf("root node after re-inserting an already assigned label, got %T, expected a leaf", result.Root)
	}
}

func TestInsertValidatesItsArguments(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name  string
		v     feature.Vector
		label string
	}{
		{name: "nil vector", v: nil, label: "cat"},
		{name: "empty label", v: feature.NewVector(map[string]float64{"weight": 5.0}), label: ""},
	}
	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()
			result := &tree.Tree{}
			if err := result.Insert(test.v, test.label); !errors.Is(err, tree.ErrInvalidArgument) {
				t.Errorf("inserting, got error %v, expected an error wrapping ErrInvalidArgument", err)
			}
		})
	}
}

func TestInsertFailsSplittingLeafWithoutExemplar(t *testing.T) {
	t.Parallel()
	result := &tree.Tree{Root: &tree.Leaf{Label: "cat"}}
	err := result.Insert(feature.NewVector(map[string]float64{"weight": 9.0}), "dog")
	if !errors.Is(err, tree.ErrMissingExemplar) {
		t.Errorf("inserting conflicting label at exemplar-less leaf, got error %v, expected an error wrapping ErrMissingExemplar", err)
	}
}

func TestClassifyEmptyTree(t *testing.T) {
	t.Parallel()
	result := &tree.Tree{}
	label, err := result.Classify(feature.NewVector(map[string]float64{"weight": 5.0}))
	if !errors.Is(err, tree.ErrNoTree) {
		t.Errorf("classifying with empty tree, got label %q and error %v, expected an error wrapping ErrNoTree", label, err)
	}
}

func TestClassifyNilVector(t *testing.T) {
	t.Parallel()
	result := &tree.Tree{Root: &tree.Leaf{Label: "cat"}}
	label, err := result.Classify(nil)
	if !errors.Is(err, tree.ErrInvalidArgument) {
		t.Errorf("classifying nil vector, got label %q and error %v, expected an error wrapping ErrInvalidArgument", label, err)
	}
}

func TestClassifyVectorMissingDecisionFeature(t *testing.T) {
	t.Parallel()
	result, err := tree.Grow([]feature.Vector{
		feature.NewVector(map[string]float64{"weight": 5.0}),
		feature.NewVector(map[string]float64{"weight": 9.0}),
	}, []string{"cat", "dog"})
	if err != nil {
		t.Fatalf("growing tree: %v", err)
	}
	label, err := result.Classify(feature.NewVector(map[string]float64{"legs": 4.0}))
	if err == nil {
		t.Errorf("classifying vector without the decision feature, got label %q, expected an error", label)
	}
}

func TestAccuracy(t *testing.T) {
	t.Parallel()
	result, err := tree.Grow([]feature.Vector{
		feature.NewVector(map[string]float64{"weight": 5.0}),
		feature.NewVector(map[string]float64{"weight": 9.0}),
	}, []string{"cat", "dog"})
	if err != nil {
		t.Fatalf("growing tree: %v", err)
	}
	data := []feature.Vector{
		feature.NewVector(map[string]float64{"weight": 5.0}),
		feature.NewVector(map[string]float64{"weight": 8.0}),
		feature.NewVector(map[string]float64{"weight": 9.0}),
		feature.NewVector(map[string]float64{"weight": 10.0}),
	}
	labels := []string{"cat", "cat", "dog", "dog"}
	accuracy, err := result.Accuracy(context.Background(), data, labels)
	if err != nil {
		t.Fatalf("computing accuracy: %v", err)
	}
	expected := map[string]float64{
		"cat":                   0.5,
		"dog":                   1.0,
		tree.OverallAccuracyKey: 0.75,
	}
	if len(accuracy) != len(expected) {
		t.Errorf("accuracy map, got: %v, expected: %v", accuracy, expected)
	}
	for label, fraction := range expected {
		if accuracy[label] != fraction {
			t.Errorf("accuracy for %q, got: %v, expected: %v", label, accuracy[label], fraction)
		}
	}
}

func TestAccuracyOmitsNeverCorrectlyPredictedLabels(t *testing.T) {
	t.Parallel()
	result := &tree.Tree{Root: &tree.Leaf{Label: "cat"}}
	accuracy, err := result.Accuracy(context.Background(), []feature.Vector{
		feature.NewVector(map[string]float64{"weight": 5.0}),
		feature.NewVector(map[string]float64{"weight": 9.0}),
	}, []string{"cat", "dog"})
	if err != nil {
		t.Fatalf("computing accuracy: %v", err)
	}
	if _, ok := accuracy["dog"]; ok {
		t.Errorf("accuracy map includes a label that was never predicted correctly: %v", accuracy)
	}
	if accuracy["cat"] != 1.0 {
		t.Errorf("accuracy for %q, got: %v, expected: %v", "cat", accuracy["cat"], 1.0)
	}
	if accuracy[tree.OverallAccuracyKey] != 0.5 {
		t.Errorf("overall accuracy, got: %v, expected: %v", accuracy[tree.OverallAccuracyKey], 0.5)
	}
}

func TestAccuracyValidatesLengths(t *testing.T) {
	t.Parallel()
	result := &tree.Tree{Root: &tree.Leaf{Label: "cat"}}
	data := []feature.Vector{feature.NewVector(map[string]float64{"weight": 5.0})}
	if _, err := result.Accuracy(context.Background(), data, []string{"cat", "dog"}); !errors.Is(err, tree.ErrInvalidArgument) {
		t.Errorf("computing accuracy with mismatched lengths, got error %v, expected an error wrapping ErrInvalidArgument", err)
	}
}

func TestAccuracyHonorsContextCancellation(t *testing.T) {
	t.Parallel()
	result := &tree.Tree{Root: &tree.Leaf{Label: "cat"}}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	data := []feature.Vector{feature.NewVector(map[string]float64{"weight": 5.0})}
	if _, err := result.Accuracy(ctx, data, []string{"cat"}); err == nil {
		t.Error("computing accuracy with a cancelled context, expected an error")
	}
}

func TestTreeString(t *testing.T) {
	t.Parallel()
	result, err := tree.Grow([]feature.Vector{
		feature.NewVector(map[string]float64{"weight": 5.0}),
		feature.NewVector(map[string]float64{"weight": 9.0}),
	}, []string{"cat", "dog"})
	if err != nil {
		t.Fatalf("growing tree: %v", err)
	}
	rendered := result.String()
	for _, fragment := range []string{"[weight < 7]", "(cat)", "(dog)"} {
		if !strings.Contains(rendered, fragment) {
			t.Errorf("rendered tree %q does not contain %q", rendered, fragment)
		}
	}
	empty := &tree.Tree{}
	if rendered := empty.String(); rendered != "" {
		t.Errorf("rendered empty tree, got: %q, expected an empty string", rendered)
	}
}
