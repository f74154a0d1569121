package tree

import (
	"context"
	"fmt"
	"math"
	"strings"

	"arbor/feature"
)

/*
Tree represents a binary decision-tree classifier. It is composed of
decision nodes, which route a vector left or right comparing one of
its features against a threshold, and leaf nodes, which assign a
label. The zero value is an empty tree that cannot classify until
grown or loaded.

A tree is built incrementally: every insertion descends to a leaf and,
when the leaf's label conflicts with the inserted one, splits it on
the feature on which the leaf's exemplar vector and the inserted
vector differ the most.
*/
type Tree struct {
	Root Node
}

/*
OverallAccuracyKey is the key under which Accuracy reports the
fraction of correctly classified vectors across all labels.
*/
const OverallAccuracyKey = "Overall"

// ClassifierError represents an error related to the use of a classifier tree
type ClassifierError string

const (
	// ErrInvalidArgument is the error returned when a required input is
	// absent or malformed: nil vectors, writers or readers, and label
	// sequences that are empty or do not match their vectors.
	ErrInvalidArgument = ClassifierError("invalid argument")
	// ErrNoTree is the error returned when an empty tree is asked to
	// classify a vector.
	ErrNoTree = ClassifierError("empty tree cannot classify vectors")
	// ErrMissingExemplar is the error returned when an insertion needs to
	// split a leaf that holds no exemplar vector, as happens on leaves
	// read back from the textual form.
	ErrMissingExemplar = ClassifierError("cannot split leaf without exemplar vector")
)

func (ce ClassifierError) Error() string {
	return string(ce)
}

/*
Grow takes a slice of feature vectors and a slice with their labels
and returns a tree built by taking the first pair as the root leaf and
inserting every following pair in order. It returns an error wrapping
ErrInvalidArgument if either slice is nil, their lengths differ or
they are empty.
*/
func Grow(data []feature.Vector, labels []string) (*Tree, error) {
	if data == nil || labels == nil || len(data) != len(labels) || len(data) == 0 {
		return nil, fmt.Errorf("growing tree from %d vectors and %d labels: %w", len(data), len(labels), ErrInvalidArgument)
	}
	t := &Tree{}
	for i := range data {
		if err := t.Insert(data[i], labels[i]); err != nil {
			return nil, fmt.Errorf("growing tree: inserting vector %d: %v", i, err)
		}
	}
	return t, nil
}

/*
Insert incorporates the given vector and its label into the tree,
descending from the root: at every decision node the vector's value
for the node's feature selects the left child when strictly below the
node's threshold and the right child otherwise. If the leaf the
descent ends on already has the label, the tree is left untouched.
Otherwise the leaf is split: a new decision node is created on the
feature on which the leaf's exemplar and the vector differ the most,
with its threshold halfway between their two values for it; the vector
with the lower value ends up on the left side and the other on the
right, with a value exactly on the threshold going right.

Inserting into an empty tree makes the vector and label its root leaf.

It returns an error wrapping ErrInvalidArgument if the vector is nil
or the label is empty, and one wrapping ErrMissingExemplar if the
split would happen at a leaf with no exemplar vector, as happens on
trees read back from their textual form.
*/
func (t *Tree) Insert(v feature.Vector, label string) error {
	if v == nil || label == "" {
		return fmt.Errorf("inserting labeled vector: %w", ErrInvalidArgument)
	}
	if t.Root == nil {
		t.Root = &Leaf{Label: label, Exemplar: v}
		return nil
	}
	root, err := insert(t.Root, v, label)
	if err != nil {
		return err
	}
	t.Root = root
	return nil
}

func insert(n Node, v feature.Vector, label string) (Node, error) {
	switch n := n.(type) {
	case *Leaf:
		if n.Label == label {
			return n, nil
		}
		return split(n, v, label)
	case *Decision:
		value, err := v.Get(n.Feature)
		if err != nil {
			return nil, fmt.Errorf("inserting %q: %v", label, err)
		}
		if value < n.Threshold {
			n.Left, err = insert(n.Left, v, label)
		} else {
			n.Right, err = insert(n.Right, v, label)
		}
		if err != nil {
			return nil, err
		}
		return n, nil
	}
	return nil, fmt.Errorf("inserting %q: unknown node type %T", label, n)
}

func split(l *Leaf, v feature.Vector, label string) (Node, error) {
	if l.Exemplar == nil {
		return nil, fmt.Errorf("inserting %q: %w", label, ErrMissingExemplar)
	}
	f, err := l.Exemplar.FindMostDiscriminating(v)
	if err != nil {
		return nil, fmt.Errorf("inserting %q: %v", label, err)
	}
	ev, err := l.Exemplar.Get(f)
	if err != nil {
		return nil, fmt.Errorf("inserting %q: %v", label, err)
	}
	nv, err := v.Get(f)
	if err != nil {
		return nil, fmt.Errorf("inserting %q: %v", label, err)
	}
	d := &Decision{Feature: f, Threshold: midpoint(ev, nv)}
	if nv < d.Threshold {
		d.Left = &Leaf{Label: label, Exemplar: v}
		d.Right = l
	} else {
		d.Left = l
		d.Right = &Leaf{Label: label, Exemplar: v}
	}
	return d, nil
}

// midpoint returns the point halfway between the two given values.
func midpoint(a, b float64) float64 {
	return math.Min(a, b) + math.Abs(a-b)/2.0
}

/*
Classify takes a vector and descends the tree comparing, at every
decision node, the vector's value for the node's feature against the
node's threshold: strictly lower values descend left, all others
right. It returns the label of the leaf the descent ends on.
It returns an error wrapping ErrInvalidArgument if the vector is nil,
one wrapping ErrNoTree if the tree is empty, and any error obtaining
the vector's value for a decision node's feature.
*/
func (t *Tree) Classify(v feature.Vector) (string, error) {
	if v == nil {
		return "", fmt.Errorf("classifying vector: %w", ErrInvalidArgument)
	}
	if t == nil || t.Root == nil {
		return "", fmt.Errorf("classifying vector: %w", ErrNoTree)
	}
	n := t.Root
	for {
		switch node := n.(type) {
		case *Leaf:
			return node.Label, nil
		case *Decision:
			value, err := v.Get(node.Feature)
			if err != nil {
				return "", fmt.Errorf("classifying vector: %v", err)
			}
			if value < node.Threshold {
				n = node.Left
			} else {
				n = node.Right
			}
		default:
			return "", fmt.Errorf("classifying vector: unknown node type %T", n)
		}
	}
}

/*
Accuracy takes a context, a slice of feature vectors and a slice with
their expected labels, classifies every vector and returns a map from
each label that was ever predicted correctly to the fraction of its
vectors that were classified as it, with the fraction of correctly
classified vectors overall under the OverallAccuracyKey key.
It returns an error wrapping ErrInvalidArgument if the two slices
differ in length, the context error if it expires, and any error
classifying a vector.
*/
func (t *Tree) Accuracy(ctx context.Context, data []feature.Vector, labels []string) (map[string]float64, error) {
	if len(data) != len(labels) {
		return nil, fmt.Errorf("computing accuracy over %d vectors and %d labels: %w", len(data), len(labels), ErrInvalidArgument)
	}
	totals := map[string]int{OverallAccuracyKey: 0}
	correct := map[string]float64{OverallAccuracyKey: 0.0}
	for i, v := range data {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		result, err := t.Classify(v)
		if err != nil {
			return nil, fmt.Errorf("computing accuracy for vector %d: %v", i, err)
		}
		totals[labels[i]]++
		totals[OverallAccuracyKey]++
		if result == labels[i] {
			correct[result]++
			correct[OverallAccuracyKey]++
		}
	}
	for label := range correct {
		correct[label] = correct[label] / float64(totals[label])
	}
	return correct, nil
}

func (t *Tree) String() string {
	if t == nil || t.Root == nil {
		return ""
	}
	return t.nodeString(t.Root)
}

func (t *Tree) nodeString(n Node) string {
	d, ok := n.(*Decision)
	if !ok {
		l, ok := n.(*Leaf)
		if !ok {
			return fmt.Sprintf("ERROR: unknown node type %T\n", n)
		}
		return fmt.Sprintf("(%s)\n", l.Label)
	}
	result := fmt.Sprintf("[%s < %v]\n|\n", d.Feature, d.Threshold)
	children := []Node{d.Left, d.Right}
	for i, c := range children {
		for j, line := range strings.Split(t.nodeString(c), "\n") {
			if len(line) > 0 {
				if j == 0 {
					result = fmt.Sprintf("%s|__%s\n", result, line)
				} else {
					if i == len(children)-1 {
						result = fmt.Sprintf("%s   %s\n", result, line)
					} else {
						result = fmt.Sprintf("%s|  %s\n", result, line)
					}
				}
			}
		}
	}
	return result
}
