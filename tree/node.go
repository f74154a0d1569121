package tree

import (
	"arbor/feature"
)

/*
Node is a node of a classifier tree. It has exactly two
implementations: Decision, for nodes that route vectors on a feature
threshold, and Leaf, for terminal nodes that assign a label.
*/
type Node interface {
	isNode()
}

/*
Decision is a Node that routes vectors on a feature and a threshold:
vectors whose value for the feature is strictly below the threshold
descend into the left subtree, all others descend into the right one.
Both children are always present on a well-formed tree.
*/
type Decision struct {
	Feature   string
	Threshold float64
	Left      Node
	Right     Node
}

/*
Leaf is a terminal Node holding the label assigned to vectors that
reach it. Exemplar is the vector that created the leaf or last took
part in splitting it; it is retained so the leaf can be split again
when an example with a conflicting label descends to it. Trees read
back from their textual form have leaves with a nil Exemplar: they can
classify but those leaves cannot be split again.
*/
type Leaf struct {
	Label    string
	Exemplar feature.Vector
}

func (*Decision) isNode() {}

func (*Leaf) isNode() {}
