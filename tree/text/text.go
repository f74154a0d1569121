/*
Package text implements the line-oriented textual form in which
classifier trees are persisted.

A decision node is written as a "Feature: " line with its feature name
followed by a "Threshold: " line with its threshold, then its left and
right subtrees, in that order. A leaf is written as a single line with
its label, so labels must not begin with the "Feature: " prefix.
Exemplar vectors are not part of the form: a tree read back from it
can classify, but its leaves cannot be split by later insertions.
*/
package text

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"arbor/tree"
)

const (
	featurePrefix   = "Feature: "
	thresholdPrefix = "Threshold: "
)

// ParseError represents a failure to parse the textual form of a tree
type ParseError string

// ErrMalformed is the error parsing failures reported by Read wrap:
// missing prefixes, unparsable thresholds, empty labels and text that
// ends before a decision node has both its children.
const ErrMalformed = ParseError("malformed tree text")

func (pe ParseError) Error() string {
	return string(pe)
}

/*
Write serializes the given tree onto the given io.Writer in its
textual form, traversing it in pre-order: every decision node is
written before its left and then its right subtree. Thresholds are
formatted with the shortest representation that parses back to the
exact same float64. An empty tree writes nothing.
It returns an error wrapping tree.ErrInvalidArgument if the writer is
nil, the context error if it expires, and any error writing.
*/
func Write(ctx context.Context, t *tree.Tree, w io.Writer) error {
	if w == nil {
		return fmt.Errorf("writing tree: %w", tree.ErrInvalidArgument)
	}
	if t == nil || t.Root == nil {
		return nil
	}
	return writeNode(ctx, t.Root, w)
}

func writeNode(ctx context.Context, n tree.Node, w io.Writer) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	switch n := n.(type) {
	case *tree.Leaf:
		_, err := fmt.Fprintln(w, n.Label)
		return err
	case *tree.Decision:
		_, err := fmt.Fprintf(w, "%s%s\n%s%s\n", featurePrefix, n.Feature, thresholdPrefix, strconv.FormatFloat(n.Threshold, 'g', -1, 64))
		if err != nil {
			return err
		}
		err = writeNode(ctx, n.Left, w)
		if err != nil {
			return err
		}
		return writeNode(ctx, n.Right, w)
	}
	return fmt.Errorf("writing tree: unknown node type %T", n)
}

/*
Read reconstructs a tree from its textual form on the given io.Reader,
mirroring Write: a line with the "Feature: " prefix starts a decision
node, whose threshold is parsed from the following "Threshold: " line
and whose left and right subtrees are read next, in that order; any
other non-empty line is taken verbatim as a leaf label.
It returns an error wrapping tree.ErrInvalidArgument if the reader is
nil, an empty tree if the reader yields no lines, and an error
wrapping ErrMalformed if the text does not follow the form.
*/
func Read(ctx context.Context, r io.Reader) (*tree.Tree, error) {
	if r == nil {
		return nil, fmt.Errorf("reading tree: %w", tree.ErrInvalidArgument)
	}
	s := bufio.NewScanner(r)
	root, err := readNode(ctx, s, true)
	if err != nil {
		return nil, err
	}
	return &tree.Tree{Root: root}, nil
}

func readNode(ctx context.Context, s *bufio.Scanner, root bool) (tree.Node, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !s.Scan() {
		if err := s.Err(); err != nil {
			return nil, fmt.Errorf("reading tree: %v", err)
		}
		if root {
			return nil, nil
		}
		return nil, fmt.Errorf("reading tree: text ends before node is complete: %w", ErrMalformed)
	}
	line := s.Text()
	if !strings.HasPrefix(line, featurePrefix) {
		if line == "" {
			return nil, fmt.Errorf("reading tree: leaf with empty label: %w", ErrMalformed)
		}
		return &tree.Leaf{Label: line}, nil
	}
	d := &tree.Decision{Feature: strings.TrimPrefix(line, featurePrefix)}
	if !s.Scan() {
		if err := s.Err(); err != nil {
			return nil, fmt.Errorf("reading tree: %v", err)
		}
		return nil, fmt.Errorf("reading tree: feature %q has no threshold line: %w", d.Feature, ErrMalformed)
	}
	tline := s.Text()
	if !strings.HasPrefix(tline, thresholdPrefix) {
		return nil, fmt.Errorf("reading tree: expected threshold line for feature %q, got %q: %w", d.Feature, tline, ErrMalformed)
	}
	threshold, err := strconv.ParseFloat(strings.TrimPrefix(tline, thresholdPrefix), 64)
	if err != nil {
		return nil, fmt.Errorf("reading tree: parsing threshold for feature %q: %v: %w", d.Feature, err, ErrMalformed)
	}
	d.Threshold = threshold
	d.Left, err = readNode(ctx, s, false)
	if err != nil {
		return nil, err
	}
	d.Right, err = readNode(ctx, s, false)
	if err != nil {
		return nil, err
	}
	return d, nil
}
