package feature

import (
	"fmt"
	"math"
	"sort"
)

/*
Vector represents an observation as an immutable mapping from feature
names to numeric values.

Its Get method returns the value the vector defines for a feature, or
an error if the feature is unknown to the vector.

Its Features method returns the names of the features the vector
defines, in ascending order.

Its FindMostDiscriminating method takes another vector and returns the
name of the feature whose values on the two vectors differ the most in
absolute terms.
*/
type Vector interface {
	Get(name string) (float64, error)
	Features() []string
	FindMostDiscriminating(other Vector) (string, error)
}

type vector struct {
	values map[string]float64
	names  []string
}

/*
NewVector takes a map of feature names to float64 values and returns a
Vector defining them. The map is copied, so changing it afterwards does
not affect the vector.
*/
func NewVector(values map[string]float64) Vector {
	vs := make(map[string]float64, len(values))
	names := make([]string, 0, len(values))
	for n, v := range values {
		vs[n] = v
		names = append(names, n)
	}
	sort.Strings(names)
	return &vector{vs, names}
}

/*
Get returns the value the vector defines for the feature with the
given name, or an error if the vector does not define the feature.
*/
func (v *vector) Get(name string) (float64, error) {
	value, ok := v.values[name]
	if !ok {
		return 0.0, fmt.Errorf("vector defines no value for feature %q", name)
	}
	return value, nil
}

/*
Features returns the names of the features the vector defines in
ascending order.
*/
func (v *vector) Features() []string {
	names := make([]string, len(v.names))
	copy(names, v.names)
	return names
}

/*
FindMostDiscriminating goes through the features of the vector in
ascending name order and returns the name of the one whose values on
this vector and the given other vector have the largest absolute
difference. On ties the feature that comes first in that order is
kept, so the result is deterministic for any pair of vectors.
An error is returned if the other vector is nil, does not define one
of this vector's features, or this vector defines no features at all.
*/
func (v *vector) FindMostDiscriminating(other Vector) (string, error) {
	if other == nil {
		return "", fmt.Errorf("cannot compare vector against nil vector")
	}
	var best string
	var bestDiff float64
	for _, n := range v.names {
		ov, err := other.Get(n)
		if err != nil {
			return "", err
		}
		diff := math.Abs(v.values[n] - ov)
		if best == "" || diff > bestDiff {
			best = n
			bestDiff = diff
		}
	}
	if best == "" {
		return "", fmt.Errorf("vector defines no features to compare")
	}
	return best, nil
}

func (v *vector) String() string {
	return fmt.Sprintf("[%v]", v.values)
}
