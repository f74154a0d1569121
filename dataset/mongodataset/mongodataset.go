/*
Package mongodataset provides an implementation of dataset.Dataset
that uses a MongoDB database as backend.
*/
package mongodataset

import (
	"context"
	"fmt"

	"arbor/dataset"
	"arbor/feature"
	mgo "gopkg.in/mgo.v2"
	"gopkg.in/mgo.v2/bson"
)

const examplesCollectionName = "examples"

type mongodataset struct {
	session  *mgo.Session
	features []string
	label    string
	count    *int
}

/*
Open takes a MongoDB database session, a slice with the names of the
feature fields and the name of the label field and returns a
dataset.Dataset that reads labeled examples from the examples
collection on the default database for that session. Every document
on the collection is expected to have a float64 value for each
feature field and a string value for the label field.
*/
func Open(ctx context.Context, session *mgo.Session, features []string, label string) (dataset.Dataset, error) {
	if session == nil {
		return nil, fmt.Errorf("opening mongo dataset: nil session")
	}
	return &mongodataset{session: session, features: features, label: label}, nil
}

func (mds *mongodataset) Count(ctx context.Context) (int, error) {
	if mds.count != nil {
		return *mds.count, nil
	}
	count, err := mds.examplesCollection().Count()
	if err != nil {
		return 0, fmt.Errorf("counting examples in mongo: %v", err)
	}
	mds.count = &count
	return count, nil
}

func (mds *mongodataset) Examples(ctx context.Context) ([]dataset.Example, error) {
	var examples []dataset.Example
	iter := mds.examplesCollection().Find(nil).Iter()
	defer iter.Close()
	doc := bson.M{}
	for iter.Next(&doc) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		e, err := mds.exampleFromDoc(doc)
		if err != nil {
			return nil, err
		}
		examples = append(examples, e)
		doc = bson.M{}
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("reading examples from mongo: %v", err)
	}
	return examples, nil
}

func (mds *mongodataset) exampleFromDoc(doc bson.M) (dataset.Example, error) {
	values := make(map[string]float64, len(mds.features))
	for _, f := range mds.features {
		v, ok := doc[f]
		if !ok {
			return dataset.Example{}, fmt.Errorf("example %v defines no value for feature %q", doc["_id"], f)
		}
		fv, ok := v.(float64)
		if !ok {
			return dataset.Example{}, fmt.Errorf("example %v has a %T instead of a float64 as value for feature %q", doc["_id"], v, f)
		}
		values[f] = fv
	}
	label, ok := doc[mds.label].(string)
	if !ok {
		return dataset.Example{}, fmt.Errorf("example %v has no string value for label %q", doc["_id"], mds.label)
	}
	return dataset.Example{Vector: feature.NewVector(values), Label: label}, nil
}

func (mds *mongodataset) examplesCollection() *mgo.Collection {
	return mds.session.DB("").C(examplesCollectionName)
}
