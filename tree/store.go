package tree

import (
	"context"
)

/*
ModelStore is an interface to manage a store where classifier trees
are kept by name.

All its methods take a context that may allow cancelling the operation
(thus forcing the return of an error) if the implementation allows it.
*/
type ModelStore interface {
	// Save takes a name and a tree and stores the tree
	// under the name, replacing whatever tree was stored
	// under it before. It returns an error if the tree
	// cannot be stored.
	Save(ctx context.Context, name string, t *Tree) error
	// Load takes a name and returns the tree stored under
	// it (or nil if there is none) or an error if the
	// store cannot be queried.
	Load(ctx context.Context, name string) (*Tree, error)
	// Delete takes a name and removes the tree stored
	// under it. It returns an error if a stored tree
	// exists but the deletion cannot be performed.
	Delete(ctx context.Context, name string) error
	// Close closes the store, implementations should free
	// any resources in use as well as ensure any pending
	// changes are applied before returning (unless the
	// context expires). It returns an error if the Close
	// cannot be completed.
	Close(ctx context.Context) error
}
