/*
Package redisstore provides an implementation of tree.ModelStore that
keeps classifier trees in their textual form on a redis DB.
*/
package redisstore

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"arbor/tree"
	"arbor/tree/text"
	redis "gopkg.in/redis.v5"
)

type redisStore struct {
	rc     *redis.Client
	prefix string
}

/*
New takes a redis client and a key prefix and returns a
tree.ModelStore that keeps every tree in its textual form under the
prefix:name key.
*/
func New(rc *redis.Client, prefix string) tree.ModelStore {
	return &redisStore{rc, prefix}
}

func (rs *redisStore) Save(ctx context.Context, name string, t *tree.Tree) error {
	var buf bytes.Buffer
	err := text.Write(ctx, t, &buf)
	if err != nil {
		return fmt.Errorf("saving model %q: encoding tree: %v", name, err)
	}
	_, err = rs.rc.Set(rs.keyFor(name), buf.String(), 0).Result()
	if err != nil {
		return fmt.Errorf("saving model %q in redis: %v", name, err)
	}
	return nil
}

func (rs *redisStore) Load(ctx context.Context, name string) (*tree.Tree, error) {
	data, err := rs.rc.Get(rs.keyFor(name)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading model %q from redis: %v", name, err)
	}
	t, err := text.Read(ctx, strings.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("loading model %q: decoding tree: %v", name, err)
	}
	return t, nil
}

func (rs *redisStore) Delete(ctx context.Context, name string) error {
	_, err := rs.rc.Del(rs.keyFor(name)).Result()
	if err != nil {
		return fmt.Errorf("deleting model %q from redis: %v", name, err)
	}
	return nil
}

func (rs *redisStore) Close(ctx context.Context) error {
	return nil
}

func (rs *redisStore) keyFor(name string) string {
	return fmt.Sprintf("%s:%s", rs.prefix, name)
}
