// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package merkle

import (
	"sort"

	"github.com/bitmark-inc/ledgerd/digest"
	"github.com/bitmark-inc/ledgerd/fault"
)

// Update - nodes written since the last commit
//
// reads see staged nodes first, so several leaves of one block can be
// inserted in sequence before anything is persisted
type Update struct {
	tree   *Tree
	reader NodeReader
	staged map[string]digest.Digest
}

func (u *Update) node(height int, index uint64) (digest.Digest, error) {
	location := Location(height, index)
	if d, ok := u.staged[location]; ok {
		return d, nil
	}
	if nil == u.reader {
		return u.tree.empty[height], nil
	}
	d, found, err := u.reader.GetMerkleNode(location)
	if nil != err {
		return digest.Digest{}, err
	}
	if !found {
		return u.tree.empty[height], nil
	}
	return d, nil
}

func (u *Update) checkIndex(leafIndex uint64) error {
	if leafIndex > u.tree.MaximumLeafIndex() {
		return fault.CapacityExceeded(leafIndex)
	}
	return nil
}

// AuthPath - sibling of every node from the leaf up to, but not
// including, the root
func (u *Update) AuthPath(leafIndex uint64) ([]PathNode, error) {
	if err := u.checkIndex(leafIndex); nil != err {
		return nil, err
	}

	path := make([]PathNode, u.tree.depth)
	index := leafIndex
	for h := 0; h < u.tree.depth; h += 1 {
		sibling, err := u.node(h, index^1)
		if nil != err {
			return nil, err
		}
		path[h] = PathNode{
			Sibling:        sibling,
			IsRightSibling: 0 == index&1,
		}
		index >>= 1
	}
	return path, nil
}

// InsertLeaf - set a leaf and recompute its ancestors, returns the new root
func (u *Update) InsertLeaf(leafIndex uint64, cm digest.Digest) (digest.Digest, error) {
	if err := u.checkIndex(leafIndex); nil != err {
		return digest.Digest{}, err
	}

	u.staged[Location(0, leafIndex)] = cm

	current := cm
	index := leafIndex
	for h := 1; h <= u.tree.depth; h += 1 {
		sibling, err := u.node(h-1, index^1)
		if nil != err {
			return digest.Digest{}, err
		}
		if 0 == index&1 {
			current = Combine(current, sibling)
		} else {
			current = Combine(sibling, current)
		}
		index >>= 1
		u.staged[Location(h, index)] = current
	}
	return current, nil
}

// Root - root including staged nodes
func (u *Update) Root() (digest.Digest, error) {
	return u.node(u.tree.depth, 0)
}

// Count - number of staged nodes
func (u *Update) Count() int {
	return len(u.staged)
}

// Each - visit staged nodes in location order
func (u *Update) Each(f func(location string, node digest.Digest)) {
	locations := make([]string, 0, len(u.staged))
	for l := range u.staged {
		locations = append(locations, l)
	}
	sort.Strings(locations)
	for _, l := range locations {
		f(l, u.staged[l])
	}
}
