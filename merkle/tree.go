// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package merkle

import (
	"github.com/bitmark-inc/ledgerd/digest"
	"github.com/bitmark-inc/ledgerd/fault"
)

// limits on the depth of a tree, leaf indexes must fit in 64 bits
const (
	MinimumDepth = 1
	MaximumDepth = 63
)

// NodeReader - source of committed nodes
//
// found is false for a node that was never written, which is not an
// error: the node then has the empty value for its height
type NodeReader interface {
	GetMerkleNode(location string) (node digest.Digest, found bool, err error)
}

// PathNode - one level of an authentication path
//
// IsRightSibling is true when Sibling is to the right of the node on
// the path, i.e. the path node is a left child
type PathNode struct {
	Sibling        digest.Digest
	IsRightSibling bool
}

// Tree - shape of the accumulator and its precomputed empty nodes
type Tree struct {
	depth int
	empty []digest.Digest
}

// New - create a tree description of the given depth
func New(depth int) (*Tree, error) {
	if depth < MinimumDepth || depth > MaximumDepth {
		return nil, fault.ErrInvalidDepth
	}

	// empty[0] is the all-zero leaf
	empty := make([]digest.Digest, depth+1)
	for h := 1; h <= depth; h += 1 {
		empty[h] = Combine(empty[h-1], empty[h-1])
	}

	return &Tree{
		depth: depth,
		empty: empty,
	}, nil
}

// Depth - number of levels above the leaves
func (t *Tree) Depth() int {
	return t.depth
}

// MaximumLeafIndex - highest index that can be assigned, 2^D - 1
func (t *Tree) MaximumLeafIndex() uint64 {
	return uint64(1)<<uint(t.depth) - 1
}

// Empty - value of a never written node at the given height
func (t *Tree) Empty(height int) digest.Digest {
	return t.empty[height]
}

// EmptyRoot - root of a tree with no leaves
func (t *Tree) EmptyRoot() digest.Digest {
	return t.empty[t.depth]
}

// NewUpdate - start staging changes on top of committed nodes
func (t *Tree) NewUpdate(reader NodeReader) *Update {
	return &Update{
		tree:   t,
		reader: reader,
		staged: make(map[string]digest.Digest),
	}
}

// AuthPath - authentication path of a committed leaf
func (t *Tree) AuthPath(reader NodeReader, leafIndex uint64) ([]PathNode, error) {
	return t.NewUpdate(reader).AuthPath(leafIndex)
}

// Root - committed root
func (t *Tree) Root(reader NodeReader) (digest.Digest, error) {
	return t.NewUpdate(reader).Root()
}

// Verify - check that a leaf and its path hash up to root
func (t *Tree) Verify(root digest.Digest, leaf digest.Digest, path []PathNode) bool {
	if t.depth != len(path) {
		return false
	}
	current := leaf
	for _, p := range path {
		if p.IsRightSibling {
			current = Combine(current, p.Sibling)
		} else {
			current = Combine(p.Sibling, current)
		}
	}
	return current == root
}
