// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package reservoir

import (
	"sort"
	"time"

	"github.com/bitmark-inc/ledgerd/digest"
	"github.com/bitmark-inc/ledgerd/fault"
	"github.com/bitmark-inc/ledgerd/transactionrecord"
)

// Insert - add a candidate, returning its hash
func (r *Reservoir) Insert(candidate transactionrecord.Candidate) (digest.Digest, error) {
	if nil == candidate {
		return digest.Digest{}, fault.ErrIncompleteTransaction
	}
	if err := candidate.Check(); nil != err {
		r.log.Debugf("refused: %s", err)
		return digest.Digest{}, err
	}

	hash := candidate.Hash()
	if _, found := r.rejected.Get(string(hash[:])); found {
		return hash, fault.ErrTransactionRejected
	}

	// ledger read happens outside the pool lock
	committed, err := r.ledger.HasTx(hash)
	if nil != err {
		return hash, err
	}
	if committed {
		return hash, fault.ErrTransactionAlreadyCommitted
	}

	r.Lock()
	defer r.Unlock()

	if _, ok := r.entries[hash]; ok {
		return hash, fault.ErrTransactionAlreadyExists
	}

	r.sequence += 1
	r.entries[hash] = &entry{
		hash:      hash,
		candidate: candidate,
		sequence:  r.sequence,
		expires:   time.Now().Add(r.expiry),
	}
	r.log.Debugf("inserted: %v  type: %s", hash, candidate.Type())
	return hash, nil
}

// Contains - check if a hash is pooled
func (r *Reservoir) Contains(hash digest.Digest) bool {
	r.RLock()
	_, ok := r.entries[hash]
	r.RUnlock()
	return ok
}

// Count - number of pooled candidates
func (r *Reservoir) Count() int {
	r.RLock()
	defer r.RUnlock()
	return len(r.entries)
}

// in arrival order, caller holds the lock
func (r *Reservoir) sorted() []*entry {
	list := make([]*entry, 0, len(r.entries))
	for _, e := range r.entries {
		list = append(list, e)
	}
	sort.Slice(list, func(i, j int) bool {
		return list[i].sequence < list[j].sequence
	})
	return list
}

// All - copy of the pool contents in arrival order
func (r *Reservoir) All() []transactionrecord.Candidate {
	r.RLock()
	defer r.RUnlock()

	list := r.sorted()
	candidates := make([]transactionrecord.Candidate, len(list))
	for i, e := range list {
		candidates[i] = e.candidate
	}
	return candidates
}

// Hashes - hashes of the pool contents in arrival order
func (r *Reservoir) Hashes() []digest.Digest {
	r.RLock()
	defer r.RUnlock()
	return r.hashes()
}

func (r *Reservoir) hashes() []digest.Digest {
	list := r.sorted()
	hashes := make([]digest.Digest, len(list))
	for i, e := range list {
		hashes[i] = e.hash
	}
	return hashes
}

// Remove - evict committed candidates, absent entries are ignored
//
// returns the hashes that remain in the pool
func (r *Reservoir) Remove(committed []transactionrecord.Candidate) []digest.Digest {
	r.Lock()
	defer r.Unlock()

	for _, c := range committed {
		delete(r.entries, c.Hash())
	}
	return r.hashes()
}

// Reject - evict candidates and refuse them for a while
func (r *Reservoir) Reject(hashes ...digest.Digest) {
	r.Lock()
	defer r.Unlock()

	for _, hash := range hashes {
		delete(r.entries, hash)
		r.rejected.SetDefault(string(hash[:]), struct{}{})
		r.log.Infof("rejected: %v", hash)
	}
}

// Diff - pooled hashes that are not in known
func (r *Reservoir) Diff(known []digest.Digest) []digest.Digest {
	k := make(map[digest.Digest]struct{}, len(known))
	for _, hash := range known {
		k[hash] = struct{}{}
	}

	r.RLock()
	defer r.RUnlock()

	diff := make([]digest.Digest, 0)
	for _, e := range r.sorted() {
		if _, ok := k[e.hash]; !ok {
			diff = append(diff, e.hash)
		}
	}
	return diff
}

// GetTxs - pooled candidates for a list of hashes, absent hashes are skipped
func (r *Reservoir) GetTxs(hashes []digest.Digest) []transactionrecord.Candidate {
	r.RLock()
	defer r.RUnlock()

	candidates := make([]transactionrecord.Candidate, 0, len(hashes))
	for _, hash := range hashes {
		if e, ok := r.entries[hash]; ok {
			candidates = append(candidates, e.candidate)
		}
	}
	return candidates
}

// Expire - drop candidates that have waited too long, returns count
func (r *Reservoir) Expire(now time.Time) int {
	r.Lock()
	defer r.Unlock()

	n := 0
	for hash, e := range r.entries {
		if now.After(e.expires) {
			delete(r.entries, hash)
			n += 1
		}
	}
	return n
}
