package session

import "math/rand"

// Queue is the ordered traversal of filtered item ids plus the cursor. The
// zero value is a valid empty queue.
type Queue struct {
	IDs   []string
	Index int
}

// Len returns the number of queued ids.
func (q Queue) Len() int { return len(q.IDs) }

// CurrentID returns the id under the cursor, or "" on an empty queue.
func (q Queue) CurrentID() string {
	if len(q.IDs) == 0 {
		return ""
	}
	return q.IDs[q.Index]
}

// Reconcile folds a changed filtered set into the queue: ids that fell out
// of the set are pruned (keeping relative order), newly admitted ids are
// appended in filter order, and the cursor is clamped. A queue left empty by
// pruning is refilled with a fresh shuffle of the filtered set.
func Reconcile(q Queue, filteredIDs []string, rnd *rand.Rand) Queue {
	if len(filteredIDs) == 0 {
		return Queue{}
	}

	valid := make(map[string]struct{}, len(filteredIDs))
	for _, id := range filteredIDs {
		valid[id] = struct{}{}
	}

	seen := make(map[string]struct{}, len(q.IDs))
	pruned := make([]string, 0, len(filteredIDs))
	for _, id := range q.IDs {
		if _, ok := valid[id]; !ok {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		pruned = append(pruned, id)
		seen[id] = struct{}{}
	}

	if len(pruned) == 0 {
		return Queue{IDs: Shuffle(filteredIDs, rnd)}
	}

	for _, id := range filteredIDs {
		if _, ok := seen[id]; !ok {
			pruned = append(pruned, id)
			seen[id] = struct{}{}
		}
	}

	index := q.Index
	if index < 0 {
		index = 0
	}
	if index >= len(pruned) {
		index = len(pruned) - 1
	}
	return Queue{IDs: pruned, Index: index}
}

// Advance moves the cursor forward, wrapping to the start. Sessions are
// endless rather than terminating.
func Advance(q Queue) Queue {
	if len(q.IDs) == 0 {
		return q
	}
	q.Index = (q.Index + 1) % len(q.IDs)
	return q
}

// Back moves the cursor backward with the symmetric wrap.
func Back(q Queue) Queue {
	if len(q.IDs) == 0 {
		return q
	}
	q.Index = (q.Index - 1 + len(q.IDs)) % len(q.IDs)
	return q
}

// Reshuffle replaces the queue with a fresh permutation of the current ids
// and rewinds the cursor.
func Reshuffle(q Queue, rnd *rand.Rand) Queue {
	if len(q.IDs) == 0 {
		return q
	}
	return Queue{IDs: Shuffle(q.IDs, rnd)}
}

// Shuffle returns a uniformly random permutation of ids (Fisher-Yates),
// leaving the input untouched.
func Shuffle(ids []string, rnd *rand.Rand) []string {
	out := make([]string, len(ids))
	copy(out, ids)
	for i := len(out) - 1; i > 0; i-- {
		j := rnd.Intn(i + 1)
		out[i], out[j] = out[j], out[i]
	}
	return out
}
