// Package series holds weekly price records in ascending date order.
//
// Nodes live in an arena and link to their successor by index, so a
// Sequence never hands out pointers into its own storage. A NodeID is only
// meaningful for the Sequence that returned it.
package series

import (
	"errors"
	"iter"
	"time"

	"WeeklyHigh/internal/model"
)

var (
	// ErrEmptySequence is returned by lookups over a sequence with no nodes.
	ErrEmptySequence = errors.New("sequence is empty")
	// ErrInvalidTarget is returned by InsertAfter when the target is not a node of the sequence.
	ErrInvalidTarget = errors.New("target node is not part of this sequence")
)

// NodeID addresses a node inside a Sequence.
type NodeID int

// None marks the absence of a node (empty head, tail successor).
const None NodeID = -1

type node struct {
	rec  model.Record
	next NodeID
}

// Sequence is a forward-linked chain of records.
type Sequence struct {
	nodes []node
	head  NodeID
}

// New returns an empty sequence.
func New() *Sequence {
	return &Sequence{head: None}
}

// Len returns the number of records.
func (s *Sequence) Len() int { return len(s.nodes) }

// Head returns the first node, or None when empty.
func (s *Sequence) Head() NodeID { return s.head }

// Next returns the successor of id. id must belong to s.
func (s *Sequence) Next(id NodeID) NodeID { return s.nodes[id].next }

// Record returns the record held by id. id must belong to s.
func (s *Sequence) Record(id NodeID) model.Record { return s.nodes[id].rec }

// Contains reports whether id addresses a node of s.
func (s *Sequence) Contains(id NodeID) bool {
	return id >= 0 && int(id) < len(s.nodes)
}

// Prepend makes rec the new head.
func (s *Sequence) Prepend(rec model.Record) NodeID {
	s.nodes = append(s.nodes, node{rec: rec, next: s.head})
	s.head = NodeID(len(s.nodes) - 1)
	return s.head
}

// InsertAfter links rec directly behind target.
func (s *Sequence) InsertAfter(target NodeID, rec model.Record) (NodeID, error) {
	if !s.Contains(target) {
		return None, ErrInvalidTarget
	}
	s.nodes = append(s.nodes, node{rec: rec, next: s.nodes[target].next})
	id := NodeID(len(s.nodes) - 1)
	s.nodes[target].next = id
	return id, nil
}

// FindInsertionPoint returns the last node whose successor is absent or
// dated on or after date. It returns None for an empty sequence.
func (s *Sequence) FindInsertionPoint(date time.Time) NodeID {
	cur := s.head
	if cur == None {
		return None
	}
	for {
		next := s.nodes[cur].next
		if next == None || !s.nodes[next].rec.Date.Before(date) {
			return cur
		}
		cur = next
	}
}

// Insert places rec so that dates stay non-decreasing from head to tail.
func (s *Sequence) Insert(rec model.Record) NodeID {
	if s.head == None || rec.Date.Before(s.nodes[s.head].rec.Date) {
		return s.Prepend(rec)
	}
	// the insertion point always exists once the head check above has passed
	id, _ := s.InsertAfter(s.FindInsertionPoint(rec.Date), rec)
	return id
}

// All yields records from head to tail. It may be ranged over repeatedly.
func (s *Sequence) All() iter.Seq[model.Record] {
	return func(yield func(model.Record) bool) {
		for id := s.head; id != None; id = s.nodes[id].next {
			if !yield(s.nodes[id].rec) {
				return
			}
		}
	}
}

// Records returns a copy of the records in traversal order.
func (s *Sequence) Records() []model.Record {
	out := make([]model.Record, 0, len(s.nodes))
	for rec := range s.All() {
		out = append(out, rec)
	}
	return out
}
