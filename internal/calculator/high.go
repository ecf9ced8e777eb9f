package calculator

import (
	"WeeklyHigh/internal/model"
	"WeeklyHigh/internal/series"
)

// FindHighIterative walks the series once and returns the record with the
// highest price. Ties keep the record nearest the head.
func FindHighIterative(seq *series.Sequence) (model.Record, error) {
	id := seq.Head()
	if id == series.None {
		return model.Record{}, series.ErrEmptySequence
	}
	best := seq.Record(id)
	for id = seq.Next(id); id != series.None; id = seq.Next(id) {
		if rec := seq.Record(id); rec.Price > best.Price {
			best = rec
		}
	}
	return best, nil
}

// FindHighRecursive returns the same record as FindHighIterative, expressed
// as recursion over (node, best so far). Depth equals the series length.
func FindHighRecursive(seq *series.Sequence) (model.Record, error) {
	head := seq.Head()
	if head == series.None {
		return model.Record{}, series.ErrEmptySequence
	}
	return highFrom(seq, seq.Next(head), seq.Record(head)), nil
}

func highFrom(seq *series.Sequence, id series.NodeID, best model.Record) model.Record {
	if id == series.None {
		return best
	}
	if rec := seq.Record(id); rec.Price > best.Price {
		best = rec
	}
	return highFrom(seq, seq.Next(id), best)
}
