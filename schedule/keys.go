package schedule

// StopKey identifies one stop call on a trip. The sequence number
// disambiguates loop routes that serve the same physical stop twice;
// HasSequence distinguishes "sequence 0" from "sequence unknown" so the key
// has structural equality and can index override maps directly.
type StopKey struct {
	TripID      string
	StopID      string
	Sequence    int
	HasSequence bool
}

// NewStopKey builds an unqualified key for feeds that do not report a stop
// sequence.
func NewStopKey(tripID, stopID string) StopKey {
	return StopKey{TripID: tripID, StopID: stopID}
}

// NewSequencedStopKey builds a sequence-qualified key.
func NewSequencedStopKey(tripID, stopID string, sequence int) StopKey {
	return StopKey{TripID: tripID, StopID: stopID, Sequence: sequence, HasSequence: true}
}

// WithoutSequence strips the sequence qualifier, yielding the fallback key.
func (k StopKey) WithoutSequence() StopKey {
	return StopKey{TripID: k.TripID, StopID: k.StopID}
}
