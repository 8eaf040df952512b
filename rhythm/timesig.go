package rhythm

import (
	"github.com/pkg/errors"
	"golang.org/x/exp/slices"
)

// TimeSignature describes how many beats form one measure and the note value
// that carries one beat. Only BeatsPerMeasure affects sequencing; the note
// value is informational.
type TimeSignature struct {
	BeatsPerMeasure int
	NoteValue       int
	Label           string
}

// TimeSignatures is the preset catalog. Every signature a caller can select
// comes from this list, which guarantees BeatsPerMeasure >= 1 everywhere
// downstream.
var TimeSignatures = []TimeSignature{
	{BeatsPerMeasure: 2, NoteValue: 4, Label: "2/4"},
	{BeatsPerMeasure: 3, NoteValue: 4, Label: "3/4"},
	{BeatsPerMeasure: 4, NoteValue: 4, Label: "4/4"},
	{BeatsPerMeasure: 5, NoteValue: 4, Label: "5/4"},
	{BeatsPerMeasure: 7, NoteValue: 4, Label: "7/4"},
	{BeatsPerMeasure: 6, NoteValue: 8, Label: "6/8"},
	{BeatsPerMeasure: 3, NoteValue: 8, Label: "3/8"},
}

// ErrUnknownTimeSignature is returned when a label does not match any preset.
var ErrUnknownTimeSignature = errors.New("unknown time signature")

// ParseTimeSignature resolves a label such as "4/4" against the preset
// catalog.
func ParseTimeSignature(label string) (TimeSignature, error) {
	i := slices.IndexFunc(TimeSignatures, func(ts TimeSignature) bool {
		return ts.Label == label
	})
	if i < 0 {
		return TimeSignature{}, errors.Wrapf(ErrUnknownTimeSignature, "%q", label)
	}
	return TimeSignatures[i], nil
}

// NextTimeSignature returns the preset following the one with the given
// label, wrapping around at the end of the catalog. Unknown labels yield the
// first preset.
func NextTimeSignature(label string) TimeSignature {
	i := slices.IndexFunc(TimeSignatures, func(ts TimeSignature) bool {
		return ts.Label == label
	})
	if i < 0 {
		return TimeSignatures[0]
	}
	return TimeSignatures[(i+1)%len(TimeSignatures)]
}
