package views

import "github.com/muhammadumer-2/GeoAI-Toolkit/internal/routing"

// Step is one turn-by-turn instruction with its 1-indexed position.
type Step struct {
	Number      int    `json:"number"`
	Instruction string `json:"instruction"`
}

// RenderSteps extracts the ordered turn-by-turn list from the record.
// A nil Steps slice means the field never made it into the record and is a
// missing-field error; an empty (non-nil) slice is a valid route with no
// turn-by-turn data and renders as an empty list.
func RenderSteps(rec *routing.RouteRecord) ([]Step, *ViewError) {
	if rec == nil {
		return nil, errNoRoute()
	}
	if rec.Steps == nil {
		return nil, errMissingField("steps")
	}

	out := make([]Step, len(rec.Steps))
	for i, instr := range rec.Steps {
		out[i] = Step{Number: i + 1, Instruction: instr}
	}
	return out, nil
}
