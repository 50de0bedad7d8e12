package batch

import (
	"errors"

	"github.com/Ruchit0807/chemicalplantdesign009/internal/calc/tank"
)

var ErrNoItems = errors.New("no items")

// Runner validates and calculates one tank. *tank.Handler implements it.
type Runner interface {
	Run(in tank.Input) (tank.Output, tank.ValidationResult, error)
}

type Request struct {
	Items []tank.Input `json:"items"`
}

// Item is the outcome for one input. Exactly one of Output, Errors and
// Error is set.
type Item struct {
	Index  int          `json:"index"`
	Input  tank.Input   `json:"input"`
	Output *tank.Output `json:"output,omitempty"`
	Errors []string     `json:"errors,omitempty"`
	Error  string       `json:"error,omitempty"`
}

func (i Item) OK() bool {
	return i.Output != nil
}

type Result struct {
	Count   int    `json:"count"`
	Failed  int    `json:"failed"`
	Results []Item `json:"results"`
}

// Add appends an item and keeps the counters in step.
func (r *Result) Add(item Item) {
	r.Results = append(r.Results, item)
	r.Count++
	if !item.OK() {
		r.Failed++
	}
}

// RunOne calculates a single input, turning failures into item errors.
func RunOne(r Runner, index int, in tank.Input) Item {
	item := Item{Index: index, Input: in}
	out, v, err := r.Run(in)
	switch {
	case !v.IsValid:
		item.Errors = v.Errors
	case err != nil:
		item.Error = err.Error()
	default:
		item.Output = &out
	}
	return item
}

// Calculate runs every item. A bad item is reported in its slot and does
// not stop the rest.
func Calculate(r Runner, items []tank.Input) (Result, error) {
	if len(items) == 0 {
		return Result{}, ErrNoItems
	}
	if r == nil {
		r = &tank.Handler{}
	}
	out := Result{Results: make([]Item, 0, len(items))}
	for i, in := range items {
		out.Add(RunOne(r, i, in))
	}
	return out, nil
}
