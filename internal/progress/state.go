// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package progress

import "fmt"

// State is the reporter's bookkeeping for one generation run.
//
// Steps and DocsGenerated only grow. LastTodosCompleted never decreases.
// AnalysisPhase starts true and is cleared once, by the first document write
// or directory listing or search. TodosShown latches once the task list is printed.
type State struct {
	Steps              int
	DocsGenerated      int
	AnalysisPhase      bool
	LastTodosCompleted int
	TodosShown         bool
}

// NewState returns the state at the start of a run.
func NewState() State {
	return State{AnalysisPhase: true}
}

// String implements fmt.Stringer.
func (s State) String() string {
	return fmt.Sprintf("steps=%d docs=%d analysis=%t todos=%d shown=%t",
		s.Steps, s.DocsGenerated, s.AnalysisPhase, s.LastTodosCompleted, s.TodosShown)
}
