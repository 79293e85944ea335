// Package fuzz has a go-fuzz entry point that loads arbitrary programs.
package fuzz

import (
	"context"

	"github.com/logice/logice/engine"
	"github.com/logice/logice/program"
)

// Fuzz loads data as a program and, when it's valid, queries the head of
// every clause with a step budget.
func Fuzz(data []byte) int {
	e := engine.New(engine.WithMaxSteps(1000))
	prog, err := e.Load(string(data))
	if err != nil {
		return 0
	}
	for _, goal := range headGoals(prog) {
		answers, err := e.Query(context.Background(), prog, engine.Query{Goal: goal})
		if err != nil {
			panic(err)
		}
		for answers.Next() {
		}
	}
	return 1
}

// headGoals renders each clause head as a goal, keeping its variables.
func headGoals(prog *program.Program) []string {
	var goals []string
	for _, key := range prog.Keys {
		for _, clause := range prog.Clauses[key] {
			goals = append(goals, program.FormatGoal(prog.Cells, prog.Symbols, clause.HeadAddr))
		}
	}
	return goals
}
