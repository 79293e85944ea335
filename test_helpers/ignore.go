package test_helpers

import (
	"github.com/logice/logice/logic"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

var (
	// IgnorePositions compares syntax trees regardless of where they were read.
	IgnorePositions = cmp.Options{
		cmpopts.IgnoreFields(logic.Token{}, "Offset"),
		cmpopts.IgnoreFields(logic.Tuple{}, "Offset"),
	}
)
