package driver

import (
	"fmt"
	"strings"
)

// Stage names how far the pipeline runs and which artifact comes back.
type Stage string

const (
	StageParsed    Stage = "parsed"
	StageAnalyzed  Stage = "analyzed"
	StageOptimized Stage = "optimized"
	StageJS        Stage = "js"
	StageGenerate  Stage = "generate"
)

// Stages lists every stage in pipeline order.
var Stages = []Stage{StageParsed, StageAnalyzed, StageOptimized, StageJS, StageGenerate}

// UsageError is a request the driver cannot interpret.
type UsageError struct {
	Msg string
}

func (e *UsageError) Error() string { return e.Msg }

// ParseStage validates a stage name.
func ParseStage(name string) (Stage, error) {
	for _, s := range Stages {
		if string(s) == name {
			return s, nil
		}
	}
	return "", &UsageError{Msg: fmt.Sprintf("Unknown output type %q", name)}
}

// StageNames is the comma separated list used in help text.
func StageNames() string {
	names := make([]string, len(Stages))
	for i, s := range Stages {
		names[i] = string(s)
	}
	return strings.Join(names, ", ")
}
