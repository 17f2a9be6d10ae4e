// Package depgraph implements the Dependency Validator (C7): a pure
// graph pass over a project's stages and their declared transitions.
package depgraph

import (
	"fmt"

	"github.com/plcforge/plcforge/internal/domain"
)

// Validate checks (stages, dependencies) and returns the validation
// result plus a transition graph for visualization. Unlike the original
// implementation this walks reachability to a fixed point rather than a
// single pass, so a stage reachable only transitively (0→1→2) is not
// misreported as unreachable.
func Validate(stages []domain.Stage, dependencies []domain.StageDependency) domain.DependencyValidation {
	var errs, warnings []string

	stageNumbers := make(map[int]bool, len(stages))
	for _, s := range stages {
		stageNumbers[s.StageNumber] = true
	}

	for _, dep := range dependencies {
		if !stageNumbers[dep.FromStage] {
			errs = append(errs, fmt.Sprintf("Dependency references non-existent stage: %d", dep.FromStage))
		}
		if !stageNumbers[dep.ToStage] {
			errs = append(errs, fmt.Sprintf("Dependency references non-existent stage: %d", dep.ToStage))
		}
		if dep.FromStage >= dep.ToStage {
			warnings = append(warnings, fmt.Sprintf("Backwards dependency: Stage %d → %d", dep.FromStage, dep.ToStage))
		}
	}

	reachable := reachableFromZero(dependencies)
	for _, s := range stages {
		if s.StageNumber != 0 && !reachable[s.StageNumber] {
			warnings = append(warnings, fmt.Sprintf("Stage %d may be unreachable", s.StageNumber))
		}
	}

	return domain.DependencyValidation{
		Valid:    len(errs) == 0,
		Errors:   errs,
		Warnings: warnings,
		Graph:    BuildTransitionGraph(stages, dependencies),
	}
}

// reachableFromZero computes the full forward-reachable set from stage 0,
// iterating edges to a fixed point so multi-hop chains are resolved
// regardless of the order dependencies were declared in.
func reachableFromZero(dependencies []domain.StageDependency) map[int]bool {
	reachable := map[int]bool{0: true}
	for {
		grew := false
		for _, dep := range dependencies {
			if reachable[dep.FromStage] && !reachable[dep.ToStage] {
				reachable[dep.ToStage] = true
				grew = true
			}
		}
		if !grew {
			break
		}
	}
	return reachable
}

// BuildTransitionGraph renders stages and dependencies as a node/edge
// graph for downstream visualization (spec.md §4.7, SPEC_FULL supplement
// #2).
func BuildTransitionGraph(stages []domain.Stage, dependencies []domain.StageDependency) domain.TransitionGraph {
	nodes := make([]domain.TransitionNode, len(stages))
	for i, s := range stages {
		nodes[i] = domain.TransitionNode{ID: s.StageNumber, Label: s.StageName, Type: s.StageType}
	}

	edges := make([]domain.TransitionEdge, len(dependencies))
	for i, d := range dependencies {
		edges[i] = domain.TransitionEdge{From: d.FromStage, To: d.ToStage, Label: d.Condition}
	}

	return domain.TransitionGraph{Nodes: nodes, Edges: edges}
}
