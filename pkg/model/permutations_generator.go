package model

import "math"

// unassigned marks an attribute of a permutation that has not been chosen yet
const unassigned = math.MaxInt

// permutationGenerator enumerates every assignment of the attributes (one value per domain) that holds all the constraints.
// Constraints are evaluated on partial permutations as well, so they must treat an attribute equal to unassigned as "not ready"
//
// Example:
//
//	generator := newPermutationGenerator(teams, teams)
//
//	permutations := generator.ConstrainedPermutations([]func(permutation []int) bool{
//		func(permutation []int) bool {
//			// permutation[1] relies on permutation[0] being assigned
//			return permutation[1] == unassigned || permutation[0] < permutation[1]
//		},
//	})
type permutationGenerator interface {
	ConstrainedPermutations(constraints []func(permutation []int) bool) [][]int
}

func newPermutationGenerator(domains ...int) permutationGenerator {
	return &permutationGeneratorImplementation{domains: domains}
}

type permutationGeneratorImplementation struct {
	domains []int
}

func (generator *permutationGeneratorImplementation) ConstrainedPermutations(constraints []func(permutation []int) bool) [][]int {
	permutation := make([]int, len(generator.domains))
	for i := range permutation {
		permutation[i] = unassigned
	}

	permutations := make([][]int, 0)
	generator.constrainedPermutations(constraints, 0, permutation, &permutations)
	return permutations
}

func (generator *permutationGeneratorImplementation) constrainedPermutations(
	constraints []func(permutation []int) bool,
	currentDomain int,
	permutation []int,
	permutations *[][]int,
) {
	if currentDomain >= len(generator.domains) {
		permutationCopy := make([]int, len(permutation))
		copy(permutationCopy, permutation)
		*permutations = append(*permutations, permutationCopy)
		return
	}

	for i := range generator.domains[currentDomain] {
		permutation[currentDomain] = i
		constraintViolated := false
		for _, constraint := range constraints {
			if !constraint(permutation) {
				constraintViolated = true
				break
			}
		}

		if constraintViolated {
			continue
		}

		generator.constrainedPermutations(constraints, currentDomain+1, permutation, permutations)
	}

	permutation[currentDomain] = unassigned
}
