package model

import "errors"

var (
	// ErrInvalidConfiguration is returned when a configuration cannot be built: fewer than 4 players,
	// duplicated players or a requested schedule length the match universe cannot support
	ErrInvalidConfiguration = errors.New("invalid configuration")

	// ErrInvalidMatch is returned when a team or a match is built from the wrong number of players or from overlapping teams
	ErrInvalidMatch = errors.New("invalid match")

	// ErrSolverInfeasible is returned when the exact search proves that no schedule satisfies the hard constraints
	ErrSolverInfeasible = errors.New("no schedule exists under current constraints")

	// ErrSolverTimeout is returned when the search budget expires before the search completes
	ErrSolverTimeout = errors.New("search budget exhausted")

	// ErrDegenerateSampling marks a trajectory that reached a match with no valid continuation
	ErrDegenerateSampling = errors.New("degenerate sampling")
)
