package model

import "github.com/samber/lo"

// DefaultRepetitionPenalty is the cost of a match reusing a team. It is chosen to dominate the per-player deviation term
const DefaultRepetitionPenalty = 10

// CostReport is the fitness of a schedule (lower is better, zero only for a fully valid schedule) plus the aggregates it was computed from
type CostReport struct {
	PlayerDeviation int // Sum over players of |appearances - target|
	TeamRepetition  int // Penalty accumulated by matches reusing an earlier team
	Total           int
	Tally           Tally
}

type Evaluator struct {
	config            *Configuration
	repetitionPenalty int
}

type EvaluatorOption func(*Evaluator)

func WithRepetitionPenalty(penalty int) EvaluatorOption {
	return func(evaluator *Evaluator) { evaluator.repetitionPenalty = penalty }
}

func NewEvaluator(config *Configuration, opts ...EvaluatorOption) *Evaluator {
	evaluator := &Evaluator{
		config:            config,
		repetitionPenalty: DefaultRepetitionPenalty,
	}
	for _, opt := range opts {
		opt(evaluator)
	}
	return evaluator
}

func (evaluator *Evaluator) RepetitionPenalty() int {
	return evaluator.repetitionPenalty
}

// Score evaluates a schedule (or a fragment of one). The schedule is not modified
func (evaluator *Evaluator) Score(schedule Schedule) CostReport {
	report := CostReport{}
	teamHistory := make(map[Team]bool, 2*len(schedule))

	for _, match := range schedule {
		teams := match.Teams()

		// Penalty for repeating a team
		if teamHistory[teams[0]] || teamHistory[teams[1]] {
			report.TeamRepetition += evaluator.repetitionPenalty
		}
		teamHistory[teams[0]] = true
		teamHistory[teams[1]] = true
	}

	report.Tally = NewTally(evaluator.config, schedule)

	// Penalty for missing the target number of games
	target := evaluator.config.targetGamesPerPlayer
	report.PlayerDeviation = lo.SumBy(evaluator.config.players, func(player Player) int {
		return abs(report.Tally.Matches[player] - target)
	})

	report.Total = report.PlayerDeviation + report.TeamRepetition
	return report
}

// Validate is the strict acceptance test of a finished schedule: it must have exactly MatchesCount rounds, only pool players,
// no repeated team and every player must play exactly TargetGamesPerPlayer games
func (evaluator *Evaluator) Validate(schedule Schedule) bool {
	if len(schedule) != evaluator.config.matchesCount {
		return false
	}

	playerCounts := make(map[Player]int, evaluator.config.N())
	teamHistory := make(map[Team]bool, 2*len(schedule))

	for _, match := range schedule {
		teams := match.Teams()

		// Check teams uniqueness
		if teamHistory[teams[0]] || teamHistory[teams[1]] {
			return false
		}
		teamHistory[teams[0]] = true
		teamHistory[teams[1]] = true

		for _, player := range match.Players() {
			if !evaluator.config.Contains(player) {
				return false
			}
			playerCounts[player]++
		}
	}

	// Check the number of games of every player
	return lo.EveryBy(evaluator.config.players, func(player Player) bool {
		return playerCounts[player] == evaluator.config.targetGamesPerPlayer
	})
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
