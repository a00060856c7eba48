package model

import (
	"fmt"
	"slices"

	"github.com/samber/lo"
)

const PlayersPerMatch = 4

// Configuration holds the player pool and the constants derived from it. It is immutable once built
type Configuration struct {
	players              []Player
	index                map[Player]int
	matchesCount         int
	targetGamesPerPlayer int
}

type ConfigurationOption func(*configurationOptions)

type configurationOptions struct {
	matchesCount int
	targetGames  int
}

// WithMatchesCount requests a schedule length different from the default (one round per player)
func WithMatchesCount(matchesCount int) ConfigurationOption {
	return func(options *configurationOptions) { options.matchesCount = matchesCount }
}

// WithTargetGames overrides the number of games every player is expected to play
func WithTargetGames(targetGames int) ConfigurationOption {
	return func(options *configurationOptions) { options.targetGames = targetGames }
}

// NewConfiguration builds a configuration for n players named Player_01, Player_02 and so on
func NewConfiguration(n int, opts ...ConfigurationOption) (*Configuration, error) {
	if n < PlayersPerMatch {
		return nil, fmt.Errorf("%w: at least %v players are required, got %v", ErrInvalidConfiguration, PlayersPerMatch, n)
	}
	players := lo.Times(n, func(i int) Player { return Player(fmt.Sprintf("Player_%02d", i+1)) })
	return NewConfigurationWithPlayers(players, opts...)
}

func NewConfigurationWithPlayers(players []Player, opts ...ConfigurationOption) (*Configuration, error) {
	n := len(players)
	if n < PlayersPerMatch {
		return nil, fmt.Errorf("%w: at least %v players are required, got %v", ErrInvalidConfiguration, PlayersPerMatch, n)
	}
	if duplicates := lo.FindDuplicates(players); len(duplicates) > 0 {
		return nil, fmt.Errorf("%w: duplicated players %v", ErrInvalidConfiguration, duplicates)
	}

	sorted := slices.Clone(players)
	slices.Sort(sorted)

	options := configurationOptions{matchesCount: n}
	for _, opt := range opts {
		opt(&options)
	}

	maxMatches := maxMatches(n)
	if options.matchesCount != n && (options.matchesCount < 1 || options.matchesCount > maxMatches) {
		return nil, fmt.Errorf("%w: %v players support between 1 and %v matches without repeating a team, %v were requested", ErrInvalidConfiguration, n, maxMatches, options.matchesCount)
	}

	targetGames := defaultTargetGames(n)
	if options.targetGames != 0 {
		if options.targetGames < 1 || options.targetGames > options.matchesCount {
			return nil, fmt.Errorf("%w: target games must be between 1 and %v, got %v", ErrInvalidConfiguration, options.matchesCount, options.targetGames)
		}
		targetGames = options.targetGames
	}

	index := make(map[Player]int, n)
	for i, player := range sorted {
		index[player] = i
	}

	return &Configuration{
		players:              sorted,
		index:                index,
		matchesCount:         options.matchesCount,
		targetGamesPerPlayer: targetGames,
	}, nil
}

// Four players can only play three distinct matches, so the target is capped at 3; beyond that every player is expected to miss two rounds
func defaultTargetGames(n int) int {
	if n == PlayersPerMatch {
		return 3
	}
	return n - 2
}

// Every match consumes two teams and a team may be used once
func maxMatches(n int) int {
	return n * (n - 1) / 4
}

func (config *Configuration) N() int {
	return len(config.players)
}

// Players returns a copy of the player pool in ascending order
func (config *Configuration) Players() []Player {
	return slices.Clone(config.players)
}

func (config *Configuration) Player(index int) Player {
	return config.players[index]
}

// Index returns the position of player in the sorted pool
func (config *Configuration) Index(player Player) (int, bool) {
	index, ok := config.index[player]
	return index, ok
}

func (config *Configuration) Contains(player Player) bool {
	_, ok := config.index[player]
	return ok
}

func (config *Configuration) MatchesCount() int {
	return config.matchesCount
}

func (config *Configuration) PlayersPerMatch() int {
	return PlayersPerMatch
}

func (config *Configuration) BenchSize() int {
	return config.N() - PlayersPerMatch
}

func (config *Configuration) TargetGamesPerPlayer() int {
	return config.targetGamesPerPlayer
}

func (config *Configuration) TargetRestsPerPlayer() int {
	return config.BenchSize()
}

// MaxMatches is the longest schedule that can avoid repeating a team
func (config *Configuration) MaxMatches() int {
	return maxMatches(config.N())
}

func (config *Configuration) String() string {
	return fmt.Sprintf("players: %v, matches: %v, bench: %v, target games per player: %v", config.N(), config.matchesCount, config.BenchSize(), config.targetGamesPerPlayer)
}
