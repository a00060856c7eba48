package model

import (
	"testing"

	"github.com/onsi/gomega"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUniverseSize(t *testing.T) {
	// C(C(n,2),2) team pairs filtered to disjoint ones: C(n,4) * 3
	scenarios := map[int]int{
		4: 3,
		5: 15,
		6: 45,
		7: 105,
		8: 210,
	}

	for n, expected := range scenarios {
		//** Arrange
		config, err := NewConfiguration(n)
		require.NoError(t, err)

		//** Act
		universe := NewUniverse(config)

		//** Assert
		assert.Equal(t, expected, universe.Len(), "players: %v", n)
	}
}

func TestUniverseMatchesAreValid(t *testing.T) {
	g := gomega.NewWithT(t)

	for n := 4; n <= 8; n++ {
		config, err := NewConfiguration(n)
		g.Expect(err).NotTo(gomega.HaveOccurred())
		universe := NewUniverse(config)

		for i, match := range universe.Matches() {
			teams := match.Teams()
			g.Expect(match.Players()).To(gomega.HaveLen(PlayersPerMatch))
			g.Expect(teams[0].Disjoint(teams[1])).To(gomega.BeTrue())
			g.Expect(match.Bench(config.Players())).To(gomega.HaveLen(config.BenchSize()))

			index, ok := universe.IndexOf(match)
			g.Expect(ok).To(gomega.BeTrue())
			g.Expect(index).To(gomega.Equal(i))
		}
	}
}

func TestUniverseFourPlayers(t *testing.T) {
	//** Arrange
	config, err := NewConfigurationWithPlayers([]Player{"K", "P", "W", "T"})
	require.NoError(t, err)

	//** Act
	universe := NewUniverse(config)

	//** Assert
	assert.ElementsMatch(t, []Match{
		MustMatch("K", "P", "T", "W"),
		MustMatch("K", "T", "P", "W"),
		MustMatch("K", "W", "P", "T"),
	}, universe.Matches())
}

func TestUniverseDeterministic(t *testing.T) {
	config, err := NewConfiguration(6)
	require.NoError(t, err)

	assert.Equal(t, NewUniverse(config).Matches(), NewUniverse(config).Matches())
}

func TestUniverseSchedule(t *testing.T) {
	config, err := NewConfiguration(5)
	require.NoError(t, err)
	universe := NewUniverse(config)

	schedule, err := universe.Schedule([]int{0, 3, 14})
	require.NoError(t, err)
	assert.Equal(t, universe.At(3), schedule[1])

	_, err = universe.Schedule([]int{15})
	assert.ErrorIs(t, err, ErrInvalidMatch)
}

func TestIsMatchValid(t *testing.T) {
	pool := []Player{"A", "B", "C", "D", "E"}

	assert.True(t, isMatchValid(pool, MustTeam(t, "A", "B"), MustTeam(t, "C", "D")))
	assert.False(t, isMatchValid(pool, MustTeam(t, "A", "B"), MustTeam(t, "B", "D")))
	assert.False(t, isMatchValid(pool, MustTeam(t, "A", "B"), MustTeam(t, "C", "Z")))
}

func TestConstrainedPermutations(t *testing.T) {
	//** Arrange
	generator := newPermutationGenerator(3, 3)

	//** Act
	permutations := generator.ConstrainedPermutations([]func(permutation []int) bool{
		func(permutation []int) bool {
			return permutation[1] == unassigned || permutation[0] < permutation[1]
		},
	})

	//** Assert
	assert.Equal(t, [][]int{{0, 1}, {0, 2}, {1, 2}}, permutations)
}
