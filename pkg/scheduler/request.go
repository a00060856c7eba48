package scheduler

import (
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/limaJavier/doubles/pkg/model"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// Request describes one run. It is usually decoded from a YAML (or JSON) file
type Request struct {
	Players           int           `mapstructure:"players" validate:"omitempty,min=4"`
	Names             []string      `mapstructure:"names" validate:"omitempty,min=4,unique,dive,required"`
	Strategy          string        `mapstructure:"strategy" validate:"required,oneof=exact stochastic learned"`
	Rounds            int           `mapstructure:"rounds" validate:"gte=0"`
	TargetGames       int           `mapstructure:"target_games" validate:"gte=0"`
	Seed              uint64        `mapstructure:"seed"`
	Timeout           time.Duration `mapstructure:"timeout" validate:"gte=0"`
	RepetitionPenalty int           `mapstructure:"repetition_penalty" validate:"gte=0"`

	Exact      ExactRequest      `mapstructure:"exact"`
	Stochastic StochasticRequest `mapstructure:"stochastic"`
	Learned    LearnedRequest    `mapstructure:"learned"`
}

type ExactRequest struct {
	Solver string `mapstructure:"solver" validate:"required,oneof=gini kissat cadical minisat"`
	Mode   string `mapstructure:"mode" validate:"required,oneof=optimize feasible"`
}

type StochasticRequest struct {
	Samples     int  `mapstructure:"samples" validate:"min=1"`
	Length      int  `mapstructure:"length" validate:"gte=0"`
	MaxRetries  int  `mapstructure:"max_retries" validate:"gte=0"`
	Deduplicate bool `mapstructure:"deduplicate"`
}

type LearnedRequest struct {
	Alpha       float64 `mapstructure:"alpha" validate:"gt=0,lte=1"`
	Gamma       float64 `mapstructure:"gamma" validate:"gte=0,lte=1"`
	ExploitRate float64 `mapstructure:"exploit_rate" validate:"gte=0,lte=1"`
	Episodes    int     `mapstructure:"episodes" validate:"gte=0"`
	Horizon     int     `mapstructure:"horizon" validate:"min=1"`
	Generations int     `mapstructure:"generations" validate:"min=1"`
	Length      int     `mapstructure:"length" validate:"gte=0"`
	Deduplicate bool    `mapstructure:"deduplicate"`
}

var requestValidate = validator.New()

func DefaultRequest() Request {
	stochastic := DefaultStochasticOptions()
	learned := DefaultLearnedOptions()

	return Request{
		Players:           5,
		Strategy:          "stochastic",
		RepetitionPenalty: model.DefaultRepetitionPenalty,
		Exact: ExactRequest{
			Solver: "gini",
			Mode:   string(ExactOptimize),
		},
		Stochastic: StochasticRequest{
			Samples:     stochastic.Samples,
			Deduplicate: stochastic.Deduplicate,
		},
		Learned: LearnedRequest{
			Alpha:       learned.Alpha,
			Gamma:       learned.Gamma,
			ExploitRate: learned.ExploitRate,
			Episodes:    learned.Episodes,
			Horizon:     learned.Horizon,
			Generations: learned.Generations,
			Deduplicate: learned.Deduplicate,
		},
	}
}

// RequestFromFile decodes a YAML or JSON file on top of DefaultRequest and validates the result
func RequestFromFile(path string) (Request, error) {
	bytes, err := os.ReadFile(path)
	if err != nil {
		return Request{}, fmt.Errorf("cannot read request file: %w", err)
	}

	var input map[string]any
	if err := yaml.Unmarshal(bytes, &input); err != nil {
		return Request{}, fmt.Errorf("%w: cannot parse request file %v: %w", model.ErrInvalidConfiguration, path, err)
	}

	request, err := DecodeRequest(input)
	if err != nil {
		return Request{}, err
	}
	return request, request.Validate()
}

// DecodeRequest overlays a generic map (as produced by a YAML or JSON decoder) on DefaultRequest
func DecodeRequest(input map[string]any) (Request, error) {
	request := DefaultRequest()

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       mapstructure.StringToTimeDurationHookFunc(),
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		Result:           &request,
	})
	if err != nil {
		return Request{}, err
	}
	if err := decoder.Decode(input); err != nil {
		return Request{}, fmt.Errorf("%w: %w", model.ErrInvalidConfiguration, err)
	}

	// Names alone define the pool size
	if _, ok := input["players"]; !ok && len(request.Names) > 0 {
		request.Players = len(request.Names)
	}
	return request, nil
}

func (request Request) Validate() error {
	if err := requestValidate.Struct(request); err != nil {
		return fmt.Errorf("%w: %w", model.ErrInvalidConfiguration, err)
	}
	if request.Players == 0 && len(request.Names) == 0 {
		return fmt.Errorf("%w: either players or names is required", model.ErrInvalidConfiguration)
	}
	if request.Players != 0 && len(request.Names) != 0 && request.Players != len(request.Names) {
		return fmt.Errorf("%w: %v players requested but %v names given", model.ErrInvalidConfiguration, request.Players, len(request.Names))
	}
	return nil
}

// Configuration builds the player pool and its derived constants
func (request Request) Configuration() (*model.Configuration, error) {
	options := make([]model.ConfigurationOption, 0, 2)
	if request.Rounds != 0 {
		options = append(options, model.WithMatchesCount(request.Rounds))
	}
	if request.TargetGames != 0 {
		options = append(options, model.WithTargetGames(request.TargetGames))
	}

	if len(request.Names) > 0 {
		players := make([]model.Player, 0, len(request.Names))
		for _, name := range request.Names {
			players = append(players, model.Player(name))
		}
		return model.NewConfigurationWithPlayers(players, options...)
	}
	return model.NewConfiguration(request.Players, options...)
}

func (request Request) Evaluator(config *model.Configuration) *model.Evaluator {
	return model.NewEvaluator(config, model.WithRepetitionPenalty(request.RepetitionPenalty))
}

func (request Request) ExactOptions() ExactOptions {
	return ExactOptions{Mode: ExactMode(request.Exact.Mode)}
}

func (request Request) StochasticOptions() StochasticOptions {
	return StochasticOptions{
		Samples:     request.Stochastic.Samples,
		Length:      request.Stochastic.Length,
		MaxRetries:  request.Stochastic.MaxRetries,
		Deduplicate: request.Stochastic.Deduplicate,
	}
}

func (request Request) LearnedOptions() LearnedOptions {
	return LearnedOptions{
		Alpha:       request.Learned.Alpha,
		Gamma:       request.Learned.Gamma,
		ExploitRate: request.Learned.ExploitRate,
		Episodes:    request.Learned.Episodes,
		Horizon:     request.Learned.Horizon,
		Generations: request.Learned.Generations,
		Length:      request.Learned.Length,
		Deduplicate: request.Learned.Deduplicate,
	}
}
