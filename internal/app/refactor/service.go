// Package refactor provides Service, a thin orchestration layer over
// the core's four operations that adds structured logging, correlation
// ids, and concurrent multi-environment planning (SPEC_FULL.md §4.7).
// It carries no business logic of its own.
package refactor

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/stackmove/stackmove/internal/domain/cfn"
	"github.com/stackmove/stackmove/internal/domain/model"
	"github.com/stackmove/stackmove/internal/infrastructure/digest"
	"github.com/stackmove/stackmove/internal/infrastructure/graph"
	"github.com/stackmove/stackmove/internal/infrastructure/plan"
	"github.com/stackmove/stackmove/internal/infrastructure/prescribed"
	"github.com/stackmove/stackmove/internal/infrastructure/synth"
	"github.com/stackmove/stackmove/internal/pkg/logger"
)

// PlanResult and PlanOptions are the facade's names for the plan
// package's result and option types, so callers who only need the
// facade never import internal/infrastructure/plan directly.
type (
	PlanResult  = plan.Result
	PlanOptions = plan.Options
)

// Config holds Service configuration: the one thing every core
// operation needs externally, the resource-model provider.
type Config struct {
	Provider model.Provider
}

// Service wraps the core's pure operations with logging and
// concurrency (spec §4.7).
type Service struct {
	provider model.Provider
}

// NewService builds a Service bound to the given resource-model provider.
func NewService(cfg Config) *Service {
	return &Service{provider: cfg.Provider}
}

// Plan derives the mapping set between a deployed and a local stack
// set, logging the start at debug level and the result at info level,
// and stamping a correlation id on every log line for the call (spec
// §4.7).
func (s *Service) Plan(ctx context.Context, deployedStacks, localStacks []cfn.Stack, opts PlanOptions) (PlanResult, error) {
	correlationID := uuid.NewString()
	log := logger.WithCorrelationID(correlationID)
	log.Debug("plan starting", "deployed_stacks", len(deployedStacks), "local_stacks", len(localStacks))

	result, err := plan.Plan(deployedStacks, localStacks, s.provider, opts)
	if err != nil {
		log.Error("plan failed", "error", err)
		return PlanResult{}, err
	}

	log.Info("plan finished", "mappings", len(result.Mappings), "ambiguous", len(result.AmbiguousPaths))
	return result, nil
}

// EnvironmentInputs bundles one environment's deployed/local stacks
// and plan options for a PlanAll call (spec §4.7).
type EnvironmentInputs struct {
	Environment cfn.Environment
	Deployed    []cfn.Stack
	Local       []cfn.Stack
	Options     PlanOptions
}

// PlanAll runs Plan concurrently across disjoint environments using
// errgroup, per spec §5's guarantee that per-environment state never
// overlaps: no locks are needed between goroutines. The first error
// cancels ctx for the remaining goroutines and is returned to the
// caller; results for environments that completed are discarded.
func (s *Service) PlanAll(ctx context.Context, envs []EnvironmentInputs) ([]PlanResult, error) {
	results := make([]PlanResult, len(envs))
	g, groupCtx := errgroup.WithContext(ctx)

	for i, env := range envs {
		i, env := i, env
		g.Go(func() error {
			result, err := s.Plan(groupCtx, env.Deployed, env.Local, env.Options)
			if err != nil {
				return fmt.Errorf("environment %s: %w", env.Environment, err)
			}
			results[i] = result
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// Synthesize produces the rewritten stack templates for a mapping set
// (spec §4.5, §4.7).
func (s *Service) Synthesize(ctx context.Context, mappings []cfn.Mapping, deployedStacks, localStacks []cfn.Stack) ([]synth.Output, error) {
	correlationID := uuid.NewString()
	log := logger.WithCorrelationID(correlationID)
	log.Debug("synthesize starting", "mappings", len(mappings))

	out, err := synth.Synthesize(mappings, deployedStacks, localStacks)
	if err != nil {
		log.Error("synthesize failed", "error", err)
		return nil, err
	}

	log.Info("synthesize finished", "templates", len(out))
	return out, nil
}

// UsePrescribedMappings validates and resolves caller-supplied
// location-string mappings (spec §6, §4.7).
func (s *Service) UsePrescribedMappings(ctx context.Context, groups []prescribed.Group, resolver prescribed.Resolver) ([]cfn.Mapping, error) {
	correlationID := uuid.NewString()
	log := logger.WithCorrelationID(correlationID)
	log.Debug("use prescribed mappings starting", "groups", len(groups))

	mappings, err := prescribed.UsePrescribedMappings(groups, resolver)
	if err != nil {
		log.Error("use prescribed mappings failed", "error", err)
		return nil, err
	}

	log.Info("use prescribed mappings finished", "mappings", len(mappings))
	return mappings, nil
}

// ComputeDigests returns the content digest of every resource in
// stacks (spec §4.2, §6, §4.7).
func (s *Service) ComputeDigests(ctx context.Context, stacks []cfn.Stack, direction graph.Direction) map[string]string {
	correlationID := uuid.NewString()
	log := logger.WithCorrelationID(correlationID)
	log.Debug("computing digests", "stacks", len(stacks), "direction", direction)

	return digest.ComputeDigests(stacks, direction, s.provider)
}
