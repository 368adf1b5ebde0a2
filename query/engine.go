package query

import (
	"sort"
	"time"

	"github.com/eximware/erp-data-api/config"
	"github.com/eximware/erp-data-api/log"
	"github.com/eximware/erp-data-api/schema"
	"github.com/eximware/erp-data-api/types"
)

// Engine translates a FilterSpec into an executable QueryPlan. It is
// stateless between calls; every plan is built fresh and never mutated
// after assembly. The engine holds no ambient configuration, only what is
// injected here.
type Engine struct {
	provider     schema.Provider
	naming       config.NamingConvention
	compiler     *Compiler
	defaultLimit int
	maxLimit     int
	logger       log.Logger
}

func NewEngine(provider schema.Provider, cfg config.Config) *Engine {
	defaultLimit := cfg.DefaultLimit()
	if defaultLimit <= 0 {
		defaultLimit = config.DefaultResultLimit
	}
	maxLimit := cfg.MaxLimit()
	if maxLimit <= 0 {
		maxLimit = config.MaxResultLimit
	}
	return &Engine{
		provider:     provider,
		naming:       cfg.Naming(),
		compiler:     NewCompiler(),
		defaultLimit: defaultLimit,
		maxLimit:     maxLimit,
		logger:       cfg.Logger(),
	}
}

// WithClock fixes the reference instant used for symbolic dates.
func (e *Engine) WithClock(now func() time.Time) *Engine {
	e.compiler.WithClock(now)
	return e
}

func (e *Engine) MaxLimit() int {
	return e.maxLimit
}

func (e *Engine) Provider() schema.Provider {
	return e.provider
}

// Plan resolves, compiles and assembles a filter against an entity. Any
// unresolvable field, unknown operator or unparsable date aborts the whole
// plan; a partial filter would silently widen or narrow the result set.
func (e *Engine) Plan(entityName string, filter types.FilterSpec, limit int, orderBy string) (*types.QueryPlan, error) {
	entity, err := e.provider.Entity(entityName)
	if err != nil {
		return nil, err
	}

	// Field keys are sorted so the same filter always renders the same
	// statement text.
	keys := make([]string, 0, len(filter))
	for key := range filter {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var conditions []types.CompiledCondition
	for _, key := range keys {
		descriptor, err := entity.Resolve(key, e.naming)
		if err != nil {
			return nil, err
		}
		compiled, err := e.compiler.Compile(descriptor, filter[key])
		if err != nil {
			return nil, err
		}
		conditions = append(conditions, compiled...)
	}

	plan, err := Assemble(entity, conditions, orderBy, limit, e.defaultLimit, e.maxLimit)
	if err != nil {
		return nil, err
	}

	e.logger.Debug("assembled query plan",
		"entity", entity.Name,
		"conditions", len(conditions),
		"limit", plan.Limit)

	return plan, nil
}
