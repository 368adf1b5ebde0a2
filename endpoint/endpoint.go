package endpoint

import (
	"context"

	"go.uber.org/zap"

	"github.com/eximware/erp-data-api/config"
	"github.com/eximware/erp-data-api/db"
	"github.com/eximware/erp-data-api/log"
	"github.com/eximware/erp-data-api/query"
	"github.com/eximware/erp-data-api/schema"
	"github.com/eximware/erp-data-api/types"
)

const DefaultDbPort = 3306

type DataEndpointConfig struct {
	dbHost           string
	dbPort           int
	dbUsername       string
	dbPassword       string
	dbName           string
	defaultLimit     int
	maxLimit         int
	referenceSamples bool
	naming           config.NamingConvention
	logger           log.Logger
}

func (cfg DataEndpointConfig) DefaultLimit() int {
	return cfg.defaultLimit
}

func (cfg DataEndpointConfig) MaxLimit() int {
	return cfg.maxLimit
}

func (cfg DataEndpointConfig) ReferenceSamples() bool {
	return cfg.referenceSamples
}

func (cfg DataEndpointConfig) Naming() config.NamingConvention {
	return cfg.naming
}

func (cfg DataEndpointConfig) Logger() log.Logger {
	return cfg.logger
}

func (cfg *DataEndpointConfig) WithDbPort(dbPort int) *DataEndpointConfig {
	cfg.dbPort = dbPort
	return cfg
}

func (cfg *DataEndpointConfig) WithDbUsername(dbUsername string) *DataEndpointConfig {
	cfg.dbUsername = dbUsername
	return cfg
}

func (cfg *DataEndpointConfig) WithDbPassword(dbPassword string) *DataEndpointConfig {
	cfg.dbPassword = dbPassword
	return cfg
}

func (cfg *DataEndpointConfig) WithDbName(dbName string) *DataEndpointConfig {
	cfg.dbName = dbName
	return cfg
}

func (cfg *DataEndpointConfig) WithDefaultLimit(defaultLimit int) *DataEndpointConfig {
	cfg.defaultLimit = defaultLimit
	return cfg
}

func (cfg *DataEndpointConfig) WithMaxLimit(maxLimit int) *DataEndpointConfig {
	cfg.maxLimit = maxLimit
	return cfg
}

func (cfg *DataEndpointConfig) WithReferenceSamples(referenceSamples bool) *DataEndpointConfig {
	cfg.referenceSamples = referenceSamples
	return cfg
}

func (cfg *DataEndpointConfig) WithNaming(naming config.NamingConvention) *DataEndpointConfig {
	cfg.naming = naming
	return cfg
}

func NewEndpointConfig(dbHost string) (*DataEndpointConfig, error) {
	logger, err := zap.NewProduction()
	if err != nil {
		return nil, err
	}
	return NewEndpointConfigWithLogger(log.NewZapLogger(logger), dbHost), nil
}

func NewEndpointConfigWithLogger(logger log.Logger, dbHost string) *DataEndpointConfig {
	return &DataEndpointConfig{
		dbHost:           dbHost,
		dbPort:           DefaultDbPort,
		defaultLimit:     config.DefaultResultLimit,
		maxLimit:         config.MaxResultLimit,
		referenceSamples: true,
		naming:           config.NewDefaultNaming(),
		logger:           logger,
	}
}

func (cfg DataEndpointConfig) NewEndpoint() (*DataEndpoint, error) {
	store, err := db.NewDb(db.Config{
		Host:     cfg.dbHost,
		Port:     cfg.dbPort,
		Username: cfg.dbUsername,
		Password: cfg.dbPassword,
		Database: cfg.dbName,
	}, cfg.logger)
	if err != nil {
		return nil, err
	}
	return cfg.NewEndpointWithStore(store), nil
}

// NewEndpointWithStore wires the endpoint against an existing store.
// Tests use it with a RecordStore mock.
func (cfg DataEndpointConfig) NewEndpointWithStore(store RecordStore) *DataEndpoint {
	return &DataEndpoint{
		engine: query.NewEngine(schema.DefaultRegistry(), cfg),
		store:  store,
		cfg:    cfg,
	}
}

// RecordStore is the read surface of the record store the endpoint needs.
// *db.Db implements it.
type RecordStore interface {
	Search(ctx context.Context, plan *types.QueryPlan, filter types.FilterSpec) (*types.SearchResult, error)
	Count(ctx context.Context, plan *types.QueryPlan, includeSamples bool) (*types.CountResult, error)
	TopCustomersByOrderValue(ctx context.Context, window query.DateSpan, minValue float64, limit int) ([]map[string]interface{}, error)
	MostSoldItems(ctx context.Context, window query.DateSpan, limit int) ([]map[string]interface{}, error)
	OrdersByTerritory(ctx context.Context, window query.DateSpan) ([]map[string]interface{}, error)
	TopCustomersByOrderCount(ctx context.Context, window query.DateSpan, limit int) ([]map[string]interface{}, error)
	OrdersByItem(ctx context.Context, itemCode string, limit int) ([]map[string]interface{}, error)
	DuplicateCustomers(ctx context.Context) ([]map[string]interface{}, error)
	Close() error
}

// DataEndpoint glues the filter engine to the record store. It is the unit
// the REST layer talks to.
type DataEndpoint struct {
	engine *query.Engine
	store  RecordStore
	cfg    DataEndpointConfig
}

// Search plans a filter against an entity and executes it.
func (e *DataEndpoint) Search(ctx context.Context, entityName string, filter types.FilterSpec, options types.SearchOptions) (*types.SearchResult, error) {
	plan, err := e.engine.Plan(entityName, filter, options.Limit, options.OrderBy)
	if err != nil {
		return nil, err
	}
	return e.store.Search(ctx, plan, filter)
}

// Count plans the filter at the store's maximum limit so the count reflects
// the full matching set, then reports totals and reference samples.
func (e *DataEndpoint) Count(ctx context.Context, entityName string, filter types.FilterSpec) (*types.CountResult, error) {
	plan, err := e.engine.Plan(entityName, filter, e.engine.MaxLimit(), "")
	if err != nil {
		return nil, err
	}
	return e.store.Count(ctx, plan, e.cfg.ReferenceSamples())
}

// Entities lists the searchable entity names.
func (e *DataEndpoint) Entities() []string {
	return e.engine.Provider().EntityNames()
}

// EntityFields lists an entity's declared fields with their classification.
func (e *DataEndpoint) EntityFields(entityName string) ([]schema.FieldDescriptor, error) {
	entity, err := e.engine.Provider().Entity(entityName)
	if err != nil {
		return nil, err
	}
	return entity.Fields(), nil
}

func (e *DataEndpoint) Close() error {
	return e.store.Close()
}
