package rest

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"
	"github.com/mitchellh/mapstructure"

	"github.com/eximware/erp-data-api/endpoint"
	e "github.com/eximware/erp-data-api/errors"
	"github.com/eximware/erp-data-api/log"
	m "github.com/eximware/erp-data-api/rest/models"
	"github.com/eximware/erp-data-api/types"
)

var (
	inputValidator *validator.Validate
	trans          ut.Translator
)

func init() {
	inputValidator = validator.New()

	uni := ut.New(en.New(), en.New())
	trans, _ = uni.GetTranslator("en")

	_ = enTranslations.RegisterDefaultTranslations(inputValidator, trans)
}

type routeList struct {
	endpoint *endpoint.DataEndpoint
	logger   log.Logger
	params   func(*http.Request, string) string
}

func (s *routeList) Search(w http.ResponseWriter, r *http.Request) {
	entityName := s.params(r, "entity")

	var payload m.SearchRequest
	if err := parseAndValidatePayload(&payload, r); err != nil {
		s.logger.Debug("unable to parse search payload", "entity", entityName, "error", err)
		RespondWithError(w, errors.New("unable to parse payload"), http.StatusBadRequest)
		return
	}

	var options types.SearchOptions
	if err := mapstructure.Decode(payload.Options, &options); err != nil {
		RespondWithError(w, errors.New("unable to decode search options"), http.StatusBadRequest)
		return
	}

	result, err := s.endpoint.Search(r.Context(), entityName, payload.Filters, options)
	if err != nil {
		s.respondEngineError(w, entityName, err)
		return
	}

	RespondJSONObjectWithCode(w, http.StatusOK, result)
}

func (s *routeList) Count(w http.ResponseWriter, r *http.Request) {
	entityName := s.params(r, "entity")

	var payload m.CountRequest
	if err := parseAndValidatePayload(&payload, r); err != nil {
		s.logger.Debug("unable to parse count payload", "entity", entityName, "error", err)
		RespondWithError(w, errors.New("unable to parse payload"), http.StatusBadRequest)
		return
	}

	result, err := s.endpoint.Count(r.Context(), entityName, payload.Filters)
	if err != nil {
		s.respondEngineError(w, entityName, err)
		return
	}

	RespondJSONObjectWithCode(w, http.StatusOK, result)
}

func (s *routeList) GetEntities(w http.ResponseWriter, r *http.Request) {
	RespondJSONObjectWithCode(w, http.StatusOK, s.endpoint.Entities())
}

func (s *routeList) GetEntityFields(w http.ResponseWriter, r *http.Request) {
	entityName := s.params(r, "entity")

	fields, err := s.endpoint.EntityFields(entityName)
	if err != nil {
		s.respondEngineError(w, entityName, err)
		return
	}

	models := make([]m.Field, 0, len(fields))
	for _, field := range fields {
		models = append(models, m.Field{Name: field.Name, Kind: field.Kind.String()})
	}

	RespondJSONObjectWithCode(w, http.StatusOK, models)
}

func (s *routeList) TopCustomers(w http.ResponseWriter, r *http.Request) {
	s.analytics(w, r, s.endpoint.TopCustomers)
}

func (s *routeList) MostSoldItems(w http.ResponseWriter, r *http.Request) {
	s.analytics(w, r, s.endpoint.MostSoldItems)
}

func (s *routeList) OrdersByTerritory(w http.ResponseWriter, r *http.Request) {
	s.analytics(w, r, s.endpoint.OrdersByTerritory)
}

func (s *routeList) TopCustomersByCount(w http.ResponseWriter, r *http.Request) {
	s.analytics(w, r, s.endpoint.TopCustomersByOrderCount)
}

func (s *routeList) OrdersByItem(w http.ResponseWriter, r *http.Request) {
	var payload m.OrdersByItemRequest
	if err := parseAndValidatePayload(&payload, r); err != nil {
		RespondWithError(w, err, http.StatusBadRequest)
		return
	}

	rows, err := s.endpoint.OrdersByItem(r.Context(), payload.ItemCode, payload.Limit)
	if err != nil {
		s.respondEngineError(w, "", err)
		return
	}

	RespondJSONObjectWithCode(w, http.StatusOK, rows)
}

func (s *routeList) DuplicateCustomers(w http.ResponseWriter, r *http.Request) {
	rows, err := s.endpoint.DuplicateCustomers(r.Context())
	if err != nil {
		s.respondEngineError(w, "", err)
		return
	}

	RespondJSONObjectWithCode(w, http.StatusOK, rows)
}

func (s *routeList) analytics(w http.ResponseWriter, r *http.Request, run func(ctx context.Context, options endpoint.AnalyticsOptions) ([]map[string]interface{}, error)) {
	var payload m.AnalyticsRequest
	if err := parseAndValidatePayload(&payload, r); err != nil {
		RespondWithError(w, errors.New("unable to parse payload"), http.StatusBadRequest)
		return
	}

	rows, err := run(r.Context(), endpoint.AnalyticsOptions{
		From:     payload.From,
		To:       payload.To,
		Limit:    payload.Limit,
		MinValue: payload.MinValue,
	})
	if err != nil {
		s.respondEngineError(w, "", err)
		return
	}

	RespondJSONObjectWithCode(w, http.StatusOK, rows)
}

// respondEngineError maps the engine's typed errors onto status codes.
// Caller mistakes come back verbatim as 400s; store failures come back as
// an opaque 500 so driver details never reach the caller.
func (s *routeList) respondEngineError(w http.ResponseWriter, entityName string, err error) {
	switch err.(type) {
	case *e.UnknownEntityError:
		RespondWithError(w, err, http.StatusNotFound)
	case *e.UnknownFieldError, *e.UnknownOperatorError, *e.UnparsableDateError,
		*e.InvalidOrderByError, *e.InvalidOperandError, *e.InvalidDateRangeError:
		RespondWithError(w, err, http.StatusBadRequest)
	case *e.StoreExecutionError:
		s.logger.Error("record store failure", "entity", entityName, "error", err)
		RespondWithError(w, errors.New("unable to execute search"), http.StatusInternalServerError)
	case *e.InternalError:
		s.logger.Error("engine invariant breach", "entity", entityName, "error", err)
		RespondWithError(w, errors.New("internal error"), http.StatusInternalServerError)
	default:
		RespondWithError(w, err, http.StatusBadRequest)
	}
}

func parseAndValidatePayload(obj interface{}, r *http.Request) error {
	// An empty body is an empty payload, not a malformed one
	if err := json.NewDecoder(r.Body).Decode(obj); err != nil && !errors.Is(err, io.EOF) {
		return err
	}

	if err := inputValidator.Struct(obj); err != nil {
		return translateValidatorError(err)
	}

	return nil
}

// translateValidatorError converts the validator's error map into a single
// readable error.
func translateValidatorError(err error) error {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return err
	}

	translated := validationErrors.Translate(trans)
	vals := make([]string, 0, len(translated))
	for _, value := range translated {
		vals = append(vals, value)
	}
	return errors.New(strings.Join(vals, " "))
}
