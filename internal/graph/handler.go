package graph

import (
	"log"
	"math"
	"net/http"

	"github.com/botobag/artemis/graphql"
	"github.com/botobag/artemis/graphql/executor"
	"github.com/botobag/artemis/graphql/handler"
	"github.com/botobag/artemis/graphql/parser"
	"github.com/botobag/artemis/graphql/token"
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/harentsoaR/clinic-api/internal/store"
)

type HandlerOptions struct {
	// MaxBodySize caps the bytes read from a POST body.
	MaxBodySize uint
	// OperationCacheSize is the number of prepared queries kept. Zero disables
	// the cache.
	OperationCacheSize int
}

// NewHandler serves schema over HTTP. Every request gets fresh data loaders
// over the doctor and patient stores.
func NewHandler(schema graphql.Schema, doctors store.DoctorStore, patients store.PatientStore, opts HandlerOptions) (http.Handler, error) {
	// handler.NopOperationCache makes the handler report a nil cache to the
	// request builder, so a disabled cache is a local no-op type.
	var cache handler.OperationCache = noOperationCache{}
	if opts.OperationCacheSize > 0 {
		c, err := newOperationCache(opts.OperationCacheSize)
		if err != nil {
			return nil, err
		}
		cache = c
	}

	builder := &requestBuilder{
		parseOptions: handler.ParseHTTPRequestOptions{MaxBodySize: opts.MaxBodySize},
		doctors:      doctors,
		patients:     patients,
	}
	return handler.New(schema,
		handler.OverrideRequestBuilder(builder),
		handler.OverrideErrorPresenter(errorPresenter{}),
		handler.OverrideOperationCache(cache),
	)
}

// requestBuilder parses and prepares a request the way
// handler.DefaultRequestBuilder does, then normalizes the variables and adds
// fresh data loaders.
type requestBuilder struct {
	parseOptions handler.ParseHTTPRequestOptions
	doctors      store.DoctorStore
	patients     store.PatientStore
}

func (b *requestBuilder) Build(r *http.Request, h handler.HTTPHandler) (*handler.Request, error) {
	parsed, err := handler.ParseHTTPRequest(r, &b.parseOptions)
	if err != nil {
		return nil, err
	}
	if parsed.Query == "" {
		return nil, handler.ErrEmptyQuery{Request: r}
	}

	cache := h.OperationCache()
	operation, ok := cache.Get(parsed.Query)
	if !ok {
		document, err := parser.Parse(token.NewSource(parsed.Query))
		if err != nil {
			return nil, &handler.ErrParseQuery{Request: r, ParsedRequest: parsed, Err: err}
		}
		var errs graphql.Errors
		operation, errs = executor.Prepare(h.Schema(), document, executor.OperationName(parsed.OperationName))
		if errs.HaveOccurred() {
			return nil, &handler.ErrPrepare{Request: r, ParsedRequest: parsed, Document: document, Errs: errs}
		}
		cache.Add(parsed.Query, operation)
	}

	loaders, err := NewLoaders(b.doctors, b.patients)
	if err != nil {
		return nil, err
	}
	return &handler.Request{
		Ctx:       r.Context(),
		Operation: operation,
		ExecuteOpts: []executor.ExecuteOption{
			executor.VariableValues(normalizeVariables(parsed.Variables)),
			executor.DataLoaderManager(loaders),
		},
	}, nil
}

// normalizeVariables turns whole JSON numbers into ints. The request body is
// decoded into float64s, which Int arguments refuse as input.
func normalizeVariables(vars map[string]interface{}) map[string]interface{} {
	for k, v := range vars {
		vars[k] = normalizeValue(v)
	}
	return vars
}

func normalizeValue(v interface{}) interface{} {
	switch v := v.(type) {
	case float64:
		if v == math.Trunc(v) && v >= math.MinInt32 && v <= math.MaxInt32 {
			return int(v)
		}
	case []interface{}:
		for i, item := range v {
			v[i] = normalizeValue(item)
		}
	case map[string]interface{}:
		return normalizeVariables(v)
	}
	return v
}

// errorPresenter answers every request that could not be executed with a JSON
// errors document and status 400.
type errorPresenter struct{}

func (errorPresenter) Write(w http.ResponseWriter, err error) {
	var errs graphql.Errors
	status := http.StatusBadRequest
	switch e := err.(type) {
	case handler.ErrEmptyQuery:
		errs = graphql.ErrorsOf("Must provide query string.")
	case *handler.ErrParseQuery:
		errs = graphql.ErrorsOf(e.Err)
	case *handler.ErrPrepare:
		errs = e.Errs
	case *handler.HTTPRequestParseError:
		errs = graphql.ErrorsOf("Invalid request: " + e.Error())
	default:
		log.Printf("GraphQL: failed to build request: %v", err)
		status = http.StatusInternalServerError
		errs = graphql.ErrorsOf("Internal server error")
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(status)
	result := &executor.ExecutionResult{Errors: errs}
	if err := result.MarshalJSONTo(w); err != nil {
		log.Printf("GraphQL: failed to write error response: %v", err)
	}
}

// operationCache keeps prepared operations in a bounded LRU.
type operationCache struct {
	lru *lru.Cache[string, *executor.PreparedOperation]
}

var _ handler.OperationCache = (*operationCache)(nil)

func newOperationCache(size int) (*operationCache, error) {
	c, err := lru.New[string, *executor.PreparedOperation](size)
	if err != nil {
		return nil, err
	}
	return &operationCache{lru: c}, nil
}

func (c *operationCache) Get(query string) (*executor.PreparedOperation, bool) {
	return c.lru.Get(query)
}

func (c *operationCache) Add(query string, operation *executor.PreparedOperation) {
	c.lru.Add(query, operation)
}

type noOperationCache struct{}

func (noOperationCache) Get(string) (*executor.PreparedOperation, bool) { return nil, false }
func (noOperationCache) Add(string, *executor.PreparedOperation)        {}
