// Package actdex embeds the bare-act retrieval and explanation pipeline
// into the host process: the same search, ingestion and explanation
// services the HTTP server runs, without the server.
//
// For talking to a running actdex server over HTTP, use pkg/sdk instead.
package actdex

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/actdex/internal/db"
	dbBolt "github.com/kailas-cloud/actdex/internal/db/bolt"
	dbRedis "github.com/kailas-cloud/actdex/internal/db/redis"
	"github.com/kailas-cloud/actdex/internal/domain"
	domsearch "github.com/kailas-cloud/actdex/internal/domain/search"
	"github.com/kailas-cloud/actdex/internal/pdfpage"
	corpusrepo "github.com/kailas-cloud/actdex/internal/repository/corpus"
	templateExp "github.com/kailas-cloud/actdex/internal/transport/template"
	explainuc "github.com/kailas-cloud/actdex/internal/usecase/explain"
	ingestuc "github.com/kailas-cloud/actdex/internal/usecase/ingest"
	searchuc "github.com/kailas-cloud/actdex/internal/usecase/search"
)

const defaultReadinessTimeout = 10 * time.Second

// Option configures the Client.
type Option func(*clientConfig)

type clientConfig struct {
	driver   string // "redis" or "bolt"
	addrs    []string
	password string
	path     string

	corpus    string
	batchSize int

	explainer Explainer
	logger    *zap.Logger
}

// WithRedis configures the client to connect to a Redis instance.
func WithRedis(addr, password string) Option {
	return func(c *clientConfig) {
		c.driver = "redis"
		c.addrs = []string{addr}
		c.password = password
	}
}

// WithBolt configures the client to use a local bolt database file.
// The file is created if it does not exist.
func WithBolt(path string) Option {
	return func(c *clientConfig) {
		c.driver = "bolt"
		c.path = path
	}
}

// WithCorpus sets the corpus name within the key namespace. Default: "acts".
func WithCorpus(name string) Option {
	return func(c *clientConfig) {
		c.corpus = name
	}
}

// WithExplainer sets the explanation provider. Without one, a deterministic
// local template renders answers from the matched snippets.
func WithExplainer(e Explainer) Option {
	return func(c *clientConfig) {
		c.explainer = e
	}
}

// WithBatchSize sets the number of pages written per store batch during
// ingestion. Default: 100.
func WithBatchSize(n int) Option {
	return func(c *clientConfig) {
		c.batchSize = n
	}
}

// WithLogger enables structured logging for the embedded services.
// Default: no logging.
func WithLogger(l *zap.Logger) Option {
	return func(c *clientConfig) {
		c.logger = l
	}
}

// Client is the embedded actdex entry point.
type Client struct {
	store      db.Store
	repo       *corpusrepo.Repo
	searchSvc  *searchuc.Service
	explainSvc *explainuc.Service
	ingestSvc  *ingestuc.Service
}

// New creates an embedded Client and connects to the store.
// The provided context is used for the initial readiness check.
func New(ctx context.Context, opts ...Option) (*Client, error) {
	cfg := &clientConfig{
		corpus:    "acts",
		batchSize: ingestuc.DefaultBatchSize,
	}
	for _, o := range opts {
		o(cfg)
	}

	if cfg.driver == "" {
		return nil, errors.New("actdex: store required (use WithRedis or WithBolt)")
	}

	logger := cfg.logger
	if logger == nil {
		logger = zap.NewNop()
	}

	store, err := createStore(cfg)
	if err != nil {
		return nil, err
	}

	if err := store.WaitForReady(ctx, defaultReadinessTimeout); err != nil {
		store.Close()
		return nil, fmt.Errorf("actdex: store not ready: %w", err)
	}

	return wireClient(store, cfg, logger), nil
}

func createStore(cfg *clientConfig) (db.Store, error) {
	switch cfg.driver {
	case "redis":
		s, err := dbRedis.NewStore(dbRedis.Config{
			Addrs:    cfg.addrs,
			Password: cfg.password,
		})
		if err != nil {
			return nil, fmt.Errorf("actdex: create redis store: %w", err)
		}
		return s, nil
	case "bolt":
		s, err := dbBolt.NewStore(dbBolt.Config{Path: cfg.path})
		if err != nil {
			return nil, fmt.Errorf("actdex: create bolt store: %w", err)
		}
		return s, nil
	default:
		return nil, fmt.Errorf("actdex: unknown driver %q", cfg.driver)
	}
}

func wireClient(store db.Store, cfg *clientConfig, logger *zap.Logger) *Client {
	var explainer domain.Explainer = templateExp.NewExplainer()
	if cfg.explainer != nil {
		explainer = &explainerAdapter{inner: cfg.explainer}
	}

	repo := corpusrepo.New(store, cfg.corpus)
	searchSvc := searchuc.New(repo, searchuc.Config{}, logger)
	explainSvc := explainuc.New(searchSvc, explainer, logger)
	ingestSvc := ingestuc.New(repo, logger).WithBatchSize(cfg.batchSize)

	return &Client{
		store:      store,
		repo:       repo,
		searchSvc:  searchSvc,
		explainSvc: explainSvc,
		ingestSvc:  ingestSvc,
	}
}

// Close releases the store connection.
func (c *Client) Close() {
	if c.store != nil {
		c.store.Close()
	}
}

// Ping checks store connectivity.
func (c *Client) Ping(ctx context.Context) error {
	if err := c.store.Ping(ctx); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}

// Search runs a keyword search over the ingested corpus.
func (c *Client) Search(ctx context.Context, query string) ([]Result, error) {
	q, err := domsearch.NewQuery(query, 0)
	if err != nil {
		return nil, err
	}
	resp, err := c.searchSvc.Search(ctx, q)
	if err != nil {
		return nil, err
	}
	return resultsFromDomain(resp.Results()), nil
}

// Explain searches the corpus and renders an answer from the matches.
// maxResults caps the passages handed to the explainer; 0 uses the default.
func (c *Client) Explain(ctx context.Context, query string, maxResults int) (Explanation, error) {
	if maxResults == 0 {
		maxResults = domsearch.DefaultExplainResults
	}
	q, err := domsearch.NewQuery(query, maxResults)
	if err != nil {
		return Explanation{}, err
	}
	expl, err := c.explainSvc.Explain(ctx, q)
	if err != nil {
		return Explanation{}, err
	}
	return Explanation{
		Query:    expl.Query,
		Keywords: append([]string(nil), expl.Keywords.Words()...),
		Style:    string(expl.Style),
		Answer:   expl.Answer,
		Used:     resultsFromDomain(expl.UsedResults),
	}, nil
}

// Acts lists ingested acts with their stored page counts, sorted by name.
func (c *Client) Acts(ctx context.Context) ([]Act, error) {
	counts, err := c.searchSvc.Acts(ctx)
	if err != nil {
		return nil, err
	}
	acts := make([]Act, len(counts))
	for i, a := range counts {
		acts[i] = Act{Name: a.Name, Pages: a.Pages}
	}
	return acts, nil
}

// IngestPages stores page texts as one act. Blank pages are skipped but
// keep their position in the page numbering.
func (c *Client) IngestPages(ctx context.Context, actName string, pageTexts []string) (saved, skipped int, err error) {
	res, err := c.ingestSvc.IngestAct(ctx, actName, pageTexts)
	return res.Saved, res.Skipped, err
}

// IngestPDF extracts per-page text from a PDF file and stores the pages,
// inferring the act name from the file name.
func (c *Client) IngestPDF(ctx context.Context, path string) (actName string, saved, skipped int, err error) {
	pages, err := pdfpage.ExtractPages(path)
	if err != nil {
		return "", 0, 0, err
	}
	actName = ingestuc.InferActName(path)
	res, err := c.ingestSvc.IngestAct(ctx, actName, pages)
	return actName, res.Saved, res.Skipped, err
}

// PurgeAct deletes every stored page of the act, returning the count removed.
func (c *Client) PurgeAct(ctx context.Context, actName string) (int, error) {
	return c.repo.PurgeAct(ctx, actName)
}
