package reports

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/kevinfinalboss/crmreports/internal/composer"
	"github.com/kevinfinalboss/crmreports/internal/gapfill"
	"github.com/kevinfinalboss/crmreports/internal/logger"
	"github.com/kevinfinalboss/crmreports/internal/parser"
	"github.com/kevinfinalboss/crmreports/pkg/types"
)

const (
	handleParam = "uuid"

	DefaultPageParamKey = "pagination"
)

// Transport submits a composed request and returns the status and body.
type Transport interface {
	Submit(ctx context.Context, request *types.Request, method string) (int, string, error)
}

type CardCache interface {
	Get(uuid string) (*types.Issue, bool)
	Set(uuid string, issue *types.Issue)
}

type FetchOptions struct {
	// Handle is the uuid of an object that already exists in the CRM. It is
	// read as is and never deleted.
	Handle       string
	Fields       map[string]string
	Params       map[string]string
	ParseCards   bool
	ParseHistory bool
}

type Orchestrator struct {
	transport Transport
	composer  *composer.Composer
	search    types.SearchConfig
	logger    *logger.Logger
	cards     CardCache
	sleep     func(context.Context, time.Duration) error
	now       func() time.Time
}

func NewOrchestrator(transport Transport, c *composer.Composer, search types.SearchConfig, log *logger.Logger) *Orchestrator {
	if search.PageParamKey == "" {
		search.PageParamKey = DefaultPageParamKey
	}

	return &Orchestrator{
		transport: transport,
		composer:  c,
		search:    search,
		logger:    log,
		sleep:     sleepContext,
		now:       time.Now,
	}
}

func (o *Orchestrator) WithCardCache(cards CardCache) *Orchestrator {
	o.cards = cards
	return o
}

// WithClock replaces the waits and the current time, mainly for tests.
func (o *Orchestrator) WithClock(sleep func(context.Context, time.Duration) error, now func() time.Time) *Orchestrator {
	o.sleep = sleep
	o.now = now
	return o
}

// Fetch runs create, locate, read and delete for one report. A report
// created here is deleted on every exit path once its handle is known.
func (o *Orchestrator) Fetch(ctx context.Context, kind types.ReportKind, opts FetchOptions) (*types.Report, error) {
	page, ok := kind.Page()
	if !ok || page == types.PageNone || kind.IsSearch() {
		return nil, fmt.Errorf("%w: report kind %q cannot be fetched", types.ErrCantGetData, kind)
	}

	if opts.ParseHistory {
		o.logger.Error("history_not_implemented").
			Str("report", string(kind)).
			Send()
		return nil, fmt.Errorf("%w: issue history", types.ErrNotImplemented)
	}

	log := o.logger.WithFields(map[string]interface{}{
		"report":         string(kind),
		"correlation_id": uuid.NewString(),
	})

	handle := opts.Handle
	if handle == "" {
		created, err := o.create(ctx, log, kind, opts)
		if err != nil {
			return nil, err
		}
		handle = created
		defer o.cleanup(ctx, log, kind, handle)
	} else {
		log.Debug("report_borrowed").
			Str("uuid", handle).
			Send()
	}

	body, err := o.open(ctx, kind, handle)
	if err != nil {
		return nil, err
	}

	log.Debug("report_fetched").
		Str("uuid", handle).
		Int("bytes", len(body)).
		Send()

	result, err := parser.Parse(page, body, parser.Options{Now: o.now()})
	if err != nil {
		return nil, err
	}

	report, err := o.assemble(kind, result)
	if err != nil {
		return nil, err
	}

	if kind == types.ReportIssueCard {
		for _, issue := range report.Issues {
			if issue.UUID == "" {
				issue.UUID = handle
			}
		}
	}

	if kind.IsIssuesTable() {
		vip := kind == types.ReportIssuesVIP
		for _, issue := range report.Issues {
			issue.VIPContragent = vip
		}

		if opts.ParseCards {
			if err := o.enrich(ctx, log, report.Issues); err != nil {
				return nil, err
			}
		}
	}

	log.Info("report_parsed").
		Str("page", page.String()).
		Send()
	return report, nil
}

func (o *Orchestrator) create(ctx context.Context, log *logger.Logger, kind types.ReportKind, opts FetchOptions) (string, error) {
	request, err := o.composer.Compose(kind, types.RequestCreate, opts.Fields, opts.Params)
	if err != nil {
		return "", err
	}

	if _, err := o.submit(ctx, request, http.MethodPost); err != nil {
		return "", err
	}

	log.Info("report_created").
		Str("title", request.Title()).
		Send()

	search, err := o.composer.SearchOptions(kind, request.Title())
	if err != nil {
		return "", err
	}

	handle, err := o.locate(ctx, log, kind, search)
	if err != nil {
		log.Warn("report_orphaned").
			Str("title", request.Title()).
			Err(err).
			Send()
		return "", err
	}
	return handle, nil
}

// locate polls the list of generated reports until the title shows up. It
// makes at most MaxAttempts attempts and waits Delay seconds before each.
func (o *Orchestrator) locate(ctx context.Context, log *logger.Logger, kind types.ReportKind, search types.SearchDescriptor) (string, error) {
	request, err := o.composer.Compose(kind, types.RequestOpen, nil, map[string]string{handleParam: search.UUID})
	if err != nil {
		return "", err
	}

	delay := time.Duration(search.Delay) * time.Second
	for attempt := 1; attempt <= search.MaxAttempts; attempt++ {
		if err := o.sleep(ctx, delay); err != nil {
			return "", err
		}

		log.Debug("report_locate_attempt").
			Str("title", search.Name).
			Int("attempt", attempt).
			Int("max_attempts", search.MaxAttempts).
			Send()

		body, err := o.submit(ctx, request, http.MethodGet)
		if err != nil {
			return "", err
		}

		handles, err := parser.ReportList(body, search.Name)
		if err != nil {
			return "", err
		}

		switch len(handles) {
		case 0:
			continue
		case 1:
			log.Info("report_located").
				Str("title", search.Name).
				Str("uuid", handles[0]).
				Int("attempt", attempt).
				Send()
			return handles[0], nil
		default:
			// Every copy is ours, none can be told apart.
			for _, handle := range handles {
				o.cleanup(ctx, log, kind, handle)
			}
			return "", fmt.Errorf("%w: %d reports titled %q", types.ErrCantGetData, len(handles), search.Name)
		}
	}

	log.Error("report_not_located").
		Str("title", search.Name).
		Int("max_attempts", search.MaxAttempts).
		Send()
	return "", fmt.Errorf("%w: report %q not found after %d attempts", types.ErrCantGetData, search.Name, search.MaxAttempts)
}

func (o *Orchestrator) open(ctx context.Context, kind types.ReportKind, handle string) (string, error) {
	request, err := o.composer.Compose(kind, types.RequestOpen, nil, map[string]string{handleParam: handle})
	if err != nil {
		return "", err
	}
	return o.submit(ctx, request, http.MethodGet)
}

// cleanup deletes a report created by this orchestration. Failures are only
// logged since the caller already has the data or a more relevant error.
func (o *Orchestrator) cleanup(ctx context.Context, log *logger.Logger, kind types.ReportKind, handle string) {
	ctx = context.WithoutCancel(ctx)

	request, err := o.composer.Compose(kind, types.RequestDelete, nil, map[string]string{handleParam: handle})
	if err == nil {
		_, err = o.submit(ctx, request, http.MethodGet)
	}

	if err != nil {
		log.Warn("report_delete_failed").
			Str("uuid", handle).
			Err(err).
			Send()
		return
	}

	log.Info("report_deleted").
		Str("uuid", handle).
		Send()
}

func (o *Orchestrator) enrich(ctx context.Context, log *logger.Logger, issues []*types.Issue) error {
	log.Debug("cards_enrichment").
		Int("issues", len(issues)).
		Send()

	for _, issue := range issues {
		card, err := o.card(ctx, log, issue.UUID)
		if err != nil {
			return err
		}
		issue.Merge(card)
	}
	return nil
}

func (o *Orchestrator) card(ctx context.Context, log *logger.Logger, handle string) (*types.Issue, error) {
	if o.cards != nil {
		if card, ok := o.cards.Get(handle); ok {
			log.Debug("card_cache_hit").
				Str("uuid", handle).
				Send()
			return card, nil
		}
	}

	report, err := o.Fetch(ctx, types.ReportIssueCard, FetchOptions{Handle: handle})
	if err != nil {
		return nil, err
	}
	if len(report.Issues) != 1 {
		return nil, fmt.Errorf("%w: issue card %q returned %d issues", types.ErrCantGetData, handle, len(report.Issues))
	}

	card := report.Issues[0]
	if o.cards != nil {
		o.cards.Set(handle, card)
	}
	return card, nil
}

func (o *Orchestrator) assemble(kind types.ReportKind, result *parser.Result) (*types.Report, error) {
	report := &types.Report{Kind: kind, Page: result.Page}

	var err error
	switch result.Page {
	case types.PageIssuesTable, types.PageIssueCard:
		report.Issues = result.Issues
	case types.PageServiceLevel:
		report.ServiceLevel, err = gapfill.ServiceLevel(result.Table, o.now())
	case types.PageMTTR:
		report.MTTR, err = gapfill.MTTR(result.Table)
	case types.PageFLR:
		report.FLR, err = gapfill.FLR(result.Table)
	case types.PageAHT:
		report.AHT, err = gapfill.AHT(result.Table)
	case types.PageSearchResult:
		report.SearchResults = result.SearchResults
	default:
		err = fmt.Errorf("%w: page %s is not a report", types.ErrCantGetData, result.Page)
	}

	if err != nil {
		return nil, err
	}
	return report, nil
}

// submit treats every status other than 200 as missing data.
func (o *Orchestrator) submit(ctx context.Context, request *types.Request, method string) (string, error) {
	status, body, err := o.transport.Submit(ctx, request, method)
	if err != nil {
		return "", err
	}
	if status != http.StatusOK {
		return "", fmt.Errorf("%w: %s %s returned status %d", types.ErrCantGetData, method, request.URL(), status)
	}
	return body, nil
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
