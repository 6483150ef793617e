package reports

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/kevinfinalboss/crmreports/internal/parser"
	"github.com/kevinfinalboss/crmreports/pkg/types"
)

// Search runs the free-text issue search. The CRM needs search mode switched
// on and the search type selected, with a pause after each, before it
// accepts the query. Result pages after the first are requested by index.
func (o *Orchestrator) Search(ctx context.Context, fields map[string]string) (*types.Report, error) {
	log := o.logger.WithFields(map[string]interface{}{
		"report":         string(types.ReportIssuesSearch),
		"correlation_id": uuid.NewString(),
	})

	log.Info("search_started").
		Interface("fields", fields).
		Send()

	if err := o.control(ctx, types.ReportEnableSearch); err != nil {
		return nil, err
	}
	log.Debug("search_mode_enabled").Send()
	if err := o.sleep(ctx, time.Duration(o.search.EnableDelay)*time.Second); err != nil {
		return nil, err
	}

	if err := o.control(ctx, types.ReportSelectSearch); err != nil {
		return nil, err
	}
	log.Debug("search_type_selected").Send()
	if err := o.sleep(ctx, time.Duration(o.search.SelectDelay)*time.Second); err != nil {
		return nil, err
	}

	first, err := o.query(ctx, fields, nil)
	if err != nil {
		return nil, err
	}

	pages, err := parser.Pagination(first)
	if err != nil {
		return nil, err
	}
	log.Debug("search_pages_found").
		Int("pages", pages).
		Send()

	bodies := []string{first}
	for i := 1; i < pages; i++ {
		body, err := o.query(ctx, fields, map[string]string{o.search.PageParamKey: strconv.Itoa(i)})
		if err != nil {
			return nil, err
		}
		bodies = append(bodies, body)
	}

	rows := []types.SearchResultRow{}
	for _, body := range bodies {
		pageRows, err := parser.SearchResults(body)
		if err != nil {
			return nil, err
		}
		rows = append(rows, pageRows...)
	}

	log.Info("search_completed").
		Int("pages", len(bodies)).
		Int("rows", len(rows)).
		Send()

	return &types.Report{
		Kind:          types.ReportIssuesSearch,
		Page:          types.PageSearchResult,
		SearchResults: rows,
	}, nil
}

func (o *Orchestrator) control(ctx context.Context, kind types.ReportKind) error {
	request, err := o.composer.Compose(kind, types.RequestControl, nil, nil)
	if err != nil {
		return err
	}
	_, err = o.submit(ctx, request, http.MethodPost)
	return err
}

func (o *Orchestrator) query(ctx context.Context, fields, params map[string]string) (string, error) {
	request, err := o.composer.Compose(types.ReportIssuesSearch, types.RequestCreate, fields, params)
	if err != nil {
		return "", err
	}
	return o.submit(ctx, request, http.MethodPost)
}
