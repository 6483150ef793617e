package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/kevinfinalboss/crmreports/internal/cache"
	"github.com/kevinfinalboss/crmreports/internal/composer"
	"github.com/kevinfinalboss/crmreports/internal/reporter"
	"github.com/kevinfinalboss/crmreports/internal/reports"
	"github.com/kevinfinalboss/crmreports/internal/transport"
	"github.com/kevinfinalboss/crmreports/pkg/types"
	"github.com/spf13/cobra"
)

type app struct {
	client *reports.Client
	cards  *cache.Cards
}

func newApp(ctx context.Context) (*app, error) {
	session, err := transport.New(cfg.CRM, log)
	if err != nil {
		return nil, err
	}

	orchestrator := reports.NewOrchestrator(session, composer.New(cfg), cfg.Search, log)

	a := &app{}
	if cfg.Cache.Enabled {
		a.cards, err = cache.NewCards(ctx, time.Duration(cfg.Cache.TTLMinutes)*time.Minute, log)
		if err != nil {
			return nil, err
		}
		orchestrator.WithCardCache(a.cards)
	}

	a.client = reports.NewClient(session, orchestrator)
	return a, nil
}

func (a *app) Close() {
	if a.cards != nil {
		a.cards.Close()
	}
}

type fetchFunc func(ctx context.Context, client *reports.Client) (*types.Report, error)

// runReport connects to the CRM, runs fetch and writes the response.
func runReport(cmd *cobra.Command, kind types.ReportKind, fetch fetchFunc) error {
	ctx := cmd.Context()
	reportLog := log.WithField("report", string(kind))

	reportLog.Info("report_started").Send()

	a, err := newApp(ctx)
	if err != nil {
		reportLog.Error("operation_failed").Err(err).Send()
		return err
	}
	defer a.Close()

	var response *types.Response
	if err := a.client.Connect(ctx); err != nil {
		reportLog.Error("not_authorized").Err(err).Send()
		response = reporter.NotAuthorized()
	} else {
		report, err := fetch(ctx, a.client)
		if err != nil {
			reportLog.Error("operation_failed").Err(err).Send()
		}
		response = reporter.FromResult(report, err)
	}

	return writeResponse(cmd, kind, response)
}

func writeResponse(cmd *cobra.Command, kind types.ReportKind, response *types.Response) error {
	switch cfg.Settings.Output {
	case "", "json":
		data, err := reporter.JSON(response)
		if err != nil {
			return err
		}
		if _, err := cmd.OutOrStdout().Write(data); err != nil {
			return err
		}
	case "html":
		htmlReporter, err := reporter.NewHTMLReporter(log, "")
		if err != nil {
			return err
		}
		path, err := htmlReporter.GenerateReport(kind, response)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), path)
	default:
		log.Error("unsupported_output").Str("output", cfg.Settings.Output).Send()
		return fmt.Errorf("unsupported output format %q", cfg.Settings.Output)
	}

	log.Debug("response_written").
		Str("report", string(kind)).
		Int("status_code", response.StatusCode).
		Send()

	if !response.OK() {
		return fmt.Errorf("%d %s", response.StatusCode, response.StatusMessage)
	}

	log.Info("operation_completed").
		Str("report", string(kind)).
		Send()
	return nil
}
