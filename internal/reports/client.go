package reports

import (
	"context"
	"fmt"
	"strconv"

	"github.com/kevinfinalboss/crmreports/pkg/types"
)

const (
	StartDateKey = "start_date"
	EndDateKey   = "end_date"
	DeadlineKey  = "deadline"

	DefaultDeadline = 15
)

// Search field keys understood by the issue search form.
const (
	SearchByNumber           = "byNumber"
	SearchByContragentTitle  = "byCntrTitle"
	SearchByContragentNumber = "byCntrNumber"
)

type Connector interface {
	Login(ctx context.Context) error
	LoggedIn() bool
}

// Client exposes one method per report the CRM can build.
type Client struct {
	session      Connector
	orchestrator *Orchestrator
}

func NewClient(session Connector, orchestrator *Orchestrator) *Client {
	return &Client{
		session:      session,
		orchestrator: orchestrator,
	}
}

func (c *Client) Connect(ctx context.Context) error {
	if c.session.LoggedIn() {
		return nil
	}
	return c.session.Login(ctx)
}

func (c *Client) GetIssues(ctx context.Context, vip, parseCards, parseHistory bool) (*types.Report, error) {
	kind := types.ReportIssuesFirstLine
	if vip {
		kind = types.ReportIssuesVIP
	}

	return c.orchestrator.Fetch(ctx, kind, FetchOptions{
		ParseCards:   parseCards,
		ParseHistory: parseHistory,
	})
}

func (c *Client) GetIssueCard(ctx context.Context, uuid string) (*types.Report, error) {
	if uuid == "" {
		return nil, fmt.Errorf("%w: empty issue uuid", types.ErrCantGetData)
	}
	return c.orchestrator.Fetch(ctx, types.ReportIssueCard, FetchOptions{Handle: uuid})
}

func (c *Client) GetServiceLevel(ctx context.Context, start, end string, deadline int) (*types.Report, error) {
	fields := periodFields(start, end)
	fields[DeadlineKey] = strconv.Itoa(deadline)
	return c.orchestrator.Fetch(ctx, types.ReportServiceLevel, FetchOptions{Fields: fields})
}

func (c *Client) GetMTTR(ctx context.Context, start, end string) (*types.Report, error) {
	return c.orchestrator.Fetch(ctx, types.ReportMTTR, FetchOptions{Fields: periodFields(start, end)})
}

func (c *Client) GetFLR(ctx context.Context, start, end string) (*types.Report, error) {
	return c.orchestrator.Fetch(ctx, types.ReportFLR, FetchOptions{Fields: periodFields(start, end)})
}

func (c *Client) GetAHT(ctx context.Context, start, end string) (*types.Report, error) {
	return c.orchestrator.Fetch(ctx, types.ReportAHT, FetchOptions{Fields: periodFields(start, end)})
}

// SearchIssues looks issues up by number, contragent title or contragent
// number. Empty criteria are sent as empty form fields.
func (c *Client) SearchIssues(ctx context.Context, number, contragentTitle, contragentNumber string) (*types.Report, error) {
	return c.orchestrator.Search(ctx, map[string]string{
		SearchByNumber:           number,
		SearchByContragentTitle:  contragentTitle,
		SearchByContragentNumber: contragentNumber,
	})
}

// ParseDeadline accepts the service level deadline in minutes.
func ParseDeadline(value string) (int, error) {
	if value == "" {
		return DefaultDeadline, nil
	}

	deadline, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%w: Invalid deadline value: %s", types.ErrCantGetData, value)
	}
	return deadline, nil
}

func periodFields(start, end string) map[string]string {
	return map[string]string{
		StartDateKey: start,
		EndDateKey:   end,
	}
}
