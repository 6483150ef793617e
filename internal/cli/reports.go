package cli

import (
	"context"

	"github.com/kevinfinalboss/crmreports/internal/reporter"
	"github.com/kevinfinalboss/crmreports/internal/reports"
	"github.com/kevinfinalboss/crmreports/pkg/types"
	"github.com/spf13/cobra"
)

var (
	vip          bool
	parseCards   bool
	parseHistory bool

	startDate string
	endDate   string
	deadline  string

	searchNumber           string
	searchContragent       string
	searchContragentNumber string
)

var issuesCmd = &cobra.Command{
	Use:   "issues",
	Short: getMessage("issues_short"),
	RunE: func(cmd *cobra.Command, args []string) error {
		kind := types.ReportIssuesFirstLine
		if vip {
			kind = types.ReportIssuesVIP
		}

		return runReport(cmd, kind, func(ctx context.Context, client *reports.Client) (*types.Report, error) {
			return client.GetIssues(ctx, vip, parseCards, parseHistory)
		})
	},
}

var cardCmd = &cobra.Command{
	Use:   "card <uuid>",
	Short: getMessage("card_short"),
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runReport(cmd, types.ReportIssueCard, func(ctx context.Context, client *reports.Client) (*types.Report, error) {
			return client.GetIssueCard(ctx, args[0])
		})
	},
}

var slCmd = &cobra.Command{
	Use:   "sl",
	Short: getMessage("sl_short"),
	RunE: func(cmd *cobra.Command, args []string) error {
		minutes, err := reports.ParseDeadline(deadline)
		if err != nil {
			log.Error("invalid_deadline").
				Str("deadline", deadline).
				Send()
			return writeResponse(cmd, types.ReportServiceLevel, reporter.InvalidDeadline(deadline))
		}

		return runReport(cmd, types.ReportServiceLevel, func(ctx context.Context, client *reports.Client) (*types.Report, error) {
			return client.GetServiceLevel(ctx, startDate, endDate, minutes)
		})
	},
}

var mttrCmd = &cobra.Command{
	Use:   "mttr",
	Short: getMessage("mttr_short"),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runReport(cmd, types.ReportMTTR, func(ctx context.Context, client *reports.Client) (*types.Report, error) {
			return client.GetMTTR(ctx, startDate, endDate)
		})
	},
}

var flrCmd = &cobra.Command{
	Use:   "flr",
	Short: getMessage("flr_short"),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runReport(cmd, types.ReportFLR, func(ctx context.Context, client *reports.Client) (*types.Report, error) {
			return client.GetFLR(ctx, startDate, endDate)
		})
	},
}

var ahtCmd = &cobra.Command{
	Use:   "aht",
	Short: getMessage("aht_short"),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runReport(cmd, types.ReportAHT, func(ctx context.Context, client *reports.Client) (*types.Report, error) {
			return client.GetAHT(ctx, startDate, endDate)
		})
	},
}

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: getMessage("search_short"),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runReport(cmd, types.ReportIssuesSearch, func(ctx context.Context, client *reports.Client) (*types.Report, error) {
			return client.SearchIssues(ctx, searchNumber, searchContragent, searchContragentNumber)
		})
	},
}

func addPeriodFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&startDate, "from", "", "period start, dd.mm.yyyy")
	cmd.Flags().StringVar(&endDate, "to", "", "period end, dd.mm.yyyy")
}

func init() {
	issuesCmd.Flags().BoolVar(&vip, "vip", false, "VIP support line instead of the first line")
	issuesCmd.Flags().BoolVar(&parseCards, "cards", false, "enrich every issue with its card")
	issuesCmd.Flags().BoolVar(&parseHistory, "history", false, "enrich every issue with its history")

	for _, cmd := range []*cobra.Command{slCmd, mttrCmd, flrCmd, ahtCmd} {
		addPeriodFlags(cmd)
	}
	slCmd.Flags().StringVar(&deadline, "deadline", "15", "service level deadline in minutes")

	searchCmd.Flags().StringVar(&searchNumber, "number", "", "issue number")
	searchCmd.Flags().StringVar(&searchContragent, "contragent", "", "contragent title")
	searchCmd.Flags().StringVar(&searchContragentNumber, "contragent-number", "", "contragent number")
}
