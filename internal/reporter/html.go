package reporter

import (
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/kevinfinalboss/crmreports/internal/logger"
	"github.com/kevinfinalboss/crmreports/pkg/types"
)

const (
	timestampLayout = "02.01.2006 15:04:05"
	fileStampLayout = "2006-01-02_15-04-05"
)

type HTMLReporter struct {
	logger     *logger.Logger
	reportsDir string
	now        func() time.Time
}

// NewHTMLReporter writes reports to reportsDir, or ~/.crmreports/reports when empty.
func NewHTMLReporter(logger *logger.Logger, reportsDir string) (*HTMLReporter, error) {
	if reportsDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		reportsDir = filepath.Join(home, ".crmreports", "reports")
	}

	if err := os.MkdirAll(reportsDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create reports dir: %w", err)
	}

	return &HTMLReporter{
		logger:     logger,
		reportsDir: reportsDir,
		now:        time.Now,
	}, nil
}

func (r *HTMLReporter) GenerateReport(kind types.ReportKind, response *types.Response) (string, error) {
	timestamp := r.now()
	filename := fmt.Sprintf("crmreports-%s-%s.html", strings.ReplaceAll(string(kind), " ", "-"), timestamp.Format(fileStampLayout))
	reportPath := filepath.Join(r.reportsDir, filename)

	data := buildReportData(kind, response, timestamp)

	htmlContent, err := generateHTML(data)
	if err != nil {
		return "", fmt.Errorf("failed to render HTML: %w", err)
	}

	if err := os.WriteFile(reportPath, []byte(htmlContent), 0644); err != nil {
		return "", fmt.Errorf("failed to save report: %w", err)
	}

	r.logger.Info("html_report_saved").
		Str("file", reportPath).
		Str("report", string(kind)).
		Int("rows", len(data.Rows)).
		Send()

	return reportPath, nil
}

func buildReportData(kind types.ReportKind, response *types.Response, timestamp time.Time) types.ReportData {
	columns, rows := tabulate(response.Content)

	return types.ReportData{
		Title:       reportTitle(kind),
		Timestamp:   timestamp.Format(timestampLayout),
		StatusCode:  response.StatusCode,
		Status:      response.StatusMessage,
		StatusClass: statusClass(response.StatusCode),
		Description: response.Description,
		Summary: []types.SummaryItem{
			{Value: strconv.Itoa(response.StatusCode), Label: "Статус"},
			{Value: strconv.Itoa(len(rows)), Label: "Строк"},
		},
		Columns: columns,
		Rows:    rows,
	}
}

func tabulate(content interface{}) ([]string, [][]string) {
	var rows [][]string

	switch items := content.(type) {
	case []*types.Issue:
		for _, issue := range items {
			rows = append(rows, []string{
				issue.Number,
				issue.Name,
				issue.IssueType,
				issue.Step,
				issue.Responsible,
				formatDuration(issue.StepTime),
				formatTime(issue.LastEditTime),
				yesNo(issue.VIPContragent),
				issue.NameContragent,
			})
		}
		return []string{"Номер", "Обращение", "Тип", "Состояние", "Ответственный", "Время на шаге", "Изменено", "VIP", "Контрагент"}, rows

	case []types.ServiceLevelDay:
		for _, day := range items {
			for _, group := range append(append([]types.ServiceLevel{}, day.Groups...), day.Total) {
				rows = append(rows, []string{
					day.Date,
					group.Group,
					strconv.Itoa(group.TotalIssues),
					strconv.Itoa(group.TotalPrimaryIssues),
					strconv.Itoa(group.NumIssuesBeforeDeadline),
					strconv.Itoa(group.NumIssuesAfterDeadline),
					formatFloat(group.ServiceLevel),
				})
			}
		}
		return []string{"Дата", "Группа", "Поступило", "Первичных", "До норматива", "После норматива", "Service Level, %"}, rows

	case []types.Mttr:
		for _, day := range items {
			rows = append(rows, []string{
				day.Date,
				strconv.Itoa(day.TotalIssues),
				formatFloat(day.AverageMTTR),
				formatFloat(day.AverageMTTRTechSupport),
			})
		}
		return []string{"Дата", "Обращений", "MTTR", "MTTR техподдержки"}, rows

	case []types.Flr:
		for _, day := range items {
			rows = append(rows, []string{
				day.Date,
				formatFloat(day.FLRLevel),
				strconv.Itoa(day.NumIssuesClosedIndependently),
				strconv.Itoa(day.TotalPrimaryIssues),
			})
		}
		return []string{"Дата", "FLR, %", "Закрыто самостоятельно", "Первичных"}, rows

	case []types.AhtDay:
		for _, day := range items {
			for _, segment := range day.Segments {
				rows = append(rows, []string{
					day.Date,
					segment.Segment,
					formatFloat(segment.AHTLevel),
					strconv.Itoa(segment.IssuesReceived),
				})
			}
		}
		return []string{"Дата", "Сегмент", "AHT", "Поступило"}, rows

	case []types.SearchResultRow:
		for _, row := range items {
			rows = append(rows, []string{
				row.Number,
				row.NameContragent,
				row.IssueType,
				row.Step,
				row.NameResponsible,
				row.Description,
				row.Contact,
			})
		}
		return []string{"Номер", "Контрагент", "Тип", "Состояние", "Ответственный", "Описание", "Контакт"}, rows
	}

	return nil, nil
}

func generateHTML(data types.ReportData) (string, error) {
	tmpl := `<!DOCTYPE html>
<html lang="ru">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>{{.Title}} - {{.Timestamp}}</title>
    <style>
        * { margin: 0; padding: 0; box-sizing: border-box; }
        body { font-family: 'Segoe UI', Tahoma, Geneva, Verdana, sans-serif; background: #f5f7fa; color: #333; line-height: 1.6; }
        .container { max-width: 1200px; margin: 0 auto; padding: 20px; }
        .header { background: linear-gradient(135deg, #667eea 0%, #764ba2 100%); color: white; padding: 30px; border-radius: 10px; margin-bottom: 30px; }
        .header h1 { font-size: 2rem; margin-bottom: 10px; }
        .stats-grid { display: grid; grid-template-columns: repeat(auto-fit, minmax(250px, 1fr)); gap: 20px; margin-bottom: 30px; }
        .stat-card { background: white; padding: 25px; border-radius: 10px; box-shadow: 0 5px 15px rgba(0,0,0,0.08); border-left: 5px solid #667eea; }
        .stat-card h3 { color: #667eea; font-size: 2rem; margin-bottom: 5px; }
        .section { background: white; margin-bottom: 30px; border-radius: 10px; overflow: hidden; box-shadow: 0 5px 15px rgba(0,0,0,0.08); }
        .section-header { background: #667eea; color: white; padding: 20px; font-size: 1.3rem; font-weight: 600; }
        .section-content { padding: 25px; }
        .table { width: 100%; border-collapse: collapse; }
        .table th, .table td { padding: 12px; text-align: left; border-bottom: 1px solid #eee; }
        .table th { background: #f8f9fa; font-weight: 600; }
        .table tr:hover { background: #f8f9fa; }
        .badge { padding: 4px 12px; border-radius: 20px; font-size: 0.85rem; font-weight: 500; }
        .badge.success { background: #d4edda; color: #155724; }
        .badge.warning { background: #fff3cd; color: #856404; }
        .badge.danger { background: #f8d7da; color: #721c24; }
        .footer { text-align: center; padding: 30px; color: #666; border-top: 1px solid #eee; margin-top: 30px; }
    </style>
</head>
<body>
    <div class="container">
        <div class="header">
            <h1>{{.Title}}</h1>
            <p>Сформирован {{.Timestamp}} | <span class="badge {{.StatusClass}}">{{.StatusCode}} {{.Status}}</span></p>
            {{if .Description}}<p>{{.Description}}</p>{{end}}
        </div>

        <div class="stats-grid">
            {{range .Summary}}
            <div class="stat-card">
                <h3>{{.Value}}</h3>
                <p>{{.Label}}</p>
            </div>
            {{end}}
        </div>

        {{if .Rows}}
        <div class="section">
            <div class="section-header">Данные отчёта</div>
            <div class="section-content">
                <table class="table">
                    <thead>
                        <tr>{{range .Columns}}<th>{{.}}</th>{{end}}</tr>
                    </thead>
                    <tbody>
                        {{range .Rows}}
                        <tr>{{range .}}<td>{{.}}</td>{{end}}</tr>
                        {{end}}
                    </tbody>
                </table>
            </div>
        </div>
        {{end}}

        <div class="footer">
            <p><strong>crmreports</strong> | Отчёт сформирован автоматически</p>
        </div>
    </div>
</body>
</html>`

	t, err := template.New("report").Parse(tmpl)
	if err != nil {
		return "", err
	}

	var buf strings.Builder
	if err := t.Execute(&buf, data); err != nil {
		return "", err
	}

	return buf.String(), nil
}

func reportTitle(kind types.ReportKind) string {
	switch kind {
	case types.ReportIssuesFirstLine:
		return "Открытые обращения первой линии"
	case types.ReportIssuesVIP:
		return "Открытые обращения VIP"
	case types.ReportIssueCard:
		return "Карточка обращения"
	case types.ReportServiceLevel:
		return "Service Level"
	case types.ReportMTTR:
		return "MTTR"
	case types.ReportFLR:
		return "FLR"
	case types.ReportAHT:
		return "AHT"
	case types.ReportIssuesSearch:
		return "Поиск обращений"
	}
	return string(kind)
}

func statusClass(code int) string {
	switch {
	case code == types.StatusOK.Code:
		return "success"
	case code < 500:
		return "warning"
	}
	return "danger"
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(timestampLayout)
}

func formatDuration(d time.Duration) string {
	if d == 0 {
		return ""
	}
	return d.String()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func yesNo(v bool) string {
	if v {
		return "да"
	}
	return "нет"
}
