package types

type ReportData struct {
	Title       string
	Timestamp   string
	StatusCode  int
	Status      string
	StatusClass string
	Description string
	Summary     []SummaryItem
	Columns     []string
	Rows        [][]string
}

type SummaryItem struct {
	Value string
	Label string
}
