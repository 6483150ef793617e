package types

const TotalGroupName = "Итог"

type ServiceLevel struct {
	Day                     int     `json:"day"`
	Group                   string  `json:"group"`
	TotalIssues             int     `json:"total_issues"`
	TotalPrimaryIssues      int     `json:"total_primary_issues"`
	NumIssuesBeforeDeadline int     `json:"num_issues_before_deadline"`
	NumIssuesAfterDeadline  int     `json:"num_issues_after_deadline"`
	ServiceLevel            float64 `json:"service_level"`
}

type ServiceLevelDay struct {
	Date   string         `json:"date"`
	Day    int            `json:"day"`
	Groups []ServiceLevel `json:"groups"`
	Total  ServiceLevel   `json:"total"`
}

type Mttr struct {
	Day                    int     `json:"day"`
	Date                   string  `json:"date"`
	TotalIssues            int     `json:"total_issues"`
	AverageMTTR            float64 `json:"average_mttr"`
	AverageMTTRTechSupport float64 `json:"average_mttr_tech_support"`
}

type Flr struct {
	Date                         string  `json:"date"`
	FLRLevel                     float64 `json:"flr_level"`
	NumIssuesClosedIndependently int     `json:"num_issues_closed_independently"`
	TotalPrimaryIssues           int     `json:"total_primary_issues"`
}

type Aht struct {
	Date           string  `json:"date"`
	Segment        string  `json:"segment"`
	AHTLevel       float64 `json:"aht_level"`
	IssuesReceived int     `json:"issues_received"`
}

type AhtDay struct {
	Date     string `json:"date"`
	Segments []Aht  `json:"segments"`
}
