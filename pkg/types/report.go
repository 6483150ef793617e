package types

type ReportKind string

const (
	ReportIssuesFirstLine ReportKind = "issues"
	ReportIssuesVIP       ReportKind = "vip issues"
	ReportIssueCard       ReportKind = "issue card"
	ReportServiceLevel    ReportKind = "service level report"
	ReportMTTR            ReportKind = "mttr report"
	ReportFLR             ReportKind = "flr report"
	ReportAHT             ReportKind = "aht report"
	ReportIssuesSearch    ReportKind = "search issues"
	ReportEnableSearch    ReportKind = "enable search"
	ReportSelectSearch    ReportKind = "select search"
)

var AllReportKinds = []ReportKind{
	ReportIssuesFirstLine,
	ReportIssuesVIP,
	ReportIssueCard,
	ReportServiceLevel,
	ReportMTTR,
	ReportFLR,
	ReportAHT,
	ReportIssuesSearch,
	ReportEnableSearch,
	ReportSelectSearch,
}

type PageKind int

const (
	PageNone PageKind = iota
	PageReportList
	PageIssuesTable
	PageIssueCard
	PageServiceLevel
	PageMTTR
	PageFLR
	PageAHT
	PageSearchResult
	PagePagination
)

func (p PageKind) String() string {
	switch p {
	case PageNone:
		return "none"
	case PageReportList:
		return "report_list"
	case PageIssuesTable:
		return "issues_table"
	case PageIssueCard:
		return "issue_card"
	case PageServiceLevel:
		return "service_level"
	case PageMTTR:
		return "mttr"
	case PageFLR:
		return "flr"
	case PageAHT:
		return "aht"
	case PageSearchResult:
		return "search_result"
	case PagePagination:
		return "pagination"
	}
	return "unknown"
}

// Page reports which extractor reads the kind's result page. Control kinds
// have no page and return PageNone with ok=true; unknown kinds return ok=false.
func (k ReportKind) Page() (PageKind, bool) {
	switch k {
	case ReportIssuesFirstLine, ReportIssuesVIP:
		return PageIssuesTable, true
	case ReportIssueCard:
		return PageIssueCard, true
	case ReportServiceLevel:
		return PageServiceLevel, true
	case ReportMTTR:
		return PageMTTR, true
	case ReportFLR:
		return PageFLR, true
	case ReportAHT:
		return PageAHT, true
	case ReportIssuesSearch:
		return PageSearchResult, true
	case ReportEnableSearch, ReportSelectSearch:
		return PageNone, true
	}
	return PageNone, false
}

func (k ReportKind) IsIssuesTable() bool {
	return k == ReportIssuesFirstLine || k == ReportIssuesVIP
}

func (k ReportKind) IsSearch() bool {
	return k == ReportIssuesSearch || k == ReportEnableSearch || k == ReportSelectSearch
}

type RequestKind string

const (
	RequestCreate  RequestKind = "create_report"
	RequestOpen    RequestKind = "search_report"
	RequestDelete  RequestKind = "delete_report"
	RequestControl RequestKind = "create_control_request"
)

// SearchDescriptor carries what the locate loop needs to find a generated report.
type SearchDescriptor struct {
	Name        string
	Delay       int
	MaxAttempts int
	UUID        string
}

// Report is the tagged result of one orchestration: Page says which field is set.
type Report struct {
	Kind          ReportKind
	Page          PageKind
	Issues        []*Issue
	ServiceLevel  []ServiceLevelDay
	MTTR          []Mttr
	FLR           []Flr
	AHT           []AhtDay
	SearchResults []SearchResultRow
}

func (r *Report) Content() interface{} {
	switch r.Page {
	case PageIssuesTable, PageIssueCard:
		return r.Issues
	case PageServiceLevel:
		return r.ServiceLevel
	case PageMTTR:
		return r.MTTR
	case PageFLR:
		return r.FLR
	case PageAHT:
		return r.AHT
	case PageSearchResult:
		return r.SearchResults
	}
	return []interface{}{}
}
