package config

import "github.com/kevinfinalboss/crmreports/pkg/types"

func defaultURLs() map[types.RequestKind]string {
	return map[types.RequestKind]string{
		types.RequestCreate:  defaultBaseURL + "/sd/ru.naumen.sd.ui.CreateReportInstance_do",
		types.RequestOpen:    defaultBaseURL + "/sd/ru.naumen.core.ui.BrowseObject",
		types.RequestDelete:  defaultBaseURL + "/sd/ru.naumen.core.ui.DeleteObject_do",
		types.RequestControl: defaultBaseURL + "/sd/ru.naumen.core.ui.SetControlValue_do",
	}
}

func defaultHeaders() map[string]string {
	return map[string]string{
		"User-Agent":      "crmreports",
		"Accept":          "text/html,application/xhtml+xml",
		"Accept-Language": "ru-RU,ru;q=0.9",
	}
}

func field(name, value string) types.FieldTemplate {
	return types.FieldTemplate{Name: name, Value: value}
}

func dateField(name string) types.FieldTemplate {
	return types.FieldTemplate{Name: name, Date: true}
}

func handleParams() map[string]types.FieldTemplate {
	return map[string]types.FieldTemplate{
		"uuid": field("uuid", ""),
	}
}

// lifecycle builds the create/open/delete templates shared by generated reports.
func lifecycle(templateUUID string, data map[string]types.FieldTemplate) map[types.RequestKind]types.RequestTemplate {
	create := map[string]types.FieldTemplate{
		"title":    field("title", ""),
		"template": field("reportTemplate", templateUUID),
		"format":   field("reportFormat", "html"),
	}
	for key, value := range data {
		create[key] = value
	}

	return map[types.RequestKind]types.RequestTemplate{
		types.RequestCreate: {Data: create},
		types.RequestOpen:   {Params: handleParams()},
		types.RequestDelete: {Params: handleParams()},
	}
}

func periodData(extra map[string]types.FieldTemplate) map[string]types.FieldTemplate {
	data := map[string]types.FieldTemplate{
		"start_date": dateField("parameter_startDate"),
		"end_date":   dateField("parameter_endDate"),
	}
	for key, value := range extra {
		data[key] = value
	}
	return data
}

func generated(templateUUID string, delay, attempts int, data map[string]types.FieldTemplate) types.ReportConfig {
	return types.ReportConfig{
		UUID:          "reportsList$" + templateUUID,
		DelayAttempts: delay,
		MaxAttempts:   attempts,
		Requests:      lifecycle("reportTemplate$"+templateUUID, data),
	}
}

func defaultReports() map[types.ReportKind]types.ReportConfig {
	return map[types.ReportKind]types.ReportConfig{
		types.ReportIssuesFirstLine: generated("1001", 2, 10, map[string]types.FieldTemplate{
			"group": field("parameter_group", "first_line"),
		}),
		types.ReportIssuesVIP: generated("1001", 2, 10, map[string]types.FieldTemplate{
			"group": field("parameter_group", "vip_line"),
		}),
		types.ReportIssueCard: {
			Requests: map[types.RequestKind]types.RequestTemplate{
				types.RequestOpen: {Params: handleParams()},
			},
		},
		types.ReportServiceLevel: generated("1002", 5, 20, periodData(map[string]types.FieldTemplate{
			"deadline": field("parameter_deadline", "15"),
		})),
		types.ReportMTTR: generated("1003", 5, 20, periodData(nil)),
		types.ReportFLR:  generated("1004", 5, 20, periodData(nil)),
		types.ReportAHT:  generated("1005", 5, 20, periodData(nil)),
		types.ReportIssuesSearch: {
			Requests: map[types.RequestKind]types.RequestTemplate{
				types.RequestCreate: {
					Data: map[string]types.FieldTemplate{
						"byNumber":     field("advSearchTab.number", ""),
						"byCntrTitle":  field("advSearchTab.contragentTitle", ""),
						"byCntrNumber": field("advSearchTab.contragentNumber", ""),
						"search":       field("advSearchTab.doSearch", "true"),
					},
				},
			},
		},
		types.ReportEnableSearch: {
			Requests: map[types.RequestKind]types.RequestTemplate{
				types.RequestControl: {
					Data: map[string]types.FieldTemplate{
						"control": field("control", "advSearchTab.enable"),
						"value":   field("value", "true"),
					},
				},
			},
		},
		types.ReportSelectSearch: {
			Requests: map[types.RequestKind]types.RequestTemplate{
				types.RequestControl: {
					Data: map[string]types.FieldTemplate{
						"control": field("control", "advSearchTab.searchType"),
						"value":   field("value", "serviceCall"),
					},
				},
			},
		},
	}
}

func defaultSearch() types.SearchConfig {
	return types.SearchConfig{
		Endpoints: map[types.ReportKind]types.SearchEndpoint{
			types.ReportIssuesSearch: {
				URL:  defaultBaseURL + "/sd/ru.naumen.sd.ui.AdvancedSearch",
				UUID: "advSearchTab$serviceCall",
			},
			types.ReportEnableSearch: {
				URL: defaultBaseURL + "/sd/ru.naumen.core.ui.SetControlValue_do",
			},
			types.ReportSelectSearch: {
				URL: defaultBaseURL + "/sd/ru.naumen.core.ui.SetControlValue_do",
			},
		},
		EnableDelay:  1,
		SelectDelay:  2,
		PageParamKey: "pagination",
	}
}
