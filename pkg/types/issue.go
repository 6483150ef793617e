package types

import (
	"encoding/json"
	"time"
)

const ResponseTimeLayout = "02.01.2006 15:04:05"

type KeyValue struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Issue is a ticket snapshot. Rows of the issues table fill the short form,
// the issue card fills the rest.
type Issue struct {
	UUID               string        `json:"uuid"`
	Number             string        `json:"number"`
	Name               string        `json:"name"`
	IssueType          string        `json:"issue_type"`
	Step               string        `json:"step"`
	StepTime           time.Duration `json:"step_time"`
	UUIDResponsible    string        `json:"uuid_responsible"`
	Responsible        string        `json:"responsible"`
	LastEditTime       time.Time     `json:"last_edit_time"`
	VIPContragent      bool          `json:"vip_contragent"`
	CreationDate       time.Time     `json:"creation_date"`
	UUIDService        []string      `json:"uuid_service"`
	NameService        []string      `json:"name_service"`
	InfoService        []string      `json:"info_service"`
	UUIDContragent     string        `json:"uuid_contragent"`
	NameContragent     string        `json:"name_contragent"`
	ContragentCategory string        `json:"contragent_category"`
	ReturnToWorkTime   time.Time     `json:"return_to_work_time"`
	Description        string        `json:"description"`
	Diagnostics        []KeyValue    `json:"diagnostics"`
	RequiredDate       time.Time     `json:"required_date"`
	CloseDate          time.Time     `json:"close_date"`
	ClientRequisites   []KeyValue    `json:"client_requisite"`
	Contacts           []string      `json:"contact"`
}

// Merge copies every non-empty field of card into i. Empty card fields never
// clear a value already present on i.
func (i *Issue) Merge(card *Issue) {
	if card == nil {
		return
	}
	mergeString(&i.UUID, card.UUID)
	mergeString(&i.Number, card.Number)
	mergeString(&i.Name, card.Name)
	mergeString(&i.IssueType, card.IssueType)
	mergeString(&i.Step, card.Step)
	if card.StepTime != 0 {
		i.StepTime = card.StepTime
	}
	mergeString(&i.UUIDResponsible, card.UUIDResponsible)
	mergeString(&i.Responsible, card.Responsible)
	mergeTime(&i.LastEditTime, card.LastEditTime)
	if card.VIPContragent {
		i.VIPContragent = true
	}
	mergeTime(&i.CreationDate, card.CreationDate)
	mergeSlice(&i.UUIDService, card.UUIDService)
	mergeSlice(&i.NameService, card.NameService)
	mergeSlice(&i.InfoService, card.InfoService)
	mergeString(&i.UUIDContragent, card.UUIDContragent)
	mergeString(&i.NameContragent, card.NameContragent)
	mergeString(&i.ContragentCategory, card.ContragentCategory)
	mergeTime(&i.ReturnToWorkTime, card.ReturnToWorkTime)
	mergeString(&i.Description, card.Description)
	mergeSlice(&i.Diagnostics, card.Diagnostics)
	mergeTime(&i.RequiredDate, card.RequiredDate)
	mergeTime(&i.CloseDate, card.CloseDate)
	mergeSlice(&i.ClientRequisites, card.ClientRequisites)
	mergeSlice(&i.Contacts, card.Contacts)
}

func mergeString(dst *string, src string) {
	if src != "" {
		*dst = src
	}
}

func mergeTime(dst *time.Time, src time.Time) {
	if !src.IsZero() {
		*dst = src
	}
}

func mergeSlice[T any](dst *[]T, src []T) {
	if len(src) > 0 {
		*dst = append([]T(nil), src...)
	}
}

func (i Issue) MarshalJSON() ([]byte, error) {
	type plain Issue
	return json.Marshal(struct {
		plain
		StepTime         float64 `json:"step_time"`
		LastEditTime     string  `json:"last_edit_time"`
		CreationDate     string  `json:"creation_date"`
		ReturnToWorkTime string  `json:"return_to_work_time"`
		RequiredDate     string  `json:"required_date"`
		CloseDate        string  `json:"close_date"`
	}{
		plain:            plain(i),
		StepTime:         i.StepTime.Seconds(),
		LastEditTime:     formatTime(i.LastEditTime),
		CreationDate:     formatTime(i.CreationDate),
		ReturnToWorkTime: formatTime(i.ReturnToWorkTime),
		RequiredDate:     formatTime(i.RequiredDate),
		CloseDate:        formatTime(i.CloseDate),
	})
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(ResponseTimeLayout)
}

type SearchResultRow struct {
	Number          string `json:"number"`
	UUID            string `json:"uuid"`
	UUIDContragent  string `json:"uuid_contragent"`
	NameContragent  string `json:"name_contragent"`
	IssueType       string `json:"issue_type"`
	Step            string `json:"step"`
	UUIDResponsible string `json:"uuid_responsible"`
	NameResponsible string `json:"name_responsible"`
	Description     string `json:"description"`
	Contact         string `json:"contact"`
}
