package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestIssueMerge(t *testing.T) {
	created := time.Date(2026, 10, 1, 9, 15, 0, 0, time.UTC)
	edited := time.Date(2026, 10, 16, 11, 0, 0, 0, time.UTC)
	required := time.Date(2026, 10, 3, 18, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		issue    Issue
		card     *Issue
		expected Issue
	}{
		{
			name:  "Empty card value keeps existing one",
			issue: Issue{UUID: "serviceCall$1", Number: "1234567", Description: "Нет связи"},
			card:  &Issue{Description: "", CreationDate: created},
			expected: Issue{
				UUID:         "serviceCall$1",
				Number:       "1234567",
				Description:  "Нет связи",
				CreationDate: created,
			},
		},
		{
			name:     "Non-empty card value overwrites",
			issue:    Issue{Name: "старое", Step: "Зарегистрировано", StepTime: time.Hour},
			card:     &Issue{Name: "новое", Step: "В работе"},
			expected: Issue{Name: "новое", Step: "В работе", StepTime: time.Hour},
		},
		{
			name:     "Zero times never clear",
			issue:    Issue{LastEditTime: edited, RequiredDate: required},
			card:     &Issue{RequiredDate: required.Add(24 * time.Hour)},
			expected: Issue{LastEditTime: edited, RequiredDate: required.Add(24 * time.Hour)},
		},
		{
			name: "Empty slices keep existing ones",
			issue: Issue{
				NameService: []string{"Интернет"},
				Contacts:    []string{"Иван"},
			},
			card: &Issue{
				NameService: []string{},
				Diagnostics: []KeyValue{{Key: "Порт", Value: "5"}},
			},
			expected: Issue{
				NameService: []string{"Интернет"},
				Contacts:    []string{"Иван"},
				Diagnostics: []KeyValue{{Key: "Порт", Value: "5"}},
			},
		},
		{
			name:     "VIP flag is never cleared",
			issue:    Issue{VIPContragent: true},
			card:     &Issue{VIPContragent: false, NameContragent: "ООО Ромашка"},
			expected: Issue{VIPContragent: true, NameContragent: "ООО Ромашка"},
		},
		{
			name:     "Nil card",
			issue:    Issue{Number: "1234567"},
			card:     nil,
			expected: Issue{Number: "1234567"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			issue := tt.issue
			issue.Merge(tt.card)
			assert.Equal(t, tt.expected, issue)
		})
	}
}

func TestIssueMerge_CopiesSlices(t *testing.T) {
	card := &Issue{UUIDService: []string{"service$1"}}

	var issue Issue
	issue.Merge(card)
	card.UUIDService[0] = "service$2"

	assert.Equal(t, []string{"service$1"}, issue.UUIDService)
}
