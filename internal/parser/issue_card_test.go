package parser

import (
	"testing"
	"time"

	"github.com/kevinfinalboss/crmreports/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const issueCardPage = `<html><body>
<table>
<tr><td>Номер</td><td id="number"><b>1234567</b></td></tr>
<tr><td>Название</td><td id="title">Нет связи
  в офисе</td></tr>
<tr><td>Состояние</td><td id="stage">В работе</td></tr>
<tr><td>Тип</td><td id="BOCase">Инцидент</td></tr>
<tr><td>Ответственный</td><td id="stateResponsible"><a href="/fx/sd/ru.naumen.core.ui.BrowseObject?uuid=employee$5">Петров
  Петр</a></td></tr>
<tr><td>Контрагент</td><td id="contragent"><a href="/fx/sd/ru.naumen.core.ui.BrowseObject?uuid=corebo$9">ООО Ромашка</a></td></tr>
<tr><td>Категория</td><td id="contragentCategory">VIP</td></tr>
<tr><td>Описание</td><td id="requestDescription"><p>Не работает интернет.</p><p>Перезагрузка не помогла.</p></td></tr>
<tr><td>Создано</td><td id="creationDate">
  01.10.2026 09:15
</td></tr>
<tr><td>Услуги</td><td id="services">
  <a href="/fx/sd/ru.naumen.core.ui.BrowseObject?uuid=service$1">Интернет</a>
  <a href="/fx/sd/ru.naumen.core.ui.BrowseObject?uuid=service$2">IP <i>телефония</i></a>
</td></tr>
<tr><td>Инфо</td><td id="srvInf">Услуга Интернет 100 Мбит<br>Услуга IP-телефония, 2 линии</td></tr>
<tr><td>Диагностика</td><td id="diagnostica">Сигнал: нет<br>Порт: 5<br>down since morning<br></td></tr>
<tr><td>Срок</td><td id="requiredDate">03.10.2026 18:00</td></tr>
<tr><td>Закрыто</td><td id="closeDate"></td></tr>
<tr><td>Реквизиты</td><td id="clientRequisites">ИНН: 7701234567, КПП: 770101001<br>Юридический адрес: г. Москва, ул. Ленина, 1</td></tr>
<tr><td>Контакты</td><td id="contacts">Иван, +7 900 000-00-00<br>ivan@example.com</td></tr>
<tr><td>Возврат</td><td id="obrd">01.10.2026 10:00</td></tr>
<tr><td>Возврат</td><td id="obrd1">05.10.2026 09:00</td></tr>
<tr><td>Возврат</td><td id="obrd2">не задано</td></tr>
</table>
</body></html>`

func TestIssueCard(t *testing.T) {
	now := time.Date(2026, 10, 16, 12, 0, 0, 0, time.Local)

	issue, err := IssueCard(issueCardPage, now)
	require.NoError(t, err)

	assert.Equal(t, "1234567", issue.Number)
	assert.Equal(t, "Нет связи в офисе", issue.Name)
	assert.Equal(t, "В работе", issue.Step)
	assert.Equal(t, "Инцидент", issue.IssueType)
	assert.Equal(t, "employee$5", issue.UUIDResponsible)
	assert.Equal(t, "Петров Петр", issue.Responsible)
	assert.Equal(t, "corebo$9", issue.UUIDContragent)
	assert.Equal(t, "ООО Ромашка", issue.NameContragent)
	assert.Equal(t, "VIP", issue.ContragentCategory)
	assert.Equal(t, "Не работает интернет. Перезагрузка не помогла.", issue.Description)
	assert.Equal(t, time.Date(2026, 10, 1, 9, 15, 0, 0, time.Local), issue.CreationDate)
	assert.Equal(t, []string{"service$1", "service$2"}, issue.UUIDService)
	assert.Equal(t, []string{"Интернет", "IP телефония"}, issue.NameService)
	assert.Equal(t, []string{"Услуга Интернет 100 Мбит", "Услуга IP-телефония, 2 линии"}, issue.InfoService)
	assert.Equal(t, []types.KeyValue{
		{Key: "Сигнал", Value: "нет"},
		{Key: "Порт", Value: "5 down since morning"},
	}, issue.Diagnostics)
	assert.Equal(t, time.Date(2026, 10, 3, 18, 0, 0, 0, time.Local), issue.RequiredDate)
	assert.True(t, issue.CloseDate.IsZero())
	assert.Equal(t, []types.KeyValue{
		{Key: "ИНН", Value: "7701234567"},
		{Key: "КПП", Value: "770101001"},
		{Key: "Юридический адрес", Value: "г. Москва, ул. Ленина, 1"},
	}, issue.ClientRequisites)
	assert.Equal(t, []string{"Иван, +7 900 000-00-00", "ivan@example.com"}, issue.Contacts)
	assert.Equal(t, time.Date(2026, 10, 5, 9, 0, 0, 0, time.Local), issue.ReturnToWorkTime)
}

func TestIssueCard_ReturnToWorkSentinel(t *testing.T) {
	body := `<div>
<span id="number">1234567</span><span id="title">t</span>
<span id="stage">s</span><span id="BOCase">b</span>
<span id="obrd">-</span>
</div>`
	now := time.Date(2026, 10, 16, 12, 0, 0, 0, time.UTC)

	issue, err := IssueCard(body, now)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2027, 12, 31, 12, 0, 0, 0, time.UTC), issue.ReturnToWorkTime)
	assert.Empty(t, issue.UUIDResponsible)
	assert.Empty(t, issue.Description)
	assert.True(t, issue.CreationDate.IsZero())
}

func TestIssueCard_Errors(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{
			name: "Empty body",
			body: "",
		},
		{
			name: "Missing number",
			body: `<div><span id="title">t</span><span id="stage">s</span><span id="BOCase">b</span></div>`,
		},
		{
			name: "Malformed creation date",
			body: `<div><span id="number">1</span><span id="title">t</span><span id="stage">s</span>
<span id="BOCase">b</span><span id="creationDate">2026-10-01</span></div>`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := IssueCard(tt.body, time.Now())
			assert.ErrorIs(t, err, types.ErrCantGetData)
		})
	}
}

func TestParseDiagnostics(t *testing.T) {
	tests := []struct {
		name     string
		lines    []string
		expected []types.KeyValue
	}{
		{
			name:     "No lines",
			lines:    nil,
			expected: nil,
		},
		{
			name:  "Value with colon",
			lines: []string{"Время: 10:15"},
			expected: []types.KeyValue{
				{Key: "Время", Value: "10:15"},
			},
		},
		{
			name:  "Leading continuation",
			lines: []string{"без ключа", "Ключ: значение"},
			expected: []types.KeyValue{
				{Value: "без ключа"},
				{Key: "Ключ", Value: "значение"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, parseDiagnostics(tt.lines))
		})
	}
}
