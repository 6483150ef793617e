package parser

import (
	"testing"
	"time"

	"github.com/kevinfinalboss/crmreports/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const reportListPage = `<html><body>
<table>
<tr><td><a title="ID1111111" href="/fx/sd/ru.naumen.core.ui.BrowseObject?uuid=report$100">ID1111111</a></td></tr>
<tr><td><a title="ID2222222" href="/fx/sd/ru.naumen.core.ui.BrowseObject?uuid=report$200">ID2222222</a></td></tr>
<tr><td><a title="ID3333333" href="/fx/sd/ru.naumen.core.ui.BrowseObject?uuid=report$300">ID3333333</a></td></tr>
<tr><td><a title="ID3333333" href="/fx/sd/ru.naumen.core.ui.BrowseObject?uuid=report$301">ID3333333</a></td></tr>
<tr><td><a title="ID4444444">ID4444444</a></td></tr>
</table>
</body></html>`

func TestReportList(t *testing.T) {
	tests := []struct {
		name        string
		body        string
		title       string
		expected    []string
		expectedErr error
	}{
		{
			name:     "Single match",
			body:     reportListPage,
			title:    "ID2222222",
			expected: []string{"report$200"},
		},
		{
			name:     "Not generated yet",
			body:     reportListPage,
			title:    "ID9999999",
			expected: nil,
		},
		{
			name:     "Duplicate titles",
			body:     reportListPage,
			title:    "ID3333333",
			expected: []string{"report$300", "report$301"},
		},
		{
			name:        "Match without link",
			body:        reportListPage,
			title:       "ID4444444",
			expectedErr: types.ErrCantGetData,
		},
		{
			name:        "Empty body",
			body:        "  \n",
			title:       "ID1111111",
			expectedErr: types.ErrCantGetData,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uuids, err := ReportList(tt.body, tt.title)
			if tt.expectedErr != nil {
				assert.ErrorIs(t, err, tt.expectedErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, uuids)
		})
	}
}

func TestPagination(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		expected int
	}{
		{
			name: "Three pages",
			body: `<div>
<a id="advSearchTab.searchResults_page1" href="#">1</a>
<a id="advSearchTab.searchResults_page2" href="#">2</a>
<a id="advSearchTab.searchResults_page3" href="#">3</a>
</div>`,
			expected: 3,
		},
		{
			name:     "No markers",
			body:     `<div><p>nothing found</p></div>`,
			expected: 0,
		},
		{
			name: "Counting stops at the first gap",
			body: `<div>
<a id="advSearchTab.searchResults_page1" href="#">1</a>
<a id="advSearchTab.searchResults_page2" href="#">2</a>
<a id="advSearchTab.searchResults_page4" href="#">4</a>
</div>`,
			expected: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			count, err := Pagination(tt.body)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, count)
		})
	}

	_, err := Pagination("")
	assert.ErrorIs(t, err, types.ErrCantGetData)
}

const issuesPage = `<html><body>
<table class="supp">
<tr><th><b>Обращение</b></th><th><b>Время решения</b></th><th><b>Тип обращения</b></th><th><b>Состояние</b></th><th><b>Ответственный</b></th></tr>
<tr><td>-</td></tr>
<tr><td>-</td></tr>
<tr><td>-</td></tr>
<tr><td>-</td></tr>
<tr><td>-</td></tr>
<tr><td>-</td></tr>
<tr>
  <td><a href="/fx/sd/ru.naumen.core.ui.BrowseObject?uuid=serviceCall$101">Обращение 1234567
  нет связи</a></td>
  <td>1d 2h 30min</td>
  <td>Инцидент</td>
  <td>В работе</td>
  <td>Иванов И.</td>
</tr>
<tr>
  <td><a href="/fx/sd/ru.naumen.core.ui.BrowseObject?uuid=serviceCall$102">Обращение 7654321001</a></td>
  <td>0d 0h 5min</td>
  <td>Запрос</td>
  <td>Зарегистрировано</td>
  <td></td>
</tr>
<tr><td>Всего: 2</td></tr>
</table>
</body></html>`

func TestIssuesTable(t *testing.T) {
	now := time.Date(2026, 10, 16, 12, 0, 0, 0, time.UTC)

	issues, err := IssuesTable(issuesPage, now)
	require.NoError(t, err)
	require.Len(t, issues, 2)

	first := issues[0]
	assert.Equal(t, "serviceCall$101", first.UUID)
	assert.Equal(t, "1234567", first.Number)
	assert.Equal(t, "Инцидент", first.IssueType)
	assert.Equal(t, "В работе", first.Step)
	assert.Equal(t, "Иванов И.", first.Responsible)
	assert.Equal(t, 26*time.Hour+30*time.Minute, first.StepTime)
	assert.Equal(t, now.Add(-26*time.Hour-30*time.Minute), first.LastEditTime)
	assert.False(t, first.VIPContragent)

	second := issues[1]
	assert.Equal(t, "serviceCall$102", second.UUID)
	assert.Equal(t, "7654321001", second.Number)
	assert.Equal(t, 5*time.Minute, second.StepTime)
	assert.Empty(t, second.Responsible)
}

func TestIssuesTable_EmptyGroup(t *testing.T) {
	body := `<table class="supp">
<tr><th><b>Обращение</b></th><th><b>Время решения</b></th></tr>
<tr><td>-</td></tr><tr><td>-</td></tr><tr><td>-</td></tr>
<tr><td>-</td></tr><tr><td>-</td></tr><tr><td>-</td></tr>
<tr><td>Всего: 0</td></tr>
</table>`

	issues, err := IssuesTable(body, time.Now())
	require.NoError(t, err)
	assert.Empty(t, issues)
}

func TestIssuesTable_Errors(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{
			name: "Empty body",
			body: "",
		},
		{
			name: "No column labels",
			body: `<table class="supp"><tr><td>nothing</td></tr></table>`,
		},
		{
			name: "Issue without number",
			body: `<table class="supp">
<tr><th><b>Обращение</b></th><th><b>Время решения</b></th><th><b>Тип обращения</b></th><th><b>Состояние</b></th><th><b>Ответственный</b></th></tr>
<tr><td>-</td></tr><tr><td>-</td></tr><tr><td>-</td></tr>
<tr><td>-</td></tr><tr><td>-</td></tr><tr><td>-</td></tr>
<tr><td><a href="?uuid=serviceCall$1">Без номера</a></td><td>1d 1h 1min</td><td>Инцидент</td><td>В работе</td><td>-</td></tr>
<tr><td>-</td></tr>
</table>`,
		},
		{
			name: "Malformed duration",
			body: `<table class="supp">
<tr><th><b>Обращение</b></th><th><b>Время решения</b></th><th><b>Тип обращения</b></th><th><b>Состояние</b></th><th><b>Ответственный</b></th></tr>
<tr><td>-</td></tr><tr><td>-</td></tr><tr><td>-</td></tr>
<tr><td>-</td></tr><tr><td>-</td></tr><tr><td>-</td></tr>
<tr><td><a href="?uuid=serviceCall$1">Обращение 1234567</a></td><td>15min</td><td>Инцидент</td><td>В работе</td><td>-</td></tr>
<tr><td>-</td></tr>
</table>`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := IssuesTable(tt.body, time.Now())
			assert.ErrorIs(t, err, types.ErrCantGetData)
		})
	}
}

func TestParse_Dispatch(t *testing.T) {
	result, err := Parse(types.PageReportList, reportListPage, Options{Name: "ID1111111"})
	require.NoError(t, err)
	assert.Equal(t, types.PageReportList, result.Page)
	assert.Equal(t, []string{"report$100"}, result.UUIDs)

	result, err = Parse(types.PagePagination, `<a id="advSearchTab.searchResults_page1"></a>`, Options{})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Pages)

	_, err = Parse(types.PageNone, reportListPage, Options{})
	assert.ErrorIs(t, err, types.ErrCantGetData)

	_, err = Parse(types.PageKind(99), reportListPage, Options{})
	assert.ErrorIs(t, err, types.ErrCantGetData)
}

func TestUUIDFromHref(t *testing.T) {
	uuid, err := uuidFromHref("/fx/sd/ru.naumen.core.ui.BrowseObject?uuid=corebo$77&tab=main")
	require.NoError(t, err)
	assert.Equal(t, "corebo$77", uuid)

	_, err = uuidFromHref("")
	assert.ErrorIs(t, err, types.ErrCantGetData)

	_, err = uuidFromHref("/fx/sd/ru.naumen.core.ui.BrowseObject?tab=main")
	assert.ErrorIs(t, err, types.ErrCantGetData)
}
