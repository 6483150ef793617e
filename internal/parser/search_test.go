package parser

import (
	"testing"

	"github.com/kevinfinalboss/crmreports/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const searchRows = `
<tr>
  <td><a href="/fx/sd/ru.naumen.core.ui.BrowseObject?uuid=serviceCall$1">1234567</a></td>
  <td><a href="/fx/sd/ru.naumen.core.ui.BrowseObject?uuid=corebo$2">ООО Ромашка</a></td>
  <td>Инцидент</td>
  <td>Закрыто</td>
  <td><a href="/fx/sd/ru.naumen.core.ui.BrowseObject?uuid=employee$3">Петров П.</a></td>
  <td>Нет связи<br>с утра</td>
  <td>Иван</td>
</tr>
<tr>
  <td><a href="/fx/sd/ru.naumen.core.ui.BrowseObject?uuid=serviceCall$4">7654321</a></td>
  <td>Не указан</td>
  <td>Запрос</td>
  <td>Зарегистрировано</td>
  <td></td>
  <td></td>
  <td></td>
</tr>`

func TestSearchResults(t *testing.T) {
	body := `<html><body>
<table class="supp"><tr>
<th><b>Номер обращения</b></th><th><b>Источник обращения</b></th><th><b>Тип обращения</b></th>
<th><b>Статус</b></th><th><b>Ответственный</b></th><th><b>Описание</b></th><th><b>Контактное лицо</b></th>
</tr></table>
<table id="advSearchTab.searchResults">
<tr><td>header</td></tr>` + searchRows + `
</table>
</body></html>`

	rows, err := SearchResults(body)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, types.SearchResultRow{
		Number:          "1234567",
		UUID:            "serviceCall$1",
		UUIDContragent:  "corebo$2",
		NameContragent:  "ООО Ромашка",
		IssueType:       "Инцидент",
		Step:            "Закрыто",
		UUIDResponsible: "employee$3",
		NameResponsible: "Петров П.",
		Description:     "Нет связи с утра",
		Contact:         "Иван",
	}, rows[0])

	assert.Equal(t, types.SearchResultRow{
		Number:    "7654321",
		UUID:      "serviceCall$4",
		IssueType: "Запрос",
		Step:      "Зарегистрировано",
	}, rows[1])
}

func TestSearchResults_HeaderRowLabels(t *testing.T) {
	body := `<table id="advSearchTab.searchResults">
<tr><th>Номер обращения</th><th>Источник обращения</th><th>Тип обращения</th><th>Статус</th>
<th>Ответственный</th><th>Описание</th><th>Контактное лицо</th></tr>` + searchRows + `
</table>`

	rows, err := SearchResults(body)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "serviceCall$1", rows[0].UUID)
	assert.Equal(t, "Иван", rows[0].Contact)
}

func TestSearchResults_NothingFound(t *testing.T) {
	rows, err := SearchResults(`<div>Ничего не найдено</div>`)
	require.NoError(t, err)
	assert.Empty(t, rows)

	_, err = SearchResults("")
	assert.ErrorIs(t, err, types.ErrCantGetData)
}
