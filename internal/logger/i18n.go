package logger

import (
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

type LocaleMessages struct {
	Messages map[string]string `yaml:"messages"`
}

// loadLocaleMessages reads locales/<language>.yaml on top of the embedded
// table, so a partial locale file only overrides what it lists.
func loadLocaleMessages(language string) (map[string]string, error) {
	messages := getEmbeddedMessages(language)

	data, err := os.ReadFile(filepath.Join("locales", language+".yaml"))
	if err != nil {
		return messages, err
	}

	var locale LocaleMessages
	if err := yaml.Unmarshal(data, &locale); err != nil {
		return messages, err
	}

	for key, message := range locale.Messages {
		messages[key] = message
	}
	return messages, nil
}

func getEmbeddedMessages(language string) map[string]string {
	switch strings.ToLower(language) {
	case "ru-ru":
		return map[string]string{
			"app_started":             "crmreports запущен",
			"config_not_found":        "Файл конфигурации не найден",
			"config_loaded":           "Конфигурация загружена",
			"config_created":          "Файл конфигурации создан",
			"config_already_exists":   "Файл конфигурации уже существует",
			"crm_login_started":       "Подключение к CRM",
			"crm_login_success":       "Соединение с CRM установлено",
			"crm_login_failed":        "Ошибка соединения с CRM",
			"request_retry":           "Повтор запроса к CRM",
			"request_failed":          "Запрос к CRM завершился ошибкой",
			"request_submitted":       "Запрос к CRM отправлен",
			"report_started":          "Запрос отчёта",
			"report_created":          "Отчёт в CRM создан",
			"report_locate_attempt":   "Поиск сформированного отчёта",
			"report_located":          "Сформированный отчёт найден",
			"report_not_located":      "Не удалось найти сформированный отчёт",
			"report_orphaned":         "Созданный отчёт остался в CRM",
			"report_borrowed":         "Объект в CRM уже создан",
			"report_fetched":          "Страница отчёта получена",
			"report_parsed":           "Отчёт разобран",
			"report_deleted":          "Отчёт в CRM удалён",
			"report_delete_failed":    "Отчёт в CRM не удалён",
			"cards_enrichment":        "Разбор карточек обращений",
			"card_cache_hit":          "Карточка обращения взята из кэша",
			"card_cache_failed":       "Ошибка кэша карточек",
			"search_started":          "Поиск обращений",
			"search_mode_enabled":     "Режим поиска включён",
			"search_type_selected":    "Тип поиска выбран",
			"search_pages_found":      "Количество страниц результата",
			"search_completed":        "Поиск завершён",
			"html_report_saved":       "HTML отчёт сохранён",
			"operation_completed":     "Операция завершена",
			"operation_failed":        "Операция завершилась ошибкой",
			"invalid_deadline":        "Недопустимое значение норматива",
			"not_authorized":          "Нет соединения с CRM",
			"response_written":        "Ответ сформирован",
			"unsupported_output":      "Неподдерживаемый формат вывода",
			"history_not_implemented": "Разбор истории обращений не реализован",
			"root_short":              "Отчёты из CRM Naumen",
			"issues_short":            "Открытые обращения группы поддержки",
			"card_short":              "Карточка обращения по uuid",
			"sl_short":                "Service Level за период",
			"mttr_short":              "MTTR за период",
			"flr_short":               "FLR за период",
			"aht_short":               "AHT за период",
			"search_short":            "Поиск обращений",
			"init_short":              "Создать файл конфигурации",
			"status_short":            "Проверить подключение к CRM",
		}
	default:
		return map[string]string{
			"app_started":             "crmreports started",
			"config_not_found":        "Configuration file not found",
			"config_loaded":           "Configuration loaded",
			"config_created":          "Configuration file created",
			"config_already_exists":   "Configuration file already exists",
			"crm_login_started":       "Connecting to CRM",
			"crm_login_success":       "Connected to CRM",
			"crm_login_failed":        "Failed to connect to CRM",
			"request_retry":           "Retrying CRM request",
			"request_failed":          "CRM request failed",
			"request_submitted":       "CRM request submitted",
			"report_started":          "Requesting report",
			"report_created":          "Report created in CRM",
			"report_locate_attempt":   "Looking for generated report",
			"report_located":          "Generated report found",
			"report_not_located":      "Generated report not found",
			"report_orphaned":         "Created report left in CRM",
			"report_borrowed":         "Object already exists in CRM",
			"report_fetched":          "Report page fetched",
			"report_parsed":           "Report parsed",
			"report_deleted":          "Report deleted from CRM",
			"report_delete_failed":    "Failed to delete report from CRM",
			"cards_enrichment":        "Parsing issue cards",
			"card_cache_hit":          "Issue card served from cache",
			"card_cache_failed":       "Issue card cache error",
			"search_started":          "Searching issues",
			"search_mode_enabled":     "Search mode enabled",
			"search_type_selected":    "Search type selected",
			"search_pages_found":      "Result pages found",
			"search_completed":        "Search completed",
			"html_report_saved":       "HTML report saved",
			"operation_completed":     "Operation completed",
			"operation_failed":        "Operation failed",
			"invalid_deadline":        "Invalid deadline value",
			"not_authorized":          "Not connected to CRM",
			"response_written":        "Response written",
			"unsupported_output":      "Unsupported output format",
			"history_not_implemented": "Issue history parsing is not implemented",
			"root_short":              "Reports from the Naumen CRM",
			"issues_short":            "Open issues of a support group",
			"card_short":              "Issue card by uuid",
			"sl_short":                "Service level for a period",
			"mttr_short":              "MTTR for a period",
			"flr_short":               "FLR for a period",
			"aht_short":               "AHT for a period",
			"search_short":            "Search issues",
			"init_short":              "Create the configuration file",
			"status_short":            "Check the CRM connection",
		}
	}
}
