package i18n

// Key is the symbolic name of one interface message.
// Its value doubles as the fallback text when a catalog lacks the key.
type Key string

// Message keys.
const (
	MsgWelcome      Key = "WELCOME_MSG"
	MsgEnterURL     Key = "ENTER_URL"
	MsgError        Key = "ERROR"
	MsgLinksTitle   Key = "LINKS_TITLE"
	MsgNoLinks      Key = "NO_LINKS"
	MsgPrompt       Key = "PROMPT"
	MsgInvalidLink  Key = "INVALID_LINK"
	MsgUnknownCmd   Key = "UNKNOWN_CMD"
	MsgChangeLang   Key = "CHANGE_LANG"
	MsgLangSet      Key = "LANG_SET"
	MsgInvalidLang  Key = "INVALID_LANG"
	MsgPageText     Key = "PAGE_TEXT"
	MsgHelpTitle    Key = "HELP_TITLE"
	MsgHelpCommands Key = "HELP_COMMANDS"
	MsgHelpLang     Key = "HELP_LANG"
	MsgHelpHelp     Key = "HELP_HELP"
	MsgHelpClear    Key = "HELP_CLEAR"
	MsgHelpHistory  Key = "HELP_HISTORY"
	MsgHelpExit     Key = "HELP_EXIT"
	MsgHelpBack     Key = "HELP_BACK"
	MsgHelpLink     Key = "HELP_LINK"
	MsgHelpURL      Key = "HELP_URL"
	MsgHelpSave     Key = "HELP_SAVE"
	MsgHistoryTitle Key = "HISTORY_TITLE"
	MsgHistoryEmpty Key = "HISTORY_EMPTY"
	MsgInvalidURL   Key = "INVALID_URL"
	MsgBackNone     Key = "BACK_UNAVAILABLE"
	MsgErrTimeout   Key = "ERR_TIMEOUT"
	MsgErrStatus    Key = "ERR_STATUS"
	MsgErrNetwork   Key = "ERR_NETWORK"
	MsgErrRequest   Key = "ERR_REQUEST"
	MsgSaveUsage    Key = "SAVE_USAGE"
	MsgSaved        Key = "SAVED"
	MsgSaveFailed   Key = "SAVE_FAILED"
)

// Keys returns every message key defined by the catalog.
func Keys() []Key {
	return []Key{
		MsgWelcome, MsgEnterURL, MsgError, MsgLinksTitle, MsgNoLinks,
		MsgPrompt, MsgInvalidLink, MsgUnknownCmd, MsgChangeLang, MsgLangSet,
		MsgInvalidLang, MsgPageText, MsgHelpTitle, MsgHelpCommands,
		MsgHelpLang, MsgHelpHelp, MsgHelpClear, MsgHelpHistory, MsgHelpExit,
		MsgHelpBack, MsgHelpLink, MsgHelpURL, MsgHelpSave, MsgHistoryTitle,
		MsgHistoryEmpty, MsgInvalidURL, MsgBackNone, MsgErrTimeout,
		MsgErrStatus, MsgErrNetwork, MsgErrRequest, MsgSaveUsage, MsgSaved,
		MsgSaveFailed,
	}
}

var catalog = map[Locale]map[Key]string{
	LocaleEN: {
		MsgWelcome:      "CMDowser (q-quit, /history-history, lang-change language, /help-help)",
		MsgEnterURL:     "Enter starting URL or command: ",
		MsgError:        "Error:",
		MsgLinksTitle:   "LINKS:",
		MsgNoLinks:      "No links found",
		MsgPrompt:       "\nChoose link (№) or command (u-back, url, q-quit, lang-change language): ",
		MsgInvalidLink:  "Invalid link number",
		MsgUnknownCmd:   "Unknown command",
		MsgChangeLang:   "Choose language (en, ru, uk): ",
		MsgLangSet:      "Language set to: {}",
		MsgInvalidLang:  "Invalid language. Available: en, ru, uk",
		MsgPageText:     "Page content (first {} chars):",
		MsgHelpTitle:    "COMMAND HELP",
		MsgHelpCommands: "Available commands:",
		MsgHelpLang:     "Change interface language",
		MsgHelpHelp:     "Show this help",
		MsgHelpClear:    "Clear the screen",
		MsgHelpHistory:  "Show browsing history",
		MsgHelpExit:     "Exit browser",
		MsgHelpBack:     "Go back to previous page",
		MsgHelpLink:     "Follow link by number",
		MsgHelpURL:      "Go to specific URL",
		MsgHelpSave:     "Save the page as Markdown",
		MsgHistoryTitle: "BROWSING HISTORY (last 10 sites)",
		MsgHistoryEmpty: "History is empty",
		MsgInvalidURL:   "Invalid URL or command",
		MsgBackNone:     "No previous page in history",
		MsgErrTimeout:   "request timed out: {}",
		MsgErrStatus:    "server responded with status {}",
		MsgErrNetwork:   "network error: {}",
		MsgErrRequest:   "cannot request this address: {}",
		MsgSaveUsage:    "Usage: /save <file>",
		MsgSaved:        "Page saved to: {}",
		MsgSaveFailed:   "Could not save the page: {}",
	},
	LocaleRU: {
		MsgWelcome:      "CMDowser (q-выход, /history-история, lang-сменить язык, /help-справка)",
		MsgEnterURL:     "Введите URL или команду: ",
		MsgError:        "Ошибка:",
		MsgLinksTitle:   "ССЫЛКИ:",
		MsgNoLinks:      "Ссылок не найдено",
		MsgPrompt:       "\nВыберите ссылку (№) или команду (u-назад, url, q-выход, lang-сменить язык): ",
		MsgInvalidLink:  "Неверный номер ссылки",
		MsgUnknownCmd:   "Неизвестная команда",
		MsgChangeLang:   "Выберите язык (en, ru, uk): ",
		MsgLangSet:      "Язык изменен на: {}",
		MsgInvalidLang:  "Неверный язык. Доступны: en, ru, uk",
		MsgPageText:     "Содержимое страницы (первые {} символов):",
		MsgHelpTitle:    "СПРАВКА ПО КОМАНДАМ",
		MsgHelpCommands: "Доступные команды:",
		MsgHelpLang:     "Сменить язык интерфейса",
		MsgHelpHelp:     "Показать эту справку",
		MsgHelpClear:    "Очистить экран",
		MsgHelpHistory:  "Показать историю посещений",
		MsgHelpExit:     "Выйти из браузера",
		MsgHelpBack:     "Вернуться на предыдущую страницу",
		MsgHelpLink:     "Перейти по ссылке с номером",
		MsgHelpURL:      "Перейти по указанному URL",
		MsgHelpSave:     "Сохранить страницу в Markdown",
		MsgHistoryTitle: "ИСТОРИЯ ПОСЕЩЕНИЙ (последние 10 сайтов)",
		MsgHistoryEmpty: "История пуста",
		MsgInvalidURL:   "Неверный URL или команда",
		MsgBackNone:     "Нет предыдущей страницы в истории",
		MsgErrTimeout:   "превышено время ожидания: {}",
		MsgErrStatus:    "сервер вернул статус {}",
		MsgErrNetwork:   "сетевая ошибка: {}",
		MsgErrRequest:   "невозможно запросить этот адрес: {}",
		MsgSaveUsage:    "Использование: /save <файл>",
		MsgSaved:        "Страница сохранена в: {}",
		MsgSaveFailed:   "Не удалось сохранить страницу: {}",
	},
	LocaleUK: {
		MsgWelcome:      "CMDowser (q-вихід, /history-історія, lang-змінити мову, /help-довідка)",
		MsgEnterURL:     "Введіть URL або команду: ",
		MsgError:        "Помилка:",
		MsgLinksTitle:   "ПОСИЛАННЯ:",
		MsgNoLinks:      "Посилань не знайдено",
		MsgPrompt:       "\nОберіть посилання (№) або команду (u-назад, url, q-вихід, lang-змінити мову): ",
		MsgInvalidLink:  "Невірний номер посилання",
		MsgUnknownCmd:   "Невідома команда",
		MsgChangeLang:   "Оберіть мову (en, ru, uk): ",
		MsgLangSet:      "Мову змінено на: {}",
		MsgInvalidLang:  "Невірна мова. Доступні: en, ru, uk",
		MsgPageText:     "Вміст сторінки (перші {} символів):",
		MsgHelpTitle:    "ДОВІДКА З КОМАНД",
		MsgHelpCommands: "Доступні команди:",
		MsgHelpLang:     "Змінити мову інтерфейсу",
		MsgHelpHelp:     "Показати цю довідку",
		MsgHelpClear:    "Очистити екран",
		MsgHelpHistory:  "Показати історію відвідувань",
		MsgHelpExit:     "Вийти з браузера",
		MsgHelpBack:     "Повернутись на попередню сторінку",
		MsgHelpLink:     "Перейти за посиланням за номером",
		MsgHelpURL:      "Перейти за вказаним URL",
		MsgHelpSave:     "Зберегти сторінку у Markdown",
		MsgHistoryTitle: "ІСТОРІЯ ВІДВІДУВАНЬ (останні 10 сайтів)",
		MsgHistoryEmpty: "Історія порожня",
		MsgInvalidURL:   "Невірний URL або команда",
		MsgBackNone:     "Немає попередньої сторінки в історії",
		MsgErrTimeout:   "перевищено час очікування: {}",
		MsgErrStatus:    "сервер повернув статус {}",
		MsgErrNetwork:   "мережева помилка: {}",
		MsgErrRequest:   "неможливо запитати цю адресу: {}",
		MsgSaveUsage:    "Використання: /save <файл>",
		MsgSaved:        "Сторінку збережено до: {}",
		MsgSaveFailed:   "Не вдалося зберегти сторінку: {}",
	},
}
