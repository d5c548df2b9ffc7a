// Package i18n holds the UI message catalog.
//
// Keys are the English source strings. Lookups go through a message.Printer
// bound to the selected locale; anything missing falls back to English.
package i18n

import (
	"strings"

	"golang.org/x/text/feature/plural"
	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// Message keys.
const (
	Home           = "home"
	TOCPathPrompt  = "TOC path:"
	LoadHint       = "Enter to load, Esc for settings, Ctrl+C to quit"
	Loading        = "Loading..."
	SearchPrompt   = "Search:"
	Searching      = "Searching..."
	NoResults      = "No results found"
	ResultsFound   = "%d results found:"
	TOCSummary     = "%d archives, %d assets"
	Extracting     = "Extracting..."
	LabelID        = "Id"
	LabelIndex     = "Index"
	LabelSize      = "Size"
	LabelArchive   = "Archive"
	LabelType      = "Type"
	LabelMagic     = "Magic"
	LabelSections  = "Sections"
	OpenInViewer   = "v: open in viewer"
	Settings       = "Settings"
	Language       = "Language"
	SettingsHint   = "Left/Right to change, Esc to close"
	Copied         = "Copied %s"
	NoClipboard    = "No clipboard command found"
	ViewerOpened   = "Opened %s"
	NoViewer       = "No URL opener found"
	BrowserHint    = "Tab: pane  /: search  Ctrl+O: open TOC  Esc: settings  q: quit"
	TreeTitle      = "Tree"
	ContentsTitle  = "Contents"
	DetailsTitle   = "Details"
	ResultsTitle   = "Results"
	LoadFailed     = "Load failed: %s"
	SearchFailed   = "Search failed: %s"
	ExtractFailed  = "Extract failed: %s"
	PrefsSaveError = "Could not save preferences: %s"
)

// Supported lists the catalog locales in cycling order.
var Supported = []language.Tag{language.English, language.Russian}

var (
	cat     = buildCatalog()
	matcher = language.NewMatcher(Supported)
)

func buildCatalog() *catalog.Builder {
	b := catalog.NewBuilder(catalog.Fallback(language.English))

	ru := map[string]string{
		Home:           "домой",
		TOCPathPrompt:  "Путь к TOC:",
		LoadHint:       "Enter для загрузки, Esc для настроек, Ctrl+C для выхода",
		Loading:        "Загрузка...",
		SearchPrompt:   "Поиск:",
		Searching:      "Поиск...",
		NoResults:      "Ничего не найдено",
		TOCSummary:     "архивов: %d, ассетов: %d",
		Extracting:     "Извлечение...",
		LabelID:        "Идентификатор",
		LabelIndex:     "Индекс",
		LabelSize:      "Размер",
		LabelArchive:   "Архив",
		LabelType:      "Тип",
		LabelMagic:     "Сигнатура",
		LabelSections:  "Секции",
		OpenInViewer:   "v: открыть в просмотрщике",
		Settings:       "Настройки",
		Language:       "Язык",
		SettingsHint:   "Влево/вправо для выбора, Esc для закрытия",
		Copied:         "Скопировано: %s",
		NoClipboard:    "Команда буфера обмена не найдена",
		ViewerOpened:   "Открыто: %s",
		NoViewer:       "Не найдена программа для открытия ссылок",
		BrowserHint:    "Tab: панель  /: поиск  Ctrl+O: открыть TOC  Esc: настройки  q: выход",
		TreeTitle:      "Дерево",
		ContentsTitle:  "Содержимое",
		DetailsTitle:   "Сведения",
		ResultsTitle:   "Результаты",
		LoadFailed:     "Ошибка загрузки: %s",
		SearchFailed:   "Ошибка поиска: %s",
		ExtractFailed:  "Ошибка извлечения: %s",
		PrefsSaveError: "Не удалось сохранить настройки: %s",
	}

	for key, msg := range ru {
		_ = b.SetString(language.Russian, key, msg)
	}

	// English strings are their own keys; only the plural forms need entries.
	_ = b.Set(language.English, ResultsFound, plural.Selectf(1, "%d",
		"one", "%d result found:",
		"other", "%d results found:",
	))
	_ = b.Set(language.Russian, ResultsFound, plural.Selectf(1, "%d",
		"one", "Найден %d результат:",
		"few", "Найдено %d результата:",
		"many", "Найдено %d результатов:",
		"other", "Найдено %d результата:",
	))

	return b
}

// Match returns the supported locale closest to code. Unknown or empty codes
// resolve to English.
func Match(code string) language.Tag {
	code = strings.TrimSpace(code)
	if code == "" {
		return language.English
	}
	tag, err := language.Parse(code)
	if err != nil {
		return language.English
	}
	_, idx, conf := matcher.Match(tag)
	if conf == language.No {
		return language.English
	}
	return Supported[idx]
}

// Translator renders catalog messages for one locale.
type Translator struct {
	tag     language.Tag
	printer *message.Printer
}

// New returns a translator for the locale closest to code.
func New(code string) *Translator {
	tag := Match(code)
	return &Translator{
		tag:     tag,
		printer: message.NewPrinter(tag, message.Catalog(cat)),
	}
}

// Code returns the BCP 47 code of the active locale.
func (t *Translator) Code() string {
	if t == nil {
		return language.English.String()
	}
	return t.tag.String()
}

// T formats the message stored under key.
func (t *Translator) T(key string, args ...any) string {
	if t == nil {
		return message.NewPrinter(language.English, message.Catalog(cat)).Sprintf(key, args...)
	}
	return t.printer.Sprintf(key, args...)
}

// DisplayName returns the locale's name in its own language.
func DisplayName(code string) string {
	tag := Match(code)
	return display.Self.Name(tag)
}

// Cycle returns the locale delta steps away from code in Supported order.
func Cycle(code string, delta int) string {
	tag := Match(code)
	idx := 0
	for i, s := range Supported {
		if s == tag {
			idx = i
			break
		}
	}
	n := len(Supported)
	idx = ((idx+delta)%n + n) % n
	return Supported[idx].String()
}
