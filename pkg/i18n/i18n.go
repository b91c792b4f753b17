package i18n

import (
	"embed"
	"encoding/json"
	"sync"

	goi18n "github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
)

//go:embed locales/*.json
var localesFS embed.FS

var (
	mu     sync.RWMutex
	bundle *goi18n.Bundle
)

// Init creates the message bundle with English as the default language.
func Init() {
	mu.Lock()
	defer mu.Unlock()
	bundle = goi18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("json", json.Unmarshal)
}

// Load parses an embedded locale file into the bundle.
func Load(path string) error {
	mu.Lock()
	defer mu.Unlock()
	_, err := bundle.LoadMessageFileFS(localesFS, path)
	return err
}

// T resolves a message id for the given language, falling back to the id
// itself when no translation exists. templateData may be nil.
func T(lang, messageID string, templateData map[string]interface{}) string {
	mu.RLock()
	defer mu.RUnlock()
	if bundle == nil {
		return messageID
	}

	localizer := goi18n.NewLocalizer(bundle, lang)
	msg, err := localizer.Localize(&goi18n.LocalizeConfig{
		MessageID:    messageID,
		TemplateData: templateData,
	})
	if err != nil {
		return messageID
	}
	return msg
}
