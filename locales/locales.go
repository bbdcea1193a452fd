package locales

import (
	"embed"
	"encoding/json"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
)

//go:embed translations/*.json
var translations embed.FS

type Localizer struct {
	bundle *i18n.Bundle
}

// New loads every bundled translation file; English is the fallback.
func New() (*Localizer, error) {
	bundle := i18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("json", json.Unmarshal)

	files, err := translations.ReadDir("translations")
	if err != nil {
		return nil, err
	}
	for _, f := range files {
		if _, err := bundle.LoadMessageFileFS(translations, "translations/"+f.Name()); err != nil {
			return nil, err
		}
	}
	return &Localizer{bundle: bundle}, nil
}

// Message translates messageID for the Accept-Language value. It returns
// fallback when no translation matches.
func (l *Localizer) Message(acceptLanguage, messageID, fallback string, params map[string]interface{}) string {
	if l == nil || messageID == "" {
		return fallback
	}
	loc := i18n.NewLocalizer(l.bundle, acceptLanguage)
	msg, err := loc.Localize(&i18n.LocalizeConfig{
		MessageID:    messageID,
		TemplateData: params,
	})
	if err != nil || msg == "" {
		return fallback
	}
	return msg
}
