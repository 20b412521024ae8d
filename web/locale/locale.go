// Package locale loads the embedded translation bundles and resolves
// messages for the language of each request.
package locale

import (
	"errors"
	"io/fs"
	"strings"

	"github.com/confetti-cuisine/confetti/logger"

	"github.com/gin-gonic/gin"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/pelletier/go-toml/v2"
	"golang.org/x/text/language"
)

const localizerKey = "localizer"

var (
	i18nBundle       *i18n.Bundle
	defaultLocalizer *i18n.Localizer
)

// InitLocalizer parses every file under translation/ in i18nFS. English is
// the fallback language.
func InitLocalizer(i18nFS fs.FS) error {
	bundle := i18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)
	if err := parseTranslationFiles(i18nFS, bundle); err != nil {
		return err
	}
	i18nBundle = bundle
	defaultLocalizer = i18n.NewLocalizer(bundle, language.English.String())
	return nil
}

// createTemplateData turns "key==value" params into template data.
func createTemplateData(params []string, separator ...string) map[string]any {
	sep := "=="
	if len(separator) > 0 {
		sep = separator[0]
	}
	data := make(map[string]any, len(params))
	for _, param := range params {
		parts := strings.SplitN(param, sep, 2)
		if len(parts) == 2 {
			data[parts[0]] = parts[1]
		}
	}
	return data
}

// I18n translates key for the request in c, or in English when c carries no
// localizer. Unknown keys come back unchanged.
func I18n(c *gin.Context, key string, params ...string) string {
	localizer := defaultLocalizer
	if c != nil {
		if l, ok := c.Get(localizerKey); ok {
			localizer = l.(*i18n.Localizer)
		}
	}
	return localize(localizer, key, params...)
}

func localize(localizer *i18n.Localizer, key string, params ...string) string {
	if localizer == nil {
		return key
	}
	msg, err := localizer.Localize(&i18n.LocalizeConfig{
		MessageID:    key,
		TemplateData: createTemplateData(params),
	})
	if err != nil {
		// a message missing from the requested language comes back in English
		var notFound *i18n.MessageNotFoundErr
		if errors.As(err, &notFound) && msg != "" {
			return msg
		}
		logger.Debugf("Failed to localize %s: %v", key, err)
		return key
	}
	return msg
}

// LocalizerMiddleware picks the language from the lang cookie, then the
// Accept-Language header.
func LocalizerMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if i18nBundle == nil {
			c.Next()
			return
		}
		var langs []string
		if cookie, err := c.Request.Cookie("lang"); err == nil && cookie.Value != "" {
			langs = append(langs, cookie.Value)
		}
		if accept := c.GetHeader("Accept-Language"); accept != "" {
			langs = append(langs, accept)
		}
		c.Set(localizerKey, i18n.NewLocalizer(i18nBundle, langs...))
		c.Next()
	}
}

func parseTranslationFiles(i18nFS fs.FS, bundle *i18n.Bundle) error {
	return fs.WalkDir(i18nFS, "translation", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		data, err := fs.ReadFile(i18nFS, path)
		if err != nil {
			return err
		}
		_, err = bundle.ParseMessageFileBytes(data, path)
		return err
	})
}
