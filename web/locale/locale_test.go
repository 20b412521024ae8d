package locale

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"testing/fstest"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testFS = fstest.MapFS{
	"translation/active.en.toml": {Data: []byte(`
[flash]
loggedIn = "Logged in!"
userCreated = "{{ .Name }}'s account created successfully!"
`)},
	"translation/active.es.toml": {Data: []byte(`
[flash]
loggedIn = "¡Sesión iniciada!"
`)},
}

func TestI18nDefault(t *testing.T) {
	require.NoError(t, InitLocalizer(testFS))

	assert.Equal(t, "Logged in!", I18n(nil, "flash.loggedIn"))
	assert.Equal(t, "Jon Wexler's account created successfully!", I18n(nil, "flash.userCreated", "Name==Jon Wexler"))
	assert.Equal(t, "flash.unknown", I18n(nil, "flash.unknown"))
}

func TestLocalizerMiddleware(t *testing.T) {
	require.NoError(t, InitLocalizer(testFS))
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(LocalizerMiddleware())
	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "%s|%s", I18n(c, "flash.loggedIn"), I18n(c, "flash.userCreated", "Name==Ana"))
	})

	tests := []struct {
		name   string
		cookie string
		accept string
		want   string
	}{
		{"default", "", "", "Logged in!|Ana's account created successfully!"},
		{"accept language", "", "es-ES,es;q=0.9", "¡Sesión iniciada!|Ana's account created successfully!"},
		{"cookie wins", "en", "es", "Logged in!|Ana's account created successfully!"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.cookie != "" {
				req.AddCookie(&http.Cookie{Name: "lang", Value: tt.cookie})
			}
			if tt.accept != "" {
				req.Header.Set("Accept-Language", tt.accept)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			assert.Equal(t, tt.want, w.Body.String())
		})
	}
}

func TestCreateTemplateData(t *testing.T) {
	data := createTemplateData([]string{"Name==Jon", "Reason==a==b", "broken"})
	assert.Equal(t, map[string]any{"Name": "Jon", "Reason": "a==b"}, data)
}
