package middleware

import (
	"net/http"
	"strings"
)

const methodParam = "_method"

// MethodOverride lets HTML forms reach PUT, PATCH and DELETE routes. A
// _method query parameter, or form field on POST, replaces the method of a
// GET or POST request before it is routed.
func MethodOverride(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost || r.Method == http.MethodGet {
			if m := overrideMethod(r); m != "" {
				r.Method = m
			}
		}
		next.ServeHTTP(w, r)
	})
}

func overrideMethod(r *http.Request) string {
	m := r.URL.Query().Get(methodParam)
	if m == "" && r.Method == http.MethodPost && isFormBody(r) {
		m = r.PostFormValue(methodParam)
	}
	switch m = strings.ToUpper(m); m {
	case http.MethodPut, http.MethodPatch, http.MethodDelete:
		return m
	}
	return ""
}

func isFormBody(r *http.Request) bool {
	ct := r.Header.Get("Content-Type")
	return strings.HasPrefix(ct, "application/x-www-form-urlencoded") ||
		strings.HasPrefix(ct, "multipart/form-data")
}
