package identity

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVerifier_Verify(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "assertion-blob", body["assertion"])
		assert.Equal(t, "http://captn.example", body["audience"])

		w.Write([]byte(`{"status":"okay","email":"a@example.com"}`))
	}))
	defer srv.Close()

	v := NewVerifier(srv.URL, "http://captn.example")
	email, err := v.Verify(context.Background(), "assertion-blob")
	require.NoError(t, err)
	assert.Equal(t, "a@example.com", email)
}

func TestVerifier_Rejections(t *testing.T) {
	cases := []struct {
		name   string
		status int
		body   string
	}{
		{"rejected assertion", http.StatusOK, `{"status":"failure","reason":"expired"}`},
		{"missing email", http.StatusOK, `{"status":"okay"}`},
		{"server error", http.StatusInternalServerError, ``},
		{"malformed body", http.StatusOK, `{`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				w.Write([]byte(tc.body))
			}))
			defer srv.Close()

			_, err := NewVerifier(srv.URL, "http://captn.example").Verify(context.Background(), "blob")
			assert.Error(t, err)
		})
	}
}
