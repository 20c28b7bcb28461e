package whatsapp

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender(t *testing.T) {
	tests := []struct {
		name     string
		template string
		values   map[string]string
		want     string
	}{
		{
			name:     "All placeholders substituted",
			template: "Hi {{client_name}}, your rental of {{vehicle}} is overdue by {{days}} days.",
			values:   map[string]string{"client_name": "Budi", "vehicle": "Avanza B 1234 CD", "days": "2"},
			want:     "Hi Budi, your rental of Avanza B 1234 CD is overdue by 2 days.",
		},
		{
			name:     "Missing value left intact",
			template: "Hi {{client_name}}, invoice {{invoice_number}} is ready.",
			values:   map[string]string{"client_name": "Budi"},
			want:     "Hi Budi, invoice {{invoice_number}} is ready.",
		},
		{
			name:     "Whitespace inside braces tolerated",
			template: "Total: {{ total }}",
			values:   map[string]string{"total": "Rp 555.000"},
			want:     "Total: Rp 555.000",
		},
		{
			name:     "No placeholders",
			template: "Thank you for your business.",
			values:   nil,
			want:     "Thank you for your business.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Render(tt.template, tt.values))
		})
	}
}

func TestPlaceholders(t *testing.T) {
	got := Placeholders("{{b}} and {{a}} and {{b}} again")
	assert.Equal(t, []string{"a", "b"}, got)
}

func TestValidate(t *testing.T) {
	template := "Hi {{client_name}}, {{vehicle}} is due."

	assert.NoError(t, Validate(template, map[string]string{"client_name": "Budi", "vehicle": "Avanza"}))

	err := Validate(template, map[string]string{"client_name": "Budi"})
	assert.ErrorContains(t, err, "vehicle")
}

func TestClientSendText(t *testing.T) {
	var gotPath, gotAuth string
	var gotBody map[string]interface{}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "token-123", "555000111")
	err := client.SendText(context.Background(), "+6281234567890", "hello")
	require.NoError(t, err)

	assert.Equal(t, "/555000111/messages", gotPath)
	assert.Equal(t, "Bearer token-123", gotAuth)
	assert.Equal(t, "whatsapp", gotBody["messaging_product"])
	assert.Equal(t, "+6281234567890", gotBody["to"])

	t.Run("Non-2xx is an error", func(t *testing.T) {
		bad := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, `{"error":"invalid token"}`, http.StatusUnauthorized)
		}))
		defer bad.Close()

		client := NewClient(bad.URL, "bad", "555000111")
		err := client.SendText(context.Background(), "+62812", "hello")
		assert.ErrorContains(t, err, "401")
	})
}
