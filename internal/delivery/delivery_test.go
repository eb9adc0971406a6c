package delivery

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/campaign-calendar/internal/config"
)

func testMessage() Message {
	return Message{
		To:       "u1@x.com",
		ToName:   "Ahmet Yılmaz",
		Subject:  "Görev Ataması: Yaz İndirimi",
		Body:     "body text",
		Metadata: map[string]string{MetaTitle: "Yaz İndirimi", MetaRefID: "#ABC123", "to_email": "ignored@x.com"},
	}
}

func TestEmailAPIChannel_PostsTemplatePayload(t *testing.T) {
	var got emailAPIRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || json.NewDecoder(r.Body).Decode(&got) != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	}))
	defer srv.Close()

	ch := NewEmailAPIChannel(config.DeliveryConfig{
		APIURL:         srv.URL,
		ServiceID:      "svc",
		TemplateID:     "tpl",
		PublicKey:      "pk",
		TimeoutSeconds: 2,
	}, zap.NewNop())

	require.NoError(t, ch.Send(context.Background(), testMessage()))
	assert.Equal(t, "svc", got.ServiceID)
	assert.Equal(t, "tpl", got.TemplateID)
	assert.Equal(t, "pk", got.UserID)
	assert.Equal(t, "u1@x.com", got.TemplateParams["to_email"])
	assert.Equal(t, "Ahmet Yılmaz", got.TemplateParams["to_name"])
	assert.Equal(t, "body text", got.TemplateParams["message"])
	assert.Equal(t, "#ABC123", got.TemplateParams[MetaRefID])
	assert.Equal(t, "Yaz İndirimi", got.TemplateParams[MetaTitle])
}

func TestEmailAPIChannel_RejectsNon2xx(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte("blocked"))
	}))
	defer srv.Close()

	ch := NewEmailAPIChannel(config.DeliveryConfig{APIURL: srv.URL, TimeoutSeconds: 2}, zap.NewNop())

	err := ch.Send(context.Background(), testMessage())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "403")
}

func TestEmailAPIChannel_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	addr := srv.URL
	srv.Close()

	ch := NewEmailAPIChannel(config.DeliveryConfig{APIURL: addr, TimeoutSeconds: 1}, zap.NewNop())
	assert.Error(t, ch.Send(context.Background(), testMessage()))
}

func TestEmailAPIChannel_CanceledContext(t *testing.T) {
	ch := NewEmailAPIChannel(config.DeliveryConfig{APIURL: "http://127.0.0.1:1"}, zap.NewNop())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, ch.Send(ctx, testMessage()), context.Canceled)
}

func TestNewChannel_DisabledWithoutURL(t *testing.T) {
	ch := NewChannel(config.DeliveryConfig{}, zap.NewNop())
	assert.ErrorIs(t, ch.Send(context.Background(), testMessage()), ErrChannelDisabled)
}

func TestBuildMailtoURI(t *testing.T) {
	uri := BuildMailtoURI("u1@x.com", "ACİL: Görev Ataması: Yaz İndirimi", "Sayın Ahmet,\n\nA & B\n\n----------------\nRef ID: #ABC123")

	require.True(t, strings.HasPrefix(uri, "mailto:u1@x.com?subject="))
	assert.NotContains(t, uri, "+")
	assert.NotContains(t, uri, " ")
	assert.True(t, strings.HasSuffix(uri, "&importance=High&X-Priority=1"))

	parsed, err := url.Parse(uri)
	require.NoError(t, err)
	q, err := url.ParseQuery(parsed.RawQuery)
	require.NoError(t, err)
	assert.Equal(t, "ACİL: Görev Ataması: Yaz İndirimi", q.Get("subject"))
	assert.Equal(t, "Sayın Ahmet,\n\nA & B\n\n----------------\nRef ID: #ABC123", q.Get("body"))
	assert.Equal(t, "High", q.Get("importance"))
}

func TestBuildMailtoURI_EscapesRecipient(t *testing.T) {
	uri := BuildMailtoURI("Ahmet Y <u1@x.com>", "s", "b")

	assert.True(t, strings.HasPrefix(uri, "mailto:Ahmet%20Y%20%3Cu1@x.com%3E?subject=s&body=b"), uri)
	parsed, err := url.Parse(uri)
	require.NoError(t, err)
	recipient, err := url.PathUnescape(parsed.Opaque)
	require.NoError(t, err)
	assert.Equal(t, "Ahmet Y <u1@x.com>", recipient)
}

func TestTruncate_KeepsRunesWhole(t *testing.T) {
	assert.Equal(t, "ğğ", truncate("ğğğ", 2))
	assert.Equal(t, "kısa", truncate("kısa", 10))
	assert.True(t, utf8.ValidString(truncate(strings.Repeat("ş", 300), 200)))
}
