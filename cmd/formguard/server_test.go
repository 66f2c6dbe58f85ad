package main

import (
	"context"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/goliatone/go-formguard/pkg/config"
)

func submit(t *testing.T, h http.Handler, path string, values url.Values) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestRouter_DefaultsToRSVP(t *testing.T) {
	promReg := prometheus.NewRegistry()
	router, err := newRouter(config.Default(), promReg, zap.NewNop())
	require.NoError(t, err)

	w := submit(t, router, "/rsvp", url.Values{"name": {"Amy"}})
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	var payload map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &payload))
	assert.Equal(t, "Required fields are empty: email, guests", payload["message"])

	w = submit(t, router, "/rsvp", url.Values{"name": {"Amy"}, "email": {"amy@example.com"}, "guests": {"1"}})
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `formguard_submissions_total{form="rsvp",outcome="invalid"} 1`)
	assert.Contains(t, w.Body.String(), `formguard_submissions_total{form="rsvp",outcome="valid"} 1`)
}

func TestRouter_ConfiguredForms(t *testing.T) {
	cfg := config.Default()
	cfg.Forms = []config.Form{{ID: "contact", Path: "/forms/contact", Required: []string{"email"}}}

	router, err := newRouter(cfg, prometheus.NewRegistry(), zap.NewNop())
	require.NoError(t, err)

	w := submit(t, router, "/forms/contact", url.Values{"email": {"amy@example.com"}})
	assert.Equal(t, http.StatusAccepted, w.Code)

	w = submit(t, router, "/forms/contact", url.Values{})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestServe_ShutsDownOnCancel(t *testing.T) {
	logger = zap.NewNop()
	router, err := newRouter(config.Default(), prometheus.NewRegistry(), zap.NewNop())
	require.NoError(t, err)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- serve(ctx, newServer(ln.Addr().String(), router), ln, time.Second)
	}()

	client := &http.Client{Transport: &http.Transport{DisableKeepAlives: true}}
	resp, err := client.Get("http://" + ln.Addr().String() + "/healthz")
	require.NoError(t, err)
	_, _ = io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}
