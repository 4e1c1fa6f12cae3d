package directory

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindByEmail(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/users", r.URL.Path)
		assert.Equal(t, "leanne@april.biz", r.URL.Query().Get("email"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[
			{
				"id": 1,
				"name": "Leanne Graham",
				"username": "Bret",
				"email": "leanne@april.biz",
				"address": {
					"street": "Kulas Light",
					"suite": "Apt. 556",
					"city": "Gwenborough",
					"zipcode": "92998-3874",
					"geo": {"lat": "-37.3159", "lng": "81.1496"}
				},
				"phone": "1-770-736-8031",
				"website": "hildegard.org",
				"company": {
					"name": "Romaguera-Crona",
					"catchPhrase": "Multi-layered client-server neural-net",
					"bs": "harness real-time e-markets"
				}
			},
			{"id": 2, "name": "Second Match", "email": "leanne@april.biz"}
		]`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second)
	p, err := c.FindByEmail(context.Background(), "leanne@april.biz")
	require.NoError(t, err)
	require.NotNil(t, p)

	assert.Equal(t, "Leanne Graham", p.Name, "must use the first match only")
	assert.Equal(t, "1-770-736-8031", p.Phone)
	require.NotNil(t, p.Address)
	assert.Equal(t, "Gwenborough", p.Address.City)
	require.NotNil(t, p.Address.Geo)
	assert.Equal(t, "-37.3159", p.Address.Geo.Lat)
	require.NotNil(t, p.Company)
	assert.Equal(t, "harness real-time e-markets", p.Company.Bs)
}

func TestFindByEmailCaseInsensitiveFields(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"Name": "Upper Case", "EMAIL": "x@y.com", "Phone": "555", "Company": {"CATCHPHRASE": "loud"}}]`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second)
	p, err := c.FindByEmail(context.Background(), "x@y.com")
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, "Upper Case", p.Name)
	assert.Equal(t, "555", p.Phone)
	require.NotNil(t, p.Company)
	assert.Equal(t, "loud", p.Company.CatchPhrase)
}

func TestFindByEmailNoMatch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second)
	p, err := c.FindByEmail(context.Background(), "nobody@example.com")
	require.NoError(t, err)
	assert.Nil(t, p)
}

func TestFindByEmailServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second)
	_, err := c.FindByEmail(context.Background(), "x@y.com")
	assert.Error(t, err)
}

func TestFindByEmailMalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"not": "an array"`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second)
	_, err := c.FindByEmail(context.Background(), "x@y.com")
	assert.Error(t, err)
}

func TestFindByEmailCancelledContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := NewClient(srv.URL, time.Second)
	_, err := c.FindByEmail(ctx, "x@y.com")
	assert.Error(t, err)
}
