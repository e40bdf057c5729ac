package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/bme3412/q2-software/pkg/market"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/assert/v2"
)

type fakeProfileClient struct {
	profile    *market.CompanyProfile
	err        error
	lastTicker string
}

func (f *fakeProfileClient) Profile(ticker string) (*market.CompanyProfile, error) {
	f.lastTicker = ticker
	return f.profile, f.err
}

func newTestCompanyRouter(h *CompanyHandler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/api/companies", h.GetCompanies)
	r.GET("/api/companies/:ticker/profile", h.GetProfile)
	r.GET("/health", h.GetHealth)
	return r
}

func TestGetCompanies(t *testing.T) {
	h := NewCompanyHandler(nil)
	r := newTestCompanyRouter(h)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/companies", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var res []CompanyGroupResponse
	json.Unmarshal(w.Body.Bytes(), &res)
	assert.Equal(t, true, len(res) > 0)
	assert.Equal(t, true, len(res[0].Companies) > 0)
}

func TestGetProfile_NotConfigured(t *testing.T) {
	h := NewCompanyHandler(nil)
	r := newTestCompanyRouter(h)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/companies/BRZE/profile", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestGetProfile_NormalizesTicker(t *testing.T) {
	client := &fakeProfileClient{profile: &market.CompanyProfile{Name: "Braze Inc", Ticker: "BRZE"}}
	h := NewCompanyHandler(client)
	r := newTestCompanyRouter(h)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/companies/bze/profile", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "BRZE", client.lastTicker)
}

func TestGetProfile_NotFound(t *testing.T) {
	client := &fakeProfileClient{err: errors.New("no profile")}
	h := NewCompanyHandler(client)
	r := newTestCompanyRouter(h)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/companies/ZZZZ/profile", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetHealth(t *testing.T) {
	h := NewCompanyHandler(nil)
	r := newTestCompanyRouter(h)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/health", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}
