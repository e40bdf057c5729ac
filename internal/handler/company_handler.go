package handler

import (
	"log/slog"
	"net/http"

	"github.com/bme3412/q2-software/internal/company"
	"github.com/bme3412/q2-software/internal/docstore"
	"github.com/bme3412/q2-software/pkg/market"

	"github.com/gin-gonic/gin"
)

type ProfileClient interface {
	Profile(ticker string) (*market.CompanyProfile, error)
}

type CompanyHandler struct {
	profiles   ProfileClient
	normalizer *docstore.Normalizer
}

// NewCompanyHandler serves the static company universe and, when a market
// data client is configured, live company profiles.
func NewCompanyHandler(profiles ProfileClient) *CompanyHandler {
	return &CompanyHandler{profiles: profiles, normalizer: docstore.NewNormalizer(nil)}
}

func (h *CompanyHandler) GetCompanies(c *gin.Context) {
	var res []CompanyGroupResponse
	for _, g := range company.Groups() {
		var companies []CompanyResponse
		for _, co := range g.Companies {
			companies = append(companies, CompanyResponse{Ticker: co.Ticker, Name: co.Name})
		}
		res = append(res, CompanyGroupResponse{ID: g.ID, Name: g.Name, Companies: companies})
	}
	c.JSON(http.StatusOK, res)
}

func (h *CompanyHandler) GetProfile(c *gin.Context) {
	if h.profiles == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "profile lookup not configured"})
		return
	}

	ticker := h.normalizer.Normalize(c.Param("ticker"))

	profile, err := h.profiles.Profile(ticker)
	if err != nil {
		slog.Error("error fetching company profile", "ticker", ticker, "error", err)
		c.JSON(http.StatusNotFound, gin.H{"error": "Profile not found"})
		return
	}

	c.JSON(http.StatusOK, profile)
}

func (h *CompanyHandler) GetHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}
