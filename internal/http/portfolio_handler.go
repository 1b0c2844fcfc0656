package http

import (
	"net/http"

	"portfolio-views/internal/portfolios"

	"github.com/go-chi/chi/v5"
)

const urlParamUsername = "username"

type AppHttpHandler interface {
	Handle(w http.ResponseWriter, r *http.Request) error
}

type createPortfolioHandler struct {
	portfolioService portfolios.PortfolioService
	limits           UploadLimits
}

func NewCreatePortfolioHandler(portfolioService portfolios.PortfolioService, limits UploadLimits) AppHttpHandler {
	return &createPortfolioHandler{portfolioService: portfolioService, limits: limits}
}

// Handle processes POST /portfolios requests.
func (h *createPortfolioHandler) Handle(w http.ResponseWriter, r *http.Request) error {
	var input portfolios.CreateInput
	files, err := decodePortfolioRequest(w, r, h.limits, &input)
	if err != nil {
		return err
	}

	portfolio, err := h.portfolioService.Create(r.Context(), &input, files)
	if err != nil {
		return err
	}

	writeSuccessResponse(w, http.StatusCreated, "Portfolio created successfully.", portfolio)
	return nil
}

type viewPortfolioHandler struct {
	portfolioService portfolios.PortfolioService
}

func NewViewPortfolioHandler(portfolioService portfolios.PortfolioService) AppHttpHandler {
	return &viewPortfolioHandler{portfolioService: portfolioService}
}

// Handle processes GET /portfolios/{username} requests. Every call counts as a view.
func (h *viewPortfolioHandler) Handle(w http.ResponseWriter, r *http.Request) error {
	portfolio, err := h.portfolioService.View(r.Context(), chi.URLParam(r, urlParamUsername), userAgent(r))
	if err != nil {
		return err
	}

	writeSuccessResponse(w, http.StatusOK, "Portfolio retrieved successfully.", portfolio)
	return nil
}

type checkUsernameHandler struct {
	portfolioService portfolios.PortfolioService
}

func NewCheckUsernameHandler(portfolioService portfolios.PortfolioService) AppHttpHandler {
	return &checkUsernameHandler{portfolioService: portfolioService}
}

// Handle processes GET /portfolios/check/{username} requests.
func (h *checkUsernameHandler) Handle(w http.ResponseWriter, r *http.Request) error {
	availability, err := h.portfolioService.CheckAvailability(r.Context(), chi.URLParam(r, urlParamUsername))
	if err != nil {
		return err
	}

	writeSuccessResponse(w, http.StatusOK, "Username availability checked.", availability)
	return nil
}

type updatePortfolioHandler struct {
	portfolioService portfolios.PortfolioService
	limits           UploadLimits
}

func NewUpdatePortfolioHandler(portfolioService portfolios.PortfolioService, limits UploadLimits) AppHttpHandler {
	return &updatePortfolioHandler{portfolioService: portfolioService, limits: limits}
}

// Handle processes PATCH /portfolios/{username} requests.
func (h *updatePortfolioHandler) Handle(w http.ResponseWriter, r *http.Request) error {
	var input portfolios.UpdateInput
	files, err := decodePortfolioRequest(w, r, h.limits, &input)
	if err != nil {
		return err
	}

	portfolio, err := h.portfolioService.Update(r.Context(), chi.URLParam(r, urlParamUsername), &input, files)
	if err != nil {
		return err
	}

	writeSuccessResponse(w, http.StatusOK, "Portfolio updated successfully.", portfolio)
	return nil
}
