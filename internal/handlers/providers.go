package handlers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"appointments-server/internal/booking"
	"appointments-server/internal/cache"
	"appointments-server/internal/config"
	"appointments-server/internal/models"
	"appointments-server/internal/store"
	"appointments-server/internal/utils"
)

// ProviderHandler lists providers and their free hours.
type ProviderHandler struct {
	Users    store.UserStore
	Cache    cache.Cache
	Bookings *booking.Service
	Cfg      *config.Config
	Log      *zap.Logger
}

// NewProviderHandler creates a new ProviderHandler.
func NewProviderHandler(users store.UserStore, c cache.Cache, bookings *booking.Service, cfg *config.Config, log *zap.Logger) *ProviderHandler {
	return &ProviderHandler{Users: users, Cache: c, Bookings: bookings, Cfg: cfg, Log: log}
}

// GetProviders returns every provider, served from cache when possible.
func (h *ProviderHandler) GetProviders(c *gin.Context) {
	ctx := c.Request.Context()

	var providers []models.UserSanitized
	hit, err := h.Cache.Get(ctx, cache.ProvidersKey, &providers)
	if err != nil {
		h.Log.Warn("failed to read providers cache", zap.Error(err))
	}
	if hit {
		utils.Success(c, "Providers retrieved successfully", providers)
		return
	}

	users, err := h.Users.ListProviders(ctx)
	if err != nil {
		utils.InternalServerError(c, "Failed to fetch providers")
		return
	}

	providers = make([]models.UserSanitized, 0, len(users))
	for i := range users {
		providers = append(providers, users[i].Sanitize(h.Cfg.AppURL))
	}
	if err := h.Cache.Set(ctx, cache.ProvidersKey, providers, h.Cfg.Redis.TTL); err != nil {
		h.Log.Warn("failed to fill providers cache", zap.Error(err))
	}

	utils.Success(c, "Providers retrieved successfully", providers)
}

// GetAvailability lists the provider's hour slots for the day given as
// unix milliseconds in the date query parameter.
func (h *ProviderHandler) GetAvailability(c *gin.Context) {
	providerID, err := booking.ParseProviderID(c.Param("providerId"))
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	ms, err := strconv.ParseInt(c.Query("date"), 10, 64)
	if err != nil {
		utils.BadRequest(c, "Invalid date")
		return
	}

	slots, err := h.Bookings.Availability(c.Request.Context(), providerID, time.UnixMilli(ms))
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.Success(c, "Availability retrieved successfully", slots)
}
