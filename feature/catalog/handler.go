package catalog

import (
	"errors"
	"strconv"
	"sync"

	"catalog-sync/core/logger"
	"catalog-sync/core/reconcile"
	"catalog-sync/feature/catalog/models"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for accounts and their catalogs.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// AccountRequest is the body accepted when creating or updating an account.
type AccountRequest struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Kind         string `json:"kind"`
	Action       string `json:"action"`
	URL          string `json:"url"`
	MAC          string `json:"mac"`
	Username     string `json:"username"`
	Password     string `json:"password"`
	PlaylistPath string `json:"playlist_path"`
	PauseCaching bool   `json:"pause_caching"`
}

func (r AccountRequest) toModel() *models.Account {
	return &models.Account{
		ID:           r.ID,
		Name:         r.Name,
		Kind:         r.Kind,
		Action:       r.Action,
		URL:          r.URL,
		MAC:          r.MAC,
		Username:     r.Username,
		Password:     r.Password,
		PlaylistPath: r.PlaylistPath,
		PauseCaching: r.PauseCaching,
	}
}

// ReloadResponse is a reload result together with the progress lines it produced.
type ReloadResponse struct {
	Result *reconcile.Result `json:"result"`
	Log    []string          `json:"log"`
}

// RegisterRoutes registers the catalog routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	app.Post("/reload", h.HandleReloadAll)

	group := app.Group("/accounts")
	group.Get("/", h.HandleListAccounts)
	group.Post("/", h.HandleSaveAccount)
	group.Get("/:id", h.HandleGetAccount)
	group.Delete("/:id", h.HandleDeleteAccount)
	group.Post("/:id/reload", h.HandleReload)
	group.Put("/:id/pause", h.HandleSetPause)
	group.Post("/:id/verify-mac", h.HandleVerifyMAC)
	group.Post("/:id/playlist", h.HandleUploadPlaylist)
	group.Get("/:id/categories", h.HandleCategories)
	group.Get("/:id/channels", h.HandleChannels)
	group.Get("/:id/channels/count", h.HandleChannelCount)
}

// HandleListAccounts lists every account.
// @Summary List Accounts
// @Tags accounts
// @Produce json
// @Success 200 {array} models.Account
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /accounts [get]
func (h *Handler) HandleListAccounts(c *fiber.Ctx) error {
	accounts, err := h.service.ListAccounts(c.Context())
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(accounts)
}

// HandleSaveAccount creates or updates an account.
// @Summary Save Account
// @Description Creates an account, or replaces the account with the same id.
// @Tags accounts
// @Accept json
// @Produce json
// @Param account body AccountRequest true "Account"
// @Success 200 {object} models.Account
// @Failure 400 {object} map[string]string "Invalid account"
// @Router /accounts [post]
func (h *Handler) HandleSaveAccount(c *fiber.Ctx) error {
	var req AccountRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	account := req.toModel()
	if err := h.service.SaveAccount(c.Context(), account); err != nil {
		return h.fail(c, err)
	}
	return c.JSON(account)
}

// HandleGetAccount returns one account.
// @Summary Get Account
// @Tags accounts
// @Produce json
// @Param id path string true "Account ID"
// @Success 200 {object} models.Account
// @Failure 404 {object} map[string]string "Account not found"
// @Router /accounts/{id} [get]
func (h *Handler) HandleGetAccount(c *fiber.Ctx) error {
	account, err := h.service.GetAccount(c.Context(), c.Params("id"))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(account)
}

// HandleDeleteAccount removes an account and its catalog.
// @Summary Delete Account
// @Tags accounts
// @Param id path string true "Account ID"
// @Success 204
// @Failure 404 {object} map[string]string "Account not found"
// @Router /accounts/{id} [delete]
func (h *Handler) HandleDeleteAccount(c *fiber.Ctx) error {
	if err := h.service.DeleteAccount(c.Context(), c.Params("id")); err != nil {
		return h.fail(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// HandleReload reloads the catalog of one account.
// @Summary Reload Account
// @Description Fetches the account's catalog from its backend and replaces the saved copy. A failed reload leaves the previous catalog in place.
// @Tags reload
// @Produce json
// @Param id path string true "Account ID"
// @Success 200 {object} ReloadResponse
// @Failure 404 {object} map[string]string "Account not found"
// @Failure 409 {object} ReloadResponse "Reload already in progress"
// @Failure 502 {object} ReloadResponse "Reload failed"
// @Router /accounts/{id}/reload [post]
func (h *Handler) HandleReload(c *fiber.Ctx) error {
	id := c.Params("id")
	l := logger.WithRayID(h.service.logger, c)
	l.Info("Reload requested", zap.String("account", id))

	lines := &lineCollector{}
	result, err := h.service.Reload(c.Context(), id, lines.progress())
	if result == nil {
		return h.fail(c, err)
	}

	resp := ReloadResponse{Result: result, Log: lines.all()}
	switch {
	case errors.Is(err, ErrLocked):
		return c.Status(fiber.StatusConflict).JSON(resp)
	case err != nil:
		return c.Status(fiber.StatusBadGateway).JSON(resp)
	}
	return c.JSON(resp)
}

// HandleReloadAll reloads every account.
// @Summary Reload All Accounts
// @Tags reload
// @Produce json
// @Success 200 {array} reconcile.Result
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /reload [post]
func (h *Handler) HandleReloadAll(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	l.Info("Reload of all accounts requested")

	results, err := h.service.ReloadAll(c.Context(), nil)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(results)
}

// HandleSetPause pauses or resumes caching for an account.
// @Summary Pause Caching
// @Tags accounts
// @Accept json
// @Param id path string true "Account ID"
// @Param body body map[string]bool true "{\"paused\": true}"
// @Success 204
// @Failure 404 {object} map[string]string "Account not found"
// @Router /accounts/{id}/pause [put]
func (h *Handler) HandleSetPause(c *fiber.Ctx) error {
	var body struct {
		Paused bool `json:"paused"`
	}
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if err := h.service.SetPause(c.Context(), c.Params("id"), body.Paused); err != nil {
		return h.fail(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// HandleVerifyMAC checks whether a portal accepts a MAC address.
// @Summary Verify MAC
// @Tags accounts
// @Accept json
// @Produce json
// @Param id path string true "Account ID"
// @Param body body map[string]string true "{\"mac\": \"00:1A:79:00:00:01\"}"
// @Success 200 {object} map[string]bool
// @Failure 400 {object} map[string]string "Not a portal account"
// @Router /accounts/{id}/verify-mac [post]
func (h *Handler) HandleVerifyMAC(c *fiber.Ctx) error {
	var body struct {
		MAC string `json:"mac"`
	}
	if err := c.BodyParser(&body); err != nil || body.MAC == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "mac is required"})
	}

	valid, err := h.service.VerifyMAC(c.Context(), c.Params("id"), body.MAC)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(fiber.Map{"valid": valid})
}

// HandleUploadPlaylist stores an uploaded playlist and points the account at it.
// @Summary Upload Playlist
// @Tags accounts
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Account ID"
// @Param file formData file true "M3U playlist"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string "Missing file"
// @Router /accounts/{id}/playlist [post]
func (h *Handler) HandleUploadPlaylist(c *fiber.Ctx) error {
	file, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "file is required"})
	}
	body, err := file.Open()
	if err != nil {
		return h.fail(c, err)
	}
	defer body.Close()

	locator, err := h.service.UploadPlaylist(c.Context(), c.Params("id"), file.Filename, body, file.Size)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(fiber.Map{"playlist_path": locator})
}

// HandleCategories lists the saved categories of an account.
// @Summary List Categories
// @Tags catalog
// @Produce json
// @Param id path string true "Account ID"
// @Param mode query string false "itv, vod or series"
// @Success 200 {array} reconcile.Category
// @Failure 404 {object} map[string]string "Account not found"
// @Router /accounts/{id}/categories [get]
func (h *Handler) HandleCategories(c *fiber.Ctx) error {
	categories, err := h.service.Categories(c.Context(), c.Params("id"), reconcile.Action(c.Query("mode")))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(categories)
}

// HandleChannels lists the saved channels of an account.
// @Summary List Channels
// @Tags catalog
// @Produce json
// @Param id path string true "Account ID"
// @Param category query int false "Category DB id"
// @Success 200 {array} models.Channel
// @Failure 404 {object} map[string]string "Account not found"
// @Router /accounts/{id}/channels [get]
func (h *Handler) HandleChannels(c *fiber.Ctx) error {
	var categoryDBID uint64
	if raw := c.Query("category"); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "category must be a number"})
		}
		categoryDBID = parsed
	}

	channels, err := h.service.Channels(c.Context(), c.Params("id"), uint(categoryDBID))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(channels)
}

// HandleChannelCount returns how many channels are saved for an account.
// @Summary Channel Count
// @Tags catalog
// @Produce json
// @Param id path string true "Account ID"
// @Success 200 {object} map[string]int64
// @Failure 404 {object} map[string]string "Account not found"
// @Router /accounts/{id}/channels/count [get]
func (h *Handler) HandleChannelCount(c *fiber.Ctx) error {
	count, err := h.service.ChannelCount(c.Context(), c.Params("id"))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(fiber.Map{"count": count})
}

func (h *Handler) fail(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	switch {
	case errors.Is(err, ErrAccountNotFound):
		status = fiber.StatusNotFound
	case errors.Is(err, ErrInvalidAccount), errors.Is(err, ErrNotPortal):
		status = fiber.StatusBadRequest
	case errors.Is(err, ErrLocked):
		status = fiber.StatusConflict
	case errors.Is(err, ErrNoStorage):
		status = fiber.StatusServiceUnavailable
	}
	if status == fiber.StatusInternalServerError {
		logger.WithRayID(h.service.logger, c).Error("Catalog request failed", zap.Error(err))
	}
	return c.Status(status).JSON(fiber.Map{"error": err.Error()})
}

// lineCollector gathers the progress lines of one request.
type lineCollector struct {
	mu    sync.Mutex
	lines []string
}

func (l *lineCollector) progress() reconcile.Progress {
	return func(line string) {
		l.mu.Lock()
		l.lines = append(l.lines, line)
		l.mu.Unlock()
	}
}

func (l *lineCollector) all() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.lines...)
}
