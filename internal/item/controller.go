package item

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// ItemControllerAPI is the operations behind the /basic/items routes.
type ItemControllerAPI interface {
	ListItems(ctx context.Context) ([]Item, error)
	GetItem(ctx context.Context, id int64) (Item, error)
	AddItem(ctx context.Context, item Item) (Item, error)
	EditItem(ctx context.Context, id int64, param Item) (Item, error)
	DataSourceInfo(ctx context.Context) (DataSourceInfo, error)
}

// DataSourceInfo describes the storage in use.
type DataSourceInfo struct {
	ProviderName    string     `json:"provider_name"`
	ConnectionValid bool       `json:"connection_valid"`
	PoolStats       *PoolStats `json:"pool_stats,omitempty"`
}

// PoolStats is the JSON view of sql.DBStats.
type PoolStats struct {
	MaxOpenConnections int   `json:"max_open_connections"`
	OpenConnections    int   `json:"open_connections"`
	InUse              int   `json:"in_use"`
	Idle               int   `json:"idle"`
	WaitCount          int64 `json:"wait_count"`
	WaitDurationMs     int64 `json:"wait_duration_ms"`
}

func newPoolStats(s sql.DBStats) *PoolStats {
	return &PoolStats{
		MaxOpenConnections: s.MaxOpenConnections,
		OpenConnections:    s.OpenConnections,
		InUse:              s.InUse,
		Idle:               s.Idle,
		WaitCount:          s.WaitCount,
		WaitDurationMs:     s.WaitDuration.Milliseconds(),
	}
}

// ItemController implements ItemControllerAPI on the Service.
type ItemController struct {
	service    Service
	dataSource DataSource
}

func NewItemController(service Service, dataSource DataSource) *ItemController {
	return &ItemController{service: service, dataSource: dataSource}
}

func (c *ItemController) ListItems(ctx context.Context) ([]Item, error) {
	return c.service.FindItems(ctx)
}

func (c *ItemController) GetItem(ctx context.Context, id int64) (Item, error) {
	return c.service.FindItem(ctx, id)
}

func (c *ItemController) AddItem(ctx context.Context, item Item) (Item, error) {
	return c.service.SaveItem(ctx, item)
}

// EditItem updates the item and returns its stored state.
func (c *ItemController) EditItem(ctx context.Context, id int64, param Item) (Item, error) {
	if err := c.service.UpdateItem(ctx, id, param); err != nil {
		return Item{}, err
	}
	return c.service.FindItem(ctx, id)
}

// DataSourceInfo reports the provider, whether it answers a ping and, for
// pooled sources, the pool statistics.
func (c *ItemController) DataSourceInfo(ctx context.Context) (DataSourceInfo, error) {
	if c.dataSource == nil {
		return DataSourceInfo{}, errors.New("no data source configured")
	}

	info := DataSourceInfo{
		ProviderName:    c.dataSource.ProviderName(),
		ConnectionValid: c.dataSource.Ping(ctx) == nil,
	}

	stats, err := c.dataSource.Stats()
	switch {
	case err == nil:
		info.PoolStats = newPoolStats(stats)
	case !errors.Is(err, ErrNoPoolStats):
		return info, fmt.Errorf("data source stats: %w", err)
	}
	return info, nil
}

// Handler serves the item routes over HTTP.
type Handler struct {
	api ItemControllerAPI
}

func NewHandler(api ItemControllerAPI) *Handler {
	return &Handler{api: api}
}

// RegisterRoutes mounts the item routes under /basic/items.
func (h *Handler) RegisterRoutes(router gin.IRouter) {
	items := router.Group("/basic/items")
	items.GET("", h.list)
	items.GET("/datasource-info", h.dataSourceInfo)
	items.GET("/:itemId", h.get)
	items.POST("/add", h.add)
	items.POST("/:itemId/edit", h.edit)
}

func (h *Handler) list(c *gin.Context) {
	items, err := h.api.ListItems(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

func (h *Handler) get(c *gin.Context) {
	id, ok := itemID(c)
	if !ok {
		return
	}
	item, err := h.api.GetItem(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *Handler) add(c *gin.Context) {
	var form Item
	if err := c.ShouldBind(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	saved, err := h.api.AddItem(c.Request.Context(), form)
	if err != nil {
		writeError(c, err)
		return
	}
	c.Header("Location", fmt.Sprintf("/basic/items/%d", saved.ID))
	c.JSON(http.StatusCreated, gin.H{"item": saved, "status": true})
}

func (h *Handler) edit(c *gin.Context) {
	id, ok := itemID(c)
	if !ok {
		return
	}
	var form Item
	if err := c.ShouldBind(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	updated, err := h.api.EditItem(c.Request.Context(), id, form)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *Handler) dataSourceInfo(c *gin.Context) {
	info, err := h.api.DataSourceInfo(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, info)
}

func itemID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("itemId"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid item id"})
		return 0, false
	}
	return id, true
}

func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrItemNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, ErrInvalidItem):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
