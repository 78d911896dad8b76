package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"habittracker/internal/habit"
	"habittracker/internal/model"
	"habittracker/internal/view"
	"habittracker/pkg/logger"
)

// MaxWindowDays 详情接口允许的最大窗口
const MaxWindowDays = 366

type HabitHandler struct {
	store      *habit.Store
	windowDays int
	logger     *zap.Logger
}

func NewHabitHandler(store *habit.Store, windowDays int, logger *zap.Logger) *HabitHandler {
	if windowDays <= 0 {
		windowDays = habit.DefaultWindowDays
	}
	return &HabitHandler{store: store, windowDays: windowDays, logger: logger}
}

// RequireReady 数据加载完成前拒绝习惯相关请求
func (h *HabitHandler) RequireReady(c *gin.Context) {
	if !h.store.Ready() {
		c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"error": "habit store is loading"})
		return
	}
	c.Next()
}

// ListHabits handles GET /habits
func (h *HabitHandler) ListHabits(c *gin.Context) {
	rows := view.BuildRows(h.store.Snapshot(), h.store.Today(), nil)
	c.JSON(http.StatusOK, gin.H{
		"habits": rows,
		"today":  h.store.Today(),
	})
}

// CreateHabit handles POST /habits
func (h *HabitHandler) CreateHabit(c *gin.Context) {
	var req struct {
		Name string `json:"name"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	created, ok := h.store.AddHabit(req.Name)
	if !ok {
		// 空名字按约定静默忽略
		c.Status(http.StatusNoContent)
		return
	}

	logger.WithTrace(c.Request.Context(), h.logger).Info("Habit created",
		zap.String("habit_id", string(created.ID)),
		zap.String("name", created.Name),
	)
	c.JSON(http.StatusCreated, view.BuildDetail(created, h.store.Today(), h.windowDays))
}

// GetHabit handles GET /habits/:id?as_of=YYYY-MM-DD&window=N
func (h *HabitHandler) GetHabit(c *gin.Context) {
	asOf, ok := h.dayQuery(c, "as_of")
	if !ok {
		return
	}

	window := h.windowDays
	if raw := c.Query("window"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 || n > MaxWindowDays {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid window"})
			return
		}
		window = n
	}

	found, ok := h.store.Habit(model.HabitID(c.Param("id")))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "habit not found"})
		return
	}

	c.JSON(http.StatusOK, view.BuildDetail(found, asOf, window))
}

// ToggleCompletion handles POST /habits/:id/toggle?day=YYYY-MM-DD
func (h *HabitHandler) ToggleCompletion(c *gin.Context) {
	day, ok := h.dayQuery(c, "day")
	if !ok {
		return
	}

	id := model.HabitID(c.Param("id"))
	completed, ok := h.store.ToggleCompletion(id, day)
	if !ok {
		c.Status(http.StatusNoContent)
		return
	}

	logger.WithTrace(c.Request.Context(), h.logger).Info("Habit completion toggled",
		zap.String("habit_id", string(id)),
		zap.Stringer("day", day),
		zap.Bool("completed", completed),
	)
	c.JSON(http.StatusOK, gin.H{
		"id":        id,
		"day":       day,
		"completed": completed,
	})
}

// DeleteHabit handles DELETE /habits/:id
func (h *HabitHandler) DeleteHabit(c *gin.Context) {
	id := model.HabitID(c.Param("id"))
	if h.store.DeleteHabit(id) {
		logger.WithTrace(c.Request.Context(), h.logger).Info("Habit deleted", zap.String("habit_id", string(id)))
	}
	c.Status(http.StatusNoContent)
}

// dayQuery 解析日期参数，缺省为今天；失败时已写入 400
func (h *HabitHandler) dayQuery(c *gin.Context, name string) (model.Day, bool) {
	raw := c.Query(name)
	if raw == "" {
		return h.store.Today(), true
	}
	d, err := model.ParseDay(raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return 0, false
	}
	return d, true
}
