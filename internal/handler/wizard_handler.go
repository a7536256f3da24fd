package handler

import (
	"net/http"

	"event-slot-wizard/internal/model"
	"event-slot-wizard/internal/service"
	"event-slot-wizard/internal/wizard"

	"github.com/gin-gonic/gin"
)

type WizardHandler struct {
	service service.WizardService
}

func NewWizardHandler(service service.WizardService) *WizardHandler {
	return &WizardHandler{service: service}
}

func (h *WizardHandler) RegisterRoutes(r *gin.Engine) {
	router := r.Group("/api/v1/wizards")
	{
		router.POST("", h.Start)
		router.GET(":uuid", h.Get)
		router.DELETE(":uuid", h.Discard)
		router.PUT(":uuid/range", h.SetDateRange)
		router.PUT(":uuid/active-date", h.SetActiveDate)
		router.POST(":uuid/apply-all", h.ApplyToAll)
		router.GET(":uuid/payload", h.Preview)

		dates := router.Group(":uuid/dates/:date")
		dates.POST("toggle", h.ToggleDate)
		dates.POST("slots", h.AddTimeSlot)
		dates.PUT("slots/:index", h.UpdateTimeSlot)
		dates.DELETE("slots/:index", h.RemoveTimeSlot)
		dates.POST("slots/:index/categories", h.AddCategory)
		dates.PUT("slots/:index/categories/:categoryId", h.UpdateCategory)
		dates.DELETE("slots/:index/categories/:categoryId", h.RemoveCategory)
	}
}

// StartWizardRequest 開始精靈請求
type StartWizardRequest struct {
	EventRefID string           `json:"event_ref_id" binding:"required"`
	Range      wizard.DateRange `json:"range"`
}

// SetActiveDateRequest 切換目前編輯日期
type SetActiveDateRequest struct {
	Date *wizard.Date `json:"date" binding:"required"`
}

// UpdateFieldRequest 時段與票種共用的單一欄位更新
type UpdateFieldRequest struct {
	Field string `json:"field" binding:"required"`
	Value string `json:"value"`
}

// ApplyToAllRequest sourceDate 與 categories 擇一
type ApplyToAllRequest struct {
	SourceDate *wizard.Date              `json:"sourceDate"`
	Categories []wizard.CategoryTemplate `json:"categories"`
}

// AddCategoryResponse 新增票種回應
type AddCategoryResponse struct {
	CategoryID string            `json:"category_id"`
	Wizard     *model.WizardView `json:"wizard"`
}

func (h *WizardHandler) Start(c *gin.Context) {
	var req StartWizardRequest
	if err := BindJson(c, &req); err != nil {
		return
	}
	view, err := h.service.Start(c, model.StartWizardParams{
		EventRefID: req.EventRefID,
		Range:      req.Range,
	})
	if err != nil {
		handleError(c, err, "Start")
		return
	}
	c.JSON(http.StatusCreated, view)
}

func (h *WizardHandler) Get(c *gin.Context) {
	id, ok := bindWizardID(c)
	if !ok {
		return
	}
	view, err := h.service.Get(c, id)
	if err != nil {
		handleError(c, err, "Get")
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *WizardHandler) Discard(c *gin.Context) {
	id, ok := bindWizardID(c)
	if !ok {
		return
	}
	if err := h.service.Discard(c, id); err != nil {
		handleError(c, err, "Discard")
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *WizardHandler) SetDateRange(c *gin.Context) {
	id, ok := bindWizardID(c)
	if !ok {
		return
	}
	var req wizard.DateRange
	if err := BindJson(c, &req); err != nil {
		return
	}
	view, err := h.service.SetDateRange(c, id, req)
	if err != nil {
		handleError(c, err, "SetDateRange")
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *WizardHandler) ToggleDate(c *gin.Context) {
	id, d, ok := bindDate(c)
	if !ok {
		return
	}
	view, err := h.service.ToggleDate(c, id, d)
	if err != nil {
		handleError(c, err, "ToggleDate")
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *WizardHandler) SetActiveDate(c *gin.Context) {
	id, ok := bindWizardID(c)
	if !ok {
		return
	}
	var req SetActiveDateRequest
	if err := BindJson(c, &req); err != nil {
		return
	}
	view, err := h.service.SetActiveDate(c, id, *req.Date)
	if err != nil {
		handleError(c, err, "SetActiveDate")
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *WizardHandler) AddTimeSlot(c *gin.Context) {
	id, d, ok := bindDate(c)
	if !ok {
		return
	}
	view, err := h.service.AddTimeSlot(c, id, d)
	if err != nil {
		handleError(c, err, "AddTimeSlot")
		return
	}
	c.JSON(http.StatusCreated, view)
}

func (h *WizardHandler) UpdateTimeSlot(c *gin.Context) {
	id, d, index, ok := bindSlot(c)
	if !ok {
		return
	}
	var req UpdateFieldRequest
	if err := BindJson(c, &req); err != nil {
		return
	}
	view, err := h.service.UpdateTimeSlot(c, id, d, index, model.UpdateSlotParams{
		Field: wizard.SlotField(req.Field),
		Value: req.Value,
	})
	if err != nil {
		handleError(c, err, "UpdateTimeSlot")
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *WizardHandler) RemoveTimeSlot(c *gin.Context) {
	id, d, index, ok := bindSlot(c)
	if !ok {
		return
	}
	view, err := h.service.RemoveTimeSlot(c, id, d, index)
	if err != nil {
		handleError(c, err, "RemoveTimeSlot")
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *WizardHandler) AddCategory(c *gin.Context) {
	id, d, index, ok := bindSlot(c)
	if !ok {
		return
	}
	categoryID, view, err := h.service.AddCategory(c, id, d, index)
	if err != nil {
		handleError(c, err, "AddCategory")
		return
	}
	c.JSON(http.StatusCreated, AddCategoryResponse{CategoryID: categoryID, Wizard: view})
}

func (h *WizardHandler) UpdateCategory(c *gin.Context) {
	id, d, index, categoryID, ok := bindCategory(c)
	if !ok {
		return
	}
	var req UpdateFieldRequest
	if err := BindJson(c, &req); err != nil {
		return
	}
	view, err := h.service.UpdateCategory(c, id, d, index, categoryID, model.UpdateCategoryParams{
		Field: wizard.CategoryField(req.Field),
		Value: req.Value,
	})
	if err != nil {
		handleError(c, err, "UpdateCategory")
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *WizardHandler) RemoveCategory(c *gin.Context) {
	id, d, index, categoryID, ok := bindCategory(c)
	if !ok {
		return
	}
	view, err := h.service.RemoveCategory(c, id, d, index, categoryID)
	if err != nil {
		handleError(c, err, "RemoveCategory")
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *WizardHandler) ApplyToAll(c *gin.Context) {
	id, ok := bindWizardID(c)
	if !ok {
		return
	}
	var req ApplyToAllRequest
	if err := BindJson(c, &req); err != nil {
		return
	}
	result, err := h.service.ApplyToAll(c, id, wizard.Broadcast{
		SourceDate: req.SourceDate,
		Categories: req.Categories,
	})
	if err != nil {
		handleError(c, err, "ApplyToAll")
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *WizardHandler) Preview(c *gin.Context) {
	id, ok := bindWizardID(c)
	if !ok {
		return
	}
	payload, err := h.service.Preview(c, id)
	if err != nil {
		handleError(c, err, "Preview")
		return
	}
	c.JSON(http.StatusOK, payload)
}
