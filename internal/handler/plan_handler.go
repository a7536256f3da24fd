package handler

import (
	"net/http"

	"event-slot-wizard/internal/service"

	"github.com/gin-gonic/gin"
)

type PlanHandler struct {
	service service.PlanService
}

func NewPlanHandler(service service.PlanService) *PlanHandler {
	return &PlanHandler{service: service}
}

func (h *PlanHandler) RegisterRoutes(r *gin.Engine) {
	router := r.Group("/api/v1")
	{
		router.POST("wizards/:uuid/submit", h.Submit)
		router.GET("plans/:uuid", h.GetPlan)
		router.GET("plans/:uuid/inventory", h.GetInventory)
	}
}

func (h *PlanHandler) Submit(c *gin.Context) {
	id, ok := bindWizardID(c)
	if !ok {
		return
	}
	result, err := h.service.Submit(c, id)
	if err != nil {
		handleError(c, err, "Submit")
		return
	}
	c.JSON(http.StatusCreated, result)
}

func (h *PlanHandler) GetPlan(c *gin.Context) {
	id, ok := bindWizardID(c)
	if !ok {
		return
	}
	plan, err := h.service.GetPlan(c, id)
	if err != nil {
		handleError(c, err, "GetPlan")
		return
	}
	c.JSON(http.StatusOK, plan)
}

func (h *PlanHandler) GetInventory(c *gin.Context) {
	id, ok := bindWizardID(c)
	if !ok {
		return
	}
	items, err := h.service.GetInventory(c, id)
	if err != nil {
		handleError(c, err, "GetInventory")
		return
	}
	c.JSON(http.StatusOK, gin.H{"plan_id": id, "categories": items})
}
