package handler

import (
	"errors"
	"net/http"

	"event-slot-wizard/internal/wizard"
	apperrors "event-slot-wizard/pkg/app_errors"
	"event-slot-wizard/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

func BindJson(c *gin.Context, obj interface{}) error {
	if err := c.ShouldBindJSON(obj); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return err
	}
	return nil
}

func BindUri(c *gin.Context, obj interface{}) error {
	if err := c.ShouldBindUri(obj); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request path",
		})
		return err
	}
	return nil
}

type wizardURI struct {
	UUID string `uri:"uuid" binding:"required,uuid"`
}

type dateURI struct {
	UUID string `uri:"uuid" binding:"required,uuid"`
	Date string `uri:"date" binding:"required"`
}

type slotURI struct {
	UUID  string `uri:"uuid" binding:"required,uuid"`
	Date  string `uri:"date" binding:"required"`
	Index int    `uri:"index" binding:"min=0"`
}

type categoryURI struct {
	UUID       string `uri:"uuid" binding:"required,uuid"`
	Date       string `uri:"date" binding:"required"`
	Index      int    `uri:"index" binding:"min=0"`
	CategoryID string `uri:"categoryId" binding:"required"`
}

// bindWizardID 綁定 :uuid；失敗時已寫入 400
func bindWizardID(c *gin.Context) (uuid.UUID, bool) {
	var uri wizardURI
	if err := BindUri(c, &uri); err != nil {
		return uuid.Nil, false
	}
	return uuid.MustParse(uri.UUID), true
}

// bindDate 綁定 :uuid 與 :date
func bindDate(c *gin.Context) (uuid.UUID, wizard.Date, bool) {
	var uri dateURI
	if err := BindUri(c, &uri); err != nil {
		return uuid.Nil, wizard.Date{}, false
	}
	d, err := wizard.ParseDate(uri.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return uuid.Nil, wizard.Date{}, false
	}
	return uuid.MustParse(uri.UUID), d, true
}

func bindSlot(c *gin.Context) (uuid.UUID, wizard.Date, int, bool) {
	var uri slotURI
	if err := BindUri(c, &uri); err != nil {
		return uuid.Nil, wizard.Date{}, 0, false
	}
	d, err := wizard.ParseDate(uri.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return uuid.Nil, wizard.Date{}, 0, false
	}
	return uuid.MustParse(uri.UUID), d, uri.Index, true
}

func bindCategory(c *gin.Context) (uuid.UUID, wizard.Date, int, string, bool) {
	var uri categoryURI
	if err := BindUri(c, &uri); err != nil {
		return uuid.Nil, wizard.Date{}, 0, "", false
	}
	d, err := wizard.ParseDate(uri.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return uuid.Nil, wizard.Date{}, 0, "", false
	}
	return uuid.MustParse(uri.UUID), d, uri.Index, uri.CategoryID, true
}

var (
	badRequestErrors = []error{
		apperrors.ErrInvalidInput,
		wizard.ErrInvalidDate,
		wizard.ErrInvalidTime,
		wizard.ErrInvalidTimeRange,
		wizard.ErrInvalidField,
	}
	notFoundErrors = []error{
		apperrors.ErrWizardNotFound,
		apperrors.ErrPlanNotFound,
		wizard.ErrDateNotSelected,
		wizard.ErrSlotNotFound,
		wizard.ErrCategoryNotFound,
	}
	conflictErrors = []error{
		wizard.ErrDateInPast,
		wizard.ErrDateOutOfRange,
		wizard.ErrDateAlreadyExists,
		wizard.ErrEmptyTemplate,
		wizard.ErrAmbiguousBroadcast,
	}
)

func isAny(err error, targets []error) bool {
	for _, t := range targets {
		if errors.Is(err, t) {
			return true
		}
	}
	return false
}

// handleError 將 service 與領域錯誤對應到 HTTP 狀態碼
func handleError(c *gin.Context, err error, operation string) {
	log := logger.WithComponent("handler").With(zap.String("operation", operation), zap.Error(err))
	switch {
	case isAny(err, badRequestErrors):
		log.Warn("Invalid input")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case isAny(err, notFoundErrors):
		log.Warn("Not found")
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case isAny(err, conflictErrors):
		log.Warn("Conflict")
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrSubmissionFailed):
		log.Error("Submission failed")
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
	default:
		log.Error("Unexpected error")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
