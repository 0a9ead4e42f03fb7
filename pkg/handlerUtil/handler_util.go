package handlerUtil

import (
	"TravelGolang/internal/api/chat"
	"TravelGolang/internal/api/plan"
	"TravelGolang/pkg/log"
	"TravelGolang/pkg/response"
	"errors"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
	"github.com/sirupsen/logrus"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details string `json:"details,omitempty"`
}

type ErrorHandler struct {
	logger *logrus.Logger
}

func New(logger *logrus.Logger) *ErrorHandler {
	return &ErrorHandler{
		logger: logger,
	}
}

func (h *ErrorHandler) Handle(c *fiber.Ctx, requestID string, err error, path string, operation string) error {
	var respErr *response.Error
	if errors.As(err, &respErr) {
		h.logger.WithFields(log.Fields{
			"request_id": requestID,
			"error":      err.Error(),
			"code":       respErr.Code,
			"path":       path,
			"operation":  operation,
		}).Warn("Operation failed with error response")
		return c.Status(respErr.Code).JSON(fiber.Map{"error": err.Error()})
	}

	// Chat domain errors
	if errors.Is(err, chat.ErrConversationNotFound) {
		h.logger.WithFields(log.Fields{
			"request_id": requestID,
			"error":      err.Error(),
			"path":       path,
			"operation":  operation,
		}).Warn("Conversation not found")
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "Conversation not found",
			"code":    "CONVERSATION_NOT_FOUND",
		})
	}

	if errors.Is(err, chat.ErrConversationNotOwned) {
		h.logger.WithFields(log.Fields{
			"request_id": requestID,
			"error":      err.Error(),
			"path":       path,
			"operation":  operation,
		}).Warn("Conversation does not belong to user")
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"message": "Conversation does not belong to user",
			"code":    "CONVERSATION_NOT_OWNED",
		})
	}

	if errors.Is(err, chat.ErrEmptyMessage) {
		h.logger.WithFields(log.Fields{
			"request_id": requestID,
			"error":      err.Error(),
			"path":       path,
			"operation":  operation,
		}).Warn("Empty message text")
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Message text cannot be empty",
			"code":    "EMPTY_MESSAGE",
		})
	}

	if errors.Is(err, chat.ErrInvalidAttachment) {
		h.logger.WithFields(log.Fields{
			"request_id": requestID,
			"error":      err.Error(),
			"path":       path,
			"operation":  operation,
		}).Warn("Invalid attachment")
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid attachment. Only images and PDFs are allowed.",
		})
	}

	if errors.Is(err, chat.ErrFailedToUploadAttachment) {
		h.logger.WithFields(log.Fields{
			"request_id": requestID,
			"error":      err.Error(),
			"path":       path,
			"operation":  operation,
		}).Warn("Failed to upload attachment")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to upload attachment",
		})
	}

	if errors.Is(err, chat.ErrSearchProviderUnavailable) {
		h.logger.WithFields(log.Fields{
			"request_id": requestID,
			"error":      err.Error(),
			"path":       path,
			"operation":  operation,
		}).Error("Search provider unavailable")
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error": "Search provider is unavailable, try again later",
		})
	}

	// Plan domain errors
	if errors.Is(err, plan.ErrPlanNotFound) {
		h.logger.WithFields(log.Fields{
			"request_id": requestID,
			"error":      err.Error(),
			"path":       path,
			"operation":  operation,
		}).Warn("Trip plan not found")
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Trip plan not found",
		})
	}

	if errors.Is(err, plan.ErrPlanNotOwned) {
		h.logger.WithFields(log.Fields{
			"request_id": requestID,
			"error":      err.Error(),
			"path":       path,
			"operation":  operation,
		}).Warn("Trip plan does not belong to user")
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "Trip plan does not belong to user",
		})
	}

	if errors.Is(err, plan.ErrItemNotFound) {
		h.logger.WithFields(log.Fields{
			"request_id": requestID,
			"error":      err.Error(),
			"path":       path,
			"operation":  operation,
		}).Warn("Plan item not found")
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Plan item not found",
		})
	}

	if errors.Is(err, plan.ErrInvalidItemKind) {
		h.logger.WithFields(log.Fields{
			"request_id": requestID,
			"error":      err.Error(),
			"path":       path,
			"operation":  operation,
		}).Warn("Invalid plan item kind")
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid plan item kind",
		})
	}

	h.logger.WithFields(log.Fields{
		"request_id": requestID,
		"error":      err.Error(),
		"path":       path,
		"operation":  operation,
	}).Error("Unexpected error")

	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error": "An unexpected error occurred",
	})
}

func (h *ErrorHandler) HandleValidationError(c *fiber.Ctx, requestID string, err error, path string) error {
	h.logger.WithFields(log.Fields{
		"request_id": requestID,
		"error":      err.Error(),
		"path":       path,
	}).Warn("Validation failed")

	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"error": "Validation failed: " + err.Error(),
		"code":  "VALIDATION_ERROR",
	})
}

func (h *ErrorHandler) HandleRequestTimeout(c *fiber.Ctx) error {
	return c.Status(fiber.StatusRequestTimeout).JSON(utils.StatusMessage(fiber.StatusRequestTimeout))
}

func (h *ErrorHandler) HandleUnauthorized(c *fiber.Ctx, requestID string, message string) error {
	h.logger.WithFields(log.Fields{
		"request_id": requestID,
		"path":       c.Path(),
		"message":    message,
	}).Warn("Unauthorized access")

	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"error": message,
		"code":  "UNAUTHORIZED",
	})
}

func (h *ErrorHandler) HandleSuccess(c *fiber.Ctx, statusCode int, data interface{}) error {
	if data == nil {
		return c.SendStatus(statusCode)
	}
	return c.Status(statusCode).JSON(data)
}
