package api

import (
	"errors"
	"net/http"

	"github.com/Harshit1991/gymbooking/internal/domain"
	"github.com/Harshit1991/gymbooking/internal/service/contact"
	"github.com/gin-gonic/gin"
)

type ContactHandler struct {
	service contact.ContactUseCase
}

func NewContactHandler(service contact.ContactUseCase) *ContactHandler {
	return &ContactHandler{service: service}
}

func (h *ContactHandler) Register(router *gin.Engine) {
	router.POST("/submit", h.submit)
}

func (h *ContactHandler) submit(c *gin.Context) {
	input := contact.SubmitInput{
		Name:    c.PostForm("name"),
		Email:   c.PostForm("email"),
		Number:  c.PostForm("number"),
		Message: c.PostForm("message"),
	}

	created, err := h.service.Submit(c.Request.Context(), input)
	if err != nil {
		if errors.Is(err, domain.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "An error occurred while submitting your message. Please try again."})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"id":      created.ID,
		"name":    created.Name,
		"email":   created.Email,
		"number":  created.Number,
		"message": created.Message,
	})
}
