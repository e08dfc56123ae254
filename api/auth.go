package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/Harshit1991/gymbooking/internal/domain"
	"github.com/Harshit1991/gymbooking/internal/service/auth"
	"github.com/Harshit1991/gymbooking/internal/service/booking"
	"github.com/Harshit1991/gymbooking/internal/service/contact"
	"github.com/gin-gonic/gin"
)

const sessionCookie = "session_token"

type AuthHandler struct {
	auth       auth.AuthUseCase
	bookings   booking.BookingUseCase
	contacts   contact.ContactUseCase
	sessionTTL time.Duration
}

func NewAuthHandler(authSvc auth.AuthUseCase, bookings booking.BookingUseCase, contacts contact.ContactUseCase, sessionTTL time.Duration) *AuthHandler {
	return &AuthHandler{auth: authSvc, bookings: bookings, contacts: contacts, sessionTTL: sessionTTL}
}

func (h *AuthHandler) Register(router *gin.Engine) {
	router.GET("/login", h.loginPage)
	router.POST("/login", h.login)
	router.GET("/logout", h.logout)
	router.GET("/update_password", h.updatePasswordPage)
	router.POST("/update_password", h.updatePassword)

	gated := router.Group("/", RequireAdmin(h.auth))
	gated.GET("/admin", h.admin)
	gated.GET("/delete/:record_type/:id", h.deletePreview)
	gated.POST("/delete/:record_type/:id", h.delete)
}

func (h *AuthHandler) loginPage(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "POST email and password to log in"})
}

func (h *AuthHandler) login(c *gin.Context) {
	email := c.PostForm("email")
	password := c.PostForm("password")

	token, err := h.auth.Login(c.Request.Context(), email, password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "An error occurred during login. Please try again."})
		return
	}

	c.SetCookie(sessionCookie, token, int(h.sessionTTL.Seconds()), "/", "", false, true)
	c.Redirect(http.StatusFound, "/admin")
}

func (h *AuthHandler) logout(c *gin.Context) {
	if token, err := c.Cookie(sessionCookie); err == nil {
		_ = h.auth.Logout(c.Request.Context(), token)
	}
	c.SetCookie(sessionCookie, "", -1, "/", "", false, true)
	c.Redirect(http.StatusFound, "/login")
}

func (h *AuthHandler) updatePasswordPage(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "POST email, current_password, new_password and confirm_password"})
}

func (h *AuthHandler) updatePassword(c *gin.Context) {
	input := auth.UpdatePasswordInput{
		Email:           c.PostForm("email"),
		CurrentPassword: c.PostForm("current_password"),
		NewPassword:     c.PostForm("new_password"),
		ConfirmPassword: c.PostForm("confirm_password"),
	}

	if err := h.auth.UpdatePassword(c.Request.Context(), input); err != nil {
		switch {
		case errors.Is(err, auth.ErrEmailNotFound),
			errors.Is(err, auth.ErrWrongPassword),
			errors.Is(err, auth.ErrPasswordMismatch):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "An error occurred while updating your password. Please try again."})
		}
		return
	}

	c.Redirect(http.StatusFound, "/login")
}

func (h *AuthHandler) admin(c *gin.Context) {
	contacts, err := h.contacts.ListContacts(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "An error occurred while loading the admin page."})
		return
	}
	bookings, err := h.bookings.ListBookings(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "An error occurred while loading the admin page."})
		return
	}

	c.JSON(http.StatusOK, gin.H{"contacts": contacts, "bookings": bookings})
}

func (h *AuthHandler) deletePreview(c *gin.Context) {
	recordType, id, ok := h.deleteTarget(c)
	if !ok {
		return
	}

	var record interface{}
	var err error
	switch recordType {
	case "contact":
		record, err = h.contacts.GetContact(c.Request.Context(), id)
	case "booking":
		record, err = h.bookings.GetBooking(c.Request.Context(), id)
	}
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "record not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "An error occurred while loading the record."})
		return
	}

	c.JSON(http.StatusOK, gin.H{"record_type": recordType, "record": record})
}

func (h *AuthHandler) delete(c *gin.Context) {
	recordType, id, ok := h.deleteTarget(c)
	if !ok {
		return
	}

	var err error
	switch recordType {
	case "contact":
		err = h.contacts.DeleteContact(c.Request.Context(), id)
	case "booking":
		err = h.bookings.DeleteBooking(c.Request.Context(), id)
	}
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "record not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "delete failed"})
		return
	}

	c.Redirect(http.StatusFound, "/admin")
}

// deleteTarget validates the record type and id; anything but contact or
// booking is a 404.
func (h *AuthHandler) deleteTarget(c *gin.Context) (string, int64, bool) {
	recordType := c.Param("record_type")
	if recordType != "contact" && recordType != "booking" {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown record type"})
		return "", 0, false
	}
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "invalid id"})
		return "", 0, false
	}
	return recordType, id, true
}
