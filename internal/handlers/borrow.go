package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rushikeshdhande/Library-Management-System/internal/apperr"
	"github.com/rushikeshdhande/Library-Management-System/internal/store"
)

type BorrowHandler struct {
	Borrows store.BorrowStore
}

func NewBorrowHandler(borrows store.BorrowStore) *BorrowHandler {
	return &BorrowHandler{Borrows: borrows}
}

// MyBorrowedBooks returns the caller's borrow records newest first, plus
// the borrowed/returned split the dashboard chart renders.
func (h *BorrowHandler) MyBorrowedBooks(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		fail(c, apperr.Unauthorized("Session is invalid or has expired."))
		return
	}

	borrows, err := h.Borrows.ListByUser(c.Request.Context(), userID)
	if err != nil {
		fail(c, apperr.Internal("Internal server error."))
		return
	}

	var borrowed, returned int
	for _, b := range borrows {
		if b.Returned {
			returned++
		} else {
			borrowed++
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"success":       true,
		"borrowedBooks": borrows,
		"totals": gin.H{
			"borrowed": borrowed,
			"returned": returned,
		},
	})
}
