package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pixelgrove/storefront/internal/application"
	"github.com/pixelgrove/storefront/pkg/response"
	"github.com/pixelgrove/storefront/pkg/validation"
)

type CommentHandler struct {
	Comments *application.CommentService
}

func NewCommentHandler(comments *application.CommentService) *CommentHandler {
	return &CommentHandler{Comments: comments}
}

type commentRequest struct {
	Text string `json:"text" binding:"required,min=1,max=2000"`
}

func commentErrorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, application.ErrProductNotFound):
		return http.StatusNotFound, "product not found"
	case errors.Is(err, application.ErrCommentNotFound):
		return http.StatusNotFound, "comment not found"
	case errors.Is(err, application.ErrNotCommentAuthor):
		return http.StatusForbidden, "comment belongs to another user"
	case errors.Is(err, application.ErrEmptyText):
		return http.StatusBadRequest, "text must not be empty"
	default:
		return http.StatusInternalServerError, "comment operation failed"
	}
}

// commentParams validates the product and comment route IDs together.
func commentParams(c *gin.Context) (productID, commentID string, ok bool) {
	productID, ok = uuidParam(c, "id")
	if !ok {
		return "", "", false
	}
	commentID, ok = uuidParam(c, "commentId")
	if !ok {
		return "", "", false
	}
	return productID, commentID, true
}

func (h *CommentHandler) List(c *gin.Context) {
	productID, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	comments, err := h.Comments.List(c.Request.Context(), productID)
	if err != nil {
		status, msg := commentErrorStatus(err)
		response.Error[any](c, status, msg, nil)
		return
	}
	response.Success(c, http.StatusOK, toCommentDTOs(comments), "comments", gin.H{"count": len(comments)})
}

// Create posts a top-level comment. The author is the authenticated caller;
// nothing in the body can claim a different identity.
func (h *CommentHandler) Create(c *gin.Context) {
	productID, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	var req commentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid request", validation.ToDetails(err))
		return
	}

	comment, err := h.Comments.Create(c.Request.Context(), productID, c.GetString("userID"), c.GetString("userName"), req.Text)
	if err != nil {
		status, msg := commentErrorStatus(err)
		response.Error[any](c, status, msg, nil)
		return
	}
	response.Success(c, http.StatusCreated, toCommentDTO(*comment), "comment created", nil)
}

func (h *CommentHandler) Edit(c *gin.Context) {
	productID, commentID, ok := commentParams(c)
	if !ok {
		return
	}
	var req commentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid request", validation.ToDetails(err))
		return
	}

	comment, err := h.Comments.Edit(c.Request.Context(), productID, commentID, c.GetString("userID"), req.Text)
	if err != nil {
		status, msg := commentErrorStatus(err)
		response.Error[any](c, status, msg, nil)
		return
	}
	response.Success(c, http.StatusOK, toCommentDTO(*comment), "comment updated", nil)
}

func (h *CommentHandler) Delete(c *gin.Context) {
	productID, commentID, ok := commentParams(c)
	if !ok {
		return
	}
	err := h.Comments.Delete(c.Request.Context(), productID, commentID, c.GetString("userID"))
	if err != nil {
		status, msg := commentErrorStatus(err)
		response.Error[any](c, status, msg, nil)
		return
	}
	response.Success[any](c, http.StatusOK, nil, "comment deleted", nil)
}

func (h *CommentHandler) Like(c *gin.Context) {
	productID, commentID, ok := commentParams(c)
	if !ok {
		return
	}
	comment, err := h.Comments.Like(c.Request.Context(), productID, commentID, c.GetString("userID"))
	if err != nil {
		status, msg := commentErrorStatus(err)
		response.Error[any](c, status, msg, nil)
		return
	}
	response.Success(c, http.StatusOK, toCommentDTO(*comment), "comment liked", nil)
}

func (h *CommentHandler) Reply(c *gin.Context) {
	productID, commentID, ok := commentParams(c)
	if !ok {
		return
	}
	var req commentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid request", validation.ToDetails(err))
		return
	}

	reply, err := h.Comments.Reply(c.Request.Context(), productID, commentID, c.GetString("userID"), c.GetString("userName"), req.Text)
	if err != nil {
		status, msg := commentErrorStatus(err)
		response.Error[any](c, status, msg, nil)
		return
	}
	response.Success(c, http.StatusCreated, toReplyDTO(*reply), "reply created", nil)
}
