package handler

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	appErrors "github.com/campusbot/schedule-api/pkg/errors"
	"github.com/campusbot/schedule-api/pkg/response"
)

type tokenIssuer interface {
	Issue(ctx context.Context, userID string) (string, time.Time, error)
	Redeem(ctx context.Context, token string) (string, error)
}

type rosterImporter interface {
	Import(ctx context.Context, userID string, roster io.Reader) (int, error)
}

// ImportHandler exposes the roster upload flow: a token is issued for a
// user, then a registrar CSV export is uploaded against that token.
type ImportHandler struct {
	tokens         tokenIssuer
	imports        rosterImporter
	maxUploadBytes int64
}

// NewImportHandler constructs ImportHandler.
func NewImportHandler(tokens tokenIssuer, imports rosterImporter, maxUploadBytes int64) *ImportHandler {
	return &ImportHandler{tokens: tokens, imports: imports, maxUploadBytes: maxUploadBytes}
}

// IssueToken godoc
// @Summary Issue a single-use roster upload token
// @Tags Imports
// @Accept json
// @Produce json
// @Param payload body handler.IssueTokenRequest true "Token payload"
// @Success 201 {object} response.Envelope
// @Router /imports/tokens [post]
func (h *ImportHandler) IssueToken(c *gin.Context) {
	var req IssueTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	token, expiresAt, err := h.tokens.Issue(c.Request.Context(), req.UserID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, gin.H{"token": token, "expires_at": expiresAt})
}

// IssueTokenRequest describes the token issue payload.
type IssueTokenRequest struct {
	UserID string `json:"user_id" binding:"required"`
}

// Upload godoc
// @Summary Upload a registrar roster CSV
// @Tags Imports
// @Accept mpfd
// @Produce json
// @Param token formData string true "Upload token"
// @Param roster formData file true "Registrar CSV export"
// @Success 200 {object} response.Envelope
// @Router /imports/upload [post]
func (h *ImportHandler) Upload(c *gin.Context) {
	token := c.PostForm("token")
	if token == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "upload token is required"))
		return
	}

	userID, err := h.tokens.Redeem(c.Request.Context(), token)
	if err != nil {
		response.Error(c, err)
		return
	}

	fileHeader, err := c.FormFile("roster")
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "roster file is required"))
		return
	}
	if h.maxUploadBytes > 0 && fileHeader.Size > h.maxUploadBytes {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "roster file too large"))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to open upload"))
		return
	}
	defer file.Close() //nolint:errcheck

	count, err := h.imports.Import(c.Request.Context(), userID, file)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"imported_sections": count})
}
