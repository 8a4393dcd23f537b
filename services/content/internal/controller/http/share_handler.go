package http

import (
	"fmt"
	"strconv"

	"share-platform/pkg/logger"
	"share-platform/pkg/middleware"
	"share-platform/pkg/response"
	"share-platform/services/content/internal/entity"
	"share-platform/services/content/internal/usecase"

	"github.com/gin-gonic/gin"
)

type ShareHandler struct {
	shareUseCase usecase.ShareUseCase
	logger       *logger.Logger
}

func NewShareHandler(shareUseCase usecase.ShareUseCase, logger *logger.Logger) *ShareHandler {
	return &ShareHandler{
		shareUseCase: shareUseCase,
		logger:       logger,
	}
}

type ExchangeRequest struct {
	ShareID int64 `json:"shareId" binding:"required"`
}

type ContributeRequest struct {
	Title       string `json:"title" binding:"required,max=255"`
	IsOriginal  bool   `json:"isOriginal"`
	Author      string `json:"author" binding:"max=64"`
	Cover       string `json:"cover" binding:"max=500"`
	Summary     string `json:"summary"`
	Price       int    `json:"price" binding:"min=0"`
	DownloadURL string `json:"downloadUrl" binding:"required,max=500"`
}

type AuditRequest struct {
	AuditStatus string `json:"auditStatus" binding:"required,oneof=PASS REJECT"`
	Reason      string `json:"reason" binding:"max=255"`
	ShowFlag    *bool  `json:"showFlag"`
}

func pageParams(c *gin.Context) (int, int) {
	pageNo, err := strconv.Atoi(c.DefaultQuery("pageNo", "1"))
	if err != nil {
		pageNo = 1
	}
	pageSize, err := strconv.Atoi(c.DefaultQuery("pageSize", "3"))
	if err != nil {
		pageSize = 3
	}
	return pageNo, pageSize
}

// Notice godoc
// @Summary      Latest notice
// @Tags         share
// @Produce      json
// @Success      200  {object}  response.CommonResp{data=entity.Notice}
// @Failure      404  {object}  response.CommonResp
// @Router       /share/notice [get]
func (h *ShareHandler) Notice(c *gin.Context) {
	notice, err := h.shareUseCase.LatestNotice(c.Request.Context())
	if err != nil {
		response.Fail(c, h.logger, err)
		return
	}

	response.OK(c, notice)
}

// List godoc
// @Summary      Browse shares
// @Description  Approved, visible shares, newest first. The download URL is only present for shares the caller has unlocked.
// @Tags         share
// @Produce      json
// @Param        title    query  string false "Title contains (case-insensitive)"
// @Param        pageNo   query  int    false "Page number" default(1)
// @Param        pageSize query  int    false "Page size, at most 50" default(3)
// @Param        token    header string false "Token or no-token"
// @Success      200  {object}  response.CommonResp{data=[]entity.Share}
// @Router       /share/list [get]
func (h *ShareHandler) List(c *gin.Context) {
	pageNo, pageSize := pageParams(c)

	shares, err := h.shareUseCase.List(c.Request.Context(), c.Query("title"), pageNo, pageSize, middleware.UserID(c))
	if err != nil {
		response.Fail(c, h.logger, err)
		return
	}

	response.OK(c, shares)
}

// Get godoc
// @Summary      Share detail
// @Description  Share with its contributor's nickname and avatar
// @Tags         share
// @Produce      json
// @Param        id    path   int    true  "Share ID"
// @Param        token header string false "Token or no-token"
// @Success      200  {object}  response.CommonResp{data=entity.ShareDetail}
// @Failure      404  {object}  response.CommonResp
// @Failure      502  {object}  response.CommonResp
// @Router       /share/{id} [get]
func (h *ShareHandler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, fmt.Errorf("invalid share id %q", c.Param("id")))
		return
	}

	detail, err := h.shareUseCase.Get(c.Request.Context(), id, middleware.UserID(c))
	if err != nil {
		response.Fail(c, h.logger, err)
		return
	}

	response.OK(c, detail)
}

// Exchange godoc
// @Summary      Exchange bonus points for a share
// @Description  Debits the share's price once and unlocks its download URL. Repeating the call returns the share without charging again.
// @Tags         share
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body ExchangeRequest true "Share to unlock"
// @Success      200  {object}  response.CommonResp{data=entity.Share}
// @Failure      400  {object}  response.CommonResp
// @Failure      404  {object}  response.CommonResp
// @Failure      502  {object}  response.CommonResp
// @Router       /share/exchange [post]
func (h *ShareHandler) Exchange(c *gin.Context) {
	var req ExchangeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err)
		return
	}

	share, err := h.shareUseCase.Exchange(c.Request.Context(), middleware.UserID(c), req.ShareID)
	if err != nil {
		response.Fail(c, h.logger, err)
		return
	}

	response.OK(c, share)
}

// Contribute godoc
// @Summary      Contribute a share
// @Description  The share waits for moderation before it is listed
// @Tags         share
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body ContributeRequest true "Share"
// @Success      200  {object}  response.CommonResp{data=entity.Share}
// @Failure      400  {object}  response.CommonResp
// @Router       /share/contribute [post]
func (h *ShareHandler) Contribute(c *gin.Context) {
	var req ContributeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err)
		return
	}

	share, err := h.shareUseCase.Contribute(c.Request.Context(), middleware.UserID(c), usecase.ContributeInput{
		Title:       req.Title,
		IsOriginal:  req.IsOriginal,
		Author:      req.Author,
		Cover:       req.Cover,
		Summary:     req.Summary,
		Price:       req.Price,
		DownloadURL: req.DownloadURL,
	})
	if err != nil {
		response.Fail(c, h.logger, err)
		return
	}

	response.OK(c, share)
}

// MyContribute godoc
// @Summary      Caller's contributions
// @Tags         share
// @Produce      json
// @Security     BearerAuth
// @Param        pageNo   query int false "Page number" default(1)
// @Param        pageSize query int false "Page size" default(3)
// @Success      200  {object}  response.CommonResp{data=[]entity.Share}
// @Router       /share/myContribute [get]
func (h *ShareHandler) MyContribute(c *gin.Context) {
	pageNo, pageSize := pageParams(c)

	shares, err := h.shareUseCase.MyContribute(c.Request.Context(), middleware.UserID(c), pageNo, pageSize)
	if err != nil {
		response.Fail(c, h.logger, err)
		return
	}

	response.OK(c, shares)
}

// Pending godoc
// @Summary      Shares waiting for moderation
// @Tags         share-admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response.CommonResp{data=[]entity.Share}
// @Router       /share/admin/list [get]
func (h *ShareHandler) Pending(c *gin.Context) {
	shares, err := h.shareUseCase.Pending(c.Request.Context())
	if err != nil {
		response.Fail(c, h.logger, err)
		return
	}

	response.OK(c, shares)
}

// Audit godoc
// @Summary      Moderate a share
// @Tags         share-admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id      path int          true "Share ID"
// @Param        request body AuditRequest true "Decision"
// @Success      200  {object}  response.CommonResp{data=entity.Share}
// @Failure      400  {object}  response.CommonResp
// @Failure      404  {object}  response.CommonResp
// @Router       /share/admin/audit/{id} [post]
func (h *ShareHandler) Audit(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, fmt.Errorf("invalid share id %q", c.Param("id")))
		return
	}

	var req AuditRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err)
		return
	}

	share, err := h.shareUseCase.Audit(c.Request.Context(), id, usecase.AuditInput{
		Status:   entity.AuditStatus(req.AuditStatus),
		Reason:   req.Reason,
		ShowFlag: req.ShowFlag,
	})
	if err != nil {
		response.Fail(c, h.logger, err)
		return
	}

	response.OK(c, share)
}
