package http

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"share-platform/pkg/apperr"
	"share-platform/pkg/logger"
	"share-platform/pkg/middleware"
	"share-platform/pkg/response"
	"share-platform/services/user/internal/entity"
	"share-platform/services/user/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type UserHandler struct {
	userUseCase usecase.UserUseCase
	logger      *logger.Logger
}

func NewUserHandler(userUseCase usecase.UserUseCase, logger *logger.Logger) *UserHandler {
	return &UserHandler{
		userUseCase: userUseCase,
		logger:      logger,
	}
}

type LoginRequest struct {
	Phone    string `json:"phone" binding:"required,max=20"`
	Password string `json:"password" binding:"required,max=72"`
}

type LoginResponse struct {
	User  *entity.Account `json:"user"`
	Token string          `json:"token"`
}

type UpdateBonusRequest struct {
	UserID      int64  `json:"userId" binding:"required"`
	Bonus       int    `json:"bonus"`
	Event       string `json:"event"`
	Description string `json:"description"`
	RequestKey  string `json:"requestKey" binding:"max=128"`
}

type UpdateBonusResponse struct {
	Account *entity.Account `json:"account"`
	Applied bool            `json:"applied"`
}

// Register godoc
// @Summary      Register a new account
// @Description  Creates an account with the default nickname, avatar and 100 bonus points
// @Tags         user
// @Accept       json
// @Produce      json
// @Param        request body LoginRequest true "Phone and password"
// @Success      200  {object}  response.CommonResp{data=int64}
// @Failure      400  {object}  response.CommonResp
// @Failure      409  {object}  response.CommonResp
// @Router       /user/register [post]
func (h *UserHandler) Register(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err)
		return
	}

	id, err := h.userUseCase.Register(c.Request.Context(), req.Phone, req.Password)
	if err != nil {
		response.Fail(c, h.logger, err)
		return
	}

	response.OK(c, id)
}

// Login godoc
// @Summary      Login
// @Description  Checks the password and returns the account with a signed token
// @Tags         user
// @Accept       json
// @Produce      json
// @Param        request body LoginRequest true "Phone and password"
// @Success      200  {object}  response.CommonResp{data=LoginResponse}
// @Failure      401  {object}  response.CommonResp
// @Failure      404  {object}  response.CommonResp
// @Router       /user/login [post]
func (h *UserHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err)
		return
	}

	account, token, err := h.userUseCase.Login(c.Request.Context(), req.Phone, req.Password)
	if err != nil {
		response.Fail(c, h.logger, err)
		return
	}

	response.OK(c, LoginResponse{User: account, Token: token})
}

// Count godoc
// @Summary      Number of accounts
// @Tags         user
// @Produce      json
// @Success      200  {object}  response.CommonResp{data=int64}
// @Router       /user/count [get]
func (h *UserHandler) Count(c *gin.Context) {
	count, err := h.userUseCase.Count(c.Request.Context())
	if err != nil {
		response.Fail(c, h.logger, err)
		return
	}

	response.OK(c, count)
}

// GetUser godoc
// @Summary      Get account by ID
// @Description  Account snapshot including the current bonus balance
// @Tags         user
// @Produce      json
// @Param        id path int true "Account ID"
// @Success      200  {object}  response.CommonResp{data=entity.Account}
// @Failure      404  {object}  response.CommonResp
// @Router       /user/{id} [get]
func (h *UserHandler) GetUser(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, fmt.Errorf("invalid account id %q", c.Param("id")))
		return
	}

	account, err := h.userUseCase.GetAccount(c.Request.Context(), id)
	if err != nil {
		response.Fail(c, h.logger, err)
		return
	}

	response.OK(c, account)
}

// UpdateBonus godoc
// @Summary      Adjust an account's bonus balance
// @Description  Adds bonus (negative to debit) and appends a ledger event. A repeated requestKey is not applied twice.
// @Tags         user
// @Accept       json
// @Produce      json
// @Param        request body UpdateBonusRequest true "Adjustment"
// @Success      200  {object}  response.CommonResp{data=UpdateBonusResponse}
// @Failure      400  {object}  response.CommonResp
// @Failure      404  {object}  response.CommonResp
// @Router       /user/updateBonus [post]
func (h *UserHandler) UpdateBonus(c *gin.Context) {
	var req UpdateBonusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err)
		return
	}

	account, applied, err := h.userUseCase.AdjustBalance(c.Request.Context(), usecase.AdjustBalanceInput{
		UserID:      req.UserID,
		Delta:       req.Bonus,
		Event:       entity.BonusEventType(strings.ToUpper(req.Event)),
		Description: req.Description,
		RequestKey:  req.RequestKey,
	})
	if err != nil {
		response.Fail(c, h.logger, err)
		return
	}

	response.OK(c, UpdateBonusResponse{Account: account, Applied: applied})
}

// BonusLogs godoc
// @Summary      Current account's bonus ledger
// @Tags         user
// @Produce      json
// @Security     BearerAuth
// @Param        pageNo   query int false "Page number" default(1)
// @Param        pageSize query int false "Page size" default(10)
// @Success      200  {object}  response.CommonResp{data=[]entity.BonusEvent}
// @Failure      401  {object}  response.CommonResp
// @Router       /user/bonusLogs [get]
func (h *UserHandler) BonusLogs(c *gin.Context) {
	pageNo, _ := strconv.Atoi(c.DefaultQuery("pageNo", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("pageSize", "10"))

	events, err := h.userUseCase.ListBonusEvents(c.Request.Context(), middleware.UserID(c), pageNo, pageSize)
	if err != nil {
		response.Fail(c, h.logger, err)
		return
	}

	response.OK(c, events)
}

// BonusEvent godoc
// @Summary      Look up a ledger event by request key
// @Tags         user
// @Produce      json
// @Param        requestKey query string true "Request key"
// @Success      200  {object}  response.CommonResp{data=entity.BonusEvent}
// @Failure      404  {object}  response.CommonResp
// @Router       /user/bonusEvent [get]
func (h *UserHandler) BonusEvent(c *gin.Context) {
	event, err := h.userUseCase.FindBonusEvent(c.Request.Context(), c.Query("requestKey"))
	if err != nil {
		response.Fail(c, h.logger, err)
		return
	}

	response.OK(c, event)
}

// UploadAvatar godoc
// @Summary      Upload avatar
// @Tags         user
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        avatar formData file true "Avatar image file"
// @Success      200  {object}  response.CommonResp{data=entity.Account}
// @Failure      400  {object}  response.CommonResp
// @Failure      401  {object}  response.CommonResp
// @Router       /user/avatar [post]
func (h *UserHandler) UploadAvatar(c *gin.Context) {
	userID := middleware.UserID(c)

	file, err := c.FormFile("avatar")
	if err != nil {
		response.BadRequest(c, fmt.Errorf("avatar file is required"))
		return
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if ext != ".jpg" && ext != ".jpeg" && ext != ".png" && ext != ".gif" {
		response.Fail(c, h.logger, fmt.Errorf("only jpg, jpeg, png, gif are allowed: %w", apperr.ErrValidation))
		return
	}

	src, err := file.Open()
	if err != nil {
		response.Fail(c, h.logger, fmt.Errorf("failed to open upload: %w", err))
		return
	}
	defer src.Close()

	fileKey := fmt.Sprintf("avatars/%d/%s%s", userID, uuid.New().String(), ext)
	contentType := file.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "image/jpeg"
	}

	account, err := h.userUseCase.UploadAvatar(c.Request.Context(), userID, src, fileKey, contentType)
	if err != nil {
		response.Fail(c, h.logger, err)
		return
	}

	response.OK(c, account)
}
