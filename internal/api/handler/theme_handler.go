package handler

import (
	"Pulse/internal/pkg/response"
	"Pulse/internal/service"
	"strconv"

	"github.com/gin-gonic/gin"
)

type ThemeHandler struct {
	themeSvc service.ThemeService
}

func NewThemeHandler(themeSvc service.ThemeService) *ThemeHandler {
	return &ThemeHandler{
		themeSvc: themeSvc,
	}
}

func (s *ThemeHandler) GetReport(c *gin.Context) {
	report, err := s.themeSvc.GetThemeReport(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, report)
}

func (s *ThemeHandler) ClassifyArticle(c *gin.Context) {
	articleID, err := strconv.ParseUint(c.Param("article_id"), 10, 64)
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	result, err := s.themeSvc.ClassifyArticle(c.Request.Context(), articleID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

func (s *ThemeHandler) FindSimilar(c *gin.Context) {
	articleID, err := strconv.ParseUint(c.Param("article_id"), 10, 64)
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "5"))
	if err != nil || limit <= 0 {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	items, err := s.themeSvc.FindSimilar(c.Request.Context(), articleID, limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, items)
}

func (s *ThemeHandler) ClassifyAll(c *gin.Context) {
	result, err := s.themeSvc.ClassifyAll(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}
