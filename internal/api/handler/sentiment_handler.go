package handler

import (
	"Pulse/internal/pkg/response"
	"Pulse/internal/service"
	"strconv"

	"github.com/gin-gonic/gin"
)

type SentimentHandler struct {
	sentimentSvc service.SentimentService
}

func NewSentimentHandler(sentimentSvc service.SentimentService) *SentimentHandler {
	return &SentimentHandler{
		sentimentSvc: sentimentSvc,
	}
}

func (s *SentimentHandler) GetStats(c *gin.Context) {
	stats, err := s.sentimentSvc.GetStats(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, stats)
}

func (s *SentimentHandler) ListSpam(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if err != nil || limit <= 0 {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	spam, err := s.sentimentSvc.ListSpam(c.Request.Context(), limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, spam)
}

func (s *SentimentHandler) ListQuestions(c *gin.Context) {
	questions, err := s.sentimentSvc.ListUnansweredQuestions(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, questions)
}
