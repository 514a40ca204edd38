package handler

import (
	"Pulse/internal/api/dto"
	"Pulse/internal/job"
	"Pulse/internal/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type SyncHandler struct {
	syncJob *job.SyncPipelineJob
}

func NewSyncHandler(syncJob *job.SyncPipelineJob) *SyncHandler {
	return &SyncHandler{
		syncJob: syncJob,
	}
}

// TriggerSync 受理后台同步, 已在跑时返回冲突错误
func (s *SyncHandler) TriggerSync(c *gin.Context) {
	traceID := "sync-" + uuid.NewString()

	if err := s.syncJob.Trigger(traceID); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, &dto.SyncResultDTO{
		Accepted: true,
		TraceID:  traceID,
	})
}
