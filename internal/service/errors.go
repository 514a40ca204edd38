package service

import (
	"errors"
)

const (
	BadRequest          = 400
	NotFound            = 404
	Conflict            = 409
	InternalServerError = 500
)

var (
	ErrParamInvalid       = errors.New("参数错误")
	ErrArticleNotFound    = errors.New("文章不存在")
	ErrSnapshotNotFound   = errors.New("文章暂无快照数据")
	ErrNoViewData         = errors.New("文章暂无浏览数据")
	ErrThemeNotFound      = errors.New("主题不存在")
	ErrThemeCatalogEmpty  = errors.New("主题目录为空")
	ErrScorerUnavailable  = errors.New("情感分析服务不可用")
	ErrSyncRunning        = errors.New("同步任务正在运行中")
	UnExpectedError       = errors.New("系统异常，请稍后重试")
)

var ErrorMap = map[error]int{
	ErrParamInvalid:      BadRequest,
	ErrArticleNotFound:   NotFound,
	ErrSnapshotNotFound:  NotFound,
	ErrNoViewData:        NotFound,
	ErrThemeNotFound:     NotFound,
	ErrThemeCatalogEmpty: NotFound,
	ErrScorerUnavailable: InternalServerError,
	ErrSyncRunning:       Conflict,
	UnExpectedError:      InternalServerError,
}
