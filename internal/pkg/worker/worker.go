package worker

import (
	"context"
	"time"

	"zoomies/pkg/logger"

	"go.uber.org/zap"
)

// ActivityTask 社区活跃度更新任务
type ActivityTask struct {
	UserID      string
	CommunityID string
}

// ActivityToucher 活跃度写入接口，由 community 仓储实现
type ActivityToucher interface {
	TouchActivity(ctx context.Context, userID, communityID string) error
}

// ActivityPool 活跃度异步写入池
// 发帖等动作只负责投递任务，写入失败仅记录日志，不重试也不影响主流程
type ActivityPool struct {
	TaskQueue chan ActivityTask
	Toucher   ActivityToucher
	WorkerNum int
}

func NewActivityPool(toucher ActivityToucher, workerNum int, bufferSize int) *ActivityPool {
	if workerNum <= 0 {
		workerNum = 4
	}
	if bufferSize <= 0 {
		bufferSize = 1024
	}
	return &ActivityPool{
		TaskQueue: make(chan ActivityTask, bufferSize),
		Toucher:   toucher,
		WorkerNum: workerNum,
	}
}

func (p *ActivityPool) Start() {
	for i := 0; i < p.WorkerNum; i++ {
		go p.worker(i)
	}
	logger.Log.Info("Activity worker pool started", zap.Int("workers", p.WorkerNum))
}

// Stop 关闭任务队列，队列中剩余任务会被 worker 消费完
func (p *ActivityPool) Stop() {
	close(p.TaskQueue)
}

func (p *ActivityPool) worker(id int) {
	for task := range p.TaskQueue {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
		if err := p.Toucher.TouchActivity(ctx, task.UserID, task.CommunityID); err != nil {
			logger.Log.Warn("Failed to touch community activity",
				zap.Int("worker", id),
				zap.String("user_id", task.UserID),
				zap.String("community_id", task.CommunityID),
				zap.Error(err),
			)
		}
		cancel()
	}
}

// AddTask 投递任务，队列满时直接丢弃并记录日志
func (p *ActivityPool) AddTask(task ActivityTask) {
	select {
	case p.TaskQueue <- task:
	default:
		logger.Log.Warn("Activity queue full, dropping task",
			zap.String("user_id", task.UserID),
			zap.String("community_id", task.CommunityID),
		)
	}
}
