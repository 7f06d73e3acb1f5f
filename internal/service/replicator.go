package service

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/d60-Lab/cinesocial/internal/repository"
	"github.com/d60-Lab/cinesocial/pkg/logger"
)

type replicateAction int

const (
	actionAdd replicateAction = iota + 1
	actionRemove
)

func (a replicateAction) String() string {
	if a == actionAdd {
		return "add"
	}
	return "remove"
}

type replicateJob struct {
	action replicateAction
	userID int64
	fanID  int64
}

// FanReplicator 本地异步冗余执行器：关注表写成功后异步维护粉丝表。
// 同一 userID 的任务固定落在同一个 worker 上，按入队顺序执行。
type FanReplicator struct {
	followRepo repository.FollowRepository
	fanRepo    repository.FanRepository
	shards     []chan replicateJob
}

func NewFanReplicator(followRepo repository.FollowRepository, fanRepo repository.FanRepository, workers, queueSize int) *FanReplicator {
	if workers <= 0 {
		workers = 4
	}
	if queueSize <= 0 {
		queueSize = 10000
	}
	perShard := queueSize / workers
	if perShard < 1 {
		perShard = 1
	}
	shards := make([]chan replicateJob, workers)
	for i := range shards {
		shards[i] = make(chan replicateJob, perShard)
	}
	return &FanReplicator{followRepo: followRepo, fanRepo: fanRepo, shards: shards}
}

// Start 每个分片启动一个消费者，返回的 stop 函数会处理完队列中剩余的任务再返回
func (r *FanReplicator) Start() func(context.Context) error {
	stopCh := make(chan struct{})
	var wg sync.WaitGroup
	for _, ch := range r.shards {
		wg.Add(1)
		go func(ch chan replicateJob) {
			defer wg.Done()
			for {
				select {
				case job := <-ch:
					r.apply(job)
				case <-stopCh:
					r.drain(ch)
					return
				}
			}
		}(ch)
	}
	var once sync.Once
	return func(ctx context.Context) error {
		once.Do(func() { close(stopCh) })
		done := make(chan struct{})
		go func() {
			wg.Wait()
			close(done)
		}()
		select {
		case <-done:
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

func (r *FanReplicator) drain(ch chan replicateJob) {
	for {
		select {
		case job := <-ch:
			r.apply(job)
		default:
			return
		}
	}
}

// apply 以关注表为准收敛粉丝表：关系存在则补行，不存在则删行
func (r *FanReplicator) apply(job replicateJob) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	following, err := r.followRepo.Exists(ctx, job.fanID, job.userID)
	if err == nil {
		if following {
			err = r.fanRepo.Create(ctx, job.userID, job.fanID)
		} else {
			err = r.fanRepo.Delete(ctx, job.userID, job.fanID)
		}
	}
	if err != nil {
		logger.Warn("replicate fan failed",
			zap.Stringer("action", job.action),
			zap.Int64("user", job.userID),
			zap.Int64("fan", job.fanID),
			zap.Error(err))
	}
}

func (r *FanReplicator) EnqueueAdd(userID, fanID int64) {
	r.enqueue(replicateJob{action: actionAdd, userID: userID, fanID: fanID})
}

func (r *FanReplicator) EnqueueRemove(userID, fanID int64) {
	r.enqueue(replicateJob{action: actionRemove, userID: userID, fanID: fanID})
}

func (r *FanReplicator) shard(userID int64) chan replicateJob {
	return r.shards[uint64(userID)%uint64(len(r.shards))]
}

func (r *FanReplicator) enqueue(job replicateJob) {
	select {
	case r.shard(job.userID) <- job:
	default:
		logger.Warn("replicator queue full, drop job",
			zap.Stringer("action", job.action),
			zap.Int64("user", job.userID),
			zap.Int64("fan", job.fanID))
	}
}

// QueueLen 返回各分片当前队列长度之和（采样值）。
func (r *FanReplicator) QueueLen() int {
	n := 0
	for _, ch := range r.shards {
		n += len(ch)
	}
	return n
}
