// Package saga 按顺序执行一组本地步骤，某步失败时逆序执行已完成步骤的补偿
//
// 用于跨存储的写操作（如数据库+对象存储），这类操作无法放进同一个数据库事务。
//
//	s := saga.NewSaga(10*time.Second, log)
//	s.AddStep("创建图书", createBook, deleteBook)
//	s.AddStep("保存封面", saveCover, deleteCover)
//	err := s.Execute(ctx)
package saga

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// Step Saga中的一个步骤
// Action和Compensate都可以为nil，补偿操作应当幂等
type Step struct {
	Name       string
	Action     func(ctx context.Context) error
	Compensate func(ctx context.Context) error
}

// Saga 一次Saga执行，不可复用
type Saga struct {
	steps    []Step
	executed []Step
	timeout  time.Duration
	logger   *zap.Logger
}

// NewSaga 创建Saga，timeout<=0表示不限制整体时长，logger为nil时不记录补偿失败
func NewSaga(timeout time.Duration, logger *zap.Logger) *Saga {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Saga{
		steps:   make([]Step, 0, 4),
		timeout: timeout,
		logger:  logger,
	}
}

// AddStep 添加步骤，按添加顺序执行、逆序补偿
func (s *Saga) AddStep(name string, action, compensate func(ctx context.Context) error) {
	s.steps = append(s.steps, Step{
		Name:       name,
		Action:     action,
		Compensate: compensate,
	})
}

// Execute 执行所有步骤
// 1. 某步失败或整体超时时，逆序补偿已完成的步骤
// 2. 返回的错误包装了失败步骤的原始错误，可用errors.Is/As判断
// 3. 补偿使用不带取消的context，避免补偿也因超时中断
func (s *Saga) Execute(ctx context.Context) error {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	for _, step := range s.steps {
		if err := ctx.Err(); err != nil {
			s.compensate(context.WithoutCancel(ctx))
			return fmt.Errorf("saga超时: %w", err)
		}

		if step.Action != nil {
			if err := step.Action(ctx); err != nil {
				s.compensate(context.WithoutCancel(ctx))
				return fmt.Errorf("步骤[%s]执行失败: %w", step.Name, err)
			}
		}
		s.executed = append(s.executed, step)
	}
	return nil
}

// compensate 逆序补偿，单个补偿失败只记日志并继续
func (s *Saga) compensate(ctx context.Context) {
	for i := len(s.executed) - 1; i >= 0; i-- {
		step := s.executed[i]
		if step.Compensate == nil {
			continue
		}
		if err := step.Compensate(ctx); err != nil {
			s.logger.Error("补偿失败，需人工处理",
				zap.String("step", step.Name),
				zap.Error(err),
			)
		}
	}
	s.executed = nil
}
