// Copyright 2023 ecodeclub
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package gateway

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ecodeclub/emall/internal/payment/internal/domain"
	"github.com/gotomicro/ego/core/elog"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sony/gobreaker"
)

var _ Gateway = (*BreakerGateway)(nil)

type BreakerConfig struct {
	// 半开状态下允许通过的请求数
	MaxRequests uint32
	// 统计窗口
	Interval time.Duration
	// 打开之后多久进入半开
	Timeout time.Duration
	// 至少多少个请求才开始计算失败率
	MinRequests  uint32
	FailureRatio float64
}

func DefaultBreakerConfig() BreakerConfig {
	return BreakerConfig{
		MaxRequests:  3,
		Interval:     15 * time.Second,
		Timeout:      30 * time.Second,
		MinRequests:  3,
		FailureRatio: 0.6,
	}
}

// BreakerGateway 在网关外面套一层熔断器，并且上报调用指标。
// 只有 ErrUnavailable 计入失败，网关明确拒绝的请求不会触发熔断
type BreakerGateway struct {
	name string
	next Gateway
	cb   *gobreaker.CircuitBreaker

	state    *prometheus.GaugeVec
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
	l        *elog.Component
}

func NewBreakerGateway(name string, next Gateway, cfg BreakerConfig, reg prometheus.Registerer) *BreakerGateway {
	b := &BreakerGateway{
		name: name,
		next: next,
		state: register(reg, prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "payment_gateway_breaker_state",
			Help: "Payment gateway circuit breaker state (0=closed, 1=open, 2=half-open)",
		}, []string{"gateway"})),
		requests: register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "payment_gateway_requests_total",
			Help: "Total number of payment gateway calls",
		}, []string{"gateway", "op", "result"})),
		duration: register(reg, prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "payment_gateway_request_duration_seconds",
			Help:    "Payment gateway call duration in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"gateway", "op"})),
		l: elog.DefaultLogger,
	}
	b.cb = gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < cfg.MinRequests {
				return false
			}
			return float64(counts.TotalFailures)/float64(counts.Requests) >= cfg.FailureRatio
		},
		IsSuccessful: func(err error) bool {
			return err == nil || !errors.Is(err, ErrUnavailable)
		},
		OnStateChange: func(cbName string, from gobreaker.State, to gobreaker.State) {
			b.state.WithLabelValues(cbName).Set(stateValue(to))
			b.l.Warn("支付网关熔断器状态变化",
				elog.String("gateway", cbName),
				elog.String("from", from.String()),
				elog.String("to", to.String()))
		},
	})
	b.state.WithLabelValues(name).Set(0)
	return b
}

// register 重复注册时复用已有的 collector，reg 为 nil 时不注册
func register[T prometheus.Collector](reg prometheus.Registerer, c T) T {
	if reg == nil {
		return c
	}
	err := reg.Register(c)
	var are prometheus.AlreadyRegisteredError
	if errors.As(err, &are) {
		if existing, ok := are.ExistingCollector.(T); ok {
			return existing
		}
	}
	return c
}

func (b *BreakerGateway) CreateIntent(ctx context.Context, amount int64, currency, receipt string) (domain.Intent, error) {
	res, err := b.execute("create_intent", func() (any, error) {
		return b.next.CreateIntent(ctx, amount, currency, receipt)
	})
	if err != nil {
		return domain.Intent{}, err
	}
	return res.(domain.Intent), nil
}

func (b *BreakerGateway) FetchOrderPayments(ctx context.Context, orderRef string) ([]domain.GatewayPayment, error) {
	res, err := b.execute("fetch_payments", func() (any, error) {
		return b.next.FetchOrderPayments(ctx, orderRef)
	})
	if err != nil {
		return nil, err
	}
	return res.([]domain.GatewayPayment), nil
}

func (b *BreakerGateway) State() gobreaker.State {
	return b.cb.State()
}

func (b *BreakerGateway) execute(op string, fn func() (any, error)) (any, error) {
	start := time.Now()
	res, err := b.cb.Execute(fn)
	b.duration.WithLabelValues(b.name, op).Observe(time.Since(start).Seconds())
	b.requests.WithLabelValues(b.name, op, result(err)).Inc()
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return nil, fmt.Errorf("%w: 熔断器 %s %w", ErrUnavailable, b.name, err)
	}
	return res, err
}

func result(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		return "rejected_by_breaker"
	case errors.Is(err, ErrRejected):
		return "rejected"
	default:
		return "error"
	}
}

func stateValue(s gobreaker.State) float64 {
	switch s {
	case gobreaker.StateOpen:
		return 1
	case gobreaker.StateHalfOpen:
		return 2
	default:
		return 0
	}
}
