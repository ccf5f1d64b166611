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

package gateway_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/ecodeclub/emall/internal/payment/internal/domain"
	"github.com/ecodeclub/emall/internal/payment/internal/gateway"
	gatewaymocks "github.com/ecodeclub/emall/internal/payment/internal/gateway/mocks"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sony/gobreaker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestBreakerGateway(t *testing.T) {
	cfg := gateway.BreakerConfig{
		MaxRequests:  1,
		Interval:     time.Minute,
		Timeout:      time.Minute,
		MinRequests:  3,
		FailureRatio: 0.6,
	}
	unavailable := fmt.Errorf("%w: status=502", gateway.ErrUnavailable)
	rejected := fmt.Errorf("%w: status=400", gateway.ErrRejected)

	t.Run("网关不可用时熔断", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		next := gatewaymocks.NewMockGateway(ctrl)
		next.EXPECT().CreateIntent(gomock.Any(), int64(100), "INR", "ORD-1001").
			Return(domain.Intent{}, unavailable).Times(3)
		b := gateway.NewBreakerGateway("razorpay", next, cfg, prometheus.NewRegistry())

		for i := 0; i < 3; i++ {
			_, err := b.CreateIntent(context.Background(), 100, "INR", "ORD-1001")
			assert.ErrorIs(t, err, gateway.ErrUnavailable)
		}
		assert.Equal(t, gobreaker.StateOpen, b.State())

		// 打开之后不再调用下游
		_, err := b.CreateIntent(context.Background(), 100, "INR", "ORD-1001")
		assert.ErrorIs(t, err, gateway.ErrUnavailable)
		assert.ErrorIs(t, err, gobreaker.ErrOpenState)
	})

	t.Run("网关拒绝不触发熔断", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		next := gatewaymocks.NewMockGateway(ctrl)
		next.EXPECT().FetchOrderPayments(gomock.Any(), "order_1").
			Return(nil, rejected).Times(5)
		b := gateway.NewBreakerGateway("razorpay", next, cfg, nil)

		for i := 0; i < 5; i++ {
			_, err := b.FetchOrderPayments(context.Background(), "order_1")
			assert.ErrorIs(t, err, gateway.ErrRejected)
		}
		assert.Equal(t, gobreaker.StateClosed, b.State())
	})

	t.Run("正常透传", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		next := gatewaymocks.NewMockGateway(ctrl)
		want := domain.Intent{ID: "order_1", Amount: 100, Currency: "INR", Receipt: "ORD-1001", KeyID: "key"}
		next.EXPECT().CreateIntent(gomock.Any(), int64(100), "INR", "ORD-1001").Return(want, nil)
		next.EXPECT().FetchOrderPayments(gomock.Any(), "order_1").
			Return([]domain.GatewayPayment{{ID: "pay_1", Status: domain.GatewayPaymentCaptured}}, nil)
		reg := prometheus.NewRegistry()
		// 同一个 registry 重复创建不会 panic
		_ = gateway.NewBreakerGateway("razorpay", next, cfg, reg)
		b := gateway.NewBreakerGateway("razorpay", next, cfg, reg)

		intent, err := b.CreateIntent(context.Background(), 100, "INR", "ORD-1001")
		require.NoError(t, err)
		assert.Equal(t, want, intent)
		payments, err := b.FetchOrderPayments(context.Background(), "order_1")
		require.NoError(t, err)
		assert.Len(t, payments, 1)
	})
}

func TestSandbox(t *testing.T) {
	sb, err := gateway.NewSandbox("rzp_sandbox", 1)
	require.NoError(t, err)
	intent, err := sb.CreateIntent(context.Background(), 500, "INR", "ORD-1002")
	require.NoError(t, err)
	assert.Equal(t, "rzp_sandbox", intent.KeyID)
	assert.NotEmpty(t, intent.ID)

	payments, err := sb.FetchOrderPayments(context.Background(), intent.ID)
	require.NoError(t, err)
	assert.Empty(t, payments)

	p, err := sb.Pay(intent.ID, domain.GatewayPaymentCaptured, domain.MethodDetail{Method: "upi"})
	require.NoError(t, err)
	assert.Equal(t, int64(500), p.Amount)
	payments, err = sb.FetchOrderPayments(context.Background(), intent.ID)
	require.NoError(t, err)
	assert.Equal(t, []domain.GatewayPayment{p}, payments)

	_, err = sb.FetchOrderPayments(context.Background(), "order_unknown")
	assert.ErrorIs(t, err, gateway.ErrRejected)
}
