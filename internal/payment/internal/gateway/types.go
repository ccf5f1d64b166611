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

	"github.com/ecodeclub/emall/internal/payment/internal/domain"
)

var (
	// ErrUnavailable 网关超时、5xx 或者熔断打开，调用方可以稍后重试
	ErrUnavailable = errors.New("支付网关不可用")
	// ErrRejected 网关明确拒绝了请求，例如参数错误，重试也没用
	ErrRejected = errors.New("支付网关拒绝请求")
)

//go:generate mockgen -source=./types.go -package=gatewaymocks -destination=./mocks/gateway.mock.go Gateway
type Gateway interface {
	// CreateIntent 创建网关预支付订单，amount 为最小货币单位
	CreateIntent(ctx context.Context, amount int64, currency, receipt string) (domain.Intent, error)
	// FetchOrderPayments 查询网关订单下的所有支付尝试
	FetchOrderPayments(ctx context.Context, orderRef string) ([]domain.GatewayPayment, error)
}
