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
	"fmt"
	"sync"

	"github.com/bwmarrin/snowflake"
	"github.com/ecodeclub/emall/internal/payment/internal/domain"
	"github.com/lithammer/shortuuid/v4"
)

var _ Gateway = (*Sandbox)(nil)

// Sandbox 本地开发和测试用的网关，所有数据都在内存中
type Sandbox struct {
	keyID string
	node  *snowflake.Node

	mu       sync.RWMutex
	intents  map[string]domain.Intent
	payments map[string][]domain.GatewayPayment
}

func NewSandbox(keyID string, nodeID int64) (*Sandbox, error) {
	node, err := snowflake.NewNode(nodeID)
	if err != nil {
		return nil, err
	}
	return &Sandbox{
		keyID:    keyID,
		node:     node,
		intents:  make(map[string]domain.Intent),
		payments: make(map[string][]domain.GatewayPayment),
	}, nil
}

func (s *Sandbox) CreateIntent(ctx context.Context, amount int64, currency, receipt string) (domain.Intent, error) {
	intent := domain.Intent{
		ID:       "order_" + shortuuid.New(),
		Amount:   amount,
		Currency: currency,
		Receipt:  receipt,
		KeyID:    s.keyID,
	}
	s.mu.Lock()
	s.intents[intent.ID] = intent
	s.mu.Unlock()
	return intent, nil
}

func (s *Sandbox) FetchOrderPayments(ctx context.Context, orderRef string) ([]domain.GatewayPayment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if _, ok := s.intents[orderRef]; !ok {
		return nil, fmt.Errorf("%w: 网关订单 %s 不存在", ErrRejected, orderRef)
	}
	res := make([]domain.GatewayPayment, len(s.payments[orderRef]))
	copy(res, s.payments[orderRef])
	return res, nil
}

// Pay 模拟买家完成一次支付，status 为网关侧的支付状态
func (s *Sandbox) Pay(orderRef, status string, method domain.MethodDetail) (domain.GatewayPayment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	intent, ok := s.intents[orderRef]
	if !ok {
		return domain.GatewayPayment{}, fmt.Errorf("%w: 网关订单 %s 不存在", ErrRejected, orderRef)
	}
	p := domain.GatewayPayment{
		ID:       "pay_" + s.node.Generate().Base58(),
		OrderRef: orderRef,
		Amount:   intent.Amount,
		Currency: intent.Currency,
		Status:   status,
		Method:   method,
	}
	s.payments[orderRef] = append(s.payments[orderRef], p)
	return p, nil
}
