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

package repository

import (
	"context"

	"github.com/ecodeclub/ekit/slice"
	"github.com/ecodeclub/emall/internal/payment/internal/domain"
	"github.com/ecodeclub/emall/internal/payment/internal/repository/dao"
)

type WebhookEventRepository interface {
	// Save 返回 false 表示重复的事件
	Save(ctx context.Context, evt domain.WebhookEvent, raw []byte) (bool, error)
	FindByGatewayOrderRef(ctx context.Context, orderRef string) ([]domain.WebhookEvent, error)
}

type webhookEventRepository struct {
	dao dao.WebhookEventDAO
}

func NewWebhookEventRepository(d dao.WebhookEventDAO) WebhookEventRepository {
	return &webhookEventRepository{dao: d}
}

func (r *webhookEventRepository) Save(ctx context.Context, evt domain.WebhookEvent, raw []byte) (bool, error) {
	return r.dao.Insert(ctx, dao.WebhookEvent{
		EventId:           evt.ID,
		Event:             evt.Event,
		GatewayOrderRef:   evt.Payment.OrderRef,
		GatewayPaymentRef: evt.Payment.ID,
		Payload:           string(raw),
	})
}

func (r *webhookEventRepository) FindByGatewayOrderRef(ctx context.Context, orderRef string) ([]domain.WebhookEvent, error) {
	events, err := r.dao.FindByGatewayOrderRef(ctx, orderRef)
	if err != nil {
		return nil, err
	}
	return slice.Map(events, func(idx int, src dao.WebhookEvent) domain.WebhookEvent {
		return domain.WebhookEvent{
			ID:    src.EventId,
			Event: src.Event,
			Payment: domain.GatewayPayment{
				ID:       src.GatewayPaymentRef,
				OrderRef: src.GatewayOrderRef,
			},
		}
	}), nil
}
