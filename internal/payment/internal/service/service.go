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

package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/ecodeclub/emall/internal/payment/internal/domain"
	"github.com/ecodeclub/emall/internal/payment/internal/gateway"
	"github.com/ecodeclub/emall/internal/payment/internal/repository"
	"github.com/gotomicro/ego/core/elog"
	"github.com/lithammer/shortuuid/v4"
)

var (
	ErrSignatureMismatch  = gateway.ErrSignatureMismatch
	ErrInvalidWebhook     = gateway.ErrInvalidPayload
	ErrGatewayUnavailable = gateway.ErrUnavailable
)

type Config struct {
	KeyID         string
	KeySecret     string
	WebhookSecret string
	Currency      string
}

//go:generate mockgen -source=./service.go -package=paymentmocks -destination=../../mocks/payment.mock.go Service
type Service interface {
	// CreateIntent 创建网关预支付订单，currency 为空时使用默认币种
	CreateIntent(ctx context.Context, amount int64, currency, receipt string) (domain.Intent, error)
	// VerifyPaymentSignature 校验前端回传的 order_id|payment_id 签名
	VerifyPaymentSignature(orderRef, paymentRef, signature string) error
	// ParseWebhook 基于原始请求体验签并解析，验签通过的事件会记录下来。
	// eventID 为空时会生成一个
	ParseWebhook(ctx context.Context, raw []byte, signature, eventID string) (domain.WebhookEvent, error)
	FetchOrderPayments(ctx context.Context, orderRef string) ([]domain.GatewayPayment, error)
	KeyID() string
	Currency() string
}

type service struct {
	gw   gateway.Gateway
	repo repository.WebhookEventRepository
	cfg  Config
	l    *elog.Component
}

func NewService(gw gateway.Gateway, repo repository.WebhookEventRepository, cfg Config) Service {
	return &service{
		gw:   gw,
		repo: repo,
		cfg:  cfg,
		l:    elog.DefaultLogger,
	}
}

func (s *service) CreateIntent(ctx context.Context, amount int64, currency, receipt string) (domain.Intent, error) {
	if currency == "" {
		currency = s.cfg.Currency
	}
	intent, err := s.gw.CreateIntent(ctx, amount, currency, receipt)
	if err != nil {
		return domain.Intent{}, err
	}
	if intent.KeyID == "" {
		intent.KeyID = s.cfg.KeyID
	}
	return intent, nil
}

func (s *service) VerifyPaymentSignature(orderRef, paymentRef, signature string) error {
	if gateway.VerifySignature(gateway.PaymentPayload(orderRef, paymentRef), signature, s.cfg.KeySecret) {
		return nil
	}
	s.l.Warn("支付签名校验失败，可能是伪造请求",
		elog.String("gatewayOrderRef", orderRef),
		elog.String("gatewayPaymentRef", paymentRef))
	return fmt.Errorf("%w: order=%s payment=%s", ErrSignatureMismatch, orderRef, paymentRef)
}

func (s *service) ParseWebhook(ctx context.Context, raw []byte, signature, eventID string) (domain.WebhookEvent, error) {
	evt, err := gateway.ParseWebhookEvent(raw, signature, s.cfg.WebhookSecret)
	if err != nil {
		if errors.Is(err, ErrSignatureMismatch) {
			s.l.Warn("回调签名校验失败，可能是伪造请求",
				elog.String("eventID", eventID),
				elog.Int("size", len(raw)))
		}
		return domain.WebhookEvent{}, err
	}
	evt.ID = eventID
	if evt.ID == "" {
		evt.ID = "gen_" + shortuuid.New()
	}
	created, err := s.repo.Save(ctx, evt, raw)
	if err != nil {
		// 审计记录失败不影响支付处理
		s.l.Error("记录网关回调失败",
			elog.FieldErr(err),
			elog.String("eventID", evt.ID),
			elog.String("event", evt.Event))
		return evt, nil
	}
	evt.Duplicate = !created
	return evt, nil
}

func (s *service) FetchOrderPayments(ctx context.Context, orderRef string) ([]domain.GatewayPayment, error) {
	return s.gw.FetchOrderPayments(ctx, orderRef)
}

func (s *service) KeyID() string {
	return s.cfg.KeyID
}

func (s *service) Currency() string {
	return s.cfg.Currency
}
