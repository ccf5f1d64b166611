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

package service_test

import (
	"context"
	"testing"

	"github.com/ecodeclub/emall/internal/payment/internal/domain"
	"github.com/ecodeclub/emall/internal/payment/internal/gateway"
	gatewaymocks "github.com/ecodeclub/emall/internal/payment/internal/gateway/mocks"
	"github.com/ecodeclub/emall/internal/payment/internal/repository"
	"github.com/ecodeclub/emall/internal/payment/internal/repository/dao"
	"github.com/ecodeclub/emall/internal/payment/internal/service"
	testioc "github.com/ecodeclub/emall/internal/test/ioc"
	"github.com/ego-component/egorm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

var cfg = service.Config{
	KeyID:         "rzp_test_key",
	KeySecret:     "key_secret",
	WebhookSecret: "webhook_secret",
	Currency:      "INR",
}

func TestPaymentService(t *testing.T) {
	suite.Run(t, new(PaymentServiceTestSuite))
}

type PaymentServiceTestSuite struct {
	suite.Suite
	db   *egorm.Component
	repo repository.WebhookEventRepository
}

func (s *PaymentServiceTestSuite) SetupSuite() {
	s.db = testioc.InitDB()
	require.NoError(s.T(), dao.InitTables(s.db))
	s.repo = repository.NewWebhookEventRepository(dao.NewWebhookEventGORMDAO(s.db))
}

func (s *PaymentServiceTestSuite) TearDownTest() {
	err := s.db.Exec("DELETE FROM `payment_webhook_events`").Error
	require.NoError(s.T(), err)
}

func (s *PaymentServiceTestSuite) newService(t *testing.T) (service.Service, *gatewaymocks.MockGateway) {
	ctrl := gomock.NewController(t)
	gw := gatewaymocks.NewMockGateway(ctrl)
	return service.NewService(gw, s.repo, cfg), gw
}

func (s *PaymentServiceTestSuite) TestCreateIntent() {
	t := s.T()
	svc, gw := s.newService(t)

	// 未指定币种时使用默认币种，网关没有返回公钥时补上
	gw.EXPECT().CreateIntent(gomock.Any(), int64(20000), "INR", "ORD-1001").
		Return(domain.Intent{ID: "order_1", Amount: 20000, Currency: "INR", Receipt: "ORD-1001"}, nil)
	intent, err := svc.CreateIntent(context.Background(), 20000, "", "ORD-1001")
	require.NoError(t, err)
	assert.Equal(t, domain.Intent{
		ID: "order_1", Amount: 20000, Currency: "INR", Receipt: "ORD-1001", KeyID: "rzp_test_key",
	}, intent)

	gw.EXPECT().CreateIntent(gomock.Any(), int64(100), "USD", "ORD-1002").
		Return(domain.Intent{}, gateway.ErrUnavailable)
	_, err = svc.CreateIntent(context.Background(), 100, "USD", "ORD-1002")
	assert.ErrorIs(t, err, service.ErrGatewayUnavailable)
}

func (s *PaymentServiceTestSuite) TestVerifyPaymentSignature() {
	t := s.T()
	svc, _ := s.newService(t)
	sig := gateway.Sign(gateway.PaymentPayload("order_1", "pay_1"), cfg.KeySecret)

	assert.NoError(t, svc.VerifyPaymentSignature("order_1", "pay_1", sig))
	assert.ErrorIs(t, svc.VerifyPaymentSignature("order_1", "pay_2", sig), service.ErrSignatureMismatch)
	assert.ErrorIs(t, svc.VerifyPaymentSignature("order_1", "pay_1", ""), service.ErrSignatureMismatch)
}

func (s *PaymentServiceTestSuite) TestParseWebhook() {
	t := s.T()
	svc, _ := s.newService(t)
	raw := []byte(`{"event":"payment.captured","payload":{"payment":{"entity":{"id":"pay_1","order_id":"order_1","status":"captured","method":"upi","vpa":"a@upi"}}}}`)
	sig := gateway.Sign(raw, cfg.WebhookSecret)

	evt, err := svc.ParseWebhook(context.Background(), raw, sig, "evt_1")
	require.NoError(t, err)
	assert.Equal(t, "evt_1", evt.ID)
	assert.True(t, evt.IsCaptured())
	assert.False(t, evt.Duplicate)
	assert.Equal(t, "a@upi", evt.Payment.Method.VPA)

	// 网关重复投递
	evt, err = svc.ParseWebhook(context.Background(), raw, sig, "evt_1")
	require.NoError(t, err)
	assert.True(t, evt.Duplicate)

	// 没有事件 ID 时生成一个
	evt, err = svc.ParseWebhook(context.Background(), raw, sig, "")
	require.NoError(t, err)
	assert.NotEmpty(t, evt.ID)
	assert.False(t, evt.Duplicate)

	events, err := s.repo.FindByGatewayOrderRef(context.Background(), "order_1")
	require.NoError(t, err)
	assert.Len(t, events, 2)

	_, err = svc.ParseWebhook(context.Background(), raw, gateway.Sign(raw, "wrong"), "evt_2")
	assert.ErrorIs(t, err, service.ErrSignatureMismatch)
	bad := []byte("{")
	_, err = svc.ParseWebhook(context.Background(), bad, gateway.Sign(bad, cfg.WebhookSecret), "evt_3")
	assert.ErrorIs(t, err, service.ErrInvalidWebhook)

	events, err = s.repo.FindByGatewayOrderRef(context.Background(), "order_1")
	require.NoError(t, err)
	assert.Len(t, events, 2)
}

func (s *PaymentServiceTestSuite) TestFetchOrderPayments() {
	t := s.T()
	svc, gw := s.newService(t)
	want := []domain.GatewayPayment{{ID: "pay_1", OrderRef: "order_1", Status: domain.GatewayPaymentCaptured}}
	gw.EXPECT().FetchOrderPayments(gomock.Any(), "order_1").Return(want, nil)
	payments, err := svc.FetchOrderPayments(context.Background(), "order_1")
	require.NoError(t, err)
	assert.Equal(t, want, payments)
	assert.Equal(t, "rzp_test_key", svc.KeyID())
	assert.Equal(t, "INR", svc.Currency())
}
