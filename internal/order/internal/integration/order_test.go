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

package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/ecodeclub/ekit/iox"
	"github.com/ecodeclub/emall/internal/cart"
	"github.com/ecodeclub/emall/internal/order"
	"github.com/ecodeclub/emall/internal/order/internal/errs"
	"github.com/ecodeclub/emall/internal/order/internal/web"
	"github.com/ecodeclub/emall/internal/payment"
	"github.com/ecodeclub/emall/internal/product"
	"github.com/ecodeclub/emall/internal/test"
	testioc "github.com/ecodeclub/emall/internal/test/ioc"
	"github.com/ego-component/egorm"
	"github.com/gotomicro/ego/core/econf"
	"github.com/gotomicro/ego/server/egin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const (
	uid           = int64(3001)
	keyID         = "rzp_test_emall"
	keySecret     = "key_secret_for_tests"
	webhookSecret = "webhook_secret_for_tests"
)

var address = web.Address{
	FullName:   "Asha Rao",
	Phone:      "+919800000000",
	Street:     "12 MG Road",
	City:       "Bengaluru",
	State:      "KA",
	PostalCode: "560001",
	Country:    "IN",
	Email:      "asha@example.com",
}

// flakyGateway 可以让创建网关订单失败的沙箱
type flakyGateway struct {
	*payment.Sandbox
	failCreate atomic.Bool
}

func (g *flakyGateway) CreateIntent(ctx context.Context, amount int64, currency, receipt string) (payment.Intent, error) {
	if g.failCreate.Load() {
		return payment.Intent{}, fmt.Errorf("%w: connection refused", payment.ErrGatewayUnavailable)
	}
	return g.Sandbox.CreateIntent(ctx, amount, currency, receipt)
}

func TestOrderModule(t *testing.T) {
	suite.Run(t, new(OrderModuleTestSuite))
}

type OrderModuleTestSuite struct {
	suite.Suite
	server     *egin.Component
	db         *egorm.Component
	gw         *flakyGateway
	productSvc product.Service
	cartSvc    cart.Service
	svc        order.Service
	closeJob   *order.CloseExpiredOrdersJob
}

func (s *OrderModuleTestSuite) SetupSuite() {
	s.db = testioc.InitDB()
	ec := testioc.InitCache()
	pm := product.InitModule(s.db, ec)
	cm := cart.InitModule(s.db, pm)
	sandbox, err := payment.NewSandbox(keyID, 1)
	require.NoError(s.T(), err)
	s.gw = &flakyGateway{Sandbox: sandbox}
	paym := payment.InitModuleWithGateway(s.db, s.gw, payment.Config{
		KeyID:         keyID,
		KeySecret:     keySecret,
		WebhookSecret: webhookSecret,
		Currency:      "INR",
	})
	om, err := order.InitModule(s.db, testioc.InitMQ(), ec, pm, cm, paym)
	require.NoError(s.T(), err)

	econf.Set("server", map[string]any{"contextTimeout": "1s"})
	server := egin.Load("server").Build()
	om.WebhookHdl.PublicRoutes(server.Engine)
	server.Use(test.LoginAs(uid))
	om.Hdl.PrivateRoutes(server.Engine)
	s.server = server
	s.productSvc = pm.Svc
	s.cartSvc = cm.Svc
	s.svc = om.Svc
	s.closeJob = om.CloseExpiredOrdersJob
}

func (s *OrderModuleTestSuite) TearDownTest() {
	for _, table := range []string{"orders", "order_items", "cart_items", "products", "product_variants", "payment_webhook_events"} {
		s.NoError(s.db.Exec(fmt.Sprintf("DELETE FROM `%s`", table)).Error)
	}
	s.gw.failCreate.Store(false)
	s.NoError(testioc.InitRedis().FlushAll(context.Background()).Err())
}

func post[T any](t *testing.T, server http.Handler, path string, body any) test.Result[T] {
	req, err := http.NewRequest(http.MethodPost, path, iox.NewJSONReader(body))
	require.NoError(t, err)
	req.Header.Set("content-type", "application/json")
	recorder := test.NewJSONResponseRecorder[T]()
	server.ServeHTTP(recorder, req)
	require.Equal(t, 200, recorder.Code)
	return recorder.MustScan()
}

// newRug 创建一个有尺码的商品，返回商品ID和规格ID
func (s *OrderModuleTestSuite) newRug(t *testing.T, sn string, price, stock int64) (int64, int64) {
	pid, err := s.productSvc.Save(context.Background(), product.Product{
		SN:       sn,
		Name:     "Cotton Rug",
		Price:    price,
		Variants: []product.Variant{{Size: "4x6", Stock: stock}},
	})
	require.NoError(t, err)
	p, err := s.productSvc.FindByID(context.Background(), pid)
	require.NoError(t, err)
	return pid, p.Variants[0].ID
}

func (s *OrderModuleTestSuite) variantStock(t *testing.T, pid, vid int64) int64 {
	p, err := s.productSvc.FindByID(context.Background(), pid)
	require.NoError(t, err)
	v, ok := p.FindVariant(vid)
	require.True(t, ok)
	return v.Stock
}

func (s *OrderModuleTestSuite) placeOnline(t *testing.T, requestID string) web.PlaceOrderResp {
	res := post[web.PlaceOrderResp](t, s.server, "/order/place", web.PlaceOrderReq{
		RequestID:   requestID,
		Address:     address,
		PaymentMode: order.PaymentModeOnline.ToUint8(),
	})
	require.Equal(t, 0, res.Code, res.Msg)
	require.NotNil(t, res.Data.Intent)
	return res.Data
}

func (s *OrderModuleTestSuite) verify(t *testing.T, gatewayOrderID, paymentID, receipt string) test.Result[web.Order] {
	sig := payment.Sign(payment.PaymentPayload(gatewayOrderID, paymentID), keySecret)
	return post[web.Order](t, s.server, "/order/payment/verify", web.VerifyPaymentReq{
		GatewayOrderID:   gatewayOrderID,
		GatewayPaymentID: paymentID,
		Signature:        sig,
		Receipt:          receipt,
	})
}

func (s *OrderModuleTestSuite) TestEndToEnd_OnlinePayment() {
	t := s.T()
	pid, vid := s.newRug(t, "RUG-001", 100, 10)
	require.NoError(t, s.cartSvc.Add(context.Background(), uid, cart.Item{ProductID: pid, VariantID: vid, Quantity: 2}))

	placed := s.placeOnline(t, "req-e2e")
	assert.Equal(t, int64(200), placed.Order.TotalAmount)
	assert.Equal(t, "INR", placed.Order.Currency)
	assert.Equal(t, order.StatusPlaced.ToUint8(), placed.Order.Status)
	assert.Equal(t, web.Intent{
		GatewayOrderID: placed.Order.GatewayOrderID,
		KeyID:          keyID,
		Amount:         200,
		Currency:       "INR",
	}, *placed.Intent)
	// 支付完成之前购物车保留
	c, err := s.cartSvc.GetCart(context.Background(), uid)
	require.NoError(t, err)
	assert.Len(t, c.Items, 1)

	p, err := s.gw.Pay(placed.Intent.GatewayOrderID, payment.GatewayPaymentCaptured, payment.MethodDetail{Method: "card", CardLast4: "4242"})
	require.NoError(t, err)
	res := s.verify(t, placed.Intent.GatewayOrderID, p.ID, placed.Order.SN)
	require.Equal(t, 0, res.Code, res.Msg)
	assert.Equal(t, order.PaymentStatusPaid.ToUint8(), res.Data.PaymentStatus)
	assert.Equal(t, order.StatusConfirmed.ToUint8(), res.Data.Status)
	assert.Equal(t, int64(8), s.variantStock(t, pid, vid))
	c, err = s.cartSvc.GetCart(context.Background(), uid)
	require.NoError(t, err)
	assert.True(t, c.IsEmpty())

	// 重复确认返回同样的结果，库存只扣一次
	res = s.verify(t, placed.Intent.GatewayOrderID, p.ID, "")
	require.Equal(t, 0, res.Code, res.Msg)
	assert.Equal(t, order.PaymentStatusPaid.ToUint8(), res.Data.PaymentStatus)
	assert.Equal(t, int64(8), s.variantStock(t, pid, vid))

	// 客户端确认里没有支付方式，由随后到达的回调补上
	detail := post[web.Order](t, s.server, "/order/detail", web.OrderSNReq{SN: placed.Order.SN})
	require.Equal(t, 0, detail.Code)
	assert.Empty(t, detail.Data.PaymentMethod)
	body := webhookBody(t, payment.EventPaymentCaptured, p)
	assert.Equal(t, http.StatusOK, s.webhook(t, body, payment.Sign(body, webhookSecret), "evt_e2e"))
	assert.Equal(t, int64(8), s.variantStock(t, pid, vid))

	detail = post[web.Order](t, s.server, "/order/detail", web.OrderSNReq{SN: placed.Order.SN})
	require.Equal(t, 0, detail.Code)
	assert.Equal(t, "card", detail.Data.PaymentMethod)
	assert.Equal(t, order.StatusConfirmed.ToUint8(), detail.Data.Status)
	require.Len(t, detail.Data.Items, 1)
	assert.Equal(t, web.OrderItem{ProductID: pid, ProductName: "Cotton Rug", VariantID: vid, Size: "4x6", Quantity: 2, UnitPrice: 100},
		detail.Data.Items[0])

	list := post[web.ListOrdersResp](t, s.server, "/order/list", web.ListOrdersReq{Limit: 10})
	require.Equal(t, 0, list.Code)
	assert.Equal(t, int64(1), list.Data.Total)
	require.Len(t, list.Data.Orders, 1)
	assert.Equal(t, placed.Order.SN, list.Data.Orders[0].SN)
}

func (s *OrderModuleTestSuite) TestPlaceOrder_DuplicateRequest() {
	t := s.T()
	pid, vid := s.newRug(t, "RUG-002", 100, 10)
	require.NoError(t, s.cartSvc.Add(context.Background(), uid, cart.Item{ProductID: pid, VariantID: vid, Quantity: 1}))

	s.placeOnline(t, "req-dup")
	res := post[web.PlaceOrderResp](t, s.server, "/order/place", web.PlaceOrderReq{
		RequestID:   "req-dup",
		Address:     address,
		PaymentMode: order.PaymentModeOnline.ToUint8(),
	})
	assert.Equal(t, errs.DuplicateRequest.Code, res.Code)

	list := post[web.ListOrdersResp](t, s.server, "/order/list", web.ListOrdersReq{})
	assert.Equal(t, int64(1), list.Data.Total)
}

func (s *OrderModuleTestSuite) TestPlaceOrder_Validation() {
	t := s.T()
	res := post[web.PlaceOrderResp](t, s.server, "/order/place", web.PlaceOrderReq{
		RequestID:   "req-empty",
		Address:     address,
		PaymentMode: order.PaymentModeCOD.ToUint8(),
	})
	assert.Equal(t, errs.EmptyCart.Code, res.Code)

	pid, vid := s.newRug(t, "RUG-003", 100, 10)
	require.NoError(t, s.cartSvc.Add(context.Background(), uid, cart.Item{ProductID: pid, VariantID: vid, Quantity: 1}))
	res = post[web.PlaceOrderResp](t, s.server, "/order/place", web.PlaceOrderReq{
		Address:     web.Address{FullName: "Asha Rao"},
		PaymentMode: order.PaymentModeCOD.ToUint8(),
	})
	assert.Equal(t, errs.InvalidAddress.Code, res.Code)
	res = post[web.PlaceOrderResp](t, s.server, "/order/place", web.PlaceOrderReq{
		Address:     address,
		PaymentMode: 7,
	})
	assert.Equal(t, errs.InvalidPaymentMode.Code, res.Code)
}

func (s *OrderModuleTestSuite) TestVerify_SignatureMismatch() {
	t := s.T()
	pid, vid := s.newRug(t, "RUG-004", 100, 10)
	require.NoError(t, s.cartSvc.Add(context.Background(), uid, cart.Item{ProductID: pid, VariantID: vid, Quantity: 2}))
	placed := s.placeOnline(t, "req-sig")
	p, err := s.gw.Pay(placed.Intent.GatewayOrderID, payment.GatewayPaymentCaptured, payment.MethodDetail{Method: "upi"})
	require.NoError(t, err)

	res := post[web.Order](t, s.server, "/order/payment/verify", web.VerifyPaymentReq{
		GatewayOrderID:   placed.Intent.GatewayOrderID,
		GatewayPaymentID: p.ID,
		Signature:        payment.Sign(payment.PaymentPayload(placed.Intent.GatewayOrderID, p.ID), "wrong_secret"),
	})
	assert.Equal(t, errs.SignatureMismatch.Code, res.Code)

	detail := post[web.Order](t, s.server, "/order/detail", web.OrderSNReq{SN: placed.Order.SN})
	assert.Equal(t, order.PaymentStatusPending.ToUint8(), detail.Data.PaymentStatus)
	assert.Equal(t, int64(10), s.variantStock(t, pid, vid))

	res = s.verify(t, placed.Intent.GatewayOrderID, p.ID, "ORD-NOT-MINE")
	assert.Equal(t, errs.ReceiptMismatch.Code, res.Code)
}

func (s *OrderModuleTestSuite) TestPriceFrozenAtAddition() {
	t := s.T()
	pid, vid := s.newRug(t, "RUG-005", 100, 10)
	require.NoError(t, s.cartSvc.Add(context.Background(), uid, cart.Item{ProductID: pid, VariantID: vid, Quantity: 2}))
	_, err := s.productSvc.Save(context.Background(), product.Product{
		SN:       "RUG-005",
		Name:     "Cotton Rug",
		Price:    150,
		Variants: []product.Variant{{Size: "4x6", Stock: 10}},
	})
	require.NoError(t, err)

	placed := s.placeOnline(t, "req-price")
	assert.Equal(t, int64(200), placed.Order.TotalAmount)
	assert.Equal(t, int64(200), placed.Intent.Amount)
}

func (s *OrderModuleTestSuite) TestCashOnDelivery() {
	t := s.T()
	pid, vid := s.newRug(t, "RUG-006", 100, 10)
	require.NoError(t, s.cartSvc.Add(context.Background(), uid, cart.Item{ProductID: pid, VariantID: vid, Quantity: 2}))

	res := post[web.PlaceOrderResp](t, s.server, "/order/place", web.PlaceOrderReq{
		RequestID:   "req-cod",
		Address:     address,
		PaymentMode: order.PaymentModeCOD.ToUint8(),
	})
	require.Equal(t, 0, res.Code, res.Msg)
	assert.Nil(t, res.Data.Intent)
	assert.Empty(t, res.Data.Order.GatewayOrderID)
	assert.Equal(t, order.PaymentStatusPending.ToUint8(), res.Data.Order.PaymentStatus)
	assert.Equal(t, order.StatusPlaced.ToUint8(), res.Data.Order.Status)

	c, err := s.cartSvc.GetCart(context.Background(), uid)
	require.NoError(t, err)
	assert.True(t, c.IsEmpty())
	// 货到付款不占用库存
	assert.Equal(t, int64(10), s.variantStock(t, pid, vid))

	retry := post[web.Intent](t, s.server, "/order/payment/retry", web.OrderSNReq{SN: res.Data.Order.SN})
	assert.Equal(t, errs.OrderNotPayable.Code, retry.Code)
}

func (s *OrderModuleTestSuite) TestGatewayFailure_RollsBack() {
	t := s.T()
	pid, vid := s.newRug(t, "RUG-007", 100, 10)
	require.NoError(t, s.cartSvc.Add(context.Background(), uid, cart.Item{ProductID: pid, VariantID: vid, Quantity: 1}))

	s.gw.failCreate.Store(true)
	res := post[web.PlaceOrderResp](t, s.server, "/order/place", web.PlaceOrderReq{
		RequestID:   "req-gw",
		Address:     address,
		PaymentMode: order.PaymentModeOnline.ToUint8(),
	})
	assert.Equal(t, errs.GatewayUnavailable.Code, res.Code)
	list := post[web.ListOrdersResp](t, s.server, "/order/list", web.ListOrdersReq{})
	assert.Zero(t, list.Data.Total)
	c, err := s.cartSvc.GetCart(context.Background(), uid)
	require.NoError(t, err)
	assert.Len(t, c.Items, 1)

	// 网关恢复后可以用同一个请求ID重试
	s.gw.failCreate.Store(false)
	placed := s.placeOnline(t, "req-gw")
	assert.Equal(t, int64(100), placed.Order.TotalAmount)
}

func (s *OrderModuleTestSuite) TestRetryPayment() {
	t := s.T()
	pid, vid := s.newRug(t, "RUG-008", 100, 10)
	require.NoError(t, s.cartSvc.Add(context.Background(), uid, cart.Item{ProductID: pid, VariantID: vid, Quantity: 3}))
	placed := s.placeOnline(t, "req-retry")

	res := post[web.Intent](t, s.server, "/order/payment/retry", web.OrderSNReq{SN: placed.Order.SN})
	require.Equal(t, 0, res.Code, res.Msg)
	assert.Equal(t, *placed.Intent, res.Data)

	res = post[web.Intent](t, s.server, "/order/payment/retry", web.OrderSNReq{SN: "ORD-404"})
	assert.Equal(t, errs.OrderNotFound.Code, res.Code)
}

func (s *OrderModuleTestSuite) webhook(t *testing.T, raw []byte, sig, eventID string) int {
	req, err := http.NewRequest(http.MethodPost, "/order/payment/webhook", bytes.NewReader(raw))
	require.NoError(t, err)
	req.Header.Set("content-type", "application/json")
	req.Header.Set("X-Razorpay-Signature", sig)
	if eventID != "" {
		req.Header.Set("X-Razorpay-Event-Id", eventID)
	}
	recorder := httptest.NewRecorder()
	s.server.ServeHTTP(recorder, req)
	return recorder.Code
}

func webhookBody(t *testing.T, event string, p payment.GatewayPayment) []byte {
	raw, err := json.Marshal(map[string]any{
		"event": event,
		"payload": map[string]any{
			"payment": map[string]any{
				"entity": map[string]any{
					"id":       p.ID,
					"order_id": p.OrderRef,
					"amount":   p.Amount,
					"currency": p.Currency,
					"status":   p.Status,
					"method":   p.Method.Method,
					"bank":     p.Method.Bank,
					"vpa":      p.Method.VPA,
					"card":     map[string]any{"last4": p.Method.CardLast4},
				},
			},
		},
	})
	require.NoError(t, err)
	return raw
}

func (s *OrderModuleTestSuite) TestWebhook() {
	t := s.T()
	pid, vid := s.newRug(t, "RUG-009", 100, 10)
	require.NoError(t, s.cartSvc.Add(context.Background(), uid, cart.Item{ProductID: pid, VariantID: vid, Quantity: 2}))
	placed := s.placeOnline(t, "req-webhook")
	ref := placed.Intent.GatewayOrderID

	failed, err := s.gw.Pay(ref, payment.GatewayPaymentFailed, payment.MethodDetail{Method: "upi", VPA: "asha@okbank"})
	require.NoError(t, err)
	failedBody := webhookBody(t, payment.EventPaymentFailed, failed)
	assert.Equal(t, http.StatusOK, s.webhook(t, failedBody, payment.Sign(failedBody, webhookSecret), "evt_failed"))
	detail := post[web.Order](t, s.server, "/order/detail", web.OrderSNReq{SN: placed.Order.SN})
	assert.Equal(t, order.PaymentStatusFailed.ToUint8(), detail.Data.PaymentStatus)

	captured, err := s.gw.Pay(ref, payment.GatewayPaymentCaptured, payment.MethodDetail{Method: "upi", VPA: "asha@okbank"})
	require.NoError(t, err)
	body := webhookBody(t, payment.EventPaymentCaptured, captured)
	sig := payment.Sign(body, webhookSecret)

	// 签名针对原始字节，重新格式化后的请求体验签失败
	var indented bytes.Buffer
	require.NoError(t, json.Indent(&indented, body, "", "  "))
	assert.Equal(t, http.StatusBadRequest, s.webhook(t, indented.Bytes(), sig, "evt_captured"))
	assert.Equal(t, http.StatusBadRequest, s.webhook(t, body, "forged", "evt_captured"))
	notJSON := []byte("not json")
	assert.Equal(t, http.StatusBadRequest, s.webhook(t, notJSON, payment.Sign(notJSON, webhookSecret), ""))

	assert.Equal(t, http.StatusOK, s.webhook(t, body, sig, "evt_captured"))
	// 网关重复投递
	assert.Equal(t, http.StatusOK, s.webhook(t, body, sig, "evt_captured"))
	// 迟到的失败事件不会把订单改回未支付
	assert.Equal(t, http.StatusOK, s.webhook(t, failedBody, payment.Sign(failedBody, webhookSecret), "evt_failed"))

	detail = post[web.Order](t, s.server, "/order/detail", web.OrderSNReq{SN: placed.Order.SN})
	assert.Equal(t, order.PaymentStatusPaid.ToUint8(), detail.Data.PaymentStatus)
	assert.Equal(t, order.StatusConfirmed.ToUint8(), detail.Data.Status)
	assert.Equal(t, "upi", detail.Data.PaymentMethod)
	assert.Equal(t, int64(8), s.variantStock(t, pid, vid))

	// 客户端确认晚于回调同样成功
	res := s.verify(t, ref, captured.ID, placed.Order.SN)
	require.Equal(t, 0, res.Code, res.Msg)
	assert.Equal(t, int64(8), s.variantStock(t, pid, vid))

	var cnt int64
	require.NoError(t, s.db.Table("payment_webhook_events").Count(&cnt).Error)
	assert.Equal(t, int64(2), cnt)
}

func (s *OrderModuleTestSuite) TestConcurrentConfirm_StockExhaustion() {
	t := s.T()
	pid, err := s.productSvc.Save(context.Background(), product.Product{SN: "LAMP-001", Name: "Brass Lamp", Price: 500, Stock: 2})
	require.NoError(t, err)

	buyers := []int64{uid + 1, uid + 2}
	payments := make([]payment.GatewayPayment, 0, len(buyers))
	for _, buyer := range buyers {
		require.NoError(t, s.cartSvc.Add(context.Background(), buyer, cart.Item{ProductID: pid, Quantity: 2}))
		res, err := s.svc.PlaceOrder(context.Background(), buyer, order.Address{
			FullName: "Buyer", Phone: "+919811111111", Street: "1 Park St", City: "Kolkata",
			State: "WB", PostalCode: "700016", Country: "IN",
		}, order.PaymentModeOnline)
		require.NoError(t, err)
		p, err := s.gw.Pay(res.Intent.GatewayOrderRef, payment.GatewayPaymentCaptured, payment.MethodDetail{Method: "card"})
		require.NoError(t, err)
		payments = append(payments, p)
	}

	var (
		wg        sync.WaitGroup
		succeeded atomic.Int32
		shortfall atomic.Int32
	)
	for _, p := range payments {
		wg.Add(1)
		go func(p payment.GatewayPayment) {
			defer wg.Done()
			sig := payment.Sign(payment.PaymentPayload(p.OrderRef, p.ID), keySecret)
			_, err := s.svc.ConfirmPayment(context.Background(), p.OrderRef, p.ID, sig, "")
			switch {
			case err == nil:
				succeeded.Add(1)
			case assert.ErrorIs(t, err, order.ErrInsufficientStock):
				shortfall.Add(1)
			}
		}(p)
	}
	wg.Wait()

	assert.Equal(t, int32(1), succeeded.Load())
	assert.Equal(t, int32(1), shortfall.Load())
	pd, err := s.productSvc.FindByID(context.Background(), pid)
	require.NoError(t, err)
	assert.Zero(t, pd.Stock)
	assert.False(t, pd.InStock)
}

func (s *OrderModuleTestSuite) TestConcurrentConfirm_SameOrder() {
	t := s.T()
	pid, vid := s.newRug(t, "RUG-010", 100, 10)
	require.NoError(t, s.cartSvc.Add(context.Background(), uid, cart.Item{ProductID: pid, VariantID: vid, Quantity: 2}))
	placed := s.placeOnline(t, "req-same")
	p, err := s.gw.Pay(placed.Intent.GatewayOrderID, payment.GatewayPaymentCaptured, payment.MethodDetail{Method: "netbanking", Bank: "HDFC"})
	require.NoError(t, err)
	sig := payment.Sign(payment.PaymentPayload(p.OrderRef, p.ID), keySecret)

	var wg sync.WaitGroup
	for i := 0; i < 6; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			var err error
			// 客户端确认和回调交替进入
			if i%2 == 0 {
				_, err = s.svc.ConfirmPayment(context.Background(), p.OrderRef, p.ID, sig, "")
			} else {
				_, err = s.svc.HandlePaymentCaptured(context.Background(), order.Payment{
					GatewayOrderRef:   p.OrderRef,
					GatewayPaymentRef: p.ID,
				})
			}
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	assert.Equal(t, int64(8), s.variantStock(t, pid, vid))
	o, err := s.svc.FindOrder(context.Background(), uid, placed.Order.SN)
	require.NoError(t, err)
	assert.True(t, o.IsPaid())
}

func (s *OrderModuleTestSuite) TestCancelAndCloseExpired() {
	t := s.T()
	pid, vid := s.newRug(t, "RUG-011", 100, 10)
	require.NoError(t, s.cartSvc.Add(context.Background(), uid, cart.Item{ProductID: pid, VariantID: vid, Quantity: 1}))
	first := s.placeOnline(t, "req-cancel")
	second := s.placeOnline(t, "req-expire")

	res := post[web.Order](t, s.server, "/order/cancel", web.OrderSNReq{SN: first.Order.SN})
	require.Equal(t, 0, res.Code, res.Msg)
	p, err := s.gw.Pay(first.Intent.GatewayOrderID, payment.GatewayPaymentCaptured, payment.MethodDetail{Method: "card"})
	require.NoError(t, err)
	verified := s.verify(t, first.Intent.GatewayOrderID, p.ID, "")
	assert.Equal(t, errs.OrderCancelled.Code, verified.Code)
	// 取消之后才到达的扣款保留在订单上，等待退款，不扣库存
	detail := post[web.Order](t, s.server, "/order/detail", web.OrderSNReq{SN: first.Order.SN})
	assert.Equal(t, order.StatusCancelled.ToUint8(), detail.Data.Status)
	assert.Equal(t, order.PaymentStatusPaid.ToUint8(), detail.Data.PaymentStatus)
	assert.True(t, detail.Data.RefundPending)
	assert.Equal(t, int64(10), s.variantStock(t, pid, vid))

	// 任务只关闭超过配置时长的订单，刚创建的不受影响
	require.NoError(t, s.closeJob.Run(context.Background()))
	detail = post[web.Order](t, s.server, "/order/detail", web.OrderSNReq{SN: second.Order.SN})
	assert.Equal(t, order.StatusPlaced.ToUint8(), detail.Data.Status)

	closed, err := s.svc.CloseExpiredOrders(context.Background(), time.Now().Add(time.Minute).UnixMilli(), 10)
	require.NoError(t, err)
	assert.Equal(t, 1, closed)
	detail = post[web.Order](t, s.server, "/order/detail", web.OrderSNReq{SN: second.Order.SN})
	assert.Equal(t, order.StatusCancelled.ToUint8(), detail.Data.Status)
	assert.Equal(t, int64(10), s.variantStock(t, pid, vid))

	res = post[web.Order](t, s.server, "/order/cancel", web.OrderSNReq{SN: "ORD-404"})
	assert.Equal(t, errs.OrderNotFound.Code, res.Code)
}

func (s *OrderModuleTestSuite) TestCancel_PaidAtGateway() {
	t := s.T()
	pid, vid := s.newRug(t, "RUG-012", 100, 10)
	require.NoError(t, s.cartSvc.Add(context.Background(), uid, cart.Item{ProductID: pid, VariantID: vid, Quantity: 2}))
	placed := s.placeOnline(t, "req-paid-cancel")
	// 用户已经付款，确认和回调都还没有到达
	_, err := s.gw.Pay(placed.Intent.GatewayOrderID, payment.GatewayPaymentCaptured, payment.MethodDetail{Method: "upi", VPA: "asha@okbank"})
	require.NoError(t, err)

	res := post[web.Order](t, s.server, "/order/cancel", web.OrderSNReq{SN: placed.Order.SN})
	assert.Equal(t, errs.OrderNotCancellable.Code, res.Code)

	detail := post[web.Order](t, s.server, "/order/detail", web.OrderSNReq{SN: placed.Order.SN})
	assert.Equal(t, order.StatusConfirmed.ToUint8(), detail.Data.Status)
	assert.Equal(t, order.PaymentStatusPaid.ToUint8(), detail.Data.PaymentStatus)
	assert.Equal(t, "upi", detail.Data.PaymentMethod)
	assert.False(t, detail.Data.RefundPending)
	assert.Equal(t, int64(8), s.variantStock(t, pid, vid))
	c, err := s.cartSvc.GetCart(context.Background(), uid)
	require.NoError(t, err)
	assert.True(t, c.IsEmpty())
}

func (s *OrderModuleTestSuite) TestTablesMigrated() {
	t := s.T()
	migrator := s.db.Migrator()
	for _, table := range []string{"orders", "order_items", "sequences", "payment_webhook_events"} {
		assert.True(t, migrator.HasTable(table), table)
	}
	// sqlite 的索引名在整个库内唯一，两张表不能重名
	assert.True(t, migrator.HasIndex("orders", "idx_gateway_order_ref"))
	assert.True(t, migrator.HasIndex("payment_webhook_events", "idx_webhook_gateway_order_ref"))
}
