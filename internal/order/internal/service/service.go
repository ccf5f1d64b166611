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
	"time"

	"github.com/ecodeclub/ekit/slice"
	"github.com/ecodeclub/emall/internal/cart"
	"github.com/ecodeclub/emall/internal/order/internal/domain"
	"github.com/ecodeclub/emall/internal/order/internal/event"
	"github.com/ecodeclub/emall/internal/order/internal/repository"
	"github.com/ecodeclub/emall/internal/payment"
	"github.com/ecodeclub/emall/internal/pkg/database"
	"github.com/ecodeclub/emall/internal/product"
	"github.com/gotomicro/ego/core/elog"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

// defaultScanLimit 扫描未支付订单时每批的默认大小
const defaultScanLimit = 100

// SNGenerator 订单编号生成器
type SNGenerator interface {
	Generate(ctx context.Context) (string, error)
}

//go:generate mockgen -source=./service.go -package=ordermocks -destination=../../mocks/order.mock.go Service
type Service interface {
	// PlaceOrder 把购物车快照成订单。在线支付会同时创建网关订单，
	// 创建失败时订单会被删除
	PlaceOrder(ctx context.Context, uid int64, addr domain.Address, mode domain.PaymentMode) (domain.PlaceResult, error)
	// ConfirmPayment 前端支付完成后的同步确认，可以并发、重复调用
	ConfirmPayment(ctx context.Context, gatewayOrderRef, gatewayPaymentRef, signature, receipt string) (domain.Order, error)
	// HandleWebhook 网关异步回调，raw 必须是未经解析的请求体
	HandleWebhook(ctx context.Context, raw []byte, signature, eventID string) error
	// HandlePaymentCaptured 已经确认来源可信的支付成功，例如回调或者对账
	HandlePaymentCaptured(ctx context.Context, p domain.Payment) (domain.Order, error)
	HandlePaymentFailed(ctx context.Context, p domain.Payment) error
	// CreateOrRetrieveIntent 重新支付时使用，已经有网关订单的直接返回
	CreateOrRetrieveIntent(ctx context.Context, uid int64, sn string) (domain.Intent, error)
	CancelOrder(ctx context.Context, uid int64, sn string) error
	FindOrder(ctx context.Context, uid int64, sn string) (domain.Order, error)
	ListOrders(ctx context.Context, uid int64, offset, limit int) ([]domain.Order, int64, error)
	// CloseExpiredOrders 关闭 ctime 之前创建、仍未支付的在线订单。
	// 关闭前会向网关确认，已经支付的改为确认支付
	CloseExpiredOrders(ctx context.Context, ctime int64, limit int) (int, error)
	// ReconcilePendingOrders 处理丢失的回调，返回补确认的订单数
	ReconcilePendingOrders(ctx context.Context, ctime int64, limit int) (int, error)
}

type service struct {
	repo       repository.OrderRepository
	txn        database.Transactor
	cartSvc    cart.Service
	productSvc product.Service
	paymentSvc payment.Service
	snGen      SNGenerator
	producer   event.OrderEventProducer
	l          *elog.Component
}

func NewService(repo repository.OrderRepository,
	txn database.Transactor,
	cartSvc cart.Service,
	productSvc product.Service,
	paymentSvc payment.Service,
	snGen SNGenerator,
	producer event.OrderEventProducer) Service {
	return &service{
		repo:       repo,
		txn:        txn,
		cartSvc:    cartSvc,
		productSvc: productSvc,
		paymentSvc: paymentSvc,
		snGen:      snGen,
		producer:   producer,
		l:          elog.DefaultLogger,
	}
}

func (s *service) PlaceOrder(ctx context.Context, uid int64, addr domain.Address, mode domain.PaymentMode) (domain.PlaceResult, error) {
	if missing := addr.MissingFields(); len(missing) > 0 {
		return domain.PlaceResult{}, fmt.Errorf("%w: 缺少 %v", ErrInvalidAddress, missing)
	}
	if !mode.Valid() {
		return domain.PlaceResult{}, fmt.Errorf("%w: %d", ErrInvalidPaymentMode, mode)
	}
	items, err := s.snapshotCart(ctx, uid)
	if err != nil {
		return domain.PlaceResult{}, err
	}
	total, ok := domain.Order{Items: items}.CalculateTotal()
	if !ok || total <= 0 {
		return domain.PlaceResult{}, fmt.Errorf("%w: uid=%d total=%d", ErrInvalidAmount, uid, total)
	}
	sn, err := s.snGen.Generate(ctx)
	if err != nil {
		return domain.PlaceResult{}, fmt.Errorf("生成订单序列号失败: %w", err)
	}
	_, hasCustom := slice.Find(items, func(src domain.OrderItem) bool {
		return src.CustomSize != nil
	})
	order := domain.Order{
		SN:             sn,
		BuyerID:        uid,
		Items:          items,
		Address:        addr,
		PaymentMode:    mode,
		PaymentStatus:  domain.PaymentStatusPending,
		Status:         domain.StatusPlaced,
		Currency:       s.paymentSvc.Currency(),
		HasCustomItems: hasCustom,
		TotalAmount:    total,
	}
	order, err = s.repo.CreateOrder(ctx, order)
	if err != nil {
		return domain.PlaceResult{}, fmt.Errorf("创建订单失败: %w", err)
	}

	if mode == domain.PaymentModeCOD {
		// 货到付款没有支付确认环节，下单即清空购物车
		s.afterCommit(ctx, order, event.TypeOrderPlaced)
		return domain.PlaceResult{Order: order}, nil
	}

	intent, err := s.paymentSvc.CreateIntent(ctx, order.TotalAmount, order.Currency, order.SN)
	if err == nil {
		var ok bool
		ok, err = s.repo.SetGatewayOrderRef(ctx, order.ID, intent.ID)
		if err == nil && !ok {
			err = fmt.Errorf("订单 %s 已经有网关订单号", order.SN)
		}
	}
	if err != nil {
		s.rollbackOrder(ctx, order)
		return domain.PlaceResult{}, fmt.Errorf("%w: %w", ErrGatewayUnavailable, err)
	}
	order.GatewayOrderRef = intent.ID
	return domain.PlaceResult{
		Order: order,
		Intent: &domain.Intent{
			GatewayOrderRef: intent.ID,
			KeyID:           intent.KeyID,
			Amount:          intent.Amount,
			Currency:        intent.Currency,
		},
	}, nil
}

// snapshotCart 按加入购物车时的价格生成订单项，商品或规格已经不存在的行直接丢弃
func (s *service) snapshotCart(ctx context.Context, uid int64) ([]domain.OrderItem, error) {
	c, err := s.cartSvc.GetCart(ctx, uid)
	if err != nil {
		return nil, fmt.Errorf("获取购物车失败: %w", err)
	}
	if c.IsEmpty() {
		return nil, ErrEmptyCart
	}
	items := make([]domain.OrderItem, 0, len(c.Items))
	for _, ci := range c.Items {
		p, err := s.productSvc.FindByID(ctx, ci.ProductID)
		if errors.Is(err, product.ErrProductNotFound) {
			s.l.Warn("购物车中的商品已不存在，跳过",
				elog.Int64("uid", uid),
				elog.Int64("productID", ci.ProductID))
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("查询商品失败: %w", err)
		}
		if ci.VariantID != 0 {
			if _, ok := p.FindVariant(ci.VariantID); !ok {
				s.l.Warn("购物车中的商品规格已不存在，跳过",
					elog.Int64("uid", uid),
					elog.Int64("productID", ci.ProductID),
					elog.Int64("variantID", ci.VariantID))
				continue
			}
		}
		item := domain.OrderItem{
			ProductID:   ci.ProductID,
			ProductName: ci.ProductName,
			VariantID:   ci.VariantID,
			Size:        ci.Size,
			Quantity:    ci.Quantity,
			UnitPrice:   ci.PriceAtAddition,
		}
		if ci.CustomSize != nil {
			cs := domain.CustomSize(*ci.CustomSize)
			item.CustomSize = &cs
		}
		items = append(items, item)
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("%w: 购物车中的商品均已失效", ErrEmptyCart)
	}
	return items, nil
}

// rollbackOrder 网关订单创建失败时删除订单。请求可能已经超时，所以不沿用 ctx 的取消
func (s *service) rollbackOrder(ctx context.Context, order domain.Order) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 3*time.Second)
	defer cancel()
	if err := s.repo.DeleteOrder(ctx, order.ID); err != nil {
		// 删除失败的订单会被超时任务关闭
		s.l.Error("回滚订单失败",
			elog.FieldErr(err),
			elog.String("sn", order.SN))
	}
}

func (s *service) ConfirmPayment(ctx context.Context, gatewayOrderRef, gatewayPaymentRef, signature, receipt string) (domain.Order, error) {
	if err := s.paymentSvc.VerifyPaymentSignature(gatewayOrderRef, gatewayPaymentRef, signature); err != nil {
		return domain.Order{}, err
	}
	order, err := s.findByGatewayOrderRef(ctx, gatewayOrderRef)
	if err != nil {
		return domain.Order{}, err
	}
	if receipt != "" && receipt != order.SN {
		s.l.Warn("支付凭证与订单不匹配",
			elog.String("sn", order.SN),
			elog.String("receipt", receipt))
		return domain.Order{}, fmt.Errorf("%w: sn=%s receipt=%s", ErrReceiptMismatch, order.SN, receipt)
	}
	return s.confirm(ctx, order, domain.Payment{
		GatewayOrderRef:   gatewayOrderRef,
		GatewayPaymentRef: gatewayPaymentRef,
	})
}

func (s *service) HandlePaymentCaptured(ctx context.Context, p domain.Payment) (domain.Order, error) {
	order, err := s.findByGatewayOrderRef(ctx, p.GatewayOrderRef)
	if err != nil {
		return domain.Order{}, err
	}
	return s.confirm(ctx, order, p)
}

// confirm 先以"尚未支付"为条件更新订单，再扣减库存，两者在同一个事务中。
// 并发确认同一个订单时只有一个能命中 CAS，其余的看到已支付直接返回
func (s *service) confirm(ctx context.Context, order domain.Order, p domain.Payment) (domain.Order, error) {
	if order.Status == domain.StatusCancelled {
		s.recordLatePayment(ctx, order, p)
		return domain.Order{}, fmt.Errorf("%w: sn=%s", ErrOrderCancelled, order.SN)
	}
	if order.IsPaid() {
		return s.fillPaymentMethod(ctx, order, p), nil
	}
	err := s.txn.Transaction(ctx, func(ctx context.Context) error {
		ok, err := s.repo.MarkPaid(ctx, order.ID, p)
		if err != nil {
			return fmt.Errorf("更新订单支付状态失败: %w", err)
		}
		if !ok {
			return errOrderStateChanged
		}
		shortfalls, err := s.productSvc.Reserve(ctx, s.reserveLines(order))
		if err != nil {
			return err
		}
		if len(shortfalls) > 0 {
			return &InsufficientStockError{Shortfalls: shortfalls}
		}
		return nil
	})

	switch {
	case err == nil:
	case errors.Is(err, errOrderStateChanged):
		return s.resolveConcurrentConfirm(ctx, order.ID, p)
	case errors.Is(err, ErrInsufficientStock):
		s.l.Error("支付成功但库存不足，需要人工处理退款",
			elog.FieldErr(err),
			elog.String("sn", order.SN),
			elog.String("gatewayPaymentRef", p.GatewayPaymentRef))
		if _, er := s.repo.MarkFailed(ctx, order.ID, p.GatewayPaymentRef); er != nil {
			s.l.Error("标记支付失败出错", elog.FieldErr(er), elog.String("sn", order.SN))
		}
		return domain.Order{}, err
	default:
		return domain.Order{}, fmt.Errorf("确认支付失败 sn=%s: %w", order.SN, err)
	}

	order.PaymentStatus = domain.PaymentStatusPaid
	order.Status = domain.StatusConfirmed
	order.GatewayPaymentRef = p.GatewayPaymentRef
	order.PaymentMethod = p.Method
	order.PaidAt = time.Now().UnixMilli()
	s.afterCommit(ctx, order, event.TypeOrderPaid)
	return order, nil
}

// resolveConcurrentConfirm CAS 没有命中时重新读取订单，
// 已支付说明另一个入口先完成了确认
func (s *service) resolveConcurrentConfirm(ctx context.Context, id int64, p domain.Payment) (domain.Order, error) {
	latest, err := s.repo.FindOrderByID(ctx, id)
	if err != nil {
		return domain.Order{}, fmt.Errorf("重新查询订单失败: %w", err)
	}
	switch {
	case latest.Status == domain.StatusCancelled:
		s.recordLatePayment(ctx, latest, p)
		return domain.Order{}, fmt.Errorf("%w: sn=%s", ErrOrderCancelled, latest.SN)
	case latest.IsPaid():
		return s.fillPaymentMethod(ctx, latest, p), nil
	default:
		return domain.Order{}, fmt.Errorf("%w: sn=%s status=%d payment=%d",
			errOrderStateChanged, latest.SN, latest.Status, latest.PaymentStatus)
	}
}

// fillPaymentMethod 客户端确认时拿不到支付方式，由之后到达的同一笔支付的回调补上
func (s *service) fillPaymentMethod(ctx context.Context, order domain.Order, p domain.Payment) domain.Order {
	if p.GatewayPaymentRef != "" && order.GatewayPaymentRef != p.GatewayPaymentRef {
		s.l.Error("订单重复扣款，需要人工处理退款",
			elog.String("sn", order.SN),
			elog.String("paidRef", order.GatewayPaymentRef),
			elog.String("gatewayPaymentRef", p.GatewayPaymentRef))
		return order
	}
	if order.PaymentMethod.Method != "" || p.Method.Method == "" {
		return order
	}
	ok, err := s.repo.FillPaymentMethod(ctx, order.ID, p)
	if err != nil {
		s.l.Warn("补写支付方式失败", elog.FieldErr(err), elog.String("sn", order.SN))
		return order
	}
	if ok {
		order.PaymentMethod = p.Method
	}
	return order
}

// recordLatePayment 订单已经取消，网关却扣款成功了。
// 订单保持取消状态，支付状态记为已支付，作为人工退款的依据
func (s *service) recordLatePayment(ctx context.Context, order domain.Order, p domain.Payment) {
	if p.GatewayPaymentRef == "" || order.NeedsRefund() {
		return
	}
	ok, err := s.repo.MarkPaidAfterCancel(ctx, order.ID, p)
	if err != nil {
		s.l.Error("记录取消后的扣款失败",
			elog.FieldErr(err),
			elog.String("sn", order.SN),
			elog.String("gatewayPaymentRef", p.GatewayPaymentRef))
		return
	}
	if ok {
		s.l.Error("订单已取消但网关已扣款，需要人工处理退款",
			elog.String("sn", order.SN),
			elog.String("gatewayPaymentRef", p.GatewayPaymentRef),
			elog.Int64("amount", order.TotalAmount))
	}
}

func (s *service) reserveLines(order domain.Order) []product.ReserveLine {
	return slice.Map(order.Items, func(idx int, src domain.OrderItem) product.ReserveLine {
		return product.ReserveLine{
			ProductID: src.ProductID,
			VariantID: src.VariantID,
			Quantity:  src.Quantity,
		}
	})
}

// afterCommit 清空购物车并发送事件，失败只记录日志，不影响已经完成的状态变更
func (s *service) afterCommit(ctx context.Context, order domain.Order, typ string) {
	ctx = context.WithoutCancel(ctx)
	if err := s.cartSvc.ClearCart(ctx, order.BuyerID); err != nil {
		s.l.Error("清空购物车失败",
			elog.FieldErr(err),
			elog.Int64("uid", order.BuyerID),
			elog.String("sn", order.SN))
	}
	if err := s.producer.Produce(ctx, event.NewOrderEvent(typ, order)); err != nil {
		s.l.Error("发送订单事件失败",
			elog.FieldErr(err),
			elog.String("type", typ),
			elog.String("sn", order.SN))
	}
}

func (s *service) HandlePaymentFailed(ctx context.Context, p domain.Payment) error {
	order, err := s.findByGatewayOrderRef(ctx, p.GatewayOrderRef)
	if err != nil {
		return err
	}
	ok, err := s.repo.MarkFailed(ctx, order.ID, p.GatewayPaymentRef)
	if err != nil {
		return fmt.Errorf("标记支付失败出错 sn=%s: %w", order.SN, err)
	}
	if !ok {
		// 已经支付或者已经取消，失败事件来晚了
		s.l.Info("忽略支付失败事件",
			elog.String("sn", order.SN),
			elog.String("gatewayPaymentRef", p.GatewayPaymentRef))
	}
	return nil
}

func (s *service) HandleWebhook(ctx context.Context, raw []byte, signature, eventID string) error {
	evt, err := s.paymentSvc.ParseWebhook(ctx, raw, signature, eventID)
	if err != nil {
		return err
	}
	if evt.Duplicate {
		s.l.Info("收到重复的网关回调", elog.String("eventID", evt.ID), elog.String("event", evt.Event))
	}
	p := toPayment(evt.Payment)
	switch {
	case evt.IsCaptured():
		_, err = s.HandlePaymentCaptured(ctx, p)
	case evt.IsFailed():
		err = s.HandlePaymentFailed(ctx, p)
	default:
		s.l.Debug("忽略网关回调", elog.String("event", evt.Event))
		return nil
	}
	// 这两类错误重试也不会成功，不让网关重复投递
	if errors.Is(err, ErrOrderNotFound) || errors.Is(err, ErrInsufficientStock) || errors.Is(err, ErrOrderCancelled) {
		s.l.Warn("网关回调无法处理",
			elog.FieldErr(err),
			elog.String("eventID", evt.ID),
			elog.String("gatewayOrderRef", p.GatewayOrderRef))
		return nil
	}
	return err
}

func toPayment(p payment.GatewayPayment) domain.Payment {
	return domain.Payment{
		GatewayOrderRef:   p.OrderRef,
		GatewayPaymentRef: p.ID,
		Method: domain.PaymentMethod{
			Method:    p.Method.Method,
			Bank:      p.Method.Bank,
			VPA:       p.Method.VPA,
			CardLast4: p.Method.CardLast4,
		},
	}
}

func (s *service) CreateOrRetrieveIntent(ctx context.Context, uid int64, sn string) (domain.Intent, error) {
	order, err := s.FindOrder(ctx, uid, sn)
	if err != nil {
		return domain.Intent{}, err
	}
	if order.Status == domain.StatusCancelled {
		return domain.Intent{}, fmt.Errorf("%w: sn=%s", ErrOrderCancelled, sn)
	}
	if !order.Payable() {
		return domain.Intent{}, fmt.Errorf("%w: sn=%s", ErrOrderNotPayable, sn)
	}
	if order.GatewayOrderRef == "" {
		intent, err := s.paymentSvc.CreateIntent(ctx, order.TotalAmount, order.Currency, order.SN)
		if err != nil {
			return domain.Intent{}, fmt.Errorf("%w: %w", ErrGatewayUnavailable, err)
		}
		ok, err := s.repo.SetGatewayOrderRef(ctx, order.ID, intent.ID)
		if err != nil {
			return domain.Intent{}, fmt.Errorf("保存网关订单号失败: %w", err)
		}
		if ok {
			order.GatewayOrderRef = intent.ID
		} else {
			// 并发重试，以先写入的为准
			order, err = s.repo.FindOrderByID(ctx, order.ID)
			if err != nil {
				return domain.Intent{}, err
			}
		}
	}
	return domain.Intent{
		GatewayOrderRef: order.GatewayOrderRef,
		KeyID:           s.paymentSvc.KeyID(),
		Amount:          order.TotalAmount,
		Currency:        order.Currency,
	}, nil
}

func (s *service) CancelOrder(ctx context.Context, uid int64, sn string) error {
	order, err := s.FindOrder(ctx, uid, sn)
	if err != nil {
		return err
	}
	if order.Status == domain.StatusCancelled {
		return nil
	}
	if order.GatewayOrderRef != "" && !order.IsPaid() {
		// 用户可能已经付款，只是确认还没有到达
		captured, err := s.capturedPayment(ctx, order)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrGatewayUnavailable, err)
		}
		if captured != nil {
			if _, err = s.confirm(ctx, order, *captured); err != nil {
				return err
			}
			return fmt.Errorf("%w: sn=%s 已支付", ErrOrderNotCancellable, sn)
		}
	}
	ok, err := s.repo.Cancel(ctx, order.ID)
	if err != nil {
		return fmt.Errorf("取消订单失败: %w", err)
	}
	if !ok {
		return fmt.Errorf("%w: sn=%s", ErrOrderNotCancellable, sn)
	}
	return nil
}

func (s *service) FindOrder(ctx context.Context, uid int64, sn string) (domain.Order, error) {
	order, err := s.repo.FindOrderBySNAndBuyerID(ctx, sn, uid)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.Order{}, fmt.Errorf("%w: sn=%s", ErrOrderNotFound, sn)
	}
	return order, err
}

func (s *service) findByGatewayOrderRef(ctx context.Context, ref string) (domain.Order, error) {
	order, err := s.repo.FindOrderByGatewayOrderRef(ctx, ref)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.Order{}, fmt.Errorf("%w: gatewayOrderRef=%s", ErrOrderNotFound, ref)
	}
	return order, err
}

func (s *service) ListOrders(ctx context.Context, uid int64, offset, limit int) ([]domain.Order, int64, error) {
	var (
		eg     errgroup.Group
		orders []domain.Order
		total  int64
	)
	eg.Go(func() error {
		var err error
		orders, err = s.repo.ListOrders(ctx, uid, offset, limit)
		return err
	})
	eg.Go(func() error {
		var err error
		total, err = s.repo.TotalOrders(ctx, uid)
		return err
	})
	return orders, total, eg.Wait()
}

func (s *service) CloseExpiredOrders(ctx context.Context, ctime int64, limit int) (int, error) {
	closed := 0
	err := s.scanPayable(ctx, ctime, limit, false, func(order domain.Order) {
		if order.GatewayOrderRef != "" {
			captured, err := s.capturedPayment(ctx, order)
			if err != nil {
				// 网关不可用时不关闭，下一轮再试
				s.l.Warn("关闭订单前查询网关失败", elog.FieldErr(err), elog.String("sn", order.SN))
				return
			}
			if captured != nil {
				s.confirmReconciled(ctx, order, *captured)
				return
			}
		}
		ok, err := s.repo.Cancel(ctx, order.ID)
		if err != nil {
			s.l.Error("关闭超时订单失败", elog.FieldErr(err), elog.String("sn", order.SN))
			return
		}
		if ok {
			closed++
		}
	})
	return closed, err
}

func (s *service) ReconcilePendingOrders(ctx context.Context, ctime int64, limit int) (int, error) {
	confirmed := 0
	err := s.scanPayable(ctx, ctime, limit, true, func(order domain.Order) {
		captured, err := s.capturedPayment(ctx, order)
		if err != nil {
			s.l.Warn("对账查询网关失败", elog.FieldErr(err), elog.String("sn", order.SN))
			return
		}
		if captured != nil && s.confirmReconciled(ctx, order, *captured) {
			confirmed++
		}
	})
	return confirmed, err
}

func (s *service) scanPayable(ctx context.Context, ctime int64, limit int, withIntent bool, fn func(order domain.Order)) error {
	if limit <= 0 {
		limit = defaultScanLimit
	}
	var afterID int64
	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		orders, err := s.repo.FindPayableOrders(ctx, ctime, afterID, limit, withIntent)
		if err != nil {
			return fmt.Errorf("查询未支付订单失败: %w", err)
		}
		for _, order := range orders {
			fn(order)
		}
		if len(orders) < limit {
			return nil
		}
		afterID = orders[len(orders)-1].ID
	}
}

func (s *service) capturedPayment(ctx context.Context, order domain.Order) (*domain.Payment, error) {
	payments, err := s.paymentSvc.FetchOrderPayments(ctx, order.GatewayOrderRef)
	if err != nil {
		return nil, err
	}
	gp, ok := slice.Find(payments, func(src payment.GatewayPayment) bool {
		return src.Captured()
	})
	if !ok {
		return nil, nil
	}
	p := toPayment(gp)
	return &p, nil
}

func (s *service) confirmReconciled(ctx context.Context, order domain.Order, p domain.Payment) bool {
	// 扫描结果不含订单项，需要重新读取
	full, err := s.repo.FindOrderByID(ctx, order.ID)
	if err == nil {
		_, err = s.confirm(ctx, full, p)
	}
	if err != nil {
		s.l.Error("对账确认支付失败",
			elog.FieldErr(err),
			elog.String("sn", order.SN),
			elog.String("gatewayPaymentRef", p.GatewayPaymentRef))
		return false
	}
	s.l.Info("对账补确认支付", elog.String("sn", order.SN), elog.String("gatewayPaymentRef", p.GatewayPaymentRef))
	return true
}
