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
	"fmt"

	"github.com/ecodeclub/ekit/mapx"
	"github.com/ecodeclub/ekit/slice"
	"github.com/ecodeclub/ekit/sqlx"
	"github.com/ecodeclub/emall/internal/order/internal/domain"
	"github.com/ecodeclub/emall/internal/order/internal/repository/dao"
)

type OrderRepository interface {
	CreateOrder(ctx context.Context, order domain.Order) (domain.Order, error)
	DeleteOrder(ctx context.Context, id int64) error
	FindOrderByID(ctx context.Context, id int64) (domain.Order, error)
	FindOrderBySN(ctx context.Context, sn string) (domain.Order, error)
	FindOrderBySNAndBuyerID(ctx context.Context, sn string, buyerID int64) (domain.Order, error)
	FindOrderByGatewayOrderRef(ctx context.Context, ref string) (domain.Order, error)
	ListOrders(ctx context.Context, buyerID int64, offset, limit int) ([]domain.Order, error)
	TotalOrders(ctx context.Context, buyerID int64) (int64, error)

	SetGatewayOrderRef(ctx context.Context, id int64, ref string) (bool, error)
	MarkPaid(ctx context.Context, id int64, p domain.Payment) (bool, error)
	MarkFailed(ctx context.Context, id int64, paymentRef string) (bool, error)
	FillPaymentMethod(ctx context.Context, id int64, p domain.Payment) (bool, error)
	Cancel(ctx context.Context, id int64) (bool, error)
	MarkPaidAfterCancel(ctx context.Context, id int64, p domain.Payment) (bool, error)
	// FindPayableOrders 不包含订单项
	FindPayableOrders(ctx context.Context, ctime int64, afterID int64, limit int, withIntent bool) ([]domain.Order, error)
}

func NewRepository(d dao.OrderDAO) OrderRepository {
	return &orderRepository{
		d: d,
	}
}

type orderRepository struct {
	d dao.OrderDAO
}

func (o *orderRepository) CreateOrder(ctx context.Context, order domain.Order) (domain.Order, error) {
	oid, err := o.d.Create(ctx, o.toOrderEntity(order), o.toOrderItemEntities(order.Items))
	if err != nil {
		return domain.Order{}, err
	}
	order.ID = oid
	return order, nil
}

func (o *orderRepository) DeleteOrder(ctx context.Context, id int64) error {
	return o.d.Delete(ctx, id)
}

func (o *orderRepository) FindOrderByID(ctx context.Context, id int64) (domain.Order, error) {
	order, err := o.d.FindByID(ctx, id)
	if err != nil {
		return domain.Order{}, err
	}
	return o.withItems(ctx, order)
}

func (o *orderRepository) FindOrderBySN(ctx context.Context, sn string) (domain.Order, error) {
	order, err := o.d.FindBySN(ctx, sn)
	if err != nil {
		return domain.Order{}, err
	}
	return o.withItems(ctx, order)
}

func (o *orderRepository) FindOrderBySNAndBuyerID(ctx context.Context, sn string, buyerID int64) (domain.Order, error) {
	order, err := o.d.FindBySNAndBuyerID(ctx, sn, buyerID)
	if err != nil {
		return domain.Order{}, fmt.Errorf("通过订单序列号及买家ID查找订单失败: %w", err)
	}
	return o.withItems(ctx, order)
}

func (o *orderRepository) FindOrderByGatewayOrderRef(ctx context.Context, ref string) (domain.Order, error) {
	order, err := o.d.FindByGatewayOrderRef(ctx, ref)
	if err != nil {
		return domain.Order{}, fmt.Errorf("通过网关订单号查找订单失败: %w", err)
	}
	return o.withItems(ctx, order)
}

func (o *orderRepository) withItems(ctx context.Context, order dao.Order) (domain.Order, error) {
	items, err := o.d.FindItemsByOrderID(ctx, order.Id)
	if err != nil {
		return domain.Order{}, fmt.Errorf("通过订单ID查找订单项失败: %w", err)
	}
	return o.toOrderDomain(order, items), nil
}

func (o *orderRepository) ListOrders(ctx context.Context, buyerID int64, offset, limit int) ([]domain.Order, error) {
	orders, err := o.d.List(ctx, buyerID, offset, limit)
	if err != nil {
		return nil, err
	}
	items, err := o.d.FindItemsByOrderIDs(ctx, slice.Map(orders, func(idx int, src dao.Order) int64 {
		return src.Id
	}))
	if err != nil {
		return nil, err
	}
	itemMap := mapx.NewMultiBuiltinMap[int64, dao.OrderItem](len(orders))
	for _, item := range items {
		_ = itemMap.Put(item.OrderId, item)
	}
	return slice.Map(orders, func(idx int, src dao.Order) domain.Order {
		its, _ := itemMap.Get(src.Id)
		return o.toOrderDomain(src, its)
	}), nil
}

func (o *orderRepository) TotalOrders(ctx context.Context, buyerID int64) (int64, error) {
	return o.d.Count(ctx, buyerID)
}

func (o *orderRepository) SetGatewayOrderRef(ctx context.Context, id int64, ref string) (bool, error) {
	n, err := o.d.SetGatewayOrderRef(ctx, id, ref)
	return n > 0, err
}

func (o *orderRepository) MarkPaid(ctx context.Context, id int64, p domain.Payment) (bool, error) {
	n, err := o.d.MarkPaid(ctx, id, o.toPaymentEntity(p))
	return n > 0, err
}

func (o *orderRepository) FillPaymentMethod(ctx context.Context, id int64, p domain.Payment) (bool, error) {
	n, err := o.d.FillPaymentMethod(ctx, id, o.toPaymentEntity(p))
	return n > 0, err
}

func (o *orderRepository) MarkPaidAfterCancel(ctx context.Context, id int64, p domain.Payment) (bool, error) {
	n, err := o.d.MarkPaidAfterCancel(ctx, id, o.toPaymentEntity(p))
	return n > 0, err
}

func (o *orderRepository) toPaymentEntity(p domain.Payment) dao.Order {
	return dao.Order{
		GatewayPaymentRef: p.GatewayPaymentRef,
		PaymentMethod:     p.Method.Method,
		PaymentBank:       p.Method.Bank,
		PaymentVpa:        p.Method.VPA,
		CardLast4:         p.Method.CardLast4,
	}
}

func (o *orderRepository) MarkFailed(ctx context.Context, id int64, paymentRef string) (bool, error) {
	n, err := o.d.MarkFailed(ctx, id, paymentRef)
	return n > 0, err
}

func (o *orderRepository) Cancel(ctx context.Context, id int64) (bool, error) {
	n, err := o.d.Cancel(ctx, id)
	return n > 0, err
}

func (o *orderRepository) FindPayableOrders(ctx context.Context, ctime int64, afterID int64, limit int, withIntent bool) ([]domain.Order, error) {
	orders, err := o.d.FindPayable(ctx, ctime, afterID, limit, withIntent)
	if err != nil {
		return nil, err
	}
	return slice.Map(orders, func(idx int, src dao.Order) domain.Order {
		return o.toOrderDomain(src, nil)
	}), nil
}

func (o *orderRepository) toOrderEntity(order domain.Order) dao.Order {
	return dao.Order{
		Id:                order.ID,
		SN:                order.SN,
		BuyerId:           order.BuyerID,
		PaymentMode:       order.PaymentMode.ToUint8(),
		PaymentStatus:     order.PaymentStatus.ToUint8(),
		Status:            order.Status.ToUint8(),
		TotalAmount:       order.TotalAmount,
		Currency:          order.Currency,
		GatewayOrderRef:   order.GatewayOrderRef,
		GatewayPaymentRef: order.GatewayPaymentRef,
		PaymentMethod:     order.PaymentMethod.Method,
		PaymentBank:       order.PaymentMethod.Bank,
		PaymentVpa:        order.PaymentMethod.VPA,
		CardLast4:         order.PaymentMethod.CardLast4,
		HasCustomItems:    order.HasCustomItems,
		Address:           sqlx.JsonColumn[domain.Address]{Val: order.Address, Valid: true},
		PaidAt:            order.PaidAt,
	}
}

func (o *orderRepository) toOrderItemEntities(orderItems []domain.OrderItem) []dao.OrderItem {
	return slice.Map(orderItems, func(idx int, src domain.OrderItem) dao.OrderItem {
		item := dao.OrderItem{
			ProductId:   src.ProductID,
			VariantId:   src.VariantID,
			ProductName: src.ProductName,
			Size:        src.Size,
			Quantity:    src.Quantity,
			UnitPrice:   src.UnitPrice,
		}
		if src.CustomSize != nil {
			item.CustomSize = sqlx.JsonColumn[domain.CustomSize]{Val: *src.CustomSize, Valid: true}
		}
		return item
	})
}

func (o *orderRepository) toOrderDomain(order dao.Order, orderItems []dao.OrderItem) domain.Order {
	return domain.Order{
		ID:                order.Id,
		SN:                order.SN,
		BuyerID:           order.BuyerId,
		Address:           order.Address.Val,
		PaymentMode:       domain.PaymentMode(order.PaymentMode),
		PaymentStatus:     domain.PaymentStatus(order.PaymentStatus),
		Status:            domain.OrderStatus(order.Status),
		TotalAmount:       order.TotalAmount,
		Currency:          order.Currency,
		GatewayOrderRef:   order.GatewayOrderRef,
		GatewayPaymentRef: order.GatewayPaymentRef,
		PaymentMethod: domain.PaymentMethod{
			Method:    order.PaymentMethod,
			Bank:      order.PaymentBank,
			VPA:       order.PaymentVpa,
			CardLast4: order.CardLast4,
		},
		HasCustomItems: order.HasCustomItems,
		PaidAt:         order.PaidAt,
		Items: slice.Map(orderItems, func(idx int, src dao.OrderItem) domain.OrderItem {
			item := domain.OrderItem{
				ProductID:   src.ProductId,
				ProductName: src.ProductName,
				VariantID:   src.VariantId,
				Size:        src.Size,
				Quantity:    src.Quantity,
				UnitPrice:   src.UnitPrice,
			}
			if src.CustomSize.Valid {
				cs := src.CustomSize.Val
				item.CustomSize = &cs
			}
			return item
		}),
		Ctime: order.Ctime,
		Utime: order.Utime,
	}
}
