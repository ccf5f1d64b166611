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

package dao

import (
	"context"
	"time"

	"github.com/ecodeclub/emall/internal/order/internal/domain"
	"github.com/ecodeclub/emall/internal/pkg/database"
	"github.com/ego-component/egorm"
	"gorm.io/gorm"
)

var (
	statusPlaced    = domain.StatusPlaced.ToUint8()
	statusConfirmed = domain.StatusConfirmed.ToUint8()
	statusCancelled = domain.StatusCancelled.ToUint8()
	paymentPending  = domain.PaymentStatusPending.ToUint8()
	paymentPaid     = domain.PaymentStatusPaid.ToUint8()
	paymentFailed   = domain.PaymentStatusFailed.ToUint8()
	modeOnline      = domain.PaymentModeOnline.ToUint8()
	// 注意不能用 []uint8，会被当成 []byte
	unpaidStatuses = []int64{int64(paymentPending), int64(paymentFailed)}
)

type OrderDAO interface {
	Create(ctx context.Context, o Order, items []OrderItem) (int64, error)
	// Delete 物理删除，只用于创建网关订单失败时回滚
	Delete(ctx context.Context, id int64) error
	FindByID(ctx context.Context, id int64) (Order, error)
	FindBySN(ctx context.Context, sn string) (Order, error)
	FindBySNAndBuyerID(ctx context.Context, sn string, buyerID int64) (Order, error)
	FindByGatewayOrderRef(ctx context.Context, ref string) (Order, error)
	FindItemsByOrderID(ctx context.Context, orderID int64) ([]OrderItem, error)
	FindItemsByOrderIDs(ctx context.Context, orderIDs []int64) ([]OrderItem, error)
	List(ctx context.Context, buyerID int64, offset, limit int) ([]Order, error)
	Count(ctx context.Context, buyerID int64) (int64, error)

	// SetGatewayOrderRef 只在还没有网关订单号时写入
	SetGatewayOrderRef(ctx context.Context, id int64, ref string) (int64, error)
	// MarkPaid 以"尚未支付"为条件的 CAS，返回 0 表示已经被处理过
	MarkPaid(ctx context.Context, id int64, p Order) (int64, error)
	MarkFailed(ctx context.Context, id int64, paymentRef string) (int64, error)
	// FillPaymentMethod 只补写同一笔支付、并且还没有支付方式的订单
	FillPaymentMethod(ctx context.Context, id int64, p Order) (int64, error)
	Cancel(ctx context.Context, id int64) (int64, error)
	// MarkPaidAfterCancel 记录取消之后才到达的扣款，订单保持取消状态
	MarkPaidAfterCancel(ctx context.Context, id int64, p Order) (int64, error)

	// FindPayable 按 id 游标扫描创建时间早于 ctime、仍未支付的在线订单。
	// withIntent 为 true 时只返回已经创建了网关订单的
	FindPayable(ctx context.Context, ctime int64, afterID int64, limit int, withIntent bool) ([]Order, error)
}

type OrderGORMDAO struct {
	db *egorm.Component
}

func NewOrderGORMDAO(db *egorm.Component) OrderDAO {
	return &OrderGORMDAO{db: db}
}

func (d *OrderGORMDAO) Create(ctx context.Context, o Order, items []OrderItem) (int64, error) {
	err := database.Conn(ctx, d.db).Transaction(func(tx *gorm.DB) error {
		now := time.Now().UnixMilli()
		o.Ctime, o.Utime = now, now
		if err := tx.Create(&o).Error; err != nil {
			return err
		}
		if len(items) == 0 {
			return nil
		}
		for i := range items {
			items[i].OrderId = o.Id
			items[i].Ctime, items[i].Utime = now, now
		}
		return tx.Create(&items).Error
	})
	return o.Id, err
}

func (d *OrderGORMDAO) Delete(ctx context.Context, id int64) error {
	return database.Conn(ctx, d.db).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("order_id = ?", id).Delete(&OrderItem{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&Order{}).Error
	})
}

func (d *OrderGORMDAO) FindByID(ctx context.Context, id int64) (Order, error) {
	var res Order
	err := database.Conn(ctx, d.db).Where("id = ?", id).First(&res).Error
	return res, err
}

func (d *OrderGORMDAO) FindBySN(ctx context.Context, sn string) (Order, error) {
	var res Order
	err := database.Conn(ctx, d.db).Where("sn = ?", sn).First(&res).Error
	return res, err
}

func (d *OrderGORMDAO) FindBySNAndBuyerID(ctx context.Context, sn string, buyerID int64) (Order, error) {
	var res Order
	err := database.Conn(ctx, d.db).Where("sn = ? AND buyer_id = ?", sn, buyerID).First(&res).Error
	return res, err
}

func (d *OrderGORMDAO) FindByGatewayOrderRef(ctx context.Context, ref string) (Order, error) {
	var res Order
	if ref == "" {
		return res, gorm.ErrRecordNotFound
	}
	err := database.Conn(ctx, d.db).Where("gateway_order_ref = ?", ref).First(&res).Error
	return res, err
}

func (d *OrderGORMDAO) FindItemsByOrderID(ctx context.Context, orderID int64) ([]OrderItem, error) {
	var res []OrderItem
	err := database.Conn(ctx, d.db).Where("order_id = ?", orderID).Order("id ASC").Find(&res).Error
	return res, err
}

func (d *OrderGORMDAO) FindItemsByOrderIDs(ctx context.Context, orderIDs []int64) ([]OrderItem, error) {
	var res []OrderItem
	if len(orderIDs) == 0 {
		return res, nil
	}
	err := database.Conn(ctx, d.db).Where("order_id IN ?", orderIDs).Order("id ASC").Find(&res).Error
	return res, err
}

func (d *OrderGORMDAO) List(ctx context.Context, buyerID int64, offset, limit int) ([]Order, error) {
	var res []Order
	err := database.Conn(ctx, d.db).
		Where("buyer_id = ?", buyerID).
		Order("id DESC").
		Offset(offset).
		Limit(limit).
		Find(&res).Error
	return res, err
}

func (d *OrderGORMDAO) Count(ctx context.Context, buyerID int64) (int64, error) {
	var res int64
	err := database.Conn(ctx, d.db).Model(&Order{}).Where("buyer_id = ?", buyerID).Count(&res).Error
	return res, err
}

func (d *OrderGORMDAO) SetGatewayOrderRef(ctx context.Context, id int64, ref string) (int64, error) {
	res := database.Conn(ctx, d.db).Model(&Order{}).
		Where("id = ? AND gateway_order_ref = ''", id).
		Updates(map[string]any{
			"gateway_order_ref": ref,
			"utime":             time.Now().UnixMilli(),
		})
	return res.RowsAffected, res.Error
}

func (d *OrderGORMDAO) MarkPaid(ctx context.Context, id int64, p Order) (int64, error) {
	now := time.Now().UnixMilli()
	res := database.Conn(ctx, d.db).Model(&Order{}).
		Where("id = ? AND status = ? AND payment_status IN ?", id, statusPlaced, unpaidStatuses).
		Updates(map[string]any{
			"payment_status":      paymentPaid,
			"status":              statusConfirmed,
			"gateway_payment_ref": p.GatewayPaymentRef,
			"payment_method":      p.PaymentMethod,
			"payment_bank":        p.PaymentBank,
			"payment_vpa":         p.PaymentVpa,
			"card_last4":          p.CardLast4,
			"paid_at":             now,
			"utime":               now,
		})
	return res.RowsAffected, res.Error
}

func (d *OrderGORMDAO) MarkFailed(ctx context.Context, id int64, paymentRef string) (int64, error) {
	updates := map[string]any{
		"payment_status": paymentFailed,
		"status":         statusPlaced,
		"utime":          time.Now().UnixMilli(),
	}
	if paymentRef != "" {
		updates["gateway_payment_ref"] = paymentRef
	}
	res := database.Conn(ctx, d.db).Model(&Order{}).
		Where("id = ? AND status = ? AND payment_status <> ?", id, statusPlaced, paymentPaid).
		Updates(updates)
	return res.RowsAffected, res.Error
}

func (d *OrderGORMDAO) FillPaymentMethod(ctx context.Context, id int64, p Order) (int64, error) {
	res := database.Conn(ctx, d.db).Model(&Order{}).
		Where("id = ? AND payment_status = ? AND gateway_payment_ref = ? AND payment_method = ''",
			id, paymentPaid, p.GatewayPaymentRef).
		Updates(map[string]any{
			"payment_method": p.PaymentMethod,
			"payment_bank":   p.PaymentBank,
			"payment_vpa":    p.PaymentVpa,
			"card_last4":     p.CardLast4,
			"utime":          time.Now().UnixMilli(),
		})
	return res.RowsAffected, res.Error
}

func (d *OrderGORMDAO) MarkPaidAfterCancel(ctx context.Context, id int64, p Order) (int64, error) {
	now := time.Now().UnixMilli()
	res := database.Conn(ctx, d.db).Model(&Order{}).
		Where("id = ? AND status = ? AND payment_status IN ?", id, statusCancelled, unpaidStatuses).
		Updates(map[string]any{
			"payment_status":      paymentPaid,
			"gateway_payment_ref": p.GatewayPaymentRef,
			"payment_method":      p.PaymentMethod,
			"payment_bank":        p.PaymentBank,
			"payment_vpa":         p.PaymentVpa,
			"card_last4":          p.CardLast4,
			"paid_at":             now,
			"utime":               now,
		})
	return res.RowsAffected, res.Error
}

func (d *OrderGORMDAO) Cancel(ctx context.Context, id int64) (int64, error) {
	res := database.Conn(ctx, d.db).Model(&Order{}).
		Where("id = ? AND status = ? AND payment_status <> ?", id, statusPlaced, paymentPaid).
		Updates(map[string]any{
			"status": statusCancelled,
			"utime":  time.Now().UnixMilli(),
		})
	return res.RowsAffected, res.Error
}

func (d *OrderGORMDAO) FindPayable(ctx context.Context, ctime int64, afterID int64, limit int, withIntent bool) ([]Order, error) {
	var res []Order
	query := database.Conn(ctx, d.db).
		Where("id > ? AND ctime < ? AND payment_mode = ? AND status = ? AND payment_status IN ?",
			afterID, ctime, modeOnline, statusPlaced, unpaidStatuses)
	if withIntent {
		query = query.Where("gateway_order_ref <> ''")
	}
	err := query.Order("id ASC").Limit(limit).Find(&res).Error
	return res, err
}
