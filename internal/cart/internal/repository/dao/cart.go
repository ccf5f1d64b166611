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

	"github.com/ecodeclub/emall/internal/pkg/database"
	"github.com/ego-component/egorm"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CartDAO interface {
	FindByUid(ctx context.Context, uid int64) ([]CartItem, error)
	// Add 同一商品同一规格再次加入时累加数量，单价保持第一次加入时的价格
	Add(ctx context.Context, item CartItem) error
	UpdateQuantity(ctx context.Context, uid, productID, variantID, quantity int64) (int64, error)
	Delete(ctx context.Context, uid, productID, variantID int64) (int64, error)
	DeleteByUid(ctx context.Context, uid int64) error
}

type CartGORMDAO struct {
	db *egorm.Component
}

func NewCartGORMDAO(db *egorm.Component) CartDAO {
	return &CartGORMDAO{db: db}
}

func (d *CartGORMDAO) FindByUid(ctx context.Context, uid int64) ([]CartItem, error) {
	var res []CartItem
	err := database.Conn(ctx, d.db).Where("uid = ?", uid).Order("id ASC").Find(&res).Error
	return res, err
}

func (d *CartGORMDAO) Add(ctx context.Context, item CartItem) error {
	now := time.Now().UnixMilli()
	item.Ctime, item.Utime = now, now
	assignments := map[string]any{
		"quantity": gorm.Expr("quantity + ?", item.Quantity),
		"utime":    now,
	}
	if item.CustomSize.Valid {
		assignments["custom_size"] = item.CustomSize
	}
	return database.Conn(ctx, d.db).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "uid"}, {Name: "product_id"}, {Name: "variant_id"}},
		DoUpdates: clause.Assignments(assignments),
	}).Create(&item).Error
}

func (d *CartGORMDAO) UpdateQuantity(ctx context.Context, uid, productID, variantID, quantity int64) (int64, error) {
	res := database.Conn(ctx, d.db).Model(&CartItem{}).
		Where("uid = ? AND product_id = ? AND variant_id = ?", uid, productID, variantID).
		Updates(map[string]any{
			"quantity": quantity,
			"utime":    time.Now().UnixMilli(),
		})
	return res.RowsAffected, res.Error
}

func (d *CartGORMDAO) Delete(ctx context.Context, uid, productID, variantID int64) (int64, error) {
	res := database.Conn(ctx, d.db).
		Where("uid = ? AND product_id = ? AND variant_id = ?", uid, productID, variantID).
		Delete(&CartItem{})
	return res.RowsAffected, res.Error
}

func (d *CartGORMDAO) DeleteByUid(ctx context.Context, uid int64) error {
	return database.Conn(ctx, d.db).Where("uid = ?", uid).Delete(&CartItem{}).Error
}
