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

type ProductDAO interface {
	FindByID(ctx context.Context, id int64) (Product, error)
	FindVariantsByProductID(ctx context.Context, productID int64) ([]ProductVariant, error)
	List(ctx context.Context, offset, limit int) ([]Product, error)
	Count(ctx context.Context) (int64, error)
	Save(ctx context.Context, p Product, variants []ProductVariant) (int64, error)
	SetStock(ctx context.Context, productID, stock int64) error
	SetVariantStock(ctx context.Context, productID, variantID, stock int64) error
	// DecrStock 库存足够时扣减，返回是否扣减成功
	DecrStock(ctx context.Context, productID, quantity int64) (bool, error)
	DecrVariantStock(ctx context.Context, productID, variantID, quantity int64) (bool, error)
}

type ProductGORMDAO struct {
	db *egorm.Component
}

func NewProductGORMDAO(db *egorm.Component) ProductDAO {
	return &ProductGORMDAO{db: db}
}

func (d *ProductGORMDAO) FindByID(ctx context.Context, id int64) (Product, error) {
	var res Product
	err := database.Conn(ctx, d.db).Where("id = ?", id).First(&res).Error
	return res, err
}

func (d *ProductGORMDAO) FindVariantsByProductID(ctx context.Context, productID int64) ([]ProductVariant, error) {
	var res []ProductVariant
	err := database.Conn(ctx, d.db).Where("product_id = ?", productID).
		Order("id ASC").Find(&res).Error
	return res, err
}

func (d *ProductGORMDAO) List(ctx context.Context, offset, limit int) ([]Product, error) {
	var res []Product
	err := d.db.WithContext(ctx).Where("status = ?", StatusOnShelf).
		Order("id DESC").Offset(offset).Limit(limit).Find(&res).Error
	return res, err
}

func (d *ProductGORMDAO) Count(ctx context.Context) (int64, error) {
	var res int64
	err := d.db.WithContext(ctx).Model(&Product{}).Where("status = ?", StatusOnShelf).Count(&res).Error
	return res, err
}

// Save 按 SN 新建或者更新商品，规格按 (product_id, size) 更新。
// 库存只在新建时写入，已有商品的库存由下单扣减和 SetStock 维护，再次保存不会覆盖
func (d *ProductGORMDAO) Save(ctx context.Context, p Product, variants []ProductVariant) (int64, error) {
	now := time.Now().UnixMilli()
	p.Ctime, p.Utime = now, now
	p.InStock = p.Stock > 0
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "sn"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"name", "description", "image", "price", "status", "utime",
			}),
		}).Create(&p).Error
		if err != nil {
			return err
		}
		// 冲突更新时拿不到可靠的自增主键，按 SN 再查一次
		err = tx.Model(&Product{}).Where("sn = ?", p.SN).Select("id").Scan(&p.Id).Error
		if err != nil {
			return err
		}
		for i := range variants {
			v := variants[i]
			v.ProductID = p.Id
			v.InStock = v.Stock > 0
			v.Ctime, v.Utime = now, now
			err = tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "product_id"}, {Name: "size"}},
				DoUpdates: clause.AssignmentColumns([]string{"utime"}),
			}).Create(&v).Error
			if err != nil {
				return err
			}
		}
		return nil
	})
	return p.Id, err
}

func (d *ProductGORMDAO) SetStock(ctx context.Context, productID, stock int64) error {
	return d.db.WithContext(ctx).Model(&Product{}).
		Where("id = ?", productID).
		Updates(map[string]any{
			"stock":    stock,
			"in_stock": stock > 0,
			"utime":    time.Now().UnixMilli(),
		}).Error
}

func (d *ProductGORMDAO) SetVariantStock(ctx context.Context, productID, variantID, stock int64) error {
	res := d.db.WithContext(ctx).Model(&ProductVariant{}).
		Where("id = ? AND product_id = ?", variantID, productID).
		Updates(map[string]any{
			"stock":    stock,
			"in_stock": stock > 0,
			"utime":    time.Now().UnixMilli(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (d *ProductGORMDAO) DecrStock(ctx context.Context, productID, quantity int64) (bool, error) {
	return d.decr(ctx, &Product{}, "id = ?", []any{productID}, quantity)
}

func (d *ProductGORMDAO) DecrVariantStock(ctx context.Context, productID, variantID, quantity int64) (bool, error) {
	return d.decr(ctx, &ProductVariant{}, "id = ? AND product_id = ?", []any{variantID, productID}, quantity)
}

// decr 判断和扣减在同一条 UPDATE 里完成，库存不会被扣成负数。
// 扣到 0 的时候在同一个事务里把 in_stock 置为 false
func (d *ProductGORMDAO) decr(ctx context.Context, model any, query string, args []any, quantity int64) (bool, error) {
	db := database.Conn(ctx, d.db)
	now := time.Now().UnixMilli()
	res := db.Model(model).
		Where(query+" AND stock >= ?", append(args, quantity)...).
		Updates(map[string]any{
			"stock": gorm.Expr("stock - ?", quantity),
			"utime": now,
		})
	if res.Error != nil || res.RowsAffected == 0 {
		return false, res.Error
	}
	err := db.Model(model).
		Where(query+" AND stock = 0", args...).
		Updates(map[string]any{
			"in_stock": false,
			"utime":    now,
		}).Error
	return err == nil, err
}
