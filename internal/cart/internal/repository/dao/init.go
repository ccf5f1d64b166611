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
	"github.com/ecodeclub/ekit/sqlx"
	"github.com/ecodeclub/emall/internal/cart/internal/domain"
	"github.com/ego-component/egorm"
)

type CartItem struct {
	Id              int64                              `gorm:"primaryKey;autoIncrement"`
	Uid             int64                              `gorm:"not null;uniqueIndex:uniq_cart_item;comment:用户ID"`
	ProductID       int64                              `gorm:"column:product_id;not null;uniqueIndex:uniq_cart_item;comment:商品ID"`
	VariantID       int64                              `gorm:"column:variant_id;not null;default:0;uniqueIndex:uniq_cart_item;comment:规格ID,0表示无规格"`
	ProductName     string                             `gorm:"type:varchar(255);not null;comment:商品名称快照"`
	Size            string                             `gorm:"type:varchar(32);not null;default:'';comment:尺码"`
	Quantity        int64                              `gorm:"not null;comment:数量"`
	PriceAtAddition int64                              `gorm:"not null;comment:加入购物车时的单价"`
	CustomSize      sqlx.JsonColumn[domain.CustomSize] `gorm:"type:json;comment:定制尺寸JSON"`
	Ctime           int64
	Utime           int64
}

func InitTables(db *egorm.Component) error {
	return db.AutoMigrate(&CartItem{})
}
