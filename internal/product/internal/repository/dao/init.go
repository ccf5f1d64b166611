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

import "github.com/ego-component/egorm"

const (
	StatusOffShelf uint8 = 1
	StatusOnShelf  uint8 = 2
)

type Product struct {
	Id          int64  `gorm:"primaryKey;autoIncrement;comment:商品自增ID"`
	SN          string `gorm:"type:varchar(255);not null;uniqueIndex:uniq_product_sn;comment:商品序列号"`
	Name        string `gorm:"type:varchar(255);not null;comment:商品名称"`
	Description string `gorm:"not null;comment:商品描述"`
	Image       string `gorm:"type:varchar(512);not null;comment:商品缩略图,CDN绝对路径"`
	Price       int64  `gorm:"not null;comment:商品单价,最小货币单位"`
	Stock       int64  `gorm:"not null;default:0;comment:库存数量,没有规格的商品使用"`
	InStock     bool   `gorm:"not null;default:false;comment:是否有货"`
	Status      uint8  `gorm:"type:tinyint unsigned;not null;default:1;comment:状态 1=下架 2=上架"`
	Ctime       int64
	Utime       int64
}

type ProductVariant struct {
	Id        int64  `gorm:"primaryKey;autoIncrement;comment:规格自增ID"`
	ProductID int64  `gorm:"column:product_id;not null;uniqueIndex:uniq_product_size;comment:商品自增ID"`
	Size      string `gorm:"type:varchar(32);not null;uniqueIndex:uniq_product_size;comment:尺码"`
	Stock     int64  `gorm:"not null;default:0;comment:库存数量"`
	InStock   bool   `gorm:"not null;default:false;comment:是否有货"`
	Ctime     int64
	Utime     int64
}

func InitTables(db *egorm.Component) error {
	return db.AutoMigrate(&Product{}, &ProductVariant{})
}
