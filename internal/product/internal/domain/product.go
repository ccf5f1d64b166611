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

package domain

type Status uint8

func (s Status) ToUint8() uint8 {
	return uint8(s)
}

const (
	StatusOffShelf Status = 1 // 下架
	StatusOnShelf  Status = 2 // 上架
)

// Product 商品。价格单位为最小货币单位，例如 10000 表示 100.00 卢比
type Product struct {
	ID          int64
	SN          string
	Name        string
	Description string
	Image       string
	Price       int64
	// Stock 没有尺码的商品直接在商品上记库存
	Stock    int64
	InStock  bool
	Status   Status
	Variants []Variant
	Ctime    int64
	Utime    int64
}

// Variant 尺码规格，有尺码的商品库存记在规格上
type Variant struct {
	ID        int64
	ProductID int64
	Size      string
	Stock     int64
	InStock   bool
}

func (p Product) FindVariant(id int64) (Variant, bool) {
	for _, v := range p.Variants {
		if v.ID == id {
			return v, true
		}
	}
	return Variant{}, false
}

// ReserveLine 一行扣减请求。VariantID 不为 0 时扣规格库存，否则扣商品库存
type ReserveLine struct {
	ProductID int64
	VariantID int64
	Quantity  int64
}

// Shortfall 库存不足的行，商品或规格已经不存在也算
type Shortfall struct {
	ProductID int64
	VariantID int64
	Requested int64
}
