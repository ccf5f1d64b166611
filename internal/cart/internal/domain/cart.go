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

type Cart struct {
	Uid   int64
	Items []Item
}

// TotalPrice 按加入购物车时的价格计算
func (c Cart) TotalPrice() int64 {
	var total int64
	for _, item := range c.Items {
		total += item.Quantity * item.PriceAtAddition
	}
	return total
}

func (c Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

func (c Cart) FindItem(productID, variantID int64) (Item, bool) {
	for _, item := range c.Items {
		if item.ProductID == productID && item.VariantID == variantID {
			return item, true
		}
	}
	return Item{}, false
}

type Item struct {
	ID          int64
	ProductID   int64
	ProductName string
	// VariantID 为 0 表示商品没有尺码规格
	VariantID int64
	Size      string
	Quantity  int64
	// PriceAtAddition 加入购物车时的商品单价，下单时直接使用
	PriceAtAddition int64
	CustomSize      *CustomSize
}

// CustomSize 定制尺寸，只记录，不参与计价
type CustomSize struct {
	Length   float64 `json:"length,omitempty"`
	Width    float64 `json:"width,omitempty"`
	Height   float64 `json:"height,omitempty"`
	Area     float64 `json:"area,omitempty"`
	Diameter float64 `json:"diameter,omitempty"`
	Unit     string  `json:"unit,omitempty"`
	Notes    string  `json:"notes,omitempty"`
}
