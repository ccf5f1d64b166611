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

package web

import "github.com/ecodeclub/emall/internal/cart/internal/domain"

type ItemKey struct {
	ProductID int64 `json:"productId"`
	VariantID int64 `json:"variantId"`
}

type AddReq struct {
	ProductID  int64       `json:"productId"`
	VariantID  int64       `json:"variantId"`
	Quantity   int64       `json:"quantity"`
	CustomSize *CustomSize `json:"customSize,omitempty"`
}

func (r AddReq) toDomain() domain.Item {
	item := domain.Item{
		ProductID: r.ProductID,
		VariantID: r.VariantID,
		Quantity:  r.Quantity,
	}
	if r.CustomSize != nil {
		cs := domain.CustomSize(*r.CustomSize)
		item.CustomSize = &cs
	}
	return item
}

type UpdateQuantityReq struct {
	ProductID int64 `json:"productId"`
	VariantID int64 `json:"variantId"`
	Quantity  int64 `json:"quantity"`
}

type CustomSize struct {
	Length   float64 `json:"length,omitempty"`
	Width    float64 `json:"width,omitempty"`
	Height   float64 `json:"height,omitempty"`
	Area     float64 `json:"area,omitempty"`
	Diameter float64 `json:"diameter,omitempty"`
	Unit     string  `json:"unit,omitempty"`
	Notes    string  `json:"notes,omitempty"`
}

type Cart struct {
	TotalPrice int64  `json:"totalPrice"`
	Items      []Item `json:"items,omitempty"`
}

type Item struct {
	ProductID       int64       `json:"productId"`
	ProductName     string      `json:"productName"`
	VariantID       int64       `json:"variantId,omitempty"`
	Size            string      `json:"size,omitempty"`
	Quantity        int64       `json:"quantity"`
	PriceAtAddition int64       `json:"priceAtAddition"`
	CustomSize      *CustomSize `json:"customSize,omitempty"`
}

func newItem(src domain.Item) Item {
	item := Item{
		ProductID:       src.ProductID,
		ProductName:     src.ProductName,
		VariantID:       src.VariantID,
		Size:            src.Size,
		Quantity:        src.Quantity,
		PriceAtAddition: src.PriceAtAddition,
	}
	if src.CustomSize != nil {
		cs := CustomSize(*src.CustomSize)
		item.CustomSize = &cs
	}
	return item
}
