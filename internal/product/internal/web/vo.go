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

import (
	"github.com/ecodeclub/ekit/slice"
	"github.com/ecodeclub/emall/internal/product/internal/domain"
)

type IDReq struct {
	ID int64 `json:"id"`
}

type ListReq struct {
	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

type ListResp struct {
	Products []Product `json:"products,omitempty"`
	Total    int64     `json:"total,omitempty"`
}

type SaveReq struct {
	Product Product `json:"product"`
}

type RestockReq struct {
	ProductID int64 `json:"productId"`
	VariantID int64 `json:"variantId"`
	Stock     int64 `json:"stock"`
}

type Product struct {
	ID          int64     `json:"id,omitempty"`
	SN          string    `json:"sn"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Image       string    `json:"image"`
	Price       int64     `json:"price"`
	Stock       int64     `json:"stock"`
	InStock     bool      `json:"inStock"`
	Status      uint8     `json:"status"`
	Variants    []Variant `json:"variants,omitempty"`
}

type Variant struct {
	ID      int64  `json:"id,omitempty"`
	Size    string `json:"size"`
	Stock   int64  `json:"stock"`
	InStock bool   `json:"inStock"`
}

func newProduct(p domain.Product) Product {
	return Product{
		ID:          p.ID,
		SN:          p.SN,
		Name:        p.Name,
		Description: p.Description,
		Image:       p.Image,
		Price:       p.Price,
		Stock:       p.Stock,
		InStock:     p.InStock,
		Status:      p.Status.ToUint8(),
		Variants: slice.Map(p.Variants, func(idx int, src domain.Variant) Variant {
			return Variant{
				ID:      src.ID,
				Size:    src.Size,
				Stock:   src.Stock,
				InStock: src.InStock,
			}
		}),
	}
}

func (p Product) toDomain() domain.Product {
	return domain.Product{
		ID:          p.ID,
		SN:          p.SN,
		Name:        p.Name,
		Description: p.Description,
		Image:       p.Image,
		Price:       p.Price,
		Stock:       p.Stock,
		Status:      domain.Status(p.Status),
		Variants: slice.Map(p.Variants, func(idx int, src Variant) domain.Variant {
			return domain.Variant{
				Size:  src.Size,
				Stock: src.Stock,
			}
		}),
	}
}
