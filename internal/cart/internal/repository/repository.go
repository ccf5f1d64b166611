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

	"github.com/ecodeclub/ekit/slice"
	"github.com/ecodeclub/ekit/sqlx"
	"github.com/ecodeclub/emall/internal/cart/internal/domain"
	"github.com/ecodeclub/emall/internal/cart/internal/repository/dao"
)

type CartRepository interface {
	FindByUid(ctx context.Context, uid int64) (domain.Cart, error)
	Add(ctx context.Context, uid int64, item domain.Item) error
	UpdateQuantity(ctx context.Context, uid int64, item domain.Item) (int64, error)
	Delete(ctx context.Context, uid, productID, variantID int64) (int64, error)
	Clear(ctx context.Context, uid int64) error
}

type cartRepository struct {
	dao dao.CartDAO
}

func NewCartRepository(d dao.CartDAO) CartRepository {
	return &cartRepository{dao: d}
}

func (r *cartRepository) FindByUid(ctx context.Context, uid int64) (domain.Cart, error) {
	items, err := r.dao.FindByUid(ctx, uid)
	if err != nil {
		return domain.Cart{}, err
	}
	return domain.Cart{
		Uid: uid,
		Items: slice.Map(items, func(idx int, src dao.CartItem) domain.Item {
			return r.toDomain(src)
		}),
	}, nil
}

func (r *cartRepository) Add(ctx context.Context, uid int64, item domain.Item) error {
	return r.dao.Add(ctx, r.toEntity(uid, item))
}

func (r *cartRepository) UpdateQuantity(ctx context.Context, uid int64, item domain.Item) (int64, error) {
	return r.dao.UpdateQuantity(ctx, uid, item.ProductID, item.VariantID, item.Quantity)
}

func (r *cartRepository) Delete(ctx context.Context, uid, productID, variantID int64) (int64, error) {
	return r.dao.Delete(ctx, uid, productID, variantID)
}

func (r *cartRepository) Clear(ctx context.Context, uid int64) error {
	return r.dao.DeleteByUid(ctx, uid)
}

func (r *cartRepository) toDomain(src dao.CartItem) domain.Item {
	item := domain.Item{
		ID:              src.Id,
		ProductID:       src.ProductID,
		ProductName:     src.ProductName,
		VariantID:       src.VariantID,
		Size:            src.Size,
		Quantity:        src.Quantity,
		PriceAtAddition: src.PriceAtAddition,
	}
	if src.CustomSize.Valid {
		cs := src.CustomSize.Val
		item.CustomSize = &cs
	}
	return item
}

func (r *cartRepository) toEntity(uid int64, item domain.Item) dao.CartItem {
	res := dao.CartItem{
		Uid:             uid,
		ProductID:       item.ProductID,
		VariantID:       item.VariantID,
		ProductName:     item.ProductName,
		Size:            item.Size,
		Quantity:        item.Quantity,
		PriceAtAddition: item.PriceAtAddition,
	}
	if item.CustomSize != nil {
		res.CustomSize = sqlx.JsonColumn[domain.CustomSize]{Val: *item.CustomSize, Valid: true}
	}
	return res
}
