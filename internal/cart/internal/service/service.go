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

package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/ecodeclub/emall/internal/cart/internal/domain"
	"github.com/ecodeclub/emall/internal/cart/internal/repository"
	"github.com/ecodeclub/emall/internal/product"
)

var (
	ErrProductNotFound  = errors.New("商品不存在")
	ErrVariantNotFound  = errors.New("商品规格不存在")
	ErrItemNotFound     = errors.New("购物车中没有该商品")
	ErrInvalidQuantity  = errors.New("商品数量必须大于0")
	ErrQuantityExceeded = errors.New("商品数量超过上限")
)

// MaxQuantity 购物车中单行商品的数量上限
const MaxQuantity int64 = 999

//go:generate mockgen -source=./service.go -package=cartmocks -destination=../../mocks/cart.mock.go Service
type Service interface {
	GetCart(ctx context.Context, uid int64) (domain.Cart, error)
	// Add 以商品当前价格作为加入时的单价
	Add(ctx context.Context, uid int64, item domain.Item) error
	Remove(ctx context.Context, uid, productID, variantID int64) error
	UpdateQuantity(ctx context.Context, uid int64, item domain.Item) error
	ClearCart(ctx context.Context, uid int64) error
}

type service struct {
	repo       repository.CartRepository
	productSvc product.Service
}

func NewService(repo repository.CartRepository, productSvc product.Service) Service {
	return &service{repo: repo, productSvc: productSvc}
}

func (s *service) GetCart(ctx context.Context, uid int64) (domain.Cart, error) {
	return s.repo.FindByUid(ctx, uid)
}

func (s *service) Add(ctx context.Context, uid int64, item domain.Item) error {
	if item.Quantity <= 0 {
		return ErrInvalidQuantity
	}
	if item.Quantity > MaxQuantity {
		return fmt.Errorf("%w: %d", ErrQuantityExceeded, item.Quantity)
	}
	p, err := s.productSvc.FindByID(ctx, item.ProductID)
	if errors.Is(err, product.ErrProductNotFound) {
		return fmt.Errorf("%w: %d", ErrProductNotFound, item.ProductID)
	}
	if err != nil {
		return err
	}
	if item.VariantID > 0 {
		v, ok := p.FindVariant(item.VariantID)
		if !ok {
			return fmt.Errorf("%w: pid=%d, vid=%d", ErrVariantNotFound, item.ProductID, item.VariantID)
		}
		item.Size = v.Size
	}
	// 再次加入会累加到已有的行上
	c, err := s.repo.FindByUid(ctx, uid)
	if err != nil {
		return err
	}
	if existing, ok := c.FindItem(item.ProductID, item.VariantID); ok &&
		existing.Quantity+item.Quantity > MaxQuantity {
		return fmt.Errorf("%w: 已有 %d，再加 %d", ErrQuantityExceeded, existing.Quantity, item.Quantity)
	}
	item.ProductName = p.Name
	item.PriceAtAddition = p.Price
	return s.repo.Add(ctx, uid, item)
}

func (s *service) Remove(ctx context.Context, uid, productID, variantID int64) error {
	cnt, err := s.repo.Delete(ctx, uid, productID, variantID)
	if err != nil {
		return err
	}
	if cnt == 0 {
		return ErrItemNotFound
	}
	return nil
}

func (s *service) UpdateQuantity(ctx context.Context, uid int64, item domain.Item) error {
	if item.Quantity <= 0 {
		return ErrInvalidQuantity
	}
	if item.Quantity > MaxQuantity {
		return fmt.Errorf("%w: %d", ErrQuantityExceeded, item.Quantity)
	}
	cnt, err := s.repo.UpdateQuantity(ctx, uid, item)
	if err != nil {
		return err
	}
	if cnt == 0 {
		return ErrItemNotFound
	}
	return nil
}

func (s *service) ClearCart(ctx context.Context, uid int64) error {
	return s.repo.Clear(ctx, uid)
}
