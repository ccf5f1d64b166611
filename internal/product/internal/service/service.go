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
	"cmp"
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/ecodeclub/emall/internal/pkg/database"
	"github.com/ecodeclub/emall/internal/product/internal/domain"
	"github.com/ecodeclub/emall/internal/product/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrProductNotFound = errors.New("商品不存在")
	ErrInvalidStock    = errors.New("库存不能为负数")
	// errShortfall 仅用于让事务回滚，不会返回给调用方
	errShortfall = errors.New("库存不足")
)

//go:generate mockgen -source=./service.go -package=productmocks -destination=../../mocks/product.mock.go Service
type Service interface {
	FindByID(ctx context.Context, id int64) (domain.Product, error)
	List(ctx context.Context, offset, limit int) ([]domain.Product, int64, error)
	Save(ctx context.Context, p domain.Product) (int64, error)
	// Restock 管理员直接设置库存，variantID 为 0 时设置商品本身的库存
	Restock(ctx context.Context, productID, variantID, stock int64) error
	// Reserve 逐行条件扣减库存。任何一行不足都会整体回滚并返回不足的行。
	// ctx 中携带事务时加入外层事务，由外层根据返回值决定提交还是回滚
	Reserve(ctx context.Context, lines []domain.ReserveLine) ([]domain.Shortfall, error)
}

type service struct {
	repo repository.ProductRepository
	txn  database.Transactor
}

func NewService(repo repository.ProductRepository, txn database.Transactor) Service {
	return &service{repo: repo, txn: txn}
}

func (s *service) FindByID(ctx context.Context, id int64) (domain.Product, error) {
	p, err := s.repo.FindByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.Product{}, fmt.Errorf("%w: id=%d", ErrProductNotFound, id)
	}
	return p, err
}

func (s *service) List(ctx context.Context, offset, limit int) ([]domain.Product, int64, error) {
	return s.repo.List(ctx, offset, limit)
}

func (s *service) Save(ctx context.Context, p domain.Product) (int64, error) {
	if p.Stock < 0 {
		return 0, ErrInvalidStock
	}
	for _, v := range p.Variants {
		if v.Stock < 0 {
			return 0, ErrInvalidStock
		}
	}
	return s.repo.Save(ctx, p)
}

func (s *service) Restock(ctx context.Context, productID, variantID, stock int64) error {
	if stock < 0 {
		return ErrInvalidStock
	}
	err := s.repo.SetStock(ctx, productID, variantID, stock)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: id=%d, variant=%d", ErrProductNotFound, productID, variantID)
	}
	return err
}

func (s *service) Reserve(ctx context.Context, lines []domain.ReserveLine) ([]domain.Shortfall, error) {
	var shortfalls []domain.Shortfall
	err := s.txn.Transaction(ctx, func(ctx context.Context) error {
		for _, line := range sortedLines(lines) {
			ok, err := s.repo.DecrStock(ctx, line)
			if err != nil {
				return fmt.Errorf("扣减库存失败 pid=%d, vid=%d: %w", line.ProductID, line.VariantID, err)
			}
			if !ok {
				shortfalls = append(shortfalls, domain.Shortfall{
					ProductID: line.ProductID,
					VariantID: line.VariantID,
					Requested: line.Quantity,
				})
			}
		}
		if len(shortfalls) > 0 {
			return errShortfall
		}
		return nil
	})
	if errors.Is(err, errShortfall) {
		return shortfalls, nil
	}
	return nil, err
}

// sortedLines 按 (商品, 规格) 排序，并发扣减多行库存时以相同的顺序加行锁
func sortedLines(lines []domain.ReserveLine) []domain.ReserveLine {
	res := slices.Clone(lines)
	slices.SortFunc(res, func(a, b domain.ReserveLine) int {
		if c := cmp.Compare(a.ProductID, b.ProductID); c != 0 {
			return c
		}
		return cmp.Compare(a.VariantID, b.VariantID)
	})
	return res
}
