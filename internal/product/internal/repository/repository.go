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
	"github.com/ecodeclub/emall/internal/pkg/database"
	"github.com/ecodeclub/emall/internal/product/internal/domain"
	"github.com/ecodeclub/emall/internal/product/internal/repository/cache"
	"github.com/ecodeclub/emall/internal/product/internal/repository/dao"
	"github.com/gotomicro/ego/core/elog"
	"golang.org/x/sync/errgroup"
)

type ProductRepository interface {
	FindByID(ctx context.Context, id int64) (domain.Product, error)
	List(ctx context.Context, offset, limit int) ([]domain.Product, int64, error)
	Save(ctx context.Context, p domain.Product) (int64, error)
	SetStock(ctx context.Context, productID, variantID, stock int64) error
	DecrStock(ctx context.Context, line domain.ReserveLine) (bool, error)
}

func NewProductRepository(d dao.ProductDAO, c cache.ProductCache) ProductRepository {
	return &productRepository{
		dao:    d,
		cache:  c,
		logger: elog.DefaultLogger,
	}
}

type productRepository struct {
	dao    dao.ProductDAO
	cache  cache.ProductCache
	logger *elog.Component
}

func (r *productRepository) FindByID(ctx context.Context, id int64) (domain.Product, error) {
	res, err := r.cache.Get(ctx, id)
	if err == nil {
		return res, nil
	}
	p, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Product{}, err
	}
	variants, err := r.dao.FindVariantsByProductID(ctx, id)
	if err != nil {
		return domain.Product{}, err
	}
	res = r.toDomain(p, variants)
	if er := r.cache.Set(ctx, res); er != nil {
		r.logger.Warn("回写商品缓存失败", elog.Int64("pid", id), elog.FieldErr(er))
	}
	return res, nil
}

func (r *productRepository) List(ctx context.Context, offset, limit int) ([]domain.Product, int64, error) {
	var (
		eg    errgroup.Group
		ps    []dao.Product
		total int64
	)
	eg.Go(func() error {
		var err error
		ps, err = r.dao.List(ctx, offset, limit)
		return err
	})
	eg.Go(func() error {
		var err error
		total, err = r.dao.Count(ctx)
		return err
	})
	if err := eg.Wait(); err != nil {
		return nil, 0, err
	}
	return slice.Map(ps, func(idx int, src dao.Product) domain.Product {
		return r.toDomain(src, nil)
	}), total, nil
}

func (r *productRepository) Save(ctx context.Context, p domain.Product) (int64, error) {
	id, err := r.dao.Save(ctx, r.toEntity(p), slice.Map(p.Variants, func(idx int, src domain.Variant) dao.ProductVariant {
		return dao.ProductVariant{
			Size:  src.Size,
			Stock: src.Stock,
		}
	}))
	if err != nil {
		return 0, err
	}
	r.evict(ctx, id)
	return id, nil
}

func (r *productRepository) SetStock(ctx context.Context, productID, variantID, stock int64) error {
	var err error
	if variantID > 0 {
		err = r.dao.SetVariantStock(ctx, productID, variantID, stock)
	} else {
		err = r.dao.SetStock(ctx, productID, stock)
	}
	if err == nil {
		r.evict(ctx, productID)
	}
	return err
}

func (r *productRepository) DecrStock(ctx context.Context, line domain.ReserveLine) (bool, error) {
	var (
		ok  bool
		err error
	)
	if line.VariantID > 0 {
		ok, err = r.dao.DecrVariantStock(ctx, line.ProductID, line.VariantID, line.Quantity)
	} else {
		ok, err = r.dao.DecrStock(ctx, line.ProductID, line.Quantity)
	}
	if ok {
		// 在事务里删除缓存的话，提交之前的读会把旧库存重新放回缓存
		database.AfterCommit(ctx, func(ctx context.Context) {
			r.evict(ctx, line.ProductID)
		})
	}
	return ok, err
}

// evict 缓存里只是展示用的数据，删除失败等过期即可
func (r *productRepository) evict(ctx context.Context, id int64) {
	if err := r.cache.Delete(ctx, id); err != nil {
		r.logger.Warn("删除商品缓存失败", elog.Int64("pid", id), elog.FieldErr(err))
	}
}

func (r *productRepository) toDomain(p dao.Product, variants []dao.ProductVariant) domain.Product {
	return domain.Product{
		ID:          p.Id,
		SN:          p.SN,
		Name:        p.Name,
		Description: p.Description,
		Image:       p.Image,
		Price:       p.Price,
		Stock:       p.Stock,
		InStock:     p.InStock,
		Status:      domain.Status(p.Status),
		Variants: slice.Map(variants, func(idx int, src dao.ProductVariant) domain.Variant {
			return domain.Variant{
				ID:        src.Id,
				ProductID: src.ProductID,
				Size:      src.Size,
				Stock:     src.Stock,
				InStock:   src.InStock,
			}
		}),
		Ctime: p.Ctime,
		Utime: p.Utime,
	}
}

func (r *productRepository) toEntity(p domain.Product) dao.Product {
	return dao.Product{
		Id:          p.ID,
		SN:          p.SN,
		Name:        p.Name,
		Description: p.Description,
		Image:       p.Image,
		Price:       p.Price,
		Stock:       p.Stock,
		Status:      p.Status.ToUint8(),
	}
}
