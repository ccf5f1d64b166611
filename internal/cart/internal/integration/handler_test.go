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

package integration

import (
	"context"
	"net/http"
	"testing"

	"github.com/ecodeclub/ekit/iox"
	"github.com/ecodeclub/emall/internal/cart"
	"github.com/ecodeclub/emall/internal/cart/internal/errs"
	"github.com/ecodeclub/emall/internal/cart/internal/web"
	"github.com/ecodeclub/emall/internal/product"
	"github.com/ecodeclub/emall/internal/test"
	testioc "github.com/ecodeclub/emall/internal/test/ioc"
	"github.com/ego-component/egorm"
	"github.com/gotomicro/ego/core/econf"
	"github.com/gotomicro/ego/server/egin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const uid = int64(1001)

func TestCartModule(t *testing.T) {
	suite.Run(t, new(CartModuleTestSuite))
}

type CartModuleTestSuite struct {
	suite.Suite
	server     *egin.Component
	db         *egorm.Component
	productSvc product.Service
	svc        cart.Service
}

func (s *CartModuleTestSuite) SetupSuite() {
	s.db = testioc.InitDB()
	pm := product.InitModule(s.db, testioc.InitCache())
	cm := cart.InitModule(s.db, pm)
	econf.Set("server", map[string]any{"contextTimeout": "1s"})
	server := egin.Load("server").Build()
	server.Use(test.LoginAs(uid))
	cm.Hdl.PrivateRoutes(server.Engine)
	s.server = server
	s.productSvc = pm.Svc
	s.svc = cm.Svc
}

func (s *CartModuleTestSuite) TearDownTest() {
	s.NoError(s.db.Exec("DELETE FROM `cart_items`").Error)
	s.NoError(s.db.Exec("DELETE FROM `products`").Error)
	s.NoError(s.db.Exec("DELETE FROM `product_variants`").Error)
	s.NoError(testioc.InitRedis().FlushAll(context.Background()).Err())
}

func (s *CartModuleTestSuite) post(t *testing.T, path string, body any) test.Result[web.Cart] {
	req, err := http.NewRequest(http.MethodPost, path, iox.NewJSONReader(body))
	require.NoError(t, err)
	req.Header.Set("content-type", "application/json")
	recorder := test.NewJSONResponseRecorder[web.Cart]()
	s.server.ServeHTTP(recorder, req)
	require.Equal(t, 200, recorder.Code)
	return recorder.MustScan()
}

func (s *CartModuleTestSuite) TestAdd_PriceAtAddition() {
	t := s.T()
	ctx := context.Background()
	pid, err := s.productSvc.Save(ctx, product.Product{SN: "C001", Name: "台灯", Price: 10000, Stock: 10})
	require.NoError(t, err)

	res := s.post(t, "/cart/add", web.AddReq{ProductID: pid, Quantity: 1})
	require.Equal(t, 0, res.Code)

	// 改价之后再加入，单价保持第一次加入时的价格
	_, err = s.productSvc.Save(ctx, product.Product{SN: "C001", Name: "台灯", Price: 15000, Stock: 10})
	require.NoError(t, err)
	res = s.post(t, "/cart/add", web.AddReq{ProductID: pid, Quantity: 1})
	require.Equal(t, 0, res.Code)

	res = s.post(t, "/cart/detail", nil)
	assert.Equal(t, test.Result[web.Cart]{
		Data: web.Cart{
			TotalPrice: 20000,
			Items: []web.Item{
				{ProductID: pid, ProductName: "台灯", Quantity: 2, PriceAtAddition: 10000},
			},
		},
	}, res)
}

func (s *CartModuleTestSuite) TestAdd_VariantAndCustomSize() {
	t := s.T()
	pid, err := s.productSvc.Save(context.Background(), product.Product{
		SN: "C002", Name: "地毯", Price: 250000,
		Variants: []product.Variant{{Size: "2x3", Stock: 4}},
	})
	require.NoError(t, err)
	p, err := s.productSvc.FindByID(context.Background(), pid)
	require.NoError(t, err)
	vid := p.Variants[0].ID

	res := s.post(t, "/cart/add", web.AddReq{
		ProductID: pid,
		VariantID: vid,
		Quantity:  1,
		CustomSize: &web.CustomSize{
			Length: 2.5, Width: 3, Unit: "m", Notes: "圆角",
		},
	})
	require.Equal(t, 0, res.Code)

	c, err := s.svc.GetCart(context.Background(), uid)
	require.NoError(t, err)
	require.Len(t, c.Items, 1)
	assert.Equal(t, "2x3", c.Items[0].Size)
	assert.Equal(t, &cart.CustomSize{Length: 2.5, Width: 3, Unit: "m", Notes: "圆角"}, c.Items[0].CustomSize)

	res = s.post(t, "/cart/add", web.AddReq{ProductID: pid, VariantID: vid + 100, Quantity: 1})
	assert.Equal(t, errs.VariantNotFound.Code, res.Code)
}

func (s *CartModuleTestSuite) TestUpdateAndRemove() {
	t := s.T()
	pid, err := s.productSvc.Save(context.Background(), product.Product{SN: "C003", Name: "水杯", Price: 3000, Stock: 10})
	require.NoError(t, err)
	require.NoError(t, s.svc.Add(context.Background(), uid, cart.Item{ProductID: pid, Quantity: 1}))

	testCases := []struct {
		name     string
		path     string
		req      any
		wantCode int
		after    func(t *testing.T)
	}{
		{
			name: "修改数量",
			path: "/cart/quantity",
			req:  web.UpdateQuantityReq{ProductID: pid, Quantity: 5},
			after: func(t *testing.T) {
				c, err := s.svc.GetCart(context.Background(), uid)
				require.NoError(t, err)
				assert.Equal(t, int64(15000), c.TotalPrice())
			},
		},
		{
			name:     "数量不合法",
			path:     "/cart/quantity",
			req:      web.UpdateQuantityReq{ProductID: pid, Quantity: 0},
			wantCode: errs.InvalidQuantity.Code,
			after:    func(t *testing.T) {},
		},
		{
			name: "移除商品",
			path: "/cart/remove",
			req:  web.ItemKey{ProductID: pid},
			after: func(t *testing.T) {
				c, err := s.svc.GetCart(context.Background(), uid)
				require.NoError(t, err)
				assert.True(t, c.IsEmpty())
			},
		},
		{
			name:     "移除不存在的商品",
			path:     "/cart/remove",
			req:      web.ItemKey{ProductID: pid},
			wantCode: errs.ItemNotFound.Code,
			after:    func(t *testing.T) {},
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			res := s.post(t, tc.path, tc.req)
			assert.Equal(t, tc.wantCode, res.Code)
			tc.after(t)
		})
	}
}

func (s *CartModuleTestSuite) TestAdd_QuantityLimit() {
	t := s.T()
	pid, err := s.productSvc.Save(context.Background(), product.Product{SN: "C004", Name: "靠垫", Price: 2000, Stock: 10})
	require.NoError(t, err)

	res := s.post(t, "/cart/add", web.AddReq{ProductID: pid, Quantity: cart.MaxQuantity - 1})
	require.Equal(t, 0, res.Code)
	// 累加之后超过上限
	res = s.post(t, "/cart/add", web.AddReq{ProductID: pid, Quantity: 2})
	assert.Equal(t, errs.QuantityExceeded.Code, res.Code)
	res = s.post(t, "/cart/add", web.AddReq{ProductID: pid, Quantity: 1})
	require.Equal(t, 0, res.Code)

	res = s.post(t, "/cart/quantity", web.UpdateQuantityReq{ProductID: pid, Quantity: 1 << 62})
	assert.Equal(t, errs.QuantityExceeded.Code, res.Code)
	c, err := s.svc.GetCart(context.Background(), uid)
	require.NoError(t, err)
	require.Len(t, c.Items, 1)
	assert.Equal(t, cart.MaxQuantity, c.Items[0].Quantity)
}
