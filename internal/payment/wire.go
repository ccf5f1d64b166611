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

//go:build wireinject

package payment

import (
	"sync"

	"github.com/ecodeclub/emall/internal/payment/internal/gateway"
	"github.com/ecodeclub/emall/internal/payment/internal/repository"
	"github.com/ecodeclub/emall/internal/payment/internal/repository/dao"
	"github.com/ecodeclub/emall/internal/payment/internal/service"
	"github.com/ecodeclub/emall/internal/payment/ioc"
	"github.com/ego-component/egorm"
	"github.com/google/wire"
)

var serviceSet = wire.NewSet(
	InitTablesOnce,
	repository.NewWebhookEventRepository,
	service.NewService,
)

func InitModule(db *egorm.Component) *Module {
	wire.Build(
		serviceSet,
		ioc.InitRazorpayConfig,
		ioc.InitServiceConfig,
		ioc.InitGateway,
		wire.Struct(new(Module), "*"),
	)
	return new(Module)
}

// InitModuleWithGateway 使用指定的网关，测试和本地联调时用
func InitModuleWithGateway(db *egorm.Component, gw gateway.Gateway, cfg service.Config) *Module {
	wire.Build(
		serviceSet,
		wire.Struct(new(Module), "*"),
	)
	return new(Module)
}

var once = &sync.Once{}

func InitTablesOnce(db *egorm.Component) dao.WebhookEventDAO {
	once.Do(func() {
		err := dao.InitTables(db)
		if err != nil {
			panic(err)
		}
	})
	return dao.NewWebhookEventGORMDAO(db)
}
